package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelflex/pkg/cache"
	"github.com/matzehuels/pixelflex/pkg/compose"
	"github.com/matzehuels/pixelflex/pkg/scene"
	"github.com/matzehuels/pixelflex/pkg/sink"
)

const defaultCacheTTL = 24 * time.Hour

// composeOpts holds the command-line flags for the compose command.
type composeOpts struct {
	output   string // output file path; format follows the extension
	parallel int    // sibling-render worker count
	noCache  bool   // bypass the artifact cache
	cacheDir string // override the cache directory
	quality  int    // JPEG quality
	matte    string // matte color for JPEG flattening
}

// newComposeCmd creates the compose command for rendering scene manifests.
func newComposeCmd() *cobra.Command {
	opts := composeOpts{quality: 90, matte: "white"}

	cmd := &cobra.Command{
		Use:   "compose <scene.toml>",
		Short: "Render a scene manifest to an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompose(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "out.png", "output file (.png, .jpg)")
	cmd.Flags().IntVar(&opts.parallel, "parallel", 0, "render sibling subtrees on up to N goroutines")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")
	cmd.Flags().StringVar(&opts.cacheDir, "cache-dir", "", "override the cache directory")
	cmd.Flags().IntVar(&opts.quality, "quality", opts.quality, "JPEG quality (1-100)")
	cmd.Flags().StringVar(&opts.matte, "matte", opts.matte, "matte color for JPEG flattening")

	return cmd
}

func runCompose(ctx context.Context, manifestPath string, opts *composeOpts) error {
	logger := loggerFromContext(ctx)

	manifestBytes, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	artifactCache, err := newCache(opts.noCache, opts.cacheDir)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer artifactCache.Close()

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.output)), ".")
	keyOpts := cache.ArtifactKeyOpts{Format: format}
	if format == "jpg" || format == "jpeg" {
		keyOpts.JPEGQuality = opts.quality
	}
	key := cache.NewDefaultKeyer().ArtifactKey(cache.Hash(manifestBytes), keyOpts)

	if data, hit, err := artifactCache.Get(ctx, key); err == nil && hit {
		if err := os.WriteFile(opts.output, data, 0o644); err != nil {
			return err
		}
		printSuccess("Rendered %s", manifestPath)
		printFile(opts.output)
		printStats(0, 0, len(data), true)
		return nil
	}

	m, err := scene.Load(manifestPath)
	if err != nil {
		return err
	}
	root, err := m.Build()
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Compositing...")
	spinner.Start()

	prog := newProgress(logger)
	out, err := compose.Render(ctx, root, compose.WithParallel(opts.parallel))
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Render failed: %v", err))
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Composited %dx%d canvas", out.Width(), out.Height()))

	matte, err := scene.ParseColor(opts.matte)
	if err != nil {
		return err
	}
	if err := sink.WriteFile(ctx, opts.output, out,
		sink.WithJPEGQuality(opts.quality), sink.WithMatte(matte)); err != nil {
		return err
	}

	data, err := os.ReadFile(opts.output)
	if err != nil {
		return err
	}
	if err := artifactCache.Set(ctx, key, data, defaultCacheTTL); err != nil {
		logger.Debug("cache set failed", "err", err)
	}

	printSuccess("Rendered %s", manifestPath)
	printFile(opts.output)
	printStats(out.Width(), out.Height(), len(data), false)
	return nil
}
