package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelflex/pkg/scene"
	"github.com/matzehuels/pixelflex/pkg/treeviz"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	output   string // output file; format follows the extension (.dot, .svg, .png)
	detailed bool   // include sizes and layout policies in node labels
}

// newInspectCmd creates the inspect command for visualizing element trees.
func newInspectCmd() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect <scene.toml>",
		Short: "Draw the element tree as a diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "tree.svg", "output file (.dot, .svg, .png)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include sizes and layout policies")

	return cmd
}

func runInspect(ctx context.Context, manifestPath string, opts *inspectOpts) error {
	m, err := scene.Load(manifestPath)
	if err != nil {
		return err
	}
	root, err := m.Build()
	if err != nil {
		return err
	}

	dot := treeviz.ToDOT(root, treeviz.Options{Detailed: opts.detailed})

	var data []byte
	switch strings.ToLower(filepath.Ext(opts.output)) {
	case ".dot":
		data = []byte(dot)
	case ".svg":
		data, err = treeviz.RenderSVG(ctx, dot)
	case ".png":
		data, err = treeviz.RenderPNG(ctx, dot)
	default:
		return fmt.Errorf("unsupported output extension %q (use .dot, .svg, or .png)", filepath.Ext(opts.output))
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return err
	}

	printSuccess("Inspected %s", manifestPath)
	printFile(opts.output)
	return nil
}
