package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelflex/internal/server"
	"github.com/matzehuels/pixelflex/pkg/cache"
	"github.com/matzehuels/pixelflex/pkg/history"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	redis    string // Redis address for the shared artifact cache
	mongo    string // MongoDB URI for shared render history
	parallel int    // sibling-render worker count
}

// newServeCmd creates the serve command for running the HTTP service.
func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP compose service",
		Long: `Serve exposes the compositing engine over HTTP. Without --redis or
--mongo the service uses a local file cache and in-memory history, which
is fine for a single instance.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for the shared artifact cache")
	cmd.Flags().StringVar(&opts.mongo, "mongo", "", "MongoDB URI for shared render history")
	cmd.Flags().IntVar(&opts.parallel, "parallel", 0, "render sibling subtrees on up to N goroutines")

	return cmd
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var artifactCache cache.Cache
	var err error
	if opts.redis != "" {
		artifactCache, err = cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redis})
		if err != nil {
			return err
		}
		logger.Info("using redis cache", "addr", opts.redis)
	} else {
		artifactCache, err = newCache(false, "")
		if err != nil {
			return err
		}
	}
	defer artifactCache.Close()

	var store history.Store
	if opts.mongo != "" {
		store, err = history.NewMongoStore(ctx, history.MongoConfig{URI: opts.mongo})
		if err != nil {
			return err
		}
		logger.Info("using mongo history", "uri", opts.mongo)
	} else {
		store = history.NewMemoryStore(0)
	}
	defer store.Close(context.Background())

	srv := server.New(server.Config{
		Addr:     opts.addr,
		Cache:    artifactCache,
		Store:    store,
		Logger:   logger,
		Parallel: opts.parallel,
	})
	return srv.Run(ctx)
}
