// Package cli implements the pixelflex command-line interface.
//
// This package provides commands for compositing scene manifests into
// image artifacts, inspecting element trees, running the HTTP service,
// and managing the artifact cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - compose: Render a scene manifest to a PNG or JPEG artifact
//   - inspect: Draw the element tree as a node-link diagram
//   - serve: Run the HTTP compose service
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/pixelflex/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"os"
	"path/filepath"

	"github.com/matzehuels/pixelflex/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "pixelflex"

// cacheDir returns the cache directory using XDG standard (~/.cache/pixelflex/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// newCache opens the artifact cache, degrading to a null cache when
// disabled or when no cache directory can be resolved.
func newCache(noCache bool, dir string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}
