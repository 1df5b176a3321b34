package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/pixelflex/pkg/cache"
)

func TestCacheDirRespectsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	got, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(dir, appName) {
		t.Errorf("cacheDir() = %s", got)
	}
}

func TestCacheDirFallsBackToHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", t.TempDir())

	got, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(got, filepath.Join(".cache", appName)) {
		t.Errorf("cacheDir() = %s", got)
	}
}

func TestNewCacheDisabled(t *testing.T) {
	c, err := newCache(true, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("newCache(noCache) = %T, want *cache.NullCache", c)
	}
}

func TestNewCacheWithExplicitDir(t *testing.T) {
	c, err := newCache(false, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("newCache(dir) = %T, want *cache.FileCache", c)
	}
}
