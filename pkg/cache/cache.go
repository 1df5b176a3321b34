// Package cache stores rendered artifacts so unchanged scenes are not
// composited twice.
//
// Backends:
//   - file: directory-backed cache for CLI usage
//   - redis: shared cache for multi-instance server deployments
//   - null: disabled caching
//
// Keys are derived from content hashes (see [Keyer]), so a scene manifest
// plus its render options maps to a stable key across processes.
package cache

import (
	"context"
	"time"
)

// Cache is the interface for artifact cache backends.
type Cache interface {
	// Get retrieves a cached artifact. The second return value reports
	// whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores an artifact. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes an artifact. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts captures the render parameters that affect artifact
// bytes. Two renders with equal scene hash and equal opts are
// interchangeable.
type ArtifactKeyOpts struct {
	Format      string
	JPEGQuality int
}

// DiagramKeyOpts captures the parameters of a tree diagram render.
type DiagramKeyOpts struct {
	Format   string
	Detailed bool
}

// Keyer generates cache keys for the artifact types the engine produces.
type Keyer interface {
	// ArtifactKey generates a key for a composited scene artifact.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string

	// DiagramKey generates a key for an element-tree diagram.
	DiagramKey(sceneHash string, opts DiagramKeyOpts) string
}

// DefaultKeyer generates unscoped content-addressed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a keyer without a namespace prefix.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArtifactKey generates a key for a composited scene artifact.
func (k *DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}

// DiagramKey generates a key for an element-tree diagram.
func (k *DefaultKeyer) DiagramKey(sceneHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", sceneHash, opts)
}
