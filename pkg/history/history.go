// Package history records completed renders.
//
// Each successful render produces a Job entry. The server records jobs and
// exposes recent history through its API; the memory store backs
// single-instance deployments and tests, the mongo store shared ones.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/pixelflex/pkg/errors"
)

// Job describes one completed render.
type Job struct {
	ID        string        `bson:"_id" json:"id"`
	SceneHash string        `bson:"scene_hash" json:"scene_hash"`
	Width     int           `bson:"width" json:"width"`
	Height    int           `bson:"height" json:"height"`
	Format    string        `bson:"format" json:"format"`
	Bytes     int           `bson:"bytes" json:"bytes"`
	Duration  time.Duration `bson:"duration_ns" json:"duration_ns"`
	Cached    bool          `bson:"cached" json:"cached"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
}

// Store is the interface for job history backends.
type Store interface {
	// Record persists a job.
	Record(ctx context.Context, job *Job) error

	// Get retrieves a job by id. A missing id yields a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Job, error)

	// Recent returns up to limit jobs, newest first.
	Recent(ctx context.Context, limit int) ([]*Job, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NewJob creates a job with a fresh id and the current timestamp.
func NewJob(sceneHash string, width, height int, format string) *Job {
	return &Job{
		ID:        uuid.NewString(),
		SceneHash: sceneHash,
		Width:     width,
		Height:    height,
		Format:    format,
		CreatedAt: time.Now().UTC(),
	}
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "job %s not found", id)
}
