package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/matzehuels/pixelflex/pkg/errors"
)

func TestNewJob(t *testing.T) {
	j := NewJob("hash1", 800, 600, "png")
	if j.ID == "" {
		t.Error("job id is empty")
	}
	if j.CreatedAt.IsZero() {
		t.Error("created_at is zero")
	}
	if NewJob("hash1", 800, 600, "png").ID == j.ID {
		t.Error("ids must be unique")
	}
}

func TestMemoryStoreRecordAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	j := NewJob("hash1", 800, 600, "png")
	j.Bytes = 1234
	j.Duration = 40 * time.Millisecond
	if err := s.Record(ctx, j); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, j.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.SceneHash != "hash1" || got.Bytes != 1234 {
		t.Errorf("got = %+v", got)
	}

	// Returned jobs are copies.
	got.Bytes = 0
	again, _ := s.Get(ctx, j.ID)
	if again.Bytes != 1234 {
		t.Error("Get exposes internal state")
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore(0)
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestMemoryStoreRecordValidation(t *testing.T) {
	s := NewMemoryStore(0)
	if err := s.Record(context.Background(), &Job{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestMemoryStoreRecentOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	for i := 0; i < 5; i++ {
		j := NewJob(fmt.Sprintf("hash%d", i), 10, 10, "png")
		if err := s.Record(ctx, j); err != nil {
			t.Fatal(err)
		}
	}

	jobs, err := s.Recent(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 3 {
		t.Fatalf("len = %d, want 3", len(jobs))
	}
	if jobs[0].SceneHash != "hash4" || jobs[2].SceneHash != "hash2" {
		t.Errorf("order = %s, %s, %s; want newest first", jobs[0].SceneHash, jobs[1].SceneHash, jobs[2].SceneHash)
	}

	all, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Errorf("len = %d, want all 5", len(all))
	}
}

func TestMemoryStoreEviction(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2)

	for i := 0; i < 3; i++ {
		if err := s.Record(ctx, NewJob(fmt.Sprintf("hash%d", i), 1, 1, "png")); err != nil {
			t.Fatal(err)
		}
	}

	jobs, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 2 {
		t.Fatalf("len = %d, want bound of 2", len(jobs))
	}
	if jobs[0].SceneHash != "hash2" || jobs[1].SceneHash != "hash1" {
		t.Error("eviction should drop the oldest entry")
	}
}
