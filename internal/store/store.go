package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Matrix/internal/workflow"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("session limit reached")
)

// UpdateFn mutates a private copy of a session. Returning an error discards the copy.
type UpdateFn func(sess *workflow.Session) error

// SessionStats summarises live sessions.
type SessionStats struct {
	Total   int                    `json:"total"`
	ByStage map[workflow.Stage]int `json:"by_stage"`
}

// Store holds live matrix sessions for the lifetime of the process.
// Nothing is written to durable storage.
type Store interface {
	Create(ctx context.Context) (*workflow.Session, error)
	Get(ctx context.Context, id uuid.UUID) (*workflow.Session, error)
	Update(ctx context.Context, id uuid.UUID, fn UpdateFn) (*workflow.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteIdle removes sessions not updated since cutoff and returns their ids.
	DeleteIdle(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)

	Stats(ctx context.Context) (*SessionStats, error)

	Close() error
}
