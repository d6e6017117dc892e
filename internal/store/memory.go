package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Matrix/internal/workflow"
)

// MemoryStore keeps sessions in a map guarded by a single mutex.
// Callers only ever see clones; Update swaps in a mutated copy.
type MemoryStore struct {
	mu          sync.RWMutex
	sessions    map[uuid.UUID]*workflow.Session
	maxSessions int
}

// NewMemoryStore creates a store. maxSessions <= 0 means unlimited.
func NewMemoryStore(maxSessions int) *MemoryStore {
	return &MemoryStore{
		sessions:    make(map[uuid.UUID]*workflow.Session),
		maxSessions: maxSessions,
	}
}

func (s *MemoryStore) Create(_ context.Context) (*workflow.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		return nil, ErrTooManySessions
	}
	sess := workflow.NewSession()
	s.sessions[sess.ID] = sess
	return sess.Clone(), nil
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*workflow.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess.Clone(), nil
}

func (s *MemoryStore) Update(_ context.Context, id uuid.UUID, fn UpdateFn) (*workflow.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	s.sessions[id] = next
	return next.Clone(), nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) DeleteIdle(_ context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []uuid.UUID
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			expired = append(expired, id)
			delete(s.sessions, id)
		}
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i].String() < expired[j].String() })
	return expired, nil
}

func (s *MemoryStore) Stats(_ context.Context) (*SessionStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &SessionStats{
		Total:   len(s.sessions),
		ByStage: make(map[workflow.Stage]int, len(workflow.Stages)),
	}
	for _, st := range workflow.Stages {
		stats.ByStage[st] = 0
	}
	for _, sess := range s.sessions {
		stats.ByStage[sess.Stage()]++
	}
	return stats, nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[uuid.UUID]*workflow.Session)
	return nil
}
