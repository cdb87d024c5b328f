package audit

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps checks in process. Used by tests and by `serve` when no
// database is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	checks map[uuid.UUID]Check
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{checks: make(map[uuid.UUID]Check)}
}

func (s *MemoryStore) Record(_ context.Context, c Check) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.checks[c.ID]; exists {
		return fmt.Errorf("check %s already recorded", c.ID)
	}
	s.checks[c.ID] = c
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (Check, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.checks[id]
	if !ok {
		return Check{}, fmt.Errorf("check %s: %w", id, ErrNotFound)
	}
	return c, nil
}

func (s *MemoryStore) ListByApplicant(_ context.Context, applicantRef string, limit int) ([]Check, error) {
	if limit <= 0 {
		limit = 20
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	checks := []Check{}
	for _, c := range s.checks {
		if c.ApplicantRef == applicantRef {
			checks = append(checks, c)
		}
	}
	// newest first, ties by id
	sort.Slice(checks, func(i, j int) bool {
		if !checks[i].CheckedAt.Equal(checks[j].CheckedAt) {
			return checks[i].CheckedAt.After(checks[j].CheckedAt)
		}
		return checks[i].ID.String() < checks[j].ID.String()
	})
	if len(checks) > limit {
		checks = checks[:limit]
	}
	return checks, nil
}
