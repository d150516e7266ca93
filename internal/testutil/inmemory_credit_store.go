package testutil

import (
	"context"
	"sync"

	"github.com/raulodev/bill-flow/internal/domain/credit"
	ierr "github.com/raulodev/bill-flow/internal/errors"
)

// InMemoryCreditStore implements credit.Repository for testing.
// Entries are kept in insertion order to mirror the append only history.
type InMemoryCreditStore struct {
	mu      sync.RWMutex
	entries []*credit.Entry
}

func NewInMemoryCreditStore() *InMemoryCreditStore {
	return &InMemoryCreditStore{}
}

func (s *InMemoryCreditStore) Create(ctx context.Context, e *credit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, e)
	return nil
}

func (s *InMemoryCreditStore) Get(ctx context.Context, id string) (*credit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.ID == id {
			copied := *e
			return &copied, nil
		}
	}
	return nil, ierr.NewError("credit history entry not found").
		WithHint("Credit history entry not found").
		WithReportableDetails(map[string]any{
			"entry_id": id,
		}).
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryCreditStore) ListByAccount(ctx context.Context, accountID string) ([]*credit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*credit.Entry
	for _, e := range s.entries {
		if e.AccountID == accountID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (s *InMemoryCreditStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}
