package testutil

import (
	"context"
	"sync"

	"github.com/raulodev/bill-flow/internal/domain/account"
	ierr "github.com/raulodev/bill-flow/internal/errors"
	"github.com/shopspring/decimal"
)

// InMemoryAccountStore implements account.Repository for testing
type InMemoryAccountStore struct {
	mu       sync.RWMutex
	accounts map[string]*account.Account
}

func NewInMemoryAccountStore() *InMemoryAccountStore {
	return &InMemoryAccountStore{
		accounts: make(map[string]*account.Account),
	}
}

func (s *InMemoryAccountStore) Create(ctx context.Context, a *account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[a.ID]; exists {
		return ierr.NewError("account already exists").
			WithHint("Account already exists").
			Mark(ierr.ErrAlreadyExists)
	}

	s.accounts[a.ID] = a
	return nil
}

func (s *InMemoryAccountStore) Get(ctx context.Context, id string) (*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, exists := s.accounts[id]
	if !exists {
		return nil, ierr.NewError("account not found").
			WithHint("Account not found").
			WithReportableDetails(map[string]any{
				"account_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}

	copied := *a
	return &copied, nil
}

func (s *InMemoryAccountStore) Update(ctx context.Context, a *account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[a.ID]; !exists {
		return ierr.NewError("account not found").
			WithHint("Account not found").
			Mark(ierr.ErrNotFound)
	}

	s.accounts[a.ID] = a
	return nil
}

func (s *InMemoryAccountStore) AdjustCredit(ctx context.Context, id string, delta decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, exists := s.accounts[id]
	if !exists {
		return ierr.NewError("account not found").
			WithHint("Account not found").
			Mark(ierr.ErrNotFound)
	}

	a.Credit = a.Credit.Add(delta)
	return nil
}

func (s *InMemoryAccountStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = make(map[string]*account.Account)
}
