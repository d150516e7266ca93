package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/raulodev/bill-flow/internal/domain/subscription"
	ierr "github.com/raulodev/bill-flow/internal/errors"
	"github.com/raulodev/bill-flow/internal/types"
	"github.com/samber/lo"
)

// InMemorySubscriptionStore implements subscription.Repository for testing
type InMemorySubscriptionStore struct {
	mu            sync.RWMutex
	subscriptions map[string]*subscription.Subscription
}

func NewInMemorySubscriptionStore() *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{
		subscriptions: make(map[string]*subscription.Subscription),
	}
}

func (s *InMemorySubscriptionStore) Create(ctx context.Context, sub *subscription.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.subscriptions[sub.ID]; exists {
		return ierr.NewError("subscription already exists").
			WithHint("Subscription already exists").
			Mark(ierr.ErrAlreadyExists)
	}

	s.subscriptions[sub.ID] = sub
	return nil
}

func (s *InMemorySubscriptionStore) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, exists := s.subscriptions[id]
	if !exists {
		return nil, ierr.NewError("subscription not found").
			WithHint("Subscription not found").
			WithReportableDetails(map[string]any{
				"subscription_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}

	copied := *sub
	return &copied, nil
}

func (s *InMemorySubscriptionStore) List(ctx context.Context, f *types.SubscriptionFilter) ([]*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*subscription.Subscription, 0, len(s.subscriptions))
	for _, sub := range s.subscriptions {
		if f != nil && f.State != nil && sub.State != *f.State {
			continue
		}
		result = append(result, sub)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if f != nil && f.Offset > 0 {
		if f.Offset >= len(result) {
			return nil, nil
		}
		result = result[f.Offset:]
	}
	if f != nil && f.Limit > 0 && f.Limit < len(result) {
		result = result[:f.Limit]
	}

	return result, nil
}

func (s *InMemorySubscriptionStore) ListByAccountAndIDs(ctx context.Context, accountID string, ids []string) ([]*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := lo.SliceToMap(ids, func(id string) (string, struct{}) {
		return id, struct{}{}
	})

	var result []*subscription.Subscription
	for _, sub := range s.subscriptions {
		if sub.AccountID != accountID {
			continue
		}
		if _, ok := wanted[sub.ID]; ok {
			result = append(result, sub)
		}
	}
	return result, nil
}

func (s *InMemorySubscriptionStore) ListEligible(ctx context.Context, f *types.EligibilityFilter) ([]*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*subscription.Subscription
	for _, sub := range s.subscriptions {
		if f.AccountID != nil && sub.AccountID != *f.AccountID {
			continue
		}
		if f.SubscriptionID != nil && sub.ID != *f.SubscriptionID {
			continue
		}
		if !sub.IsEligibleForBilling(f.ReferenceDate) {
			continue
		}
		result = append(result, sub)
	}
	return result, nil
}

func (s *InMemorySubscriptionStore) Update(ctx context.Context, sub *subscription.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.subscriptions[sub.ID]; !exists {
		return ierr.NewError("subscription not found").
			WithHint("Subscription not found").
			Mark(ierr.ErrNotFound)
	}

	s.subscriptions[sub.ID] = sub
	return nil
}

func (s *InMemorySubscriptionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscriptions = make(map[string]*subscription.Subscription)
}
