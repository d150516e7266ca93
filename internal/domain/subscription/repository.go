package subscription

import (
	"context"

	"github.com/raulodev/bill-flow/internal/types"
)

// Repository defines the interface for subscription persistence operations
type Repository interface {
	// Create persists the subscription together with its phases and
	// subscribed products in one unit.
	Create(ctx context.Context, s *Subscription) error

	// Get returns the subscription with phases and products loaded
	Get(ctx context.Context, id string) (*Subscription, error)

	List(ctx context.Context, f *types.SubscriptionFilter) ([]*Subscription, error)

	// ListByAccountAndIDs returns the subscriptions matching the given ids
	// that belong to the account. Ids outside the account are dropped, not
	// an error.
	ListByAccountAndIDs(ctx context.Context, accountID string, ids []string) ([]*Subscription, error)

	// ListEligible returns the subscriptions due for billing on the filter's
	// reference date, optionally scoped by account or subscription id.
	ListEligible(ctx context.Context, f *types.EligibilityFilter) ([]*Subscription, error)

	// Update persists lifecycle and billing cursor mutations
	Update(ctx context.Context, s *Subscription) error
}
