package account

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines the interface for account persistence operations
type Repository interface {
	Create(ctx context.Context, a *Account) error
	Get(ctx context.Context, id string) (*Account, error)
	Update(ctx context.Context, a *Account) error

	// AdjustCredit applies a signed delta to the account's credit balance.
	// The balance is allowed to go negative.
	AdjustCredit(ctx context.Context, id string, delta decimal.Decimal) error
}
