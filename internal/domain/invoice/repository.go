package invoice

import "context"

// Repository defines the interface for invoice persistence operations
type Repository interface {
	// Create persists the invoice row only, making its id available for
	// item attachment before the items exist.
	Create(ctx context.Context, i *Invoice) error

	// AddItems attaches line items to an existing invoice
	AddItems(ctx context.Context, invoiceID string, items []*Item) error

	// Get returns the invoice with items loaded
	Get(ctx context.Context, id string) (*Invoice, error)

	ListByAccount(ctx context.Context, accountID string) ([]*Invoice, error)
}
