package credit

import "context"

// Repository defines the interface for credit history persistence operations.
// Entries are append only; there are no update or delete operations.
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	Get(ctx context.Context, id string) (*Entry, error)
	ListByAccount(ctx context.Context, accountID string) ([]*Entry, error)
}
