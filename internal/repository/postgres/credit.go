package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/raulodev/bill-flow/internal/domain/credit"
	ierr "github.com/raulodev/bill-flow/internal/errors"
	"github.com/raulodev/bill-flow/internal/logger"
	"github.com/raulodev/bill-flow/internal/postgres"
)

type creditRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewCreditRepository(db postgres.IClient, logger *logger.Logger) credit.Repository {
	return &creditRepository{db: db, logger: logger}
}

func (r *creditRepository) Create(ctx context.Context, e *credit.Entry) error {
	query := `
	INSERT INTO credit_history (
		id, tenant_id, account_id, amount, entry_type, reason, comment,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
	)
	`

	_, err := r.db.Querier(ctx).ExecContext(ctx, query,
		e.ID,
		e.TenantID,
		e.AccountID,
		e.Amount,
		e.EntryType,
		e.Reason,
		e.Comment,
		e.Status,
		e.CreatedAt,
		e.UpdatedAt,
		e.CreatedBy,
		e.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create credit history entry").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *creditRepository) Get(ctx context.Context, id string) (*credit.Entry, error) {
	query := `
	SELECT
		id, tenant_id, account_id, amount, entry_type, reason, comment,
		status, created_at, updated_at, created_by, updated_by
	FROM credit_history
	WHERE id = $1
	`

	var e credit.Entry
	err := r.db.Querier(ctx).GetContext(ctx, &e, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("credit history entry not found").
				WithHint("Credit history entry not found").
				WithReportableDetails(map[string]any{
					"entry_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get credit history entry").
			Mark(ierr.ErrDatabase)
	}

	return &e, nil
}

func (r *creditRepository) ListByAccount(ctx context.Context, accountID string) ([]*credit.Entry, error) {
	query := `
	SELECT
		id, tenant_id, account_id, amount, entry_type, reason, comment,
		status, created_at, updated_at, created_by, updated_by
	FROM credit_history
	WHERE account_id = $1
	ORDER BY created_at ASC
	`

	var entries []*credit.Entry
	err := r.db.Querier(ctx).SelectContext(ctx, &entries, query, accountID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list credit history").
			Mark(ierr.ErrDatabase)
	}

	return entries, nil
}
