package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/raulodev/bill-flow/internal/domain/account"
	ierr "github.com/raulodev/bill-flow/internal/errors"
	"github.com/raulodev/bill-flow/internal/logger"
	"github.com/raulodev/bill-flow/internal/postgres"
	"github.com/raulodev/bill-flow/internal/types"
	"github.com/shopspring/decimal"
)

type accountRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewAccountRepository(db postgres.IClient, logger *logger.Logger) account.Repository {
	return &accountRepository{db: db, logger: logger}
}

func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	query := `
	INSERT INTO accounts (
		id, tenant_id, name, email, credit, external_id,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
	)
	`

	_, err := r.db.Querier(ctx).ExecContext(ctx, query,
		a.ID,
		a.TenantID,
		a.Name,
		a.Email,
		a.Credit,
		a.ExternalID,
		a.Status,
		a.CreatedAt,
		a.UpdatedAt,
		a.CreatedBy,
		a.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create account").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *accountRepository) Get(ctx context.Context, id string) (*account.Account, error) {
	query := `
	SELECT
		id, tenant_id, name, email, credit, external_id,
		status, created_at, updated_at, created_by, updated_by
	FROM accounts
	WHERE id = $1 AND status != $2
	`

	var a account.Account
	err := r.db.Querier(ctx).GetContext(ctx, &a, query, id, types.StatusDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("account not found").
				WithHint("Account not found").
				WithReportableDetails(map[string]any{
					"account_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get account").
			Mark(ierr.ErrDatabase)
	}

	return &a, nil
}

func (r *accountRepository) Update(ctx context.Context, a *account.Account) error {
	query := `
	UPDATE accounts
	SET name = $2, email = $3, credit = $4, updated_at = $5, updated_by = $6
	WHERE id = $1 AND status != $7
	`

	a.UpdatedAt = time.Now().UTC()
	a.UpdatedBy = types.GetUserID(ctx)

	result, err := r.db.Querier(ctx).ExecContext(ctx, query,
		a.ID, a.Name, a.Email, a.Credit, a.UpdatedAt, a.UpdatedBy, types.StatusDeleted,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update account").
			Mark(ierr.ErrDatabase)
	}

	return requireRowsAffected(result, "account", a.ID)
}

func (r *accountRepository) AdjustCredit(ctx context.Context, id string, delta decimal.Decimal) error {
	query := `
	UPDATE accounts
	SET credit = credit + $2, updated_at = $3
	WHERE id = $1 AND status != $4
	`

	result, err := r.db.Querier(ctx).ExecContext(ctx, query,
		id, delta, time.Now().UTC(), types.StatusDeleted,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to adjust account credit").
			Mark(ierr.ErrDatabase)
	}

	return requireRowsAffected(result, "account", id)
}

// requireRowsAffected maps a zero-row update to a not found error
func requireRowsAffected(result sql.Result, entity, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to read rows affected").
			Mark(ierr.ErrDatabase)
	}
	if affected == 0 {
		return ierr.NewError(entity + " not found").
			WithHintf("%s not found", entity).
			WithReportableDetails(map[string]any{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
