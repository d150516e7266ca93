package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/raulodev/bill-flow/internal/domain/invoice"
	ierr "github.com/raulodev/bill-flow/internal/errors"
	"github.com/raulodev/bill-flow/internal/logger"
	"github.com/raulodev/bill-flow/internal/postgres"
	"github.com/raulodev/bill-flow/internal/types"
)

type invoiceRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewInvoiceRepository(db postgres.IClient, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

func (r *invoiceRepository) Create(ctx context.Context, i *invoice.Invoice) error {
	query := `
	INSERT INTO invoices (
		id, tenant_id, invoice_number, account_id, payment_status,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
	)
	`

	_, err := r.db.Querier(ctx).ExecContext(ctx, query,
		i.ID,
		i.TenantID,
		i.InvoiceNumber,
		i.AccountID,
		i.PaymentStatus,
		i.Status,
		i.CreatedAt,
		i.UpdatedAt,
		i.CreatedBy,
		i.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create invoice").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *invoiceRepository) AddItems(ctx context.Context, invoiceID string, items []*invoice.Item) error {
	query := `
	INSERT INTO invoice_items (
		id, tenant_id, invoice_id, subscription_id, product_id, quantity, amount,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
	)
	`

	for _, item := range items {
		_, err := r.db.Querier(ctx).ExecContext(ctx, query,
			item.ID,
			item.TenantID,
			invoiceID,
			item.SubscriptionID,
			item.ProductID,
			item.Quantity,
			item.Amount,
			item.Status,
			item.CreatedAt,
			item.UpdatedAt,
			item.CreatedBy,
			item.UpdatedBy,
		)
		if err != nil {
			return ierr.WithError(err).
				WithHint("Failed to create invoice item").
				Mark(ierr.ErrDatabase)
		}
	}

	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	query := `
	SELECT
		id, tenant_id, invoice_number, account_id, payment_status,
		status, created_at, updated_at, created_by, updated_by
	FROM invoices
	WHERE id = $1 AND status != $2
	`

	var i invoice.Invoice
	err := r.db.Querier(ctx).GetContext(ctx, &i, query, id, types.StatusDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("invoice not found").
				WithHint("Invoice not found").
				WithReportableDetails(map[string]any{
					"invoice_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice").
			Mark(ierr.ErrDatabase)
	}

	if err := r.loadItems(ctx, &i); err != nil {
		return nil, err
	}

	return &i, nil
}

func (r *invoiceRepository) ListByAccount(ctx context.Context, accountID string) ([]*invoice.Invoice, error) {
	query := `
	SELECT
		id, tenant_id, invoice_number, account_id, payment_status,
		status, created_at, updated_at, created_by, updated_by
	FROM invoices
	WHERE account_id = $1 AND status != $2
	ORDER BY created_at DESC
	`

	var invoices []*invoice.Invoice
	err := r.db.Querier(ctx).SelectContext(ctx, &invoices, query, accountID, types.StatusDeleted)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list invoices").
			Mark(ierr.ErrDatabase)
	}

	for _, i := range invoices {
		if err := r.loadItems(ctx, i); err != nil {
			return nil, err
		}
	}

	return invoices, nil
}

func (r *invoiceRepository) loadItems(ctx context.Context, i *invoice.Invoice) error {
	query := `
	SELECT
		id, tenant_id, invoice_id, subscription_id, product_id, quantity, amount,
		status, created_at, updated_at, created_by, updated_by
	FROM invoice_items
	WHERE invoice_id = $1
	ORDER BY created_at ASC
	`

	err := r.db.Querier(ctx).SelectContext(ctx, &i.Items, query, i.ID)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to load invoice items").
			Mark(ierr.ErrDatabase)
	}

	return nil
}
