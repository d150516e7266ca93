package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/raulodev/bill-flow/internal/domain/product"
	ierr "github.com/raulodev/bill-flow/internal/errors"
	"github.com/raulodev/bill-flow/internal/logger"
	"github.com/raulodev/bill-flow/internal/postgres"
	"github.com/raulodev/bill-flow/internal/types"
)

type productRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewProductRepository(db postgres.IClient, logger *logger.Logger) product.Repository {
	return &productRepository{db: db, logger: logger}
}

func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	query := `
	INSERT INTO products (
		id, tenant_id, name, price, is_available, external_id,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
	)
	`

	_, err := r.db.Querier(ctx).ExecContext(ctx, query,
		p.ID,
		p.TenantID,
		p.Name,
		p.Price,
		p.IsAvailable,
		p.ExternalID,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
		p.CreatedBy,
		p.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create product").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *productRepository) Get(ctx context.Context, id string) (*product.Product, error) {
	query := `
	SELECT
		id, tenant_id, name, price, is_available, external_id,
		status, created_at, updated_at, created_by, updated_by
	FROM products
	WHERE id = $1 AND status != $2
	`

	var p product.Product
	err := r.db.Querier(ctx).GetContext(ctx, &p, query, id, types.StatusDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("product not found").
				WithHint("Product not found").
				WithReportableDetails(map[string]any{
					"product_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get product").
			Mark(ierr.ErrDatabase)
	}

	return &p, nil
}

func (r *productRepository) List(ctx context.Context) ([]*product.Product, error) {
	query := `
	SELECT
		id, tenant_id, name, price, is_available, external_id,
		status, created_at, updated_at, created_by, updated_by
	FROM products
	WHERE status != $1
	ORDER BY created_at DESC
	`

	var products []*product.Product
	err := r.db.Querier(ctx).SelectContext(ctx, &products, query, types.StatusDeleted)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list products").
			Mark(ierr.ErrDatabase)
	}

	return products, nil
}

func (r *productRepository) Update(ctx context.Context, p *product.Product) error {
	query := `
	UPDATE products
	SET name = $2, price = $3, is_available = $4, updated_at = $5, updated_by = $6
	WHERE id = $1 AND status != $7
	`

	p.UpdatedAt = time.Now().UTC()
	p.UpdatedBy = types.GetUserID(ctx)

	result, err := r.db.Querier(ctx).ExecContext(ctx, query,
		p.ID, p.Name, p.Price, p.IsAvailable, p.UpdatedAt, p.UpdatedBy, types.StatusDeleted,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update product").
			Mark(ierr.ErrDatabase)
	}

	return requireRowsAffected(result, "product", p.ID)
}
