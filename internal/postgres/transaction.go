package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	ierr "github.com/raulodev/bill-flow/internal/errors"
	"github.com/raulodev/bill-flow/internal/types"
)

// Querier returns the transaction carried by the context if present,
// otherwise the underlying connection pool.
func (c *Client) Querier(ctx context.Context) Querier {
	if tx, ok := ctx.Value(types.CtxDBTransaction).(*sqlx.Tx); ok {
		return tx
	}
	return c.db
}

// WithTx runs fn inside a database transaction. The transaction is carried by
// the context so every repository call inside fn joins it. Nested calls reuse
// the outer transaction.
func (c *Client) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(types.CtxDBTransaction).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to begin transaction").
			Mark(ierr.ErrDatabase)
	}

	txCtx := context.WithValue(ctx, types.CtxDBTransaction, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			c.logger.Errorw("failed to rollback transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to commit transaction").
			Mark(ierr.ErrDatabase)
	}

	return nil
}
