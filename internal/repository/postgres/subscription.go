package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/raulodev/bill-flow/internal/domain/subscription"
	ierr "github.com/raulodev/bill-flow/internal/errors"
	"github.com/raulodev/bill-flow/internal/logger"
	"github.com/raulodev/bill-flow/internal/postgres"
	"github.com/raulodev/bill-flow/internal/types"
)

type subscriptionRepository struct {
	db     postgres.IClient
	logger *logger.Logger
}

func NewSubscriptionRepository(db postgres.IClient, logger *logger.Logger) subscription.Repository {
	return &subscriptionRepository{db: db, logger: logger}
}

const subscriptionColumns = `
	id, tenant_id, account_id, state, billing_period, trial_period_unit,
	trial_period, start_date, end_date, billing_day, charged_through_date,
	next_billing_date, resume_date, external_id,
	status, created_at, updated_at, created_by, updated_by
`

func (r *subscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) error {
	query := `
	INSERT INTO subscriptions (` + subscriptionColumns + `
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		$15, $16, $17, $18, $19
	)
	`

	_, err := r.db.Querier(ctx).ExecContext(ctx, query,
		s.ID,
		s.TenantID,
		s.AccountID,
		s.State,
		s.BillingPeriod,
		s.TrialPeriodUnit,
		s.TrialPeriod,
		s.StartDate,
		s.EndDate,
		s.BillingDay,
		s.ChargedThroughDate,
		s.NextBillingDate,
		s.ResumeDate,
		s.ExternalID,
		s.Status,
		s.CreatedAt,
		s.UpdatedAt,
		s.CreatedBy,
		s.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create subscription").
			Mark(ierr.ErrDatabase)
	}

	for _, phase := range s.Phases {
		if err := r.createPhase(ctx, phase); err != nil {
			return err
		}
	}

	for _, sp := range s.Products {
		if err := r.createSubscribedProduct(ctx, sp); err != nil {
			return err
		}
	}

	return nil
}

func (r *subscriptionRepository) createPhase(ctx context.Context, p *subscription.Phase) error {
	query := `
	INSERT INTO subscription_phases (
		id, tenant_id, subscription_id, phase_type, start_date, end_date,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
	)
	`

	_, err := r.db.Querier(ctx).ExecContext(ctx, query,
		p.ID,
		p.TenantID,
		p.SubscriptionID,
		p.PhaseType,
		p.StartDate,
		p.EndDate,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
		p.CreatedBy,
		p.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create subscription phase").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *subscriptionRepository) createSubscribedProduct(ctx context.Context, sp *subscription.SubscribedProduct) error {
	query := `
	INSERT INTO subscription_products (
		id, tenant_id, subscription_id, product_id, quantity,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
	)
	`

	_, err := r.db.Querier(ctx).ExecContext(ctx, query,
		sp.ID,
		sp.TenantID,
		sp.SubscriptionID,
		sp.ProductID,
		sp.Quantity,
		sp.Status,
		sp.CreatedAt,
		sp.UpdatedAt,
		sp.CreatedBy,
		sp.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create subscribed product").
			Mark(ierr.ErrDatabase)
	}

	return nil
}

func (r *subscriptionRepository) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	query := `
	SELECT ` + subscriptionColumns + `
	FROM subscriptions
	WHERE id = $1 AND status != $2
	`

	var s subscription.Subscription
	err := r.db.Querier(ctx).GetContext(ctx, &s, query, id, types.StatusDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("subscription not found").
				WithHint("Subscription not found").
				WithReportableDetails(map[string]any{
					"subscription_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get subscription").
			Mark(ierr.ErrDatabase)
	}

	if err := r.loadRelations(ctx, []*subscription.Subscription{&s}); err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *subscriptionRepository) List(ctx context.Context, f *types.SubscriptionFilter) ([]*subscription.Subscription, error) {
	query := `
	SELECT ` + subscriptionColumns + `
	FROM subscriptions
	WHERE status != $1
	`
	args := []interface{}{types.StatusDeleted}

	if f.State != nil {
		args = append(args, *f.State)
		query += fmt.Sprintf(" AND state = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	var subs []*subscription.Subscription
	err := r.db.Querier(ctx).SelectContext(ctx, &subs, query, args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list subscriptions").
			Mark(ierr.ErrDatabase)
	}

	if err := r.loadRelations(ctx, subs); err != nil {
		return nil, err
	}

	return subs, nil
}

func (r *subscriptionRepository) ListByAccountAndIDs(ctx context.Context, accountID string, ids []string) ([]*subscription.Subscription, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
	SELECT `+subscriptionColumns+`
	FROM subscriptions
	WHERE account_id = ? AND id IN (?) AND status != ?
	`, accountID, ids, types.StatusDeleted)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to build subscription query").
			Mark(ierr.ErrDatabase)
	}

	querier := r.db.Querier(ctx)
	query = querier.Rebind(query)

	var subs []*subscription.Subscription
	if err := querier.SelectContext(ctx, &subs, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list subscriptions").
			Mark(ierr.ErrDatabase)
	}

	if err := r.loadRelations(ctx, subs); err != nil {
		return nil, err
	}

	return subs, nil
}

// ListEligible selects the subscriptions due for billing on the filter's
// reference date. The predicate mirrors
// subscription.(*Subscription).IsEligibleForBilling.
func (r *subscriptionRepository) ListEligible(ctx context.Context, f *types.EligibilityFilter) ([]*subscription.Subscription, error) {
	query := `
	SELECT DISTINCT ` + prefixColumns("s", subscriptionColumns) + `
	FROM subscriptions s
	JOIN subscription_phases p ON p.subscription_id = s.id
	WHERE p.phase_type = $1
	  AND p.start_date <= $2
	  AND s.state = $3
	  AND (s.end_date IS NULL OR s.end_date > $2)
	  AND (s.charged_through_date IS NULL OR s.charged_through_date < $2)
	  AND (s.next_billing_date IS NULL OR s.next_billing_date = $2)
	  AND s.status != $4
	`
	args := []interface{}{
		types.PhaseTypeEvergreen,
		f.ReferenceDate,
		types.SubscriptionStateActive,
		types.StatusDeleted,
	}

	if f.AccountID != nil {
		args = append(args, *f.AccountID)
		query += fmt.Sprintf(" AND s.account_id = $%d", len(args))
	}
	if f.SubscriptionID != nil {
		args = append(args, *f.SubscriptionID)
		query += fmt.Sprintf(" AND s.id = $%d", len(args))
	}

	var subs []*subscription.Subscription
	err := r.db.Querier(ctx).SelectContext(ctx, &subs, query, args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to select eligible subscriptions").
			Mark(ierr.ErrDatabase)
	}

	if err := r.loadRelations(ctx, subs); err != nil {
		return nil, err
	}

	return subs, nil
}

func (r *subscriptionRepository) Update(ctx context.Context, s *subscription.Subscription) error {
	query := `
	UPDATE subscriptions
	SET state = $2, end_date = $3, billing_day = $4, charged_through_date = $5,
		next_billing_date = $6, resume_date = $7, updated_at = $8, updated_by = $9
	WHERE id = $1 AND status != $10
	`

	s.UpdatedAt = time.Now().UTC()
	s.UpdatedBy = types.GetUserID(ctx)

	result, err := r.db.Querier(ctx).ExecContext(ctx, query,
		s.ID,
		s.State,
		s.EndDate,
		s.BillingDay,
		s.ChargedThroughDate,
		s.NextBillingDate,
		s.ResumeDate,
		s.UpdatedAt,
		s.UpdatedBy,
		types.StatusDeleted,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update subscription").
			Mark(ierr.ErrDatabase)
	}

	return requireRowsAffected(result, "subscription", s.ID)
}

// loadRelations populates phases and subscribed products for the given
// subscriptions in two queries.
func (r *subscriptionRepository) loadRelations(ctx context.Context, subs []*subscription.Subscription) error {
	if len(subs) == 0 {
		return nil
	}

	byID := make(map[string]*subscription.Subscription, len(subs))
	ids := make([]string, 0, len(subs))
	for _, s := range subs {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}

	querier := r.db.Querier(ctx)

	phaseQuery, args, err := sqlx.In(`
	SELECT id, tenant_id, subscription_id, phase_type, start_date, end_date,
		status, created_at, updated_at, created_by, updated_by
	FROM subscription_phases
	WHERE subscription_id IN (?)
	ORDER BY start_date ASC
	`, ids)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to build phase query").
			Mark(ierr.ErrDatabase)
	}

	var phases []*subscription.Phase
	if err := querier.SelectContext(ctx, &phases, querier.Rebind(phaseQuery), args...); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to load subscription phases").
			Mark(ierr.ErrDatabase)
	}
	for _, phase := range phases {
		if s, ok := byID[phase.SubscriptionID]; ok {
			s.Phases = append(s.Phases, phase)
		}
	}

	productQuery, args, err := sqlx.In(`
	SELECT id, tenant_id, subscription_id, product_id, quantity,
		status, created_at, updated_at, created_by, updated_by
	FROM subscription_products
	WHERE subscription_id IN (?)
	`, ids)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to build subscribed product query").
			Mark(ierr.ErrDatabase)
	}

	var products []*subscription.SubscribedProduct
	if err := querier.SelectContext(ctx, &products, querier.Rebind(productQuery), args...); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to load subscribed products").
			Mark(ierr.ErrDatabase)
	}
	for _, sp := range products {
		if s, ok := byID[sp.SubscriptionID]; ok {
			s.Products = append(s.Products, sp)
		}
	}

	return nil
}
