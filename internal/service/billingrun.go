package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/raulodev/bill-flow/internal/api/dto"
	"github.com/raulodev/bill-flow/internal/domain/subscription"
	"github.com/raulodev/bill-flow/internal/types"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
)

// BillingRunService runs the daily batch: select due subscriptions, group
// them by account and generate one invoice per account. Each account group is
// handled by exactly one worker, which is what guarantees at most one
// in-flight generation per account.
type BillingRunService interface {
	// GenerateInvoices bills every account with due subscriptions on
	// refDate. One account's failure never blocks the others.
	GenerateInvoices(ctx context.Context, refDate time.Time) (*dto.BillingRunResponse, error)

	// GenerateSubscriptionInvoice bills a single subscription if it is due
	// on refDate. Used for targeted, out-of-cycle runs.
	GenerateSubscriptionInvoice(ctx context.Context, refDate time.Time, subscriptionID string) (*dto.InvoiceResponse, error)
}

type billingRunService struct {
	ServiceParams
	invoiceService InvoiceService
}

// NewBillingRunService creates a new instance of BillingRunService
func NewBillingRunService(params ServiceParams, invoiceService InvoiceService) BillingRunService {
	return &billingRunService{
		ServiceParams:  params,
		invoiceService: invoiceService,
	}
}

func (s *billingRunService) GenerateInvoices(ctx context.Context, refDate time.Time) (*dto.BillingRunResponse, error) {
	refDate = types.ToDate(refDate)

	subs, err := s.invoiceService.EligibleSubscriptions(ctx, refDate, nil)
	if err != nil {
		return nil, err
	}

	groups := lo.GroupBy(subs, func(sub *subscription.Subscription) string {
		return sub.AccountID
	})

	s.Logger.Infow("starting billing run",
		"reference_date", refDate,
		"subscriptions", len(subs),
		"accounts", len(groups),
	)

	var invoicesCreated, accountsFailed int64

	p := pool.New().WithMaxGoroutines(s.Config.Billing.MaxWorkers)
	for accountID, group := range groups {
		subscriptionIDs := lo.Map(group, func(sub *subscription.Subscription, _ int) string {
			return sub.ID
		})

		p.Go(func() {
			// Eligibility was established by the selection query above, so
			// the per subscription re-check is skipped for throughput.
			_, err := s.invoiceService.CreateInvoice(ctx, &dto.CreateInvoiceRequest{
				AccountID:       accountID,
				SubscriptionIDs: subscriptionIDs,
				ReferenceDate:   refDate,
				SkipValidation:  true,
			})
			if err != nil {
				atomic.AddInt64(&accountsFailed, 1)
				s.Logger.Errorw("billing run failed for account",
					"account_id", accountID,
					"error", err,
				)
				return
			}
			atomic.AddInt64(&invoicesCreated, 1)
		})
	}
	p.Wait()

	response := &dto.BillingRunResponse{
		ReferenceDate:     refDate,
		AccountsProcessed: len(groups),
		InvoicesCreated:   int(invoicesCreated),
		AccountsFailed:    int(accountsFailed),
	}

	s.Logger.Infow("finished billing run",
		"reference_date", refDate,
		"accounts_processed", response.AccountsProcessed,
		"invoices_created", response.InvoicesCreated,
		"accounts_failed", response.AccountsFailed,
	)

	return response, nil
}

func (s *billingRunService) GenerateSubscriptionInvoice(ctx context.Context, refDate time.Time, subscriptionID string) (*dto.InvoiceResponse, error) {
	refDate = types.ToDate(refDate)

	subs, err := s.SubRepo.ListEligible(ctx, &types.EligibilityFilter{
		ReferenceDate:  refDate,
		SubscriptionID: lo.ToPtr(subscriptionID),
	})
	if err != nil {
		return nil, err
	}

	if len(subs) == 0 {
		s.Logger.Warnw("subscription is not valid for invoice",
			"subscription_id", subscriptionID,
			"reference_date", refDate,
		)
		return nil, nil
	}

	return s.invoiceService.CreateInvoice(ctx, &dto.CreateInvoiceRequest{
		AccountID:       subs[0].AccountID,
		SubscriptionIDs: []string{subscriptionID},
		ReferenceDate:   refDate,
		SkipValidation:  true,
	})
}
