package service

import (
	"context"
	"time"

	"github.com/raulodev/bill-flow/internal/api/dto"
	"github.com/raulodev/bill-flow/internal/domain/invoice"
	"github.com/raulodev/bill-flow/internal/domain/subscription"
	ierr "github.com/raulodev/bill-flow/internal/errors"
	"github.com/raulodev/bill-flow/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InvoiceService is the invoice generation engine together with its
// eligibility filter. All operations take an explicit reference date; the
// engine never reads the wall clock.
type InvoiceService interface {
	// CreateInvoice materializes one invoice for the account with one line
	// item per subscribed product of each billed subscription, advances each
	// subscription's billing cursor and books the total against the
	// account's credit balance, all in one transaction.
	//
	// Callers must not run two invoice generations for the same account
	// concurrently; the engine performs no locking beyond the atomicity of
	// its own commit.
	CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)

	// EligibleSubscriptions returns the subscriptions due for billing on
	// refDate, optionally scoped to one account.
	EligibleSubscriptions(ctx context.Context, refDate time.Time, accountID *string) ([]*subscription.Subscription, error)

	// IsEligible applies the same predicate to a single subscription. An
	// unknown subscription id is simply not eligible, not an error.
	IsEligible(ctx context.Context, refDate time.Time, subscriptionID string) (bool, error)

	// GetInvoice returns an invoice with its line items
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
}

type invoiceService struct {
	ServiceParams
}

// NewInvoiceService creates a new instance of InvoiceService
func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{ServiceParams: params}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	refDate := types.ToDate(req.ReferenceDate)

	s.Logger.Infow("creating invoice",
		"account_id", req.AccountID,
		"subscription_ids", req.SubscriptionIDs,
		"reference_date", refDate,
	)

	// The one hard failure path: an unknown account aborts before anything
	// is written.
	account, err := s.AccountRepo.Get(ctx, req.AccountID)
	if err != nil {
		s.Logger.Warnw("invoice aborted, account not found",
			"account_id", req.AccountID,
		)
		return nil, err
	}

	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		InvoiceNumber: types.GenerateInvoiceNumber(),
		AccountID:     account.ID,
		PaymentStatus: types.InvoicePaymentStatusPending,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		// Ids outside the account's subscription set are dropped here, never
		// charged.
		subs, err := s.SubRepo.ListByAccountAndIDs(ctx, account.ID, req.SubscriptionIDs)
		if err != nil {
			return err
		}

		// Invoice row first so items have an id to attach to
		if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
			return err
		}

		totalAmount := decimal.Zero

		for _, sub := range subs {
			if !req.SkipValidation {
				eligible, err := s.IsEligible(ctx, refDate, sub.ID)
				if err != nil {
					return err
				}
				if !eligible {
					s.Logger.Warnw("subscription is not valid for invoice, skipping",
						"subscription_id", sub.ID,
						"account_id", account.ID,
						"reference_date", refDate,
					)
					continue
				}
			}

			items, subTotal, err := s.buildLineItems(ctx, inv, sub)
			if err != nil {
				return err
			}

			if err := s.InvoiceRepo.AddItems(ctx, inv.ID, items); err != nil {
				return err
			}
			inv.Items = append(inv.Items, items...)
			totalAmount = totalAmount.Add(subTotal)

			if err := s.advanceBillingCursor(ctx, sub, refDate); err != nil {
				return err
			}
		}

		if account.Credit.IsNegative() {
			s.Logger.Warnw("account has insufficient credit",
				"account_id", account.ID,
				"credit", account.Credit,
			)
		}

		return s.AccountRepo.AdjustCredit(ctx, account.ID, totalAmount.Neg())
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"account_id", account.ID,
		"items", len(inv.Items),
		"total", inv.Total(),
	)

	return dto.NewInvoiceResponse(inv), nil
}

// buildLineItems produces one item per subscribed product. Products that are
// currently unavailable are still itemized, at amount zero.
func (s *invoiceService) buildLineItems(ctx context.Context, inv *invoice.Invoice, sub *subscription.Subscription) ([]*invoice.Item, decimal.Decimal, error) {
	items := make([]*invoice.Item, 0, len(sub.Products))
	total := decimal.Zero

	for _, sp := range sub.Products {
		product, err := s.ProductRepo.Get(ctx, sp.ProductID)
		if err != nil {
			return nil, decimal.Zero, err
		}

		amount := decimal.Zero
		if product.IsAvailable {
			amount = product.Price.Mul(decimal.NewFromInt(int64(sp.Quantity)))
		}

		items = append(items, &invoice.Item{
			ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_ITEM),
			InvoiceID:      inv.ID,
			SubscriptionID: sub.ID,
			ProductID:      sp.ProductID,
			Quantity:       sp.Quantity,
			Amount:         amount,
			BaseModel:      inv.BaseModel,
		})
		total = total.Add(amount)
	}

	return items, total, nil
}

// advanceBillingCursor marks the subscription charged through refDate and
// schedules the next charge one billing period later.
func (s *invoiceService) advanceBillingCursor(ctx context.Context, sub *subscription.Subscription, refDate time.Time) error {
	nextBillingDate, err := types.NextBillingDate(refDate, sub.BillingPeriod)
	if err != nil {
		// Unreachable with a validated subscription; a corrupted period is a
		// defect, not a recoverable condition.
		return ierr.WithError(err).
			WithHint("Subscription has an unrecognized billing period").
			WithReportableDetails(map[string]any{
				"subscription_id": sub.ID,
				"billing_period":  sub.BillingPeriod,
			}).
			Mark(ierr.ErrSystem)
	}

	sub.ChargedThroughDate = lo.ToPtr(refDate)
	sub.NextBillingDate = lo.ToPtr(nextBillingDate)

	if err := s.SubRepo.Update(ctx, sub); err != nil {
		return err
	}

	s.Logger.Infow("advanced billing cursor",
		"subscription_id", sub.ID,
		"charged_through_date", sub.ChargedThroughDate,
		"next_billing_date", sub.NextBillingDate,
	)

	return nil
}

func (s *invoiceService) EligibleSubscriptions(ctx context.Context, refDate time.Time, accountID *string) ([]*subscription.Subscription, error) {
	subs, err := s.SubRepo.ListEligible(ctx, &types.EligibilityFilter{
		ReferenceDate: types.ToDate(refDate),
		AccountID:     accountID,
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Debugw("selected eligible subscriptions",
		"reference_date", refDate,
		"count", len(subs),
	)

	return subs, nil
}

func (s *invoiceService) IsEligible(ctx context.Context, refDate time.Time, subscriptionID string) (bool, error) {
	subs, err := s.SubRepo.ListEligible(ctx, &types.EligibilityFilter{
		ReferenceDate:  types.ToDate(refDate),
		SubscriptionID: lo.ToPtr(subscriptionID),
	})
	if err != nil {
		return false, err
	}
	return len(subs) > 0, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv), nil
}
