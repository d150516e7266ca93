package service

import (
	"context"

	"github.com/raulodev/bill-flow/internal/api/dto"
	"github.com/raulodev/bill-flow/internal/domain/subscription"
	ierr "github.com/raulodev/bill-flow/internal/errors"
	"github.com/raulodev/bill-flow/internal/types"
	"github.com/samber/lo"
)

// SubscriptionService defines the interface for subscription operations
type SubscriptionService interface {
	// CreateSubscription creates a subscription with its phases and products
	// in one transaction. Phases and the billing day are computed once here
	// and never recomputed afterward.
	CreateSubscription(ctx context.Context, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error)

	GetSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error)

	ListSubscriptions(ctx context.Context, f *types.SubscriptionFilter) ([]*dto.SubscriptionResponse, error)

	// CancelSubscription ends a subscription. Without an end date (or with an
	// end date equal to the reference date) the state flips to CANCELLED
	// immediately; a future end date leaves it ACTIVE until then.
	CancelSubscription(ctx context.Context, id string, req *dto.CancelSubscriptionRequest) (*dto.SubscriptionResponse, error)

	// PauseSubscription pauses a subscription, optionally until a resume date
	PauseSubscription(ctx context.Context, id string, req *dto.PauseSubscriptionRequest) (*dto.SubscriptionResponse, error)

	// UpdateBillingDay overrides the month anchor day for recurring charges
	UpdateBillingDay(ctx context.Context, id string, req *dto.UpdateBillingDayRequest) (*dto.SubscriptionResponse, error)
}

type subscriptionService struct {
	ServiceParams
}

// NewSubscriptionService creates a new instance of SubscriptionService
func NewSubscriptionService(params ServiceParams) SubscriptionService {
	return &subscriptionService{ServiceParams: params}
}

func (s *subscriptionService) CreateSubscription(ctx context.Context, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.AccountRepo.Get(ctx, req.AccountID); err != nil {
		return nil, err
	}

	for _, p := range req.Products {
		if _, err := s.ProductRepo.Get(ctx, p.ProductID); err != nil {
			return nil, err
		}
	}

	sub := &subscription.Subscription{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		AccountID:       req.AccountID,
		State:           types.SubscriptionStateActive,
		BillingPeriod:   req.BillingPeriod,
		TrialPeriodUnit: req.TrialPeriodUnit,
		TrialPeriod:     req.TrialPeriod,
		StartDate:       types.ToDate(req.StartDate),
		ExternalID:      req.ExternalID,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
	if req.EndDate != nil {
		sub.EndDate = lo.ToPtr(types.ToDate(*req.EndDate))
	}

	trialUnit := lo.FromPtr(req.TrialPeriodUnit)
	trialDuration := lo.FromPtr(req.TrialPeriod)

	phases, billingDay, err := subscription.PlanPhases(trialUnit, trialDuration, sub)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to plan subscription phases").
			Mark(ierr.ErrSystem)
	}

	for _, phase := range phases {
		phase.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION_PHASE)
		phase.SubscriptionID = sub.ID
		phase.BaseModel = types.GetDefaultBaseModel(ctx)
	}
	sub.Phases = phases
	sub.BillingDay = billingDay

	for _, p := range req.Products {
		sub.Products = append(sub.Products, &subscription.SubscribedProduct{
			ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIBED_PRODUCT),
			SubscriptionID: sub.ID,
			ProductID:      p.ProductID,
			Quantity:       p.Quantity,
			BaseModel:      types.GetDefaultBaseModel(ctx),
		})
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		return s.SubRepo.Create(ctx, sub)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created subscription",
		"subscription_id", sub.ID,
		"account_id", sub.AccountID,
		"billing_period", sub.BillingPeriod,
		"phases", len(sub.Phases),
	)

	return &dto.SubscriptionResponse{Subscription: sub}, nil
}

func (s *subscriptionService) GetSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error) {
	sub, err := s.SubRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.SubscriptionResponse{Subscription: sub}, nil
}

func (s *subscriptionService) ListSubscriptions(ctx context.Context, f *types.SubscriptionFilter) ([]*dto.SubscriptionResponse, error) {
	if f == nil {
		f = &types.SubscriptionFilter{}
	}

	subs, err := s.SubRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	return lo.Map(subs, func(sub *subscription.Subscription, _ int) *dto.SubscriptionResponse {
		return &dto.SubscriptionResponse{Subscription: sub}
	}), nil
}

func (s *subscriptionService) CancelSubscription(ctx context.Context, id string, req *dto.CancelSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub, err := s.SubRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if sub.State == types.SubscriptionStateCancelled {
		return nil, ierr.NewError("the subscription is cancelled").
			WithHint("The subscription is already cancelled").
			Mark(ierr.ErrInvalidOperation)
	}

	refDate := types.ToDate(req.ReferenceDate)

	sub.State = types.SubscriptionStateActive
	if req.EndDate == nil || types.ToDate(*req.EndDate).Equal(refDate) {
		sub.State = types.SubscriptionStateCancelled
	}
	sub.EndDate = nil
	if req.EndDate != nil {
		sub.EndDate = lo.ToPtr(types.ToDate(*req.EndDate))
	}

	if err := s.SubRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	s.Logger.Infow("cancelled subscription",
		"subscription_id", sub.ID,
		"state", sub.State,
		"end_date", sub.EndDate,
	)

	return &dto.SubscriptionResponse{Subscription: sub}, nil
}

func (s *subscriptionService) PauseSubscription(ctx context.Context, id string, req *dto.PauseSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub, err := s.SubRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if sub.State == types.SubscriptionStateCancelled {
		return nil, ierr.NewError("the subscription is cancelled").
			WithHint("A cancelled subscription cannot be paused").
			Mark(ierr.ErrInvalidOperation)
	}

	refDate := types.ToDate(req.ReferenceDate)

	sub.State = types.SubscriptionStateActive
	if req.ResumeDate == nil || types.ToDate(*req.ResumeDate).After(refDate) {
		sub.State = types.SubscriptionStatePaused
	}
	sub.ResumeDate = nil
	if req.ResumeDate != nil {
		sub.ResumeDate = lo.ToPtr(types.ToDate(*req.ResumeDate))
	}

	if err := s.SubRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	s.Logger.Infow("paused subscription",
		"subscription_id", sub.ID,
		"state", sub.State,
		"resume_date", sub.ResumeDate,
	)

	return &dto.SubscriptionResponse{Subscription: sub}, nil
}

func (s *subscriptionService) UpdateBillingDay(ctx context.Context, id string, req *dto.UpdateBillingDayRequest) (*dto.SubscriptionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub, err := s.SubRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if sub.State == types.SubscriptionStateCancelled {
		return nil, ierr.NewError("the subscription is cancelled").
			WithHint("A cancelled subscription cannot be updated").
			Mark(ierr.ErrInvalidOperation)
	}

	sub.BillingDay = lo.ToPtr(req.BillingDay)

	if err := s.SubRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	return &dto.SubscriptionResponse{Subscription: sub}, nil
}
