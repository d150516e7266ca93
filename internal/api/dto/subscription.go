package dto

import (
	"time"

	"github.com/raulodev/bill-flow/internal/domain/subscription"
	ierr "github.com/raulodev/bill-flow/internal/errors"
	"github.com/raulodev/bill-flow/internal/types"
	"github.com/raulodev/bill-flow/internal/validator"
)

type CreateSubscriptionRequest struct {
	AccountID       string                     `json:"account_id" validate:"required"`
	BillingPeriod   types.BillingPeriod        `json:"billing_period" validate:"required"`
	TrialPeriodUnit *types.TrialPeriodUnit     `json:"trial_period_unit,omitempty"`
	TrialPeriod     *int                       `json:"trial_period,omitempty" validate:"omitempty,gte=1"`
	StartDate       time.Time                  `json:"start_date" validate:"required"`
	EndDate         *time.Time                 `json:"end_date,omitempty"`
	ExternalID      string                     `json:"external_id,omitempty"`
	Products        []SubscribedProductRequest `json:"products" validate:"required,min=1,dive"`
}

type SubscribedProductRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

func (r *CreateSubscriptionRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if err := r.BillingPeriod.Validate(); err != nil {
		return err
	}

	if r.TrialPeriodUnit != nil {
		if err := r.TrialPeriodUnit.Validate(); err != nil {
			return err
		}
		if *r.TrialPeriodUnit != types.TRIAL_PERIOD_UNIT_UNLIMITED && r.TrialPeriod == nil {
			return ierr.NewError("trial_period is required if trial_period_unit is provided").
				WithHint("Provide a trial duration or use an UNLIMITED trial").
				Mark(ierr.ErrValidation)
		}
	}

	if r.EndDate != nil && !r.EndDate.After(r.StartDate) {
		return ierr.NewError("end_date must be after start_date").
			WithHint("End date must be after the start date").
			Mark(ierr.ErrValidation)
	}

	seen := make(map[string]bool, len(r.Products))
	for _, p := range r.Products {
		if seen[p.ProductID] {
			return ierr.NewError("a product cannot be repeated in the same subscription").
				WithHint("A product cannot be repeated in the same subscription").
				WithReportableDetails(map[string]any{
					"product_id": p.ProductID,
				}).
				Mark(ierr.ErrValidation)
		}
		seen[p.ProductID] = true
	}

	return nil
}

type CancelSubscriptionRequest struct {
	// EndDate nil or equal to ReferenceDate cancels immediately; a future
	// EndDate keeps the subscription active until then.
	EndDate       *time.Time `json:"end_date,omitempty"`
	ReferenceDate time.Time  `json:"reference_date" validate:"required"`
}

func (r *CancelSubscriptionRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.EndDate != nil && r.EndDate.Before(types.ToDate(r.ReferenceDate)) {
		return ierr.NewError("end_date cannot be in the past").
			WithHint("End date cannot be before the reference date").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type PauseSubscriptionRequest struct {
	// ResumeDate nil or in the future pauses the subscription
	ResumeDate    *time.Time `json:"resume_date,omitempty"`
	ReferenceDate time.Time  `json:"reference_date" validate:"required"`
}

func (r *PauseSubscriptionRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.ResumeDate != nil && r.ResumeDate.Before(types.ToDate(r.ReferenceDate)) {
		return ierr.NewError("resume_date cannot be in the past").
			WithHint("Resume date cannot be before the reference date").
			Mark(ierr.ErrValidation)
	}
	return nil
}

type UpdateBillingDayRequest struct {
	BillingDay int `json:"billing_day" validate:"required,gte=1,lte=31"`
}

func (r *UpdateBillingDayRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type SubscriptionResponse struct {
	*subscription.Subscription
}
