package types

import (
	ierr "github.com/raulodev/bill-flow/internal/errors"
)

// SubscriptionState is the lifecycle state of a subscription
type SubscriptionState string

const (
	SubscriptionStateActive    SubscriptionState = "ACTIVE"
	SubscriptionStatePaused    SubscriptionState = "PAUSED"
	SubscriptionStateCancelled SubscriptionState = "CANCELLED"
)

// PhaseType tags a dated interval of a subscription's life.
// TRIAL phases are never charged; EVERGREEN phases are billable.
type PhaseType string

const (
	PhaseTypeTrial     PhaseType = "TRIAL"
	PhaseTypeEvergreen PhaseType = "EVERGREEN"
)

// TrialPeriodUnit is the unit of a subscription's trial duration.
// UNLIMITED means the subscription stays in trial until its end date.
type TrialPeriodUnit string

const (
	TRIAL_PERIOD_UNIT_UNLIMITED TrialPeriodUnit = "UNLIMITED"
	TRIAL_PERIOD_UNIT_DAYS      TrialPeriodUnit = "DAYS"
	TRIAL_PERIOD_UNIT_WEEKS     TrialPeriodUnit = "WEEKS"
	TRIAL_PERIOD_UNIT_MONTHS    TrialPeriodUnit = "MONTHS"
	TRIAL_PERIOD_UNIT_YEARS     TrialPeriodUnit = "YEARS"
)

func (u TrialPeriodUnit) Validate() error {
	switch u {
	case TRIAL_PERIOD_UNIT_UNLIMITED, TRIAL_PERIOD_UNIT_DAYS, TRIAL_PERIOD_UNIT_WEEKS,
		TRIAL_PERIOD_UNIT_MONTHS, TRIAL_PERIOD_UNIT_YEARS:
		return nil
	default:
		return ierr.NewError("invalid trial period unit").
			WithHint("Trial period unit is not one of the supported values").
			WithReportableDetails(map[string]any{
				"trial_period_unit": u,
			}).
			Mark(ierr.ErrValidation)
	}
}
