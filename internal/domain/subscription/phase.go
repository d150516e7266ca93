package subscription

import (
	"time"

	"github.com/raulodev/bill-flow/internal/types"
	"github.com/samber/lo"
)

// Phase is a half-open dated interval of a subscription's life. Phases of one
// subscription are contiguous, non overlapping and ordered by start date: at
// most one TRIAL phase followed by at most one EVERGREEN phase.
type Phase struct {
	ID             string          `db:"id" json:"id"`
	SubscriptionID string          `db:"subscription_id" json:"subscription_id"`
	PhaseType      types.PhaseType `db:"phase_type" json:"phase_type"`
	StartDate      time.Time       `db:"start_date" json:"start_date"`
	EndDate        *time.Time      `db:"end_date" json:"end_date,omitempty"`

	types.BaseModel
}

func (p *Phase) TableName() string {
	return "subscription_phases"
}

// PlanPhases computes the phase sequence and billing day for a subscription
// at creation time. It is a pure function over the subscription's start date,
// end date, billing period and trial configuration; the caller must reject
// malformed trial configurations (a finite unit without a duration) before
// calling.
//
// Rules, in precedence order:
//  1. UNLIMITED trial: one TRIAL phase covering the whole subscription, no
//     billing day (there is no evergreen phase to anchor).
//  2. Finite trial unit: a TRIAL phase up to start+duration (clamped to the
//     subscription end date when that comes first) and, when any life remains
//     past the trial, an EVERGREEN phase starting the day after; the billing
//     day anchors on the evergreen start.
//  3. No trial: a single EVERGREEN phase; the billing day anchors on the
//     subscription start.
func PlanPhases(trialUnit types.TrialPeriodUnit, trialDuration int, sub *Subscription) ([]*Phase, *int, error) {
	var phases []*Phase
	var billingDay *int

	switch {
	case trialUnit == types.TRIAL_PERIOD_UNIT_UNLIMITED:
		phases = append(phases, &Phase{
			PhaseType: types.PhaseTypeTrial,
			StartDate: sub.StartDate,
			EndDate:   sub.EndDate,
		})

	case trialUnit != "":
		trialEnd, err := types.AddTrialPeriod(sub.StartDate, trialUnit, trialDuration)
		if err != nil {
			return nil, nil, err
		}

		if sub.EndDate != nil && sub.EndDate.Before(trialEnd) {
			trialEnd = *sub.EndDate
		}

		phases = append(phases, &Phase{
			PhaseType: types.PhaseTypeTrial,
			StartDate: sub.StartDate,
			EndDate:   lo.ToPtr(trialEnd),
		})

		evergreenStart := trialEnd.AddDate(0, 0, 1)

		if sub.EndDate == nil || sub.EndDate.After(evergreenStart) {
			phases = append(phases, &Phase{
				PhaseType: types.PhaseTypeEvergreen,
				StartDate: evergreenStart,
				EndDate:   sub.EndDate,
			})
			billingDay = types.ResolveBillingDay(sub.BillingPeriod, evergreenStart.Day())
		}

	default:
		phases = append(phases, &Phase{
			PhaseType: types.PhaseTypeEvergreen,
			StartDate: sub.StartDate,
			EndDate:   sub.EndDate,
		})
		billingDay = types.ResolveBillingDay(sub.BillingPeriod, sub.StartDate.Day())
	}

	return phases, billingDay, nil
}
