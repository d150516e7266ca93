package subscription

import (
	"time"

	"github.com/raulodev/bill-flow/internal/types"
)

type Subscription struct {
	// ID is the unique identifier for the subscription
	ID string `db:"id" json:"id"`

	// AccountID is the account this subscription bills against
	AccountID string `db:"account_id" json:"account_id"`

	// State is the lifecycle state of the subscription
	State types.SubscriptionState `db:"state" json:"state"`

	// BillingPeriod is the recurring interval between charges
	BillingPeriod types.BillingPeriod `db:"billing_period" json:"billing_period"`

	// TrialPeriodUnit is the unit of the trial duration, empty when the
	// subscription has no trial
	TrialPeriodUnit *types.TrialPeriodUnit `db:"trial_period_unit" json:"trial_period_unit,omitempty"`

	// TrialPeriod is the trial duration in TrialPeriodUnit units. Required
	// for every unit except UNLIMITED.
	TrialPeriod *int `db:"trial_period" json:"trial_period,omitempty"`

	// StartDate is the start date of the subscription
	StartDate time.Time `db:"start_date" json:"start_date"`

	// EndDate is the end date of the subscription, nil for open ended
	EndDate *time.Time `db:"end_date" json:"end_date,omitempty"`

	// BillingDay is the day-of-month anchor for recurring charges. Only set
	// for month anchored billing periods; computed once at creation time.
	BillingDay *int `db:"billing_day" json:"billing_day,omitempty"`

	// ChargedThroughDate is the last date successfully invoiced. Mutated
	// exclusively by the invoice generation engine.
	ChargedThroughDate *time.Time `db:"charged_through_date" json:"charged_through_date,omitempty"`

	// NextBillingDate is the date the next charge is due. Mutated
	// exclusively by the invoice generation engine.
	NextBillingDate *time.Time `db:"next_billing_date" json:"next_billing_date,omitempty"`

	// ResumeDate is the date a paused subscription resumes, if any
	ResumeDate *time.Time `db:"resume_date" json:"resume_date,omitempty"`

	ExternalID string `db:"external_id" json:"external_id,omitempty"`

	// Phases is the ordered list of trial/evergreen intervals
	Phases []*Phase `json:"phases,omitempty"`

	// Products is the set of subscribed products with quantities
	Products []*SubscribedProduct `json:"products,omitempty"`

	types.BaseModel
}

func (s *Subscription) TableName() string {
	return "subscriptions"
}

// SubscribedProduct links a product and a quantity to a subscription
type SubscribedProduct struct {
	ID             string `db:"id" json:"id"`
	SubscriptionID string `db:"subscription_id" json:"subscription_id"`
	ProductID      string `db:"product_id" json:"product_id"`
	Quantity       int    `db:"quantity" json:"quantity"`

	types.BaseModel
}

func (p *SubscribedProduct) TableName() string {
	return "subscription_products"
}

// IsEligibleForBilling reports whether the subscription is due for invoicing
// on refDate. All conditions must hold:
//   - an EVERGREEN phase has started on or before refDate
//   - lifecycle state is ACTIVE
//   - end date is unset or strictly after refDate
//   - charged through date is unset or strictly before refDate
//   - next billing date is unset or exactly refDate
//
// The charged-through check is what makes invoice generation idempotent for a
// given reference date. Requires Phases to be loaded.
func (s *Subscription) IsEligibleForBilling(refDate time.Time) bool {
	refDate = types.ToDate(refDate)

	inEvergreen := false
	for _, phase := range s.Phases {
		if phase.PhaseType == types.PhaseTypeEvergreen && !types.ToDate(phase.StartDate).After(refDate) {
			inEvergreen = true
			break
		}
	}
	if !inEvergreen {
		return false
	}

	if s.State != types.SubscriptionStateActive {
		return false
	}

	if s.EndDate != nil && !types.ToDate(*s.EndDate).After(refDate) {
		return false
	}

	if s.ChargedThroughDate != nil && !types.ToDate(*s.ChargedThroughDate).Before(refDate) {
		return false
	}

	if s.NextBillingDate != nil && !types.ToDate(*s.NextBillingDate).Equal(refDate) {
		return false
	}

	return true
}
