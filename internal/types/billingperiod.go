package types

import (
	ierr "github.com/raulodev/bill-flow/internal/errors"
)

// BillingPeriod is the recurring interval of a subscription ex MONTHLY, ANNUAL, WEEKLY
type BillingPeriod string

const (
	BILLING_PERIOD_DAILY           BillingPeriod = "DAILY"
	BILLING_PERIOD_WEEKLY          BillingPeriod = "WEEKLY"
	BILLING_PERIOD_BIWEEKLY        BillingPeriod = "BIWEEKLY"
	BILLING_PERIOD_THIRTY_DAYS     BillingPeriod = "THIRTY_DAYS"
	BILLING_PERIOD_THIRTY_ONE_DAYS BillingPeriod = "THIRTY_ONE_DAYS"
	BILLING_PERIOD_MONTHLY         BillingPeriod = "MONTHLY"
	BILLING_PERIOD_QUARTERLY       BillingPeriod = "QUARTERLY"
	BILLING_PERIOD_BIANNUAL        BillingPeriod = "BIANNUAL"
	BILLING_PERIOD_ANNUAL          BillingPeriod = "ANNUAL"
	BILLING_PERIOD_SESQUIENNIAL    BillingPeriod = "SESQUIENNIAL"
	BILLING_PERIOD_BIENNIAL        BillingPeriod = "BIENNIAL"
	BILLING_PERIOD_TRIENNIAL       BillingPeriod = "TRIENNIAL"
)

func (p BillingPeriod) Validate() error {
	switch p {
	case BILLING_PERIOD_DAILY, BILLING_PERIOD_WEEKLY, BILLING_PERIOD_BIWEEKLY,
		BILLING_PERIOD_THIRTY_DAYS, BILLING_PERIOD_THIRTY_ONE_DAYS,
		BILLING_PERIOD_MONTHLY, BILLING_PERIOD_QUARTERLY, BILLING_PERIOD_BIANNUAL,
		BILLING_PERIOD_ANNUAL, BILLING_PERIOD_SESQUIENNIAL, BILLING_PERIOD_BIENNIAL,
		BILLING_PERIOD_TRIENNIAL:
		return nil
	default:
		return ierr.NewError("invalid billing period").
			WithHint("Billing period is not one of the supported values").
			WithReportableDetails(map[string]any{
				"billing_period": p,
			}).
			Mark(ierr.ErrValidation)
	}
}

// IsMonthAnchored returns true for periods that align recurring charges to a
// day-of-month anchor. Interval based periods (daily, weekly, biweekly,
// thirty/thirty-one days) bill purely by elapsed time and have no anchor.
func (p BillingPeriod) IsMonthAnchored() bool {
	switch p {
	case BILLING_PERIOD_DAILY, BILLING_PERIOD_WEEKLY, BILLING_PERIOD_BIWEEKLY,
		BILLING_PERIOD_THIRTY_DAYS, BILLING_PERIOD_THIRTY_ONE_DAYS:
		return false
	default:
		return true
	}
}

// ResolveBillingDay returns the billing day anchor for a subscription or nil
// when the billing period is not month anchored.
func ResolveBillingDay(period BillingPeriod, day int) *int {
	if !period.IsMonthAnchored() {
		return nil
	}
	return &day
}
