package types

import (
	"fmt"
	"time"
)

// ToDate truncates a timestamp to a UTC calendar date (midnight).
// All billing cursors and phase boundaries are stored at date granularity.
func ToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextBillingDate calculates the next billing date by adding one billing
// period to the given start date. For example:
// - MONTHLY adds one calendar month with end-of-month clamping.
// - BIWEEKLY adds 15 days.
// - TRIENNIAL adds three years.
// An unrecognized period is a programming error since the enum is closed and
// validated at subscription creation.
func NextBillingDate(start time.Time, period BillingPeriod) (time.Time, error) {
	switch period {
	case BILLING_PERIOD_DAILY:
		return AddClampedDate(start, 0, 0, 1), nil
	case BILLING_PERIOD_WEEKLY:
		return AddClampedDate(start, 0, 0, 7), nil
	case BILLING_PERIOD_BIWEEKLY:
		return AddClampedDate(start, 0, 0, 15), nil
	case BILLING_PERIOD_THIRTY_DAYS:
		return AddClampedDate(start, 0, 0, 30), nil
	case BILLING_PERIOD_THIRTY_ONE_DAYS:
		return AddClampedDate(start, 0, 0, 31), nil
	case BILLING_PERIOD_MONTHLY:
		return AddClampedDate(start, 0, 1, 0), nil
	case BILLING_PERIOD_QUARTERLY:
		return AddClampedDate(start, 0, 3, 0), nil
	case BILLING_PERIOD_BIANNUAL:
		return AddClampedDate(start, 0, 6, 0), nil
	case BILLING_PERIOD_ANNUAL:
		return AddClampedDate(start, 1, 0, 0), nil
	case BILLING_PERIOD_SESQUIENNIAL:
		return AddClampedDate(start, 0, 18, 0), nil
	case BILLING_PERIOD_BIENNIAL:
		return AddClampedDate(start, 2, 0, 0), nil
	case BILLING_PERIOD_TRIENNIAL:
		return AddClampedDate(start, 3, 0, 0), nil
	default:
		return start, fmt.Errorf("invalid billing period type: %s", period)
	}
}

// AddTrialPeriod adds a trial duration expressed in the given unit to a date.
// Month and year durations use the same clamping convention as billing
// periods so that phase boundaries and billing dates stay consistent.
func AddTrialPeriod(start time.Time, unit TrialPeriodUnit, duration int) (time.Time, error) {
	switch unit {
	case TRIAL_PERIOD_UNIT_DAYS:
		return AddClampedDate(start, 0, 0, duration), nil
	case TRIAL_PERIOD_UNIT_WEEKS:
		return AddClampedDate(start, 0, 0, 7*duration), nil
	case TRIAL_PERIOD_UNIT_MONTHS:
		return AddClampedDate(start, 0, duration, 0), nil
	case TRIAL_PERIOD_UNIT_YEARS:
		return AddClampedDate(start, duration, 0, 0), nil
	default:
		return start, fmt.Errorf("invalid trial period unit: %s", unit)
	}
}

// AddClampedDate adds years, months and days to a date. Unlike time.AddDate
// it never normalizes an overflowing day into the next month: Jan 31 plus one
// month lands on the last day of February, not on Mar 2/3.
func AddClampedDate(t time.Time, years, months, days int) time.Time {
	y, m, d := t.Date()
	h, min, sec := t.Clock()

	newY := y + years
	newM := time.Month(int(m) + months)

	for newM > 12 {
		newM -= 12
		newY++
	}
	for newM < 1 {
		newM += 12
		newY--
	}

	// Last valid day of the target month
	firstOfNextMonth := time.Date(newY, newM+1, 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfNextMonth.Add(-24 * time.Hour).Day()

	newD := d
	if newD > lastDay {
		newD = lastDay
	}

	result := time.Date(newY, newM, newD, h, min, sec, t.Nanosecond(), t.Location())
	if days != 0 {
		result = result.AddDate(0, 0, days)
	}
	return result
}
