package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestToDate(t *testing.T) {
	in := time.Date(2025, time.March, 15, 18, 45, 12, 999, time.UTC)
	assert.Equal(t, date(2025, time.March, 15), ToDate(in))

	// Non-UTC timestamps convert to the UTC calendar date
	loc := time.FixedZone("UTC+5", 5*60*60)
	in = time.Date(2025, time.March, 15, 2, 0, 0, 0, loc)
	assert.Equal(t, date(2025, time.March, 14), ToDate(in))
}

func TestNextBillingDate(t *testing.T) {
	start := date(2025, time.March, 15)

	tests := []struct {
		period   BillingPeriod
		expected time.Time
	}{
		{BILLING_PERIOD_DAILY, date(2025, time.March, 16)},
		{BILLING_PERIOD_WEEKLY, date(2025, time.March, 22)},
		{BILLING_PERIOD_BIWEEKLY, date(2025, time.March, 30)},
		{BILLING_PERIOD_THIRTY_DAYS, date(2025, time.April, 14)},
		{BILLING_PERIOD_THIRTY_ONE_DAYS, date(2025, time.April, 15)},
		{BILLING_PERIOD_MONTHLY, date(2025, time.April, 15)},
		{BILLING_PERIOD_QUARTERLY, date(2025, time.June, 15)},
		{BILLING_PERIOD_BIANNUAL, date(2025, time.September, 15)},
		{BILLING_PERIOD_ANNUAL, date(2026, time.March, 15)},
		{BILLING_PERIOD_SESQUIENNIAL, date(2026, time.September, 15)},
		{BILLING_PERIOD_BIENNIAL, date(2027, time.March, 15)},
		{BILLING_PERIOD_TRIENNIAL, date(2028, time.March, 15)},
	}

	for _, tc := range tests {
		t.Run(string(tc.period), func(t *testing.T) {
			got, err := NextBillingDate(start, tc.period)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestNextBillingDateClampsEndOfMonth(t *testing.T) {
	// Jan 31 plus one month lands on the last day of February
	got, err := NextBillingDate(date(2025, time.January, 31), BILLING_PERIOD_MONTHLY)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.February, 28), got)

	// Leap year
	got, err = NextBillingDate(date(2024, time.January, 31), BILLING_PERIOD_MONTHLY)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.February, 29), got)

	// Jan 31 plus a quarter clamps to Apr 30
	got, err = NextBillingDate(date(2025, time.January, 31), BILLING_PERIOD_QUARTERLY)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.April, 30), got)
}

func TestNextBillingDateInvalidPeriod(t *testing.T) {
	_, err := NextBillingDate(date(2025, time.March, 15), BillingPeriod("FORTNIGHTLY"))
	assert.Error(t, err)
}

func TestAddTrialPeriod(t *testing.T) {
	start := date(2025, time.March, 1)

	got, err := AddTrialPeriod(start, TRIAL_PERIOD_UNIT_DAYS, 9)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 10), got)

	got, err = AddTrialPeriod(start, TRIAL_PERIOD_UNIT_WEEKS, 2)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.March, 15), got)

	got, err = AddTrialPeriod(start, TRIAL_PERIOD_UNIT_MONTHS, 1)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.April, 1), got)

	got, err = AddTrialPeriod(start, TRIAL_PERIOD_UNIT_YEARS, 1)
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.March, 1), got)

	_, err = AddTrialPeriod(start, TRIAL_PERIOD_UNIT_UNLIMITED, 1)
	assert.Error(t, err)
}

func TestAddClampedDateYearRollover(t *testing.T) {
	// November plus three months rolls into the next year
	assert.Equal(t, date(2026, time.February, 15), AddClampedDate(date(2025, time.November, 15), 0, 3, 0))

	// Oct 31 plus four months clamps to the last day of February
	assert.Equal(t, date(2026, time.February, 28), AddClampedDate(date(2025, time.October, 31), 0, 4, 0))
}
