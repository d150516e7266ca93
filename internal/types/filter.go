package types

import "time"

// EligibilityFilter narrows the set of subscriptions considered due for
// billing on ReferenceDate. AccountID and SubscriptionID are optional scopes
// and do not change the eligibility predicate itself.
type EligibilityFilter struct {
	ReferenceDate  time.Time
	AccountID      *string
	SubscriptionID *string
}

// SubscriptionFilter filters subscription list queries
type SubscriptionFilter struct {
	State  *SubscriptionState
	Limit  int
	Offset int
}
