package types

import (
	ierr "github.com/raulodev/bill-flow/internal/errors"
)

// CreditEntryType tags a credit history entry as an addition or a removal
type CreditEntryType string

const (
	CreditEntryTypeAdd    CreditEntryType = "ADD"
	CreditEntryTypeDelete CreditEntryType = "DELETE"
)

// CreditReason is the business reason attached to a manual credit adjustment
type CreditReason string

const (
	CreditReasonCourtesy     CreditReason = "COURTESY"
	CreditReasonBillingError CreditReason = "BILLING_ERROR"
	CreditReasonOther        CreditReason = "OTHER"
)

func (r CreditReason) Validate() error {
	switch r {
	case CreditReasonCourtesy, CreditReasonBillingError, CreditReasonOther:
		return nil
	default:
		return ierr.NewError("invalid credit reason").
			WithHint("Credit reason must be COURTESY, BILLING_ERROR or OTHER").
			WithReportableDetails(map[string]any{
				"reason": r,
			}).
			Mark(ierr.ErrValidation)
	}
}
