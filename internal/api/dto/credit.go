package dto

import (
	"github.com/raulodev/bill-flow/internal/domain/credit"
	ierr "github.com/raulodev/bill-flow/internal/errors"
	"github.com/raulodev/bill-flow/internal/types"
	"github.com/raulodev/bill-flow/internal/validator"
	"github.com/shopspring/decimal"
)

type CreditRequest struct {
	AccountID string             `json:"account_id" validate:"required"`
	Amount    decimal.Decimal    `json:"amount"`
	Reason    types.CreditReason `json:"reason" validate:"required"`
	Comment   string             `json:"comment,omitempty" validate:"max=255"`
}

func (r *CreditRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if err := r.Reason.Validate(); err != nil {
		return err
	}

	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return ierr.NewError("amount must be greater than 0").
			WithHint("Credit amount must be a positive value").
			WithReportableDetails(map[string]any{
				"amount": r.Amount,
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}

type CreditEntryResponse struct {
	*credit.Entry
	// Balance is the account's credit balance after applying the entry
	Balance decimal.Decimal `json:"balance"`
}
