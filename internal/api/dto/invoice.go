package dto

import (
	"time"

	"github.com/raulodev/bill-flow/internal/domain/invoice"
	"github.com/raulodev/bill-flow/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateInvoiceRequest struct {
	AccountID       string    `json:"account_id" validate:"required"`
	SubscriptionIDs []string  `json:"subscription_ids" validate:"required,min=1"`
	ReferenceDate   time.Time `json:"reference_date" validate:"required"`

	// SkipValidation skips the per subscription eligibility re-check. The
	// scheduled batch pre-filters with the eligibility query and sets this
	// for throughput; manual callers should leave it false to avoid double
	// billing from stale state.
	SkipValidation bool `json:"skip_validation"`
}

func (r *CreateInvoiceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type InvoiceResponse struct {
	*invoice.Invoice
	Total decimal.Decimal `json:"total"`
}

func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		Invoice: inv,
		Total:   inv.Total(),
	}
}
