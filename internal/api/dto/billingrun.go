package dto

import "time"

// BillingRunResponse summarizes one batch invoice run
type BillingRunResponse struct {
	ReferenceDate     time.Time `json:"reference_date"`
	AccountsProcessed int       `json:"accounts_processed"`
	InvoicesCreated   int       `json:"invoices_created"`
	AccountsFailed    int       `json:"accounts_failed"`
}
