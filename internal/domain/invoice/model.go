package invoice

import (
	"github.com/raulodev/bill-flow/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice is one billing event for one account, created atomically with its
// items. Payment status transitions are an external concern; this engine only
// ever creates PENDING invoices.
type Invoice struct {
	ID            string                     `db:"id" json:"id"`
	InvoiceNumber string                     `db:"invoice_number" json:"invoice_number"`
	AccountID     string                     `db:"account_id" json:"account_id"`
	PaymentStatus types.InvoicePaymentStatus `db:"payment_status" json:"payment_status"`

	Items []*Item `json:"items,omitempty"`

	types.BaseModel
}

func (i *Invoice) TableName() string {
	return "invoices"
}

// Total sums the invoice's item amounts
func (i *Invoice) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range i.Items {
		total = total.Add(item.Amount)
	}
	return total
}

// Item is one (subscription, product) charge within an invoice.
// Immutable once created.
type Item struct {
	ID             string          `db:"id" json:"id"`
	InvoiceID      string          `db:"invoice_id" json:"invoice_id"`
	SubscriptionID string          `db:"subscription_id" json:"subscription_id"`
	ProductID      string          `db:"product_id" json:"product_id"`
	Quantity       int             `db:"quantity" json:"quantity"`
	Amount         decimal.Decimal `db:"amount" json:"amount"`

	types.BaseModel
}

func (i *Item) TableName() string {
	return "invoice_items"
}
