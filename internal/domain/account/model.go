package account

import (
	"github.com/raulodev/bill-flow/internal/types"
	"github.com/shopspring/decimal"
)

// Account is a billable customer account. Credit is a signed running balance:
// invoices subtract from it and manual credit entries move it in either
// direction. A negative balance represents an amount owed and is allowed.
type Account struct {
	ID         string          `db:"id" json:"id"`
	Name       string          `db:"name" json:"name"`
	Email      string          `db:"email" json:"email,omitempty"`
	Credit     decimal.Decimal `db:"credit" json:"credit"`
	ExternalID string          `db:"external_id" json:"external_id,omitempty"`

	types.BaseModel
}

func (a *Account) TableName() string {
	return "accounts"
}
