package credit

import (
	"github.com/raulodev/bill-flow/internal/types"
	"github.com/shopspring/decimal"
)

// Entry is one immutable credit history record. Entries are append only and
// are never updated or deleted; together they explain the account's running
// credit balance alongside invoice charges.
type Entry struct {
	ID        string                `db:"id" json:"id"`
	AccountID string                `db:"account_id" json:"account_id"`
	Amount    decimal.Decimal       `db:"amount" json:"amount"`
	EntryType types.CreditEntryType `db:"entry_type" json:"entry_type"`
	Reason    types.CreditReason    `db:"reason" json:"reason"`
	Comment   string                `db:"comment" json:"comment,omitempty"`

	types.BaseModel
}

func (e *Entry) TableName() string {
	return "credit_history"
}
