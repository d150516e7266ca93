package product

import (
	"github.com/raulodev/bill-flow/internal/types"
	"github.com/shopspring/decimal"
)

// Product is a billable catalog entry. Unavailable products stay on
// subscriptions but are invoiced at zero until made available again.
type Product struct {
	ID          string          `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Price       decimal.Decimal `db:"price" json:"price"`
	IsAvailable bool            `db:"is_available" json:"is_available"`
	ExternalID  string          `db:"external_id" json:"external_id,omitempty"`

	types.BaseModel
}

func (p *Product) TableName() string {
	return "products"
}
