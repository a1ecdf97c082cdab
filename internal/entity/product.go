package entity

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Product represents the product table. A product is addressable by two
// identifier spaces: the internal id (always present) and the seller-assigned
// external sku (optional).
type Product struct {
	ID           string          `db:"id"`
	SKU          sql.NullString  `db:"sku"`
	SellerID     string          `db:"seller_id"`
	Name         string          `db:"name"`
	Image        string          `db:"image_url"`
	Price        decimal.Decimal `db:"price"`
	DeliveryCost decimal.Decimal `db:"delivery_cost"`
	Views        int             `db:"views"`
}

// ExternalID returns the external sku or empty when the product has none.
func (p *Product) ExternalID() string {
	if p.SKU.Valid {
		return p.SKU.String
	}
	return ""
}
