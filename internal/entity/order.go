package entity

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// OrderBuyer is the structured buyer snapshot stored with an order. Older
// orders carry only a bare buyer id; newer ones carry the full object.
type OrderBuyer struct {
	ID      string `db:"buyer_id" json:"id"`
	Email   string `db:"buyer_email" json:"email"`
	Country string `db:"buyer_country" json:"country"`
}

// Order represents the customer_order table. Orders are immutable historical
// facts; the analytics engine only ever reads them.
type Order struct {
	ID           int                 `db:"id"`
	UUID         string              `db:"uuid"`
	SellerID     string              `db:"seller_id"`
	ProductRef   string              `db:"product_ref"` // internal product id or external sku
	ProductName  string              `db:"product_name"`
	ProductImage string              `db:"product_image"`
	BuyerID      string              `db:"buyer_id"`
	Buyer        *OrderBuyer         `db:"-"`
	Quantity     int                 `db:"quantity"`
	VariantPrice decimal.NullDecimal `db:"variant_price"`
	Subtotal     decimal.NullDecimal `db:"subtotal"`
	TotalAmount  decimal.NullDecimal `db:"total_amount"`
	Price        decimal.NullDecimal `db:"price"`
	DeliveryFee  decimal.NullDecimal `db:"delivery_fee"`
	Country      string              `db:"country"`
	Placed       sql.NullTime        `db:"placed"`
}

// UnitPrice resolves the effective per-unit price: explicit variant price
// first, then subtotal, total amount, the generic price field, and zero
// when none of them is set.
func (o *Order) UnitPrice() decimal.Decimal {
	for _, d := range []decimal.NullDecimal{o.VariantPrice, o.Subtotal, o.TotalAmount, o.Price} {
		if d.Valid {
			return d.Decimal
		}
	}
	return decimal.Zero
}

// DeliveryFeeOrZero returns the delivery fee, zero when absent.
func (o *Order) DeliveryFeeOrZero() decimal.Decimal {
	if o.DeliveryFee.Valid {
		return o.DeliveryFee.Decimal
	}
	return decimal.Zero
}

// QuantityOrDefault treats absent or zero quantity as a single unit.
func (o *Order) QuantityOrDefault() int {
	if o.Quantity <= 0 {
		return 1
	}
	return o.Quantity
}

// BuyerKey normalizes the buyer reference to a stable identifier regardless
// of whether the order carries a bare id or a structured buyer object.
func (o *Order) BuyerKey() string {
	if o.Buyer != nil {
		if o.Buyer.Email != "" {
			return o.Buyer.Email
		}
		if o.Buyer.ID != "" {
			return o.Buyer.ID
		}
	}
	return o.BuyerID
}

// BuyerCountry prefers the structured buyer country and falls back to the
// order-level country code.
func (o *Order) BuyerCountry() string {
	if o.Buyer != nil && o.Buyer.Country != "" {
		return o.Buyer.Country
	}
	return o.Country
}
