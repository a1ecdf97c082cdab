package entity

import "github.com/shopspring/decimal"

// CartItem represents the cart_item table. The seller tag is denormalized at
// insert time and may be stale; identifier reconciliation is the
// authoritative seller filter.
type CartItem struct {
	ID          int                 `db:"id"`
	BuyerID     string              `db:"buyer_id"`
	ProductRef  string              `db:"product_ref"`
	SellerID    string              `db:"seller_id"`
	Quantity    int                 `db:"quantity"`
	ProductName string              `db:"product_name"`
	Price       decimal.NullDecimal `db:"price"`
}

// QuantityOrDefault treats absent or zero quantity as a single unit.
func (ci *CartItem) QuantityOrDefault() int {
	if ci.Quantity <= 0 {
		return 1
	}
	return ci.Quantity
}

// WishlistItem represents the wishlist_item table. Wishlist entries are not
// seller-scoped; relevance to a seller is established by cross-referencing
// the product reference against the seller's catalog or order history.
type WishlistItem struct {
	ID         int    `db:"id"`
	BuyerID    string `db:"buyer_id"`
	ProductRef string `db:"product_ref"`
}
