package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vendora/vendora-manager/internal/dependency"
	"github.com/vendora/vendora-manager/internal/entity"
)

type ordersStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Orders() dependency.Orders {
	return &ordersStore{MYSQLStore: ms}
}

type orderRow struct {
	ID           int                 `db:"id"`
	UUID         string              `db:"uuid"`
	SellerID     string              `db:"seller_id"`
	ProductRef   string              `db:"product_ref"`
	ProductName  string              `db:"product_name"`
	ProductImage string              `db:"product_image"`
	BuyerID      string              `db:"buyer_id"`
	BuyerEmail   sql.NullString      `db:"buyer_email"`
	BuyerCountry sql.NullString      `db:"buyer_country"`
	Quantity     int                 `db:"quantity"`
	VariantPrice decimal.NullDecimal `db:"variant_price"`
	Subtotal     decimal.NullDecimal `db:"subtotal"`
	TotalAmount  decimal.NullDecimal `db:"total_amount"`
	Price        decimal.NullDecimal `db:"price"`
	DeliveryFee  decimal.NullDecimal `db:"delivery_fee"`
	Country      sql.NullString      `db:"country"`
	Placed       sql.NullTime        `db:"placed"`
}

func (os *ordersStore) GetOrdersBySeller(ctx context.Context, sellerID string) ([]entity.Order, error) {
	query := `
	SELECT id, uuid, seller_id, product_ref, product_name, product_image,
		buyer_id, buyer_email, buyer_country, quantity, variant_price,
		subtotal, total_amount, price, delivery_fee, country, placed
	FROM customer_order
	WHERE seller_id = ?
	ORDER BY id`

	var rows []orderRow
	if err := os.DB().SelectContext(ctx, &rows, query, sellerID); err != nil {
		return nil, fmt.Errorf("can't get orders by seller: %w", err)
	}

	orders := make([]entity.Order, 0, len(rows))
	for _, r := range rows {
		o := entity.Order{
			ID:           r.ID,
			UUID:         r.UUID,
			SellerID:     r.SellerID,
			ProductRef:   r.ProductRef,
			ProductName:  r.ProductName,
			ProductImage: r.ProductImage,
			BuyerID:      r.BuyerID,
			Quantity:     r.Quantity,
			VariantPrice: r.VariantPrice,
			Subtotal:     r.Subtotal,
			TotalAmount:  r.TotalAmount,
			Price:        r.Price,
			DeliveryFee:  r.DeliveryFee,
			Country:      r.Country.String,
			Placed:       r.Placed,
		}
		if r.BuyerEmail.Valid || r.BuyerCountry.Valid {
			o.Buyer = &entity.OrderBuyer{
				ID:      r.BuyerID,
				Email:   r.BuyerEmail.String,
				Country: r.BuyerCountry.String,
			}
		}
		orders = append(orders, o)
	}
	return orders, nil
}
