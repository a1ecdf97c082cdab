package store

import (
	"context"
	"fmt"

	"github.com/vendora/vendora-manager/internal/dependency"
	"github.com/vendora/vendora-manager/internal/entity"
)

type productsStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Products() dependency.Products {
	return &productsStore{MYSQLStore: ms}
}

func (ps *productsStore) GetProductsBySeller(ctx context.Context, sellerID string) ([]entity.Product, error) {
	query := `
	SELECT id, sku, seller_id, name, image_url, price, delivery_cost, views
	FROM product
	WHERE seller_id = ?
	ORDER BY id`

	var products []entity.Product
	if err := ps.DB().SelectContext(ctx, &products, query, sellerID); err != nil {
		return nil, fmt.Errorf("can't get products by seller: %w", err)
	}
	return products, nil
}

func (ps *productsStore) IncrementViews(ctx context.Context, productID string) error {
	res, err := ps.DB().ExecContext(ctx,
		`UPDATE product SET views = views + 1 WHERE id = ? OR sku = ?`,
		productID, productID)
	if err != nil {
		return fmt.Errorf("can't increment product views: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("product not found: %s", productID)
	}
	return nil
}
