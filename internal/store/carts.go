package store

import (
	"context"
	"fmt"

	"github.com/vendora/vendora-manager/internal/dependency"
	"github.com/vendora/vendora-manager/internal/entity"
)

type cartsStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Carts() dependency.Carts {
	return &cartsStore{MYSQLStore: ms}
}

func (cs *cartsStore) GetAllCartItems(ctx context.Context) ([]entity.CartItem, error) {
	query := `
	SELECT id, buyer_id, product_ref, seller_id, quantity, product_name, price
	FROM cart_item
	ORDER BY id`

	var items []entity.CartItem
	if err := cs.DB().SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("can't get cart items: %w", err)
	}
	return items, nil
}
