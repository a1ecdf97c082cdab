package store

import (
	"context"
	"fmt"

	"github.com/vendora/vendora-manager/internal/dependency"
	"github.com/vendora/vendora-manager/internal/entity"
)

type wishlistsStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Wishlists() dependency.Wishlists {
	return &wishlistsStore{MYSQLStore: ms}
}

func (ws *wishlistsStore) GetAllWishlistItems(ctx context.Context) ([]entity.WishlistItem, error) {
	query := `
	SELECT id, buyer_id, product_ref
	FROM wishlist_item
	ORDER BY id`

	var items []entity.WishlistItem
	if err := ws.DB().SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("can't get wishlist items: %w", err)
	}
	return items, nil
}
