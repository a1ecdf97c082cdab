package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vendora/vendora-manager/internal/dependency"
	"github.com/vendora/vendora-manager/internal/entity"
)

// ErrSellerNotFound is returned when no seller row matches the id.
var ErrSellerNotFound = errors.New("seller not found")

type sellersStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Sellers() dependency.Sellers {
	return &sellersStore{MYSQLStore: ms}
}

func (ss *sellersStore) GetSellerByID(ctx context.Context, id string) (*entity.Seller, error) {
	query := `
	SELECT id, store_name, email, plan, created_at
	FROM seller
	WHERE id = ?`

	var s entity.Seller
	if err := ss.DB().GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSellerNotFound
		}
		return nil, fmt.Errorf("can't get seller by id: %w", err)
	}
	return &s, nil
}
