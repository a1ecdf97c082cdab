package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/vendora/vendora-manager/internal/entity"
)

type (
	Orders interface {
		// GetOrdersBySeller returns the seller's full order history.
		GetOrdersBySeller(ctx context.Context, sellerID string) ([]entity.Order, error)
	}

	Products interface {
		// GetProductsBySeller returns the seller's full product catalog.
		GetProductsBySeller(ctx context.Context, sellerID string) ([]entity.Product, error)
		// IncrementViews bumps the view counter for a product.
		IncrementViews(ctx context.Context, productID string) error
	}

	Carts interface {
		// GetAllCartItems returns all cart entries across sellers; the
		// analytics engine filters them by reconciled identifiers.
		GetAllCartItems(ctx context.Context) ([]entity.CartItem, error)
	}

	Wishlists interface {
		// GetAllWishlistItems returns all wishlist entries; wishlist rows
		// carry no seller tag at all.
		GetAllWishlistItems(ctx context.Context) ([]entity.WishlistItem, error)
	}

	Sellers interface {
		GetSellerByID(ctx context.Context, id string) (*entity.Seller, error)
	}

	Repository interface {
		Orders() Orders
		Products() Products
		Carts() Carts
		Wishlists() Wishlists
		Sellers() Sellers
		Now() time.Time
		Close()
		DB() DB
	}

	// DB represents database interface.
	DB interface {
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}

	// CodeStore is an expiring key-value store for one-time codes. It is
	// injected wherever codes are issued so no package keeps process-wide
	// mutable state.
	CodeStore interface {
		Set(key, code string, ttl time.Duration)
		Get(key string) (string, bool)
		Delete(key string)
	}
)
