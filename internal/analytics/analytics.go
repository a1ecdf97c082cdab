// Package analytics computes a seller's dashboard report from read-only
// snapshots of orders, products, cart and wishlist entries. The whole
// computation is a single synchronous pass with no state between calls.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vendora/vendora-manager/internal/dependency"
	"github.com/vendora/vendora-manager/internal/entity"
)

// ErrNoSeller signals a contract violation: the caller supplied no seller
// identifier.
var ErrNoSeller = errors.New("invalid argument: seller id is required")

// Params are the inputs for one report computation. The collections are
// borrowed snapshots; Compute never mutates or retains them.
type Params struct {
	SellerID    string
	StoreName   string
	Granularity entity.Granularity
	Now         time.Time // injected clock, used only for date-range defaults
	Orders      []entity.Order
	Products    []entity.Product
	CartItems   []entity.CartItem
	Wishlist    []entity.WishlistItem
}

// Compute runs the three aggregation stages: identifier reconciliation over
// the catalog, the time-bucketing fold over orders, and the cart/wishlist
// merge with derived summaries. It is deterministic given identical inputs.
func Compute(p Params) (*entity.SellerReport, error) {
	if p.SellerID == "" {
		return nil, ErrNoSeller
	}
	g := p.Granularity
	if !entity.ValidGranularities[g] {
		g = entity.GranularityMonth
	}

	idx := buildCatalogIndex(p.SellerID, p.Products)
	f := foldOrders(p.SellerID, p.Orders, g, idx)
	cartMatched := mergeCart(f, idx, p.CartItems)
	mergeWishlist(f, idx, p.Wishlist)

	return buildReport(p.StoreName, g, idx, f, cartMatched, p.Now), nil
}

// Service fetches the input snapshots and runs Compute.
type Service struct {
	rep dependency.Repository
	now func() time.Time
}

func New(rep dependency.Repository) *Service {
	return &Service{rep: rep, now: rep.Now}
}

// SellerReport builds the analytics payload for one seller. The four
// collection fetches are independent reads and are dispatched concurrently;
// the fold starts only once all of them have completed.
func (s *Service) SellerReport(ctx context.Context, sellerID string, g entity.Granularity) (*entity.SellerReport, error) {
	if sellerID == "" {
		return nil, ErrNoSeller
	}

	var (
		seller   *entity.Seller
		orders   []entity.Order
		products []entity.Product
		carts    []entity.CartItem
		wishes   []entity.WishlistItem
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		seller, err = s.rep.Sellers().GetSellerByID(egCtx, sellerID)
		return err
	})
	eg.Go(func() (err error) {
		orders, err = s.rep.Orders().GetOrdersBySeller(egCtx, sellerID)
		return err
	})
	eg.Go(func() (err error) {
		products, err = s.rep.Products().GetProductsBySeller(egCtx, sellerID)
		return err
	})
	eg.Go(func() (err error) {
		carts, err = s.rep.Carts().GetAllCartItems(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		wishes, err = s.rep.Wishlists().GetAllWishlistItems(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("fetch analytics inputs: %w", err)
	}

	return Compute(Params{
		SellerID:    sellerID,
		StoreName:   seller.StoreName,
		Granularity: g,
		Now:         s.now(),
		Orders:      orders,
		Products:    products,
		CartItems:   carts,
		Wishlist:    wishes,
	})
}

// RecordProductView bumps the catalog view counter that feeds the funnel.
func (s *Service) RecordProductView(ctx context.Context, productID string) error {
	return s.rep.Products().IncrementViews(ctx, productID)
}
