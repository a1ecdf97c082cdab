package analytics

import (
	"github.com/shopspring/decimal"
	"github.com/vendora/vendora-manager/internal/entity"
)

// catalogIndex is the reconciled view of one seller's catalog. Every lookup
// is populated under both the internal product id and the external sku, so
// records referencing either identifier resolve to the same logical product.
type catalogIndex struct {
	canonical  map[string]string
	names      map[string]string
	images     map[string]string
	prices     map[string]decimal.Decimal
	costs      map[string]decimal.Decimal
	sellerRefs map[string]struct{}

	productCount int
	viewTotal    int
}

func buildCatalogIndex(sellerID string, products []entity.Product) *catalogIndex {
	idx := &catalogIndex{
		canonical:  make(map[string]string),
		names:      make(map[string]string),
		images:     make(map[string]string),
		prices:     make(map[string]decimal.Decimal),
		costs:      make(map[string]decimal.Decimal),
		sellerRefs: make(map[string]struct{}),
	}
	for i := range products {
		p := &products[i]
		if p.SellerID != sellerID {
			continue
		}
		idx.productCount++
		idx.viewTotal += p.Views

		refs := []string{p.ID}
		if ext := p.ExternalID(); ext != "" {
			refs = append(refs, ext)
		}
		for _, ref := range refs {
			idx.canonical[ref] = p.ID
			idx.names[ref] = p.Name
			idx.images[ref] = p.Image
			idx.prices[ref] = p.Price
			idx.costs[ref] = p.DeliveryCost
			idx.sellerRefs[ref] = struct{}{}
		}
	}
	return idx
}

// resolve maps a product reference to its canonical identifier. Unknown
// references stay as-is so off-catalog orders still aggregate.
func (ci *catalogIndex) resolve(ref string) string {
	if id, ok := ci.canonical[ref]; ok {
		return id
	}
	return ref
}

// owns reports whether the reference belongs to the seller's catalog under
// either identifier form.
func (ci *catalogIndex) owns(ref string) bool {
	_, ok := ci.sellerRefs[ref]
	return ok
}

func (ci *catalogIndex) cost(ref string) decimal.Decimal {
	return ci.costs[ref]
}
