package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendora/vendora-manager/internal/entity"
)

// mergeCart folds current cart contents into the accumulator and returns the
// number of matched entries. Cart rows carry a denormalized seller tag, but
// membership in the reconciled identifier set is the authoritative filter.
func mergeCart(f *orderFold, idx *catalogIndex, items []entity.CartItem) int {
	matched := 0
	qtyByKey := make(map[string]int)
	var keyOrder []string
	seed := make(map[string]*entity.CartItem)

	for i := range items {
		it := &items[i]
		if !idx.owns(it.ProductRef) {
			continue
		}
		matched++
		key := idx.resolve(it.ProductRef)
		if _, ok := qtyByKey[key]; !ok {
			keyOrder = append(keyOrder, key)
			seed[key] = it
		}
		qtyByKey[key] += it.QuantityOrDefault()
	}

	for _, key := range keyOrder {
		pt, created := f.touch(key)
		if created {
			it := seed[key]
			pt.Name = idx.names[it.ProductRef]
			if pt.Name == "" {
				pt.Name = it.ProductName
			}
			pt.Image = idx.images[it.ProductRef]
			if it.Price.Valid {
				pt.Price = it.Price.Decimal
			} else {
				pt.Price = idx.prices[it.ProductRef]
			}
			pt.Cost = idx.cost(it.ProductRef)
		}
		pt.InCart = qtyByKey[key]
	}
	return matched
}

// mergeWishlist folds wishlist contents into the accumulator. Wishlist rows
// have no seller tag; an entry is relevant when the seller's catalog owns
// the reference or an order already tied the resolved product to the seller.
func mergeWishlist(f *orderFold, idx *catalogIndex, items []entity.WishlistItem) {
	countByKey := make(map[string]int)
	var keyOrder []string

	for i := range items {
		it := &items[i]
		key := idx.resolve(it.ProductRef)
		if !idx.owns(it.ProductRef) {
			if _, ok := f.byProduct[key]; !ok {
				continue
			}
		}
		if _, ok := countByKey[key]; !ok {
			keyOrder = append(keyOrder, key)
		}
		countByKey[key]++
	}

	for _, key := range keyOrder {
		pt, created := f.touch(key)
		if created {
			pt.Name = idx.names[key]
			pt.Image = idx.images[key]
			pt.Price = idx.prices[key]
			pt.Cost = idx.cost(key)
		}
		pt.InWishlist = countByKey[key]
	}
}

// buildReport derives the summary structures from the merged accumulator and
// assembles the final payload.
func buildReport(storeName string, g entity.Granularity, idx *catalogIndex, f *orderFold, cartMatched int, now time.Time) *entity.SellerReport {
	months := make([]string, 0, len(f.series))
	for k := range f.series {
		months = append(months, k)
	}
	sort.Strings(months)
	monthlySales := make([]decimal.Decimal, len(months))
	for i, k := range months {
		monthlySales[i] = f.series[k]
	}

	regions := make([]entity.RegionSales, 0, len(f.countries))
	for c, amt := range f.countries {
		regions = append(regions, entity.RegionSales{Country: c, Amount: amt})
	}
	sort.Slice(regions, func(i, j int) bool {
		if !regions[i].Amount.Equal(regions[j].Amount) {
			return regions[i].Amount.GreaterThan(regions[j].Amount)
		}
		return regions[i].Country < regions[j].Country
	})

	labels := make([]string, 24)
	sales := make([]decimal.Decimal, 24)
	for h := 0; h < 24; h++ {
		labels[h] = fmt.Sprintf("%d:00", h)
		sales[h] = f.hours[h]
	}

	products := make([]entity.ProductStat, 0, len(f.productOrder))
	margins := make([]entity.ProfitMargin, 0, len(f.productOrder))
	for _, key := range f.productOrder {
		pt := f.byProduct[key]
		sold := decimal.NewFromInt(int64(pt.Sold))
		products = append(products, entity.ProductStat{
			ProductID:    key,
			Name:         pt.Name,
			Image:        pt.Image,
			Price:        pt.Price,
			Sold:         pt.Sold,
			DeliveryFees: pt.DeliveryFees,
			InCart:       pt.InCart,
			InWishlist:   pt.InWishlist,
			Revenue:      pt.Price.Mul(sold).Add(pt.DeliveryFees),
		})
		if pt.Sold > 0 {
			ppu := pt.Price.Sub(pt.Cost)
			margins = append(margins, entity.ProfitMargin{
				Name:          pt.Name,
				Price:         pt.Price,
				Cost:          pt.Cost,
				Sold:          pt.Sold,
				TotalRevenue:  pt.Price.Add(pt.Cost).Mul(sold),
				ProfitPerUnit: ppu,
				TotalProfit:   ppu.Mul(sold),
			})
		}
	}

	// Views come from the catalog counters; when the catalog carries no view
	// data at all, the accumulator totals stand in.
	views := idx.viewTotal
	if views == 0 {
		for _, pt := range f.byProduct {
			views += pt.InCart + pt.InWishlist + pt.Sold
		}
	}

	repeat := 0
	for _, n := range f.buyerOrders {
		if n > 1 {
			repeat++
		}
	}
	total := len(f.buyerOrders)

	avg := decimal.Zero
	if f.orders > 0 {
		avg = f.total.Div(decimal.NewFromInt(int64(f.orders))).Round(2)
	}

	start, end := f.start, f.end
	if start.IsZero() {
		start, end = now, now
	}

	return &entity.SellerReport{
		StoreName:      storeName,
		Products:       products,
		Earnings:       f.total,
		TotalOrders:    f.orders,
		TotalProducts:  idx.productCount,
		AvgOrderValue:  avg,
		Months:         months,
		MonthlySales:   monthlySales,
		BestTimeToSell: entity.BestTimeToSell{Labels: labels, Sales: sales},
		SalesByRegion:  regions,
		ProfitMargins:  margins,
		Funnel: entity.Funnel{
			Views:       views,
			AddedToCart: cartMatched,
			Checkout:    f.orders,
			Completed:   f.orders,
		},
		Customers: entity.CustomerStats{
			Total:  total,
			Repeat: repeat,
			New:    total - repeat,
		},
		DateRange: entity.DateRange{Start: start, End: end},
		Range:     g,
	}
}
