package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vendora/vendora-manager/internal/entity"
)

// countryUnknown is the sentinel region for orders without a country code.
const countryUnknown = "Unknown"

// productTotals is the running accumulator for one logical product. It lives
// for the duration of one report computation and is never deleted once
// created.
type productTotals struct {
	Name         string
	Image        string
	Price        decimal.Decimal
	Cost         decimal.Decimal
	Sold         int
	DeliveryFees decimal.Decimal
	InCart       int
	InWishlist   int
}

// orderFold carries everything accumulated in the single pass over orders.
type orderFold struct {
	byProduct    map[string]*productTotals
	productOrder []string // first-reference order, keeps output stable

	series      map[string]decimal.Decimal
	hours       [24]decimal.Decimal
	countries   map[string]decimal.Decimal
	total       decimal.Decimal
	orders      int
	buyerOrders map[string]int

	start, end time.Time
}

func newOrderFold() *orderFold {
	return &orderFold{
		byProduct:   make(map[string]*productTotals),
		series:      make(map[string]decimal.Decimal),
		countries:   make(map[string]decimal.Decimal),
		buyerOrders: make(map[string]int),
	}
}

// touch returns the accumulator for a resolved product key, creating and
// registering an empty one on first reference.
func (f *orderFold) touch(key string) (*productTotals, bool) {
	if pt, ok := f.byProduct[key]; ok {
		return pt, false
	}
	pt := &productTotals{}
	f.byProduct[key] = pt
	f.productOrder = append(f.productOrder, key)
	return pt, true
}

// foldOrders walks the order history once, accumulating per-product totals,
// the time-bucketed revenue series, the hour-of-day histogram, per-country
// revenue and the buyer frequency map. The fold is commutative over
// addition, so order of processing does not affect the result.
func foldOrders(sellerID string, orders []entity.Order, g entity.Granularity, idx *catalogIndex) *orderFold {
	f := newOrderFold()
	for i := range orders {
		o := &orders[i]
		if o.SellerID != "" && o.SellerID != sellerID {
			continue
		}

		key := idx.resolve(o.ProductRef)
		qty := o.QuantityOrDefault()
		price := o.UnitPrice()
		fee := o.DeliveryFeeOrZero()
		// Delivery fee counts once per order, not per unit.
		revenue := price.Mul(decimal.NewFromInt(int64(qty))).Add(fee)

		pt, created := f.touch(key)
		if created {
			pt.Price = price
			pt.Cost = idx.cost(o.ProductRef)
			pt.Name = idx.names[o.ProductRef]
			if pt.Name == "" {
				pt.Name = o.ProductName
			}
			pt.Image = idx.images[o.ProductRef]
			if pt.Image == "" {
				pt.Image = o.ProductImage
			}
		}
		pt.Sold += qty
		pt.DeliveryFees = pt.DeliveryFees.Add(fee)

		f.total = f.total.Add(revenue)
		f.orders++

		country := o.BuyerCountry()
		if country == "" {
			country = countryUnknown
		}
		f.countries[country] = f.countries[country].Add(revenue)

		// Orders without a placement timestamp still count toward revenue
		// totals but contribute nothing time-bucketed.
		if o.Placed.Valid {
			ts := o.Placed.Time
			bk := bucketKey(ts, g)
			f.series[bk] = f.series[bk].Add(revenue)
			f.hours[ts.Hour()] = f.hours[ts.Hour()].Add(revenue)
			if f.start.IsZero() || ts.Before(f.start) {
				f.start = ts
			}
			if ts.After(f.end) {
				f.end = ts
			}
		}

		if bk := o.BuyerKey(); bk != "" {
			f.buyerOrders[bk]++
		}
	}
	return f
}

// bucketKey formats a timestamp into the sortable bucket identifier for the
// selected granularity. All formats are zero-padded so lexicographic order
// is chronological order.
func bucketKey(t time.Time, g entity.Granularity) string {
	switch g {
	case entity.GranularityHour:
		return t.Format("2006-01-02T15")
	case entity.GranularityDay:
		return t.Format("2006-01-02")
	case entity.GranularityWeek:
		return fmt.Sprintf("%d-W%02d", t.Year(), weekOfYear(t))
	case entity.GranularityYear:
		return t.Format("2006")
	default:
		return t.Format("2006-01")
	}
}

// weekOfYear counts weeks from January 1st, offset by the weekday January
// 1st falls on, matching the dashboard's historical week numbering.
func weekOfYear(t time.Time) int {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	days := t.YearDay() + int(jan1.Weekday())
	w := (days + 6) / 7
	if w < 1 {
		w = 1
	}
	return w
}
