package analytics

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendora/vendora-manager/internal/entity"
)

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func ndec(f float64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(f), Valid: true}
}

func placed(s string) sql.NullTime {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		panic(err)
	}
	return sql.NullTime{Time: t, Valid: true}
}

func sku(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func acmeCatalog() []entity.Product {
	return []entity.Product{
		{ID: "p1", SKU: sku("P-100"), SellerID: "acme", Name: "Mug", Image: "mug.jpg", Price: dec(10), DeliveryCost: dec(2), Views: 0},
	}
}

func TestComputeRequiresSeller(t *testing.T) {
	_, err := Compute(Params{Now: testNow})
	assert.ErrorIs(t, err, ErrNoSeller)
}

func TestComputeEmptyInputs(t *testing.T) {
	rep, err := Compute(Params{SellerID: "acme", StoreName: "Acme", Granularity: entity.GranularityMonth, Now: testNow})
	require.NoError(t, err)

	assert.True(t, rep.Earnings.IsZero())
	assert.Equal(t, 0, rep.TotalOrders)
	assert.Equal(t, 0, rep.TotalProducts)
	assert.Empty(t, rep.Months)
	assert.Empty(t, rep.MonthlySales)
	assert.Empty(t, rep.ProfitMargins)
	assert.Empty(t, rep.Products)
	assert.Empty(t, rep.SalesByRegion)
	assert.Equal(t, entity.CustomerStats{Total: 0, Repeat: 0, New: 0}, rep.Customers)
	assert.Equal(t, testNow, rep.DateRange.Start)
	assert.Equal(t, testNow, rep.DateRange.End)
	assert.Len(t, rep.BestTimeToSell.Labels, 24)
	assert.Len(t, rep.BestTimeToSell.Sales, 24)
}

func TestIdentifierEquivalence(t *testing.T) {
	// Same logical product referenced once by internal id and once by sku.
	orders := []entity.Order{
		{SellerID: "acme", ProductRef: "p1", Quantity: 3, VariantPrice: ndec(10), DeliveryFee: ndec(5), Country: "NG", BuyerID: "b1", Placed: placed("2024-03-05T14:30:00")},
		{SellerID: "acme", ProductRef: "P-100", Quantity: 2, VariantPrice: ndec(10), Country: "NG", BuyerID: "b2", Placed: placed("2024-03-06T09:00:00")},
	}
	rep, err := Compute(Params{
		SellerID: "acme", StoreName: "Acme", Granularity: entity.GranularityMonth,
		Now: testNow, Orders: orders, Products: acmeCatalog(),
	})
	require.NoError(t, err)

	require.Len(t, rep.Products, 1, "both identifier forms must land in one accumulator")
	assert.Equal(t, "p1", rep.Products[0].ProductID)
	assert.Equal(t, 5, rep.Products[0].Sold)
	// (3*10+5) + (2*10+0)
	assert.True(t, rep.Earnings.Equal(dec(55)), "earnings: %s", rep.Earnings)
	assert.Equal(t, 2, rep.TotalOrders)
	assert.True(t, rep.AvgOrderValue.Equal(dec(27.5)))

	require.Len(t, rep.ProfitMargins, 1)
	pm := rep.ProfitMargins[0]
	assert.Equal(t, "Mug", pm.Name)
	assert.Equal(t, 5, pm.Sold)
	assert.True(t, pm.ProfitPerUnit.Equal(dec(8)))
	assert.True(t, pm.TotalProfit.Equal(dec(40)))
	assert.True(t, pm.TotalRevenue.Equal(dec(60)))
}

func TestBucketedSeriesReconcileWithEarnings(t *testing.T) {
	orders := []entity.Order{
		{SellerID: "acme", ProductRef: "p1", Quantity: 1, VariantPrice: ndec(10), Country: "NG", BuyerID: "b1", Placed: placed("2024-03-05T14:30:00")},
		{SellerID: "acme", ProductRef: "p1", Quantity: 2, VariantPrice: ndec(10), DeliveryFee: ndec(3), Country: "DE", BuyerID: "b1", Placed: placed("2024-04-01T08:10:00")},
		{SellerID: "acme", ProductRef: "P-100", Quantity: 1, VariantPrice: ndec(10), BuyerID: "b2", Placed: placed("2024-04-02T23:45:00")},
	}
	rep, err := Compute(Params{
		SellerID: "acme", StoreName: "Acme", Granularity: entity.GranularityMonth,
		Now: testNow, Orders: orders, Products: acmeCatalog(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-03", "2024-04"}, rep.Months)

	sum := decimal.Zero
	for _, v := range rep.MonthlySales {
		sum = sum.Add(v)
	}
	assert.True(t, sum.Equal(rep.Earnings), "sum(monthlySales)=%s earnings=%s", sum, rep.Earnings)

	hourSum := decimal.Zero
	for _, v := range rep.BestTimeToSell.Sales {
		hourSum = hourSum.Add(v)
	}
	assert.True(t, hourSum.Equal(rep.Earnings))

	regionSum := decimal.Zero
	for _, rs := range rep.SalesByRegion {
		regionSum = regionSum.Add(rs.Amount)
	}
	assert.True(t, regionSum.Equal(rep.Earnings))

	assert.Equal(t, "14:00", rep.BestTimeToSell.Labels[14])
	assert.True(t, rep.BestTimeToSell.Sales[14].Equal(dec(10)))

	assert.Equal(t, time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), rep.DateRange.Start)
	assert.Equal(t, time.Date(2024, 4, 2, 23, 45, 0, 0, time.UTC), rep.DateRange.End)
}

func TestRegionSortingAndUnknownSentinel(t *testing.T) {
	orders := []entity.Order{
		{SellerID: "acme", ProductRef: "p1", Quantity: 3, VariantPrice: ndec(10), Country: "NG", BuyerID: "b1", Placed: placed("2024-03-05T10:00:00")},
		{SellerID: "acme", ProductRef: "p1", Quantity: 1, VariantPrice: ndec(10), BuyerID: "b2", Placed: placed("2024-03-06T10:00:00")},
	}
	rep, err := Compute(Params{
		SellerID: "acme", Granularity: entity.GranularityMonth,
		Now: testNow, Orders: orders, Products: acmeCatalog(),
	})
	require.NoError(t, err)

	require.Len(t, rep.SalesByRegion, 2)
	assert.Equal(t, "NG", rep.SalesByRegion[0].Country)
	assert.True(t, rep.SalesByRegion[0].Amount.Equal(dec(30)))
	assert.Equal(t, "Unknown", rep.SalesByRegion[1].Country)
	assert.True(t, rep.SalesByRegion[1].Amount.Equal(dec(10)))
}

func TestWeekGranularityDistinctBuckets(t *testing.T) {
	orders := []entity.Order{
		{SellerID: "acme", ProductRef: "p1", Quantity: 1, VariantPrice: ndec(10), BuyerID: "b1", Placed: placed("2024-03-05T10:00:00")},
		{SellerID: "acme", ProductRef: "p1", Quantity: 1, VariantPrice: ndec(20), BuyerID: "b2", Placed: placed("2024-03-12T10:00:00")},
	}
	rep, err := Compute(Params{
		SellerID: "acme", Granularity: entity.GranularityWeek,
		Now: testNow, Orders: orders, Products: acmeCatalog(),
	})
	require.NoError(t, err)

	require.Equal(t, []string{"2024-W10", "2024-W11"}, rep.Months)
	assert.True(t, rep.MonthlySales[0].Equal(dec(10)))
	assert.True(t, rep.MonthlySales[1].Equal(dec(20)))
	assert.Equal(t, entity.GranularityWeek, rep.Range)
}

func TestUnitPriceFallbackChain(t *testing.T) {
	orders := []entity.Order{
		// subtotal wins when no variant price
		{SellerID: "acme", ProductRef: "a", Quantity: 1, Subtotal: ndec(7), BuyerID: "b1", Placed: placed("2024-01-01T10:00:00")},
		// total amount next
		{SellerID: "acme", ProductRef: "b", Quantity: 1, TotalAmount: ndec(5), BuyerID: "b1", Placed: placed("2024-01-02T10:00:00")},
		// generic price next
		{SellerID: "acme", ProductRef: "c", Quantity: 1, Price: ndec(3), BuyerID: "b1", Placed: placed("2024-01-03T10:00:00")},
		// nothing numeric at all: zero contribution, still counted as an order
		{SellerID: "acme", ProductRef: "d", Quantity: 1, BuyerID: "b1", Placed: placed("2024-01-04T10:00:00")},
	}
	rep, err := Compute(Params{SellerID: "acme", Granularity: entity.GranularityDay, Now: testNow, Orders: orders})
	require.NoError(t, err)

	assert.True(t, rep.Earnings.Equal(dec(15)))
	assert.Equal(t, 4, rep.TotalOrders)
}

func TestMissingTimestampStillCountsRevenue(t *testing.T) {
	orders := []entity.Order{
		{SellerID: "acme", ProductRef: "p1", Quantity: 1, VariantPrice: ndec(10), BuyerID: "b1", Placed: placed("2024-03-05T10:00:00")},
		{SellerID: "acme", ProductRef: "p1", Quantity: 1, VariantPrice: ndec(40), BuyerID: "b2"},
	}
	rep, err := Compute(Params{
		SellerID: "acme", Granularity: entity.GranularityMonth,
		Now: testNow, Orders: orders, Products: acmeCatalog(),
	})
	require.NoError(t, err)

	assert.True(t, rep.Earnings.Equal(dec(50)))
	// only the timestamped order lands in the series
	require.Equal(t, []string{"2024-03"}, rep.Months)
	assert.True(t, rep.MonthlySales[0].Equal(dec(10)))
}

func TestZeroQuantityDefaultsToOne(t *testing.T) {
	orders := []entity.Order{
		{SellerID: "acme", ProductRef: "p1", VariantPrice: ndec(10), BuyerID: "b1", Placed: placed("2024-03-05T10:00:00")},
	}
	rep, err := Compute(Params{SellerID: "acme", Granularity: entity.GranularityMonth, Now: testNow, Orders: orders, Products: acmeCatalog()})
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Products[0].Sold)
	assert.True(t, rep.Earnings.Equal(dec(10)))
}

func TestOffCatalogOrderKeepsSnapshotFields(t *testing.T) {
	orders := []entity.Order{
		{SellerID: "acme", ProductRef: "ghost", ProductName: "Deleted hat", ProductImage: "hat.jpg", Quantity: 2, VariantPrice: ndec(4), BuyerID: "b1", Placed: placed("2024-03-05T10:00:00")},
	}
	rep, err := Compute(Params{SellerID: "acme", Granularity: entity.GranularityMonth, Now: testNow, Orders: orders, Products: acmeCatalog()})
	require.NoError(t, err)

	require.Len(t, rep.Products, 1)
	assert.Equal(t, "ghost", rep.Products[0].ProductID)
	assert.Equal(t, "Deleted hat", rep.Products[0].Name)
	assert.Equal(t, "hat.jpg", rep.Products[0].Image)
	assert.Equal(t, 2, rep.Products[0].Sold)
}

func TestCartMergeFiltersByReconciledIdentifiers(t *testing.T) {
	carts := []entity.CartItem{
		// matches by sku even though the seller tag is stale
		{BuyerID: "b1", ProductRef: "P-100", SellerID: "someone-else", Quantity: 2},
		// matches by internal id, zero quantity counts as one
		{BuyerID: "b2", ProductRef: "p1"},
		// unrelated product: dropped
		{BuyerID: "b3", ProductRef: "x9", SellerID: "acme", Quantity: 5},
	}
	rep, err := Compute(Params{
		SellerID: "acme", Granularity: entity.GranularityMonth,
		Now: testNow, Products: acmeCatalog(), CartItems: carts,
	})
	require.NoError(t, err)

	require.Len(t, rep.Products, 1)
	assert.Equal(t, "p1", rep.Products[0].ProductID)
	assert.Equal(t, 3, rep.Products[0].InCart)
	assert.Equal(t, 2, rep.Funnel.AddedToCart)
	assert.Equal(t, "Mug", rep.Products[0].Name)
	assert.True(t, rep.Products[0].Price.Equal(dec(10)))
	// in cart only, never sold: no margin row
	assert.Empty(t, rep.ProfitMargins)
}

func TestWishlistRelevanceViaCatalogOrOrders(t *testing.T) {
	orders := []entity.Order{
		// off-catalog product tied to the seller through an order
		{SellerID: "acme", ProductRef: "ghost", ProductName: "Deleted hat", Quantity: 1, VariantPrice: ndec(4), BuyerID: "b1", Placed: placed("2024-03-05T10:00:00")},
	}
	wishes := []entity.WishlistItem{
		{BuyerID: "b1", ProductRef: "P-100"},
		{BuyerID: "b2", ProductRef: "p1"},
		{BuyerID: "b3", ProductRef: "ghost"},
		{BuyerID: "b4", ProductRef: "someone-elses-product"},
	}
	rep, err := Compute(Params{
		SellerID: "acme", Granularity: entity.GranularityMonth,
		Now: testNow, Orders: orders, Products: acmeCatalog(), Wishlist: wishes,
	})
	require.NoError(t, err)

	byID := map[string]entity.ProductStat{}
	for _, p := range rep.Products {
		byID[p.ProductID] = p
	}
	require.Len(t, byID, 2)
	assert.Equal(t, 2, byID["p1"].InWishlist)
	assert.Equal(t, 1, byID["ghost"].InWishlist)
}

func TestFunnelViewsFromCatalogCounters(t *testing.T) {
	products := []entity.Product{
		{ID: "p1", SKU: sku("P-100"), SellerID: "acme", Name: "Mug", Price: dec(10), DeliveryCost: dec(2), Views: 12},
		{ID: "p2", SellerID: "acme", Name: "Cap", Price: dec(5), Views: 30},
	}
	orders := []entity.Order{
		{SellerID: "acme", ProductRef: "p1", Quantity: 1, VariantPrice: ndec(10), BuyerID: "b1", Placed: placed("2024-03-05T10:00:00")},
	}
	rep, err := Compute(Params{SellerID: "acme", Granularity: entity.GranularityMonth, Now: testNow, Orders: orders, Products: products})
	require.NoError(t, err)

	assert.Equal(t, 42, rep.Funnel.Views)
	assert.Equal(t, 1, rep.Funnel.Checkout)
	assert.Equal(t, 1, rep.Funnel.Completed)
	assert.Equal(t, 2, rep.TotalProducts)
}

func TestFunnelViewsFallbackWithoutCatalogData(t *testing.T) {
	orders := []entity.Order{
		{SellerID: "acme", ProductRef: "p1", Quantity: 3, VariantPrice: ndec(10), BuyerID: "b1", Placed: placed("2024-03-05T10:00:00")},
	}
	carts := []entity.CartItem{{BuyerID: "b2", ProductRef: "p1", Quantity: 2}}
	rep, err := Compute(Params{
		SellerID: "acme", Granularity: entity.GranularityMonth,
		Now: testNow, Orders: orders, Products: acmeCatalog(), CartItems: carts,
	})
	require.NoError(t, err)

	// catalog has no view data: inCart + inWishlist + sold stands in
	assert.Equal(t, 5, rep.Funnel.Views)
}

func TestCustomerStats(t *testing.T) {
	orders := []entity.Order{
		{SellerID: "acme", ProductRef: "p1", Quantity: 1, VariantPrice: ndec(10), Buyer: &entity.OrderBuyer{Email: "a@x.io"}, Placed: placed("2024-03-05T10:00:00")},
		{SellerID: "acme", ProductRef: "p1", Quantity: 1, VariantPrice: ndec(10), Buyer: &entity.OrderBuyer{Email: "a@x.io"}, Placed: placed("2024-03-06T10:00:00")},
		// bare identifier form of the buyer field
		{SellerID: "acme", ProductRef: "p1", Quantity: 1, VariantPrice: ndec(10), BuyerID: "b2", Placed: placed("2024-03-07T10:00:00")},
	}
	rep, err := Compute(Params{SellerID: "acme", Granularity: entity.GranularityMonth, Now: testNow, Orders: orders, Products: acmeCatalog()})
	require.NoError(t, err)

	assert.Equal(t, entity.CustomerStats{Total: 2, Repeat: 1, New: 1}, rep.Customers)
}

func TestComputeIsIdempotent(t *testing.T) {
	p := Params{
		SellerID: "acme", StoreName: "Acme", Granularity: entity.GranularityDay, Now: testNow,
		Orders: []entity.Order{
			{SellerID: "acme", ProductRef: "P-100", Quantity: 2, VariantPrice: ndec(10), DeliveryFee: ndec(1), Country: "NG", BuyerID: "b1", Placed: placed("2024-03-05T14:30:00")},
			{SellerID: "acme", ProductRef: "p1", Quantity: 1, VariantPrice: ndec(10), BuyerID: "b2", Placed: placed("2024-03-06T09:00:00")},
		},
		Products:  acmeCatalog(),
		CartItems: []entity.CartItem{{BuyerID: "b1", ProductRef: "p1", Quantity: 1}},
		Wishlist:  []entity.WishlistItem{{BuyerID: "b2", ProductRef: "P-100"}},
	}

	first, err := Compute(p)
	require.NoError(t, err)
	second, err := Compute(p)
	require.NoError(t, err)

	fj, err := json.Marshal(first)
	require.NoError(t, err)
	sj, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, fj, sj)
}

func TestInvalidGranularityDefaultsToMonth(t *testing.T) {
	rep, err := Compute(Params{SellerID: "acme", Granularity: "fortnight", Now: testNow})
	require.NoError(t, err)
	assert.Equal(t, entity.GranularityMonth, rep.Range)
}

func TestForeignSellerOrdersAreSkipped(t *testing.T) {
	orders := []entity.Order{
		{SellerID: "acme", ProductRef: "p1", Quantity: 1, VariantPrice: ndec(10), BuyerID: "b1", Placed: placed("2024-03-05T10:00:00")},
		{SellerID: "rival", ProductRef: "p1", Quantity: 9, VariantPrice: ndec(10), BuyerID: "b2", Placed: placed("2024-03-05T10:00:00")},
	}
	rep, err := Compute(Params{SellerID: "acme", Granularity: entity.GranularityMonth, Now: testNow, Orders: orders, Products: acmeCatalog()})
	require.NoError(t, err)

	assert.Equal(t, 1, rep.TotalOrders)
	assert.True(t, rep.Earnings.Equal(dec(10)))
}
