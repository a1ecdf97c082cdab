package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Granularity is the time-bucketing resolution for a seller report.
type Granularity string

const (
	GranularityHour  Granularity = "hour"
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// ValidGranularities is a set of valid granularity selectors
var ValidGranularities = map[Granularity]bool{
	GranularityHour:  true,
	GranularityDay:   true,
	GranularityWeek:  true,
	GranularityMonth: true,
	GranularityYear:  true,
}

func (g Granularity) String() string {
	return string(g)
}

// SellerReport is the full analytics payload returned to the dashboard.
type SellerReport struct {
	StoreName      string            `json:"storeName"`
	Products       []ProductStat     `json:"products"`
	Earnings       decimal.Decimal   `json:"earnings"`
	TotalOrders    int               `json:"totalOrders"`
	TotalProducts  int               `json:"totalProducts"`
	AvgOrderValue  decimal.Decimal   `json:"avgOrderValue"`
	Months         []string          `json:"months"`
	MonthlySales   []decimal.Decimal `json:"monthlySales"`
	BestTimeToSell BestTimeToSell    `json:"bestTimeToSell"`
	SalesByRegion  []RegionSales     `json:"salesByRegion"`
	ProfitMargins  []ProfitMargin    `json:"profitMargins"`
	Funnel         Funnel            `json:"funnel"`
	Customers      CustomerStats     `json:"customers"`
	DateRange      DateRange         `json:"dateRange"`
	Range          Granularity       `json:"range"`
}

// ProductStat is the per-product merged accumulator exposed in the report.
type ProductStat struct {
	ProductID    string          `json:"productId"`
	Name         string          `json:"name"`
	Image        string          `json:"image"`
	Price        decimal.Decimal `json:"price"`
	Sold         int             `json:"sold"`
	DeliveryFees decimal.Decimal `json:"deliveryFees"`
	InCart       int             `json:"inCart"`
	InWishlist   int             `json:"inWishlist"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// BestTimeToSell exposes the hour-of-day histogram as 24 labeled buckets.
type BestTimeToSell struct {
	Labels []string          `json:"labels"`
	Sales  []decimal.Decimal `json:"sales"`
}

// RegionSales is one country row of the revenue breakdown.
type RegionSales struct {
	Country string          `json:"country"`
	Amount  decimal.Decimal `json:"amount"`
}

// ProfitMargin is one row of the margin table, emitted for every product
// with at least one sale.
type ProfitMargin struct {
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	Sold          int             `json:"sold"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	ProfitPerUnit decimal.Decimal `json:"profitPerUnit"`
	TotalProfit   decimal.Decimal `json:"totalProfit"`
}

// Funnel is the browse-to-purchase conversion funnel. Checkout and completed
// are identical counts: there is no tracked abandoned-checkout state.
type Funnel struct {
	Views       int `json:"views"`
	AddedToCart int `json:"addedToCart"`
	Checkout    int `json:"checkout"`
	Completed   int `json:"completed"`
}

// CustomerStats counts distinct and repeat buyers over the order history.
type CustomerStats struct {
	Total  int `json:"total"`
	Repeat int `json:"repeat"`
	New    int `json:"new"`
}

// DateRange is the observed order-history span.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
