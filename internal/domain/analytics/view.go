// Package analytics derives chart-ready summaries from normalized sales records.
//
// Everything here is recomputed from its input on each call and never stored.
// Revenue and quantity sums are accumulated with decimal arithmetic so that the
// per-product, per-month and per-weekday views agree with the grand total.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sales-dashboard/backend/internal/domain/entity"
)

// Series names consumed by the rendering sink.
const (
	SeriesSalesByProduct      = "sales_by_product"
	SeriesSalesTrend          = "sales_trend"
	SeriesRevenueDistribution = "revenue_distribution"
	SeriesTopProductsQty      = "top_products_qty"
	SeriesWeekdaySales        = "weekday_sales"
)

// TopProductsLimit is the number of products kept in the top-by-quantity view.
const TopProductsLimit = 8

// monthLayout labels the monthly trend buckets.
const monthLayout = "2006-01"

// SeriesNames lists every series in rendering order.
var SeriesNames = []string{
	SeriesSalesByProduct,
	SeriesSalesTrend,
	SeriesRevenueDistribution,
	SeriesTopProductsQty,
	SeriesWeekdaySales,
}

var weekdayOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// Point is one labelled value of a series.
type Point struct {
	Label string
	Value decimal.Decimal
}

// View holds the five derived series of an upload.
type View struct {
	// SalesByProduct is revenue per product, ascending by revenue.
	SalesByProduct []Point
	// SalesTrend is revenue per calendar month, chronological.
	SalesTrend []Point
	// RevenueDistribution is each product's share of total revenue.
	RevenueDistribution []Point
	// TopProductsQty is units sold for the best selling products, descending.
	TopProductsQty []Point
	// WeekdaySales is revenue per weekday, Monday to Sunday.
	WeekdaySales []Point
}

// Series returns the view keyed by series name.
func (v *View) Series() map[string][]Point {
	if v == nil {
		return map[string][]Point{}
	}
	return map[string][]Point{
		SeriesSalesByProduct:      v.SalesByProduct,
		SeriesSalesTrend:          v.SalesTrend,
		SeriesRevenueDistribution: v.RevenueDistribution,
		SeriesTopProductsQty:      v.TopProductsQty,
		SeriesWeekdaySales:        v.WeekdaySales,
	}
}

// Build computes every series from the records.
func Build(records []entity.SalesRecord) *View {
	return &View{
		SalesByProduct:      SalesByProduct(records),
		SalesTrend:          SalesTrend(records),
		RevenueDistribution: RevenueDistribution(records),
		TopProductsQty:      TopProductsByQuantity(records, TopProductsLimit),
		WeekdaySales:        WeekdaySales(records),
	}
}

// SalesByProduct sums revenue per product, sorted ascending by revenue.
// Products with equal revenue keep their first-seen order.
func SalesByProduct(records []entity.SalesRecord) []Point {
	points := groupByProduct(records, func(r entity.SalesRecord) float64 { return r.Total })
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Value.LessThan(points[j].Value)
	})
	return points
}

// SalesTrend sums revenue per calendar month in chronological order.
func SalesTrend(records []entity.SalesRecord) []Point {
	sums := make(map[string]decimal.Decimal)
	for _, r := range records {
		month := r.Date.Format(monthLayout)
		sums[month] = sums[month].Add(decimal.NewFromFloat(r.Total))
	}

	months := make([]string, 0, len(sums))
	for month := range sums {
		months = append(months, month)
	}
	sort.Strings(months)

	points := make([]Point, len(months))
	for i, month := range months {
		points[i] = Point{Label: month, Value: sums[month]}
	}
	return points
}

// RevenueDistribution returns each product's share of total revenue in
// first-seen product order. Shares are all zero when total revenue is zero.
func RevenueDistribution(records []entity.SalesRecord) []Point {
	points := groupByProduct(records, func(r entity.SalesRecord) float64 { return r.Total })

	total := decimal.Zero
	for _, p := range points {
		total = total.Add(p.Value)
	}

	for i := range points {
		if total.IsZero() {
			points[i].Value = decimal.Zero
			continue
		}
		points[i].Value = points[i].Value.Div(total)
	}
	return points
}

// TopProductsByQuantity sums units per product and keeps the limit largest,
// descending. Ties keep their first-seen order.
func TopProductsByQuantity(records []entity.SalesRecord, limit int) []Point {
	points := groupByProduct(records, func(r entity.SalesRecord) float64 { return r.Quantity })
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Value.GreaterThan(points[j].Value)
	})
	if limit >= 0 && len(points) > limit {
		points = points[:limit]
	}
	return points
}

// WeekdaySales sums revenue per weekday. All seven weekdays are always present.
func WeekdaySales(records []entity.SalesRecord) []Point {
	sums := make(map[time.Weekday]decimal.Decimal, len(weekdayOrder))
	for _, r := range records {
		day := r.Date.Weekday()
		sums[day] = sums[day].Add(decimal.NewFromFloat(r.Total))
	}

	points := make([]Point, len(weekdayOrder))
	for i, day := range weekdayOrder {
		points[i] = Point{Label: day.String(), Value: sums[day]}
	}
	return points
}

// groupByProduct sums a per-record value per product in first-seen order.
func groupByProduct(records []entity.SalesRecord, value func(entity.SalesRecord) float64) []Point {
	index := make(map[string]int)
	var points []Point
	for _, r := range records {
		i, ok := index[r.Product]
		if !ok {
			i = len(points)
			index[r.Product] = i
			points = append(points, Point{Label: r.Product, Value: decimal.Zero})
		}
		points[i].Value = points[i].Value.Add(decimal.NewFromFloat(value(r)))
	}
	return points
}
