package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sales-dashboard/backend/internal/domain/entity"
)

func record(day string, product string, qty, total float64) entity.SalesRecord {
	d, err := time.Parse(entity.DateLayout, day)
	if err != nil {
		panic(err)
	}
	return entity.SalesRecord{Date: d, Product: product, Quantity: qty, Total: total}
}

func labels(points []Point) []string {
	out := make([]string, len(points))
	for i, p := range points {
		out[i] = p.Label
	}
	return out
}

func sum(points []Point) decimal.Decimal {
	total := decimal.Zero
	for _, p := range points {
		total = total.Add(p.Value)
	}
	return total
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func sampleRecords() []entity.SalesRecord {
	return []entity.SalesRecord{
		record("2024-01-01", "Widget", 3, 30),   // Monday
		record("2024-01-03", "Gadget", 10, 5.5), // Wednesday
		record("2024-02-05", "Widget", 1, 10),   // Monday
		record("2024-02-10", "Doohickey", 2, 100.25),
		record("2023-12-31", "Gadget", 4, 0.1), // Sunday
	}
}

func TestSalesByProduct_AscendingRevenue(t *testing.T) {
	points := SalesByProduct(sampleRecords())

	assert.Equal(t, []string{"Gadget", "Widget", "Doohickey"}, labels(points))
	assertDecimal(t, "5.6", points[0].Value)
	assertDecimal(t, "40", points[1].Value)
	assertDecimal(t, "100.25", points[2].Value)
}

func TestSalesTrend_Chronological(t *testing.T) {
	points := SalesTrend(sampleRecords())

	assert.Equal(t, []string{"2023-12", "2024-01", "2024-02"}, labels(points))
	assertDecimal(t, "0.1", points[0].Value)
	assertDecimal(t, "35.5", points[1].Value)
	assertDecimal(t, "110.25", points[2].Value)
}

func TestRevenueDistribution_SumsToOne(t *testing.T) {
	points := RevenueDistribution(sampleRecords())

	assert.Equal(t, []string{"Widget", "Gadget", "Doohickey"}, labels(points))
	total, _ := sum(points).Float64()
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestRevenueDistribution_ZeroRevenue(t *testing.T) {
	points := RevenueDistribution([]entity.SalesRecord{
		record("2024-01-01", "Widget", 1, 0),
		record("2024-01-02", "Gadget", 1, 0),
	})

	require.Len(t, points, 2)
	for _, p := range points {
		assert.True(t, p.Value.IsZero())
	}
}

func TestTopProductsByQuantity(t *testing.T) {
	var records []entity.SalesRecord
	products := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	for i, p := range products {
		records = append(records, record("2024-01-01", p, float64(i%3), 1))
	}

	points := TopProductsByQuantity(records, TopProductsLimit)

	require.Len(t, points, TopProductsLimit)
	// quantities: A0 B1 C2 D0 E1 F2 G0 H1 I2 J0; ties keep first-seen order
	assert.Equal(t, []string{"C", "F", "I", "B", "E", "H", "A", "D"}, labels(points))
	assertDecimal(t, "2", points[0].Value)
}

func TestTopProductsByQuantity_FewerThanLimit(t *testing.T) {
	points := TopProductsByQuantity(sampleRecords(), TopProductsLimit)

	assert.Equal(t, []string{"Gadget", "Widget", "Doohickey"}, labels(points))
	assertDecimal(t, "14", points[0].Value)
}

func TestWeekdaySales_AlwaysSevenDays(t *testing.T) {
	points := WeekdaySales([]entity.SalesRecord{record("2024-01-03", "Widget", 1, 12)})

	require.Len(t, points, 7)
	assert.Equal(t,
		[]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
		labels(points),
	)
	assertDecimal(t, "12", points[2].Value)
	assert.True(t, points[0].Value.IsZero())
	assert.True(t, points[6].Value.IsZero())
}

func TestBuild_ViewsAgreeWithGrandTotal(t *testing.T) {
	records := sampleRecords()

	view := Build(records)
	summary := Summarize(records)

	assert.True(t, sum(view.SalesByProduct).Equal(summary.TotalRevenue))
	assert.True(t, sum(view.SalesTrend).Equal(summary.TotalRevenue))
	assert.True(t, sum(view.WeekdaySales).Equal(summary.TotalRevenue))
}

func TestBuild_EmptyRecords(t *testing.T) {
	view := Build(nil)

	assert.Empty(t, view.SalesByProduct)
	assert.Empty(t, view.SalesTrend)
	assert.Empty(t, view.RevenueDistribution)
	assert.Empty(t, view.TopProductsQty)
	assert.Len(t, view.WeekdaySales, 7)
}

func TestView_SeriesKeys(t *testing.T) {
	series := Build(sampleRecords()).Series()

	require.Len(t, series, len(SeriesNames))
	for _, name := range SeriesNames {
		assert.Contains(t, series, name)
	}

	var nilView *View
	assert.Empty(t, nilView.Series())
}
