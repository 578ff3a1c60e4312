package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sales-dashboard/backend/internal/domain/entity"
)

// Summary holds the headline figures of an upload.
type Summary struct {
	TotalRevenue   decimal.Decimal
	TotalQuantity  decimal.Decimal
	UniqueProducts int
	RecordCount    int
	// AverageSale is revenue per record; zero for an empty upload.
	AverageSale decimal.Decimal
	FirstDate   time.Time
	LastDate    time.Time
}

// Summarize computes the headline figures of the records.
func Summarize(records []entity.SalesRecord) Summary {
	summary := Summary{
		TotalRevenue:  decimal.Zero,
		TotalQuantity: decimal.Zero,
		AverageSale:   decimal.Zero,
		RecordCount:   len(records),
	}

	products := make(map[string]struct{})
	for i, r := range records {
		summary.TotalRevenue = summary.TotalRevenue.Add(decimal.NewFromFloat(r.Total))
		summary.TotalQuantity = summary.TotalQuantity.Add(decimal.NewFromFloat(r.Quantity))
		products[r.Product] = struct{}{}

		if i == 0 || r.Date.Before(summary.FirstDate) {
			summary.FirstDate = r.Date
		}
		if i == 0 || r.Date.After(summary.LastDate) {
			summary.LastDate = r.Date
		}
	}
	summary.UniqueProducts = len(products)

	if len(records) > 0 {
		summary.AverageSale = summary.TotalRevenue.Div(decimal.NewFromInt(int64(len(records))))
	}

	return summary
}

// Period renders the covered date range as "first to last".
func (s Summary) Period() string {
	if s.RecordCount == 0 {
		return ""
	}
	return s.FirstDate.Format(entity.DateLayout) + " to " + s.LastDate.Format(entity.DateLayout)
}
