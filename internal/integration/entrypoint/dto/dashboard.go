package dto

import (
	"github.com/shopspring/decimal"

	"github.com/sales-dashboard/backend/internal/application/usecase/upload"
	"github.com/sales-dashboard/backend/internal/domain/analytics"
)

// SeriesPointResponse is one labelled value of a chart series.
type SeriesPointResponse struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// SummaryResponse represents the headline metrics of an upload.
type SummaryResponse struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalQuantity  decimal.Decimal `json:"total_quantity"`
	UniqueProducts int             `json:"unique_products"`
	RecordCount    int             `json:"record_count"`
	AverageSale    decimal.Decimal `json:"average_sale"`
	Period         string          `json:"period"`
}

// DashboardResponse represents the dashboard of a user.
// SelectedUploadID is empty when the user has not uploaded anything yet.
type DashboardResponse struct {
	SelectedUploadID string                           `json:"selected_upload_id,omitempty"`
	Filename         string                           `json:"filename,omitempty"`
	Currency         string                           `json:"currency,omitempty"`
	Symbol           string                           `json:"symbol,omitempty"`
	Summary          *SummaryResponse                 `json:"summary,omitempty"`
	Series           map[string][]SeriesPointResponse `json:"series"`
	Uploads          []UploadOverviewResponse         `json:"uploads"`
}

// ToDashboardResponse converts the dashboard use case output to its response.
func ToDashboardResponse(output *upload.GetDashboardOutput) DashboardResponse {
	response := DashboardResponse{
		Series:  make(map[string][]SeriesPointResponse, len(output.Series)),
		Uploads: ToUploadOverviewResponses(output.Uploads),
	}
	for name, points := range output.Series {
		response.Series[name] = toSeriesPoints(points)
	}

	if output.Selected == nil {
		return response
	}

	s := output.Summary
	response.SelectedUploadID = output.Selected.ID.String()
	response.Filename = output.Selected.Filename
	response.Currency = string(output.Selected.Currency)
	response.Symbol = output.Selected.Currency.Symbol()
	response.Summary = &SummaryResponse{
		TotalRevenue:   s.TotalRevenue,
		TotalQuantity:  s.TotalQuantity,
		UniqueProducts: s.UniqueProducts,
		RecordCount:    s.RecordCount,
		AverageSale:    s.AverageSale,
		Period:         s.Period(),
	}
	return response
}

func toSeriesPoints(points []analytics.Point) []SeriesPointResponse {
	out := make([]SeriesPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, SeriesPointResponse{Label: p.Label, Value: p.Value})
	}
	return out
}
