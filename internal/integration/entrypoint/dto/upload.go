package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sales-dashboard/backend/internal/application/usecase/upload"
	"github.com/sales-dashboard/backend/internal/domain/analytics"
	"github.com/sales-dashboard/backend/internal/domain/entity"
	"github.com/sales-dashboard/backend/internal/domain/ingestion"
)

// UploadStatsResponse mirrors the stats shown after a successful upload.
type UploadStatsResponse struct {
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalProducts int             `json:"total_products"`
	TimePeriod    string          `json:"time_period"`
	Currency      string          `json:"currency"`
	Symbol        string          `json:"symbol"`
}

// UploadResponse represents an accepted upload.
type UploadResponse struct {
	Message  string              `json:"message"`
	UploadID string              `json:"upload_id"`
	Filename string              `json:"filename"`
	Records  int                 `json:"records"`
	Stats    UploadStatsResponse `json:"stats"`
}

// UploadOverviewResponse represents one entry of the upload history.
type UploadOverviewResponse struct {
	ID           string          `json:"id"`
	Filename     string          `json:"filename"`
	UploadedAt   time.Time       `json:"uploaded_at"`
	Currency     string          `json:"currency"`
	Symbol       string          `json:"symbol"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	RecordCount  int             `json:"record_count"`
	IsActive     bool            `json:"is_active"`
}

// UploadListResponse represents the upload history of a user.
type UploadListResponse struct {
	Uploads []UploadOverviewResponse `json:"uploads"`
}

// ToUploadResponse converts an accepted upload to its response.
func ToUploadResponse(output *upload.UploadSalesFileOutput) UploadResponse {
	u := output.Upload
	return UploadResponse{
		Message:  "File uploaded successfully",
		UploadID: u.ID.String(),
		Filename: u.Filename,
		Records:  len(u.Records),
		Stats:    toStatsResponse(u, output.Summary),
	}
}

func toStatsResponse(u *entity.Upload, s analytics.Summary) UploadStatsResponse {
	return UploadStatsResponse{
		TotalSales:    s.TotalRevenue,
		TotalProducts: s.UniqueProducts,
		TimePeriod:    s.Period(),
		Currency:      string(u.Currency),
		Symbol:        u.Currency.Symbol(),
	}
}

// ToUploadOverviewResponses converts upload listings to responses.
func ToUploadOverviewResponses(overviews []upload.UploadOverview) []UploadOverviewResponse {
	responses := make([]UploadOverviewResponse, 0, len(overviews))
	for _, o := range overviews {
		responses = append(responses, UploadOverviewResponse{
			ID:           o.ID.String(),
			Filename:     o.Filename,
			UploadedAt:   o.UploadedAt,
			Currency:     string(o.Currency),
			Symbol:       o.Symbol,
			TotalRevenue: o.TotalRevenue,
			RecordCount:  o.RecordCount,
			IsActive:     o.IsActive,
		})
	}
	return responses
}

// MissingColumnsDetails lists the header spellings accepted for each missing column.
func MissingColumnsDetails(fields []string) string {
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		synonyms := ingestion.SynonymsFor(field)
		if len(synonyms) == 0 {
			continue
		}
		parts = append(parts, field+": "+strings.Join(synonyms, ", "))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Accepted headers. " + strings.Join(parts, "; ")
}
