// Package report renders downloadable sales reports.
package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/sales-dashboard/backend/internal/application/adapter"
	"github.com/sales-dashboard/backend/internal/domain/analytics"
)

const (
	summarySheet = "Summary"

	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type seriesSheet struct {
	name  string
	title string
	chart excelize.ChartType
}

// seriesSheets lists the chart sheets in workbook order.
var seriesSheets = []seriesSheet{
	{analytics.SeriesSalesByProduct, "Sales by Product", excelize.Bar},
	{analytics.SeriesSalesTrend, "Monthly Sales Trend", excelize.Line},
	{analytics.SeriesRevenueDistribution, "Revenue Distribution", excelize.Pie},
	{analytics.SeriesTopProductsQty, "Top Products by Quantity", excelize.Col},
	{analytics.SeriesWeekdaySales, "Sales by Day of Week", excelize.Col},
}

// ExcelRenderer implements adapter.ReportRenderer with an xlsx workbook.
type ExcelRenderer struct{}

// NewExcelRenderer creates a new ExcelRenderer.
func NewExcelRenderer() *ExcelRenderer {
	return &ExcelRenderer{}
}

// ContentType returns the xlsx MIME type.
func (r *ExcelRenderer) ContentType() string {
	return contentTypeXLSX
}

// Extension returns ".xlsx".
func (r *ExcelRenderer) Extension() string {
	return ".xlsx"
}

// Render writes the summary sheet and one chart sheet per series.
// A chart that cannot be drawn is skipped; its data stays in the workbook.
func (r *ExcelRenderer) Render(ctx context.Context, input adapter.ReportInput) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return nil, fmt.Errorf("failed to name summary sheet: %w", err)
	}
	if err := writeSummary(f, input); err != nil {
		return nil, err
	}

	series := input.View.Series()
	for _, s := range seriesSheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		points, ok := series[s.name]
		if !ok {
			continue
		}
		if err := writeSeries(f, s, points); err != nil {
			slog.Warn("Skipping report chart",
				"upload_id", input.Upload.ID,
				"series", s.name,
				"error", err,
			)
		}
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, input adapter.ReportInput) error {
	s := input.Summary
	symbol := input.Upload.Currency.Symbol()
	rows := [][]any{
		{"Sales Report"},
		{"File", input.Upload.Filename},
		{"Generated", input.GeneratedAt.Format("2006-01-02 15:04 MST")},
		{},
		{"Metric", "Value"},
		{"Total Revenue", fmt.Sprintf("%s %s", symbol, s.TotalRevenue.StringFixed(2))},
		{"Total Items Sold", s.TotalQuantity.InexactFloat64()},
		{"Unique Products", s.UniqueProducts},
		{"Average Sale", fmt.Sprintf("%s %s", symbol, s.AverageSale.StringFixed(2))},
		{"Period", s.Period()},
		{"Currency", string(input.Upload.Currency)},
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return f.SetColWidth(summarySheet, "A", "B", 24)
}

func writeSeries(f *excelize.File, s seriesSheet, points []analytics.Point) error {
	if _, err := f.NewSheet(s.name); err != nil {
		return err
	}

	header := []any{"Label", "Value"}
	if err := f.SetSheetRow(s.name, "A1", &header); err != nil {
		return err
	}
	for i, p := range points {
		row := []any{p.Label, p.Value.InexactFloat64()}
		if err := f.SetSheetRow(s.name, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	if len(points) == 0 {
		return fmt.Errorf("no data points")
	}

	last := len(points) + 1
	return f.AddChart(s.name, "D2", &excelize.Chart{
		Type: s.chart,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("'%s'!$B$1", s.name),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", s.name, last),
			Values:     fmt.Sprintf("'%s'!$B$2:$B$%d", s.name, last),
		}},
		Title:  []excelize.RichTextRun{{Text: s.title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	})
}
