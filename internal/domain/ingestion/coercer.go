package ingestion

import (
	"github.com/sales-dashboard/backend/internal/domain/entity"
	domainerror "github.com/sales-dashboard/backend/internal/domain/error"
)

// Coerce converts every row of a validated table into a SalesRecord.
//
// Quantities, prices and totals that cannot be parsed become 0. When the table
// has no total column, or its totals sum to exactly 0, every total is
// recomputed as quantity * price. A zero-sum total column is treated as absent
// even when it holds legitimate offsetting values.
func Coerce(table *Table) ([]entity.SalesRecord, error) {
	headers := NormalizeHeaders(table.Headers)

	dateCol := indexOf(headers, ColumnDate)
	productCol := indexOf(headers, ColumnProduct)
	qtyCol := indexOf(headers, ColumnQuantity)
	if dateCol < 0 || productCol < 0 || qtyCol < 0 {
		return nil, domainerror.NewUploadError(
			domainerror.ErrCodeColumnMappingFailure,
			"Column mapping failed",
			domainerror.ErrColumnMappingFailure,
		)
	}

	priceCol := indexContaining(headers, ColumnPrice)
	totalCol := indexContaining(headers, ColumnTotal)

	records := make([]entity.SalesRecord, table.Len())
	var totalSum float64

	for i := range records {
		date, ok := parseDate(table.Cell(i, dateCol))
		if !ok {
			return nil, invalidDateOrQuantity()
		}

		record := entity.SalesRecord{
			Date:     date,
			Product:  table.Cell(i, productCol),
			Quantity: numberOrZero(table.Cell(i, qtyCol)),
		}

		if priceCol >= 0 {
			price := amountOrZero(table.Cell(i, priceCol))
			record.Price = &price
		}
		if totalCol >= 0 {
			record.Total = amountOrZero(table.Cell(i, totalCol))
			totalSum += record.Total
		}

		records[i] = record
	}

	if totalCol < 0 || totalSum == 0 {
		for i := range records {
			records[i].Total = records[i].Quantity * records[i].PriceOrZero()
		}
	}

	return records, nil
}
