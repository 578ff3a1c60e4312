package ingestion

import (
	"strings"

	domainerror "github.com/sales-dashboard/backend/internal/domain/error"
)

// Validate gates a table on its original headers and cell formats.
//
// The checks run in order and the first failure is returned:
// unresolved date/product/quantity columns, the absence of any price or total
// column, then any unparseable date or quantity cell.
func Validate(table *Table) error {
	found := make(map[string]int, len(requiredColumns))
	for _, column := range requiredColumns {
		for i, h := range table.Headers {
			if isSynonymOf(h, column) {
				found[column] = i
				break
			}
		}
	}

	if len(found) < len(requiredColumns) {
		var missing []string
		for _, column := range requiredColumns {
			if _, ok := found[column]; !ok {
				missing = append(missing, column)
			}
		}
		return domainerror.NewMissingColumnsError(missing)
	}

	if !hasPriceOrTotal(table.Headers) {
		return domainerror.NewUploadError(
			domainerror.ErrCodeMissingPriceOrTotal,
			"Missing price or total column",
			domainerror.ErrMissingPriceOrTotal,
		)
	}

	dateCol, qtyCol := found[ColumnDate], found[ColumnQuantity]
	for i := 0; i < table.Len(); i++ {
		if _, ok := parseDate(table.Cell(i, dateCol)); !ok {
			return invalidDateOrQuantity()
		}
		if !isQuantityCell(table.Cell(i, qtyCol)) {
			return invalidDateOrQuantity()
		}
	}

	return nil
}

func hasPriceOrTotal(headers []string) bool {
	for _, h := range headers {
		lower := strings.ToLower(h)
		if strings.Contains(lower, ColumnPrice) || strings.Contains(lower, ColumnTotal) {
			return true
		}
	}
	return false
}

func invalidDateOrQuantity() *domainerror.UploadError {
	return domainerror.NewUploadError(
		domainerror.ErrCodeInvalidDateOrQuantity,
		"Invalid date or quantity format",
		domainerror.ErrInvalidDateOrQuantity,
	)
}
