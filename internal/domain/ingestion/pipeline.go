package ingestion

import (
	"github.com/sales-dashboard/backend/internal/domain/entity"
)

// Result is the outcome of a successful ingestion.
type Result struct {
	Currency entity.Currency
	// Headers are the original, untouched table headers.
	Headers []string
	Records []entity.SalesRecord
}

// Process validates a raw table and converts it into sales records.
// A rejected table yields a *domainerror.UploadError and no records.
func Process(table *Table) (*Result, error) {
	if err := Validate(table); err != nil {
		return nil, err
	}

	currency := DetectCurrency(table.Headers)

	records, err := Coerce(table)
	if err != nil {
		return nil, err
	}

	headers := make([]string, len(table.Headers))
	copy(headers, table.Headers)

	return &Result{
		Currency: currency,
		Headers:  headers,
		Records:  records,
	}, nil
}
