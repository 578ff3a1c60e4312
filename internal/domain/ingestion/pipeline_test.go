package ingestion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sales-dashboard/backend/internal/domain/entity"
	domainerror "github.com/sales-dashboard/backend/internal/domain/error"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProcess_KSHTableWithoutTotal(t *testing.T) {
	table := &Table{
		Headers: []string{"Date", "Item", "Qty", "Price (KSH)"},
		Rows:    [][]string{{"2024-01-05", "Widget", "3", "10"}},
	}

	result, err := Process(table)

	require.NoError(t, err)
	assert.Equal(t, entity.CurrencyKSH, result.Currency)
	assert.Equal(t, []string{"Date", "Item", "Qty", "Price (KSH)"}, result.Headers)
	require.Len(t, result.Records, 1)

	record := result.Records[0]
	assert.Equal(t, "2024-01-05", record.Date.Format(entity.DateLayout))
	assert.Equal(t, "Widget", record.Product)
	assert.Equal(t, 3.0, record.Quantity)
	require.NotNil(t, record.Price)
	assert.Equal(t, 10.0, *record.Price)
	assert.Equal(t, 30.0, record.Total)
}

func TestProcess_RejectsTableWithoutPriceOrTotal(t *testing.T) {
	table := &Table{
		Headers: []string{"Date", "Product", "Quantity"},
		Rows:    [][]string{{"2024-01-05", "Widget", "3"}},
	}

	result, err := Process(table)

	assert.Nil(t, result)
	requireUploadError(t, err, domainerror.ErrCodeMissingPriceOrTotal)
	assert.ErrorIs(t, err, domainerror.ErrMissingPriceOrTotal)
}

func TestProcess_RejectsTableWithoutQuantity(t *testing.T) {
	result, err := Process(&Table{Headers: []string{"Date", "Product"}})

	assert.Nil(t, result)
	uploadErr := requireUploadError(t, err, domainerror.ErrCodeMissingColumns)
	assert.Equal(t, []string{"quantity"}, uploadErr.Fields)
}

func TestProcess_KeepsNonZeroSourceTotals(t *testing.T) {
	table := &Table{
		Headers: []string{"Date", "Product", "Quantity", "Price", "Total"},
		Rows: [][]string{
			{"2024-01-05", "Widget", "2", "50", "$100"},
			{"2024-01-06", "Gadget", "5", "0", "$0"},
		},
	}

	result, err := Process(table)

	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Equal(t, 100.0, result.Records[0].Total)
	assert.Equal(t, 0.0, result.Records[1].Total)
}

func TestProcess_RecomputesAllZeroTotals(t *testing.T) {
	table := &Table{
		Headers: []string{"Date", "Product", "Quantity", "Price", "Total"},
		Rows: [][]string{
			{"2024-01-05", "Widget", "2", "50", "0"},
			{"2024-01-06", "Gadget", "5", "20", "$0"},
		},
	}

	result, err := Process(table)

	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Equal(t, 100.0, result.Records[0].Total)
	assert.Equal(t, 100.0, result.Records[1].Total)
}

func TestProcess_RecomputesOffsettingTotals(t *testing.T) {
	// A sale and its full return sum to zero; the totals are recomputed anyway.
	table := &Table{
		Headers: []string{"Date", "Product", "Quantity", "Price", "Total"},
		Rows: [][]string{
			{"2024-01-05", "Widget", "2", "50", "100"},
			{"2024-01-06", "Widget", "-2", "50", "-100"},
			{"2024-01-07", "Gadget", "1", "7", ""},
		},
	}

	result, err := Process(table)

	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Records[0].Total)
	assert.Equal(t, -100.0, result.Records[1].Total)
	assert.Equal(t, 7.0, result.Records[2].Total)
}

func TestProcess_TotalOnlyTable(t *testing.T) {
	table := &Table{
		Headers: []string{"Sale Date", "Name", "Units", "Total (USD)"},
		Rows: [][]string{
			{"2024-02-01", "Widget", "4", "$1,250.50"},
			{"2024-02-02", "Gadget", "", "abc"},
		},
	}

	result, err := Process(table)

	require.NoError(t, err)
	assert.Equal(t, entity.CurrencyUSD, result.Currency)
	assert.Nil(t, result.Records[0].Price)
	assert.Equal(t, 1250.50, result.Records[0].Total)
	assert.Equal(t, 0.0, result.Records[1].Quantity)
	assert.Equal(t, 0.0, result.Records[1].Total)
}

func TestProcess_PriceCellsAreStripped(t *testing.T) {
	table := &Table{
		Headers: []string{"Date", "Product", "Quantity", "Unit Price"},
		Rows: [][]string{
			{"2024-03-01", "Widget", "2", "$1,000"},
			{"2024-03-02", "Gadget", "3", "n/a"},
		},
	}

	result, err := Process(table)

	require.NoError(t, err)
	assert.Equal(t, 1000.0, *result.Records[0].Price)
	assert.Equal(t, 2000.0, result.Records[0].Total)
	assert.Equal(t, 0.0, *result.Records[1].Price)
	assert.Equal(t, 0.0, result.Records[1].Total)
}

func TestProcess_PreservesRowOrderAndParsesDateFormats(t *testing.T) {
	table := &Table{
		Headers: []string{"Transaction Date", "Product", "Qty", "Price(USD)"},
		Rows: [][]string{
			{"03/15/2024", "C", "1", "1"},
			{"2024-01-02 10:30:00", "A", "1", "1"},
			{"Feb 3, 2024", "B", "1", "1"},
		},
	}

	result, err := Process(table)

	require.NoError(t, err)
	require.Len(t, result.Records, 3)
	assert.Equal(t, "C", result.Records[0].Product)
	assert.Equal(t, date(2024, time.March, 15), result.Records[0].Date)
	assert.Equal(t, date(2024, time.January, 2), result.Records[1].Date)
	assert.Equal(t, date(2024, time.February, 3), result.Records[2].Date)
}

func TestProcess_KeepsProductCellsAsWritten(t *testing.T) {
	table := &Table{
		Headers: []string{"Date", "Product", "Quantity", "Total"},
		Rows: [][]string{
			{"2024-01-05", "Widget", "1", "10"},
			{"2024-01-06", "Widget ", "1", "10"},
		},
	}

	result, err := Process(table)

	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "Widget", result.Records[0].Product)
	assert.Equal(t, "Widget ", result.Records[1].Product)
}

func TestProcess_EveryRecordHasTotalWhenNoSourceTotal(t *testing.T) {
	table := &Table{
		Headers: []string{"Date", "Product", "Quantity", "Price"},
		Rows: [][]string{
			{"2024-01-01", "A", "1.5", "4"},
			{"2024-01-02", "B", "2", "2.25"},
			{"2024-01-03", "C", "0", "9"},
		},
	}

	result, err := Process(table)

	require.NoError(t, err)
	for _, r := range result.Records {
		assert.Equal(t, r.Quantity*r.PriceOrZero(), r.Total)
	}
}

func TestProcess_IsIdempotent(t *testing.T) {
	table := &Table{
		Headers: []string{"Date", "Item", "Qty", "Price (KSH)", "Total (KSH)"},
		Rows: [][]string{
			{"2024-01-05", "Widget", "3", "10", "30"},
			{"2024-01-06", "Gadget", "2", "$5", ""},
		},
	}

	first, err := Process(table)
	require.NoError(t, err)
	second, err := Process(table)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCoerce_ColumnMappingFailure(t *testing.T) {
	// Coerce is reachable directly; a table that skipped validation must not
	// produce records.
	_, err := Coerce(&Table{Headers: []string{"Day", "Product", "Quantity", "Price"}})

	uploadErr := requireUploadError(t, err, domainerror.ErrCodeColumnMappingFailure)
	assert.Equal(t, "Column mapping failed", uploadErr.Message)
}

func TestCoerce_InvalidDateIsFatal(t *testing.T) {
	_, err := Coerce(&Table{
		Headers: []string{"Date", "Product", "Quantity", "Price"},
		Rows:    [][]string{{"2024-13-45", "Widget", "1", "1"}},
	})

	requireUploadError(t, err, domainerror.ErrCodeInvalidDateOrQuantity)
}

func TestTable_CellOnShortRow(t *testing.T) {
	table := &Table{
		Headers: []string{"a", "b", "c"},
		Rows:    [][]string{{"1"}},
	}

	assert.Equal(t, "1", table.Cell(0, 0))
	assert.Equal(t, "", table.Cell(0, 2))
	assert.Equal(t, "", table.Cell(3, 0))
}
