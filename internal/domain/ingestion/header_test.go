package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sales-dashboard/backend/internal/domain/entity"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		header   string
		expected string
	}{
		{"Date", ColumnDate},
		{"  Sale Date ", ColumnDate},
		{"TRANSACTION DATE", ColumnDate},
		{"order date", ColumnDate},
		{"Item", ColumnProduct},
		{"Description", ColumnProduct},
		{"Name", ColumnProduct},
		{"Qty", ColumnQuantity},
		{"Units", ColumnQuantity},
		{"Price (KSH)", ColumnPrice},
		{"price(usd)", ColumnPrice},
		{"Total (USD)", ColumnTotal},
		{"TOTAL(KSH)", ColumnTotal},
		{"Price", "price"},
		{"Total", "total"},
		{" Unit Price ", "unit price"},
		{"Region", "region"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeHeader(tt.header))
		})
	}
}

func TestNormalizeHeaders_LeavesInputUntouched(t *testing.T) {
	original := []string{"Date", "Item", "Qty", "Price (KSH)"}
	normalized := NormalizeHeaders(original)

	assert.Equal(t, []string{"date", "product", "quantity", "price"}, normalized)
	assert.Equal(t, []string{"Date", "Item", "Qty", "Price (KSH)"}, original)
}

func TestSynonymsFor(t *testing.T) {
	assert.Equal(t, []string{"qty", "quantity", "units"}, SynonymsFor(ColumnQuantity))
	assert.Equal(t, []string{"date", "order date", "sale date", "transaction date"}, SynonymsFor(ColumnDate))
	assert.Empty(t, SynonymsFor("region"))
}

func TestDetectCurrency(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		expected entity.Currency
	}{
		{"annotated price", []string{"Date", "Item", "Qty", "Price (KSH)"}, entity.CurrencyKSH},
		{"lowercase total", []string{"date", "product", "quantity", "total(ksh)"}, entity.CurrencyKSH},
		{"usd annotation", []string{"Date", "Product", "Quantity", "Price (USD)"}, entity.CurrencyUSD},
		{"no annotation", []string{"Date", "Product", "Quantity", "Price"}, entity.CurrencyUSD},
		{"no headers", nil, entity.CurrencyUSD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectCurrency(tt.headers))
		})
	}
}
