package ingestion

import (
	"sort"
	"strings"
)

// Canonical column names.
const (
	ColumnDate     = "date"
	ColumnProduct  = "product"
	ColumnQuantity = "quantity"
	ColumnPrice    = "price"
	ColumnTotal    = "total"
)

// headerSynonyms maps every accepted header variant to its canonical name.
var headerSynonyms = map[string]string{
	"date":             ColumnDate,
	"sale date":        ColumnDate,
	"transaction date": ColumnDate,
	"order date":       ColumnDate,

	"product":     ColumnProduct,
	"item":        ColumnProduct,
	"description": ColumnProduct,
	"name":        ColumnProduct,

	"quantity": ColumnQuantity,
	"qty":      ColumnQuantity,
	"units":    ColumnQuantity,

	"price (ksh)": ColumnPrice,
	"price(ksh)":  ColumnPrice,
	"price (usd)": ColumnPrice,
	"price(usd)":  ColumnPrice,

	"total (ksh)": ColumnTotal,
	"total(ksh)":  ColumnTotal,
	"total (usd)": ColumnTotal,
	"total(usd)":  ColumnTotal,
}

// requiredColumns lists the columns every table must resolve, in reporting order.
var requiredColumns = []string{ColumnDate, ColumnProduct, ColumnQuantity}

// foldHeader trims and lowercases a header for comparison.
func foldHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

// NormalizeHeader maps a raw header to its canonical name. Headers without a
// synonym are returned trimmed and lowercased.
func NormalizeHeader(header string) string {
	folded := foldHeader(header)
	if canonical, ok := headerSynonyms[folded]; ok {
		return canonical
	}
	return folded
}

// NormalizeHeaders returns a new slice with every header normalized.
func NormalizeHeaders(headers []string) []string {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeHeader(h)
	}
	return normalized
}

// SynonymsFor returns the accepted header variants of a canonical column, sorted.
func SynonymsFor(column string) []string {
	var synonyms []string
	for variant, canonical := range headerSynonyms {
		if canonical == column {
			synonyms = append(synonyms, variant)
		}
	}
	sort.Strings(synonyms)
	return synonyms
}

// isSynonymOf reports whether a raw header is an accepted variant of column.
func isSynonymOf(header, column string) bool {
	canonical, ok := headerSynonyms[foldHeader(header)]
	return ok && canonical == column
}

// indexOf returns the position of the first header equal to name, or -1.
func indexOf(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	return -1
}

// indexContaining returns the position of the first header containing substr, or -1.
func indexContaining(headers []string, substr string) int {
	for i, h := range headers {
		if strings.Contains(h, substr) {
			return i
		}
	}
	return -1
}
