package ingestion

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sales-dashboard/backend/internal/domain/entity"
)

// dateLayouts are tried in order; ambiguous numeric dates are read month first.
var dateLayouts = []string{
	entity.DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"2006/1/2",
	"2006-1-2",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04",
	"01-02-2006",
	"1-2-2006",
	"01-02-06",
	"1/2/06",
	"02-Jan-2006",
	"2-Jan-2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
}

var currencyStripper = strings.NewReplacer("$", "", ",", "")

// parseDate parses a cell as a calendar date at midnight UTC.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// parseNumber parses a cell as a finite number.
func parseNumber(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// numberOrZero parses a cell as a number, defaulting to 0.
func numberOrZero(value string) float64 {
	n, _ := parseNumber(value)
	return n
}

// amountOrZero parses a money cell after stripping "$" and "," characters.
func amountOrZero(value string) float64 {
	return numberOrZero(currencyStripper.Replace(value))
}

// isQuantityCell reports whether a quantity cell passes validation.
// Blank cells pass and are later coerced to 0.
func isQuantityCell(value string) bool {
	if strings.TrimSpace(value) == "" {
		return true
	}
	_, ok := parseNumber(value)
	return ok
}
