package ingestion

import (
	"strings"

	"github.com/sales-dashboard/backend/internal/domain/entity"
)

// DetectCurrency derives the table currency from its original headers.
// Any header mentioning "ksh" marks the whole table as KSH; otherwise USD.
func DetectCurrency(headers []string) entity.Currency {
	for _, h := range headers {
		if strings.Contains(strings.ToLower(h), "ksh") {
			return entity.CurrencyKSH
		}
	}
	return entity.CurrencyUSD
}
