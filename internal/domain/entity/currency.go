package entity

import "strings"

// Currency identifies the currency a whole upload is expressed in.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyKSH Currency = "KSH"
)

var currencySymbols = map[string]string{
	string(CurrencyUSD): "$",
	string(CurrencyKSH): "KSh",
}

// Symbol returns the display symbol of the currency.
func (c Currency) Symbol() string {
	return CurrencySymbol(string(c))
}

// CurrencySymbol maps a currency code to its display symbol, matching the code
// case-insensitively. Unknown codes are returned unchanged.
func CurrencySymbol(code string) string {
	if symbol, ok := currencySymbols[strings.ToUpper(code)]; ok {
		return symbol
	}
	return code
}

// ParseCurrency converts a stored code into a Currency, defaulting to USD.
func ParseCurrency(code string) Currency {
	if strings.EqualFold(code, string(CurrencyKSH)) {
		return CurrencyKSH
	}
	return CurrencyUSD
}
