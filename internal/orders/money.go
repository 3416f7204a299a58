package orders

import (
	"strings"

	"github.com/shopspring/decimal"
)

const defaultCurrency = "USD"

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// FormatPrice renders a minor-unit amount with two decimals, e.g. 499 USD -> "$4.99".
func FormatPrice(minor int64, currency string) string {
	amount := decimal.New(minor, -2).StringFixed(2)
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = defaultCurrency
	}
	if symbol, ok := currencySymbols[code]; ok {
		return symbol + amount
	}
	return code + " " + amount
}
