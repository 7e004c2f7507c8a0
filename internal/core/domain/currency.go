package domain

// BaseCurrency is the currency all catalog prices are denominated in.
// Every rate in a RateTable is a multiplier against it.
const BaseCurrency = "USD"

// RateTable maps a currency code to its multiplier against [BaseCurrency].
// The base currency itself is implicit and always rates 1.
type RateTable map[string]float64

// Rate returns the multiplier for the given code, the base currency
// resolves to 1 even when absent from the table.
func (t RateTable) Rate(code string) (float64, bool) {
	if code == BaseCurrency {
		return 1, true
	}
	r, ok := t[code]
	return r, ok
}

// FallbackRates returns the hardcoded table substituted when the live
// rate source is unavailable or invalid.
func FallbackRates() RateTable {
	return RateTable{
		"USD": 1,
		"EUR": 0.92,
		"GBP": 0.79,
		"JPY": 149.50,
		"MXN": 17.20,
	}
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"MXN": "$",
}

var currencyNames = map[string]string{
	"USD": "US Dollar",
	"EUR": "Euro",
	"GBP": "British Pound",
	"JPY": "Japanese Yen",
	"MXN": "Mexican Peso",
}

// Currencies without a minor unit, rendered with zero decimal places.
var zeroDecimalCurrencies = map[string]bool{
	"JPY": true,
}

// Symbol returns the display symbol for the code, "$" for unknown codes.
func Symbol(code string) string {
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	return "$"
}

// CurrencyName returns the human readable name, the code itself
// for unknown codes.
func CurrencyName(code string) string {
	if n, ok := currencyNames[code]; ok {
		return n
	}
	return code
}

// ZeroDecimal reports whether the currency renders without decimals.
func ZeroDecimal(code string) bool {
	return zeroDecimalCurrencies[code]
}

// Supported reports whether the code is one of the five selectable
// storefront currencies.
func Supported(code string) bool {
	_, ok := currencySymbols[code]
	return ok
}

// SupportedCurrencies returns the selectable codes in display order.
func SupportedCurrencies() []string {
	return []string{"USD", "EUR", "GBP", "JPY", "MXN"}
}
