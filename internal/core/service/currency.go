package service

import (
	"log/slog"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/niksmo/storefront/internal/core/domain"
)

var pricePrinter = message.NewPrinter(language.AmericanEnglish)

// Convert converts an amount denominated in [domain.BaseCurrency] into
// the target currency. A NaN, infinite or negative amount is treated
// as 0. The base currency converts to itself, a currency missing from
// the table logs a warning and falls back to the unconverted base
// amount, conversion never fails.
func Convert(amount float64, currency string, rates domain.RateTable) float64 {
	const op = "service.Convert"

	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		amount = 0
	}

	rate, ok := rates.Rate(currency)
	if !ok {
		slog.Warn("no exchange rate, using base amount",
			"op", op, "currency", currency)
		return amount
	}
	return amount * rate
}

// FormatPrice renders an amount with its currency symbol and thousands
// separators. Zero-decimal currencies render without a fraction, all
// others with exactly two digits. A NaN or infinite amount renders as
// zero, "$0.00" or "¥0".
func FormatPrice(amount float64, currency string) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}

	sym := domain.Symbol(currency)
	if domain.ZeroDecimal(currency) {
		return pricePrinter.Sprintf("%s%.0f", sym, amount)
	}
	return pricePrinter.Sprintf("%s%.2f", sym, amount)
}

// ConvertFormat converts the base amount and renders the result.
func ConvertFormat(amount float64, currency string, rates domain.RateTable) string {
	return FormatPrice(Convert(amount, currency, rates), currency)
}

// Total sums the converted prices of the quote entries, an empty
// sequence totals 0.
func Total(items []domain.QuoteEntry, currency string, rates domain.RateTable) float64 {
	var total float64
	for _, item := range items {
		total += Convert(item.Price, currency, rates)
	}
	return total
}
