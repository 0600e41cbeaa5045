// Package money formats monetary amounts for display: symbol-prefixed
// numeric strings and spelled-out English amounts-in-words.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/toolthread/transaction-tracker/internal/domain/entity"
)

var currencySymbols = map[entity.CurrencyCode]string{
	entity.USD: "$",
	entity.GBP: "£",
	entity.NGN: "₦",
}

// Symbol returns the display symbol for a currency code. Unknown codes
// fall back to the dollar sign, matching the screen formatter.
func Symbol(code entity.CurrencyCode) string {
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	return "$"
}

// Amounts beyond this lose precision through float64, so locale
// formatting is skipped in favor of the exact fallback.
var maxLocaleAmount = decimal.New(1, 15)

// Formatter renders amounts as currency strings. The primary path uses
// locale-aware digit grouping; when that is not usable the formatter
// silently degrades to "<symbol><amount fixed to 2 decimals>". Format
// never fails.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter creates a formatter for English-locale output.
func NewFormatter() *Formatter {
	return &Formatter{printer: message.NewPrinter(language.English)}
}

// Format renders the amount with the currency's symbol and two fraction
// digits, e.g. Format(1234.5, USD) == "$1,234.50". The amount is assumed
// to already be denominated in the given currency.
func (f *Formatter) Format(amount decimal.Decimal, code entity.CurrencyCode) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fallbackFormat(amount, code)
		}
	}()

	if f == nil || f.printer == nil || amount.Abs().GreaterThanOrEqual(maxLocaleAmount) {
		return fallbackFormat(amount, code)
	}

	value, _ := amount.Float64()
	return Symbol(code) + f.printer.Sprintf("%v", number.Decimal(value, number.Scale(2)))
}

func fallbackFormat(amount decimal.Decimal, code entity.CurrencyCode) string {
	return Symbol(code) + amount.StringFixed(2)
}
