package money

import (
	"errors"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/toolthread/transaction-tracker/internal/domain/entity"
)

// ErrNegativeAmount is returned when a negative amount is passed to
// AmountInWords. Negative receipt totals always indicate caller
// corruption, so they are rejected rather than clamped.
var ErrNegativeAmount = errors.New("amount must not be negative")

// ErrAmountTooLarge is returned for amounts whose integer part exceeds
// the short-scale naming table (beyond quintillions).
var ErrAmountTooLarge = errors.New("amount is too large to spell out")

// currencyUnits names the major and minor denominations of a currency.
type currencyUnits struct {
	major string
	minor string
}

var unitNames = map[entity.CurrencyCode]currencyUnits{
	entity.NGN: {major: "Naira", minor: "Kobo"},
	entity.USD: {major: "Dollars", minor: "Cents"},
	entity.GBP: {major: "Pounds", minor: "Pence"},
}

func unitsFor(code entity.CurrencyCode) currencyUnits {
	if u, ok := unitNames[code]; ok {
		return u
	}
	// The currency set is closed; this fallback only matters for
	// callers that bypass entity validation.
	return unitNames[entity.NGN]
}

var onesNames = [...]string{
	"zero", "one", "two", "three", "four", "five", "six", "seven",
	"eight", "nine", "ten", "eleven", "twelve", "thirteen", "fourteen",
	"fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
}

var tensNames = [...]string{
	"", "", "twenty", "thirty", "forty", "fifty",
	"sixty", "seventy", "eighty", "ninety",
}

var scaleNames = [...]string{
	"", "thousand", "million", "billion",
	"trillion", "quadrillion", "quintillion",
}

// AmountInWords spells out a non-negative amount in English with the
// currency's unit names, e.g. AmountInWords(150.50, NGN) ==
// "One hundred fifty Naira and fifty Kobo". Whole amounts end in
// " only"; a zero amount renders as "Zero <Major> only". Only the first
// two fractional digits are considered; further digits are truncated.
func AmountInWords(amount decimal.Decimal, code entity.CurrencyCode) (string, error) {
	if amount.IsNegative() {
		return "", ErrNegativeAmount
	}

	intPart := amount.Truncate(0)
	if !intPart.BigInt().IsInt64() {
		return "", ErrAmountTooLarge
	}

	major := intPart.IntPart()
	minor := amount.Sub(intPart).Shift(2).Truncate(0).IntPart()

	units := unitsFor(code)

	var b strings.Builder
	if major == 0 && minor == 0 {
		b.WriteString("zero ")
		b.WriteString(units.major)
		b.WriteString(" only")
		return finishWords(&b)
	}

	writeInteger(&b, major)
	b.WriteByte(' ')
	b.WriteString(units.major)

	if minor > 0 {
		name := units.minor
		if minor == 1 {
			name = strings.TrimSuffix(name, "s")
		}
		b.WriteString(" and ")
		b.WriteString(belowHundred(int(minor)))
		b.WriteByte(' ')
		b.WriteString(name)
	} else {
		b.WriteString(" only")
	}

	return finishWords(&b)
}

// writeInteger spells out n using short-scale naming, most significant
// chunk first, skipping zero-valued chunks.
func writeInteger(b *strings.Builder, n int64) {
	if n == 0 {
		b.WriteString("zero")
		return
	}

	// Decompose into base-1000 chunks, least significant first.
	var chunks []int
	for n > 0 {
		chunks = append(chunks, int(n%1000))
		n /= 1000
	}

	first := true
	for i := len(chunks) - 1; i >= 0; i-- {
		if chunks[i] == 0 {
			continue
		}
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(belowThousand(chunks[i]))
		if scaleNames[i] != "" {
			b.WriteByte(' ')
			b.WriteString(scaleNames[i])
		}
	}
}

func belowThousand(n int) string {
	if n < 100 {
		return belowHundred(n)
	}
	s := onesNames[n/100] + " hundred"
	if rem := n % 100; rem > 0 {
		s += " " + belowHundred(rem)
	}
	return s
}

func belowHundred(n int) string {
	if n < 20 {
		return onesNames[n]
	}
	s := tensNames[n/10]
	if n%10 > 0 {
		s += "-" + onesNames[n%10]
	}
	return s
}

// finishWords normalizes whitespace and capitalizes the first rune.
func finishWords(b *strings.Builder) (string, error) {
	words := strings.Join(strings.Fields(b.String()), " ")
	runes := []rune(words)
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes), nil
}
