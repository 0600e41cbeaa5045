package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolthread/transaction-tracker/internal/domain/entity"
)

func words(t *testing.T, amount string, code entity.CurrencyCode) string {
	t.Helper()
	out, err := AmountInWords(decimal.RequireFromString(amount), code)
	require.NoError(t, err)
	return out
}

func TestAmountInWords(t *testing.T) {
	t.Run("Zero renders as Zero <Major> only", func(t *testing.T) {
		assert.Equal(t, "Zero Naira only", words(t, "0", entity.NGN))
		assert.Equal(t, "Zero Dollars only", words(t, "0", entity.USD))
		assert.Equal(t, "Zero Pounds only", words(t, "0", entity.GBP))
	})

	t.Run("Whole amounts end in only and contain no and", func(t *testing.T) {
		for _, code := range []entity.CurrencyCode{entity.NGN, entity.USD, entity.GBP} {
			out := words(t, "1.00", code)
			assert.True(t, len(out) > 5 && out[len(out)-5:] == " only", out)
			assert.NotContains(t, out, "and")
		}
	})

	t.Run("Single minor unit is singularized", func(t *testing.T) {
		assert.Equal(t, "Zero Naira and one Kobo", words(t, "0.01", entity.NGN))
		assert.Equal(t, "Zero Dollars and one Cent", words(t, "0.01", entity.USD))
		assert.Equal(t, "Zero Pounds and one Pence", words(t, "0.01", entity.GBP))
	})

	t.Run("Thousands with cents", func(t *testing.T) {
		out := words(t, "1234.56", entity.USD)
		assert.Equal(t, "One thousand two hundred thirty-four Dollars and fifty-six Cents", out)
	})

	t.Run("Fraction only", func(t *testing.T) {
		assert.Equal(t, "Zero Naira and fifty Kobo", words(t, "0.50", entity.NGN))
	})

	t.Run("Trailing fractional zero is padded", func(t *testing.T) {
		// 10.5 is treated as 10.50
		assert.Equal(t, "Ten Naira and fifty Kobo", words(t, "10.5", entity.NGN))
	})

	t.Run("Extra fractional digits are truncated", func(t *testing.T) {
		assert.Equal(t, "Ten Naira and fifty Kobo", words(t, "10.509", entity.NGN))
	})

	t.Run("Scale boundaries", func(t *testing.T) {
		assert.Equal(t, "One thousand Dollars only", words(t, "1000", entity.USD))
		assert.Equal(t, "One million Dollars only", words(t, "1000000", entity.USD))
		assert.Equal(t, "One billion Dollars only", words(t, "1000000000", entity.USD))
	})

	t.Run("Zero-valued chunks are skipped", func(t *testing.T) {
		assert.Equal(t, "One million one Dollars only", words(t, "1000001", entity.USD))
		assert.Equal(t, "Two thousand five Naira only", words(t, "2005", entity.NGN))
	})

	t.Run("Hundreds", func(t *testing.T) {
		assert.Equal(t, "One hundred fifty Naira and fifty Kobo", words(t, "150.50", entity.NGN))
		assert.Equal(t, "Nine hundred ninety-nine Pounds only", words(t, "999", entity.GBP))
	})

	t.Run("Forty dollars", func(t *testing.T) {
		assert.Equal(t, "Forty Dollars only", words(t, "40.00", entity.USD))
	})

	t.Run("Unknown currency falls back to Naira units", func(t *testing.T) {
		assert.Equal(t, "One Naira and one Kobo", words(t, "1.01", entity.CurrencyCode("XXX")))
	})

	t.Run("Negative amounts are rejected", func(t *testing.T) {
		_, err := AmountInWords(decimal.RequireFromString("-1"), entity.NGN)
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})

	t.Run("Amounts beyond the naming table are rejected", func(t *testing.T) {
		_, err := AmountInWords(decimal.RequireFromString("10000000000000000000"), entity.USD)
		assert.ErrorIs(t, err, ErrAmountTooLarge)
	})

	t.Run("Idempotent", func(t *testing.T) {
		amount := decimal.RequireFromString("123.45")
		first, err := AmountInWords(amount, entity.GBP)
		require.NoError(t, err)
		second, err := AmountInWords(amount, entity.GBP)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
