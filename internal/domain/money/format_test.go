package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/toolthread/transaction-tracker/internal/domain/entity"
)

func TestFormat(t *testing.T) {
	f := NewFormatter()

	t.Run("Formats with symbol and two decimals", func(t *testing.T) {
		assert.Equal(t, "$40.00", f.Format(decimal.RequireFromString("40"), entity.USD))
		assert.Equal(t, "£12.50", f.Format(decimal.RequireFromString("12.5"), entity.GBP))
		assert.Equal(t, "₦0.01", f.Format(decimal.RequireFromString("0.01"), entity.NGN))
	})

	t.Run("Groups thousands", func(t *testing.T) {
		assert.Equal(t, "$1,234.56", f.Format(decimal.RequireFromString("1234.56"), entity.USD))
		assert.Equal(t, "₦1,000,000.00", f.Format(decimal.RequireFromString("1000000"), entity.NGN))
	})

	t.Run("Unknown currency uses dollar symbol", func(t *testing.T) {
		assert.Equal(t, "$5.00", f.Format(decimal.RequireFromString("5"), entity.CurrencyCode("XXX")))
	})

	t.Run("Falls back to fixed notation for huge amounts", func(t *testing.T) {
		// Beyond float64 fidelity, so no digit grouping.
		huge := decimal.RequireFromString("12345678901234567.89")
		assert.Equal(t, "$12345678901234567.89", f.Format(huge, entity.USD))
	})

	t.Run("Nil formatter still formats", func(t *testing.T) {
		var nilf *Formatter
		assert.Equal(t, "$1.00", nilf.Format(decimal.RequireFromString("1"), entity.USD))
	})

	t.Run("Idempotent", func(t *testing.T) {
		amount := decimal.RequireFromString("99.99")
		assert.Equal(t, f.Format(amount, entity.NGN), f.Format(amount, entity.NGN))
	})

	t.Run("Negative amounts do not panic", func(t *testing.T) {
		assert.NotEmpty(t, f.Format(decimal.RequireFromString("-3.50"), entity.USD))
	})
}

func TestSymbol(t *testing.T) {
	assert.Equal(t, "$", Symbol(entity.USD))
	assert.Equal(t, "£", Symbol(entity.GBP))
	assert.Equal(t, "₦", Symbol(entity.NGN))
	assert.Equal(t, "$", Symbol(entity.CurrencyCode("EUR")))
}
