package pdf

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolthread/transaction-tracker/internal/domain/entity"
	"github.com/toolthread/transaction-tracker/internal/domain/money"
	"github.com/toolthread/transaction-tracker/internal/domain/receipt"
)

func layoutDocument(t *testing.T, items int, currency entity.CurrencyCode) *receipt.Document {
	t.Helper()
	tx := &entity.Transaction{
		ID:            1,
		ReceiptNumber: "20250101120000-ABCD1234",
		BuyerName:     "Jane Doe",
		Date:          time.Date(2025, 3, 14, 15, 4, 0, 0, time.UTC),
		Currency:      currency,
	}
	for i := 1; i <= items; i++ {
		tx.Items = append(tx.Items, entity.Item{
			ID:       i,
			Name:     fmt.Sprintf("Item %d", i),
			Price:    decimal.RequireFromString("2.50"),
			Quantity: i,
		})
	}

	doc, err := receipt.NewEngine(money.NewFormatter()).Layout(tx)
	require.NoError(t, err)
	return doc
}

func TestRender(t *testing.T) {
	t.Run("Produces a PDF", func(t *testing.T) {
		out, err := NewRenderer().Render(layoutDocument(t, 2, entity.USD))
		require.NoError(t, err)
		require.Greater(t, len(out), 1000)
		assert.Equal(t, "%PDF-", string(out[:5]))
	})

	t.Run("Manual table strategy produces a PDF", func(t *testing.T) {
		r := NewRenderer(WithTableRenderer(ManualTable{}))
		out, err := r.Render(layoutDocument(t, 2, entity.USD))
		require.NoError(t, err)
		assert.Equal(t, "%PDF-", string(out[:5]))
	})

	t.Run("Long tables flow onto continuation pages", func(t *testing.T) {
		out, err := NewRenderer().Render(layoutDocument(t, 50, entity.USD))
		require.NoError(t, err)
		assert.Equal(t, "%PDF-", string(out[:5]))

		short, err := NewRenderer().Render(layoutDocument(t, 2, entity.USD))
		require.NoError(t, err)
		assert.Greater(t, len(out), len(short))
	})

	t.Run("Currency symbols outside ASCII survive translation", func(t *testing.T) {
		for _, code := range []entity.CurrencyCode{entity.GBP, entity.NGN} {
			out, err := NewRenderer().Render(layoutDocument(t, 1, code))
			require.NoError(t, err)
			assert.Equal(t, "%PDF-", string(out[:5]))
		}
	})

	t.Run("Empty document is rejected", func(t *testing.T) {
		_, err := NewRenderer().Render(&receipt.Document{Page: receipt.A4Page()})
		var rerr *RenderError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "input", rerr.Stage)
	})

	t.Run("Nil document is rejected", func(t *testing.T) {
		_, err := NewRenderer().Render(nil)
		assert.Error(t, err)
	})
}

// brokenTable always fails, standing in for a grid strategy hitting a
// backend fault.
type brokenTable struct {
	calls int
}

func (b *brokenTable) Name() string { return "broken" }

func (b *brokenTable) Render(*fpdf.Fpdf, func(string) string, Theme, receipt.PageConfig, receipt.Table) error {
	b.calls++
	return errors.New("cell flow corrupted")
}

func TestRenderTableFallback(t *testing.T) {
	t.Run("Table failure re-renders with manual cells", func(t *testing.T) {
		broken := &brokenTable{}
		r := NewRenderer(WithTableRenderer(broken))

		out, err := r.Render(layoutDocument(t, 2, entity.USD))
		require.NoError(t, err)
		assert.Equal(t, "%PDF-", string(out[:5]))
		assert.Equal(t, 1, broken.calls)
	})

	t.Run("Documents without tables never touch the strategy", func(t *testing.T) {
		// A failing strategy must not mask a render that has no table
		// to draw.
		broken := &brokenTable{}
		r := NewRenderer(WithTableRenderer(broken))

		out, err := r.Render(&receipt.Document{
			Page: receipt.A4Page(),
			Ops: []receipt.Op{
				receipt.Text{X: 20, Y: 20, Value: "hello", Font: receipt.FontSans, Size: 10},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "%PDF-", string(out[:5]))
		assert.Zero(t, broken.calls)
	})
}

func TestTableStageError(t *testing.T) {
	assert.True(t, tableStageError(&RenderError{Stage: "table/grid", Err: errors.New("x")}))
	assert.True(t, tableStageError(&RenderError{Stage: "table/broken", Err: errors.New("x")}))
	assert.False(t, tableStageError(&RenderError{Stage: "draw", Err: errors.New("x")}))
	assert.False(t, tableStageError(&RenderError{Stage: "input", Err: errors.New("x")}))
	assert.False(t, tableStageError(&RenderError{Stage: "output", Err: errors.New("x")}))
	assert.False(t, tableStageError(errors.New("bare")))
}

func TestRenderErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("boom")
	err := &RenderError{Stage: "draw", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "draw")
}

func TestTableRendererNames(t *testing.T) {
	assert.Equal(t, "grid", GridTable{}.Name())
	assert.Equal(t, "manual", ManualTable{}.Name())
}

func TestThemeDefaults(t *testing.T) {
	theme := DefaultTheme()

	t.Run("Known color", func(t *testing.T) {
		assert.Equal(t, RGB{R: 13, G: 110, B: 110}, theme.Color(receipt.ColorPrimary500))
	})

	t.Run("Unknown color falls back to black", func(t *testing.T) {
		assert.Equal(t, RGB{}, theme.Color(receipt.Color("magenta")))
	})

	t.Run("Unknown font role falls back to helvetica", func(t *testing.T) {
		assert.Equal(t, "helvetica", Theme{}.Font(receipt.FontSerif))
	})
}
