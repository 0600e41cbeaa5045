package receipt

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolthread/transaction-tracker/internal/domain/entity"
	"github.com/toolthread/transaction-tracker/internal/domain/money"
)

func testEngine() *Engine {
	return NewEngine(money.NewFormatter())
}

func sampleTransaction() *entity.Transaction {
	return &entity.Transaction{
		ID:            7,
		ReceiptNumber: "20250101120000-ABCD1234",
		BuyerName:     "Jane Doe",
		Date:          time.Date(2025, 3, 14, 15, 4, 0, 0, time.UTC),
		Currency:      entity.USD,
		Items: []entity.Item{
			{ID: 1, Name: "Scissors", Price: decimal.RequireFromString("12.50"), Quantity: 2},
			{ID: 2, Name: "Thread", Price: decimal.RequireFromString("3.00"), Quantity: 5},
		},
		Total: decimal.RequireFromString("40.00"),
	}
}

func findTable(t *testing.T, doc *Document) Table {
	t.Helper()
	for _, op := range doc.Ops {
		if table, ok := op.(Table); ok {
			return table
		}
	}
	t.Fatal("document has no table op")
	return Table{}
}

func textValues(doc *Document) []string {
	var out []string
	for _, op := range doc.Ops {
		if text, ok := op.(Text); ok {
			out = append(out, text.Value)
		}
	}
	return out
}

func TestLayoutRejectsEmptyTransactions(t *testing.T) {
	engine := testEngine()

	t.Run("No items", func(t *testing.T) {
		tx := sampleTransaction()
		tx.Items = nil
		doc, err := engine.Layout(tx)
		assert.ErrorIs(t, err, ErrNoItems)
		assert.Nil(t, doc)
	})

	t.Run("Nil transaction", func(t *testing.T) {
		doc, err := engine.Layout(nil)
		assert.Error(t, err)
		assert.Nil(t, doc)
	})
}

func TestLayoutItemsTable(t *testing.T) {
	engine := testEngine()

	t.Run("One row per item, in order, 1-based serials", func(t *testing.T) {
		doc, err := engine.Layout(sampleTransaction())
		require.NoError(t, err)

		table := findTable(t, doc)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, []string{"1", "Scissors", "2", "$12.50", "$25.00"}, table.Rows[0])
		assert.Equal(t, []string{"2", "Thread", "5", "$3.00", "$15.00"}, table.Rows[1])
	})

	t.Run("Description folded in when distinct", func(t *testing.T) {
		tx := sampleTransaction()
		tx.Items[0].Description = "Fabric shears"
		tx.Items[1].Description = "Thread" // same as name, not repeated
		doc, err := engine.Layout(tx)
		require.NoError(t, err)

		table := findTable(t, doc)
		assert.Equal(t, "Scissors (Fabric shears)", table.Rows[0][1])
		assert.Equal(t, "Thread", table.Rows[1][1])
	})

	t.Run("Fifty items keep every row", func(t *testing.T) {
		tx := sampleTransaction()
		tx.Items = nil
		for i := 1; i <= 50; i++ {
			tx.Items = append(tx.Items, entity.Item{
				ID:       i,
				Name:     fmt.Sprintf("Item %d", i),
				Price:    decimal.RequireFromString("1.00"),
				Quantity: 1,
			})
		}

		doc, err := engine.Layout(tx)
		require.NoError(t, err)

		table := findTable(t, doc)
		require.Len(t, table.Rows, 50)
		assert.Equal(t, "1", table.Rows[0][0])
		assert.Equal(t, "50", table.Rows[49][0])
		assert.Equal(t, "Item 50", table.Rows[49][1])
	})
}

func TestLayoutTotals(t *testing.T) {
	engine := testEngine()

	t.Run("Grand total recomputed from items", func(t *testing.T) {
		tx := sampleTransaction()
		// Deliberately stale stored total; the receipt must ignore it.
		tx.Total = decimal.RequireFromString("999.99")

		doc, err := engine.Layout(tx)
		require.NoError(t, err)

		values := textValues(doc)
		assert.Contains(t, values, "$40.00")
		assert.Contains(t, values, "Amount in words: Forty Dollars only")
		assert.NotContains(t, values, "$999.99")
	})

	t.Run("Kobo-only total", func(t *testing.T) {
		tx := sampleTransaction()
		tx.Currency = entity.NGN
		tx.Items = []entity.Item{
			{ID: 1, Name: "Pin", Price: decimal.RequireFromString("0.01"), Quantity: 1},
		}

		doc, err := engine.Layout(tx)
		require.NoError(t, err)

		assert.Contains(t, textValues(doc), "Amount in words: Zero Naira and one Kobo")
	})
}

func TestLayoutHeaderAndDetails(t *testing.T) {
	engine := testEngine()
	doc, err := engine.Layout(sampleTransaction())
	require.NoError(t, err)

	values := textValues(doc)
	assert.Contains(t, values, "Tool & Thread")
	assert.Contains(t, values, "Receipt #20250101120000-ABCD1234")
	assert.Contains(t, values, "DATE")
	assert.Contains(t, values, "CUSTOMER")
	assert.Contains(t, values, "March 14, 2025")
	assert.Contains(t, values, "3:04 PM")
	assert.Contains(t, values, "Jane Doe")
}

func TestLayoutCustomerFallback(t *testing.T) {
	engine := testEngine()
	tx := sampleTransaction()
	tx.BuyerName = "N/A" // layout renders whatever it is given
	doc, err := engine.Layout(tx)
	require.NoError(t, err)
	assert.Contains(t, textValues(doc), "N/A")

	tx.BuyerName = ""
	doc, err = engine.Layout(tx)
	require.NoError(t, err)
	assert.Contains(t, textValues(doc), "N/A")
}

func TestLayoutFooterAnchoring(t *testing.T) {
	engine := testEngine()

	t.Run("Short receipts push the footer down", func(t *testing.T) {
		doc, err := engine.Layout(sampleTransaction())
		require.NoError(t, err)

		anchor := doc.Page.Height - doc.Page.BottomReserve
		var thankYou *Text
		for _, op := range doc.Ops {
			if text, ok := op.(Text); ok && text.Value == "Thank you for your business!" {
				thankYou = &text
				break
			}
		}
		require.NotNil(t, thankYou)
		assert.GreaterOrEqual(t, thankYou.Y, anchor)
	})

	t.Run("Totals that would overlap the margin move to a fresh page", func(t *testing.T) {
		tx := sampleTransaction()
		tx.Items = nil
		// 46 rows leave the cursor too close to the bottom margin for
		// the totals block, forcing an explicit page break.
		for i := 1; i <= 46; i++ {
			tx.Items = append(tx.Items, entity.Item{
				ID:       i,
				Name:     fmt.Sprintf("Item %d", i),
				Price:    decimal.RequireFromString("1.00"),
				Quantity: 1,
			})
		}

		doc, err := engine.Layout(tx)
		require.NoError(t, err)

		breaks := 0
		for _, op := range doc.Ops {
			if _, ok := op.(PageBreak); ok {
				breaks++
			}
		}
		assert.GreaterOrEqual(t, breaks, 1)
	})
}

func TestLayoutCompanyNameOption(t *testing.T) {
	engine := NewEngine(money.NewFormatter(), WithCompanyName("Fashion Equipment and Accessories", "FE&A"))
	doc, err := engine.Layout(sampleTransaction())
	require.NoError(t, err)

	values := textValues(doc)
	assert.Contains(t, values, "Fashion Equipment and Accessories")
	assert.Contains(t, values, "FE&A")
}
