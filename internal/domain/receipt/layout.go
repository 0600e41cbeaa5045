package receipt

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/toolthread/transaction-tracker/internal/domain/entity"
	"github.com/toolthread/transaction-tracker/internal/domain/money"
)

// ErrNoItems is returned when a transaction with no items reaches the
// layout engine. The caller surfaces this as a user-facing failure
// rather than rendering a blank receipt.
var ErrNoItems = errors.New("no items available to generate receipt")

const ptToMM = 25.4 / 72

// lineHeightMM converts a font size in points to a line advance in mm.
func lineHeightMM(size float64) float64 {
	return size * ptToMM * 1.2
}

// estWidthMM estimates rendered text width without asking a backend,
// keeping the layout renderer-agnostic. Half an em per character is a
// close enough bound for badge sizing.
func estWidthMM(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * ptToMM * 0.5
}

// Engine lays out receipts. It holds no per-call state; Layout may be
// invoked concurrently.
type Engine struct {
	formatter *money.Formatter
	company   string
	initials  string
	page      PageConfig
}

// Option configures an Engine.
type Option func(*Engine)

// WithCompanyName overrides the company header and logo initials.
func WithCompanyName(name, initials string) Option {
	return func(e *Engine) {
		e.company = name
		e.initials = initials
	}
}

// WithPage overrides the page configuration.
func WithPage(p PageConfig) Option {
	return func(e *Engine) {
		e.page = p
	}
}

// NewEngine creates a layout engine.
func NewEngine(formatter *money.Formatter, opts ...Option) *Engine {
	e := &Engine{
		formatter: formatter,
		company:   "Tool & Thread",
		initials:  "T&T",
		page:      A4Page(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Layout turns a transaction into a receipt document. The grand total is
// recomputed from the line items; the stored total is never trusted.
func (e *Engine) Layout(tx *entity.Transaction) (*Document, error) {
	if tx == nil {
		return nil, errors.New("transaction is nil")
	}
	if len(tx.Items) == 0 {
		return nil, ErrNoItems
	}

	total := tx.ItemsTotal()
	totalWords, err := money.AmountInWords(total, tx.Currency)
	if err != nil {
		return nil, fmt.Errorf("spelling out total: %w", err)
	}

	p := e.page
	doc := &Document{Page: p}
	centerX := p.Width / 2
	left := p.MarginLeft
	right := p.Width - p.MarginRight
	limit := p.Height - p.MarginBottom

	y := p.MarginTop

	// Logo badge.
	const logoR = 12
	doc.Ops = append(doc.Ops,
		Circle{X: centerX, Y: y + logoR, R: logoR, Fill: ColorPrimary50},
		Text{X: centerX, Y: y + logoR + 1.5, Value: e.initials, Font: FontSerif,
			Style: StyleBold, Size: 14, Color: ColorPrimary500, Align: AlignCenter},
	)
	y += 2*logoR + 6

	// Company header.
	y += lineHeightMM(24)
	doc.Ops = append(doc.Ops, Text{
		X: centerX, Y: y, Value: e.company, Font: FontSerif,
		Style: StyleBold, Size: 24, Color: ColorSlate800, Align: AlignCenter,
	})

	// Receipt number badge.
	y += 5
	badgeText := "Receipt #" + tx.ReceiptNumber
	badgeW := estWidthMM(badgeText, 10) + 10
	doc.Ops = append(doc.Ops,
		RoundedRect{X: centerX - badgeW/2, Y: y, W: badgeW, H: 8, Radius: 4, Fill: ColorPrimary50},
		Text{X: centerX, Y: y + 5.5, Value: badgeText, Font: FontSans,
			Style: StyleBold, Size: 10, Color: ColorPrimary700, Align: AlignCenter},
	)
	y += 8 + 12

	// Details block: date on the left, customer on the right.
	buyer := tx.BuyerName
	if buyer == "" {
		buyer = "N/A"
	}
	doc.Ops = append(doc.Ops,
		Text{X: left, Y: y, Value: "DATE", Font: FontSans, Style: StyleBold,
			Size: 9, Color: ColorSlate500, Align: AlignLeft},
		Text{X: left, Y: y + 8, Value: tx.Date.Format("January 2, 2006"), Font: FontSans,
			Style: StyleBold, Size: 11, Color: ColorSlate800, Align: AlignLeft},
		Text{X: left, Y: y + 15, Value: tx.Date.Format("3:04 PM"), Font: FontSans,
			Size: 11, Color: ColorSlate700, Align: AlignLeft},
		Text{X: right, Y: y, Value: "CUSTOMER", Font: FontSans, Style: StyleBold,
			Size: 9, Color: ColorSlate500, Align: AlignRight},
		Text{X: right, Y: y + 8, Value: buyer, Font: FontSans,
			Style: StyleBold, Size: 11, Color: ColorSlate800, Align: AlignRight},
	)
	y += 30

	// Items section header.
	doc.Ops = append(doc.Ops,
		Text{X: left, Y: y, Value: "Items", Font: FontSerif, Style: StyleBold,
			Size: 14, Color: ColorSlate800, Align: AlignLeft},
		Line{X1: left, Y1: y + 4, X2: right, Y2: y + 4, Color: ColorSlate300},
	)
	y += 12

	table := e.itemsTable(tx, left, y)
	doc.Ops = append(doc.Ops, table)
	y = tableEndY(table, p)

	// Totals block.
	const totalsH = 30
	if y+totalsH > limit {
		doc.Ops = append(doc.Ops, PageBreak{})
		y = p.MarginTop
	}
	y += 6
	doc.Ops = append(doc.Ops, Line{X1: left, Y1: y, X2: right, Y2: y, Color: ColorSlate300})
	y += 10
	doc.Ops = append(doc.Ops,
		Text{X: left, Y: y, Value: "Total", Font: FontSerif, Style: StyleBold,
			Size: 14, Color: ColorSlate700, Align: AlignLeft},
		Text{X: right, Y: y, Value: e.formatter.Format(total, tx.Currency), Font: FontSans,
			Style: StyleBold, Size: 16, Color: ColorPrimary600, Align: AlignRight},
	)
	y += 8
	doc.Ops = append(doc.Ops, Text{
		X: left, Y: y, Value: "Amount in words: " + totalWords, Font: FontSans,
		Style: StyleItalic, Size: 9, Color: ColorSlate500, Align: AlignLeft,
	})
	y += 6

	// Footer: anchored near the page bottom, pushed down for short
	// receipts, pushed to a fresh page when content would overlap it.
	const footerH = 25
	if y+footerH > limit {
		doc.Ops = append(doc.Ops, PageBreak{})
		y = p.MarginTop
	}
	footerY := y
	if anchor := p.Height - p.BottomReserve; anchor > footerY {
		footerY = anchor
	}
	doc.Ops = append(doc.Ops,
		Line{X1: left, Y1: footerY + 8, X2: left + 60, Y2: footerY + 8, Color: ColorSlate500},
		Text{X: left, Y: footerY + 13, Value: "Authorized Signature", Font: FontSans,
			Size: 9, Color: ColorSlate500, Align: AlignLeft},
		Text{X: centerX, Y: footerY + 22, Value: "Thank you for your business!", Font: FontSans,
			Style: StyleBold, Size: 10, Color: ColorSlate500, Align: AlignCenter},
	)

	return doc, nil
}

// itemsTable builds the items table op. Serial numbers are 1-based in
// item order; the description column folds in the item description when
// it adds information beyond the name.
func (e *Engine) itemsTable(tx *entity.Transaction, x, y float64) Table {
	w := e.page.ContentWidth()
	cols := []Column{
		{Header: "#", Width: 12, Align: AlignCenter},
		{Header: "Description", Width: w - 100, Align: AlignLeft},
		{Header: "Qty", Width: 18, Align: AlignCenter},
		{Header: "Unit Price", Width: 35, Align: AlignRight},
		{Header: "Amount", Width: 35, Align: AlignRight},
	}

	rows := make([][]string, 0, len(tx.Items))
	for i := range tx.Items {
		item := &tx.Items[i]
		desc := item.Name
		if item.Description != "" && item.Description != item.Name {
			desc = fmt.Sprintf("%s (%s)", item.Name, item.Description)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			desc,
			strconv.Itoa(item.Quantity),
			e.formatter.Format(item.Price, tx.Currency),
			e.formatter.Format(item.LineTotal(), tx.Currency),
		})
	}

	return Table{
		X: x, Y: y,
		Columns:      cols,
		Rows:         rows,
		HeaderHeight: 9,
		RowHeight:    8,
		FontSize:     10,
		HeaderFill:   ColorPrimary500,
		HeaderText:   ColorWhite,
		RowText:      ColorSlate700,
		StripeFill:   ColorPrimary50,
		Border:       ColorSlate300,
	}
}

// tableEndY computes the cursor position after the table, accounting for
// rows flowing onto continuation pages. Renderers must use the same row
// pagination rule: a row that would cross the bottom margin moves to a
// new page where the header row is repeated.
func tableEndY(t Table, p PageConfig) float64 {
	limit := p.Height - p.MarginBottom
	y := t.Y + t.HeaderHeight
	for range t.Rows {
		if y+t.RowHeight > limit {
			y = p.MarginTop + t.HeaderHeight
		}
		y += t.RowHeight
	}
	return y
}
