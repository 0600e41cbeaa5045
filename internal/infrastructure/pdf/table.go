package pdf

import (
	"github.com/go-pdf/fpdf"

	"github.com/toolthread/transaction-tracker/internal/domain/receipt"
)

// TableRenderer draws a table op onto the PDF. Two strategies exist: the
// cell-grid renderer built on fpdf's cell flow, and a manual renderer
// that draws every cell rectangle itself. Both produce the same columns,
// rows, and striping, and both paginate with the same rule as the layout
// engine: a row that would cross the bottom margin starts a new page
// with the header row repeated.
type TableRenderer interface {
	Name() string
	Render(f *fpdf.Fpdf, tr func(string) string, theme Theme, page receipt.PageConfig, t receipt.Table) error
}

// GridTable renders tables with fpdf cell primitives. This is the
// default strategy.
type GridTable struct{}

// Name identifies the strategy in errors and logs.
func (GridTable) Name() string { return "grid" }

// Render draws the table using CellFormat rows.
func (GridTable) Render(f *fpdf.Fpdf, tr func(string) string, theme Theme, page receipt.PageConfig, t receipt.Table) error {
	limit := page.Height - page.MarginBottom
	border := theme.Color(t.Border)
	f.SetDrawColor(border.R, border.G, border.B)
	f.SetLineWidth(0.2)

	header := func(y float64) float64 {
		fill := theme.Color(t.HeaderFill)
		text := theme.Color(t.HeaderText)
		f.SetFillColor(fill.R, fill.G, fill.B)
		f.SetTextColor(text.R, text.G, text.B)
		f.SetFont(theme.Font(receipt.FontSans), "B", t.FontSize)
		f.SetXY(t.X, y)
		for _, col := range t.Columns {
			f.CellFormat(col.Width, t.HeaderHeight, tr(col.Header), "1", 0, string(col.Align)+"M", true, 0, "")
		}
		return y + t.HeaderHeight
	}

	y := header(t.Y)
	rowText := theme.Color(t.RowText)
	stripe := theme.Color(t.StripeFill)
	plain := theme.Color(receipt.ColorWhite)
	f.SetFont(theme.Font(receipt.FontSans), "", t.FontSize)
	f.SetTextColor(rowText.R, rowText.G, rowText.B)

	for i, row := range t.Rows {
		if y+t.RowHeight > limit {
			f.AddPage()
			y = header(page.MarginTop)
			f.SetFont(theme.Font(receipt.FontSans), "", t.FontSize)
			f.SetTextColor(rowText.R, rowText.G, rowText.B)
		}

		if i%2 == 1 {
			f.SetFillColor(stripe.R, stripe.G, stripe.B)
		} else {
			f.SetFillColor(plain.R, plain.G, plain.B)
		}

		f.SetXY(t.X, y)
		for ci, col := range t.Columns {
			cell := ""
			if ci < len(row) {
				cell = row[ci]
			}
			f.CellFormat(col.Width, t.RowHeight, tr(cell), "1", 0, string(col.Align)+"M", true, 0, "")
		}
		y += t.RowHeight
	}

	if f.Err() {
		return f.Error()
	}
	return nil
}

// ManualTable renders tables from independently drawn rectangles and
// text. It is the fallback when the grid strategy fails and must stay
// visually equivalent to it.
type ManualTable struct{}

// Name identifies the strategy in errors and logs.
func (ManualTable) Name() string { return "manual" }

// Render draws each cell by hand: fill rectangle, border rectangle,
// aligned text.
func (ManualTable) Render(f *fpdf.Fpdf, tr func(string) string, theme Theme, page receipt.PageConfig, t receipt.Table) error {
	limit := page.Height - page.MarginBottom
	border := theme.Color(t.Border)
	f.SetDrawColor(border.R, border.G, border.B)
	f.SetLineWidth(0.2)

	header := func(y float64) float64 {
		fill := theme.Color(t.HeaderFill)
		text := theme.Color(t.HeaderText)
		f.SetFillColor(fill.R, fill.G, fill.B)
		f.SetTextColor(text.R, text.G, text.B)
		f.SetFont(theme.Font(receipt.FontSans), "B", t.FontSize)
		x := t.X
		for _, col := range t.Columns {
			f.Rect(x, y, col.Width, t.HeaderHeight, "FD")
			drawCellText(f, tr(col.Header), x, y, col.Width, t.HeaderHeight, col.Align)
			x += col.Width
		}
		return y + t.HeaderHeight
	}

	y := header(t.Y)
	rowText := theme.Color(t.RowText)
	stripe := theme.Color(t.StripeFill)
	f.SetFont(theme.Font(receipt.FontSans), "", t.FontSize)
	f.SetTextColor(rowText.R, rowText.G, rowText.B)

	for i, row := range t.Rows {
		if y+t.RowHeight > limit {
			f.AddPage()
			y = header(page.MarginTop)
			f.SetFont(theme.Font(receipt.FontSans), "", t.FontSize)
			f.SetTextColor(rowText.R, rowText.G, rowText.B)
		}

		x := t.X
		for ci, col := range t.Columns {
			if i%2 == 1 {
				f.SetFillColor(stripe.R, stripe.G, stripe.B)
				f.Rect(x, y, col.Width, t.RowHeight, "FD")
			} else {
				f.Rect(x, y, col.Width, t.RowHeight, "D")
			}
			cell := ""
			if ci < len(row) {
				cell = row[ci]
			}
			drawCellText(f, tr(cell), x, y, col.Width, t.RowHeight, col.Align)
			x += col.Width
		}
		y += t.RowHeight
	}

	if f.Err() {
		return f.Error()
	}
	return nil
}

// drawCellText places a cell value with 2mm side padding, baseline
// centred for the row height.
func drawCellText(f *fpdf.Fpdf, s string, x, y, w, h float64, align receipt.Align) {
	tx := x + 2
	switch align {
	case receipt.AlignCenter:
		tx = x + (w-f.GetStringWidth(s))/2
	case receipt.AlignRight:
		tx = x + w - 2 - f.GetStringWidth(s)
	}
	f.Text(tx, y+h-h/3, s)
}
