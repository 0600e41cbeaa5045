package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/toolthread/transaction-tracker/internal/domain/receipt"
)

// RenderError wraps a backend failure so callers can distinguish a
// rendering-engine fault from bad input.
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("pdf rendering failed at %s: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Renderer turns a receipt document into PDF bytes. A renderer is
// stateless across calls and safe for concurrent use.
type Renderer struct {
	theme Theme
	table TableRenderer
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithTheme substitutes the color and font mapping.
func WithTheme(theme Theme) RendererOption {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithTableRenderer selects the table strategy.
func WithTableRenderer(table TableRenderer) RendererOption {
	return func(r *Renderer) {
		r.table = table
	}
}

// NewRenderer creates a renderer with the default theme and the
// cell-grid table strategy.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		theme: DefaultTheme(),
		table: GridTable{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render emits the document as PDF bytes. If the configured table
// strategy fails, the whole document is re-rendered with manually drawn
// cells before giving up.
func (r *Renderer) Render(doc *receipt.Document) ([]byte, error) {
	if doc == nil || len(doc.Ops) == 0 {
		return nil, &RenderError{Stage: "input", Err: errors.New("document has no draw operations")}
	}

	out, err := r.renderWith(doc, r.table)
	if err != nil {
		if _, manual := r.table.(ManualTable); !manual && tableStageError(err) {
			return r.renderWith(doc, ManualTable{})
		}
		return nil, err
	}
	return out, nil
}

// tableStageError reports whether the failure came from a table
// strategy. Only those are worth retrying manually; draw and output
// errors would fail identically on a second pass.
func tableStageError(err error) bool {
	var rerr *RenderError
	return errors.As(err, &rerr) && strings.HasPrefix(rerr.Stage, "table/")
}

func (r *Renderer) renderWith(doc *receipt.Document, table TableRenderer) ([]byte, error) {
	f := fpdf.New("P", "mm", "A4", "")
	f.SetMargins(doc.Page.MarginLeft, doc.Page.MarginTop, doc.Page.MarginRight)
	// The layout engine already decided where pages break.
	f.SetAutoPageBreak(false, doc.Page.MarginBottom)
	tr := f.UnicodeTranslatorFromDescriptor("")
	f.AddPage()

	for _, op := range doc.Ops {
		switch op := op.(type) {
		case receipt.Text:
			r.drawText(f, tr, op)
		case receipt.Line:
			c := r.theme.Color(op.Color)
			f.SetDrawColor(c.R, c.G, c.B)
			f.SetLineWidth(0.3)
			f.Line(op.X1, op.Y1, op.X2, op.Y2)
		case receipt.RoundedRect:
			c := r.theme.Color(op.Fill)
			f.SetFillColor(c.R, c.G, c.B)
			f.RoundedRect(op.X, op.Y, op.W, op.H, op.Radius, "1234", "F")
		case receipt.Circle:
			c := r.theme.Color(op.Fill)
			f.SetFillColor(c.R, c.G, c.B)
			f.Circle(op.X, op.Y, op.R, "F")
		case receipt.PageBreak:
			f.AddPage()
		case receipt.Table:
			if err := table.Render(f, tr, r.theme, doc.Page, op); err != nil {
				return nil, &RenderError{Stage: "table/" + table.Name(), Err: err}
			}
		default:
			return nil, &RenderError{Stage: "dispatch", Err: fmt.Errorf("unknown draw op %T", op)}
		}
	}

	if f.Err() {
		return nil, &RenderError{Stage: "draw", Err: f.Error()}
	}

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, &RenderError{Stage: "output", Err: err}
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawText(f *fpdf.Fpdf, tr func(string) string, op receipt.Text) {
	f.SetFont(r.theme.Font(op.Font), string(op.Style), op.Size)
	c := r.theme.Color(op.Color)
	f.SetTextColor(c.R, c.G, c.B)

	s := tr(op.Value)
	x := op.X
	switch op.Align {
	case receipt.AlignCenter:
		x -= f.GetStringWidth(s) / 2
	case receipt.AlignRight:
		x -= f.GetStringWidth(s)
	}
	f.Text(x, op.Y, s)
}
