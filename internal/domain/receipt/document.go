// Package receipt lays a transaction out as a renderer-agnostic receipt
// document: an ordered list of draw operations in absolute page
// coordinates (millimetres), plus page metadata. Rendering backends map
// the semantic colors and font roles to whatever they support.
package receipt

// FontRole is a logical font family, resolved by the renderer.
type FontRole string

const (
	// FontSerif is used for headings, matching the shop's display face.
	FontSerif FontRole = "serif"
	// FontSans is used for body text.
	FontSans FontRole = "sans"
)

// FontStyle selects the face variant.
type FontStyle string

const (
	StyleNormal FontStyle = ""
	StyleBold   FontStyle = "B"
	StyleItalic FontStyle = "I"
)

// Align is horizontal text alignment relative to the op's X coordinate.
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// Color is a semantic color name. The palette mirrors the shop's web
// theme; renderers own the mapping to concrete color values.
type Color string

const (
	ColorPrimary50  Color = "primary-50"
	ColorPrimary500 Color = "primary-500"
	ColorPrimary600 Color = "primary-600"
	ColorPrimary700 Color = "primary-700"
	ColorSlate300   Color = "slate-300"
	ColorSlate500   Color = "slate-500"
	ColorSlate700   Color = "slate-700"
	ColorSlate800   Color = "slate-800"
	ColorWhite      Color = "white"
)

// PageConfig describes the page the document is laid out for. All
// lengths are in millimetres.
type PageConfig struct {
	Width         float64
	Height        float64
	MarginLeft    float64
	MarginTop     float64
	MarginRight   float64
	MarginBottom  float64
	BottomReserve float64
}

// ContentWidth is the usable width between the side margins.
func (p PageConfig) ContentWidth() float64 {
	return p.Width - p.MarginLeft - p.MarginRight
}

// A4Page is the default page configuration.
func A4Page() PageConfig {
	return PageConfig{
		Width:         210,
		Height:        297,
		MarginLeft:    20,
		MarginTop:     20,
		MarginRight:   20,
		MarginBottom:  15,
		BottomReserve: 45,
	}
}

// Op is a single draw instruction. The set is closed; renderers switch
// over the concrete types.
type Op interface {
	isOp()
}

// Text draws a single line of text with its baseline at Y.
type Text struct {
	X, Y  float64
	Value string
	Font  FontRole
	Style FontStyle
	Size  float64 // points
	Color Color
	Align Align
}

// Line draws a straight line.
type Line struct {
	X1, Y1 float64
	X2, Y2 float64
	Color  Color
}

// RoundedRect draws a filled rectangle with rounded corners.
type RoundedRect struct {
	X, Y   float64
	W, H   float64
	Radius float64
	Fill   Color
}

// Circle draws a filled circle centred on X, Y.
type Circle struct {
	X, Y float64
	R    float64
	Fill Color
}

// Column describes one table column.
type Column struct {
	Header string
	Width  float64
	Align  Align
}

// Table draws a header row plus data rows, striping alternate rows.
// Rows that do not fit the page continue on following pages with the
// header repeated; pagination is the renderer's concern.
type Table struct {
	X, Y         float64
	Columns      []Column
	Rows         [][]string
	HeaderHeight float64
	RowHeight    float64
	FontSize     float64
	HeaderFill   Color
	HeaderText   Color
	RowText      Color
	StripeFill   Color
	Border       Color
}

// Height is the total height of the table when drawn without page
// breaks.
func (t Table) Height() float64 {
	return t.HeaderHeight + float64(len(t.Rows))*t.RowHeight
}

// PageBreak starts a new page; subsequent ops are positioned on it.
type PageBreak struct{}

func (Text) isOp()        {}
func (Line) isOp()        {}
func (RoundedRect) isOp() {}
func (Circle) isOp()      {}
func (Table) isOp()       {}
func (PageBreak) isOp()   {}

// Document is the laid-out receipt: ordered draw operations over one or
// more pages of the configured size.
type Document struct {
	Page PageConfig
	Ops  []Op
}
