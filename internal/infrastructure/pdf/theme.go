// Package pdf renders receipt documents to PDF bytes using the fpdf
// drawing primitives.
package pdf

import (
	"github.com/toolthread/transaction-tracker/internal/domain/receipt"
)

// RGB is a color in the renderer's native representation.
type RGB struct {
	R, G, B int
}

// Theme maps the document's semantic colors and font roles onto concrete
// renderer values. Themes are immutable configuration: build one, pass
// it to NewRenderer, never mutate it afterwards.
type Theme struct {
	Colors map[receipt.Color]RGB
	Fonts  map[receipt.FontRole]string
}

// Color resolves a semantic color, defaulting to black for names the
// theme does not know.
func (t Theme) Color(name receipt.Color) RGB {
	if c, ok := t.Colors[name]; ok {
		return c
	}
	return RGB{}
}

// Font resolves a font role, defaulting to helvetica.
func (t Theme) Font(role receipt.FontRole) string {
	if f, ok := t.Fonts[role]; ok {
		return f
	}
	return "helvetica"
}

// DefaultTheme mirrors the shop's web palette. Times stands in for the
// serif display face, helvetica for the sans body face.
func DefaultTheme() Theme {
	return Theme{
		Colors: map[receipt.Color]RGB{
			receipt.ColorPrimary50:  {R: 230, G: 242, B: 242},
			receipt.ColorPrimary500: {R: 13, G: 110, B: 110},
			receipt.ColorPrimary600: {R: 11, G: 88, B: 88},
			receipt.ColorPrimary700: {R: 8, G: 66, B: 66},
			receipt.ColorSlate300:   {R: 203, G: 213, B: 224},
			receipt.ColorSlate500:   {R: 100, G: 116, B: 139},
			receipt.ColorSlate700:   {R: 62, G: 76, B: 89},
			receipt.ColorSlate800:   {R: 39, G: 39, B: 42},
			receipt.ColorWhite:      {R: 255, G: 255, B: 255},
		},
		Fonts: map[receipt.FontRole]string{
			receipt.FontSerif: "times",
			receipt.FontSans:  "helvetica",
		},
	}
}
