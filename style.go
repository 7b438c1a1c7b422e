package figure

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// -------------------------------------------------------------------------
// Colors

// BuiltinColors are the named colors understood by ParseColor. The names
// follow the CSS/X11 color names.
var BuiltinColors = map[string]color.RGBA{
	"red":       {0xff, 0x00, 0x00, 0xff},
	"green":     {0x00, 0x80, 0x00, 0xff},
	"blue":      {0x00, 0x00, 0xff, 0xff},
	"cyan":      {0x00, 0xff, 0xff, 0xff},
	"magenta":   {0xff, 0x00, 0xff, 0xff},
	"yellow":    {0xff, 0xff, 0x00, 0xff},
	"white":     {0xff, 0xff, 0xff, 0xff},
	"black":     {0x00, 0x00, 0x00, 0xff},
	"gray20":    {0x33, 0x33, 0x33, 0xff},
	"gray40":    {0x66, 0x66, 0x66, 0xff},
	"gray":      {0x80, 0x80, 0x80, 0xff},
	"grey":      {0x80, 0x80, 0x80, 0xff},
	"gray60":    {0x99, 0x99, 0x99, 0xff},
	"gray80":    {0xcc, 0xcc, 0xcc, 0xff},
	"pink":      {0xff, 0xc0, 0xcb, 0xff},
	"deeppink":  {0xff, 0x14, 0x93, 0xff},
	"lightblue": {0xad, 0xd8, 0xe6, 0xff},
	"royalblue": {0x41, 0x69, 0xe1, 0xff},
}

// ParseColor understands "#rrggbb", "#rrggbbaa" and the BuiltinColors.
func ParseColor(s string) (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(name, "#") {
		hex := name[1:]
		if len(hex) != 6 && len(hex) != 8 {
			return nil, &RenderError{Op: "color", Err: fmt.Errorf("bad hex color %q", s)}
		}
		if len(hex) == 6 {
			hex += "ff"
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return nil, &RenderError{Op: "color", Err: fmt.Errorf("bad hex color %q: %w", s, err)}
		}
		return color.NRGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
	}
	if col, ok := BuiltinColors[name]; ok {
		return col, nil
	}
	return nil, &RenderError{Op: "color", Err: fmt.Errorf("unknown color %q", s)}
}

// Set alpha to a in color c. TODO: handle case if c has alpha.
func SetAlpha(c color.Color, a float64) color.Color {
	r, g, b, _ := c.RGBA()
	r >>= 8
	g >>= 8
	b >>= 8
	a *= float64(0xff)
	return color.NRGBA{uint8(r), uint8(g), uint8(b), uint8(a)}
}

// viridisControls are samples of the viridis color map with strictly
// increasing luminance.
var viridisControls = []color.Color{
	color.NRGBA{0x44, 0x01, 0x54, 0xff},
	color.NRGBA{0x48, 0x28, 0x78, 0xff},
	color.NRGBA{0x3e, 0x4a, 0x89, 0xff},
	color.NRGBA{0x31, 0x68, 0x8e, 0xff},
	color.NRGBA{0x26, 0x82, 0x8e, 0xff},
	color.NRGBA{0x1f, 0x9e, 0x89, 0xff},
	color.NRGBA{0x35, 0xb7, 0x79, 0xff},
	color.NRGBA{0x6d, 0xcd, 0x59, 0xff},
	color.NRGBA{0xb4, 0xde, 0x2c, 0xff},
	color.NRGBA{0xfd, 0xe7, 0x25, 0xff},
}

// Viridis returns n colors evenly spaced along the viridis color map,
// from dark purple to yellow.
func Viridis(n int) ([]color.Color, error) {
	if n <= 0 {
		return nil, nil
	}
	cmap, err := moreland.NewLuminance(viridisControls)
	if err != nil {
		return nil, &RenderError{Op: "palette", Err: err}
	}
	cmap.SetMin(0)
	cmap.SetMax(1)

	colors := make([]color.Color, n)
	for i := range colors {
		v := 0.0
		if n > 1 {
			v = float64(i) / float64(n-1)
		}
		c, err := cmap.At(v)
		if err != nil {
			return nil, &RenderError{Op: "palette", Err: fmt.Errorf("viridis at %g: %w", v, err)}
		}
		colors[i] = c
	}
	return colors, nil
}

// -------------------------------------------------------------------------
// Points

type PointShape int

const (
	BlankPoint PointShape = iota
	CirclePoint
	SquarePoint
	DeltaPoint
	SolidCirclePoint
	SolidSquarePoint
	SolidDeltaPoint
	CrossPoint
	PlusPoint
)

func String2PointShape(s string) PointShape {
	switch s {
	case "circle":
		return CirclePoint
	case "square":
		return SquarePoint
	case "delta":
		return DeltaPoint
	case "o", "solid-circle":
		return SolidCirclePoint
	case "s", "solid-square":
		return SolidSquarePoint
	case "^", "solid-delta":
		return SolidDeltaPoint
	case "x", "cross":
		return CrossPoint
	case "+", "plus":
		return PlusPoint
	}
	return BlankPoint
}

// glyph returns the gonum glyph drawer for shape; nil for BlankPoint.
func (shape PointShape) glyph() draw.GlyphDrawer {
	switch shape {
	case CirclePoint:
		return draw.RingGlyph{}
	case SquarePoint:
		return draw.SquareGlyph{}
	case DeltaPoint:
		return draw.TriangleGlyph{}
	case SolidCirclePoint:
		return draw.CircleGlyph{}
	case SolidSquarePoint:
		return draw.BoxGlyph{}
	case SolidDeltaPoint:
		return draw.PyramidGlyph{}
	case CrossPoint:
		return draw.CrossGlyph{}
	case PlusPoint:
		return draw.PlusGlyph{}
	}
	return nil
}

// -------------------------------------------------------------------------
// Lines

type LineType int

const (
	BlankLine LineType = iota
	SolidLine
	DashedLine
	DottedLine
	DotDashLine
)

func String2LineType(s string) LineType {
	switch s {
	case "solid", "-":
		return SolidLine
	case "dashed", "--":
		return DashedLine
	case "dotted", ":":
		return DottedLine
	case "dotdash", "-.":
		return DotDashLine
	default:
		return BlankLine
	}
}

// Dashes returns the dash pattern of lt for a line of width w.
func (lt LineType) Dashes(w vg.Length) []vg.Length {
	if w <= 0 {
		w = 1
	}
	switch lt {
	case DashedLine:
		return []vg.Length{3.7 * w, 1.6 * w}
	case DottedLine:
		return []vg.Length{w, 1.65 * w}
	case DotDashLine:
		return []vg.Length{6.4 * w, 1.6 * w, w, 1.6 * w}
	}
	return nil
}
