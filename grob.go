package figure

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Grob is a fully resolved graphical object: all coordinates are in data
// units of the primary axes, all colors and sizes are set. Drawing a grob
// involves no further computation on the data.
type Grob interface {
	plot.Plotter
	fmt.Stringer
}

// -------------------------------------------------------------------------
// Grob Point

// GrobPoint is a point glyph with optional asymmetric error bars.
// XErr and YErr hold the distances to the lower and upper end of the bar.
type GrobPoint struct {
	X, Y       float64
	XErr, YErr [2]float64
	Size       vg.Length // glyph radius
	Shape      PointShape
	Color      color.Color
	LineWidth  vg.Length // error bar width
	Cap        vg.Length // length of the error bar caps
}

var _ Grob = (*GrobPoint)(nil)

func (p *GrobPoint) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	x, y := trX(p.X), trY(p.Y)
	line := draw.LineStyle{Color: p.Color, Width: p.LineWidth}
	half := p.Cap / 2

	if p.XErr != [2]float64{} {
		x0, x1 := trX(p.X-p.XErr[0]), trX(p.X+p.XErr[1])
		c.StrokeLines(line, c.ClipLinesXY([]vg.Point{{X: x0, Y: y}, {X: x1, Y: y}})...)
		if half > 0 {
			c.StrokeLine2(line, x0, y-half, x0, y+half)
			c.StrokeLine2(line, x1, y-half, x1, y+half)
		}
	}
	if p.YErr != [2]float64{} {
		y0, y1 := trY(p.Y-p.YErr[0]), trY(p.Y+p.YErr[1])
		c.StrokeLines(line, c.ClipLinesXY([]vg.Point{{X: x, Y: y0}, {X: x, Y: y1}})...)
		if half > 0 {
			c.StrokeLine2(line, x-half, y0, x+half, y0)
			c.StrokeLine2(line, x-half, y1, x+half, y1)
		}
	}

	glyph := p.Shape.glyph()
	if glyph == nil {
		return
	}
	pt := vg.Point{X: x, Y: y}
	if !c.Contains(pt) {
		return
	}
	c.DrawGlyph(draw.GlyphStyle{Color: p.Color, Radius: p.Size, Shape: glyph}, pt)
}

func (p *GrobPoint) String() string {
	switch {
	case p.XErr != [2]float64{} && p.YErr != [2]float64{}:
		return fmt.Sprintf("Point(%.3f, %.3f x-%.3f/+%.3f y-%.3f/+%.3f)",
			p.X, p.Y, p.XErr[0], p.XErr[1], p.YErr[0], p.YErr[1])
	case p.YErr != [2]float64{}:
		return fmt.Sprintf("Point(%.3f, %.3f y-%.3f/+%.3f)", p.X, p.Y, p.YErr[0], p.YErr[1])
	case p.XErr != [2]float64{}:
		return fmt.Sprintf("Point(%.3f, %.3f x-%.3f/+%.3f)", p.X, p.Y, p.XErr[0], p.XErr[1])
	}
	return fmt.Sprintf("Point(%.3f, %.3f)", p.X, p.Y)
}

// -------------------------------------------------------------------------
// Grob Bar

// GrobBar is a filled rectangle.
type GrobBar struct {
	XMin, XMax float64
	YMin, YMax float64
	Fill       color.Color
	Border     color.Color // nil draws no border
	LineWidth  vg.Length
}

var _ Grob = (*GrobBar)(nil)

func (b *GrobBar) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	x0, y0 := trX(b.XMin), trY(b.YMin)
	x1, y1 := trX(b.XMax), trY(b.YMax)
	pts := []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
	if b.Fill != nil {
		c.FillPolygon(b.Fill, c.ClipPolygonXY(pts))
	}
	if b.Border == nil || b.LineWidth <= 0 {
		return
	}
	border := draw.LineStyle{Color: b.Border, Width: b.LineWidth}
	c.StrokeLines(border, c.ClipLinesXY(append(pts, pts[0]))...)
}

func (b *GrobBar) String() string {
	return fmt.Sprintf("Bar([%.3f,%.3f]x[%.3f,%.3f])", b.XMin, b.XMax, b.YMin, b.YMax)
}

// -------------------------------------------------------------------------
// Grob Text

// GrobText is a text label anchored at (X,Y). Offset shifts the anchor
// in canvas units, e.g. to keep a label a few points above a bar.
type GrobText struct {
	X, Y     float64
	Text     string
	Color    color.Color
	Size     vg.Length // font size, 0 uses the theme's annotation size
	XAlign   draw.XAlignment
	YAlign   draw.YAlignment
	Offset   vg.Point
	Rotation float64

	style    draw.TextStyle // set by resolve
	resolved bool
}

var _ Grob = (*GrobText)(nil)

// resolve loads the font for t.
func (t *GrobText) resolve(theme Theme) error {
	size := t.Size
	if size == 0 {
		size = theme.AnnotationSize
	}
	font, err := vg.MakeFont(theme.Font, size)
	if err != nil {
		return &RenderError{Op: "font", Err: err}
	}
	col := t.Color
	if col == nil {
		col = color.Black
	}
	t.style = draw.TextStyle{
		Color:    col,
		Font:     font,
		Rotation: t.Rotation,
		XAlign:   t.XAlign,
		YAlign:   t.YAlign,
	}
	t.resolved = true
	return nil
}

func (t *GrobText) Plot(c draw.Canvas, plt *plot.Plot) {
	if !t.resolved {
		return
	}
	trX, trY := plt.Transforms(&c)
	pt := vg.Point{X: trX(t.X) + t.Offset.X, Y: trY(t.Y) + t.Offset.Y}
	c.FillText(t.style, pt, t.Text)
}

func (t *GrobText) String() string {
	return fmt.Sprintf("Text(%.3f, %.3f %q)", t.X, t.Y, t.Text)
}

// -------------------------------------------------------------------------
// Grob Rule

// GrobRule is a reference line across the whole data area, vertical at
// x=Value or horizontal at y=Value.
type GrobRule struct {
	Value    float64
	Vertical bool
	Color    color.Color
	Width    vg.Length
	LineType LineType
}

var _ Grob = (*GrobRule)(nil)

func (r *GrobRule) Plot(c draw.Canvas, plt *plot.Plot) {
	if r.LineType == BlankLine {
		return
	}
	trX, trY := plt.Transforms(&c)
	sty := draw.LineStyle{Color: r.Color, Width: r.Width, Dashes: r.LineType.Dashes(r.Width)}
	if r.Vertical {
		x := trX(r.Value)
		if x < c.Min.X || x > c.Max.X {
			return
		}
		c.StrokeLine2(sty, x, c.Min.Y, x, c.Max.Y)
		return
	}
	y := trY(r.Value)
	if y < c.Min.Y || y > c.Max.Y {
		return
	}
	c.StrokeLine2(sty, c.Min.X, y, c.Max.X, y)
}

func (r *GrobRule) String() string {
	if r.Vertical {
		return fmt.Sprintf("Rule(x=%.3f)", r.Value)
	}
	return fmt.Sprintf("Rule(y=%.3f)", r.Value)
}

// -------------------------------------------------------------------------
// Legend swatch

// Swatch is a legend thumbnail filled with a single color.
type Swatch struct {
	Color color.Color
}

func (s Swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Min.X, Y: c.Max.Y},
	}
	c.FillPolygon(s.Color, pts)
}
