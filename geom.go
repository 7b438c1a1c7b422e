package figure

import (
	"fmt"
	"math"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Geom turns the placed and colored records of a dataset into grobs.
type Geom interface {
	Name() string

	// Construct produces the grobs of all records in d.
	Construct(d *Dataset, panel *Panel) []Grob
}

// Panel is the coordinate system geoms construct their grobs in.
type Panel struct {
	// Twin maps values of records on the secondary axis to the primary
	// axis. Nil if the chart has no secondary axis.
	Twin *TwinAxis
}

// Y maps the value v of record r to primary axis coordinates.
func (p *Panel) Y(r *Record, v float64) float64 {
	if p == nil || p.Twin == nil || r.Axis != Secondary {
		return v
	}
	return p.Twin.ToPrimary(v)
}

// -------------------------------------------------------------------------
// Geom ErrorPoint

// GeomErrorPoint draws each record as a point at its value with an error
// bar spanning its interval. Horizontal puts the value on the x axis and
// the position on the y axis, as in a forest plot.
type GeomErrorPoint struct {
	Horizontal bool
	Shape      PointShape
	Size       vg.Length // glyph radius
	LineWidth  vg.Length
	Cap        vg.Length
}

var _ Geom = GeomErrorPoint{}

func (g GeomErrorPoint) Name() string { return "GeomErrorPoint" }

func (g GeomErrorPoint) Construct(d *Dataset, panel *Panel) []Grob {
	grobs := make([]Grob, 0, d.N())
	for i := range d.Records {
		r := &d.Records[i]
		point := &GrobPoint{
			Size:      g.Size,
			Shape:     g.Shape,
			Color:     r.Color,
			LineWidth: g.LineWidth,
			Cap:       g.Cap,
		}
		if g.Horizontal {
			point.X, point.Y = r.Value, r.Pos
			point.XErr = [2]float64{r.ErrLow, r.ErrHigh}
		} else {
			y := panel.Y(r, r.Value)
			point.X, point.Y = r.Pos, y
			point.YErr = [2]float64{
				y - panel.Y(r, r.Value-r.ErrLow),
				panel.Y(r, r.Value+r.ErrHigh) - y,
			}
		}
		grobs = append(grobs, point)
	}
	return grobs
}

// -------------------------------------------------------------------------
// Geom Bar

// GeomBar draws each record as a vertical bar of the given Width (in
// category axis units) centered at its position, reaching from Baseline
// to its value.
type GeomBar struct {
	Width     float64
	Baseline  float64
	LineWidth vg.Length // border, 0 draws none
}

var _ Geom = GeomBar{}

func (b GeomBar) Name() string { return "GeomBar" }

func (b GeomBar) Construct(d *Dataset, panel *Panel) []Grob {
	wh := b.Width / 2
	grobs := make([]Grob, 0, d.N())
	for i := range d.Records {
		r := &d.Records[i]
		lo, hi := math.Min(b.Baseline, r.Value), math.Max(b.Baseline, r.Value)
		bar := &GrobBar{
			XMin: r.Pos - wh,
			XMax: r.Pos + wh,
			YMin: panel.Y(r, lo),
			YMax: panel.Y(r, hi),
			Fill: r.Color,
		}
		if b.LineWidth > 0 {
			bar.Border, bar.LineWidth = r.Color, b.LineWidth
		}
		grobs = append(grobs, bar)
	}
	return grobs
}

// -------------------------------------------------------------------------
// Geom Text

// GeomText labels every record. The label is Label(r) or, if Label is nil,
// the value formatted with Format (default "%g"). It is anchored at the
// record's position on the category axis and at Value(r) (default the
// record's value) on the value axis.
type GeomText struct {
	Horizontal bool // value axis is x
	Format     string
	Label      func(r *Record) string
	Value      func(r *Record) float64

	Size   vg.Length
	XAlign draw.XAlignment
	YAlign draw.YAlignment
	Offset vg.Point
}

var _ Geom = GeomText{}

func (t GeomText) Name() string { return "GeomText" }

func (t GeomText) Construct(d *Dataset, panel *Panel) []Grob {
	format := t.Format
	if format == "" {
		format = "%g"
	}
	grobs := make([]Grob, 0, d.N())
	for i := range d.Records {
		r := &d.Records[i]
		label := ""
		if t.Label != nil {
			label = t.Label(r)
		} else {
			label = fmt.Sprintf(format, r.Value)
		}
		v := r.Value
		if t.Value != nil {
			v = t.Value(r)
		}

		text := &GrobText{
			Text:   label,
			Size:   t.Size,
			XAlign: t.XAlign,
			YAlign: t.YAlign,
			Offset: t.Offset,
		}
		if t.Horizontal {
			text.X, text.Y = v, r.Pos
		} else {
			text.X, text.Y = r.Pos, panel.Y(r, v)
		}
		grobs = append(grobs, text)
	}
	return grobs
}
