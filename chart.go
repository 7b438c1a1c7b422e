package figure

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ChartSpec collects the presentation parameters of a chart. None of them
// influences the positions computed from the data.
type ChartSpec struct {
	Title   string
	XLabel  string
	YLabel  string
	Y2Label string // label of the secondary axis, if any

	Theme Theme

	Width, Height vg.Length
	DPI           int
	Transparent   bool

	Legend LegendSpec

	// Explicit ticks; nil uses gonum's default ticks.
	XTicks, YTicks []Tick
	XTickRotation  float64 // radians, counter clockwise

	// Grid lines at the x respectively y ticks. BlankLine draws none.
	XGrid, YGrid LineType

	// Output is the file name used by Save.
	Output string
}

// LegendSpec describes a legend built from explicit color swatches
// rather than from the plotted data.
type LegendSpec struct {
	Title   string
	Entries []LegendEntry
	Top     bool
	Left    bool
}

type LegendEntry struct {
	Label string
	Color color.Color
}

// RenderError reports a failure while drawing or writing a chart.
type RenderError struct {
	Op   string // color, palette, font, plot, encode, write
	Path string // output file, if any
	Err  error
}

func (e *RenderError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("figure: %s %s: %s", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("figure: %s: %s", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Layer is one geom applied to one dataset. A layer without Geom just
// holds its Grobs, e.g. reference lines.
type Layer struct {
	Name  string
	Data  *Dataset
	Geom  Geom
	Grobs []Grob
}

// Chart is a ChartSpec together with the axis limits and the layers to
// draw. Axis limits are in primary axis units.
type Chart struct {
	Spec ChartSpec

	XMin, XMax float64
	YMin, YMax float64

	// Twin is set for charts with a secondary value axis on the right.
	Twin *TwinAxis

	Layers []*Layer

	Log *zap.Logger
}

// NewChart sets up an empty chart with unit limits.
func NewChart(spec ChartSpec, log *zap.Logger) *Chart {
	if log == nil {
		log = zap.NewNop()
	}
	return &Chart{
		Spec: spec,
		XMin: 0, XMax: 1,
		YMin: 0, YMax: 1,
		Log:  log,
	}
}

// SetLimits sets the displayed data range.
func (c *Chart) SetLimits(xmin, xmax, ymin, ymax float64) {
	c.XMin, c.XMax, c.YMin, c.YMax = xmin, xmax, ymin, ymax
	c.Log.Debug("chart limits",
		zap.String("chart", c.Spec.Title),
		zap.Float64("xmin", xmin), zap.Float64("xmax", xmax),
		zap.Float64("ymin", ymin), zap.Float64("ymax", ymax))
}

// AddLayer appends a layer drawing d with geom.
func (c *Chart) AddLayer(name string, d *Dataset, geom Geom) *Layer {
	layer := &Layer{Name: name, Data: d, Geom: geom}
	c.Layers = append(c.Layers, layer)
	return layer
}

// Annotate appends a layer holding the given grobs.
func (c *Chart) Annotate(name string, grobs ...Grob) *Layer {
	layer := &Layer{Name: name, Grobs: grobs}
	c.Layers = append(c.Layers, layer)
	return layer
}

// ConstructGeoms turns the data of every layer with a geom into grobs.
// Every record must be placed and colored; a record without color is a
// RenderError with Op "color", a non-finite position or value one with
// Op "plot".
func (c *Chart) ConstructGeoms() error {
	panel := &Panel{Twin: c.Twin}
	for _, layer := range c.Layers {
		if layer.Geom == nil || layer.Data == nil {
			continue
		}
		if err := checkResolved(layer.Data); err != nil {
			return fmt.Errorf("layer %s: %w", layer.Name, err)
		}
		layer.Grobs = layer.Geom.Construct(layer.Data, panel)
		c.Log.Debug("constructed layer",
			zap.String("layer", layer.Name),
			zap.String("geom", layer.Geom.Name()),
			zap.Int("grobs", len(layer.Grobs)))
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func checkResolved(d *Dataset) error {
	for i := range d.Records {
		r := &d.Records[i]
		if r.Color == nil {
			return &RenderError{Op: "color",
				Err: fmt.Errorf("dataset %s, record %d (%s/%s) has no color", d.Name, i, r.Category, r.Group)}
		}
		if !finite(r.Pos, r.Value, r.ErrLow, r.ErrHigh) {
			return &RenderError{Op: "plot",
				Err: fmt.Errorf("dataset %s, record %d (%s/%s) is not placed at a finite position",
					d.Name, i, r.Category, r.Group)}
		}
	}
	return nil
}

// Grobs returns the grobs of all layers in drawing order.
func (c *Chart) Grobs() []Grob {
	var grobs []Grob
	for _, layer := range c.Layers {
		grobs = append(grobs, layer.Grobs...)
	}
	return grobs
}

func constantTicks(ticks []Tick) plot.ConstantTicks {
	ct := make(plot.ConstantTicks, len(ticks))
	for i, t := range ticks {
		ct[i] = plot.Tick{Value: t.Pos, Label: t.Label}
	}
	return ct
}

func gridStyle(lt LineType, sty draw.LineStyle) draw.LineStyle {
	if lt == BlankLine {
		sty.Color = nil
		return sty
	}
	sty.Color = SetAlpha(color.Gray{0x80}, 0.6)
	sty.Dashes = lt.Dashes(sty.Width)
	return sty
}

// Plot builds the gonum plot of c. Grobs must have been constructed.
func (c *Chart) Plot() (*plot.Plot, error) {
	spec := c.Spec
	theme := spec.Theme.merge()

	p, err := plot.New()
	if err != nil {
		return nil, &RenderError{Op: "plot", Err: err}
	}
	fonts := []struct {
		font *vg.Font
		size vg.Length
	}{
		{&p.Title.Font, theme.TitleSize},
		{&p.X.Label.Font, theme.LabelSize},
		{&p.Y.Label.Font, theme.LabelSize},
		{&p.X.Tick.Label.Font, theme.TickSize},
		{&p.Y.Tick.Label.Font, theme.TickSize},
		{&p.Legend.TextStyle.Font, theme.LegendSize},
	}
	for _, f := range fonts {
		font, err := vg.MakeFont(theme.Font, f.size)
		if err != nil {
			return nil, &RenderError{Op: "font", Err: err}
		}
		*f.font = font
	}

	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel
	if spec.Transparent {
		p.BackgroundColor = color.Transparent
	}

	if spec.XTicks != nil {
		p.X.Tick.Marker = constantTicks(spec.XTicks)
	}
	if spec.YTicks != nil {
		p.Y.Tick.Marker = constantTicks(spec.YTicks)
	}
	if spec.XTickRotation != 0 {
		p.X.Tick.Label.Rotation = spec.XTickRotation
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}

	if spec.XGrid != BlankLine || spec.YGrid != BlankLine {
		grid := plotter.NewGrid()
		grid.Vertical = gridStyle(spec.XGrid, grid.Vertical)
		grid.Horizontal = gridStyle(spec.YGrid, grid.Horizontal)
		p.Add(grid)
	}

	for _, g := range c.Grobs() {
		if t, ok := g.(*GrobText); ok {
			if err := t.resolve(theme); err != nil {
				return nil, err
			}
		}
		p.Add(g)
	}

	// Limits last: adding plotters may have widened the axes.
	p.X.Min, p.X.Max = c.XMin, c.XMax
	p.Y.Min, p.Y.Max = c.YMin, c.YMax

	if len(spec.Legend.Entries) > 0 {
		if spec.Legend.Title != "" {
			p.Legend.Add(spec.Legend.Title)
		}
		for _, e := range spec.Legend.Entries {
			p.Legend.Add(e.Label, Swatch{Color: e.Color})
		}
		p.Legend.Top = spec.Legend.Top
		p.Legend.Left = spec.Legend.Left
	}

	return p, nil
}

// WriteTo renders c as PNG to w.
func (c *Chart) WriteTo(w io.Writer) (int64, error) {
	spec := c.Spec
	width, height := spec.Width, spec.Height
	if width <= 0 {
		width = 8 * vg.Inch
	}
	if height <= 0 {
		height = 6 * vg.Inch
	}
	dpi := spec.DPI
	if dpi <= 0 {
		dpi = vgimg.DefaultDPI
	}
	var bg color.Color = color.White
	if spec.Transparent {
		bg = color.Transparent
	}

	p, err := c.Plot()
	if err != nil {
		return 0, err
	}

	img := vgimg.NewWith(
		vgimg.UseWH(width, height),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(bg),
	)
	dc := draw.New(img)
	if c.Twin != nil {
		c.drawTwin(p, dc)
	} else {
		p.Draw(dc)
	}

	png := vgimg.PngCanvas{Canvas: img}
	n, err := png.WriteTo(w)
	if err != nil {
		return n, &RenderError{Op: "encode", Err: err}
	}
	return n, nil
}

// drawTwin draws p leaving room on the right for the secondary axis and
// then draws that axis along the right edge of the data area.
func (c *Chart) drawTwin(p *plot.Plot, dc draw.Canvas) {
	tickStyle := p.Y.Tick.Label
	tickStyle.XAlign, tickStyle.YAlign = draw.XLeft, draw.YCenter
	labelStyle := p.Y.Label.TextStyle
	labelStyle.Rotation = math.Pi / 2
	labelStyle.XAlign, labelStyle.YAlign = draw.XCenter, draw.YTop

	ticks := plot.DefaultTicks{}.Ticks(c.Twin.Min, c.Twin.Max)
	var widest vg.Length
	for _, t := range ticks {
		if w := tickStyle.Width(t.Label); w > widest {
			widest = w
		}
	}
	pad := p.Y.Tick.Length
	margin := p.Y.Tick.Length + pad + widest + pad
	if c.Spec.Y2Label != "" {
		margin += labelStyle.Height(c.Spec.Y2Label) + pad
	}

	pc := draw.Crop(dc, 0, -margin, 0, 0)
	p.Draw(pc)

	da := p.DataCanvas(pc)
	x := da.Max.X
	dc.StrokeLine2(p.Y.LineStyle, x, da.Min.Y, x, da.Max.Y)
	for _, t := range ticks {
		y := da.Y(p.Y.Norm(c.Twin.ToPrimary(t.Value)))
		if y < da.Min.Y || y > da.Max.Y {
			continue
		}
		length := p.Y.Tick.Length
		if t.IsMinor() {
			length /= 2
		}
		dc.StrokeLine2(p.Y.Tick.LineStyle, x, y, x+length, y)
		if t.Label != "" {
			dc.FillText(tickStyle, vg.Point{X: x + p.Y.Tick.Length + pad, Y: y}, t.Label)
		}
	}
	if c.Spec.Y2Label != "" {
		lx := x + p.Y.Tick.Length + pad + widest + pad
		dc.FillText(labelStyle, vg.Point{X: lx, Y: (da.Min.Y + da.Max.Y) / 2}, c.Spec.Y2Label)
	}
	c.Log.Debug("drew secondary axis",
		zap.Int("ticks", len(ticks)),
		zap.Float64("margin_pt", margin.Points()))
}

// Save renders c to the file Spec.Output in dir and returns its path.
// A failed write may leave a partial file behind.
func (c *Chart) Save(dir string) (string, error) {
	if c.Spec.Output == "" {
		return "", &RenderError{Op: "write", Err: fmt.Errorf("chart %q has no output file", c.Spec.Title)}
	}
	path := filepath.Join(dir, c.Spec.Output)
	f, err := os.Create(path)
	if err != nil {
		return "", &RenderError{Op: "write", Path: path, Err: err}
	}
	n, err := c.WriteTo(f)
	if err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", &RenderError{Op: "write", Path: path, Err: err}
	}
	c.Log.Info("saved chart",
		zap.String("chart", c.Spec.Title),
		zap.String("path", path),
		zap.Int64("bytes", n))
	return path, nil
}
