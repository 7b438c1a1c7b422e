package figure

import (
	"fmt"
	"image/color"
	"io"

	"gopkg.in/yaml.v3"
)

// Plan is the resolved content of a chart: limits, ticks and marks. It is
// what gets drawn, minus fonts and styling.
type Plan struct {
	Title  string      `yaml:"title"`
	Output string      `yaml:"output,omitempty"`
	X      AxisPlan    `yaml:"x"`
	Y      AxisPlan    `yaml:"y"`
	Y2     *AxisPlan   `yaml:"y2,omitempty"`
	Legend []string    `yaml:"legend,omitempty"`
	Layers []LayerPlan `yaml:"layers"`
}

type AxisPlan struct {
	Label string     `yaml:"label,omitempty"`
	Min   float64    `yaml:"min"`
	Max   float64    `yaml:"max"`
	Ticks []TickPlan `yaml:"ticks,omitempty"`
}

type TickPlan struct {
	Pos   float64 `yaml:"pos"`
	Label string  `yaml:"label"`
}

type LayerPlan struct {
	Name  string     `yaml:"name"`
	Geom  string     `yaml:"geom,omitempty"`
	Marks []MarkPlan `yaml:"marks"`
}

// MarkPlan describes one grob. Points use X, Y and the error bar
// extents, bars XMin..XMax by YMin..YMax, texts X, Y and Text, rules
// Value.
type MarkPlan struct {
	Kind  string    `yaml:"kind"`
	X     float64   `yaml:"x,omitempty"`
	Y     float64   `yaml:"y,omitempty"`
	XErr  []float64 `yaml:"xerr,omitempty,flow"`
	YErr  []float64 `yaml:"yerr,omitempty,flow"`
	Box   []float64 `yaml:"box,omitempty,flow"`
	Value *float64  `yaml:"value,omitempty"`
	Text  string    `yaml:"text,omitempty"`
	Color string    `yaml:"color,omitempty"`
}

func hexColor(c color.Color) string {
	if c == nil {
		return ""
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

func tickPlans(ticks []Tick) []TickPlan {
	var tp []TickPlan
	for _, t := range ticks {
		tp = append(tp, TickPlan{Pos: t.Pos, Label: t.Label})
	}
	return tp
}

func markPlan(g Grob) MarkPlan {
	switch g := g.(type) {
	case *GrobPoint:
		m := MarkPlan{Kind: "point", X: g.X, Y: g.Y, Color: hexColor(g.Color)}
		if g.XErr != [2]float64{} {
			m.XErr = []float64{g.XErr[0], g.XErr[1]}
		}
		if g.YErr != [2]float64{} {
			m.YErr = []float64{g.YErr[0], g.YErr[1]}
		}
		return m
	case *GrobBar:
		return MarkPlan{
			Kind:  "bar",
			Box:   []float64{g.XMin, g.XMax, g.YMin, g.YMax},
			Color: hexColor(g.Fill),
		}
	case *GrobText:
		return MarkPlan{Kind: "text", X: g.X, Y: g.Y, Text: g.Text, Color: hexColor(g.Color)}
	case *GrobRule:
		v := g.Value
		kind := "hrule"
		if g.Vertical {
			kind = "vrule"
		}
		return MarkPlan{Kind: kind, Value: &v, Color: hexColor(g.Color)}
	}
	return MarkPlan{Kind: g.String()}
}

// Plan collects the resolved content of c. Grobs must have been
// constructed.
func (c *Chart) Plan() Plan {
	spec := c.Spec
	plan := Plan{
		Title:  spec.Title,
		Output: spec.Output,
		X:      AxisPlan{Label: spec.XLabel, Min: c.XMin, Max: c.XMax, Ticks: tickPlans(spec.XTicks)},
		Y:      AxisPlan{Label: spec.YLabel, Min: c.YMin, Max: c.YMax, Ticks: tickPlans(spec.YTicks)},
	}
	if c.Twin != nil {
		plan.Y2 = &AxisPlan{Label: spec.Y2Label, Min: c.Twin.Min, Max: c.Twin.Max}
	}
	for _, e := range spec.Legend.Entries {
		plan.Legend = append(plan.Legend, fmt.Sprintf("%s %s", hexColor(e.Color), e.Label))
	}
	for _, layer := range c.Layers {
		lp := LayerPlan{Name: layer.Name, Marks: make([]MarkPlan, 0, len(layer.Grobs))}
		if layer.Geom != nil {
			lp.Geom = layer.Geom.Name()
		}
		for _, g := range layer.Grobs {
			lp.Marks = append(lp.Marks, markPlan(g))
		}
		plan.Layers = append(plan.Layers, lp)
	}
	return plan
}

// WritePlan writes the plan of c as YAML to w.
func (c *Chart) WritePlan(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c.Plan()); err != nil {
		return &RenderError{Op: "encode", Err: err}
	}
	if err := enc.Close(); err != nil {
		return &RenderError{Op: "encode", Err: err}
	}
	return nil
}
