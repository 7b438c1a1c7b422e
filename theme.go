package figure

import (
	"gonum.org/v1/plot/vg"
)

// Theme collects the font settings of a chart.
type Theme struct {
	Font string

	TitleSize      vg.Length
	LabelSize      vg.Length // axis labels
	TickSize       vg.Length // tick labels
	AnnotationSize vg.Length // text placed next to marks
	LegendSize     vg.Length
}

var DefaultTheme = Theme{
	Font:           "Helvetica",
	TitleSize:      vg.Points(16),
	LabelSize:      vg.Points(14),
	TickSize:       vg.Points(12),
	AnnotationSize: vg.Points(11),
	LegendSize:     vg.Points(11),
}

// merge fills the unset fields of t from DefaultTheme.
func (t Theme) merge() Theme {
	if t.Font == "" {
		t.Font = DefaultTheme.Font
	}
	if t.TitleSize == 0 {
		t.TitleSize = DefaultTheme.TitleSize
	}
	if t.LabelSize == 0 {
		t.LabelSize = DefaultTheme.LabelSize
	}
	if t.TickSize == 0 {
		t.TickSize = DefaultTheme.TickSize
	}
	if t.AnnotationSize == 0 {
		t.AnnotationSize = DefaultTheme.AnnotationSize
	}
	if t.LegendSize == 0 {
		t.LegendSize = DefaultTheme.LegendSize
	}
	return t
}
