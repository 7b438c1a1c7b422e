package figures

import (
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/vdobler/figure"
)

// Hazard ratios per 50 mm³ plaque with 95% confidence interval.
var forestRecords = []figure.Record{
	{Category: "TPV", Group: "Women", Text: "1.177 (1.117, 1.241)"},
	{Category: "TPV", Group: "Men", Text: "1.053 (1.033, 1.074)"},
	{Category: "NCP", Group: "Women", Text: "1.271 (1.166, 1.384)"},
	{Category: "NCP", Group: "Men", Text: "1.116 (1.080, 1.153)"},
	{Category: "CP", Group: "Women", Text: "1.229 (1.137, 1.330)"},
	{Category: "CP", Group: "Men", Text: "1.054 (1.012, 1.098)"},
}

var forestColors = map[string]string{
	"Women": "deeppink",
	"Men":   "royalblue",
}

// ForestLayout pairs women (above) and men (below) around each feature.
var ForestLayout = figure.Layout{GroupSep: 2.0, PairSep: 0.6}

var forestSpec = figure.ChartSpec{
	Title:  "Forest Plot of Hazard Ratios by Sex",
	XLabel: "Hazard Ratio (95% CI) per 50mm³ Plaque",
	YLabel: "Plaque Feature",
	Theme: figure.Theme{
		TitleSize:      vg.Points(16),
		LabelSize:      vg.Points(14),
		TickSize:       vg.Points(12),
		AnnotationSize: vg.Points(11),
		LegendSize:     vg.Points(11),
	},
	Width:  8 * vg.Inch,
	Height: 6 * vg.Inch,
	YGrid:  figure.String2LineType(":"),
	Output: "forest-plot.png",
}

// Forest builds the forest plot of hazard ratios by sex.
func Forest(log *zap.Logger) (*figure.Chart, error) {
	return forest(figure.NewDataset("hazard ratios", forestRecords...), log)
}

func forest(data *figure.Dataset, log *zap.Logger) (*figure.Chart, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if err := data.ParseIntervals(log); err != nil {
		return nil, err
	}
	if err := data.ColorBy("Group", forestColors); err != nil {
		return nil, err
	}

	// Feature ascending, women before men.
	data.SortBy(func(a, b *figure.Record) bool {
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Group > b.Group
	})
	ticks, err := data.Place(ForestLayout, nil, nil)
	if err != nil {
		return nil, err
	}

	minCI, maxCI := data.MinMax(figure.Bounds)
	spread := maxCI - minCI
	textOffset := 0.05 * spread
	xmin, xmax := figure.Padding{
		Lower:    0.15,
		Upper:    0.15 + 3.5*0.05,
		Fallback: 0.1,
	}.Apply(minCI, maxCI)
	ymin, ymax := figure.Padding{
		LowerAbs: ForestLayout.PairSep,
		UpperAbs: ForestLayout.PairSep,
	}.Apply(data.MinMax(figure.Positions))

	spec := forestSpec
	spec.YTicks = ticks
	spec.Legend = figure.LegendSpec{Title: "Sex"}
	for _, sex := range []string{"Women", "Men"} {
		col, err := figure.ParseColor(forestColors[sex])
		if err != nil {
			return nil, err
		}
		spec.Legend.Entries = append(spec.Legend.Entries, figure.LegendEntry{Label: sex, Color: col})
	}

	chart := figure.NewChart(spec, log)
	chart.SetLimits(xmin, xmax, ymin, ymax)

	grey, err := figure.ParseColor("grey")
	if err != nil {
		return nil, err
	}
	chart.Annotate("no effect", &figure.GrobRule{
		Value:    1.0,
		Vertical: true,
		Color:    grey,
		Width:    vg.Points(1),
		LineType: figure.String2LineType("--"),
	})
	chart.AddLayer("hazard ratios", data, figure.GeomErrorPoint{
		Horizontal: true,
		Shape:      figure.String2PointShape("o"),
		Size:       vg.Points(3.5),
		LineWidth:  vg.Points(2),
		Cap:        vg.Points(10),
	})
	chart.AddLayer("hazard ratio labels", data, figure.GeomText{
		Horizontal: true,
		Label:      func(r *figure.Record) string { return r.Interval.String() },
		Value:      func(r *figure.Record) float64 { return r.Interval.Upper + textOffset },
		YAlign:     draw.YCenter,
	})
	if err := chart.ConstructGeoms(); err != nil {
		return nil, err
	}

	for _, r := range data.Records {
		log.Debug("forest record",
			zap.String("feature", r.Category),
			zap.String("sex", r.Group),
			zap.Stringer("hr", r.Interval),
			zap.Float64("y", r.Pos))
	}
	return chart, nil
}
