package figures

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/vdobler/figure"
)

// Mean plaque volumes (mm³, primary axis) and percentages (secondary
// axis) by sex.
var plaqueRecords = []figure.Record{
	{Category: "Total", Group: "Women", Value: 38.2},
	{Category: "Total", Group: "Men", Value: 85.95},
	{Category: "Non-calcified", Group: "Women", Value: 28},
	{Category: "Non-calcified", Group: "Men", Value: 64.4},
	{Category: "Calcified", Group: "Women", Value: 3.8},
	{Category: "Calcified", Group: "Men", Value: 11.25},
	{Category: "High Risk", Group: "Women", Value: 2.5, Axis: figure.Secondary},
	{Category: "High Risk", Group: "Men", Value: 9.2, Axis: figure.Secondary},
	{Category: "% Atheroma\nVolume", Group: "Women", Value: 1.74, Axis: figure.Secondary},
	{Category: "% Atheroma\nVolume", Group: "Men", Value: 2.85, Axis: figure.Secondary},
}

var plaqueColors = map[string]string{
	"Women": "pink",
	"Men":   "lightblue",
}

// PlaqueBarWidth is the width of a single bar; the women/men pair of a
// feature is dodged by half of it to either side.
const PlaqueBarWidth = 0.35

// PlaqueLayout places women left and men right of each feature.
var PlaqueLayout = figure.Layout{GroupSep: 1, PairSep: PlaqueBarWidth, FirstLow: true}

var plaqueSpec = figure.ChartSpec{
	Title:   "Comparison of Plaque Volumes and Percentages",
	XLabel:  "Plaque Features",
	YLabel:  "Volume (mm³)",
	Y2Label: "Percentage (%)",
	Theme: figure.Theme{
		TitleSize:      vg.Points(18),
		LabelSize:      vg.Points(16),
		TickSize:       vg.Points(12),
		AnnotationSize: vg.Points(10),
		LegendSize:     vg.Points(14),
	},
	Width:       8 * vg.Inch,
	Height:      8 * vg.Inch,
	DPI:         100,
	Transparent: true,
	Output:      "plaque_graph.png",
}

// Plaque builds the grouped bar chart of plaque volumes and percentages
// with the percentages on a secondary axis.
func Plaque(log *zap.Logger) (*figure.Chart, error) {
	return plaque(figure.NewDataset("plaque", plaqueRecords...), log)
}

func plaque(data *figure.Dataset, log *zap.Logger) (*figure.Chart, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := data.ColorBy("Group", plaqueColors); err != nil {
		return nil, err
	}
	ticks, err := data.Place(PlaqueLayout, nil, []string{"Women", "Men"})
	if err != nil {
		return nil, err
	}

	// Both value axes start at the bar baseline.
	headroom := figure.Padding{Upper: 0.05}
	volume, percent := figure.NewScale(), figure.NewScale()
	volume.Train(0)
	percent.Train(0)
	for _, r := range data.Filter("Axis", figure.Primary.String()).Records {
		volume.Train(r.Value)
	}
	for _, r := range data.Filter("Axis", figure.Secondary.String()).Records {
		percent.Train(r.Value)
	}
	log.Debug("plaque value axes",
		zap.Float64("volume_range", volume.Range()),
		zap.Float64("percent_range", percent.Range()))
	ymin, ymax := volume.Limits(headroom)
	pmin, pmax := percent.Limits(headroom)
	xmin, xmax := figure.Padding{LowerAbs: 0.5, UpperAbs: 0.5}.Apply(data.MinMax(figure.Positions))

	spec := plaqueSpec
	spec.XTicks = ticks
	spec.Legend = figure.LegendSpec{Title: "Sex", Top: true}
	for _, sex := range []string{"Women", "Men"} {
		col, err := figure.ParseColor(plaqueColors[sex])
		if err != nil {
			return nil, err
		}
		spec.Legend.Entries = append(spec.Legend.Entries, figure.LegendEntry{Label: sex, Color: col})
	}

	chart := figure.NewChart(spec, log)
	chart.SetLimits(xmin, xmax, ymin, ymax)
	chart.Twin = &figure.TwinAxis{Min: pmin, Max: pmax, PrimaryMin: ymin, PrimaryMax: ymax}
	chart.AddLayer("plaque", data, figure.GeomBar{Width: PlaqueBarWidth})
	chart.AddLayer("plaque labels", data, figure.GeomText{
		Label: func(r *figure.Record) string {
			if r.Axis == figure.Secondary {
				return fmt.Sprintf("%.2f%%", r.Value)
			}
			return fmt.Sprintf("%.2f", r.Value)
		},
		XAlign: draw.XCenter,
		YAlign: draw.YBottom,
		Offset: vg.Point{Y: vg.Points(3)},
	})
	if err := chart.ConstructGeoms(); err != nil {
		return nil, err
	}
	return chart, nil
}
