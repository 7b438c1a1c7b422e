package figures

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/vdobler/figure"
)

// Area under the ROC curve of the logistic MACE prediction models.
var aucRecords = []figure.Record{
	{Category: "DF", Value: 0.548},
	{Category: "CVRF", Value: 0.668},
	{Category: "DF+TPV+HRP", Value: 0.723},
	{Category: "DF+TPV+HRP+DS", Value: 0.755},
	{Category: "CVRF+TPV+HRP", Value: 0.791},
	{Category: "CVRF+TPV+HRP+DS", Value: 0.797},
}

// AUCOrder is the display order of the models: the demographic family
// first, then the risk factor family, each by increasing model size.
var AUCOrder = []string{
	"DF",
	"DF+TPV+HRP",
	"DF+TPV+HRP+DS",
	"CVRF",
	"CVRF+TPV+HRP",
	"CVRF+TPV+HRP+DS",
}

var aucSpec = figure.ChartSpec{
	Title:  "Comparison of Logistic Model Performance (AUC)",
	XLabel: "Model",
	YLabel: "Area Under Curve (AUC)",
	Theme: figure.Theme{
		TitleSize:      vg.Points(16),
		LabelSize:      vg.Points(14),
		TickSize:       vg.Points(14),
		AnnotationSize: vg.Points(13),
	},
	Width:         7 * vg.Inch,
	Height:        6 * vg.Inch,
	DPI:           300,
	Transparent:   true,
	XTickRotation: math.Pi / 6,
	YGrid:         figure.String2LineType(":"),
	Output:        "mace-logistic-models.png",
}

// AUC builds the bar chart comparing the models' AUC.
func AUC(log *zap.Logger) (*figure.Chart, error) {
	return auc(figure.NewDataset("model AUC", aucRecords...), AUCOrder, log)
}

func auc(data *figure.Dataset, order []string, log *zap.Logger) (*figure.Chart, error) {
	if err := data.Reorder(order); err != nil {
		return nil, err
	}
	ticks, err := data.Place(figure.Layout{GroupSep: 1}, order, nil)
	if err != nil {
		return nil, err
	}
	colors, err := figure.Viridis(data.N())
	if err != nil {
		return nil, err
	}
	if err := data.Paint(colors); err != nil {
		return nil, err
	}

	ymin, ymax := figure.Padding{LowerAbs: 0.05, UpperAbs: 0.05}.Apply(data.MinMax(figure.Values))
	xmin, xmax := figure.Padding{LowerAbs: 0.6, UpperAbs: 0.6}.Apply(data.MinMax(figure.Positions))

	spec := aucSpec
	spec.XTicks = ticks

	chart := figure.NewChart(spec, log)
	chart.SetLimits(xmin, xmax, ymin, ymax)
	chart.AddLayer("AUC", data, figure.GeomBar{Width: 0.8})
	chart.AddLayer("AUC labels", data, figure.GeomText{
		Format: "%.3f",
		XAlign: draw.XCenter,
		YAlign: draw.YBottom,
		Offset: vg.Point{Y: vg.Points(3)},
	})
	if err := chart.ConstructGeoms(); err != nil {
		return nil, err
	}
	return chart, nil
}
