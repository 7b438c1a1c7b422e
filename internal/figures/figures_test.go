package figures

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vdobler/figure"
)

func positions(data *figure.Dataset) map[string]float64 {
	pos := make(map[string]float64, data.N())
	for _, r := range data.Records {
		pos[r.Category+"/"+r.Group] = r.Pos
	}
	return pos
}

func TestForest(t *testing.T) {
	chart, err := Forest(nil)
	require.NoError(t, err)

	ticks := chart.Spec.YTicks
	require.Len(t, ticks, 3)
	for i, want := range []figure.Tick{{Pos: 0, Label: "CP"}, {Pos: 2, Label: "NCP"}, {Pos: 4, Label: "TPV"}} {
		assert.Equal(t, want.Label, ticks[i].Label)
		assert.InDelta(t, want.Pos, ticks[i].Pos, 1e-12)
	}

	data := chart.Layers[1].Data
	want := map[string]float64{
		"CP/Women": 0.3, "CP/Men": -0.3,
		"NCP/Women": 2.3, "NCP/Men": 1.7,
		"TPV/Women": 4.3, "TPV/Men": 3.7,
	}
	got := positions(data)
	for k, w := range want {
		assert.InDelta(t, w, got[k], 1e-12, k)
	}

	// Ordered by feature, women first.
	var order []string
	for _, r := range data.Records {
		order = append(order, r.Category+"/"+r.Group)
	}
	assert.Equal(t, []string{"CP/Women", "CP/Men", "NCP/Women", "NCP/Men", "TPV/Women", "TPV/Men"}, order)

	spread := 1.384 - 1.012
	assert.InDelta(t, 1.012-0.15*spread, chart.XMin, 1e-9)
	assert.InDelta(t, 1.384+(0.15+3.5*0.05)*spread, chart.XMax, 1e-9)
	assert.InDelta(t, -0.9, chart.YMin, 1e-12)
	assert.InDelta(t, 4.9, chart.YMax, 1e-12)

	for _, g := range chart.Grobs() {
		if p, ok := g.(*figure.GrobPoint); ok {
			assert.GreaterOrEqual(t, p.XErr[0], 0.0)
			assert.GreaterOrEqual(t, p.XErr[1], 0.0)
		}
	}

	labels := chart.Layers[2].Grobs
	require.Len(t, labels, 6)
	tpvWomen := labels[4].(*figure.GrobText)
	assert.Equal(t, "1.177 (1.117, 1.241)", tpvWomen.Text)
	assert.InDelta(t, 1.241+0.05*spread, tpvWomen.X, 1e-9)
	assert.InDelta(t, 4.3, tpvWomen.Y, 1e-12)

	require.Len(t, chart.Spec.Legend.Entries, 2)
	assert.Equal(t, "Sex", chart.Spec.Legend.Title)

	assert.Equal(t, figure.DottedLine, chart.Spec.YGrid)
	rule := chart.Layers[0].Grobs[0].(*figure.GrobRule)
	assert.Equal(t, figure.DashedLine, rule.LineType)
	assert.True(t, rule.Vertical)
	point := chart.Layers[1].Grobs[0].(*figure.GrobPoint)
	assert.Equal(t, figure.SolidCirclePoint, point.Shape)
}

func TestForestBadInterval(t *testing.T) {
	records := append([]figure.Record{}, forestRecords...)
	records[3].Text = "1.116 [1.080 - 1.153]"
	_, err := forest(figure.NewDataset("broken", records...), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1.116 [1.080 - 1.153]")
}

func TestAUCOrder(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	for i := 0; i < 10; i++ {
		shuffled := append([]figure.Record{}, aucRecords...)
		rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		chart, err := auc(figure.NewDataset("model AUC", shuffled...), AUCOrder, nil)
		require.NoError(t, err)

		var labels []string
		for _, tick := range chart.Spec.XTicks {
			labels = append(labels, tick.Label)
		}
		assert.Equal(t, AUCOrder, labels)

		bars := chart.Layers[0].Grobs
		require.Len(t, bars, len(AUCOrder))
		for k, g := range bars {
			bar := g.(*figure.GrobBar)
			assert.InDelta(t, float64(k), (bar.XMin+bar.XMax)/2, 1e-12)
		}
		first := bars[0].(*figure.GrobBar)
		assert.InDelta(t, 0.548, first.YMax, 1e-12)
	}
}

func TestAUCLimits(t *testing.T) {
	chart, err := AUC(nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.498, chart.YMin, 1e-12)
	assert.InDelta(t, 0.847, chart.YMax, 1e-12)
	assert.InDelta(t, -0.6, chart.XMin, 1e-12)
	assert.InDelta(t, 5.6, chart.XMax, 1e-12)

	texts := chart.Layers[1].Grobs
	assert.Equal(t, "0.548", texts[0].(*figure.GrobText).Text)
	assert.Equal(t, "0.797", texts[5].(*figure.GrobText).Text)
}

func TestAUCMissingModel(t *testing.T) {
	_, err := auc(figure.NewDataset("model AUC", aucRecords...), AUCOrder[:5], nil)
	var le *figure.LayoutError
	require.ErrorAs(t, err, &le)
}

func TestPlaque(t *testing.T) {
	chart, err := Plaque(nil)
	require.NoError(t, err)
	require.NotNil(t, chart.Twin)

	assert.InDelta(t, 0, chart.YMin, 1e-12)
	assert.InDelta(t, 85.95*1.05, chart.YMax, 1e-9)
	assert.InDelta(t, 0, chart.Twin.Min, 1e-12)
	assert.InDelta(t, 9.2*1.05, chart.Twin.Max, 1e-9)
	assert.InDelta(t, -0.675, chart.XMin, 1e-12)
	assert.InDelta(t, 4.675, chart.XMax, 1e-12)

	got := positions(chart.Layers[0].Data)
	assert.InDelta(t, -0.175, got["Total/Women"], 1e-12)
	assert.InDelta(t, 0.175, got["Total/Men"], 1e-12)
	assert.InDelta(t, 2.825, got["High Risk/Women"], 1e-12)

	// High Risk women: 2.5% drawn in volume units.
	bars := chart.Layers[0].Grobs
	hr := bars[6].(*figure.GrobBar)
	assert.InDelta(t, 2.5/(9.2*1.05)*85.95*1.05, hr.YMax, 1e-9)
	assert.InDelta(t, 2.825-PlaqueBarWidth/2, hr.XMin, 1e-12)

	labels := chart.Layers[1].Grobs
	assert.Equal(t, "38.20", labels[0].(*figure.GrobText).Text)
	assert.Equal(t, "2.50%", labels[6].(*figure.GrobText).Text)

	assert.True(t, chart.Spec.Legend.Top)
}

func TestPlaqueLogsAxisRanges(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	_, err := Plaque(zap.New(core))
	require.NoError(t, err)

	entries := logs.FilterMessage("plaque value axes").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, 85.95, fields["volume_range"])
	assert.Equal(t, 9.2, fields["percent_range"])
}

func TestUnpaintedFigure(t *testing.T) {
	records := append([]figure.Record{}, aucRecords...)
	data := figure.NewDataset("model AUC", records...)
	require.NoError(t, data.Reorder(AUCOrder))
	_, err := data.Place(figure.Layout{GroupSep: 1}, AUCOrder, nil)
	require.NoError(t, err)

	chart := figure.NewChart(aucSpec, nil)
	chart.AddLayer("AUC", data, figure.GeomBar{Width: 0.8})
	err = chart.ConstructGeoms()
	var re *figure.RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "color", re.Op)
	assert.Contains(t, err.Error(), "layer AUC")
}

func TestBuild(t *testing.T) {
	assert.Equal(t, []string{"auc", "forest", "plaque"}, Names())

	_, err := Build("pie", nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "pie"), "got %s", err)
}

func TestRenderAll(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping rendering in short mode")
	}
	dir := t.TempDir()
	for _, name := range Names() {
		chart, err := Build(name, nil)
		require.NoError(t, err, name)
		path, err := chart.Save(dir)
		require.NoError(t, err, name)
		assert.Equal(t, filepath.Join(dir, chart.Spec.Output), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "%s is not a PNG", path)
	}
}
