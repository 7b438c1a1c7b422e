package figure

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// smallChart is a two record bar chart with labels and a reference line.
func smallChart(t *testing.T, log *zap.Logger) *Chart {
	d := NewDataset("small",
		Record{Category: "a", Value: 1},
		Record{Category: "b", Value: 3},
	)
	ticks, err := d.Place(Layout{GroupSep: 1}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, d.ColorBy("Category", map[string]string{"a": "red", "b": "#00000080"}))

	spec := ChartSpec{
		Title:  "Small",
		XLabel: "Category",
		YLabel: "Value",
		Width:  3 * vg.Inch,
		Height: 2 * vg.Inch,
		DPI:    72,
		XTicks: ticks,
		YGrid:  DottedLine,
		Legend: LegendSpec{
			Title:   "Legend",
			Entries: []LegendEntry{{Label: "a", Color: BuiltinColors["red"]}},
		},
		Output: "small.png",
	}
	c := NewChart(spec, log)
	c.SetLimits(-0.6, 1.6, 0, 3.5)
	c.Annotate("target", &GrobRule{Value: 2, Color: BuiltinColors["gray"], Width: 1, LineType: DashedLine})
	c.AddLayer("bars", d, GeomBar{Width: 0.8})
	c.AddLayer("labels", d, GeomText{Format: "%.1f", Offset: vg.Point{Y: 3}})
	require.NoError(t, c.ConstructGeoms())
	return c
}

func TestChartConstructGeoms(t *testing.T) {
	c := smallChart(t, nil)
	require.Len(t, c.Layers, 3)
	assert.Len(t, c.Layers[0].Grobs, 1)
	assert.Len(t, c.Layers[1].Grobs, 2)
	assert.Len(t, c.Layers[2].Grobs, 2)
	assert.Len(t, c.Grobs(), 5)
}

func TestChartConstructGeomsUnresolved(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		op      string
	}{
		{"unpainted", []Record{{Category: "a", Value: 1}, {Category: "b", Value: 3, Pos: 1}}, "color"},
		{"NaN value", []Record{{Category: "a", Value: math.NaN(), Color: BuiltinColors["red"]}}, "plot"},
		{"infinite position", []Record{{Category: "a", Value: 1, Pos: math.Inf(1), Color: BuiltinColors["red"]}}, "plot"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewChart(ChartSpec{Title: tc.name}, nil)
			layer := c.AddLayer("bars", NewDataset(tc.name, tc.records...), GeomBar{Width: 0.8})
			err := c.ConstructGeoms()
			var re *RenderError
			require.True(t, errors.As(err, &re), "got %v", err)
			assert.Equal(t, tc.op, re.Op)
			assert.Empty(t, layer.Grobs)
		})
	}
}

func TestChartWriteTo(t *testing.T) {
	c := smallChart(t, nil)
	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic), "not a PNG")
}

func TestChartWriteToTwin(t *testing.T) {
	c := smallChart(t, nil)
	c.Spec.Y2Label = "Percent"
	c.Spec.Transparent = true
	c.Twin = &TwinAxis{Min: 0, Max: 50, PrimaryMin: c.YMin, PrimaryMax: c.YMax}
	var buf bytes.Buffer
	_, err := c.WriteTo(&buf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic), "not a PNG")
}

func TestChartSave(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	c := smallChart(t, zap.New(core))
	dir := t.TempDir()

	path, err := c.Save(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "small.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, pngMagic), "not a PNG")
	assert.Equal(t, 1, logs.FilterMessage("saved chart").Len())
}

func TestChartSaveErrors(t *testing.T) {
	c := smallChart(t, nil)
	var re *RenderError

	_, err := c.Save(filepath.Join(t.TempDir(), "does", "not", "exist"))
	require.True(t, errors.As(err, &re), "got %v", err)
	assert.Equal(t, "write", re.Op)
	assert.NotEmpty(t, re.Path)

	c.Spec.Output = ""
	_, err = c.Save(t.TempDir())
	require.True(t, errors.As(err, &re), "got %v", err)
}

func TestChartPlan(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-12)
	c := smallChart(t, nil)
	two := 2.0
	want := Plan{
		Title:  "Small",
		Output: "small.png",
		X: AxisPlan{
			Label: "Category", Min: -0.6, Max: 1.6,
			Ticks: []TickPlan{{Pos: 0, Label: "a"}, {Pos: 1, Label: "b"}},
		},
		Y:      AxisPlan{Label: "Value", Min: 0, Max: 3.5},
		Legend: []string{"#ff0000 a"},
		Layers: []LayerPlan{
			{Name: "target", Marks: []MarkPlan{{Kind: "hrule", Value: &two, Color: "#808080"}}},
			{Name: "bars", Geom: "GeomBar", Marks: []MarkPlan{
				{Kind: "bar", Box: []float64{-0.4, 0.4, 0, 1}, Color: "#ff0000"},
				{Kind: "bar", Box: []float64{0.6, 1.4, 0, 3}, Color: "#00000080"},
			}},
			{Name: "labels", Geom: "GeomText", Marks: []MarkPlan{
				{Kind: "text", X: 0, Y: 1, Text: "1.0"},
				{Kind: "text", X: 1, Y: 3, Text: "3.0"},
			}},
		},
	}
	if diff := cmp.Diff(want, c.Plan(), approx); diff != "" {
		t.Errorf("Plan mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	require.NoError(t, c.WritePlan(&buf))
	var decoded Plan
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	if diff := cmp.Diff(want, decoded, approx); diff != "" {
		t.Errorf("YAML plan mismatch (-want +got):\n%s", diff)
	}
}
