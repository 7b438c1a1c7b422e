package figure

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"go.uber.org/zap"
)

// Axis selects the value axis a record is drawn against.
type Axis int

const (
	Primary Axis = iota
	Secondary
)

func (a Axis) String() string {
	if a == Secondary {
		return "secondary"
	}
	return "primary"
}

// Record is one row of a dataset.
//
// Category, Group, Text, Value and Axis are the input. The remaining
// fields are derived by the Dataset methods and are fully resolved before
// a record is handed to a Geom.
type Record struct {
	Category string // e.g. plaque feature or model name
	Group    string // sub-group inside Category, e.g. sex; may be empty
	Text     string // interval literal like "1.177 (1.117, 1.241)"; may be empty
	Value    float64
	Axis     Axis

	// Derived values.
	Interval Interval // set by ParseIntervals
	ErrLow   float64  // Interval.Point - Interval.Lower
	ErrHigh  float64  // Interval.Upper - Interval.Point
	Pos      float64  // position along the category axis, set by Place
	Color    color.Color
}

// Dataset is an ordered collection of records.
type Dataset struct {
	Name    string
	Records []Record
}

// NewDataset makes a dataset with a copy of records.
func NewDataset(name string, records ...Record) *Dataset {
	d := &Dataset{Name: name, Records: make([]Record, len(records))}
	copy(d.Records, records)
	return d
}

// N is the number of records in d.
func (d *Dataset) N() int { return len(d.Records) }

func fieldValue(r *Record, field string) string {
	switch field {
	case "Category":
		return r.Category
	case "Group":
		return r.Group
	case "Axis":
		return r.Axis.String()
	}
	panic("figure: no such field " + field)
}

// Levels returns the distinct values of field ("Category", "Group" or
// "Axis") in order of first appearance.
func (d *Dataset) Levels(field string) []string {
	seen := NewStringSet()
	var levels []string
	for i := range d.Records {
		v := fieldValue(&d.Records[i], field)
		if seen.Contains(v) {
			continue
		}
		seen.Add(v)
		levels = append(levels, v)
	}
	return levels
}

// Filter extracts all records where field==value.
func (d *Dataset) Filter(field, value string) *Dataset {
	result := &Dataset{Name: fmt.Sprintf("%s %s=%s", d.Name, field, value)}
	for i := range d.Records {
		if fieldValue(&d.Records[i], field) == value {
			result.Records = append(result.Records, d.Records[i])
		}
	}
	return result
}

// SortBy sorts the records stably.
func (d *Dataset) SortBy(less func(a, b *Record) bool) {
	sort.SliceStable(d.Records, func(i, j int) bool {
		return less(&d.Records[i], &d.Records[j])
	})
}

// Reorder sorts the records by the position of their category in order.
// Records of the same category keep their relative order. A category
// missing from order is a LayoutError.
func (d *Dataset) Reorder(order []string) error {
	rank := make(map[string]int, len(order))
	for i, c := range order {
		if _, dup := rank[c]; dup {
			return &LayoutError{Category: c, Reason: "listed twice in ordering"}
		}
		rank[c] = i
	}
	unknown := NewStringSetFrom(d.Levels("Category"))
	unknown.Remove(NewStringSetFrom(order))
	if missing := unknown.Elements(); len(missing) > 0 {
		return &LayoutError{Category: missing[0], Reason: "missing from ordering"}
	}
	d.SortBy(func(a, b *Record) bool { return rank[a.Category] < rank[b.Category] })
	return nil
}

// ParseIntervals parses the Text of every record which has one and sets
// Interval, Value (the point estimate), ErrLow and ErrHigh. Unordered
// intervals are reported to log but kept.
func (d *Dataset) ParseIntervals(log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	for i := range d.Records {
		r := &d.Records[i]
		if r.Text == "" {
			continue
		}
		iv, err := ParseInterval(r.Text)
		if err != nil {
			return fmt.Errorf("dataset %s, record %d (%s/%s): %w",
				d.Name, i, r.Category, r.Group, err)
		}
		if !iv.Ordered() {
			log.Warn("interval bounds not ordered",
				zap.String("dataset", d.Name),
				zap.String("category", r.Category),
				zap.String("group", r.Group),
				zap.String("interval", r.Text))
		}
		r.Interval = iv
		r.Value = iv.Point
		r.ErrLow, r.ErrHigh = iv.ErrorBar()
	}
	return nil
}

// Place assigns the category axis position of every record using l.
// Categories are taken in the order given (all levels of d if nil), groups
// likewise. Each (category, group) combination must occur exactly once.
// The returned ticks label the category centers.
func (d *Dataset) Place(l Layout, categories, groups []string) ([]Tick, error) {
	if categories == nil {
		categories = d.Levels("Category")
	}
	if groups == nil {
		groups = d.Levels("Group")
	}
	slots, ticks, err := l.Place(categories, groups)
	if err != nil {
		return nil, err
	}

	type key struct{ cat, grp string }
	pos := make(map[key]float64, len(slots))
	for _, s := range slots {
		pos[key{s.Category, s.Group}] = s.Pos
	}
	used := make(map[key]bool, len(slots))
	for i := range d.Records {
		r := &d.Records[i]
		k := key{r.Category, r.Group}
		p, ok := pos[k]
		if !ok {
			return nil, &LayoutError{Category: r.Category, Group: r.Group, Reason: "not part of the layout"}
		}
		if used[k] {
			return nil, &LayoutError{Category: r.Category, Group: r.Group, Reason: "occurs more than once"}
		}
		used[k] = true
		r.Pos = p
	}
	for _, s := range slots {
		if !used[key{s.Category, s.Group}] {
			return nil, &LayoutError{Category: s.Category, Group: s.Group, Reason: "no record"}
		}
	}
	return ticks, nil
}

// ColorBy colors every record by the value of field using the named
// colors in colors. A missing or unparsable color is a RenderError.
func (d *Dataset) ColorBy(field string, colors map[string]string) error {
	parsed := make(map[string]color.Color, len(colors))
	for level, name := range colors {
		c, err := ParseColor(name)
		if err != nil {
			return err
		}
		parsed[level] = c
	}
	for i := range d.Records {
		v := fieldValue(&d.Records[i], field)
		c, ok := parsed[v]
		if !ok {
			return &RenderError{Op: "color", Err: fmt.Errorf("no color for %s %q", field, v)}
		}
		d.Records[i].Color = c
	}
	return nil
}

// Paint colors the records in their current order with colors.
func (d *Dataset) Paint(colors []color.Color) error {
	if len(colors) < len(d.Records) {
		return &RenderError{Op: "color",
			Err: fmt.Errorf("%d colors for %d records", len(colors), len(d.Records))}
	}
	for i := range d.Records {
		d.Records[i].Color = colors[i]
	}
	return nil
}

// MinMax determines the smallest and largest value reported by span over
// all records. With no records both are NaN.
func (d *Dataset) MinMax(span func(r *Record) (lo, hi float64)) (min, max float64) {
	if len(d.Records) == 0 {
		return math.NaN(), math.NaN()
	}
	min, max = math.Inf(+1), math.Inf(-1)
	for i := range d.Records {
		lo, hi := span(&d.Records[i])
		if lo < min {
			min = lo
		}
		if hi > max {
			max = hi
		}
	}
	return min, max
}

// Values is a span function for MinMax covering the plain values.
func Values(r *Record) (lo, hi float64) { return r.Value, r.Value }

// Bounds is a span function for MinMax covering the interval bounds.
func Bounds(r *Record) (lo, hi float64) { return r.Interval.Lower, r.Interval.Upper }

// Positions is a span function for MinMax covering the placed positions.
func Positions(r *Record) (lo, hi float64) { return r.Pos, r.Pos }
