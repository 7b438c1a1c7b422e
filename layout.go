package figure

import (
	"fmt"
	"math"
)

// Layout places sub-grouped categories along one axis. Category i is
// centered at i*GroupSep, its sub-groups are spread evenly over
// [-PairSep/2, +PairSep/2] around that center.
//
//     GroupSep=2, PairSep=0.6
//
//     0.3  *  first          2.3  *  first
//     0.0  -- CP             2.0  -- NCP       ...
//    -0.3  *  second         1.7  *  second
//
// The first sub-group gets the high end unless FirstLow is set.
type Layout struct {
	GroupSep float64
	PairSep  float64
	FirstLow bool
}

// Slot is the axis position of one (category, group) combination.
type Slot struct {
	Category string
	Group    string
	Pos      float64
}

// Tick is a labeled position on an axis.
type Tick struct {
	Pos   float64
	Label string
}

// LayoutError reports categories and sub-groups which cannot be laid out.
type LayoutError struct {
	Category string // may be empty
	Group    string // may be empty
	Reason   string
}

func (e *LayoutError) Error() string {
	switch {
	case e.Category != "" && e.Group != "":
		return fmt.Sprintf("figure: layout of %s/%s: %s", e.Category, e.Group, e.Reason)
	case e.Category != "":
		return fmt.Sprintf("figure: layout of %s: %s", e.Category, e.Reason)
	case e.Group != "":
		return fmt.Sprintf("figure: layout of group %s: %s", e.Group, e.Reason)
	}
	return "figure: layout: " + e.Reason
}

// Offsets returns the offsets from the category center of n sub-groups.
func (l Layout) Offsets(n int) []float64 {
	off := make([]float64, n)
	if n == 1 {
		return off
	}
	half := l.PairSep / 2
	step := l.PairSep / float64(n-1)
	for k := range off {
		if l.FirstLow {
			off[k] = -half + float64(k)*step
		} else {
			off[k] = half - float64(k)*step
		}
	}
	return off
}

// Place computes the position of every group in every category. Slots are
// returned category by category, groups in the given order. There is one
// tick per category at its center.
func (l Layout) Place(categories, groups []string) ([]Slot, []Tick, error) {
	if err := l.check(categories, groups); err != nil {
		return nil, nil, err
	}

	off := l.Offsets(len(groups))
	slots := make([]Slot, 0, len(categories)*len(groups))
	ticks := make([]Tick, len(categories))
	for i, cat := range categories {
		base := float64(i) * l.GroupSep
		ticks[i] = Tick{Pos: base, Label: cat}
		for k, grp := range groups {
			slots = append(slots, Slot{Category: cat, Group: grp, Pos: base + off[k]})
		}
	}
	return slots, ticks, nil
}

func (l Layout) check(categories, groups []string) error {
	switch {
	case len(categories) == 0:
		return &LayoutError{Reason: "no categories"}
	case len(groups) == 0:
		return &LayoutError{Reason: "no sub-groups"}
	case math.IsNaN(l.GroupSep) || math.IsInf(l.GroupSep, 0):
		return &LayoutError{Reason: fmt.Sprintf("group separation %g is not finite", l.GroupSep)}
	case math.IsNaN(l.PairSep) || math.IsInf(l.PairSep, 0):
		return &LayoutError{Reason: fmt.Sprintf("pair separation %g is not finite", l.PairSep)}
	case l.GroupSep <= 0:
		return &LayoutError{Reason: fmt.Sprintf("group separation %g is not positive", l.GroupSep)}
	case l.PairSep < 0:
		return &LayoutError{Reason: fmt.Sprintf("pair separation %g is negative", l.PairSep)}
	case len(categories) > 1 && l.PairSep >= l.GroupSep:
		return &LayoutError{Reason: fmt.Sprintf("pair separation %g overlaps group separation %g",
			l.PairSep, l.GroupSep)}
	case len(groups) > 1 && l.PairSep == 0:
		return &LayoutError{Reason: "pair separation 0 stacks sub-groups"}
	}

	seen := NewStringSet()
	for _, c := range categories {
		if seen.Contains(c) {
			return &LayoutError{Category: c, Reason: "duplicate category"}
		}
		seen.Add(c)
	}
	seen = NewStringSet()
	for _, g := range groups {
		if seen.Contains(g) {
			return &LayoutError{Group: g, Reason: "duplicate sub-group"}
		}
		seen.Add(g)
	}
	return nil
}
