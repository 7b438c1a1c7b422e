package figure

import (
	"math"
)

// Padding describes how far the displayed range of an axis extends beyond
// the data. Lower and Upper are fractions of the data range, LowerAbs and
// UpperAbs are added in data units. Fallback is used on both sides if the
// padded range would be empty or inverted, e.g. because all data values
// are identical; zero means 1. The fallback grows with the magnitude of
// the data so it never vanishes below the float64 resolution.
type Padding struct {
	Lower, Upper       float64
	LowerAbs, UpperAbs float64
	Fallback           float64
}

// Apply pads the data range [min,max]. The result is always strictly
// increasing for finite min <= max.
func (p Padding) Apply(min, max float64) (lo, hi float64) {
	r := max - min
	lo = min - p.Lower*r - p.LowerAbs
	hi = max + p.Upper*r + p.UpperAbs
	if lo < hi {
		return lo, hi
	}
	fb := p.Fallback
	if fb <= 0 {
		fb = 1
	}
	fb = math.Max(fb, math.Max(math.Abs(min), math.Abs(max))*1e-9)
	return min - fb, max + fb
}

// Scale collects the data domain of one axis.
type Scale struct {
	DomainMin float64
	DomainMax float64
}

// NewScale returns an untrained scale.
func NewScale() *Scale {
	return &Scale{
		DomainMin: math.Inf(+1),
		DomainMax: math.Inf(-1),
	}
}

// Train widens the domain of s to include all finite values.
func (s *Scale) Train(values ...float64) {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < s.DomainMin {
			s.DomainMin = v
		}
		if v > s.DomainMax {
			s.DomainMax = v
		}
	}
}

// Trained reports whether s has seen at least one value.
func (s *Scale) Trained() bool {
	return s.DomainMin <= s.DomainMax
}

// Range is DomainMax - DomainMin, or 0 for an untrained scale.
func (s *Scale) Range() float64 {
	if !s.Trained() {
		return 0
	}
	return s.DomainMax - s.DomainMin
}

// Limits returns the padded display range of s. An untrained scale
// yields [0,1].
func (s *Scale) Limits(p Padding) (lo, hi float64) {
	if !s.Trained() {
		return 0, 1
	}
	return p.Apply(s.DomainMin, s.DomainMax)
}

// TwinAxis maps a secondary axis range linearly onto the primary one so
// that marks of both axes can share one coordinate system.
type TwinAxis struct {
	Min, Max               float64 // secondary axis limits
	PrimaryMin, PrimaryMax float64
}

// ToPrimary converts a secondary axis value to primary axis coordinates.
func (t TwinAxis) ToPrimary(v float64) float64 {
	if t.Max == t.Min {
		return t.PrimaryMin
	}
	f := (v - t.Min) / (t.Max - t.Min)
	return t.PrimaryMin + f*(t.PrimaryMax-t.PrimaryMin)
}
