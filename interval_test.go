package figure

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInterval(t *testing.T) {
	tests := []struct {
		s    string
		want Interval
	}{
		{"1.177 (1.117, 1.241)", Interval{1.177, 1.117, 1.241}},
		{"1.053 (1.033,1.074)", Interval{1.053, 1.033, 1.074}},
		{"  0.5(0.25 , 0.75)  ", Interval{0.5, 0.25, 0.75}},
		{"-0.2 (-0.45, 0.05)", Interval{-0.2, -0.45, 0.05}},
		{"1e-3 (5E-4, 2.5e-3)", Interval{0.001, 0.0005, 0.0025}},
		{"2 1 3", Interval{2, 1, 3}},
		{"1.1 (1.0, 1.2) p<0.001", Interval{1.1, 1.0, 1.2}},
	}

	for i, tc := range tests {
		got, err := ParseInterval(tc.s)
		if err != nil {
			t.Errorf("%d %q: unexpected error %s", i, tc.s, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%d %q: got %+v, want %+v", i, tc.s, got, tc.want)
		}
	}
}

func TestParseIntervalErrors(t *testing.T) {
	tests := []struct {
		s     string
		token string
	}{
		{"", ""},
		{"1.177", ""},
		{"1.177 (1.117)", ""},
		{"1.177 (1.117, abc)", "abc"},
		{"HR (1.117, 1.241)", "HR"},
		{"1.177 (NaN, 1.241)", "NaN"},
		{"1.177 (1.117, +Inf)", "+Inf"},
	}

	for _, tc := range tests {
		_, err := ParseInterval(tc.s)
		require.Error(t, err, "input %q", tc.s)

		var pe *ParseError
		require.True(t, errors.As(err, &pe), "input %q: got %T", tc.s, err)
		assert.Equal(t, tc.s, pe.Input)
		assert.Equal(t, tc.token, pe.Token)
		assert.Contains(t, err.Error(), fmt.Sprintf("%q", tc.s))
	}
}

func TestIntervalFormatRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(17))
	for i := 0; i < 200; i++ {
		lo := 0.5 + rnd.Float64()
		p := lo + rnd.Float64()/2
		hi := p + rnd.Float64()/2
		iv := Interval{Point: p, Lower: lo, Upper: hi}

		got, err := ParseInterval(iv.Format(17))
		require.NoError(t, err)
		assert.InDelta(t, p, got.Point, 1e-15)
		assert.InDelta(t, lo, got.Lower, 1e-15)
		assert.InDelta(t, hi, got.Upper, 1e-15)
	}
}

func TestErrorBar(t *testing.T) {
	iv, err := ParseInterval("1.177 (1.117, 1.241)")
	require.NoError(t, err)
	assert.Equal(t, Interval{1.177, 1.117, 1.241}, iv)

	neg, pos := iv.ErrorBar()
	assert.InDelta(t, 0.060, neg, 1e-12)
	assert.InDelta(t, 0.064, pos, 1e-12)
}

func TestErrorBarReconstruction(t *testing.T) {
	// Hazard ratio like values: bounds within a factor of two of the
	// point estimate, where the subtraction is exact.
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		p := 1 + rnd.Float64()
		lo := p - rnd.Float64()*(p-p/2)
		hi := p + rnd.Float64()*(2*p-p)

		neg, pos := ErrorBar(p, lo, hi)
		if neg < 0 || pos < 0 {
			t.Fatalf("ErrorBar(%g, %g, %g) = %g, %g: negative", p, lo, hi, neg, pos)
		}
		if p-neg != lo || p+pos != hi {
			t.Fatalf("ErrorBar(%g, %g, %g) = %g, %g: reconstructs %g, %g",
				p, lo, hi, neg, pos, p-neg, p+pos)
		}
	}
}

func TestIntervalOrdered(t *testing.T) {
	assert.True(t, Interval{1, 1, 1}.Ordered())
	assert.True(t, Interval{1.2, 1.1, 1.3}.Ordered())
	assert.False(t, Interval{1.0, 1.1, 1.3}.Ordered())
	assert.False(t, Interval{1.2, 1.1, 1.15}.Ordered())
	assert.Equal(t, "1.177 (1.117, 1.241)", Interval{1.177, 1.117, 1.241}.String())
}
