package figure

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Interval is a point estimate together with its confidence interval.
type Interval struct {
	Point, Lower, Upper float64
}

// ParseError reports a malformed interval string.
type ParseError struct {
	Input string // the complete string handed to ParseInterval
	Token string // the offending token, empty if tokens are missing
	Err   error
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("figure: cannot parse interval %q: %s", e.Input, e.Err)
	}
	return fmt.Sprintf("figure: cannot parse interval %q: bad number %q: %s",
		e.Input, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var intervalPunct = strings.NewReplacer("(", " ", ")", " ", ",", " ")

// ParseInterval parses strings of the form "<point> (<lower>, <upper>)".
// Parentheses and commas are treated as blanks so "1.2 (1.0,1.4)" and
// "1.2 1.0 1.4" are both fine. The first three tokens are used; anything
// after them is ignored.
func ParseInterval(s string) (Interval, error) {
	tokens := strings.Fields(intervalPunct.Replace(s))
	if len(tokens) < 3 {
		return Interval{}, &ParseError{
			Input: s,
			Err:   fmt.Errorf("got %d numbers, want 3", len(tokens)),
		}
	}

	var v [3]float64
	for i := range v {
		x, err := strconv.ParseFloat(tokens[i], 64)
		if err != nil {
			return Interval{}, &ParseError{Input: s, Token: tokens[i], Err: err}
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Interval{}, &ParseError{
				Input: s,
				Token: tokens[i],
				Err:   fmt.Errorf("not a finite number"),
			}
		}
		v[i] = x
	}
	return Interval{Point: v[0], Lower: v[1], Upper: v[2]}, nil
}

// ErrorBar returns the distances from p down to lo and from p up to hi.
// Both are non-negative for lo <= p <= hi.
func ErrorBar(p, lo, hi float64) (neg, pos float64) {
	return p - lo, hi - p
}

// ErrorBar is a shorthand for ErrorBar(iv.Point, iv.Lower, iv.Upper).
func (iv Interval) ErrorBar() (neg, pos float64) {
	return ErrorBar(iv.Point, iv.Lower, iv.Upper)
}

// Ordered reports whether Lower <= Point <= Upper.
func (iv Interval) Ordered() bool {
	return iv.Lower <= iv.Point && iv.Point <= iv.Upper
}

// Format renders iv like "1.177 (1.117, 1.241)" with prec decimals.
func (iv Interval) Format(prec int) string {
	return fmt.Sprintf("%.*f (%.*f, %.*f)", prec, iv.Point, prec, iv.Lower, prec, iv.Upper)
}

func (iv Interval) String() string { return iv.Format(3) }
