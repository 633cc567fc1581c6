package calculator

import (
	"math"
	"strconv"
	"strings"
)

// Infinity is the display text shown for a positive infinite result.
const Infinity = "∞"

const negativeInfinity = "-" + Infinity

// Values inside [minPlain, maxPlain) print in positional notation, the rest
// in exponent form.
const (
	minPlain = 1e-4
	maxPlain = 1e16
)

// FormatNumber renders v the way the display shows numbers: shortest
// round-trip digits, integral values with a trailing ".0", exponent form for
// very large or very small magnitudes and the ∞ sentinel for infinities.
func FormatNumber(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return Infinity
	case math.IsInf(v, -1):
		return negativeInfinity
	case math.IsNaN(v):
		return "NaN"
	}

	abs := math.Abs(v)
	if abs != 0 && (abs < minPlain || abs >= maxPlain) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// ParseNumber reads display text as a float64. Only decimal notation is
// accepted: sentinels, a lone sign or point, repeated points and values out
// of float64 range all fail.
func ParseNumber(s string) (float64, bool) {
	if s == "" || strings.IndexFunc(s, notDecimal) >= 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func notDecimal(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return false
	case r == '.', r == '+', r == '-', r == 'e', r == 'E':
		return false
	}
	return true
}

// IsSentinel reports whether display text stands in for a value that cannot
// be shown as a number.
func IsSentinel(s string) bool {
	return s == Infinity || s == negativeInfinity
}
