package ir

import (
	"strconv"
	"strings"
)

// Part is one concrete point: a value per axis.
//
// Values are not range-checked; out-of-range values simply flow through
// comparisons.
type Part [NumAxes]int64

// NewPart builds a Part from its four attribute values.
func NewPart(x, m, a, s int64) Part {
	return Part{AxisX: x, AxisM: m, AxisA: a, AxisS: s}
}

// Value returns the attribute value for axis a.
func (p Part) Value(a Axis) int64 {
	return p[a]
}

// Rating is the sum of all four attribute values.
func (p Part) Rating() int64 {
	var sum int64
	for _, v := range p {
		sum += v
	}
	return sum
}

// String renders the part as "{x=1,m=2,a=3,s=4}".
func (p Part) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, a := range Axes {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.String())
		b.WriteByte('=')
		b.WriteString(strconv.FormatInt(p[a], 10))
	}
	b.WriteByte('}')
	return b.String()
}

// Canonical returns the part as a map suitable for MarshalCanonical.
func (p Part) Canonical() map[string]any {
	out := make(map[string]any, NumAxes)
	for _, a := range Axes {
		out[a.String()] = p[a]
	}
	return out
}
