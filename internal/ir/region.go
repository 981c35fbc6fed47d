package ir

import (
	"math/big"
	"strings"
)

// Region is an axis-aligned hyperrectangle: one Interval per axis.
//
// Region is an array value, so assignment copies it and splitting never
// aliases the parent.
type Region [NumAxes]Interval

// Universe returns the region with every axis set to [lo, hi].
func Universe(lo, hi int64) Region {
	var r Region
	for _, a := range Axes {
		r[a] = Interval{Lo: lo, Hi: hi}
	}
	return r
}

// MaxRegion returns [1,4000] on every axis.
func MaxRegion() Region {
	return Universe(DefaultLo, DefaultHi)
}

// PointRegion returns the degenerate region holding exactly p.
func PointRegion(p Part) Region {
	var r Region
	for _, a := range Axes {
		r[a] = Point(p[a])
	}
	return r
}

// Axis returns the interval for a.
func (r Region) Axis(a Axis) Interval {
	return r[a]
}

// With returns a copy of r with axis a replaced by iv.
func (r Region) With(a Axis, iv Interval) Region {
	r[a] = iv
	return r
}

// Valid reports whether every axis holds a non-empty interval.
func (r Region) Valid() bool {
	for _, iv := range r {
		if !iv.Valid() {
			return false
		}
	}
	return true
}

// Volume returns the number of points in the region.
func (r Region) Volume() *big.Int {
	v := big.NewInt(1)
	for _, iv := range r {
		v.Mul(v, iv.Size())
	}
	return v
}

// Contains reports whether p lies inside the region.
func (r Region) Contains(p Part) bool {
	for _, a := range Axes {
		if !r[a].Contains(p[a]) {
			return false
		}
	}
	return true
}

// Split applies the condition to its axis only; the other axes are copied
// unchanged into both sides. A side whose axis interval would be empty is
// reported absent.
func (r Region) Split(c Conditional) (matched, rest Region, hasMatched, hasRest bool) {
	m, n, okM, okN := r[c.Axis].Split(c.Op, c.Threshold)
	if okM {
		matched = r.With(c.Axis, m)
	}
	if okN {
		rest = r.With(c.Axis, n)
	}
	return matched, rest, okM, okN
}

// String renders the region as "{x=[lo,hi],m=[lo,hi],a=[lo,hi],s=[lo,hi]}".
func (r Region) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, a := range Axes {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.String())
		b.WriteByte('=')
		b.WriteString(r[a].String())
	}
	b.WriteByte('}')
	return b.String()
}

// Canonical returns the region as a map suitable for MarshalCanonical.
func (r Region) Canonical() map[string]any {
	out := make(map[string]any, NumAxes)
	for _, a := range Axes {
		out[a.String()] = []any{r[a].Lo, r[a].Hi}
	}
	return out
}

// TotalVolume sums the volumes of regions.
func TotalVolume(regions []Region) *big.Int {
	total := new(big.Int)
	for _, r := range regions {
		total.Add(total, r.Volume())
	}
	return total
}
