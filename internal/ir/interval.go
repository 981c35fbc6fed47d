package ir

import (
	"fmt"
	"math/big"
)

// Default universe bounds for every axis.
const (
	DefaultLo int64 = 1
	DefaultHi int64 = 4000
)

// Comparator is the test a conditional rule applies to one attribute.
type Comparator int

const (
	// Less matches values strictly below the threshold.
	Less Comparator = iota + 1
	// Greater matches values strictly above the threshold.
	Greater
)

// String returns the comparator's symbol as written in workflow text.
func (c Comparator) String() string {
	switch c {
	case Less:
		return "<"
	case Greater:
		return ">"
	default:
		return fmt.Sprintf("Comparator(%d)", int(c))
	}
}

// ParseComparator maps "<" or ">" to a Comparator.
func ParseComparator(s string) (Comparator, error) {
	switch s {
	case "<":
		return Less, nil
	case ">":
		return Greater, nil
	default:
		return 0, fmt.Errorf("unknown comparator %q", s)
	}
}

// Holds reports whether value satisfies the comparator against threshold.
func (c Comparator) Holds(value, threshold int64) bool {
	switch c {
	case Less:
		return value < threshold
	case Greater:
		return value > threshold
	default:
		return false
	}
}

// Interval is the closed integer range [Lo, Hi].
// A live Interval always has Lo <= Hi.
type Interval struct {
	Lo int64 `json:"lo"`
	Hi int64 `json:"hi"`
}

// NewInterval returns [lo, hi] or an error when the range would be empty.
func NewInterval(lo, hi int64) (Interval, error) {
	if lo > hi {
		return Interval{}, fmt.Errorf("empty interval [%d,%d]", lo, hi)
	}
	return Interval{Lo: lo, Hi: hi}, nil
}

// Point returns the single-value interval [v, v].
func Point(v int64) Interval {
	return Interval{Lo: v, Hi: v}
}

// Valid reports whether the interval is non-empty.
func (i Interval) Valid() bool {
	return i.Lo <= i.Hi
}

// Size returns the number of integers in the interval.
func (i Interval) Size() *big.Int {
	n := new(big.Int).SetInt64(i.Hi)
	n.Sub(n, big.NewInt(i.Lo))
	return n.Add(n, big.NewInt(1))
}

// Contains reports whether v lies inside the interval.
func (i Interval) Contains(v int64) bool {
	return i.Lo <= v && v <= i.Hi
}

// Split partitions the interval against cmp and threshold.
//
// matched holds the values satisfying the comparator and rest its exact
// complement inside i. A side that would be empty is reported absent
// through hasMatched / hasRest and its value is the zero Interval.
func (i Interval) Split(cmp Comparator, threshold int64) (matched, rest Interval, hasMatched, hasRest bool) {
	if !i.Valid() {
		return Interval{}, Interval{}, false, false
	}

	// threshold±1 is only computed once the comparison leaves room for it,
	// so thresholds at the int64 limits cannot wrap.
	switch cmp {
	case Less:
		if threshold <= i.Lo {
			return Interval{}, i, false, true
		}
		matched = Interval{Lo: i.Lo, Hi: min(i.Hi, threshold-1)}
		rest = Interval{Lo: max(i.Lo, threshold), Hi: i.Hi}
	case Greater:
		if threshold >= i.Hi {
			return Interval{}, i, false, true
		}
		matched = Interval{Lo: max(i.Lo, threshold+1), Hi: i.Hi}
		rest = Interval{Lo: i.Lo, Hi: min(i.Hi, threshold)}
	default:
		return Interval{}, i, false, true
	}

	hasMatched = matched.Valid()
	hasRest = rest.Valid()
	if !hasMatched {
		matched = Interval{}
	}
	if !hasRest {
		rest = Interval{}
	}
	return matched, rest, hasMatched, hasRest
}

// String renders the interval as "[lo,hi]".
func (i Interval) String() string {
	return fmt.Sprintf("[%d,%d]", i.Lo, i.Hi)
}
