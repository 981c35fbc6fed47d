package ir

import "fmt"

// Rule is one step of a Workflow. It is either a Conditional or an
// Unconditional; callers dispatch with a type switch.
type Rule interface {
	// Target returns the label the rule routes to.
	Target() string
	String() string

	rule()
}

// Conditional routes values of Axis that satisfy Op against Threshold.
type Conditional struct {
	Axis        Axis
	Op          Comparator
	Threshold   int64
	Destination string
}

// Unconditional routes everything that reaches it.
type Unconditional struct {
	Destination string
}

func (Conditional) rule()   {}
func (Unconditional) rule() {}

// Target implements Rule.
func (c Conditional) Target() string { return c.Destination }

// Target implements Rule.
func (u Unconditional) Target() string { return u.Destination }

// String renders the rule in workflow text form, e.g. "a<2006:qkq".
func (c Conditional) String() string {
	return fmt.Sprintf("%s%s%d:%s", c.Axis, c.Op, c.Threshold, c.Destination)
}

// String renders the rule in workflow text form.
func (u Unconditional) String() string {
	return u.Destination
}

// Match reports whether p satisfies the condition.
func (c Conditional) Match(p Part) bool {
	return c.Op.Holds(p[c.Axis], c.Threshold)
}

// MatchInterval returns the part of the default universe [1,4000] the
// condition matches. The bool is false when that part is empty.
func (c Conditional) MatchInterval() (Interval, bool) {
	m, _, ok, _ := Interval{Lo: DefaultLo, Hi: DefaultHi}.Split(c.Op, c.Threshold)
	return m, ok
}

// RestInterval returns the complement of MatchInterval inside [1,4000].
func (c Conditional) RestInterval() (Interval, bool) {
	_, n, _, ok := Interval{Lo: DefaultLo, Hi: DefaultHi}.Split(c.Op, c.Threshold)
	return n, ok
}
