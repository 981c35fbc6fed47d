package ir

import (
	"errors"
	"fmt"
)

// Axis identifies one of the four fixed part attributes.
type Axis int

const (
	AxisX Axis = iota
	AxisM
	AxisA
	AxisS
)

// NumAxes is the number of attributes every Part and Region carries.
const NumAxes = 4

// Axes lists every axis in declaration order.
var Axes = [NumAxes]Axis{AxisX, AxisM, AxisA, AxisS}

var axisNames = [NumAxes]string{"x", "m", "a", "s"}

// ErrUnknownAxis is returned when an attribute name is not one of x, m, a, s.
var ErrUnknownAxis = errors.New("unknown attribute")

// String returns the single-letter attribute name.
func (a Axis) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisNames[a]
}

// Valid reports whether a is one of the four fixed axes.
func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisS
}

// ParseAxis maps an attribute name to its Axis.
func ParseAxis(name string) (Axis, error) {
	for i, n := range axisNames {
		if n == name {
			return Axis(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAxis, name)
}
