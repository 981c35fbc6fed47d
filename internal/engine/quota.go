package engine

import (
	"errors"
	"fmt"
)

// QuotaEnforcer counts the work items one Propagate call processes and
// enforces a maximum.
//
// An acyclic graph yields a finite number of work items, bounded by the
// number of paths through it. A cyclic graph that regions can actually
// traverse never drains; the quota turns that hang into an error.
type QuotaEnforcer struct {
	maxSteps int // Maximum allowed steps
	current  int // Current step count
}

// NewQuotaEnforcer creates a new quota enforcer with the given limit.
func NewQuotaEnforcer(maxSteps int) *QuotaEnforcer {
	return &QuotaEnforcer{
		maxSteps: maxSteps,
		current:  0,
	}
}

// Check increments the step counter and validates against the limit.
// label is the workflow about to be evaluated, used for diagnostics.
func (q *QuotaEnforcer) Check(label string) error {
	q.current++
	if q.current > q.maxSteps {
		return &StepsExceededError{
			Label: label,
			Steps: q.current,
			Limit: q.maxSteps,
		}
	}
	return nil
}

// Current returns the current step count.
func (q *QuotaEnforcer) Current() int {
	return q.current
}

// MaxSteps returns the maximum steps limit.
func (q *QuotaEnforcer) MaxSteps() int {
	return q.maxSteps
}

// StepsExceededError is returned when propagation exceeds the max steps
// quota.
type StepsExceededError struct {
	Label string // Workflow that would have been evaluated next
	Steps int    // Number of steps taken
	Limit int    // Maximum allowed steps
}

// Error implements the error interface.
func (e *StepsExceededError) Error() string {
	return fmt.Sprintf("propagation exceeded max steps quota at %q: %d steps > %d limit",
		e.Label, e.Steps, e.Limit)
}

// IsStepsExceededError returns true if the error is a StepsExceededError.
// Uses errors.As to handle wrapped errors.
func IsStepsExceededError(err error) bool {
	var se *StepsExceededError
	return errors.As(err, &se)
}
