package engine

import (
	"errors"
	"fmt"
)

// RuntimeError represents an error detected by the engine.
//
// Runtime errors include:
//   - Invalid graph: construction-time validation failed
//   - Cycle detection: a part would visit the same workflow twice
//   - Quota exceeded: propagation processed too many work items
//   - Missing workflow: a destination names no workflow
//   - Conservation: collected plus pending volume drifted from the seed
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Label identifies the workflow involved, if any.
	Label string

	// Details contains additional context.
	Details map[string]string
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeInvalidGraph indicates the graph failed validation.
	ErrCodeInvalidGraph RuntimeErrorCode = "INVALID_GRAPH"

	// ErrCodeCycleDetected indicates a part would revisit a workflow.
	ErrCodeCycleDetected RuntimeErrorCode = "CYCLE_DETECTED"

	// ErrCodeQuotaExceeded indicates propagation exceeded max steps.
	ErrCodeQuotaExceeded RuntimeErrorCode = "QUOTA_EXCEEDED"

	// ErrCodeMissingWorkflow indicates a destination names no workflow.
	ErrCodeMissingWorkflow RuntimeErrorCode = "MISSING_WORKFLOW"

	// ErrCodeNoMatch indicates a workflow let a part fall through every rule.
	ErrCodeNoMatch RuntimeErrorCode = "NO_MATCH"

	// ErrCodeInvalidRegion indicates a seed region with an empty axis.
	ErrCodeInvalidRegion RuntimeErrorCode = "INVALID_REGION"

	// ErrCodeConservation indicates volume was created or lost.
	ErrCodeConservation RuntimeErrorCode = "CONSERVATION_VIOLATED"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("%s: %s (workflow=%s)", e.Code, e.Message, e.Label)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsCycleError returns true if the error is a cycle detection error.
// Uses errors.As to handle wrapped errors.
func IsCycleError(err error) bool {
	return hasCode(err, ErrCodeCycleDetected)
}

// IsQuotaError returns true if the error is a quota exceeded error.
// Matches both RuntimeError with ErrCodeQuotaExceeded and StepsExceededError.
func IsQuotaError(err error) bool {
	if hasCode(err, ErrCodeQuotaExceeded) {
		return true
	}
	return IsStepsExceededError(err)
}

// IsInvalidGraphError returns true if the graph failed validation.
func IsInvalidGraphError(err error) bool {
	return hasCode(err, ErrCodeInvalidGraph)
}

func hasCode(err error, code RuntimeErrorCode) bool {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// NewCycleError creates a RuntimeError for a revisited workflow.
func NewCycleError(label string, path []string) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeCycleDetected,
		Message: "part would visit the same workflow twice",
		Label:   label,
		Details: map[string]string{
			"path_length": fmt.Sprintf("%d", len(path)),
		},
	}
}

// NewMissingWorkflowError creates a RuntimeError for an unknown label.
func NewMissingWorkflowError(label string) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeMissingWorkflow,
		Message: "destination names no workflow",
		Label:   label,
	}
}
