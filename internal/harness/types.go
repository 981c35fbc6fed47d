package harness

import (
	"github.com/roach88/sortflow/internal/engine"
	"github.com/roach88/sortflow/internal/ir"
)

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every built-in property and expectation holds.
	Pass bool `json:"pass"`

	// AcceptedVolume and RejectedVolume are decimal strings.
	AcceptedVolume string `json:"accepted_volume"`
	RejectedVolume string `json:"rejected_volume"`

	// Verdicts holds one verdict per classified part, in input order.
	Verdicts []ir.Verdict `json:"verdicts"`

	// RatingSum is the sum of ratings of accepted parts.
	RatingSum int64 `json:"rating_sum"`

	// Errors contains failed checks.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Partition is the propagation result used for golden comparison.
	Partition *engine.Partition `json:"-"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Verdicts: []ir.Verdict{},
		Errors:   []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// setPartition records the partition and its volumes.
func (r *Result) setPartition(p *engine.Partition) {
	r.Partition = p
	r.AcceptedVolume = p.AcceptedVolume().String()
	r.RejectedVolume = p.RejectedVolume().String()
}
