package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/sortflow/internal/engine"
	"github.com/roach88/sortflow/internal/ir"
)

func axisA(lo, hi int64) ir.Region {
	return ir.Universe(1, 1).With(ir.AxisA, ir.Interval{Lo: lo, Hi: hi})
}

func TestCheckConservation(t *testing.T) {
	whole := &engine.Partition{
		Seed:     axisA(1, 20),
		Accepted: []ir.Region{axisA(10, 20)},
		Rejected: []ir.Region{axisA(1, 9)},
	}
	assert.Empty(t, CheckConservation(whole))

	leaky := &engine.Partition{
		Seed:     axisA(1, 20),
		Accepted: []ir.Region{axisA(10, 20)},
	}
	assert.Equal(t, "conservation: accepted 11 + rejected 0 != universe 20", CheckConservation(leaky))
}

func TestCheckConsistency(t *testing.T) {
	p := &engine.Partition{
		Seed:     axisA(1, 20),
		Accepted: []ir.Region{axisA(10, 20)},
		Rejected: []ir.Region{axisA(1, 9)},
	}

	parts := []ir.Part{
		ir.NewPart(1, 1, 15, 1),  // accepted region
		ir.NewPart(1, 1, 5, 1),   // rejected region, wrong verdict
		ir.NewPart(1, 1, 500, 1), // outside the seed
	}
	verdicts := []ir.Verdict{ir.Accepted, ir.Accepted, ir.Rejected}

	errs := CheckConsistency(p, parts, verdicts)
	assert.Equal(t, []string{
		"consistency: part {x=1,m=1,a=5,s=1} classified accept but lies in a reject region",
	}, errs)
}

func TestCheckConsistency_Uncovered(t *testing.T) {
	p := &engine.Partition{
		Seed:     axisA(1, 20),
		Accepted: []ir.Region{axisA(10, 20)},
	}

	errs := CheckConsistency(p, []ir.Part{ir.NewPart(1, 1, 3, 1)}, []ir.Verdict{ir.Rejected})
	assert.Equal(t, []string{"consistency: part {x=1,m=1,a=3,s=1} is not covered by any region"}, errs)
}

func TestEvaluateExpectations_Empty(t *testing.T) {
	result := &Result{AcceptedVolume: "5", RejectedVolume: "0"}
	assert.Empty(t, EvaluateExpectations(result, Expect{}))
}

func TestEvaluateExpectations_NumericComparison(t *testing.T) {
	result := &Result{AcceptedVolume: "11"}
	assert.Empty(t, EvaluateExpectations(result, Expect{AcceptedVolume: "011"}))
	assert.Equal(t,
		[]string{`accepted_volume: expected value "eleven" is not an integer`},
		EvaluateExpectations(result, Expect{AcceptedVolume: "eleven"}))
}

func TestEvaluateExpectations_VerdictCount(t *testing.T) {
	result := &Result{Verdicts: []ir.Verdict{ir.Accepted}}
	errs := EvaluateExpectations(result, Expect{Verdicts: []ir.Verdict{ir.Accepted, ir.Rejected}})
	assert.Equal(t, []string{"verdicts: expected 2, got 1"}, errs)
}
