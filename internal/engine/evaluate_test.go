package engine

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortflow/internal/ir"
	"github.com/roach88/sortflow/internal/testutil"
)

// TestEvaluateRule_Conditional tests point-mode firing on both sides of the threshold.
func TestEvaluateRule_Conditional(t *testing.T) {
	rule := testutil.Cond(ir.AxisA, ir.Less, 10, "R")

	dest, ok := EvaluateRule(rule, ir.NewPart(1, 1, 9, 1))
	assert.True(t, ok)
	assert.Equal(t, "R", dest)

	dest, ok = EvaluateRule(rule, ir.NewPart(1, 1, 10, 1))
	assert.False(t, ok, "threshold itself does not satisfy <")
	assert.Empty(t, dest)
}

// TestEvaluateRule_Unconditional tests that an unconditional rule always fires.
func TestEvaluateRule_Unconditional(t *testing.T) {
	dest, ok := EvaluateRule(testutil.Always("px"), ir.NewPart(4000, 4000, 4000, 4000))
	assert.True(t, ok)
	assert.Equal(t, "px", dest)
}

// TestEvaluateRuleRange_Split tests that a straddling region is split on the rule's axis.
func TestEvaluateRuleRange_Split(t *testing.T) {
	rule := testutil.Cond(ir.AxisM, ir.Greater, 2090, "A")

	routed, hasRouted, rest, hasRest := EvaluateRuleRange(rule, ir.MaxRegion())
	require.True(t, hasRouted)
	require.True(t, hasRest)

	assert.Equal(t, "A", routed.Destination)
	assert.Equal(t, ir.Interval{Lo: 2091, Hi: 4000}, routed.Region.Axis(ir.AxisM))
	assert.Equal(t, ir.Interval{Lo: 1, Hi: 2090}, rest.Axis(ir.AxisM))

	// Other axes are copied untouched
	for _, a := range []ir.Axis{ir.AxisX, ir.AxisA, ir.AxisS} {
		assert.Equal(t, ir.Interval{Lo: 1, Hi: 4000}, routed.Region.Axis(a))
		assert.Equal(t, ir.Interval{Lo: 1, Hi: 4000}, rest.Axis(a))
	}
}

// TestEvaluateRuleRange_EmptySides tests that empty sides are reported absent.
func TestEvaluateRuleRange_EmptySides(t *testing.T) {
	region := testutil.AxisOnly(ir.AxisA, 10, 20)

	// Nothing below 5
	_, hasRouted, rest, hasRest := EvaluateRuleRange(testutil.Cond(ir.AxisA, ir.Less, 5, "R"), region)
	assert.False(t, hasRouted)
	require.True(t, hasRest)
	assert.Equal(t, region, rest)

	// Everything below 100
	routed, hasRouted, _, hasRest := EvaluateRuleRange(testutil.Cond(ir.AxisA, ir.Less, 100, "R"), region)
	require.True(t, hasRouted)
	assert.False(t, hasRest)
	assert.Equal(t, region, routed.Region)
}

// TestEvaluateRuleRange_Unconditional tests that an unconditional rule routes everything.
func TestEvaluateRuleRange_Unconditional(t *testing.T) {
	region := ir.MaxRegion()
	routed, hasRouted, _, hasRest := EvaluateRuleRange(testutil.Always("qqz"), region)
	require.True(t, hasRouted)
	assert.False(t, hasRest)
	assert.Equal(t, Routed{Destination: "qqz", Region: region}, routed)
}

// TestEvaluateWorkflow_FirstMatchWins tests that later rules are never consulted.
func TestEvaluateWorkflow_FirstMatchWins(t *testing.T) {
	wf := testutil.Workflow("px",
		testutil.Cond(ir.AxisA, ir.Less, 2006, "qkq"),
		testutil.Cond(ir.AxisM, ir.Greater, 2090, "A"),
		testutil.Always("rfg"),
	)

	tests := []struct {
		name string
		part ir.Part
		want string
	}{
		{"first rule", ir.NewPart(1, 3000, 1, 1), "qkq"},
		{"second rule", ir.NewPart(1, 3000, 2006, 1), "A"},
		{"fallback", ir.NewPart(1, 2090, 2006, 1), "rfg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest, ok := EvaluateWorkflow(wf, tt.part)
			require.True(t, ok)
			assert.Equal(t, tt.want, dest)
		})
	}
}

// TestEvaluateWorkflow_NoFallback tests a workflow that lets a part fall through.
func TestEvaluateWorkflow_NoFallback(t *testing.T) {
	wf := testutil.Workflow("px", testutil.Cond(ir.AxisX, ir.Less, 10, "A"))
	_, ok := EvaluateWorkflow(wf, ir.NewPart(20, 1, 1, 1))
	assert.False(t, ok)
}

// TestEvaluateWorkflowRange_Order tests that outputs follow rule order.
func TestEvaluateWorkflowRange_Order(t *testing.T) {
	wf := testutil.Workflow("px",
		testutil.Cond(ir.AxisA, ir.Less, 2006, "qkq"),
		testutil.Cond(ir.AxisM, ir.Greater, 2090, "A"),
		testutil.Always("rfg"),
	)

	out := EvaluateWorkflowRange(wf, ir.MaxRegion())
	require.Len(t, out, 3)

	assert.Equal(t, "qkq", out[0].Destination)
	assert.Equal(t, ir.Interval{Lo: 1, Hi: 2005}, out[0].Region.Axis(ir.AxisA))

	assert.Equal(t, "A", out[1].Destination)
	assert.Equal(t, ir.Interval{Lo: 2006, Hi: 4000}, out[1].Region.Axis(ir.AxisA))
	assert.Equal(t, ir.Interval{Lo: 2091, Hi: 4000}, out[1].Region.Axis(ir.AxisM))

	assert.Equal(t, "rfg", out[2].Destination)
	assert.Equal(t, ir.Interval{Lo: 2006, Hi: 4000}, out[2].Region.Axis(ir.AxisA))
	assert.Equal(t, ir.Interval{Lo: 1, Hi: 2090}, out[2].Region.Axis(ir.AxisM))
}

// TestEvaluateWorkflowRange_StopsWhenExhausted tests that rules after an
// exhausting rule produce nothing.
func TestEvaluateWorkflowRange_StopsWhenExhausted(t *testing.T) {
	wf := testutil.Workflow("in",
		testutil.Cond(ir.AxisA, ir.Less, 100, "R"),
		testutil.Cond(ir.AxisA, ir.Less, 50, "qqz"),
		testutil.Always("A"),
	)

	out := EvaluateWorkflowRange(wf, testutil.AxisOnly(ir.AxisA, 1, 20))
	require.Len(t, out, 1)
	assert.Equal(t, "R", out[0].Destination)
}

// TestEvaluateWorkflowRange_Conservation tests that every workflow of the
// sample graph routes exactly the volume it receives.
func TestEvaluateWorkflowRange_Conservation(t *testing.T) {
	g := sampleDocument(t).Graph

	seeds := []ir.Region{
		ir.MaxRegion(),
		ir.Universe(1, 1),
		testutil.AxisOnly(ir.AxisS, 500, 3500),
		ir.MaxRegion().With(ir.AxisX, ir.Interval{Lo: 1416, Hi: 2662}),
	}

	for _, name := range g.Labels() {
		wf := g.Workflows[name]
		for _, seed := range seeds {
			out := EvaluateWorkflowRange(wf, seed)
			assert.Equal(t, 0, out.Volume().Cmp(seed.Volume()),
				"workflow %s over %s routed %s of %s", name, seed, out.Volume(), seed.Volume())
		}
	}
}

// TestRouting_ByDestination tests grouping while keeping rule order.
func TestRouting_ByDestination(t *testing.T) {
	wf := testutil.Workflow("in",
		testutil.Cond(ir.AxisA, ir.Less, 10, "R"),
		testutil.Cond(ir.AxisA, ir.Greater, 15, "R"),
		testutil.Always("A"),
	)

	grouped := EvaluateWorkflowRange(wf, testutil.AxisOnly(ir.AxisA, 1, 20)).ByDestination()
	require.Len(t, grouped["R"], 2)
	require.Len(t, grouped["A"], 1)
	assert.Equal(t, ir.Interval{Lo: 1, Hi: 9}, grouped["R"][0].Axis(ir.AxisA))
	assert.Equal(t, ir.Interval{Lo: 16, Hi: 20}, grouped["R"][1].Axis(ir.AxisA))
	assert.Equal(t, ir.Interval{Lo: 10, Hi: 15}, grouped["A"][0].Axis(ir.AxisA))
	assert.Equal(t, big.NewInt(6), grouped["A"][0].Volume())
}
