package compiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortflow/internal/ir"
	"github.com/roach88/sortflow/internal/testutil"
)

func TestParseRule_Conditional(t *testing.T) {
	rule, err := ParseRule("x>10:one")
	require.NoError(t, err)

	cond, ok := rule.(ir.Conditional)
	require.True(t, ok, "expected conditional, got %T", rule)
	assert.Equal(t, ir.AxisX, cond.Axis)
	assert.Equal(t, ir.Greater, cond.Op)
	assert.Equal(t, int64(10), cond.Threshold)
	assert.Equal(t, "one", cond.Destination)
}

func TestParseRule_Unconditional(t *testing.T) {
	rule, err := ParseRule("A")
	require.NoError(t, err)
	assert.Equal(t, ir.Unconditional{Destination: "A"}, rule)
}

func TestParseRule_UnknownAttribute(t *testing.T) {
	_, err := ParseRule("q<10:A")
	require.Error(t, err)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "rule.attribute", ce.Field)
	assert.Contains(t, err.Error(), "unknown attribute")
}

func TestParseRule_Malformed(t *testing.T) {
	for _, s := range []string{"", "a<:A", "a<10", "a=10:A", "a<10:"} {
		_, err := ParseRule(s)
		assert.Error(t, err, "rule %q should not parse", s)
	}
}

func TestParseWorkflow(t *testing.T) {
	wf, err := ParseWorkflow("px{a<2006:qkq,m>2090:A,rfg}")
	require.NoError(t, err)

	assert.Equal(t, "px", wf.Name)
	require.Len(t, wf.Rules, 3)
	assert.Equal(t, testutil.Cond(ir.AxisA, ir.Less, 2006, "qkq"), wf.Rules[0])
	assert.Equal(t, testutil.Cond(ir.AxisM, ir.Greater, 2090, "A"), wf.Rules[1])
	assert.Equal(t, testutil.Always("rfg"), wf.Rules[2])

	// Round-trips through String.
	assert.Equal(t, "px{a<2006:qkq,m>2090:A,rfg}", wf.String())
}

func TestParseWorkflow_Malformed(t *testing.T) {
	_, err := ParseWorkflow("px a<2006:qkq")
	assert.Error(t, err)

	_, err = ParseWorkflow("px{a<2006:qkq,,rfg}")
	assert.Error(t, err)
}

func TestParsePart(t *testing.T) {
	p, err := ParsePart("{x=787,m=2655,a=1222,s=2876}")
	require.NoError(t, err)
	assert.Equal(t, ir.NewPart(787, 2655, 1222, 2876), p)

	// Attribute order does not matter.
	q, err := ParsePart("{s=4,a=3,m=2,x=1}")
	require.NoError(t, err)
	assert.Equal(t, ir.NewPart(1, 2, 3, 4), q)
}

func TestParsePart_Errors(t *testing.T) {
	tests := map[string]string{
		"missing braces":    "x=1,m=2,a=3,s=4",
		"missing attribute": "{x=1,m=2,a=3}",
		"duplicate":         "{x=1,x=2,m=2,a=3,s=4}",
		"unknown attribute": "{x=1,m=2,a=3,s=4,q=5}",
		"not a number":      "{x=one,m=2,a=3,s=4}",
		"no equals":         "{x1,m=2,a=3,s=4}",
	}
	for name, s := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePart(s)
			assert.Error(t, err)
		})
	}
}

func TestParseDocument_Sample(t *testing.T) {
	doc, err := ParseDocumentString(testutil.SampleDocument)
	require.NoError(t, err)

	assert.Len(t, doc.Graph.Workflows, 11)
	assert.Equal(t, ir.DefaultEntry, doc.Graph.EntryLabel())
	require.Len(t, doc.Parts, 5)
	assert.Equal(t, ir.NewPart(787, 2655, 1222, 2876), doc.Parts[0])

	in, ok := doc.Graph.Lookup("in")
	require.True(t, ok)
	assert.Equal(t, "in{s<1351:px,qqz}", in.String())

	assert.Empty(t, Validate(doc.Graph))
}

func TestParseDocument_WorkflowsOnly(t *testing.T) {
	doc, err := ParseDocumentString("in{a<10:R,A}\n")
	require.NoError(t, err)
	assert.Len(t, doc.Graph.Workflows, 1)
	assert.Empty(t, doc.Parts)
}

func TestParseDocument_ErrorCarriesLine(t *testing.T) {
	src := "in{a<10:R,A}\nbad{q<1:R,A}\n"
	_, err := ParseDocument(strings.NewReader(src))
	require.Error(t, err)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 2, ce.Line)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseDocument_DuplicateWorkflow(t *testing.T) {
	_, err := ParseDocumentString("in{A}\nin{R}\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate workflow")
}

func TestParseDocument_Empty(t *testing.T) {
	_, err := ParseDocumentString("\n\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no workflows")
}

func TestParseDocument_BadPartLine(t *testing.T) {
	_, err := ParseDocumentString("in{A}\n\n{x=1}\n")
	require.Error(t, err)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 3, ce.Line)
}
