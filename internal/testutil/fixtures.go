// Package testutil holds shared fixtures for sortflow tests.
package testutil

import "github.com/roach88/sortflow/internal/ir"

// SampleDocument is the reference workflow/part document in text form.
const SampleDocument = `px{a<2006:qkq,m>2090:A,rfg}
pv{a>1716:R,A}
lnx{m>1548:A,A}
rfg{s<537:gd,x>2440:R,A}
qs{s>3448:A,lnx}
qkq{x<1416:A,crn}
crn{x>2662:A,R}
in{s<1351:px,qqz}
qqz{s>2770:qs,m<1801:hdj,R}
gd{a>3333:R,R}
hdj{m>838:A,pv}

{x=787,m=2655,a=1222,s=2876}
{x=1679,m=44,a=2067,s=496}
{x=2036,m=264,a=79,s=2244}
{x=2461,m=1339,a=466,s=291}
{x=2127,m=1623,a=2188,s=1013}
`

// Known answers for SampleDocument.
const (
	SampleAcceptedVolume = "167409079868000"
	SampleRatingSum      = int64(19114)
)

// SampleVerdicts are the expected verdicts for SampleDocument's parts, in order.
var SampleVerdicts = []ir.Verdict{ir.Accepted, ir.Rejected, ir.Accepted, ir.Rejected, ir.Accepted}

// SampleCUE declares a two-level graph in CUE: "in" sends low a to "check",
// which rejects high m.
const SampleCUE = `
entry: "in"
workflow: {
	"in": [{attr: "a", op: "<", value: 10, to: "check"}, {to: "A"}]
	check: [{attr: "m", op: ">", value: 2000, to: "R"}, {to: "A"}]
}
part: [
	{x: 1, m: 1, a: 1, s: 1},
	{x: 1, m: 3000, a: 1, s: 1},
]
`

// Cond builds a conditional rule.
func Cond(axis ir.Axis, op ir.Comparator, threshold int64, dest string) ir.Conditional {
	return ir.Conditional{Axis: axis, Op: op, Threshold: threshold, Destination: dest}
}

// Always builds an unconditional rule.
func Always(dest string) ir.Unconditional {
	return ir.Unconditional{Destination: dest}
}

// Workflow builds a workflow from rules.
func Workflow(name string, rules ...ir.Rule) ir.Workflow {
	return ir.Workflow{Name: name, Rules: rules}
}

// AxisOnly returns a region with every axis collapsed to [1,1] except axis,
// which spans [lo, hi].
func AxisOnly(axis ir.Axis, lo, hi int64) ir.Region {
	return ir.Universe(1, 1).With(axis, ir.Interval{Lo: lo, Hi: hi})
}
