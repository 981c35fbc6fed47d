package engine

import (
	"math/big"

	"github.com/roach88/sortflow/internal/ir"
)

// Routed is one region tagged with the label it was routed to.
type Routed struct {
	Destination string
	Region      ir.Region
}

// Routing is the ordered output of evaluating one workflow over a region.
type Routing []Routed

// ByDestination groups the routed regions by destination label, keeping
// rule order inside each group.
func (r Routing) ByDestination() map[string][]ir.Region {
	out := make(map[string][]ir.Region)
	for _, rt := range r {
		out[rt.Destination] = append(out[rt.Destination], rt.Region)
	}
	return out
}

// Volume returns the total volume of all routed regions.
func (r Routing) Volume() *big.Int {
	total := new(big.Int)
	for _, rt := range r {
		total.Add(total, rt.Region.Volume())
	}
	return total
}

// EvaluateRule applies one rule to a part. It returns the rule's
// destination and true when the rule fires, or "" and false to signal that
// the next rule should be tried.
func EvaluateRule(rule ir.Rule, p ir.Part) (string, bool) {
	switch r := rule.(type) {
	case ir.Conditional:
		if r.Match(p) {
			return r.Destination, true
		}
		return "", false
	case ir.Unconditional:
		return r.Destination, true
	default:
		return "", false
	}
}

// EvaluateRuleRange applies one rule to a region.
//
// routed is the part of region the rule sends to its destination (absent
// when hasRouted is false). rest is what flows on to the next rule (absent
// when hasRest is false). An unconditional rule routes everything and
// leaves no rest.
func EvaluateRuleRange(rule ir.Rule, region ir.Region) (routed Routed, hasRouted bool, rest ir.Region, hasRest bool) {
	switch r := rule.(type) {
	case ir.Conditional:
		matched, remainder, okM, okR := region.Split(r)
		if okM {
			routed = Routed{Destination: r.Destination, Region: matched}
		}
		return routed, okM, remainder, okR
	case ir.Unconditional:
		return Routed{Destination: r.Destination, Region: region}, true, ir.Region{}, false
	default:
		return Routed{}, false, region, true
	}
}

// EvaluateWorkflow returns the destination of the first rule that fires
// for p. Later rules are never consulted. The bool is false only for a
// workflow without a final unconditional rule that nothing matched.
func EvaluateWorkflow(wf ir.Workflow, p ir.Part) (string, bool) {
	for _, rule := range wf.Rules {
		if dest, ok := EvaluateRule(rule, p); ok {
			return dest, true
		}
	}
	return "", false
}

// EvaluateWorkflowRange folds region through the workflow's rules.
//
// Each rule claims the part of the remaining region it matches; the rest
// is handed to the next rule. The fold stops as soon as nothing remains.
// For a well-formed workflow the routed volumes sum exactly to the input
// volume.
func EvaluateWorkflowRange(wf ir.Workflow, region ir.Region) Routing {
	var out Routing

	remaining, ok := region, true
	for _, rule := range wf.Rules {
		if !ok {
			break
		}
		routed, hasRouted, rest, hasRest := EvaluateRuleRange(rule, remaining)
		if hasRouted {
			out = append(out, routed)
		}
		remaining, ok = rest, hasRest
	}

	return out
}
