package ir

import (
	"slices"
	"strings"
)

// Terminal labels. They are reserved and never used as workflow names.
const (
	AcceptLabel = "A"
	RejectLabel = "R"
)

// DefaultEntry is the workflow every part and region starts in.
const DefaultEntry = "in"

// Verdict is the outcome of routing a part through the graph.
type Verdict string

const (
	Accepted Verdict = "accept"
	Rejected Verdict = "reject"
)

// IsTerminal reports whether label is the accept or reject terminal.
func IsTerminal(label string) bool {
	return label == AcceptLabel || label == RejectLabel
}

// VerdictFor maps a terminal label to its Verdict.
func VerdictFor(label string) (Verdict, bool) {
	switch label {
	case AcceptLabel:
		return Accepted, true
	case RejectLabel:
		return Rejected, true
	default:
		return "", false
	}
}

// Workflow is a named, ordered list of rules. A well-formed workflow ends in
// an Unconditional rule.
type Workflow struct {
	Name  string
	Rules []Rule
}

// String renders the workflow in text form, e.g. "in{s<1351:px,qqz}".
func (w Workflow) String() string {
	parts := make([]string, len(w.Rules))
	for i, r := range w.Rules {
		parts[i] = r.String()
	}
	return w.Name + "{" + strings.Join(parts, ",") + "}"
}

// Graph is the full set of workflows plus the entry label.
type Graph struct {
	Entry     string
	Workflows map[string]Workflow
}

// NewGraph indexes workflows by name with the default entry.
// Later workflows with a duplicate name replace earlier ones.
func NewGraph(workflows ...Workflow) Graph {
	g := Graph{Entry: DefaultEntry, Workflows: make(map[string]Workflow, len(workflows))}
	for _, w := range workflows {
		g.Workflows[w.Name] = w
	}
	return g
}

// EntryLabel returns the entry, falling back to DefaultEntry.
func (g Graph) EntryLabel() string {
	if g.Entry == "" {
		return DefaultEntry
	}
	return g.Entry
}

// Lookup returns the workflow registered under label.
func (g Graph) Lookup(label string) (Workflow, bool) {
	w, ok := g.Workflows[label]
	return w, ok
}

// Labels returns workflow names in sorted order.
func (g Graph) Labels() []string {
	labels := make([]string, 0, len(g.Workflows))
	for name := range g.Workflows {
		labels = append(labels, name)
	}
	slices.Sort(labels)
	return labels
}

// Canonical returns the graph as a map suitable for MarshalCanonical.
func (g Graph) Canonical() map[string]any {
	wfs := make(map[string]any, len(g.Workflows))
	for name, w := range g.Workflows {
		rules := make([]any, len(w.Rules))
		for i, r := range w.Rules {
			rules[i] = r.String()
		}
		wfs[name] = rules
	}
	return map[string]any{
		"entry":     g.EntryLabel(),
		"workflows": wfs,
	}
}
