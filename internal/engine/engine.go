package engine

import (
	"fmt"
	"log/slog"
	"maps"
	"math/big"

	"github.com/roach88/sortflow/internal/compiler"
	"github.com/roach88/sortflow/internal/ir"
)

// DefaultMaxSteps is the default maximum number of work items one
// Propagate call may process.
const DefaultMaxSteps = 1_000_000

// Engine routes parts and regions through a validated workflow graph.
//
// An Engine is immutable after New and safe to reuse; each Classify or
// Propagate call owns its own worklist, clock and guards.
type Engine struct {
	graph           ir.Graph
	entry           string
	maxSteps        int
	checkInvariants bool
}

// EngineOption allows configuration of engine parameters.
type EngineOption func(*Engine)

// WithEntry overrides the graph's entry workflow.
func WithEntry(label string) EngineOption {
	return func(e *Engine) {
		e.entry = label
	}
}

// WithMaxSteps sets the maximum number of work items per Propagate call.
//
// Default: 1,000,000 steps (DefaultMaxSteps)
// Use WithMaxSteps(10) for testing quota enforcement.
func WithMaxSteps(maxSteps int) EngineOption {
	return func(e *Engine) {
		e.maxSteps = maxSteps
	}
}

// WithInvariantChecks makes Propagate verify, after every step, that
// collected plus pending volume still equals the seed volume.
// The check is linear in the worklist length, so it is off by default.
func WithInvariantChecks() EngineOption {
	return func(e *Engine) {
		e.checkInvariants = true
	}
}

// New validates g and returns an Engine over a private copy of it.
//
// Every structural problem (unknown attribute, missing destination, missing
// fallback rule, missing entry) is rejected here so evaluation never has to
// handle malformed input.
func New(g ir.Graph, opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		entry:    g.EntryLabel(),
		maxSteps: DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.graph = ir.Graph{
		Entry:     e.entry,
		Workflows: maps.Clone(g.Workflows),
	}
	if e.graph.Workflows == nil {
		e.graph.Workflows = map[string]ir.Workflow{}
	}

	if errs := compiler.Validate(e.graph); len(errs) > 0 {
		return nil, &RuntimeError{
			Code:    ErrCodeInvalidGraph,
			Message: errs[0].Error(),
			Details: map[string]string{
				"errors": fmt.Sprintf("%d", len(errs)),
			},
		}
	}

	return e, nil
}

// Graph returns the engine's graph.
func (e *Engine) Graph() ir.Graph {
	return e.graph
}

// Entry returns the entry workflow label.
func (e *Engine) Entry() string {
	return e.entry
}

// Route walks p from the entry workflow to a terminal.
func (e *Engine) Route(p ir.Part) (Route, error) {
	return e.route(p, NewCycleDetector())
}

// route walks p using detector, which must be empty.
func (e *Engine) route(p ir.Part, detector *CycleDetector) (Route, error) {
	route := Route{Part: p}

	label := e.entry
	for !ir.IsTerminal(label) {
		if detector.WouldCycle(label) {
			return route, NewCycleError(label, route.Path)
		}
		detector.Record(label)

		wf, ok := e.graph.Lookup(label)
		if !ok {
			return route, NewMissingWorkflowError(label)
		}
		route.Path = append(route.Path, label)

		next, ok := EvaluateWorkflow(wf, p)
		if !ok {
			return route, &RuntimeError{
				Code:    ErrCodeNoMatch,
				Message: fmt.Sprintf("no rule matched part %s", p),
				Label:   label,
			}
		}
		label = next
	}

	route.Terminal = label
	route.Verdict, _ = ir.VerdictFor(label)
	slog.Debug("part routed",
		"part", p.String(),
		"workflows", detector.Size(),
		"verdict", string(route.Verdict))
	return route, nil
}

// Classify returns the verdict for a single part.
func (e *Engine) Classify(p ir.Part) (ir.Verdict, error) {
	route, err := e.Route(p)
	if err != nil {
		return "", err
	}
	return route.Verdict, nil
}

// SortParts classifies every part, keeping input order within each verdict.
func (e *Engine) SortParts(parts []ir.Part) (*Sorted, error) {
	sorted := &Sorted{Verdicts: make([]ir.Verdict, 0, len(parts))}
	detector := NewCycleDetector()
	for i, p := range parts {
		detector.Clear()
		route, err := e.route(p, detector)
		if err != nil {
			return nil, fmt.Errorf("part %d %s: %w", i+1, p, err)
		}
		verdict := route.Verdict
		sorted.Verdicts = append(sorted.Verdicts, verdict)
		if verdict == ir.Accepted {
			sorted.Accepted = append(sorted.Accepted, p)
		} else {
			sorted.Rejected = append(sorted.Rejected, p)
		}
	}
	slog.Debug("parts sorted",
		"accepted", len(sorted.Accepted),
		"rejected", len(sorted.Rejected))
	return sorted, nil
}

// Propagate routes every point of seed through the graph and returns the
// resulting partition into accepted and rejected regions.
func (e *Engine) Propagate(seed ir.Region) (*Partition, error) {
	if !seed.Valid() {
		return nil, &RuntimeError{
			Code:    ErrCodeInvalidRegion,
			Message: fmt.Sprintf("seed region %s has an empty axis", seed),
		}
	}

	part := &Partition{Seed: seed}
	queue := newWorkQueue()
	clock := NewClock()
	quota := NewQuotaEnforcer(e.maxSteps)
	seedVolume := seed.Volume()

	queue.Enqueue(WorkItem{Label: e.entry, Region: seed})

	for {
		item, ok := queue.TryDequeue()
		if !ok {
			break
		}

		if err := quota.Check(item.Label); err != nil {
			slog.Error("max steps quota exceeded",
				"workflow", item.Label,
				"steps", quota.Current(),
				"limit", quota.MaxSteps())
			return part, err
		}

		wf, ok := e.graph.Lookup(item.Label)
		if !ok {
			return part, NewMissingWorkflowError(item.Label)
		}

		outputs := EvaluateWorkflowRange(wf, item.Region)
		for _, rt := range outputs {
			if ir.IsTerminal(rt.Destination) {
				part.collect(rt)
				continue
			}
			queue.Enqueue(WorkItem{Label: rt.Destination, Region: rt.Region})
		}

		step := Step{Seq: clock.Next(), Label: item.Label, Input: item.Region, Outputs: outputs}
		part.Steps = append(part.Steps, step)

		slog.Debug("workflow drained",
			"seq", step.Seq,
			"workflow", item.Label,
			"input", item.Region.String(),
			"outputs", len(outputs),
			"pending", queue.Len())

		if e.checkInvariants {
			total := new(big.Int).Add(part.Volume(), queue.Volume())
			if total.Cmp(seedVolume) != 0 {
				return part, &RuntimeError{
					Code:    ErrCodeConservation,
					Message: fmt.Sprintf("volume %s after step %d, seeded %s", total, step.Seq, seedVolume),
					Label:   item.Label,
				}
			}
		}
	}

	slog.Info("propagation complete",
		"steps", len(part.Steps),
		"last_seq", clock.Current(),
		"accepted_regions", len(part.Accepted),
		"rejected_regions", len(part.Rejected),
		"accepted_volume", part.AcceptedVolume().String())

	return part, nil
}

// AcceptedVolume returns how many points of universe are accepted.
func (e *Engine) AcceptedVolume(universe ir.Region) (*big.Int, error) {
	part, err := e.Propagate(universe)
	if err != nil {
		return nil, err
	}
	return part.AcceptedVolume(), nil
}

// TotalAcceptedVolume returns how many points of [1,4000]^4 are accepted.
func (e *Engine) TotalAcceptedVolume() (*big.Int, error) {
	return e.AcceptedVolume(ir.MaxRegion())
}
