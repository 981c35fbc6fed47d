package harness

import (
	"fmt"

	"github.com/roach88/sortflow/internal/compiler"
	"github.com/roach88/sortflow/internal/engine"
	"github.com/roach88/sortflow/internal/ir"
)

// Run executes a test scenario and returns the result.
//
// Execution flow:
//  1. Load the document (inline workflows or source file)
//  2. Build the engine, which validates the graph
//  3. Classify every part point by point
//  4. Propagate the universe
//  5. Check conservation, point/region consistency and the Expect block
//
// A returned error means the scenario could not be executed at all; failed
// checks are reported through Result.Pass and Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	doc, err := loadDocument(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflows: %w", err)
	}

	opts := []engine.EngineOption{engine.WithInvariantChecks()}
	if scenario.Entry != "" {
		opts = append(opts, engine.WithEntry(scenario.Entry))
	}
	if scenario.MaxSteps > 0 {
		opts = append(opts, engine.WithMaxSteps(scenario.MaxSteps))
	}

	eng, err := engine.New(doc.Graph, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}

	extra, err := scenario.PartList()
	if err != nil {
		return nil, err
	}
	parts := append(append([]ir.Part{}, doc.Parts...), extra...)

	universe, err := scenario.Region()
	if err != nil {
		return nil, err
	}

	result := NewResult()

	sorted, err := eng.SortParts(parts)
	if err != nil {
		return nil, fmt.Errorf("failed to classify parts: %w", err)
	}
	result.Verdicts = sorted.Verdicts
	result.RatingSum = sorted.RatingSum()

	partition, err := eng.Propagate(universe)
	if err != nil {
		return nil, fmt.Errorf("failed to propagate %s: %w", universe, err)
	}
	result.setPartition(partition)

	if msg := CheckConservation(partition); msg != "" {
		result.AddError(msg)
	}
	for _, msg := range CheckConsistency(partition, parts, result.Verdicts) {
		result.AddError(msg)
	}
	for _, msg := range EvaluateExpectations(result, scenario.Expect) {
		result.AddError(msg)
	}

	return result, nil
}

// loadDocument returns the scenario's graph and embedded parts.
func loadDocument(s *Scenario) (*compiler.Document, error) {
	if s.Source != "" {
		return compiler.LoadPath(s.Source)
	}
	return compiler.ParseDocumentString(s.Workflows)
}
