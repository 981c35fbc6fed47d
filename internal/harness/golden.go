package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/sortflow/internal/ir"
)

// Snapshot returns the canonical JSON recorded in golden files: the
// accepted and rejected regions in collection order, their volumes and the
// part verdicts.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	snapshot := map[string]any{
		"scenario_name":   scenarioName,
		"accepted_volume": result.AcceptedVolume,
		"rejected_volume": result.RejectedVolume,
	}

	verdicts := make([]string, len(result.Verdicts))
	for i, v := range result.Verdicts {
		verdicts[i] = string(v)
	}
	snapshot["verdicts"] = verdicts

	accepted, rejected := []any{}, []any{}
	if result.Partition != nil {
		for _, r := range result.Partition.Accepted {
			accepted = append(accepted, r.Canonical())
		}
		for _, r := range result.Partition.Rejected {
			rejected = append(rejected, r.Canonical())
		}
	}
	snapshot["accepted"] = accepted
	snapshot["rejected"] = rejected

	return ir.MarshalCanonical(snapshot)
}

// RunWithGolden executes a scenario and compares its partition against a
// golden file stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
