package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sortflow/internal/ir"
)

// Scenario defines a conformance test scenario: a workflow graph, the
// universe to propagate through it, optional parts to classify, and the
// expected outcome.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Workflows holds the graph inline in text form. Part lines after a
	// blank line are classified along with Parts.
	Workflows string `yaml:"workflows,omitempty"`

	// Source is a path to a text or .cue document, relative to the
	// scenario file. Exactly one of Workflows and Source must be set.
	Source string `yaml:"source,omitempty"`

	// Entry overrides the graph's entry workflow.
	Entry string `yaml:"entry,omitempty"`

	// Bound sets the upper bound of every universe axis. Defaults to 4000.
	Bound int64 `yaml:"bound,omitempty"`

	// Universe overrides individual axes, e.g. {a: [1, 20], x: [1, 1]}.
	Universe map[string][]int64 `yaml:"universe,omitempty"`

	// Parts lists extra parts to classify, e.g. {x: 1, m: 2, a: 3, s: 4}.
	Parts []map[string]int64 `yaml:"parts,omitempty"`

	// MaxSteps bounds propagation. Zero means the engine default.
	MaxSteps int `yaml:"max_steps,omitempty"`

	// Expect lists the outcomes to check. Unset fields are not checked.
	Expect Expect `yaml:"expect"`
}

// Expect specifies expected scenario outcomes.
// Volumes are decimal strings so they are not limited to 64 bits.
type Expect struct {
	AcceptedVolume string       `yaml:"accepted_volume,omitempty"`
	RejectedVolume string       `yaml:"rejected_volume,omitempty"`
	Verdicts       []ir.Verdict `yaml:"verdicts,omitempty"`
	RatingSum      *int64       `yaml:"rating_sum,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file, resolving Source
// relative to the file's directory.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving Source relative to basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Source != "" && !filepath.IsAbs(scenario.Source) && basePath != "" {
		scenario.Source = filepath.Join(basePath, scenario.Source)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Workflows == "" && s.Source == "":
		return fmt.Errorf("one of workflows or source is required")
	case s.Workflows != "" && s.Source != "":
		return fmt.Errorf("workflows and source are mutually exclusive")
	}

	if s.Source != "" {
		if _, err := os.Stat(s.Source); os.IsNotExist(err) {
			return fmt.Errorf("source file not found: %s", s.Source)
		}
	}

	if s.Bound < 0 {
		return fmt.Errorf("bound must be positive")
	}
	if s.MaxSteps < 0 {
		return fmt.Errorf("max_steps must be non-negative")
	}

	if _, err := s.Region(); err != nil {
		return err
	}
	if _, err := s.PartList(); err != nil {
		return err
	}

	for i, v := range s.Expect.Verdicts {
		if v != ir.Accepted && v != ir.Rejected {
			return fmt.Errorf("expect.verdicts[%d]: unknown verdict %q", i, v)
		}
	}

	return nil
}

// Region returns the universe the scenario propagates.
func (s *Scenario) Region() (ir.Region, error) {
	bound := s.Bound
	if bound == 0 {
		bound = ir.DefaultHi
	}
	region := ir.Universe(ir.DefaultLo, bound)

	for name, bounds := range s.Universe {
		axis, err := ir.ParseAxis(name)
		if err != nil {
			return ir.Region{}, fmt.Errorf("universe: %w", err)
		}
		if len(bounds) != 2 {
			return ir.Region{}, fmt.Errorf("universe.%s: want [lo, hi], got %d values", name, len(bounds))
		}
		iv, err := ir.NewInterval(bounds[0], bounds[1])
		if err != nil {
			return ir.Region{}, fmt.Errorf("universe.%s: %w", name, err)
		}
		region = region.With(axis, iv)
	}

	return region, nil
}

// PartList converts the scenario's parts to IR.
func (s *Scenario) PartList() ([]ir.Part, error) {
	parts := make([]ir.Part, 0, len(s.Parts))
	for i, raw := range s.Parts {
		if len(raw) != ir.NumAxes {
			return nil, fmt.Errorf("parts[%d]: want %d attributes, got %d", i, ir.NumAxes, len(raw))
		}
		var p ir.Part
		for name, v := range raw {
			axis, err := ir.ParseAxis(name)
			if err != nil {
				return nil, fmt.Errorf("parts[%d]: %w", i, err)
			}
			p[axis] = v
		}
		parts = append(parts, p)
	}
	return parts, nil
}
