package harness

import (
	"fmt"
	"math/big"

	"github.com/roach88/sortflow/internal/engine"
	"github.com/roach88/sortflow/internal/ir"
)

// CheckConservation verifies that the partition's regions account for every
// point of the seed exactly once by volume.
// Returns an error message or empty string if the property holds.
func CheckConservation(p *engine.Partition) string {
	if p.Conserves() {
		return ""
	}
	return fmt.Sprintf("conservation: accepted %s + rejected %s != universe %s",
		p.AcceptedVolume(), p.RejectedVolume(), p.Seed.Volume())
}

// CheckConsistency verifies that each part inside the seed falls in a
// region carrying the same verdict its point classification produced.
// Parts outside the seed are skipped.
func CheckConsistency(p *engine.Partition, parts []ir.Part, verdicts []ir.Verdict) []string {
	var errs []string
	for i, part := range parts {
		if i >= len(verdicts) {
			break
		}
		if !p.Seed.Contains(part) {
			continue
		}
		got, ok := p.VerdictOf(part)
		if !ok {
			errs = append(errs, fmt.Sprintf("consistency: part %s is not covered by any region", part))
			continue
		}
		if got != verdicts[i] {
			errs = append(errs, fmt.Sprintf("consistency: part %s classified %s but lies in a %s region",
				part, verdicts[i], got))
		}
	}
	return errs
}

// EvaluateExpectations compares a result against the scenario's Expect
// block. Returns a list of error messages for failed checks; empty if all
// pass.
func EvaluateExpectations(result *Result, expect Expect) []string {
	var errs []string

	if msg := checkVolume("accepted_volume", expect.AcceptedVolume, result.AcceptedVolume); msg != "" {
		errs = append(errs, msg)
	}
	if msg := checkVolume("rejected_volume", expect.RejectedVolume, result.RejectedVolume); msg != "" {
		errs = append(errs, msg)
	}

	if expect.Verdicts != nil {
		errs = append(errs, checkVerdicts(expect.Verdicts, result.Verdicts)...)
	}

	if expect.RatingSum != nil && *expect.RatingSum != result.RatingSum {
		errs = append(errs, fmt.Sprintf("rating_sum: expected %d, got %d", *expect.RatingSum, result.RatingSum))
	}

	return errs
}

// checkVolume compares two decimal volumes numerically.
func checkVolume(field, want, got string) string {
	if want == "" {
		return ""
	}
	w, ok := new(big.Int).SetString(want, 10)
	if !ok {
		return fmt.Sprintf("%s: expected value %q is not an integer", field, want)
	}
	g, ok := new(big.Int).SetString(got, 10)
	if !ok || w.Cmp(g) != 0 {
		return fmt.Sprintf("%s: expected %s, got %s", field, want, got)
	}
	return ""
}

// checkVerdicts compares verdict lists position by position.
func checkVerdicts(want, got []ir.Verdict) []string {
	if len(want) != len(got) {
		return []string{fmt.Sprintf("verdicts: expected %d, got %d", len(want), len(got))}
	}
	var errs []string
	for i := range want {
		if want[i] != got[i] {
			errs = append(errs, fmt.Sprintf("verdicts[%d]: expected %s, got %s", i, want[i], got[i]))
		}
	}
	return errs
}
