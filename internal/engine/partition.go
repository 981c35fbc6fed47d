package engine

import (
	"math/big"

	"github.com/roach88/sortflow/internal/ir"
)

// Step records one drained work item: the workflow that evaluated it, the
// input region and where the pieces went.
type Step struct {
	Seq     int64
	Label   string
	Input   ir.Region
	Outputs Routing
}

// Partition is the result of propagating a seed region through the graph.
// Accepted and Rejected hold the terminal regions in the order they were
// collected.
type Partition struct {
	Seed     ir.Region
	Accepted []ir.Region
	Rejected []ir.Region
	Steps    []Step
}

// collect files a terminal-bound region under its verdict.
func (p *Partition) collect(rt Routed) {
	switch rt.Destination {
	case ir.AcceptLabel:
		p.Accepted = append(p.Accepted, rt.Region)
	case ir.RejectLabel:
		p.Rejected = append(p.Rejected, rt.Region)
	}
}

// AcceptedVolume returns the number of points routed to accept.
func (p *Partition) AcceptedVolume() *big.Int {
	return ir.TotalVolume(p.Accepted)
}

// RejectedVolume returns the number of points routed to reject.
func (p *Partition) RejectedVolume() *big.Int {
	return ir.TotalVolume(p.Rejected)
}

// Volume returns the total collected volume.
func (p *Partition) Volume() *big.Int {
	return new(big.Int).Add(p.AcceptedVolume(), p.RejectedVolume())
}

// Conserves reports whether the collected volume equals the seed volume.
func (p *Partition) Conserves() bool {
	return p.Volume().Cmp(p.Seed.Volume()) == 0
}

// VerdictOf returns the verdict of the terminal region containing part.
// The bool is false when part lies outside the seed.
func (p *Partition) VerdictOf(part ir.Part) (ir.Verdict, bool) {
	for _, r := range p.Accepted {
		if r.Contains(part) {
			return ir.Accepted, true
		}
	}
	for _, r := range p.Rejected {
		if r.Contains(part) {
			return ir.Rejected, true
		}
	}
	return "", false
}

// Canonical returns the partition as a map suitable for ir.MarshalCanonical.
func (p *Partition) Canonical() map[string]any {
	regions := func(rs []ir.Region) []any {
		out := make([]any, len(rs))
		for i, r := range rs {
			out[i] = r.Canonical()
		}
		return out
	}
	return map[string]any{
		"seed":            p.Seed.Canonical(),
		"accepted":        regions(p.Accepted),
		"rejected":        regions(p.Rejected),
		"accepted_volume": p.AcceptedVolume(),
		"rejected_volume": p.RejectedVolume(),
		"steps":           len(p.Steps),
	}
}

// Route is the path one part took through the graph.
type Route struct {
	Part     ir.Part
	Path     []string // Workflows visited, entry first
	Terminal string   // AcceptLabel or RejectLabel
	Verdict  ir.Verdict
}

// Sorted is the result of classifying a batch of parts.
type Sorted struct {
	Accepted []ir.Part
	Rejected []ir.Part
	Verdicts []ir.Verdict // One per input part, in input order
}

// RatingSum returns the sum of ratings of all accepted parts.
func (s *Sorted) RatingSum() int64 {
	var sum int64
	for _, p := range s.Accepted {
		sum += p.Rating()
	}
	return sum
}
