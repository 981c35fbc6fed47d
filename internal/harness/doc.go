// Package harness runs workflow graphs against YAML scenarios and golden
// partitions.
//
// # Scenario Format
//
//	name: two_level_split
//	description: "in sends low a to check, which rejects high m"
//	workflows: |
//	  in{a<2000:check,A}
//	  check{m>3000:R,A}
//	universe:
//	  a: [1, 4000]
//	parts:
//	  - {x: 1, m: 3500, a: 1, s: 1}
//	expect:
//	  accepted_volume: "224016000000000"
//	  verdicts: [reject]
//	  rating_sum: 0
//
// Instead of inline workflows a scenario may name a source file (text
// format or .cue) relative to the scenario file. The universe defaults to
// [1,bound]^4 with bound 4000; universe entries override single axes.
//
// # Built-in Checks
//
// Every run checks, in addition to the Expect block:
//
//   - conservation: accepted plus rejected volume equals the universe volume
//   - consistency: each part inside the universe lies in a region whose
//     verdict matches its point classification
//
// # Golden Files
//
// RunWithGolden records the partition as canonical JSON (see
// ir.MarshalCanonical) in testdata/golden/<name>.golden. Propagation is
// deterministic, so the file is byte-stable across runs.
package harness
