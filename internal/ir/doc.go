// Package ir provides the value types of the sortflow rule engine.
//
// This package contains type definitions and their arithmetic only. All
// other internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Exactly four axes (x, m, a, s); a Region is a fixed-size array so no
//     axis can be missing or duplicated
//   - Intervals are closed and never empty; a split side that would be
//     empty is reported absent instead
//   - Volumes are math/big integers, never machine words
//   - Regions are values: splitting returns new Regions, nothing is mutated
//   - All JSON tags use snake_case
package ir
