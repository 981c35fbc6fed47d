// Package engine implements the sortflow range-splitting rule engine.
//
// The engine routes concrete parts and whole regions of the part space
// through a graph of workflows until they reach the accept or reject
// terminal.
//
// ARCHITECTURE:
//
// Point mode:
// Classify walks a single part from the entry workflow, following the first
// matching rule of each workflow, until a terminal label is reached.
//
// Region mode:
// Propagate seeds a FIFO worklist with (entry, region). Each step pops one
// item, splits its region across the workflow's rules and pushes every
// non-terminal output back onto the worklist. Outputs addressed to a
// terminal are collected into the Partition and never processed again.
// The loop ends when the worklist is empty.
//
// Evaluation is single-threaded and deterministic: the same graph and seed
// always produce the same Partition in the same order.
//
// INVARIANTS:
//
// Conservation:
// Every workflow evaluation splits its input into regions whose volumes sum
// exactly to the input volume. At every step of Propagate, collected volume
// plus pending volume equals the seed volume.
//
// Termination:
// Graphs are expected to be acyclic. Point mode refuses to revisit a
// workflow (CycleDetector); region mode caps the number of processed items
// (QuotaEnforcer).
package engine
