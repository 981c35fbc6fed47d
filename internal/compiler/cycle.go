package compiler

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/sortflow/internal/ir"
)

// CycleWarning represents a cycle in the workflow graph.
//
// Cycles are warnings, not errors: the engine guards against them at run
// time, and a cycle that no region can actually traverse is harmless.
type CycleWarning struct {
	Path    []string `json:"path"`    // Cycle path: ["px", "qkq", "px"]
	Message string   `json:"message"` // Human-readable description
	Level   string   `json:"level"`   // "warning"
}

// AnalyzeCycles performs static cycle analysis on a workflow graph.
//
// The algorithm:
//  1. Build workflow → destination workflow edges (terminals are sinks)
//  2. Use Tarjan's algorithm to find strongly connected components
//  3. Report each SCC with size > 1 or self-loops as a cycle warning
//
// A DAG (no cycles) returns an empty warning list. Output is sorted by path
// so repeated runs agree.
func AnalyzeCycles(g ir.Graph) []CycleWarning {
	if len(g.Workflows) == 0 {
		return []CycleWarning{}
	}

	graph := buildDependencyGraph(g)
	sccs := tarjanSCC(graph)

	warnings := []CycleWarning{}
	for _, scc := range sccs {
		if len(scc) > 1 || (len(scc) == 1 && hasSelfLoop(scc[0], graph)) {
			warnings = append(warnings, cycleSCCToWarning(scc, graph))
		}
	}

	slices.SortFunc(warnings, func(a, b CycleWarning) int {
		return slices.Compare(a.Path, b.Path)
	})
	return warnings
}

// Unreachable returns the workflows no path from the entry can reach,
// in sorted order.
func Unreachable(g ir.Graph) []string {
	graph := buildDependencyGraph(g)

	seen := make(map[string]bool)
	stack := []string{g.EntryLabel()}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		stack = append(stack, graph[n]...)
	}

	var out []string
	for _, name := range g.Labels() {
		if !seen[name] {
			out = append(out, name)
		}
	}
	return out
}

// dependencyGraph maps workflow → workflows its rules route to.
type dependencyGraph map[string][]string

// buildDependencyGraph keeps one edge per (workflow, destination) pair and
// drops terminals and undeclared destinations. Neighbours are in rule order.
func buildDependencyGraph(g ir.Graph) dependencyGraph {
	graph := make(dependencyGraph, len(g.Workflows))

	for _, name := range g.Labels() {
		graph[name] = []string{}
		for _, rule := range g.Workflows[name].Rules {
			dest := rule.Target()
			if ir.IsTerminal(dest) {
				continue
			}
			if _, ok := g.Workflows[dest]; !ok {
				continue
			}
			if !slices.Contains(graph[name], dest) {
				graph[name] = append(graph[name], dest)
			}
		}
	}

	return graph
}

// hasSelfLoop checks if a node has an edge to itself.
func hasSelfLoop(node string, graph dependencyGraph) bool {
	return slices.Contains(graph[node], node)
}

// tarjanSCC finds strongly connected components using Tarjan's algorithm.
// Nodes are visited in sorted order for deterministic output.
func tarjanSCC(graph dependencyGraph) [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range graph[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		// Root node: pop the stack into an SCC
		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	nodes := make([]string, 0, len(graph))
	for node := range graph {
		nodes = append(nodes, node)
	}
	slices.Sort(nodes)

	for _, node := range nodes {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}

	return sccs
}

// cycleSCCToWarning converts an SCC to a CycleWarning.
// For self-loops, the path is [name, name].
func cycleSCCToWarning(scc []string, graph dependencyGraph) CycleWarning {
	if len(scc) == 1 {
		name := scc[0]
		return CycleWarning{
			Path:    []string{name, name},
			Message: fmt.Sprintf("Self-referencing workflow detected: %s → %s", name, name),
			Level:   "warning",
		}
	}

	path := reconstructCyclePath(scc, graph)
	return CycleWarning{
		Path:    path,
		Message: fmt.Sprintf("Workflow cycle detected: %s", strings.Join(path, " → ")),
		Level:   "warning",
	}
}

// reconstructCyclePath walks edges inside the SCC from its smallest member
// until it returns to the start.
func reconstructCyclePath(scc []string, graph dependencyGraph) []string {
	if len(scc) == 0 {
		return []string{}
	}

	members := make(map[string]bool, len(scc))
	for _, node := range scc {
		members[node] = true
	}

	start := slices.Min(scc)
	current := start
	path := []string{current}
	visited := make(map[string]bool)

	for {
		visited[current] = true

		var next string
		for _, neighbor := range graph[current] {
			if members[neighbor] && (!visited[neighbor] || neighbor == start) {
				next = neighbor
				break
			}
		}

		if next == "" {
			break
		}
		path = append(path, next)
		if next == start {
			break
		}
		current = next
	}

	return path
}
