package engine

// CycleDetector tracks the workflows one part has passed through.
//
// A part routed through an acyclic graph visits each workflow at most once.
// Seeing the same label twice means the graph has a cycle reachable from
// the entry and the walk would never end.
//
// Example cycle:
//
//	in{a<10:px,A} → px{m>5:in,R} → in (again!) ← CYCLE DETECTED
//
// One detector serves one walk; call Clear before reusing it.
type CycleDetector struct {
	visited map[string]bool
}

// NewCycleDetector creates a new cycle detector.
func NewCycleDetector() *CycleDetector {
	return &CycleDetector{
		visited: make(map[string]bool),
	}
}

// WouldCycle reports whether label has already been visited.
func (c *CycleDetector) WouldCycle(label string) bool {
	return c.visited[label]
}

// Record marks label as visited.
// This should be called immediately after WouldCycle() returns false.
func (c *CycleDetector) Record(label string) {
	c.visited[label] = true
}

// Clear forgets all visited labels.
func (c *CycleDetector) Clear() {
	clear(c.visited)
}

// Size returns the number of visited labels.
func (c *CycleDetector) Size() int {
	return len(c.visited)
}
