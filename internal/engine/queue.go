package engine

import (
	"math/big"

	"github.com/roach88/sortflow/internal/ir"
)

// WorkItem is a region waiting to be evaluated by the workflow Label.
type WorkItem struct {
	Label  string
	Region ir.Region
}

// workQueue is the FIFO worklist drained by Propagate.
//
// The queue is unbounded so a workflow may fan a region out into as many
// pieces as it has rules. It is owned by a single Propagate call and needs
// no locking.
type workQueue struct {
	items []WorkItem
}

// newWorkQueue creates an empty work queue.
func newWorkQueue() *workQueue {
	return &workQueue{
		items: make([]WorkItem, 0, 64),
	}
}

// Enqueue adds an item to the back of the queue.
func (q *workQueue) Enqueue(item WorkItem) {
	q.items = append(q.items, item)
}

// TryDequeue removes and returns the front item.
// Returns (WorkItem{}, false) if the queue is empty.
func (q *workQueue) TryDequeue() (WorkItem, bool) {
	if len(q.items) == 0 {
		return WorkItem{}, false
	}

	item := q.items[0]
	q.items[0] = WorkItem{}

	if len(q.items) == 1 {
		q.items = q.items[:0]
	} else {
		q.items = q.items[1:]
	}

	return item, true
}

// Len returns the current queue length.
func (q *workQueue) Len() int {
	return len(q.items)
}

// Volume returns the total volume of all pending regions.
func (q *workQueue) Volume() *big.Int {
	total := new(big.Int)
	for _, item := range q.items {
		total.Add(total, item.Region.Volume())
	}
	return total
}
