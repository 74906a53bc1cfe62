package bestfirst

import (
	"cmp"

	"github.com/katalvlaran/lvsearch/searchtree"
)

// openItem is one entry of the open set.
type openItem[V cmp.Ordered] struct {
	node    searchtree.Handle
	label   V
	labeled bool   // false for roots, which sort before every labelled node
	seq     uint64 // insertion order, the FIFO tie-break
	index   int    // position in the heap, maintained by Swap/Push/Pop
}

// openSet is a min-heap of *openItem ordered by (labeled, label, seq).
type openSet[V cmp.Ordered] []*openItem[V]

// Len returns the number of items in the heap.
func (q openSet[V]) Len() int { return len(q) }

// Less orders unlabelled items first, then by label, then by insertion order.
func (q openSet[V]) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.labeled != b.labeled {
		return !a.labeled
	}
	if a.labeled {
		if c := cmp.Compare(a.label, b.label); c != 0 {
			return c < 0
		}
	}

	return a.seq < b.seq
}

// Swap swaps two items and keeps their indices current.
func (q openSet[V]) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

// Push appends x; called by heap.Push.
func (q *openSet[V]) Push(x any) {
	item := x.(*openItem[V])
	item.index = len(*q)
	*q = append(*q, item)
}

// Pop removes the last item; called by heap.Pop.
func (q *openSet[V]) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]

	return item
}
