// Package pqueue provides the min-heap frontier shared by the movegrid
// finders.
//
// Items are ordered by (priority, seq): lower priority first, and among
// equal priorities the one pushed earliest. seq is assigned by Push, so the
// order of Pop is fully determined by the order of Push calls. This is the
// "lowest score wins, first-seen wins ties" rule expected by pathfind and
// reach, realised in O(log n) per operation instead of a linear scan.
package pqueue

import "container/heap"

// item is a single heap entry.
type item[T any] struct {
	value    T
	priority int
	seq      uint64
}

// entries implements heap.Interface over item[T].
type entries[T any] []item[T]

// Len returns the number of items in the heap.
func (e entries[T]) Len() int { return len(e) }

// Less orders by priority, then by insertion sequence.
func (e entries[T]) Less(i, j int) bool {
	if e[i].priority != e[j].priority {
		return e[i].priority < e[j].priority
	}
	return e[i].seq < e[j].seq
}

// Swap swaps two elements in the heap.
func (e entries[T]) Swap(i, j int) { e[i], e[j] = e[j], e[i] }

// Push is called by heap.Push; x must be item[T].
func (e *entries[T]) Push(x any) { *e = append(*e, x.(item[T])) }

// Pop is called by heap.Pop and removes the last element.
func (e *entries[T]) Pop() any {
	old := *e
	n := len(old)
	it := old[n-1]
	*e = old[:n-1]

	return it
}

// Queue is a stable min-priority queue. The zero value is ready to use.
// A Queue is not safe for concurrent use.
type Queue[T any] struct {
	h   entries[T]
	seq uint64
}

// New returns a Queue with room for capacity items.
func New[T any](capacity int) *Queue[T] {
	return &Queue[T]{h: make(entries[T], 0, capacity)}
}

// Push inserts v with the given priority.
// Complexity: O(log n).
func (q *Queue[T]) Push(v T, priority int) {
	heap.Push(&q.h, item[T]{value: v, priority: priority, seq: q.seq})
	q.seq++
}

// Pop removes and returns the item with the lowest priority; ties go to the
// item pushed first. ok is false when the queue is empty.
// Complexity: O(log n).
func (q *Queue[T]) Pop() (v T, priority int, ok bool) {
	if len(q.h) == 0 {
		return v, 0, false
	}
	it := heap.Pop(&q.h).(item[T])
	return it.value, it.priority, true
}

// Peek returns the next item without removing it.
func (q *Queue[T]) Peek() (v T, priority int, ok bool) {
	if len(q.h) == 0 {
		return v, 0, false
	}
	return q.h[0].value, q.h[0].priority, true
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	return len(q.h)
}
