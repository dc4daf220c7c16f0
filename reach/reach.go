package reach

import (
	"github.com/katalvlaran/movegrid"
	"github.com/katalvlaran/movegrid/gridmap"
	"github.com/katalvlaran/movegrid/pqueue"
)

// cell state inside one query
const (
	queued uint8 = iota + 1
	finalized
)

// node is one search record; parent is an arena index, -1 for the origin.
type node struct {
	at     gridmap.Coordinate
	cost   int
	parent int
	state  uint8
}

// walker encapsulates the mutable state of one range query.
type walker struct {
	m      *gridmap.Map
	budget int
	opts   Options

	nodes []node                     // arena; index 0 is the origin
	index map[gridmap.Coordinate]int // coordinate → arena index
	fifo  []int                      // ModeCompat frontier
	heap  *pqueue.Queue[int]         // ModeOptimal frontier
	order []int                      // finalized arena indices
}

// FindRange returns every cell reachable from start with a cumulative cost
// of at most budget. start is always included; budget 0 yields exactly
// {start}.
//
// Returns gridmap.ErrNilMap, ErrStartNotWalkable, ErrNegativeBudget or
// ErrOptionViolation for invalid input, or the context error when the
// query is cancelled.
//
// Complexity: O(N) for ModeCompat, O(N log N) for ModeOptimal, N = cells
// discovered within budget.
func FindRange(m *gridmap.Map, start gridmap.Coordinate, budget int, opts ...Option) (*ReachableSet, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if m == nil {
		return nil, gridmap.ErrNilMap
	}
	if !m.Walkable(start) {
		return nil, ErrStartNotWalkable
	}
	if budget < 0 {
		return nil, ErrNegativeBudget
	}

	w := &walker{
		m:      m,
		budget: budget,
		opts:   o,
		index:  make(map[gridmap.Coordinate]int),
	}
	w.enqueue(start, 0, -1)

	// Zero budget: nothing can be entered, not even zero-cost cells.
	if budget == 0 {
		w.finalize(w.pop())
		return w.result(start), nil
	}

	if err := w.loop(); err != nil {
		return nil, err
	}
	return w.result(start), nil
}

// loop drains the frontier until empty or cancelled.
func (w *walker) loop() error {
	for {
		// cancellation check (once per loop)
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		i := w.pop()
		if i < 0 {
			return nil
		}
		// stale heap entry left behind by a relaxation
		if w.nodes[i].state == finalized {
			continue
		}
		w.enqueueNeighbors(i)
		w.finalize(i)
	}
}

// enqueue records a newly discovered cell and adds it to the frontier.
func (w *walker) enqueue(c gridmap.Coordinate, cost, parent int) {
	idx := len(w.nodes)
	w.nodes = append(w.nodes, node{at: c, cost: cost, parent: parent, state: queued})
	w.index[c] = idx
	w.push(idx)
}

func (w *walker) push(idx int) {
	if w.opts.Mode == movegrid.ModeCompat {
		w.fifo = append(w.fifo, idx)
		return
	}
	if w.heap == nil {
		w.heap = pqueue.New[int](16)
	}
	w.heap.Push(idx, w.nodes[idx].cost)
}

// pop returns the next arena index, or -1 when the frontier is empty.
func (w *walker) pop() int {
	if w.opts.Mode == movegrid.ModeCompat {
		if len(w.fifo) == 0 {
			return -1
		}
		i := w.fifo[0]
		w.fifo = w.fifo[1:]
		return i
	}
	i, _, ok := w.heap.Pop()
	if !ok {
		return -1
	}
	return i
}

// enqueueNeighbors offers each walkable neighbor whose cumulative cost fits
// the budget. In ModeCompat a queued or finalized neighbor is never
// revisited; in ModeOptimal a queued one is relaxed if the new cost is lower.
func (w *walker) enqueueNeighbors(i int) {
	cur := w.nodes[i]
	for _, nb := range gridmap.Neighbors4(cur.at) {
		step, ok := w.m.Cost(nb)
		if !ok {
			continue
		}
		cost := cur.cost + step
		if cost > w.budget {
			continue
		}
		j, seen := w.index[nb]
		if !seen {
			w.enqueue(nb, cost, i)
			continue
		}
		if w.opts.Mode == movegrid.ModeCompat || w.nodes[j].state == finalized {
			continue
		}
		if cost < w.nodes[j].cost {
			w.nodes[j].cost = cost
			w.nodes[j].parent = i
			w.push(j)
		}
	}
}

// finalize moves node i into the result.
func (w *walker) finalize(i int) {
	w.nodes[i].state = finalized
	w.order = append(w.order, i)
	w.opts.OnFinalize(w.nodes[i].at, w.nodes[i].cost)
}

// result converts the arena into a ReachableSet.
func (w *walker) result(start gridmap.Coordinate) *ReachableSet {
	s := &ReachableSet{
		origin: start,
		budget: w.budget,
		order:  make([]gridmap.Coordinate, 0, len(w.order)),
		cost:   make(map[gridmap.Coordinate]int, len(w.order)),
		parent: make(map[gridmap.Coordinate]gridmap.Coordinate, len(w.order)),
	}
	for _, i := range w.order {
		n := w.nodes[i]
		s.order = append(s.order, n.at)
		s.cost[n.at] = n.cost
		if n.parent >= 0 {
			s.parent[n.at] = w.nodes[n.parent].at
		}
	}
	return s
}
