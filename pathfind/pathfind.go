package pathfind

import (
	"github.com/katalvlaran/movegrid"
	"github.com/katalvlaran/movegrid/gridmap"
	"github.com/katalvlaran/movegrid/pqueue"
)

// FindPath returns a path from start to goal on m, start and goal included.
//
// Returns:
//
//   - [start] when start == goal.
//   - an empty Path with a nil error when goal is absent from m or cannot be
//     reached.
//   - ErrNilMap / ErrStartNotWalkable / ErrOptionViolation for invalid input.
//
// See Search for the cost and statistics of the same search.
func FindPath(m *gridmap.Map, start, goal gridmap.Coordinate, opts ...Option) (Path, error) {
	res, err := Search(m, start, goal, opts...)
	if err != nil {
		return nil, err
	}
	return res.Path, nil
}

// Search runs the best-first search and returns the path with its cost and
// the number of expanded nodes.
//
// Preconditions and validation (in order):
//  1. Options must be valid (ErrOptionViolation).
//  2. m must be non-nil (gridmap.ErrNilMap).
//  3. start must be walkable in m (ErrStartNotWalkable).
//
// Complexity:
//
//   - Time:  O(N log N), N = discovered cells.
//   - Space: O(N).
func Search(m *gridmap.Map, start, goal gridmap.Coordinate, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if m == nil {
		return nil, gridmap.ErrNilMap
	}
	if !m.Walkable(start) {
		return nil, ErrStartNotWalkable
	}
	// An absent goal can never be closed; skip the search.
	if !m.Walkable(goal) {
		return &Result{}, nil
	}

	r := newRunner(m, start, goal, cfg)
	if err := r.process(); err != nil {
		return nil, err
	}

	return r.result(), nil
}

// node is one search record. parent is an arena index, -1 for the start.
type node struct {
	at     gridmap.Coordinate
	cost   int
	parent int
	closed bool
}

// runner holds the mutable state of a single search.
type runner struct {
	m           *gridmap.Map
	start, goal gridmap.Coordinate
	opts        Options

	nodes    []node                     // arena; index 0 is start
	index    map[gridmap.Coordinate]int // coordinate → arena index (open or closed)
	open     *pqueue.Queue[int]         // arena indices keyed by score
	target   int                        // arena index of goal once closed, else -1
	expanded int
}

// maxHint caps the initial arena, index and heap capacity.
const maxHint = 64

// newRunner seeds the open set with start at cost 0. The capacity hint is
// bounded by the map size; coordinates themselves are unbounded.
func newRunner(m *gridmap.Map, start, goal gridmap.Coordinate, opts Options) *runner {
	hint := min(m.Len(), maxHint)
	r := &runner{
		m:      m,
		start:  start,
		goal:   goal,
		opts:   opts,
		nodes:  make([]node, 0, hint),
		index:  make(map[gridmap.Coordinate]int, hint),
		open:   pqueue.New[int](hint),
		target: -1,
	}
	r.discover(start, 0, -1)
	return r
}

// process pops the lowest-score node until goal is closed or the frontier
// is exhausted.
func (r *runner) process() error {
	for r.open.Len() > 0 {
		// cancellation check (once per expansion)
		select {
		case <-r.opts.Ctx.Done():
			return r.opts.Ctx.Err()
		default:
		}

		i, _, _ := r.open.Pop()
		// stale heap entry left behind by a relaxation
		if r.nodes[i].closed {
			continue
		}
		r.nodes[i].closed = true
		r.expanded++
		r.opts.OnExpand(r.nodes[i].at, r.nodes[i].cost)

		if r.nodes[i].at == r.goal {
			r.target = i
			return nil
		}
		r.expand(i)
	}

	return nil
}

// expand offers each walkable neighbor of node i to the open set.
func (r *runner) expand(i int) {
	cur := r.nodes[i]
	for _, nb := range gridmap.Neighbors4(cur.at) {
		step, ok := r.m.Cost(nb)
		if !ok {
			continue
		}
		cost := cur.cost + step

		j, seen := r.index[nb]
		if !seen {
			r.discover(nb, cost, i)
			continue
		}
		// ModeCompat: first discovery stands, never re-evaluated.
		if r.opts.Mode == movegrid.ModeCompat || r.nodes[j].closed {
			continue
		}
		if cost < r.nodes[j].cost {
			r.nodes[j].cost = cost
			r.nodes[j].parent = i
			// lazy decrease-key: the old entry is skipped when popped
			r.open.Push(j, cost+r.heuristic(nb))
		}
	}
}

// discover appends a new open node to the arena and the heap.
func (r *runner) discover(c gridmap.Coordinate, cost, parent int) {
	idx := len(r.nodes)
	r.nodes = append(r.nodes, node{at: c, cost: cost, parent: parent})
	r.index[c] = idx
	r.open.Push(idx, cost+r.heuristic(c))
}

// heuristic estimates the remaining cost from c according to the mode.
func (r *runner) heuristic(c gridmap.Coordinate) int {
	if r.opts.Mode == movegrid.ModeCompat {
		return compatHeuristic(r.start, r.goal, c)
	}
	return gridmap.Manhattan(c, r.goal) * r.m.MinCost()
}

// compatHeuristic is the legacy engine's estimate: distance from start
// plus the x-distance to goal counted twice. The y-distance to goal is not
// part of it.
func compatHeuristic(start, goal, c gridmap.Coordinate) int {
	dx := c.X - goal.X
	if dx < 0 {
		dx = -dx
	}
	return gridmap.Manhattan(start, c) + 2*dx
}

// result walks predecessor indices back from goal and reverses them.
func (r *runner) result() *Result {
	res := &Result{Expanded: r.expanded}
	if r.target < 0 {
		return res
	}
	var path Path
	for at := r.target; at >= 0; at = r.nodes[at].parent {
		path = append(path, r.nodes[at].at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	res.Path = path
	res.Cost = r.nodes[r.target].cost
	res.Found = true

	return res
}
