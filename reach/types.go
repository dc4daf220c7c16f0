// Package reach provides options, sentinel errors and the ReachableSet
// result of a range query.
package reach

import (
	"context"
	"fmt"
	"sort"

	"github.com/katalvlaran/movegrid"
	"github.com/katalvlaran/movegrid/gridmap"
)

// Sentinel errors for range queries.
var (
	// ErrStartNotWalkable is returned when the origin is absent from the map.
	ErrStartNotWalkable = fmt.Errorf("%w: reach: start cell is not walkable", gridmap.ErrInvalidArgument)

	// ErrNegativeBudget is returned for a budget below zero.
	ErrNegativeBudget = fmt.Errorf("%w: reach: budget must be non-negative", gridmap.ErrInvalidArgument)

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = fmt.Errorf("%w: reach: invalid option supplied", gridmap.ErrInvalidArgument)
)

// Option configures FindRange via functional arguments.
type Option func(*Options)

// Options holds parameters and callbacks for a range query.
type Options struct {
	// Ctx allows cancellation; polled once per dequeued cell.
	Ctx context.Context

	// Mode selects relaxation (optimal) or first-discovery (compat) costs.
	Mode movegrid.Mode

	// OnFinalize is called when a cell enters the result, with its cost.
	OnFinalize func(c gridmap.Coordinate, cost int)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with a background context, ModeOptimal
// and a no-op OnFinalize hook.
func DefaultOptions() Options {
	return Options{
		Ctx:        context.Background(),
		Mode:       movegrid.ModeOptimal,
		OnFinalize: func(gridmap.Coordinate, int) {},
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMode selects the cost model. Unknown modes → ErrOptionViolation.
func WithMode(mode movegrid.Mode) Option {
	return func(o *Options) {
		if !mode.Valid() {
			o.err = fmt.Errorf("%w: unknown mode %d", ErrOptionViolation, int(mode))
			return
		}
		o.Mode = mode
	}
}

// WithOnFinalize registers a callback run as each cell is finalized.
func WithOnFinalize(fn func(c gridmap.Coordinate, cost int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnFinalize = fn
		}
	}
}

// ReachableSet is the outcome of FindRange: each reachable cell exactly
// once, with the cost at which it was reached.
type ReachableSet struct {
	origin gridmap.Coordinate
	budget int
	order  []gridmap.Coordinate
	cost   map[gridmap.Coordinate]int
	parent map[gridmap.Coordinate]gridmap.Coordinate
}

// Origin returns the query's start cell.
func (s *ReachableSet) Origin() gridmap.Coordinate { return s.origin }

// Budget returns the query's budget.
func (s *ReachableSet) Budget() int { return s.budget }

// Len returns the number of reachable cells, origin included.
func (s *ReachableSet) Len() int { return len(s.order) }

// Contains reports whether c is reachable.
func (s *ReachableSet) Contains(c gridmap.Coordinate) bool {
	_, ok := s.cost[c]
	return ok
}

// Cost returns the cost to reach c and whether c is in the set.
func (s *ReachableSet) Cost(c gridmap.Coordinate) (int, bool) {
	v, ok := s.cost[c]
	return v, ok
}

// Coordinates returns the cells in finalization order. The slice is a copy.
func (s *ReachableSet) Coordinates() []gridmap.Coordinate {
	out := make([]gridmap.Coordinate, len(s.order))
	copy(out, s.order)
	return out
}

// Sorted returns the cells sorted by Y, then X.
func (s *ReachableSet) Sorted() []gridmap.Coordinate {
	out := s.Coordinates()
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// PathTo reconstructs the route the search used to reach dest, origin
// first. In ModeOptimal it is a minimum-cost route; in ModeCompat it is the
// first-discovery route. Returns an error if dest is not in the set.
func (s *ReachableSet) PathTo(dest gridmap.Coordinate) ([]gridmap.Coordinate, error) {
	if !s.Contains(dest) {
		return nil, fmt.Errorf("reach: %s is not within budget %d of %s", dest, s.budget, s.origin)
	}
	path := []gridmap.Coordinate{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := s.parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	// reverse to get origin → dest
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
