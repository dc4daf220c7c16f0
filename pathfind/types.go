// Package pathfind defines options, sentinel errors and result types for
// shortest-path search.
package pathfind

import (
	"context"
	"fmt"

	"github.com/katalvlaran/movegrid"
	"github.com/katalvlaran/movegrid/gridmap"
)

// Sentinel errors returned by pathfind.
var (
	// ErrStartNotWalkable indicates the start coordinate is not a key of the map.
	ErrStartNotWalkable = fmt.Errorf("%w: pathfind: start cell is not walkable", gridmap.ErrInvalidArgument)

	// ErrOptionViolation indicates an invalid Option value.
	ErrOptionViolation = fmt.Errorf("%w: pathfind: invalid option supplied", gridmap.ErrInvalidArgument)
)

// Path is an ordered list of cells from start to goal, both inclusive.
// An empty Path means no path exists.
type Path []gridmap.Coordinate

// Cost sums the entry cost of every cell after the first.
// ok is false if any cell is not walkable in m.
func (p Path) Cost(m *gridmap.Map) (total int, ok bool) {
	for i := 1; i < len(p); i++ {
		c, walkable := m.Cost(p[i])
		if !walkable {
			return 0, false
		}
		total += c
	}
	return total, true
}

// Valid reports whether every cell of p is walkable in m and each step is
// one axis-aligned move. An empty path is valid.
func (p Path) Valid(m *gridmap.Map) bool {
	for i, c := range p {
		if !m.Walkable(c) {
			return false
		}
		if i > 0 && !gridmap.Adjacent(p[i-1], c) {
			return false
		}
	}
	return true
}

// Result is the full outcome of Search.
type Result struct {
	// Path from start to goal; nil when Found is false.
	Path Path
	// Cost is the accumulated cost of Path (0 when not found).
	Cost int
	// Expanded counts nodes moved to the closed set.
	Expanded int
	// Found reports whether goal was reached.
	Found bool
}

// Options configures a search.
type Options struct {
	// Ctx allows cancellation; polled once per expansion.
	Ctx context.Context

	// Mode selects optimal or legacy-compatible behavior.
	Mode movegrid.Mode

	// OnExpand is called when a node is closed, with its accumulated cost.
	OnExpand func(c gridmap.Coordinate, cost int)

	// internal error recorded during option parsing
	err error
}

// Option configures Search via functional arguments.
type Option func(*Options)

// DefaultOptions returns Options with a background context, ModeOptimal
// and a no-op OnExpand hook.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		Mode:     movegrid.ModeOptimal,
		OnExpand: func(gridmap.Coordinate, int) {},
	}
}

// WithContext sets a context for cancellation. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMode selects the search mode. Unknown modes surface as
// ErrOptionViolation.
func WithMode(mode movegrid.Mode) Option {
	return func(o *Options) {
		if !mode.Valid() {
			o.err = fmt.Errorf("%w: unknown mode %d", ErrOptionViolation, int(mode))
			return
		}
		o.Mode = mode
	}
}

// WithOnExpand registers a callback run each time a node is finalized.
func WithOnExpand(fn func(c gridmap.Coordinate, cost int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}
