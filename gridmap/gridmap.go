// Package gridmap implements the immutable sparse walkability map.
//
// A Map is never mutated after construction. Edits go through With,
// Without or a Builder, each of which produces a fresh Map; any search
// already running on the old Map keeps a consistent view.
package gridmap

import (
	"fmt"
	"sort"
)

// Map is an immutable sparse table of walkable cells and their entry cost.
// The zero value is not usable; construct with New, FromRows or a Builder.
// A *Map may be shared freely between goroutines.
type Map struct {
	cells    map[Coordinate]int
	minCost  int
	min, max Coordinate
}

// New builds a Map from cells, deep-copying the input.
// Returns ErrNegativeCost if any cost is below zero.
// Complexity: O(N).
func New(cells map[Coordinate]int) (*Map, error) {
	cp := make(map[Coordinate]int, len(cells))
	for c, cost := range cells {
		if cost < 0 {
			return nil, fmt.Errorf("%w: cell %s cost=%d", ErrNegativeCost, c, cost)
		}
		cp[c] = cost
	}
	return seal(cp), nil
}

// MustNew is New that panics on error. Intended for tests and literals.
func MustNew(cells map[Coordinate]int) *Map {
	m, err := New(cells)
	if err != nil {
		panic(err)
	}
	return m
}

// FromRows builds a Map from a dense, rectangular grid. rows[y][x] becomes
// the cost of opts.Origin + (x, y); cells equal to opts.Blocked are left out.
// Returns ErrEmptyGrid if there are no rows or no columns,
// ErrNonRectangular if any row length differs, ErrNegativeCost for any
// other negative value.
// Complexity: O(W×H) time and memory.
func FromRows(rows [][]int, opts RowOptions) (*Map, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	w := len(rows[0])
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	cells := make(map[Coordinate]int, len(rows)*w)
	for y, row := range rows {
		for x, v := range row {
			if v == opts.Blocked {
				continue
			}
			c := opts.Origin.Add(Coordinate{X: x, Y: y})
			if v < 0 {
				return nil, fmt.Errorf("%w: cell %s cost=%d", ErrNegativeCost, c, v)
			}
			cells[c] = v
		}
	}
	return seal(cells), nil
}

// seal takes ownership of cells and computes the cached aggregates.
func seal(cells map[Coordinate]int) *Map {
	m := &Map{cells: cells}
	first := true
	for c, cost := range cells {
		if first {
			m.minCost, m.min, m.max = cost, c, c
			first = false
			continue
		}
		if cost < m.minCost {
			m.minCost = cost
		}
		m.min.X, m.min.Y = min(m.min.X, c.X), min(m.min.Y, c.Y)
		m.max.X, m.max.Y = max(m.max.X, c.X), max(m.max.Y, c.Y)
	}
	return m
}

// Cost returns the entry cost of c and whether c is walkable.
// Complexity: O(1).
func (m *Map) Cost(c Coordinate) (int, bool) {
	cost, ok := m.cells[c]
	return cost, ok
}

// Walkable reports whether c is present in the map.
// Complexity: O(1).
func (m *Map) Walkable(c Coordinate) bool {
	_, ok := m.cells[c]
	return ok
}

// Len returns the number of walkable cells.
func (m *Map) Len() int {
	return len(m.cells)
}

// MinCost returns the smallest cell cost, or 0 for an empty map.
// Used as the per-step lower bound of admissible heuristics.
func (m *Map) MinCost() int {
	return m.minCost
}

// Bounds returns the inclusive bounding box of all walkable cells.
// ok is false for an empty map.
func (m *Map) Bounds() (lo, hi Coordinate, ok bool) {
	if len(m.cells) == 0 {
		return Coordinate{}, Coordinate{}, false
	}
	return m.min, m.max, true
}

// Coordinates returns every walkable cell sorted by Y, then X.
// Complexity: O(N log N).
func (m *Map) Coordinates() []Coordinate {
	out := make([]Coordinate, 0, len(m.cells))
	for c := range m.cells {
		out = append(out, c)
	}
	sortCoordinates(out)
	return out
}

// WalkableNeighbors returns the walkable subset of Neighbors4(c), keeping
// the +x, +y, −x, −y order.
func (m *Map) WalkableNeighbors(c Coordinate) []Coordinate {
	out := make([]Coordinate, 0, 4)
	for _, n := range Neighbors4(c) {
		if m.Walkable(n) {
			out = append(out, n)
		}
	}
	return out
}

// With returns a copy of m where c costs cost. m is unchanged.
// Returns ErrNegativeCost if cost < 0.
// Complexity: O(N).
func (m *Map) With(c Coordinate, cost int) (*Map, error) {
	if cost < 0 {
		return nil, fmt.Errorf("%w: cell %s cost=%d", ErrNegativeCost, c, cost)
	}
	cp := m.clone(1)
	cp[c] = cost
	return seal(cp), nil
}

// Without returns a copy of m with c removed (made non-walkable).
// m is unchanged.
// Complexity: O(N).
func (m *Map) Without(c Coordinate) *Map {
	cp := m.clone(0)
	delete(cp, c)
	return seal(cp)
}

func (m *Map) clone(extra int) map[Coordinate]int {
	cp := make(map[Coordinate]int, len(m.cells)+extra)
	for c, cost := range m.cells {
		cp[c] = cost
	}
	return cp
}

// Builder accumulates cells for a new Map. It is not safe for concurrent use.
type Builder struct {
	cells map[Coordinate]int
	err   error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{cells: make(map[Coordinate]int)}
}

// From seeds a Builder with the contents of m.
func From(m *Map) *Builder {
	return &Builder{cells: m.clone(0)}
}

// Set marks c walkable with the given cost. The first invalid cost is
// remembered and reported by Build.
func (b *Builder) Set(c Coordinate, cost int) *Builder {
	if cost < 0 && b.err == nil {
		b.err = fmt.Errorf("%w: cell %s cost=%d", ErrNegativeCost, c, cost)
	}
	b.cells[c] = cost
	return b
}

// Delete makes c non-walkable.
func (b *Builder) Delete(c Coordinate) *Builder {
	delete(b.cells, c)
	return b
}

// Build returns the Map. The Builder may keep being used; later edits do
// not affect maps already built.
func (b *Builder) Build() (*Map, error) {
	if b.err != nil {
		return nil, b.err
	}
	return New(b.cells)
}

func sortCoordinates(cs []Coordinate) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].Less(cs[j]) })
}
