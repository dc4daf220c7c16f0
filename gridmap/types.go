// Package gridmap defines coordinates, sentinel errors and construction
// options for the sparse walkability map.
package gridmap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidArgument is the root of every invalid-input error in movegrid.
// Use errors.Is(err, ErrInvalidArgument) to tell "bad call" apart from an
// empty result.
var ErrInvalidArgument = errors.New("invalid argument")

// Sentinel errors for gridmap operations.
var (
	// ErrNilMap indicates a nil *Map was supplied.
	ErrNilMap = fmt.Errorf("%w: gridmap: map is nil", ErrInvalidArgument)
	// ErrNegativeCost indicates a cell cost below zero.
	ErrNegativeCost = fmt.Errorf("%w: gridmap: cell cost must be non-negative", ErrInvalidArgument)
	// ErrEmptyGrid indicates input rows are empty.
	ErrEmptyGrid = fmt.Errorf("%w: gridmap: input grid must have at least one row and one column", ErrInvalidArgument)
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = fmt.Errorf("%w: gridmap: all rows must have the same length", ErrInvalidArgument)
	// ErrBadCoordinate indicates a coordinate string that is not "x,y".
	ErrBadCoordinate = fmt.Errorf("%w: gridmap: coordinate must look like \"x,y\"", ErrInvalidArgument)
)

// Coordinate is a grid cell address. Equality is by value.
type Coordinate struct {
	X, Y int
}

// C is shorthand for Coordinate{X: x, Y: y}.
func C(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// Add returns c translated by d.
func (c Coordinate) Add(d Coordinate) Coordinate {
	return Coordinate{X: c.X + d.X, Y: c.Y + d.Y}
}

// String formats c as "x,y".
func (c Coordinate) String() string {
	return strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y)
}

// Less orders coordinates by Y, then X (row-major reading order).
func (c Coordinate) Less(o Coordinate) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

// ParseCoordinate reads "x,y" (spaces around either number are allowed).
func ParseCoordinate(s string) (Coordinate, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrBadCoordinate, s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: %q: %v", ErrBadCoordinate, s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: %q: %v", ErrBadCoordinate, s, err)
	}
	return Coordinate{X: x, Y: y}, nil
}

// Manhattan returns |a.X-b.X| + |a.Y-b.Y|.
func Manhattan(a, b Coordinate) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// offsets4 lists the axis-aligned steps in expansion order: +x, +y, −x, −y.
var offsets4 = [4]Coordinate{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// Neighbors4 returns the four axis-aligned neighbors of c in expansion
// order +x, +y, −x, −y. Walkability is not checked.
// Complexity: O(1).
func Neighbors4(c Coordinate) [4]Coordinate {
	var out [4]Coordinate
	for i, d := range offsets4 {
		out[i] = c.Add(d)
	}
	return out
}

// Adjacent reports whether a and b differ by exactly one axis-aligned step.
func Adjacent(a, b Coordinate) bool {
	return Manhattan(a, b) == 1
}

// RowOptions tunes FromRows.
type RowOptions struct {
	// Origin is the coordinate assigned to rows[0][0].
	Origin Coordinate
	// Blocked is the cell value that marks a non-walkable cell.
	Blocked int
}

// DefaultRowOptions returns RowOptions with Origin (0,0) and Blocked = -1.
func DefaultRowOptions() RowOptions {
	return RowOptions{
		Origin:  Coordinate{},
		Blocked: -1,
	}
}
