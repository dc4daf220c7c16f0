// Package gridmap holds the sparse walkability table that every movegrid
// search runs against.
//
// What:
//
//   - Coordinate is a comparable (X, Y) pair with no implicit bounds.
//   - Map is an immutable Coordinate → cost table. A coordinate absent from
//     the table is not walkable; a present one costs Cost(c) to enter.
//   - Neighbors4 enumerates the four axis-aligned neighbors in the fixed
//     order +x, +y, −x, −y. Both finders expand in this order, so it is part
//     of their tie-break contract.
//
// Why:
//
//   - Turn-based tactics maps: per-tile movement cost, walls simply omitted.
//   - Level data import: FromRows turns a dense [][]int into a sparse Map.
//   - Copy-on-write snapshots: With and Without return a new Map, so readers
//     holding the old one are never disturbed by an edit.
//
// Complexity:
//
//   - Cost, Walkable:     O(1).
//   - New, FromRows:      O(N) time and memory, N = number of cells.
//   - With, Without:      O(N) (full copy).
//   - Components:         O(N), Memory: O(N).
//
// Errors:
//
//   - ErrInvalidArgument: root of every "bad input" error in movegrid.
//   - ErrNilMap:          a nil *Map was passed where one is required.
//   - ErrNegativeCost:    a cell was given a cost below zero.
//   - ErrEmptyGrid:       FromRows got no rows or no columns.
//   - ErrNonRectangular:  FromRows rows differ in length.
//   - ErrBadCoordinate:   ParseCoordinate could not read "x,y".
package gridmap
