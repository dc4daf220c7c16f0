package query

import (
	"errors"

	"github.com/katalvlaran/movegrid/gridmap"
)

// ErrNoMap indicates the store holds no map yet.
var ErrNoMap = errors.New("query: no map loaded")

// IsInvalid reports whether err was caused by bad request input.
func IsInvalid(err error) bool {
	return errors.Is(err, gridmap.ErrInvalidArgument)
}

// Point is a wire coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Coordinate converts p to a gridmap.Coordinate.
func (p Point) Coordinate() gridmap.Coordinate { return gridmap.C(p.X, p.Y) }

// PointOf converts a gridmap.Coordinate to a Point.
func PointOf(c gridmap.Coordinate) Point { return Point{X: c.X, Y: c.Y} }

// PathRequest asks for a path between two cells.
type PathRequest struct {
	Start Point  `json:"start"`
	Goal  Point  `json:"goal"`
	Mode  string `json:"mode,omitempty"`   // "optimal" (default) or "compat"
	Draw  bool   `json:"render,omitempty"` // include an ASCII map in Text
}

// PathResponse is the outcome of a path query. Found is false and Path
// empty when the goal is absent or unreachable.
type PathResponse struct {
	Found    bool    `json:"found"`
	Cost     int     `json:"cost"`
	Steps    int     `json:"steps"`
	Expanded int     `json:"expanded"`
	Path     []Point `json:"path"`
	Mode     string  `json:"mode"`
	Version  uint64  `json:"version"`
	Text     string  `json:"text,omitempty"`
}

// RangeRequest asks for every cell reachable within a budget.
type RangeRequest struct {
	Origin Point  `json:"origin"`
	Budget int    `json:"budget"`
	Mode   string `json:"mode,omitempty"`
	Draw   bool   `json:"render,omitempty"`
}

// RangeCell is one reachable cell with its accumulated cost.
type RangeCell struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	Cost int `json:"cost"`
}

// RangeResponse lists reachable cells in the order they were finalized,
// origin first.
type RangeResponse struct {
	Count   int         `json:"count"`
	Cells   []RangeCell `json:"cells"`
	Mode    string      `json:"mode"`
	Version uint64      `json:"version"`
	Text    string      `json:"text,omitempty"`
}

// CellResponse describes a single coordinate.
type CellResponse struct {
	At        Point   `json:"at"`
	Walkable  bool    `json:"walkable"`
	Cost      int     `json:"cost"`
	Neighbors []Point `json:"neighbors"`
	Version   uint64  `json:"version"`
}

// InfoResponse summarizes the current map.
type InfoResponse struct {
	Cells      int    `json:"cells"`
	MinCost    int    `json:"min_cost"`
	Min        Point  `json:"min"`
	Max        Point  `json:"max"`
	Components int    `json:"components"`
	Version    uint64 `json:"version"`
}
