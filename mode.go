package movegrid

import "fmt"

// Mode selects how both finders treat a cell that is discovered a second
// time through a cheaper route. The choice is shared by pathfind and reach
// so that a range preview and the path later walked inside it agree.
type Mode int

const (
	// ModeOptimal relaxes: a cheaper rediscovery replaces the cell's cost
	// and predecessor. Paths are minimum-cost and reachable sets use true
	// minimum costs. pathfind pairs it with an admissible heuristic.
	ModeOptimal Mode = iota

	// ModeCompat keeps the first discovered cost and predecessor of every
	// cell and scores path candidates with the legacy heuristic
	// (distance from start plus twice the x-distance to the goal).
	// Results are optimal only on uniform-cost maps.
	ModeCompat
)

// String returns "optimal" or "compat".
func (m Mode) String() string {
	switch m {
	case ModeOptimal:
		return "optimal"
	case ModeCompat:
		return "compat"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeOptimal || m == ModeCompat
}

// ParseMode maps "optimal" / "compat" (and "" → optimal) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "optimal":
		return ModeOptimal, nil
	case "compat", "legacy":
		return ModeCompat, nil
	default:
		return 0, fmt.Errorf("movegrid: unknown mode %q (want optimal or compat)", s)
	}
}
