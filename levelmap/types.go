package levelmap

import "errors"

// Sentinel errors returned by Parse and Level.Map.
var (
	// ErrNoRows indicates a level without any rows.
	ErrNoRows = errors.New("levelmap: level has no rows")

	// ErrUnknownTile indicates a glyph that is neither in the legend nor a wall.
	ErrUnknownTile = errors.New("levelmap: unknown tile")

	// ErrBadLegend indicates a legend key that is not exactly one glyph, or
	// a glyph listed both in the legend and as a wall.
	ErrBadLegend = errors.New("levelmap: bad legend entry")

	// ErrBadCost indicates a negative legend cost or a non-integer script result.
	ErrBadCost = errors.New("levelmap: bad cost")

	// ErrScript indicates that cost_script failed to compile or run.
	ErrScript = errors.New("levelmap: cost script failed")
)

// Point is the YAML form of a coordinate.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Level is a parsed level file.
type Level struct {
	Name       string         `yaml:"name"`
	Origin     Point          `yaml:"origin"`
	Legend     map[string]int `yaml:"legend"`
	Walls      string         `yaml:"walls"`
	Rows       []string       `yaml:"rows"`
	CostScript string         `yaml:"cost_script"`

	legend map[rune]int
	walls  map[rune]bool
}
