package levelmap

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/movegrid/gridmap"
)

// Load reads and parses the level file at path.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levelmap: load %s: %w", path, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lvl, nil
}

// Parse decodes a YAML level and validates its legend and rows. The cost
// script is only compiled by Map.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levelmap: unmarshal: %w", err)
	}
	if len(lvl.Rows) == 0 {
		return nil, ErrNoRows
	}

	lvl.walls = make(map[rune]bool, len(lvl.Walls))
	for _, r := range lvl.Walls {
		lvl.walls[r] = true
	}
	lvl.legend = make(map[rune]int, len(lvl.Legend))
	for key, cost := range lvl.Legend {
		r, size := utf8.DecodeRuneInString(key)
		if size == 0 || size != len(key) || r == ' ' {
			return nil, fmt.Errorf("%w: %q", ErrBadLegend, key)
		}
		if lvl.walls[r] {
			return nil, fmt.Errorf("%w: %q is also a wall", ErrBadLegend, key)
		}
		if cost < 0 {
			return nil, fmt.Errorf("%w: %q = %d", ErrBadCost, key, cost)
		}
		lvl.legend[r] = cost
	}

	for y, row := range lvl.Rows {
		x := 0
		for _, r := range row {
			if _, ok := lvl.legend[r]; !ok && r != ' ' && !lvl.walls[r] {
				return nil, fmt.Errorf("%w: %q at row %d col %d", ErrUnknownTile, r, y, x)
			}
			x++
		}
	}

	return &lvl, nil
}

// Map builds the gridmap for the level, running cost_script when present.
func (l *Level) Map() (*gridmap.Map, error) {
	eval, err := l.compile()
	if err != nil {
		return nil, err
	}

	b := gridmap.NewBuilder()
	for row, line := range l.Rows {
		col := 0
		for _, r := range line {
			at := gridmap.C(l.Origin.X+col, l.Origin.Y+row)
			col++
			base, ok := l.legend[r]
			if !ok {
				continue // wall or void
			}
			cost := base
			if eval != nil {
				if cost, err = eval(r, at, base); err != nil {
					return nil, err
				}
			}
			if cost >= 0 {
				b.Set(at, cost)
			}
		}
	}

	return b.Build()
}

// costFunc evaluates cost_script for one tile; a negative result blocks it.
type costFunc func(tile rune, at gridmap.Coordinate, base int) (int, error)

// compile prepares cost_script once; the returned func re-runs it with new
// inputs. It returns nil when the level has no script.
func (l *Level) compile() (costFunc, error) {
	if l.CostScript == "" {
		return nil, nil
	}

	script := tengo.NewScript([]byte(l.CostScript))
	script.SetImports(stdlib.GetModuleMap("math", "text"))
	_ = script.Add("tile", "")
	_ = script.Add("x", 0)
	_ = script.Add("y", 0)
	_ = script.Add("base", 0)

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("%w: compile: %v", ErrScript, err)
	}

	return func(tile rune, at gridmap.Coordinate, base int) (cost int, err error) {
		// the VM can panic on runtime faults such as integer division by zero
		defer func() {
			if r := recover(); r != nil {
				cost, err = 0, fmt.Errorf("%w: at %s: %v", ErrScript, at, r)
			}
		}()

		inputs := []struct {
			name  string
			value interface{}
		}{
			{"tile", string(tile)},
			{"x", at.X},
			{"y", at.Y},
			{"base", base},
		}
		for _, in := range inputs {
			if err := compiled.Set(in.name, in.value); err != nil {
				return 0, fmt.Errorf("%w: set %s: %v", ErrScript, in.name, err)
			}
		}
		if err := compiled.Run(); err != nil {
			return 0, fmt.Errorf("%w: at %s: %v", ErrScript, at, err)
		}
		if !compiled.IsDefined("cost") {
			return -1, nil
		}

		switch v := compiled.Get("cost").Value().(type) {
		case int64:
			return int(v), nil
		case float64:
			if v != float64(int64(v)) {
				return 0, fmt.Errorf("%w: %v at %s is not an integer", ErrBadCost, v, at)
			}
			return int(v), nil
		default:
			return 0, fmt.Errorf("%w: %v (%T) at %s", ErrBadCost, v, v, at)
		}
	}, nil
}
