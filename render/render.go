// Package render draws a gridmap.Map with an optional path, reachable range
// and cursor, either to a terminal canvas (tcell) or as plain text.
//
// Glyphs:
//
//	,      cost 0
//	.      cost 1
//	2..9   that cost
//	+      cost 10 or more
//	#      inside the map bounds but not walkable
//	*      path cell (@ for the cursor)
//	-      walkable but outside the overlay range (Text only)
package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/katalvlaran/movegrid/gridmap"
	"github.com/katalvlaran/movegrid/pathfind"
	"github.com/katalvlaran/movegrid/reach"
)

// Canvas is the drawing surface; tcell.Screen satisfies it.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// Overlay is what is drawn on top of the map. Every field is optional.
type Overlay struct {
	Path   pathfind.Path
	Range  *reach.ReachableSet
	Cursor *gridmap.Coordinate
}

// Theme holds one style per cell layer.
type Theme struct {
	Void   tcell.Style
	Wall   tcell.Style
	Floor  tcell.Style
	Rough  tcell.Style // cost >= 2
	Range  tcell.Style // walkable and inside Overlay.Range
	Path   tcell.Style
	Cursor tcell.Style
}

// DefaultTheme is the palette used by Draw.
func DefaultTheme() Theme {
	return Theme{
		Void:   tcell.StyleDefault,
		Wall:   tcell.StyleDefault.Foreground(tcell.ColorGray),
		Floor:  tcell.StyleDefault.Foreground(tcell.ColorWhite),
		Rough:  tcell.StyleDefault.Foreground(tcell.ColorYellow),
		Range:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy),
		Path:   tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
		Cursor: tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true),
	}
}

type layer uint8

const (
	void layer = iota
	wall
	floor
	rough
	outside
	inRange
	path
	cursor
)

// overlay caches membership lookups for one drawing pass.
type overlay struct {
	Overlay
	onPath map[gridmap.Coordinate]bool
}

func prepare(ov Overlay) overlay {
	o := overlay{Overlay: ov, onPath: make(map[gridmap.Coordinate]bool, len(ov.Path))}
	for _, c := range ov.Path {
		o.onPath[c] = true
	}
	return o
}

// classify picks the glyph and layer of one map coordinate.
func (o overlay) classify(m *gridmap.Map, at gridmap.Coordinate) (rune, layer) {
	if o.Cursor != nil && *o.Cursor == at {
		return '@', cursor
	}
	if o.onPath[at] {
		return '*', path
	}
	cost, ok := m.Cost(at)
	if !ok {
		lo, hi, has := m.Bounds()
		if has && at.X >= lo.X && at.X <= hi.X && at.Y >= lo.Y && at.Y <= hi.Y {
			return '#', wall
		}
		return ' ', void
	}
	g, l := costGlyph(cost)
	if o.Range != nil {
		if o.Range.Contains(at) {
			return g, inRange
		}
		return g, outside
	}
	return g, l
}

func costGlyph(cost int) (rune, layer) {
	switch {
	case cost == 0:
		return ',', floor
	case cost == 1:
		return '.', floor
	case cost < 10:
		return rune('0' + cost), rough
	default:
		return '+', rough
	}
}

// Draw paints m with DefaultTheme; see Theme.Draw.
func Draw(c Canvas, m *gridmap.Map, ov Overlay, offset gridmap.Coordinate) {
	DefaultTheme().Draw(c, m, ov, offset)
}

// Draw fills the whole canvas. The canvas cell (0,0) shows map coordinate
// offset; cells outside the map are cleared with the Void style.
func (t Theme) Draw(c Canvas, m *gridmap.Map, ov Overlay, offset gridmap.Coordinate) {
	o := prepare(ov)
	w, h := c.Size()
	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			g, l := o.classify(m, offset.Add(gridmap.C(sx, sy)))
			c.SetContent(sx, sy, g, nil, t.style(l, g))
		}
	}
}

func (t Theme) style(l layer, g rune) tcell.Style {
	switch l {
	case wall:
		return t.Wall
	case floor:
		return t.Floor
	case rough:
		return t.Rough
	case inRange:
		return t.Range
	case outside:
		if g == '.' || g == ',' {
			return t.Floor
		}
		return t.Rough
	case path:
		return t.Path
	case cursor:
		return t.Cursor
	default:
		return t.Void
	}
}

// MaxTextCells bounds the bounding-box area Text will draw.
const MaxTextCells = 1 << 20

// Text renders the map bounds as lines of glyphs, top row first. When ov has
// a Range, walkable cells outside it print as '-'. An empty map renders as "".
// A map whose bounds exceed MaxTextCells renders as a single summary line.
func Text(m *gridmap.Map, ov Overlay) string {
	lo, hi, ok := m.Bounds()
	if !ok {
		return ""
	}
	w, h := hi.X-lo.X+1, hi.Y-lo.Y+1
	// w or h wraps negative when the bounds span most of the int range
	if w <= 0 || h <= 0 || w > MaxTextCells/h {
		return fmt.Sprintf("(map bounds %s..%s too large to draw)\n", lo, hi)
	}
	o := prepare(ov)

	var sb strings.Builder
	sb.Grow((w + 1) * h)
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			g, l := o.classify(m, gridmap.C(x, y))
			if l == outside {
				g = '-'
			}
			sb.WriteRune(g)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
