// Package levelmap loads grid maps from YAML level files.
//
// A level is a block of text rows plus a legend that turns each glyph into
// an entry cost:
//
//	name: ford
//	origin: {x: 0, y: 0}
//	legend: {".": 1, "~": 3}
//	walls: "#"
//	rows:
//	  - "..~"
//	  - ".#."
//
// rows[0][0] sits at origin; x grows to the right, y grows downward. Wall
// glyphs and spaces produce no cell at all. Every other glyph must appear in
// the legend.
//
// An optional cost_script (tengo) runs once per walkable glyph with the
// globals tile (string), x, y and base (legend cost) set, and must leave the
// final cost in a global named cost. A negative or undefined cost removes
// the cell:
//
//	cost_script: |
//	  cost := base
//	  if tile == "~" && x > 4 { cost = base * 2 }
//
// Watch keeps a snapshot.Store in sync with a level file on disk.
package levelmap
