// Package movegrid is a grid movement-search engine for turn-based maps:
// given a sparse weighted walkability map it finds a shortest path between
// two cells and the set of cells reachable within a movement budget.
//
// 🚀 What is in the box?
//
//	• gridmap/: Coordinate, the immutable sparse cost Map, neighbors, islands
//	• pathfind/: ShortestPathFinder: FindPath / Search
//	• reach/: ReachableRangeFinder: FindRange
//	• pqueue/: stable min-heap frontier shared by both finders
//	• levelmap/: YAML level files (+ tengo cost scripts) and hot reload
//	• snapshot/: copy-on-write holder for the current Map
//	• render/: terminal rendering of maps, paths and ranges (tcell)
//	• query/: request/response service used by the transports
//	• transport/: MCP tools and a websocket query socket
//	• cmd/movegrid: CLI: path, range, view, serve
//
// ✨ Guarantees
//
//   - Finders are pure functions of (map, start, goal|budget, options).
//   - A Map is never mutated; edits produce a new snapshot.
//   - Ties are broken by discovery order, so results are reproducible.
//
// Quick ASCII example (cost 1 everywhere, # is a wall):
//
//	S . .
//	# # .
//	G . .
//
// FindPath(S, G) walks around the wall: S → … → G, 7 cells.
package movegrid
