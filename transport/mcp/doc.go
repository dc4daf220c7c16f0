// Package mcp exposes the movement queries as Model Context Protocol tools.
//
// Tools:
//   - find_path:     cheapest path between two cells (optionally drawn)
//   - find_range:    every cell reachable within a movement budget
//   - describe_cell: cost and walkable neighbors of one cell
//   - map_info:      size, bounds and component count of the current map
//
// Transport modes:
//   - Stdio: ServeStdio, for local MCP clients.
//   - HTTP: Server is an http.Handler accepting JSON-RPC POSTs (mounted at
//     /mcp by `movegrid serve`).
//
// Bad arguments (unknown mode, blocked origin, negative budget) come back
// as tool error results, never as protocol errors.
package mcp
