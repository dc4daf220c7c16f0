// Package query answers movement questions against the current map snapshot.
//
// Service is the single entry point shared by every transport (CLI, MCP,
// WebSocket). Each call loads the snapshot once, so a reload that lands
// while a query runs never mixes two maps in one answer; the response
// carries the snapshot version it was computed on.
//
// Request and response types are JSON-tagged and used on the wire as is.
//
// Errors:
//
//   - ErrNoMap: nothing has been published to the store yet.
//   - anything wrapping gridmap.ErrInvalidArgument: bad input (unknown
//     mode, negative budget, non-walkable origin). Use IsInvalid.
//   - context errors when the caller gives up.
package query
