// Package pathfind finds a minimum-cost 4-directional path between two cells
// of a gridmap.Map.
//
// Overview:
//
//   - Best-first search over two disjoint collections: an open frontier of
//     discovered cells and a closed set of finalized ones.
//   - Every search node lives in a per-call arena; predecessors are arena
//     indices, so the whole search state is dropped in one piece when the
//     call returns and nothing escapes into the Map.
//   - Moving into a cell costs that cell's Map cost. The start cell is free.
//
// Selection rule:
//
//   - The open node with the lowest score is expanded next; among equal
//     scores the one discovered first wins. The frontier is a stable heap
//     (see package pqueue), so the rule holds without a linear scan.
//   - Neighbors are expanded in the order +x, +y, −x, −y.
//
// Modes (movegrid.Mode):
//
//   - ModeOptimal (default): score = cost + Manhattan(cell, goal) × MinCost.
//     The heuristic is admissible and consistent, and cheaper rediscoveries
//     relax the node, so the returned path has minimum total cost.
//   - ModeCompat: score = cost + |Δx start| + |Δy start| + 2·|Δx goal|,
//     and a cell keeps the cost and predecessor of its first discovery. This
//     reproduces the legacy engine exactly, including its non-optimal
//     paths on maps with uneven costs.
//
// Error handling:
//
//   - ErrNilMap (gridmap):   m is nil.
//   - ErrStartNotWalkable:   start is not a key of m.
//   - ErrOptionViolation:    an Option was given an invalid value.
//   - ctx.Err():             the context passed via WithContext was cancelled.
//
// All of the above except the context error wrap gridmap.ErrInvalidArgument.
// An absent or unreachable goal is not an error: FindPath returns an empty
// Path and a nil error.
//
// Complexity:
//
//   - Time:  O(N log N), N = cells discovered.
//   - Space: O(N) for the arena, index and heap.
//
// Thread safety:
//
//   - Each call allocates its own state. Concurrent calls on the same Map are
//     safe because a Map never changes.
package pathfind
