// Package reach computes every cell of a gridmap.Map reachable from an
// origin within a movement-point budget, the classic "movement range" of a
// turn-based tactics unit.
//
// Moving into a cell costs that cell's Map cost; the origin itself is free
// and always part of the result. A cell is reachable when its cumulative
// cost is at most the budget. Neighbors are expanded in the order
// +x, +y, −x, −y, and the result lists cells in the order they were
// finalized.
//
// Modes (movegrid.Mode):
//
//   - ModeOptimal (default): budget-capped Dijkstra. Costs are relaxed, so
//     every reported cost is the true minimum and the set holds exactly the
//     cells whose minimum cost fits the budget.
//   - ModeCompat: FIFO flood fill where a cell's cost is fixed at first
//     discovery. A cell first reached through an expensive neighbor keeps
//     that cost, and may even be left out, exactly like the legacy
//     engine.
//
// Errors: ErrStartNotWalkable, ErrNegativeBudget, ErrOptionViolation and
// gridmap.ErrNilMap, all wrapping gridmap.ErrInvalidArgument, plus the
// context error when cancelled via WithContext.
package reach
