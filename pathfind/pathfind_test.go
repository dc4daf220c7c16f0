package pathfind_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/movegrid"
	"github.com/katalvlaran/movegrid/gridmap"
	"github.com/katalvlaran/movegrid/pathfind"
)

var modes = []movegrid.Mode{movegrid.ModeOptimal, movegrid.ModeCompat}

// uniformRect returns a w×h map with every cell costing 1.
func uniformRect(w, h int) *gridmap.Map {
	b := gridmap.NewBuilder()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.Set(gridmap.C(x, y), 1)
		}
	}
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}

// randomMap builds a w×h map with ~20% walls and costs in [0,4].
func randomMap(r *rand.Rand, w, h int) *gridmap.Map {
	b := gridmap.NewBuilder()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r.Intn(5) == 0 {
				continue
			}
			b.Set(gridmap.C(x, y), r.Intn(5))
		}
	}
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}

// referenceCost is a plain O(N²) Dijkstra used as an oracle.
func referenceCost(m *gridmap.Map, start, goal gridmap.Coordinate) (int, bool) {
	dist := map[gridmap.Coordinate]int{start: 0}
	done := map[gridmap.Coordinate]bool{}
	cells := m.Coordinates()
	for {
		var best gridmap.Coordinate
		bestD, found := 0, false
		for _, c := range cells {
			d, ok := dist[c]
			if !ok || done[c] {
				continue
			}
			if !found || d < bestD {
				best, bestD, found = c, d, true
			}
		}
		if !found {
			return 0, false
		}
		if best == goal {
			return bestD, true
		}
		done[best] = true
		for _, nb := range m.WalkableNeighbors(best) {
			step, _ := m.Cost(nb)
			if d, ok := dist[nb]; !done[nb] && (!ok || bestD+step < d) {
				dist[nb] = bestD + step
			}
		}
	}
}

//----------------------------------------------------------------------------//
// Validation
//----------------------------------------------------------------------------//

func TestFindPath_NilMap(t *testing.T) {
	p, err := pathfind.FindPath(nil, gridmap.C(0, 0), gridmap.C(1, 0))
	assert.Nil(t, p)
	assert.ErrorIs(t, err, gridmap.ErrNilMap)
}

func TestFindPath_StartNotWalkable(t *testing.T) {
	m := gridmap.MustNew(map[gridmap.Coordinate]int{gridmap.C(1, 0): 1})
	for _, mode := range modes {
		p, err := pathfind.FindPath(m, gridmap.C(0, 0), gridmap.C(1, 0), pathfind.WithMode(mode))
		assert.Nil(t, p)
		assert.ErrorIs(t, err, pathfind.ErrStartNotWalkable)
		assert.ErrorIs(t, err, gridmap.ErrInvalidArgument)
	}
}

func TestFindPath_BadMode(t *testing.T) {
	m := uniformRect(2, 1)
	_, err := pathfind.FindPath(m, gridmap.C(0, 0), gridmap.C(1, 0), pathfind.WithMode(movegrid.Mode(42)))
	assert.ErrorIs(t, err, pathfind.ErrOptionViolation)
}

//----------------------------------------------------------------------------//
// Concrete scenarios
//----------------------------------------------------------------------------//

// TestFindPath_StraightLine walks a single row.
func TestFindPath_StraightLine(t *testing.T) {
	m := gridmap.MustNew(map[gridmap.Coordinate]int{
		gridmap.C(0, 0): 1, gridmap.C(1, 0): 1, gridmap.C(2, 0): 1,
	})
	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			p, err := pathfind.FindPath(m, gridmap.C(0, 0), gridmap.C(2, 0), pathfind.WithMode(mode))
			require.NoError(t, err)
			assert.Equal(t, pathfind.Path{gridmap.C(0, 0), gridmap.C(1, 0), gridmap.C(2, 0)}, p)
		})
	}
}

// TestFindPath_GoalAbsent: the goal is not in the map.
func TestFindPath_GoalAbsent(t *testing.T) {
	m := gridmap.MustNew(map[gridmap.Coordinate]int{
		gridmap.C(0, 0): 1, gridmap.C(1, 0): 1,
	})
	for _, mode := range modes {
		res, err := pathfind.Search(m, gridmap.C(0, 0), gridmap.C(2, 0), pathfind.WithMode(mode))
		require.NoError(t, err)
		assert.Empty(t, res.Path)
		assert.False(t, res.Found)
	}
}

// TestFindPath_StartIsGoal returns the one-cell path at cost 0.
func TestFindPath_StartIsGoal(t *testing.T) {
	m := uniformRect(3, 3)
	for _, mode := range modes {
		res, err := pathfind.Search(m, gridmap.C(1, 1), gridmap.C(1, 1), pathfind.WithMode(mode))
		require.NoError(t, err)
		assert.Equal(t, pathfind.Path{gridmap.C(1, 1)}, res.Path)
		assert.Equal(t, 0, res.Cost)
		assert.Equal(t, 1, res.Expanded)
		assert.True(t, res.Found)
	}
}

func TestFindPath_Unreachable(t *testing.T) {
	m := gridmap.MustNew(map[gridmap.Coordinate]int{
		gridmap.C(0, 0): 1, gridmap.C(1, 0): 1,
		gridmap.C(5, 5): 1,
	})
	for _, mode := range modes {
		res, err := pathfind.Search(m, gridmap.C(0, 0), gridmap.C(5, 5), pathfind.WithMode(mode))
		require.NoError(t, err)
		assert.Empty(t, res.Path)
		assert.False(t, res.Found)
		assert.Equal(t, 2, res.Expanded, "whole component explored before giving up")
	}
}

// TestFindPath_FarApartCells keeps allocation proportional to the map, not
// to the distance between start and goal.
func TestFindPath_FarApartCells(t *testing.T) {
	far := gridmap.C(1<<40, 0)
	m := gridmap.MustNew(map[gridmap.Coordinate]int{
		gridmap.C(0, 0): 1, gridmap.C(1, 0): 1, far: 1,
	})
	for _, mode := range modes {
		res, err := pathfind.Search(m, gridmap.C(0, 0), far, pathfind.WithMode(mode))
		require.NoError(t, err)
		assert.Empty(t, res.Path)
		assert.False(t, res.Found)
		assert.Equal(t, 2, res.Expanded)
	}
}

// TestFindPath_TieBreakPrefersPlusX checks that equal-cost alternatives are
// resolved by discovery order (+x before +y).
func TestFindPath_TieBreakPrefersPlusX(t *testing.T) {
	m := uniformRect(2, 2)
	for _, mode := range modes {
		p, err := pathfind.FindPath(m, gridmap.C(0, 0), gridmap.C(1, 1), pathfind.WithMode(mode))
		require.NoError(t, err)
		assert.Equal(t, pathfind.Path{gridmap.C(0, 0), gridmap.C(1, 0), gridmap.C(1, 1)}, p, mode.String())
	}
}

// TestFindPath_AroundWall routes around a wall in both modes.
func TestFindPath_AroundWall(t *testing.T) {
	m, err := gridmap.FromRows([][]int{
		{1, 1, 1},
		{-1, -1, 1},
		{1, 1, 1},
	}, gridmap.DefaultRowOptions())
	require.NoError(t, err)
	want := pathfind.Path{
		gridmap.C(0, 0), gridmap.C(1, 0), gridmap.C(2, 0),
		gridmap.C(2, 1),
		gridmap.C(2, 2), gridmap.C(1, 2), gridmap.C(0, 2),
	}
	for _, mode := range modes {
		p, err := pathfind.FindPath(m, gridmap.C(0, 0), gridmap.C(0, 2), pathfind.WithMode(mode))
		require.NoError(t, err)
		assert.Equal(t, want, p, mode.String())
	}
}

//----------------------------------------------------------------------------//
// Mode discrepancy on uneven costs
//----------------------------------------------------------------------------//

// unevenCorridor: a costly straight row and a cheap detour one row below.
//
//	y=0:  1 3 3 3 1
//	y=1:  1 1 1 1 1
func unevenCorridor(t *testing.T) *gridmap.Map {
	t.Helper()
	m, err := gridmap.FromRows([][]int{
		{1, 3, 3, 3, 1},
		{1, 1, 1, 1, 1},
	}, gridmap.DefaultRowOptions())
	require.NoError(t, err)
	return m
}

// TestSearch_CompatIsNotOptimalOnUnevenCosts documents the legacy
// behavior: the doubled x-distance term pulls the search along the costly
// row and first-discovered costs are never relaxed.
func TestSearch_CompatIsNotOptimalOnUnevenCosts(t *testing.T) {
	m := unevenCorridor(t)
	res, err := pathfind.Search(m, gridmap.C(0, 0), gridmap.C(4, 0), pathfind.WithMode(movegrid.ModeCompat))
	require.NoError(t, err)
	assert.Equal(t, pathfind.Path{
		gridmap.C(0, 0), gridmap.C(1, 0), gridmap.C(2, 0), gridmap.C(3, 0), gridmap.C(4, 0),
	}, res.Path)
	assert.Equal(t, 10, res.Cost)
}

// TestSearch_OptimalTakesCheapDetour is the counterpart: the admissible
// heuristic finds the cost-6 detour.
func TestSearch_OptimalTakesCheapDetour(t *testing.T) {
	m := unevenCorridor(t)
	res, err := pathfind.Search(m, gridmap.C(0, 0), gridmap.C(4, 0))
	require.NoError(t, err)
	assert.Equal(t, pathfind.Path{
		gridmap.C(0, 0), gridmap.C(0, 1), gridmap.C(1, 1), gridmap.C(2, 1),
		gridmap.C(3, 1), gridmap.C(4, 1), gridmap.C(4, 0),
	}, res.Path)
	assert.Equal(t, 6, res.Cost)
	cost, ok := res.Path.Cost(m)
	require.True(t, ok)
	assert.Equal(t, res.Cost, cost)
}

//----------------------------------------------------------------------------//
// Properties
//----------------------------------------------------------------------------//

// TestFindPath_UniformRectangleLength: on an obstacle-free uniform map the
// path has Manhattan(start, goal)+1 cells.
func TestFindPath_UniformRectangleLength(t *testing.T) {
	m := uniformRect(7, 5)
	cells := m.Coordinates()
	for _, s := range cells {
		for _, g := range cells {
			p, err := pathfind.FindPath(m, s, g)
			require.NoError(t, err)
			require.Len(t, p, gridmap.Manhattan(s, g)+1, "%s → %s", s, g)
			assert.True(t, p.Valid(m))
			assert.Equal(t, s, p[0])
			assert.Equal(t, g, p[len(p)-1])
		}
	}
}

// TestSearch_OptimalMatchesReference compares costs with an oracle on
// random maps that include zero-cost cells.
func TestSearch_OptimalMatchesReference(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 40; round++ {
		m := randomMap(r, 8, 8)
		cells := m.Coordinates()
		if len(cells) < 2 {
			continue
		}
		s := cells[r.Intn(len(cells))]
		g := cells[r.Intn(len(cells))]

		want, reachable := referenceCost(m, s, g)
		res, err := pathfind.Search(m, s, g)
		require.NoError(t, err)
		require.Equal(t, reachable, res.Found, "round %d %s → %s", round, s, g)
		if !reachable {
			assert.Empty(t, res.Path)
			continue
		}
		assert.Equal(t, want, res.Cost, "round %d %s → %s", round, s, g)
		assert.True(t, res.Path.Valid(m))
		cost, _ := res.Path.Cost(m)
		assert.Equal(t, res.Cost, cost)
	}
}

// TestSearch_CompatPathsAreValid: compat paths may be costlier but must
// still be walkable, connected and found whenever a path exists.
func TestSearch_CompatPathsAreValid(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for round := 0; round < 40; round++ {
		m := randomMap(r, 8, 8)
		cells := m.Coordinates()
		if len(cells) < 2 {
			continue
		}
		s := cells[r.Intn(len(cells))]
		g := cells[r.Intn(len(cells))]

		want, reachable := referenceCost(m, s, g)
		res, err := pathfind.Search(m, s, g, pathfind.WithMode(movegrid.ModeCompat))
		require.NoError(t, err)
		require.Equal(t, reachable, res.Found)
		if reachable {
			assert.True(t, res.Path.Valid(m))
			assert.GreaterOrEqual(t, res.Cost, want)
		}
	}
}

func TestFindPath_Deterministic(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	m := randomMap(r, 12, 12)
	cells := m.Coordinates()
	s, g := cells[0], cells[len(cells)-1]
	for _, mode := range modes {
		a, err := pathfind.FindPath(m, s, g, pathfind.WithMode(mode))
		require.NoError(t, err)
		b, err := pathfind.FindPath(m, s, g, pathfind.WithMode(mode))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestFindPath_DoesNotMutateMap(t *testing.T) {
	m := uniformRect(4, 4)
	before := m.Coordinates()
	_, err := pathfind.FindPath(m, gridmap.C(0, 0), gridmap.C(3, 3))
	require.NoError(t, err)
	assert.Equal(t, before, m.Coordinates())
}

//----------------------------------------------------------------------------//
// Hooks and cancellation
//----------------------------------------------------------------------------//

func TestSearch_OnExpand(t *testing.T) {
	m := uniformRect(3, 1)
	var seen []gridmap.Coordinate
	var costs []int
	res, err := pathfind.Search(m, gridmap.C(0, 0), gridmap.C(2, 0),
		pathfind.WithOnExpand(func(c gridmap.Coordinate, cost int) {
			seen = append(seen, c)
			costs = append(costs, cost)
		}))
	require.NoError(t, err)
	assert.Equal(t, res.Expanded, len(seen))
	assert.Equal(t, []gridmap.Coordinate{gridmap.C(0, 0), gridmap.C(1, 0), gridmap.C(2, 0)}, seen)
	assert.Equal(t, []int{0, 1, 2}, costs)
}

func TestSearch_Cancelled(t *testing.T) {
	m := uniformRect(10, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := pathfind.Search(m, gridmap.C(0, 0), gridmap.C(9, 9), pathfind.WithContext(ctx))
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, gridmap.ErrInvalidArgument)
}

func TestSearch_CancelledMidway(t *testing.T) {
	m := uniformRect(20, 20)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	n := 0
	_, err := pathfind.Search(m, gridmap.C(0, 0), gridmap.C(19, 19),
		pathfind.WithContext(ctx),
		pathfind.WithOnExpand(func(gridmap.Coordinate, int) {
			n++
			if n == 5 {
				cancel()
			}
		}))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 5, n)
}

//----------------------------------------------------------------------------//
// Path helpers
//----------------------------------------------------------------------------//

func TestPath_Helpers(t *testing.T) {
	m := gridmap.MustNew(map[gridmap.Coordinate]int{
		gridmap.C(0, 0): 5, gridmap.C(1, 0): 2, gridmap.C(1, 1): 3,
	})
	p := pathfind.Path{gridmap.C(0, 0), gridmap.C(1, 0), gridmap.C(1, 1)}
	cost, ok := p.Cost(m)
	assert.True(t, ok)
	assert.Equal(t, 5, cost, "start cell is free")
	assert.True(t, p.Valid(m))

	jump := pathfind.Path{gridmap.C(0, 0), gridmap.C(1, 1)}
	assert.False(t, jump.Valid(m))

	off := pathfind.Path{gridmap.C(0, 0), gridmap.C(0, 1)}
	assert.False(t, off.Valid(m))
	_, ok = off.Cost(m)
	assert.False(t, ok)

	assert.True(t, pathfind.Path{}.Valid(m))
}
