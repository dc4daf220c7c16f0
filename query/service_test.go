package query_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/movegrid/gridmap"
	"github.com/katalvlaran/movegrid/query"
	"github.com/katalvlaran/movegrid/snapshot"
)

// corridor is the uneven map on which the two modes disagree:
//
//	1 3 3 3 1
//	1 1 1 1 1
func corridor(t *testing.T) *query.Service {
	t.Helper()
	m, err := gridmap.FromRows([][]int{
		{1, 3, 3, 3, 1},
		{1, 1, 1, 1, 1},
	}, gridmap.DefaultRowOptions())
	require.NoError(t, err)
	return query.New(snapshot.New(m))
}

func TestService_NoMap(t *testing.T) {
	svc := query.New(snapshot.New(nil))
	_, err := svc.Path(context.Background(), query.PathRequest{})
	assert.ErrorIs(t, err, query.ErrNoMap)
	_, err = svc.Range(context.Background(), query.RangeRequest{})
	assert.ErrorIs(t, err, query.ErrNoMap)
	_, err = svc.Cell(query.Point{})
	assert.ErrorIs(t, err, query.ErrNoMap)
	_, err = svc.Info()
	assert.ErrorIs(t, err, query.ErrNoMap)
	assert.False(t, query.IsInvalid(err))
}

func TestService_PathModes(t *testing.T) {
	svc := corridor(t)
	ctx := context.Background()

	opt, err := svc.Path(ctx, query.PathRequest{Start: query.Point{}, Goal: query.Point{X: 4}})
	require.NoError(t, err)
	assert.True(t, opt.Found)
	assert.Equal(t, 6, opt.Cost)
	assert.Equal(t, 6, opt.Steps)
	assert.Equal(t, "optimal", opt.Mode)
	assert.Equal(t, uint64(1), opt.Version)
	assert.Equal(t, query.Point{}, opt.Path[0])
	assert.Equal(t, query.Point{X: 4}, opt.Path[len(opt.Path)-1])

	compat, err := svc.Path(ctx, query.PathRequest{Goal: query.Point{X: 4}, Mode: "compat", Draw: true})
	require.NoError(t, err)
	assert.Equal(t, 10, compat.Cost)
	assert.Equal(t, 4, compat.Steps)
	assert.Equal(t, "*****\n.....\n", compat.Text)
}

func TestService_PathNotFoundAndInvalid(t *testing.T) {
	svc := corridor(t)
	ctx := context.Background()

	res, err := svc.Path(ctx, query.PathRequest{Goal: query.Point{X: 9, Y: 9}})
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Empty(t, res.Path)
	assert.Equal(t, 0, res.Steps)

	_, err = svc.Path(ctx, query.PathRequest{Start: query.Point{X: -1}})
	assert.True(t, query.IsInvalid(err))

	_, err = svc.Path(ctx, query.PathRequest{Mode: "fastest"})
	assert.True(t, query.IsInvalid(err))
}

func TestService_Range(t *testing.T) {
	svc := corridor(t)
	res, err := svc.Range(context.Background(), query.RangeRequest{Budget: 2, Draw: true})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, []query.RangeCell{
		{X: 0, Y: 0, Cost: 0},
		{X: 0, Y: 1, Cost: 1},
		{X: 1, Y: 1, Cost: 2},
	}, res.Cells)
	assert.Equal(t, ".----\n..---\n", res.Text)

	_, err = svc.Range(context.Background(), query.RangeRequest{Budget: -1})
	assert.True(t, query.IsInvalid(err))
}

func TestService_CellAndInfo(t *testing.T) {
	svc := corridor(t)

	cell, err := svc.Cell(query.Point{X: 1, Y: 0})
	require.NoError(t, err)
	assert.True(t, cell.Walkable)
	assert.Equal(t, 3, cell.Cost)
	assert.Equal(t, []query.Point{{X: 2, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}}, cell.Neighbors)

	cell, err = svc.Cell(query.Point{X: 7})
	require.NoError(t, err)
	assert.False(t, cell.Walkable)
	assert.Empty(t, cell.Neighbors)

	info, err := svc.Info()
	require.NoError(t, err)
	assert.Equal(t, query.InfoResponse{
		Cells: 10, MinCost: 1, Min: query.Point{}, Max: query.Point{X: 4, Y: 1},
		Components: 1, Version: 1,
	}, *info)
}

func TestService_SeesNewSnapshot(t *testing.T) {
	svc := corridor(t)
	_, err := svc.Store().Update(func(cur *gridmap.Map) (*gridmap.Map, error) {
		return cur.Without(gridmap.C(2, 1)).Without(gridmap.C(2, 0)), nil
	})
	require.NoError(t, err)

	res, err := svc.Path(context.Background(), query.PathRequest{Goal: query.Point{X: 4}})
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Equal(t, uint64(2), res.Version)

	info, err := svc.Info()
	require.NoError(t, err)
	assert.Equal(t, 2, info.Components)
}
