package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/movegrid/gridmap"
	"github.com/katalvlaran/movegrid/query"
	"github.com/katalvlaran/movegrid/snapshot"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	m, err := gridmap.FromRows([][]int{
		{1, 3, 3, 3, 1},
		{1, 1, 1, 1, 1},
	}, gridmap.DefaultRowOptions())
	require.NoError(t, err)
	return NewServer(query.New(snapshot.New(m)), nil)
}

func call(name string, arguments map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: arguments},
	}
}

func text(t *testing.T, res *mcp.CallToolResult, i int) string {
	t.Helper()
	require.Greater(t, len(res.Content), i)
	tc, ok := res.Content[i].(mcp.TextContent)
	require.True(t, ok, "content %d is %T", i, res.Content[i])
	return tc.Text
}

func TestFindPath(t *testing.T) {
	s := newTestServer(t)
	res, err := s.handleFindPath(context.Background(), call("find_path", map[string]interface{}{
		"start_x": float64(0), "start_y": float64(0),
		"goal_x": float64(4), "goal_y": float64(0),
		"render": true,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var body query.PathResponse
	require.NoError(t, json.Unmarshal([]byte(text(t, res, 0)), &body))
	assert.True(t, body.Found)
	assert.Equal(t, 6, body.Cost)
	assert.Equal(t, "optimal", body.Mode)
	assert.Empty(t, body.Text)
	assert.Equal(t, "*333*\n*****\n", text(t, res, 1))
}

func TestFindPath_BadArguments(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"Missing", map[string]interface{}{"start_x": float64(0)}, "missing required argument start_y"},
		{"Fraction", map[string]interface{}{"start_x": 0.5, "start_y": float64(0), "goal_x": float64(0), "goal_y": float64(0)}, "must be an integer"},
		{"Blocked", map[string]interface{}{"start_x": float64(9), "start_y": float64(9), "goal_x": float64(0), "goal_y": float64(0)}, "start cell is not walkable"},
		{"Mode", map[string]interface{}{"start_x": float64(0), "start_y": float64(0), "goal_x": float64(0), "goal_y": float64(0), "mode": "fast"}, "unknown mode"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := s.handleFindPath(context.Background(), call("find_path", tc.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.Contains(t, text(t, res, 0), tc.want)
		})
	}
}

func TestFindRange(t *testing.T) {
	s := newTestServer(t)
	res, err := s.handleFindRange(context.Background(), call("find_range", map[string]interface{}{
		"x": float64(0), "y": float64(0), "budget": float64(2), "mode": "compat",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)

	var body query.RangeResponse
	require.NoError(t, json.Unmarshal([]byte(text(t, res, 0)), &body))
	assert.Equal(t, 3, body.Count)
	assert.Equal(t, "compat", body.Mode)

	res, err = s.handleFindRange(context.Background(), call("find_range", map[string]interface{}{
		"x": float64(0), "y": float64(0), "budget": float64(-1),
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestDescribeCellAndMapInfo(t *testing.T) {
	s := newTestServer(t)
	res, err := s.handleDescribeCell(context.Background(), call("describe_cell", map[string]interface{}{
		"x": float64(1), "y": float64(0),
	}))
	require.NoError(t, err)
	var cell query.CellResponse
	require.NoError(t, json.Unmarshal([]byte(text(t, res, 0)), &cell))
	assert.True(t, cell.Walkable)
	assert.Equal(t, 3, cell.Cost)
	assert.Len(t, cell.Neighbors, 3)

	res, err = s.handleMapInfo(context.Background(), call("map_info", nil))
	require.NoError(t, err)
	var info query.InfoResponse
	require.NoError(t, json.Unmarshal([]byte(text(t, res, 0)), &info))
	assert.Equal(t, 10, info.Cells)
	assert.Equal(t, 1, info.Components)
}

func TestNoMapIsToolError(t *testing.T) {
	s := NewServer(query.New(snapshot.New(nil)), nil)
	res, err := s.handleMapInfo(context.Background(), call("map_info", nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res, 0), "no map loaded")
}

func TestServeHTTP(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Post(srv.URL, "application/json",
		strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var rpc struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rpc))
	var names []string
	for _, tool := range rpc.Result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"map_info", "describe_cell", "find_path", "find_range"}, names)
}
