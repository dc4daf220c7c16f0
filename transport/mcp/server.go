package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/katalvlaran/movegrid/query"
)

// Version is reported to MCP clients during initialization.
const Version = "1.0.0"

// Server wraps an MCP server whose tools call a query.Service.
type Server struct {
	svc       *query.Service
	log       *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer registers every tool against svc. A nil logger discards output.
func NewServer(svc *query.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{svc: svc, log: logger.With("transport", "mcp")}
	s.mcpServer = server.NewMCPServer(
		"movegrid",
		Version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`movegrid answers movement questions on a tile map.

Coordinates are integer x (right) and y (down). Entering a cell costs that
cell's cost; the starting cell is free. Movement is 4-directional.

TOOLS:
- map_info: map size, bounds and number of disconnected regions
- describe_cell: cost and walkable neighbors of one cell
- find_path: cheapest path between two cells; set render=true for a drawing
- find_range: all cells reachable from an origin within a budget

mode is "optimal" (default) or "compat" (legacy behavior, may be costlier).`),
	)
	s.registerTools()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio serves MCP over stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	s.log.Info("serving MCP on stdio")
	return server.ServeStdio(s.mcpServer)
}

// ServeHTTP handles one JSON-RPC message per POST request.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	response := s.mcpServer.HandleMessage(r.Context(), body)

	w.Header().Set("Content-Type", "application/json")
	data, err := json.Marshal(response)
	if err != nil {
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(data)
}

func point(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": desc}
}

var modeProperty = map[string]interface{}{
	"type":        "string",
	"enum":        []string{"optimal", "compat"},
	"description": "Search mode (default optimal)",
}

var renderProperty = map[string]interface{}{
	"type":        "boolean",
	"description": "Include an ASCII drawing of the result",
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "map_info",
		Description: "Summarize the current map: cell count, bounds, cheapest cost, connected regions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleMapInfo)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Describe one cell: walkable or not, entry cost, walkable neighbors",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"x": point("Cell x"),
				"y": point("Cell y"),
			},
			Required: []string{"x", "y"},
		},
	}, s.handleDescribeCell)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "find_path",
		Description: "Find the cheapest 4-directional path between two cells",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"start_x": point("Start x"),
				"start_y": point("Start y"),
				"goal_x":  point("Goal x"),
				"goal_y":  point("Goal y"),
				"mode":    modeProperty,
				"render":  renderProperty,
			},
			Required: []string{"start_x", "start_y", "goal_x", "goal_y"},
		},
	}, s.handleFindPath)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "find_range",
		Description: "List every cell reachable from an origin without spending more than budget",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"x":      point("Origin x"),
				"y":      point("Origin y"),
				"budget": point("Movement budget (>= 0)"),
				"mode":   modeProperty,
				"render": renderProperty,
			},
			Required: []string{"x", "y", "budget"},
		},
	}, s.handleFindRange)
}

// args unpacks tool arguments. JSON numbers arrive as float64.
type args map[string]interface{}

func argsOf(request mcp.CallToolRequest) args {
	m, _ := request.Params.Arguments.(map[string]interface{})
	return m
}

func (a args) integer(key string) (int, error) {
	switch v := a[key].(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%s must be an integer, got %v", key, v)
		}
		return int(v), nil
	case int:
		return v, nil
	case nil:
		return 0, fmt.Errorf("missing required argument %s", key)
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", key, v)
	}
}

func (a args) integers(keys ...string) ([]int, error) {
	out := make([]int, len(keys))
	for i, k := range keys {
		v, err := a.integer(k)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (a args) str(key string) string {
	s, _ := a[key].(string)
	return s
}

func (a args) flag(key string) bool {
	b, _ := a[key].(bool)
	return b
}

func (s *Server) handleMapInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info, err := s.svc.Info()
	return s.result("map_info", info, "", err)
}

func (s *Server) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := argsOf(request).integers("x", "y")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cell, err := s.svc.Cell(query.Point{X: v[0], Y: v[1]})
	return s.result("describe_cell", cell, "", err)
}

func (s *Server) handleFindPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(request)
	v, err := a.integers("start_x", "start_y", "goal_x", "goal_y")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.svc.Path(ctx, query.PathRequest{
		Start: query.Point{X: v[0], Y: v[1]},
		Goal:  query.Point{X: v[2], Y: v[3]},
		Mode:  a.str("mode"),
		Draw:  a.flag("render"),
	})
	if err != nil {
		return s.result("find_path", nil, "", err)
	}
	text := res.Text
	res.Text = ""
	return s.result("find_path", res, text, nil)
}

func (s *Server) handleFindRange(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := argsOf(request)
	v, err := a.integers("x", "y", "budget")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.svc.Range(ctx, query.RangeRequest{
		Origin: query.Point{X: v[0], Y: v[1]},
		Budget: v[2],
		Mode:   a.str("mode"),
		Draw:   a.flag("render"),
	})
	if err != nil {
		return s.result("find_range", nil, "", err)
	}
	text := res.Text
	res.Text = ""
	return s.result("find_range", res, text, nil)
}

// result turns a service answer into a tool result: the JSON body, then the
// drawing (if any) as a second text block. Errors become tool errors.
func (s *Server) result(tool string, body interface{}, drawing string, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		if !query.IsInvalid(err) {
			s.log.Warn("tool failed", "tool", tool, "err", err)
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal %s result: %w", tool, err)
	}
	res := mcp.NewToolResultText(string(data))
	if drawing != "" {
		res.Content = append(res.Content, mcp.NewTextContent(drawing))
	}
	return res, nil
}
