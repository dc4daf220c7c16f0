package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/katalvlaran/movegrid/query"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum request size allowed from peer.
	maxMessageSize = 4096
)

// Request is one query frame. Only the fields of the chosen op are read.
type Request struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Op     string          `json:"op"`
	Start  query.Point     `json:"start"`
	Goal   query.Point     `json:"goal"`
	Origin query.Point     `json:"origin"`
	At     query.Point     `json:"at"`
	Budget int             `json:"budget"`
	Mode   string          `json:"mode,omitempty"`
	Render bool            `json:"render,omitempty"`
}

// Response answers one Request.
type Response struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Op     string          `json:"op"`
	Result interface{}     `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// ErrUnknownOp is reported for a request whose op is not path, range, cell or info.
var ErrUnknownOp = errors.New("websocket: unknown op")

// Handler upgrades HTTP requests and serves queries on each connection.
type Handler struct {
	svc      *query.Service
	log      *slog.Logger
	upgrader websocket.Upgrader
}

// NewHandler returns a Handler answering from svc. A nil logger discards output.
func NewHandler(svc *query.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{
		svc: svc,
		log: logger.With("transport", "websocket"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// queries are read-only; any origin may ask
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and blocks until the peer leaves.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	log := h.log.With("remote", r.RemoteAddr)
	log.Debug("client connected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go ping(ctx, conn)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("read failed", "err", err)
			}
			log.Debug("client disconnected")
			return
		}

		resp := h.answer(ctx, data)
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(resp); err != nil {
			log.Warn("write failed", "err", err)
			return
		}
	}
}

// ping keeps idle connections alive until ctx ends. WriteControl may run
// concurrently with the response writer.
func ping(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// answer decodes one frame and runs it against the service.
func (h *Handler) answer(ctx context.Context, data []byte) Response {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Response{Error: fmt.Sprintf("bad request: %v", err)}
	}

	resp := Response{ID: req.ID, Op: req.Op}
	var (
		result interface{}
		err    error
	)
	switch req.Op {
	case "path":
		result, err = h.svc.Path(ctx, query.PathRequest{Start: req.Start, Goal: req.Goal, Mode: req.Mode, Draw: req.Render})
	case "range":
		result, err = h.svc.Range(ctx, query.RangeRequest{Origin: req.Origin, Budget: req.Budget, Mode: req.Mode, Draw: req.Render})
	case "cell":
		result, err = h.svc.Cell(req.At)
	case "info":
		result, err = h.svc.Info()
	default:
		err = fmt.Errorf("%w %q", ErrUnknownOp, req.Op)
	}
	if err != nil {
		if !query.IsInvalid(err) && !errors.Is(err, ErrUnknownOp) {
			h.log.Warn("query failed", "op", req.Op, "err", err)
		}
		resp.Error = err.Error()
		return resp
	}
	resp.Result = result
	return resp
}
