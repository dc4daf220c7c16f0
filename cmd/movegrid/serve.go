package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/movegrid/levelmap"
	"github.com/katalvlaran/movegrid/query"
	mcptransport "github.com/katalvlaran/movegrid/transport/mcp"
	wstransport "github.com/katalvlaran/movegrid/transport/websocket"
)

func (a *app) serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve queries over HTTP (REST, /ws, /mcp) or MCP stdio",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: ":8080", Usage: "listen address", Sources: cli.EnvVars("MOVEGRID_ADDR")},
			&cli.BoolFlag{Name: "stdio", Usage: "serve MCP on stdin/stdout instead of HTTP", Sources: cli.EnvVars("MOVEGRID_STDIO")},
			&cli.BoolFlag{Name: "watch", Usage: "reload the level when the file changes", Sources: cli.EnvVars("MOVEGRID_WATCH")},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			store, path, err := a.loadStore(cmd)
			if err != nil {
				return err
			}
			svc := query.New(store)

			if cmd.Bool("watch") {
				go func() {
					if err := levelmap.Watch(ctx, path, store, levelmap.WithLogger(a.log)); err != nil {
						a.log.Error("level watch stopped", "err", err)
					}
				}()
			}

			mcpServer := mcptransport.NewServer(svc, a.log)
			if cmd.Bool("stdio") {
				return mcpServer.ServeStdio()
			}
			return a.serveHTTP(ctx, cmd.String("addr"), newRouter(svc, mcpServer, wstransport.NewHandler(svc, a.log), a.log))
		},
	}
}

// serveHTTP runs srv until ctx is cancelled, then drains it.
func (a *app) serveHTTP(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newRouter mounts the REST API, the WebSocket endpoint and the MCP endpoint.
func newRouter(svc *query.Service, mcpHandler, wsHandler http.Handler, log *slog.Logger) *mux.Router {
	r := mux.NewRouter()
	respond := func(w http.ResponseWriter, v interface{}, err error) {
		if err == nil {
			respondJSON(w, http.StatusOK, v)
			return
		}
		status := statusOf(err)
		if status == http.StatusInternalServerError {
			log.Error("query failed", "err", err)
		}
		respondError(w, status, err.Error())
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, v := svc.Store().Load()
		respondJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "version": v})
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/info", func(w http.ResponseWriter, _ *http.Request) {
		info, err := svc.Info()
		respond(w, info, err)
	}).Methods("GET")

	api.HandleFunc("/cells/{x}/{y}", func(w http.ResponseWriter, req *http.Request) {
		vars := mux.Vars(req)
		x, errX := strconv.Atoi(vars["x"])
		y, errY := strconv.Atoi(vars["y"])
		if errX != nil || errY != nil {
			respondError(w, http.StatusBadRequest, "cell coordinates must be integers")
			return
		}
		cell, err := svc.Cell(query.Point{X: x, Y: y})
		respond(w, cell, err)
	}).Methods("GET")

	api.HandleFunc("/path", func(w http.ResponseWriter, req *http.Request) {
		var body query.PathRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		res, err := svc.Path(req.Context(), body)
		respond(w, res, err)
	}).Methods("POST")

	api.HandleFunc("/range", func(w http.ResponseWriter, req *http.Request) {
		var body query.RangeRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		res, err := svc.Range(req.Context(), body)
		respond(w, res, err)
	}).Methods("POST")

	r.Handle("/ws", wsHandler)
	r.Handle("/mcp", mcpHandler)

	return r
}

// statusOf maps a query error to an HTTP status.
func statusOf(err error) int {
	switch {
	case query.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, query.ErrNoMap):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
