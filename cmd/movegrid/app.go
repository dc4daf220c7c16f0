package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/movegrid/gridmap"
	"github.com/katalvlaran/movegrid/levelmap"
	"github.com/katalvlaran/movegrid/snapshot"
)

// app carries state shared by every subcommand once the root Before ran.
type app struct {
	log    *slog.Logger
	stderr io.Writer
}

func newApp() *cli.Command {
	a := &app{stderr: os.Stderr}
	return &cli.Command{
		Name:  "movegrid",
		Usage: "shortest paths and reachable ranges on tile maps",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "level",
				Aliases: []string{"l"},
				Usage:   "YAML level file",
				Sources: cli.EnvVars("MOVEGRID_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "mode",
				Usage:   "search mode: optimal or compat",
				Value:   "optimal",
				Sources: cli.EnvVars("MOVEGRID_MODE"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				Value:   "info",
				Sources: cli.EnvVars("MOVEGRID_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "text or json",
				Value:   "text",
				Sources: cli.EnvVars("MOVEGRID_LOG_FORMAT"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger, err := newLogger(a.stderr, cmd.String("log-level"), cmd.String("log-format"))
			if err != nil {
				return ctx, err
			}
			a.log = logger
			return ctx, nil
		},
		Commands: []*cli.Command{
			a.pathCommand(),
			a.rangeCommand(),
			a.viewCommand(),
			a.serveCommand(),
		},
	}
}

// newLogger builds the process logger. Logs always go to w (stderr), so
// stdout stays clean for results and the MCP stdio transport.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("bad --log-level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("bad --log-format %q (want text or json)", format)
	}
}

// loadStore reads the --level file and publishes its map as version 1.
func (a *app) loadStore(cmd *cli.Command) (*snapshot.Store, string, error) {
	path := cmd.String("level")
	if path == "" {
		return nil, "", fmt.Errorf("no level given (use --level or MOVEGRID_LEVEL)")
	}
	lvl, err := levelmap.Load(path)
	if err != nil {
		return nil, "", err
	}
	m, err := lvl.Map()
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	a.log.Debug("level loaded", "path", path, "name", lvl.Name, "cells", m.Len())
	return snapshot.New(m), path, nil
}

func coordinate(cmd *cli.Command, flag string) (gridmap.Coordinate, error) {
	c, err := gridmap.ParseCoordinate(cmd.String(flag))
	if err != nil {
		return gridmap.Coordinate{}, fmt.Errorf("--%s: %w", flag, err)
	}
	return c, nil
}
