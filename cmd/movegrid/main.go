// Command movegrid answers movement questions on YAML tile levels: cheapest
// paths, reachable ranges, an interactive terminal view and a query server
// (REST, WebSocket and MCP).
//
//	movegrid --level ford.yaml path --from 0,0 --to 4,0 --render
//	movegrid --level ford.yaml range --from 0,0 --budget 5
//	movegrid --level ford.yaml view
//	movegrid --level ford.yaml serve --addr :8080 --watch
//	movegrid --level ford.yaml serve --stdio
//
// Every flag can also be set through a MOVEGRID_* environment variable,
// and a .env file in the working directory is loaded first.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	// a missing .env is normal
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: loading .env: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "movegrid: %v\n", err)
		os.Exit(1)
	}
}
