package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/movegrid/query"
)

// outputFlags returns fresh flags; cli flags keep parse state and must not
// be shared between commands.
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "render", Aliases: []string{"r"}, Usage: "draw the map with the result"},
		&cli.BoolFlag{Name: "json", Usage: "print the raw JSON response"},
	}
}

func (a *app) pathCommand() *cli.Command {
	return &cli.Command{
		Name:  "path",
		Usage: "find the cheapest path between two cells",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "start cell x,y", Required: true},
			&cli.StringFlag{Name: "to", Usage: "goal cell x,y", Required: true},
		}, outputFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			from, err := coordinate(cmd, "from")
			if err != nil {
				return err
			}
			to, err := coordinate(cmd, "to")
			if err != nil {
				return err
			}
			store, _, err := a.loadStore(cmd)
			if err != nil {
				return err
			}
			res, err := query.New(store).Path(ctx, query.PathRequest{
				Start: query.PointOf(from),
				Goal:  query.PointOf(to),
				Mode:  cmd.String("mode"),
				Draw:  cmd.Bool("render"),
			})
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			if cmd.Bool("json") {
				return writeJSON(w, res)
			}
			if !res.Found {
				fmt.Fprintf(w, "no path from %s to %s\n", from, to)
				return nil
			}
			fmt.Fprintf(w, "cost=%d steps=%d expanded=%d mode=%s\n", res.Cost, res.Steps, res.Expanded, res.Mode)
			fmt.Fprintln(w, joinPoints(res.Path))
			fmt.Fprint(w, res.Text)
			return nil
		},
	}
}

func (a *app) rangeCommand() *cli.Command {
	return &cli.Command{
		Name:  "range",
		Usage: "list every cell reachable within a movement budget",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "origin cell x,y", Required: true},
			&cli.IntFlag{Name: "budget", Aliases: []string{"b"}, Usage: "movement budget", Required: true},
		}, outputFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			from, err := coordinate(cmd, "from")
			if err != nil {
				return err
			}
			store, _, err := a.loadStore(cmd)
			if err != nil {
				return err
			}
			res, err := query.New(store).Range(ctx, query.RangeRequest{
				Origin: query.PointOf(from),
				Budget: int(cmd.Int("budget")),
				Mode:   cmd.String("mode"),
				Draw:   cmd.Bool("render"),
			})
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			if cmd.Bool("json") {
				return writeJSON(w, res)
			}
			fmt.Fprintf(w, "%d cells mode=%s\n", res.Count, res.Mode)
			cells := make([]string, len(res.Cells))
			for i, c := range res.Cells {
				cells[i] = fmt.Sprintf("%d,%d=%d", c.X, c.Y, c.Cost)
			}
			fmt.Fprintln(w, strings.Join(cells, " "))
			fmt.Fprint(w, res.Text)
			return nil
		},
	}
}

func joinPoints(ps []query.Point) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = fmt.Sprintf("%d,%d", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
