package main

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli/v3"

	"github.com/katalvlaran/movegrid"
	"github.com/katalvlaran/movegrid/gridmap"
	"github.com/katalvlaran/movegrid/levelmap"
	"github.com/katalvlaran/movegrid/pathfind"
	"github.com/katalvlaran/movegrid/reach"
	"github.com/katalvlaran/movegrid/render"
	"github.com/katalvlaran/movegrid/snapshot"
)

const viewHelp = "arrows move  o origin  +/- budget  m mode  q quit"

func (a *app) viewCommand() *cli.Command {
	return &cli.Command{
		Name:  "view",
		Usage: "explore a level in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "initial origin x,y (default: first cell)"},
			&cli.IntFlag{Name: "budget", Aliases: []string{"b"}, Value: 5, Usage: "movement budget shown as range"},
			&cli.BoolFlag{Name: "watch", Usage: "reload the level when the file changes", Sources: cli.EnvVars("MOVEGRID_WATCH")},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			store, path, err := a.loadStore(cmd)
			if err != nil {
				return err
			}
			mode, err := movegrid.ParseMode(cmd.String("mode"))
			if err != nil {
				return err
			}
			m, _ := store.Load()
			cells := m.Coordinates()
			if len(cells) == 0 {
				return fmt.Errorf("%s: level has no walkable cells", path)
			}
			origin := cells[0]
			if cmd.String("from") != "" {
				if origin, err = coordinate(cmd, "from"); err != nil {
					return err
				}
			}
			v := newViewer(store, origin, int(cmd.Int("budget")), mode)

			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			defer screen.Fini()

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()
			if cmd.Bool("watch") {
				go func() {
					_ = levelmap.Watch(ctx, path, store,
						levelmap.WithLogger(a.log),
						levelmap.WithOnReload(func(uint64, error) {
							_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
						}))
				}()
			}
			go func() {
				<-ctx.Done()
				_ = screen.PostEvent(tcell.NewEventInterrupt(ctx))
			}()

			for {
				screen.Clear()
				v.draw(screen)
				screen.Show()

				switch ev := screen.PollEvent().(type) {
				case nil:
					return nil
				case *tcell.EventResize:
					screen.Sync()
				case *tcell.EventInterrupt:
					if ev.Data() == ctx {
						return nil
					}
				default:
					if v.handle(ev) {
						return nil
					}
				}
			}
		},
	}
}

// viewer is the state of the interactive view. It draws the range around
// origin and the path from origin to the cursor on the current snapshot.
type viewer struct {
	store  *snapshot.Store
	origin gridmap.Coordinate
	cursor gridmap.Coordinate
	offset gridmap.Coordinate
	budget int
	mode   movegrid.Mode
}

func newViewer(store *snapshot.Store, origin gridmap.Coordinate, budget int, mode movegrid.Mode) *viewer {
	v := &viewer{store: store, origin: origin, cursor: origin, budget: max(budget, 0), mode: mode}
	if m, _ := store.Load(); m != nil {
		v.offset, _, _ = m.Bounds()
	}
	return v
}

// handle applies one input event and reports whether the view should close.
func (v *viewer) handle(ev tcell.Event) (quit bool) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		v.cursor = v.cursor.Add(gridmap.C(-1, 0))
	case tcell.KeyRight:
		v.cursor = v.cursor.Add(gridmap.C(1, 0))
	case tcell.KeyUp:
		v.cursor = v.cursor.Add(gridmap.C(0, -1))
	case tcell.KeyDown:
		v.cursor = v.cursor.Add(gridmap.C(0, 1))
	case tcell.KeyEnter:
		v.moveOrigin()
	case tcell.KeyRune:
		switch key.Rune() {
		case 'q':
			return true
		case 'o':
			v.moveOrigin()
		case 'm':
			if v.mode == movegrid.ModeOptimal {
				v.mode = movegrid.ModeCompat
			} else {
				v.mode = movegrid.ModeOptimal
			}
		case '+', '=':
			v.budget++
		case '-':
			v.budget = max(v.budget-1, 0)
		}
	}
	return false
}

// moveOrigin puts the origin under the cursor when that cell is walkable.
func (v *viewer) moveOrigin() {
	if m, _ := v.store.Load(); m != nil && m.Walkable(v.cursor) {
		v.origin = v.cursor
	}
}

// statusRows is the number of rows kept below the map.
const statusRows = 2

// draw renders the map area and the status lines onto c.
func (v *viewer) draw(c render.Canvas) {
	w, h := c.Size()
	m, version := v.store.Load()
	if m == nil || h <= statusRows {
		return
	}
	area := clipped{Canvas: c, h: h - statusRows}
	v.scroll(w, area.h)

	var (
		ov     = render.Overlay{Cursor: &v.cursor}
		status string
	)
	rs, err := reach.FindRange(m, v.origin, v.budget, reach.WithMode(v.mode))
	if err != nil {
		status = fmt.Sprintf("origin %s: %v", v.origin, err)
	} else {
		ov.Range = rs
		res, err := pathfind.Search(m, v.origin, v.cursor, pathfind.WithMode(v.mode))
		switch {
		case err != nil:
			status = err.Error()
		case res.Found:
			ov.Path = res.Path
			status = fmt.Sprintf("path cost=%d steps=%d expanded=%d", res.Cost, len(res.Path)-1, res.Expanded)
		default:
			status = "no path"
		}
		if rs.Contains(v.cursor) {
			status += " (in range)"
		}
	}
	render.Draw(area, m, ov, v.offset)

	line(c, 0, area.h, w, fmt.Sprintf("origin %s cursor %s budget %d mode %s v%d | %s",
		v.origin, v.cursor, v.budget, v.mode, version, status))
	line(c, 0, area.h+1, w, viewHelp)
}

// scroll keeps the cursor inside a w×h window.
func (v *viewer) scroll(w, h int) {
	if v.cursor.X < v.offset.X {
		v.offset.X = v.cursor.X
	} else if v.cursor.X >= v.offset.X+w {
		v.offset.X = v.cursor.X - w + 1
	}
	if v.cursor.Y < v.offset.Y {
		v.offset.Y = v.cursor.Y
	} else if v.cursor.Y >= v.offset.Y+h {
		v.offset.Y = v.cursor.Y - h + 1
	}
}

// clipped hides the bottom rows of a canvas from render.Draw.
type clipped struct {
	render.Canvas
	h int
}

func (c clipped) Size() (int, int) {
	w, _ := c.Canvas.Size()
	return w, c.h
}

// line writes s at (x, y), padding with spaces to width w.
func line(c render.Canvas, x, y, w int, s string) {
	rs := []rune(s)
	for i := 0; x+i < w; i++ {
		r := ' '
		if i < len(rs) {
			r = rs[i]
		}
		c.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}
