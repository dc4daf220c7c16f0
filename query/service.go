package query

import (
	"context"
	"fmt"

	"github.com/katalvlaran/movegrid"
	"github.com/katalvlaran/movegrid/gridmap"
	"github.com/katalvlaran/movegrid/pathfind"
	"github.com/katalvlaran/movegrid/reach"
	"github.com/katalvlaran/movegrid/render"
	"github.com/katalvlaran/movegrid/snapshot"
)

// Service runs queries against a snapshot.Store. It is safe for concurrent use.
type Service struct {
	store *snapshot.Store
}

// New returns a Service reading from store.
func New(store *snapshot.Store) *Service {
	return &Service{store: store}
}

// Store returns the underlying snapshot store.
func (s *Service) Store() *snapshot.Store { return s.store }

func (s *Service) load() (*gridmap.Map, uint64, error) {
	m, v := s.store.Load()
	if m == nil {
		return nil, 0, ErrNoMap
	}
	return m, v, nil
}

func parseMode(name string) (movegrid.Mode, error) {
	mode, err := movegrid.ParseMode(name)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", gridmap.ErrInvalidArgument, err)
	}
	return mode, nil
}

// Path finds a path from req.Start to req.Goal.
func (s *Service) Path(ctx context.Context, req PathRequest) (*PathResponse, error) {
	mode, err := parseMode(req.Mode)
	if err != nil {
		return nil, err
	}
	m, v, err := s.load()
	if err != nil {
		return nil, err
	}

	res, err := pathfind.Search(m, req.Start.Coordinate(), req.Goal.Coordinate(),
		pathfind.WithContext(ctx), pathfind.WithMode(mode))
	if err != nil {
		return nil, err
	}

	out := &PathResponse{
		Found:    res.Found,
		Cost:     res.Cost,
		Expanded: res.Expanded,
		Path:     make([]Point, len(res.Path)),
		Mode:     mode.String(),
		Version:  v,
	}
	for i, c := range res.Path {
		out.Path[i] = PointOf(c)
	}
	if res.Found {
		out.Steps = len(res.Path) - 1
	}
	if req.Draw {
		out.Text = render.Text(m, render.Overlay{Path: res.Path})
	}
	return out, nil
}

// Range lists the cells reachable from req.Origin within req.Budget.
func (s *Service) Range(ctx context.Context, req RangeRequest) (*RangeResponse, error) {
	mode, err := parseMode(req.Mode)
	if err != nil {
		return nil, err
	}
	m, v, err := s.load()
	if err != nil {
		return nil, err
	}

	rs, err := reach.FindRange(m, req.Origin.Coordinate(), req.Budget,
		reach.WithContext(ctx), reach.WithMode(mode))
	if err != nil {
		return nil, err
	}

	out := &RangeResponse{
		Count:   rs.Len(),
		Cells:   make([]RangeCell, 0, rs.Len()),
		Mode:    mode.String(),
		Version: v,
	}
	for _, c := range rs.Coordinates() {
		cost, _ := rs.Cost(c)
		out.Cells = append(out.Cells, RangeCell{X: c.X, Y: c.Y, Cost: cost})
	}
	if req.Draw {
		out.Text = render.Text(m, render.Overlay{Range: rs})
	}
	return out, nil
}

// Cell describes p on the current map. A non-walkable p is not an error.
func (s *Service) Cell(p Point) (*CellResponse, error) {
	m, v, err := s.load()
	if err != nil {
		return nil, err
	}
	at := p.Coordinate()
	cost, ok := m.Cost(at)
	out := &CellResponse{At: p, Walkable: ok, Cost: cost, Neighbors: []Point{}, Version: v}
	if ok {
		for _, nb := range m.WalkableNeighbors(at) {
			out.Neighbors = append(out.Neighbors, PointOf(nb))
		}
	}
	return out, nil
}

// Info summarizes the current map.
func (s *Service) Info() (*InfoResponse, error) {
	m, v, err := s.load()
	if err != nil {
		return nil, err
	}
	lo, hi, _ := m.Bounds()
	return &InfoResponse{
		Cells:      m.Len(),
		MinCost:    m.MinCost(),
		Min:        PointOf(lo),
		Max:        PointOf(hi),
		Components: len(m.Components()),
		Version:    v,
	}, nil
}
