package route

import "fmt"

// Router routes batches of requests. It holds no state between batches.
type Router struct {
	cfg *Config
	pf  *pathfinder
}

// NewRouter creates a router. A nil cfg uses DefaultConfig.
func NewRouter(cfg *Config) (*Router, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Router{cfg: cfg, pf: newPathfinder(cfg)}, nil
}

// Route routes reqs in order against board and returns the combined output.
func (r *Router) Route(board Board, reqs []Request) Result {
	b := NewBatch(board)
	for _, req := range reqs {
		r.RouteNext(b, req)
	}
	return b.Result()
}

// RouteNext routes one request within batch b. Wires it produces become
// obstacles and same-net candidates for every later request of b. It
// reports whether a path was found.
func (r *Router) RouteNext(b *Batch, req Request) bool {
	sc := &scene{
		obstacles: b.board.Obstacles,
		overlap:   b.overlap[:len(b.overlap):len(b.overlap)],
		sameNet:   b.sameNetWires(req.Net),
		pins:      b.pinsExcluding(req.From, req.To, r.cfg.ExcludeRadius),
		net:       req.Net,
	}

	path, ok := r.pf.find(req.From, req.To, sc)
	if !ok {
		r.cfg.Logger.Printf("route: %s: no path from %s to %s", label(req), fmtPoint(req.From), fmtPoint(req.To))
		b.unrouted = append(b.unrouted, req)
		return false
	}

	points := path.Points
	end := req.To
	switch s := path.Stop.(type) {
	case WireStop:
		end = s.At
		points[len(points)-1] = end
		b.junctions = append(b.junctions, end)
		if Distance(end, s.Wire.Start) > r.cfg.ExcludeRadius && Distance(end, s.Wire.End) > r.cfg.ExcludeRadius {
			if _, _, split := b.split(s.Wire.ID, end, req.Net, r.cfg.NewID); split {
				r.cfg.Logger.Printf("route: %s: split %s at %s", label(req), s.Wire.ID, fmtPoint(end))
			}
		}
		r.cfg.Logger.Printf("route: %s: joined net %q wire at %s", label(req), req.Net, fmtPoint(end))
	case PinStop:
		end = s.Pin.At
		points[len(points)-1] = end
		r.cfg.Logger.Printf("route: %s: joined net %q pin at %s", label(req), req.Net, fmtPoint(end))
	case nil:
	}

	points = Simplify(points, AxisTolerance)
	points[0] = req.From
	if path.Stop == nil {
		points[len(points)-1] = req.To
	}
	// off-grid endpoints leave a diagonal first or last step
	points = Simplify(Orthogonalize(points, AxisTolerance), AxisTolerance)

	for _, w := range Segment(points, []Point{req.From, end}, r.cfg.NewID, req.Net) {
		b.add(w, false)
	}
	return true
}

func label(req Request) string {
	if req.Ref != "" {
		return req.Ref
	}
	return "cwire"
}

func fmtPoint(p Point) string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
