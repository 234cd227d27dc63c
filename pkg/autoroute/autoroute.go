package autoroute

import (
	"context"
	"fmt"
	"strings"

	"github.com/OpenTraceLab/trace/pkg/cwire"
	"github.com/OpenTraceLab/trace/pkg/kicad/schematic"
	"github.com/OpenTraceLab/trace/pkg/route"
)

// Report summarizes what a run changed in the schematic.
type Report struct {
	Routed    int // cwires routed by the pathfinder
	Fixed     int // wires placed from cwiredef paths
	Wires     int // wires added to the schematic
	Junctions int // junctions added to the schematic
	Deleted   int // existing wires replaced by their split halves

	Unrouted []string     // cwires for which no path was found
	Skipped  []cwire.Skip // cwires with unresolvable endpoints

	Result route.Result // raw router output
}

func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "routed %d cwire(s), %d fixed wire(s): +%d wires, +%d junctions, -%d wires",
		r.Routed, r.Fixed, r.Wires, r.Junctions, r.Deleted)
	if len(r.Unrouted) > 0 {
		fmt.Fprintf(&b, "\nunrouted: %s", strings.Join(r.Unrouted, ", "))
	}
	for _, s := range r.Skipped {
		fmt.Fprintf(&b, "\nskipped %s: %v", s.Ref, s.Err)
	}
	return b.String()
}

// Run routes every cwire of f on sch and writes the result into sch.
// A nil cfg uses route.DefaultConfig. The context is checked between
// requests; when it is cancelled sch is left untouched.
func Run(ctx context.Context, sch *schematic.Schematic, f *cwire.File, cfg *route.Config) (*Report, error) {
	if sch == nil || f == nil {
		return nil, fmt.Errorf("autoroute: nil schematic or cwire file")
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cwire file: %w", err)
	}
	if cfg == nil {
		cfg = route.DefaultConfig()
	}
	router, err := route.NewRouter(cfg)
	if err != nil {
		return nil, err
	}

	board := Derive(sch, f.PinNets())
	plan, err := cwire.Resolve(f, sch, PinNetFunc(board))
	if err != nil {
		return nil, err
	}
	for _, s := range plan.Skipped {
		cfg.Logger.Printf("autoroute: skipping %s: %v", s.Ref, s.Err)
	}

	// Fixed wires take part in routing as existing wires, so later
	// requests can join and split them.
	fixed := make([]route.Wire, len(plan.Fixed))
	for i, w := range plan.Fixed {
		w.ID = cfg.NewID()
		fixed[i] = w
	}
	board.Wires = append(board.Wires, fixed...)

	batch := route.NewBatch(board)
	for _, req := range plan.Requests {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		router.RouteNext(batch, req)
	}
	res := batch.Result()

	report := &Report{
		Routed:  len(plan.Requests) - len(res.Unrouted),
		Fixed:   len(fixed),
		Skipped: plan.Skipped,
		Result:  res,
	}
	for _, req := range res.Unrouted {
		report.Unrouted = append(report.Unrouted, req.Ref)
	}

	apply(sch, f, fixed, res, cfg, report)
	return report, nil
}

// apply writes the routing output into the schematic tree.
func apply(sch *schematic.Schematic, f *cwire.File, fixed []route.Wire, res route.Result, cfg *route.Config, report *Report) {
	deleted := make(map[string]bool, len(res.Deleted))
	for _, id := range res.Deleted {
		deleted[id] = true
	}

	var removed []schematic.UUID
	for _, id := range res.Deleted {
		removed = append(removed, schematic.UUID(id))
	}
	report.Deleted = sch.RemoveWires(removed...)

	for _, w := range fixed {
		if deleted[w.ID] {
			continue
		}
		sch.AddWire(position(w.Start), position(w.End), schematic.UUID(w.ID))
		report.Wires++
	}
	for _, w := range res.Wires {
		sch.AddWire(position(w.Start), position(w.End), schematic.UUID(w.ID))
		report.Wires++
	}

	var placed []route.Point
	for _, j := range sch.Junctions {
		placed = append(placed, point(j.Position))
	}
	addJunction := func(p route.Point) {
		for _, q := range placed {
			if route.Distance(p, q) <= LabelTolerance {
				return
			}
		}
		placed = append(placed, p)
		sch.AddJunction(position(p), schematic.UUID(cfg.NewID()))
		report.Junctions++
	}
	for _, p := range res.Junctions {
		addJunction(p)
	}
	for _, j := range f.Junctions() {
		addJunction(route.Point{X: j.At.X, Y: j.At.Y})
	}
}
