package route

import (
	"bytes"
	"log"
	"reflect"
	"strings"
	"testing"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	cfg := DefaultConfig()
	cfg.NewID = SequentialIDs("w")
	r, err := NewRouter(cfg)
	if err != nil {
		t.Fatalf("NewRouter failed: %v", err)
	}
	return r
}

func checkAxisAligned(t *testing.T, wires []Wire) {
	t.Helper()
	for _, w := range wires {
		if !IsHorizontal(w.Start, w.End, AxisTolerance) && !IsVertical(w.Start, w.End, AxisTolerance) {
			t.Errorf("%v is not axis-aligned", w)
		}
	}
}

func checkNoParallelOverlap(t *testing.T, a, b []Wire) {
	t.Helper()
	for _, x := range a {
		for _, y := range b {
			if x.ID == y.ID {
				continue
			}
			if SegmentsOverlapParallel(x.Start, x.End, y.Start, y.End, OverlapTolerance) {
				t.Errorf("%v overlaps %v", x, y)
			}
		}
	}
}

func TestRouteStraight(t *testing.T) {
	r := newTestRouter(t)
	res := r.Route(Board{}, []Request{
		{From: Point{X: 0, Y: 0}, To: Point{X: 10, Y: 0}},
	})

	if len(res.Wires) != 1 {
		t.Fatalf("expected 1 wire, got %d: %v", len(res.Wires), res.Wires)
	}
	w := res.Wires[0]
	if w.Start != (Point{X: 0, Y: 0}) || w.End != (Point{X: 10, Y: 0}) {
		t.Errorf("expected (0,0)-(10,0), got %v", w)
	}
	if len(res.Junctions) != 0 {
		t.Errorf("expected no junctions, got %v", res.Junctions)
	}
}

func TestRouteTrivial(t *testing.T) {
	r := newTestRouter(t)
	from, to := Point{X: 0, Y: 0}, Point{X: 0.3, Y: 0}
	res := r.Route(Board{}, []Request{{From: from, To: to}})

	if len(res.Wires) != 1 {
		t.Fatalf("expected 1 wire, got %d", len(res.Wires))
	}
	if res.Wires[0].Start != from || res.Wires[0].End != to {
		t.Errorf("expected %v-%v, got %v", from, to, res.Wires[0])
	}
}

func TestRouteAroundObstacle(t *testing.T) {
	r := newTestRouter(t)
	box := Box{LLx: 4, LLy: -1, URx: 6, URy: 1}
	res := r.Route(Board{Obstacles: []Box{box}}, []Request{
		{From: Point{X: 0, Y: 0}, To: Point{X: 10, Y: 0}},
	})

	if len(res.Wires) < 3 {
		t.Fatalf("expected a detour of at least 3 wires, got %v", res.Wires)
	}
	checkAxisAligned(t, res.Wires)
	for _, w := range res.Wires {
		if SegmentIntersectsRect(w.Start, w.End, box) {
			t.Errorf("%v intersects the obstacle", w)
		}
	}
	if res.Wires[0].Start != (Point{X: 0, Y: 0}) {
		t.Errorf("route should start at the request origin, got %v", res.Wires[0].Start)
	}
	if last := res.Wires[len(res.Wires)-1]; last.End != (Point{X: 10, Y: 0}) {
		t.Errorf("route should end at the request target, got %v", last.End)
	}
	for i := 1; i < len(res.Wires); i++ {
		if res.Wires[i].Start != res.Wires[i-1].End {
			t.Errorf("wire %d does not continue from wire %d", i, i-1)
		}
	}
}

func TestRouteJoinsSameNetWire(t *testing.T) {
	r := newTestRouter(t)
	existing := Wire{ID: "W1", Start: Point{X: 5.08, Y: -5.08}, End: Point{X: 5.08, Y: 5.08}, Net: "VCC"}
	res := r.Route(Board{Wires: []Wire{existing}}, []Request{
		{From: Point{X: 0, Y: 0}, To: Point{X: 10, Y: 0}, Net: "VCC"},
	})

	if len(res.Junctions) != 1 || !near(res.Junctions[0], Point{X: 5.08, Y: 0}) {
		t.Fatalf("expected one junction at (5.08, 0), got %v", res.Junctions)
	}
	if !reflect.DeepEqual(res.Deleted, []string{"W1"}) {
		t.Errorf("expected W1 to be deleted, got %v", res.Deleted)
	}
	// two halves plus the routed wire
	if len(res.Wires) != 3 {
		t.Fatalf("expected 3 wires, got %d: %v", len(res.Wires), res.Wires)
	}
	top, bottom := res.Wires[0], res.Wires[1]
	if top.Start != existing.Start || bottom.End != existing.End {
		t.Errorf("halves do not cover the original wire: %v, %v", top, bottom)
	}
	if top.End != bottom.Start || !near(top.End, Point{X: 5.08, Y: 0}) {
		t.Errorf("halves should meet at the junction: %v, %v", top, bottom)
	}
	routed := res.Wires[2]
	if routed.Start != (Point{X: 0, Y: 0}) || !near(routed.End, Point{X: 5.08, Y: 0}) {
		t.Errorf("unexpected routed wire %v", routed)
	}
	for _, w := range res.Wires {
		if w.Net != "VCC" {
			t.Errorf("expected net VCC on %v, got %q", w, w.Net)
		}
	}
}

func TestRouteJoinAtWireEndDoesNotSplit(t *testing.T) {
	r := newTestRouter(t)
	existing := Wire{ID: "W1", Start: Point{X: 5.08, Y: 0}, End: Point{X: 5.08, Y: 10.16}, Net: "VCC"}
	res := r.Route(Board{Wires: []Wire{existing}}, []Request{
		{From: Point{X: 0, Y: 0}, To: Point{X: 10, Y: 0}, Net: "VCC"},
	})

	if len(res.Junctions) != 1 {
		t.Fatalf("expected one junction, got %v", res.Junctions)
	}
	if len(res.Deleted) != 0 {
		t.Errorf("expected no deletions, got %v", res.Deleted)
	}
	if len(res.Wires) != 1 {
		t.Errorf("expected only the routed wire, got %v", res.Wires)
	}
}

func TestRouteJoinsWireWithoutID(t *testing.T) {
	r := newTestRouter(t)
	// segments of multi-point schematic wires carry no id
	existing := Wire{Start: Point{X: 5.08, Y: -5.08}, End: Point{X: 5.08, Y: 5.08}, Net: "VCC"}
	res := r.Route(Board{Wires: []Wire{existing}}, []Request{
		{From: Point{X: 0, Y: 0}, To: Point{X: 10.16, Y: 0}, Net: "VCC"},
	})

	if len(res.Junctions) != 1 || !near(res.Junctions[0], Point{X: 5.08, Y: 0}) {
		t.Fatalf("expected one junction at (5.08, 0), got %v", res.Junctions)
	}
	if len(res.Deleted) != 0 {
		t.Errorf("wires without an id cannot be deleted, got %v", res.Deleted)
	}
	if len(res.Wires) != 1 {
		t.Fatalf("expected only the routed wire, got %v", res.Wires)
	}
	if w := res.Wires[0]; w.Start != (Point{X: 0, Y: 0}) || !near(w.End, Point{X: 5.08, Y: 0}) {
		t.Errorf("unexpected routed wire %v", w)
	}
}

func TestRouteOffGridEndpointsStayOrthogonal(t *testing.T) {
	r := newTestRouter(t)
	pin := Pin{At: Point{X: 5.1, Y: 0.05}, Net: "VCC"}
	res := r.Route(Board{Pins: []Pin{pin}}, []Request{
		{Ref: "CW1", From: Point{X: 0, Y: 0}, To: Point{X: 10.16, Y: 0}, Net: "VCC"},
		{Ref: "CW2", From: Point{X: 0, Y: 10.16}, To: Point{X: 0.3, Y: 10.36}},
	})

	checkAxisAligned(t, res.Wires)
	if len(res.Wires) != 4 {
		t.Fatalf("expected 4 wires, got %v", res.Wires)
	}
	if res.Wires[1].End != pin.At {
		t.Errorf("expected the first route to end at the pin, got %v", res.Wires[1])
	}
	if res.Wires[3].End != (Point{X: 0.3, Y: 10.36}) {
		t.Errorf("expected the second route to end at its target, got %v", res.Wires[3])
	}
}

func TestRouteDetoursAroundForeignPin(t *testing.T) {
	r := newTestRouter(t)
	pin := Pin{At: Point{X: 5.08, Y: 0}, Net: "GND"}
	res := r.Route(Board{Pins: []Pin{pin}}, []Request{
		{From: Point{X: 0, Y: 0}, To: Point{X: 10, Y: 0}, Net: "VCC"},
	})

	if len(res.Wires) < 3 {
		t.Fatalf("expected a detour, got %v", res.Wires)
	}
	checkAxisAligned(t, res.Wires)
	for _, w := range res.Wires {
		if PointOnSegment(pin.At, w.Start, w.End, 0.5) {
			t.Errorf("%v runs over the GND pin", w)
		}
	}
	if len(res.Junctions) != 0 || len(res.Deleted) != 0 {
		t.Errorf("expected no early termination, got junctions %v deleted %v", res.Junctions, res.Deleted)
	}
}

func TestRouteStopsAtSameNetPin(t *testing.T) {
	r := newTestRouter(t)
	pin := Pin{At: Point{X: 5.08, Y: 0}, Net: "VCC"}
	res := r.Route(Board{Pins: []Pin{pin}}, []Request{
		{From: Point{X: 0, Y: 0}, To: Point{X: 10, Y: 0}, Net: "VCC"},
	})

	if len(res.Wires) != 1 {
		t.Fatalf("expected 1 wire, got %v", res.Wires)
	}
	if res.Wires[0].End != pin.At {
		t.Errorf("expected route to end at the pin, got %v", res.Wires[0].End)
	}
	if len(res.Junctions) != 0 {
		t.Errorf("pin joins do not create junctions, got %v", res.Junctions)
	}
}

func TestRouteOwnPinsDoNotBlock(t *testing.T) {
	r := newTestRouter(t)
	from, to := Point{X: 0, Y: 0}, Point{X: 10, Y: 0}
	pins := []Pin{{At: from, Net: "A"}, {At: to, Net: "B"}}
	res := r.Route(Board{Pins: pins}, []Request{{From: from, To: to, Net: "C"}})

	if len(res.Wires) != 1 {
		t.Fatalf("expected a straight wire, got %v", res.Wires)
	}
}

func TestRouteSharedCorridor(t *testing.T) {
	second := Request{Ref: "CW2", From: Point{X: 2.54, Y: 0}, To: Point{X: 7.62, Y: 0}, Net: "B"}

	// alone, the second request runs straight
	alone := newTestRouter(t).Route(Board{}, []Request{second})
	if len(alone.Wires) != 1 {
		t.Fatalf("expected a straight wire when routed alone, got %v", alone.Wires)
	}

	r := newTestRouter(t)
	res := r.Route(Board{}, []Request{
		{Ref: "CW1", From: Point{X: 0, Y: 0}, To: Point{X: 10, Y: 0}, Net: "A"},
		second,
	})

	if len(res.Wires) < 4 {
		t.Fatalf("expected the second route to detour, got %v", res.Wires)
	}
	checkAxisAligned(t, res.Wires)
	checkNoParallelOverlap(t, res.Wires, res.Wires)
}

func TestRouteSplitsEachWireOnce(t *testing.T) {
	r := newTestRouter(t)
	existing := Wire{ID: "W1", Start: Point{X: 5.08, Y: -5.08}, End: Point{X: 5.08, Y: 5.08}, Net: "VCC"}
	res := r.Route(Board{Wires: []Wire{existing}}, []Request{
		{From: Point{X: 0, Y: 0}, To: Point{X: 10, Y: 0}, Net: "VCC"},
		{From: Point{X: 0, Y: 2.54}, To: Point{X: 10, Y: 2.54}, Net: "VCC"},
	})

	if !reflect.DeepEqual(res.Deleted, []string{"W1"}) {
		t.Errorf("expected W1 deleted exactly once, got %v", res.Deleted)
	}
	if len(res.Junctions) != 2 {
		t.Errorf("expected 2 junctions, got %v", res.Junctions)
	}

	seen := make(map[string]bool)
	for _, w := range res.Wires {
		if seen[w.ID] {
			t.Errorf("duplicate wire id %s", w.ID)
		}
		seen[w.ID] = true
		if w.ID == "W1" {
			t.Error("deleted wire is still in the output")
		}
	}
	// lower half, first route, two quarters of the upper half, second route
	if len(res.Wires) != 5 {
		t.Errorf("expected 5 wires, got %d: %v", len(res.Wires), res.Wires)
	}
	checkAxisAligned(t, res.Wires)
}

func TestRouteUnroutedIsReported(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxIterations = 1
	var buf bytes.Buffer
	cfg.Logger = log.New(&buf, "", 0)
	r, err := NewRouter(cfg)
	if err != nil {
		t.Fatal(err)
	}

	req := Request{Ref: "CW7", From: Point{X: 0, Y: 0}, To: Point{X: 10, Y: 0}}
	res := r.Route(Board{}, []Request{req})

	if len(res.Wires) != 0 {
		t.Errorf("expected no wires, got %v", res.Wires)
	}
	if len(res.Unrouted) != 1 || res.Unrouted[0].Ref != "CW7" {
		t.Errorf("expected CW7 to be unrouted, got %v", res.Unrouted)
	}
	if !strings.Contains(buf.String(), "CW7: no path") {
		t.Errorf("expected a no-path log line, got %q", buf.String())
	}
}

func TestRouteDeterministic(t *testing.T) {
	board := Board{
		Obstacles: []Box{{LLx: 4, LLy: -1, URx: 6, URy: 1}},
		Wires:     []Wire{{ID: "W1", Start: Point{X: 12.7, Y: -5.08}, End: Point{X: 12.7, Y: 5.08}, Net: "N1"}},
		Pins:      []Pin{{At: Point{X: 2.54, Y: 2.54}, Net: "N2"}},
	}
	reqs := []Request{
		{From: Point{X: 0, Y: 0}, To: Point{X: 10, Y: 0}, Net: "N1"},
		{From: Point{X: 0, Y: 5.08}, To: Point{X: 15.24, Y: 5.08}, Net: "N1"},
		{From: Point{X: 0, Y: -2.54}, To: Point{X: 8.89, Y: 3.81}},
	}

	first := newTestRouter(t).Route(board, reqs)
	second := newTestRouter(t).Route(board, reqs)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("routing is not deterministic:\n%v\n%v", first, second)
	}
}

func TestNewRouterRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridPitch = 0
	if _, err := NewRouter(cfg); err == nil {
		t.Error("expected an error for a zero grid pitch")
	}
}
