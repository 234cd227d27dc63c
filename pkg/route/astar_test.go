package route

import (
	"container/heap"
	"math"
	"testing"
)

func testPathfinder(t *testing.T) *pathfinder {
	t.Helper()
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	return newPathfinder(cfg)
}

func near(a, b Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestOpenSetOrder(t *testing.T) {
	q := &openSet{}
	heap.Push(q, &searchEntry{key: searchKey{f: 5, g: 1, seq: 1}})
	heap.Push(q, &searchEntry{key: searchKey{f: 4, g: 3, seq: 2}})
	heap.Push(q, &searchEntry{key: searchKey{f: 4, g: 2, seq: 3}})
	heap.Push(q, &searchEntry{key: searchKey{f: 4, g: 2, seq: 0}})

	var seqs []uint64
	for q.Len() > 0 {
		seqs = append(seqs, heap.Pop(q).(*searchEntry).key.seq)
	}
	want := []uint64{0, 3, 2, 1}
	for i := range want {
		if seqs[i] != want[i] {
			t.Fatalf("expected pop order %v, got %v", want, seqs)
		}
	}
}

func TestFindTrivial(t *testing.T) {
	pf := testPathfinder(t)
	from, to := Point{X: 0, Y: 0}, Point{X: 0.3, Y: 0.2}

	path, ok := pf.find(from, to, &scene{})
	if !ok {
		t.Fatal("expected a path")
	}
	if len(path.Points) != 2 || path.Points[0] != from || path.Points[1] != to {
		t.Errorf("expected [from, to], got %v", path.Points)
	}
	if path.Stop != nil {
		t.Errorf("expected no early termination, got %v", path.Stop)
	}
}

func TestFindStraight(t *testing.T) {
	pf := testPathfinder(t)
	from, to := Point{X: 0, Y: 0}, Point{X: 10, Y: 0}

	path, ok := pf.find(from, to, &scene{})
	if !ok {
		t.Fatal("expected a path")
	}
	// start, eight grid steps, goal
	if len(path.Points) != 10 {
		t.Fatalf("expected 10 points, got %d: %v", len(path.Points), path.Points)
	}
	if path.Points[0] != from || path.Points[9] != to {
		t.Errorf("path does not run from %v to %v: %v", from, to, path.Points)
	}
	for _, p := range path.Points {
		if p.Y != 0 {
			t.Errorf("expected straight run on y=0, got %v", p)
		}
	}
}

func TestFindWireStop(t *testing.T) {
	pf := testPathfinder(t)
	w := Wire{ID: "W1", Start: Point{X: 5.08, Y: -5.08}, End: Point{X: 5.08, Y: 5.08}, Net: "VCC"}
	sc := &scene{sameNet: []Wire{w}, net: "VCC"}

	path, ok := pf.find(Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, sc)
	if !ok {
		t.Fatal("expected a path")
	}
	stop, isWire := path.Stop.(WireStop)
	if !isWire {
		t.Fatalf("expected WireStop, got %T", path.Stop)
	}
	if stop.Wire.ID != "W1" {
		t.Errorf("expected stop on W1, got %s", stop.Wire.ID)
	}
	if !near(stop.At, Point{X: 5.08, Y: 0}) {
		t.Errorf("expected stop at (5.08, 0), got %v", stop.At)
	}
	if !near(path.Points[len(path.Points)-1], stop.At) {
		t.Errorf("path should end at the stop point, got %v", path.Points)
	}
}

func TestFindPinStop(t *testing.T) {
	pf := testPathfinder(t)
	pin := Pin{At: Point{X: 5.08, Y: 0}, Net: "VCC"}
	sc := &scene{pins: []Pin{pin}, net: "VCC"}

	path, ok := pf.find(Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, sc)
	if !ok {
		t.Fatal("expected a path")
	}
	stop, isPin := path.Stop.(PinStop)
	if !isPin {
		t.Fatalf("expected PinStop, got %T", path.Stop)
	}
	if stop.Point() != pin.At {
		t.Errorf("expected stop at pin %v, got %v", pin.At, stop.Point())
	}
	if last := path.Points[len(path.Points)-1]; last != pin.At {
		t.Errorf("expected path to end at pin, got %v", last)
	}
}

func TestFindBlockedByForeignPin(t *testing.T) {
	pf := testPathfinder(t)
	pin := Pin{At: Point{X: 5.08, Y: 0}, Net: "GND"}
	sc := &scene{pins: []Pin{pin}, net: "VCC"}

	path, ok := pf.find(Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, sc)
	if !ok {
		t.Fatal("expected a detour path")
	}
	if path.Stop != nil {
		t.Errorf("expected no early termination, got %T", path.Stop)
	}
	for _, p := range path.Points {
		if Distance(p, pin.At) < 0.6*GridPitch {
			t.Errorf("path passes the foreign pin at %v", p)
		}
	}
}

func TestFindUnnettedPinBlocks(t *testing.T) {
	pf := testPathfinder(t)
	// without a net the route cannot join any pin
	sc := &scene{pins: []Pin{{At: Point{X: 5.08, Y: 0}}}}

	path, ok := pf.find(Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, sc)
	if !ok {
		t.Fatal("expected a detour path")
	}
	if path.Stop != nil {
		t.Errorf("expected no early termination, got %T", path.Stop)
	}
}

func TestFindIterationCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxIterations = 1
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	pf := newPathfinder(cfg)

	if _, ok := pf.find(Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, &scene{}); ok {
		t.Error("expected no path once the iteration cap is reached")
	}
}

func TestFindEnclosed(t *testing.T) {
	// four walls of wire around the goal, none on the request's net
	walls := []segment{
		{Point{X: 20.32, Y: 20.32}, Point{X: 30.48, Y: 20.32}},
		{Point{X: 20.32, Y: 30.48}, Point{X: 30.48, Y: 30.48}},
		{Point{X: 20.32, Y: 20.32}, Point{X: 20.32, Y: 30.48}},
		{Point{X: 30.48, Y: 20.32}, Point{X: 30.48, Y: 30.48}},
	}
	box := Box{LLx: 20.32, LLy: 20.32, URx: 30.48, URy: 30.48}
	cfg := DefaultConfig()
	cfg.MaxIterations = 2000
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	pf := newPathfinder(cfg)

	_, ok := pf.find(Point{X: 0, Y: 0}, Point{X: 25.4, Y: 25.4}, &scene{overlap: walls, obstacles: []Box{box}})
	if ok {
		t.Error("expected no path into an enclosed region")
	}
}
