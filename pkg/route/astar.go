package route

import (
	"container/heap"
	"math"
)

// scene is the per-request snapshot the search runs against.
type scene struct {
	obstacles []Box
	overlap   []segment // every wire a new step must not run along
	sameNet   []Wire    // wires the route may join early
	pins      []Pin     // pins other than the request's own endpoints
	net       string
}

type segment struct {
	a, b Point
}

// searchKey orders open-set entries by f, then g, then insertion order.
type searchKey struct {
	f, g float64
	seq  uint64
}

func (k searchKey) less(o searchKey) bool {
	if k.f != o.f {
		return k.f < o.f
	}
	if k.g != o.g {
		return k.g < o.g
	}
	return k.seq < o.seq
}

// searchEntry is an open-set state carrying the world path that reached it.
type searchEntry struct {
	key  searchKey
	cell Cell
	path []Point
}

// openSet is a priority queue of search entries.
type openSet []*searchEntry

func (q openSet) Len() int           { return len(q) }
func (q openSet) Less(i, j int) bool { return q[i].key.less(q[j].key) }
func (q openSet) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *openSet) Push(x any) {
	*q = append(*q, x.(*searchEntry))
}

func (q *openSet) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil // avoid memory leak
	*q = old[:n-1]
	return e
}

// pathfinder runs single-request A* searches on the routing grid.
type pathfinder struct {
	cfg  *Config
	grid Grid
}

func newPathfinder(cfg *Config) *pathfinder {
	return &pathfinder{cfg: cfg, grid: Grid{Pitch: cfg.GridPitch}}
}

// find searches from `from` to `to`. It returns false when the open set
// empties or the iteration cap is reached.
func (pf *pathfinder) find(from, to Point, sc *scene) (Path, bool) {
	startCell := pf.grid.ToCell(from)
	goalCell := pf.grid.ToCell(to)
	if startCell == goalCell {
		return Path{Points: []Point{from, to}}, true
	}

	pitch := pf.grid.Pitch
	wireTol := pitch * pf.cfg.WireHitFactor
	pinTol := pitch * pf.cfg.PinHitFactor
	isEndpoint := func(c Cell) bool { return c == startCell || c == goalCell }

	var seq uint64
	open := &openSet{{cell: startCell, path: []Point{from}}}
	closed := make(map[Cell]bool)

	for iterations := 0; open.Len() > 0 && iterations < pf.cfg.MaxIterations; iterations++ {
		cur := heap.Pop(open).(*searchEntry)
		if closed[cur.cell] {
			continue
		}
		closed[cur.cell] = true

		if cur.cell == goalCell {
			return Path{Points: appendPoint(cur.path, to)}, true
		}

		curWorld := pf.grid.ToWorld(cur.cell)

		if cur.cell != startCell {
			if w, ok := findSameNetWire(curWorld, sc.sameNet, wireTol); ok {
				return Path{
					Points: cur.path,
					Stop:   WireStop{Wire: w, At: pf.grid.Snap(curWorld)},
				}, true
			}
		}

		curIsEndpoint := isEndpoint(cur.cell)
		target := nearestMidpoint(curWorld, sc.sameNet)

		for _, nb := range pf.grid.neighbors(cur.cell, goalCell) {
			if closed[nb] {
				continue
			}
			nbWorld := pf.grid.ToWorld(nb)
			nbIsEndpoint := isEndpoint(nb)

			nearPin := Manhattan(nbWorld, from) < pf.cfg.NearPinDistance ||
				Manhattan(nbWorld, to) < pf.cfg.NearPinDistance
			if !(nbIsEndpoint || curIsEndpoint || nearPin) && insideAny(nbWorld, sc.obstacles) {
				continue
			}

			// steps touching the request's own pins may graze a body
			if !curIsEndpoint && !nbIsEndpoint && crossesAny(curWorld, nbWorld, sc.obstacles) {
				continue
			}

			if overlapsAny(curWorld, nbWorld, sc.overlap) {
				continue
			}

			if !nbIsEndpoint {
				if p, hit := pinNear(nbWorld, sc.pins, pinTol); hit {
					if SameNet(sc.net, p.Net) {
						return Path{
							Points: appendPoint(cur.path, p.At),
							Stop:   PinStop{Pin: p},
						}, true
					}
					continue
				}
			}

			cost := pitch
			if n := len(cur.path); n > 1 {
				last := curWorld.Sub(cur.path[n-2])
				step := nbWorld.Sub(curWorld)
				if math.Abs(last.X-step.X) > AxisTolerance || math.Abs(last.Y-step.Y) > AxisTolerance {
					cost += pitch * pf.cfg.BendPenalty
				}
			}
			if target != nil && Manhattan(nbWorld, *target) < Manhattan(curWorld, *target) {
				cost -= pitch * pf.cfg.NetBonus
			}

			g := cur.key.g + cost
			h := Manhattan(nbWorld, to)
			seq++
			heap.Push(open, &searchEntry{
				key:  searchKey{f: g + h, g: g, seq: seq},
				cell: nb,
				path: appendPoint(cur.path, nbWorld),
			})
		}
	}

	return Path{}, false
}

// appendPoint returns a copy of path with p appended, leaving path unshared.
func appendPoint(path []Point, p Point) []Point {
	out := make([]Point, len(path)+1)
	copy(out, path)
	out[len(path)] = p
	return out
}

func findSameNetWire(p Point, wires []Wire, tol float64) (Wire, bool) {
	for _, w := range wires {
		if PointOnSegment(p, w.Start, w.End, tol) {
			return w, true
		}
	}
	return Wire{}, false
}

// nearestMidpoint returns the midpoint of the same-net wire closest to p,
// or nil when there are none. The first wire wins ties.
func nearestMidpoint(p Point, wires []Wire) *Point {
	var best *Point
	bestDist := 0.0
	for _, w := range wires {
		mid := w.Start.Add(w.End).Mul(0.5)
		d := Manhattan(p, mid)
		if best == nil || d < bestDist {
			best, bestDist = &mid, d
		}
	}
	return best
}

func insideAny(p Point, boxes []Box) bool {
	for _, b := range boxes {
		if PointInRect(p, b) {
			return true
		}
	}
	return false
}

func crossesAny(a, b Point, boxes []Box) bool {
	for _, box := range boxes {
		if SegmentIntersectsRect(a, b, box) {
			return true
		}
	}
	return false
}

func overlapsAny(a, b Point, segs []segment) bool {
	for _, s := range segs {
		if SegmentsOverlapParallel(a, b, s.a, s.b, OverlapTolerance) {
			return true
		}
	}
	return false
}

func pinNear(p Point, pins []Pin, tol float64) (Pin, bool) {
	for _, pin := range pins {
		if Distance(p, pin.At) < tol {
			return pin, true
		}
	}
	return Pin{}, false
}
