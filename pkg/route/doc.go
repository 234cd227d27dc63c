// Package route synthesizes orthogonal schematic wire geometry for requested
// point-to-point connections ("cwires") that have no drawn path.
//
// # Overview
//
// The routing engine is layered, leaves first:
//  1. Geometry predicates on points, segments and boxes
//  2. A fixed-pitch grid (1.27mm, the KiCad schematic grid)
//  3. A 4-connected A* search with net-aware early termination
//  4. Path simplification to the minimal orthogonal vertex list, with
//     dog-legs to off-grid endpoints
//  5. Segmentation into 2-point wire records
//  6. The batch Router, which routes requests in order against a shared,
//     growing set of wires
//
// Request order is significant: every request after the first can be blocked
// by, or can join onto, wires produced earlier in the same batch.
//
// # Usage
//
//	r, err := route.NewRouter(route.DefaultConfig())
//	if err != nil {
//		return err
//	}
//
//	board := route.Board{
//		Obstacles: []route.Box{{LLx: 4, LLy: -1, URx: 6, URy: 1}},
//	}
//	res := r.Route(board, []route.Request{
//		{Ref: "CW1", From: route.Point{X: 0, Y: 0}, To: route.Point{X: 10, Y: 0}, Net: "VCC"},
//	})
//	for _, w := range res.Wires {
//		fmt.Println(w.ID, w.Start, w.End)
//	}
//
// # Nets
//
// A wire or pin with an empty Net has no net. Two elements are on the same
// net only when both carry the same non-empty name. A route may stop early on
// a same-net wire (a junction is emitted and the wire is split) or on a
// same-net pin. Pins of any other net block the route.
//
// A wire without an ID can still be joined, but it is never split and never
// appears in Result.Deleted.
//
// # Geometry
//
// Every emitted wire is horizontal or vertical. The search runs on grid
// cells, so a request endpoint or a joined pin that lies off the grid is
// reached through a short dog-leg from the nearest cell (see Orthogonalize).
//
// The router does not parse or write files. The autoroute package derives a
// Board from a KiCad schematic and applies the Result back to it.
package route
