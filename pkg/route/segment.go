package route

// Segmentation tolerances.
const (
	glueTolerance = 0.1   // consecutive wires closer than this share an endpoint
	exactSnap     = 0.005 // endpoints closer than this to a pin coordinate take it verbatim
)

// Segment splits a simplified path into 2-point wires tagged with net.
// Endpoints within 0.005 of an exact coordinate are set to it verbatim; all
// other endpoints are rounded to three decimals. Each wire starts where the
// previous one ended. Wires that collapse to a point are dropped.
func Segment(path []Point, exact []Point, newID func() string, net string) []Wire {
	if len(path) < 2 {
		return nil
	}

	fix := func(p Point) Point {
		for _, e := range exact {
			if Distance(p, e) < exactSnap {
				return e
			}
		}
		return roundPoint(p)
	}

	var wires []Wire
	var prevEnd *Point
	for i := 0; i+1 < len(path); i++ {
		start, end := path[i], path[i+1]
		if prevEnd != nil && Distance(start, *prevEnd) < glueTolerance {
			start = *prevEnd
		}
		start, end = fix(start), fix(end)
		if start == end {
			continue
		}
		wires = append(wires, Wire{ID: newID(), Start: start, End: end, Net: net})
		e := end
		prevEnd = &e
	}
	return wires
}
