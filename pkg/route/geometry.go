package route

import "math"

// Tolerances used by the geometry predicates.
const (
	AxisTolerance    = 0.01 // structural horizontal/vertical classification
	OverlapTolerance = 0.1  // collinear overlap detection
	parallelEpsilon  = 1e-10
)

// PointInRect reports whether p lies inside b, edges included.
func PointInRect(p Point, b Box) bool {
	return b.LLx <= p.X && p.X <= b.URx && b.LLy <= p.Y && p.Y <= b.URy
}

// RangesOverlap reports whether the 1-D ranges [aMin,aMax] and [bMin,bMax]
// share more than tol of length. The bounds of each range may be given in
// either order.
func RangesOverlap(aMin, aMax, bMin, bMax, tol float64) bool {
	if aMin > aMax {
		aMin, aMax = aMax, aMin
	}
	if bMin > bMax {
		bMin, bMax = bMax, bMin
	}
	return aMax > bMin+tol && bMax > aMin+tol
}

// SegmentIntersectsRect reports whether the segment a-b passes through b
// using Liang-Barsky clipping. A zero-length segment is a point test.
func SegmentIntersectsRect(a, b Point, box Box) bool {
	dx := b.X - a.X
	dy := b.Y - a.Y
	if dx == 0 && dy == 0 {
		return PointInRect(a, box)
	}

	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, a.X - box.LLx}, // left
		{dx, box.URx - a.X},  // right
		{-dy, a.Y - box.LLy}, // bottom
		{dy, box.URy - a.Y},  // top
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if math.Abs(p) < parallelEpsilon {
			if q < 0 {
				return false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return t0 < t1
}

// IsHorizontal reports whether the Y coordinates of a and b differ by less than tol.
func IsHorizontal(a, b Point, tol float64) bool {
	return math.Abs(a.Y-b.Y) < tol
}

// IsVertical reports whether the X coordinates of a and b differ by less than tol.
func IsVertical(a, b Point, tol float64) bool {
	return math.Abs(a.X-b.X) < tol
}

// SegmentsOverlapParallel reports whether a1-a2 and b1-b2 lie on the same
// horizontal or vertical line and share length on it.
func SegmentsOverlapParallel(a1, a2, b1, b2 Point, tol float64) bool {
	if IsHorizontal(a1, a2, tol) && IsHorizontal(b1, b2, tol) {
		if math.Abs(a1.Y-b1.Y) < tol {
			return RangesOverlap(a1.X, a2.X, b1.X, b2.X, tol)
		}
	}
	if IsVertical(a1, a2, tol) && IsVertical(b1, b2, tol) {
		if math.Abs(a1.X-b1.X) < tol {
			return RangesOverlap(a1.Y, a2.Y, b1.Y, b2.Y, tol)
		}
	}
	return false
}

// IsOrthogonalCrossing reports whether one segment is horizontal and the
// other vertical. It does not check that they actually meet.
func IsOrthogonalCrossing(a1, a2, b1, b2 Point, tol float64) bool {
	aH, aV := IsHorizontal(a1, a2, tol), IsVertical(a1, a2, tol)
	bH, bV := IsHorizontal(b1, b2, tol), IsVertical(b1, b2, tol)
	return (aH && bV) || (aV && bH)
}

// PointOnSegment reports whether p lies within tol of the segment a-b.
// The projection of p must fall between a and b.
func PointOnSegment(p, a, b Point, tol float64) bool {
	d := b.Sub(a)
	lenSq := d.Dot(d)
	if lenSq < parallelEpsilon {
		return Distance(p, a) < tol
	}
	t := p.Sub(a).Dot(d) / lenSq
	if t < 0 || t > 1 {
		return false
	}
	proj := a.Add(d.Mul(t))
	return Distance(p, proj) < tol
}

// Manhattan returns the L1 distance between a and b.
func Manhattan(a, b Point) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return b.Sub(a).Length()
}

// round3 rounds v to three decimal places.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func roundPoint(p Point) Point {
	return Point{X: round3(p.X), Y: round3(p.Y)}
}
