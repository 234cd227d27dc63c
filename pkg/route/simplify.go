package route

import "math"

// Simplify reduces a grid-step path to its corner vertices. The first and
// last points are kept exactly. A step that is neither horizontal nor
// vertical within tol is kept as-is rather than merged.
func Simplify(path []Point, tol float64) []Point {
	if len(path) <= 2 {
		return path
	}

	out := []Point{path[0]}
	for i := 1; i < len(path); {
		from := out[len(out)-1]
		horiz := math.Abs(from.Y-path[i].Y) < tol
		vert := math.Abs(from.X-path[i].X) < tol

		if !horiz && !vert {
			out = append(out, path[i])
			i++
			continue
		}

		best := i
		for j := i + 1; j < len(path); j++ {
			if horiz {
				if math.Abs(from.Y-path[j].Y) >= tol {
					break
				}
			} else if math.Abs(from.X-path[j].X) >= tol {
				break
			}
			best = j
		}
		out = append(out, path[best])
		i = best + 1
	}

	if out[len(out)-1] != path[len(path)-1] {
		out = append(out, path[len(path)-1])
	}
	return out
}

// Orthogonalize replaces every step of path that is neither horizontal nor
// vertical within tol with two axis-aligned steps through a corner. Such
// steps only occur next to off-grid endpoints. The corner is chosen so the
// jog continues the neighbouring run: before a horizontal run the path goes
// vertical first, after one it stays horizontal.
func Orthogonalize(path []Point, tol float64) []Point {
	if len(path) < 2 {
		return path
	}

	horizontal := func(a, b Point) bool { return math.Abs(a.Y-b.Y) < tol }
	vertical := func(a, b Point) bool { return math.Abs(a.X-b.X) < tol }

	out := []Point{path[0]}
	for i := 1; i < len(path); i++ {
		a, b := out[len(out)-1], path[i]
		if horizontal(a, b) || vertical(a, b) {
			out = append(out, b)
			continue
		}

		corner := Point{X: b.X, Y: a.Y} // horizontal first
		switch {
		case i+1 < len(path) && horizontal(b, path[i+1]):
			corner = Point{X: a.X, Y: b.Y}
		case i+1 < len(path) && vertical(b, path[i+1]):
		case len(out) > 1 && vertical(out[len(out)-2], a):
			corner = Point{X: a.X, Y: b.Y}
		}
		out = append(out, corner, b)
	}
	return out
}
