package route

import "testing"

func TestPointInRect(t *testing.T) {
	box := Box{LLx: 4, LLy: -1, URx: 6, URy: 1}
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{X: 5, Y: 0}, true},
		{Point{X: 4, Y: -1}, true}, // corner is inside
		{Point{X: 6.01, Y: 0}, false},
		{Point{X: 5, Y: 1.27}, false},
	}
	for _, tt := range tests {
		if got := PointInRect(tt.p, box); got != tt.want {
			t.Errorf("PointInRect(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name                   string
		aMin, aMax, bMin, bMax float64
		want                   bool
	}{
		{"disjoint", 0, 1, 2, 3, false},
		{"touching", 0, 1, 1, 2, false},
		{"shared length", 0, 2, 1, 3, true},
		{"reversed bounds", 2, 0, 3, 1, true},
		{"contained", 0, 10, 4, 5, true},
		{"within tolerance", 0, 1, 0.95, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RangesOverlap(tt.aMin, tt.aMax, tt.bMin, tt.bMax, 0.1); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSegmentIntersectsRect(t *testing.T) {
	box := Box{LLx: 4, LLy: -1, URx: 6, URy: 1}
	tests := []struct {
		name string
		a, b Point
		want bool
	}{
		{"through", Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, true},
		{"above", Point{X: 0, Y: 2}, Point{X: 10, Y: 2}, false},
		{"stops short", Point{X: 0, Y: 0}, Point{X: 3, Y: 0}, false},
		{"vertical through", Point{X: 5, Y: -5}, Point{X: 5, Y: 5}, true},
		{"starts inside", Point{X: 5, Y: 0}, Point{X: 5, Y: 10}, true},
		{"degenerate inside", Point{X: 5, Y: 0}, Point{X: 5, Y: 0}, true},
		{"degenerate outside", Point{X: 0, Y: 0}, Point{X: 0, Y: 0}, false},
		{"right of box", Point{X: 7, Y: -5}, Point{X: 7, Y: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentIntersectsRect(tt.a, tt.b, box); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSegmentsOverlapParallel(t *testing.T) {
	tests := []struct {
		name           string
		a1, a2, b1, b2 Point
		want           bool
	}{
		{
			name: "collinear horizontal overlap",
			a1:   Point{X: 0, Y: 0}, a2: Point{X: 5, Y: 0},
			b1: Point{X: 3, Y: 0}, b2: Point{X: 8, Y: 0},
			want: true,
		},
		{
			name: "collinear horizontal end to end",
			a1:   Point{X: 0, Y: 0}, a2: Point{X: 5, Y: 0},
			b1: Point{X: 5, Y: 0}, b2: Point{X: 8, Y: 0},
			want: false,
		},
		{
			name: "parallel different lines",
			a1:   Point{X: 0, Y: 0}, a2: Point{X: 5, Y: 0},
			b1: Point{X: 0, Y: 1.27}, b2: Point{X: 5, Y: 1.27},
			want: false,
		},
		{
			name: "collinear vertical overlap",
			a1:   Point{X: 2, Y: 0}, a2: Point{X: 2, Y: 5},
			b1: Point{X: 2, Y: 4}, b2: Point{X: 2, Y: 1},
			want: true,
		},
		{
			name: "orthogonal crossing",
			a1:   Point{X: 0, Y: 0}, a2: Point{X: 10, Y: 0},
			b1: Point{X: 5, Y: -5}, b2: Point{X: 5, Y: 5},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentsOverlapParallel(tt.a1, tt.a2, tt.b1, tt.b2, OverlapTolerance); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestIsOrthogonalCrossing(t *testing.T) {
	h1, h2 := Point{X: 0, Y: 0}, Point{X: 10, Y: 0}
	v1, v2 := Point{X: 5, Y: -5}, Point{X: 5, Y: 5}

	if !IsOrthogonalCrossing(h1, h2, v1, v2, AxisTolerance) {
		t.Error("horizontal and vertical segments should be an orthogonal crossing")
	}
	if !IsOrthogonalCrossing(v1, v2, h1, h2, AxisTolerance) {
		t.Error("crossing test should be symmetric")
	}
	if IsOrthogonalCrossing(h1, h2, Point{X: 0, Y: 3}, Point{X: 10, Y: 3}, AxisTolerance) {
		t.Error("two horizontal segments are not an orthogonal crossing")
	}
}

func TestPointOnSegment(t *testing.T) {
	a, b := Point{X: 0, Y: 0}, Point{X: 10, Y: 0}
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"midpoint", Point{X: 5, Y: 0}, true},
		{"near line", Point{X: 5, Y: 0.5}, true},
		{"too far", Point{X: 5, Y: 0.8}, false},
		{"before start", Point{X: -0.5, Y: 0}, false},
		{"past end", Point{X: 10.5, Y: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointOnSegment(tt.p, a, b, 0.762); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	// degenerate segment compares against its single point
	if !PointOnSegment(Point{X: 1, Y: 1.05}, Point{X: 1, Y: 1}, Point{X: 1, Y: 1}, 0.1) {
		t.Error("point close to a degenerate segment should be on it")
	}
	if PointOnSegment(Point{X: 1, Y: 1.5}, Point{X: 1, Y: 1}, Point{X: 1, Y: 1}, 0.1) {
		t.Error("point far from a degenerate segment should not be on it")
	}
}

func TestManhattanAndDistance(t *testing.T) {
	a, b := Point{X: 0, Y: 0}, Point{X: 3, Y: 4}
	if got := Manhattan(a, b); got != 7 {
		t.Errorf("expected Manhattan 7, got %g", got)
	}
	if got := Distance(a, b); got != 5 {
		t.Errorf("expected Distance 5, got %g", got)
	}
}
