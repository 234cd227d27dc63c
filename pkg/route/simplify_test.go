package route

import (
	"reflect"
	"testing"
)

func TestSimplify(t *testing.T) {
	tests := []struct {
		name string
		in   []Point
		want []Point
	}{
		{
			name: "single corner",
			in: []Point{
				{X: 0, Y: 0}, {X: 1.27, Y: 0}, {X: 2.54, Y: 0},
				{X: 2.54, Y: 1.27}, {X: 2.54, Y: 2.54}, {X: 3, Y: 2.54},
			},
			want: []Point{{X: 0, Y: 0}, {X: 2.54, Y: 0}, {X: 2.54, Y: 2.54}, {X: 3, Y: 2.54}},
		},
		{
			name: "straight run",
			in:   []Point{{X: 0, Y: 0}, {X: 1.27, Y: 0}, {X: 2.54, Y: 0}, {X: 10, Y: 0}},
			want: []Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
		},
		{
			name: "diagonal step kept",
			in:   []Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}},
			want: []Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}},
		},
		{
			name: "two points untouched",
			in:   []Point{{X: 0, Y: 0}, {X: 0.3, Y: 0.2}},
			want: []Point{{X: 0, Y: 0}, {X: 0.3, Y: 0.2}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Simplify(tt.in, AxisTolerance)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			again := Simplify(got, AxisTolerance)
			if !reflect.DeepEqual(again, got) {
				t.Errorf("simplify is not idempotent: %v then %v", got, again)
			}
		})
	}
}

func TestSimplifyKeepsEndpoints(t *testing.T) {
	in := []Point{{X: 0.1, Y: 0.05}, {X: 1.27, Y: 0}, {X: 2.54, Y: 0}, {X: 2.54, Y: 1.27}, {X: 2.6, Y: 1.3}}
	got := Simplify(in, AxisTolerance)
	if got[0] != in[0] {
		t.Errorf("first point changed: %v", got[0])
	}
	if got[len(got)-1] != in[len(in)-1] {
		t.Errorf("last point changed: %v", got[len(got)-1])
	}
}

func TestOrthogonalize(t *testing.T) {
	tests := []struct {
		name string
		in   []Point
		want []Point
	}{
		{
			name: "already orthogonal",
			in:   []Point{{X: 0, Y: 0}, {X: 2.54, Y: 0}, {X: 2.54, Y: 2.54}},
			want: []Point{{X: 0, Y: 0}, {X: 2.54, Y: 0}, {X: 2.54, Y: 2.54}},
		},
		{
			name: "off-grid end after horizontal run",
			in:   []Point{{X: 0, Y: 0}, {X: 3.81, Y: 0}, {X: 5.1, Y: 0.05}},
			want: []Point{{X: 0, Y: 0}, {X: 3.81, Y: 0}, {X: 5.1, Y: 0}, {X: 5.1, Y: 0.05}},
		},
		{
			name: "off-grid start before horizontal run",
			in:   []Point{{X: 0.2, Y: 0.3}, {X: 1.27, Y: 0}, {X: 5.08, Y: 0}},
			want: []Point{{X: 0.2, Y: 0.3}, {X: 0.2, Y: 0}, {X: 1.27, Y: 0}, {X: 5.08, Y: 0}},
		},
		{
			name: "off-grid start before vertical run",
			in:   []Point{{X: 0.2, Y: 0.3}, {X: 1.27, Y: 1.27}, {X: 1.27, Y: 5.08}},
			want: []Point{{X: 0.2, Y: 0.3}, {X: 1.27, Y: 0.3}, {X: 1.27, Y: 1.27}, {X: 1.27, Y: 5.08}},
		},
		{
			name: "lone diagonal",
			in:   []Point{{X: 0, Y: 0}, {X: 0.3, Y: 0.2}},
			want: []Point{{X: 0, Y: 0}, {X: 0.3, Y: 0}, {X: 0.3, Y: 0.2}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Orthogonalize(tt.in, AxisTolerance)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
