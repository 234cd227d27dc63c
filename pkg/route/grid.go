package route

import "math"

// GridPitch is the KiCad schematic connection grid (50 mil).
const GridPitch = 1.27

// Cell is a vertex of the routing grid.
type Cell struct {
	X, Y int
}

// Grid maps between world coordinates and grid cells.
type Grid struct {
	Pitch float64
}

// ToCell returns the cell nearest to p. Halfway values round to even.
func (g Grid) ToCell(p Point) Cell {
	return Cell{
		X: int(math.RoundToEven(p.X / g.Pitch)),
		Y: int(math.RoundToEven(p.Y / g.Pitch)),
	}
}

// ToWorld returns the world position of c.
func (g Grid) ToWorld(c Cell) Point {
	return Point{X: float64(c.X) * g.Pitch, Y: float64(c.Y) * g.Pitch}
}

// Snap moves p to the nearest grid vertex.
func (g Grid) Snap(p Point) Point {
	return g.ToWorld(g.ToCell(p))
}

// neighbors returns the 4-connected neighbors of c ordered by Manhattan
// distance to goal. Ties keep the order +X, -X, +Y, -Y.
func (g Grid) neighbors(c, goal Cell) [4]Cell {
	n := [4]Cell{
		{c.X + 1, c.Y},
		{c.X - 1, c.Y},
		{c.X, c.Y + 1},
		{c.X, c.Y - 1},
	}
	// insertion sort keeps equal distances stable
	for i := 1; i < len(n); i++ {
		for j := i; j > 0 && cellDistance(n[j], goal) < cellDistance(n[j-1], goal); j-- {
			n[j], n[j-1] = n[j-1], n[j]
		}
	}
	return n
}

func cellDistance(a, b Cell) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
