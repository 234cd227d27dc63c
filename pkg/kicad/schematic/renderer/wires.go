package renderer

import (
	"github.com/OpenTraceLab/trace/pkg/kicad/schematic"
)

// Stroke sizes in pixels
const (
	wireWidth        = 2.0
	routedWidth      = 3.0
	junctionDiameter = 8.0
	noConnectSize    = 10.0
)

// renderWires draws every wire; wires listed in routed use the routed color.
func renderWires(c *canvas, wires []schematic.Wire, routed map[schematic.UUID]bool, colors *SchematicColors) {
	for _, wire := range wires {
		if len(wire.Points) < 2 {
			continue
		}
		if routed[wire.UUID] {
			c.polyline(wire.Points, routedWidth, colors.Routed)
		} else {
			c.polyline(wire.Points, wireWidth, colors.Wire)
		}
	}
}

func renderJunctions(c *canvas, junctions []schematic.Junction, colors *SchematicColors) {
	for _, junction := range junctions {
		c.dot(junction.Position, junctionDiameter/2, colors.Junction)
	}
}

// renderNoConnects draws an X on every no-connect marker.
func renderNoConnects(c *canvas, noConnects []schematic.NoConnect, colors *SchematicColors) {
	half := noConnectSize / 2 / c.camera.Zoom // back to world units
	for _, nc := range noConnects {
		p := nc.Position
		c.line(schematic.Position{X: p.X - half, Y: p.Y - half}, schematic.Position{X: p.X + half, Y: p.Y + half}, wireWidth, colors.NoConnect)
		c.line(schematic.Position{X: p.X + half, Y: p.Y - half}, schematic.Position{X: p.X - half, Y: p.Y + half}, wireWidth, colors.NoConnect)
	}
}
