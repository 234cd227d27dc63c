package route

import (
	"fmt"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Point is a location in schematic world coordinates (millimeters).
type Point = vec.Vec2

// Box is an axis-aligned obstacle area. LLx/LLy hold the minimum and
// URx/URy the maximum coordinates.
type Box = rect.Rect

// Wire is a 2-point wire record.
type Wire struct {
	ID    string
	Start Point
	End   Point
	Net   string // empty means no net
}

func (w Wire) String() string {
	return fmt.Sprintf("wire %s (%g,%g)-(%g,%g)", w.ID, w.Start.X, w.Start.Y, w.End.X, w.End.Y)
}

// Pin is a component connection point.
type Pin struct {
	At  Point
	Net string
}

// Request is one connection to be autorouted.
type Request struct {
	Ref  string // cwire reference, used for diagnostics only
	From Point
	To   Point
	Net  string
}

// Board holds the geometric facts a batch is routed against.
type Board struct {
	Obstacles []Box  // component and sheet bodies
	Wires     []Wire // existing wires, optionally tagged with a net
	Pins      []Pin  // every component pin, in schematic order
}

// Result is the accumulated output of a batch.
type Result struct {
	Wires     []Wire    // new wire records, including the halves of split wires
	Junctions []Point   // junctions at early-termination points on wires
	Deleted   []string  // ids of existing wires superseded by splits
	Unrouted  []Request // requests for which no path was found
}

// Stop describes why a search ended before reaching its goal. A nil Stop
// means the goal was reached. The concrete type is WireStop or PinStop.
type Stop interface {
	// Point returns the location where the route ends.
	Point() Point
	isStop()
}

// WireStop reports that the route joined a same-net wire.
type WireStop struct {
	Wire Wire
	At   Point // grid-snapped point on the wire
}

func (s WireStop) Point() Point { return s.At }
func (WireStop) isStop()        {}

// PinStop reports that the route reached a same-net pin.
type PinStop struct {
	Pin Pin
}

func (s PinStop) Point() Point { return s.Pin.At }
func (PinStop) isStop()        {}

// Path is a successful search result.
type Path struct {
	Points []Point
	Stop   Stop
}

// SameNet reports whether two net names denote the same net.
// An empty name never matches.
func SameNet(a, b string) bool {
	return a != "" && a == b
}
