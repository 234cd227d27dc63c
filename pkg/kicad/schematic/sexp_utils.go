package schematic

import (
	"github.com/OpenTraceLab/trace/pkg/kicad/sexp"
	"github.com/OpenTraceLab/trace/pkg/kicad/sexp/kicadsexp"
)

// positionOf reads the (at X Y [angle]) child of node, zero if absent.
func positionOf(node kicadsexp.Sexp) PositionAngle {
	atNode, found := sexp.FindNode(node, "at")
	if !found {
		return PositionAngle{}
	}
	pos, _ := sexp.GetPosition(atNode)
	return pos
}

// uuidOf reads the (uuid ...) child of node, empty if absent.
func uuidOf(node kicadsexp.Sexp) UUID {
	uuidNode, found := sexp.FindNode(node, "uuid")
	if !found {
		return ""
	}
	id, _ := sexp.GetUUID(uuidNode)
	return id
}

// parsePoints reads every (xy X Y) inside the (pts ...) child of node.
func parsePoints(node kicadsexp.Sexp) []Position {
	ptsNode, found := sexp.FindNode(node, "pts")
	if !found {
		return nil
	}
	var pts []Position
	for _, xy := range sexp.FindAllNodes(ptsNode, "xy") {
		if pos, err := sexp.GetPositionXY(xy); err == nil {
			pts = append(pts, pos)
		}
	}
	return pts
}

func xyNode(p Position) *kicadsexp.List {
	return kicadsexp.Node("xy", kicadsexp.Num(p.X), kicadsexp.Num(p.Y))
}

func uuidNode(id UUID) *kicadsexp.List {
	return kicadsexp.Node("uuid", kicadsexp.Str(string(id)))
}
