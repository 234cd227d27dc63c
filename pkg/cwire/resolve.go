package cwire

import (
	"fmt"

	"github.com/OpenTraceLab/trace/pkg/kicad/schematic"
	"github.com/OpenTraceLab/trace/pkg/route"
)

// Plan is a cwire file resolved against a schematic.
type Plan struct {
	Requests []route.Request // cwires to autoroute, in file order
	Fixed    []route.Wire    // 2-point wires from cwiredefs, without ids
	Skipped  []Skip          // cwires whose endpoints could not be resolved
	PinNets  map[PinKey]string
}

// Skip records a cwire left out of the plan.
type Skip struct {
	Ref string
	Err error
}

// NetFunc reports the net at a sheet position, "" for none.
type NetFunc func(at schematic.Position) string

// NoNet reports whether a net name means "not connected to a net".
func NoNet(net string) bool {
	return net == "" || net == "NONE" || net == "DNC"
}

func normalizeNet(net string) string {
	if NoNet(net) {
		return ""
	}
	return net
}

// Resolve turns the file's cwires into routing requests and fixed wires.
// Pin nets come from pins statements first, then from netAt if non-nil.
// The file must have passed Validate.
func Resolve(f *File, sch *schematic.Schematic, netAt NetFunc) (*Plan, error) {
	if f == nil || sch == nil {
		return nil, fmt.Errorf("resolve: nil file or schematic")
	}

	plan := &Plan{PinNets: f.PinNets()}

	defs := make(map[string]*CWireDef)
	for _, def := range f.Defs() {
		defs[def.Ref] = def
	}

	junctions := make(map[string]schematic.Position)
	for _, j := range f.Junctions() {
		junctions[j.Ref] = schematic.Position{X: j.At.X, Y: j.At.Y}
	}

	endpoint := func(ep *Endpoint) (schematic.Position, string, error) {
		var at schematic.Position
		if ep.IsJunction() {
			pos, ok := junctions[ep.Ref]
			if !ok {
				return at, "", fmt.Errorf("undefined junction %s", ep.Ref)
			}
			at = pos
		} else {
			pos, err := sch.PinPosition(ep.Ref, ep.Pin)
			if err != nil {
				return at, "", err
			}
			at = pos
			if net, ok := plan.PinNets[PinKey{Ref: ep.Ref, Pin: ep.Pin}]; ok {
				return at, normalizeNet(net), nil
			}
		}
		if netAt != nil {
			return at, normalizeNet(netAt(at)), nil
		}
		return at, "", nil
	}

	for _, cw := range f.CWires() {
		if def, ok := defs[cw.Ref]; ok && len(def.Points) >= 2 {
			for i := 0; i+1 < len(def.Points); i++ {
				a, b := def.Points[i], def.Points[i+1]
				plan.Fixed = append(plan.Fixed, route.Wire{
					Start: route.Point{X: a.X, Y: a.Y},
					End:   route.Point{X: b.X, Y: b.Y},
					Net:   normalizeNet(cw.Net),
				})
			}
			continue
		}

		from, fromNet, err := endpoint(cw.From)
		if err != nil {
			plan.Skipped = append(plan.Skipped, Skip{Ref: cw.Ref, Err: fmt.Errorf("from %s: %w", cw.From, err)})
			continue
		}
		to, toNet, err := endpoint(cw.To)
		if err != nil {
			plan.Skipped = append(plan.Skipped, Skip{Ref: cw.Ref, Err: fmt.Errorf("to %s: %w", cw.To, err)})
			continue
		}

		net := normalizeNet(cw.Net)
		if net == "" && cw.Net == "" {
			net = fromNet
			if net == "" {
				net = toNet
			}
		}

		plan.Requests = append(plan.Requests, route.Request{
			Ref:  cw.Ref,
			From: route.Point{X: from.X, Y: from.Y},
			To:   route.Point{X: to.X, Y: to.Y},
			Net:  net,
		})
	}

	return plan, nil
}
