package cwire

import (
	"errors"
	"fmt"
	"strings"
)

// Reference prefixes of cwires and junctions.
const (
	RefPrefix      = "CW"
	JunctionPrefix = "JUNC"
)

// Validate checks the semantic rules the grammar cannot express. All
// problems are reported, joined into one error.
func (f *File) Validate() error {
	var errs []error

	cwires := make(map[string]bool)
	for _, cw := range f.CWires() {
		if !strings.HasPrefix(cw.Ref, RefPrefix) {
			errs = append(errs, fmt.Errorf("%s: cwire reference %q must start with %s", cw.Pos, cw.Ref, RefPrefix))
		}
		if cwires[cw.Ref] {
			errs = append(errs, fmt.Errorf("%s: duplicate cwire %s", cw.Pos, cw.Ref))
		}
		cwires[cw.Ref] = true
	}

	defs := make(map[string]bool)
	for _, def := range f.Defs() {
		if len(def.Points) < 2 {
			errs = append(errs, fmt.Errorf("%s: cwiredef %s needs at least 2 points", def.Pos, def.Ref))
		}
		if defs[def.Ref] {
			errs = append(errs, fmt.Errorf("%s: duplicate cwiredef %s", def.Pos, def.Ref))
		}
		defs[def.Ref] = true
		if !cwires[def.Ref] {
			errs = append(errs, fmt.Errorf("%s: cwiredef %s has no matching cwire", def.Pos, def.Ref))
		}
	}

	junctions := make(map[string]bool)
	for _, j := range f.Junctions() {
		if junctions[j.Ref] {
			errs = append(errs, fmt.Errorf("%s: duplicate junction %s", j.Pos, j.Ref))
		}
		junctions[j.Ref] = true
	}

	for _, cw := range f.CWires() {
		if defs[cw.Ref] {
			continue // endpoints are not needed for explicit paths
		}
		for _, ep := range []*Endpoint{cw.From, cw.To} {
			if ep.IsJunction() && !junctions[ep.Ref] {
				errs = append(errs, fmt.Errorf("%s: cwire %s uses undefined junction %s", ep.Pos, cw.Ref, ep.Ref))
			}
		}
	}

	return errors.Join(errs...)
}
