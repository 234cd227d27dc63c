// Package autoroute connects a KiCad schematic, a cwire file and the
// routing engine.
//
// # Overview
//
// A run goes through these steps:
//  1. Validate the cwire file
//  2. Derive the routing board from the schematic:
//     - one obstacle box per placed symbol (its origin and all its pins)
//     and one per hierarchical sheet
//     - the pin map, with nets from pins statements, labels at the pin,
//     or the value of a power symbol
//     - the existing wires, tagged with the net of a label or netted pin
//     at one of their ends, or else the net of the wires they touch
//  3. Resolve cwires into routing requests and cwiredef paths into fixed wires
//  4. Route the requests in file order as one batch
//  5. Write new wires and junctions into the schematic and remove the
//     wires that were split
//
// # Usage
//
//	sch, err := schematic.ParseFile("board.kicad_sch")
//	parser, err := cwire.NewParser()
//	f, err := parser.ParseFile("board.trc")
//
//	report, err := autoroute.Run(ctx, sch, f, route.DefaultConfig())
//	fmt.Println(report)
//
//	err = sch.WriteFile("board.routed.kicad_sch")
//
// Cancellation is checked between requests. A cancelled run returns the
// context error and leaves the schematic unchanged.
package autoroute
