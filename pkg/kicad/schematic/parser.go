package schematic

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/trace/pkg/kicad/sexp"
	"github.com/OpenTraceLab/trace/pkg/kicad/sexp/kicadsexp"
)

// Minimum supported KiCad version for schematics (6.0 = 20211014)
const MinSupportedVersion = 20211014

// ParseFile reads and parses a KiCad schematic file
func ParseFile(filename string) (*Schematic, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	sch, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return sch, nil
}

// Parse reads and parses a KiCad schematic from an io.Reader
func Parse(r io.Reader) (*Schematic, error) {
	sexps, err := kicadsexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}

	if len(sexps) == 0 {
		return nil, fmt.Errorf("empty file or no valid s-expressions found")
	}

	root, ok := sexps[0].(*kicadsexp.List)
	if !ok {
		return nil, fmt.Errorf("not a KiCad schematic file: top-level atom %q", sexps[0].String())
	}

	if root.Name() != "kicad_sch" {
		return nil, fmt.Errorf("not a KiCad schematic file: expected 'kicad_sch', got '%s'", root.Name())
	}

	sch := &Schematic{Root: root}

	if err := parseHeader(root, sch); err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	if uuidNode, found := sexp.FindNode(root, "uuid"); found {
		sch.UUID, _ = sexp.GetUUID(uuidNode)
	}

	if paperNode, found := sexp.FindNode(root, "paper"); found {
		sch.Paper, _ = sexp.GetQuotedString(paperNode, 1)
	}

	if titleBlockNode, found := sexp.FindNode(root, "title_block"); found {
		sch.TitleBlock = parseTitleBlock(titleBlockNode)
	}

	if libSymbolsNode, found := sexp.FindNode(root, "lib_symbols"); found {
		sch.LibSymbols = parseLibSymbols(libSymbolsNode)
	}

	sch.refresh()

	if instancesNode, found := sexp.FindNode(root, "sheet_instances"); found {
		sch.SheetInstances = parseSheetInstances(instancesNode)
	}

	return sch, nil
}

// refresh re-reads the placed elements from Root.
func (s *Schematic) refresh() {
	s.Symbols = parseSymbols(s.Root)
	s.Wires = parseWires(s.Root)
	s.Junctions = parseJunctions(s.Root)
	s.NoConnects = parseNoConnects(s.Root)
	s.Labels = parseLabels(s.Root, "label")
	s.GlobalLabels = parseLabels(s.Root, "global_label")
	s.HierLabels = parseLabels(s.Root, "hierarchical_label")
	s.Sheets = parseSheets(s.Root)
}

// parseHeader extracts version and generator information
func parseHeader(root kicadsexp.Sexp, sch *Schematic) error {
	versionNode, found := sexp.FindNode(root, "version")
	if !found {
		return fmt.Errorf("missing required 'version' field")
	}

	ver, err := sexp.GetInt(versionNode, 1)
	if err != nil {
		return fmt.Errorf("failed to parse version: %w", err)
	}

	if ver < MinSupportedVersion {
		return fmt.Errorf("unsupported KiCad version: %d (minimum required: %d / KiCad 6.0)", ver, MinSupportedVersion)
	}
	sch.Version = ver

	if genNode, found := sexp.FindNode(root, "generator"); found {
		sch.Generator, _ = sexp.GetQuotedString(genNode, 1)
	}

	if genVerNode, found := sexp.FindNode(root, "generator_version"); found {
		sch.GeneratorVer, _ = sexp.GetQuotedString(genVerNode, 1)
	}

	return nil
}

// parseTitleBlock extracts title block information
func parseTitleBlock(node kicadsexp.Sexp) TitleBlock {
	tb := TitleBlock{}

	if titleNode, found := sexp.FindNode(node, "title"); found {
		tb.Title, _ = sexp.GetQuotedString(titleNode, 1)
	}
	if dateNode, found := sexp.FindNode(node, "date"); found {
		tb.Date, _ = sexp.GetQuotedString(dateNode, 1)
	}
	if revNode, found := sexp.FindNode(node, "rev"); found {
		tb.Revision, _ = sexp.GetQuotedString(revNode, 1)
	}
	if companyNode, found := sexp.FindNode(node, "company"); found {
		tb.Company, _ = sexp.GetQuotedString(companyNode, 1)
	}

	return tb
}

// parseLibSymbols parses embedded library symbols
func parseLibSymbols(node kicadsexp.Sexp) []LibSymbol {
	symbolNodes := sexp.FindAllNodes(node, "symbol")
	symbols := make([]LibSymbol, 0, len(symbolNodes))

	for _, symNode := range symbolNodes {
		symbols = append(symbols, parseLibSymbol(symNode))
	}

	return symbols
}

// parseLibSymbol parses a single library symbol definition
func parseLibSymbol(node kicadsexp.Sexp) LibSymbol {
	sym := LibSymbol{
		InBom:   sexp.GetYesNo(node, "in_bom", true),
		OnBoard: sexp.GetYesNo(node, "on_board", true),
	}

	sym.Name, _ = sexp.GetQuotedString(node, 1)

	_, sym.Power = sexp.FindNode(node, "power")

	for _, pn := range sexp.FindAllNodes(node, "property") {
		if prop, err := sexp.GetProperty(pn); err == nil {
			sym.Properties = append(sym.Properties, prop)
		}
	}

	// Pins placed directly in the symbol body belong to every unit
	if pins := parsePins(node); len(pins) > 0 {
		sym.Units = append(sym.Units, SymbolUnit{Name: sym.Name, Pins: pins})
	}

	for _, unitNode := range sexp.FindAllNodes(node, "symbol") {
		sym.Units = append(sym.Units, parseSymbolUnit(unitNode))
	}

	return sym
}

// parseSymbolUnit parses a nested symbol unit named "<name>_<unit>_<style>"
func parseSymbolUnit(node kicadsexp.Sexp) SymbolUnit {
	unit := SymbolUnit{}
	unit.Name, _ = sexp.GetQuotedString(node, 1)
	unit.Unit, unit.BodyStyle = unitNumbers(unit.Name)
	unit.Pins = parsePins(node)
	return unit
}

// unitNumbers splits the unit and body style suffixes off a unit name.
// A name with a single numeric suffix is read as a unit of body style 1.
func unitNumbers(name string) (unit, bodyStyle int) {
	parts := strings.Split(name, "_")
	n := len(parts)
	if n >= 3 {
		u, errU := strconv.Atoi(parts[n-2])
		b, errB := strconv.Atoi(parts[n-1])
		if errU == nil && errB == nil {
			return u, b
		}
	}
	if n >= 2 {
		if u, err := strconv.Atoi(parts[n-1]); err == nil {
			return u, 1
		}
	}
	return 0, 0
}

func parsePins(node kicadsexp.Sexp) []Pin {
	var pins []Pin
	for _, pn := range sexp.FindAllNodes(node, "pin") {
		pins = append(pins, parsePin(pn))
	}
	return pins
}

// parsePin parses a pin definition
func parsePin(node kicadsexp.Sexp) Pin {
	pin := Pin{}

	pin.Type, _ = sexp.GetString(node, 1)
	pin.Style, _ = sexp.GetString(node, 2)

	if atNode, found := sexp.FindNode(node, "at"); found {
		pos, _ := sexp.GetPosition(atNode)
		pin.Position = pos.Position
		pin.Angle = pos.Angle
	}

	if lenNode, found := sexp.FindNode(node, "length"); found {
		pin.Length, _ = sexp.GetFloat(lenNode, 1)
	}

	if nameNode, found := sexp.FindNode(node, "name"); found {
		pin.Name, _ = sexp.GetQuotedString(nameNode, 1)
	}

	if numNode, found := sexp.FindNode(node, "number"); found {
		pin.Number, _ = sexp.GetQuotedString(numNode, 1)
	}

	// KiCad 6 writes a bare "hide", KiCad 8 writes (hide yes)
	pin.Hide = sexp.HasSymbol(node, "hide") || sexp.GetYesNo(node, "hide", false)

	return pin
}

// parseSymbols parses symbol instances
func parseSymbols(root kicadsexp.Sexp) []Symbol {
	symbolNodes := sexp.FindAllNodes(root, "symbol")
	symbols := make([]Symbol, 0, len(symbolNodes))

	for _, symNode := range symbolNodes {
		symbols = append(symbols, parseSymbol(symNode))
	}

	return symbols
}

// parseSymbol parses a single symbol instance
func parseSymbol(node kicadsexp.Sexp) Symbol {
	sym := Symbol{
		InBom:     sexp.GetYesNo(node, "in_bom", true),
		OnBoard:   sexp.GetYesNo(node, "on_board", true),
		Unit:      1,
		BodyStyle: 1,
	}

	if libNode, found := sexp.FindNode(node, "lib_id"); found {
		sym.LibID, _ = sexp.GetQuotedString(libNode, 1)
	}

	if atNode, found := sexp.FindNode(node, "at"); found {
		pos, _ := sexp.GetPosition(atNode)
		sym.Position = pos.Position
		sym.Angle = pos.Angle
	}

	if mirrorNode, found := sexp.FindNode(node, "mirror"); found {
		sym.Mirror, _ = sexp.GetString(mirrorNode, 1)
	}

	if unitNode, found := sexp.FindNode(node, "unit"); found {
		if u, err := sexp.GetInt(unitNode, 1); err == nil {
			sym.Unit = u
		}
	}

	// "convert" before KiCad 9, "body_style" after
	for _, key := range []string{"convert", "body_style"} {
		if styleNode, found := sexp.FindNode(node, key); found {
			if b, err := sexp.GetInt(styleNode, 1); err == nil {
				sym.BodyStyle = b
			}
		}
	}

	if uuidNode, found := sexp.FindNode(node, "uuid"); found {
		sym.UUID, _ = sexp.GetUUID(uuidNode)
	}

	for _, pn := range sexp.FindAllNodes(node, "property") {
		if prop, err := sexp.GetProperty(pn); err == nil {
			sym.Properties = append(sym.Properties, prop)
		}
	}

	return sym
}

// parseWires parses wire connections
func parseWires(root kicadsexp.Sexp) []Wire {
	wireNodes := sexp.FindAllNodes(root, "wire")
	wires := make([]Wire, 0, len(wireNodes))

	for _, wn := range wireNodes {
		wires = append(wires, Wire{
			Points: parsePoints(wn),
			UUID:   uuidOf(wn),
		})
	}

	return wires
}

// parseJunctions parses wire junctions
func parseJunctions(root kicadsexp.Sexp) []Junction {
	juncNodes := sexp.FindAllNodes(root, "junction")
	junctions := make([]Junction, 0, len(juncNodes))

	for _, jn := range juncNodes {
		junc := Junction{
			Position: positionOf(jn).Position,
			UUID:     uuidOf(jn),
		}
		if diamNode, found := sexp.FindNode(jn, "diameter"); found {
			junc.Diameter, _ = sexp.GetFloat(diamNode, 1)
		}
		junctions = append(junctions, junc)
	}

	return junctions
}

// parseNoConnects parses no-connect markers
func parseNoConnects(root kicadsexp.Sexp) []NoConnect {
	ncNodes := sexp.FindAllNodes(root, "no_connect")
	ncs := make([]NoConnect, 0, len(ncNodes))

	for _, ncn := range ncNodes {
		ncs = append(ncs, NoConnect{
			Position: positionOf(ncn).Position,
			UUID:     uuidOf(ncn),
		})
	}

	return ncs
}

// parseLabels parses label, global_label or hierarchical_label nodes
func parseLabels(root kicadsexp.Sexp, key string) []Label {
	labelNodes := sexp.FindAllNodes(root, key)
	labels := make([]Label, 0, len(labelNodes))

	for _, ln := range labelNodes {
		label := Label{UUID: uuidOf(ln)}
		label.Text, _ = sexp.GetQuotedString(ln, 1)

		if shapeNode, found := sexp.FindNode(ln, "shape"); found {
			label.Shape, _ = sexp.GetString(shapeNode, 1)
		}

		pos := positionOf(ln)
		label.Position = pos.Position
		label.Angle = pos.Angle

		labels = append(labels, label)
	}

	return labels
}

// parseSheets parses hierarchical sheet references
func parseSheets(root kicadsexp.Sexp) []Sheet {
	sheetNodes := sexp.FindAllNodes(root, "sheet")
	sheets := make([]Sheet, 0, len(sheetNodes))

	for _, sn := range sheetNodes {
		sheet := Sheet{
			Position: positionOf(sn).Position,
			UUID:     uuidOf(sn),
		}

		if sizeNode, found := sexp.FindNode(sn, "size"); found {
			sheet.Size, _ = sexp.GetSize(sizeNode)
		}

		for _, pn := range sexp.FindAllNodes(sn, "property") {
			prop, err := sexp.GetProperty(pn)
			if err != nil {
				continue
			}
			// KiCad 6 used "Sheet name"/"Sheet file"
			switch prop.Key {
			case "Sheetname", "Sheet name":
				sheet.Name = prop.Value
			case "Sheetfile", "Sheet file":
				sheet.FileName = prop.Value
			}
		}

		for _, pn := range sexp.FindAllNodes(sn, "pin") {
			pin := SheetPin{
				Position: positionOf(pn).Position,
				UUID:     uuidOf(pn),
			}
			pin.Name, _ = sexp.GetQuotedString(pn, 1)
			pin.Shape, _ = sexp.GetString(pn, 2)
			sheet.Pins = append(sheet.Pins, pin)
		}

		sheets = append(sheets, sheet)
	}

	return sheets
}

// parseSheetInstances parses sheet instance paths
func parseSheetInstances(node kicadsexp.Sexp) []SheetInstance {
	pathNodes := sexp.FindAllNodes(node, "path")
	instances := make([]SheetInstance, 0, len(pathNodes))

	for _, pn := range pathNodes {
		inst := SheetInstance{}
		inst.Path, _ = sexp.GetQuotedString(pn, 1)

		if pageNode, found := sexp.FindNode(pn, "page"); found {
			inst.Page, _ = sexp.GetQuotedString(pageNode, 1)
		}

		instances = append(instances, inst)
	}

	return instances
}
