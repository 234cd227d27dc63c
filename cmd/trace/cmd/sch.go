package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/OpenTraceLab/trace/pkg/autoroute"
	"github.com/OpenTraceLab/trace/pkg/kicad/schematic"
	"github.com/OpenTraceLab/trace/pkg/kicad/schematic/renderer"
	"github.com/spf13/cobra"
)

var schCmd = &cobra.Command{
	Use:   "sch",
	Short: "KiCad schematic file operations",
	Long:  `Commands for working with KiCad schematic files (.kicad_sch)`,
}

var schInfoCmd = &cobra.Command{
	Use:   "info <schematic_file> [component]",
	Short: "Show schematic information",
	Long: `Display information about a KiCad schematic file.

Without component argument: shows schematic summary and routing board
With component argument: shows details for that specific component`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSchInfo,
}

var (
	renderOutput string
	renderTheme  string
	renderWidth  int
	renderHeight int
)

var schRenderCmd = &cobra.Command{
	Use:   "render <schematic_file>",
	Short: "Render a schematic to PNG",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchRender,
}

func init() {
	rootCmd.AddCommand(schCmd)
	schCmd.AddCommand(schInfoCmd)
	schCmd.AddCommand(schRenderCmd)

	schRenderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output PNG file (default: <schematic>.png)")
	schRenderCmd.Flags().StringVar(&renderTheme, "theme", "light", "color theme (light, dark)")
	schRenderCmd.Flags().IntVar(&renderWidth, "width", 1600, "image width in pixels")
	schRenderCmd.Flags().IntVar(&renderHeight, "height", 1200, "image height in pixels")
}

func runSchInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]
	sch, err := schematic.ParseFile(filename)
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(args) >= 2 {
		// Show details for specific component
		return showComponentDetails(out, sch, args[1])
	}

	showSchemSummary(out, sch, filename)
	return nil
}

func showSchemSummary(out io.Writer, sch *schematic.Schematic, filename string) {
	fmt.Fprintf(out, "Schematic: %s\n", filename)
	fmt.Fprintf(out, "Version: %d\n", sch.Version)
	fmt.Fprintf(out, "Generator: %s", sch.Generator)
	if sch.GeneratorVer != "" {
		fmt.Fprintf(out, " v%s", sch.GeneratorVer)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Paper: %s\n", sch.Paper)
	fmt.Fprintln(out)

	// Title block
	if sch.TitleBlock.Title != "" || sch.TitleBlock.Revision != "" {
		fmt.Fprintln(out, "Title Block:")
		if sch.TitleBlock.Title != "" {
			fmt.Fprintf(out, "  Title: %s\n", sch.TitleBlock.Title)
		}
		if sch.TitleBlock.Date != "" {
			fmt.Fprintf(out, "  Date: %s\n", sch.TitleBlock.Date)
		}
		if sch.TitleBlock.Revision != "" {
			fmt.Fprintf(out, "  Revision: %s\n", sch.TitleBlock.Revision)
		}
		if sch.TitleBlock.Company != "" {
			fmt.Fprintf(out, "  Company: %s\n", sch.TitleBlock.Company)
		}
		fmt.Fprintln(out)
	}

	// Statistics
	fmt.Fprintln(out, "Statistics:")
	fmt.Fprintf(out, "  Components: %d\n", len(sch.Symbols))
	fmt.Fprintf(out, "  Library symbols: %d\n", len(sch.LibSymbols))
	fmt.Fprintf(out, "  Wires: %d\n", len(sch.Wires))
	fmt.Fprintf(out, "  Junctions: %d\n", len(sch.Junctions))
	fmt.Fprintf(out, "  Labels: %d\n", len(sch.Labels))
	fmt.Fprintf(out, "  Global labels: %d\n", len(sch.GlobalLabels))
	fmt.Fprintf(out, "  Hierarchical labels: %d\n", len(sch.HierLabels))
	fmt.Fprintf(out, "  Sheets: %d\n", len(sch.Sheets))
	fmt.Fprintf(out, "  No-connects: %d\n", len(sch.NoConnects))
	fmt.Fprintln(out)

	// What the router sees
	board := autoroute.Derive(sch, nil)
	netted := 0
	for _, w := range board.Wires {
		if w.Net != "" {
			netted++
		}
	}
	fmt.Fprintln(out, "Routing board:")
	fmt.Fprintf(out, "  Obstacles: %d\n", len(board.Obstacles))
	fmt.Fprintf(out, "  Pins: %d\n", len(board.Pins))
	fmt.Fprintf(out, "  Wire segments: %d (%d on a net)\n", len(board.Wires), netted)
	fmt.Fprintln(out)

	// Component list
	if len(sch.Symbols) > 0 {
		fmt.Fprintln(out, "Components:")

		// Group by reference prefix
		byPrefix := make(map[string][]string)
		for _, ref := range sch.GetAllReferences() {
			prefix := getRefPrefix(ref)
			byPrefix[prefix] = append(byPrefix[prefix], ref)
		}

		var prefixes []string
		for p := range byPrefix {
			prefixes = append(prefixes, p)
		}
		sort.Strings(prefixes)

		for _, prefix := range prefixes {
			refs := byPrefix[prefix]
			sort.Strings(refs)
			fmt.Fprintf(out, "  %s: %s\n", prefix, strings.Join(refs, ", "))
		}
		fmt.Fprintln(out)
	}

	// Labels
	labels := sch.GetLabels()
	if len(labels) > 0 {
		fmt.Fprintln(out, "Net Labels:")
		sort.Strings(labels)
		for _, l := range labels {
			fmt.Fprintf(out, "  %s\n", l)
		}
		fmt.Fprintln(out)
	}

	// Hierarchical sheets
	if len(sch.Sheets) > 0 {
		fmt.Fprintln(out, "Hierarchical Sheets:")
		for _, sheet := range sch.Sheets {
			fmt.Fprintf(out, "  %s (%s)\n", sheet.Name, sheet.FileName)
			if len(sheet.Pins) > 0 {
				var pinNames []string
				for _, p := range sheet.Pins {
					pinNames = append(pinNames, p.Name)
				}
				fmt.Fprintf(out, "    Pins: %s\n", strings.Join(pinNames, ", "))
			}
		}
	}
}

func showComponentDetails(out io.Writer, sch *schematic.Schematic, ref string) error {
	sym := sch.GetSymbol(ref)
	if sym == nil {
		return fmt.Errorf("component '%s' not found", ref)
	}

	fmt.Fprintf(out, "Component: %s\n", ref)
	fmt.Fprintf(out, "Library: %s\n", sym.LibID)
	fmt.Fprintf(out, "Value: %s\n", sym.Value())
	fmt.Fprintf(out, "Position: (%.2f, %.2f)\n", sym.Position.X, sym.Position.Y)
	if sym.Angle != 0 {
		fmt.Fprintf(out, "Rotation: %.1f°\n", float64(sym.Angle))
	}
	if sym.Mirror != "" {
		fmt.Fprintf(out, "Mirror: %s\n", sym.Mirror)
	}
	fmt.Fprintf(out, "Unit: %d\n", sym.Unit)
	fmt.Fprintln(out)

	// Properties
	if len(sym.Properties) > 0 {
		fmt.Fprintln(out, "Properties:")
		for _, prop := range sym.Properties {
			fmt.Fprintf(out, "  %s: %s\n", prop.Key, prop.Value)
		}
		fmt.Fprintln(out)
	}

	pins := sch.SymbolPins(sym)
	if len(pins) > 0 {
		fmt.Fprintln(out, "Pins:")
		for _, pin := range pins {
			fmt.Fprintf(out, "  %s (%s) at (%.2f, %.2f)\n", pin.Number, pin.Name, pin.At.X, pin.At.Y)
		}
	}

	return nil
}

func getRefPrefix(ref string) string {
	// Extract prefix (letters before numbers)
	for i, c := range ref {
		if c >= '0' && c <= '9' {
			return ref[:i]
		}
	}
	return ref
}

func runSchRender(cmd *cobra.Command, args []string) error {
	filename := args[0]
	sch, err := schematic.ParseFile(filename)
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}

	theme, ok := renderer.ParseTheme(renderTheme)
	if !ok {
		return fmt.Errorf("unknown theme %q", renderTheme)
	}
	opts := renderer.DefaultRenderOptions()
	opts.Theme = theme
	opts.Width = renderWidth
	opts.Height = renderHeight

	output := renderOutput
	if output == "" {
		output = strings.TrimSuffix(filename, ".kicad_sch") + ".png"
	}
	if err := renderer.WritePNGFile(output, sch, opts); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
	return nil
}
