package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/OpenTraceLab/trace/pkg/autoroute"
	"github.com/OpenTraceLab/trace/pkg/cwire"
	"github.com/OpenTraceLab/trace/pkg/kicad/schematic"
	"github.com/OpenTraceLab/trace/pkg/kicad/schematic/renderer"
	"github.com/OpenTraceLab/trace/pkg/route"
	"github.com/spf13/cobra"
)

var (
	routeOutput        string
	routePreview       string
	routeTheme         string
	routeGrid          float64
	routeMaxIterations int
	routeStrict        bool
)

var routeCmd = &cobra.Command{
	Use:   "route <schematic_file> <cwire_file>",
	Short: "Route cwires into a schematic",
	Long: `Route every cwire of a cwire file as orthogonal wires and write the
result as a new schematic.

cwires with a cwiredef path are placed as given. The others are routed
in file order on the schematic grid, avoiding symbol bodies, sheets and
earlier wires. A route may end early on a wire or pin of its own net.

The output defaults to <schematic>.routed.kicad_sch next to the input.`,
	Args: cobra.ExactArgs(2),
	RunE: runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)

	defaults := route.DefaultConfig()
	routeCmd.Flags().StringVarP(&routeOutput, "output", "o", "", "output schematic file")
	routeCmd.Flags().StringVar(&routePreview, "preview", "", "write a PNG preview to this file")
	routeCmd.Flags().StringVar(&routeTheme, "theme", "light", "preview theme (light, dark)")
	routeCmd.Flags().Float64Var(&routeGrid, "grid", defaults.GridPitch, "routing grid pitch in mm")
	routeCmd.Flags().IntVar(&routeMaxIterations, "max-iterations", defaults.MaxIterations, "search limit per cwire")
	routeCmd.Flags().BoolVar(&routeStrict, "strict", false, "fail if any cwire is skipped or unrouted")
}

func defaultOutput(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + ".routed.kicad_sch"
}

func runRoute(cmd *cobra.Command, args []string) error {
	schFile, cwireFile := args[0], args[1]

	sch, err := schematic.ParseFile(schFile)
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}
	parser, err := cwire.NewParser()
	if err != nil {
		return err
	}
	f, err := parser.ParseFile(cwireFile)
	if err != nil {
		return fmt.Errorf("error parsing cwire file: %w", err)
	}

	cfg := route.DefaultConfig()
	cfg.GridPitch = routeGrid
	cfg.MaxIterations = routeMaxIterations
	cfg.Logger = newLogger()

	report, err := autoroute.Run(cmd.Context(), sch, f, cfg)
	if err != nil {
		return err
	}

	output := routeOutput
	if output == "" {
		output = defaultOutput(schFile)
	}
	if err := sch.WriteFile(output); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, report)
	fmt.Fprintf(out, "Wrote %s\n", output)

	if routePreview != "" {
		theme, ok := renderer.ParseTheme(routeTheme)
		if !ok {
			return fmt.Errorf("unknown theme %q", routeTheme)
		}
		opts := renderer.DefaultRenderOptions()
		opts.Theme = theme
		opts.Routed = make(map[schematic.UUID]bool)
		for _, w := range report.Result.Wires {
			opts.Routed[schematic.UUID(w.ID)] = true
		}
		if err := renderer.WritePNGFile(routePreview, sch, opts); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", routePreview)
	}

	if routeStrict && (len(report.Unrouted) > 0 || len(report.Skipped) > 0) {
		return fmt.Errorf("%d cwire(s) unrouted, %d skipped", len(report.Unrouted), len(report.Skipped))
	}
	return nil
}
