package cmd

import (
	"fmt"

	"github.com/OpenTraceLab/trace/pkg/autoroute"
	"github.com/OpenTraceLab/trace/pkg/cwire"
	"github.com/OpenTraceLab/trace/pkg/kicad/schematic"
	"github.com/spf13/cobra"
)

var cwireSchematic string

var cwireCmd = &cobra.Command{
	Use:   "cwire",
	Short: "cwire file operations",
	Long:  `Commands for working with cwire files (.trc)`,
}

var cwireCheckCmd = &cobra.Command{
	Use:   "check <cwire_file>",
	Short: "Parse and validate a cwire file",
	Long: `Parse a cwire file and check its statements.

With --schematic, every cwire is also resolved against the schematic and
the resulting routing requests are listed.`,
	Args: cobra.ExactArgs(1),
	RunE: runCWireCheck,
}

func init() {
	rootCmd.AddCommand(cwireCmd)
	cwireCmd.AddCommand(cwireCheckCmd)

	cwireCheckCmd.Flags().StringVarP(&cwireSchematic, "schematic", "s", "", "resolve cwires against this schematic")
}

func runCWireCheck(cmd *cobra.Command, args []string) error {
	parser, err := cwire.NewParser()
	if err != nil {
		return err
	}
	f, err := parser.ParseFile(args[0])
	if err != nil {
		return err
	}
	if err := f.Validate(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "cwire file: %s\n", args[0])
	fmt.Fprintf(out, "  cwires: %d\n", len(f.CWires()))
	fmt.Fprintf(out, "  cwiredefs: %d\n", len(f.Defs()))
	fmt.Fprintf(out, "  junctions: %d\n", len(f.Junctions()))
	fmt.Fprintf(out, "  pin nets: %d\n", len(f.PinNets()))

	if cwireSchematic == "" {
		return nil
	}

	sch, err := schematic.ParseFile(cwireSchematic)
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}
	board := autoroute.Derive(sch, f.PinNets())
	plan, err := cwire.Resolve(f, sch, autoroute.PinNetFunc(board))
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Requests:")
	for _, req := range plan.Requests {
		net := req.Net
		if net == "" {
			net = "-"
		}
		fmt.Fprintf(out, "  %-6s (%.2f, %.2f) -> (%.2f, %.2f) net %s\n",
			req.Ref, req.From.X, req.From.Y, req.To.X, req.To.Y, net)
	}
	if len(plan.Fixed) > 0 {
		fmt.Fprintf(out, "Fixed wires: %d\n", len(plan.Fixed))
	}
	if len(plan.Skipped) > 0 {
		fmt.Fprintln(out, "Skipped:")
		for _, s := range plan.Skipped {
			fmt.Fprintf(out, "  %s: %v\n", s.Ref, s.Err)
		}
		return fmt.Errorf("%d cwire(s) cannot be resolved", len(plan.Skipped))
	}
	return nil
}
