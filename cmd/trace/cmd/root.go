package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "trace",
	Short: "Trace - cwire autorouting for KiCad schematics",
	Long: `Trace (trace) routes the connections listed in a cwire file as
orthogonal wires into a KiCad schematic, and provides helpers for
inspecting the files involved:
  - routing cwires into a schematic, with an optional PNG preview
  - KiCad schematic summaries and rendering
  - cwire file checks
  - S-expression syntax checks

Examples:
  trace route board.kicad_sch board.trc          # Route into board.routed.kicad_sch
  trace route board.kicad_sch board.trc -o out.kicad_sch --preview out.png
  trace sch info board.kicad_sch                 # Show schematic info
  trace cwire check board.trc -s board.kicad_sch # Validate and resolve cwires`,
	Version:       "0.9.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Interrupts cancel the running command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newLogger returns the diagnostics logger: stderr with --verbose,
// discarded otherwise.
func newLogger() *log.Logger {
	if verbose {
		return log.New(os.Stderr, "", log.Ltime)
	}
	return log.New(io.Discard, "", 0)
}
