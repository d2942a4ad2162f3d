package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "polyexpr",
	Short: "Polyexpr - mathematical expression compiler and evaluator",
	Long: `Polyexpr parses mathematical and pricing expressions into trees and
evaluates, renders, and differentiates them.

Expressions run in one of four arithmetic domains:
  - std       float64 arithmetic with single-letter variables
  - rational  exact int64 ratios, division never loses precision
  - complex   complex128 arithmetic with the imaginary unit i
  - logic     relational and logical operators, IF/THEN/ELSE
              conditionals, and multi-letter identifiers

The quote command evaluates named pricing rules from a YAML table and
can watch the table for edits.`,
	Version:          Version,
	PersistentPreRun: setupLogging,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging routes diagnostics to stderr so results stay alone on
// stdout. Warnings and errors always show; --verbose opens the debug
// level, which includes parser shift/reduce traces.
func setupLogging(cmd *cobra.Command, args []string) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
