package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"quantfold/polyexpr/pricing"
)

var quoteFlags struct {
	vars  []string
	watch bool
}

var quoteCmd = &cobra.Command{
	Use:   "quote <rules.yaml> <rule>",
	Short: "Evaluate a pricing rule from a YAML table",
	Long: `Load a pricing rule table, evaluate one named rule, and print the
result. Rule formulas use the logic domain, with variables supplied by
the table's vars block and overridden by --var bindings.

With --watch the command keeps running, reloads the table whenever the
file changes, and prints a fresh quote after every successful reload.

Examples:
  # One-shot quote
  polyexpr quote rules.yaml bulk --var price=4 --var qty=12

  # Re-quote on every edit to the table
  polyexpr quote rules.yaml bulk --var price=4 --var qty=12 --watch`,
	Args: cobra.ExactArgs(2),
	RunE: quoteRule,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().StringArrayVar(&quoteFlags.vars, "var", nil, `variable binding "name=value" (repeatable)`)
	quoteCmd.Flags().BoolVar(&quoteFlags.watch, "watch", false, "watch the rule file and re-quote on changes")
}

func quoteRule(cmd *cobra.Command, args []string) error {
	path, rule := args[0], args[1]
	vars, err := floatVars(quoteFlags.vars)
	if err != nil {
		return err
	}
	eng, err := pricing.NewEngine(path, nil, nil)
	if err != nil {
		return err
	}
	quote := func() error {
		v, err := eng.Quote(rule, vars)
		if err != nil {
			return err
		}
		fmt.Println(formatFloat(v))
		return nil
	}
	if err := quote(); err != nil {
		return err
	}
	if !quoteFlags.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	fmt.Fprintf(os.Stderr, "watching %s (Ctrl+C to stop)\n", path)
	config := pricing.DefaultWatchConfig()
	config.OnReload = func(err error) {
		if err != nil {
			// Reload already logged the failure; the old table stands.
			return
		}
		if err := quote(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	return eng.Watch(ctx, config)
}

// floatVars parses "name=value" bindings with numeric literal values.
func floatVars(defs []string) (map[string]float64, error) {
	vars := make(map[string]float64, len(defs))
	for _, d := range defs {
		name, value, ok := strings.Cut(d, "=")
		if !ok {
			return nil, fmt.Errorf(`variable definitions must be "name=value", not %q`, d)
		}
		name = strings.TrimSpace(name)
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("setting %s: not a number: %q", name, strings.TrimSpace(value))
		}
		vars[name] = v
	}
	return vars, nil
}
