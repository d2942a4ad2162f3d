package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"quantfold/polyexpr/render"
)

var renderFlags struct {
	domain      string
	format      string
	implicitMul bool
	noSimplify  bool
}

var renderCmd = &cobra.Command{
	Use:   "render <expression>",
	Short: "Print an expression as infix text, LaTeX, or a parse tree",
	Long: `Parse an expression and print it back in the chosen format.

The ascii format emits infix text with minimal parentheses that parses
back to the same tree. Pass --no-simplify to see the tree exactly as
written, before constant folding.

Examples:
  # Canonical infix text
  polyexpr render "2 x y + x^2"

  # LaTeX for a document
  polyexpr render --format latex "sqrt(x^2 + 1) / 2"

  # Inspect the parse tree
  polyexpr render --format tree --no-simplify "1 + 2 * 3"`,
	Args: cobra.MinimumNArgs(1),
	RunE: renderExpression,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderFlags.domain, "domain", "d", domainStd, "arithmetic domain: std, rational, complex, logic")
	renderCmd.Flags().StringVarP(&renderFlags.format, "format", "f", "ascii", "output format: ascii, latex, tree")
	renderCmd.Flags().BoolVar(&renderFlags.implicitMul, "implicit-mul", true, "multiply adjacent operands, so 2x means 2*x")
	renderCmd.Flags().BoolVar(&renderFlags.noSimplify, "no-simplify", false, "disable constant folding during parsing")
}

func renderExpression(cmd *cobra.Command, args []string) error {
	s, err := newSession(renderFlags.domain)
	if err != nil {
		return err
	}
	n, err := s.parse(strings.Join(args, " "), parseOptions(renderFlags.implicitMul, renderFlags.noSimplify)...)
	if err != nil {
		return err
	}
	switch renderFlags.format {
	case "ascii":
		out, err := render.Text(n)
		if err != nil {
			return err
		}
		fmt.Println(out)
	case "latex":
		out, err := render.LaTeX(n)
		if err != nil {
			return err
		}
		fmt.Println(out)
	case "tree":
		out, err := render.Tree(n)
		if err != nil {
			return err
		}
		fmt.Print(out)
	default:
		return fmt.Errorf("unknown format %q (want ascii, latex, or tree)", renderFlags.format)
	}
	return nil
}
