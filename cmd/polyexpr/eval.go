package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var evalFlags struct {
	domain      string
	vars        []string
	implicitMul bool
	noSimplify  bool
}

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate an expression",
	Long: `Evaluate an expression and print its value.

Variable bindings are themselves expressions evaluated in the same
domain, and later bindings may reference earlier ones. The std,
rational, and complex domains read single-letter variable names; the
logic domain reads full identifiers.

Examples:
  # Polynomial over float64
  polyexpr eval --var x=3 "2x^2 + 1"

  # Exact thirds
  polyexpr eval --domain rational "1/3 + 1/6"

  # Euler's identity
  polyexpr eval --domain complex "exp(pi i) + 1"

  # Conditional pricing logic
  polyexpr eval --domain logic --var price=4 --var qty=12 \
      "IF (qty >= 10) THEN price * qty * 0.9 ELSE price * qty"`,
	Args: cobra.MinimumNArgs(1),
	RunE: evalExpression,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVarP(&evalFlags.domain, "domain", "d", domainStd, "arithmetic domain: std, rational, complex, logic")
	evalCmd.Flags().StringArrayVar(&evalFlags.vars, "var", nil, `variable binding "name=value" (repeatable)`)
	evalCmd.Flags().BoolVar(&evalFlags.implicitMul, "implicit-mul", true, "multiply adjacent operands, so 2x means 2*x")
	evalCmd.Flags().BoolVar(&evalFlags.noSimplify, "no-simplify", false, "disable constant folding during parsing")
}

func evalExpression(cmd *cobra.Command, args []string) error {
	s, err := newSession(evalFlags.domain)
	if err != nil {
		return err
	}
	if err := bindVars(s, evalFlags.vars); err != nil {
		return err
	}
	n, err := s.parse(strings.Join(args, " "), parseOptions(evalFlags.implicitMul, evalFlags.noSimplify)...)
	if err != nil {
		return err
	}
	out, err := s.result(n)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
