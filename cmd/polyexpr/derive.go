package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"quantfold/polyexpr/deriv"
	"quantfold/polyexpr/render"
)

var deriveFlags struct {
	domain string
	wrt    string
}

var deriveCmd = &cobra.Command{
	Use:   "derive <expression>",
	Short: "Differentiate an expression symbolically",
	Long: `Differentiate an expression with respect to one variable and print
the derivative as infix text.

Examples:
  # Product rule
  polyexpr derive --wrt x "x sin(x)"

  # Chain rule through a conditional
  polyexpr derive --domain logic --wrt price \
      "IF (qty >= 10) THEN price * 0.9 ELSE price"`,
	Args: cobra.MinimumNArgs(1),
	RunE: deriveExpression,
}

func init() {
	rootCmd.AddCommand(deriveCmd)

	deriveCmd.Flags().StringVarP(&deriveFlags.domain, "domain", "d", domainStd, "arithmetic domain: std, rational, complex, logic")
	deriveCmd.Flags().StringVarP(&deriveFlags.wrt, "wrt", "w", "x", "variable to differentiate with respect to")
}

func deriveExpression(cmd *cobra.Command, args []string) error {
	s, err := newSession(deriveFlags.domain)
	if err != nil {
		return err
	}
	n, err := s.parse(strings.Join(args, " "), parseOptions(true, false)...)
	if err != nil {
		return err
	}
	d, err := deriv.Derive(n, deriveFlags.wrt)
	if err != nil {
		return err
	}
	out, err := render.Text(d)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
