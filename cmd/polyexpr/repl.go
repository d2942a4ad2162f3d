package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"quantfold/polyexpr"
	"quantfold/polyexpr/render"
)

var replFlags struct {
	domain      string
	vars        []string
	implicitMul bool
	noSimplify  bool
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Evaluate expressions interactively",
	Long: `Read expressions from standard input, evaluate them, and print the
results. Variables bound with --var or :set persist for the rest of the
session.

Commands:
  :set name=value  bind a variable (the value is an expression)
  :vars            list bound variables
  :latex <expr>    print an expression as LaTeX
  :tree <expr>     print an expression's parse tree
  :help            show this list
  :q, :quit        leave the session`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVarP(&replFlags.domain, "domain", "d", domainStd, "arithmetic domain: std, rational, complex, logic")
	replCmd.Flags().StringArrayVar(&replFlags.vars, "var", nil, `variable binding "name=value" (repeatable)`)
	replCmd.Flags().BoolVar(&replFlags.implicitMul, "implicit-mul", true, "multiply adjacent operands, so 2x means 2*x")
	replCmd.Flags().BoolVar(&replFlags.noSimplify, "no-simplify", false, "disable constant folding during parsing")
}

func runRepl(cmd *cobra.Command, args []string) error {
	s, err := newSession(replFlags.domain)
	if err != nil {
		return err
	}
	if err := bindVars(s, replFlags.vars); err != nil {
		return err
	}
	opts := parseOptions(replFlags.implicitMul, replFlags.noSimplify)
	fmt.Fprintf(cmd.OutOrStdout(), "polyexpr %s (%s domain, :help for commands)\n", Version, replFlags.domain)
	return repl(cmd.InOrStdin(), cmd.OutOrStdout(), s, opts)
}

// repl runs the read-eval-print loop until :quit or end of input.
func repl(in io.Reader, out io.Writer, s *session, opts []polyexpr.Option) error {
	sc := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
		case strings.HasPrefix(line, ":"):
			if quit := replCommand(out, s, line, opts); quit {
				return nil
			}
		default:
			evalLine(out, s, line, opts)
		}
		fmt.Fprint(out, "> ")
	}
	fmt.Fprintln(out)
	return sc.Err()
}

func evalLine(out io.Writer, s *session, line string, opts []polyexpr.Option) {
	n, err := s.parse(line, opts...)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	res, err := s.result(n)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	fmt.Fprintln(out, res)
}

const replHelp = `:set name=value  bind a variable (the value is an expression)
:vars            list bound variables
:latex <expr>    print an expression as LaTeX
:tree <expr>     print an expression's parse tree
:help            show this list
:q, :quit        leave the session
`

// replCommand executes one colon command and reports whether the
// session should end.
func replCommand(out io.Writer, s *session, line string, opts []polyexpr.Option) bool {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch name {
	case ":q", ":quit":
		return true
	case ":help":
		fmt.Fprint(out, replHelp)
	case ":vars":
		for _, v := range s.names() {
			fmt.Fprintf(out, "%s = %s\n", v, s.bound[v])
		}
	case ":set":
		if err := bindVars(s, []string{rest}); err != nil {
			fmt.Fprintln(out, err)
		}
	case ":latex":
		renderLine(out, s, rest, opts, render.LaTeX)
	case ":tree":
		renderLine(out, s, rest, opts, render.Tree)
	default:
		fmt.Fprintf(out, "unknown command %s (:help lists commands)\n", name)
	}
	return false
}

func renderLine(out io.Writer, s *session, src string, opts []polyexpr.Option, format func(polyexpr.Node) (string, error)) {
	n, err := s.parse(src, opts...)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	text, err := format(n)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	fmt.Fprint(out, text)
}
