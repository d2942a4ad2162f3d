package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"quantfold/polyexpr"
	"quantfold/polyexpr/number"
)

// Arithmetic domains accepted by --domain.
const (
	domainStd      = "std"
	domainRational = "rational"
	domainComplex  = "complex"
	domainLogic    = "logic"
)

// A session binds variables and evaluates expressions in one arithmetic
// domain. eval and repl share it so that variable handling and result
// formatting agree between one-shot and interactive use.
type session struct {
	tok   *polyexpr.Tokenizer
	bound map[string]string

	assign func(name string, n polyexpr.Node) (string, error)
	result func(n polyexpr.Node) (string, error)
}

// newSession returns a session for the named domain. The domain picks
// the lexer configuration and the evaluator: std and rational read
// single-letter variables, complex adds the imaginary unit, and logic
// reads multi-letter identifiers.
func newSession(domain string) (*session, error) {
	s := &session{bound: make(map[string]string)}
	switch domain {
	case domainStd:
		vars := make(map[string]float64)
		s.tok = polyexpr.NewTokenizer(polyexpr.SingleLetterDefinitions())
		s.assign = func(name string, n polyexpr.Node) (string, error) {
			v, err := polyexpr.NewEvaluator(vars).Eval(n)
			if err != nil {
				return "", err
			}
			vars[name] = v
			return formatFloat(v), nil
		}
		s.result = func(n polyexpr.Node) (string, error) {
			v, err := polyexpr.NewEvaluator(vars).Eval(n)
			if err != nil {
				return "", err
			}
			return formatFloat(v), nil
		}
	case domainRational:
		vars := make(map[string]number.Rational)
		s.tok = polyexpr.NewTokenizer(polyexpr.SingleLetterDefinitions())
		s.assign = func(name string, n polyexpr.Node) (string, error) {
			v, err := polyexpr.NewRationalEvaluator(vars).Eval(n)
			if err != nil {
				return "", err
			}
			vars[name] = v
			return v.String(), nil
		}
		s.result = func(n polyexpr.Node) (string, error) {
			v, err := polyexpr.NewRationalEvaluator(vars).Eval(n)
			if err != nil {
				return "", err
			}
			return v.String(), nil
		}
	case domainComplex:
		vars := make(map[string]complex128)
		s.tok = polyexpr.NewTokenizer(polyexpr.ComplexDefinitions())
		s.assign = func(name string, n polyexpr.Node) (string, error) {
			v, err := polyexpr.NewComplexEvaluator(vars).Eval(n)
			if err != nil {
				return "", err
			}
			vars[name] = v
			return number.FormatComplex(v), nil
		}
		s.result = func(n polyexpr.Node) (string, error) {
			v, err := polyexpr.NewComplexEvaluator(vars).Eval(n)
			if err != nil {
				return "", err
			}
			return number.FormatComplex(v), nil
		}
	case domainLogic:
		vars := make(map[string]polyexpr.Value)
		s.tok = polyexpr.NewTokenizer(polyexpr.LogicDefinitions())
		s.assign = func(name string, n polyexpr.Node) (string, error) {
			v, err := polyexpr.NewLogicEvaluator(vars).Eval(n)
			if err != nil {
				return "", err
			}
			vars[name] = v
			return v.String(), nil
		}
		s.result = func(n polyexpr.Node) (string, error) {
			v, err := polyexpr.NewLogicEvaluator(vars).Eval(n)
			if err != nil {
				return "", err
			}
			return v.String(), nil
		}
	default:
		return nil, fmt.Errorf("unknown domain %q (want std, rational, complex, or logic)", domain)
	}
	return s, nil
}

// parse tokenizes and parses src in the session's domain.
func (s *session) parse(src string, opts ...polyexpr.Option) (polyexpr.Node, error) {
	toks, err := s.tok.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return polyexpr.Parse(toks, opts...)
}

// set binds name to the value of an expression evaluated in the current
// environment, so later bindings may reference earlier ones.
func (s *session) set(name, value string) error {
	n, err := s.parse(value, polyexpr.Simplify(), polyexpr.ImplicitMul())
	if err != nil {
		return err
	}
	shown, err := s.assign(name, n)
	if err != nil {
		return err
	}
	s.bound[name] = shown
	return nil
}

// names returns the bound variable names in sorted order.
func (s *session) names() []string {
	names := make([]string, 0, len(s.bound))
	for name := range s.bound {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// bindVars applies "name=value" definitions to a session in order.
func bindVars(s *session, defs []string) error {
	for _, d := range defs {
		name, value, ok := strings.Cut(d, "=")
		if !ok {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, d)
		}
		name = strings.TrimSpace(name)
		if err := s.set(name, strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("setting %s: %w", name, err)
		}
	}
	return nil
}

// parseOptions converts the shared expression flags to parser options.
// Verbose mode adds shift/reduce tracing through the default logger.
func parseOptions(implicitMul, noSimplify bool) []polyexpr.Option {
	var opts []polyexpr.Option
	if implicitMul {
		opts = append(opts, polyexpr.ImplicitMul())
	}
	if !noSimplify {
		opts = append(opts, polyexpr.Simplify())
	}
	if verbose {
		opts = append(opts, polyexpr.Debug())
	}
	return opts
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
