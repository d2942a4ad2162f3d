package deriv_test

import (
	"errors"
	"testing"

	"quantfold/polyexpr"
	"quantfold/polyexpr/deriv"
	"quantfold/polyexpr/render"
)

func parse(t *testing.T, defs []polyexpr.TokenDefinition, src string) polyexpr.Node {
	t.Helper()
	toks, err := polyexpr.NewTokenizer(defs).Tokenize(src)
	if err != nil {
		t.Fatalf("tokenize %q: %v", src, err)
	}
	n, err := polyexpr.Parse(toks, polyexpr.Simplify(), polyexpr.ImplicitMul())
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return n
}

func TestDerive(t *testing.T) {
	cases := []struct {
		name string
		defs []polyexpr.TokenDefinition
		src  string
		wrt  string
		want string
	}{
		{"constant", polyexpr.SingleLetterDefinitions(), "42", "x", "0"},
		{"variable", polyexpr.SingleLetterDefinitions(), "x", "x", "1"},
		{"other-variable", polyexpr.SingleLetterDefinitions(), "y", "x", "0"},
		{"named-constant", polyexpr.SingleLetterDefinitions(), "pi", "x", "0"},
		{"linear", polyexpr.SingleLetterDefinitions(), "3x", "x", "3"},
		{"square", polyexpr.SingleLetterDefinitions(), "x^2", "x", "2x"},
		{"cube", polyexpr.SingleLetterDefinitions(), "x^3", "x", "3x^2"},
		{"sum", polyexpr.SingleLetterDefinitions(), "x^2 + y", "x", "2x"},
		{"product", polyexpr.SingleLetterDefinitions(), "x sin(x)", "x", "sin(x) + x cos(x)"},
		{"quotient", polyexpr.SingleLetterDefinitions(), "x/y", "x", "y/y^2"},
		{"reciprocal", polyexpr.SingleLetterDefinitions(), "1/x", "x", "-1/x^2"},
		{"chain", polyexpr.SingleLetterDefinitions(), "sin(x^2)", "x", "cos(x^2)(2x)"},
		{"exponential", polyexpr.SingleLetterDefinitions(), "2^x", "x", "2^x ln(2)"},
		{"log", polyexpr.SingleLetterDefinitions(), "ln(x)", "x", "1/x"},
		{"log-synonym", polyexpr.SingleLetterDefinitions(), "log(x)", "x", "1/(x ln(10))"},
		{"root", polyexpr.SingleLetterDefinitions(), "sqrt(x)", "x", "1/(2sqrt(x))"},
		{"absolute", polyexpr.SingleLetterDefinitions(), "abs(x)", "x", "sgn(x)"},
		{"power-tower", polyexpr.SingleLetterDefinitions(), "x^x", "x", "x^x (ln(x) + x/x)"},
		{"negated", polyexpr.SingleLetterDefinitions(), "-x^2", "x", "-(2x)"},
		{"tangent", polyexpr.SingleLetterDefinitions(), "tan(x)", "x", "1/cos(x)^2"},
		{"arcsine", polyexpr.SingleLetterDefinitions(), "asin(x)", "x", "1/sqrt(1 - x^2)"},
		{"arctangent", polyexpr.SingleLetterDefinitions(), "atan(x)", "x", "1/(1 + x^2)"},
		{"hyperbolic", polyexpr.SingleLetterDefinitions(), "tanh(x)", "x", "1/cosh(x)^2"},
		{"conditional", polyexpr.LogicDefinitions(), "IF (x > 1) THEN x^2 ELSE x", "x", "IF (x > 1) THEN 2x ELSE 1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := deriv.Derive(parse(t, c.defs, c.src), c.wrt)
			if err != nil {
				t.Fatalf("derive %q: %v", c.src, err)
			}
			want := parse(t, c.defs, c.want)
			if !polyexpr.Equal(got, want) {
				text, _ := render.Text(got)
				t.Errorf("derive %q: got %s, want %s", c.src, text, c.want)
			}
		})
	}
}

func TestDeriveUnsupported(t *testing.T) {
	cases := []struct {
		name string
		defs []polyexpr.TokenDefinition
		src  string
	}{
		{"floor", polyexpr.SingleLetterDefinitions(), "floor(x)"},
		{"round", polyexpr.SingleLetterDefinitions(), "round(x, 1)"},
		{"factorial", polyexpr.SingleLetterDefinitions(), "x!"},
		{"relational", polyexpr.LogicDefinitions(), "x > 1"},
		{"logical", polyexpr.LogicDefinitions(), "x > 1 && x < 2"},
		{"pricing-tail", polyexpr.LogicDefinitions(), "ending(x, .99)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := deriv.Derive(parse(t, c.defs, c.src), "x")
			var unsup *deriv.UnsupportedError
			if !errors.As(err, &unsup) {
				t.Errorf("derive %q: got %v, want UnsupportedError", c.src, err)
			}
		})
	}
}

func TestUnsupportedErrorMessage(t *testing.T) {
	_, err := deriv.Derive(parse(t, polyexpr.SingleLetterDefinitions(), "floor(x)"), "x")
	if err == nil || err.Error() != `cannot differentiate function "floor"` {
		t.Errorf("got %v", err)
	}
}
