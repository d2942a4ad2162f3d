package main

import "testing"

func resetEvalFlags() {
	evalFlags.domain = domainStd
	evalFlags.vars = nil
	evalFlags.implicitMul = true
	evalFlags.noSimplify = false
}

func TestEvalExpression(t *testing.T) {
	cases := []struct {
		name   string
		domain string
		vars   []string
		args   []string
	}{
		{"std", domainStd, []string{"x=3"}, []string{"2x^2 + 1"}},
		{"rational", domainRational, nil, []string{"1/3 + 1/6"}},
		{"complex", domainComplex, nil, []string{"exp(pi i) + 1"}},
		{"logic", domainLogic, []string{"qty=12"}, []string{"IF (qty >= 10) THEN 1 ELSE 0"}},
		{"joined-args", domainStd, nil, []string{"1", "+", "2"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resetEvalFlags()
			evalFlags.domain = c.domain
			evalFlags.vars = c.vars
			if err := evalExpression(nil, c.args); err != nil {
				t.Errorf("evalExpression(%v) returned error: %v", c.args, err)
			}
		})
	}
}

func TestEvalExpressionErrors(t *testing.T) {
	cases := []struct {
		name   string
		domain string
		vars   []string
		args   []string
	}{
		{"unknown-domain", "octonion", nil, []string{"1"}},
		{"malformed-binding", domainStd, []string{"x"}, []string{"1"}},
		{"unbound-variable", domainStd, nil, []string{"y + 1"}},
		{"unbalanced-parens", domainStd, nil, []string{"(1 + 2"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resetEvalFlags()
			evalFlags.domain = c.domain
			evalFlags.vars = c.vars
			if err := evalExpression(nil, c.args); err == nil {
				t.Errorf("evalExpression(%v) should return error", c.args)
			}
		})
	}
}
