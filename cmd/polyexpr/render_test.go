package main

import (
	"strings"
	"testing"
)

func resetRenderFlags() {
	renderFlags.domain = domainStd
	renderFlags.format = "ascii"
	renderFlags.implicitMul = true
	renderFlags.noSimplify = false
}

func TestRenderExpression(t *testing.T) {
	cases := []struct {
		name   string
		domain string
		format string
		args   []string
	}{
		{"ascii", domainStd, "ascii", []string{"2 x y + x^2"}},
		{"latex", domainStd, "latex", []string{"sqrt(x^2 + 1) / 2"}},
		{"tree", domainStd, "tree", []string{"1 + 2 * x"}},
		{"logic-ascii", domainLogic, "ascii", []string{"IF (qty >= 10) THEN total * 0.9 ELSE total"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resetRenderFlags()
			renderFlags.domain = c.domain
			renderFlags.format = c.format
			if err := renderExpression(nil, c.args); err != nil {
				t.Errorf("renderExpression(%v) returned error: %v", c.args, err)
			}
		})
	}
}

func TestRenderExpressionUnknownFormat(t *testing.T) {
	resetRenderFlags()
	renderFlags.format = "svg"
	err := renderExpression(nil, []string{"1 + 1"})
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("renderExpression with format svg error = %v, want unknown format", err)
	}
}
