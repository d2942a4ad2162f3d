package pricing_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"quantfold/polyexpr/pricing"
)

const ruleTable = `rules:
  base:
    formula: price * qty
  bulk:
    description: ten percent off ten or more
    formula: IF (qty >= 10) THEN ending(price * qty * 0.9, .99) ELSE price * qty
  tiered:
    formula: IF (qty >= 100) THEN 0.5 ELSE IF (qty >= 10) THEN 0.75 ELSE 1
    vars:
      qty: 1
`

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRules(t *testing.T) {
	rs, err := pricing.LoadRules(writeRules(t, ruleTable))
	if err != nil {
		t.Fatal(err)
	}
	if rs.Len() != 3 {
		t.Errorf("loaded %d rules, want 3", rs.Len())
	}
	want := []string{"base", "bulk", "tiered"}
	names := rs.Names()
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("names[%d] = %q, want %q", i, names[i], name)
		}
	}
	bulk, ok := rs.Rule("bulk")
	if !ok {
		t.Fatal("rule bulk missing")
	}
	if bulk.Description != "ten percent off ten or more" {
		t.Errorf("bulk description = %q", bulk.Description)
	}
	if bulk.Line != 4 {
		t.Errorf("bulk line = %d, want 4", bulk.Line)
	}
	tiered, _ := rs.Rule("tiered")
	if tiered.Vars["qty"] != 1 {
		t.Errorf("tiered default qty = %v, want 1", tiered.Vars["qty"])
	}
}

func TestLoadRulesErrors(t *testing.T) {
	t.Run("missing-file", func(t *testing.T) {
		if _, err := pricing.LoadRules(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Error("expected an error for a missing file")
		}
	})
	t.Run("bad-yaml", func(t *testing.T) {
		if _, err := pricing.LoadRules(writeRules(t, "rules: [\n")); err == nil {
			t.Error("expected an error for malformed yaml")
		}
	})
	t.Run("no-rules", func(t *testing.T) {
		if _, err := pricing.LoadRules(writeRules(t, "rules: {}\n")); err == nil {
			t.Error("expected an error for an empty table")
		}
	})
	t.Run("missing-formula", func(t *testing.T) {
		_, err := pricing.LoadRules(writeRules(t, "rules:\n  broken:\n    description: no formula\n"))
		var re *pricing.RuleError
		if !errors.As(err, &re) {
			t.Fatalf("got %v, want RuleError", err)
		}
		if re.Rule != "broken" || re.Line != 2 {
			t.Errorf("RuleError rule %q line %d, want broken line 2", re.Rule, re.Line)
		}
	})
	t.Run("bad-formula", func(t *testing.T) {
		_, err := pricing.LoadRules(writeRules(t, "rules:\n  broken:\n    formula: price +\n"))
		var re *pricing.RuleError
		if !errors.As(err, &re) {
			t.Fatalf("got %v, want RuleError", err)
		}
		if re.Rule != "broken" || re.Line != 2 {
			t.Errorf("RuleError rule %q line %d, want broken line 2", re.Rule, re.Line)
		}
		if re.Unwrap() == nil {
			t.Error("RuleError should wrap the parse error")
		}
	})
}
