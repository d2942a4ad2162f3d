package pricing_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"
	"testing"
	"time"

	"quantfold/polyexpr"
	"quantfold/polyexpr/pricing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func closeTo(got, want float64) bool {
	if want == 0 {
		return math.Abs(got) < 1e-12
	}
	return math.Abs(got-want) < 1e-12*math.Abs(want)
}

func TestEngineQuote(t *testing.T) {
	eng, err := pricing.NewEngine(writeRules(t, ruleTable), discardLogger(), nil)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name string
		rule string
		vars map[string]float64
		want float64
	}{
		{"base", "base", map[string]float64{"price": 3, "qty": 4}, 12},
		{"bulk-discount", "bulk", map[string]float64{"price": 4, "qty": 10}, 36.99},
		{"bulk-small-order", "bulk", map[string]float64{"price": 4, "qty": 2}, 8},
		{"tiered-default-vars", "tiered", nil, 1},
		{"tiered-override", "tiered", map[string]float64{"qty": 100}, 0.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := eng.Quote(c.rule, c.vars)
			if err != nil {
				t.Fatalf("Quote(%q, %v): %v", c.rule, c.vars, err)
			}
			if !closeTo(got, c.want) {
				t.Errorf("Quote(%q, %v) = %v, want %v", c.rule, c.vars, got, c.want)
			}
		})
	}
}

func TestEngineQuoteErrors(t *testing.T) {
	eng, err := pricing.NewEngine(writeRules(t, ruleTable), discardLogger(), nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Run("unknown-rule", func(t *testing.T) {
		_, err := eng.Quote("absent", nil)
		if _, ok := err.(*pricing.UnknownRuleError); !ok {
			t.Fatalf("got %v, want UnknownRuleError", err)
		}
		if err.Error() != `unknown pricing rule "absent"` {
			t.Errorf("message %q", err.Error())
		}
	})
	t.Run("unbound-variable", func(t *testing.T) {
		_, err := eng.Quote("base", map[string]float64{"price": 3})
		if _, ok := err.(*polyexpr.UnknownVariableError); !ok {
			t.Fatalf("got %v, want UnknownVariableError", err)
		}
	})
}

func TestEngineRules(t *testing.T) {
	eng, err := pricing.NewEngine(writeRules(t, ruleTable), discardLogger(), nil)
	if err != nil {
		t.Fatal(err)
	}
	rules := eng.Rules()
	if len(rules) != 3 {
		t.Fatalf("Rules() returned %d rules, want 3", len(rules))
	}
	if rules[0].Name != "base" || rules[1].Name != "bulk" || rules[2].Name != "tiered" {
		t.Errorf("rules out of order: %s, %s, %s", rules[0].Name, rules[1].Name, rules[2].Name)
	}
}

func TestEngineReload(t *testing.T) {
	path := writeRules(t, "rules:\n  total:\n    formula: price\n")
	eng, err := pricing.NewEngine(path, discardLogger(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, err := eng.Quote("total", map[string]float64{"price": 5}); err != nil || got != 5 {
		t.Fatalf("Quote before reload = %v, %v", got, err)
	}

	if err := os.WriteFile(path, []byte("rules:\n  total:\n    formula: price * 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := eng.Reload(); err != nil {
		t.Fatal(err)
	}
	if got, err := eng.Quote("total", map[string]float64{"price": 5}); err != nil || got != 10 {
		t.Fatalf("Quote after reload = %v, %v", got, err)
	}

	// A broken file keeps the previous table in effect.
	if err := os.WriteFile(path, []byte("rules:\n  total:\n    formula: price +\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := eng.Reload(); err == nil {
		t.Fatal("expected reload of a broken table to fail")
	}
	if got, err := eng.Quote("total", map[string]float64{"price": 5}); err != nil || got != 10 {
		t.Fatalf("Quote after failed reload = %v, %v", got, err)
	}
}

func TestEngineWatch(t *testing.T) {
	path := writeRules(t, "rules:\n  total:\n    formula: price\n")
	eng, err := pricing.NewEngine(path, discardLogger(), nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	reloaded := make(chan error, 8)
	config := &pricing.WatchConfig{
		DebounceInterval: 20 * time.Millisecond,
		Extensions:       []string{".yaml"},
		OnReload:         func(err error) { reloaded <- err },
	}
	go func() { done <- eng.Watch(ctx, config) }()

	// Give the watcher time to register before changing the file.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("rules:\n  total:\n    formula: price * 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-reloaded:
		if err != nil {
			t.Fatalf("reload failed: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("rules did not reload")
	}
	got, err := eng.Quote("total", map[string]float64{"price": 2})
	if err != nil || got != 4 {
		t.Errorf("Quote after reload = %v, %v, want 4", got, err)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("Watch did not stop on context cancellation")
	}
}

func TestDefaultWatchConfig(t *testing.T) {
	config := pricing.DefaultWatchConfig()
	if config.DebounceInterval != 100*time.Millisecond {
		t.Errorf("DebounceInterval = %v, want 100ms", config.DebounceInterval)
	}
	if len(config.Extensions) != 2 {
		t.Errorf("Extensions = %v, want .yaml and .yml", config.Extensions)
	}
}
