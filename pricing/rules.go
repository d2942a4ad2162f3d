package pricing

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"quantfold/polyexpr"
)

// Rule is one named pricing formula, compiled and ready to evaluate.
type Rule struct {
	// Name is the rule's key in the table.
	Name string
	// Description is the optional human-readable summary.
	Description string
	// Formula is the logic-dialect source text.
	Formula string
	// Vars are the rule's default variable bindings. Quote arguments
	// override them.
	Vars map[string]float64
	// Line is the rule's line in the source file.
	Line int

	node polyexpr.Node
}

// Rules is a compiled rule table.
type Rules struct {
	path  string
	rules map[string]*Rule
}

// RuleError is an error in a rule definition, carrying the source
// position of the rule for diagnostics.
type RuleError struct {
	// Path is the rule file.
	Path string
	// Rule is the rule name.
	Rule string
	// Line is the rule's line in the file.
	Line int
	// Err is the underlying error.
	Err error
}

func (err *RuleError) Error() string {
	return fmt.Sprintf("%s:%d: rule %q: %v", err.Path, err.Line, err.Rule, err.Err)
}

func (err *RuleError) Unwrap() error {
	return err.Err
}

// ruleFile matches the YAML rule table layout.
type ruleFile struct {
	Rules map[string]ruleSpec `yaml:"rules"`
}

type ruleSpec struct {
	Description string             `yaml:"description"`
	Formula     string             `yaml:"formula"`
	Vars        map[string]float64 `yaml:"vars"`
}

// LoadRules reads a YAML rule table and compiles every formula with the
// logic lexer and folding parser. Formulas that fail to compile report
// the rule's file position.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseRules(data, path)
}

func parseRules(data []byte, path string) (*Rules, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var file ruleFile
	if err := doc.Decode(&file); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("%s: no rules defined", path)
	}
	lines := ruleLines(&doc)
	z := polyexpr.NewTokenizer(polyexpr.LogicDefinitions())
	rs := &Rules{path: path, rules: make(map[string]*Rule, len(file.Rules))}
	for name, spec := range file.Rules {
		r := &Rule{
			Name:        name,
			Description: spec.Description,
			Formula:     spec.Formula,
			Vars:        spec.Vars,
			Line:        lines[name],
		}
		if strings.TrimSpace(r.Formula) == "" {
			return nil, &RuleError{Path: path, Rule: name, Line: r.Line, Err: errors.New("missing formula")}
		}
		toks, err := z.Tokenize(r.Formula)
		if err != nil {
			return nil, &RuleError{Path: path, Rule: name, Line: r.Line, Err: err}
		}
		n, err := polyexpr.Parse(toks, polyexpr.Simplify(), polyexpr.ImplicitMul())
		if err != nil {
			return nil, &RuleError{Path: path, Rule: name, Line: r.Line, Err: err}
		}
		r.node = n
		rs.rules[name] = r
	}
	return rs, nil
}

// ruleLines maps rule names to the line of their key node. The decoded
// structs lose position information, so the raw document provides it.
func ruleLines(doc *yaml.Node) map[string]int {
	lines := make(map[string]int)
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return lines
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "rules" {
			continue
		}
		m := root.Content[i+1]
		if m.Kind != yaml.MappingNode {
			continue
		}
		for j := 0; j+1 < len(m.Content); j += 2 {
			lines[m.Content[j].Value] = m.Content[j].Line
		}
	}
	return lines
}

// Rule returns the named rule.
func (rs *Rules) Rule(name string) (*Rule, bool) {
	r, ok := rs.rules[name]
	return r, ok
}

// Len returns the number of rules in the table.
func (rs *Rules) Len() int {
	return len(rs.rules)
}

// Names returns the rule names in sorted order.
func (rs *Rules) Names() []string {
	names := make([]string, 0, len(rs.rules))
	for name := range rs.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
