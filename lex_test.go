package polyexpr

import (
	"errors"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	std := StandardDefinitions()
	single := SingleLetterDefinitions()
	cmplx := ComplexDefinitions()
	logic := LogicDefinitions()
	cases := []struct {
		name string
		defs []TokenDefinition
		src  string
		want []Token
	}{
		{"empty", std, "", nil},
		{"zero", std, "0", []Token{{"0", KindNatural, "0", 0}}},
		{"long", std, "9876543210", []Token{{"9876543210", KindNatural, "9876543210", 0}}},
		{"spaces", std, "1 0", []Token{
			{"1", KindNatural, "1", 0},
			{" ", KindWhitespace, " ", 1},
			{"0", KindNatural, "0", 2},
		}},
		{"decimal", std, "1.0", []Token{{"1.0", KindDecimal, "1.0", 0}}},
		{"leading-dot", std, ".5", []Token{{".5", KindDecimal, ".5", 0}}},
		{"trailing-dot", std, "3.", []Token{{"3.", KindDecimal, "3.", 0}}},
		{"add", std, "1+2", []Token{
			{"1", KindNatural, "1", 0},
			{"+", KindOperator, "+", 1},
			{"2", KindNatural, "2", 2},
		}},
		{"parens", std, "(1)", []Token{
			{"(", KindOpen, "(", 0},
			{"1", KindNatural, "1", 1},
			{")", KindClose, ")", 2},
		}},
		{"factorial", std, "5!", []Token{
			{"5", KindNatural, "5", 0},
			{"!", KindPostfix, "!", 1},
		}},
		{"semifactorial", std, "3!!", []Token{
			{"3", KindNatural, "3", 0},
			{"!!", KindPostfix, "!!", 1},
		}},
		{"terminators", std, "1,2;3\n4", []Token{
			{"1", KindNatural, "1", 0},
			{",", KindTerminator, ",", 1},
			{"2", KindNatural, "2", 2},
			{";", KindTerminator, ";", 3},
			{"3", KindNatural, "3", 4},
			{"\n", KindTerminator, "\n", 5},
			{"4", KindNatural, "4", 6},
		}},
		{"func", std, "exp", []Token{{"exp", KindFunction, "exp", 0}}},
		{"pi-unicode", std, "π", []Token{{"pi", KindConstant, "π", 0}}},
		{"greedy-constants", std, "pie", []Token{
			{"pi", KindConstant, "pi", 0},
			{"e", KindConstant, "e", 2},
		}},

		{"adjacent-letters", single, "2xy", []Token{
			{"2", KindNatural, "2", 0},
			{"x", KindVariable, "x", 1},
			{"y", KindVariable, "y", 2},
		}},
		{"e-is-constant", single, "e", []Token{{"e", KindConstant, "e", 0}}},
		{"letters", single, "ab", []Token{
			{"a", KindVariable, "a", 0},
			{"b", KindVariable, "b", 1},
		}},

		{"imaginary", cmplx, "i", []Token{{"i", KindConstant, "i", 0}}},
		{"im-before-i", cmplx, "im", []Token{{"im", KindFunction, "im", 0}}},
		{"re-call", cmplx, "re(z)", []Token{
			{"re", KindFunction, "re", 0},
			{"(", KindOpen, "(", 2},
			{"z", KindVariable, "z", 3},
			{")", KindClose, ")", 4},
		}},
		{"complex-literal", cmplx, "3+4i", []Token{
			{"3", KindNatural, "3", 0},
			{"+", KindOperator, "+", 1},
			{"4", KindNatural, "4", 2},
			{"i", KindConstant, "i", 3},
		}},

		{"keyword-upper", logic, "IF", []Token{{"if", KindKeyword, "IF", 0}}},
		{"keyword-lower", logic, "else", []Token{{"else", KindKeyword, "else", 0}}},
		{"return", logic, "return", []Token{{"return", KindKeyword, "return", 0}}},
		{"identifier", logic, "price_base", []Token{{"price_base", KindVariable, "price_base", 0}}},
		{"decimal-tail", logic, ".99", []Token{{".99", KindString, ".99", 0}}},
		{"logic-decimal", logic, "1.5", []Token{{"1.5", KindDecimal, "1.5", 0}}},
		{"relational", logic, "x<=y", []Token{
			{"x", KindVariable, "x", 0},
			{"<=", KindOperator, "<=", 1},
			{"y", KindVariable, "y", 3},
		}},
		{"logical", logic, "a<>b&&c", []Token{
			{"a", KindVariable, "a", 0},
			{"<>", KindOperator, "<>", 1},
			{"b", KindVariable, "b", 3},
			{"&&", KindOperator, "&&", 4},
			{"c", KindVariable, "c", 6},
		}},
		{"not-operator", logic, "!x", []Token{
			{"!", KindOperator, "!", 0},
			{"x", KindVariable, "x", 1},
		}},
		{"braces", logic, "{1}", []Token{
			{"{", KindOpenBrace, "{", 0},
			{"1", KindNatural, "1", 1},
			{"}", KindCloseBrace, "}", 2},
		}},
		{"word-boundary", logic, "since", []Token{{"since", KindVariable, "since", 0}}},
		{"bounded-call", logic, "sin(x)", []Token{
			{"sin", KindFunction, "sin", 0},
			{"(", KindOpen, "(", 3},
			{"x", KindVariable, "x", 4},
			{")", KindClose, ")", 5},
		}},
		{"ending", logic, "ending", []Token{{"ending", KindFunction, "ending", 0}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := NewTokenizer(c.defs).Tokenize(c.src)
			if err != nil {
				t.Fatalf("scanning %q: unexpected error %v", c.src, err)
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("scanning %q:\n\twant %v\n\tgot  %v", c.src, c.want, got)
			}
		})
	}
}

func TestTokenizeUnknown(t *testing.T) {
	cases := []struct {
		src  string
		char rune
		pos  int
	}{
		{"$", '$', 0},
		{"1$", '$', 1},
		{"2 @ 3", '@', 2},
		{"x#y", '#', 1},
	}
	tz := NewTokenizer(SingleLetterDefinitions())
	for _, c := range cases {
		_, err := tz.Tokenize(c.src)
		if err == nil {
			t.Errorf("scanning %q: no error", c.src)
			continue
		}
		var u *UnknownTokenError
		if !errors.As(err, &u) {
			t.Errorf("scanning %q: error %#v is not *UnknownTokenError", c.src, err)
			continue
		}
		if u.Char != c.char || u.Pos != c.pos {
			t.Errorf("scanning %q: want char %q at %d, got %q at %d", c.src, c.char, c.pos, u.Char, u.Pos)
		}
	}
}

// TestSynonyms checks that synonym definitions collapse to one canonical
// value while keeping the matched text.
func TestSynonyms(t *testing.T) {
	cases := []struct {
		defs []TokenDefinition
		src  string
		want string
	}{
		{StandardDefinitions(), "arcsin", "asin"},
		{StandardDefinitions(), "arccos", "acos"},
		{StandardDefinitions(), "arctan", "atan"},
		{StandardDefinitions(), "arsinh", "asinh"},
		{StandardDefinitions(), "arcosh", "acosh"},
		{StandardDefinitions(), "artanh", "atanh"},
		{StandardDefinitions(), "log", "log10"},
		{StandardDefinitions(), "π", "pi"},
		{LogicDefinitions(), "IF", "if"},
		{LogicDefinitions(), "THEN", "then"},
		{LogicDefinitions(), "ELSE", "else"},
	}
	for _, c := range cases {
		got, err := NewTokenizer(c.defs).Tokenize(c.src)
		if err != nil {
			t.Errorf("scanning %q: unexpected error %v", c.src, err)
			continue
		}
		if len(got) != 1 {
			t.Errorf("scanning %q: want one token, got %v", c.src, got)
			continue
		}
		if got[0].Value != c.want {
			t.Errorf("scanning %q: want value %q, got %q", c.src, c.want, got[0].Value)
		}
		if got[0].Text != c.src {
			t.Errorf("scanning %q: want text %q, got %q", c.src, c.src, got[0].Text)
		}
	}
}

// TestNamesScanWhole guards the registration order of the definition
// tables. First match wins, so a name registered after one of its own
// prefixes would scan truncated: every callable name must come back as a
// single token. arcsin before sin, log10 before log, sinh before sin.
func TestNamesScanWhole(t *testing.T) {
	complexOnly := map[string]bool{"arg": true, "conj": true, "im": true, "re": true}
	tables := []struct {
		name string
		defs []TokenDefinition
	}{
		{"standard", StandardDefinitions()},
		{"single", SingleLetterDefinitions()},
		{"complex", ComplexDefinitions()},
		{"logic", LogicDefinitions()},
	}
	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			tz := NewTokenizer(table.defs)
			for name := range funcArity {
				if complexOnly[name] && table.name != "complex" {
					continue
				}
				if name == "ending" && table.name != "logic" {
					continue
				}
				got, err := tz.Tokenize(name)
				if err != nil {
					t.Errorf("scanning %q: unexpected error %v", name, err)
					continue
				}
				if len(got) != 1 || got[0].Kind != KindFunction || got[0].Value != name {
					t.Errorf("scanning %q: want one %q function token, got %v", name, name, got)
				}
			}
		})
	}
}

func TestTokenKindString(t *testing.T) {
	if got := KindNatural.String(); got != "natural number" {
		t.Errorf("KindNatural: %q", got)
	}
	if got := TokenKind(-1).String(); got != "invalid" {
		t.Errorf("TokenKind(-1): %q", got)
	}
}
