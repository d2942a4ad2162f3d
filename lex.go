package polyexpr

import (
	"regexp"
	"unicode/utf8"
)

// TokenKind classifies a lexical unit.
type TokenKind int

// Token kinds.
const (
	KindInvalid TokenKind = iota
	KindWhitespace
	KindTerminator
	KindNatural
	KindDecimal
	KindString
	KindOperator
	KindPostfix
	KindFunction
	KindConstant
	KindVariable
	KindKeyword
	KindOpen
	KindClose
	KindOpenBrace
	KindCloseBrace
)

var kindNames = [...]string{
	KindInvalid:    "invalid",
	KindWhitespace: "whitespace",
	KindTerminator: "terminator",
	KindNatural:    "natural number",
	KindDecimal:    "decimal number",
	KindString:     "string",
	KindOperator:   "operator",
	KindPostfix:    "postfix operator",
	KindFunction:   "function",
	KindConstant:   "constant",
	KindVariable:   "variable",
	KindKeyword:    "keyword",
	KindOpen:       "open parenthesis",
	KindClose:      "close parenthesis",
	KindOpenBrace:  "open brace",
	KindCloseBrace: "close brace",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "invalid"
	}
	return kindNames[k]
}

// Token is one lexical unit. Value is the canonicalized symbol: synonyms
// such as "arcsin" and "asin" collapse to one value. Text is the original
// matched substring; the scan cursor advances by its exact length. Pos is
// the byte offset of Text in the input. Tokens are immutable once
// created.
type Token struct {
	Value string
	Kind  TokenKind
	Text  string
	Pos   int
}

// TokenDefinition pairs a pattern with the kind of token it produces. The
// pattern matches only at offset 0 of the remaining input; when Canonical
// is nonempty it replaces the matched text as the token value.
type TokenDefinition struct {
	Pattern   *regexp.Regexp
	Kind      TokenKind
	Canonical string
}

// NewTokenDefinition compiles pattern anchored to the start of input.
func NewTokenDefinition(kind TokenKind, pattern string) TokenDefinition {
	return TokenDefinition{
		Pattern: regexp.MustCompile(`^(?:` + pattern + `)`),
		Kind:    kind,
	}
}

// NewSynonymDefinition is NewTokenDefinition with a canonical value that
// replaces the matched text.
func NewSynonymDefinition(kind TokenKind, pattern, canonical string) TokenDefinition {
	d := NewTokenDefinition(kind, pattern)
	d.Canonical = canonical
	return d
}

// A Tokenizer converts expression text into tokens by trying an ordered
// list of definitions against the unconsumed input. The first definition
// that matches wins, not the longest, so more specific patterns must be
// registered ahead of their prefixes: multi-character operators before
// single characters, "arcsin" before "sin". A Tokenizer is immutable
// after construction and safe for concurrent use.
type Tokenizer struct {
	defs []TokenDefinition
}

// NewTokenizer returns a Tokenizer over defs, tried in order.
func NewTokenizer(defs []TokenDefinition) *Tokenizer {
	d := make([]TokenDefinition, len(defs))
	copy(d, defs)
	return &Tokenizer{defs: d}
}

// Tokenize splits input into tokens. Whitespace and terminators (",",
// ";", newline) are emitted as tokens rather than discarded; the parser
// filters whitespace and treats terminators as separators. Tokenize fails
// with an UnknownTokenError when no definition matches at the current
// offset. An empty match counts as no match.
func (t *Tokenizer) Tokenize(input string) ([]Token, error) {
	var toks []Token
	pos := 0
	for pos < len(input) {
		rest := input[pos:]
		matched := false
		for _, d := range t.defs {
			loc := d.Pattern.FindStringIndex(rest)
			if loc == nil || loc[1] == 0 {
				continue
			}
			text := rest[:loc[1]]
			value := d.Canonical
			if value == "" {
				value = text
			}
			toks = append(toks, Token{Value: value, Kind: d.Kind, Text: text, Pos: pos})
			pos += len(text)
			matched = true
			break
		}
		if !matched {
			r, _ := utf8.DecodeRuneInString(rest)
			return nil, &UnknownTokenError{Char: r, Pos: pos}
		}
	}
	return toks, nil
}

// coreDefs are the numeric, operator, and delimiter rules shared by the
// standard, single-letter, and complex configurations.
func coreDefs() []TokenDefinition {
	return []TokenDefinition{
		NewTokenDefinition(KindWhitespace, `[ \t\r]+`),
		NewTokenDefinition(KindTerminator, `[,;\n]`),
		NewTokenDefinition(KindDecimal, `[0-9]+\.[0-9]*|\.[0-9]+`),
		NewTokenDefinition(KindNatural, `[0-9]+`),
		NewTokenDefinition(KindPostfix, `!!`),
		NewTokenDefinition(KindPostfix, `!`),
		NewTokenDefinition(KindOperator, `\^`),
		NewTokenDefinition(KindOperator, `\+`),
		NewTokenDefinition(KindOperator, `-`),
		NewTokenDefinition(KindOperator, `\*`),
		NewTokenDefinition(KindOperator, `/`),
		NewTokenDefinition(KindOpen, `\(`),
		NewTokenDefinition(KindClose, `\)`),
	}
}

// funcDefs are the function-name rules. Longer names and long synonyms
// come first so that first-match scanning never truncates them: "sinh"
// before "sin", "arcsin" before "asin", "log10" before "log". With
// wordBound set each name requires a word boundary, which keeps
// multi-letter identifiers such as "since" whole.
func funcDefs(wordBound bool) []TokenDefinition {
	b := ""
	if wordBound {
		b = `\b`
	}
	return []TokenDefinition{
		NewTokenDefinition(KindFunction, `semifactorial`+b),
		NewTokenDefinition(KindFunction, `factorial`+b),
		NewSynonymDefinition(KindFunction, `arsinh`+b, "asinh"),
		NewSynonymDefinition(KindFunction, `arcosh`+b, "acosh"),
		NewSynonymDefinition(KindFunction, `artanh`+b, "atanh"),
		NewSynonymDefinition(KindFunction, `arcsin`+b, "asin"),
		NewSynonymDefinition(KindFunction, `arccos`+b, "acos"),
		NewSynonymDefinition(KindFunction, `arctan`+b, "atan"),
		NewTokenDefinition(KindFunction, `asinh`+b),
		NewTokenDefinition(KindFunction, `acosh`+b),
		NewTokenDefinition(KindFunction, `atanh`+b),
		NewTokenDefinition(KindFunction, `asin`+b),
		NewTokenDefinition(KindFunction, `acos`+b),
		NewTokenDefinition(KindFunction, `atan`+b),
		NewTokenDefinition(KindFunction, `sinh`+b),
		NewTokenDefinition(KindFunction, `cosh`+b),
		NewTokenDefinition(KindFunction, `tanh`+b),
		NewTokenDefinition(KindFunction, `sin`+b),
		NewTokenDefinition(KindFunction, `cos`+b),
		NewTokenDefinition(KindFunction, `tan`+b),
		NewTokenDefinition(KindFunction, `exp`+b),
		NewTokenDefinition(KindFunction, `sqrt`+b),
		NewTokenDefinition(KindFunction, `sgn`+b),
		NewTokenDefinition(KindFunction, `abs`+b),
		NewTokenDefinition(KindFunction, `log10`+b),
		NewSynonymDefinition(KindFunction, `log`+b, "log10"),
		NewTokenDefinition(KindFunction, `ln`+b),
		NewTokenDefinition(KindFunction, `round`+b),
		NewTokenDefinition(KindFunction, `ceil`+b),
		NewTokenDefinition(KindFunction, `floor`+b),
	}
}

// constDefs are the named-constant rules.
func constDefs(wordBound bool) []TokenDefinition {
	b := ""
	if wordBound {
		b = `\b`
	}
	return []TokenDefinition{
		NewTokenDefinition(KindConstant, `NAN`+b),
		NewTokenDefinition(KindConstant, `INF`+b),
		NewSynonymDefinition(KindConstant, `π`, "pi"),
		NewTokenDefinition(KindConstant, `pi`+b),
		NewTokenDefinition(KindConstant, `e`+b),
	}
}

func concatDefs(lists ...[]TokenDefinition) []TokenDefinition {
	var out []TokenDefinition
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// StandardDefinitions is the common numeric and function base: numbers,
// function names, constants, arithmetic operators, and parentheses. It
// has no variable rule.
func StandardDefinitions() []TokenDefinition {
	return concatDefs(coreDefs(), funcDefs(false), constDefs(false))
}

// SingleLetterDefinitions extends the standard set with single-letter
// variables. One-letter identifiers let implicit multiplication split
// adjacent names: "2xy" scans as 2, x, y.
func SingleLetterDefinitions() []TokenDefinition {
	return concatDefs(
		coreDefs(),
		funcDefs(false),
		constDefs(false),
		[]TokenDefinition{NewTokenDefinition(KindVariable, `[a-zA-Z]`)},
	)
}

// ComplexDefinitions extends the single-letter set with the imaginary
// unit and the complex accessor functions re, im, conj, and arg.
func ComplexDefinitions() []TokenDefinition {
	return concatDefs(
		coreDefs(),
		funcDefs(false),
		[]TokenDefinition{
			NewTokenDefinition(KindFunction, `conj`),
			NewTokenDefinition(KindFunction, `arg`),
			NewTokenDefinition(KindFunction, `im`),
			NewTokenDefinition(KindFunction, `re`),
		},
		constDefs(false),
		[]TokenDefinition{
			NewTokenDefinition(KindConstant, `i`),
			NewTokenDefinition(KindVariable, `[a-zA-Z]`),
		},
	)
}

// LogicDefinitions is the logic and pricing DSL set: multi-letter
// identifiers, relational and logical operators, braces, conditional
// keywords, and leading-dot decimal tails (".99") kept verbatim as string
// tokens. Function, constant, and keyword names take a word boundary so
// identifiers containing them scan whole.
func LogicDefinitions() []TokenDefinition {
	return concatDefs(
		[]TokenDefinition{
			NewTokenDefinition(KindWhitespace, `[ \t\r]+`),
			NewTokenDefinition(KindTerminator, `[,;\n]`),
			NewTokenDefinition(KindDecimal, `[0-9]+\.[0-9]*`),
			NewTokenDefinition(KindString, `\.[0-9]+`),
			NewTokenDefinition(KindNatural, `[0-9]+`),
			NewSynonymDefinition(KindKeyword, `IF\b|if\b`, "if"),
			NewSynonymDefinition(KindKeyword, `THEN\b|then\b`, "then"),
			NewSynonymDefinition(KindKeyword, `ELSE\b|else\b`, "else"),
			NewTokenDefinition(KindKeyword, `return\b`),
			NewTokenDefinition(KindOperator, `&&`),
			NewTokenDefinition(KindOperator, `\|\|`),
			NewTokenDefinition(KindOperator, `<>`),
			NewTokenDefinition(KindOperator, `>=`),
			NewTokenDefinition(KindOperator, `<=`),
			NewTokenDefinition(KindOperator, `=`),
			NewTokenDefinition(KindOperator, `>`),
			NewTokenDefinition(KindOperator, `<`),
			NewTokenDefinition(KindOperator, `!`),
			NewTokenDefinition(KindOperator, `\^`),
			NewTokenDefinition(KindOperator, `\+`),
			NewTokenDefinition(KindOperator, `-`),
			NewTokenDefinition(KindOperator, `\*`),
			NewTokenDefinition(KindOperator, `/`),
			NewTokenDefinition(KindOpen, `\(`),
			NewTokenDefinition(KindClose, `\)`),
			NewTokenDefinition(KindOpenBrace, `\{`),
			NewTokenDefinition(KindCloseBrace, `\}`),
		},
		funcDefs(true),
		[]TokenDefinition{NewTokenDefinition(KindFunction, `ending\b`)},
		constDefs(true),
		[]TokenDefinition{NewTokenDefinition(KindVariable, `[a-zA-Z_][a-zA-Z0-9_]*`)},
	)
}
