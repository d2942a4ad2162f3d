package polyexpr

import (
	"quantfold/polyexpr/number"
)

// Compile tokenizes src with the standard definitions and parses it.
// Simplification and implicit multiplication are on; opts apply on top.
// Callers that need a different lexer or bare parsing use a Tokenizer
// and Parse directly.
func Compile(src string, opts ...Option) (Node, error) {
	return compile(StandardDefinitions(), src, opts)
}

func compile(defs []TokenDefinition, src string, opts []Option) (Node, error) {
	toks, err := NewTokenizer(defs).Tokenize(src)
	if err != nil {
		return nil, err
	}
	all := make([]Option, 0, len(opts)+2)
	all = append(all, Simplify(), ImplicitMul())
	all = append(all, opts...)
	return Parse(toks, all...)
}

// Eval compiles src with the single-letter definitions and evaluates it
// over vars in float64 arithmetic.
func Eval(src string, vars map[string]float64, opts ...Option) (float64, error) {
	n, err := compile(SingleLetterDefinitions(), src, opts)
	if err != nil {
		return 0, err
	}
	return NewEvaluator(vars).Eval(n)
}

// EvalRational compiles src with the single-letter definitions and
// evaluates it over vars in exact rational arithmetic.
func EvalRational(src string, vars map[string]number.Rational, opts ...Option) (number.Rational, error) {
	n, err := compile(SingleLetterDefinitions(), src, opts)
	if err != nil {
		return number.Rational{}, err
	}
	return NewRationalEvaluator(vars).Eval(n)
}

// EvalComplex compiles src with the complex definitions and evaluates it
// over vars in complex128 arithmetic.
func EvalComplex(src string, vars map[string]complex128, opts ...Option) (complex128, error) {
	n, err := compile(ComplexDefinitions(), src, opts)
	if err != nil {
		return 0, err
	}
	return NewComplexEvaluator(vars).Eval(n)
}

// EvalLogic compiles src with the logic definitions and evaluates it over
// vars, yielding a number or a truth value.
func EvalLogic(src string, vars map[string]Value, opts ...Option) (Value, error) {
	n, err := compile(LogicDefinitions(), src, opts)
	if err != nil {
		return Value{}, err
	}
	return NewLogicEvaluator(vars).Eval(n)
}
