package polyexpr

import (
	"math"
	"math/cmplx"
	"strconv"

	"quantfold/polyexpr/number"
)

// funcArity declares the argument count of every callable name across all
// lexer configurations. round takes a value and a digit count, ending a
// value and a decimal tail; everything else is unary.
var funcArity = map[string]int{
	"abs":           1,
	"acos":          1,
	"acosh":         1,
	"arg":           1,
	"asin":          1,
	"asinh":         1,
	"atan":          1,
	"atanh":         1,
	"ceil":          1,
	"conj":          1,
	"cos":           1,
	"cosh":          1,
	"ending":        2,
	"exp":           1,
	"factorial":     1,
	"floor":         1,
	"im":            1,
	"ln":            1,
	"log10":         1,
	"re":            1,
	"round":         2,
	"semifactorial": 1,
	"sgn":           1,
	"sin":           1,
	"sinh":          1,
	"sqrt":          1,
	"tan":           1,
	"tanh":          1,
}

// DomainError is an error returned when a function is called on an
// argument outside its domain.
type DomainError struct {
	// X is the out-of-domain argument rendered as text.
	X string
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is the function name.
	Func string
}

func (err *DomainError) Error() string {
	r := err.X + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

// realFunc is one entry of the float64 function table. Evaluators check
// arity at construction time, so implementations index args freely.
type realFunc func(args []float64) (float64, error)

func real1(f func(float64) float64) realFunc {
	return func(args []float64) (float64, error) {
		return f(args[0]), nil
	}
}

var realFuncs = map[string]realFunc{
	"sin":           real1(math.Sin),
	"cos":           real1(math.Cos),
	"tan":           real1(math.Tan),
	"asin":          real1(math.Asin),
	"acos":          real1(math.Acos),
	"atan":          real1(math.Atan),
	"sinh":          real1(math.Sinh),
	"cosh":          real1(math.Cosh),
	"tanh":          real1(math.Tanh),
	"asinh":         real1(math.Asinh),
	"acosh":         real1(math.Acosh),
	"atanh":         real1(math.Atanh),
	"exp":           real1(math.Exp),
	"sqrt":          real1(math.Sqrt),
	"abs":           real1(math.Abs),
	"floor":         real1(math.Floor),
	"ceil":          real1(math.Ceil),
	"sgn":           realSgn,
	"ln":            realLog(math.Log, "ln"),
	"log10":         realLog(math.Log10, "log10"),
	"round":         realRound,
	"factorial":     realFactorial,
	"semifactorial": realSemifactorial,
}

// pricingFuncs extends the real table with the decimal-tail primitive
// used by pricing rules.
var pricingFuncs = func() map[string]realFunc {
	m := make(map[string]realFunc, len(realFuncs)+1)
	for k, v := range realFuncs {
		m[k] = v
	}
	m["ending"] = realEnding
	return m
}()

func realSgn(args []float64) (float64, error) {
	switch {
	case args[0] > 0:
		return 1, nil
	case args[0] < 0:
		return -1, nil
	case args[0] == 0:
		return 0, nil
	}
	// NaN
	return args[0], nil
}

func realLog(f func(float64) float64, name string) realFunc {
	return func(args []float64) (float64, error) {
		if args[0] == 0 {
			return 0, &LogarithmOfZeroError{Func: name}
		}
		return f(args[0]), nil
	}
}

// realRound rounds args[0] to args[1] decimal digits, half away from
// zero. The digit count must be an integer.
func realRound(args []float64) (float64, error) {
	d := args[1]
	if d != math.Trunc(d) || math.Abs(d) > 308 {
		return 0, &DomainError{X: formatFloat(d), Arg: 2, Func: "round"}
	}
	shift := math.Pow(10, d)
	return math.Round(args[0]*shift) / shift, nil
}

// realEnding replaces the fractional part of args[0] with the decimal
// tail args[1], which must lie in [0, 1). The sign of args[0] carries
// over: ending(-12.34, 0.99) is -12.99.
func realEnding(args []float64) (float64, error) {
	t := args[1]
	if !(t >= 0 && t < 1) {
		return 0, &DomainError{X: formatFloat(t), Arg: 2, Func: "ending"}
	}
	r := math.Floor(math.Abs(args[0])) + t
	if math.Signbit(args[0]) {
		r = -r
	}
	return r, nil
}

func realFactorial(args []float64) (float64, error) {
	n, err := wholeArg(args[0], "factorial")
	if err != nil {
		return 0, err
	}
	p := 1.0
	for i := n; i > 1; i-- {
		p *= i
		if math.IsInf(p, 1) {
			break
		}
	}
	return p, nil
}

func realSemifactorial(args []float64) (float64, error) {
	n, err := wholeArg(args[0], "semifactorial")
	if err != nil {
		return 0, err
	}
	p := 1.0
	for i := n; i > 1; i -= 2 {
		p *= i
		if math.IsInf(p, 1) {
			break
		}
	}
	return p, nil
}

func wholeArg(x float64, fn string) (float64, error) {
	if x < 0 || x != math.Trunc(x) {
		return 0, &DomainError{X: formatFloat(x), Arg: 1, Func: fn}
	}
	return x, nil
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// rationalFunc is one entry of the exact function table. Transcendentals
// have no exact form and are absent; calling one in the rational domain
// is an UnknownFunctionError.
type rationalFunc func(args []number.Rational) (number.Rational, error)

var rationalFuncs = map[string]rationalFunc{
	"abs": func(args []number.Rational) (number.Rational, error) {
		return args[0].Abs(), nil
	},
	"sgn": func(args []number.Rational) (number.Rational, error) {
		return number.FromInt(int64(args[0].Sign())), nil
	},
	"floor": func(args []number.Rational) (number.Rational, error) {
		return number.FromInt(args[0].Floor()), nil
	},
	"ceil": func(args []number.Rational) (number.Rational, error) {
		return number.FromInt(args[0].Ceil()), nil
	},
	"round":         ratRound,
	"factorial":     ratFactorial,
	"semifactorial": ratSemifactorial,
}

func ratRound(args []number.Rational) (number.Rational, error) {
	d := args[1]
	if !d.IsInt() || d.Num() < -18 || d.Num() > 18 {
		return number.Rational{}, &DomainError{X: d.String(), Arg: 2, Func: "round"}
	}
	shift := number.FromInt(10).Pow(d.Num())
	return number.FromInt(args[0].Mul(shift).Round()).Div(shift), nil
}

func ratFactorial(args []number.Rational) (number.Rational, error) {
	x := args[0]
	if !x.IsInt() || x.Sign() < 0 {
		return number.Rational{}, &DomainError{X: x.String(), Arg: 1, Func: "factorial"}
	}
	n, err := number.Factorial(x.Num())
	if err != nil {
		return number.Rational{}, err
	}
	return number.FromInt(n), nil
}

func ratSemifactorial(args []number.Rational) (number.Rational, error) {
	x := args[0]
	if !x.IsInt() || x.Sign() < 0 {
		return number.Rational{}, &DomainError{X: x.String(), Arg: 1, Func: "semifactorial"}
	}
	n, err := number.Semifactorial(x.Num())
	if err != nil {
		return number.Rational{}, err
	}
	return number.FromInt(n), nil
}

// complexFunc is one entry of the complex128 function table.
type complexFunc func(args []complex128) (complex128, error)

func cmplx1(f func(complex128) complex128) complexFunc {
	return func(args []complex128) (complex128, error) {
		return f(args[0]), nil
	}
}

var complexFuncs = map[string]complexFunc{
	"sin":   cmplx1(cmplx.Sin),
	"cos":   cmplx1(cmplx.Cos),
	"tan":   cmplx1(cmplx.Tan),
	"asin":  cmplx1(cmplx.Asin),
	"acos":  cmplx1(cmplx.Acos),
	"atan":  cmplx1(cmplx.Atan),
	"sinh":  cmplx1(cmplx.Sinh),
	"cosh":  cmplx1(cmplx.Cosh),
	"tanh":  cmplx1(cmplx.Tanh),
	"asinh": cmplx1(cmplx.Asinh),
	"acosh": cmplx1(cmplx.Acosh),
	"atanh": cmplx1(cmplx.Atanh),
	"exp":   cmplx1(cmplx.Exp),
	"sqrt":  cmplx1(cmplx.Sqrt),
	"conj":  cmplx1(cmplx.Conj),
	"abs": func(args []complex128) (complex128, error) {
		return complex(cmplx.Abs(args[0]), 0), nil
	},
	"arg": func(args []complex128) (complex128, error) {
		return complex(cmplx.Phase(args[0]), 0), nil
	},
	"re": func(args []complex128) (complex128, error) {
		return complex(real(args[0]), 0), nil
	},
	"im": func(args []complex128) (complex128, error) {
		return complex(imag(args[0]), 0), nil
	},
	"sgn": func(args []complex128) (complex128, error) {
		if number.IsZeroComplex(args[0]) {
			return 0, nil
		}
		return args[0] / complex(cmplx.Abs(args[0]), 0), nil
	},
	"ln":    cmplxLog(cmplx.Log, "ln"),
	"log10": cmplxLog(cmplx.Log10, "log10"),
}

func cmplxLog(f func(complex128) complex128, name string) complexFunc {
	return func(args []complex128) (complex128, error) {
		if number.IsZeroComplex(args[0]) {
			return 0, &LogarithmOfZeroError{Func: name}
		}
		return f(args[0]), nil
	}
}

// Constant tables. The rational domain has none: pi and e have no exact
// ratio, so every constant lookup there fails with UnknownConstantError.
var realConsts = map[string]float64{
	"pi":  math.Pi,
	"e":   math.E,
	"NAN": math.NaN(),
	"INF": math.Inf(1),
}

var complexConsts = map[string]complex128{
	"pi":  complex(math.Pi, 0),
	"e":   complex(math.E, 0),
	"i":   complex(0, 1),
	"NAN": cmplx.NaN(),
	"INF": cmplx.Inf(),
}
