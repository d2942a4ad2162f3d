// Package number provides the exact rational and complex scalar types
// that expression evaluators compute with.
package number

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Limits for converting a float64 to a nearby rational. A convergent is
// accepted once it is within Tolerance of the input; the search stops
// before the denominator exceeds MaxDenominator.
const (
	MaxDenominator = 1_000_000_000
	Tolerance      = 1e-10
)

// Rational is an exact ratio of two int64 values. It is normalized at
// construction: the denominator is positive and shares no factor with
// the numerator. The zero value is 0.
type Rational struct {
	num, den int64
}

// New returns the normalized rational num/den. It panics if den is zero.
func New(num, den int64) Rational {
	if den == 0 {
		panic("number: division by zero")
	}
	return normalize(num, den)
}

// FromInt returns the rational n/1.
func FromInt(n int64) Rational {
	return Rational{num: n, den: 1}
}

func normalize(num, den int64) Rational {
	if den < 0 {
		num, den = -num, -den
	}
	if num == 0 {
		return Rational{num: 0, den: 1}
	}
	g := gcd(abs64(num), den)
	return Rational{num: num / g, den: den / g}
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// Num returns the normalized numerator. It carries the sign of the value.
func (r Rational) Num() int64 {
	return r.num
}

// Den returns the normalized denominator. It is always positive.
func (r Rational) Den() int64 {
	if r.den == 0 {
		return 1
	}
	return r.den
}

// IsZero reports whether r is 0.
func (r Rational) IsZero() bool {
	return r.num == 0
}

// IsInt reports whether r is an integer.
func (r Rational) IsInt() bool {
	return r.Den() == 1
}

// Sign returns -1, 0, or +1 according to the sign of r.
func (r Rational) Sign() int {
	switch {
	case r.num < 0:
		return -1
	case r.num > 0:
		return 1
	}
	return 0
}

// Add returns r + s.
func (r Rational) Add(s Rational) Rational {
	return normalize(r.Num()*s.Den()+s.Num()*r.Den(), r.Den()*s.Den())
}

// Sub returns r - s.
func (r Rational) Sub(s Rational) Rational {
	return normalize(r.Num()*s.Den()-s.Num()*r.Den(), r.Den()*s.Den())
}

// Mul returns r * s.
func (r Rational) Mul(s Rational) Rational {
	return normalize(r.Num()*s.Num(), r.Den()*s.Den())
}

// Div returns r / s. It panics if s is zero; callers that can receive a
// zero divisor from user input must check IsZero first.
func (r Rational) Div(s Rational) Rational {
	if s.IsZero() {
		panic("number: division by zero")
	}
	return normalize(r.Num()*s.Den(), r.Den()*s.Num())
}

// Neg returns -r.
func (r Rational) Neg() Rational {
	return Rational{num: -r.num, den: r.Den()}
}

// Abs returns the absolute value of r.
func (r Rational) Abs() Rational {
	return Rational{num: abs64(r.num), den: r.Den()}
}

// Pow returns r raised to the integer exponent exp by repeated
// multiplication. A negative exponent inverts the result; it panics if r
// is zero and exp is negative.
func (r Rational) Pow(exp int64) Rational {
	if exp < 0 {
		if r.IsZero() {
			panic("number: division by zero")
		}
		return FromInt(1).Div(r.Pow(-exp))
	}
	p := FromInt(1)
	for i := int64(0); i < exp; i++ {
		p = p.Mul(r)
	}
	return p
}

// Cmp compares r and s and returns -1, 0, or +1.
func (r Rational) Cmp(s Rational) int {
	d := r.Num()*s.Den() - s.Num()*r.Den()
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	}
	return 0
}

// Equal reports whether r and s are the same rational.
func (r Rational) Equal(s Rational) bool {
	return r.Num() == s.Num() && r.Den() == s.Den()
}

// Floor returns the largest integer not greater than r.
func (r Rational) Floor() int64 {
	q := r.Num() / r.Den()
	if r.Num()%r.Den() != 0 && r.Num() < 0 {
		q--
	}
	return q
}

// Ceil returns the smallest integer not less than r.
func (r Rational) Ceil() int64 {
	q := r.Num() / r.Den()
	if r.Num()%r.Den() != 0 && r.Num() > 0 {
		q++
	}
	return q
}

// Round returns the nearest integer to r, rounding half away from zero.
func (r Rational) Round() int64 {
	q := r.Num() / r.Den()
	rem := r.Num() % r.Den()
	if 2*abs64(rem) >= r.Den() {
		if r.num < 0 {
			q--
		} else {
			q++
		}
	}
	return q
}

// Float64 returns the float projection num/den.
func (r Rational) Float64() float64 {
	return float64(r.Num()) / float64(r.Den())
}

// String renders r as "num/den", or as a bare integer when den is 1.
func (r Rational) String() string {
	if r.IsInt() {
		return strconv.FormatInt(r.num, 10)
	}
	return strconv.FormatInt(r.num, 10) + "/" + strconv.FormatInt(r.den, 10)
}

// Parse reads a rational from s. Accepted forms are an integer ("42"), a
// ratio ("7/10"), and plain decimal text ("0.7", ".99", "-1.25"), which
// converts exactly using a power-of-ten denominator.
func Parse(s string) (Rational, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Rational{}, fmt.Errorf("number: cannot parse %q as rational", s)
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		num, err := strconv.ParseInt(s[:i], 10, 64)
		if err != nil {
			return Rational{}, fmt.Errorf("number: cannot parse %q as rational", s)
		}
		den, err := strconv.ParseInt(s[i+1:], 10, 64)
		if err != nil || den == 0 {
			return Rational{}, fmt.Errorf("number: cannot parse %q as rational", s)
		}
		return New(num, den), nil
	}
	if strings.IndexByte(s, '.') >= 0 {
		return parseDecimal(s)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Rational{}, fmt.Errorf("number: cannot parse %q as rational", s)
	}
	return FromInt(n), nil
}

// parseDecimal converts decimal text exactly: "0.7" becomes 7/10. At most
// eighteen fractional digits fit the int64 denominator.
func parseDecimal(s string) (Rational, error) {
	neg := false
	t := s
	switch {
	case strings.HasPrefix(t, "-"):
		neg, t = true, t[1:]
	case strings.HasPrefix(t, "+"):
		t = t[1:]
	}
	i := strings.IndexByte(t, '.')
	intPart, fracPart := t[:i], t[i+1:]
	if intPart == "" && fracPart == "" {
		return Rational{}, fmt.Errorf("number: cannot parse %q as rational", s)
	}
	if len(fracPart) > 18 {
		return Rational{}, fmt.Errorf("number: %q has too many fractional digits", s)
	}
	var ip int64
	var err error
	if intPart != "" {
		ip, err = strconv.ParseInt(intPart, 10, 64)
		if err != nil {
			return Rational{}, fmt.Errorf("number: cannot parse %q as rational", s)
		}
	}
	den := int64(1)
	var fp int64
	if fracPart != "" {
		fp, err = strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return Rational{}, fmt.Errorf("number: cannot parse %q as rational", s)
		}
		for range fracPart {
			den *= 10
		}
	}
	num := ip*den + fp
	if neg {
		num = -num
	}
	return New(num, den), nil
}

// FromFloat64 returns a rational near f, found by walking the continued
// fraction convergents of f. The walk stops at the first convergent
// within Tolerance of f and never emits a denominator above
// MaxDenominator. NaN, infinities, and magnitudes beyond int64 range are
// rejected.
func FromFloat64(f float64) (Rational, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Rational{}, fmt.Errorf("number: cannot represent %v as a rational", f)
	}
	if math.Abs(f) >= 1<<60 {
		return Rational{}, fmt.Errorf("number: %v is too large for a rational", f)
	}
	neg := f < 0
	x := math.Abs(f)
	target := x
	var (
		p0, q0 int64 = 0, 1
		p1, q1 int64 = 1, 0
	)
	for i := 0; i < 64; i++ {
		a := int64(math.Floor(x))
		p2 := a*p1 + p0
		q2 := a*q1 + q0
		if q2 > MaxDenominator || q2 <= 0 {
			break
		}
		p0, q0, p1, q1 = p1, q1, p2, q2
		if math.Abs(target-float64(p1)/float64(q1)) < Tolerance {
			break
		}
		frac := x - float64(a)
		if frac < 1e-15 {
			break
		}
		x = 1 / frac
	}
	if q1 == 0 {
		return Rational{}, fmt.Errorf("number: cannot represent %v as a rational", f)
	}
	if neg {
		p1 = -p1
	}
	return New(p1, q1), nil
}

// Factorial returns n! for 0 <= n <= 20; larger values overflow int64.
func Factorial(n int64) (int64, error) {
	if n < 0 {
		return 0, fmt.Errorf("number: factorial of negative value %d", n)
	}
	if n > 20 {
		return 0, fmt.Errorf("number: factorial of %d overflows", n)
	}
	p := int64(1)
	for i := int64(2); i <= n; i++ {
		p *= i
	}
	return p, nil
}

// Semifactorial returns n!!, the product n(n-2)(n-4)..., for
// 0 <= n <= 33; larger values overflow int64.
func Semifactorial(n int64) (int64, error) {
	if n < 0 {
		return 0, fmt.Errorf("number: semifactorial of negative value %d", n)
	}
	if n > 33 {
		return 0, fmt.Errorf("number: semifactorial of %d overflows", n)
	}
	p := int64(1)
	for i := n; i > 1; i -= 2 {
		p *= i
	}
	return p, nil
}
