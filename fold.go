package polyexpr

import (
	"math"

	"quantfold/polyexpr/number"
)

// DefaultPowLimit is the largest integer exponent magnitude that
// exponentiation folds exactly. Larger exponents fold through float64.
const DefaultPowLimit = 20

// Builder constructs operator nodes, folding constant operands as the
// parser reduces. The zero value builds nodes without folding.
type Builder struct {
	// Simplify enables constant folding and the algebraic identities.
	Simplify bool
	// PowLimit caps exact integer exponentiation. Zero means
	// DefaultPowLimit.
	PowLimit int
}

func (b *Builder) powLimit() int64 {
	if b.PowLimit > 0 {
		return int64(b.PowLimit)
	}
	return DefaultPowLimit
}

// Infix builds a binary operator node. With folding enabled, literal
// operands reduce to a single operand node, division by a literal zero
// yields DivisionByZeroError, and 0^0 yields ExponentError.
func (b *Builder) Infix(op Op, l, r Node) (Node, error) {
	if !b.Simplify {
		return &Infix{Op: op, Left: l, Right: r}, nil
	}
	if op.Class != OpArithmetic {
		return foldCompare(op, l, r), nil
	}
	switch op.Sym {
	case "+":
		if isNumZero(l) {
			return r, nil
		}
		if isNumZero(r) {
			return l, nil
		}
	case "-":
		if isNumZero(r) {
			return l, nil
		}
		if Equal(l, r) {
			return &Integer{}, nil
		}
	case "*":
		if isNumZero(l) || isNumZero(r) {
			return &Integer{}, nil
		}
		if isNumOne(l) {
			return r, nil
		}
		if isNumOne(r) {
			return l, nil
		}
	case "/":
		if isNumZero(r) {
			return nil, &DivisionByZeroError{}
		}
		if isNumOne(r) {
			return l, nil
		}
	case "^":
		return b.foldPow(op, l, r)
	}
	lv, lok := operandNum(l)
	rv, rok := operandNum(r)
	if !lok || !rok {
		return &Infix{Op: op, Left: l, Right: r}, nil
	}
	lv, rv = promote(lv, rv)
	switch lv.kind {
	case numInt:
		var c int64
		var ok bool
		switch op.Sym {
		case "+":
			c, ok = addInt64(lv.i, rv.i)
		case "-":
			c, ok = subInt64(lv.i, rv.i)
		case "*":
			c, ok = mulInt64(lv.i, rv.i)
		case "/":
			return emitRat(number.New(lv.i, rv.i)), nil
		}
		if !ok {
			// Out of int64 range. Leave the node unreduced and let
			// evaluation compute in float64.
			return &Infix{Op: op, Left: l, Right: r}, nil
		}
		return &Integer{Value: c}, nil
	case numRat:
		var c number.Rational
		switch op.Sym {
		case "+":
			c = lv.r.Add(rv.r)
		case "-":
			c = lv.r.Sub(rv.r)
		case "*":
			c = lv.r.Mul(rv.r)
		case "/":
			c = lv.r.Div(rv.r)
		}
		return emitRat(c), nil
	default:
		var c float64
		switch op.Sym {
		case "+":
			c = lv.f + rv.f
		case "-":
			c = lv.f - rv.f
		case "*":
			c = lv.f * rv.f
		case "/":
			c = lv.f / rv.f
		}
		return &Float{Value: c}, nil
	}
}

func (b *Builder) foldPow(op Op, l, r Node) (Node, error) {
	lv, lok := operandNum(l)
	rv, rok := operandNum(r)
	if rok && isZeroNum(rv) {
		if lok && isZeroNum(lv) {
			return nil, &ExponentError{}
		}
		return &Integer{Value: 1}, nil
	}
	if rok && isOneNum(rv) {
		return l, nil
	}
	if lok && rok && isZeroNum(lv) && isNegativeNum(rv) {
		return nil, &DivisionByZeroError{}
	}
	if !lok || !rok {
		return &Infix{Op: op, Left: l, Right: r}, nil
	}
	if e, ok := intExponent(rv); ok && e >= -b.powLimit() && e <= b.powLimit() {
		switch lv.kind {
		case numInt:
			if e >= 0 {
				if c, ok := powInt64(lv.i, e); ok {
					return &Integer{Value: c}, nil
				}
				break
			}
			return emitRat(number.FromInt(lv.i).Pow(e)), nil
		case numRat:
			return emitRat(lv.r.Pow(e)), nil
		}
	}
	return &Float{Value: math.Pow(toFloat(lv), toFloat(rv))}, nil
}

// Unary builds a unary operator node. Unary plus is the identity, unary
// minus negates literals and cancels a nested unary minus, and ! negates
// Boolean literals.
func (b *Builder) Unary(op Op, x Node) (Node, error) {
	if !b.Simplify {
		return &Infix{Op: op, Left: x}, nil
	}
	switch op.Sym {
	case "+":
		return x, nil
	case "-":
		if v, ok := operandNum(x); ok {
			switch v.kind {
			case numInt:
				if v.i != math.MinInt64 {
					return &Integer{Value: -v.i}, nil
				}
			case numRat:
				return emitRat(v.r.Neg()), nil
			default:
				return &Float{Value: -v.f}, nil
			}
		}
		if in, ok := x.(*Infix); ok && in.Op.Sym == "-" && in.Right == nil {
			return in.Left, nil
		}
	case "!":
		if v, ok := x.(*Boolean); ok {
			return &Boolean{Value: !v.Value}, nil
		}
	}
	return &Infix{Op: op, Left: x}, nil
}

// Ternary builds a conditional node. A literal condition selects the
// corresponding branch and drops the other.
func (b *Builder) Ternary(cond, then, els Node) (Node, error) {
	if !b.Simplify {
		return &Ternary{Cond: cond, Then: then, Else: els}, nil
	}
	if v, ok := cond.(*Boolean); ok {
		if v.Value {
			return then, nil
		}
		return els, nil
	}
	if v, ok := operandNum(cond); ok {
		if !isZeroNum(v) {
			return then, nil
		}
		return els, nil
	}
	return &Ternary{Cond: cond, Then: then, Else: els}, nil
}

func foldCompare(op Op, l, r Node) Node {
	switch op.Class {
	case OpRelational:
		if lb, ok := l.(*Boolean); ok {
			if rb, ok := r.(*Boolean); ok {
				switch op.Sym {
				case "=":
					return &Boolean{Value: lb.Value == rb.Value}
				case "<>":
					return &Boolean{Value: lb.Value != rb.Value}
				}
			}
		}
		lv, lok := operandNum(l)
		rv, rok := operandNum(r)
		// Relations fold only between literals of the same kind;
		// mixed kinds wait for evaluation.
		if lok && rok && lv.kind == rv.kind {
			return &Boolean{Value: foldRelation(op.Sym, lv, rv)}
		}
	case OpLogical:
		lb, lok := l.(*Boolean)
		rb, rok := r.(*Boolean)
		if lok && rok {
			switch op.Sym {
			case "&&":
				return &Boolean{Value: lb.Value && rb.Value}
			case "||":
				return &Boolean{Value: lb.Value || rb.Value}
			}
		}
	}
	return &Infix{Op: op, Left: l, Right: r}
}

func foldRelation(sym string, lv, rv num) bool {
	if lv.kind == numFloat {
		switch sym {
		case "=":
			return lv.f == rv.f
		case "<>":
			return lv.f != rv.f
		case "<":
			return lv.f < rv.f
		case ">":
			return lv.f > rv.f
		case "<=":
			return lv.f <= rv.f
		case ">=":
			return lv.f >= rv.f
		}
		return false
	}
	var c int
	if lv.kind == numInt {
		switch {
		case lv.i < rv.i:
			c = -1
		case lv.i > rv.i:
			c = 1
		}
	} else {
		c = lv.r.Cmp(rv.r)
	}
	switch sym {
	case "=":
		return c == 0
	case "<>":
		return c != 0
	case "<":
		return c < 0
	case ">":
		return c > 0
	case "<=":
		return c <= 0
	case ">=":
		return c >= 0
	}
	return false
}

// num is the transient numeric tower folding computes in. Kinds order
// Integer < Rational < Float so promotion is a max.
type numKind int

const (
	numInt numKind = iota
	numRat
	numFloat
)

type num struct {
	kind numKind
	i    int64
	r    number.Rational
	f    float64
}

func operandNum(n Node) (num, bool) {
	switch n := n.(type) {
	case *Integer:
		return num{kind: numInt, i: n.Value}, true
	case *Rational:
		return num{kind: numRat, r: number.New(n.Num, n.Den)}, true
	case *Float:
		return num{kind: numFloat, f: n.Value}, true
	}
	return num{}, false
}

func promote(a, b num) (num, num) {
	if a.kind < b.kind {
		a = widen(a, b.kind)
	} else if b.kind < a.kind {
		b = widen(b, a.kind)
	}
	return a, b
}

func widen(v num, to numKind) num {
	switch to {
	case numRat:
		return num{kind: numRat, r: number.FromInt(v.i)}
	case numFloat:
		return num{kind: numFloat, f: toFloat(v)}
	}
	return v
}

func toFloat(v num) float64 {
	switch v.kind {
	case numInt:
		return float64(v.i)
	case numRat:
		return v.r.Float64()
	}
	return v.f
}

func intExponent(v num) (int64, bool) {
	switch v.kind {
	case numInt:
		return v.i, true
	case numRat:
		if v.r.IsInt() {
			return v.r.Num(), true
		}
	}
	return 0, false
}

func emitRat(r number.Rational) Node {
	if r.IsInt() {
		return &Integer{Value: r.Num()}
	}
	return &Rational{Num: r.Num(), Den: r.Den()}
}

func isNumZero(n Node) bool {
	v, ok := operandNum(n)
	return ok && isZeroNum(v)
}

func isNumOne(n Node) bool {
	v, ok := operandNum(n)
	return ok && isOneNum(v)
}

func isZeroNum(v num) bool {
	switch v.kind {
	case numInt:
		return v.i == 0
	case numRat:
		return v.r.IsZero()
	}
	return v.f == 0
}

func isOneNum(v num) bool {
	switch v.kind {
	case numInt:
		return v.i == 1
	case numRat:
		return v.r.Equal(number.FromInt(1))
	}
	return v.f == 1
}

func isNegativeNum(v num) bool {
	switch v.kind {
	case numInt:
		return v.i < 0
	case numRat:
		return v.r.Sign() < 0
	}
	return v.f < 0
}

func addInt64(a, b int64) (int64, bool) {
	c := a + b
	if (b > 0 && c < a) || (b < 0 && c > a) {
		return 0, false
	}
	return c, true
}

func subInt64(a, b int64) (int64, bool) {
	c := a - b
	if (b > 0 && c > a) || (b < 0 && c < a) {
		return 0, false
	}
	return c, true
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a == math.MinInt64 || b == math.MinInt64 {
		if a == 1 {
			return b, true
		}
		if b == 1 {
			return a, true
		}
		return 0, false
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}

func powInt64(base, e int64) (int64, bool) {
	c := int64(1)
	for ; e > 0; e-- {
		var ok bool
		c, ok = mulInt64(c, base)
		if !ok {
			return 0, false
		}
	}
	return c, true
}
