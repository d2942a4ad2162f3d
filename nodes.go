package polyexpr

import (
	"strconv"

	"quantfold/polyexpr/number"
)

// Node is a finished vertex of an expression tree. The variant set is
// closed; every variant dispatches through Accept to exactly one Visitor
// method. Nodes are immutable once constructed and belong to a single
// tree.
type Node interface {
	// Accept calls the visitor method for the node's concrete variant.
	Accept(v Visitor) error

	astNode()
}

// Operand variants.

// Integer is a whole-number operand.
type Integer struct {
	Value int64
}

// Float is a real-number operand.
type Float struct {
	Value float64
}

// Rational is an exact ratio operand. Construct it with NewRational so
// the denominator is positive and the fraction fully reduced.
type Rational struct {
	Num int64
	Den int64
}

// NewRational returns the normalized Rational num/den. It panics if den
// is zero; parse-time division folding checks the divisor first.
func NewRational(num, den int64) *Rational {
	r := number.New(num, den)
	return &Rational{Num: r.Num(), Den: r.Den()}
}

// Value is the float projection Num/Den.
func (n *Rational) Value() float64 {
	return number.New(n.Num, n.Den).Float64()
}

// Boolean is a truth-value operand. It is produced by folding and by the
// logic evaluators; no lexer configuration has a boolean literal.
type Boolean struct {
	Value bool
}

// Constant is a named constant operand such as pi, e, or i. Evaluators
// resolve the name against their own constant tables.
type Constant struct {
	Name string
}

// Variable is a named operand resolved from an evaluator's environment.
type Variable struct {
	Name string
}

// String is a literal-text operand. It preserves decimal tails such as
// ".99" verbatim for the pricing function ending.
type String struct {
	Text string
}

// Operator variants.

// Infix is a binary operator node. Right is nil only for the unary forms
// of "+", "-", and "!"; evaluators reject any other missing operand with
// a NullOperandError.
type Infix struct {
	Op    Op
	Left  Node
	Right Node
}

// Ternary is an if/then/else node.
type Ternary struct {
	Cond Node
	Then Node
	Else Node
}

// Function is a call node. Construct it with NewFunction so the argument
// count is checked against the function's declared arity.
type Function struct {
	Name string
	Args []Node
	// Arity is the declared argument count.
	Arity int
}

// NewFunction builds a call node for name. Names with a declared arity
// must receive exactly that many arguments; unknown names pass and fail
// later with UnknownFunction in whichever domain evaluates them.
func NewFunction(name string, args []Node) (*Function, error) {
	arity := len(args)
	if want, ok := funcArity[name]; ok {
		if len(args) != want {
			return nil, &CallError{Func: name, Want: want, Got: len(args)}
		}
		arity = want
	}
	return &Function{Name: name, Args: args, Arity: arity}, nil
}

// CallError is an error indicating a function call constructed with the
// wrong number of arguments.
type CallError struct {
	// Func is the function name.
	Func string
	// Want is the declared arity.
	Want int
	// Got is the number of arguments supplied.
	Got int
}

func (err *CallError) Error() string {
	return "function " + err.Func + " takes " + strconv.Itoa(err.Want) + " arguments, not " + strconv.Itoa(err.Got)
}

// Postfix is a transient marker for a trailing "!" or "!!". The parser
// folds it into a factorial or semifactorial Function node before the
// tree is finished; it survives only in parse diagnostics. Only printers
// may visit it.
type Postfix struct {
	Sym string
}

// MarkerKind distinguishes the structural placeholders used in parse
// diagnostics.
type MarkerKind int

// Marker kinds.
const (
	MarkerCloseParen MarkerKind = iota
	MarkerCloseBrace
	MarkerPostfix
)

// Marker is a structural placeholder for an unmatched delimiter. It never
// appears in a successfully parsed tree. Only printers may visit it.
type Marker struct {
	Kind MarkerKind
}

func (m *Marker) String() string {
	switch m.Kind {
	case MarkerCloseParen:
		return ")"
	case MarkerCloseBrace:
		return "}"
	case MarkerPostfix:
		return "!"
	}
	return "?"
}

func (*Integer) astNode()  {}
func (*Float) astNode()    {}
func (*Rational) astNode() {}
func (*Boolean) astNode()  {}
func (*Constant) astNode() {}
func (*Variable) astNode() {}
func (*String) astNode()   {}
func (*Infix) astNode()    {}
func (*Ternary) astNode()  {}
func (*Function) astNode() {}
func (*Postfix) astNode()  {}
func (*Marker) astNode()   {}

// Equal reports structural equality of two trees. Folding uses it to
// reduce x-x to zero.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case *Integer:
		y, ok := b.(*Integer)
		return ok && x.Value == y.Value
	case *Float:
		y, ok := b.(*Float)
		return ok && x.Value == y.Value
	case *Rational:
		y, ok := b.(*Rational)
		return ok && x.Num == y.Num && x.Den == y.Den
	case *Boolean:
		y, ok := b.(*Boolean)
		return ok && x.Value == y.Value
	case *Constant:
		y, ok := b.(*Constant)
		return ok && x.Name == y.Name
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.Name == y.Name
	case *String:
		y, ok := b.(*String)
		return ok && x.Text == y.Text
	case *Infix:
		y, ok := b.(*Infix)
		return ok && x.Op.Sym == y.Op.Sym && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Ternary:
		y, ok := b.(*Ternary)
		return ok && Equal(x.Cond, y.Cond) && Equal(x.Then, y.Then) && Equal(x.Else, y.Else)
	case *Function:
		y, ok := b.(*Function)
		if !ok || x.Name != y.Name || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *Postfix:
		y, ok := b.(*Postfix)
		return ok && x.Sym == y.Sym
	case *Marker:
		y, ok := b.(*Marker)
		return ok && x.Kind == y.Kind
	}
	return false
}
