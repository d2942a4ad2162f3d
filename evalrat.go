package polyexpr

import (
	"strconv"

	"quantfold/polyexpr/number"
)

// RationalEvaluator folds expression trees into exact rationals. Float
// operands convert through continued-fraction approximation, so decimal
// literals such as 0.7 land on 7/10; constants and transcendental
// functions have no exact value and fail with UnknownConstantError and
// UnknownFunctionError. Safe for concurrent use like Evaluator.
type RationalEvaluator struct {
	vars map[string]number.Rational
}

// NewRationalEvaluator returns an exact evaluator over a copy of vars.
func NewRationalEvaluator(vars map[string]number.Rational) *RationalEvaluator {
	e := &RationalEvaluator{vars: make(map[string]number.Rational, len(vars))}
	for k, v := range vars {
		e.vars[k] = v
	}
	return e
}

// Eval computes the value of n.
func (e *RationalEvaluator) Eval(n Node) (number.Rational, error) {
	s := ratRun{vars: e.vars}
	if err := n.Accept(&s); err != nil {
		return number.Rational{}, err
	}
	return s.result(), nil
}

type ratRun struct {
	vars  map[string]number.Rational
	stack []number.Rational
}

func (s *ratRun) push(v number.Rational) {
	s.stack = append(s.stack, v)
}

func (s *ratRun) pop() number.Rational {
	v := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return v
}

func (s *ratRun) result() number.Rational {
	if len(s.stack) != 1 {
		panic("polyexpr: inconsistent evaluation stack: " + strconv.Itoa(len(s.stack)) + " items")
	}
	return s.stack[0]
}

func (s *ratRun) VisitInteger(n *Integer) error {
	s.push(number.FromInt(n.Value))
	return nil
}

func (s *ratRun) VisitFloat(n *Float) error {
	v, err := number.FromFloat64(n.Value)
	if err != nil {
		return err
	}
	s.push(v)
	return nil
}

func (s *ratRun) VisitRational(n *Rational) error {
	s.push(number.New(n.Num, n.Den))
	return nil
}

func (s *ratRun) VisitBoolean(n *Boolean) error {
	if n.Value {
		s.push(number.FromInt(1))
	} else {
		s.push(number.Rational{})
	}
	return nil
}

// VisitConstant fails for every name: no named constant has an exact
// ratio.
func (s *ratRun) VisitConstant(n *Constant) error {
	return &UnknownConstantError{Name: n.Name}
}

func (s *ratRun) VisitVariable(n *Variable) error {
	v, ok := s.vars[n.Name]
	if !ok {
		return &UnknownVariableError{Name: n.Name}
	}
	s.push(v)
	return nil
}

func (s *ratRun) VisitString(n *String) error {
	v, err := number.Parse(n.Text)
	if err != nil {
		return &UnknownConstantError{Name: n.Text}
	}
	s.push(v)
	return nil
}

func (s *ratRun) VisitInfix(n *Infix) error {
	if n.Left == nil {
		return &NullOperandError{Sym: n.Op.Sym}
	}
	if err := n.Left.Accept(s); err != nil {
		return err
	}
	if n.Right == nil {
		switch n.Op.Sym {
		case "-":
			s.push(s.pop().Neg())
			return nil
		case "+":
			return nil
		}
		return &NullOperandError{Sym: n.Op.Sym}
	}
	if err := n.Right.Accept(s); err != nil {
		return err
	}
	r := s.pop()
	l := s.pop()
	switch n.Op.Sym {
	case "+":
		s.push(l.Add(r))
	case "-":
		s.push(l.Sub(r))
	case "*":
		s.push(l.Mul(r))
	case "/":
		if r.IsZero() {
			return &DivisionByZeroError{}
		}
		s.push(l.Div(r))
	case "^":
		v, err := ratPow(l, r)
		if err != nil {
			return err
		}
		s.push(v)
	default:
		return &UnknownOperatorError{Sym: n.Op.Sym, Offset: -1}
	}
	return nil
}

// ratPow raises l to the rational power r. Exactness restricts the
// exponent to integers of magnitude at most DefaultPowLimit.
func ratPow(l, r number.Rational) (number.Rational, error) {
	if l.IsZero() {
		if r.IsZero() {
			return number.Rational{}, &ExponentError{}
		}
		if r.Sign() < 0 {
			return number.Rational{}, &DivisionByZeroError{}
		}
		return number.Rational{}, nil
	}
	if !r.IsInt() || r.Num() < -DefaultPowLimit || r.Num() > DefaultPowLimit {
		return number.Rational{}, &DomainError{X: r.String(), Arg: 2, Func: "^"}
	}
	return l.Pow(r.Num()), nil
}

func (s *ratRun) VisitLogicalInfix(n *Infix) error {
	return &UnknownOperatorError{Sym: n.Op.Sym, Offset: -1}
}

func (s *ratRun) VisitTernary(n *Ternary) error {
	if err := n.Cond.Accept(s); err != nil {
		return err
	}
	if !s.pop().IsZero() {
		return n.Then.Accept(s)
	}
	return n.Else.Accept(s)
}

func (s *ratRun) VisitFunction(n *Function) error {
	f, ok := rationalFuncs[n.Name]
	if !ok {
		return &UnknownFunctionError{Name: n.Name}
	}
	if want, ok := funcArity[n.Name]; ok && want != len(n.Args) {
		return &CallError{Func: n.Name, Want: want, Got: len(n.Args)}
	}
	args := make([]number.Rational, len(n.Args))
	for i, a := range n.Args {
		if err := a.Accept(s); err != nil {
			return err
		}
		args[i] = s.pop()
	}
	v, err := f(args)
	if err != nil {
		return err
	}
	s.push(v)
	return nil
}
