package polyexpr

import (
	"math/cmplx"
	"strconv"

	"quantfold/polyexpr/number"
)

// ComplexEvaluator folds expression trees into complex128 values. Real
// operands promote to complex with a zero imaginary part, and the
// function table uses the closed-form complex identities, so sqrt(-1) is
// i rather than a domain error. Safe for concurrent use like Evaluator.
type ComplexEvaluator struct {
	vars map[string]complex128
}

// NewComplexEvaluator returns a complex evaluator over a copy of vars.
func NewComplexEvaluator(vars map[string]complex128) *ComplexEvaluator {
	e := &ComplexEvaluator{vars: make(map[string]complex128, len(vars))}
	for k, v := range vars {
		e.vars[k] = v
	}
	return e
}

// Eval computes the value of n.
func (e *ComplexEvaluator) Eval(n Node) (complex128, error) {
	s := cmplxRun{vars: e.vars}
	if err := n.Accept(&s); err != nil {
		return 0, err
	}
	return s.result(), nil
}

type cmplxRun struct {
	vars  map[string]complex128
	stack []complex128
}

func (s *cmplxRun) push(v complex128) {
	s.stack = append(s.stack, v)
}

func (s *cmplxRun) pop() complex128 {
	v := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return v
}

func (s *cmplxRun) result() complex128 {
	if len(s.stack) != 1 {
		panic("polyexpr: inconsistent evaluation stack: " + strconv.Itoa(len(s.stack)) + " items")
	}
	return s.stack[0]
}

func (s *cmplxRun) VisitInteger(n *Integer) error {
	s.push(complex(float64(n.Value), 0))
	return nil
}

func (s *cmplxRun) VisitFloat(n *Float) error {
	s.push(complex(n.Value, 0))
	return nil
}

func (s *cmplxRun) VisitRational(n *Rational) error {
	s.push(complex(n.Value(), 0))
	return nil
}

func (s *cmplxRun) VisitBoolean(n *Boolean) error {
	if n.Value {
		s.push(1)
	} else {
		s.push(0)
	}
	return nil
}

func (s *cmplxRun) VisitConstant(n *Constant) error {
	v, ok := complexConsts[n.Name]
	if !ok {
		return &UnknownConstantError{Name: n.Name}
	}
	s.push(v)
	return nil
}

func (s *cmplxRun) VisitVariable(n *Variable) error {
	v, ok := s.vars[n.Name]
	if !ok {
		return &UnknownVariableError{Name: n.Name}
	}
	s.push(v)
	return nil
}

func (s *cmplxRun) VisitString(n *String) error {
	v, err := number.ParseComplex(n.Text)
	if err != nil {
		return &UnknownConstantError{Name: n.Text}
	}
	s.push(v)
	return nil
}

func (s *cmplxRun) VisitInfix(n *Infix) error {
	if n.Left == nil {
		return &NullOperandError{Sym: n.Op.Sym}
	}
	if err := n.Left.Accept(s); err != nil {
		return err
	}
	if n.Right == nil {
		switch n.Op.Sym {
		case "-":
			s.push(-s.pop())
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
		s.push(l + r)
	case "-":
		s.push(l - r)
	case "*":
		s.push(l * r)
	case "/":
		if number.IsZeroComplex(r) {
			return &DivisionByZeroError{}
		}
		s.push(l / r)
	case "^":
		if number.IsZeroComplex(l) {
			if number.IsZeroComplex(r) {
				return &ExponentError{}
			}
			if real(r) < 0 {
				return &DivisionByZeroError{}
			}
		}
		s.push(cmplx.Pow(l, r))
	default:
		return &UnknownOperatorError{Sym: n.Op.Sym, Offset: -1}
	}
	return nil
}

func (s *cmplxRun) VisitLogicalInfix(n *Infix) error {
	return &UnknownOperatorError{Sym: n.Op.Sym, Offset: -1}
}

// VisitTernary takes the then branch when the condition has nonzero
// modulus.
func (s *cmplxRun) VisitTernary(n *Ternary) error {
	if err := n.Cond.Accept(s); err != nil {
		return err
	}
	if !number.IsZeroComplex(s.pop()) {
		return n.Then.Accept(s)
	}
	return n.Else.Accept(s)
}

func (s *cmplxRun) VisitFunction(n *Function) error {
	f, ok := complexFuncs[n.Name]
	if !ok {
		return &UnknownFunctionError{Name: n.Name}
	}
	if want, ok := funcArity[n.Name]; ok && want != len(n.Args) {
		return &CallError{Func: n.Name, Want: want, Got: len(n.Args)}
	}
	args := make([]complex128, len(n.Args))
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
