package polyexpr

import (
	"math"
	"strconv"
)

// Evaluator folds expression trees into float64 values. It binds its
// variable environment once at construction; the same instance may
// evaluate many trees, concurrently, because each Eval call keeps its
// value stack in a private session.
type Evaluator struct {
	vars map[string]float64
}

// NewEvaluator returns a float64 evaluator over a copy of vars.
func NewEvaluator(vars map[string]float64) *Evaluator {
	e := &Evaluator{vars: make(map[string]float64, len(vars))}
	for k, v := range vars {
		e.vars[k] = v
	}
	return e
}

// Eval computes the value of n.
func (e *Evaluator) Eval(n Node) (float64, error) {
	s := stdRun{vars: e.vars}
	if err := n.Accept(&s); err != nil {
		return 0, err
	}
	return s.result(), nil
}

// stdRun is the state of one Eval call.
type stdRun struct {
	vars  map[string]float64
	stack []float64
}

func (s *stdRun) push(v float64) {
	s.stack = append(s.stack, v)
}

func (s *stdRun) pop() float64 {
	v := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return v
}

func (s *stdRun) result() float64 {
	if len(s.stack) != 1 {
		panic("polyexpr: inconsistent evaluation stack: " + strconv.Itoa(len(s.stack)) + " items")
	}
	return s.stack[0]
}

func (s *stdRun) VisitInteger(n *Integer) error {
	s.push(float64(n.Value))
	return nil
}

func (s *stdRun) VisitFloat(n *Float) error {
	s.push(n.Value)
	return nil
}

func (s *stdRun) VisitRational(n *Rational) error {
	s.push(n.Value())
	return nil
}

// VisitBoolean coerces truth values the way every numeric domain does:
// true is 1, false is 0.
func (s *stdRun) VisitBoolean(n *Boolean) error {
	if n.Value {
		s.push(1)
	} else {
		s.push(0)
	}
	return nil
}

func (s *stdRun) VisitConstant(n *Constant) error {
	v, ok := realConsts[n.Name]
	if !ok {
		return &UnknownConstantError{Name: n.Name}
	}
	s.push(v)
	return nil
}

func (s *stdRun) VisitVariable(n *Variable) error {
	v, ok := s.vars[n.Name]
	if !ok {
		return &UnknownVariableError{Name: n.Name}
	}
	s.push(v)
	return nil
}

func (s *stdRun) VisitString(n *String) error {
	v, err := strconv.ParseFloat(n.Text, 64)
	if err != nil {
		return &UnknownConstantError{Name: n.Text}
	}
	s.push(v)
	return nil
}

func (s *stdRun) VisitInfix(n *Infix) error {
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
	v, err := realInfix(n.Op, l, r)
	if err != nil {
		return err
	}
	s.push(v)
	return nil
}

// realInfix applies an arithmetic operator to float64 operands. The logic
// evaluator shares it for the arithmetic part of its domain.
func realInfix(op Op, l, r float64) (float64, error) {
	switch op.Sym {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return 0, &DivisionByZeroError{}
		}
		return l / r, nil
	case "^":
		if l == 0 {
			if r == 0 {
				return 0, &ExponentError{}
			}
			if r < 0 {
				return 0, &DivisionByZeroError{}
			}
		}
		return math.Pow(l, r), nil
	}
	return 0, &UnknownOperatorError{Sym: op.Sym, Offset: -1}
}

// VisitLogicalInfix fails: the float64 domain has no truth values, so
// relational and logical operators are unmapped here.
func (s *stdRun) VisitLogicalInfix(n *Infix) error {
	return &UnknownOperatorError{Sym: n.Op.Sym, Offset: -1}
}

func (s *stdRun) VisitTernary(n *Ternary) error {
	if err := n.Cond.Accept(s); err != nil {
		return err
	}
	if s.pop() != 0 {
		return n.Then.Accept(s)
	}
	return n.Else.Accept(s)
}

func (s *stdRun) VisitFunction(n *Function) error {
	f, ok := realFuncs[n.Name]
	if !ok {
		return &UnknownFunctionError{Name: n.Name}
	}
	if want, ok := funcArity[n.Name]; ok && want != len(n.Args) {
		return &CallError{Func: n.Name, Want: want, Got: len(n.Args)}
	}
	args := make([]float64, len(n.Args))
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

// UnknownVariableError is an error from evaluating a variable that is
// missing from the evaluator's environment.
type UnknownVariableError struct {
	// Name is the missing variable.
	Name string
}

func (err *UnknownVariableError) Error() string {
	return "undefined variable " + strconv.Quote(err.Name)
}

// UnknownConstantError is an error from evaluating a named constant that
// the evaluating domain has no value for, such as pi in the exact
// rational domain.
type UnknownConstantError struct {
	// Name is the unresolved constant.
	Name string
}

func (err *UnknownConstantError) Error() string {
	return "unknown constant " + strconv.Quote(err.Name)
}

// UnknownFunctionError is an error from calling a function name that the
// evaluating domain has no primitive for, such as sin in the exact
// rational domain.
type UnknownFunctionError struct {
	// Name is the unmapped function.
	Name string
}

func (err *UnknownFunctionError) Error() string {
	return "unknown function " + strconv.Quote(err.Name)
}

// LogarithmOfZeroError is an error from taking a logarithm of zero.
type LogarithmOfZeroError struct {
	// Func is the logarithm that was called, "ln" or "log10".
	Func string
}

func (err *LogarithmOfZeroError) Error() string {
	return "logarithm of zero in " + err.Func
}
