package polyexpr

import (
	"strconv"
)

// Value is the hybrid scalar of the logic and pricing domain: either a
// number or a truth value. Each side coerces to the other on demand,
// numbers being true when nonzero and truth being 1 or 0.
type Value struct {
	num    float64
	truth  bool
	isBool bool
}

// Num returns a numeric Value.
func Num(v float64) Value {
	return Value{num: v}
}

// Bool returns a truth Value.
func Bool(b bool) Value {
	return Value{truth: b, isBool: true}
}

// IsBool reports whether v is a truth value.
func (v Value) IsBool() bool {
	return v.isBool
}

// Number returns v as a number, truth coercing to 1 or 0.
func (v Value) Number() float64 {
	if !v.isBool {
		return v.num
	}
	if v.truth {
		return 1
	}
	return 0
}

// Truth returns v as a truth value, numbers being true when nonzero.
func (v Value) Truth() bool {
	if v.isBool {
		return v.truth
	}
	return v.num != 0
}

func (v Value) String() string {
	if v.isBool {
		return strconv.FormatBool(v.truth)
	}
	return strconv.FormatFloat(v.num, 'g', -1, 64)
}

// LogicEvaluator folds expression trees into Values. It is the only
// evaluator that maps the relational and logical operators, and it
// short-circuits conditionals against runtime truth instead of structural
// constants. Safe for concurrent use like Evaluator.
type LogicEvaluator struct {
	vars  map[string]Value
	funcs map[string]realFunc
}

// NewLogicEvaluator returns a logic evaluator over a copy of vars.
func NewLogicEvaluator(vars map[string]Value) *LogicEvaluator {
	e := &LogicEvaluator{vars: make(map[string]Value, len(vars)), funcs: realFuncs}
	for k, v := range vars {
		e.vars[k] = v
	}
	return e
}

// NewPricingEvaluator returns a logic evaluator whose function table adds
// the pricing primitives, with numeric variable bindings.
func NewPricingEvaluator(vars map[string]float64) *LogicEvaluator {
	e := &LogicEvaluator{vars: make(map[string]Value, len(vars)), funcs: pricingFuncs}
	for k, v := range vars {
		e.vars[k] = Num(v)
	}
	return e
}

// Eval computes the value of n.
func (e *LogicEvaluator) Eval(n Node) (Value, error) {
	s := logicRun{vars: e.vars, funcs: e.funcs}
	if err := n.Accept(&s); err != nil {
		return Value{}, err
	}
	return s.result(), nil
}

type logicRun struct {
	vars  map[string]Value
	funcs map[string]realFunc
	stack []Value
}

func (s *logicRun) push(v Value) {
	s.stack = append(s.stack, v)
}

func (s *logicRun) pop() Value {
	v := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return v
}

func (s *logicRun) result() Value {
	if len(s.stack) != 1 {
		panic("polyexpr: inconsistent evaluation stack: " + strconv.Itoa(len(s.stack)) + " items")
	}
	return s.stack[0]
}

func (s *logicRun) VisitInteger(n *Integer) error {
	s.push(Num(float64(n.Value)))
	return nil
}

func (s *logicRun) VisitFloat(n *Float) error {
	s.push(Num(n.Value))
	return nil
}

func (s *logicRun) VisitRational(n *Rational) error {
	s.push(Num(n.Value()))
	return nil
}

func (s *logicRun) VisitBoolean(n *Boolean) error {
	s.push(Bool(n.Value))
	return nil
}

func (s *logicRun) VisitConstant(n *Constant) error {
	v, ok := realConsts[n.Name]
	if !ok {
		return &UnknownConstantError{Name: n.Name}
	}
	s.push(Num(v))
	return nil
}

func (s *logicRun) VisitVariable(n *Variable) error {
	v, ok := s.vars[n.Name]
	if !ok {
		return &UnknownVariableError{Name: n.Name}
	}
	s.push(v)
	return nil
}

// VisitString resolves a bare decimal tail such as ".99" to its number.
func (s *logicRun) VisitString(n *String) error {
	v, err := strconv.ParseFloat(n.Text, 64)
	if err != nil {
		return &UnknownConstantError{Name: n.Text}
	}
	s.push(Num(v))
	return nil
}

func (s *logicRun) VisitInfix(n *Infix) error {
	if n.Left == nil {
		return &NullOperandError{Sym: n.Op.Sym}
	}
	if err := n.Left.Accept(s); err != nil {
		return err
	}
	if n.Right == nil {
		switch n.Op.Sym {
		case "-":
			s.push(Num(-s.pop().Number()))
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
	v, err := realInfix(n.Op, l.Number(), r.Number())
	if err != nil {
		return err
	}
	s.push(Num(v))
	return nil
}

func (s *logicRun) VisitLogicalInfix(n *Infix) error {
	if n.Left == nil {
		return &NullOperandError{Sym: n.Op.Sym}
	}
	if err := n.Left.Accept(s); err != nil {
		return err
	}
	if n.Right == nil {
		if n.Op.Sym == "!" {
			s.push(Bool(!s.pop().Truth()))
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
	case "&&":
		s.push(Bool(l.Truth() && r.Truth()))
	case "||":
		s.push(Bool(l.Truth() || r.Truth()))
	case "=":
		if l.IsBool() && r.IsBool() {
			s.push(Bool(l.Truth() == r.Truth()))
		} else {
			s.push(Bool(l.Number() == r.Number()))
		}
	case "<>":
		if l.IsBool() && r.IsBool() {
			s.push(Bool(l.Truth() != r.Truth()))
		} else {
			s.push(Bool(l.Number() != r.Number()))
		}
	case "<":
		s.push(Bool(l.Number() < r.Number()))
	case ">":
		s.push(Bool(l.Number() > r.Number()))
	case "<=":
		s.push(Bool(l.Number() <= r.Number()))
	case ">=":
		s.push(Bool(l.Number() >= r.Number()))
	default:
		return &UnknownOperatorError{Sym: n.Op.Sym, Offset: -1}
	}
	return nil
}

// VisitTernary evaluates the condition and then only the branch it
// selects.
func (s *logicRun) VisitTernary(n *Ternary) error {
	if err := n.Cond.Accept(s); err != nil {
		return err
	}
	if s.pop().Truth() {
		return n.Then.Accept(s)
	}
	return n.Else.Accept(s)
}

func (s *logicRun) VisitFunction(n *Function) error {
	f, ok := s.funcs[n.Name]
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
		args[i] = s.pop().Number()
	}
	v, err := f(args)
	if err != nil {
		return err
	}
	s.push(Num(v))
	return nil
}
