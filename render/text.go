// Package render prints expression trees as infix text, LaTeX, or an
// indented dump. The printers implement the marker-visiting capability,
// so they are the only visitors that can draw parse diagnostics.
package render

import (
	"math"
	"strconv"
	"strings"

	"quantfold/polyexpr"
)

// Rendering precedences. Operator fragments carry the precedence of the
// operator table; these cover the shapes the table has no entry for.
const (
	condPrec   = 0
	signPrec   = 3
	ratioPrec  = 4
	prefixPrec = 4
	powPrec    = 5
	atomPrec   = 7
)

// Text renders n as canonical infix text. Parentheses appear only where
// precedence or associativity requires them, so parsing the result with
// the lexer that produced n yields an equal tree. Boolean operands render
// as "true" and "false", which no lexer reads back.
func Text(n polyexpr.Node) (string, error) {
	s := textRun{}
	if err := n.Accept(&s); err != nil {
		return "", err
	}
	return s.result().text, nil
}

// frag is one rendered subtree with the binding strength of its
// outermost syntax.
type frag struct {
	text string
	prec int
}

func paren(f frag, wrap bool) string {
	if wrap {
		return "(" + f.text + ")"
	}
	return f.text
}

type textRun struct {
	stack []frag
}

func (s *textRun) push(text string, prec int) {
	s.stack = append(s.stack, frag{text: text, prec: prec})
}

func (s *textRun) pop() frag {
	v := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return v
}

func (s *textRun) result() frag {
	if len(s.stack) != 1 {
		panic("render: inconsistent render stack: " + strconv.Itoa(len(s.stack)) + " items")
	}
	return s.stack[0]
}

func numPrec(negative bool) int {
	if negative {
		return signPrec
	}
	return atomPrec
}

func (s *textRun) VisitInteger(n *polyexpr.Integer) error {
	s.push(strconv.FormatInt(n.Value, 10), numPrec(n.Value < 0))
	return nil
}

// VisitFloat renders in plain decimal notation; exponent forms do not
// lex. Non-finite values fall back to the NAN and INF constants.
func (s *textRun) VisitFloat(n *polyexpr.Float) error {
	switch {
	case math.IsNaN(n.Value):
		s.push("NAN", atomPrec)
	case math.IsInf(n.Value, 1):
		s.push("INF", atomPrec)
	case math.IsInf(n.Value, -1):
		s.push("-INF", signPrec)
	default:
		s.push(strconv.FormatFloat(n.Value, 'f', -1, 64), numPrec(n.Value < 0))
	}
	return nil
}

func (s *textRun) VisitRational(n *polyexpr.Rational) error {
	text := strconv.FormatInt(n.Num, 10) + "/" + strconv.FormatInt(n.Den, 10)
	if n.Num < 0 {
		s.push(text, signPrec)
	} else {
		s.push(text, ratioPrec)
	}
	return nil
}

func (s *textRun) VisitBoolean(n *polyexpr.Boolean) error {
	s.push(strconv.FormatBool(n.Value), atomPrec)
	return nil
}

func (s *textRun) VisitConstant(n *polyexpr.Constant) error {
	s.push(n.Name, atomPrec)
	return nil
}

func (s *textRun) VisitVariable(n *polyexpr.Variable) error {
	s.push(n.Name, atomPrec)
	return nil
}

func (s *textRun) VisitString(n *polyexpr.String) error {
	s.push(n.Text, atomPrec)
	return nil
}

func (s *textRun) VisitInfix(n *polyexpr.Infix) error        { return s.infix(n) }
func (s *textRun) VisitLogicalInfix(n *polyexpr.Infix) error { return s.infix(n) }

func (s *textRun) infix(n *polyexpr.Infix) error {
	if n.Left == nil {
		return &polyexpr.NullOperandError{Sym: n.Op.Sym}
	}
	if err := n.Left.Accept(s); err != nil {
		return err
	}
	if n.Right == nil {
		switch n.Op.Sym {
		case "-", "+", "!":
			x := s.pop()
			s.push(n.Op.Sym+paren(x, x.prec < powPrec), prefixPrec)
			return nil
		}
		return &polyexpr.NullOperandError{Sym: n.Op.Sym}
	}
	if err := n.Right.Accept(s); err != nil {
		return err
	}
	r := s.pop()
	l := s.pop()
	var lt, rt string
	if n.Op.Right {
		lt = paren(l, l.prec <= n.Op.Prec)
		rt = paren(r, r.prec < n.Op.Prec)
	} else {
		lt = paren(l, l.prec < n.Op.Prec)
		rt = paren(r, r.prec <= n.Op.Prec)
	}
	s.push(lt+n.Op.Sym+rt, n.Op.Prec)
	return nil
}

// VisitTernary renders the keyword surface form. The condition is always
// parenthesized; the parser requires it.
func (s *textRun) VisitTernary(n *polyexpr.Ternary) error {
	if err := n.Cond.Accept(s); err != nil {
		return err
	}
	if err := n.Then.Accept(s); err != nil {
		return err
	}
	if err := n.Else.Accept(s); err != nil {
		return err
	}
	e := s.pop()
	t := s.pop()
	c := s.pop()
	s.push("IF ("+c.text+") THEN "+paren(t, t.prec <= condPrec)+" ELSE "+paren(e, e.prec <= condPrec), condPrec)
	return nil
}

func (s *textRun) VisitFunction(n *polyexpr.Function) error {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		if err := a.Accept(s); err != nil {
			return err
		}
		args[i] = s.pop().text
	}
	s.push(n.Name+"("+strings.Join(args, ", ")+")", atomPrec)
	return nil
}

func (s *textRun) VisitPostfix(n *polyexpr.Postfix) error {
	s.push(n.Sym, atomPrec)
	return nil
}

func (s *textRun) VisitMarker(n *polyexpr.Marker) error {
	s.push(n.String(), atomPrec)
	return nil
}
