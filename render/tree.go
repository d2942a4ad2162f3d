package render

import (
	"strconv"
	"strings"

	"quantfold/polyexpr"
)

// Tree renders n as an indented dump, one node per line. It is meant for
// debugging parser and folder output rather than for display.
func Tree(n polyexpr.Node) (string, error) {
	s := treeRun{}
	if err := n.Accept(&s); err != nil {
		return "", err
	}
	return s.b.String(), nil
}

type treeRun struct {
	b     strings.Builder
	depth int
}

func (s *treeRun) line(text string) {
	for i := 0; i < s.depth; i++ {
		s.b.WriteString("  ")
	}
	s.b.WriteString(text)
	s.b.WriteByte('\n')
}

func (s *treeRun) child(n polyexpr.Node) error {
	if n == nil {
		return nil
	}
	s.depth++
	err := n.Accept(s)
	s.depth--
	return err
}

func (s *treeRun) VisitInteger(n *polyexpr.Integer) error {
	s.line("Integer " + strconv.FormatInt(n.Value, 10))
	return nil
}

func (s *treeRun) VisitFloat(n *polyexpr.Float) error {
	s.line("Float " + strconv.FormatFloat(n.Value, 'g', -1, 64))
	return nil
}

func (s *treeRun) VisitRational(n *polyexpr.Rational) error {
	s.line("Rational " + strconv.FormatInt(n.Num, 10) + "/" + strconv.FormatInt(n.Den, 10))
	return nil
}

func (s *treeRun) VisitBoolean(n *polyexpr.Boolean) error {
	s.line("Boolean " + strconv.FormatBool(n.Value))
	return nil
}

func (s *treeRun) VisitConstant(n *polyexpr.Constant) error {
	s.line("Constant " + n.Name)
	return nil
}

func (s *treeRun) VisitVariable(n *polyexpr.Variable) error {
	s.line("Variable " + n.Name)
	return nil
}

func (s *treeRun) VisitString(n *polyexpr.String) error {
	s.line("String " + strconv.Quote(n.Text))
	return nil
}

func (s *treeRun) VisitInfix(n *polyexpr.Infix) error        { return s.infix(n) }
func (s *treeRun) VisitLogicalInfix(n *polyexpr.Infix) error { return s.infix(n) }

func (s *treeRun) infix(n *polyexpr.Infix) error {
	s.line("Infix " + n.Op.Sym)
	if err := s.child(n.Left); err != nil {
		return err
	}
	return s.child(n.Right)
}

func (s *treeRun) VisitTernary(n *polyexpr.Ternary) error {
	s.line("Ternary")
	if err := s.child(n.Cond); err != nil {
		return err
	}
	if err := s.child(n.Then); err != nil {
		return err
	}
	return s.child(n.Else)
}

func (s *treeRun) VisitFunction(n *polyexpr.Function) error {
	s.line("Function " + n.Name)
	for _, a := range n.Args {
		if err := s.child(a); err != nil {
			return err
		}
	}
	return nil
}

func (s *treeRun) VisitPostfix(n *polyexpr.Postfix) error {
	s.line("Postfix " + n.Sym)
	return nil
}

func (s *treeRun) VisitMarker(n *polyexpr.Marker) error {
	s.line("Marker " + n.String())
	return nil
}
