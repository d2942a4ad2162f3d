package polyexpr

// Visitor is the dispatch protocol over the node variants. Evaluators and
// printers implement it; Accept calls exactly one method per node, so
// implementations never inspect node types themselves. Relational and
// logical operators route through VisitLogicalInfix, arithmetic ones
// through VisitInfix.
type Visitor interface {
	VisitInteger(n *Integer) error
	VisitFloat(n *Float) error
	VisitRational(n *Rational) error
	VisitBoolean(n *Boolean) error
	VisitConstant(n *Constant) error
	VisitVariable(n *Variable) error
	VisitString(n *String) error
	VisitInfix(n *Infix) error
	VisitLogicalInfix(n *Infix) error
	VisitTernary(n *Ternary) error
	VisitFunction(n *Function) error
}

// MarkerVisitor is the extra capability printers implement to render
// transient postfix nodes and structural placeholders. Visitors without
// it receive a SyntaxError from Accept on those nodes; the parser
// guarantees they never appear in a successfully parsed tree.
type MarkerVisitor interface {
	VisitPostfix(n *Postfix) error
	VisitMarker(n *Marker) error
}

func (n *Integer) Accept(v Visitor) error  { return v.VisitInteger(n) }
func (n *Float) Accept(v Visitor) error    { return v.VisitFloat(n) }
func (n *Rational) Accept(v Visitor) error { return v.VisitRational(n) }
func (n *Boolean) Accept(v Visitor) error  { return v.VisitBoolean(n) }
func (n *Constant) Accept(v Visitor) error { return v.VisitConstant(n) }
func (n *Variable) Accept(v Visitor) error { return v.VisitVariable(n) }
func (n *String) Accept(v Visitor) error   { return v.VisitString(n) }

func (n *Infix) Accept(v Visitor) error {
	if n.Op.Class != OpArithmetic {
		return v.VisitLogicalInfix(n)
	}
	return v.VisitInfix(n)
}

func (n *Ternary) Accept(v Visitor) error  { return v.VisitTernary(n) }
func (n *Function) Accept(v Visitor) error { return v.VisitFunction(n) }

func (n *Postfix) Accept(v Visitor) error {
	if mv, ok := v.(MarkerVisitor); ok {
		return mv.VisitPostfix(n)
	}
	return &SyntaxError{Msg: "postfix marker " + n.Sym + " in a finished tree"}
}

func (n *Marker) Accept(v Visitor) error {
	if mv, ok := v.(MarkerVisitor); ok {
		return mv.VisitMarker(n)
	}
	return &SyntaxError{Msg: "structural placeholder " + n.String() + " in a finished tree"}
}
