// Package deriv differentiates expression trees symbolically. Results
// build through the folding constructors, so derivatives come back
// reduced the same way parsed expressions do.
package deriv

import (
	"strconv"

	"quantfold/polyexpr"
)

// Derive returns the derivative of n with respect to the variable named
// wrt. Conditionals differentiate branchwise with the condition kept
// as is. Rounding functions, factorials, and relational or logical
// operators have no derivative and yield UnsupportedError.
func Derive(n polyexpr.Node, wrt string) (polyexpr.Node, error) {
	d := differ{wrt: wrt, build: polyexpr.Builder{Simplify: true}}
	if err := n.Accept(&d); err != nil {
		return nil, err
	}
	return d.result(), nil
}

// UnsupportedError is an error indicating a construct that has no
// derivative rule.
type UnsupportedError struct {
	// What describes the construct, like `function "floor"`.
	What string
}

func (err *UnsupportedError) Error() string {
	return "cannot differentiate " + err.What
}

var (
	opAdd = mustOp("+")
	opSub = mustOp("-")
	opMul = mustOp("*")
	opDiv = mustOp("/")
	opPow = mustOp("^")
)

func mustOp(sym string) polyexpr.Op {
	op, ok := polyexpr.LookupOp(sym)
	if !ok {
		panic("deriv: unknown operator " + sym)
	}
	return op
}

// differ is one derivative walk. Visits push the derivative of their
// subtree; operator visits pop child derivatives and combine them with
// the original operands.
type differ struct {
	wrt   string
	build polyexpr.Builder
	stack []polyexpr.Node
}

func (d *differ) push(n polyexpr.Node) {
	d.stack = append(d.stack, n)
}

func (d *differ) pop() polyexpr.Node {
	n := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]
	return n
}

func (d *differ) result() polyexpr.Node {
	if len(d.stack) != 1 {
		panic("deriv: inconsistent derivative stack: " + strconv.Itoa(len(d.stack)) + " items")
	}
	return d.stack[0]
}

func (d *differ) add(l, r polyexpr.Node) (polyexpr.Node, error) { return d.build.Infix(opAdd, l, r) }
func (d *differ) sub(l, r polyexpr.Node) (polyexpr.Node, error) { return d.build.Infix(opSub, l, r) }
func (d *differ) mul(l, r polyexpr.Node) (polyexpr.Node, error) { return d.build.Infix(opMul, l, r) }
func (d *differ) div(l, r polyexpr.Node) (polyexpr.Node, error) { return d.build.Infix(opDiv, l, r) }
func (d *differ) pow(l, r polyexpr.Node) (polyexpr.Node, error) { return d.build.Infix(opPow, l, r) }

func call(name string, args ...polyexpr.Node) (polyexpr.Node, error) {
	return polyexpr.NewFunction(name, args)
}

func one() *polyexpr.Integer { return &polyexpr.Integer{Value: 1} }
func two() *polyexpr.Integer { return &polyexpr.Integer{Value: 2} }

// depends reports whether the subtree mentions the variable.
func depends(n polyexpr.Node, wrt string) bool {
	switch n := n.(type) {
	case nil:
		return false
	case *polyexpr.Variable:
		return n.Name == wrt
	case *polyexpr.Infix:
		return depends(n.Left, wrt) || depends(n.Right, wrt)
	case *polyexpr.Ternary:
		return depends(n.Cond, wrt) || depends(n.Then, wrt) || depends(n.Else, wrt)
	case *polyexpr.Function:
		for _, a := range n.Args {
			if depends(a, wrt) {
				return true
			}
		}
	}
	return false
}

func (d *differ) VisitInteger(n *polyexpr.Integer) error {
	d.push(&polyexpr.Integer{})
	return nil
}

func (d *differ) VisitFloat(n *polyexpr.Float) error {
	d.push(&polyexpr.Integer{})
	return nil
}

func (d *differ) VisitRational(n *polyexpr.Rational) error {
	d.push(&polyexpr.Integer{})
	return nil
}

func (d *differ) VisitBoolean(n *polyexpr.Boolean) error {
	d.push(&polyexpr.Integer{})
	return nil
}

func (d *differ) VisitConstant(n *polyexpr.Constant) error {
	d.push(&polyexpr.Integer{})
	return nil
}

func (d *differ) VisitString(n *polyexpr.String) error {
	d.push(&polyexpr.Integer{})
	return nil
}

func (d *differ) VisitVariable(n *polyexpr.Variable) error {
	if n.Name == d.wrt {
		d.push(one())
	} else {
		d.push(&polyexpr.Integer{})
	}
	return nil
}

func (d *differ) VisitInfix(n *polyexpr.Infix) error {
	if n.Left == nil {
		return &polyexpr.NullOperandError{Sym: n.Op.Sym}
	}
	if err := n.Left.Accept(d); err != nil {
		return err
	}
	if n.Right == nil {
		switch n.Op.Sym {
		case "+", "-":
			v, err := d.build.Unary(n.Op, d.pop())
			if err != nil {
				return err
			}
			d.push(v)
			return nil
		}
		return &UnsupportedError{What: "operator " + strconv.Quote(n.Op.Sym)}
	}
	if err := n.Right.Accept(d); err != nil {
		return err
	}
	dv := d.pop()
	du := d.pop()
	v, err := d.combine(n, du, dv)
	if err != nil {
		return err
	}
	d.push(v)
	return nil
}

func (d *differ) combine(n *polyexpr.Infix, du, dv polyexpr.Node) (polyexpr.Node, error) {
	switch n.Op.Sym {
	case "+", "-":
		return d.build.Infix(n.Op, du, dv)
	case "*":
		l, err := d.mul(du, n.Right)
		if err != nil {
			return nil, err
		}
		r, err := d.mul(n.Left, dv)
		if err != nil {
			return nil, err
		}
		return d.add(l, r)
	case "/":
		l, err := d.mul(du, n.Right)
		if err != nil {
			return nil, err
		}
		r, err := d.mul(n.Left, dv)
		if err != nil {
			return nil, err
		}
		num, err := d.sub(l, r)
		if err != nil {
			return nil, err
		}
		den, err := d.pow(n.Right, two())
		if err != nil {
			return nil, err
		}
		return d.div(num, den)
	case "^":
		return d.powRule(n.Left, n.Right, du, dv)
	}
	return nil, &UnsupportedError{What: "operator " + strconv.Quote(n.Op.Sym)}
}

// powRule differentiates u^v. A constant exponent takes the power rule
// and a constant base the exponential rule; when both sides move it
// falls back to u^v * (dv ln(u) + v du/u).
func (d *differ) powRule(u, v, du, dv polyexpr.Node) (polyexpr.Node, error) {
	switch {
	case !depends(v, d.wrt):
		vm1, err := d.sub(v, one())
		if err != nil {
			return nil, err
		}
		p, err := d.pow(u, vm1)
		if err != nil {
			return nil, err
		}
		c, err := d.mul(v, p)
		if err != nil {
			return nil, err
		}
		return d.mul(c, du)
	case !depends(u, d.wrt):
		p, err := d.pow(u, v)
		if err != nil {
			return nil, err
		}
		lnu, err := call("ln", u)
		if err != nil {
			return nil, err
		}
		c, err := d.mul(p, lnu)
		if err != nil {
			return nil, err
		}
		return d.mul(c, dv)
	default:
		p, err := d.pow(u, v)
		if err != nil {
			return nil, err
		}
		lnu, err := call("ln", u)
		if err != nil {
			return nil, err
		}
		l, err := d.mul(dv, lnu)
		if err != nil {
			return nil, err
		}
		vdu, err := d.mul(v, du)
		if err != nil {
			return nil, err
		}
		r, err := d.div(vdu, u)
		if err != nil {
			return nil, err
		}
		sum, err := d.add(l, r)
		if err != nil {
			return nil, err
		}
		return d.mul(p, sum)
	}
}

func (d *differ) VisitLogicalInfix(n *polyexpr.Infix) error {
	return &UnsupportedError{What: "operator " + strconv.Quote(n.Op.Sym)}
}

func (d *differ) VisitTernary(n *polyexpr.Ternary) error {
	if err := n.Then.Accept(d); err != nil {
		return err
	}
	if err := n.Else.Accept(d); err != nil {
		return err
	}
	de := d.pop()
	dt := d.pop()
	v, err := d.build.Ternary(n.Cond, dt, de)
	if err != nil {
		return err
	}
	d.push(v)
	return nil
}

func (d *differ) VisitFunction(n *polyexpr.Function) error {
	rule := funcRules[n.Name]
	if rule == nil || len(n.Args) != 1 {
		return &UnsupportedError{What: "function " + strconv.Quote(n.Name)}
	}
	if err := n.Args[0].Accept(d); err != nil {
		return err
	}
	v, err := rule(d, n.Args[0], d.pop())
	if err != nil {
		return err
	}
	d.push(v)
	return nil
}
