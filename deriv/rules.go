package deriv

import (
	"quantfold/polyexpr"
)

// funcRules maps function names to chain-rule constructors. Each rule
// receives the original argument u and its derivative du and returns
// the derivative of f(u).
var funcRules = map[string]func(d *differ, u, du polyexpr.Node) (polyexpr.Node, error){
	"sin": func(d *differ, u, du polyexpr.Node) (polyexpr.Node, error) {
		c, err := call("cos", u)
		if err != nil {
			return nil, err
		}
		return d.mul(c, du)
	},
	"cos": func(d *differ, u, du polyexpr.Node) (polyexpr.Node, error) {
		s, err := call("sin", u)
		if err != nil {
			return nil, err
		}
		neg, err := d.build.Unary(opSub, s)
		if err != nil {
			return nil, err
		}
		return d.mul(neg, du)
	},
	"tan": func(d *differ, u, du polyexpr.Node) (polyexpr.Node, error) {
		c, err := call("cos", u)
		if err != nil {
			return nil, err
		}
		den, err := d.pow(c, two())
		if err != nil {
			return nil, err
		}
		return d.div(du, den)
	},
	"asin": func(d *differ, u, du polyexpr.Node) (polyexpr.Node, error) {
		den, err := pythag(d, one(), opSub, u)
		if err != nil {
			return nil, err
		}
		return d.div(du, den)
	},
	"acos": func(d *differ, u, du polyexpr.Node) (polyexpr.Node, error) {
		den, err := pythag(d, one(), opSub, u)
		if err != nil {
			return nil, err
		}
		q, err := d.div(du, den)
		if err != nil {
			return nil, err
		}
		return d.build.Unary(opSub, q)
	},
	"atan": func(d *differ, u, du polyexpr.Node) (polyexpr.Node, error) {
		u2, err := d.pow(u, two())
		if err != nil {
			return nil, err
		}
		den, err := d.add(one(), u2)
		if err != nil {
			return nil, err
		}
		return d.div(du, den)
	},
	"sinh": func(d *differ, u, du polyexpr.Node) (polyexpr.Node, error) {
		c, err := call("cosh", u)
		if err != nil {
			return nil, err
		}
		return d.mul(c, du)
	},
	"cosh": func(d *differ, u, du polyexpr.Node) (polyexpr.Node, error) {
		s, err := call("sinh", u)
		if err != nil {
			return nil, err
		}
		return d.mul(s, du)
	},
	"tanh": func(d *differ, u, du polyexpr.Node) (polyexpr.Node, error) {
		c, err := call("cosh", u)
		if err != nil {
			return nil, err
		}
		den, err := d.pow(c, two())
		if err != nil {
			return nil, err
		}
		return d.div(du, den)
	},
	"asinh": func(d *differ, u, du polyexpr.Node) (polyexpr.Node, error) {
		den, err := hyperbolic(d, u, opAdd)
		if err != nil {
			return nil, err
		}
		return d.div(du, den)
	},
	"acosh": func(d *differ, u, du polyexpr.Node) (polyexpr.Node, error) {
		den, err := hyperbolic(d, u, opSub)
		if err != nil {
			return nil, err
		}
		return d.div(du, den)
	},
	"atanh": func(d *differ, u, du polyexpr.Node) (polyexpr.Node, error) {
		u2, err := d.pow(u, two())
		if err != nil {
			return nil, err
		}
		den, err := d.sub(one(), u2)
		if err != nil {
			return nil, err
		}
		return d.div(du, den)
	},
	"exp": func(d *differ, u, du polyexpr.Node) (polyexpr.Node, error) {
		e, err := call("exp", u)
		if err != nil {
			return nil, err
		}
		return d.mul(e, du)
	},
	"ln": func(d *differ, u, du polyexpr.Node) (polyexpr.Node, error) {
		return d.div(du, u)
	},
	"log10": func(d *differ, u, du polyexpr.Node) (polyexpr.Node, error) {
		ln10, err := call("ln", &polyexpr.Integer{Value: 10})
		if err != nil {
			return nil, err
		}
		den, err := d.mul(u, ln10)
		if err != nil {
			return nil, err
		}
		return d.div(du, den)
	},
	"sqrt": func(d *differ, u, du polyexpr.Node) (polyexpr.Node, error) {
		s, err := call("sqrt", u)
		if err != nil {
			return nil, err
		}
		den, err := d.mul(two(), s)
		if err != nil {
			return nil, err
		}
		return d.div(du, den)
	},
	"abs": func(d *differ, u, du polyexpr.Node) (polyexpr.Node, error) {
		s, err := call("sgn", u)
		if err != nil {
			return nil, err
		}
		return d.mul(s, du)
	},
}

// pythag builds sqrt(a op u^2), the denominator shape of the inverse
// trigonometric rules.
func pythag(d *differ, a polyexpr.Node, op polyexpr.Op, u polyexpr.Node) (polyexpr.Node, error) {
	u2, err := d.pow(u, two())
	if err != nil {
		return nil, err
	}
	inner, err := d.build.Infix(op, a, u2)
	if err != nil {
		return nil, err
	}
	return call("sqrt", inner)
}

// hyperbolic builds sqrt(u^2 op 1), the denominator shape of the
// inverse hyperbolic rules.
func hyperbolic(d *differ, u polyexpr.Node, op polyexpr.Op) (polyexpr.Node, error) {
	u2, err := d.pow(u, two())
	if err != nil {
		return nil, err
	}
	inner, err := d.build.Infix(op, u2, one())
	if err != nil {
		return nil, err
	}
	return call("sqrt", inner)
}
