package render

import (
	"math"
	"strconv"
	"strings"

	"quantfold/polyexpr"
)

// LaTeX renders n as LaTeX math-mode source. Quotients become \frac,
// multiplication becomes \cdot, and the usual functions map to their
// LaTeX names; anything else goes through \operatorname.
func LaTeX(n polyexpr.Node) (string, error) {
	s := latexRun{}
	if err := n.Accept(&s); err != nil {
		return "", err
	}
	return s.result().text, nil
}

// fracPrec sits between the power operator and atoms: a \frac needs
// fencing as the base of a power but nowhere else.
const fracPrec = 6

var latexOps = map[string]string{
	"+":  " + ",
	"-":  " - ",
	"*":  ` \cdot `,
	"=":  " = ",
	"<>": ` \neq `,
	"<":  " < ",
	">":  " > ",
	"<=": ` \leq `,
	">=": ` \geq `,
	"&&": ` \land `,
	"||": ` \lor `,
}

var latexFuncs = map[string]string{
	"sin":   `\sin`,
	"cos":   `\cos`,
	"tan":   `\tan`,
	"asin":  `\arcsin`,
	"acos":  `\arccos`,
	"atan":  `\arctan`,
	"sinh":  `\sinh`,
	"cosh":  `\cosh`,
	"tanh":  `\tanh`,
	"exp":   `\exp`,
	"ln":    `\ln`,
	"log":   `\log`,
	"log10": `\log_{10}`,
	"re":    `\Re`,
	"im":    `\Im`,
	"arg":   `\arg`,
}

var latexConsts = map[string]string{
	"pi":  `\pi`,
	"e":   "e",
	"i":   "i",
	"INF": `\infty`,
	"NAN": `\mathrm{NaN}`,
}

type latexRun struct {
	stack []frag
}

func (s *latexRun) push(text string, prec int) {
	s.stack = append(s.stack, frag{text: text, prec: prec})
}

func (s *latexRun) pop() frag {
	v := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return v
}

func (s *latexRun) result() frag {
	if len(s.stack) != 1 {
		panic("render: inconsistent render stack: " + strconv.Itoa(len(s.stack)) + " items")
	}
	return s.stack[0]
}

func fence(f frag, wrap bool) string {
	if wrap {
		return `\left(` + f.text + `\right)`
	}
	return f.text
}

func (s *latexRun) VisitInteger(n *polyexpr.Integer) error {
	s.push(strconv.FormatInt(n.Value, 10), numPrec(n.Value < 0))
	return nil
}

func (s *latexRun) VisitFloat(n *polyexpr.Float) error {
	switch {
	case math.IsNaN(n.Value):
		s.push(`\mathrm{NaN}`, atomPrec)
	case math.IsInf(n.Value, 1):
		s.push(`\infty`, atomPrec)
	case math.IsInf(n.Value, -1):
		s.push(`-\infty`, signPrec)
	default:
		s.push(strconv.FormatFloat(n.Value, 'f', -1, 64), numPrec(n.Value < 0))
	}
	return nil
}

func (s *latexRun) VisitRational(n *polyexpr.Rational) error {
	num, den := n.Num, strconv.FormatInt(n.Den, 10)
	if num < 0 {
		s.push(`-\frac{`+strconv.FormatInt(-num, 10)+`}{`+den+`}`, signPrec)
	} else {
		s.push(`\frac{`+strconv.FormatInt(num, 10)+`}{`+den+`}`, fracPrec)
	}
	return nil
}

func (s *latexRun) VisitBoolean(n *polyexpr.Boolean) error {
	s.push(`\mathrm{`+strconv.FormatBool(n.Value)+`}`, atomPrec)
	return nil
}

func (s *latexRun) VisitConstant(n *polyexpr.Constant) error {
	if t, ok := latexConsts[n.Name]; ok {
		s.push(t, atomPrec)
		return nil
	}
	s.push(`\mathrm{`+n.Name+`}`, atomPrec)
	return nil
}

func (s *latexRun) VisitVariable(n *polyexpr.Variable) error {
	if len(n.Name) == 1 {
		s.push(n.Name, atomPrec)
		return nil
	}
	s.push(`\mathit{`+strings.ReplaceAll(n.Name, "_", `\_`)+`}`, atomPrec)
	return nil
}

func (s *latexRun) VisitString(n *polyexpr.String) error {
	s.push(n.Text, atomPrec)
	return nil
}

func (s *latexRun) VisitInfix(n *polyexpr.Infix) error        { return s.infix(n) }
func (s *latexRun) VisitLogicalInfix(n *polyexpr.Infix) error { return s.infix(n) }

func (s *latexRun) infix(n *polyexpr.Infix) error {
	if n.Left == nil {
		return &polyexpr.NullOperandError{Sym: n.Op.Sym}
	}
	if err := n.Left.Accept(s); err != nil {
		return err
	}
	if n.Right == nil {
		x := s.pop()
		switch n.Op.Sym {
		case "-", "+":
			s.push(n.Op.Sym+fence(x, x.prec < powPrec), prefixPrec)
			return nil
		case "!":
			s.push(`\lnot `+fence(x, x.prec < powPrec), prefixPrec)
			return nil
		}
		return &polyexpr.NullOperandError{Sym: n.Op.Sym}
	}
	if err := n.Right.Accept(s); err != nil {
		return err
	}
	r := s.pop()
	l := s.pop()
	switch n.Op.Sym {
	case "/":
		s.push(`\frac{`+l.text+`}{`+r.text+`}`, fracPrec)
	case "^":
		s.push(fence(l, l.prec < atomPrec)+"^{"+r.text+"}", powPrec)
	default:
		lt := fence(l, l.prec < n.Op.Prec)
		rt := fence(r, r.prec <= n.Op.Prec)
		s.push(lt+latexOps[n.Op.Sym]+rt, n.Op.Prec)
	}
	return nil
}

// VisitTernary renders a two-row cases environment, value column first.
func (s *latexRun) VisitTernary(n *polyexpr.Ternary) error {
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
	s.push(`\begin{cases} `+t.text+` & `+c.text+` \\ `+e.text+` & \text{otherwise} \end{cases}`, condPrec)
	return nil
}

func (s *latexRun) VisitFunction(n *polyexpr.Function) error {
	args := make([]frag, len(n.Args))
	for i, a := range n.Args {
		if err := a.Accept(s); err != nil {
			return err
		}
		args[i] = s.pop()
	}
	switch n.Name {
	case "sqrt":
		if len(args) == 1 {
			s.push(`\sqrt{`+args[0].text+`}`, atomPrec)
			return nil
		}
	case "abs":
		if len(args) == 1 {
			s.push(`\left|`+args[0].text+`\right|`, atomPrec)
			return nil
		}
	case "floor":
		if len(args) == 1 {
			s.push(`\lfloor `+args[0].text+` \rfloor`, atomPrec)
			return nil
		}
	case "ceil":
		if len(args) == 1 {
			s.push(`\lceil `+args[0].text+` \rceil`, atomPrec)
			return nil
		}
	case "factorial":
		if len(args) == 1 {
			s.push(fence(args[0], args[0].prec < atomPrec)+"!", atomPrec)
			return nil
		}
	case "semifactorial":
		if len(args) == 1 {
			s.push(fence(args[0], args[0].prec < atomPrec)+"!!", atomPrec)
			return nil
		}
	case "conj":
		if len(args) == 1 {
			s.push(`\overline{`+args[0].text+`}`, atomPrec)
			return nil
		}
	}
	name, ok := latexFuncs[n.Name]
	if !ok {
		name = `\operatorname{` + strings.ReplaceAll(n.Name, "_", `\_`) + `}`
	}
	texts := make([]string, len(args))
	for i, a := range args {
		texts[i] = a.text
	}
	s.push(name+`\left(`+strings.Join(texts, ", ")+`\right)`, atomPrec)
	return nil
}

func (s *latexRun) VisitPostfix(n *polyexpr.Postfix) error {
	s.push(n.Sym, atomPrec)
	return nil
}

func (s *latexRun) VisitMarker(n *polyexpr.Marker) error {
	s.push(n.String(), atomPrec)
	return nil
}
