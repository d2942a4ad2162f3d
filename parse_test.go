package polyexpr

import (
	"reflect"
	"testing"
)

func binop(sym string) Op {
	o, ok := LookupOp(sym)
	if !ok {
		panic("no operator " + sym)
	}
	return o
}

func mustTokens(t testing.TB, defs []TokenDefinition, src string) []Token {
	t.Helper()
	toks, err := NewTokenizer(defs).Tokenize(src)
	if err != nil {
		t.Fatalf("%q failed to scan: %v", src, err)
	}
	return toks
}

func TestOperatorTable(t *testing.T) {
	cases := []struct {
		sym   string
		prec  int
		right bool
		class OpClass
	}{
		{"&&", 1, false, OpLogical},
		{"||", 1, false, OpLogical},
		{"!", 1, false, OpLogical},
		{"=", 2, false, OpRelational},
		{"<>", 2, false, OpRelational},
		{"<", 2, false, OpRelational},
		{">", 2, false, OpRelational},
		{"<=", 2, false, OpRelational},
		{">=", 2, false, OpRelational},
		{"+", 3, false, OpArithmetic},
		{"-", 3, false, OpArithmetic},
		{"*", 4, false, OpArithmetic},
		{"/", 4, false, OpArithmetic},
		{"^", 5, true, OpArithmetic},
	}
	for _, c := range cases {
		o, ok := LookupOp(c.sym)
		if !ok {
			t.Errorf("no operator %q", c.sym)
			continue
		}
		if o.Sym != c.sym || o.Prec != c.prec || o.Right != c.right || o.Class != c.class {
			t.Errorf("operator %q: want {%q %d %t %d}, got %+v", c.sym, c.sym, c.prec, c.right, c.class, o)
		}
	}
	if _, ok := LookupOp("%"); ok {
		t.Error(`lookup of "%" succeeded`)
	}
}

func TestMoreBinding(t *testing.T) {
	mul, add, pow := binop("*"), binop("+"), binop("^")
	if !mul.moreBinding(add) {
		t.Error("* does not bind more tightly than +")
	}
	if add.moreBinding(mul) {
		t.Error("+ binds more tightly than *")
	}
	// Left association: an incoming operator of equal precedence reduces.
	if add.moreBinding(add) {
		t.Error("+ binds more tightly than itself")
	}
	// Right association: an incoming ^ stacks on a pending ^.
	if !pow.moreBinding(pow) {
		t.Error("^ does not stack on itself")
	}
}

func TestParseTrees(t *testing.T) {
	single := SingleLetterDefinitions()
	logic := LogicDefinitions()
	cases := []struct {
		name string
		defs []TokenDefinition
		a, b string
	}{
		{"paren", single, "(x)", "x"},
		{"paren-deep", single, "(((x)))", "x"},
		{"add-assoc", single, "1+2+3", "(1+2)+3"},
		{"sub-assoc", single, "8-4-2", "(8-4)-2"},
		{"div-assoc", single, "8/4/2", "(8/4)/2"},
		{"pow-assoc", single, "2^3^2", "2^(3^2)"},
		{"prec-up", single, "1+2*3^4", "1+(2*(3^4))"},
		{"prec-down", single, "3^4*2+1", "((3^4)*2)+1"},
		{"neg-pow", single, "-x^2", "-(x^2)"},
		{"neg-mul", single, "-2*3", "(-2)*3"},
		{"neg-neg", single, "--x", "-(-x)"},
		{"pow-neg", single, "2^-3", "2^(-3)"},
		{"implicit", single, "2x", "2*x"},
		{"implicit-chain", single, "2x y", "(2*x)*y"},
		{"implicit-paren", single, "x(y+z)", "x*(y+z)"},
		{"implicit-func", single, "2sin(x)", "2*sin(x)"},
		{"postfix", single, "5!", "factorial(5)"},
		{"postfix-semi", single, "7!!", "semifactorial(7)"},
		{"postfix-mul", single, "5!*2", "factorial(5)*2"},
		{"postfix-neg", single, "-5!", "-factorial(5)"},
		{"postfix-pow", single, "2^3!", "2^factorial(3)"},
		{"arg-split", single, "round(2.5, 0)", "round(2.5; 0)"},

		{"relational-prec", logic, "a+b > c", "(a+b) > c"},
		{"logical-prec", logic, "a > b && c < d", "(a > b) && (c < d)"},
		{"and-or-assoc", logic, "a && b || c", "(a && b) || c"},
		{"not-prec", logic, "!a && b", "(!a) && b"},
		{"conditional-surfaces", logic,
			"IF (x > 1) THEN 2 ELSE 3",
			"if (x > 1) { return 2; } else { return 3 }"},
		{"conditional-nested", logic,
			"IF (a) THEN IF (b) THEN 1 ELSE 2 ELSE 3",
			"if (a) { return IF (b) THEN 1 ELSE 2 } else { return 3 }"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(mustTokens(t, c.defs, c.a), ImplicitMul())
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.a, err)
			}
			b, err := Parse(mustTokens(t, c.defs, c.b), ImplicitMul())
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.b, err)
			}
			if !Equal(a, b) {
				t.Errorf("mismatched trees:\n\t%q parses %+v\n\t%q parses %+v", c.a, a, c.b, b)
			}
		})
	}
}

func TestParseExact(t *testing.T) {
	single := SingleLetterDefinitions()
	logic := LogicDefinitions()
	cases := []struct {
		name string
		defs []TokenDefinition
		src  string
		want Node
	}{
		{"variable", single, "x", &Variable{Name: "x"}},
		{"constant", single, "pi", &Constant{Name: "pi"}},
		{"natural", single, "42", &Integer{Value: 42}},
		{"decimal", single, "2.5", &Float{Value: 2.5}},
		{"implicit-mul", single, "2x", &Infix{
			Op:    binop("*"),
			Left:  &Integer{Value: 2},
			Right: &Variable{Name: "x"},
		}},
		{"unary-minus", single, "-x", &Infix{
			Op:   binop("-"),
			Left: &Variable{Name: "x"},
		}},
		{"call", single, "sin(x)", &Function{
			Name:  "sin",
			Args:  []Node{&Variable{Name: "x"}},
			Arity: 1,
		}},
		{"decimal-tail", logic, ".99", &String{Text: ".99"}},
		{"conditional", logic, "IF (x) THEN y ELSE z", &Ternary{
			Cond: &Variable{Name: "x"},
			Then: &Variable{Name: "y"},
			Else: &Variable{Name: "z"},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Parse(mustTokens(t, c.defs, c.src), ImplicitMul(), Simplify())
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if !Equal(got, c.want) {
				t.Errorf("%q parsed to %+v, want %+v", c.src, got, c.want)
			}
		})
	}
}

func TestParseFolds(t *testing.T) {
	single := SingleLetterDefinitions()
	logic := LogicDefinitions()
	cases := []struct {
		name string
		defs []TokenDefinition
		src  string
		want Node
	}{
		{"pow-tower", single, "2^3^2", &Integer{Value: 512}},
		{"div-chain", single, "8/4/2", &Integer{Value: 1}},
		{"int-div", single, "1/3", &Rational{Num: 1, Den: 3}},
		{"rat-add", single, "1/3 + 1/6", &Rational{Num: 1, Den: 2}},
		{"rat-to-int", single, "1/2 + 1/2", &Integer{Value: 1}},
		{"promote-float", single, "1/2 + 0.5", &Float{Value: 1}},
		{"canonical-int", single, "6/3", &Integer{Value: 2}},
		{"float-mul", single, "0.5*4", &Float{Value: 2}},
		{"sub-self", single, "x-x", &Integer{Value: 0}},
		{"mul-zero", single, "0x", &Integer{Value: 0}},
		{"mul-one", single, "1x", &Variable{Name: "x"}},
		{"add-zero", single, "x+0", &Variable{Name: "x"}},
		{"div-one", single, "x/1", &Variable{Name: "x"}},
		{"pow-one", single, "x^1", &Variable{Name: "x"}},
		{"pow-zero", single, "x^0", &Integer{Value: 1}},
		{"neg-literal", single, "-3", &Integer{Value: -3}},
		{"neg-cancel", single, "-(-x)", &Variable{Name: "x"}},
		{"neg-pow-exact", single, "2^-3", &Rational{Num: 1, Den: 8}},
		{"pow-limit-in", single, "2^20", &Integer{Value: 1 << 20}},
		{"pow-limit-out", single, "2^21", &Float{Value: 1 << 21}},
		{"overflow-unreduced", single, "9223372036854775807+1", &Infix{
			Op:    binop("+"),
			Left:  &Integer{Value: 9223372036854775807},
			Right: &Integer{Value: 1},
		}},
		{"relational-fold", logic, "2<1", &Boolean{Value: false}},
		{"relational-mixed-waits", logic, "1 < 0.5", &Infix{
			Op:    binop("<"),
			Left:  &Integer{Value: 1},
			Right: &Float{Value: 0.5},
		}},
		{"conditional-then", logic, "IF (2<1) THEN 1 ELSE 0", &Integer{Value: 0}},
		{"conditional-brace", logic, "if (3 < 2) { return 1+1; } else { return 2^3; }", &Integer{Value: 8}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Parse(mustTokens(t, c.defs, c.src), ImplicitMul(), Simplify())
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if !Equal(got, c.want) {
				t.Errorf("%q parsed to %+v, want %+v", c.src, got, c.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	single := SingleLetterDefinitions()
	logic := LogicDefinitions()
	simplify := []Option{ImplicitMul(), Simplify()}
	cases := []struct {
		name string
		defs []TokenDefinition
		src  string
		opts []Option
		err  error
	}{
		{"empty", single, "", simplify, new(SyntaxError)},
		{"empty-parens", single, "()", simplify, new(SyntaxError)},
		{"unclosed", single, "(x+y", simplify, new(DelimiterMismatchError)},
		{"stray-close", single, "x)", simplify, new(DelimiterMismatchError)},
		{"close-only", single, ")", simplify, new(DelimiterMismatchError)},
		{"missing-operand", single, "x+", simplify, new(SyntaxError)},
		{"missing-unary-operand", single, "x*-", simplify, new(SyntaxError)},
		{"nonunary", single, "*x", simplify, new(UnexpectedOperatorError)},
		{"postfix-first", single, "!5", simplify, new(UnexpectedOperatorError)},
		{"no-implicit-mul", single, "2 x", []Option{Simplify()}, new(SyntaxError)},
		{"call-no-parens", single, "sin 5", simplify, new(SyntaxError)},
		{"arity-over", single, "sin(5, 6)", simplify, new(CallError)},
		{"arity-under", single, "round(2.5)", simplify, new(CallError)},
		{"empty-argument", single, "round(2.5, )", simplify, new(SyntaxError)},
		{"call-unclosed", single, "sin(5", simplify, new(DelimiterMismatchError)},
		{"div-zero", single, "1/0", simplify, new(DivisionByZeroError)},
		{"zero-div-zero", single, "0/0", simplify, new(DivisionByZeroError)},
		{"pow-zero-zero", single, "0^0", simplify, new(ExponentError)},
		{"pow-zero-neg", single, "0^(-1)", simplify, new(DivisionByZeroError)},
		{"trailing-junk", single, "x, y", simplify, new(SyntaxError)},

		{"bang-binary", logic, "x ! y", simplify, new(UnexpectedOperatorError)},
		{"brace-mismatch", logic, "(x}", simplify, new(DelimiterMismatchError)},
		{"stray-brace", logic, "{x}", simplify, new(SyntaxError)},
		{"if-no-parens", logic, "IF x THEN 1 ELSE 2", simplify, new(SyntaxError)},
		{"if-no-else", logic, "IF (x) THEN 1", simplify, new(SyntaxError)},
		{"branch-unclosed", logic, "if (x) { return 1", simplify, new(DelimiterMismatchError)},
		{"branch-wrong-close", logic, "if (x) { return 1 ) else { return 2 }", simplify, new(DelimiterMismatchError)},
		{"stray-then", logic, "then", simplify, new(SyntaxError)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n, err := Parse(mustTokens(t, c.defs, c.src), c.opts...)
			if err == nil {
				t.Fatalf("%q parsed to %+v", c.src, n)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Errorf("wrong error type from %q: want %T, got %T (%v)", c.src, c.err, err, err)
			}
		})
	}
}

func TestDelimiterPositions(t *testing.T) {
	single := SingleLetterDefinitions()
	cases := []struct {
		src    string
		open   string
		close  string
		offset int
	}{
		{"(x+y", "(", "", 0},
		{"x)", "", ")", 1},
		{"sin(x", "(", "", 3},
	}
	for _, c := range cases {
		_, err := Parse(mustTokens(t, single, c.src))
		d, ok := err.(*DelimiterMismatchError)
		if !ok {
			t.Errorf("%q: error %#v is not *DelimiterMismatchError", c.src, err)
			continue
		}
		if d.Open != c.open || d.Close != c.close || d.Offset != c.offset {
			t.Errorf("%q: want open %q close %q at %d, got open %q close %q at %d",
				c.src, c.open, c.close, c.offset, d.Open, d.Close, d.Offset)
		}
	}
}

// TestParseRepeatable parses the same token slice twice and expects
// identical trees. Tokenize is a pure function of its input and Parse
// never mutates the tokens.
func TestParseRepeatable(t *testing.T) {
	srcs := []string{"2^3^2", "2x y + sin(x)", "-5!", "1/3 + 1/6"}
	for _, src := range srcs {
		toks := mustTokens(t, SingleLetterDefinitions(), src)
		a, err := Parse(toks, ImplicitMul(), Simplify())
		if err != nil {
			t.Fatalf("%q failed to parse: %v", src, err)
		}
		b, err := Parse(toks, ImplicitMul(), Simplify())
		if err != nil {
			t.Fatalf("%q failed to reparse: %v", src, err)
		}
		if !Equal(a, b) {
			t.Errorf("%q parsed differently twice: %+v then %+v", src, a, b)
		}
	}
}

func TestTerminatorsAfterExpression(t *testing.T) {
	toks := mustTokens(t, SingleLetterDefinitions(), "x+1;\n")
	n, err := Parse(toks)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	want := &Infix{Op: binop("+"), Left: &Variable{Name: "x"}, Right: &Integer{Value: 1}}
	if !Equal(n, want) {
		t.Errorf("parsed to %+v, want %+v", n, want)
	}
}

func BenchmarkParse(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"updown", "w^x*y+z+a*b^c"},
		{"parens", "(((w^x)*y)+z)+a*(b^c)"},
		{"implicit", "2x y z w"},
		{"call", "sin(x)^2 + cos(x)^2"},
		{"fold", "2^3^2 + 8/4/2"},
	}
	defs := SingleLetterDefinitions()
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			toks, err := NewTokenizer(defs).Tokenize(c.src)
			if err != nil {
				b.Fatal(err)
			}
			p := NewParser(ImplicitMul(), Simplify())
			for i := 0; i < b.N; i++ {
				p.Parse(toks)
			}
		})
	}
}
