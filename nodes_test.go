package polyexpr

import (
	"errors"
	"testing"
)

func TestEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b Node
		want bool
	}{
		{"nil-nil", nil, nil, true},
		{"nil-node", nil, &Integer{1}, false},
		{"node-nil", &Integer{1}, nil, false},
		{"ints", &Integer{4}, &Integer{4}, true},
		{"ints-differ", &Integer{4}, &Integer{5}, false},
		{"int-float", &Integer{1}, &Float{1}, false},
		{"floats", &Float{2.5}, &Float{2.5}, true},
		{"rationals", &Rational{1, 3}, &Rational{1, 3}, true},
		{"rationals-differ", &Rational{1, 3}, &Rational{2, 3}, false},
		{"booleans", &Boolean{true}, &Boolean{true}, true},
		{"booleans-differ", &Boolean{true}, &Boolean{false}, false},
		{"constants", &Constant{"pi"}, &Constant{"pi"}, true},
		{"constants-differ", &Constant{"pi"}, &Constant{"e"}, false},
		{"variables", &Variable{"x"}, &Variable{"x"}, true},
		{"constant-variable", &Constant{"x"}, &Variable{"x"}, false},
		{"strings", &String{".99"}, &String{".99"}, true},
		{"strings-differ", &String{".99"}, &String{".95"}, false},
		{
			"infix",
			&Infix{binop("+"), &Variable{"x"}, &Integer{1}},
			&Infix{binop("+"), &Variable{"x"}, &Integer{1}},
			true,
		},
		{
			"infix-op-differs",
			&Infix{binop("+"), &Variable{"x"}, &Integer{1}},
			&Infix{binop("-"), &Variable{"x"}, &Integer{1}},
			false,
		},
		{
			"unary",
			&Infix{binop("-"), &Variable{"x"}, nil},
			&Infix{binop("-"), &Variable{"x"}, nil},
			true,
		},
		{
			"unary-binary",
			&Infix{binop("-"), &Variable{"x"}, nil},
			&Infix{binop("-"), &Variable{"x"}, &Integer{1}},
			false,
		},
		{
			"ternary",
			&Ternary{&Variable{"p"}, &Integer{1}, &Integer{2}},
			&Ternary{&Variable{"p"}, &Integer{1}, &Integer{2}},
			true,
		},
		{
			"ternary-differs",
			&Ternary{&Variable{"p"}, &Integer{1}, &Integer{2}},
			&Ternary{&Variable{"p"}, &Integer{1}, &Integer{3}},
			false,
		},
		{
			"function",
			&Function{Name: "sin", Args: []Node{&Variable{"x"}}, Arity: 1},
			&Function{Name: "sin", Args: []Node{&Variable{"x"}}, Arity: 1},
			true,
		},
		{
			"function-name-differs",
			&Function{Name: "sin", Args: []Node{&Variable{"x"}}, Arity: 1},
			&Function{Name: "cos", Args: []Node{&Variable{"x"}}, Arity: 1},
			false,
		},
		{
			"function-args-differ",
			&Function{Name: "round", Args: []Node{&Float{2.5}, &Integer{0}}, Arity: 2},
			&Function{Name: "round", Args: []Node{&Float{2.5}, &Integer{1}}, Arity: 2},
			false,
		},
		{
			"function-argc-differs",
			&Function{Name: "round", Args: []Node{&Float{2.5}, &Integer{0}}, Arity: 2},
			&Function{Name: "round", Args: []Node{&Float{2.5}}, Arity: 2},
			false,
		},
		{"postfix", &Postfix{"!!"}, &Postfix{"!!"}, true},
		{"postfix-differs", &Postfix{"!!"}, &Postfix{"!"}, false},
		{"markers", &Marker{MarkerCloseParen}, &Marker{MarkerCloseParen}, true},
		{"markers-differ", &Marker{MarkerCloseParen}, &Marker{MarkerCloseBrace}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Equal(c.a, c.b); got != c.want {
				t.Errorf("Equal(%#v, %#v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestNewFunction(t *testing.T) {
	fn, err := NewFunction("sin", []Node{&Variable{"x"}})
	if err != nil {
		t.Fatalf("building sin call failed: %v", err)
	}
	if fn.Arity != 1 {
		t.Errorf("wrong arity for sin: want 1, got %d", fn.Arity)
	}
	fn, err = NewFunction("round", []Node{&Float{2.5}, &Integer{0}})
	if err != nil {
		t.Fatalf("building round call failed: %v", err)
	}
	if fn.Arity != 2 {
		t.Errorf("wrong arity for round: want 2, got %d", fn.Arity)
	}
	// Unknown names pass construction and fail at evaluation instead.
	fn, err = NewFunction("mystery", []Node{&Integer{1}, &Integer{2}, &Integer{3}})
	if err != nil {
		t.Fatalf("building unknown call failed: %v", err)
	}
	if fn.Arity != 3 {
		t.Errorf("wrong arity for unknown name: want 3, got %d", fn.Arity)
	}

	_, err = NewFunction("sin", nil)
	var c *CallError
	if !errors.As(err, &c) {
		t.Fatalf("wrong error type: want *CallError, got %T (%v)", err, err)
	}
	if c.Func != "sin" || c.Want != 1 || c.Got != 0 {
		t.Errorf("wrong error fields: %+v", c)
	}
	if want := "function sin takes 1 arguments, not 0"; c.Error() != want {
		t.Errorf("wrong message: want %q, got %q", want, c.Error())
	}
}

func TestNewRationalNormalizes(t *testing.T) {
	cases := []struct {
		num, den         int64
		wantNum, wantDen int64
	}{
		{2, 4, 1, 2},
		{3, -6, -1, 2},
		{-3, -6, 1, 2},
		{0, 5, 0, 1},
		{7, 1, 7, 1},
	}
	for _, c := range cases {
		r := NewRational(c.num, c.den)
		if r.Num != c.wantNum || r.Den != c.wantDen {
			t.Errorf("NewRational(%d, %d) = %d/%d, want %d/%d", c.num, c.den, r.Num, r.Den, c.wantNum, c.wantDen)
		}
	}
	if v := NewRational(1, 2).Value(); v != 0.5 {
		t.Errorf("wrong float projection: want 0.5, got %v", v)
	}
}

func TestMarkerString(t *testing.T) {
	cases := []struct {
		kind MarkerKind
		want string
	}{
		{MarkerCloseParen, ")"},
		{MarkerCloseBrace, "}"},
		{MarkerPostfix, "!"},
		{MarkerKind(99), "?"},
	}
	for _, c := range cases {
		m := Marker{Kind: c.kind}
		if got := m.String(); got != c.want {
			t.Errorf("wrong text for kind %d: want %q, got %q", c.kind, c.want, got)
		}
	}
}
