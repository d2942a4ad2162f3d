package polyexpr

import (
	"strconv"
)

// Expr     = Operand { binop Operand } .
// Operand  = num | str | const | var | Unary | Call | Postfix | Ternary | '(' Expr ')' .
// Unary    = ('+' | '-' | '!') Operand .
// Call     = funcname '(' Expr { (',' | ';') Expr } ')' .
// Postfix  = Operand ('!' | '!!') .
// Ternary  = 'if' '(' Expr ')' 'then' Expr 'else' Expr
//          | 'if' '(' Expr ')' Branch 'else' Branch .
// Branch   = '{' ['return'] Expr [';'] '}' .
//
// With implicit multiplication enabled, two adjacent Operands multiply.

// Parse assembles tokens into a single expression tree using a parser
// configured by opts.
func Parse(toks []Token, opts ...Option) (Node, error) {
	return NewParser(opts...).Parse(toks)
}

// Parse assembles tokens into a single expression tree. Whitespace tokens
// are dropped; a terminator ends the expression, and only further
// terminators may follow it.
func (p *Parser) Parse(toks []Token) (Node, error) {
	run := parseRun{p: p, toks: make([]Token, 0, len(toks))}
	for _, t := range toks {
		if t.Kind != KindWhitespace {
			run.toks = append(run.toks, t)
		}
	}
	n, err := run.parseExpr()
	if err != nil {
		return nil, err
	}
	if n == nil {
		tok, _ := run.peek()
		switch tok.Kind {
		case KindClose, KindCloseBrace:
			return nil, &DelimiterMismatchError{Close: tok.Text, Offset: tok.Pos}
		}
		return nil, &SyntaxError{Token: tok, Msg: "empty expression"}
	}
	for {
		tok, ok := run.next()
		if !ok {
			return n, nil
		}
		switch tok.Kind {
		case KindTerminator:
		case KindClose, KindCloseBrace:
			return nil, &DelimiterMismatchError{Close: tok.Text, Offset: tok.Pos}
		default:
			return nil, &SyntaxError{Token: tok, Msg: "unexpected token after expression"}
		}
	}
}

// parseRun is the transient state of one Parse call. The Parser itself
// never mutates, so concurrent calls do not interfere.
type parseRun struct {
	p    *Parser
	toks []Token
	pos  int
}

func (r *parseRun) peek() (Token, bool) {
	if r.pos >= len(r.toks) {
		return Token{}, false
	}
	return r.toks[r.pos], true
}

func (r *parseRun) next() (Token, bool) {
	tok, ok := r.peek()
	if ok {
		r.pos++
	}
	return tok, ok
}

func (r *parseRun) trace(msg string, args ...any) {
	if r.p.debug {
		r.p.log.Debug(msg, args...)
	}
}

// pendingOp is an operator waiting on the stack for its right side.
type pendingOp struct {
	op    Op
	unary bool
	pos   int
}

// unaryPrec is the comparison precedence of pending unary operators. They
// bind tighter than any binary operator except exponentiation, so -x^2
// is -(x^2) but -2*3 reduces the negation first.
const unaryPrec = 4

func (o pendingOp) effective() Op {
	if o.unary {
		e := o.op
		e.Prec = unaryPrec
		return e
	}
	return o.op
}

// exprFrame is the per-expression parse state: finished operands below,
// operators still waiting for their right side above.
type exprFrame struct {
	operands []Node
	pending  []pendingOp
}

func (f *exprFrame) push(n Node)   { f.operands = append(f.operands, n) }
func (f *exprFrame) top() Node     { return f.operands[len(f.operands)-1] }
func (f *exprFrame) setTop(n Node) { f.operands[len(f.operands)-1] = n }

// parseExpr assembles one expression. Operand tokens push operand nodes;
// an incoming operator first reduces every pending operator it does not
// bind more tightly than, ties going to the left except for
// right-associative operators, then waits itself. parseExpr stops without
// consuming at a closing delimiter, a terminator, a then or else keyword,
// or the end of input. An empty expression returns nil with no error;
// callers reject nil where an operand is required.
func (r *parseRun) parseExpr() (Node, error) {
	var f exprFrame
	wantOperand := true
	for {
		tok, ok := r.peek()
		if !ok {
			return r.finish(&f, Token{}, wantOperand)
		}
		if wantOperand {
			switch tok.Kind {
			case KindNatural:
				r.next()
				n, err := naturalNode(tok)
				if err != nil {
					return nil, err
				}
				f.push(n)
				r.trace("operand", "text", tok.Text, "pos", tok.Pos)
				wantOperand = false
			case KindDecimal:
				r.next()
				v, err := strconv.ParseFloat(tok.Value, 64)
				if err != nil {
					return nil, &SyntaxError{Token: tok, Msg: "malformed number"}
				}
				f.push(&Float{Value: v})
				r.trace("operand", "text", tok.Text, "pos", tok.Pos)
				wantOperand = false
			case KindString:
				r.next()
				f.push(&String{Text: tok.Value})
				wantOperand = false
			case KindConstant:
				r.next()
				f.push(&Constant{Name: tok.Value})
				wantOperand = false
			case KindVariable:
				r.next()
				f.push(&Variable{Name: tok.Value})
				wantOperand = false
			case KindFunction:
				r.next()
				n, err := r.parseCall(tok)
				if err != nil {
					return nil, err
				}
				f.push(n)
				wantOperand = false
			case KindOpen:
				r.next()
				n, err := r.parseGroup(tok)
				if err != nil {
					return nil, err
				}
				f.push(n)
				wantOperand = false
			case KindOperator:
				op, known := LookupOp(tok.Value)
				if !known {
					return nil, &UnknownOperatorError{Sym: tok.Value, Offset: tok.Pos}
				}
				switch tok.Value {
				case "+", "-", "!":
				default:
					return nil, &UnexpectedOperatorError{Sym: tok.Value, Offset: tok.Pos}
				}
				r.next()
				f.pending = append(f.pending, pendingOp{op: op, unary: true, pos: tok.Pos})
				r.trace("push", "op", op.Sym, "unary", true)
			case KindPostfix:
				return nil, &UnexpectedOperatorError{Sym: tok.Value, Offset: tok.Pos}
			case KindKeyword:
				switch tok.Value {
				case "if":
					r.next()
					n, err := r.parseTernary()
					if err != nil {
						return nil, err
					}
					f.push(n)
					wantOperand = false
				case "then", "else":
					return r.finish(&f, tok, wantOperand)
				default:
					return nil, &SyntaxError{Token: tok, Msg: "unexpected keyword"}
				}
			case KindClose, KindCloseBrace, KindTerminator:
				return r.finish(&f, tok, wantOperand)
			case KindOpenBrace:
				return nil, &SyntaxError{Token: tok, Msg: "unexpected brace"}
			default:
				return nil, &SyntaxError{Token: tok, Msg: "unexpected token"}
			}
			continue
		}
		switch tok.Kind {
		case KindOperator:
			op, known := LookupOp(tok.Value)
			if !known {
				return nil, &UnknownOperatorError{Sym: tok.Value, Offset: tok.Pos}
			}
			if tok.Value == "!" {
				// ! is unary only.
				return nil, &UnexpectedOperatorError{Sym: tok.Value, Offset: tok.Pos}
			}
			r.next()
			if err := r.flush(&f, op); err != nil {
				return nil, err
			}
			f.pending = append(f.pending, pendingOp{op: op, pos: tok.Pos})
			r.trace("push", "op", op.Sym, "unary", false)
			wantOperand = true
		case KindPostfix:
			r.next()
			name := "factorial"
			if tok.Value == "!!" {
				name = "semifactorial"
			}
			fn, err := NewFunction(name, []Node{f.top()})
			if err != nil {
				return nil, err
			}
			f.setTop(fn)
			r.trace("postfix", "func", name, "pos", tok.Pos)
		case KindClose, KindCloseBrace, KindTerminator:
			return r.finish(&f, tok, wantOperand)
		case KindKeyword:
			switch tok.Value {
			case "then", "else":
				return r.finish(&f, tok, wantOperand)
			}
			return nil, &SyntaxError{Token: tok, Msg: "missing operator"}
		case KindNatural, KindDecimal, KindString, KindConstant, KindVariable, KindFunction, KindOpen:
			// Two adjacent operands.
			if !r.p.implicitMul {
				return nil, &SyntaxError{Token: tok, Msg: "missing operator"}
			}
			op, _ := LookupOp("*")
			if err := r.flush(&f, op); err != nil {
				return nil, err
			}
			f.pending = append(f.pending, pendingOp{op: op, pos: tok.Pos})
			r.trace("implicit mul", "pos", tok.Pos)
			wantOperand = true
		default:
			return nil, &SyntaxError{Token: tok, Msg: "unexpected token"}
		}
	}
}

// flush reduces every pending operator that op does not bind more tightly
// than.
func (r *parseRun) flush(f *exprFrame, op Op) error {
	for len(f.pending) > 0 && !op.moreBinding(f.pending[len(f.pending)-1].effective()) {
		if err := r.reduceTop(f); err != nil {
			return err
		}
	}
	return nil
}

// reduceTop pops one pending operator and replaces its operands with the
// built node. Folding errors from the Builder propagate to the caller.
func (r *parseRun) reduceTop(f *exprFrame) error {
	top := f.pending[len(f.pending)-1]
	f.pending = f.pending[:len(f.pending)-1]
	r.trace("reduce", "op", top.op.Sym, "unary", top.unary)
	if top.unary {
		if len(f.operands) < 1 {
			panic("polyexpr: operand stack underflow")
		}
		n, err := r.p.build.Unary(top.op, f.top())
		if err != nil {
			return err
		}
		f.setTop(n)
		return nil
	}
	if len(f.operands) < 2 {
		panic("polyexpr: operand stack underflow")
	}
	rhs := f.top()
	f.operands = f.operands[:len(f.operands)-1]
	n, err := r.p.build.Infix(top.op, f.top(), rhs)
	if err != nil {
		return err
	}
	f.setTop(n)
	return nil
}

// finish reduces everything pending and returns the completed tree. tok
// is the unconsumed stopping token, zero at end of input.
func (r *parseRun) finish(f *exprFrame, tok Token, wantOperand bool) (Node, error) {
	if wantOperand {
		if len(f.operands) == 0 && len(f.pending) == 0 {
			return nil, nil
		}
		return nil, &SyntaxError{Token: tok, Msg: "missing operand"}
	}
	for len(f.pending) > 0 {
		if err := r.reduceTop(f); err != nil {
			return nil, err
		}
	}
	if len(f.operands) != 1 {
		panic("polyexpr: unbalanced operand stack")
	}
	return f.operands[0], nil
}

// parseGroup parses the rest of a parenthesized expression. open is the
// consumed opening parenthesis.
func (r *parseRun) parseGroup(open Token) (Node, error) {
	n, err := r.parseExpr()
	if err != nil {
		return nil, err
	}
	tok, ok := r.next()
	if !ok {
		return nil, &DelimiterMismatchError{Open: open.Text, Offset: open.Pos}
	}
	switch tok.Kind {
	case KindClose:
		if n == nil {
			return nil, &SyntaxError{Token: tok, Msg: "empty expression"}
		}
		return n, nil
	case KindCloseBrace:
		return nil, &DelimiterMismatchError{Open: open.Text, Close: tok.Text, Offset: tok.Pos}
	default:
		return nil, &SyntaxError{Token: tok, Msg: "expected )"}
	}
}

// parseCall parses the parenthesized argument list of a function call.
// The parenthesis is mandatory: a function name is never an operand by
// itself, and implicit multiplication never applies between a function
// name and its argument list. Terminators split the arguments.
func (r *parseRun) parseCall(name Token) (Node, error) {
	open, ok := r.next()
	if !ok || open.Kind != KindOpen {
		return nil, &SyntaxError{Token: open, Msg: "expected ( after function " + name.Value}
	}
	var args []Node
	for {
		arg, err := r.parseExpr()
		if err != nil {
			return nil, err
		}
		tok, ok := r.next()
		if !ok {
			return nil, &DelimiterMismatchError{Open: open.Text, Offset: open.Pos}
		}
		switch tok.Kind {
		case KindClose:
			switch {
			case arg != nil:
				args = append(args, arg)
			case len(args) > 0:
				return nil, &SyntaxError{Token: tok, Msg: "empty argument"}
			}
			return NewFunction(name.Value, args)
		case KindTerminator:
			if arg == nil {
				return nil, &SyntaxError{Token: tok, Msg: "empty argument"}
			}
			args = append(args, arg)
		case KindCloseBrace:
			return nil, &DelimiterMismatchError{Open: open.Text, Close: tok.Text, Offset: tok.Pos}
		default:
			return nil, &SyntaxError{Token: tok, Msg: "expected , or ) in argument list"}
		}
	}
}

// parseTernary parses both conditional surfaces, IF (cond) THEN a ELSE b
// and if (cond) { return a; } else { return b; }, into one Ternary. The
// if keyword is already consumed.
func (r *parseRun) parseTernary() (Node, error) {
	open, ok := r.next()
	if !ok || open.Kind != KindOpen {
		return nil, &SyntaxError{Token: open, Msg: "expected ( after if"}
	}
	cond, err := r.parseGroup(open)
	if err != nil {
		return nil, err
	}
	tok, ok := r.next()
	if !ok {
		return nil, &SyntaxError{Msg: "expected THEN or { after if condition"}
	}
	switch {
	case tok.Kind == KindKeyword && tok.Value == "then":
		then, err := r.parseExpr()
		if err != nil {
			return nil, err
		}
		if then == nil {
			return nil, &SyntaxError{Msg: "empty branch in conditional"}
		}
		els, _ := r.next()
		if els.Kind != KindKeyword || els.Value != "else" {
			return nil, &SyntaxError{Token: els, Msg: "expected ELSE"}
		}
		elseN, err := r.parseExpr()
		if err != nil {
			return nil, err
		}
		if elseN == nil {
			return nil, &SyntaxError{Msg: "empty branch in conditional"}
		}
		return r.p.build.Ternary(cond, then, elseN)
	case tok.Kind == KindOpenBrace:
		then, err := r.parseBranch(tok)
		if err != nil {
			return nil, err
		}
		els, _ := r.next()
		if els.Kind != KindKeyword || els.Value != "else" {
			return nil, &SyntaxError{Token: els, Msg: "expected else"}
		}
		ob, _ := r.next()
		if ob.Kind != KindOpenBrace {
			return nil, &SyntaxError{Token: ob, Msg: "expected { after else"}
		}
		elseN, err := r.parseBranch(ob)
		if err != nil {
			return nil, err
		}
		return r.p.build.Ternary(cond, then, elseN)
	}
	return nil, &SyntaxError{Token: tok, Msg: "expected THEN or { after if condition"}
}

// parseBranch parses { return expr ; } with the return keyword and the
// trailing terminator optional. open is the consumed opening brace.
func (r *parseRun) parseBranch(open Token) (Node, error) {
	if tok, ok := r.peek(); ok && tok.Kind == KindKeyword && tok.Value == "return" {
		r.next()
	}
	n, err := r.parseExpr()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := r.next()
		if !ok {
			return nil, &DelimiterMismatchError{Open: open.Text, Offset: open.Pos}
		}
		switch tok.Kind {
		case KindTerminator:
		case KindCloseBrace:
			if n == nil {
				return nil, &SyntaxError{Token: tok, Msg: "empty branch in conditional"}
			}
			return n, nil
		case KindClose:
			return nil, &DelimiterMismatchError{Open: open.Text, Close: tok.Text, Offset: tok.Pos}
		default:
			return nil, &SyntaxError{Token: tok, Msg: "expected } after branch"}
		}
	}
}

// naturalNode converts a natural-number token. Values past int64 range
// fall back to Float.
func naturalNode(tok Token) (Node, error) {
	if v, err := strconv.ParseInt(tok.Value, 10, 64); err == nil {
		return &Integer{Value: v}, nil
	}
	v, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		return nil, &SyntaxError{Token: tok, Msg: "malformed number"}
	}
	return &Float{Value: v}, nil
}
