package polyexpr

// OpClass groups operator symbols by how they dispatch: arithmetic
// operators visit VisitInfix, relational and logical ones visit
// VisitLogicalInfix.
type OpClass int

// Operator classes.
const (
	OpArithmetic OpClass = iota
	OpRelational
	OpLogical
)

// Op is an operator symbol with its precedence and associativity, fixed
// per symbol at construction time.
type Op struct {
	Sym   string
	Prec  int
	Right bool
	Class OpClass
}

var opTable = map[string]Op{
	"&&": {Sym: "&&", Prec: 1, Class: OpLogical},
	"||": {Sym: "||", Prec: 1, Class: OpLogical},
	"!":  {Sym: "!", Prec: 1, Class: OpLogical},
	"=":  {Sym: "=", Prec: 2, Class: OpRelational},
	"<>": {Sym: "<>", Prec: 2, Class: OpRelational},
	">":  {Sym: ">", Prec: 2, Class: OpRelational},
	"<":  {Sym: "<", Prec: 2, Class: OpRelational},
	">=": {Sym: ">=", Prec: 2, Class: OpRelational},
	"<=": {Sym: "<=", Prec: 2, Class: OpRelational},
	"+":  {Sym: "+", Prec: 3, Class: OpArithmetic},
	"-":  {Sym: "-", Prec: 3, Class: OpArithmetic},
	"*":  {Sym: "*", Prec: 4, Class: OpArithmetic},
	"/":  {Sym: "/", Prec: 4, Class: OpArithmetic},
	"^":  {Sym: "^", Prec: 5, Right: true, Class: OpArithmetic},
}

// LookupOp returns the table entry for an operator symbol.
func LookupOp(sym string) (Op, bool) {
	op, ok := opTable[sym]
	return op, ok
}

// moreBinding reports whether an incoming operator binds more tightly
// than a pending one. Equal precedence pushes only for right-associative
// operators; left-associative ties reduce.
func (o Op) moreBinding(than Op) bool {
	if o.Prec != than.Prec {
		return o.Prec > than.Prec
	}
	return o.Right
}
