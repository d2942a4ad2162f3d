package polyexpr

import "log/slog"

// Parser converts token sequences into expression trees. A Parser is
// immutable after construction; one instance may serve many goroutines at
// once because each Parse call keeps its state on its own stacks.
type Parser struct {
	implicitMul bool
	debug       bool
	log         *slog.Logger
	build       Builder
}

// NewParser returns a parser configured by opts, applied in order.
func NewParser(opts ...Option) *Parser {
	p := &Parser{log: slog.Default()}
	for _, opt := range opts {
		opt.option(p)
	}
	return p
}

// An Option configures a Parser.
type Option interface {
	option(*Parser)
}

type optionFunc func(*Parser)

func (o optionFunc) option(p *Parser) { o(p) }

// ImplicitMul makes the parser multiply two adjacent operands, so "2x"
// parses as 2*x. Without it, adjacent operands are a syntax error.
func ImplicitMul() Option {
	return optionFunc(func(p *Parser) { p.implicitMul = true })
}

// Simplify turns on constant folding: constant subtrees reduce to single
// operand nodes as the parser builds them, and fold-time errors such as
// division by a literal zero surface from Parse.
func Simplify() Option {
	return optionFunc(func(p *Parser) { p.build.Simplify = true })
}

// PowLimit caps the integer exponent magnitude that folds exactly when
// Simplify is on. The default is DefaultPowLimit.
func PowLimit(n int) Option {
	return optionFunc(func(p *Parser) { p.build.PowLimit = n })
}

// Debug traces every shift and reduction through the parser's logger at
// debug level. It does not change what the parser produces.
func Debug() Option {
	return optionFunc(func(p *Parser) { p.debug = true })
}

// Logger sets the destination for Debug traces. The default is
// slog.Default().
func Logger(l *slog.Logger) Option {
	return optionFunc(func(p *Parser) { p.log = l })
}
