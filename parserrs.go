package polyexpr

import "strconv"

// UnknownTokenError is an error indicating input text that no registered
// token definition matches. It implements InputError.
type UnknownTokenError struct {
	// Char is the first rune of the unmatched input.
	Char rune
	// Pos is the byte offset of the unmatched input.
	Pos int
}

func (err *UnknownTokenError) Error() string {
	return errpos(err.Pos, "unknown token "+strconv.QuoteRune(err.Char))
}

func (err *UnknownTokenError) Position() int {
	return err.Pos
}

// SyntaxError is an error indicating a token sequence that forms no valid
// expression. It implements InputError.
type SyntaxError struct {
	// Token is the token at which parsing failed. It is the zero Token
	// when the input ended too early or a malformed tree was visited.
	Token Token
	// Msg describes what the parser expected.
	Msg string
}

func (err *SyntaxError) Error() string {
	if err.Token == (Token{}) {
		return err.Msg
	}
	return errpos(err.Token.Pos, err.Msg+": "+strconv.Quote(err.Token.Text))
}

func (err *SyntaxError) Position() int {
	return err.Token.Pos
}

// DelimiterMismatchError is an error indicating unbalanced parentheses or
// braces. It implements InputError.
type DelimiterMismatchError struct {
	// Open is the unmatched opening delimiter, empty for a stray close.
	Open string
	// Close is the unmatched closing delimiter, empty for an unclosed
	// open.
	Close string
	// Offset is the byte offset of the unmatched delimiter.
	Offset int
}

func (err *DelimiterMismatchError) Error() string {
	switch {
	case err.Open == "":
		return errpos(err.Offset, "close delimiter "+strconv.Quote(err.Close)+" with no open")
	case err.Close == "":
		return errpos(err.Offset, "open delimiter "+strconv.Quote(err.Open)+" is never closed")
	}
	return errpos(err.Offset, "delimiter "+strconv.Quote(err.Open)+" closed by "+strconv.Quote(err.Close))
}

func (err *DelimiterMismatchError) Position() int {
	return err.Offset
}

// UnknownOperatorError is an error indicating an operator symbol that has
// no entry in the operator table, or one applied in a domain that cannot
// evaluate it. It implements InputError; the position is -1 when the
// operator was reached during evaluation rather than parsing.
type UnknownOperatorError struct {
	// Sym is the operator symbol.
	Sym string
	// Offset is the byte offset of the operator, or -1.
	Offset int
}

func (err *UnknownOperatorError) Error() string {
	if err.Offset < 0 {
		return "unknown operator " + strconv.Quote(err.Sym)
	}
	return errpos(err.Offset, "unknown operator "+strconv.Quote(err.Sym))
}

func (err *UnknownOperatorError) Position() int {
	return err.Offset
}

// UnexpectedOperatorError is an error indicating an operator token in a
// position where no operator may appear, such as a binary operator with
// no left operand. It implements InputError.
type UnexpectedOperatorError struct {
	// Sym is the operator symbol.
	Sym string
	// Offset is the byte offset of the operator.
	Offset int
}

func (err *UnexpectedOperatorError) Error() string {
	return errpos(err.Offset, "unexpected operator "+strconv.Quote(err.Sym))
}

func (err *UnexpectedOperatorError) Position() int {
	return err.Offset
}

// DivisionByZeroError is an error indicating division by zero, including
// 0/0. It can arise during parse-time folding and during evaluation.
type DivisionByZeroError struct{}

func (err *DivisionByZeroError) Error() string {
	return "division by zero"
}

// ExponentError is an error indicating the undefined form 0^0. It can
// arise during parse-time folding and during evaluation.
type ExponentError struct{}

func (err *ExponentError) Error() string {
	return "0^0 is undefined"
}

// NullOperandError is an error indicating an operator node evaluated with
// a missing operand. Only manually constructed trees reach this; parsed
// trees always carry complete operands or a unary plus or minus.
type NullOperandError struct {
	// Sym is the operator symbol whose operand is missing.
	Sym string
}

func (err *NullOperandError) Error() string {
	return "operator " + strconv.Quote(err.Sym) + " is missing an operand"
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting
// from invalid expression text implements InputError.
type InputError interface {
	error
	// Position returns the byte offset of the token that caused the
	// error.
	Position() int
}

var (
	_ InputError = (*UnknownTokenError)(nil)
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*DelimiterMismatchError)(nil)
	_ InputError = (*UnknownOperatorError)(nil)
	_ InputError = (*UnexpectedOperatorError)(nil)
)
