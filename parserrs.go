package rpncalc

import (
	"errors"
	"strconv"
)

// Sentinel errors. Every error returned by this package that is not one of
// these wraps one of them or is a *TokenError, *NameError, or *ValueError.
var (
	// ErrIncorrectExpression indicates misplaced operators or an operator
	// without enough operands.
	ErrIncorrectExpression = errors.New("Incorrect expression")
	// ErrInvalidExpression indicates that evaluation did not finish with
	// exactly one value, or that negation had no operand.
	ErrInvalidExpression = errors.New("Invalid expression")
	// ErrDivisionByZero indicates a division whose divisor is zero.
	ErrDivisionByZero = errors.New("Division by zero")
)

// SyntaxError is an error from converting an expression to postfix. It wraps
// ErrIncorrectExpression and implements InputError.
type SyntaxError struct {
	// Col is the position of the offending token.
	Col int
	// Token is the offending token.
	Token string
}

func (err *SyntaxError) Error() string {
	return ErrIncorrectExpression.Error()
}

func (err *SyntaxError) Unwrap() error {
	return ErrIncorrectExpression
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// StackError is an error indicating the operand stack had the wrong number
// of values. It wraps ErrIncorrectExpression or ErrInvalidExpression.
type StackError struct {
	// Token is the postfix token being evaluated, or empty at the end of
	// evaluation.
	Token string
	// Depth is the number of values on the stack at the time.
	Depth int

	err error
}

func (err *StackError) Error() string {
	return err.err.Error()
}

func (err *StackError) Unwrap() error {
	return err.err
}

// TokenError is an error indicating a postfix token the evaluator does not
// understand, typically an unmatched open parenthesis.
type TokenError struct {
	Token string
}

func (err *TokenError) Error() string {
	return "Invalid token: " + err.Token
}

// NameError is an error from a lookup for a variable that no resolver could
// supply.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "Undefined variable: " + err.Name
}

// ValueError is an error indicating a value supplied for a variable could
// not be parsed as a number.
type ValueError struct {
	// Name is the variable being resolved.
	Name string
	// Text is the input that failed to parse.
	Text string
	// Err is the underlying error.
	Err error
}

func (err *ValueError) Error() string {
	if err.Text == "" && err.Err != nil {
		return "invalid value for variable " + err.Name + ": " + err.Err.Error()
	}
	return "invalid value for variable " + err.Name + ": " + strconv.Quote(err.Text)
}

func (err *ValueError) Unwrap() error {
	return err.Err
}

// InputError is an error with position information.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var _ InputError = (*SyntaxError)(nil)

// ErrorKind classifies errors from this package.
type ErrorKind int8

const (
	// KindUnknown is any error not produced by this package, e.g. an I/O
	// error from a resolver.
	KindUnknown ErrorKind = iota
	KindIncorrectExpression
	KindDivisionByZero
	KindInvalidToken
	KindInvalidExpression
	KindUndefinedVariable
	KindVariableParseFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindIncorrectExpression:
		return "IncorrectExpression"
	case KindDivisionByZero:
		return "DivisionByZero"
	case KindInvalidToken:
		return "InvalidToken"
	case KindInvalidExpression:
		return "InvalidExpression"
	case KindUndefinedVariable:
		return "UndefinedVariable"
	case KindVariableParseFailure:
		return "VariableParseFailure"
	}
	return "Unknown"
}

// KindOf returns the kind of err. The result is KindUnknown for nil and for
// errors this package did not create.
func KindOf(err error) ErrorKind {
	var (
		te *TokenError
		ne *NameError
		ve *ValueError
	)
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrIncorrectExpression):
		return KindIncorrectExpression
	case errors.Is(err, ErrDivisionByZero):
		return KindDivisionByZero
	case errors.Is(err, ErrInvalidExpression):
		return KindInvalidExpression
	case errors.As(err, &te):
		return KindInvalidToken
	case errors.As(err, &ne):
		return KindUndefinedVariable
	case errors.As(err, &ve):
		return KindVariableParseFailure
	}
	return KindUnknown
}
