package rpncalc

import (
	"strings"

	"github.com/edwingeng/deque"
)

// Parenthesize rewrites a postfix expression as a fully bracketed infix
// expression, e.g. "a b c * +" becomes "(a + (b * c))". This shows how an
// expression was grouped without evaluating it, so no variables are resolved
// and division by zero is not detected. Malformed postfix gives the same
// errors as evaluation.
func Parenthesize(postfix string) (string, error) {
	s := deque.NewDeque()
	pop := func() string { return s.PopBack().(string) }
	for _, t := range strings.Fields(postfix) {
		switch tok := Classify(t); tok.Kind {
		case Number, Identifier:
			s.PushBack(t)
		case Operator:
			if s.Len() < 2 {
				return "", &StackError{Token: t, Depth: s.Len(), err: ErrIncorrectExpression}
			}
			r := pop()
			l := pop()
			s.PushBack("(" + l + " " + t + " " + r + ")")
		case UnaryMinus:
			if s.Empty() {
				return "", &StackError{Token: t, err: ErrInvalidExpression}
			}
			s.PushBack("-" + pop())
		default:
			return "", &TokenError{Token: t}
		}
	}
	if n := s.Len(); n != 1 {
		return "", &StackError{Depth: n, err: ErrInvalidExpression}
	}
	return pop(), nil
}
