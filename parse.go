package rpncalc

import (
	"strings"

	"github.com/ahrtr/gocontainer/stack"
)

// ToPostfix converts an infix expression to postfix notation. The result is
// the postfix tokens separated by single spaces, with unary negation written
// as NegMarker following its operand.
//
// Parentheses are checked loosely. A close parenthesis without a match is
// ignored, and an unmatched open parenthesis is left in the output, where
// evaluation rejects it with a *TokenError.
func ToPostfix(src string) (string, error) {
	out, err := convert(lex(src))
	if err != nil {
		return "", err
	}
	return strings.Join(out, " "), nil
}

// convert reorders tokens into postfix order.
func convert(toks []lexToken) ([]string, error) {
	var (
		out []string
		ops = stack.New()
		// neg means a unary minus applies to the next operand.
		neg bool
		// operand means the next token must start an operand: we are at the
		// start of the expression or just after a binary operator.
		operand = true
	)
	for _, tok := range toks {
		t := tok.text
		switch {
		case isNumber(t, true), isIdent(t):
			out = append(out, t)
			if neg {
				out = append(out, NegMarker)
				neg = false
			}
			operand = false
		case neg:
			return nil, &SyntaxError{Col: tok.pos, Token: t}
		case isOperator(t):
			switch {
			case !operand:
				for !ops.IsEmpty() && hasPrecedence(t, ops.Peek().(string)) {
					out = append(out, ops.Pop().(string))
				}
				ops.Push(t)
				operand = true
			case t == "-":
				// Unary. The operand is still expected, but another operator
				// now fails through the neg case.
				neg = true
				operand = false
			default:
				return nil, &SyntaxError{Col: tok.pos, Token: t}
			}
		case t == "(":
			ops.Push(t)
		case t == ")":
			for !ops.IsEmpty() && ops.Peek().(string) != "(" {
				out = append(out, ops.Pop().(string))
			}
			if !ops.IsEmpty() {
				ops.Pop()
			}
		default:
			// Unknown token. It takes the place of an operand so that
			// evaluation reports it.
			out = append(out, t)
			operand = false
		}
	}
	for !ops.IsEmpty() {
		out = append(out, ops.Pop().(string))
	}
	return out, nil
}

// hasPrecedence reports whether the operator top on the operator stack must
// be output before pushing incoming. Parentheses never yield. Multiplicative
// operators do not yield to a pending additive one; otherwise, the pending
// operator goes first, so all operators are left-associative.
func hasPrecedence(incoming, top string) bool {
	if top == "(" || top == ")" {
		return false
	}
	mul := incoming == "*" || incoming == "/"
	add := top == "+" || top == "-"
	return !mul || !add
}

// Vars returns the identifiers of a postfix expression in the order of their
// first occurrence, which is the order in which evaluation resolves them.
func Vars(postfix string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, t := range strings.Fields(postfix) {
		if isIdent(t) && !seen[t] {
			seen[t] = true
			names = append(names, t)
		}
	}
	return names
}
