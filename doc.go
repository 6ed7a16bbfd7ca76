// Package rpncalc evaluates arithmetic expressions by way of postfix
// notation.
//
// Expressions use decimal numbers, variables, the binary operators + - * /,
// unary minus, and parentheses: "a + b * (c / d) - 1". ToPostfix converts
// such an expression to postfix, "a b c d / * + 1 -", in which unary minus
// is written as ~ after its operand. A Context evaluates postfix
// expressions, asking its Resolver for the value of each variable the first
// time the variable appears.
package rpncalc
