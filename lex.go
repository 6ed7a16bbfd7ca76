package rpncalc

import (
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	text string
	pos  int
}

func (t lexToken) String() string {
	return t.text + "@" + strconv.Itoa(t.pos)
}

// Kind is the lexical class of a token.
type Kind int8

const (
	// Invalid is any token not recognized by the other kinds.
	Invalid Kind = iota
	// Number is an unsigned decimal literal, e.g. 12 or 0.5.
	Number
	// Identifier is a variable name.
	Identifier
	// Operator is one of the binary operators.
	Operator
	// LeftParen is an open parenthesis.
	LeftParen
	// RightParen is a close parenthesis.
	RightParen
	// UnaryMinus is the postfix negation marker.
	UnaryMinus
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case Number:
		return "Number"
	case Identifier:
		return "Identifier"
	case Operator:
		return "Operator"
	case LeftParen:
		return "LeftParen"
	case RightParen:
		return "RightParen"
	case UnaryMinus:
		return "UnaryMinus"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Operators contains the runes which are considered to be binary operators.
const Operators = "+-*/"

// NegMarker is the postfix token for unary negation.
const NegMarker = "~"

// Token is a classified token.
type Token struct {
	Kind Kind
	Text string
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text
}

// Classify determines the kind of a single postfix token. Numbers are
// unsigned; a leading minus sign makes a token Invalid.
func Classify(text string) Token {
	k := Invalid
	switch {
	case text == NegMarker:
		k = UnaryMinus
	case text == "(":
		k = LeftParen
	case text == ")":
		k = RightParen
	case isOperator(text):
		k = Operator
	case isNumber(text, false):
		k = Number
	case isIdent(text):
		k = Identifier
	}
	return Token{Kind: k, Text: text}
}

// isdelim reports whether r splits tokens.
func isdelim(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(Operators+"()", r)
}

// lex splits src into tokens on whitespace, operators, and parentheses. The
// operator and parenthesis delimiters are tokens of their own. Positions are
// 1-based rune columns.
func lex(src string) []lexToken {
	var (
		toks  []lexToken
		buf   strings.Builder
		start int
		col   int
	)
	flush := func() {
		if buf.Len() > 0 {
			toks = append(toks, lexToken{text: buf.String(), pos: start})
			buf.Reset()
		}
	}
	for _, r := range src {
		col++
		switch {
		case unicode.IsSpace(r):
			flush()
		case isdelim(r):
			flush()
			toks = append(toks, lexToken{text: string(r), pos: col})
		default:
			if buf.Len() == 0 {
				start = col
			}
			buf.WriteRune(r)
		}
	}
	flush()
	return toks
}

// Tokenize splits an expression into raw tokens. It does not validate
// anything; "1.2.3" and "$" are tokens like any other.
func Tokenize(src string) []string {
	toks := lex(src)
	r := make([]string, len(toks))
	for i, t := range toks {
		r[i] = t.text
	}
	return r
}

func isOperator(s string) bool {
	return len(s) == 1 && strings.Contains(Operators, s)
}

// isNumber reports whether s is a decimal literal of the form
// digits[.digits], optionally with a leading '-' if signed is true.
func isNumber(s string, signed bool) bool {
	if signed && strings.HasPrefix(s, "-") {
		s = s[1:]
	}
	whole, frac, dot := strings.Cut(s, ".")
	if !digits(whole) {
		return false
	}
	return !dot || digits(frac)
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isIdent reports whether s is a variable name: an ASCII letter or
// underscore followed by ASCII letters, digits, or underscores.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
