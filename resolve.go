package rpncalc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Resolver supplies values for variables. An evaluation context calls
// Resolve at most once per name; resolvers need not remember anything.
type Resolver interface {
	// Resolve returns the value of the named variable. If the resolver has
	// no value for the name, it should return a *NameError.
	Resolve(name string) (float64, error)
}

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc func(name string) (float64, error)

func (f ResolverFunc) Resolve(name string) (float64, error) {
	return f(name)
}

// Values is a fixed table of variable values.
type Values map[string]float64

func (v Values) Resolve(name string) (float64, error) {
	x, ok := v[name]
	if !ok {
		return 0, &NameError{Name: name}
	}
	return x, nil
}

type chain []Resolver

// Chain creates a resolver that tries each of rs in order. It moves to the
// next resolver only when one reports a *NameError; other errors stop the
// search.
func Chain(rs ...Resolver) Resolver {
	return chain(rs)
}

func (c chain) Resolve(name string) (float64, error) {
	for _, r := range c {
		v, err := r.Resolve(name)
		var ne *NameError
		if errors.As(err, &ne) {
			continue
		}
		return v, err
	}
	return 0, &NameError{Name: name}
}

type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// Prompt creates a resolver that asks for each variable on out and reads its
// value as one line from in. If in is already a *bufio.Reader, it is used
// directly, so the caller can share it for other input.
func Prompt(in io.Reader, out io.Writer) Resolver {
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &prompter{in: br, out: out}
}

func (p *prompter) Resolve(name string) (float64, error) {
	if _, err := fmt.Fprintf(p.out, "Enter value for variable %s:\n", name); err != nil {
		return 0, err
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return 0, err
		}
		if line == "" {
			return 0, &ValueError{Name: name, Err: io.ErrUnexpectedEOF}
		}
	}
	text := strings.TrimSpace(line)
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &ValueError{Name: name, Text: text, Err: err}
	}
	return v, nil
}
