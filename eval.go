package rpncalc

import (
	"strconv"
	"strings"

	"github.com/edwingeng/deque"
)

// Context is a single evaluation session. It holds the operand stack and the
// variable bindings, which are resolved at most once each and never removed.
// Independent evaluations should use separate contexts. It is not safe to use
// a Context concurrently.
type Context struct {
	stack   deque.Deque
	names   map[string]float64
	resolve Resolver
	err     error
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption(*Context)
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt     map[string]float64
	resolveropt struct{ r Resolver }
)

func (o varopt) ctxOption(ctx *Context) { ctx.names[o.name] = o.val }

func (o varsopt) ctxOption(ctx *Context) {
	for k, v := range o {
		ctx.names[k] = v
	}
}

func (o resolveropt) ctxOption(ctx *Context) { ctx.resolve = o.r }

// SetVar binds a variable in the context.
func SetVar(name string, val float64) ContextOption {
	return varopt{name, val}
}

// SetVars binds any number of variables in the context.
func SetVars(vars map[string]float64) ContextOption {
	return varsopt(vars)
}

// WithResolver sets the resolver consulted for variables that are not yet
// bound. Without a resolver, unbound variables are a *NameError.
func WithResolver(r Resolver) ContextOption {
	return resolveropt{r}
}

// NewContext creates a new evaluation context.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{
		stack: deque.NewDeque(),
		names: make(map[string]float64),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.ctxOption(&ctx)
	}
	return &ctx
}

// Eval evaluates a postfix expression. Variables bound by earlier calls on
// the same context keep their values. If an error occurs, the result is 0
// and ctx.Err returns the error.
func (ctx *Context) Eval(postfix string) (float64, error) {
	for !ctx.stack.Empty() {
		ctx.stack.PopBack()
	}
	r, err := ctx.run(strings.Fields(postfix))
	ctx.err = err
	return r, err
}

// Err returns the error from the last evaluation, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Lookup returns the value bound to a variable and whether it is bound.
func (ctx *Context) Lookup(name string) (float64, bool) {
	v, ok := ctx.names[name]
	return v, ok
}

// push puts a value on the stack.
func (ctx *Context) push(v float64) {
	ctx.stack.PushBack(v)
}

// pop removes the top from the stack and returns it. Callers check the depth
// first.
func (ctx *Context) pop() float64 {
	return ctx.stack.PopBack().(float64)
}

// lookup returns the value of a variable, resolving and binding it if needed.
func (ctx *Context) lookup(name string) (float64, error) {
	if v, ok := ctx.names[name]; ok {
		return v, nil
	}
	if ctx.resolve == nil {
		return 0, &NameError{Name: name}
	}
	v, err := ctx.resolve.Resolve(name)
	if err != nil {
		return 0, err
	}
	ctx.names[name] = v
	return v, nil
}

func (ctx *Context) run(toks []string) (float64, error) {
	for _, t := range toks {
		switch tok := Classify(t); tok.Kind {
		case Number:
			// Literals too large for float64 become ±Inf with ErrRange.
			v, _ := strconv.ParseFloat(t, 64)
			ctx.push(v)
		case Identifier:
			v, err := ctx.lookup(t)
			if err != nil {
				return 0, err
			}
			ctx.push(v)
		case Operator:
			if ctx.stack.Len() < 2 {
				return 0, &StackError{Token: t, Depth: ctx.stack.Len(), err: ErrIncorrectExpression}
			}
			b := ctx.pop()
			a := ctx.pop()
			r, err := apply(t, a, b)
			if err != nil {
				return 0, err
			}
			ctx.push(r)
		case UnaryMinus:
			if ctx.stack.Empty() {
				return 0, &StackError{Token: t, err: ErrInvalidExpression}
			}
			ctx.push(-ctx.pop())
		default:
			return 0, &TokenError{Token: t}
		}
	}
	if n := ctx.stack.Len(); n != 1 {
		return 0, &StackError{Depth: n, err: ErrInvalidExpression}
	}
	return ctx.pop(), nil
}

// apply computes a op b.
func apply(op string, a, b float64) (float64, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	default:
		panic("rpncalc: invalid operator " + strconv.Quote(op))
	}
}

// EvalPostfix evaluates a postfix expression in a new context.
func EvalPostfix(postfix string, opts ...ContextOption) (float64, error) {
	return NewContext(opts...).Eval(postfix)
}

// Eval converts an infix expression to postfix and evaluates it in a new
// context.
func Eval(src string, opts ...ContextOption) (float64, error) {
	postfix, err := ToPostfix(src)
	if err != nil {
		return 0, err
	}
	return EvalPostfix(postfix, opts...)
}
