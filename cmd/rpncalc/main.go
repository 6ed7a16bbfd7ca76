package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/zephyrtronium/rpncalc"
)

const usage = `usage: rpncalc [-pv] [-f verb] [-g name=value]... [expression]...

Evaluates each expression and prints its result. With no expressions, reads
one from standard input. Variables not given with -g are asked for on
standard input.

  -f verb        format results with a fmt verb, e.g. %g
  -g name=value  define a variable; value may be an expression
  -p             print the postfix form of each expression
  -v             log debugging information to standard error`

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

type config struct {
	// given is the list of name=value definitions in order.
	given [][2]string
	// verb is the fmt verb for results, or empty for the default format.
	verb    string
	postfix bool
	verbose bool
	exprs   []string
	help    bool
}

func parseArgs(argv []string) (config, error) {
	var cfg config
	opts, optind, err := getopt.Getopts(argv, "f:g:hpv")
	if err != nil {
		return cfg, err
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'f':
			cfg.verb = opt.Value
		case 'g':
			d := strings.SplitN(opt.Value, "=", 2)
			if len(d) != 2 {
				return cfg, fmt.Errorf(`variable definitions must be "name=value", not %q`, opt.Value)
			}
			name := strings.TrimSpace(d[0])
			if rpncalc.Classify(name).Kind != rpncalc.Identifier {
				return cfg, fmt.Errorf("invalid variable name %q", name)
			}
			cfg.given = append(cfg.given, [2]string{name, strings.TrimSpace(d[1])})
		case 'h':
			cfg.help = true
		case 'p':
			cfg.postfix = true
		case 'v':
			cfg.verbose = true
		}
	}
	cfg.exprs = argv[optind:]
	return cfg, nil
}

func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(argv)
	log := newLogger(stderr, cfg.verbose)
	if err != nil {
		log.Error().Err(err).Msg("bad arguments")
		io.WriteString(stderr, usage+"\n")
		return 2
	}
	if cfg.help {
		io.WriteString(stdout, usage+"\n")
		return 0
	}
	given, err := define(cfg.given)
	if err != nil {
		log.Error().Err(err).Msg("bad variable definition")
		return 2
	}

	in := bufio.NewReader(stdin)
	exprs := cfg.exprs
	if len(exprs) == 0 {
		if isTerminal(stdin) {
			fmt.Fprintln(stdout, "Enter expression:")
		}
		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			log.Error().Err(err).Msg("reading expression")
			return 1
		}
		exprs = []string{strings.TrimRight(line, "\r\n")}
	}

	errc := color.New(color.FgRed)
	if !isTerminal(stdout) {
		errc.DisableColor()
	}
	prompt := rpncalc.Prompt(in, stdout)
	status := 0
	for _, src := range exprs {
		// Each expression gets its own bindings, so prompted values are
		// forgotten between expressions.
		res := rpncalc.Chain(rpncalc.Values(given), traced(log, prompt))
		r, err := evaluate(src, res, cfg.postfix, stdout, log)
		if err != nil {
			log.Debug().Str("expr", src).Stringer("kind", rpncalc.KindOf(err)).Err(err).Msg("evaluation failed")
			errc.Fprintf(stdout, "Error: %v\n", err)
			status = 1
			continue
		}
		fmt.Fprintf(stdout, "Result: %s\n", format(r, cfg.verb))
	}
	return status
}

func evaluate(src string, res rpncalc.Resolver, echo bool, stdout io.Writer, log zerolog.Logger) (float64, error) {
	postfix, err := rpncalc.ToPostfix(src)
	if err != nil {
		return 0, err
	}
	log.Debug().Str("expr", src).Str("postfix", postfix).Strs("vars", rpncalc.Vars(postfix)).Msg("converted")
	if echo {
		fmt.Fprintf(stdout, "Postfix: %s\n", postfix)
	}
	ctx := rpncalc.NewContext(rpncalc.WithResolver(res))
	r, err := ctx.Eval(postfix)
	if err != nil {
		return 0, err
	}
	log.Debug().Str("expr", src).Float64("result", r).Msg("evaluated")
	return r, nil
}

// define evaluates -g definitions in order. Each value may use variables
// defined before it.
func define(given [][2]string) (map[string]float64, error) {
	vals := make(map[string]float64, len(given))
	for _, d := range given {
		nm, vl := d[0], d[1]
		r, err := rpncalc.Eval(vl, rpncalc.SetVars(vals))
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", nm, err)
		}
		vals[nm] = r
	}
	return vals, nil
}

// traced logs each variable a resolver supplies.
func traced(log zerolog.Logger, r rpncalc.Resolver) rpncalc.Resolver {
	return rpncalc.ResolverFunc(func(name string) (float64, error) {
		v, err := r.Resolve(name)
		if err != nil {
			return 0, err
		}
		log.Debug().Str("var", name).Float64("value", v).Msg("resolved")
		return v, nil
	})
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	cw := zerolog.ConsoleWriter{Out: w, NoColor: !isTerminal(w), TimeFormat: time.Kitchen}
	return zerolog.New(cw).Level(level).With().Timestamp().Logger()
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// format formats a result with verb. If verb is empty, the result is the
// shortest decimal with at least one fractional digit, switching to
// scientific notation outside [1e-3, 1e7).
func format(r float64, verb string) string {
	if verb != "" {
		return fmt.Sprintf(verb, r)
	}
	switch {
	case math.IsNaN(r):
		return "NaN"
	case math.IsInf(r, 1):
		return "Infinity"
	case math.IsInf(r, -1):
		return "-Infinity"
	}
	if a := math.Abs(r); r == 0 || a >= 1e-3 && a < 1e7 {
		s := strconv.FormatFloat(r, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	s := strconv.FormatFloat(r, 'E', -1, 64)
	mant, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	e, _ := strconv.Atoi(exp)
	return mant + "E" + strconv.Itoa(e)
}
