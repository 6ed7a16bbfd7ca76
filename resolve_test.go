package rpncalc_test

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/rpncalc"
)

func TestValues(t *testing.T) {
	v := rpncalc.Values{"a": 1.5}
	r, err := v.Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, 1.5, r)

	_, err = v.Resolve("b")
	var ne *rpncalc.NameError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "b", ne.Name)
}

func TestChain(t *testing.T) {
	boom := errors.New("boom")
	var asked []string
	last := rpncalc.ResolverFunc(func(name string) (float64, error) {
		asked = append(asked, name)
		if name == "bad" {
			return 0, boom
		}
		return 9, nil
	})
	c := rpncalc.Chain(rpncalc.Values{"a": 1}, rpncalc.Values{"b": 2}, last)

	cases := []struct {
		name string
		r    float64
		err  error
	}{
		{"a", 1, nil},
		{"b", 2, nil},
		{"c", 9, nil},
		{"bad", 0, boom},
	}
	for _, tc := range cases {
		r, err := c.Resolve(tc.name)
		if tc.err != nil {
			assert.ErrorIs(t, err, tc.err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.r, r, "resolving %s", tc.name)
	}
	assert.Equal(t, []string{"c", "bad"}, asked)

	_, err := rpncalc.Chain(rpncalc.Values{}).Resolve("z")
	assert.EqualError(t, err, "Undefined variable: z")
	_, err = rpncalc.Chain().Resolve("z")
	assert.EqualError(t, err, "Undefined variable: z")
}

// lines formats values one per line the way a user would type them.
func lines(vals ...float64) string {
	var b strings.Builder
	for _, v := range vals {
		b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		b.WriteByte('\n')
	}
	return b.String()
}

func TestPrompt(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		input  string
		r      float64
		prompt string
	}{
		{"no-variables", "1 + 1 / (-1)", "", 0, ""},
		{"all-operations", "a + b * (c / d) - 1", lines(5, 3, 10, 4), 11.5,
			"Enter value for variable a:\nEnter value for variable b:\nEnter value for variable c:\nEnter value for variable d:\n"},
		{"same-variables", "a + a * (a - a)", lines(5), 5, "Enter value for variable a:\n"},
		{"unary-minus", "-a + (-5)", lines(1), -6, "Enter value for variable a:\n"},
		{"spaces", "a * 2", "  2.5  \r\n", 5, "Enter value for variable a:\n"},
		{"no-newline", "a * 2", "4", 8, "Enter value for variable a:\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var out strings.Builder
			r, err := rpncalc.Eval(c.src, rpncalc.WithResolver(rpncalc.Prompt(strings.NewReader(c.input), &out)))
			require.NoError(t, err)
			assert.InDelta(t, c.r, r, 1e-3)
			assert.Equal(t, c.prompt, out.String())
		})
	}
}

func TestPromptErrors(t *testing.T) {
	var out strings.Builder
	_, err := rpncalc.Eval("a + 1", rpncalc.WithResolver(rpncalc.Prompt(strings.NewReader("five\n"), &out)))
	var ve *rpncalc.ValueError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "a", ve.Name)
	assert.Equal(t, "five", ve.Text)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
	assert.EqualError(t, err, `invalid value for variable a: "five"`)
	assert.Equal(t, rpncalc.KindVariableParseFailure, rpncalc.KindOf(err))

	_, err = rpncalc.Eval("a + b", rpncalc.WithResolver(rpncalc.Prompt(strings.NewReader("1\n"), &out)))
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "b", ve.Name)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.EqualError(t, err, "invalid value for variable b: unexpected EOF")
}

func TestPromptSharedReader(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("a * b\n3\n4\n"))
	src, err := in.ReadString('\n')
	require.NoError(t, err)
	var out strings.Builder
	r, err := rpncalc.Eval(src, rpncalc.WithResolver(rpncalc.Prompt(in, &out)))
	require.NoError(t, err)
	assert.Equal(t, 12.0, r)
}
