package parser_test

import (
	"github.com/cottand/dnf/parser"
	"github.com/cottand/dnf/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func testRun(t *testing.T, src string) []string {
	t.Helper()
	results, errs := parser.NewInterpreter(types.NewTypeCtx()).Run("", src)
	require.NoError(t, errs.Err())
	var printed []string
	for _, result := range results {
		printed = append(printed, result.String())
	}
	return printed
}

func TestNoPanics(t *testing.T) {
	inputs := map[string]string{
		"empty":                ``,
		"only a semicolon":     `;`,
		"dangling operator":    `int |`,
		"unclosed literal":     `Literal[1`,
		"unclosed group":       `(int & str`,
		"class without a name": `class`,
		"bad character":        `int $ str`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, _ = parser.NewInterpreter(types.NewTypeCtx()).Run("", input)
			})
		})
	}
}

func TestParseExpression(t *testing.T) {
	program, err := parser.Parse("", `int & ~Literal[1] | str`)
	require.NoError(t, err)
	require.Len(t, program.Statements, 1)

	expr := program.Statements[0].Expr
	require.NotNil(t, expr)
	require.Len(t, expr.Terms, 2)

	first := expr.Terms[0]
	require.Len(t, first.Factors, 2)
	assert.Equal(t, "int", first.Factors[0].Atom.Name)
	require.NotNil(t, first.Factors[1].Negated)
	literal := first.Factors[1].Negated.Atom.Literal
	require.Len(t, literal, 1)
	assert.Equal(t, int64(1), *literal[0].Int)

	assert.Equal(t, "str", expr.Terms[1].Factors[0].Atom.Name)
	assert.Equal(t, 21, expr.Terms[1].Factors[0].Atom.Pos.Column)
}

func TestParseClassDecl(t *testing.T) {
	program, err := parser.Parse("", `class A; final class B(A, object)`)
	require.NoError(t, err)
	require.Len(t, program.Statements, 2)

	a := program.Statements[0].Class
	require.NotNil(t, a)
	assert.Equal(t, "A", a.Name)
	assert.False(t, a.Final)
	assert.Empty(t, a.Bases)

	b := program.Statements[1].Class
	require.NotNil(t, b)
	assert.Equal(t, "B", b.Name)
	assert.True(t, b.Final)
	assert.Equal(t, []string{"A", "object"}, b.Bases)
}

func TestParseLiterals(t *testing.T) {
	program, err := parser.Parse("", `Literal[-3, "a;b", True, False]`)
	require.NoError(t, err)
	require.Len(t, program.Statements, 1)

	values := program.Statements[0].Expr.Terms[0].Factors[0].Atom.Literal
	require.Len(t, values, 4)
	assert.Equal(t, int64(-3), *values[0].Int)
	assert.Equal(t, "a;b", *values[1].Str)
	assert.Equal(t, parser.Boolean(true), *values[2].Bool)
	assert.Equal(t, parser.Boolean(false), *values[3].Bool)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := parser.Parse("input", `int | | str`)
	require.Error(t, err)

	var perr *parser.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, parser.Syntax, perr.Code)
	assert.Equal(t, "input", perr.Pos.Filename)
	assert.Equal(t, 1, perr.Pos.Line)
}

func TestParseSyntaxErrorInLiteralKeepsFilename(t *testing.T) {
	_, err := parser.Parse("input", `Literal[99999999999999999999]`)
	require.Error(t, err)

	var perr *parser.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, parser.Syntax, perr.Code)
	assert.Equal(t, "input", perr.Pos.Filename)
	assert.Contains(t, perr.Message, "value out of range")
	assert.True(t, strings.HasPrefix(perr.Error(), "input:"), perr.Error())
}

func TestNormalise(t *testing.T) {
	testCases := []struct {
		name     string
		src      string
		expected []string
	}{
		{name: "single type", src: `int`, expected: []string{"int"}},
		{name: "None", src: `None | NoneType`, expected: []string{"None"}},
		{name: "union subsumption", src: `Literal[1] | int`, expected: []string{"int"}},
		{name: "bool from literals", src: `Literal[True, False]`, expected: []string{"bool"}},
		{name: "literal union", src: `Literal[1, "a", 1]`, expected: []string{`Literal[1] | Literal["a"]`}},
		{name: "disjoint", src: `Literal[1] & str`, expected: []string{"Never"}},
		{name: "negated disjoint", src: `int & ~None & ~Literal[1]`, expected: []string{"int & ~Literal[1]"}},
		{name: "bool split", src: `bool & ~Literal[True]`, expected: []string{"Literal[False]"}},
		{name: "bool split by truthiness", src: `object & ~AlwaysFalsy & bool`, expected: []string{"Literal[True]"}},
		{name: "double negation", src: `~~str`, expected: []string{"str"}},
		{name: "negated gradual", src: `~Any & int`, expected: []string{"Any & int"}},
		{name: "todo", src: `@Todo | @Todo(later)`, expected: []string{"@Todo"}},
		{name: "todo with reason", src: `@Todo("not yet")`, expected: []string{"@Todo(not yet)"}},
		{name: "grouping", src: `(int | str) & ~Literal[1]`, expected: []string{`int & ~Literal[1] | str`}},
		{name: "comments", src: "str # the rest is ignored | int", expected: []string{"str"}},
		{
			name:     "classes",
			src:      `class A; class B; final class C(A); A & B; B & C; ~(A & ~B) & object`,
			expected: []string{"class A(object)", "class B(object)", "final class C(A)", "A & B", "Never", "object & ~A | B"},
		},
		{
			name:     "distribution",
			src:      `class A; class B; class C; class D; (A | B) & (C | D)`,
			expected: []string{"class A(object)", "class B(object)", "class C(object)", "class D(object)", "A & C | B & C | A & D | B & D"},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, testRun(t, testCase.src))
		})
	}
}

func TestRunCollectsErrors(t *testing.T) {
	interpreter := parser.NewInterpreter(types.NewTypeCtx())
	results, errs := interpreter.Run("", `int | Foo; class A(Bar); class int; str`)

	require.Len(t, results, 1)
	assert.Equal(t, "str", results[0].String())

	require.True(t, errs.HasError())
	all := errs.Errors()
	require.Len(t, all, 3)

	assert.Equal(t, parser.UndefinedName, all[0].Code)
	assert.Equal(t, "undefined name Foo", all[0].Message)
	assert.Equal(t, 7, all[0].Pos.Column)

	assert.Equal(t, parser.UndefinedName, all[1].Code)
	assert.Equal(t, "undefined name Bar", all[1].Message)

	assert.Equal(t, parser.InvalidClass, all[2].Code)
	assert.Equal(t, "class int is already defined", all[2].Message)

	assert.Equal(t, "1:7: (E002) undefined name Foo (and 2 more errors)", errs.Error())
}

func TestRunKeepsClassesAcrossCalls(t *testing.T) {
	interpreter := parser.NewInterpreter(types.NewTypeCtx())

	_, errs := interpreter.Run("", `class A`)
	require.NoError(t, errs.Err())

	results, errs := interpreter.Run("", `A | int`)
	require.NoError(t, errs.Err())
	assert.Equal(t, "A | int", results[0].String())
}

func TestErrorsNilIsEmpty(t *testing.T) {
	var errs *parser.Errors
	assert.False(t, errs.HasError())
	assert.Empty(t, errs.Errors())
	assert.NoError(t, errs.Err())
}
