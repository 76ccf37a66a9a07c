package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	typeLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
		{Name: "Int", Pattern: `[-+]?\d+`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Punct", Pattern: `[|&~()\[\],;@]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})
	typeParser = participle.MustBuild[Program](
		participle.Lexer(typeLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.Unquote("String"),
	)
)

// Program is a sequence of statements separated by semicolons
type Program struct {
	Statements []*Statement `parser:"( @@ ( \";\" @@ )* \";\"? )?"`
}

// Statement either declares a class or is a type expression to normalise
type Statement struct {
	Pos lexer.Position

	Class *ClassDecl `parser:"  @@"`
	Expr  *UnionExpr `parser:"| @@"`
}

// ClassDecl is `class Name` or `final class Name(Base, Other)`.
// A class without bases inherits from object.
type ClassDecl struct {
	Pos lexer.Position

	Final bool     `parser:"@\"final\"?"`
	Name  string   `parser:"\"class\" @Ident"`
	Bases []string `parser:"( \"(\" ( @Ident ( \",\" @Ident )* )? \")\" )?"`
}

type UnionExpr struct {
	Pos lexer.Position

	Terms []*IntersectionExpr `parser:"@@ ( \"|\" @@ )*"`
}

type IntersectionExpr struct {
	Pos lexer.Position

	Factors []*UnaryExpr `parser:"@@ ( \"&\" @@ )*"`
}

type UnaryExpr struct {
	Pos lexer.Position

	Negated *UnaryExpr `parser:"  \"~\" @@"`
	Atom    *AtomExpr  `parser:"| @@"`
}

type AtomExpr struct {
	Pos lexer.Position

	Literal    []*LiteralValue `parser:"  \"Literal\" \"[\" @@ ( \",\" @@ )* \"]\""`
	Todo       bool            `parser:"| ( @\"@\" \"Todo\""`
	TodoReason string          `parser:"    ( \"(\" @( String | Ident ) \")\" )? )"`
	Group      *UnionExpr      `parser:"| \"(\" @@ \")\""`
	Name       string          `parser:"| @Ident"`
}

type LiteralValue struct {
	Pos lexer.Position

	Int  *int64   `parser:"  @Int"`
	Str  *string  `parser:"| @String"`
	Bool *Boolean `parser:"| @( \"True\" | \"False\" )"`
}

type Boolean bool

func (b *Boolean) Capture(values []string) error {
	*b = values[0] == "True"
	return nil
}

// Parse parses src into a Program, without resolving any names
func Parse(filename, src string) (*Program, error) {
	program, err := parse(filename, src)
	if err != nil {
		return nil, err
	}
	return program, nil
}

func parse(filename, src string) (*Program, *Error) {
	program, err := typeParser.ParseString(filename, src)
	if err != nil {
		return nil, newSyntaxError(filename, err)
	}
	return program, nil
}
