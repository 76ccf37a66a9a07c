// Package types normalises set-theoretic types: unions, intersections and
// negations of literal, instance and gradual types.
//
// Every Type handed out by this package is kept in disjunctive normal form:
// a union of intersections, where no union nests another union, no intersection
// nests another intersection and no intersection contains a union.
// UnionBuilder and IntersectionBuilder are the only way to produce unions and
// intersections, and they maintain these invariants while combining types.
package types

import (
	"fmt"
	"strconv"
)

// Type is an immutable type value.
//
// Types are interned by a TypeCtx, so two Type values describe the same
// type if and only if they are ==, and a Type can be used as a map key.
type Type interface {
	fmt.Stringer
	isType()
}

var (
	_ Type = Never{}
	_ Type = Any{}
	_ Type = Unknown{}
	_ Type = Todo{}
	_ Type = IntLiteral{}
	_ Type = StringLiteral{}
	_ Type = BooleanLiteral{}
	_ Type = LiteralString{}
	_ Type = AlwaysTruthy{}
	_ Type = AlwaysFalsy{}
	_ Type = Instance{}
	_ Type = (*UnionType)(nil)
	_ Type = (*IntersectionType)(nil)
)

// Never is the bottom type, which no value inhabits
type Never struct{}

// Any is the explicit gradual type
type Any struct{}

// Unknown is the gradual type of things we could not infer
type Unknown struct{}

// Todo marks a type that is not inferred yet. Two Todos are the same
// gradual form regardless of their Reason.
type Todo struct {
	Reason string
}

type IntLiteral struct {
	Value int64
}

type StringLiteral struct {
	Value string
}

type BooleanLiteral struct {
	Value bool
}

// LiteralString is the type of every string literal
type LiteralString struct{}

// AlwaysTruthy is the type of all values which are truthy under boolean coercion
type AlwaysTruthy struct{}

// AlwaysFalsy is the type of all values which are falsy under boolean coercion
type AlwaysFalsy struct{}

// Instance is the type of all instances of Class, including instances of its subclasses
type Instance struct {
	Class *Class
}

func (Never) isType()             {}
func (Any) isType()               {}
func (Unknown) isType()           {}
func (Todo) isType()              {}
func (IntLiteral) isType()        {}
func (StringLiteral) isType()     {}
func (BooleanLiteral) isType()    {}
func (LiteralString) isType()     {}
func (AlwaysTruthy) isType()      {}
func (AlwaysFalsy) isType()       {}
func (Instance) isType()          {}
func (*UnionType) isType()        {}
func (*IntersectionType) isType() {}

func (Never) String() string         { return "Never" }
func (Any) String() string           { return "Any" }
func (Unknown) String() string       { return "Unknown" }
func (LiteralString) String() string { return "LiteralString" }
func (AlwaysTruthy) String() string  { return "AlwaysTruthy" }
func (AlwaysFalsy) String() string   { return "AlwaysFalsy" }

func (t Todo) String() string {
	if t.Reason == "" {
		return "@Todo"
	}
	return "@Todo(" + t.Reason + ")"
}

func (t IntLiteral) String() string {
	return "Literal[" + strconv.FormatInt(t.Value, 10) + "]"
}

func (t StringLiteral) String() string {
	return "Literal[" + strconv.Quote(t.Value) + "]"
}

func (t BooleanLiteral) String() string {
	if t.Value {
		return "Literal[True]"
	}
	return "Literal[False]"
}

func (t Instance) String() string {
	if t.Class.IsKnown(KnownClassNoneType) {
		return "None"
	}
	return t.Class.Name()
}

// IsGradual reports whether t is a placeholder for information we do not have,
// rather than a concrete set of values
func IsGradual(t Type) bool {
	switch t.(type) {
	case Any, Unknown, Todo:
		return true
	default:
		return false
	}
}

// IsSameGradualForm reports whether a and b are the same kind of gradual type.
// Gradual types are never subtypes of each other, so this is what
// deduplicates them.
func IsSameGradualForm(a, b Type) bool {
	switch a.(type) {
	case Any:
		_, ok := b.(Any)
		return ok
	case Unknown:
		_, ok := b.(Unknown)
		return ok
	case Todo:
		_, ok := b.(Todo)
		return ok
	default:
		return false
	}
}

func IsBooleanLiteral(t Type) bool {
	_, ok := t.(BooleanLiteral)
	return ok
}

// isTruthinessMarker is true for AlwaysTruthy and AlwaysFalsy
func isTruthinessMarker(t Type) bool {
	switch t.(type) {
	case AlwaysTruthy, AlwaysFalsy:
		return true
	default:
		return false
	}
}

func isNever(t Type) bool {
	_, ok := t.(Never)
	return ok
}

func isLiteral(t Type) bool {
	switch t.(type) {
	case IntLiteral, StringLiteral, BooleanLiteral:
		return true
	default:
		return false
	}
}
