package types

import (
	"github.com/cottand/dnf/util"
	"slices"
	"strconv"
	"strings"
)

// UnionType is an interned union of at least two types.
// Use UnionBuilder to create one.
type UnionType struct {
	elements []Type
	// key is the structural identity of the union, used for interning
	key string
}

// Elements returns the members of the union in the order they were added
func (u *UnionType) Elements() []Type {
	return slices.Clone(u.elements)
}

func (u *UnionType) Len() int {
	return len(u.elements)
}

func (u *UnionType) String() string {
	return util.JoinString(u.elements, " | ")
}

// IntersectionType is an interned intersection of positive and negative types.
// Use IntersectionBuilder to create one.
type IntersectionType struct {
	positive []Type
	negative []Type
	key      string
}

func (i *IntersectionType) Positive() []Type {
	return slices.Clone(i.positive)
}

func (i *IntersectionType) Negative() []Type {
	return slices.Clone(i.negative)
}

func (i *IntersectionType) String() string {
	parts := make([]string, 0, len(i.positive)+len(i.negative))
	for _, pos := range i.positive {
		parts = append(parts, pos.String())
	}
	for _, neg := range i.negative {
		parts = append(parts, "~"+neg.String())
	}
	return strings.Join(parts, " & ")
}

// typeKey identifies t structurally within a single TypeCtx
func typeKey(t Type) string {
	switch t := t.(type) {
	case Never:
		return "never"
	case Any:
		return "any"
	case Unknown:
		return "unknown"
	case Todo:
		return "todo:" + strconv.Quote(t.Reason)
	case IntLiteral:
		return "int:" + strconv.FormatInt(t.Value, 10)
	case StringLiteral:
		return "str:" + strconv.Quote(t.Value)
	case BooleanLiteral:
		return "bool:" + strconv.FormatBool(t.Value)
	case LiteralString:
		return "literalstring"
	case AlwaysTruthy:
		return "truthy"
	case AlwaysFalsy:
		return "falsy"
	case Instance:
		return "instance:" + t.Class.name
	case *UnionType:
		return t.key
	case *IntersectionType:
		return t.key
	default:
		panic("unexpected type in typeKey: " + t.String())
	}
}

func joinKeys(sb *strings.Builder, types []Type) {
	for i, t := range types {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(typeKey(t))
	}
}

// internUnion returns the unique UnionType with these elements, in this order
func (ctx *TypeCtx) internUnion(elements []Type) *UnionType {
	sb := &strings.Builder{}
	sb.WriteString("union(")
	joinKeys(sb, elements)
	sb.WriteString(")")
	key := sb.String()

	ctx.internMu.Lock()
	defer ctx.internMu.Unlock()
	if existing, ok := ctx.unions[key]; ok {
		return existing
	}
	u := &UnionType{elements: slices.Clip(slices.Clone(elements)), key: key}
	ctx.unions[key] = u
	return u
}

// internIntersection returns the unique IntersectionType with these
// positive and negative members, in this order
func (ctx *TypeCtx) internIntersection(positive, negative []Type) *IntersectionType {
	sb := &strings.Builder{}
	sb.WriteString("intersection(")
	joinKeys(sb, positive)
	sb.WriteString(";")
	joinKeys(sb, negative)
	sb.WriteString(")")
	key := sb.String()

	ctx.internMu.Lock()
	defer ctx.internMu.Unlock()
	if existing, ok := ctx.intersections[key]; ok {
		return existing
	}
	i := &IntersectionType{
		positive: slices.Clip(slices.Clone(positive)),
		negative: slices.Clip(slices.Clone(negative)),
		key:      key,
	}
	ctx.intersections[key] = i
	return i
}
