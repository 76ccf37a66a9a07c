package types

import (
	"github.com/cottand/dnf/util"
)

// The builders below are the only way of producing unions and intersections.
// They keep the following invariants:
//   - there are no single-element unions, and no intersections with a single
//     positive element and no negative ones: the element is returned instead
//   - the same type never appears twice in a union or an intersection, and a
//     union never holds a subtype of one of its other members
//   - types are in disjunctive normal form (DNF): unions do not nest unions,
//     intersections do not nest intersections, and intersections never hold
//     a union, because intersecting with a union distributes over it
//
// This means that a UnionBuilder does not necessarily build a *UnionType, and
// an IntersectionBuilder may well build a union of intersections.

// UnionBuilder accumulates the members of a union.
//
// Add returns the receiver so that calls can be chained. A builder must not be
// used after Build.
type UnionBuilder struct {
	ctx      *TypeCtx
	elements []Type
}

func NewUnionBuilder(ctx *TypeCtx) *UnionBuilder {
	return &UnionBuilder{ctx: ctx}
}

// Add adds ty to the union, unless the union already includes it
func (b *UnionBuilder) Add(ty Type) *UnionBuilder {
	switch ty := ty.(type) {
	case *UnionType:
		for _, elem := range ty.elements {
			b.Add(elem)
		}
		return b
	case Never:
		return b
	}

	var boolPair Type
	if lit, ok := ty.(BooleanLiteral); ok {
		boolPair = BooleanLiteral{Value: !lit.Value}
	}

	var toRemove []int
	for i, elem := range b.elements {
		if boolPair != nil && elem == boolPair {
			// Literal[True] | Literal[False] is bool. Adding bool itself
			// also drops any other member that bool now covers.
			b.elements = removeIndices(b.elements, append(toRemove, i))
			return b.Add(b.ctx.Bool())
		}
		if IsSameGradualForm(ty, elem) || b.ctx.IsSubtype(ty, elem) {
			return b
		}
		if b.ctx.IsSubtype(elem, ty) {
			toRemove = append(toRemove, i)
		}
	}
	b.elements = removeIndices(b.elements, toRemove)
	b.elements = append(b.elements, ty)
	return b
}

func (b *UnionBuilder) Build() Type {
	switch len(b.elements) {
	case 0:
		return Never{}
	case 1:
		return b.elements[0]
	default:
		if debugAssertions {
			mustBeValid(validateUnion(b.ctx, b.elements))
		}
		b.ctx.metrics.UnionBuilt()
		return b.ctx.internUnion(b.elements)
	}
}

// UnionOf builds the union of elements
func UnionOf(ctx *TypeCtx, elements ...Type) Type {
	b := NewUnionBuilder(ctx)
	for _, elem := range elements {
		b.Add(elem)
	}
	return b.Build()
}

// removeIndices removes the elements at the given ascending positions,
// preserving the order of the rest
func removeIndices(elements []Type, indices []int) []Type {
	if len(indices) == 0 {
		return elements
	}
	kept := elements[:0]
	next := 0
	for i, elem := range elements {
		if next < len(indices) && indices[next] == i {
			next++
			continue
		}
		kept = append(kept, elem)
	}
	clear(elements[len(kept):])
	return kept
}

// IntersectionBuilder accumulates positive and negative contributions to an
// intersection.
//
// It really builds a union of intersections: adding a union to an intersection
// distributes the intersection over it, so the builder holds one conjunction
// per resulting disjunct. In the common case there is a single one.
//
// AddPositive and AddNegative may return a different builder than the
// receiver, so callers must always continue with the returned one.
type IntersectionBuilder struct {
	ctx          *TypeCtx
	conjunctions []*conjunction
}

// NewIntersectionBuilder returns a builder for the empty intersection,
// which is object
func NewIntersectionBuilder(ctx *TypeCtx) *IntersectionBuilder {
	return &IntersectionBuilder{
		ctx:          ctx,
		conjunctions: []*conjunction{newConjunction()},
	}
}

// emptyIntersectionBuilder holds no conjunctions at all, so it builds Never.
// Distribution starts from it and collects the conjunctions of each disjunct.
func emptyIntersectionBuilder(ctx *TypeCtx) *IntersectionBuilder {
	return &IntersectionBuilder{ctx: ctx}
}

func (b *IntersectionBuilder) clone() *IntersectionBuilder {
	return &IntersectionBuilder{ctx: b.ctx, conjunctions: util.CopyAll(b.conjunctions)}
}

func (b *IntersectionBuilder) merge(sub *IntersectionBuilder) {
	b.conjunctions = append(b.conjunctions, sub.conjunctions...)
}

// AddPositive intersects the builder with ty
func (b *IntersectionBuilder) AddPositive(ty Type) *IntersectionBuilder {
	if union, ok := ty.(*UnionType); ok {
		// distribute over the union: (T1 & T2) & (T3 | T4) is
		// (T1 & T2 & T3) | (T1 & T2 & T4), and if we already are a union
		// of intersections every one of them gets distributed
		result := emptyIntersectionBuilder(b.ctx)
		for _, elem := range union.elements {
			result.merge(b.clone().AddPositive(elem))
		}
		b.ctx.logger.Debug("intersection: distributed over union", "union", union, "conjunctions", len(result.conjunctions))
		b.ctx.metrics.Distributed(len(result.conjunctions))
		return result
	}
	for _, c := range b.conjunctions {
		c.addPositive(b.ctx, ty)
	}
	return b
}

// AddNegative intersects the builder with the complement of ty
func (b *IntersectionBuilder) AddNegative(ty Type) *IntersectionBuilder {
	switch ty := ty.(type) {
	case *UnionType:
		// ~(A | B) is ~A & ~B, so there is nothing to distribute
		for _, elem := range ty.elements {
			b = b.AddNegative(elem)
		}
		return b
	case *IntersectionType:
		// X & ~(C & ~D) is X & (~C | D), which is (X & ~C) | (X & D):
		// every positive member is negated and every negative one becomes
		// positive, each in a copy of the builder
		result := emptyIntersectionBuilder(b.ctx)
		for _, pos := range ty.positive {
			result.merge(b.clone().AddNegative(pos))
		}
		for _, neg := range ty.negative {
			result.merge(b.clone().AddPositive(neg))
		}
		b.ctx.logger.Debug("intersection: distributed negated intersection", "intersection", ty, "conjunctions", len(result.conjunctions))
		b.ctx.metrics.Distributed(len(result.conjunctions))
		return result
	default:
		for _, c := range b.conjunctions {
			c.addNegative(b.ctx, ty)
		}
		return b
	}
}

func (b *IntersectionBuilder) Build() Type {
	if len(b.conjunctions) == 1 {
		return b.conjunctions[0].build(b.ctx)
	}
	union := NewUnionBuilder(b.ctx)
	for _, c := range b.conjunctions {
		union.Add(c.build(b.ctx))
	}
	return union.Build()
}

// conjunction is a single intersection: the positive members ANDed with
// the complements of the negative members
type conjunction struct {
	positive *util.OrderSet[Type]
	negative *util.OrderSet[Type]
}

func newConjunction() *conjunction {
	return &conjunction{
		positive: util.NewOrderSet[Type](),
		negative: util.NewOrderSet[Type](),
	}
}

func (c *conjunction) Copy() *conjunction {
	return &conjunction{
		positive: c.positive.Copy(),
		negative: c.negative.Copy(),
	}
}

// resetTo discards everything in the conjunction and leaves only, which is
// what the conjunction was found to be equivalent to
func (c *conjunction) resetTo(only Type) {
	c.positive = util.NewOrderSet(only)
	c.negative = util.NewOrderSet[Type]()
}

func (c *conjunction) collapseToNever(ctx *TypeCtx, cause Type) {
	ctx.logger.Debug("conjunction: unsatisfiable", "positive", c.positive, "negative", c.negative, "adding", cause)
	ctx.metrics.CollapsedToNever()
	c.resetTo(Never{})
}

// splitBool resolves bool & ~splitter to the boolean literal splitter does not cover
func (c *conjunction) splitBool(ctx *TypeCtx, splitter Type) {
	resolved := BooleanLiteral{Value: TruthinessOf(splitter) != AlwaysTrue}
	ctx.logger.Debug("conjunction: split bool", "negated", splitter, "resolved", resolved)
	ctx.metrics.SplitBool()
	c.resetTo(resolved)
}

func (c *conjunction) addPositive(ctx *TypeCtx, newPositive Type) {
	if inter, ok := newPositive.(*IntersectionType); ok {
		for _, pos := range inter.positive {
			c.addPositive(ctx, pos)
		}
		for _, neg := range inter.negative {
			c.addNegative(ctx, neg)
		}
		return
	}

	// bool & ~Literal[True] = Literal[False]
	// bool & ~AlwaysTruthy = Literal[False]
	if inst, ok := newPositive.(Instance); ok && inst.Class.IsKnown(KnownClassBool) {
		for neg := range c.negative.Items() {
			if IsBooleanLiteral(neg) || isTruthinessMarker(neg) {
				c.splitBool(ctx, neg)
				return
			}
		}
	}

	var toRemove []int
	for i, existing := range c.positive.All() {
		// S & T = S    if S <: T
		if ctx.IsSubtype(existing, newPositive) || IsSameGradualForm(existing, newPositive) {
			return
		}
		// same rule, reverse order
		if ctx.IsSubtype(newPositive, existing) {
			toRemove = append(toRemove, i)
		}
		// A & B = Never    if A and B are disjoint
		if ctx.IsDisjoint(newPositive, existing) {
			c.collapseToNever(ctx, newPositive)
			return
		}
	}
	c.positive.RemoveIndices(toRemove)

	toRemove = toRemove[:0]
	for i, existing := range c.negative.All() {
		// S & ~T = Never    if S <: T
		if ctx.IsSubtype(newPositive, existing) {
			c.collapseToNever(ctx, newPositive)
			return
		}
		// A & ~B = A    if A and B are disjoint
		if ctx.IsDisjoint(existing, newPositive) {
			toRemove = append(toRemove, i)
		}
	}
	c.negative.RemoveIndices(toRemove)

	c.positive.Insert(newPositive)
}

func (c *conjunction) addNegative(ctx *TypeCtx, newNegative Type) {
	switch ty := newNegative.(type) {
	case *IntersectionType:
		for _, pos := range ty.positive {
			c.addNegative(ctx, pos)
		}
		for _, neg := range ty.negative {
			c.addPositive(ctx, neg)
		}
		return
	case Any, Unknown, Todo:
		// the complement of a gradual type is that same gradual type, and
		// keeping it on the positive side gives a single representation
		c.addPositive(ctx, ty)
		return
	}

	// bool & ~Literal[True] = Literal[False]
	// bool & ~AlwaysTruthy = Literal[False]
	if (IsBooleanLiteral(newNegative) || isTruthinessMarker(newNegative)) && c.positive.Contains(ctx.Bool()) {
		c.splitBool(ctx, newNegative)
		return
	}

	var toRemove []int
	for i, existing := range c.negative.All() {
		// ~S & ~T = ~T    if S <: T
		if ctx.IsSubtype(existing, newNegative) {
			toRemove = append(toRemove, i)
		}
		// same rule, reverse order
		if ctx.IsSubtype(newNegative, existing) {
			return
		}
	}
	c.negative.RemoveIndices(toRemove)

	for existing := range c.positive.Items() {
		// S & ~T = Never    if S <: T
		if ctx.IsSubtype(existing, newNegative) {
			c.collapseToNever(ctx, newNegative)
			return
		}
		// A & ~B = A    if A and B are disjoint
		if ctx.IsDisjoint(existing, newNegative) {
			return
		}
	}

	c.negative.Insert(newNegative)
}

func (c *conjunction) build(ctx *TypeCtx) Type {
	switch {
	case c.positive.Len() == 0 && c.negative.Len() == 0:
		return ctx.Object()
	case c.positive.Len() == 1 && c.negative.Len() == 0:
		return c.positive.At(0)
	default:
		positive, negative := c.positive.Slice(), c.negative.Slice()
		if debugAssertions {
			mustBeValid(validateIntersection(ctx, positive, negative))
		}
		ctx.metrics.IntersectionBuilt()
		return ctx.internIntersection(positive, negative)
	}
}
