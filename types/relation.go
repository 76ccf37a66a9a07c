package types

// IsSubtype reports whether every value of ty is also a value of target.
//
// Gradual types are neither subtypes nor supertypes of anything, themselves
// included, so that the builders never simplify them away. Use IsSameGradualForm
// to deduplicate them instead.
// The relation is conservative: false means "could not prove it".
func (ctx *TypeCtx) IsSubtype(ty, target Type) bool {
	if IsGradual(ty) || IsGradual(target) {
		return false
	}
	if ty == target {
		return true
	}
	if isNever(ty) {
		return true
	}
	if isNever(target) {
		return false
	}
	if ctx.isObject(target) {
		return true
	}

	if union, ok := ty.(*UnionType); ok {
		for _, elem := range union.elements {
			if !ctx.IsSubtype(elem, target) {
				return false
			}
		}
		return true
	}
	if inter, ok := target.(*IntersectionType); ok {
		for _, pos := range inter.positive {
			if !ctx.IsSubtype(ty, pos) {
				return false
			}
		}
		for _, neg := range inter.negative {
			if !ctx.IsDisjoint(ty, neg) {
				return false
			}
		}
		return true
	}
	if inter, ok := ty.(*IntersectionType); ok {
		for _, pos := range inter.positive {
			if ctx.IsSubtype(pos, target) {
				return true
			}
		}
		return false
	}
	if union, ok := target.(*UnionType); ok {
		for _, elem := range union.elements {
			if ctx.IsSubtype(ty, elem) {
				return true
			}
		}
		return false
	}

	switch target := target.(type) {
	case AlwaysTruthy:
		return TruthinessOf(ty) == AlwaysTrue
	case AlwaysFalsy:
		return TruthinessOf(ty) == AlwaysFalse
	case LiteralString:
		_, ok := ty.(StringLiteral)
		return ok
	case Instance:
		if class, ok := ctx.literalClass(ty); ok {
			return class.IsSubclassOf(target.Class)
		}
		if inst, ok := ty.(Instance); ok {
			return inst.Class.IsSubclassOf(target.Class)
		}
	}
	return false
}

// IsDisjoint reports whether no value can be both a and b.
//
// Never is disjoint from everything, gradual types are disjoint from nothing.
func (ctx *TypeCtx) IsDisjoint(a, b Type) bool {
	if isNever(a) || isNever(b) {
		return true
	}
	if IsGradual(a) || IsGradual(b) {
		return false
	}

	if union, ok := a.(*UnionType); ok {
		return ctx.unionDisjoint(union, b)
	}
	if union, ok := b.(*UnionType); ok {
		return ctx.unionDisjoint(union, a)
	}
	if inter, ok := a.(*IntersectionType); ok {
		return ctx.intersectionDisjoint(inter, b)
	}
	if inter, ok := b.(*IntersectionType); ok {
		return ctx.intersectionDisjoint(inter, a)
	}

	if isTruthinessMarker(a) {
		return ctx.truthinessMarkerDisjoint(a, b)
	}
	if isTruthinessMarker(b) {
		return ctx.truthinessMarkerDisjoint(b, a)
	}

	if a == b {
		return false
	}
	if isLiteral(a) && isLiteral(b) {
		// literals are singletons, and we know they are not equal
		return true
	}
	if _, ok := a.(LiteralString); ok {
		return ctx.literalStringDisjoint(b)
	}
	if _, ok := b.(LiteralString); ok {
		return ctx.literalStringDisjoint(a)
	}

	instA, aIsInstance := a.(Instance)
	instB, bIsInstance := b.(Instance)
	switch {
	case aIsInstance && bIsInstance:
		if instA.Class.IsSubclassOf(instB.Class) || instB.Class.IsSubclassOf(instA.Class) {
			return false
		}
		// a class which is not final could have a subclass which also subclasses the other
		return instA.Class.final || instB.Class.final
	case aIsInstance:
		class, _ := ctx.literalClass(b)
		return !class.IsSubclassOf(instA.Class)
	case bIsInstance:
		class, _ := ctx.literalClass(a)
		return !class.IsSubclassOf(instB.Class)
	}
	return false
}

func (ctx *TypeCtx) unionDisjoint(union *UnionType, other Type) bool {
	for _, elem := range union.elements {
		if !ctx.IsDisjoint(elem, other) {
			return false
		}
	}
	return true
}

func (ctx *TypeCtx) intersectionDisjoint(inter *IntersectionType, other Type) bool {
	for _, pos := range inter.positive {
		if ctx.IsDisjoint(pos, other) {
			return true
		}
	}
	for _, neg := range inter.negative {
		// other is entirely excluded by the intersection
		if ctx.IsSubtype(other, neg) {
			return true
		}
	}
	return false
}

func (ctx *TypeCtx) truthinessMarkerDisjoint(marker, other Type) bool {
	switch marker.(type) {
	case AlwaysTruthy:
		return TruthinessOf(other) == AlwaysFalse
	case AlwaysFalsy:
		return TruthinessOf(other) == AlwaysTrue
	default:
		return false
	}
}

// literalStringDisjoint is IsDisjoint(LiteralString{}, other), for other neither
// a truthiness marker nor a union or intersection
func (ctx *TypeCtx) literalStringDisjoint(other Type) bool {
	switch other := other.(type) {
	case StringLiteral, LiteralString:
		return false
	case IntLiteral, BooleanLiteral:
		return true
	case Instance:
		return !ctx.known[KnownClassStr].IsSubclassOf(other.Class)
	default:
		return false
	}
}
