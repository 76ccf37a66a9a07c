package types

// Truthiness is how values of a type behave under boolean coercion
type Truthiness int

const (
	Ambiguous Truthiness = iota
	AlwaysTrue
	AlwaysFalse
)

func (t Truthiness) String() string {
	switch t {
	case AlwaysTrue:
		return "always-true"
	case AlwaysFalse:
		return "always-false"
	default:
		return "ambiguous"
	}
}

// Negate is the truthiness of `not x`
func (t Truthiness) Negate() Truthiness {
	switch t {
	case AlwaysTrue:
		return AlwaysFalse
	case AlwaysFalse:
		return AlwaysTrue
	default:
		return Ambiguous
	}
}

func truthinessFromBool(b bool) Truthiness {
	if b {
		return AlwaysTrue
	}
	return AlwaysFalse
}

// TruthinessOf classifies the values of t as always truthy, always falsy or either
func TruthinessOf(t Type) Truthiness {
	switch t := t.(type) {
	case AlwaysTruthy:
		return AlwaysTrue
	case AlwaysFalsy:
		return AlwaysFalse
	case BooleanLiteral:
		return truthinessFromBool(t.Value)
	case IntLiteral:
		return truthinessFromBool(t.Value != 0)
	case StringLiteral:
		return truthinessFromBool(t.Value != "")
	case Instance:
		if t.Class.IsKnown(KnownClassNoneType) {
			return AlwaysFalse
		}
		return Ambiguous
	case *UnionType:
		first := TruthinessOf(t.elements[0])
		for _, elem := range t.elements[1:] {
			if TruthinessOf(elem) != first {
				return Ambiguous
			}
		}
		return first
	case *IntersectionType:
		for _, pos := range t.positive {
			if truthiness := TruthinessOf(pos); truthiness != Ambiguous {
				return truthiness
			}
		}
		for _, neg := range t.negative {
			// excluding every truthy value leaves only falsy ones, and vice versa
			if isTruthinessMarker(neg) {
				return TruthinessOf(neg).Negate()
			}
		}
		return Ambiguous
	default:
		return Ambiguous
	}
}

// Negate returns the complement of t: every value which is not of type t
func (ctx *TypeCtx) Negate(t Type) Type {
	return NewIntersectionBuilder(ctx).AddNegative(t).Build()
}
