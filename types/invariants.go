package types

import (
	"fmt"
	"github.com/pkg/errors"
)

// validateUnion checks the invariants every interned union must satisfy
func validateUnion(ctx *TypeCtx, elements []Type) error {
	if len(elements) < 2 {
		return errors.Errorf("union must have at least two elements, has %d", len(elements))
	}
	for i, elem := range elements {
		switch elem.(type) {
		case *UnionType:
			return errors.Errorf("union contains nested union %s", elem)
		case Never:
			return errors.New("union contains Never")
		}
		for j, other := range elements {
			if i == j {
				continue
			}
			if elem == other || IsSameGradualForm(elem, other) {
				return errors.Errorf("union contains %s twice", elem)
			}
			if ctx.IsSubtype(elem, other) {
				return errors.Errorf("union contains %s, which is a subtype of its member %s", elem, other)
			}
		}
	}
	return nil
}

// validateIntersection checks the invariants every interned intersection must satisfy
func validateIntersection(ctx *TypeCtx, positive, negative []Type) error {
	if len(positive) == 0 && len(negative) == 0 {
		return errors.New("intersection must not be empty")
	}
	if len(positive) == 1 && len(negative) == 0 {
		return errors.Errorf("intersection of the single type %s", positive[0])
	}
	for _, members := range [][]Type{positive, negative} {
		for _, member := range members {
			switch member.(type) {
			case *UnionType:
				return errors.Errorf("intersection contains union %s", member)
			case *IntersectionType:
				return errors.Errorf("intersection contains nested intersection %s", member)
			}
		}
	}
	for _, pos := range positive {
		if isNever(pos) {
			return errors.New("intersection contains Never next to other members")
		}
	}
	for _, neg := range negative {
		if IsGradual(neg) {
			return errors.Errorf("intersection contains negated gradual type %s", neg)
		}
		for _, pos := range positive {
			if ctx.IsSubtype(pos, neg) {
				return errors.Errorf("intersection of %s and ~%s should be Never", pos, neg)
			}
			if ctx.IsDisjoint(pos, neg) {
				return errors.Errorf("~%s is redundant next to the disjoint %s", neg, pos)
			}
		}
	}
	for i, pos := range positive {
		for j, other := range positive {
			if i != j && (pos == other || ctx.IsSubtype(pos, other)) {
				return errors.Errorf("%s is redundant next to its subtype %s", other, pos)
			}
		}
	}
	for i, neg := range negative {
		for j, other := range negative {
			if i != j && (neg == other || ctx.IsSubtype(neg, other)) {
				return errors.Errorf("~%s is redundant next to ~%s", neg, other)
			}
		}
	}
	return nil
}

// mustBeValid panics on broken invariants, which are bugs in this package
func mustBeValid(err error) {
	if err != nil {
		panic(fmt.Sprintf("types: broken normal form invariant: %+v", err))
	}
}
