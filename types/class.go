package types

import (
	"github.com/xtgo/set"
	"sort"
)

// KnownClass identifies the classes the normaliser has rules for
type KnownClass int

const (
	notKnown KnownClass = iota
	KnownClassObject
	KnownClassInt
	KnownClassBool
	KnownClassStr
	KnownClassNoneType

	knownClassCount
)

func (k KnownClass) name() string {
	switch k {
	case KnownClassObject:
		return "object"
	case KnownClassInt:
		return "int"
	case KnownClassBool:
		return "bool"
	case KnownClassStr:
		return "str"
	case KnownClassNoneType:
		return "NoneType"
	default:
		return ""
	}
}

// Class is a nominal class. Classes are created by a TypeCtx and their name
// is unique within it.
type Class struct {
	name  string
	known KnownClass
	// final classes cannot be subclassed, which makes them disjoint
	// from every class they are not related to
	final bool
	bases []*Class
	// ancestors is the sorted set of the names of every class this class
	// inherits from, including itself
	ancestors []string
}

func newClass(name string, known KnownClass, final bool, bases []*Class) *Class {
	c := &Class{
		name:  name,
		known: known,
		final: final,
		bases: bases,
	}
	c.ancestors = []string{name}
	for _, base := range bases {
		c.ancestors = mergeAncestors(c.ancestors, base.ancestors)
	}
	return c
}

// mergeAncestors returns the sorted union of two sorted sets of class names
func mergeAncestors(left, right []string) []string {
	data := make([]string, 0, len(left)+len(right))
	data = append(data, left...)
	data = append(data, right...)
	size := set.Union(sort.StringSlice(data), len(left))
	return data[:size]
}

func (c *Class) Name() string {
	return c.name
}

func (c *Class) IsFinal() bool {
	return c.final
}

func (c *Class) Bases() []*Class {
	return c.bases
}

func (c *Class) IsKnown(k KnownClass) bool {
	return c.known == k
}

// IsSubclassOf is reflexive
func (c *Class) IsSubclassOf(other *Class) bool {
	i := sort.SearchStrings(c.ancestors, other.name)
	return i < len(c.ancestors) && c.ancestors[i] == other.name
}

func (c *Class) String() string {
	return c.name
}
