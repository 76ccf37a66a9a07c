package types

import (
	"cmp"
	"github.com/benbjohnson/immutable"
	"github.com/cottand/dnf/internal/log"
	"github.com/cottand/dnf/internal/metrics"
	"github.com/pkg/errors"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
)

// TypeCtx owns the classes and the interned unions and intersections
// that types refer to.
//
// It is safe to use the same TypeCtx from several goroutines: builders are
// owned by a single caller, and they only share the TypeCtx, whose interning
// tables are locked and whose class registry is a persistent map that readers
// load without locking.
type TypeCtx struct {
	classes atomic.Pointer[immutable.Map[string, *Class]]
	// classMu serialises writers of classes
	classMu sync.Mutex
	known   [knownClassCount]*Class

	internMu      sync.Mutex
	unions        map[string]*UnionType
	intersections map[string]*IntersectionType

	logger  *slog.Logger
	metrics *metrics.Normalization
}

// NewTypeCtx returns a TypeCtx which knows about the builtin classes
// object, int, bool, str and NoneType
func NewTypeCtx() *TypeCtx {
	ctx := &TypeCtx{
		unions:        make(map[string]*UnionType),
		intersections: make(map[string]*IntersectionType),
		logger:        log.DefaultLogger.With("section", "types.builder"),
	}
	object := newClass(KnownClassObject.name(), KnownClassObject, false, nil)
	integer := newClass(KnownClassInt.name(), KnownClassInt, false, []*Class{object})
	boolean := newClass(KnownClassBool.name(), KnownClassBool, true, []*Class{integer})
	str := newClass(KnownClassStr.name(), KnownClassStr, false, []*Class{object})
	none := newClass(KnownClassNoneType.name(), KnownClassNoneType, true, []*Class{object})

	classes := immutable.NewMap[string, *Class](nil)
	for _, class := range []*Class{object, integer, boolean, str, none} {
		ctx.known[class.known] = class
		classes = classes.Set(class.name, class)
	}
	ctx.classes.Store(classes)
	return ctx
}

// UseMetrics makes builders over this TypeCtx count their work into m.
// It should be called before the TypeCtx is shared.
func (ctx *TypeCtx) UseMetrics(m *metrics.Normalization) {
	ctx.metrics = m
}

// DefineClass registers a new class. Classes without bases inherit from object.
func (ctx *TypeCtx) DefineClass(name string, final bool, bases ...*Class) (*Class, error) {
	if name == "" {
		return nil, errors.New("class name cannot be empty")
	}
	ctx.classMu.Lock()
	defer ctx.classMu.Unlock()

	classes := ctx.classes.Load()
	if _, exists := classes.Get(name); exists {
		return nil, errors.Errorf("class %s is already defined", name)
	}
	for _, base := range bases {
		if registered, ok := classes.Get(base.name); !ok || registered != base {
			return nil, errors.Errorf("base class %s of %s is not defined in this context", base.name, name)
		}
		if base.final {
			return nil, errors.Errorf("class %s cannot subclass final class %s", name, base.name)
		}
	}
	if len(bases) == 0 {
		bases = []*Class{ctx.known[KnownClassObject]}
	}
	class := newClass(name, notKnown, final, bases)
	ctx.classes.Store(classes.Set(name, class))
	ctx.logger.Debug("defined class", "class", name, "final", final, "ancestors", class.ancestors)
	return class, nil
}

func (ctx *TypeCtx) LookupClass(name string) (*Class, bool) {
	return ctx.classes.Load().Get(name)
}

// Classes returns every class of this TypeCtx, sorted by name
func (ctx *TypeCtx) Classes() []*Class {
	classes := ctx.classes.Load()
	result := make([]*Class, 0, classes.Len())
	itr := classes.Iterator()
	for !itr.Done() {
		_, class, _ := itr.Next()
		result = append(result, class)
	}
	slices.SortFunc(result, func(a, b *Class) int {
		return cmp.Compare(a.name, b.name)
	})
	return result
}

func (ctx *TypeCtx) KnownClass(k KnownClass) *Class {
	return ctx.known[k]
}

// KnownInstance returns the type of instances of a known class
func (ctx *TypeCtx) KnownInstance(k KnownClass) Type {
	return Instance{Class: ctx.known[k]}
}

// Object is the top type
func (ctx *TypeCtx) Object() Type { return ctx.KnownInstance(KnownClassObject) }
func (ctx *TypeCtx) Bool() Type   { return ctx.KnownInstance(KnownClassBool) }
func (ctx *TypeCtx) Int() Type    { return ctx.KnownInstance(KnownClassInt) }
func (ctx *TypeCtx) Str() Type    { return ctx.KnownInstance(KnownClassStr) }
func (ctx *TypeCtx) None() Type   { return ctx.KnownInstance(KnownClassNoneType) }

func (ctx *TypeCtx) isObject(t Type) bool {
	inst, ok := t.(Instance)
	return ok && inst.Class.IsKnown(KnownClassObject)
}

// literalClass is the class whose instances include t, for literal types
func (ctx *TypeCtx) literalClass(t Type) (*Class, bool) {
	switch t.(type) {
	case IntLiteral:
		return ctx.known[KnownClassInt], true
	case BooleanLiteral:
		return ctx.known[KnownClassBool], true
	case StringLiteral, LiteralString:
		return ctx.known[KnownClassStr], true
	default:
		return nil, false
	}
}
