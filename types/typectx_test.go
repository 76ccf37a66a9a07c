package types

import (
	"fmt"
	"github.com/cottand/dnf/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
)

func TestKnownClasses(t *testing.T) {
	ctx := NewTypeCtx()

	assert.Equal(t, "object", ctx.Object().String())
	assert.Equal(t, "int", ctx.Int().String())
	assert.Equal(t, "bool", ctx.Bool().String())
	assert.Equal(t, "str", ctx.Str().String())
	assert.Equal(t, "None", ctx.None().String())

	boolean := ctx.KnownClass(KnownClassBool)
	assert.True(t, boolean.IsFinal())
	assert.True(t, boolean.IsSubclassOf(ctx.KnownClass(KnownClassInt)))
	assert.True(t, boolean.IsSubclassOf(ctx.KnownClass(KnownClassObject)))
	assert.False(t, boolean.IsSubclassOf(ctx.KnownClass(KnownClassStr)))
	assert.False(t, ctx.KnownClass(KnownClassInt).IsFinal())

	none, ok := ctx.LookupClass("NoneType")
	require.True(t, ok)
	assert.Same(t, ctx.KnownClass(KnownClassNoneType), none)
}

func TestDefineClass(t *testing.T) {
	ctx := NewTypeCtx()

	a, err := ctx.DefineClass("A", false)
	require.NoError(t, err)
	b, err := ctx.DefineClass("B", false)
	require.NoError(t, err)
	c, err := ctx.DefineClass("C", true, a, b)
	require.NoError(t, err)

	assert.Equal(t, []*Class{ctx.KnownClass(KnownClassObject)}, a.Bases())
	assert.Equal(t, []*Class{a, b}, c.Bases())
	assert.True(t, c.IsSubclassOf(a))
	assert.True(t, c.IsSubclassOf(b))
	assert.True(t, c.IsSubclassOf(ctx.KnownClass(KnownClassObject)))
	assert.False(t, a.IsSubclassOf(c))
	assert.True(t, c.IsFinal())

	found, ok := ctx.LookupClass("C")
	require.True(t, ok)
	assert.Same(t, c, found)

	_, ok = ctx.LookupClass("D")
	assert.False(t, ok)
}

func TestDefineClassErrors(t *testing.T) {
	ctx := NewTypeCtx()
	final, err := ctx.DefineClass("Final", true)
	require.NoError(t, err)
	foreign, err := NewTypeCtx().DefineClass("Foreign", false)
	require.NoError(t, err)

	testCases := []struct {
		name    string
		class   string
		bases   []*Class
		message string
	}{
		{name: "empty name", class: "", message: "class name cannot be empty"},
		{name: "redefined", class: "Final", message: "class Final is already defined"},
		{name: "builtin redefined", class: "int", message: "class int is already defined"},
		{name: "final base", class: "Sub", bases: []*Class{final}, message: "class Sub cannot subclass final class Final"},
		{name: "builtin final base", class: "MyBool", bases: []*Class{ctx.KnownClass(KnownClassBool)}, message: "class MyBool cannot subclass final class bool"},
		{name: "base from another context", class: "Sub", bases: []*Class{foreign}, message: "base class Foreign of Sub is not defined in this context"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := ctx.DefineClass(testCase.class, false, testCase.bases...)
			assert.EqualError(t, err, testCase.message)
		})
	}
}

func TestClassesAreSorted(t *testing.T) {
	ctx := NewTypeCtx()
	for _, name := range []string{"Zebra", "Apple", "Mango"} {
		_, err := ctx.DefineClass(name, false)
		require.NoError(t, err)
	}

	var names []string
	for _, class := range ctx.Classes() {
		names = append(names, class.Name())
	}
	assert.Equal(t, []string{"Apple", "Mango", "NoneType", "Zebra", "bool", "int", "object", "str"}, names)
}

func TestInstanceString(t *testing.T) {
	ctx := NewTypeCtx()
	a := defineInstance(t, ctx, "A")

	testCases := []struct {
		ty       Type
		expected string
	}{
		{ty: Never{}, expected: "Never"},
		{ty: Any{}, expected: "Any"},
		{ty: Unknown{}, expected: "Unknown"},
		{ty: Todo{}, expected: "@Todo"},
		{ty: Todo{Reason: "generics"}, expected: "@Todo(generics)"},
		{ty: IntLiteral{Value: -2}, expected: "Literal[-2]"},
		{ty: StringLiteral{Value: "a\"b"}, expected: `Literal["a\"b"]`},
		{ty: BooleanLiteral{Value: false}, expected: "Literal[False]"},
		{ty: LiteralString{}, expected: "LiteralString"},
		{ty: AlwaysTruthy{}, expected: "AlwaysTruthy"},
		{ty: AlwaysFalsy{}, expected: "AlwaysFalsy"},
		{ty: a, expected: "A"},
		{ty: UnionOf(ctx, a, ctx.None()), expected: "A | None"},
		{ty: ctx.Negate(a), expected: "~A"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.expected, func(t *testing.T) {
			assert.Equal(t, testCase.expected, testCase.ty.String())
		})
	}
}

func TestTypeCtxIsSafeForConcurrentUse(t *testing.T) {
	ctx := NewTypeCtx()
	a := defineInstance(t, ctx, "A")

	const workers = 8
	unions := make([]Type, workers)
	intersections := make([]Type, workers)
	wg := sync.WaitGroup{}
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ctx.DefineClass(fmt.Sprintf("Worker%d", i), false)
			assert.NoError(t, err)
			unions[i] = UnionOf(ctx, a, IntLiteral{Value: 1}, ctx.None())
			intersections[i] = NewIntersectionBuilder(ctx).
				AddPositive(a).
				AddNegative(UnionOf(ctx, ctx.Bool(), ctx.Str())).
				Build()
		}()
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Same(t, unions[0], unions[i])
		assert.Same(t, intersections[0], intersections[i])
	}
	// five builtins, A and one class per worker
	assert.Len(t, ctx.Classes(), 5+1+workers)
}

func TestMetricsCountNormalisation(t *testing.T) {
	ctx := NewTypeCtx()
	m := metrics.New()
	ctx.UseMetrics(m)
	a := defineInstance(t, ctx, "A")
	b := defineInstance(t, ctx, "B")
	c := defineInstance(t, ctx, "C")

	// one union, then distributed into two conjunctions which build two
	// intersections and a second union
	union := UnionOf(ctx, a, b)
	NewIntersectionBuilder(ctx).AddPositive(union).AddNegative(c).Build()
	// a disjoint collapse
	NewIntersectionBuilder(ctx).AddPositive(IntLiteral{Value: 1}).AddPositive(ctx.Str()).Build()
	// a bool split
	NewIntersectionBuilder(ctx).AddPositive(ctx.Bool()).AddNegative(BooleanLiteral{Value: true}).Build()

	samples, err := m.Snapshot()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, sample := range samples {
		values[sample.Name] = sample.Value
	}
	assert.Equal(t, map[string]float64{
		"dnf_bool_splits_total":              1,
		"dnf_distributed_conjunctions_total": 2,
		"dnf_intersections_built_total":      2,
		"dnf_never_collapses_total":          1,
		"dnf_unions_built_total":             2,
	}, values)
}
