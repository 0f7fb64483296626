package evaluator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/gometapath/pkg/evaluator"
	"github.com/sandrolain/gometapath/pkg/item"
	"github.com/sandrolain/gometapath/pkg/types"
)

func identity(_ context.Context, _ *evaluator.Function, args []item.Sequence, _ *evaluator.DynamicContext, _ item.Item) (item.Sequence, error) {
	if len(args) == 0 {
		return item.Empty(), nil
	}
	return args[0], nil
}

func TestBuilderDefaults(t *testing.T) {
	fn, err := evaluator.NewBuilder("f").Handler(identity).Build()
	require.NoError(t, err)

	assert.Equal(t, "f", fn.Name())
	assert.True(t, fn.IsDeterministic())
	assert.False(t, fn.IsContextDependent())
	assert.False(t, fn.IsFocusDependent())
	assert.False(t, fn.IsArityUnbounded())
	assert.Equal(t, 0, fn.Arity())
	assert.Equal(t, item.NewSequenceType(item.TypeItem, item.ZeroOrMore), fn.Result())
	assert.Equal(t, "deterministic", fn.Properties().String())
}

func TestBuilderProperties(t *testing.T) {
	fn := evaluator.NewBuilder("f").
		NonDeterministic().
		ContextDependent().
		FocusDependent().
		Handler(identity).
		MustBuild()

	assert.False(t, fn.IsDeterministic())
	assert.True(t, fn.IsContextDependent())
	assert.True(t, fn.IsFocusDependent())
	assert.Equal(t, "context-dependent|focus-dependent", fn.Properties().String())

	fn = evaluator.NewBuilder("f").
		ContextDependent().ContextIndependent().
		FocusDependent().FocusIndependent().
		NonDeterministic().Deterministic().
		Handler(identity).
		MustBuild()
	assert.Equal(t, evaluator.Deterministic, fn.Properties())
}

func TestBuilderValidation(t *testing.T) {
	tests := []struct {
		name    string
		builder *evaluator.Builder
	}{
		{"missing name", evaluator.NewBuilder("").Handler(identity)},
		{"missing handler", evaluator.NewBuilder("f")},
		{"unbounded without arguments", evaluator.NewBuilder("f").UnboundedArity().Handler(identity)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Build()
			assert.True(t, types.HasCode(err, types.ErrInvalidFunction), "got %v", err)
			assert.Panics(t, func() { tt.builder.MustBuild() })
		})
	}
}

func TestBuilderCopiesArguments(t *testing.T) {
	b := evaluator.NewBuilder("f").
		Argument(evaluator.NewArgument("a", item.TypeString, item.One)).
		Handler(identity)
	first := b.MustBuild()
	b.Argument(evaluator.NewArgument("b", item.TypeString, item.One))
	second := b.MustBuild()

	assert.Equal(t, 1, first.Arity())
	assert.Equal(t, 2, second.Arity())

	args := first.Arguments()
	args[0].Name = "changed"
	assert.Equal(t, "a", first.Arguments()[0].Name)
}

func TestSignature(t *testing.T) {
	tests := []struct {
		name string
		fn   *evaluator.Function
		want string
	}{
		{
			"no arguments",
			evaluator.NewBuilder("data").Returns(item.TypeAnyAtomic, item.ZeroOrOne).Handler(identity).MustBuild(),
			"data() as xs:anyAtomicType?",
		},
		{
			"typed arguments",
			evaluator.NewBuilder("substring").
				Argument(evaluator.NewArgument("source", item.TypeString, item.ZeroOrOne)).
				Argument(evaluator.NewArgument("start", item.TypeDecimal, item.One)).
				Returns(item.TypeString, item.One).
				Handler(identity).
				MustBuild(),
			"substring(xs:string?,xs:decimal) as xs:string",
		},
		{
			"unbounded",
			evaluator.NewBuilder("concat").
				Argument(evaluator.NewArgument("arg1", item.TypeAnyAtomic, item.ZeroOrOne)).
				Argument(evaluator.NewArgument("arg2", item.TypeAnyAtomic, item.ZeroOrOne)).
				UnboundedArity().
				Returns(item.TypeString, item.One).
				Handler(identity).
				MustBuild(),
			"concat(xs:anyAtomicType?,xs:anyAtomicType?, ...) as xs:string",
		},
		{
			"empty result",
			evaluator.NewBuilder("noop").
				Argument(evaluator.NewArgument("nodes", item.TypeNode, item.OneOrMore)).
				Returns(item.TypeItem, item.Zero).
				Handler(identity).
				MustBuild(),
			"noop(node()+) as empty-sequence()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn.Signature())
			assert.Equal(t, tt.want, tt.fn.String())
		})
	}
}

func TestAccepts(t *testing.T) {
	fixed := evaluator.NewBuilder("f").
		Argument(evaluator.NewArgument("a", item.TypeItem, item.ZeroOrMore)).
		Handler(identity).
		MustBuild()
	assert.True(t, fixed.Accepts(1))
	assert.False(t, fixed.Accepts(0))
	assert.False(t, fixed.Accepts(2))

	variadic := evaluator.NewBuilder("f").
		Argument(evaluator.NewArgument("a", item.TypeItem, item.ZeroOrMore)).
		UnboundedArity().
		Handler(identity).
		MustBuild()
	assert.False(t, variadic.Accepts(0))
	assert.True(t, variadic.Accepts(1))
	assert.True(t, variadic.Accepts(9))
}

func TestCallingContext(t *testing.T) {
	fn := evaluator.NewBuilder("f").
		Argument(evaluator.NewArgument("a", item.TypeString, item.One)).
		Handler(identity).
		MustBuild()
	twin := evaluator.NewBuilder("f").
		Argument(evaluator.NewArgument("a", item.TypeString, item.One)).
		Handler(identity).
		MustBuild()
	focused := evaluator.NewBuilder("g").FocusDependent().Handler(identity).MustBuild()

	args := func(s string) []item.Sequence { return []item.Sequence{item.Of(item.NewString(s))} }

	a := evaluator.NewCallingContext(fn, args("x"), item.NewInteger(1))
	b := evaluator.NewCallingContext(fn, args("x"), item.NewInteger(2))
	assert.True(t, a.Equal(b), "focus is ignored for focus-independent functions")
	assert.Nil(t, a.Focus())
	assert.Same(t, fn, a.Function())
	assert.Len(t, a.Arguments(), 1)

	assert.False(t, a.Equal(evaluator.NewCallingContext(fn, args("y"), nil)))
	assert.False(t, a.Equal(evaluator.NewCallingContext(twin, args("x"), nil)), "functions have distinct identities")

	f1 := evaluator.NewCallingContext(focused, nil, item.NewInteger(1))
	f2 := evaluator.NewCallingContext(focused, nil, item.NewInteger(2))
	fNil := evaluator.NewCallingContext(focused, nil, nil)
	assert.False(t, f1.Equal(f2))
	assert.False(t, f1.Equal(fNil))
	assert.True(t, f1.Equal(evaluator.NewCallingContext(focused, nil, item.NewInteger(1))))

	var none *evaluator.CallingContext
	assert.False(t, a.Equal(none))
	assert.True(t, none.Equal(nil))
}
