package evaluator_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/gometapath/pkg/evaluator"
	"github.com/sandrolain/gometapath/pkg/item"
	"github.com/sandrolain/gometapath/pkg/types"
)

// counting wraps a handler and counts its invocations.
func counting(calls *atomic.Int64, h evaluator.Handler) evaluator.Handler {
	return func(ctx context.Context, fn *evaluator.Function, args []item.Sequence, dctx *evaluator.DynamicContext, focus item.Item) (item.Sequence, error) {
		calls.Add(1)
		return h(ctx, fn, args, dctx, focus)
	}
}

func strings1(s string) []item.Sequence {
	return []item.Sequence{item.Of(item.NewString(s))}
}

func echoFunction(calls *atomic.Int64) *evaluator.Builder {
	return evaluator.NewBuilder("echo").
		Argument(evaluator.NewArgument("arg1", item.TypeString, item.One)).
		Returns(item.TypeString, item.One).
		Handler(counting(calls, identity))
}

func TestExecuteCachesDeterministicResults(t *testing.T) {
	var calls atomic.Int64
	fn := echoFunction(&calls).MustBuild()
	dctx := evaluator.NewDynamicContext()
	ctx := context.Background()

	first, err := fn.Execute(ctx, strings1("a"), dctx, nil)
	require.NoError(t, err)
	second, err := fn.Execute(ctx, strings1("a"), dctx, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, first.Key(), second.Key())
	assert.Equal(t, 1, dctx.Len())

	_, err = fn.Execute(ctx, strings1("b"), dctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
	assert.Equal(t, 2, dctx.Len())
}

func TestExecuteNonDeterministicAlwaysCalls(t *testing.T) {
	var calls atomic.Int64
	fn := echoFunction(&calls).NonDeterministic().MustBuild()
	dctx := evaluator.NewDynamicContext()

	for i := 0; i < 3; i++ {
		_, err := fn.Execute(context.Background(), strings1("a"), dctx, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(3), calls.Load())
	assert.Equal(t, 0, dctx.Len())
}

func TestExecuteFocusSensitivity(t *testing.T) {
	var calls atomic.Int64
	focusName := func(_ context.Context, _ *evaluator.Function, _ []item.Sequence, _ *evaluator.DynamicContext, focus item.Item) (item.Sequence, error) {
		return item.Of(focus), nil
	}
	ctx := context.Background()

	t.Run("focus-dependent", func(t *testing.T) {
		calls.Store(0)
		fn := evaluator.NewBuilder("focus").FocusDependent().Handler(counting(&calls, focusName)).MustBuild()
		dctx := evaluator.NewDynamicContext()

		a, err := fn.Execute(ctx, nil, dctx, item.NewString("A"))
		require.NoError(t, err)
		b, err := fn.Execute(ctx, nil, dctx, item.NewString("B"))
		require.NoError(t, err)
		_, err = fn.Execute(ctx, nil, dctx, item.NewString("A"))
		require.NoError(t, err)

		assert.Equal(t, "A", a.First().(item.AnyAtomicItem).Lexical())
		assert.Equal(t, "B", b.First().(item.AnyAtomicItem).Lexical())
		assert.Equal(t, int64(2), calls.Load())
		assert.Equal(t, 2, dctx.Len())
	})

	t.Run("focus-independent", func(t *testing.T) {
		calls.Store(0)
		fn := evaluator.NewBuilder("focus").Handler(counting(&calls, focusName)).MustBuild()
		dctx := evaluator.NewDynamicContext()

		a, err := fn.Execute(ctx, nil, dctx, item.NewString("A"))
		require.NoError(t, err)
		b, err := fn.Execute(ctx, nil, dctx, item.NewString("B"))
		require.NoError(t, err)

		assert.Equal(t, int64(1), calls.Load())
		assert.Equal(t, a.Key(), b.Key(), "the first result is reused")
		assert.Equal(t, 1, dctx.Len())
	})
}

func TestExecuteConvertsArguments(t *testing.T) {
	var seen item.Sequence
	fn := evaluator.NewBuilder("capture").
		Argument(evaluator.NewArgument("arg1", item.TypeString, item.One)).
		Handler(func(_ context.Context, _ *evaluator.Function, args []item.Sequence, _ *evaluator.DynamicContext, _ item.Item) (item.Sequence, error) {
			seen = args[0]
			return item.Empty(), nil
		}).
		MustBuild()

	_, err := fn.Execute(context.Background(), []item.Sequence{item.Of(item.MustURI("http://x"))}, nil, nil)
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, item.TypeString, seen[0].ItemType())
	assert.Equal(t, "http://x", seen[0].(item.AnyAtomicItem).Lexical())
}

func TestExecuteCardinalityViolation(t *testing.T) {
	var calls atomic.Int64
	fn := echoFunction(&calls).MustBuild()

	two := []item.Sequence{item.Of(item.NewString("a"), item.NewString("b"))}
	_, err := fn.Execute(context.Background(), two, nil, nil)
	require.Error(t, err)

	assert.True(t, types.HasCode(err, types.ErrFunctionExecution))
	assert.True(t, types.HasCode(err, types.ErrArityOrCardinality))
	code, _ := types.CodeOf(err)
	assert.Equal(t, types.ErrFunctionExecution, code)
	assert.Contains(t, err.Error(), "echo(xs:string) as xs:string")
	assert.Contains(t, err.Error(), "arg1")
	assert.Equal(t, int64(0), calls.Load())

	_, err = fn.Execute(context.Background(), []item.Sequence{item.Empty()}, nil, nil)
	assert.True(t, types.HasCode(err, types.ErrArityOrCardinality))
}

func TestExecuteArity(t *testing.T) {
	var calls atomic.Int64
	fn := echoFunction(&calls).MustBuild()
	ctx := context.Background()

	_, err := fn.Execute(ctx, nil, nil, nil)
	assert.True(t, types.HasCode(err, types.ErrArityOrCardinality), "too few")

	_, err = fn.Execute(ctx, append(strings1("a"), item.Of(item.NewString("b"))), nil, nil)
	assert.True(t, types.HasCode(err, types.ErrArityOrCardinality), "too many")
	assert.Equal(t, int64(0), calls.Load())
}

func TestExecuteUnboundedArity(t *testing.T) {
	fn := evaluator.NewBuilder("join").
		Argument(evaluator.NewArgument("first", item.TypeString, item.One)).
		Argument(evaluator.NewArgument("rest", item.TypeString, item.ZeroOrOne)).
		UnboundedArity().
		Returns(item.TypeString, item.One).
		Handler(func(_ context.Context, _ *evaluator.Function, args []item.Sequence, _ *evaluator.DynamicContext, _ item.Item) (item.Sequence, error) {
			var b strings.Builder
			for _, arg := range args {
				if s, ok := arg.First().(item.AnyAtomicItem); ok {
					b.WriteString(s.Lexical())
				}
			}
			return item.Of(item.NewString(b.String())), nil
		}).
		MustBuild()

	args := []item.Sequence{
		item.Of(item.NewString("a")),
		item.Of(item.MustURI("b")),
		item.Empty(),
		item.Of(item.NewUntypedAtomic("c")),
	}
	got, err := fn.Execute(context.Background(), args, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "abc", got.First().(item.AnyAtomicItem).Lexical())

	// extra arguments reuse the last declared type
	args = append(args, item.Of(item.NewString("d"), item.NewString("e")))
	_, err = fn.Execute(context.Background(), args, nil, nil)
	assert.True(t, types.HasCode(err, types.ErrArityOrCardinality))

	_, err = fn.Execute(context.Background(), []item.Sequence{item.Of(item.NewInteger(1)), item.Empty()}, nil, nil)
	assert.True(t, types.HasCode(err, types.ErrInvalidItemType))
}

func TestExecuteHandlerErrorNotCached(t *testing.T) {
	var calls atomic.Int64
	boom := errors.New("boom")
	fn := evaluator.NewBuilder("flaky").
		Handler(func(_ context.Context, _ *evaluator.Function, _ []item.Sequence, _ *evaluator.DynamicContext, _ item.Item) (item.Sequence, error) {
			if calls.Add(1) == 1 {
				return nil, boom
			}
			return item.Of(item.True), nil
		}).
		MustBuild()
	dctx := evaluator.NewDynamicContext()

	got, err := fn.Execute(context.Background(), nil, dctx, nil)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, boom)
	assert.True(t, types.HasCode(err, types.ErrFunctionExecution))
	assert.Contains(t, err.Error(), "unable to execute function 'flaky() as item()*'")
	assert.Equal(t, 0, dctx.Len())

	got, err = fn.Execute(context.Background(), nil, dctx, nil)
	require.NoError(t, err)
	assert.Equal(t, item.Of(item.True).Key(), got.Key())
	assert.Equal(t, int64(2), calls.Load())
}

func TestExecuteNilResultIsEmpty(t *testing.T) {
	fn := evaluator.NewBuilder("nothing").
		Handler(func(context.Context, *evaluator.Function, []item.Sequence, *evaluator.DynamicContext, item.Item) (item.Sequence, error) {
			return nil, nil
		}).
		MustBuild()

	got, err := fn.Execute(context.Background(), nil, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExecuteConcurrentCallsRunHandlerOnce(t *testing.T) {
	var calls atomic.Int64
	release := make(chan struct{})
	fn := evaluator.NewBuilder("slow").
		Argument(evaluator.NewArgument("arg1", item.TypeString, item.One)).
		Handler(counting(&calls, func(ctx context.Context, fn *evaluator.Function, args []item.Sequence, dctx *evaluator.DynamicContext, focus item.Item) (item.Sequence, error) {
			<-release
			return args[0], nil
		})).
		MustBuild()
	dctx := evaluator.NewDynamicContext()

	const workers = 16
	var (
		wg      sync.WaitGroup
		started sync.WaitGroup
		results = make([]item.Sequence, workers)
		errs    = make([]error, workers)
	)
	started.Add(workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			started.Done()
			results[i], errs[i] = fn.Execute(context.Background(), strings1("same"), dctx, nil)
		}(i)
	}
	started.Wait()
	close(release)
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load())
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0].Key(), results[i].Key())
	}
	assert.Equal(t, 1, dctx.Len())
}

func TestExecuteRecordsMetrics(t *testing.T) {
	metrics := evaluator.NewMetrics()
	registry := prometheus.NewRegistry()
	metrics.MustRegister(registry)

	var calls atomic.Int64
	fn := echoFunction(&calls).MustBuild()
	dctx := evaluator.NewDynamicContext(evaluator.WithContextMetrics(metrics))
	ctx := context.Background()

	_, err := fn.Execute(ctx, strings1("a"), dctx, nil)
	require.NoError(t, err)
	_, err = fn.Execute(ctx, strings1("a"), dctx, nil)
	require.NoError(t, err)
	_, err = fn.Execute(ctx, nil, dctx, nil)
	require.Error(t, err)

	expected := `
# HELP gometapath_function_result_cache_lookups_total Dynamic context result cache lookups by outcome.
# TYPE gometapath_function_result_cache_lookups_total counter
gometapath_function_result_cache_lookups_total{result="hit"} 1
gometapath_function_result_cache_lookups_total{result="miss"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected),
		"gometapath_function_result_cache_lookups_total"))

	// one series for successes, one for the failed call
	count, err := testutil.GatherAndCount(registry, "gometapath_function_execution_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestDynamicContext(t *testing.T) {
	fn := evaluator.NewBuilder("f").Handler(identity).MustBuild()
	dctx := evaluator.NewDynamicContext(evaluator.WithResultCacheSize(2))

	cc := func(s string) *evaluator.CallingContext {
		return evaluator.NewCallingContext(fn, strings1(s), nil)
	}

	_, ok := dctx.CachedResult(cc("a"))
	assert.False(t, ok)

	dctx.CacheResult(cc("a"), item.Of(item.NewString("A")))
	got, ok := dctx.CachedResult(cc("a"))
	require.True(t, ok)
	assert.Equal(t, "A", got.First().(item.AnyAtomicItem).Lexical())

	dctx.CacheResult(cc("b"), item.Empty())
	dctx.CacheResult(cc("c"), item.Empty())
	assert.Equal(t, 2, dctx.Len(), "bounded by the result cache size")
	assert.Equal(t, 2, dctx.Capacity())

	dctx.Forget(cc("c"))
	_, ok = dctx.CachedResult(cc("c"))
	assert.False(t, ok)
	assert.Equal(t, 1, dctx.Len())

	dctx.Clear()
	assert.Equal(t, 0, dctx.Len())
	assert.NotNil(t, dctx.Logger())
}

func TestExecuteAfterForgetRunsHandlerAgain(t *testing.T) {
	var calls atomic.Int64
	fn := echoFunction(&calls).MustBuild()
	dctx := evaluator.NewDynamicContext()
	ctx := context.Background()

	_, err := fn.Execute(ctx, strings1("a"), dctx, nil)
	require.NoError(t, err)
	_, err = fn.Execute(ctx, strings1("a"), dctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())

	dctx.Forget(evaluator.NewCallingContext(fn, strings1("a"), nil))
	got, err := fn.Execute(ctx, strings1("a"), dctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "a", got.First().(item.AnyAtomicItem).Lexical())
	assert.Equal(t, int64(2), calls.Load())
}
