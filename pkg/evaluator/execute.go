package evaluator

import (
	"context"
	"time"

	"github.com/sandrolain/gometapath/pkg/item"
	"github.com/sandrolain/gometapath/pkg/types"
)

// Execute calls the function with the given arguments.
//
// Arguments are converted to the declared types first. Results of
// deterministic functions are cached in dctx under their calling context, so a
// repeated call with equal arguments (and an equal focus for focus-dependent
// functions) does not run the handler again. A nil dctx gets a fresh context
// for this call only.
//
// Every failure is reported as an ErrFunctionExecution error naming the
// signature and wrapping the underlying cause.
func (f *Function) Execute(ctx context.Context, args []item.Sequence, dctx *DynamicContext, focus item.Item) (item.Sequence, error) {
	if dctx == nil {
		dctx = NewDynamicContext()
	}

	start := time.Now()
	result, err := f.execute(ctx, args, dctx, focus)
	dctx.metrics.ObserveExecution(f.name, time.Since(start).Seconds(), err)
	if err != nil {
		return nil, types.Errorf(types.ErrFunctionExecution, "unable to execute function '%s'", f.Signature()).WithCause(err)
	}
	return result, nil
}

func (f *Function) execute(ctx context.Context, args []item.Sequence, dctx *DynamicContext, focus item.Item) (item.Sequence, error) {
	converted, err := ConvertArguments(f, args)
	if err != nil {
		return nil, err
	}

	if !f.IsDeterministic() {
		return f.invoke(ctx, converted, dctx, focus)
	}

	cc := NewCallingContext(f, converted, focus)
	if result, ok := dctx.CachedResult(cc); ok {
		dctx.logger.Debug("function result cache hit",
			"function", f.name,
			"signature", f.Signature(),
			"cached", true)
		return result, nil
	}
	return dctx.computeOnce(cc, func() (item.Sequence, error) {
		return f.invoke(ctx, converted, dctx, focus)
	})
}

func (f *Function) invoke(ctx context.Context, args []item.Sequence, dctx *DynamicContext, focus item.Item) (item.Sequence, error) {
	dctx.logger.Debug("executing function",
		"function", f.name,
		"signature", f.Signature(),
		"arguments", len(args),
		"cached", false)

	result, err := f.handler(ctx, f, args, dctx, focus)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return item.Empty(), nil
	}
	return result, nil
}

// ConvertArguments pairs args with the declared arguments of fn and converts
// each sequence to its declared type. When fn has unbounded arity, arguments
// past the declared ones reuse the last declared argument.
func ConvertArguments(fn *Function, args []item.Sequence) ([]item.Sequence, error) {
	declared := fn.arguments
	switch {
	case len(args) < len(declared):
		return nil, types.Errorf(types.ErrArityOrCardinality,
			"function '%s' requires %d argument(s), but %d were supplied", fn.name, len(declared), len(args))
	case len(args) > len(declared) && !fn.unbounded:
		return nil, types.Errorf(types.ErrArityOrCardinality,
			"function '%s' accepts %d argument(s), but %d were supplied", fn.name, len(declared), len(args))
	}

	converted := make([]item.Sequence, len(args))
	for i, seq := range args {
		arg := declared[min(i, len(declared)-1)]
		result, err := convertArgument(arg, seq)
		if err != nil {
			return nil, err
		}
		converted[i] = result
	}
	return converted, nil
}

func convertArgument(arg Argument, seq item.Sequence) (item.Sequence, error) {
	if err := item.CheckCardinality(seq, arg.Type.Occurrence); err != nil {
		return nil, argumentError(arg, err)
	}
	switch arg.Type.Occurrence {
	case item.One, item.ZeroOrOne:
		if len(seq) == 1 {
			seq = item.Of(seq[0])
		} else {
			seq = item.Empty()
		}
	}
	result, err := item.Convert(arg.Type.Type, seq)
	if err != nil {
		return nil, argumentError(arg, err)
	}
	return result, nil
}

// argumentError names the argument while keeping the cause's error code.
func argumentError(arg Argument, err error) error {
	code, ok := types.CodeOf(err)
	if !ok {
		code = types.ErrInvalidItemType
	}
	return types.Errorf(code, "invalid argument '%s'", arg.Name).WithCause(err)
}
