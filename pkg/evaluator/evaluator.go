// Package evaluator implements the function-calling core of metapath
// evaluation.
//
// Functions are immutable descriptors built with a Builder and kept in a
// Library. Calling one converts the argument sequences to the declared types,
// atomizing where an atomic type is required, and caches the results of
// deterministic functions in the DynamicContext of the evaluation.
//
// # Example
//
//	ev := evaluator.New()
//	result, err := ev.Call(ctx, "upper-case", []item.Sequence{item.Of(item.NewString("abc"))}, nil, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Concurrency
//
// Evaluators, libraries, functions and dynamic contexts are safe for
// concurrent use. Concurrent calls of a deterministic function with equal
// arguments on one dynamic context run its handler once.
package evaluator

import (
	"context"
	"log/slog"

	"github.com/sandrolain/gometapath/pkg/item"
	"github.com/sandrolain/gometapath/pkg/types"
)

// Evaluator resolves and calls functions.
type Evaluator struct {
	opts    EvalOptions
	logger  *slog.Logger
	library *Library
	metrics *Metrics
}

// EvalOptions configures evaluator behavior.
type EvalOptions struct {
	// Library resolves function names. Defaults to Builtins().
	Library *Library
	// Functions are added to a copy of Library, replacing functions with the
	// same name and arity.
	Functions []*Function
	// ResultCacheSize bounds the result cache of dynamic contexts created by
	// the evaluator. Defaults to DefaultResultCacheSize.
	ResultCacheSize int
	// Logger for structured logging.
	Logger *slog.Logger
	// Metrics receives execution observations. Defaults to DefaultMetrics.
	Metrics *Metrics
}

// EvalOption configures evaluator behavior.
type EvalOption func(*EvalOptions)

// New creates a new Evaluator with default options.
func New(opts ...EvalOption) *Evaluator {
	options := EvalOptions{
		ResultCacheSize: DefaultResultCacheSize,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Metrics == nil {
		options.Metrics = DefaultMetrics
	}

	library := options.Library
	if library == nil {
		library = Builtins()
	}
	if len(options.Functions) > 0 {
		library = library.Clone()
		for _, fn := range options.Functions {
			if fn == nil {
				continue
			}
			library.Set(fn)
		}
	}

	return &Evaluator{
		opts:    options,
		logger:  options.Logger,
		library: library,
		metrics: options.Metrics,
	}
}

// Library returns the library used to resolve function names.
func (e *Evaluator) Library() *Library {
	return e.library
}

// NewDynamicContext creates a dynamic context carrying the evaluator's
// logger, metrics and result cache size. opts are applied last.
func (e *Evaluator) NewDynamicContext(opts ...ContextOption) *DynamicContext {
	all := make([]ContextOption, 0, len(opts)+3)
	all = append(all,
		WithResultCacheSize(e.opts.ResultCacheSize),
		WithContextLogger(e.logger),
		WithContextMetrics(e.metrics),
	)
	return NewDynamicContext(append(all, opts...)...)
}

// Lookup returns the function called name that accepts arity arguments.
func (e *Evaluator) Lookup(name string, arity int) (*Function, error) {
	fn, ok := e.library.Lookup(name, arity)
	if !ok {
		return nil, types.Errorf(types.ErrUndefinedFunction,
			"no function '%s' accepting %d argument(s) is defined", name, arity)
	}
	return fn, nil
}

// Call resolves name by the number of args and executes the function. A nil
// dctx starts a new dynamic context scoped to this call.
func (e *Evaluator) Call(ctx context.Context, name string, args []item.Sequence, dctx *DynamicContext, focus item.Item) (item.Sequence, error) {
	fn, err := e.Lookup(name, len(args))
	if err != nil {
		return nil, err
	}
	if dctx == nil {
		dctx = e.NewDynamicContext()
	}
	return fn.Execute(ctx, args, dctx, focus)
}

// WithLibrary sets the library used to resolve function names.
func WithLibrary(library *Library) EvalOption {
	return func(opts *EvalOptions) {
		opts.Library = library
	}
}

// WithFunctions adds functions on top of the library.
func WithFunctions(fns ...*Function) EvalOption {
	return func(opts *EvalOptions) {
		opts.Functions = append(opts.Functions, fns...)
	}
}

// WithEvalResultCacheSize sets the result cache size of dynamic contexts
// created by the evaluator.
func WithEvalResultCacheSize(size int) EvalOption {
	return func(opts *EvalOptions) {
		opts.ResultCacheSize = size
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) EvalOption {
	return func(opts *EvalOptions) {
		opts.Logger = logger
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *Metrics) EvalOption {
	return func(opts *EvalOptions) {
		opts.Metrics = m
	}
}
