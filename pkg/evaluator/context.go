package evaluator

import (
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/sandrolain/gometapath/pkg/cache"
	"github.com/sandrolain/gometapath/pkg/item"
)

// DefaultResultCacheSize bounds the result cache of a dynamic context when no
// size is configured.
const DefaultResultCacheSize = 4096

// DynamicContext holds the state of one evaluation: the results of
// deterministic function calls keyed by calling context.
//
// A DynamicContext is safe for concurrent use. Concurrent calls sharing a
// calling context run the function handler once; the other callers receive
// the same result.
type DynamicContext struct {
	results  *cache.Cache[item.Sequence]
	inflight singleflight.Group
	logger   *slog.Logger
	metrics  *Metrics
}

// ContextOptions configures a DynamicContext.
type ContextOptions struct {
	// ResultCacheSize bounds the number of cached results.
	// Defaults to DefaultResultCacheSize.
	ResultCacheSize int
	// Logger for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
	// Metrics receives cache and execution observations.
	// Defaults to DefaultMetrics.
	Metrics *Metrics
}

// ContextOption configures a DynamicContext.
type ContextOption func(*ContextOptions)

// WithResultCacheSize sets the maximum number of cached results.
func WithResultCacheSize(size int) ContextOption {
	return func(opts *ContextOptions) {
		opts.ResultCacheSize = size
	}
}

// WithContextLogger sets the logger used while executing functions.
func WithContextLogger(logger *slog.Logger) ContextOption {
	return func(opts *ContextOptions) {
		opts.Logger = logger
	}
}

// WithContextMetrics sets the metrics sink.
func WithContextMetrics(m *Metrics) ContextOption {
	return func(opts *ContextOptions) {
		opts.Metrics = m
	}
}

// NewDynamicContext creates an empty dynamic context.
func NewDynamicContext(opts ...ContextOption) *DynamicContext {
	options := ContextOptions{
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

	return &DynamicContext{
		results: cache.New[item.Sequence](options.ResultCacheSize),
		logger:  options.Logger,
		metrics: options.Metrics,
	}
}

// Logger returns the context logger.
func (c *DynamicContext) Logger() *slog.Logger {
	return c.logger
}

// CachedResult returns the cached result for cc.
func (c *DynamicContext) CachedResult(cc *CallingContext) (item.Sequence, bool) {
	result, ok := c.results.Get(cc.Key())
	c.metrics.ObserveCacheLookup(ok)
	return result, ok
}

// CacheResult stores result for cc, replacing any previous entry.
func (c *DynamicContext) CacheResult(cc *CallingContext, result item.Sequence) {
	c.results.Set(cc.Key(), result)
}

// Forget drops the cached result for cc, so the next call runs the handler.
func (c *DynamicContext) Forget(cc *CallingContext) {
	c.results.Invalidate(cc.Key())
}

// Len returns the number of cached results.
func (c *DynamicContext) Len() int {
	return c.results.Len()
}

// Capacity returns the maximum number of cached results.
func (c *DynamicContext) Capacity() int {
	return c.results.Capacity()
}

// Clear drops every cached result.
func (c *DynamicContext) Clear() {
	c.results.Clear()
}

// computeOnce returns the cached result for cc or runs compute, caching a
// successful result. Concurrent callers with an equal calling context share a
// single compute call. Errors are returned to every waiting caller and are
// not cached.
func (c *DynamicContext) computeOnce(cc *CallingContext, compute func() (item.Sequence, error)) (item.Sequence, error) {
	key := cc.Key()
	v, err, _ := c.inflight.Do(key, func() (interface{}, error) {
		// a call that finished between the lookup and Do has already stored its result
		return c.results.GetOrLoad(key, compute)
	})
	if err != nil {
		return nil, err
	}
	return v.(item.Sequence), nil
}
