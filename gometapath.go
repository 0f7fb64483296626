// Package gometapath evaluates metapath function calls against bound data.
//
// Metapath is an XPath-like query language over document trees whose nodes
// are assemblies (nodes with named children), fields (nodes with a typed
// value) and flags (named, typed attributes). This package is the entry point
// to the function-calling core: built-in and user functions are resolved by
// name and arity, their arguments are converted and atomized, and results of
// deterministic functions are cached per evaluation.
//
// # Quick Start
//
//	doc, err := node.NewDocument(catalogDef, catalog)
//	// base-uri of the document root
//	result, err := gometapath.Call(ctx, "base-uri", nil, doc.Root())
//
//	// Reuse an evaluator with custom functions
//	ev := gometapath.New(evaluator.WithFunctions(myFn))
//	result, err = ev.Call(ctx, "my-fn", args, nil, nil)
//
// # More Information
//
// For detailed documentation, see:
//   - Evaluator: github.com/sandrolain/gometapath/pkg/evaluator
//   - Items and sequences: github.com/sandrolain/gometapath/pkg/item
//   - Node model: github.com/sandrolain/gometapath/pkg/node
//   - Types: github.com/sandrolain/gometapath/pkg/types
package gometapath

import (
	"context"

	"github.com/sandrolain/gometapath/pkg/evaluator"
	"github.com/sandrolain/gometapath/pkg/item"
)

// Version returns the current version of gometapath.
func Version() string {
	return "v0.1.0-dev"
}

// New creates an evaluator. It is safe for concurrent use.
func New(opts ...evaluator.EvalOption) *evaluator.Evaluator {
	return evaluator.New(opts...)
}

// Call is a convenience function that resolves and executes a function in a
// single call, using a fresh dynamic context.
//
// For repeated calls that should share cached results, create an evaluator
// with New and pass the same dynamic context to each call.
//
// Example:
//
//	result, err := gometapath.Call(ctx, "data", nil, flag)
func Call(ctx context.Context, name string, args []item.Sequence, focus item.Item, opts ...evaluator.EvalOption) (item.Sequence, error) {
	return evaluator.New(opts...).Call(ctx, name, args, nil, focus)
}
