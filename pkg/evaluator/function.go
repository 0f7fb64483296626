package evaluator

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/sandrolain/gometapath/pkg/item"
)

// Property is a set of function properties.
type Property uint8

const (
	// Deterministic functions return equal results for equal calling
	// contexts; their results are cached in the dynamic context.
	Deterministic Property = 1 << iota
	// ContextDependent functions read the dynamic context.
	ContextDependent
	// FocusDependent functions read the focus; the focus becomes part of the
	// calling context.
	FocusDependent
)

// Has reports whether all properties in q are set in p.
func (p Property) Has(q Property) bool {
	return p&q == q
}

// String renders the set, e.g. "deterministic|focus-dependent".
func (p Property) String() string {
	var parts []string
	if p.Has(Deterministic) {
		parts = append(parts, "deterministic")
	}
	if p.Has(ContextDependent) {
		parts = append(parts, "context-dependent")
	}
	if p.Has(FocusDependent) {
		parts = append(parts, "focus-dependent")
	}
	return strings.Join(parts, "|")
}

// Argument is a named, typed function parameter.
type Argument struct {
	Name string
	Type item.SequenceType
}

// NewArgument creates an argument.
func NewArgument(name string, t item.Type, occ item.Occurrence) Argument {
	return Argument{Name: name, Type: item.NewSequenceType(t, occ)}
}

// Signature renders the argument's sequence type.
func (a Argument) Signature() string {
	return a.Type.Signature()
}

// Handler implements a function. args holds the converted argument sequences
// and focus is the current context item, which may be nil.
type Handler func(ctx context.Context, fn *Function, args []item.Sequence, dctx *DynamicContext, focus item.Item) (item.Sequence, error)

// functionIDs issues the identities used in calling-context keys.
var functionIDs atomic.Uint64

// Function is an immutable descriptor of a callable function. Build one with
// NewBuilder.
type Function struct {
	id         uint64
	name       string
	properties Property
	arguments  []Argument
	unbounded  bool
	result     item.SequenceType
	handler    Handler
}

// Name returns the function name.
func (f *Function) Name() string {
	return f.name
}

// Arguments returns a copy of the declared arguments.
func (f *Function) Arguments() []Argument {
	out := make([]Argument, len(f.arguments))
	copy(out, f.arguments)
	return out
}

// Arity returns the number of declared arguments.
func (f *Function) Arity() int {
	return len(f.arguments)
}

// IsArityUnbounded reports whether the last argument repeats.
func (f *Function) IsArityUnbounded() bool {
	return f.unbounded
}

// Result returns the result sequence type.
func (f *Function) Result() item.SequenceType {
	return f.result
}

// Properties returns the property set.
func (f *Function) Properties() Property {
	return f.properties
}

func (f *Function) IsDeterministic() bool    { return f.properties.Has(Deterministic) }
func (f *Function) IsContextDependent() bool { return f.properties.Has(ContextDependent) }
func (f *Function) IsFocusDependent() bool   { return f.properties.Has(FocusDependent) }

// Accepts reports whether the function can be called with arity arguments.
func (f *Function) Accepts(arity int) bool {
	if f.unbounded {
		return arity >= len(f.arguments)
	}
	return arity == len(f.arguments)
}

// String returns the function signature.
func (f *Function) String() string {
	return f.Signature()
}
