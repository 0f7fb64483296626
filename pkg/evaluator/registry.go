package evaluator

import (
	"slices"
	"strings"
	"sync"

	"github.com/sandrolain/gometapath/pkg/types"
)

// Library is a registry of functions keyed by name and arity.
//
// Safe for concurrent use by multiple goroutines.
type Library struct {
	mu        sync.RWMutex
	functions map[string][]*Function
}

// NewLibrary creates an empty library.
func NewLibrary() *Library {
	return &Library{functions: make(map[string][]*Function)}
}

// Register adds functions to the library. A function whose name and arity
// are already registered is rejected and nothing after it is added.
func (l *Library) Register(fns ...*Function) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, fn := range fns {
		if fn == nil {
			return types.NewError(types.ErrInvalidFunction, "cannot register a nil function")
		}
		if idx := l.indexLocked(fn); idx >= 0 {
			return types.Errorf(types.ErrInvalidFunction,
				"function '%s' is already registered as '%s'", fn.Signature(), l.functions[fn.name][idx].Signature())
		}
		l.functions[fn.name] = append(l.functions[fn.name], fn)
	}
	return nil
}

// Set adds fn, replacing a registered function with the same name and arity.
// A nil fn is ignored.
func (l *Library) Set(fn *Function) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if idx := l.indexLocked(fn); idx >= 0 {
		l.functions[fn.name][idx] = fn
		return
	}
	l.functions[fn.name] = append(l.functions[fn.name], fn)
}

func (l *Library) indexLocked(fn *Function) int {
	return slices.IndexFunc(l.functions[fn.name], func(other *Function) bool {
		return other.Arity() == fn.Arity() && other.unbounded == fn.unbounded
	})
}

// Lookup returns the function called name that accepts arity arguments.
// A function with exactly arity declared arguments wins over an unbounded one.
func (l *Library) Lookup(name string, arity int) (*Function, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var variadic *Function
	for _, fn := range l.functions[name] {
		if !fn.Accepts(arity) {
			continue
		}
		if !fn.unbounded {
			return fn, true
		}
		if variadic == nil || fn.Arity() > variadic.Arity() {
			variadic = fn
		}
	}
	return variadic, variadic != nil
}

// Functions returns all registered functions ordered by name, then arity.
func (l *Library) Functions() []*Function {
	l.mu.RLock()
	out := make([]*Function, 0, len(l.functions))
	for _, fns := range l.functions {
		out = append(out, fns...)
	}
	l.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Function) int {
		if c := strings.Compare(a.name, b.name); c != 0 {
			return c
		}
		return a.Arity() - b.Arity()
	})
	return out
}

// Len returns the number of registered functions.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := 0
	for _, fns := range l.functions {
		n += len(fns)
	}
	return n
}

// Clone returns an independent copy of the library.
func (l *Library) Clone() *Library {
	l.mu.RLock()
	defer l.mu.RUnlock()
	clone := &Library{functions: make(map[string][]*Function, len(l.functions))}
	for name, fns := range l.functions {
		clone.functions[name] = slices.Clone(fns)
	}
	return clone
}
