package evaluator

import (
	"sync"
)

var (
	builtinLibrary     *Library
	builtinLibraryOnce sync.Once
)

// Builtins returns the shared library of built-in functions. It is built on
// first use; callers that need to add functions should Clone it first.
func Builtins() *Library {
	builtinLibraryOnce.Do(func() {
		lib := NewLibrary()
		err := lib.Register(
			// Atomization
			fnDataFocus,
			fnDataArg,

			// String functions
			fnStringFocus,
			fnStringArg,
			fnConcat,
			fnUpperCase,
			fnLowerCase,
			fnStringLength,

			// Sequence functions
			fnCount,
			fnEmpty,
			fnExists,

			// Node functions
			fnBaseURIFocus,
			fnBaseURIArg,
		)
		if err != nil {
			panic("evaluator: invalid built-in library: " + err.Error())
		}
		builtinLibrary = lib
	})
	return builtinLibrary
}
