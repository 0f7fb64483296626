package evaluator

import (
	"github.com/sandrolain/gometapath/pkg/item"
	"github.com/sandrolain/gometapath/pkg/types"
)

// Builder assembles a Function. New builders describe a deterministic,
// context- and focus-independent function returning item()*.
//
//	fn := evaluator.NewBuilder("upper-case").
//	    Argument(evaluator.NewArgument("arg1", item.TypeString, item.ZeroOrOne)).
//	    Returns(item.TypeString, item.One).
//	    Handler(fnUpperCase).
//	    MustBuild()
type Builder struct {
	name       string
	properties Property
	arguments  []Argument
	unbounded  bool
	result     item.SequenceType
	handler    Handler
}

// NewBuilder starts a function description.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:       name,
		properties: Deterministic,
		result:     item.NewSequenceType(item.TypeItem, item.ZeroOrMore),
	}
}

func (b *Builder) Deterministic() *Builder {
	b.properties |= Deterministic
	return b
}

func (b *Builder) NonDeterministic() *Builder {
	b.properties &^= Deterministic
	return b
}

func (b *Builder) ContextDependent() *Builder {
	b.properties |= ContextDependent
	return b
}

func (b *Builder) ContextIndependent() *Builder {
	b.properties &^= ContextDependent
	return b
}

func (b *Builder) FocusDependent() *Builder {
	b.properties |= FocusDependent
	return b
}

func (b *Builder) FocusIndependent() *Builder {
	b.properties &^= FocusDependent
	return b
}

// Argument appends a declared argument.
func (b *Builder) Argument(arg Argument) *Builder {
	b.arguments = append(b.arguments, arg)
	return b
}

// UnboundedArity lets the last argument's type repeat for extra arguments.
func (b *Builder) UnboundedArity() *Builder {
	b.unbounded = true
	return b
}

// Returns sets the result sequence type.
func (b *Builder) Returns(t item.Type, occ item.Occurrence) *Builder {
	b.result = item.NewSequenceType(t, occ)
	return b
}

// Handler sets the implementation.
func (b *Builder) Handler(h Handler) *Builder {
	b.handler = h
	return b
}

// Build validates the description and returns the function.
func (b *Builder) Build() (*Function, error) {
	if b.name == "" {
		return nil, types.NewError(types.ErrInvalidFunction, "function name is required")
	}
	if b.handler == nil {
		return nil, types.Errorf(types.ErrInvalidFunction, "function '%s' has no handler", b.name)
	}
	if b.unbounded && len(b.arguments) == 0 {
		return nil, types.Errorf(types.ErrInvalidFunction,
			"function '%s' has unbounded arity but declares no argument", b.name)
	}

	arguments := make([]Argument, len(b.arguments))
	copy(arguments, b.arguments)
	return &Function{
		id:         functionIDs.Add(1),
		name:       b.name,
		properties: b.properties,
		arguments:  arguments,
		unbounded:  b.unbounded,
		result:     b.result,
		handler:    b.handler,
	}, nil
}

// MustBuild is like Build but panics on an invalid description. It simplifies
// safe initialization of package-level function variables.
func (b *Builder) MustBuild() *Function {
	fn, err := b.Build()
	if err != nil {
		panic("evaluator: " + err.Error())
	}
	return fn
}
