package evaluator

import (
	"context"

	"github.com/sandrolain/gometapath/pkg/item"
)

// data() atomizes the focus.
var fnDataFocus = NewBuilder("data").
	Deterministic().
	ContextDependent().
	FocusDependent().
	Returns(item.TypeAnyAtomic, item.ZeroOrOne).
	Handler(dataOfFocus).
	MustBuild()

// data($arg1 as item()*) atomizes every item of its argument.
var fnDataArg = NewBuilder("data").
	Deterministic().
	ContextIndependent().
	FocusIndependent().
	Argument(NewArgument("arg1", item.TypeItem, item.ZeroOrMore)).
	Returns(item.TypeAnyAtomic, item.ZeroOrMore).
	Handler(dataOfArgument).
	MustBuild()

func dataOfFocus(_ context.Context, _ *Function, _ []item.Sequence, _ *DynamicContext, focus item.Item) (item.Sequence, error) {
	if focus == nil {
		return item.Empty(), nil
	}
	atomic, err := item.Atomize(focus)
	if err != nil {
		return nil, err
	}
	return item.Of(atomic), nil
}

func dataOfArgument(_ context.Context, _ *Function, args []item.Sequence, _ *DynamicContext, _ item.Item) (item.Sequence, error) {
	return item.AtomizeSequence(args[0])
}
