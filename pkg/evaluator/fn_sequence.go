package evaluator

import (
	"context"

	"github.com/sandrolain/gometapath/pkg/item"
)

var fnCount = NewBuilder("count").
	Argument(NewArgument("arg1", item.TypeItem, item.ZeroOrMore)).
	Returns(item.TypeInteger, item.One).
	Handler(func(_ context.Context, _ *Function, args []item.Sequence, _ *DynamicContext, _ item.Item) (item.Sequence, error) {
		return item.Of(item.NewInteger(int64(args[0].Len()))), nil
	}).
	MustBuild()

var fnEmpty = NewBuilder("empty").
	Argument(NewArgument("arg1", item.TypeItem, item.ZeroOrMore)).
	Returns(item.TypeBoolean, item.One).
	Handler(func(_ context.Context, _ *Function, args []item.Sequence, _ *DynamicContext, _ item.Item) (item.Sequence, error) {
		return item.Of(item.NewBoolean(args[0].IsEmpty())), nil
	}).
	MustBuild()

var fnExists = NewBuilder("exists").
	Argument(NewArgument("arg1", item.TypeItem, item.ZeroOrMore)).
	Returns(item.TypeBoolean, item.One).
	Handler(func(_ context.Context, _ *Function, args []item.Sequence, _ *DynamicContext, _ item.Item) (item.Sequence, error) {
		return item.Of(item.NewBoolean(!args[0].IsEmpty())), nil
	}).
	MustBuild()
