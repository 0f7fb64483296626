package evaluator

import (
	"context"

	"github.com/sandrolain/gometapath/pkg/item"
	"github.com/sandrolain/gometapath/pkg/node"
	"github.com/sandrolain/gometapath/pkg/types"
)

var fnBaseURIFocus = NewBuilder("base-uri").
	ContextDependent().
	FocusDependent().
	Returns(item.TypeAnyURI, item.ZeroOrOne).
	Handler(func(_ context.Context, _ *Function, _ []item.Sequence, _ *DynamicContext, focus item.Item) (item.Sequence, error) {
		if focus == nil {
			return item.Empty(), nil
		}
		n, ok := focus.(node.Node)
		if !ok {
			return nil, types.Errorf(types.ErrInvalidItemType,
				"the focus of type '%s' is not a node", focus.ItemType())
		}
		return baseURI(n)
	}).
	MustBuild()

var fnBaseURIArg = NewBuilder("base-uri").
	Argument(NewArgument("arg1", item.TypeNode, item.ZeroOrOne)).
	Returns(item.TypeAnyURI, item.ZeroOrOne).
	Handler(func(_ context.Context, _ *Function, args []item.Sequence, _ *DynamicContext, _ item.Item) (item.Sequence, error) {
		n, ok := args[0].First().(node.Node)
		if !ok {
			return item.Empty(), nil
		}
		return baseURI(n)
	}).
	MustBuild()

func baseURI(n node.Node) (item.Sequence, error) {
	uri := n.BaseURI()
	if uri == "" {
		return item.Empty(), nil
	}
	u, err := item.NewURI(uri)
	if err != nil {
		return nil, err
	}
	return item.Of(u), nil
}
