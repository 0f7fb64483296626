package evaluator

import (
	"context"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sandrolain/gometapath/pkg/item"
)

var fnStringFocus = NewBuilder("string").
	ContextDependent().
	FocusDependent().
	Returns(item.TypeString, item.One).
	Handler(func(_ context.Context, _ *Function, _ []item.Sequence, _ *DynamicContext, focus item.Item) (item.Sequence, error) {
		return stringValue(focus)
	}).
	MustBuild()

var fnStringArg = NewBuilder("string").
	Argument(NewArgument("arg1", item.TypeItem, item.ZeroOrOne)).
	Returns(item.TypeString, item.One).
	Handler(func(_ context.Context, _ *Function, args []item.Sequence, _ *DynamicContext, _ item.Item) (item.Sequence, error) {
		return stringValue(args[0].First())
	}).
	MustBuild()

var fnConcat = NewBuilder("concat").
	Argument(NewArgument("arg1", item.TypeAnyAtomic, item.ZeroOrOne)).
	Argument(NewArgument("arg2", item.TypeAnyAtomic, item.ZeroOrOne)).
	UnboundedArity().
	Returns(item.TypeString, item.One).
	Handler(concat).
	MustBuild()

var fnUpperCase = NewBuilder("upper-case").
	Argument(NewArgument("arg1", item.TypeString, item.ZeroOrOne)).
	Returns(item.TypeString, item.One).
	Handler(func(_ context.Context, _ *Function, args []item.Sequence, _ *DynamicContext, _ item.Item) (item.Sequence, error) {
		// a Caser keeps state and must not be shared between goroutines
		return item.Of(item.NewString(cases.Upper(language.Und).String(lexical(args[0])))), nil
	}).
	MustBuild()

var fnLowerCase = NewBuilder("lower-case").
	Argument(NewArgument("arg1", item.TypeString, item.ZeroOrOne)).
	Returns(item.TypeString, item.One).
	Handler(func(_ context.Context, _ *Function, args []item.Sequence, _ *DynamicContext, _ item.Item) (item.Sequence, error) {
		return item.Of(item.NewString(cases.Lower(language.Und).String(lexical(args[0])))), nil
	}).
	MustBuild()

var fnStringLength = NewBuilder("string-length").
	Argument(NewArgument("arg1", item.TypeString, item.ZeroOrOne)).
	Returns(item.TypeInteger, item.One).
	Handler(func(_ context.Context, _ *Function, args []item.Sequence, _ *DynamicContext, _ item.Item) (item.Sequence, error) {
		n := utf8.RuneCountInString(lexical(args[0]))
		return item.Of(item.NewInteger(int64(n))), nil
	}).
	MustBuild()

// stringValue returns the string value of it; an absent item yields "".
func stringValue(it item.Item) (item.Sequence, error) {
	if it == nil {
		return item.Of(item.NewString("")), nil
	}
	atomic, err := item.Atomize(it)
	if err != nil {
		return nil, err
	}
	return item.Of(item.NewString(atomic.Lexical())), nil
}

func concat(_ context.Context, _ *Function, args []item.Sequence, _ *DynamicContext, _ item.Item) (item.Sequence, error) {
	var b strings.Builder
	for _, arg := range args {
		b.WriteString(lexical(arg))
	}
	return item.Of(item.NewString(b.String())), nil
}

// lexical returns the lexical form of an optional atomic argument.
func lexical(seq item.Sequence) string {
	if atomic, ok := seq.First().(item.AnyAtomicItem); ok {
		return atomic.Lexical()
	}
	return ""
}
