package evaluator

import (
	"strconv"

	"github.com/sandrolain/gometapath/pkg/item"
)

// CallingContext identifies one call of a deterministic function: the
// function, its converted arguments and, for focus-dependent functions, the
// focus. Two calling contexts are equal when their keys are equal.
type CallingContext struct {
	function  *Function
	arguments []item.Sequence
	focus     item.Item
	key       string
}

// NewCallingContext builds the calling context of fn for already converted
// arguments. The focus is ignored unless fn is focus-dependent.
func NewCallingContext(fn *Function, arguments []item.Sequence, focus item.Item) *CallingContext {
	cc := &CallingContext{function: fn, arguments: arguments}

	buf := acquireBuf()
	defer releaseBuf(buf)

	buf.WriteString(fn.name)
	buf.WriteByte('#')
	buf.WriteString(strconv.FormatUint(fn.id, 10))
	for _, arg := range arguments {
		buf.WriteByte('|')
		arg.WriteKey(buf)
	}
	if fn.IsFocusDependent() {
		cc.focus = focus
		buf.WriteString("|@")
		if focus != nil {
			buf.WriteString(focus.Key())
		}
	}
	cc.key = buf.String()
	return cc
}

// Function returns the called function.
func (c *CallingContext) Function() *Function {
	return c.function
}

// Arguments returns the converted argument sequences.
func (c *CallingContext) Arguments() []item.Sequence {
	return c.arguments
}

// Focus returns the focus, or nil when the function is focus-independent.
func (c *CallingContext) Focus() item.Item {
	return c.focus
}

// Key returns the canonical cache key.
func (c *CallingContext) Key() string {
	return c.key
}

// Equal reports whether both calling contexts denote the same call.
func (c *CallingContext) Equal(other *CallingContext) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.key == other.key
}
