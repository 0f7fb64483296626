package item

import (
	"io"
	"strings"
)

// Sequence is an ordered, possibly empty list of items. A sequence is created
// fresh for each evaluation step and is never mutated after construction.
type Sequence []Item

// Empty returns the empty sequence.
func Empty() Sequence {
	return Sequence{}
}

// Of returns a sequence holding items in order.
func Of(items ...Item) Sequence {
	if len(items) == 0 {
		return Empty()
	}
	seq := make(Sequence, len(items))
	copy(seq, items)
	return seq
}

// Len returns the number of items.
func (s Sequence) Len() int {
	return len(s)
}

// IsEmpty reports whether the sequence has no items.
func (s Sequence) IsEmpty() bool {
	return len(s) == 0
}

// First returns the first item, or nil for the empty sequence.
func (s Sequence) First() Item {
	if len(s) == 0 {
		return nil
	}
	return s[0]
}

// Key returns the canonical key of the sequence, composed of its items' keys.
func (s Sequence) Key() string {
	var b strings.Builder
	s.WriteKey(&b)
	return b.String()
}

// WriteKey appends the canonical key of the sequence to b.
func (s Sequence) WriteKey(b io.StringWriter) {
	b.WriteString("(")
	for i, it := range s {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(it.Key())
	}
	b.WriteString(")")
}

// String renders the sequence for diagnostics.
func (s Sequence) String() string {
	var b strings.Builder
	b.WriteString("(")
	for i, it := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		if a, ok := it.(AnyAtomicItem); ok {
			b.WriteString(a.Lexical())
		} else {
			b.WriteString(it.Key())
		}
	}
	b.WriteString(")")
	return b.String()
}
