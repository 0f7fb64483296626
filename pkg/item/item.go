// Package item defines the runtime item model used by the metapath evaluator.
//
// An [Item] is either an atomic value or a node reference. Every item has
// exactly one runtime [Type], and the types form a lattice used to match items
// against function signatures:
//
//	item()
//	├── node()
//	│   ├── document-node()
//	│   ├── assembly()
//	│   ├── field()
//	│   └── flag()
//	└── xs:anyAtomicType
//	    ├── xs:string
//	    ├── xs:anyURI
//	    ├── xs:decimal
//	    │   └── xs:integer
//	    ├── xs:boolean
//	    └── xs:untypedAtomic
//
// Items are collected into a [Sequence], whose length is constrained by an
// [Occurrence]. A [SequenceType] pairs the two and drives [Convert], which
// applies atomization, promotion and subtype checks.
package item

import (
	"fmt"

	"github.com/sandrolain/gometapath/pkg/types"
)

// Item is a value produced or consumed during evaluation.
type Item interface {
	// ItemType returns the runtime subtype of the item.
	ItemType() Type
	// Key returns a canonical key. Two items are equal for caching purposes
	// iff their keys are equal.
	Key() string
}

// AnyAtomicItem is an item holding an atomic value.
type AnyAtomicItem interface {
	Item
	fmt.Stringer
	// Lexical returns the canonical lexical form of the value.
	Lexical() string
}

// AtomicValued is implemented by non-atomic items that carry a typed value,
// such as flag nodes and fields with a simple data type.
type AtomicValued interface {
	Item
	AtomicValue() (AnyAtomicItem, error)
}

// Atomize reduces an item to its underlying atomic value.
//
// Atomic items are returned unchanged. Items implementing [AtomicValued] return
// their projection. Anything else fails with [types.ErrNoTypedValue].
func Atomize(it Item) (AnyAtomicItem, error) {
	switch v := it.(type) {
	case AnyAtomicItem:
		return v, nil
	case AtomicValued:
		return v.AtomicValue()
	case nil:
		return nil, types.NewError(types.ErrNoTypedValue, "item '<nil>' has no typed value")
	default:
		return nil, types.Errorf(types.ErrNoTypedValue, "item '%s' has no typed value", it.ItemType())
	}
}

// AtomizeSequence atomizes every item of seq, preserving order.
func AtomizeSequence(seq Sequence) (Sequence, error) {
	if len(seq) == 0 {
		return Empty(), nil
	}
	out := make(Sequence, 0, len(seq))
	for _, it := range seq {
		a, err := Atomize(it)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
