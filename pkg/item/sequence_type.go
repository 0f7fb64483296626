package item

import (
	"github.com/sandrolain/gometapath/pkg/types"
)

// SequenceType pairs a required item type with an occurrence.
type SequenceType struct {
	Type       Type
	Occurrence Occurrence
}

// NewSequenceType creates a sequence type.
func NewSequenceType(t Type, occ Occurrence) SequenceType {
	return SequenceType{Type: t, Occurrence: occ}
}

// Signature renders the sequence type, e.g. "xs:string?" or "item()*".
func (st SequenceType) Signature() string {
	if st.Occurrence == Zero {
		return "empty-sequence()"
	}
	return st.Type.String() + st.Occurrence.Indicator()
}

// String implements fmt.Stringer.
func (st SequenceType) String() string {
	return st.Signature()
}

// Matches reports whether seq satisfies both the cardinality and the item
// type without any conversion.
func (st SequenceType) Matches(seq Sequence) bool {
	if !st.Occurrence.Allows(len(seq)) {
		return false
	}
	for _, it := range seq {
		if !it.ItemType().IsSubtypeOf(st.Type) {
			return false
		}
	}
	return true
}

// Convert applies the function conversion rules to seq for the required item
// type.
//
// The empty sequence converts to the empty sequence. Otherwise each item is
// atomized when required is atomic, promoted (xs:anyURI to xs:string,
// xs:untypedAtomic to the required atomic type) and finally checked to be a
// subtype of required. Item order is preserved.
func Convert(required Type, seq Sequence) (Sequence, error) {
	if len(seq) == 0 {
		return Empty(), nil
	}

	atomize := required.IsAtomic()
	out := make(Sequence, 0, len(seq))
	for _, it := range seq {
		if it == nil {
			return nil, types.Errorf(types.ErrInvalidItemType,
				"a nil item is not a subtype of '%s'", required)
		}
		if atomize {
			a, err := Atomize(it)
			if err != nil {
				return nil, err
			}
			a, err = promote(a, required)
			if err != nil {
				return nil, err
			}
			it = a
		}

		if actual := it.ItemType(); !actual.IsSubtypeOf(required) {
			return nil, types.Errorf(types.ErrInvalidItemType,
				"the type '%s' is not a subtype of '%s'", actual, required)
		}
		out = append(out, it)
	}
	return out, nil
}

// promote applies the fixed promotion rules for an atomic item.
func promote(a AnyAtomicItem, required Type) (AnyAtomicItem, error) {
	switch a.ItemType() {
	case TypeAnyURI:
		if required == TypeString {
			return NewString(a.Lexical()), nil
		}
	case TypeUntypedAtomic:
		if required != TypeAnyAtomic && required != TypeUntypedAtomic {
			return Cast(a, required)
		}
	}
	return a, nil
}
