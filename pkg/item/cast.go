package item

import (
	"math/big"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"github.com/sandrolain/gometapath/pkg/types"
)

// Cast converts an atomic item to the target atomic type using the lexical
// casting rules. Casting to a supertype of the item's own type returns the
// item unchanged.
func Cast(a AnyAtomicItem, to Type) (AnyAtomicItem, error) {
	if a.ItemType().IsSubtypeOf(to) {
		return a, nil
	}

	switch to {
	case TypeString:
		return NewString(a.Lexical()), nil
	case TypeUntypedAtomic:
		return NewUntypedAtomic(a.Lexical()), nil
	case TypeAnyURI:
		u, err := NewURI(strings.TrimSpace(a.Lexical()))
		if err != nil {
			return nil, err
		}
		return u, nil
	case TypeDecimal:
		return castToDecimal(a)
	case TypeInteger:
		return castToInteger(a)
	case TypeBoolean:
		return castToBoolean(a)
	}
	return nil, types.Errorf(types.ErrInvalidValue, "cannot cast '%s' to '%s'", a.ItemType(), to)
}

func castToDecimal(a AnyAtomicItem) (AnyAtomicItem, error) {
	switch v := a.(type) {
	case *BooleanItem:
		if v.value {
			return NewDecimal(apd.New(1, 0)), nil
		}
		return NewDecimal(apd.New(0, 0)), nil
	case *StringItem, *UntypedAtomicItem:
		d, err := ParseDecimal(a.Lexical())
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	return nil, types.Errorf(types.ErrInvalidValue, "cannot cast '%s' to '%s'", a.ItemType(), TypeDecimal)
}

func castToInteger(a AnyAtomicItem) (AnyAtomicItem, error) {
	switch v := a.(type) {
	case *BooleanItem:
		if v.value {
			return NewInteger(1), nil
		}
		return NewInteger(0), nil
	case *DecimalItem:
		// truncate toward zero
		text := v.value.Text('f')
		if i := strings.IndexByte(text, '.'); i >= 0 {
			text = text[:i]
		}
		b, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return nil, types.Errorf(types.ErrInvalidValue, "cannot cast '%s' to '%s'", text, TypeInteger)
		}
		return &IntegerItem{value: b}, nil
	case *StringItem, *UntypedAtomicItem:
		i, err := ParseInteger(a.Lexical())
		if err != nil {
			return nil, err
		}
		return i, nil
	}
	return nil, types.Errorf(types.ErrInvalidValue, "cannot cast '%s' to '%s'", a.ItemType(), TypeInteger)
}

func castToBoolean(a AnyAtomicItem) (AnyAtomicItem, error) {
	switch v := a.(type) {
	case *IntegerItem:
		return NewBoolean(v.value.Sign() != 0), nil
	case *DecimalItem:
		return NewBoolean(!v.value.IsZero()), nil
	case *StringItem, *UntypedAtomicItem:
		switch strings.TrimSpace(a.Lexical()) {
		case "true", "1":
			return True, nil
		case "false", "0":
			return False, nil
		}
		return nil, types.Errorf(types.ErrInvalidValue, "invalid xs:boolean '%s'", a.Lexical())
	}
	return nil, types.Errorf(types.ErrInvalidValue, "cannot cast '%s' to '%s'", a.ItemType(), TypeBoolean)
}
