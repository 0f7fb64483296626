package item

import (
	"fmt"
	"math/big"
	"net/url"
	"reflect"
	"strconv"

	"github.com/cockroachdb/apd/v3"

	"github.com/sandrolain/gometapath/pkg/types"
)

// DataType adapts bound Go values of a simple data type into atomic items.
// Flag and field nodes use it to expose their typed value.
type DataType interface {
	// Type returns the atomic type produced by the adapter.
	Type() Type
	// Atomize converts a bound value into an atomic item of Type.
	Atomize(value interface{}) (AnyAtomicItem, error)
}

// Built-in data type adapters.
var (
	StringDataType  DataType = dataType{TypeString}
	URIDataType     DataType = dataType{TypeAnyURI}
	IntegerDataType DataType = dataType{TypeInteger}
	DecimalDataType DataType = dataType{TypeDecimal}
	BooleanDataType DataType = dataType{TypeBoolean}
	UntypedDataType DataType = dataType{TypeUntypedAtomic}
)

type dataType struct {
	t Type
}

func (d dataType) Type() Type {
	return d.t
}

func (d dataType) Atomize(value interface{}) (AnyAtomicItem, error) {
	a, err := FromGo(value)
	if err != nil {
		return nil, err
	}
	return Cast(a, d.t)
}

// FromGo converts a plain Go value into the closest atomic item. Pointers to
// supported values are dereferenced.
func FromGo(value interface{}) (AnyAtomicItem, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, types.Errorf(types.ErrInvalidValue, "cannot atomize a nil %T", value)
	}

	switch v := value.(type) {
	case AnyAtomicItem:
		return v, nil
	case string:
		return NewString(v), nil
	case bool:
		return NewBoolean(v), nil
	case int:
		return NewInteger(int64(v)), nil
	case int8:
		return NewInteger(int64(v)), nil
	case int16:
		return NewInteger(int64(v)), nil
	case int32:
		return NewInteger(int64(v)), nil
	case int64:
		return NewInteger(v), nil
	case uint:
		return NewIntegerFromBig(new(big.Int).SetUint64(uint64(v))), nil
	case uint8:
		return NewInteger(int64(v)), nil
	case uint16:
		return NewInteger(int64(v)), nil
	case uint32:
		return NewInteger(int64(v)), nil
	case uint64:
		return NewIntegerFromBig(new(big.Int).SetUint64(v)), nil
	case float32:
		return decimalFromFloat(float64(v))
	case float64:
		return decimalFromFloat(v)
	case *big.Int:
		return NewIntegerFromBig(v), nil
	case *apd.Decimal:
		return NewDecimal(v), nil
	case *url.URL:
		return &URIItem{value: v.String()}, nil
	case fmt.Stringer:
		return NewString(v.String()), nil
	case nil:
		return nil, types.NewError(types.ErrInvalidValue, "cannot atomize a nil value")
	}
	if rv.Kind() == reflect.Pointer {
		return FromGo(rv.Elem().Interface())
	}
	return nil, types.Errorf(types.ErrInvalidValue, "unsupported bound value of type %T", value)
}

func decimalFromFloat(f float64) (AnyAtomicItem, error) {
	d, err := new(apd.Decimal).SetFloat64(f)
	if err != nil || d.Form != apd.Finite {
		return nil, types.Errorf(types.ErrInvalidValue, "invalid xs:decimal '%s'",
			strconv.FormatFloat(f, 'g', -1, 64)).WithCause(err)
	}
	return NewDecimal(d), nil
}
