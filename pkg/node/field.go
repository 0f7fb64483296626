package node

import (
	"sync"

	"github.com/sandrolain/gometapath/pkg/item"
	"github.com/sandrolain/gometapath/pkg/types"
)

// Field is a leaf-bearing node. It exposes flags and, when its definition
// declares a data type, a typed value.
type Field struct {
	leaf
	base
	def      *FieldDefinition
	position int

	flags func() (*orderedMap[*Flag], error)
	typed func() (item.AnyAtomicItem, error)
}

func newField(doc *Document, parent Node, def *FieldDefinition, name, path string, value interface{}, position int) *Field {
	f := &Field{
		base:     base{doc: doc, parent: parent, name: name, path: path, value: value},
		def:      def,
		position: position,
	}
	f.flags = sync.OnceValues(func() (*orderedMap[*Flag], error) {
		return buildFlags(f, def.Flags)
	})
	f.typed = sync.OnceValues(f.atomize)
	return f
}

// Definition returns the field definition.
func (f *Field) Definition() *FieldDefinition {
	return f.def
}

func (f *Field) ItemType() item.Type   { return item.TypeField }
func (f *Field) ContextNodeItem() Node { return f }
func (f *Field) Position() int         { return f.position }
func (f *Field) isModel()              {}

func (f *Field) Flags() ([]*Flag, error) {
	flags, err := f.flags()
	if err != nil {
		return nil, err
	}
	return flags.list(), nil
}

func (f *Field) FlagByName(name string) (*Flag, bool, error) {
	flags, err := f.flags()
	if err != nil {
		return nil, false, err
	}
	flag, ok := flags.get(name)
	return flag, ok, nil
}

// FieldValue returns the field's value, separated from its flags.
func (f *Field) FieldValue() interface{} {
	if f.def.FieldValue == nil {
		return f.value
	}
	return f.def.FieldValue(f.value)
}

// AtomicValue returns the typed value of the field.
func (f *Field) AtomicValue() (item.AnyAtomicItem, error) {
	return f.typed()
}

func (f *Field) atomize() (item.AnyAtomicItem, error) {
	if f.def.DataType == nil {
		return nil, types.Errorf(types.ErrNoTypedValue, "field '%s' has no typed value", f.path)
	}
	v := f.FieldValue()
	if isAbsent(v) {
		return nil, types.Errorf(types.ErrNoTypedValue, "field '%s' has no value", f.path)
	}
	return f.def.DataType.Atomize(v)
}
