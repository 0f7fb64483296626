package node

import (
	"reflect"

	"github.com/sandrolain/gometapath/pkg/item"
)

// Accessor fetches an instance's value from its parent's bound value. A nil
// result, including a nil pointer, slice or map, means the instance is absent.
type Accessor func(parent interface{}) interface{}

// FlagInstance declares a named leaf attribute of an assembly or field.
type FlagInstance struct {
	// Name is the effective name of the flag.
	Name string
	// DataType adapts the bound value. Nil means xs:string.
	DataType item.DataType
	// Value fetches the flag value from the parent's bound value.
	Value Accessor
}

// EffectiveName returns the flag's name.
func (f *FlagInstance) EffectiveName() string {
	return f.Name
}

// ValueOf returns the flag's value in parent, or nil if absent.
func (f *FlagInstance) ValueOf(parent interface{}) interface{} {
	if f.Value == nil || isAbsent(parent) {
		return nil
	}
	return f.Value(parent)
}

func (f *FlagInstance) dataType() item.DataType {
	if f.DataType == nil {
		return item.StringDataType
	}
	return f.DataType
}

// AssemblyDefinition describes a composite node with flags and a model of
// named child instances.
type AssemblyDefinition struct {
	Name  string
	Flags []*FlagInstance
	Model []ModelInstance
}

// FieldDefinition describes a leaf-bearing node with flags and a value.
type FieldDefinition struct {
	Name  string
	Flags []*FlagInstance
	// DataType adapts the field value. Nil means the field has no typed value.
	DataType item.DataType
	// FieldValue extracts the field value from the bound object. Nil means the
	// bound object is the value.
	FieldValue Accessor
}

// ModelInstance is a named child instance of an assembly's model. It is a
// closed sum type: the only variants are *AssemblyInstance and
// *FieldInstance.
type ModelInstance interface {
	// EffectiveName is the name child items are grouped under.
	EffectiveName() string
	// ValueOf fetches the instance value from the parent's bound value.
	ValueOf(parent interface{}) interface{}
	// ItemValuesOf enumerates the item values of an instance value, in order.
	ItemValuesOf(instanceValue interface{}) []interface{}

	isModelInstance()
}

// AssemblyInstance places an assembly definition in a parent model.
type AssemblyInstance struct {
	// Name overrides the definition name when set.
	Name       string
	Definition *AssemblyDefinition
	Value      Accessor
	// Items enumerates repeated values. Nil uses the default enumeration.
	Items func(instanceValue interface{}) []interface{}
}

func (a *AssemblyInstance) EffectiveName() string {
	if a.Name != "" || a.Definition == nil {
		return a.Name
	}
	return a.Definition.Name
}

func (a *AssemblyInstance) ValueOf(parent interface{}) interface{} {
	return valueOf(a.Value, parent)
}

func (a *AssemblyInstance) ItemValuesOf(instanceValue interface{}) []interface{} {
	if a.Items != nil {
		return a.Items(instanceValue)
	}
	return itemValues(instanceValue)
}

func (*AssemblyInstance) isModelInstance() {}

// FieldInstance places a field definition in a parent model.
type FieldInstance struct {
	// Name overrides the definition name when set.
	Name       string
	Definition *FieldDefinition
	Value      Accessor
	// Items enumerates repeated values. Nil uses the default enumeration.
	Items func(instanceValue interface{}) []interface{}
}

func (f *FieldInstance) EffectiveName() string {
	if f.Name != "" || f.Definition == nil {
		return f.Name
	}
	return f.Definition.Name
}

func (f *FieldInstance) ValueOf(parent interface{}) interface{} {
	return valueOf(f.Value, parent)
}

func (f *FieldInstance) ItemValuesOf(instanceValue interface{}) []interface{} {
	if f.Items != nil {
		return f.Items(instanceValue)
	}
	return itemValues(instanceValue)
}

func (*FieldInstance) isModelInstance() {}

func valueOf(accessor Accessor, parent interface{}) interface{} {
	if accessor == nil || isAbsent(parent) {
		return nil
	}
	return accessor(parent)
}

// isAbsent reports whether v stands for a missing value: nil itself or a
// typed nil pointer, slice, map or interface.
func isAbsent(v interface{}) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// itemValues enumerates an instance value: an absent value has no items,
// slices and arrays yield their elements, anything else is a single item.
func itemValues(v interface{}) []interface{} {
	if isAbsent(v) {
		return nil
	}
	if vv, ok := v.([]interface{}); ok {
		return vv
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]interface{}, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out = append(out, rv.Index(i).Interface())
		}
		return out
	}
	return []interface{}{v}
}
