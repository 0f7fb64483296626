package node

import (
	"sync"

	"github.com/sandrolain/gometapath/pkg/item"
)

// Flag is a named leaf attribute of an assembly or field.
type Flag struct {
	leaf
	base
	instance *FlagInstance

	typed func() (item.AnyAtomicItem, error)
}

func newFlag(doc *Document, parent Node, instance *FlagInstance, path string, value interface{}) *Flag {
	f := &Flag{
		base:     base{doc: doc, parent: parent, name: instance.EffectiveName(), path: path, value: value},
		instance: instance,
	}
	f.typed = sync.OnceValues(func() (item.AnyAtomicItem, error) {
		return instance.dataType().Atomize(value)
	})
	return f
}

// Instance returns the flag instance the node was created from.
func (f *Flag) Instance() *FlagInstance {
	return f.instance
}

func (f *Flag) ItemType() item.Type   { return item.TypeFlag }
func (f *Flag) ContextNodeItem() Node { return f }

// AtomicValue returns the typed value of the flag.
func (f *Flag) AtomicValue() (item.AnyAtomicItem, error) {
	return f.typed()
}
