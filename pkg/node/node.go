// Package node implements the document-like view of bound data that metapath
// expressions are evaluated against.
//
// A [Document] wraps a bound root value and its [AssemblyDefinition]. Every
// node exposes its flags (named leaf attributes) and, for assemblies, its
// model items (named, possibly repeating children). Both are computed from the
// bound value on first access and memoized:
//
//	doc, err := node.NewDocument(def, value)
//	root := doc.Root()
//	flags, err := root.Flags()
//	items, err := root.ModelItemsByName("items")
//
// # Concurrency
//
// Node trees are safe for concurrent use. Each node owns compute-once cells
// for its flag and model maps: the first accessor builds the map, concurrent
// accessors of the same node wait for it, and every later read sees the same
// immutable snapshot without locking. Distinct nodes never share a lock.
package node

import (
	"strconv"

	"github.com/sandrolain/gometapath/pkg/item"
)

// Context is the read surface a node offers to the evaluator.
type Context interface {
	// ContextNodeItem returns the node itself.
	ContextNodeItem() Node
	// Flags returns the present flags in declaration order.
	Flags() ([]*Flag, error)
	// FlagByName returns the named flag; ok is false when it is absent.
	FlagByName(name string) (flag *Flag, ok bool, err error)
	// ModelItems returns the model item groups in declaration order.
	ModelItems() ([][]Model, error)
	// ModelItemsByName returns the named group, or an empty list.
	ModelItemsByName(name string) ([]Model, error)
}

// Node is an item in a document tree.
type Node interface {
	item.Item
	Context

	// Name returns the effective name of the node. Documents have no name.
	Name() string
	// Parent returns the parent node, or nil for a document.
	Parent() Node
	// Document returns the document owning the node.
	Document() *Document
	// Value returns the bound value wrapped by the node.
	Value() interface{}
	// Path returns the node's path within its document, e.g. "/catalog/items[2]/@id".
	Path() string
	// BaseURI returns the document's base URI.
	BaseURI() string
}

// Model is a node produced by a model instance: an *Assembly or a *Field.
type Model interface {
	Node
	// Position is the 1-based position of the node within its instance.
	Position() int

	isModel()
}

// base holds the state shared by every node variant.
type base struct {
	doc    *Document
	parent Node
	name   string
	path   string
	value  interface{}
}

func (b *base) Name() string        { return b.name }
func (b *base) Parent() Node        { return b.parent }
func (b *base) Document() *Document { return b.doc }
func (b *base) Value() interface{}  { return b.value }
func (b *base) Path() string        { return b.path }
func (b *base) BaseURI() string     { return b.doc.BaseURI() }

// Key identifies the node by its document and quoted path.
func (b *base) Key() string {
	return "node:" + b.doc.id.String() + ":" + strconv.Quote(b.path)
}

// leaf supplies empty flag and model accessors.
type leaf struct{}

func (leaf) Flags() ([]*Flag, error)                  { return []*Flag{}, nil }
func (leaf) FlagByName(string) (*Flag, bool, error)   { return nil, false, nil }
func (leaf) ModelItems() ([][]Model, error)           { return [][]Model{}, nil }
func (leaf) ModelItemsByName(string) ([]Model, error) { return []Model{}, nil }

var (
	_ Node              = (*Document)(nil)
	_ Model             = (*Assembly)(nil)
	_ Model             = (*Field)(nil)
	_ Node              = (*Flag)(nil)
	_ item.AtomicValued = (*Field)(nil)
	_ item.AtomicValued = (*Flag)(nil)
)
