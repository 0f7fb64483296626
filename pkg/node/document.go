package node

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/sandrolain/gometapath/pkg/item"
	"github.com/sandrolain/gometapath/pkg/types"
)

// Document is the root node of a tree. Its only model group holds the root
// assembly.
type Document struct {
	base
	id      uuid.UUID
	baseURI string
	logger  *slog.Logger
	root    *Assembly
}

// DocumentOptions configures a document.
type DocumentOptions struct {
	// BaseURI is the document's base URI. Defaults to "urn:uuid:<id>".
	BaseURI string
	// ID identifies the document. Defaults to a random UUID.
	ID uuid.UUID
	// Logger for debug output during materialization.
	Logger *slog.Logger
}

// DocumentOption configures a document.
type DocumentOption func(*DocumentOptions)

// WithBaseURI sets the document's base URI.
func WithBaseURI(uri string) DocumentOption {
	return func(opts *DocumentOptions) {
		opts.BaseURI = uri
	}
}

// WithDocumentID sets the document's identity.
func WithDocumentID(id uuid.UUID) DocumentOption {
	return func(opts *DocumentOptions) {
		opts.ID = id
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) DocumentOption {
	return func(opts *DocumentOptions) {
		opts.Logger = logger
	}
}

// NewDocument binds value to the root assembly definition def.
func NewDocument(def *AssemblyDefinition, value interface{}, opts ...DocumentOption) (*Document, error) {
	if def == nil {
		return nil, types.NewError(types.ErrUnsupportedInstanceKind, "document requires a root assembly definition")
	}
	if isAbsent(value) {
		return nil, types.Errorf(types.ErrInvalidValue, "document '%s' requires a bound value", def.Name)
	}

	options := DocumentOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.ID == uuid.Nil {
		options.ID = uuid.New()
	}
	if options.BaseURI == "" {
		options.BaseURI = options.ID.URN()
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	doc := &Document{
		id:      options.ID,
		baseURI: options.BaseURI,
		logger:  options.Logger,
	}
	doc.base = base{doc: doc, path: "/", value: value}
	doc.root = newAssembly(doc, doc, def, def.Name, "/"+def.Name, value, 1)
	return doc, nil
}

// ID returns the document identity.
func (d *Document) ID() uuid.UUID {
	return d.id
}

// BaseURI returns the document's base URI.
func (d *Document) BaseURI() string {
	return d.baseURI
}

// Root returns the root assembly.
func (d *Document) Root() *Assembly {
	return d.root
}

func (d *Document) ItemType() item.Type {
	return item.TypeDocument
}

func (d *Document) ContextNodeItem() Node {
	return d
}

func (d *Document) Flags() ([]*Flag, error) {
	return []*Flag{}, nil
}

func (d *Document) FlagByName(string) (*Flag, bool, error) {
	return nil, false, nil
}

func (d *Document) ModelItems() ([][]Model, error) {
	return [][]Model{{d.root}}, nil
}

func (d *Document) ModelItemsByName(name string) ([]Model, error) {
	if name == d.root.name {
		return []Model{d.root}, nil
	}
	return []Model{}, nil
}
