package item

// Type is the runtime subtype of an item. Types form a single-inheritance
// lattice rooted at [TypeItem]; assignability is the subtype relation.
type Type uint8

const (
	TypeItem Type = iota // item()

	TypeNode     // node()
	TypeDocument // document-node()
	TypeAssembly // assembly()
	TypeField    // field()
	TypeFlag     // flag()

	TypeAnyAtomic     // xs:anyAtomicType
	TypeString        // xs:string
	TypeAnyURI        // xs:anyURI
	TypeDecimal       // xs:decimal
	TypeInteger       // xs:integer
	TypeBoolean       // xs:boolean
	TypeUntypedAtomic // xs:untypedAtomic
)

var typeParents = [...]Type{
	TypeItem:          TypeItem,
	TypeNode:          TypeItem,
	TypeDocument:      TypeNode,
	TypeAssembly:      TypeNode,
	TypeField:         TypeNode,
	TypeFlag:          TypeNode,
	TypeAnyAtomic:     TypeItem,
	TypeString:        TypeAnyAtomic,
	TypeAnyURI:        TypeAnyAtomic,
	TypeDecimal:       TypeAnyAtomic,
	TypeInteger:       TypeDecimal,
	TypeBoolean:       TypeAnyAtomic,
	TypeUntypedAtomic: TypeAnyAtomic,
}

var typeNames = [...]string{
	TypeItem:          "item()",
	TypeNode:          "node()",
	TypeDocument:      "document-node()",
	TypeAssembly:      "assembly()",
	TypeField:         "field()",
	TypeFlag:          "flag()",
	TypeAnyAtomic:     "xs:anyAtomicType",
	TypeString:        "xs:string",
	TypeAnyURI:        "xs:anyURI",
	TypeDecimal:       "xs:decimal",
	TypeInteger:       "xs:integer",
	TypeBoolean:       "xs:boolean",
	TypeUntypedAtomic: "xs:untypedAtomic",
}

// String returns the type's name as used in signatures.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// Parent returns the direct supertype. The parent of TypeItem is TypeItem.
func (t Type) Parent() Type {
	if int(t) < len(typeParents) {
		return typeParents[t]
	}
	return TypeItem
}

// IsSubtypeOf reports whether t equals required or derives from it.
func (t Type) IsSubtypeOf(required Type) bool {
	for {
		if t == required {
			return true
		}
		if t == TypeItem {
			return false
		}
		t = t.Parent()
	}
}

// IsAtomic reports whether t is xs:anyAtomicType or one of its subtypes.
func (t Type) IsAtomic() bool {
	return t.IsSubtypeOf(TypeAnyAtomic)
}

// IsNode reports whether t is node() or one of its subtypes.
func (t Type) IsNode() bool {
	return t.IsSubtypeOf(TypeNode)
}
