package item

import (
	"math/big"
	"net/url"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"github.com/sandrolain/gometapath/pkg/types"
)

func atomicKey(t Type, lexical string) string {
	return t.String() + ":" + strconv.Quote(lexical)
}

// StringItem is an xs:string value.
type StringItem struct {
	value string
}

// NewString creates an xs:string item.
func NewString(s string) *StringItem {
	return &StringItem{value: s}
}

func (s *StringItem) ItemType() Type  { return TypeString }
func (s *StringItem) Key() string     { return atomicKey(TypeString, s.value) }
func (s *StringItem) Lexical() string { return s.value }
func (s *StringItem) String() string  { return s.value }
func (s *StringItem) Value() string   { return s.value }

// URIItem is an xs:anyURI value.
type URIItem struct {
	value string
}

// NewURI creates an xs:anyURI item. The value must parse as a URI reference.
func NewURI(s string) (*URIItem, error) {
	if _, err := url.Parse(s); err != nil {
		return nil, types.Errorf(types.ErrInvalidValue, "invalid xs:anyURI '%s'", s).WithCause(err)
	}
	return &URIItem{value: s}, nil
}

// MustURI is like NewURI but panics on an invalid value.
func MustURI(s string) *URIItem {
	u, err := NewURI(s)
	if err != nil {
		panic(err)
	}
	return u
}

func (u *URIItem) ItemType() Type  { return TypeAnyURI }
func (u *URIItem) Key() string     { return atomicKey(TypeAnyURI, u.value) }
func (u *URIItem) Lexical() string { return u.value }
func (u *URIItem) String() string  { return u.value }

// URL returns the parsed URI.
func (u *URIItem) URL() *url.URL {
	parsed, _ := url.Parse(u.value)
	return parsed
}

// IntegerItem is an arbitrary precision xs:integer value.
type IntegerItem struct {
	value *big.Int
}

// NewInteger creates an xs:integer item.
func NewInteger(i int64) *IntegerItem {
	return &IntegerItem{value: big.NewInt(i)}
}

// NewIntegerFromBig creates an xs:integer item from a copy of b.
func NewIntegerFromBig(b *big.Int) *IntegerItem {
	return &IntegerItem{value: new(big.Int).Set(b)}
}

// ParseInteger parses the lexical form of an xs:integer.
func ParseInteger(s string) (*IntegerItem, error) {
	b, ok := new(big.Int).SetString(strings.TrimPrefix(strings.TrimSpace(s), "+"), 10)
	if !ok {
		return nil, types.Errorf(types.ErrInvalidValue, "invalid xs:integer '%s'", s)
	}
	return &IntegerItem{value: b}, nil
}

func (i *IntegerItem) ItemType() Type  { return TypeInteger }
func (i *IntegerItem) Key() string     { return atomicKey(TypeInteger, i.value.String()) }
func (i *IntegerItem) Lexical() string { return i.value.String() }
func (i *IntegerItem) String() string  { return i.value.String() }

// BigInt returns a copy of the value.
func (i *IntegerItem) BigInt() *big.Int {
	return new(big.Int).Set(i.value)
}

// Int64 returns the value and whether it fits in an int64.
func (i *IntegerItem) Int64() (int64, bool) {
	return i.value.Int64(), i.value.IsInt64()
}

// Decimal returns the value as a decimal.
func (i *IntegerItem) Decimal() *apd.Decimal {
	return apd.NewWithBigInt(new(apd.BigInt).SetMathBigInt(i.value), 0)
}

// DecimalItem is an arbitrary precision xs:decimal value.
type DecimalItem struct {
	value apd.Decimal
}

// NewDecimal creates an xs:decimal item from a copy of d.
func NewDecimal(d *apd.Decimal) *DecimalItem {
	item := &DecimalItem{}
	item.value.Set(d)
	return item
}

// ParseDecimal parses the lexical form of an xs:decimal.
func ParseDecimal(s string) (*DecimalItem, error) {
	d, _, err := apd.NewFromString(strings.TrimSpace(s))
	if err != nil || d.Form != apd.Finite {
		return nil, types.Errorf(types.ErrInvalidValue, "invalid xs:decimal '%s'", s).WithCause(err)
	}
	return NewDecimal(d), nil
}

// MustDecimal is like ParseDecimal but panics on an invalid value.
func MustDecimal(s string) *DecimalItem {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *DecimalItem) ItemType() Type { return TypeDecimal }
func (d *DecimalItem) Key() string    { return atomicKey(TypeDecimal, d.Lexical()) }
func (d *DecimalItem) String() string { return d.Lexical() }

// Lexical returns the reduced, non-exponent form of the value.
func (d *DecimalItem) Lexical() string {
	var reduced apd.Decimal
	reduced.Reduce(&d.value)
	return reduced.Text('f')
}

// Decimal returns a copy of the value.
func (d *DecimalItem) Decimal() *apd.Decimal {
	return new(apd.Decimal).Set(&d.value)
}

// BooleanItem is an xs:boolean value.
type BooleanItem struct {
	value bool
}

var (
	True  = &BooleanItem{value: true}
	False = &BooleanItem{value: false}
)

// NewBoolean returns the xs:boolean item for b.
func NewBoolean(b bool) *BooleanItem {
	if b {
		return True
	}
	return False
}

func (b *BooleanItem) ItemType() Type  { return TypeBoolean }
func (b *BooleanItem) Key() string     { return atomicKey(TypeBoolean, b.Lexical()) }
func (b *BooleanItem) Lexical() string { return strconv.FormatBool(b.value) }
func (b *BooleanItem) String() string  { return b.Lexical() }
func (b *BooleanItem) Value() bool     { return b.value }

// UntypedAtomicItem is an xs:untypedAtomic value.
type UntypedAtomicItem struct {
	value string
}

// NewUntypedAtomic creates an xs:untypedAtomic item.
func NewUntypedAtomic(s string) *UntypedAtomicItem {
	return &UntypedAtomicItem{value: s}
}

func (u *UntypedAtomicItem) ItemType() Type  { return TypeUntypedAtomic }
func (u *UntypedAtomicItem) Key() string     { return atomicKey(TypeUntypedAtomic, u.value) }
func (u *UntypedAtomicItem) Lexical() string { return u.value }
func (u *UntypedAtomicItem) String() string  { return u.value }
