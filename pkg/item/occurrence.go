package item

import (
	"github.com/sandrolain/gometapath/pkg/types"
)

// Occurrence constrains the number of items in a sequence.
type Occurrence uint8

const (
	ZeroOrMore Occurrence = iota
	Zero
	ZeroOrOne
	One
	OneOrMore
)

var occurrenceNames = [...]string{
	ZeroOrMore: "ZERO_OR_MORE",
	Zero:       "ZERO",
	ZeroOrOne:  "ZERO_OR_ONE",
	One:        "ONE",
	OneOrMore:  "ONE_OR_MORE",
}

// String returns the occurrence name, e.g. "ZERO_OR_ONE".
func (o Occurrence) String() string {
	if int(o) < len(occurrenceNames) {
		return occurrenceNames[o]
	}
	return "UNKNOWN"
}

// Indicator returns the occurrence indicator used in sequence type
// signatures: "" for One, "?", "+" or "*". Zero has no indicator.
func (o Occurrence) Indicator() string {
	switch o {
	case ZeroOrOne:
		return "?"
	case OneOrMore:
		return "+"
	case ZeroOrMore:
		return "*"
	default:
		return ""
	}
}

// Allows reports whether a sequence of length n satisfies the occurrence.
func (o Occurrence) Allows(n int) bool {
	switch o {
	case Zero:
		return n == 0
	case ZeroOrOne:
		return n <= 1
	case One:
		return n == 1
	case OneOrMore:
		return n >= 1
	default:
		return true
	}
}

// IsOptional reports whether the empty sequence is allowed.
func (o Occurrence) IsOptional() bool {
	return o.Allows(0)
}

// CheckCardinality verifies that seq satisfies occ.
func CheckCardinality(seq Sequence, occ Occurrence) error {
	if occ.Allows(len(seq)) {
		return nil
	}
	return types.Errorf(types.ErrArityOrCardinality,
		"a sequence of %s expected, but found '%d'", occurrencePhrase(occ), len(seq))
}

func occurrencePhrase(occ Occurrence) string {
	switch occ {
	case Zero:
		return "zero (empty)"
	case ZeroOrOne:
		return "zero or one"
	case One:
		return "one"
	case OneOrMore:
		return "one or more"
	default:
		return "zero or more"
	}
}
