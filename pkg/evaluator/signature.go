package evaluator

import "strings"

// Signature renders the function as "name(T1,T2[, ...]) as R", e.g.
//
//	concat(xs:anyAtomicType?,xs:anyAtomicType?, ...) as xs:string
//
// The rendering is deterministic and used in diagnostics and error messages.
func (f *Function) Signature() string {
	var b strings.Builder
	b.WriteString(f.name)
	b.WriteByte('(')
	for i, arg := range f.arguments {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(arg.Signature())
	}
	if f.unbounded {
		b.WriteString(", ...")
	}
	b.WriteString(") as ")
	b.WriteString(f.result.Signature())
	return b.String()
}
