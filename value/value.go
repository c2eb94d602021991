/*
Package value defines the tagged runtime value union merx programs
compute over: Int, Str, and Bool (spec.md §3). There is no nullish
value and no implicit promotion between kinds.

The shape mirrors go-mix's objects.GoMixObject interface
(objects/objects.go) — one concrete struct per kind, a GetType-style
tag for switch dispatch, and a ToString-style formatter — trimmed to
the three kinds spec.md defines; float, array, map, struct, function
and error-as-value are all explicit Non-goals.
*/
package value

import (
	"fmt"
	"strconv"
)

// Kind tags a Value's runtime type.
type Kind string

const (
	IntKind  Kind = "int"
	StrKind  Kind = "str"
	BoolKind Kind = "bool"
)

// Value is any merx runtime value.
type Value interface {
	Kind() Kind
	// Format renders the value the way Println/Print/Error write it to
	// their sink: decimal for Int, raw bytes for Str, "true"/"false" for
	// Bool (spec.md §4.5 "Value formatting for output").
	Format() string
}

// Int is a 64-bit signed integer. Arithmetic on Int wraps on overflow
// by relying on Go's defined two's-complement semantics for signed
// integer operations, including the i64::MIN / -1 edge case.
type Int struct{ V int64 }

func (Int) Kind() Kind          { return IntKind }
func (i Int) Format() string    { return strconv.FormatInt(i.V, 10) }
func (i Int) String() string    { return fmt.Sprintf("Int(%d)", i.V) }

// Str is a UTF-8 string.
type Str struct{ V string }

func (Str) Kind() Kind       { return StrKind }
func (s Str) Format() string { return s.V }
func (s Str) String() string { return fmt.Sprintf("Str(%q)", s.V) }

// Bool is a boolean.
type Bool struct{ V bool }

func (Bool) Kind() Kind { return BoolKind }
func (b Bool) Format() string {
	if b.V {
		return "true"
	}
	return "false"
}
func (b Bool) String() string { return fmt.Sprintf("Bool(%t)", b.V) }

// Equal implements the cross-type equality rule from spec.md §4.4: if
// the tags differ, == is always false regardless of representation.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Int:
		return av.V == b.(Int).V
	case Str:
		return av.V == b.(Str).V
	case Bool:
		return av.V == b.(Bool).V
	default:
		return false
	}
}
