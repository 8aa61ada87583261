package types

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"
)

type (
	// Descriptor is the general interface for all type descriptors. A value
	// either matches a descriptor or it does not; Check has no side effects.
	Descriptor interface {
		fmt.Stringer
		Check(val any) bool
		sealed()
	}
	anyType     struct{}
	numericType struct{}
	union       struct{ defn []Descriptor }
	option      struct{ defn Descriptor }
	list        struct{ elem Descriptor }
	tuple       struct{ elems []Descriptor }
	prim        struct{ typ reflect.Type }
)

var (
	// Any is a descriptor that accepts every value.
	Any Descriptor = anyType{}
	// Numeric is a descriptor that accepts any numeric value. This covers all
	// fixed width integer and float kinds as well as the arbitrary-precision
	// math/big kinds. Booleans are not numeric.
	Numeric Descriptor = numericType{}
)

// Union describes a value that can match any one of the given type tokens,
// tried in declared order.
func Union(toks ...any) Descriptor {
	if len(toks) == 0 {
		panic("types: Union requires at least one type token")
	}
	return union{defn: normalize(toks)}
}

// Optional describes a value that is either absent (nil) or matches the given
// type token.
func Optional(tok any) Descriptor {
	return option{defn: Of(tok)}
}

// ListOf describes a homogeneous sequence whose every element matches the
// given type token. An empty sequence matches vacuously. Note this is
// different from a plain slice type token which acts as an untyped sequence.
func ListOf(tok any) Descriptor {
	return list{elem: Of(tok)}
}

// TupleOf describes a fixed-length sequence whose i-th element matches the
// i-th type token. TupleOf() matches only a zero-length sequence.
func TupleOf(toks ...any) Descriptor {
	return tuple{elems: normalize(toks)}
}

// Of normalizes a type token into a Descriptor. A token is either already a
// Descriptor or a bare reflect.Type, which is wrapped so that composite
// descriptors and plain type tokens interoperate. Any other value is a
// construction error.
func Of(tok any) Descriptor {
	switch t := tok.(type) {
	case Descriptor:
		return t
	case reflect.Type:
		return prim{typ: t}
	default:
		panic(fmt.Sprintf("types: token of type %T is not a Descriptor or reflect.Type", tok))
	}
}

// For returns the descriptor for a plain Go type.
func For[T any]() Descriptor {
	return prim{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

// Deep performs a recursive check of a value against a type token, which may
// be a Descriptor or a bare reflect.Type.
func Deep(val, tok any) bool {
	return Of(tok).Check(val)
}

func normalize(toks []any) []Descriptor {
	defn := make([]Descriptor, len(toks))
	for i, tok := range toks {
		defn[i] = Of(tok)
	}
	return defn
}

// Check will check a value against this descriptor.
func (anyType) Check(_ any) bool { return true }
func (anyType) String() string   { return "<Any>" }

// Check will check a value against this descriptor.
func (numericType) Check(val any) bool {
	switch val.(type) {
	case *big.Int, *big.Float, *big.Rat:
		return true
	}
	switch reflect.ValueOf(val).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
func (numericType) String() string { return "<Numeric>" }

// Check will check a value against each member in declared order.
func (u union) Check(val any) bool {
	for _, defn := range u.defn {
		if defn.Check(val) {
			return true
		}
	}
	return false
}

func (u union) String() string {
	if len(u.defn) < 3 {
		return fmt.Sprintf("<%v>", fmtDefns(u.defn, " or "))
	}
	return fmt.Sprintf("<%v, or %v>", fmtDefns(u.defn[:len(u.defn)-1], ", "), u.defn[len(u.defn)-1])
}

// Check will check that a value is absent or matches the wrapped descriptor.
func (o option) Check(val any) bool { return isAbsent(val) || o.defn.Check(val) }
func (o option) String() string     { return fmt.Sprintf("<%v option>", o.defn) }

// Check will check that a value is a sequence whose every element matches the
// element descriptor.
func (l list) Check(val any) bool {
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if !l.elem.Check(rv.Index(i).Interface()) {
			return false
		}
	}
	return true
}
func (l list) String() string { return fmt.Sprintf("<%v list>", l.elem) }

// Check will check that a value is a sequence of exactly matching length whose
// elements match pairwise.
func (t tuple) Check(val any) bool {
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	if rv.Len() != len(t.elems) {
		return false
	}
	for i, defn := range t.elems {
		if !defn.Check(rv.Index(i).Interface()) {
			return false
		}
	}
	return true
}
func (t tuple) String() string { return fmt.Sprintf("(%v)", fmtDefns(t.elems, " * ")) }

// Check will check that a value's runtime type is the wrapped type token or
// assignable to it, which covers interface satisfaction.
func (p prim) Check(val any) bool {
	if val == nil {
		return false
	}
	return reflect.TypeOf(val).AssignableTo(p.typ)
}
func (p prim) String() string { return p.typ.String() }

func (anyType) sealed()     {}
func (numericType) sealed() {}
func (union) sealed()       {}
func (option) sealed()      {}
func (list) sealed()        {}
func (tuple) sealed()       {}
func (prim) sealed()        {}

// A value is absent when it is nil or holds a nil value of a nilable kind.
func isAbsent(val any) bool {
	if val == nil {
		return true
	}
	switch rv := reflect.ValueOf(val); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

func fmtDefns(defn []Descriptor, sep string) string {
	parts := make([]string, len(defn))
	for i, d := range defn {
		parts[i] = d.String()
	}
	return strings.Join(parts, sep)
}
