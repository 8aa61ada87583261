// Package sig enforces runtime signature contracts. A contract declares the
// expected types of a function's positional arguments and return value with a
// small composable descriptor language, and a wrapped function checks those
// expectations on every call.
//
//	add := sig.MakeContract(sig.NumericType, sig.NumericType, sig.NumericType).
//		MustWrap(func(a, b int) int { return a + b }).(func(int, int) int)
//
// Descriptors compose: sig.ListOf(sig.TupleOf(sig.NumericType, sig.For[string]()))
// describes a list of (number, string) pairs. Bare reflect.Type tokens can be
// used anywhere a descriptor can, so plain types and composites mix freely.
//
// Checking is on by default and can be turned off process-wide with
// DisableEnforcement, after which wrapped functions call straight through.
// There is no way to turn it back on. Code that needs an isolated or testable
// toggle should create its own contract.Enforcer instead of relying on the
// process-wide one.
package sig

import (
	"github.com/jbester/sig/src/contract"
	"github.com/jbester/sig/src/types"
)

// Descriptor describes what a runtime value must look like.
type Descriptor = types.Descriptor

// Contract is the immutable pairing of a return descriptor with ordered
// argument descriptors.
type Contract = contract.Contract

var (
	// AnyType accepts every value.
	AnyType = types.Any
	// NumericType accepts any numeric value, fixed or arbitrary precision.
	NumericType = types.Numeric
)

// Union accepts a value matching any one of the given type tokens.
func Union(toks ...any) Descriptor { return types.Union(toks...) }

// Optional accepts nil or a value matching the given type token.
func Optional(tok any) Descriptor { return types.Optional(tok) }

// ListOf accepts a homogeneous sequence of values matching the given token.
func ListOf(tok any) Descriptor { return types.ListOf(tok) }

// TupleOf accepts a fixed-length sequence matched pairwise against the tokens.
func TupleOf(toks ...any) Descriptor { return types.TupleOf(toks...) }

// For returns the descriptor for a plain Go type.
func For[T any]() Descriptor { return types.For[T]() }

// DeepCheck recursively checks a value against a type token, which may be a
// Descriptor or a bare reflect.Type.
func DeepCheck(val, tok any) bool { return types.Deep(val, tok) }

// MakeContract creates a contract from a return type token and ordered
// argument type tokens, enforced by the process-wide toggle.
func MakeContract(ret any, args ...any) *Contract { return contract.New(ret, args...) }

// DisableEnforcement turns off all contract checking process-wide. This is
// one way; there is no re-enable.
func DisableEnforcement() { contract.Disable() }
