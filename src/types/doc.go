// Package types contains all the structures used to describe what a runtime
// value must look like, and to check values against those descriptions. The
// descriptor set is closed: every descriptor is built from the combinators in
// this package, and bare native type tokens (reflect.Type values) are folded
// in through the Prim leaf so that composite descriptors and plain type tokens
// can be mixed freely in the same signature declaration.
// Descriptors are immutable once constructed so they can be shared between any
// number of contracts and checked concurrently. Because the constructors only
// accept already-built children, a descriptor graph built through this package
// is acyclic by construction.
package types
