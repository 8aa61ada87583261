// Package contract binds type descriptors to functions and enforces them on
// every call. A Contract pairs a return descriptor with ordered argument
// descriptors; Wrap decorates a function with the contract, failing at
// decoration time when the declared descriptor count does not match the
// function's parameter count so that a malformed contract is caught once
// rather than on first use.
//
// Call-time violations are programmer errors, not recoverable conditions, so
// the wrapped function panics with a *serrors.Error carrying the violation
// kind, the offending value, and the expected rendering. Callers that want
// error returns instead can use CheckArgs and CheckReturn directly. Checking
// is controlled by an Enforcer toggle and is skipped entirely when disabled.
package contract

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/jbester/sig/src/serrors"
	"github.com/jbester/sig/src/types"
)

type (
	// Enforcer carries the enforcement toggle consulted by every call of every
	// contract created from it. The toggle is atomic so that disabling while
	// other goroutines are mid-call is safe; it starts enabled and Disable is
	// one way, there is no way to turn enforcement back on.
	Enforcer struct {
		disabled atomic.Bool
	}
	// Contract is the immutable pairing of a return descriptor with ordered
	// argument descriptors. One contract may wrap any number of functions.
	Contract struct {
		enforcer *Enforcer
		ret      types.Descriptor
		args     []types.Descriptor
	}
)

// Default is the process-wide enforcer used by New and Disable.
var Default = NewEnforcer()

var errType = reflect.TypeOf((*error)(nil)).Elem()

// NewEnforcer returns an enforcer with checking enabled. Tests and embedders
// use separate enforcers so that disabling one does not leak into another.
func NewEnforcer() *Enforcer { return &Enforcer{} }

// Disable turns off all checking for contracts created from this enforcer.
func (e *Enforcer) Disable() { e.disabled.Store(true) }

// Enforcing reports whether contracts created from this enforcer are checked.
func (e *Enforcer) Enforcing() bool { return !e.disabled.Load() }

// New creates a contract from a return type token and ordered argument type
// tokens. Tokens may be type descriptors or bare reflect.Type values.
func (e *Enforcer) New(ret any, args ...any) *Contract {
	argDefns := make([]types.Descriptor, len(args))
	for i, tok := range args {
		argDefns[i] = types.Of(tok)
	}
	return &Contract{enforcer: e, ret: types.Of(ret), args: argDefns}
}

// New creates a contract on the Default enforcer.
func New(ret any, args ...any) *Contract { return Default.New(ret, args...) }

// Disable turns off checking process-wide for all contracts on the Default
// enforcer.
func Disable() { Default.Disable() }

// Return is the descriptor the wrapped function's return value must match.
func (c *Contract) Return() types.Descriptor { return c.ret }

// Args are the descriptors the wrapped function's arguments must match.
func (c *Contract) Args() []types.Descriptor { return c.args }

func (c *Contract) String() string {
	parts := make([]string, len(c.args))
	for i, defn := range c.args {
		parts[i] = defn.String()
	}
	return fmt.Sprintf("(%v) -> %v", strings.Join(parts, ", "), c.ret)
}

// CheckArgs checks actual arguments pairwise against the argument descriptors
// in declared order, up to the shorter of the two. It returns an
// ArgumentMismatch error for the first failing position.
func (c *Contract) CheckArgs(args []any) error {
	for i, n := 0, min(len(args), len(c.args)); i < n; i++ {
		if !c.args[i].Check(args[i]) {
			return &serrors.Error{
				Kind:     serrors.ArgumentMismatch,
				Position: i,
				Value:    args[i],
				Expected: c.args[i].String(),
			}
		}
	}
	return nil
}

// CheckReturn checks a returned value against the return descriptor.
func (c *Contract) CheckReturn(val any) error {
	if !c.ret.Check(val) {
		return &serrors.Error{
			Kind:     serrors.ReturnMismatch,
			Value:    val,
			Expected: c.ret.String(),
		}
	}
	return nil
}

// Wrap decorates a function with this contract and returns a new function of
// the same type. The target must be a non-variadic function whose parameter
// count equals the contract's argument descriptor count, otherwise Wrap fails
// with an ArityMismatch before the wrapped function can ever be called.
//
// Each call of the wrapped function reads the enforcer toggle once. When
// enforcing, arguments are checked before the target runs, so a mismatched
// call has no side effects; the return value is checked after the target
// runs, so its side effects have already happened when a ReturnMismatch is
// raised. A trailing error result is passed through unchecked, and when it is
// non-nil the return value check is skipped since the result carries no
// meaning on error.
func (c *Contract) Wrap(fn any) (any, error) {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return nil, fmt.Errorf("contract: target of type %T is not a function", fn)
	}
	ft := fv.Type()
	if ft.IsVariadic() {
		return nil, errors.New("contract: variadic functions cannot be wrapped")
	}
	if ft.NumIn() != len(c.args) {
		return nil, &serrors.Error{Kind: serrors.ArityMismatch, Want: len(c.args), Got: ft.NumIn()}
	}
	retIdx, errIdx := resultIndexes(ft)
	wrapped := reflect.MakeFunc(ft, func(in []reflect.Value) []reflect.Value {
		enforcing := c.enforcer.Enforcing()
		if enforcing {
			args := make([]any, len(in))
			for i, rv := range in {
				args[i] = rv.Interface()
			}
			if err := c.CheckArgs(args); err != nil {
				panic(err)
			}
		}
		out := fv.Call(in)
		if enforcing && (errIdx < 0 || out[errIdx].IsNil()) {
			var ret any
			if retIdx >= 0 {
				ret = out[retIdx].Interface()
			}
			if err := c.CheckReturn(ret); err != nil {
				panic(err)
			}
		}
		return out
	})
	return wrapped.Interface(), nil
}

// MustWrap is like Wrap but panics on decoration failure.
func (c *Contract) MustWrap(fn any) any {
	wrapped, err := c.Wrap(fn)
	if err != nil {
		panic(err)
	}
	return wrapped
}

// resultIndexes locates the checked result and the conventional trailing
// error result. A function with no results, or only an error result, has its
// return value checked as nil.
func resultIndexes(ft reflect.Type) (retIdx, errIdx int) {
	retIdx, errIdx = -1, -1
	n := ft.NumOut()
	if n > 0 && ft.Out(n-1) == errType {
		errIdx = n - 1
	}
	if n > 0 && errIdx != 0 {
		retIdx = 0
	}
	return retIdx, errIdx
}
