package contract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbester/sig/src/serrors"
	"github.com/jbester/sig/src/types"
)

// violation runs fn and returns the contract error it panicked with, or nil
// if it ran to completion.
func violation(fn func()) (cerr *serrors.Error) {
	defer func() {
		if r := recover(); r != nil {
			var ok bool
			if cerr, ok = r.(*serrors.Error); !ok {
				panic(r)
			}
		}
	}()
	fn()
	return nil
}

func TestWrapArityMismatch(t *testing.T) {
	t.Parallel()
	c := NewEnforcer().New(types.Numeric, types.Numeric, types.Numeric, types.Numeric)
	_, err := c.Wrap(func(a, b int) int { return a + b })

	var cerr *serrors.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, serrors.ArityMismatch, cerr.Kind)
	assert.Equal(t, 3, cerr.Want)
	assert.Equal(t, 2, cerr.Got)
	assert.Panics(t, func() { c.MustWrap(func(a, b int) int { return a + b }) })
}

func TestWrapRejectsNonFunctions(t *testing.T) {
	t.Parallel()
	c := NewEnforcer().New(types.Any)
	_, err := c.Wrap(5)
	assert.Error(t, err)
	_, err = c.Wrap(nil)
	assert.Error(t, err)

	variadic := NewEnforcer().New(types.Any, types.ListOf(types.Any))
	_, err = variadic.Wrap(func(args ...any) any { return args })
	assert.Error(t, err)
}

func TestWrapChecksArguments(t *testing.T) {
	t.Parallel()
	calls := 0
	c := NewEnforcer().New(types.Numeric, types.Numeric, types.Numeric)
	add := c.MustWrap(func(a, b any) any {
		calls++
		return a.(int) + b.(int)
	}).(func(any, any) any)

	assert.Equal(t, 5, add(2, 3))
	assert.Equal(t, 1, calls)

	cerr := violation(func() { add(2, "x") })
	require.NotNil(t, cerr)
	assert.Equal(t, serrors.ArgumentMismatch, cerr.Kind)
	assert.Equal(t, 1, cerr.Position)
	assert.Equal(t, "x", cerr.Value)
	assert.Equal(t, "<Numeric>", cerr.Expected)
	// the target never ran for the failing call
	assert.Equal(t, 1, calls)
}

func TestWrapChecksReturnAfterCall(t *testing.T) {
	t.Parallel()
	calls := 0
	c := NewEnforcer().New(types.Numeric, types.Numeric)
	fn := c.MustWrap(func(any) any {
		calls++
		return "not a number"
	}).(func(any) any)

	cerr := violation(func() { fn(1) })
	require.NotNil(t, cerr)
	assert.Equal(t, serrors.ReturnMismatch, cerr.Kind)
	assert.Equal(t, "not a number", cerr.Value)
	assert.Equal(t, "<Numeric>", cerr.Expected)
	// the target already ran and its side effect stands
	assert.Equal(t, 1, calls)
}

func TestWrapKeepsTargetType(t *testing.T) {
	t.Parallel()
	c := NewEnforcer().New(types.Numeric, types.Numeric, types.Numeric)
	add, err := c.Wrap(func(a, b int) int { return a + b })
	require.NoError(t, err)

	typed, ok := add.(func(int, int) int)
	require.True(t, ok, "wrapping should preserve the function type")
	assert.Equal(t, 7, typed(3, 4))

	// a statically fine call can still violate the declared return contract
	strRet := NewEnforcer().New(types.For[string](), types.Numeric, types.Numeric)
	bad := strRet.MustWrap(func(a, b int) int { return a + b }).(func(int, int) int)
	cerr := violation(func() { bad(1, 2) })
	require.NotNil(t, cerr)
	assert.Equal(t, serrors.ReturnMismatch, cerr.Kind)
}

func TestWrapErrorResultConvention(t *testing.T) {
	t.Parallel()
	c := NewEnforcer().New(types.Numeric, types.For[string]())
	parse := c.MustWrap(func(s string) (any, error) {
		if s == "" {
			return nil, errors.New("empty")
		}
		return len(s), nil
	}).(func(string) (any, error))

	n, err := parse("abc")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// a non-nil error skips the return value check
	_, err = parse("")
	assert.Error(t, err)

	// a func with only an error result has a nil return value
	v := NewEnforcer().New(types.Optional(types.Numeric), types.For[string]())
	run := v.MustWrap(func(string) error { return nil }).(func(string) error)
	assert.NoError(t, run("ok"))
}

func TestDisableSkipsChecking(t *testing.T) {
	t.Parallel()
	e := NewEnforcer()
	assert.True(t, e.Enforcing())

	calls := 0
	concat := e.New(types.Numeric, types.Numeric, types.Numeric).MustWrap(func(a, b any) any {
		calls++
		return assert.AnError
	}).(func(any, any) any)

	e.Disable()
	assert.False(t, e.Enforcing())

	// type violating arguments and return value pass through unchecked
	res := concat("not", "numeric")
	assert.Equal(t, assert.AnError, res)
	assert.Equal(t, 1, calls)
}

func TestEnforcersAreIndependent(t *testing.T) {
	t.Parallel()
	a, b := NewEnforcer(), NewEnforcer()
	a.Disable()
	assert.False(t, a.Enforcing())
	assert.True(t, b.Enforcing())
	assert.True(t, Default.Enforcing())
}

func TestCheckArgs(t *testing.T) {
	t.Parallel()
	c := NewEnforcer().New(types.Any, types.Numeric, types.For[string]())
	assert.NoError(t, c.CheckArgs([]any{1, "a"}))
	// extra positions beyond the declared descriptors are not checked
	assert.NoError(t, c.CheckArgs([]any{1, "a", struct{}{}}))
	// a shorter call checks only the positions present
	assert.NoError(t, c.CheckArgs([]any{1}))

	err := c.CheckArgs([]any{"a", "b"})
	var cerr *serrors.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 0, cerr.Position)
}

func TestContractString(t *testing.T) {
	t.Parallel()
	c := NewEnforcer().New(types.Numeric, types.For[int](), types.Optional(types.For[string]()))
	assert.Equal(t, "(int, <string option>) -> <Numeric>", c.String())
}
