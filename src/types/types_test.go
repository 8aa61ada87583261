package types

import (
	"math/big"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptorCheck(t *testing.T) {
	t.Parallel()
	cases := []struct {
		defn  Descriptor
		val   any
		match bool
	}{
		{Any, nil, true},
		{Any, 5, true},
		{Any, "str", true},
		{Any, []any{1, 2}, true},
		{Any, func() {}, true},
		{Numeric, 5, true},
		{Numeric, int8(5), true},
		{Numeric, uint16(5), true},
		{Numeric, 5.5, true},
		{Numeric, float32(5.5), true},
		{Numeric, big.NewInt(5), true},
		{Numeric, big.NewFloat(5.5), true},
		{Numeric, big.NewRat(1, 2), true},
		{Numeric, true, false},
		{Numeric, "5", false},
		{Numeric, nil, false},
		{Union(For[int](), For[string]()), 5, true},
		{Union(For[int](), For[string]()), "s", true},
		{Union(For[int](), For[string]()), []any{1}, false},
		{Union(For[int](), For[string]()), nil, false},
		{Optional(For[int]()), 5, true},
		{Optional(For[int]()), nil, true},
		{Optional(For[int]()), "s", false},
		{Optional(For[*int]()), (*int)(nil), true},
		{ListOf(For[int]()), []any{}, true},
		{ListOf(For[int]()), []any{1, 2, 3}, true},
		{ListOf(For[int]()), []int{1, 2, 3}, true},
		{ListOf(For[int]()), [3]int{1, 2, 3}, true},
		{ListOf(For[int]()), []any{1, "x"}, false},
		{ListOf(For[int]()), "not a list", false},
		{ListOf(For[int]()), nil, false},
		{TupleOf(For[int](), For[string]()), []any{1, "a"}, true},
		{TupleOf(For[int](), For[string]()), []any{1}, false},
		{TupleOf(For[int](), For[string]()), []any{1, "a", 2}, false},
		{TupleOf(For[int](), For[string]()), []any{"a", 1}, false},
		{TupleOf(For[int](), For[string]()), 5, false},
		{TupleOf(), []any{}, true},
		{TupleOf(), []any{1}, false},
		{TupleOf(), nil, false},
		{ListOf(TupleOf(Numeric, For[string]())), []any{[]any{1, "a"}, []any{2.5, "b"}}, true},
		{ListOf(TupleOf(Numeric, For[string]())), []any{[]any{1, "a"}, []any{"b", 2.5}}, false},
		{Union(Numeric, ListOf(Numeric)), []any{1, 2.5}, true},
		{Union(Numeric, ListOf(Numeric)), []any{1, "x"}, false},
	}

	for i, tc := range cases {
		assert.Equal(t, tc.match, tc.defn.Check(tc.val), "[%v] %#v against %v", i, tc.val, tc.defn)
	}
}

func TestDeep(t *testing.T) {
	t.Parallel()
	assert.True(t, Deep(5, reflect.TypeOf((*(int))(nil)).Elem()))
	assert.False(t, Deep("s", reflect.TypeOf((*(int))(nil)).Elem()))
	assert.True(t, Deep(5, Numeric))
	// a composite descriptor can hold bare type tokens directly
	assert.True(t, Deep("s", Union(reflect.TypeOf((*(int))(nil)).Elem(), reflect.TypeOf((*(string))(nil)).Elem())))
	assert.True(t, Deep(new(big.Int), reflect.TypeOf((*(*big.Int))(nil)).Elem()))
	// interface tokens match any implementation
	assert.True(t, Deep(assert.AnError, reflect.TypeOf((*(error))(nil)).Elem()))
	assert.False(t, Deep(nil, reflect.TypeOf((*(error))(nil)).Elem()))
}

func TestDescriptorString(t *testing.T) {
	t.Parallel()
	cases := []struct {
		defn     Descriptor
		expected string
	}{
		{Any, "<Any>"},
		{Numeric, "<Numeric>"},
		{For[int](), "int"},
		{For[string](), "string"},
		{Union(For[int](), For[string]()), "<int or string>"},
		{Union(For[int](), For[string](), For[bool]()), "<int, string, or bool>"},
		{Union(Numeric, For[string](), For[bool](), Any), "<<Numeric>, string, bool, or <Any>>"},
		{Optional(For[int]()), "<int option>"},
		{ListOf(For[int]()), "<int list>"},
		{ListOf(Union(For[int](), For[string]())), "<<int or string> list>"},
		{TupleOf(For[int](), For[string]()), "(int * string)"},
		{TupleOf(), "()"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, tc.defn.String())
	}
}

func TestTokenNormalization(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { Of(5) })
	assert.Panics(t, func() { Of(nil) })
	assert.Panics(t, func() { Union() })
	assert.Equal(t, Numeric, Of(Numeric))
	assert.Equal(t, For[int](), Of(reflect.TypeOf((*(int))(nil)).Elem()))
}
