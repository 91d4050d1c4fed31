package typeexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompose(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want Decomposed
	}{
		{"Foo", Decomposed{Base: "Foo"}},
		{"Foo?", Decomposed{Base: "Foo", IsOptional: true}},
		{"Foo??", Decomposed{Base: "Foo", IsOptional: true}},
		{"Foo!", Decomposed{Base: "Foo", IsOptional: true}},
		{"[Foo]", Decomposed{Base: "Foo", IsArray: true}},
		{"[Foo]?", Decomposed{Base: "Foo", IsArray: true, IsOptional: true}},
		{"[Foo?]", Decomposed{Base: "Foo", IsArray: true, IsOptional: true}},
		{"[String: Foo]", Decomposed{Base: "Dictionary", GenericArgs: []string{"String", "Foo"}}},
		{"Dictionary<String, Foo>", Decomposed{Base: "Dictionary", GenericArgs: []string{"String", "Foo"}}},
		{"Set<Foo>", Decomposed{Base: "Set", GenericArgs: []string{"Foo"}}},
		{"Result<Foo, Error>", Decomposed{Base: "Result", GenericArgs: []string{"Foo", "Error"}}},
		{"Swift.Array<Int>", Decomposed{Base: "Array", GenericArgs: []string{"Int"}}},
		{"Foundation.Date", Decomposed{Base: "Date"}},
		{"(String, Foo) -> Bar", Decomposed{Base: "Closure"}},
		{"() -> Void", Decomposed{Base: "Closure"}},
		{"@escaping (Int) -> Void", Decomposed{Base: "Closure"}},
		{"inout Foo", Decomposed{Base: "Foo"}},
		{"some View", Decomposed{Base: "View"}},
		{"any Repository", Decomposed{Base: "Repository"}},
		{"(Foo)", Decomposed{Base: "Foo"}},
		{"(Foo, Bar)", Decomposed{Base: "Tuple", GenericArgs: []string{"Foo", "Bar"}}},
		{"()", Decomposed{Base: "Void"}},
		{"", Decomposed{Base: "Any"}},
		{"   ", Decomposed{Base: "Any"}},
		{"???", Decomposed{Base: "Any", IsOptional: true}},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, Decompose(tc.raw))
		})
	}
}

func TestDecomposeNestedGenerics(t *testing.T) {
	t.Parallel()

	d := Decompose("Dictionary<String, [Foo]>")
	assert.Equal(t, "Dictionary", d.Base)
	assert.Equal(t, []string{"String", "[Foo]"}, d.GenericArgs)

	d = Decompose("Result<Dictionary<String, Foo>, APIError>")
	assert.Equal(t, "Result", d.Base)
	require.Len(t, d.GenericArgs, 2)
	assert.Equal(t, "Dictionary<String, Foo>", d.GenericArgs[0])
	assert.Equal(t, "APIError", d.GenericArgs[1])
}

func TestSplitTopLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		args string
		want []string
	}{
		{"String, Foo", []string{"String", "Foo"}},
		{"Dictionary<String, Int>, Foo", []string{"Dictionary<String, Int>", "Foo"}},
		{"(Int, Int) -> Bool, Foo", []string{"(Int, Int) -> Bool", "Foo"}},
		{"[String: Int], Foo", []string{"[String: Int]", "Foo"}},
		{"Foo", []string{"Foo"}},
		{"", nil},
		{" , ", nil},
	}

	for _, tc := range cases {
		t.Run(tc.args, func(t *testing.T) {
			assert.Equal(t, tc.want, SplitTopLevel(tc.args))
		})
	}
}

func TestClosure(t *testing.T) {
	t.Parallel()

	params, ret, ok := Closure("(String, Foo) -> Bar")
	require.True(t, ok)
	assert.Equal(t, []string{"String", "Foo"}, params)
	assert.Equal(t, "Bar", ret)

	params, ret, ok = Closure("() -> Void")
	require.True(t, ok)
	assert.Empty(t, params)
	assert.Empty(t, ret)

	params, ret, ok = Closure("@escaping (Result<Foo, Error>) -> ()")
	require.True(t, ok)
	assert.Equal(t, []string{"Result<Foo, Error>"}, params)
	assert.Empty(t, ret)

	// Curried: splits at the first top-level arrow.
	params, ret, ok = Closure("(Int) -> (Int) -> Int")
	require.True(t, ok)
	assert.Equal(t, []string{"Int"}, params)
	assert.Equal(t, "(Int) -> Int", ret)

	// Optional closures carry an extra paren level forced by the "?".
	params, ret, ok = Closure("((Order) -> Void)?")
	require.True(t, ok)
	assert.Equal(t, []string{"Order"}, params)
	assert.Empty(t, ret)

	params, ret, ok = Closure("((Int, Foo) -> Bar)!")
	require.True(t, ok)
	assert.Equal(t, []string{"Int", "Foo"}, params)
	assert.Equal(t, "Bar", ret)

	_, _, ok = Closure("Foo")
	assert.False(t, ok)

	// Parenthesized non-closures stay non-closures.
	_, _, ok = Closure("(Foo)")
	assert.False(t, ok)

	// Arrow nested inside generics is not a closure at the top level.
	_, _, ok = Closure("Dictionary<String, (Int) -> Void>")
	assert.False(t, ok)
}

func TestIsPrimitive(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"Int", "String", "Bool", "Date", "UUID", "Void", "Array", "Dictionary"} {
		assert.True(t, IsPrimitive(name), name)
	}
	for _, name := range []string{"Foo", "UserService", "Error", "UIView"} {
		assert.False(t, IsPrimitive(name), name)
	}
}
