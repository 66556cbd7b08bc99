package syntax

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parse is a test helper that parses Starlark source.
func parse(t *testing.T, src string) *File {
	t.Helper()
	f, err := Parse(context.Background(), "test.bzl", []byte(src))
	require.NoError(t, err)
	return f
}

func TestUnquote(t *testing.T) {
	cases := map[string]string{
		`"hello"`:            "hello",
		`'hello'`:            "hello",
		`"""multi\nline"""`:  "multi\nline",
		`'''doc'''`:          "doc",
		`r"raw\n"`:           `raw\n`,
		`"esc\"aped"`:        `esc"aped`,
		`"tab\there"`:        "tab\there",
		"not a string":       "not a string",
	}
	for input, want := range cases {
		assert.Equal(t, want, Unquote(input), "input %q", input)
	}
}

func TestTopLevel(t *testing.T) {
	f := parse(t, "x = 1\n\ndef foo():\n    pass\n")
	stmts := f.TopLevel()
	require.Len(t, stmts, 2)
	assert.Equal(t, "expression_statement", stmts[0].Type())
	assert.Equal(t, "function_definition", stmts[1].Type())
}

func TestLiteral(t *testing.T) {
	f := parse(t, `x = [1, -2, "three", True, False, None, 1.5, ["nested"]]`)
	stmts := f.TopLevel()
	require.Len(t, stmts, 1)
	assign := stmts[0].NamedChild(0)
	require.Equal(t, "assignment", assign.Type())

	v, ok := f.Literal(assign.ChildByFieldName("right"))
	require.True(t, ok)
	assert.Equal(t, []any{1, -2, "three", true, false, nil, 1.5, []any{"nested"}}, v)
}

func TestLiteralDict(t *testing.T) {
	f := parse(t, `x = {"a": 1, "b": "two"}`)
	assign := f.TopLevel()[0].NamedChild(0)

	v, ok := f.Literal(assign.ChildByFieldName("right"))
	require.True(t, ok)
	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, v)
}

func TestLiteralRejectsComputedValues(t *testing.T) {
	f := parse(t, `x = some_function() + y`)
	assign := f.TopLevel()[0].NamedChild(0)

	_, ok := f.Literal(assign.ChildByFieldName("right"))
	assert.False(t, ok)
}

func TestCallNameAndArgs(t *testing.T) {
	f := parse(t, `r = attr.string(default = "x", mandatory = True)`)
	assign := f.TopLevel()[0].NamedChild(0)
	call := assign.ChildByFieldName("right")
	require.Equal(t, "call", call.Type())

	name, ok := f.CallName(call)
	require.True(t, ok)
	assert.Equal(t, "attr.string", name)

	positional, keywords := f.CallArgs(call)
	assert.Empty(t, positional)
	require.Len(t, keywords, 2)
	assert.Equal(t, "default", keywords[0].Name)
	assert.Equal(t, "mandatory", keywords[1].Name)

	v, ok := f.Keyword(call, "default")
	require.True(t, ok)
	lit, ok := f.Literal(v)
	require.True(t, ok)
	assert.Equal(t, "x", lit)
}

func TestDictEntriesPreserveOrder(t *testing.T) {
	f := parse(t, `attrs = {"srcs": 1, "deps": 2, "out": 3}`)
	assign := f.TopLevel()[0].NamedChild(0)

	entries := f.DictEntries(assign.ChildByFieldName("right"))
	require.Len(t, entries, 3)
	var keys []string
	for _, e := range entries {
		v, ok := f.Literal(e.Key)
		require.True(t, ok)
		keys = append(keys, v.(string))
	}
	assert.Equal(t, []string{"srcs", "deps", "out"}, keys)
}

func TestStringNode(t *testing.T) {
	f := parse(t, "\"\"\"A docstring.\"\"\"\n\nx = 1\n")
	stmts := f.TopLevel()
	require.Len(t, stmts, 2)

	str, ok := StringNode(stmts[0])
	require.True(t, ok)
	assert.Equal(t, "A docstring.", f.StringValue(str))

	_, ok = StringNode(stmts[1])
	assert.False(t, ok)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(context.Background(), "does/not/exist.bzl")
	require.Error(t, err)
}
