package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/bzldoc/api"
)

func fileDocFixture() api.FileDoc {
	return api.FileDoc{
		Path:        "rules.bzl",
		OutputName:  "rules.md",
		Title:       "Build rules",
		Description: "Rules for building things.",
		Rules: []api.RuleDoc{{
			Name: "my_rule",
			Kind: api.RuleKindRule,
			Doc:  api.Docstring{Summary: "Builds a thing."},
			Attributes: []api.AttributeSchema{
				{Name: "srcs", Type: api.AttrTypeLabelList, Mandatory: true, Doc: "input files"},
				{Name: "out", Type: api.AttrTypeString, Default: "a.out"},
			},
			Outputs: []api.Output{
				{Name: "jar", Template: "%{name}.jar", Description: "the jar"},
			},
		}},
		Macros: []api.MacroDoc{{
			Name: "build_all",
			Doc: api.Docstring{
				Summary: "Builds everything.",
				Params:  []api.Param{{Name: "srcs", Description: "what to build"}},
				Returns: "Nothing.",
			},
			Parameters: []api.Parameter{
				{Name: "srcs", Default: []any{}},
				{Name: "kwargs", Variadic: true},
			},
		}},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("markdown")
	require.NoError(t, err)
	assert.Equal(t, "md", f.Ext())

	f, err = ParseFormat("html")
	require.NoError(t, err)
	assert.Equal(t, "html", f.Ext())

	_, err = ParseFormat("pdf")
	require.Error(t, err)
}

func TestRenderMarkdown(t *testing.T) {
	pages, err := Render(Markdown, []api.FileDoc{fileDocFixture()})
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "rules.md", pages[0].Name)

	out := string(pages[0].Content)
	assert.Contains(t, out, "# Build rules")
	assert.Contains(t, out, "## my_rule")
	assert.Contains(t, out, "| srcs | label_list | required | input files |")
	assert.Contains(t, out, `| out | string | "a.out" |`)
	assert.Contains(t, out, "`%{name}.jar`: the jar")
	assert.Contains(t, out, "## build_all")
	assert.Contains(t, out, "| *kwargs | None |")
	assert.Contains(t, out, "| srcs | [] | what to build |")
	assert.Contains(t, out, "Nothing.")
}

func TestRenderHTML(t *testing.T) {
	doc := fileDocFixture()
	doc.OutputName = "rules.html"
	pages, err := Render(HTML, []api.FileDoc{doc})
	require.NoError(t, err)
	require.Len(t, pages, 1)

	out := string(pages[0].Content)
	assert.Contains(t, out, "<h1>Build rules</h1>")
	assert.Contains(t, out, `<h2 id="my_rule">my_rule</h2>`)
	assert.Contains(t, out, "<td>input files</td>")
}

func TestRenderHTMLEscapesContent(t *testing.T) {
	doc := api.FileDoc{
		Path:       "x.bzl",
		OutputName: "x.html",
		Title:      "t",
		Rules: []api.RuleDoc{{
			Name: "r",
			Doc:  api.Docstring{Summary: "<script>alert(1)</script>"},
		}},
	}
	pages, err := Render(HTML, []api.FileDoc{doc})
	require.NoError(t, err)
	assert.NotContains(t, string(pages[0].Content), "<script>alert")
}

func TestRenderSkipsEmptyFiles(t *testing.T) {
	pages, err := Render(Markdown, []api.FileDoc{{Path: "empty.bzl", OutputName: "empty.md", Title: "empty"}})
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "None", formatValue(nil))
	assert.Equal(t, "True", formatValue(true))
	assert.Equal(t, "False", formatValue(false))
	assert.Equal(t, `"x"`, formatValue("x"))
	assert.Equal(t, "5", formatValue(5))
	assert.Equal(t, `["a", 1]`, formatValue([]any{"a", 1}))
	assert.Equal(t, api.DefaultPlaceholder, formatValue(api.DefaultPlaceholder))
}
