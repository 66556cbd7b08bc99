package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/agentic-research/bzldoc/api"
	"github.com/agentic-research/bzldoc/internal/docstring"
	"github.com/agentic-research/bzldoc/internal/syntax"
)

// macroDoc extracts documentation for one top-level function definition.
func macroDoc(f *syntax.File, def *sitter.Node) api.MacroDoc {
	doc := api.MacroDoc{
		Name:       f.Text(def.ChildByFieldName("name")),
		Parameters: parameterList(f, def.ChildByFieldName("parameters")),
	}
	if text, ok := bodyDocstring(f, def); ok {
		doc.Doc = docstring.Parse(text)
	}
	return doc
}

func parameterList(f *syntax.File, params *sitter.Node) []api.Parameter {
	if params == nil {
		return nil
	}
	count := int(params.NamedChildCount())
	out := make([]api.Parameter, 0, count)
	for i := 0; i < count; i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "identifier":
			out = append(out, api.Parameter{Name: f.Text(p)})
		case "default_parameter", "typed_default_parameter":
			param := api.Parameter{Name: f.Text(p.ChildByFieldName("name"))}
			if v, ok := f.Literal(p.ChildByFieldName("value")); ok {
				param.Default = v
			} else {
				param.Default = api.DefaultPlaceholder
			}
			out = append(out, param)
		case "typed_parameter":
			if name := p.NamedChild(0); name != nil {
				out = append(out, api.Parameter{Name: f.Text(name)})
			}
		case "list_splat_pattern", "dictionary_splat_pattern":
			name := strings.TrimLeft(f.Text(p), "*")
			out = append(out, api.Parameter{Name: name, Variadic: true})
		}
	}
	return out
}

// bodyDocstring returns the string literal that is the first statement of
// the function body, if any.
func bodyDocstring(f *syntax.File, def *sitter.Node) (string, bool) {
	body := def.ChildByFieldName("body")
	if body == nil || body.NamedChildCount() == 0 {
		return "", false
	}
	str, ok := syntax.StringNode(body.NamedChild(0))
	if !ok {
		return "", false
	}
	return f.StringValue(str), true
}
