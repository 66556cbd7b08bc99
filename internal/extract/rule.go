package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/agentic-research/bzldoc/api"
	"github.com/agentic-research/bzldoc/internal/docstring"
	"github.com/agentic-research/bzldoc/internal/syntax"
)

// ruleFactory resolves the callee of a top-level call against the
// factory builtins, following load aliases.
func ruleFactory(env Environment, f *syntax.File, bindings Bindings, call *sitter.Node) (api.RuleKind, bool) {
	name, ok := f.CallName(call)
	if !ok || strings.Contains(name, ".") {
		return "", false
	}
	kind, ok := env.RuleFactories[bindings.Resolve(name)]
	return kind, ok
}

// ruleDoc extracts the schema of one rule/aspect binding. Values that
// cannot be statically evaluated degrade to placeholders; nothing here
// fails the file.
func ruleDoc(env Environment, f *syntax.File, bindings Bindings, name string, kind api.RuleKind, call *sitter.Node) api.RuleDoc {
	doc := api.RuleDoc{Name: name, Kind: kind}

	if attrs, ok := f.Keyword(call, "attrs"); ok {
		for _, entry := range f.DictEntries(attrs) {
			key, ok := f.Literal(entry.Key)
			if !ok {
				continue
			}
			attrName, ok := key.(string)
			if !ok {
				continue
			}
			doc.Attributes = append(doc.Attributes, attributeSchema(env, f, bindings, attrName, entry.Value))
		}
	}

	if outputs, ok := f.Keyword(call, "outputs"); ok {
		for _, entry := range f.DictEntries(outputs) {
			key, ok := f.Literal(entry.Key)
			if !ok {
				continue
			}
			outName, ok := key.(string)
			if !ok {
				continue
			}
			out := api.Output{Name: outName, Template: api.DefaultPlaceholder}
			if v, ok := f.Literal(entry.Value); ok {
				if tmpl, ok := v.(string); ok {
					out.Template = tmpl
				}
			}
			doc.Outputs = append(doc.Outputs, out)
		}
	}

	return doc
}

// attributeSchema statically evaluates one attr builder call.
func attributeSchema(env Environment, f *syntax.File, bindings Bindings, name string, value *sitter.Node) api.AttributeSchema {
	schema := api.AttributeSchema{Name: name, Type: api.AttrTypeUnknown}
	if value.Type() != "call" {
		return schema
	}

	if callee, ok := f.CallName(value); ok {
		module, builder, found := strings.Cut(callee, ".")
		if found && bindings.Resolve(module) == env.AttrModule {
			if t, ok := env.AttrBuilders[builder]; ok {
				schema.Type = t
			}
		}
	}

	_, keywords := f.CallArgs(value)
	hasDefault := false
	for _, kw := range keywords {
		switch kw.Name {
		case "mandatory":
			if v, ok := f.Literal(kw.Value); ok {
				if b, ok := v.(bool); ok {
					schema.Mandatory = b
				}
			}
		case "default":
			hasDefault = true
			if v, ok := f.Literal(kw.Value); ok {
				schema.Default = v
			} else {
				schema.Default = api.DefaultPlaceholder
			}
		case "doc":
			if str, ok := syntax.StringNode(kw.Value); ok {
				schema.Doc = f.StringValue(str)
			}
		}
	}
	// A declaration carrying both is inconsistent input; mandatory wins.
	if schema.Mandatory && hasDefault {
		schema.Default = nil
	}
	return schema
}

// applyRuleDocstring folds a parsed docstring into an extracted rule.
// Inline doc= values always win over docstring-derived descriptions.
func applyRuleDocstring(rule *api.RuleDoc, text string) {
	doc := docstring.Parse(text)
	for i := range rule.Attributes {
		attr := &rule.Attributes[i]
		if attr.Doc != "" {
			continue
		}
		for _, p := range doc.Params {
			if p.Name == attr.Name {
				attr.Doc = p.Description
				break
			}
		}
	}
	for i := range rule.Outputs {
		out := &rule.Outputs[i]
		for _, p := range doc.Outputs {
			if p.Name == out.Name {
				out.Description = p.Description
				break
			}
		}
	}
	rule.Doc = doc
}

// finishRule fills derived fields once docstring association is done:
// outputs with no description fall back to the declared template, and
// hidden attributes are dropped from the documented schema.
func finishRule(rule *api.RuleDoc) {
	for i := range rule.Outputs {
		if rule.Outputs[i].Description == "" {
			rule.Outputs[i].Description = rule.Outputs[i].Template
		}
	}
	visible := rule.Attributes[:0]
	for _, attr := range rule.Attributes {
		if !strings.HasPrefix(attr.Name, "_") {
			visible = append(visible, attr)
		}
	}
	rule.Attributes = visible
}
