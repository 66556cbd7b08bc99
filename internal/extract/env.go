package extract

import "github.com/agentic-research/bzldoc/api"

// Environment is the set of builtin factory names the extractors
// recognize. It is built once per invocation and threaded explicitly so
// concurrent extractions never share mutable state.
type Environment struct {
	// LoadName is the statement form that binds external symbols.
	LoadName string
	// RuleFactories maps a factory builtin to the kind of rule it defines.
	RuleFactories map[string]api.RuleKind
	// AttrModule is the module holding the attribute builders.
	AttrModule string
	// AttrBuilders maps an attribute builder name to the attribute type
	// it declares.
	AttrBuilders map[string]api.AttrType
}

// DefaultEnvironment returns the standard Starlark builtin names.
func DefaultEnvironment() Environment {
	return Environment{
		LoadName: "load",
		RuleFactories: map[string]api.RuleKind{
			"rule":            api.RuleKindRule,
			"aspect":          api.RuleKindAspect,
			"repository_rule": api.RuleKindRepositoryRule,
		},
		AttrModule: "attr",
		AttrBuilders: map[string]api.AttrType{
			"string":                  api.AttrTypeString,
			"int":                     api.AttrTypeInt,
			"bool":                    api.AttrTypeBool,
			"label":                   api.AttrTypeLabel,
			"label_list":              api.AttrTypeLabelList,
			"label_keyed_string_dict": api.AttrTypeLabelKeyedStringDict,
			"string_list":             api.AttrTypeStringList,
			"string_dict":             api.AttrTypeStringDict,
			"int_list":                api.AttrTypeIntList,
			"output":                  api.AttrTypeOutput,
			"output_list":             api.AttrTypeOutputList,
		},
	}
}
