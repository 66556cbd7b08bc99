package api

// DefaultPlaceholder stands in for attribute and parameter defaults whose
// value is computed at load time and cannot be recovered statically.
const DefaultPlaceholder = "<computed>"

// AttrType identifies the builder used to declare a rule attribute.
type AttrType string

const (
	AttrTypeUnknown              AttrType = "unknown"
	AttrTypeString               AttrType = "string"
	AttrTypeInt                  AttrType = "int"
	AttrTypeBool                 AttrType = "bool"
	AttrTypeLabel                AttrType = "label"
	AttrTypeLabelList            AttrType = "label_list"
	AttrTypeLabelKeyedStringDict AttrType = "label_keyed_string_dict"
	AttrTypeStringList           AttrType = "string_list"
	AttrTypeStringDict           AttrType = "string_dict"
	AttrTypeIntList              AttrType = "int_list"
	AttrTypeOutput               AttrType = "output"
	AttrTypeOutputList           AttrType = "output_list"
)

// RuleKind identifies which factory builtin produced a rule binding.
type RuleKind string

const (
	RuleKindRule           RuleKind = "rule"
	RuleKindAspect         RuleKind = "aspect"
	RuleKindRepositoryRule RuleKind = "repository_rule"
)

// Docstring is the structured decomposition of one free-text
// documentation string.
type Docstring struct {
	// Summary is the first line of the docstring.
	Summary string `json:"summary,omitempty"`
	// Description is the remaining free text outside any section.
	Description string `json:"description,omitempty"`
	// Params holds the entries of the Args: section in source order.
	Params []Param `json:"params,omitempty"`
	// Returns holds the Returns: section text.
	Returns string `json:"returns,omitempty"`
	// Outputs holds the entries of the Outputs: section in source order.
	Outputs []Param `json:"outputs,omitempty"`
	// Example holds the dedented Example:/Examples: section text.
	Example string `json:"example,omitempty"`
}

// Empty reports whether no documentation was recovered at all.
func (d Docstring) Empty() bool {
	return d.Summary == "" && d.Description == "" && len(d.Params) == 0 &&
		d.Returns == "" && len(d.Outputs) == 0 && d.Example == ""
}

// Param is one name/description pair from an Args: or Outputs: section.
type Param struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// AttributeSchema describes one declared attribute of a rule.
type AttributeSchema struct {
	Name string   `json:"name"`
	Type AttrType `json:"type"`
	// Mandatory and Default are mutually exclusive; when a declaration
	// carries both, Mandatory wins and Default is dropped.
	Mandatory bool `json:"mandatory,omitempty"`
	// Default is the statically recovered default value, or
	// DefaultPlaceholder when the value is not a literal. Nil when the
	// declaration has no default.
	Default any    `json:"default,omitempty"`
	Doc     string `json:"doc,omitempty"`
}

// Output is one declared output template of a rule.
type Output struct {
	Name string `json:"name"`
	// Template is the output file name template from the declaration.
	Template    string `json:"template"`
	Description string `json:"description,omitempty"`
}

// RuleDoc is the extracted documentation for one rule or aspect binding.
type RuleDoc struct {
	Name       string            `json:"name"`
	Kind       RuleKind          `json:"kind"`
	Attributes []AttributeSchema `json:"attributes,omitempty"`
	Outputs    []Output          `json:"outputs,omitempty"`
	Doc        Docstring         `json:"doc"`
}

// Parameter is one parameter of a documented macro.
type Parameter struct {
	Name string `json:"name"`
	// Default is nil when the parameter has no default; non-literal
	// defaults are recorded as DefaultPlaceholder.
	Default  any  `json:"default,omitempty"`
	Variadic bool `json:"variadic,omitempty"`
}

// MacroDoc is the extracted documentation for one public function.
type MacroDoc struct {
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters,omitempty"`
	Doc        Docstring   `json:"doc"`
}

// FileDoc is the documentation set extracted from a single source file.
// Rules and Macros are ordered by first appearance in the source.
type FileDoc struct {
	// Path is the logical path of the source file.
	Path string `json:"path"`
	// OutputName is the resolved base name of the rendered page.
	OutputName string `json:"output_name,omitempty"`
	// Title and Description come from the file-level docstring; Title
	// defaults to the source path when the file has none.
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Rules       []RuleDoc  `json:"rules,omitempty"`
	Macros      []MacroDoc `json:"macros,omitempty"`
}

// Empty reports whether the file produced no documented definitions.
func (f FileDoc) Empty() bool {
	return len(f.Rules) == 0 && len(f.Macros) == 0
}
