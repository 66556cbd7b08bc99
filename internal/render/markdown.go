package render

import (
	"bytes"
	"text/template"

	"github.com/agentic-research/bzldoc/api"
)

// paramView pairs a macro parameter with the description recovered from
// the docstring Args: section.
type paramView struct {
	Name     string
	Default  any
	Variadic bool
	Doc      string
}

type macroView struct {
	api.MacroDoc
	Params []paramView
}

type pageView struct {
	api.FileDoc
	MacroViews []macroView
}

func newPageView(doc api.FileDoc) pageView {
	view := pageView{FileDoc: doc}
	for _, macro := range doc.Macros {
		mv := macroView{MacroDoc: macro}
		for _, p := range macro.Parameters {
			pv := paramView{Name: p.Name, Default: p.Default, Variadic: p.Variadic}
			for _, entry := range macro.Doc.Params {
				if entry.Name == p.Name {
					pv.Doc = entry.Description
					break
				}
			}
			mv.Params = append(mv.Params, pv)
		}
		view.MacroViews = append(view.MacroViews, mv)
	}
	return view
}

var markdownFuncs = template.FuncMap{
	"literal": formatValue,
}

var markdownTemplate = template.Must(template.New("markdown").Funcs(markdownFuncs).Parse(`# {{.Title}}

{{if .Description}}{{.Description}}

{{end}}{{range .Rules}}## {{.Name}}

{{if .Doc.Summary}}{{.Doc.Summary}}

{{end}}{{if .Doc.Description}}{{.Doc.Description}}

{{end}}{{if .Attributes}}### Attributes

| Name | Type | Default | Description |
| --- | --- | --- | --- |
{{range .Attributes}}| {{.Name}} | {{.Type}} | {{if .Mandatory}}required{{else}}{{literal .Default}}{{end}} | {{.Doc}} |
{{end}}
{{end}}{{if .Outputs}}### Outputs

{{range .Outputs}}* ` + "`{{.Template}}`" + `: {{.Description}}
{{end}}
{{end}}{{if .Doc.Example}}### Example

{{.Doc.Example}}

{{end}}{{end}}{{range .MacroViews}}## {{.Name}}

{{if .Doc.Summary}}{{.Doc.Summary}}

{{end}}{{if .Doc.Description}}{{.Doc.Description}}

{{end}}{{if .Params}}### Parameters

| Name | Default | Description |
| --- | --- | --- |
{{range .Params}}| {{if .Variadic}}*{{end}}{{.Name}} | {{literal .Default}} | {{.Doc}} |
{{end}}
{{end}}{{if .Doc.Returns}}### Returns

{{.Doc.Returns}}

{{end}}{{if .Doc.Example}}### Example

{{.Doc.Example}}

{{end}}{{end}}`))

func markdownPage(doc api.FileDoc) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdownTemplate.Execute(&buf, newPageView(doc)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
