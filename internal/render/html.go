package render

import (
	"bytes"
	"html/template"

	"github.com/agentic-research/bzldoc/api"
)

var htmlTemplate = template.Must(template.New("html").Funcs(template.FuncMap{
	"literal": formatValue,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Description}}<p>{{.Description}}</p>{{end}}
{{range .Rules}}
<h2 id="{{.Name}}">{{.Name}}</h2>
{{if .Doc.Summary}}<p>{{.Doc.Summary}}</p>{{end}}
{{if .Doc.Description}}<p>{{.Doc.Description}}</p>{{end}}
{{if .Attributes}}
<h3>Attributes</h3>
<table>
<tr><th>Name</th><th>Type</th><th>Default</th><th>Description</th></tr>
{{range .Attributes}}<tr><td>{{.Name}}</td><td>{{.Type}}</td><td>{{if .Mandatory}}required{{else}}{{literal .Default}}{{end}}</td><td>{{.Doc}}</td></tr>
{{end}}</table>
{{end}}
{{if .Outputs}}
<h3>Outputs</h3>
<ul>
{{range .Outputs}}<li><code>{{.Template}}</code>: {{.Description}}</li>
{{end}}</ul>
{{end}}
{{if .Doc.Example}}
<h3>Example</h3>
<pre>{{.Doc.Example}}</pre>
{{end}}
{{end}}
{{range .MacroViews}}
<h2 id="{{.Name}}">{{.Name}}</h2>
{{if .Doc.Summary}}<p>{{.Doc.Summary}}</p>{{end}}
{{if .Doc.Description}}<p>{{.Doc.Description}}</p>{{end}}
{{if .Params}}
<h3>Parameters</h3>
<table>
<tr><th>Name</th><th>Default</th><th>Description</th></tr>
{{range .Params}}<tr><td>{{if .Variadic}}*{{end}}{{.Name}}</td><td>{{literal .Default}}</td><td>{{.Doc}}</td></tr>
{{end}}</table>
{{end}}
{{if .Doc.Returns}}
<h3>Returns</h3>
<p>{{.Doc.Returns}}</p>
{{end}}
{{if .Doc.Example}}
<h3>Example</h3>
<pre>{{.Doc.Example}}</pre>
{{end}}
{{end}}
</body>
</html>
`))

func htmlPage(doc api.FileDoc) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, newPageView(doc)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
