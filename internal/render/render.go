// Package render turns extracted documentation models into Markdown or
// HTML pages, one page per source file.
package render

import (
	"fmt"

	"github.com/agentic-research/bzldoc/api"
)

// Format selects the output flavor.
type Format string

const (
	Markdown Format = "markdown"
	HTML     Format = "html"
)

// ParseFormat validates a format name from the command line.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case Markdown, HTML:
		return Format(s), nil
	}
	return "", fmt.Errorf("invalid output format %q, possible formats are %q and %q", s, Markdown, HTML)
}

// Ext returns the file extension for pages of this format.
func (f Format) Ext() string {
	if f == HTML {
		return "html"
	}
	return "md"
}

// Page is one rendered documentation page.
type Page struct {
	// Name is the output file name inside the archive or directory.
	Name    string
	Content []byte
}

// Render produces one page per non-empty file doc, preserving order.
// Files with no documented definitions render no page.
func Render(format Format, docs []api.FileDoc) ([]Page, error) {
	pages := make([]Page, 0, len(docs))
	for _, doc := range docs {
		if doc.Empty() {
			continue
		}
		var (
			content []byte
			err     error
		)
		switch format {
		case HTML:
			content, err = htmlPage(doc)
		default:
			content, err = markdownPage(doc)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", doc.Path, err)
		}
		pages = append(pages, Page{Name: doc.OutputName, Content: content})
	}
	return pages, nil
}

// formatValue renders a recovered literal the way it looked in source.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case string:
		if val == api.DefaultPlaceholder {
			return val
		}
		return fmt.Sprintf("%q", val)
	case bool:
		if val {
			return "True"
		}
		return "False"
	case []any:
		out := "["
		for i, item := range val {
			if i > 0 {
				out += ", "
			}
			out += formatValue(item)
		}
		return out + "]"
	default:
		return fmt.Sprintf("%v", val)
	}
}
