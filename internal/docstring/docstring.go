// Package docstring recovers structured documentation from free-text
// docstrings. Parsing is line-oriented and heuristic: any input produces
// a result, malformed content degrades into the surrounding text instead
// of being dropped.
package docstring

import (
	"regexp"
	"strings"

	"github.com/agentic-research/bzldoc/api"
)

const (
	headingArgs     = "Args:"
	headingReturns  = "Returns:"
	headingOutputs  = "Outputs:"
	headingExample  = "Example:"
	headingExamples = "Examples:"
)

// entryPattern matches an "name: description" entry line inside an Args:
// or Outputs: section. A leading "-" is tolerated even though the style
// guide does not recommend it.
var entryPattern = regexp.MustCompile("^\\s*-?\\s*([`{}%.\\w]+):\\s*(.*)")

// Parse decomposes raw docstring text. It never fails: text with no
// recognized structure becomes summary plus description.
func Parse(text string) api.Docstring {
	var (
		doc      api.Docstring
		freeText []string
	)
	lines := strings.Split(text, "\n")
	i := 0
	for i < len(lines) {
		switch strings.TrimSpace(lines[i]) {
		case headingArgs:
			doc.Params, i = parseEntries(lines, i, &freeText)
		case headingOutputs:
			doc.Outputs, i = parseEntries(lines, i, &freeText)
		case headingReturns:
			var body []string
			body, i = parseBlock(lines, i)
			doc.Returns = strings.TrimSpace(dedent(body))
		case headingExample, headingExamples:
			var body []string
			body, i = parseBlock(lines, i)
			doc.Example = strings.TrimSpace(dedent(body))
		default:
			freeText = append(freeText, lines[i])
			i++
		}
	}

	text = strings.TrimSpace(strings.Join(freeText, "\n"))
	if text != "" {
		summary, rest, _ := strings.Cut(text, "\n")
		doc.Summary = strings.TrimSpace(summary)
		doc.Description = strings.TrimSpace(dedent(strings.Split(rest, "\n")))
	}
	return doc
}

// parseEntries consumes the indented body of an Args:/Outputs: section
// starting at the heading line. Lines that do not introduce or continue
// an entry are handed back to the caller's free text so nothing is lost.
func parseEntries(lines []string, index int, freeText *[]string) ([]api.Param, int) {
	headingWS := leadingWhitespace(lines[index])
	var entries []api.Param
	current := -1
	i := index + 1
	for i < len(lines) {
		line := lines[i]
		if strings.TrimSpace(line) != "" && leadingWhitespace(line) <= headingWS {
			break
		}
		if m := entryPattern.FindStringSubmatch(line); m != nil {
			entries = append(entries, api.Param{Name: m[1], Description: strings.TrimSpace(m[2])})
			current = len(entries) - 1
		} else if current >= 0 {
			// Continuation lines are joined with a single space.
			if text := strings.TrimSpace(line); text != "" {
				if entries[current].Description != "" {
					entries[current].Description += " "
				}
				entries[current].Description += text
			}
		} else if strings.TrimSpace(line) != "" {
			*freeText = append(*freeText, line)
		}
		i++
	}
	return entries, i
}

// parseBlock consumes the indented body of a Returns:/Example: section
// starting at the heading line.
func parseBlock(lines []string, index int) ([]string, int) {
	headingWS := leadingWhitespace(lines[index])
	var body []string
	i := index + 1
	for i < len(lines) {
		line := lines[i]
		if strings.TrimSpace(line) != "" && leadingWhitespace(line) <= headingWS {
			break
		}
		body = append(body, line)
		i++
	}
	return body, i
}

func leadingWhitespace(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

func dedent(lines []string) string {
	margin := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if ws := leadingWhitespace(line); margin < 0 || ws < margin {
			margin = ws
		}
	}
	if margin <= 0 {
		return strings.Join(lines, "\n")
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= margin {
			out[i] = line[margin:]
		}
	}
	return strings.Join(out, "\n")
}

// Reserialize renders a Docstring back into minimal docstring text.
// Re-parsing the result yields an equivalent structure; the renderer does
// not use this, it exists so round-trip behavior is testable.
func Reserialize(d api.Docstring) string {
	var b strings.Builder
	b.WriteString(d.Summary)
	b.WriteString("\n")
	if d.Description != "" {
		b.WriteString("\n")
		b.WriteString(d.Description)
		b.WriteString("\n")
	}
	writeEntries := func(heading string, entries []api.Param) {
		if len(entries) == 0 {
			return
		}
		b.WriteString("\n")
		b.WriteString(heading)
		b.WriteString("\n")
		for _, e := range entries {
			b.WriteString("  ")
			b.WriteString(e.Name)
			b.WriteString(": ")
			b.WriteString(e.Description)
			b.WriteString("\n")
		}
	}
	writeEntries(headingArgs, d.Params)
	if d.Returns != "" {
		b.WriteString("\n" + headingReturns + "\n")
		b.WriteString(indent(d.Returns))
	}
	writeEntries(headingOutputs, d.Outputs)
	if d.Example != "" {
		b.WriteString("\n" + headingExample + "\n")
		b.WriteString(indent(d.Example))
	}
	return b.String()
}

func indent(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
