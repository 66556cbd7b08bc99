// Package extract turns parsed source files into documentation models.
// Recognition is purely static: a rule is any top-level binding whose
// right-hand side is a call to a rule factory builtin, resolved through
// the file's load statements. Extraction anomalies (missing docstrings,
// computed values) degrade to placeholders and never fail a file.
package extract

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/agentic-research/bzldoc/api"
	"github.com/agentic-research/bzldoc/internal/docstring"
	"github.com/agentic-research/bzldoc/internal/syntax"
)

// File extracts the documentation set of one parsed source file. Rules
// and macros are ordered by first appearance; a name rebound later in
// the file keeps its original position but the final binding wins.
func File(env Environment, f *syntax.File) *api.FileDoc {
	doc := &api.FileDoc{Path: f.Path}
	bindings := LoadBindings(env, f)
	statements := f.TopLevel()

	// A string literal leading the module documents the file itself.
	moduleDoc := -1
	for i, stmt := range statements {
		if stmt.Type() == "comment" {
			continue
		}
		if str, ok := syntax.StringNode(stmt); ok {
			parsed := docstring.Parse(f.StringValue(str))
			doc.Title = parsed.Summary
			doc.Description = parsed.Description
			moduleDoc = i
		}
		break
	}
	if doc.Title == "" {
		doc.Title = filepath.Base(f.Path)
	}

	var (
		rules       []api.RuleDoc
		macros      []api.MacroDoc
		ruleStmt    = map[string]int{}
		ruleOrder   []string
		macroOrder  []string
		macroByName = map[string]api.MacroDoc{}
		ruleByName  = map[string]api.RuleDoc{}
	)
	drop := func(name string) {
		delete(ruleByName, name)
		delete(macroByName, name)
		delete(ruleStmt, name)
	}

	for i, stmt := range statements {
		switch stmt.Type() {
		case "function_definition":
			name := f.Text(stmt.ChildByFieldName("name"))
			if !Public(name) {
				continue
			}
			drop(name)
			macroOrder = appendOnce(macroOrder, name)
			macroByName[name] = macroDoc(f, stmt)
		case "expression_statement":
			name, rhs, ok := assignment(f, stmt)
			if !ok || !Public(name) {
				continue
			}
			kind, isRule := ruleFactory(env, f, bindings, rhs)
			drop(name)
			if !isRule {
				continue
			}
			ruleOrder = appendOnce(ruleOrder, name)
			ruleByName[name] = ruleDoc(env, f, bindings, name, kind, rhs)
			ruleStmt[name] = i
		}
	}

	for _, name := range ruleOrder {
		rule, ok := ruleByName[name]
		if !ok {
			continue
		}
		if text, ok := associatedDocstring(f, statements, ruleStmt[name], moduleDoc); ok {
			applyRuleDocstring(&rule, text)
		}
		finishRule(&rule)
		rules = append(rules, rule)
	}
	for _, name := range macroOrder {
		if macro, ok := macroByName[name]; ok {
			macros = append(macros, macro)
		}
	}

	doc.Rules = rules
	doc.Macros = macros
	return doc
}

// Public reports whether a name is part of the file's documented surface.
func Public(name string) bool {
	return name != "" && !strings.HasPrefix(name, "_")
}

func appendOnce(order []string, name string) []string {
	for _, existing := range order {
		if existing == name {
			return order
		}
	}
	return append(order, name)
}

// assignment unwraps a top-level `name = <expression>` statement.
func assignment(f *syntax.File, stmt *sitter.Node) (string, *sitter.Node, bool) {
	if stmt.NamedChildCount() != 1 {
		return "", nil, false
	}
	assign := stmt.NamedChild(0)
	if assign.Type() != "assignment" {
		return "", nil, false
	}
	left := assign.ChildByFieldName("left")
	right := assign.ChildByFieldName("right")
	if left == nil || right == nil || left.Type() != "identifier" {
		return "", nil, false
	}
	return f.Text(left), right, true
}

// associatedDocstring finds the documentation attached to the binding at
// statement index i. The convention is a bare string literal immediately
// after the binding; a string literal or comment block immediately above
// it is accepted as a fallback.
func associatedDocstring(f *syntax.File, statements []*sitter.Node, i, moduleDoc int) (string, bool) {
	if i+1 < len(statements) {
		if str, ok := syntax.StringNode(statements[i+1]); ok {
			return f.StringValue(str), true
		}
	}
	if i-1 >= 0 && i-1 != moduleDoc {
		if str, ok := syntax.StringNode(statements[i-1]); ok {
			return f.StringValue(str), true
		}
		if statements[i-1].Type() == "comment" {
			var lines []string
			for j := i - 1; j >= 0 && statements[j].Type() == "comment"; j-- {
				text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(f.Text(statements[j])), "#"))
				lines = append([]string{text}, lines...)
			}
			return strings.Join(lines, "\n"), true
		}
	}
	return "", false
}
