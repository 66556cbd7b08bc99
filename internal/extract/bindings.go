package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/agentic-research/bzldoc/internal/syntax"
)

// Binding records where a locally bound name came from.
type Binding struct {
	// Module is the load path the symbol was imported from.
	Module string
	// Symbol is the exported name in that module.
	Symbol string
}

// Bindings is the symbol table of one file's load statements, keyed by
// local name. It is immutable once built.
type Bindings map[string]Binding

// LoadBindings scans the top-level load statements of a file. Load
// statements below the top level are not a supported pattern and are
// ignored; a file with no load statements yields an empty table.
func LoadBindings(env Environment, f *syntax.File) Bindings {
	bindings := make(Bindings)
	for _, stmt := range f.TopLevel() {
		call, ok := loadCall(env, f, stmt)
		if !ok {
			continue
		}
		positional, keywords := f.CallArgs(call)
		if len(positional) == 0 {
			continue
		}
		moduleNode, ok := syntax.StringNode(positional[0])
		if !ok {
			continue
		}
		module := f.StringValue(moduleNode)
		for _, arg := range positional[1:] {
			str, ok := syntax.StringNode(arg)
			if !ok {
				continue
			}
			name := f.StringValue(str)
			bindings[name] = Binding{Module: module, Symbol: name}
		}
		for _, kw := range keywords {
			str, ok := syntax.StringNode(kw.Value)
			if !ok {
				continue
			}
			bindings[kw.Name] = Binding{Module: module, Symbol: f.StringValue(str)}
		}
	}
	return bindings
}

func loadCall(env Environment, f *syntax.File, stmt *sitter.Node) (*sitter.Node, bool) {
	if stmt.Type() != "expression_statement" || stmt.NamedChildCount() != 1 {
		return nil, false
	}
	call := stmt.NamedChild(0)
	if call.Type() != "call" {
		return nil, false
	}
	name, ok := f.CallName(call)
	if !ok || name != env.LoadName {
		return nil, false
	}
	return call, true
}

// Resolve maps a local name back to the exported name it was imported
// under, falling back to the name itself for anything not imported.
func (b Bindings) Resolve(name string) string {
	if bind, ok := b[name]; ok {
		return bind.Symbol
	}
	return name
}
