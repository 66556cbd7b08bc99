// Package syntax wraps the Tree-sitter parser for Starlark source files.
// Starlark is syntactically a Python subset, so files are parsed with the
// Python grammar; extraction only ever inspects the statement shapes that
// Starlark permits.
package syntax

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// File is one parsed source file. The tree is read-only for the lifetime
// of the extraction pass.
type File struct {
	Path   string
	Source []byte
	Root   *sitter.Node

	// tree keeps the underlying C tree alive for as long as nodes are
	// referenced.
	tree *sitter.Tree
}

// Parse parses source text into a File.
func Parse(ctx context.Context, path string, src []byte) (*File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if tree == nil || tree.RootNode() == nil {
		return nil, fmt.Errorf("parse %s: no syntax tree produced", path)
	}
	return &File{Path: path, Source: src, Root: tree.RootNode(), tree: tree}, nil
}

// ParseFile reads and parses the file at path.
func ParseFile(ctx context.Context, path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(ctx, path, src)
}

// Text returns the source text covered by n.
func (f *File) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(f.Source)
}

// TopLevel returns the named top-level statements of the module in order.
func (f *File) TopLevel() []*sitter.Node {
	count := int(f.Root.NamedChildCount())
	nodes := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		nodes = append(nodes, f.Root.NamedChild(i))
	}
	return nodes
}

// StringNode reports whether n is a string literal, unwrapping a bare
// expression statement first.
func StringNode(n *sitter.Node) (*sitter.Node, bool) {
	if n == nil {
		return nil, false
	}
	if n.Type() == "expression_statement" && n.NamedChildCount() == 1 {
		n = n.NamedChild(0)
	}
	if n.Type() == "string" {
		return n, true
	}
	return nil, false
}

// StringValue returns the unquoted value of a string literal node.
func (f *File) StringValue(n *sitter.Node) string {
	return Unquote(f.Text(n))
}

// Unquote strips quotes and prefixes from a string token and resolves the
// common escape sequences. It is forgiving: input that does not look like
// a string literal is returned unchanged.
func Unquote(tok string) string {
	raw := false
	for len(tok) > 0 {
		switch tok[0] {
		case 'r', 'R':
			raw = true
			tok = tok[1:]
			continue
		case 'b', 'B':
			tok = tok[1:]
			continue
		}
		break
	}
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(tok, q) && strings.HasSuffix(tok, q) && len(tok) >= 2*len(q) {
			tok = tok[len(q) : len(tok)-len(q)]
			if !raw {
				tok = unescape(tok)
			}
			return tok
		}
	}
	return tok
}

func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '"', '\'', '\\':
			b.WriteByte(s[i])
		case '\n':
			// Line continuation.
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Literal statically evaluates n as a literal value. It returns ok=false
// for anything computed (calls, identifiers, comprehensions), in which
// case callers degrade to a placeholder rather than failing.
func (f *File) Literal(n *sitter.Node) (any, bool) {
	if n == nil {
		return nil, false
	}
	switch n.Type() {
	case "string":
		return f.StringValue(n), true
	case "integer":
		v, err := strconv.ParseInt(strings.ReplaceAll(f.Text(n), "_", ""), 0, 64)
		if err != nil {
			return nil, false
		}
		return int(v), true
	case "float":
		v, err := strconv.ParseFloat(f.Text(n), 64)
		if err != nil {
			return nil, false
		}
		return v, true
	case "true":
		return true, true
	case "false":
		return false, true
	case "none":
		return nil, true
	case "unary_operator":
		arg := n.ChildByFieldName("argument")
		if arg == nil {
			return nil, false
		}
		v, ok := f.Literal(arg)
		if !ok || !strings.HasPrefix(f.Text(n), "-") {
			return nil, false
		}
		switch num := v.(type) {
		case int:
			return -num, true
		case float64:
			return -num, true
		}
		return nil, false
	case "list", "tuple":
		count := int(n.NamedChildCount())
		items := make([]any, 0, count)
		for i := 0; i < count; i++ {
			child := n.NamedChild(i)
			if child.Type() == "comment" {
				continue
			}
			v, ok := f.Literal(child)
			if !ok {
				return nil, false
			}
			items = append(items, v)
		}
		return items, true
	case "dictionary":
		out := make(map[string]any)
		for _, entry := range f.DictEntries(n) {
			key, ok := f.Literal(entry.Key)
			if !ok {
				return nil, false
			}
			ks, ok := key.(string)
			if !ok {
				return nil, false
			}
			v, ok := f.Literal(entry.Value)
			if !ok {
				return nil, false
			}
			out[ks] = v
		}
		return out, true
	case "parenthesized_expression":
		if n.NamedChildCount() == 1 {
			return f.Literal(n.NamedChild(0))
		}
	}
	return nil, false
}

// CallName returns the dotted name of the function being called, e.g.
// "rule" or "attr.string". ok=false when the callee is not a plain name
// or attribute access.
func (f *File) CallName(call *sitter.Node) (string, bool) {
	if call == nil || call.Type() != "call" {
		return "", false
	}
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return "", false
	}
	switch fn.Type() {
	case "identifier":
		return f.Text(fn), true
	case "attribute":
		obj := fn.ChildByFieldName("object")
		attr := fn.ChildByFieldName("attribute")
		if obj == nil || attr == nil || obj.Type() != "identifier" {
			return "", false
		}
		return f.Text(obj) + "." + f.Text(attr), true
	}
	return "", false
}

// Keyword is one name=value argument of a call.
type Keyword struct {
	Name  string
	Value *sitter.Node
}

// CallArgs splits a call's argument list into positional arguments and
// keyword arguments, both in declaration order.
func (f *File) CallArgs(call *sitter.Node) (positional []*sitter.Node, keywords []Keyword) {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil, nil
	}
	count := int(args.NamedChildCount())
	for i := 0; i < count; i++ {
		arg := args.NamedChild(i)
		switch arg.Type() {
		case "comment":
		case "keyword_argument":
			name := arg.ChildByFieldName("name")
			value := arg.ChildByFieldName("value")
			if name != nil && value != nil {
				keywords = append(keywords, Keyword{Name: f.Text(name), Value: value})
			}
		default:
			positional = append(positional, arg)
		}
	}
	return positional, keywords
}

// Keyword returns the value node of the named keyword argument of a call.
func (f *File) Keyword(call *sitter.Node, name string) (*sitter.Node, bool) {
	_, keywords := f.CallArgs(call)
	for _, kw := range keywords {
		if kw.Name == name {
			return kw.Value, true
		}
	}
	return nil, false
}

// DictEntry is one key/value pair of a dictionary literal.
type DictEntry struct {
	Key   *sitter.Node
	Value *sitter.Node
}

// DictEntries returns the pairs of a dictionary literal in declaration
// order. Non-pair children (spreads, comments) are skipped.
func (f *File) DictEntries(dict *sitter.Node) []DictEntry {
	if dict == nil || dict.Type() != "dictionary" {
		return nil
	}
	count := int(dict.NamedChildCount())
	entries := make([]DictEntry, 0, count)
	for i := 0; i < count; i++ {
		pair := dict.NamedChild(i)
		if pair.Type() != "pair" {
			continue
		}
		key := pair.ChildByFieldName("key")
		value := pair.ChildByFieldName("value")
		if key != nil && value != nil {
			entries = append(entries, DictEntry{Key: key, Value: value})
		}
	}
	return entries
}
