// Package manifest loads the HCL description of documentation libraries:
// named groupings of source files with dependencies on other libraries
// and per-file rename overrides.
//
//	library "go_rules" {
//	  srcs = ["go.bzl"]
//	  deps = ["core"]
//	  renames = {
//	    "go.bzl" = "go_rules.md"
//	  }
//	}
package manifest

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/agentic-research/bzldoc/internal/aggregate"
)

type manifestFile struct {
	Libraries []library `hcl:"library,block"`
}

type library struct {
	Name    string            `hcl:"name,label"`
	Srcs    []string          `hcl:"srcs"`
	Deps    []string          `hcl:"deps,optional"`
	Renames map[string]string `hcl:"renames,optional"`
}

// Load reads a manifest file and returns its library graph keyed by
// library name.
func Load(path string) (map[string]*aggregate.Node, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(src, path)
}

// Parse decodes manifest source and links the library graph. Duplicate
// library names and references to undeclared libraries are configuration
// errors.
func Parse(src []byte, filename string) (map[string]*aggregate.Node, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse manifest: %w", diags)
	}

	var mf manifestFile
	if diags := gohcl.DecodeBody(file.Body, nil, &mf); diags.HasErrors() {
		return nil, fmt.Errorf("decode manifest: %w", diags)
	}

	nodes := make(map[string]*aggregate.Node, len(mf.Libraries))
	for _, lib := range mf.Libraries {
		if _, dup := nodes[lib.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate library %q", filename, lib.Name)
		}
		nodes[lib.Name] = &aggregate.Node{
			Name:    lib.Name,
			Srcs:    lib.Srcs,
			Renames: lib.Renames,
		}
	}
	for _, lib := range mf.Libraries {
		node := nodes[lib.Name]
		for _, dep := range lib.Deps {
			target, ok := nodes[dep]
			if !ok {
				return nil, fmt.Errorf("%s: library %q depends on undeclared library %q", filename, lib.Name, dep)
			}
			node.Deps = append(node.Deps, target)
		}
	}
	return nodes, nil
}
