// Package aggregate computes the working set of a documentation request:
// the transitive closure of source files across a DAG of library nodes,
// and the merged rename map that decides output page names.
package aggregate

import (
	"fmt"
	"strings"
)

// Node is one logical grouping of source files. Nodes reference each
// other through Deps and must form a DAG; a cycle is a configuration
// error detected before any traversal.
type Node struct {
	Name string
	// Srcs are the node's own source files, in declaration order.
	Srcs []string
	// Deps are the nodes this one aggregates, in declaration order.
	Deps []*Node
	// Renames is this node's rename fragment, keyed by source file.
	Renames map[string]string
}

// CycleError reports a dependency cycle, with the full path from the
// first repeated node back to itself.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle: %s", strings.Join(e.Path, " -> "))
}

// CollisionError reports two source files resolving to the same output
// name after renames are applied.
type CollisionError struct {
	Output string
	First  string
	Second string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("conflicting output file %q for input files %s and %s",
		e.Output, e.First, e.Second)
}
