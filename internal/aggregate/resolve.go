package aggregate

// Resolve computes the deduplicated, order-stable list of source files
// reachable from root and the merged rename map. Traversal is
// dependencies-first in declaration order, so a dependency's pages come
// before the requesting node's own; the same file reachable twice keeps
// its first position. Rename entries from nodes closer to the root
// override inherited ones, and the root's own entries always win.
func Resolve(root *Node) ([]string, map[string]string, error) {
	if err := detectCycles(root); err != nil {
		return nil, nil, err
	}

	var (
		files   []string
		seen    = map[string]bool{}
		visited = map[*Node]bool{}
	)
	var collect func(n *Node)
	collect = func(n *Node) {
		if visited[n] {
			return
		}
		visited[n] = true
		for _, dep := range n.Deps {
			collect(dep)
		}
		for _, src := range n.Srcs {
			if !seen[src] {
				seen[src] = true
				files = append(files, src)
			}
		}
	}
	collect(root)

	renames := map[string]string{}
	merged := map[*Node]bool{}
	var merge func(n *Node)
	merge = func(n *Node) {
		if merged[n] {
			return
		}
		merged[n] = true
		for _, dep := range n.Deps {
			merge(dep)
		}
		// Applied after all inherited entries, so this node overrides
		// anything deeper for the same key.
		for src, dest := range n.Renames {
			renames[src] = dest
		}
	}
	merge(root)

	return files, renames, nil
}

// detectCycles runs a three-color depth-first search over the graph
// before traversal, so a cyclic configuration fails fast instead of
// recursing forever. The returned error carries the cycle path.
func detectCycles(root *Node) error {
	const (
		white = iota // unvisited
		gray         // on the current stack
		black        // fully explored
	)
	color := map[*Node]int{}
	var stack []string

	var visit func(n *Node) *CycleError
	visit = func(n *Node) *CycleError {
		switch color[n] {
		case black:
			return nil
		case gray:
			cycle := append([]string{}, stack...)
			for i, name := range cycle {
				if name == n.Name {
					cycle = cycle[i:]
					break
				}
			}
			return &CycleError{Path: append(cycle, n.Name)}
		}
		color[n] = gray
		stack = append(stack, n.Name)
		for _, dep := range n.Deps {
			if err := visit(dep); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		color[n] = black
		return nil
	}
	if err := visit(root); err != nil {
		return err
	}
	return nil
}
