package aggregate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDepsBeforeOwnSources(t *testing.T) {
	base := &Node{Name: "base", Srcs: []string{"base.bzl"}}
	extra := &Node{Name: "extra", Srcs: []string{"extra.bzl"}}
	root := &Node{Name: "root", Srcs: []string{"root.bzl"}, Deps: []*Node{base, extra}}

	files, _, err := Resolve(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"base.bzl", "extra.bzl", "root.bzl"}, files)
}

func TestResolveDeduplicatesDiamond(t *testing.T) {
	shared := &Node{Name: "shared", Srcs: []string{"shared.bzl"}}
	left := &Node{Name: "left", Srcs: []string{"left.bzl"}, Deps: []*Node{shared}}
	right := &Node{Name: "right", Srcs: []string{"right.bzl"}, Deps: []*Node{shared}}
	root := &Node{Name: "root", Srcs: []string{"root.bzl"}, Deps: []*Node{left, right}}

	files, _, err := Resolve(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"shared.bzl", "left.bzl", "right.bzl", "root.bzl"}, files)
}

func TestResolveSameFileInTwoNodes(t *testing.T) {
	a := &Node{Name: "a", Srcs: []string{"common.bzl", "a.bzl"}}
	b := &Node{Name: "b", Srcs: []string{"common.bzl", "b.bzl"}}
	root := &Node{Name: "root", Deps: []*Node{a, b}}

	files, _, err := Resolve(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"common.bzl", "a.bzl", "b.bzl"}, files)
}

func TestResolveMonotonicUnderEdgeRemoval(t *testing.T) {
	dep := &Node{Name: "dep", Srcs: []string{"dep.bzl"}}
	root := &Node{Name: "root", Srcs: []string{"root.bzl"}, Deps: []*Node{dep}}

	withEdge, _, err := Resolve(root)
	require.NoError(t, err)

	root.Deps = nil
	withoutEdge, _, err := Resolve(root)
	require.NoError(t, err)

	assert.Subset(t, withEdge, withoutEdge)
	assert.Less(t, len(withoutEdge), len(withEdge))
}

func TestResolveRenameRootWins(t *testing.T) {
	dep := &Node{
		Name:    "dep",
		Srcs:    []string{"lib.bzl"},
		Renames: map[string]string{"lib.bzl": "from_dep.md", "other.bzl": "inherited.md"},
	}
	root := &Node{
		Name:    "root",
		Deps:    []*Node{dep},
		Renames: map[string]string{"lib.bzl": "from_root.md"},
	}

	_, renames, err := Resolve(root)
	require.NoError(t, err)
	assert.Equal(t, "from_root.md", renames["lib.bzl"])
	assert.Equal(t, "inherited.md", renames["other.bzl"])
}

func TestResolveRenameCloserNodeWins(t *testing.T) {
	deep := &Node{Name: "deep", Renames: map[string]string{"x.bzl": "deep.md"}}
	mid := &Node{Name: "mid", Deps: []*Node{deep}, Renames: map[string]string{"x.bzl": "mid.md"}}
	root := &Node{Name: "root", Deps: []*Node{mid}, Srcs: []string{"x.bzl"}}

	_, renames, err := Resolve(root)
	require.NoError(t, err)
	assert.Equal(t, "mid.md", renames["x.bzl"])
}

func TestResolveRejectsCycle(t *testing.T) {
	a := &Node{Name: "a", Srcs: []string{"a.bzl"}}
	b := &Node{Name: "b", Srcs: []string{"b.bzl"}}
	a.Deps = []*Node{b}
	b.Deps = []*Node{a}

	_, _, err := Resolve(a)
	require.Error(t, err)
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Contains(t, cycleErr.Path, "a")
	assert.Contains(t, cycleErr.Path, "b")
	assert.Contains(t, err.Error(), "a -> b -> a")
}

func TestResolveRejectsSelfDependency(t *testing.T) {
	a := &Node{Name: "a"}
	a.Deps = []*Node{a}

	_, _, err := Resolve(a)
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
}

func TestReadRenames(t *testing.T) {
	renames, err := ReadRenames(strings.NewReader("a.bzl\tdocs/a.md\nb.bzl\tb.md\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a.bzl": "docs/a.md", "b.bzl": "b.md"}, renames)
}

func TestReadRenamesRejectsMalformedLines(t *testing.T) {
	for _, input := range []string{
		"no tab here\n",
		"a.bzl\t\n",
		"\tdest.md\n",
		"a.bzl\tb\tc\n",
	} {
		_, err := ReadRenames(strings.NewReader(input))
		require.Error(t, err, "input %q", input)
		assert.Contains(t, err.Error(), "line 1")
	}
}

func TestReplaceExt(t *testing.T) {
	assert.Equal(t, "checks.md", ReplaceExt("checks.bzl", "md"))
	assert.Equal(t, "no_extension", ReplaceExt("no_extension", "html"))
}

func TestOutputNamesDefaultTransform(t *testing.T) {
	names, err := OutputNames([]string{"tools/checks.bzl"}, nil, "md")
	require.NoError(t, err)
	assert.Equal(t, "checks.md", names["tools/checks.bzl"])
}

func TestOutputNamesCollision(t *testing.T) {
	renames := map[string]string{"a.bzl": "same.md", "b.bzl": "same.md"}
	_, err := OutputNames([]string{"a.bzl", "b.bzl"}, renames, "md")
	require.Error(t, err)
	var collision *CollisionError
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, "same.md", collision.Output)
	assert.Equal(t, "a.bzl", collision.First)
	assert.Equal(t, "b.bzl", collision.Second)
}
