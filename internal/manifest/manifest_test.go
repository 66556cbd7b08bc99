package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLinksLibraries(t *testing.T) {
	nodes, err := Parse([]byte(`
library "core" {
  srcs = ["core.bzl"]
}

library "go_rules" {
  srcs = ["go.bzl", "go_test.bzl"]
  deps = ["core"]
  renames = {
    "go.bzl" = "go_rules.md"
  }
}
`), "bzldoc.hcl")
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	goRules := nodes["go_rules"]
	require.NotNil(t, goRules)
	assert.Equal(t, []string{"go.bzl", "go_test.bzl"}, goRules.Srcs)
	require.Len(t, goRules.Deps, 1)
	assert.Same(t, nodes["core"], goRules.Deps[0])
	assert.Equal(t, map[string]string{"go.bzl": "go_rules.md"}, goRules.Renames)
}

func TestParseRejectsUnknownDep(t *testing.T) {
	_, err := Parse([]byte(`
library "a" {
  srcs = ["a.bzl"]
  deps = ["missing"]
}
`), "bzldoc.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestParseRejectsDuplicateLibrary(t *testing.T) {
	_, err := Parse([]byte(`
library "a" {
  srcs = ["a.bzl"]
}

library "a" {
  srcs = ["other.bzl"]
}
`), "bzldoc.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestParseRejectsInvalidSyntax(t *testing.T) {
	_, err := Parse([]byte(`library "a" {`), "bzldoc.hcl")
	require.Error(t, err)
}
