// Package alicevcs implements a Git-like commit/branch layer over an
// in-memory, content-addressed store of ast.Tree snapshots. Commits are
// immutable; branches are movable pointers into the commit DAG.
package alicevcs

import (
	"github.com/ext-sakamoro/alice-vcs/plumbing/diff"
	"github.com/ext-sakamoro/alice-vcs/plumbing/store"
)

// Commit is one immutable point in the history DAG.
type Commit struct {
	Hash    store.Hash
	Parents []store.Hash
	Message string
	Author  string

	// Patch is the edit-script from the first parent's tree to this
	// commit's tree, kept alongside the full snapshot so small, incremental
	// changes don't require re-diffing two full trees to inspect.
	Patch []diff.Op
}

// Branch is a named, movable pointer to a commit hash.
type Branch struct {
	Name string
	Head store.Hash
}
