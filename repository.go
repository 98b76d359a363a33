package alicevcs

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"

	"github.com/ext-sakamoro/alice-vcs/gc"
	"github.com/ext-sakamoro/alice-vcs/internal/trace"
	"github.com/ext-sakamoro/alice-vcs/plumbing/ast"
	"github.com/ext-sakamoro/alice-vcs/plumbing/diff"
	"github.com/ext-sakamoro/alice-vcs/plumbing/merge"
	"github.com/ext-sakamoro/alice-vcs/plumbing/store"
)

func hashComparator(a, b interface{}) int {
	x, y := a.(store.Hash), b.(store.Hash)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func stringComparator(a, b interface{}) int {
	x, y := a.(string), b.(string)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// Repository manages the commit DAG, branches, and the underlying
// snapshot store for one versioned AST. The zero value is not usable;
// construct with New.
type Repository struct {
	store         *store.Store
	commits       *treemap.Map // store.Hash -> Commit
	branches      *treemap.Map // string -> Branch
	currentBranch string
}

// New creates a Repository with a single initial, empty-tree commit on
// its initial branch (named "main" unless overridden by WithInitialBranch).
func New(opts ...Option) *Repository {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	repo := &Repository{
		store:         store.New(),
		commits:       treemap.NewWith(hashComparator),
		branches:      treemap.NewWith(stringComparator),
		currentBranch: cfg.initialBranch,
	}

	tree := ast.New()
	hash := repo.store.Store(tree, nil)
	repo.commits.Put(hash, Commit{Hash: hash, Message: "initial commit", Author: "system"})
	repo.branches.Put(cfg.initialBranch, Branch{Name: cfg.initialBranch, Head: hash})

	return repo
}

// Commit stores tree as a new snapshot, recording the edit-script from
// the current branch's HEAD tree, and advances the current branch to
// point at the new commit.
func (r *Repository) Commit(tree *ast.Tree, message, author string) store.Hash {
	parentHash := r.HeadHash()

	var patch []diff.Op
	if parentTree, ok := r.store.Get(parentHash); ok {
		patch = diff.Diff(parentTree, tree)
	}

	hash := r.store.Store(tree, []store.Hash{parentHash})
	r.commits.Put(hash, Commit{
		Hash:    hash,
		Parents: []store.Hash{parentHash},
		Message: message,
		Author:  author,
		Patch:   patch,
	})

	if b, ok := r.branches.Get(r.currentBranch); ok {
		branch := b.(Branch)
		branch.Head = hash
		r.branches.Put(r.currentBranch, branch)
	}

	trace.Commit.Printf("commit %x on %s: %s", hash, r.currentBranch, message)
	return hash
}

// CreateBranch records a new branch pointing at the current HEAD.
func (r *Repository) CreateBranch(name string) {
	r.branches.Put(name, Branch{Name: name, Head: r.HeadHash()})
}

// Checkout switches the current branch, reporting whether name exists.
func (r *Repository) Checkout(name string) bool {
	if _, ok := r.branches.Get(name); !ok {
		return false
	}
	r.currentBranch = name
	trace.Commit.Printf("checkout %s", name)
	return true
}

// Merge three-way merges otherBranch into the current branch.
//
// The common ancestor is taken to be the current HEAD commit's first
// parent — a deliberate simplification over walking the full DAG for a
// lowest common ancestor (see DESIGN.md); it is correct for the common
// case of a feature branch created from, and merged straight back into,
// an unmoved base branch. When the assumption doesn't hold, the other
// branch's patch is still diffed against that parent, so it can carry
// edits that undo commits made after the real fork point, and those merge
// like any other edit.
//
// If the merge is clean, a new commit recording the merged tree is made
// on the current branch and the returned Result reflects that. If there
// are conflicts, nothing is committed and the caller inspects
// Result.Conflicts to resolve them.
//
// ok is false when otherBranch is unknown, when the current HEAD has no
// parent to use as an ancestor, or when any of the three snapshots is
// missing from the store. A missing entity is an absent result, never an
// error, matching Checkout and the rest of the lookup surface.
func (r *Repository) Merge(otherBranch string) (*merge.Result, bool) {
	otherBranchVal, ok := r.branches.Get(otherBranch)
	if !ok {
		return nil, false
	}
	otherHead := otherBranchVal.(Branch).Head

	currentHash := r.HeadHash()
	currentCommitVal, ok := r.commits.Get(currentHash)
	if !ok {
		return nil, false
	}
	currentCommit := currentCommitVal.(Commit)

	if len(currentCommit.Parents) == 0 {
		return nil, false
	}
	ancestorHash := currentCommit.Parents[0]

	ancestorTree, ok := r.store.Get(ancestorHash)
	if !ok {
		return nil, false
	}
	currentTree, ok := r.store.Get(currentHash)
	if !ok {
		return nil, false
	}
	otherTree, ok := r.store.Get(otherHead)
	if !ok {
		return nil, false
	}

	patchA := diff.Diff(ancestorTree, currentTree)
	patchB := diff.Diff(ancestorTree, otherTree)

	result := merge.Merge(patchA, patchB)

	if result.IsClean() {
		resultTree := ancestorTree.Clone()
		diff.Apply(resultTree, result.MergedOps)
		r.Commit(resultTree, fmt.Sprintf("merge branch '%s'", otherBranch), "system")
	}

	trace.Commit.Printf("merge %s into %s: clean=%t conflicts=%d", otherBranch, r.currentBranch, result.IsClean(), len(result.Conflicts))
	return &result, true
}

// HeadHash returns the current branch's HEAD hash, or 0 if the current
// branch name somehow names no branch (unreachable through the public
// API, since New and CreateBranch always keep currentBranch valid).
func (r *Repository) HeadHash() store.Hash {
	if b, ok := r.branches.Get(r.currentBranch); ok {
		return b.(Branch).Head
	}
	return 0
}

// HeadTree returns the tree at the current branch's HEAD.
func (r *Repository) HeadTree() (*ast.Tree, bool) {
	return r.store.Get(r.HeadHash())
}

// GetCommit looks up a commit by hash.
func (r *Repository) GetCommit(hash store.Hash) (Commit, bool) {
	v, ok := r.commits.Get(hash)
	if !ok {
		return Commit{}, false
	}
	return v.(Commit), true
}

// BranchNames returns every branch name, in ascending sorted order.
func (r *Repository) BranchNames() []string {
	keys := r.branches.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}

// CurrentBranch returns the name of the checked-out branch.
func (r *Repository) CurrentBranch() string { return r.currentBranch }

// CommitCount returns the total number of commits in the repository.
func (r *Repository) CommitCount() int { return r.commits.Size() }

// Diff returns the edit-script between two arbitrary stored snapshots,
// not necessarily a parent/child pair. ok is false if either hash names
// no stored snapshot.
func (r *Repository) Diff(from, to store.Hash) ([]diff.Op, bool) {
	fromTree, ok := r.store.Get(from)
	if !ok {
		return nil, false
	}
	toTree, ok := r.store.Get(to)
	if !ok {
		return nil, false
	}
	return diff.Diff(fromTree, toTree), true
}

// CollectGarbage removes every snapshot unreachable from any branch HEAD.
func (r *Repository) CollectGarbage() gc.Result {
	heads := make([]store.Hash, 0, r.branches.Size())
	for _, v := range r.branches.Values() {
		heads = append(heads, v.(Branch).Head)
	}
	result := gc.Collect(r.store, heads)
	trace.GC.Printf("collected %d of %d snapshots", result.Collected, result.TotalBefore)
	return result
}
