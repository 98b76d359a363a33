package alicevcs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	alicevcs "github.com/ext-sakamoro/alice-vcs"
	"github.com/ext-sakamoro/alice-vcs/plumbing/ast"
)

func TestRepositoryInit(t *testing.T) {
	repo := alicevcs.New()
	assert.Equal(t, 1, repo.CommitCount())
	assert.Equal(t, "main", repo.CurrentBranch())
}

func TestRepositoryWithInitialBranch(t *testing.T) {
	repo := alicevcs.New(alicevcs.WithInitialBranch("trunk"))
	assert.Equal(t, "trunk", repo.CurrentBranch())
	assert.Contains(t, repo.BranchNames(), "trunk")
}

func TestCommit(t *testing.T) {
	repo := alicevcs.New()
	tree := ast.New()
	tree.AddNode(ast.Primitive, "sphere", 0)

	hash := repo.Commit(tree, "add sphere", "test")
	assert.Equal(t, 2, repo.CommitCount())

	commit, ok := repo.GetCommit(hash)
	require.True(t, ok)
	assert.Equal(t, "add sphere", commit.Message)
}

func TestBranchAndCheckout(t *testing.T) {
	repo := alicevcs.New()
	repo.CreateBranch("feature")
	assert.True(t, repo.Checkout("feature"))
	assert.Equal(t, "feature", repo.CurrentBranch())
	assert.False(t, repo.Checkout("nonexistent"))
}

func TestDiffBetweenCommits(t *testing.T) {
	repo := alicevcs.New()
	h1 := repo.HeadHash()

	tree := ast.New()
	tree.AddNode(ast.Primitive, "sphere", 0)
	h2 := repo.Commit(tree, "add sphere", "test")

	ops, ok := repo.Diff(h1, h2)
	require.True(t, ok)
	assert.NotEmpty(t, ops)
}

func TestCommitStoresPatch(t *testing.T) {
	repo := alicevcs.New()
	tree := ast.New()
	s := tree.AddNode(ast.Primitive, "sphere", 0)
	tree.AddNodeWithValue(ast.Parameter, "radius", ast.FloatValue(1.0), s)

	hash := repo.Commit(tree, "add sphere", "test")
	commit, ok := repo.GetCommit(hash)
	require.True(t, ok)
	assert.NotEmpty(t, commit.Patch)
}

func TestCommitOfUnchangedTreeStoresEmptyPatch(t *testing.T) {
	repo := alicevcs.New()
	hash := repo.Commit(ast.New(), "no-op", "x")
	commit, ok := repo.GetCommit(hash)
	require.True(t, ok)
	assert.Empty(t, commit.Patch)
}

func TestBranchNamesSorted(t *testing.T) {
	repo := alicevcs.New()
	repo.CreateBranch("dev")
	repo.CreateBranch("feature")
	names := repo.BranchNames()
	assert.Contains(t, names, "main")
	assert.Contains(t, names, "dev")
	assert.Contains(t, names, "feature")
	assert.Equal(t, []string{"dev", "feature", "main"}, names)
}

func TestHeadHashChangesAfterCommit(t *testing.T) {
	repo := alicevcs.New()
	initialHead := repo.HeadHash()

	tree := ast.New()
	tree.AddNode(ast.Primitive, "sphere", 0)
	repo.Commit(tree, "add sphere", "alice")

	assert.NotEqual(t, initialHead, repo.HeadHash())
}

func TestHeadTreeReflectsLatestCommit(t *testing.T) {
	repo := alicevcs.New()
	tree := ast.New()
	tree.AddNode(ast.Primitive, "sphere", 0)
	repo.Commit(tree, "add sphere", "alice")

	head, ok := repo.HeadTree()
	require.True(t, ok)
	assert.Equal(t, tree.NodeCount(), head.NodeCount())
}

func TestCommitRecordsAuthorAndMessage(t *testing.T) {
	repo := alicevcs.New()
	hash := repo.Commit(ast.New(), "hello world", "bob")
	commit, ok := repo.GetCommit(hash)
	require.True(t, ok)
	assert.Equal(t, "bob", commit.Author)
	assert.Equal(t, "hello world", commit.Message)
}

func TestCommitHasParent(t *testing.T) {
	repo := alicevcs.New()
	initialHead := repo.HeadHash()
	hash := repo.Commit(ast.New(), "c2", "x")
	commit, ok := repo.GetCommit(hash)
	require.True(t, ok)
	assert.Contains(t, commit.Parents, initialHead)
}

func TestCheckoutNonexistentBranchLeavesCurrentUnchanged(t *testing.T) {
	repo := alicevcs.New()
	assert.False(t, repo.Checkout("no-such-branch"))
	assert.Equal(t, "main", repo.CurrentBranch())
}

func TestBranchHeadAdvancesAfterCommitOnBranch(t *testing.T) {
	repo := alicevcs.New()
	repo.CreateBranch("feat")
	repo.Checkout("feat")
	before := repo.HeadHash()

	tree := ast.New()
	tree.AddNode(ast.Group, "g", 0)
	repo.Commit(tree, "on feat", "x")

	assert.NotEqual(t, before, repo.HeadHash())
}

func TestDiffBetweenSameCommitIsEmpty(t *testing.T) {
	repo := alicevcs.New()
	h := repo.HeadHash()
	ops, ok := repo.Diff(h, h)
	require.True(t, ok)
	assert.Empty(t, ops)
}

func TestGetCommitNonexistentReturnsNotOK(t *testing.T) {
	repo := alicevcs.New()
	_, ok := repo.GetCommit(0xDEADBEEFCAFEBABE)
	assert.False(t, ok)
}

func TestDiffUnknownHashIsAbsent(t *testing.T) {
	repo := alicevcs.New()
	_, ok := repo.Diff(0xDEAD, repo.HeadHash())
	assert.False(t, ok)
}

func TestMergeCleanAppliesAndCommits(t *testing.T) {
	repo := alicevcs.New()

	// Shared base: two independent sibling nodes, committed on main.
	baseTree := ast.New()
	idA := baseTree.AddNodeWithValue(ast.Parameter, "a", ast.FloatValue(1.0), 0)
	idB := baseTree.AddNodeWithValue(ast.Parameter, "b", ast.FloatValue(1.0), 0)
	repo.Commit(baseTree, "base", "system")

	repo.CreateBranch("feature")

	// On main: edit node A only.
	mainTree := baseTree.Clone()
	mainA, _ := mainTree.GetNode(idA)
	mainA.Value = ast.FloatValue(2.0)
	repo.Commit(mainTree, "edit a on main", "alice")

	// On feature: edit node B only — a disjoint node, so the merge is clean.
	repo.Checkout("feature")
	featureTree := baseTree.Clone()
	featureB, _ := featureTree.GetNode(idB)
	featureB.Value = ast.FloatValue(3.0)
	repo.Commit(featureTree, "edit b on feature", "bob")

	before := repo.CommitCount()
	result, ok := repo.Merge("main")
	require.True(t, ok)
	require.True(t, result.IsClean())
	assert.Equal(t, before+1, repo.CommitCount())
}

func TestMergeUnknownBranchIsAbsent(t *testing.T) {
	repo := alicevcs.New()
	_, ok := repo.Merge("does-not-exist")
	assert.False(t, ok)
}

func TestMergeWithNoParentIsAbsent(t *testing.T) {
	repo := alicevcs.New()
	repo.CreateBranch("other")
	_, ok := repo.Merge("other")
	assert.False(t, ok)
}

func TestCollectGarbageKeepsSnapshotsReachableFromBranchHeads(t *testing.T) {
	repo := alicevcs.New()
	repo.CreateBranch("feature")
	repo.Checkout("feature")

	tree := ast.New()
	tree.AddNode(ast.Primitive, "sphere", 0)
	repo.Commit(tree, "on feature", "x")

	result := repo.CollectGarbage()
	assert.False(t, result.DidCollect())
}
