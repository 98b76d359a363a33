package ast_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ext-sakamoro/alice-vcs/plumbing/ast"
)

func TestNewTreeHasOnlyRoot(t *testing.T) {
	tree := ast.New()
	assert.Equal(t, 1, tree.NodeCount())
	assert.Equal(t, ast.NodeID(0), tree.RootID())

	root, ok := tree.GetNode(0)
	require.True(t, ok)
	assert.Equal(t, ast.Root, root.Kind)
}

func TestAddNodeIncrementsCount(t *testing.T) {
	tree := ast.New()
	tree.AddNode(ast.Primitive, "a", 0)
	tree.AddNode(ast.Primitive, "b", 0)
	assert.Equal(t, 3, tree.NodeCount())
}

func TestAddNodeWithValueStoresValue(t *testing.T) {
	tree := ast.New()
	id := tree.AddNodeWithValue(ast.Parameter, "radius", ast.FloatValue(3.14), 0)
	n, ok := tree.GetNode(id)
	require.True(t, ok)
	assert.True(t, n.Value.Equal(ast.FloatValue(3.14)))
}

func TestParentOf(t *testing.T) {
	tree := ast.New()
	child := tree.AddNode(ast.Group, "group1", 0)
	parent, ok := tree.ParentOf(child)
	require.True(t, ok)
	assert.Equal(t, ast.NodeID(0), parent)

	_, ok = tree.ParentOf(0)
	assert.False(t, ok)

	_, ok = tree.ParentOf(9999)
	assert.False(t, ok)
}

func TestRootChildrenUpdatedOnAdd(t *testing.T) {
	tree := ast.New()
	id := tree.AddNode(ast.Primitive, "sphere", 0)
	root, _ := tree.GetNode(0)
	assert.Contains(t, root.Children, id)
}

func TestGetNodeMutatesInPlace(t *testing.T) {
	tree := ast.New()
	id := tree.AddNode(ast.Primitive, "sphere", 0)
	n, _ := tree.GetNode(id)
	n.Label = "box"

	n2, _ := tree.GetNode(id)
	assert.Equal(t, "box", n2.Label)
}

func TestGetNodeUnknownIsAbsent(t *testing.T) {
	tree := ast.New()
	id := tree.AddNode(ast.Primitive, "sphere", 0)

	n, ok := tree.GetNode(id)
	require.True(t, ok)
	assert.Equal(t, "sphere", n.Label)

	_, ok = tree.GetNode(9999)
	assert.False(t, ok)
}

func TestRemoveSubtreeDeep(t *testing.T) {
	tree := ast.New()
	g := tree.AddNode(ast.Group, "g", 0)
	c1 := tree.AddNode(ast.Primitive, "c1", g)
	tree.AddNode(ast.Parameter, "p", c1)

	assert.Equal(t, 4, tree.NodeCount())
	tree.RemoveSubtree(g)
	assert.Equal(t, 1, tree.NodeCount())

	_, ok := tree.GetNode(g)
	assert.False(t, ok)
}

func TestRemoveSubtreeUpdatesParentChildren(t *testing.T) {
	tree := ast.New()
	c := tree.AddNode(ast.Primitive, "c", 0)
	tree.RemoveSubtree(c)

	root, _ := tree.GetNode(0)
	assert.NotContains(t, root.Children, c)
}

func TestRemoveSubtreeDoesNotAffectSiblings(t *testing.T) {
	tree := ast.New()
	g1 := tree.AddNode(ast.Group, "g1", 0)
	g2 := tree.AddNode(ast.Group, "g2", 0)
	tree.AddNode(ast.Primitive, "c1", g1)
	c2 := tree.AddNode(ast.Primitive, "c2", g2)

	tree.RemoveSubtree(g1)

	_, ok := tree.GetNode(g2)
	assert.True(t, ok)
	_, ok = tree.GetNode(c2)
	assert.True(t, ok)
	assert.Equal(t, 3, tree.NodeCount())
}

func TestRemoveSubtreeIsIdempotent(t *testing.T) {
	tree := ast.New()
	c := tree.AddNode(ast.Primitive, "c", 0)
	tree.RemoveSubtree(c)
	tree.RemoveSubtree(c) // no-op, must not panic
	assert.Equal(t, 1, tree.NodeCount())
}

func TestIDsNeverReused(t *testing.T) {
	tree := ast.New()
	old := tree.AddNode(ast.Primitive, "old", 0)
	tree.RemoveSubtree(old)

	fresh := tree.AddNode(ast.Primitive, "new", 0)
	assert.Greater(t, fresh, old)
}

func TestSubtreeHashSameShapeIsEqual(t *testing.T) {
	t1 := ast.New()
	t1.AddNode(ast.Primitive, "sphere", 0)

	t2 := ast.New()
	t2.AddNode(ast.Primitive, "sphere", 0)

	assert.Equal(t, t1.SubtreeHash(0), t2.SubtreeHash(0))
}

func TestSubtreeHashDiffersOnLabel(t *testing.T) {
	t1 := ast.New()
	t1.AddNode(ast.Primitive, "sphere", 0)

	t2 := ast.New()
	t2.AddNode(ast.Primitive, "box", 0)

	assert.NotEqual(t, t1.SubtreeHash(0), t2.SubtreeHash(0))
}

func TestSubtreeHashIgnoresValue(t *testing.T) {
	t1 := ast.New()
	s1 := t1.AddNode(ast.Primitive, "sphere", 0)
	t1.AddNodeWithValue(ast.Parameter, "radius", ast.FloatValue(1.0), s1)

	t2 := ast.New()
	s2 := t2.AddNode(ast.Primitive, "sphere", 0)
	t2.AddNodeWithValue(ast.Parameter, "radius", ast.FloatValue(99.0), s2)

	assert.Equal(t, t1.SubtreeHash(0), t2.SubtreeHash(0))
}

func TestCloneIsIndependent(t *testing.T) {
	tree := ast.New()
	id := tree.AddNode(ast.Primitive, "sphere", 0)

	clone := tree.Clone()
	n, _ := clone.GetNode(id)
	n.Label = "mutated"

	original, _ := tree.GetNode(id)
	assert.Equal(t, "sphere", original.Label)
}

func TestValueEqualityNaNIsNeverEqual(t *testing.T) {
	a := ast.FloatValue(math.NaN())
	b := ast.FloatValue(math.NaN())
	assert.False(t, a.Equal(b))
}

func TestValueEncodedSize(t *testing.T) {
	assert.Equal(t, 1, ast.NoneValue().EncodedSize())
	assert.Equal(t, 9, ast.IntValue(0).EncodedSize())
	assert.Equal(t, 9, ast.FloatValue(0).EncodedSize())
	assert.Equal(t, 5, ast.TextValue("hi").EncodedSize())
	assert.Equal(t, 6, ast.IdentValue("abc").EncodedSize())
	assert.Equal(t, 5, ast.BytesValue([]byte{1, 2}).EncodedSize())
}

func TestKindFromByteUnknownIsCustom(t *testing.T) {
	assert.Equal(t, ast.Custom, ast.KindFromByte(255))
	assert.Equal(t, ast.Custom, ast.KindFromByte(42))
	assert.Equal(t, ast.Root, ast.KindFromByte(0))
}
