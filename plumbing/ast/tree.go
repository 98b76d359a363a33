// Package ast implements the flat, index-backed Abstract Syntax Tree that
// every other plumbing package (diff, codec, store, merge) operates on.
//
// A Tree owns a contiguous slice of Nodes plus two maps — id→position and
// child→parent — so that lookup, parent-lookup, and mutation are all O(1)
// except subtree removal, which touches every surviving index entry.
package ast

const rootID NodeID = 0

// Tree is the flat storage for one AST: an ordered node list plus the
// indices needed for O(1) id and parent lookup. The zero value is not
// usable; construct with New.
type Tree struct {
	nodes       []Node
	index       map[NodeID]int
	parentIndex map[NodeID]NodeID
	nextID      NodeID
}

// New returns a tree containing only the root node (id 0, kind Root).
func New() *Tree {
	t := &Tree{
		nodes:       []Node{newNode(rootID, Root, "root")},
		index:       map[NodeID]int{rootID: 0},
		parentIndex: map[NodeID]NodeID{},
		nextID:      1,
	}
	return t
}

// RootID is always 0.
func (t *Tree) RootID() NodeID { return rootID }

// NodeCount returns the total number of live nodes, root included.
func (t *Tree) NodeCount() int { return len(t.nodes) }

// Nodes returns the live nodes in insertion order. The caller must not
// mutate the returned slice's Children in place; use GetNode to mutate a
// node through the tree's own storage instead.
func (t *Tree) Nodes() []Node { return t.nodes }

// AddNode appends a new child with the given kind and label under
// parentID and returns its fresh id. parentID must name a live node;
// this is a precondition, not a checked error. Callers that violate it
// get an orphaned node rather than a panic: tree mutation is total.
func (t *Tree) AddNode(kind NodeKind, label string, parentID NodeID) NodeID {
	id := t.nextID
	t.nextID++

	t.nodes = append(t.nodes, newNode(id, kind, label))
	t.index[id] = len(t.nodes) - 1
	t.parentIndex[id] = parentID

	if parent, ok := t.GetNode(parentID); ok {
		parent.Children = append(parent.Children, id)
	}
	return id
}

// AddNodeWithValue is AddNode plus an initial value.
func (t *Tree) AddNodeWithValue(kind NodeKind, label string, value Value, parentID NodeID) NodeID {
	id := t.AddNode(kind, label, parentID)
	if n, ok := t.GetNode(id); ok {
		n.Value = value
	}
	return id
}

// GetNode returns a pointer into the tree's own storage so callers can
// mutate label/value/children in place, and ok=false if id is unknown.
func (t *Tree) GetNode(id NodeID) (*Node, bool) {
	idx, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return &t.nodes[idx], true
}

// ParentOf returns the parent id of id, or ok=false for the root and for
// unknown ids.
func (t *Tree) ParentOf(id NodeID) (NodeID, bool) {
	p, ok := t.parentIndex[id]
	return p, ok
}

// Reparent detaches id from its current parent's Children and appends it
// under newParentID, updating the parent index so ParentOf stays correct.
// It is a no-op if id or newParentID is unknown. Used by plumbing/diff's
// Move handling, which otherwise has no way to keep I3 (parent index
// agrees with Children) intact across a reparent.
func (t *Tree) Reparent(id, newParentID NodeID) {
	if _, ok := t.GetNode(id); !ok {
		return
	}
	newParent, ok := t.GetNode(newParentID)
	if !ok {
		return
	}
	if oldParentID, ok := t.ParentOf(id); ok {
		if oldParent, ok := t.GetNode(oldParentID); ok {
			oldParent.Children = removeID(oldParent.Children, id)
		}
	}
	newParent.Children = append(newParent.Children, id)
	t.parentIndex[id] = newParentID
}

// RemoveSubtree deletes id and every descendant. It is a no-op if id is
// unknown, and idempotent — removing an already-removed id does nothing.
func (t *Tree) RemoveSubtree(id NodeID) {
	var toRemove []NodeID
	t.collectSubtree(id, &toRemove)
	if len(toRemove) == 0 {
		return
	}

	removed := make(map[NodeID]struct{}, len(toRemove))
	for _, rid := range toRemove {
		removed[rid] = struct{}{}
	}

	if parentID, ok := t.ParentOf(id); ok {
		if parent, ok := t.GetNode(parentID); ok {
			parent.Children = removeID(parent.Children, id)
		}
	}

	for rid := range removed {
		delete(t.parentIndex, rid)
	}

	kept := t.nodes[:0]
	for _, n := range t.nodes {
		if _, gone := removed[n.ID]; !gone {
			kept = append(kept, n)
		}
	}
	t.nodes = kept

	for idx := range t.index {
		delete(t.index, idx)
	}
	for idx, n := range t.nodes {
		t.index[n.ID] = idx
	}
}

func (t *Tree) collectSubtree(id NodeID, out *[]NodeID) {
	node, ok := t.GetNode(id)
	if !ok {
		return
	}
	*out = append(*out, id)
	for _, child := range node.Children {
		t.collectSubtree(child, out)
	}
}

func removeID(ids []NodeID, target NodeID) []NodeID {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// SubtreeHash folds FNV-1a 64-bit over the kind and label of every node in
// the subtree rooted at id, in tree order. It deliberately ignores values
// and child ids: it fingerprints structural (kind+label) shape, which is
// exactly what the snapshot store and the commit layer key content on.
func (t *Tree) SubtreeHash(id NodeID) uint64 {
	h := offsetBasis
	t.hashNode(id, &h)
	return h
}

const (
	offsetBasis uint64 = 0xcbf29ce484222325
	fnvPrime    uint64 = 0x100000001b3
)

func (t *Tree) hashNode(id NodeID, h *uint64) {
	node, ok := t.GetNode(id)
	if !ok {
		return
	}
	*h ^= uint64(node.Kind)
	*h *= fnvPrime
	for i := 0; i < len(node.Label); i++ {
		*h ^= uint64(node.Label[i])
		*h *= fnvPrime
	}
	for _, child := range node.Children {
		t.hashNode(child, h)
	}
}

// Clone deep-copies the tree, including every node's children slice and
// byte-valued payload. The snapshot store and the diff/merge paths that
// apply a patch to a borrowed ancestor both rely on this to avoid
// aliasing mutable state across commits.
func (t *Tree) Clone() *Tree {
	nodes := make([]Node, len(t.nodes))
	for i, n := range t.nodes {
		nodes[i] = n.clone()
	}
	index := make(map[NodeID]int, len(t.index))
	for k, v := range t.index {
		index[k] = v
	}
	parentIndex := make(map[NodeID]NodeID, len(t.parentIndex))
	for k, v := range t.parentIndex {
		parentIndex[k] = v
	}
	return &Tree{nodes: nodes, index: index, parentIndex: parentIndex, nextID: t.nextID}
}
