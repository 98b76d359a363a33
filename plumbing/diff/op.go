// Package diff computes and applies structural edit-scripts between two
// ast.Tree values. The diff is label-keyed and linear, not minimum edit
// distance — see the package-level Diff doc for the matching rule.
package diff

import "github.com/ext-sakamoro/alice-vcs/plumbing/ast"

// Tag discriminates an Op's variant.
type Tag uint8

const (
	Insert Tag = iota
	Delete
	Update
	Relabel
	Move
)

// Op is one edit operation. Only the fields relevant to Tag are set; the
// rest are zero. parent_id/node_id name ids in the tree being mutated
// (the "old" tree of a diff), which is why a script is paired to one
// specific base tree and is not portable across trees of different shape.
type Op struct {
	Tag Tag

	// Insert
	ParentID ast.NodeID
	Index    int
	Kind     ast.NodeKind
	Label    string
	Value    ast.Value

	// Delete, Update, Relabel, Move
	NodeID ast.NodeID

	// Update
	OldValue ast.Value
	NewValue ast.Value

	// Relabel
	OldLabel string
	NewLabel string

	// Move
	NewParentID ast.NodeID
	NewIndex    int
}

func NewInsert(parentID ast.NodeID, index int, kind ast.NodeKind, label string, value ast.Value) Op {
	return Op{Tag: Insert, ParentID: parentID, Index: index, Kind: kind, Label: label, Value: value}
}

func NewDelete(nodeID ast.NodeID) Op {
	return Op{Tag: Delete, NodeID: nodeID}
}

func NewUpdate(nodeID ast.NodeID, oldValue, newValue ast.Value) Op {
	return Op{Tag: Update, NodeID: nodeID, OldValue: oldValue, NewValue: newValue}
}

func NewRelabel(nodeID ast.NodeID, oldLabel, newLabel string) Op {
	return Op{Tag: Relabel, NodeID: nodeID, OldLabel: oldLabel, NewLabel: newLabel}
}

func NewMove(nodeID, newParentID ast.NodeID, newIndex int) Op {
	return Op{Tag: Move, NodeID: nodeID, NewParentID: newParentID, NewIndex: newIndex}
}

// TargetNode is the single node an op is considered to modify: for Insert
// that is the parent acquiring a new child, for every other variant it is
// node_id. The merge engine keys conflict detection on this.
func (o Op) TargetNode() ast.NodeID {
	if o.Tag == Insert {
		return o.ParentID
	}
	return o.NodeID
}

// Equal compares two ops structurally, field by field for the op's own
// variant. Used by the merge engine to auto-resolve identical edits from
// both sides of a three-way merge.
func (o Op) Equal(other Op) bool {
	if o.Tag != other.Tag {
		return false
	}
	switch o.Tag {
	case Insert:
		return o.ParentID == other.ParentID && o.Index == other.Index &&
			o.Kind == other.Kind && o.Label == other.Label && o.Value.Equal(other.Value)
	case Delete:
		return o.NodeID == other.NodeID
	case Update:
		return o.NodeID == other.NodeID && o.OldValue.Equal(other.OldValue) && o.NewValue.Equal(other.NewValue)
	case Relabel:
		return o.NodeID == other.NodeID && o.OldLabel == other.OldLabel && o.NewLabel == other.NewLabel
	case Move:
		return o.NodeID == other.NodeID && o.NewParentID == other.NewParentID && o.NewIndex == other.NewIndex
	default:
		return false
	}
}

// EncodedSize estimates the wire size of the op in bytes — see
// plumbing/codec for the byte-exact format this approximates.
func (o Op) EncodedSize() int {
	switch o.Tag {
	case Insert:
		return 8 + len(o.Label) + o.Value.EncodedSize()
	case Delete:
		return 5
	case Update:
		return 5 + o.NewValue.EncodedSize()
	case Relabel:
		return 5 + len(o.NewLabel)
	case Move:
		return 12
	default:
		return 0
	}
}

// PatchSizeBytes sums the estimated size of every op in a script.
func PatchSizeBytes(ops []Op) int {
	total := 0
	for _, op := range ops {
		total += op.EncodedSize()
	}
	return total
}

// OpsEqual reports whether two op sequences are identical in order and
// content. Used by the merge engine's auto-resolve check.
func OpsEqual(a, b []Op) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
