package diff

import "github.com/ext-sakamoro/alice-vcs/plumbing/ast"

// Apply mutates tree in place, interpreting each op in order. Apply never
// fails: a missing target is silently skipped. That is deliberate — a
// merged script (plumbing/merge) may carry an op whose target was removed
// by the other side of the merge, and the result still has to be
// materialisable.
//
// Insert.Index and Move.NewIndex are advisory; this implementation always
// appends. Sibling order after Apply can therefore differ from the tree a
// script was diffed against, and since plumbing/ast.SubtreeHash folds
// children in order, so can the resulting hash.
func Apply(tree *ast.Tree, ops []Op) {
	for _, op := range ops {
		switch op.Tag {
		case Insert:
			tree.AddNodeWithValue(op.Kind, op.Label, op.Value, op.ParentID)
		case Delete:
			tree.RemoveSubtree(op.NodeID)
		case Update:
			if n, ok := tree.GetNode(op.NodeID); ok {
				n.Value = op.NewValue
			}
		case Relabel:
			if n, ok := tree.GetNode(op.NodeID); ok {
				n.Label = op.NewLabel
			}
		case Move:
			tree.Reparent(op.NodeID, op.NewParentID)
		}
	}
}
