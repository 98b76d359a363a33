package diff

import "github.com/ext-sakamoro/alice-vcs/plumbing/ast"

// Diff computes the edit-script that transforms old into new.
//
// Matching rule, applied top-down starting at the two roots: children are
// matched by key (kind, label). Old children are walked in order; each is
// paired with the first not-yet-matched new child sharing its key — so
// two same-key siblings on one side match positionally with the same-key
// siblings on the other, and a key collision across kinds never matches.
// Matched pairs recurse; unmatched old children become Delete, unmatched
// new children become Insert. This is linear and not minimum edit
// distance — see the package doc.
//
// The script is paired to old: Insert.ParentID and every NodeID reference
// ids that already exist in old, never ids the script itself creates.
func Diff(old, new *ast.Tree) []Op {
	var ops []Op
	diffSubtree(old, new, old.RootID(), new.RootID(), &ops)
	return ops
}

func diffSubtree(old, new *ast.Tree, oldID, newID ast.NodeID, ops *[]Op) {
	oldNode, ok := old.GetNode(oldID)
	if !ok {
		return
	}
	newNode, ok := new.GetNode(newID)
	if !ok {
		return
	}

	if oldNode.Label != newNode.Label {
		*ops = append(*ops, NewRelabel(oldID, oldNode.Label, newNode.Label))
	}
	if !oldNode.Value.Equal(newNode.Value) {
		*ops = append(*ops, NewUpdate(oldID, oldNode.Value, newNode.Value))
	}

	oldChildren := append([]ast.NodeID(nil), oldNode.Children...)
	newChildren := append([]ast.NodeID(nil), newNode.Children...)

	matchedOld := make([]bool, len(oldChildren))
	matchedNew := make([]bool, len(newChildren))

	for oi, oldChildID := range oldChildren {
		oldChild, ok := old.GetNode(oldChildID)
		if !ok {
			continue
		}
		for ni, newChildID := range newChildren {
			if matchedNew[ni] {
				continue
			}
			newChild, ok := new.GetNode(newChildID)
			if !ok {
				continue
			}
			if oldChild.Kind == newChild.Kind && oldChild.Label == newChild.Label {
				matchedOld[oi] = true
				matchedNew[ni] = true
				diffSubtree(old, new, oldChildID, newChildID, ops)
				break
			}
		}
	}

	for oi, oldChildID := range oldChildren {
		if !matchedOld[oi] {
			*ops = append(*ops, NewDelete(oldChildID))
		}
	}

	for ni, newChildID := range newChildren {
		if matchedNew[ni] {
			continue
		}
		newChild, ok := new.GetNode(newChildID)
		if !ok {
			continue
		}
		*ops = append(*ops, NewInsert(oldID, ni, newChild.Kind, newChild.Label, newChild.Value))
	}
}
