// Package merge implements three-way structural merge: combining two
// patches computed against the same ancestor tree, auto-resolving
// identical edits and flagging everything else that touches a node both
// sides also touched.
package merge

import (
	"github.com/ext-sakamoro/alice-vcs/plumbing/ast"
	"github.com/ext-sakamoro/alice-vcs/plumbing/diff"
)

// Conflict describes a node both patches edited in incompatible ways.
type Conflict struct {
	NodeID      ast.NodeID
	Description string
	OpsA        []diff.Op
	OpsB        []diff.Op
}

// Result is the outcome of merging two patches.
type Result struct {
	MergedOps []diff.Op
	Conflicts []Conflict
}

// IsClean reports whether the merge produced no conflicts.
func (r Result) IsClean() bool { return len(r.Conflicts) == 0 }

// Merge combines patchA and patchB, both computed against the same
// ancestor tree. Ops whose target node only one side touched pass
// through unchanged; ops on a node both sides touched either auto-resolve
// (identical op subsequence on both sides) or become a Conflict.
//
// affectedNodes below preserves first-seen order rather than reaching
// for a set type: the order conflicts are reported in is part of this
// function's observable behavior, and callers comparing output across
// runs (or tests) depend on it being deterministic patch order, not
// hash order.
func Merge(patchA, patchB []diff.Op) Result {
	affectedA := affectedNodes(patchA)
	affectedB := affectedNodes(patchB)

	inB := toSet(affectedB)
	inA := toSet(affectedA)

	var merged []diff.Op
	for _, op := range patchA {
		if !inB[op.TargetNode()] {
			merged = append(merged, op)
		}
	}
	for _, op := range patchB {
		if !inA[op.TargetNode()] {
			merged = append(merged, op)
		}
	}

	var conflicts []Conflict
	for _, nodeID := range affectedA {
		if !inB[nodeID] {
			continue
		}
		opsA := opsForTarget(patchA, nodeID)
		opsB := opsForTarget(patchB, nodeID)

		if diff.OpsEqual(opsA, opsB) {
			merged = append(merged, opsA...)
		} else {
			conflicts = append(conflicts, Conflict{
				NodeID:      nodeID,
				Description: "conflicting edits on same node",
				OpsA:        opsA,
				OpsB:        opsB,
			})
		}
	}

	return Result{MergedOps: merged, Conflicts: conflicts}
}

func affectedNodes(ops []diff.Op) []ast.NodeID {
	var nodes []ast.NodeID
	seen := make(map[ast.NodeID]bool)
	for _, op := range ops {
		id := op.TargetNode()
		if !seen[id] {
			seen[id] = true
			nodes = append(nodes, id)
		}
	}
	return nodes
}

func toSet(ids []ast.NodeID) map[ast.NodeID]bool {
	set := make(map[ast.NodeID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func opsForTarget(ops []diff.Op, nodeID ast.NodeID) []diff.Op {
	var out []diff.Op
	for _, op := range ops {
		if op.TargetNode() == nodeID {
			out = append(out, op)
		}
	}
	return out
}
