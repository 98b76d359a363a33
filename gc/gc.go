// Package gc implements mark-sweep garbage collection over a snapshot
// store: starting from a set of root hashes (branch heads), it walks the
// parent DAG to find every reachable snapshot and removes the rest.
package gc

import (
	"github.com/emirpasic/gods/sets/hashset"

	"github.com/ext-sakamoro/alice-vcs/plumbing/store"
)

// Result carries the statistics from one collection run.
type Result struct {
	Retained    int
	Collected   int
	TotalBefore int
}

// DidCollect reports whether the run actually removed anything.
func (r Result) DidCollect() bool { return r.Collected > 0 }

// Collect runs mark-sweep garbage collection against s, removing every
// snapshot not reachable from rootHashes by following parent links.
// Root hashes that do not exist in the store are ignored rather than
// treated as an error — a stale branch head pointing at an already-gone
// snapshot should not make GC unusable.
func Collect(s *store.Store, rootHashes []store.Hash) Result {
	all := s.AllHashes()
	totalBefore := len(all)

	reachable := mark(s, rootHashes)

	collected := 0
	for _, h := range all {
		if !reachable.Contains(h) {
			s.Remove(h)
			collected++
		}
	}

	return Result{
		Retained:    totalBefore - collected,
		Collected:   collected,
		TotalBefore: totalBefore,
	}
}

// DryRun reports what Collect would do without mutating s.
func DryRun(s *store.Store, rootHashes []store.Hash) Result {
	totalBefore := s.Len()
	reachable := mark(s, rootHashes)
	retained := reachable.Size()
	return Result{
		Retained:    retained,
		Collected:   totalBefore - retained,
		TotalBefore: totalBefore,
	}
}

// mark performs a depth-first walk over parent links starting at rootHashes, returning
// the set of every hash reachable from a root that is actually present in
// the store.
func mark(s *store.Store, rootHashes []store.Hash) *hashset.Set {
	reachable := hashset.New()
	var queue []store.Hash

	for _, root := range rootHashes {
		if s.Contains(root) && !reachable.Contains(root) {
			reachable.Add(root)
			queue = append(queue, root)
		}
	}

	for len(queue) > 0 {
		h := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		parents, ok := s.Parents(h)
		if !ok {
			continue
		}
		for _, p := range parents {
			if s.Contains(p) && !reachable.Contains(p) {
				reachable.Add(p)
				queue = append(queue, p)
			}
		}
	}

	return reachable
}
