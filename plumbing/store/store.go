// Package store implements a content-addressed, in-memory snapshot store:
// a Merkle DAG of ast.Tree values keyed by their own structural hash mixed
// with their parents' hashes, so storing the same tree with different
// ancestry never collides.
package store

import (
	"github.com/emirpasic/gods/maps/treemap"

	"github.com/ext-sakamoro/alice-vcs/plumbing/ast"
)

// Hash identifies a stored snapshot: the FNV-1a structural hash of its
// tree, mixed with every parent hash. It is a fingerprint, not a
// cryptographic digest.
type Hash uint64

const fnvPrime uint64 = 0x100000001b3

func hashUint64(a, b interface{}) int {
	x, y := a.(uint64), b.(uint64)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

type snapshot struct {
	tree    *ast.Tree
	parents []Hash
}

// Store is a deduplicating, content-addressed map from Hash to the tree
// (and parent hashes) it was stored with. Snapshots are keyed in a
// treemap rather than a plain Go map so AllHashes and any ordered walk
// over the store (GC's sweep phase, tests) see a stable, reproducible
// order run to run.
type Store struct {
	snapshots *treemap.Map
}

// New returns an empty snapshot store.
func New() *Store {
	return &Store{snapshots: treemap.NewWith(hashUint64)}
}

// Store inserts tree under its content hash, mixed with parents, and
// returns that hash. Storing a tree with the same shape and the same
// parent set twice returns the same hash and overwrites the existing
// entry with an equivalent one (dedup is automatic, not an error).
func (s *Store) Store(tree *ast.Tree, parents []Hash) Hash {
	h := tree.SubtreeHash(tree.RootID())
	for _, p := range parents {
		h ^= uint64(p)
		h *= fnvPrime
	}
	hash := Hash(h)

	parentsCopy := make([]Hash, len(parents))
	copy(parentsCopy, parents)

	s.snapshots.Put(uint64(hash), snapshot{tree: tree.Clone(), parents: parentsCopy})
	return hash
}

// Get returns the tree stored under hash, or ok=false if none was stored.
func (s *Store) Get(hash Hash) (*ast.Tree, bool) {
	v, found := s.snapshots.Get(uint64(hash))
	if !found {
		return nil, false
	}
	return v.(snapshot).tree, true
}

// Parents returns the parent hashes recorded for hash, or ok=false if hash
// is unknown. A root snapshot has a non-nil, empty slice.
func (s *Store) Parents(hash Hash) ([]Hash, bool) {
	v, found := s.snapshots.Get(uint64(hash))
	if !found {
		return nil, false
	}
	return v.(snapshot).parents, true
}

// Contains reports whether hash names a stored snapshot.
func (s *Store) Contains(hash Hash) bool {
	_, found := s.snapshots.Get(uint64(hash))
	return found
}

// Len returns the number of stored snapshots.
func (s *Store) Len() int { return s.snapshots.Size() }

// IsEmpty reports whether the store holds no snapshots.
func (s *Store) IsEmpty() bool { return s.snapshots.Empty() }

// AllHashes returns every stored hash, in ascending order.
func (s *Store) AllHashes() []Hash {
	keys := s.snapshots.Keys()
	hashes := make([]Hash, len(keys))
	for i, k := range keys {
		hashes[i] = Hash(k.(uint64))
	}
	return hashes
}

// Remove deletes the snapshot stored under hash, reporting whether it was
// present.
func (s *Store) Remove(hash Hash) bool {
	existed := s.Contains(hash)
	s.snapshots.Remove(uint64(hash))
	return existed
}
