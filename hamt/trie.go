// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package hamt

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/Fantom-foundation/Manon/common"
)

// Trie is a persistent, immutable map of keys to values backed by a hash
// array mapped trie. Every deriving operation returns a new Trie sharing all
// unmodified structure with its source; the source remains valid and
// unchanged forever. Instances are safe for concurrent read access, and
// derived versions may be created concurrently from the same source.
//
// Lookups, insertions, and removals run in O(log32 n) node visits; a
// deriving operation copies only the nodes on the path from the root to the
// affected entry, leaving all other nodes shared between versions.
type Trie[K comparable, V any] struct {
	hasher common.Hasher[K]
	root   node[K, V]
	size   int
}

// NewTrie creates an empty Trie using the given hasher to place keys. All
// tries derived from it keep using the same hasher.
func NewTrie[K comparable, V any](hasher common.Hasher[K]) *Trie[K, V] {
	return &Trie[K, V]{hasher: hasher}
}

// Get returns the value associated with the given key and whether the key is
// present.
func (t *Trie[K, V]) Get(key K) (V, bool) {
	if t.root == nil {
		var none V
		return none, false
	}
	return t.root.get(t.hasher.Hash(&key), 0, key)
}

// Contains returns whether the given key is present.
func (t *Trie[K, V]) Contains(key K) bool {
	_, exists := t.Get(key)
	return exists
}

// Insert returns a trie holding all entries of this trie plus the given
// key/value association, replacing any previous value of the key. This trie
// is not modified.
func (t *Trie[K, V]) Insert(key K, value V) *Trie[K, V] {
	return t.Update(key, func(V, bool) V { return value })
}

// Update returns a trie in which the value of the given key is the result of
// the update function, which receives the previous value and whether the key
// was present. The entry is created if it did not exist. This trie is not
// modified. The key is looked up only once, making Update cheaper than a
// Get followed by an Insert.
func (t *Trie[K, V]) Update(key K, update func(old V, exists bool) V) *Trie[K, V] {
	hash := t.hasher.Hash(&key)
	if t.root == nil {
		var none V
		entry := common.MapEntry[K, V]{Key: key, Val: update(none, false)}
		root := &leafNode[K, V]{hash: hash, entries: []common.MapEntry[K, V]{entry}}
		return &Trie[K, V]{hasher: t.hasher, root: root, size: 1}
	}
	root, added := t.root.modify(hash, 0, key, update, nil)
	return &Trie[K, V]{hasher: t.hasher, root: root, size: t.size + added}
}

// Remove returns a trie holding all entries of this trie except the one with
// the given key. If the key is not present, this trie itself is returned.
// This trie is not modified.
func (t *Trie[K, V]) Remove(key K) *Trie[K, V] {
	if t.root == nil {
		return t
	}
	root, removed := t.root.remove(t.hasher.Hash(&key), 0, key, nil)
	if !removed {
		return t
	}
	return &Trie[K, V]{hasher: t.hasher, root: root, size: t.size - 1}
}

// Size returns the number of entries in this trie in constant time.
func (t *Trie[K, V]) Size() int {
	return t.size
}

// IsEmpty returns whether this trie holds no entries.
func (t *Trie[K, V]) IsEmpty() bool {
	return t.size == 0
}

// ForEach calls the visitor for every entry of this trie in ascending key
// hash order.
func (t *Trie[K, V]) ForEach(visit func(K, V)) {
	if t.root != nil {
		t.root.forEach(visit)
	}
}

// Iterator returns an iterator enumerating all entries of this trie in
// ascending key hash order. The iterator remains valid forever since the
// trie it traverses can never change.
func (t *Trie[K, V]) Iterator() *Iterator[K, V] {
	return newIterator(t.root)
}

// Transient opens a batch-mutation session initialized with the content of
// this trie. Edits of the session do not affect this trie.
func (t *Trie[K, V]) Transient() *Transient[K, V] {
	return &Transient[K, V]{
		hasher: t.hasher,
		base:   t,
		root:   t.root,
		size:   t.size,
		owner:  &session{},
	}
}

// Equal returns whether this and the other trie hold the same set of keys
// with values equal under the given predicate.
func (t *Trie[K, V]) Equal(other *Trie[K, V], valueEqual func(V, V) bool) bool {
	if t == other {
		return true
	}
	if t.size != other.size {
		return false
	}
	equal := true
	t.ForEach(func(key K, value V) {
		if !equal {
			return
		}
		got, exists := other.Get(key)
		if !exists || !valueEqual(value, got) {
			equal = false
		}
	})
	return equal
}

// Hash returns a hash of the content of this trie. Tries holding the same
// entries produce the same hash regardless of the order the entries were
// added in.
func (t *Trie[K, V]) Hash() uint64 {
	res := uint64(t.size) * 0x9e3779b97f4a7c15
	t.ForEach(func(key K, _ V) {
		h := t.hasher.Hash(&key)
		// Mix each key hash before folding so that related hashes do not
		// cancel out under xor.
		h ^= h >> 30
		h *= 0xbf58476d1ce4e5b9
		h ^= h >> 27
		res ^= h
	})
	return res
}

// Check verifies the structural invariants of this trie. It is a testing and
// debugging aid; a trie produced by the operations of this package always
// passes.
func (t *Trie[K, V]) Check() error {
	if t.root == nil {
		if t.size != 0 {
			return fmt.Errorf("empty trie with non-zero size %d", t.size)
		}
		return nil
	}
	if err := t.root.check(0); err != nil {
		return err
	}
	count := 0
	t.ForEach(func(K, V) { count++ })
	if count != t.size {
		return fmt.Errorf("inconsistent size: recorded %d, counted %d", t.size, count)
	}
	return nil
}

func (t *Trie[K, V]) String() string {
	var b strings.Builder
	b.WriteString("{")
	first := true
	t.ForEach(func(key K, value V) {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v: %v", key, value)
	})
	b.WriteString("}")
	return b.String()
}

// GetMemoryFootprint provides the size of this trie in memory, including all
// its nodes. Nodes shared with other tries are counted in full.
func (t *Trie[K, V]) GetMemoryFootprint() *common.MemoryFootprint {
	size := unsafe.Sizeof(*t)
	if t.root != nil {
		size += t.root.footprint()
	}
	return common.NewMemoryFootprint(size)
}
