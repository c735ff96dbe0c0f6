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
	"math/bits"
	"unsafe"

	"github.com/Fantom-foundation/Manon/common"
)

const (
	// bitsPerLevel is the width of the hash chunk consumed per tree level.
	bitsPerLevel = 5

	// branchingFactor is the number of child slots of a branch node.
	branchingFactor = 1 << bitsPerLevel

	// hashBits is the width of the key hash consumed by the radix descent.
	hashBits = 64

	// maxDepth is the number of levels needed to consume a full hash. The
	// last level indexes the 4 remaining low bits only.
	maxDepth = (hashBits + bitsPerLevel - 1) / bitsPerLevel
)

// indexAt extracts the branch slot index for the given depth from a hash.
// Chunks are taken from the most significant bits down, so that the in-order
// traversal of a tree enumerates entries in ascending hash order.
func indexAt(hash uint64, depth int) int {
	if depth >= maxDepth-1 {
		return int(hash & 0xF)
	}
	shift := uint(hashBits - bitsPerLevel*(depth+1))
	return int((hash >> shift) & (branchingFactor - 1))
}

// session is an identity marker owned by a single Transient. Nodes tagged
// with a session may be mutated in place by that session only; all other
// nodes are immutable and must be copied before modification.
type session struct {
	_ byte
}

// node is one vertex of a hash array mapped trie. A tree reachable from a
// published Trie root is never mutated; only nodes tagged with a live
// session's marker may change in place.
type node[K comparable, V any] interface {
	// get looks up the value of a key in the subtree rooted by this node.
	get(hash uint64, depth int, key K) (V, bool)

	// modify applies an upsert of the given key to the subtree, computing
	// the stored value via update from the previous value (if any). It
	// returns the new subtree root and 1 if a new entry was created, 0 if
	// an existing one was replaced. Nodes owned by the given session are
	// edited in place; shared nodes are path-copied.
	modify(hash uint64, depth int, key K, update func(V, bool) V, owner *session) (node[K, V], int)

	// remove deletes a key from the subtree. It returns the new subtree
	// root (nil if the subtree became empty) and whether an entry was
	// removed. Branches left with a single leaf child collapse into it.
	remove(hash uint64, depth int, key K, owner *session) (node[K, V], bool)

	// forEach calls the visitor for every entry of the subtree in stable
	// slot-ascending order.
	forEach(visit func(K, V))

	// check validates structural invariants of the subtree rooted by this
	// node, assuming it is located at the given depth.
	check(depth int) error

	// footprint reports the memory consumed by the subtree in bytes.
	footprint() uintptr
}

// leafNode is a collision bucket: one or more entries sharing the same full
// hash code. In the vast majority of cases it holds exactly one entry.
type leafNode[K comparable, V any] struct {
	owner   *session
	hash    uint64
	entries []common.MapEntry[K, V]
}

// branchNode is a sparse table of up to branchingFactor children. The mask
// records occupied slots, the children slice stores occupants densely in
// slot-ascending order. Slot-to-position translation uses the popcount of
// the mask bits below the slot.
type branchNode[K comparable, V any] struct {
	owner    *session
	mask     uint32
	children []node[K, V]
}

func (b *branchNode[K, V]) position(index int) (pos int, exists bool) {
	bit := uint32(1) << index
	return bits.OnesCount32(b.mask & (bit - 1)), b.mask&bit != 0
}

func (l *leafNode[K, V]) get(hash uint64, depth int, key K) (V, bool) {
	if hash == l.hash {
		for i := range l.entries {
			if l.entries[i].Key == key {
				return l.entries[i].Val, true
			}
		}
	}
	var none V
	return none, false
}

func (b *branchNode[K, V]) get(hash uint64, depth int, key K) (V, bool) {
	pos, exists := b.position(indexAt(hash, depth))
	if !exists {
		var none V
		return none, false
	}
	return b.children[pos].get(hash, depth+1, key)
}

func (l *leafNode[K, V]) modify(hash uint64, depth int, key K, update func(V, bool) V, owner *session) (node[K, V], int) {
	if hash != l.hash {
		// The slot must be split: push this leaf and the new entry down
		// until their hash chunks diverge.
		var none V
		entry := common.MapEntry[K, V]{Key: key, Val: update(none, false)}
		added := &leafNode[K, V]{owner: owner, hash: hash, entries: []common.MapEntry[K, V]{entry}}
		return mergeLeaves[K, V](depth, l, added, owner), 1
	}
	for i := range l.entries {
		if l.entries[i].Key == key {
			value := update(l.entries[i].Val, true)
			if owner != nil && l.owner == owner {
				l.entries[i].Val = value
				return l, 0
			}
			entries := make([]common.MapEntry[K, V], len(l.entries))
			copy(entries, l.entries)
			entries[i].Val = value
			return &leafNode[K, V]{owner: owner, hash: hash, entries: entries}, 0
		}
	}
	// A true collision: same full hash, different key.
	var none V
	entry := common.MapEntry[K, V]{Key: key, Val: update(none, false)}
	if owner != nil && l.owner == owner {
		l.entries = append(l.entries, entry)
		return l, 1
	}
	entries := make([]common.MapEntry[K, V], len(l.entries), len(l.entries)+1)
	copy(entries, l.entries)
	return &leafNode[K, V]{owner: owner, hash: hash, entries: append(entries, entry)}, 1
}

// mergeLeaves builds the branch structure separating two leaves with
// distinct hashes, nesting branches as long as their hash chunks agree.
func mergeLeaves[K comparable, V any](depth int, a, b *leafNode[K, V], owner *session) node[K, V] {
	ia := indexAt(a.hash, depth)
	ib := indexAt(b.hash, depth)
	if ia == ib {
		child := mergeLeaves(depth+1, a, b, owner)
		return &branchNode[K, V]{owner: owner, mask: uint32(1) << ia, children: []node[K, V]{child}}
	}
	mask := uint32(1)<<ia | uint32(1)<<ib
	children := []node[K, V]{a, b}
	if ib < ia {
		children[0], children[1] = children[1], children[0]
	}
	return &branchNode[K, V]{owner: owner, mask: mask, children: children}
}

func (b *branchNode[K, V]) modify(hash uint64, depth int, key K, update func(V, bool) V, owner *session) (node[K, V], int) {
	index := indexAt(hash, depth)
	pos, exists := b.position(index)
	if !exists {
		var none V
		entry := common.MapEntry[K, V]{Key: key, Val: update(none, false)}
		leaf := &leafNode[K, V]{owner: owner, hash: hash, entries: []common.MapEntry[K, V]{entry}}
		if owner != nil && b.owner == owner {
			b.mask |= uint32(1) << index
			b.children = append(b.children, nil)
			copy(b.children[pos+1:], b.children[pos:])
			b.children[pos] = leaf
			return b, 1
		}
		children := make([]node[K, V], len(b.children)+1)
		copy(children, b.children[:pos])
		children[pos] = leaf
		copy(children[pos+1:], b.children[pos:])
		return &branchNode[K, V]{owner: owner, mask: b.mask | uint32(1)<<index, children: children}, 1
	}
	child, added := b.children[pos].modify(hash, depth+1, key, update, owner)
	if owner != nil && b.owner == owner {
		b.children[pos] = child
		return b, added
	}
	if child == b.children[pos] {
		return b, added
	}
	children := make([]node[K, V], len(b.children))
	copy(children, b.children)
	children[pos] = child
	return &branchNode[K, V]{owner: owner, mask: b.mask, children: children}, added
}

func (l *leafNode[K, V]) remove(hash uint64, depth int, key K, owner *session) (node[K, V], bool) {
	if hash != l.hash {
		return l, false
	}
	for i := range l.entries {
		if l.entries[i].Key != key {
			continue
		}
		if len(l.entries) == 1 {
			return nil, true
		}
		if owner != nil && l.owner == owner {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return l, true
		}
		entries := make([]common.MapEntry[K, V], 0, len(l.entries)-1)
		entries = append(entries, l.entries[:i]...)
		entries = append(entries, l.entries[i+1:]...)
		return &leafNode[K, V]{owner: owner, hash: hash, entries: entries}, true
	}
	return l, false
}

func (b *branchNode[K, V]) remove(hash uint64, depth int, key K, owner *session) (node[K, V], bool) {
	index := indexAt(hash, depth)
	pos, exists := b.position(index)
	if !exists {
		return b, false
	}
	child, removed := b.children[pos].remove(hash, depth+1, key, owner)
	if !removed {
		return b, false
	}
	if child == nil {
		if len(b.children) == 1 {
			return nil, true
		}
		// A branch left with a single leaf collapses into it; its full
		// hash re-positions it correctly at any shallower depth.
		if len(b.children) == 2 {
			other := b.children[1-pos]
			if leaf, isLeaf := other.(*leafNode[K, V]); isLeaf {
				return leaf, true
			}
		}
		if owner != nil && b.owner == owner {
			b.mask &^= uint32(1) << index
			b.children = append(b.children[:pos], b.children[pos+1:]...)
			return b, true
		}
		children := make([]node[K, V], 0, len(b.children)-1)
		children = append(children, b.children[:pos]...)
		children = append(children, b.children[pos+1:]...)
		return &branchNode[K, V]{owner: owner, mask: b.mask &^ (uint32(1) << index), children: children}, true
	}
	// The child may have collapsed into a leaf; if it is the only child
	// of this branch, the collapse propagates upwards.
	if len(b.children) == 1 {
		if leaf, isLeaf := child.(*leafNode[K, V]); isLeaf {
			return leaf, true
		}
	}
	if owner != nil && b.owner == owner {
		b.children[pos] = child
		return b, true
	}
	children := make([]node[K, V], len(b.children))
	copy(children, b.children)
	children[pos] = child
	return &branchNode[K, V]{owner: owner, mask: b.mask, children: children}, true
}

func (l *leafNode[K, V]) forEach(visit func(K, V)) {
	for i := range l.entries {
		visit(l.entries[i].Key, l.entries[i].Val)
	}
}

func (b *branchNode[K, V]) forEach(visit func(K, V)) {
	for _, child := range b.children {
		child.forEach(visit)
	}
}

func (l *leafNode[K, V]) check(depth int) error {
	if len(l.entries) == 0 {
		return fmt.Errorf("empty leaf node at depth %d", depth)
	}
	if depth > maxDepth {
		return fmt.Errorf("leaf node exceeds maximum depth: %d", depth)
	}
	return nil
}

func (b *branchNode[K, V]) check(depth int) error {
	if depth >= maxDepth {
		return fmt.Errorf("branch node exceeds maximum depth: %d", depth)
	}
	if got, want := len(b.children), bits.OnesCount32(b.mask); got != want {
		return fmt.Errorf("branch mask inconsistent with children: %d slots, %d children", want, got)
	}
	if len(b.children) == 0 {
		return fmt.Errorf("empty branch node at depth %d", depth)
	}
	if len(b.children) == 1 {
		if _, isLeaf := b.children[0].(*leafNode[K, V]); isLeaf {
			return fmt.Errorf("non-collapsed branch with a single leaf at depth %d", depth)
		}
	}
	slot := 0
	for mask := b.mask; mask != 0; mask &= mask - 1 {
		index := bits.TrailingZeros32(mask)
		child := b.children[slot]
		if leaf, isLeaf := child.(*leafNode[K, V]); isLeaf {
			if got := indexAt(leaf.hash, depth); got != index {
				return fmt.Errorf("leaf with hash %x stored in slot %d instead of %d at depth %d", leaf.hash, index, got, depth)
			}
		}
		if err := child.check(depth + 1); err != nil {
			return err
		}
		slot++
	}
	return nil
}

func (l *leafNode[K, V]) footprint() uintptr {
	var entry common.MapEntry[K, V]
	return unsafe.Sizeof(*l) + uintptr(cap(l.entries))*unsafe.Sizeof(entry)
}

func (b *branchNode[K, V]) footprint() uintptr {
	var ref node[K, V]
	sum := unsafe.Sizeof(*b) + uintptr(cap(b.children))*unsafe.Sizeof(&ref)
	for _, child := range b.children {
		sum += child.footprint()
	}
	return sum
}
