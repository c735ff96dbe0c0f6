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
	"github.com/Fantom-foundation/Manon/common"
)

// ErrFrozenTransient is the panic value raised when a transient session is
// used after Freeze. Such a use is a programming error, not a runtime
// condition a caller could handle.
const ErrFrozenTransient = common.ConstError("transient session already frozen")

// Transient is a batch-mutation session over a trie. It is opened from a
// persistent Trie, edited in place, and closed by Freeze, which publishes the
// accumulated state as a new immutable Trie. The source trie is never
// affected by the session's edits.
//
// The first edit of any node copies it and tags the copy with the session's
// identity; subsequent edits of tagged nodes mutate them in place. A batch of
// n edits therefore copies each affected path node at most once instead of
// once per edit. After Freeze the session gives up its identity, so the
// published trie owns its nodes exclusively and is as immutable as any other.
//
// A Transient is single-owner state and not safe for concurrent use.
type Transient[K comparable, V any] struct {
	hasher   common.Hasher[K]
	base     *Trie[K, V]
	root     node[K, V]
	size     int
	owner    *session
	modified bool
	frozen   bool
}

// Get returns the value associated with the given key in the session's
// current state and whether the key is present.
func (t *Transient[K, V]) Get(key K) (V, bool) {
	t.mayNotBeFrozen()
	if t.root == nil {
		var none V
		return none, false
	}
	return t.root.get(t.hasher.Hash(&key), 0, key)
}

// Set associates the given value with the given key, replacing any previous
// value.
func (t *Transient[K, V]) Set(key K, value V) {
	t.Update(key, func(V, bool) V { return value })
}

// Update sets the value of the given key to the result of the update
// function, which receives the previous value and whether the key was
// present. The entry is created if it did not exist.
func (t *Transient[K, V]) Update(key K, update func(old V, exists bool) V) {
	t.mayNotBeFrozen()
	hash := t.hasher.Hash(&key)
	if t.root == nil {
		var none V
		entry := common.MapEntry[K, V]{Key: key, Val: update(none, false)}
		t.root = &leafNode[K, V]{owner: t.owner, hash: hash, entries: []common.MapEntry[K, V]{entry}}
		t.size++
		t.modified = true
		return
	}
	root, added := t.root.modify(hash, 0, key, update, t.owner)
	t.root = root
	t.size += added
	t.modified = true
}

// Delete removes the entry with the given key, if present.
func (t *Transient[K, V]) Delete(key K) {
	t.mayNotBeFrozen()
	if t.root == nil {
		return
	}
	root, removed := t.root.remove(t.hasher.Hash(&key), 0, key, t.owner)
	if !removed {
		return
	}
	t.root = root
	t.size--
	t.modified = true
}

// Size returns the number of entries in the session's current state.
func (t *Transient[K, V]) Size() int {
	t.mayNotBeFrozen()
	return t.size
}

// ForEach calls the visitor for every entry of the session's current state in
// ascending key hash order.
func (t *Transient[K, V]) ForEach(visit func(K, V)) {
	t.mayNotBeFrozen()
	if t.root != nil {
		t.root.forEach(visit)
	}
}

// Freeze closes the session and publishes its accumulated state as an
// immutable Trie. If no edit modified the state, the trie the session was
// opened from is returned. Any use of the session after Freeze panics.
func (t *Transient[K, V]) Freeze() *Trie[K, V] {
	t.mayNotBeFrozen()
	t.frozen = true
	t.owner = nil
	if !t.modified {
		return t.base
	}
	return &Trie[K, V]{hasher: t.hasher, root: t.root, size: t.size}
}

func (t *Transient[K, V]) mayNotBeFrozen() {
	if t.frozen {
		panic(ErrFrozenTransient)
	}
}
