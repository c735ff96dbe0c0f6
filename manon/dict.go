// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package manon

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/Fantom-foundation/Manon/common"
	"github.com/Fantom-foundation/Manon/hamt"
)

// Dict is a persistent map preserving insertion order. It is built of two
// tries: els maps a dense insertion index to the key/value entry and drives
// ordered iteration, idx maps a key to its insertion index. A key keeps its
// original position when its value is replaced; removing and re-adding a key
// moves it to the end.
type Dict[K comparable, V any] struct {
	els *hamt.Trie[int, common.MapEntry[K, V]]
	idx *hamt.Trie[K, int]
	top int
}

// NewDict creates an empty dictionary placing keys with the given hasher.
func NewDict[K comparable, V any](hasher common.Hasher[K]) *Dict[K, V] {
	return &Dict[K, V]{
		els: hamt.NewTrie[int, common.MapEntry[K, V]](common.IdentityHasher[int]{}),
		idx: hamt.NewTrie[K, int](hasher),
	}
}

// Len returns the number of entries in constant time.
func (d *Dict[K, V]) Len() int {
	return d.idx.Size()
}

// Get returns the value associated with the given key and whether the key is
// present.
func (d *Dict[K, V]) Get(key K) (V, bool) {
	index, exists := d.idx.Get(key)
	if !exists {
		var none V
		return none, false
	}
	entry, _ := d.els.Get(index)
	return entry.Val, true
}

// Has returns whether the given key is present.
func (d *Dict[K, V]) Has(key K) bool {
	return d.idx.Contains(key)
}

// Set returns a dictionary with the given value associated to the given key.
// An existing key keeps its iteration position; a new key is appended. This
// dictionary is not modified.
func (d *Dict[K, V]) Set(key K, value V) *Dict[K, V] {
	entry := common.MapEntry[K, V]{Key: key, Val: value}
	if index, exists := d.idx.Get(key); exists {
		return &Dict[K, V]{els: d.els.Insert(index, entry), idx: d.idx, top: d.top}
	}
	return &Dict[K, V]{
		els: d.els.Insert(d.top, entry),
		idx: d.idx.Insert(key, d.top),
		top: d.top + 1,
	}
}

// Remove returns a dictionary without the entry of the given key. If the key
// is not present, this dictionary itself is returned. This dictionary is not
// modified.
func (d *Dict[K, V]) Remove(key K) *Dict[K, V] {
	index, exists := d.idx.Get(key)
	if !exists {
		return d
	}
	return &Dict[K, V]{els: d.els.Remove(index), idx: d.idx.Remove(key), top: d.top}
}

// ForEach calls the visitor for every entry in insertion order.
func (d *Dict[K, V]) ForEach(visit func(K, V)) {
	d.els.ForEach(func(_ int, entry common.MapEntry[K, V]) {
		visit(entry.Key, entry.Val)
	})
}

// Iterator returns an iterator enumerating all entries in insertion order.
func (d *Dict[K, V]) Iterator() common.Iterator[common.MapEntry[K, V]] {
	return &dictIterator[K, V]{inner: d.els.Iterator()}
}

type dictIterator[K comparable, V any] struct {
	inner *hamt.Iterator[int, common.MapEntry[K, V]]
}

func (it *dictIterator[K, V]) HasNext() bool {
	return it.inner.HasNext()
}

func (it *dictIterator[K, V]) Next() common.MapEntry[K, V] {
	return it.inner.Next().Val
}

// Keys returns all keys in insertion order.
func (d *Dict[K, V]) Keys() []K {
	res := make([]K, 0, d.Len())
	d.ForEach(func(key K, _ V) {
		res = append(res, key)
	})
	return res
}

// Values returns all values in insertion order.
func (d *Dict[K, V]) Values() []V {
	res := make([]V, 0, d.Len())
	d.ForEach(func(_ K, value V) {
		res = append(res, value)
	})
	return res
}

// Equal returns whether this and the other dictionary associate the same set
// of keys with values equal under the given predicate. Iteration order is
// not part of the comparison.
func (d *Dict[K, V]) Equal(other *Dict[K, V], valueEqual func(V, V) bool) bool {
	if d == other {
		return true
	}
	if d.Len() != other.Len() {
		return false
	}
	equal := true
	d.ForEach(func(key K, value V) {
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

func (d *Dict[K, V]) String() string {
	var b strings.Builder
	b.WriteString("{")
	first := true
	d.ForEach(func(key K, value V) {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v: %v", key, value)
	})
	b.WriteString("}")
	return b.String()
}

// GetMemoryFootprint provides the size of this dictionary in memory. Trie
// nodes shared with other dictionaries are counted in full.
func (d *Dict[K, V]) GetMemoryFootprint() *common.MemoryFootprint {
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*d))
	mf.AddChild("els", d.els.GetMemoryFootprint())
	mf.AddChild("idx", d.idx.GetMemoryFootprint())
	return mf
}

// ToBuilder opens a builder initialized with the content of this dictionary.
func (d *Dict[K, V]) ToBuilder() *DictBuilder[K, V] {
	return &DictBuilder[K, V]{els: d.els.Transient(), idx: d.idx.Transient(), top: d.top}
}

// DictBuilder accumulates entries for a Dict using batch-mutation sessions,
// avoiding the per-edit path copies of repeated Set calls. It is
// single-owner state and not safe for concurrent use.
type DictBuilder[K comparable, V any] struct {
	els *hamt.Transient[int, common.MapEntry[K, V]]
	idx *hamt.Transient[K, int]
	top int
}

// NewDictBuilder creates a builder starting from an empty dictionary using
// the given hasher for keys.
func NewDictBuilder[K comparable, V any](hasher common.Hasher[K]) *DictBuilder[K, V] {
	return NewDict[K, V](hasher).ToBuilder()
}

// Len returns the current number of entries.
func (b *DictBuilder[K, V]) Len() int {
	return b.idx.Size()
}

// Get returns the value associated with the given key and whether the key is
// present.
func (b *DictBuilder[K, V]) Get(key K) (V, bool) {
	index, exists := b.idx.Get(key)
	if !exists {
		var none V
		return none, false
	}
	entry, _ := b.els.Get(index)
	return entry.Val, true
}

// Set associates the given value with the given key. An existing key keeps
// its iteration position; a new key is appended.
func (b *DictBuilder[K, V]) Set(key K, value V) *DictBuilder[K, V] {
	entry := common.MapEntry[K, V]{Key: key, Val: value}
	if index, exists := b.idx.Get(key); exists {
		b.els.Set(index, entry)
		return b
	}
	b.els.Set(b.top, entry)
	b.idx.Set(key, b.top)
	b.top++
	return b
}

// Remove deletes the entry of the given key, if present.
func (b *DictBuilder[K, V]) Remove(key K) *DictBuilder[K, V] {
	if index, exists := b.idx.Get(key); exists {
		b.els.Delete(index)
		b.idx.Delete(key)
	}
	return b
}

// Build publishes the accumulated entries as an immutable Dict and closes
// the builder. Any further use of the builder panics.
func (b *DictBuilder[K, V]) Build() *Dict[K, V] {
	return &Dict[K, V]{els: b.els.Freeze(), idx: b.idx.Freeze(), top: b.top}
}
