// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package manon provides persistent, immutable collections backed by hash
// array mapped tries: List, Dict, and Set, together with lazy-valued
// variants whose elements are evaluated on first access. Every deriving
// operation returns a new collection sharing all unmodified structure with
// its source; the source remains valid and unchanged forever.
package manon

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/Fantom-foundation/Manon/common"
	"github.com/Fantom-foundation/Manon/hamt"
)

// List is a persistent sequence of elements. Elements are stored in an
// integer-keyed trie indexed relative to a start offset, so that appending
// and prepending both cost a single trie update. Slicing is a constant-time
// re-view of the shared trie.
type List[E any] struct {
	els    *hamt.Trie[int, E]
	start  int
	length int
}

// NewList creates a list of the given elements.
func NewList[E any](elements ...E) *List[E] {
	session := emptyListTrie[E]().Transient()
	for i, element := range elements {
		session.Set(i, element)
	}
	return &List[E]{els: session.Freeze(), length: len(elements)}
}

func emptyListTrie[E any]() *hamt.Trie[int, E] {
	return hamt.NewTrie[int, E](common.IdentityHasher[int]{})
}

// Len returns the number of elements in constant time.
func (l *List[E]) Len() int {
	return l.length
}

// Get returns the element at the given position. It panics if the position
// is out of bounds.
func (l *List[E]) Get(index int) E {
	l.mustContain(index, "Get")
	element, _ := l.els.Get(l.start + index)
	return element
}

// Set returns a list with the element at the given position replaced. It
// panics if the position is out of bounds. This list is not modified.
func (l *List[E]) Set(index int, element E) *List[E] {
	l.mustContain(index, "Set")
	return &List[E]{els: l.els.Insert(l.start+index, element), start: l.start, length: l.length}
}

// Append returns a list with the given elements added to the end. This list
// is not modified.
func (l *List[E]) Append(elements ...E) *List[E] {
	if len(elements) == 0 {
		return l
	}
	session := l.els.Transient()
	for i, element := range elements {
		session.Set(l.start+l.length+i, element)
	}
	return &List[E]{els: session.Freeze(), start: l.start, length: l.length + len(elements)}
}

// Prepend returns a list with the given element added to the front. This
// list is not modified.
func (l *List[E]) Prepend(element E) *List[E] {
	return &List[E]{els: l.els.Insert(l.start-1, element), start: l.start - 1, length: l.length + 1}
}

// Insert returns a list with the given element inserted before the given
// position; position Len() appends. All elements from the position on are
// shifted, making Insert linear in the distance to the end. It panics if the
// position is out of bounds. This list is not modified.
func (l *List[E]) Insert(index int, element E) *List[E] {
	if index < 0 || index > l.length {
		panic(fmt.Sprintf("manon.List.Insert: index %d out of bounds [0,%d]", index, l.length))
	}
	session := l.els.Transient()
	for i := l.length - 1; i >= index; i-- {
		shifted, _ := l.els.Get(l.start + i)
		session.Set(l.start+i+1, shifted)
	}
	session.Set(l.start+index, element)
	return &List[E]{els: session.Freeze(), start: l.start, length: l.length + 1}
}

// Delete returns a list with the element at the given position removed. All
// later elements are shifted, making Delete linear in the distance to the
// end. It panics if the position is out of bounds. This list is not
// modified.
func (l *List[E]) Delete(index int) *List[E] {
	l.mustContain(index, "Delete")
	session := l.els.Transient()
	for i := index + 1; i < l.length; i++ {
		shifted, _ := l.els.Get(l.start + i)
		session.Set(l.start+i-1, shifted)
	}
	session.Delete(l.start + l.length - 1)
	return &List[E]{els: session.Freeze(), start: l.start, length: l.length - 1}
}

// Slice returns the sub-list of positions [from, to). It shares the element
// trie with this list and costs O(1). It panics if the range is not within
// bounds.
func (l *List[E]) Slice(from, to int) *List[E] {
	if from < 0 || to > l.length || from > to {
		panic(fmt.Sprintf("manon.List.Slice: range [%d,%d) out of bounds [0,%d)", from, to, l.length))
	}
	return &List[E]{els: l.els, start: l.start + from, length: to - from}
}

// ForEach calls the visitor for every element in positional order.
func (l *List[E]) ForEach(visit func(int, E)) {
	for i := 0; i < l.length; i++ {
		element, _ := l.els.Get(l.start + i)
		visit(i, element)
	}
}

// Iterator returns an iterator enumerating all elements in positional order.
func (l *List[E]) Iterator() common.Iterator[E] {
	return &listIterator[E]{list: l}
}

type listIterator[E any] struct {
	list *List[E]
	next int
}

func (it *listIterator[E]) HasNext() bool {
	return it.next < it.list.length
}

func (it *listIterator[E]) Next() E {
	element := it.list.Get(it.next)
	it.next++
	return element
}

// Equal returns whether this and the other list hold equal elements in the
// same order, compared by the given predicate.
func (l *List[E]) Equal(other *List[E], elementEqual func(E, E) bool) bool {
	if l == other {
		return true
	}
	if l.length != other.length {
		return false
	}
	for i := 0; i < l.length; i++ {
		if !elementEqual(l.Get(i), other.Get(i)) {
			return false
		}
	}
	return true
}

// ToSlice returns the elements as a plain mutable slice.
func (l *List[E]) ToSlice() []E {
	res := make([]E, l.length)
	for i := 0; i < l.length; i++ {
		res[i] = l.Get(i)
	}
	return res
}

func (l *List[E]) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < l.length; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", l.Get(i))
	}
	b.WriteString("]")
	return b.String()
}

// GetMemoryFootprint provides the size of this list in memory. Trie nodes
// shared with other lists are counted in full.
func (l *List[E]) GetMemoryFootprint() *common.MemoryFootprint {
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*l))
	mf.AddChild("els", l.els.GetMemoryFootprint())
	return mf
}

func (l *List[E]) mustContain(index int, op string) {
	if index < 0 || index >= l.length {
		panic(fmt.Sprintf("manon.List.%s: index %d out of bounds [0,%d)", op, index, l.length))
	}
}

// ListBuilder accumulates elements for a List using a single batch-mutation
// session, avoiding the per-edit path copies of repeated Append calls. It is
// single-owner state and not safe for concurrent use.
type ListBuilder[E any] struct {
	session *hamt.Transient[int, E]
	start   int
	length  int
}

// NewListBuilder creates a builder starting from an empty list.
func NewListBuilder[E any]() *ListBuilder[E] {
	return &ListBuilder[E]{session: emptyListTrie[E]().Transient()}
}

// ToBuilder opens a builder initialized with the content of this list.
func (l *List[E]) ToBuilder() *ListBuilder[E] {
	// A slice view must not leak hidden elements of the backing trie into
	// the builder, so views are re-indexed into a fresh session.
	if l.start != 0 || l.els.Size() != l.length {
		builder := NewListBuilder[E]()
		for i := 0; i < l.length; i++ {
			builder.Append(l.Get(i))
		}
		return builder
	}
	return &ListBuilder[E]{session: l.els.Transient(), start: l.start, length: l.length}
}

// Len returns the current number of elements.
func (b *ListBuilder[E]) Len() int {
	return b.length
}

// Get returns the element at the given position. It panics if the position
// is out of bounds.
func (b *ListBuilder[E]) Get(index int) E {
	if index < 0 || index >= b.length {
		panic(fmt.Sprintf("manon.ListBuilder.Get: index %d out of bounds [0,%d)", index, b.length))
	}
	element, _ := b.session.Get(b.start + index)
	return element
}

// Set replaces the element at the given position. It panics if the position
// is out of bounds.
func (b *ListBuilder[E]) Set(index int, element E) *ListBuilder[E] {
	if index < 0 || index >= b.length {
		panic(fmt.Sprintf("manon.ListBuilder.Set: index %d out of bounds [0,%d)", index, b.length))
	}
	b.session.Set(b.start+index, element)
	return b
}

// Append adds an element to the end.
func (b *ListBuilder[E]) Append(element E) *ListBuilder[E] {
	b.session.Set(b.start+b.length, element)
	b.length++
	return b
}

// Prepend adds an element to the front.
func (b *ListBuilder[E]) Prepend(element E) *ListBuilder[E] {
	b.start--
	b.session.Set(b.start, element)
	b.length++
	return b
}

// Build publishes the accumulated elements as an immutable List and closes
// the builder. Any further use of the builder panics.
func (b *ListBuilder[E]) Build() *List[E] {
	return &List[E]{els: b.session.Freeze(), start: b.start, length: b.length}
}
