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
)

// Set is a persistent set of elements preserving insertion order. It is a
// thin view on a Dict associating elements with no payload.
type Set[E comparable] struct {
	dict *Dict[E, struct{}]
}

// NewSet creates an empty set placing elements with the given hasher.
func NewSet[E comparable](hasher common.Hasher[E]) *Set[E] {
	return &Set[E]{dict: NewDict[E, struct{}](hasher)}
}

// Len returns the number of elements in constant time.
func (s *Set[E]) Len() int {
	return s.dict.Len()
}

// Has returns whether the given element is present.
func (s *Set[E]) Has(element E) bool {
	return s.dict.Has(element)
}

// Add returns a set containing the given element. An element already present
// keeps its iteration position. This set is not modified.
func (s *Set[E]) Add(element E) *Set[E] {
	if s.dict.Has(element) {
		return s
	}
	return &Set[E]{dict: s.dict.Set(element, struct{}{})}
}

// Discard returns a set without the given element. If the element is not
// present, this set itself is returned. This set is not modified.
func (s *Set[E]) Discard(element E) *Set[E] {
	next := s.dict.Remove(element)
	if next == s.dict {
		return s
	}
	return &Set[E]{dict: next}
}

// ForEach calls the visitor for every element in insertion order.
func (s *Set[E]) ForEach(visit func(E)) {
	s.dict.ForEach(func(element E, _ struct{}) {
		visit(element)
	})
}

// Iterator returns an iterator enumerating all elements in insertion order.
func (s *Set[E]) Iterator() common.Iterator[E] {
	return &setIterator[E]{inner: s.dict.Iterator()}
}

type setIterator[E comparable] struct {
	inner common.Iterator[common.MapEntry[E, struct{}]]
}

func (it *setIterator[E]) HasNext() bool {
	return it.inner.HasNext()
}

func (it *setIterator[E]) Next() E {
	return it.inner.Next().Key
}

// Equal returns whether this and the other set contain the same elements.
// Iteration order is not part of the comparison.
func (s *Set[E]) Equal(other *Set[E]) bool {
	return s.dict.Equal(other.dict, func(struct{}, struct{}) bool { return true })
}

// ToSlice returns the elements as a plain mutable slice in insertion order.
func (s *Set[E]) ToSlice() []E {
	return s.dict.Keys()
}

func (s *Set[E]) String() string {
	var b strings.Builder
	b.WriteString("{")
	first := true
	s.ForEach(func(element E) {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v", element)
	})
	b.WriteString("}")
	return b.String()
}

// GetMemoryFootprint provides the size of this set in memory. Trie nodes
// shared with other sets are counted in full.
func (s *Set[E]) GetMemoryFootprint() *common.MemoryFootprint {
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*s))
	mf.AddChild("dict", s.dict.GetMemoryFootprint())
	return mf
}

// ToBuilder opens a builder initialized with the content of this set.
func (s *Set[E]) ToBuilder() *SetBuilder[E] {
	return &SetBuilder[E]{dict: s.dict.ToBuilder()}
}

// SetBuilder accumulates elements for a Set using batch-mutation sessions.
// It is single-owner state and not safe for concurrent use.
type SetBuilder[E comparable] struct {
	dict *DictBuilder[E, struct{}]
}

// NewSetBuilder creates a builder starting from an empty set using the given
// hasher for elements.
func NewSetBuilder[E comparable](hasher common.Hasher[E]) *SetBuilder[E] {
	return NewSet[E](hasher).ToBuilder()
}

// Len returns the current number of elements.
func (b *SetBuilder[E]) Len() int {
	return b.dict.Len()
}

// Has returns whether the given element is present.
func (b *SetBuilder[E]) Has(element E) bool {
	_, exists := b.dict.Get(element)
	return exists
}

// Add inserts the given element. An element already present keeps its
// iteration position.
func (b *SetBuilder[E]) Add(element E) *SetBuilder[E] {
	if !b.Has(element) {
		b.dict.Set(element, struct{}{})
	}
	return b
}

// Discard removes the given element, if present.
func (b *SetBuilder[E]) Discard(element E) *SetBuilder[E] {
	b.dict.Remove(element)
	return b
}

// Build publishes the accumulated elements as an immutable Set and closes
// the builder. Any further use of the builder panics.
func (b *SetBuilder[E]) Build() *Set[E] {
	return &Set[E]{dict: b.dict.Build()}
}
