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
	"errors"
	"fmt"
	"strings"

	"github.com/Fantom-foundation/Manon/common"
	"github.com/Fantom-foundation/Manon/common/immutable"
)

// LazyDict is a persistent dictionary of deferred values. Values are stored
// as immutable.Lazy cells and evaluated on first access; forcing a value is
// not observable as a modification of the dictionary, and a value derived
// into many versions is evaluated at most once for all of them. Keys are
// plain and never lazy.
type LazyDict[K comparable, V any] struct {
	dict *Dict[K, *immutable.Lazy[V]]
}

// NewLazyDict creates an empty lazy dictionary placing keys with the given
// hasher.
func NewLazyDict[K comparable, V any](hasher common.Hasher[K]) *LazyDict[K, V] {
	return &LazyDict[K, V]{dict: NewDict[K, *immutable.Lazy[V]](hasher)}
}

// Len returns the number of entries in constant time.
func (d *LazyDict[K, V]) Len() int {
	return d.dict.Len()
}

// Has returns whether the given key is present, without forcing its value.
func (d *LazyDict[K, V]) Has(key K) bool {
	return d.dict.Has(key)
}

// Set returns a dictionary associating the given key with a deferred
// computation of its value. This dictionary is not modified.
func (d *LazyDict[K, V]) Set(key K, compute func() (V, error)) *LazyDict[K, V] {
	return &LazyDict[K, V]{dict: d.dict.Set(key, immutable.NewLazy(compute))}
}

// SetResolved returns a dictionary associating the given key with an already
// computed value. This dictionary is not modified.
func (d *LazyDict[K, V]) SetResolved(key K, value V) *LazyDict[K, V] {
	return &LazyDict[K, V]{dict: d.dict.Set(key, immutable.NewResolved(value))}
}

// Remove returns a dictionary without the entry of the given key, which is
// not forced. If the key is not present, this dictionary itself is returned.
func (d *LazyDict[K, V]) Remove(key K) *LazyDict[K, V] {
	next := d.dict.Remove(key)
	if next == d.dict {
		return d
	}
	return &LazyDict[K, V]{dict: next}
}

// Get returns the value of the given key, forcing its evaluation if needed.
// A failing evaluation reports its error and is retried on the next access.
func (d *LazyDict[K, V]) Get(key K) (value V, exists bool, err error) {
	cell, exists := d.dict.Get(key)
	if !exists {
		var none V
		return none, false, nil
	}
	value, err = cell.Get()
	return value, true, err
}

// GetLazy returns the deferred value of the given key without forcing it.
func (d *LazyDict[K, V]) GetLazy(key K) (*immutable.Lazy[V], bool) {
	return d.dict.Get(key)
}

// IsReady returns whether the value of the given key is present and already
// evaluated.
func (d *LazyDict[K, V]) IsReady(key K) bool {
	cell, exists := d.dict.Get(key)
	return exists && cell.IsEvaluated()
}

// ReadyAll forces the evaluation of all values. Errors of failing
// evaluations are joined; successfully evaluated values stay cached.
func (d *LazyDict[K, V]) ReadyAll() error {
	var errs []error
	d.dict.ForEach(func(key K, cell *immutable.Lazy[V]) {
		if _, err := cell.Get(); err != nil {
			errs = append(errs, fmt.Errorf("evaluating value of key %v: %w", key, err))
		}
	})
	return errors.Join(errs...)
}

// Keys returns all keys in insertion order.
func (d *LazyDict[K, V]) Keys() []K {
	return d.dict.Keys()
}

// Equal returns whether this and the other dictionary associate the same set
// of keys with values equal under the given predicate. It forces the
// evaluation of all compared values and fails if any of them fails.
func (d *LazyDict[K, V]) Equal(other *LazyDict[K, V], valueEqual func(V, V) bool) (bool, error) {
	if d == other {
		return true, nil
	}
	if d.Len() != other.Len() {
		return false, nil
	}
	equal := true
	var failure error
	d.dict.ForEach(func(key K, cell *immutable.Lazy[V]) {
		if !equal || failure != nil {
			return
		}
		otherValue, exists, err := other.Get(key)
		if err != nil {
			failure = err
			return
		}
		if !exists {
			equal = false
			return
		}
		value, err := cell.Get()
		if err != nil {
			failure = err
			return
		}
		equal = valueEqual(value, otherValue)
	})
	return equal && failure == nil, failure
}

// String prints the dictionary without forcing any value; pending values
// appear as <lazy>.
func (d *LazyDict[K, V]) String() string {
	var b strings.Builder
	b.WriteString("{|")
	first := true
	d.dict.ForEach(func(key K, cell *immutable.Lazy[V]) {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%v: %s", key, formatLazy(cell))
	})
	b.WriteString("|}")
	return b.String()
}

// LazyList is a persistent sequence of deferred elements, evaluated on first
// access. Forcing an element is not observable as a modification of the
// list.
type LazyList[E any] struct {
	list *List[*immutable.Lazy[E]]
}

// NewLazyList creates a list of the given deferred elements.
func NewLazyList[E any](computes ...func() (E, error)) *LazyList[E] {
	cells := make([]*immutable.Lazy[E], len(computes))
	for i, compute := range computes {
		cells[i] = immutable.NewLazy(compute)
	}
	return &LazyList[E]{list: NewList(cells...)}
}

// Len returns the number of elements in constant time.
func (l *LazyList[E]) Len() int {
	return l.list.Len()
}

// Append returns a list with a deferred element added to the end. This list
// is not modified.
func (l *LazyList[E]) Append(compute func() (E, error)) *LazyList[E] {
	return &LazyList[E]{list: l.list.Append(immutable.NewLazy(compute))}
}

// AppendResolved returns a list with an already computed element added to
// the end. This list is not modified.
func (l *LazyList[E]) AppendResolved(element E) *LazyList[E] {
	return &LazyList[E]{list: l.list.Append(immutable.NewResolved(element))}
}

// Prepend returns a list with a deferred element added to the front. This
// list is not modified.
func (l *LazyList[E]) Prepend(compute func() (E, error)) *LazyList[E] {
	return &LazyList[E]{list: l.list.Prepend(immutable.NewLazy(compute))}
}

// Get returns the element at the given position, forcing its evaluation if
// needed. A failing evaluation reports its error and is retried on the next
// access. It panics if the position is out of bounds.
func (l *LazyList[E]) Get(index int) (E, error) {
	return l.list.Get(index).Get()
}

// GetLazy returns the deferred element at the given position without forcing
// it. It panics if the position is out of bounds.
func (l *LazyList[E]) GetLazy(index int) *immutable.Lazy[E] {
	return l.list.Get(index)
}

// IsReady returns whether the element at the given position is already
// evaluated. It panics if the position is out of bounds.
func (l *LazyList[E]) IsReady(index int) bool {
	return l.list.Get(index).IsEvaluated()
}

// ReadyAll forces the evaluation of all elements. Errors of failing
// evaluations are joined; successfully evaluated elements stay cached.
func (l *LazyList[E]) ReadyAll() error {
	var errs []error
	l.list.ForEach(func(index int, cell *immutable.Lazy[E]) {
		if _, err := cell.Get(); err != nil {
			errs = append(errs, fmt.Errorf("evaluating element %d: %w", index, err))
		}
	})
	return errors.Join(errs...)
}

// Slice returns the sub-list of positions [from, to) in O(1), sharing the
// element cells with this list.
func (l *LazyList[E]) Slice(from, to int) *LazyList[E] {
	return &LazyList[E]{list: l.list.Slice(from, to)}
}

// Equal returns whether this and the other list hold equal elements in the
// same order under the given predicate. It forces the evaluation of all
// compared elements and fails if any of them fails.
func (l *LazyList[E]) Equal(other *LazyList[E], elementEqual func(E, E) bool) (bool, error) {
	if l == other {
		return true, nil
	}
	if l.Len() != other.Len() {
		return false, nil
	}
	for i := 0; i < l.Len(); i++ {
		a, err := l.Get(i)
		if err != nil {
			return false, err
		}
		b, err := other.Get(i)
		if err != nil {
			return false, err
		}
		if !elementEqual(a, b) {
			return false, nil
		}
	}
	return true, nil
}

// String prints the list without forcing any element; pending elements
// appear as <lazy>.
func (l *LazyList[E]) String() string {
	var b strings.Builder
	b.WriteString("[|")
	l.list.ForEach(func(index int, cell *immutable.Lazy[E]) {
		if index > 0 {
			b.WriteString(", ")
		}
		b.WriteString(formatLazy(cell))
	})
	b.WriteString("|]")
	return b.String()
}

func formatLazy[E any](cell *immutable.Lazy[E]) string {
	if !cell.IsEvaluated() {
		return "<lazy>"
	}
	value, _ := cell.Get()
	return fmt.Sprintf("%v", value)
}
