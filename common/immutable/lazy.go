// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package immutable

import (
	"sync"
	"sync/atomic"
)

// Lazy is a deferred computation of a single value. The computation runs at
// most once, on the first call to Get; its result is cached and every later
// Get returns the cached value without re-running the computation. A failing
// computation is not cached -- the error is returned to the caller of that
// Get, and the next Get runs the computation again.
//
// A Lazy instance is the one deliberately mutable cell in this package. It is
// intended to be stored by reference inside otherwise immutable containers,
// where forcing a value must not be observable as a modification of the
// container. Instances are safe for concurrent use: readers racing on the
// first Get serialize on an internal lock, and exactly one of them runs the
// computation.
type Lazy[T any] struct {
	evaluated atomic.Bool
	mu        sync.Mutex
	compute   func() (T, error)
	value     T
}

// NewLazy creates a Lazy evaluating the given computation. Arguments of the
// computation are to be captured in its closure at construction time.
func NewLazy[T any](compute func() (T, error)) *Lazy[T] {
	return &Lazy[T]{compute: compute}
}

// NewResolved creates a Lazy that already holds the given value. Its Get
// never runs any computation.
func NewResolved[T any](value T) *Lazy[T] {
	l := &Lazy[T]{value: value}
	l.evaluated.Store(true)
	return l
}

// Get returns the value of this Lazy, running the deferred computation if it
// did not complete successfully before. Once a computation has succeeded, its
// result is returned by all future calls and the computation is released.
func (l *Lazy[T]) Get() (T, error) {
	if l.evaluated.Load() {
		return l.value, nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.evaluated.Load() {
		return l.value, nil
	}
	value, err := l.compute()
	if err != nil {
		var none T
		return none, err
	}
	l.value = value
	l.compute = nil // release captured arguments
	l.evaluated.Store(true)
	return value, nil
}

// IsEvaluated returns whether the value is already cached, without forcing
// its evaluation.
func (l *Lazy[T]) IsEvaluated() bool {
	return l.evaluated.Load()
}
