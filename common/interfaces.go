// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import "fmt"

// Hasher computes a 64-bit hash code of a key. A hasher used by a trie must be
// deterministic and stable for the whole lifetime of that trie -- the tree
// shape depends on the produced hash codes, and a hasher changing its results
// invalidates every structure built with it. Two keys that are equal must
// produce the same hash code; the reverse is not required.
type Hasher[K any] interface {
	Hash(*K) uint64
}

// Iterator is an interface for a standard iterator.
type Iterator[K any] interface {

	// HasNext returns true if there is still at least one more item in the underlying collection.
	HasNext() bool

	// Next returns a next element in the input collection.
	Next() K
}

// MemoryFootprintProvider is implemented by containers that are able to
// report their memory consumption.
type MemoryFootprintProvider interface {
	GetMemoryFootprint() *MemoryFootprint
}

// MapEntry wraps a map key-value pair.
type MapEntry[K comparable, V any] struct {
	Key K
	Val V
}

func (e MapEntry[K, V]) String() string {
	return fmt.Sprintf("Entry: %v -> %v", e.Key, e.Val)
}
