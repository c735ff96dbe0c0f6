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

import "github.com/Fantom-foundation/Manon/common"

// Iterator enumerates the entries of a trie in ascending key hash order. It
// maintains an explicit stack of the nodes on the path to the current entry,
// bounded by the maximum tree depth.
type Iterator[K comparable, V any] struct {
	stack []iteratorFrame[K, V]
}

type iteratorFrame[K comparable, V any] struct {
	node node[K, V]
	pos  int
}

func newIterator[K comparable, V any](root node[K, V]) *Iterator[K, V] {
	it := &Iterator[K, V]{stack: make([]iteratorFrame[K, V], 0, maxDepth+1)}
	if root != nil {
		it.stack = append(it.stack, iteratorFrame[K, V]{node: root})
	}
	return it
}

// HasNext returns whether there is an entry left to be enumerated.
func (it *Iterator[K, V]) HasNext() bool {
	return it.seek()
}

// Next returns the next entry. It must only be called after HasNext reported
// the presence of one.
func (it *Iterator[K, V]) Next() common.MapEntry[K, V] {
	if !it.seek() {
		panic("iterator exhausted")
	}
	top := &it.stack[len(it.stack)-1]
	leaf := top.node.(*leafNode[K, V])
	entry := leaf.entries[top.pos]
	top.pos++
	return entry
}

// seek advances the stack until its top is a leaf with an entry left, or the
// stack is empty. It returns whether an entry was found.
func (it *Iterator[K, V]) seek() bool {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		switch n := top.node.(type) {
		case *leafNode[K, V]:
			if top.pos < len(n.entries) {
				return true
			}
		case *branchNode[K, V]:
			if top.pos < len(n.children) {
				child := n.children[top.pos]
				top.pos++
				it.stack = append(it.stack, iteratorFrame[K, V]{node: child})
				continue
			}
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	return false
}
