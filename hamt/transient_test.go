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
	"math/rand"
	"testing"

	"github.com/Fantom-foundation/Manon/common"
)

func TestTransient_EditsAreVisibleWithinTheSession(t *testing.T) {
	session := NewTrie[int, string](common.IdentityHasher[int]{}).Transient()
	session.Set(1, "a")
	session.Set(2, "b")
	session.Delete(1)

	if got, want := session.Size(), 1; got != want {
		t.Errorf("unexpected size, got %d, want %d", got, want)
	}
	if _, exists := session.Get(1); exists {
		t.Errorf("deleted key still present")
	}
	if value, _ := session.Get(2); value != "b" {
		t.Errorf("wrong value for key 2, got %q", value)
	}
}

func TestTransient_SourceTrieIsNotAffected(t *testing.T) {
	source := NewTrie[int, int](common.IntegerHasher[int]{})
	for i := 0; i < 100; i++ {
		source = source.Insert(i, i)
	}

	session := source.Transient()
	for i := 0; i < 100; i++ {
		session.Set(i, i*10)
	}
	for i := 100; i < 200; i++ {
		session.Set(i, i)
	}
	for i := 0; i < 50; i++ {
		session.Delete(i)
	}

	if got, want := source.Size(), 100; got != want {
		t.Fatalf("source size changed, got %d, want %d", got, want)
	}
	for i := 0; i < 100; i++ {
		if value, _ := source.Get(i); value != i {
			t.Fatalf("source value of key %d changed to %d", i, value)
		}
	}
	if err := source.Check(); err != nil {
		t.Errorf("source trie corrupted: %v", err)
	}
}

func TestTransient_FreezePublishesTheAccumulatedState(t *testing.T) {
	session := NewTrie[int, int](common.IntegerHasher[int]{}).Transient()
	for i := 0; i < 1000; i++ {
		session.Set(i, i+1)
	}
	trie := session.Freeze()

	if got, want := trie.Size(), 1000; got != want {
		t.Fatalf("unexpected size, got %d, want %d", got, want)
	}
	for i := 0; i < 1000; i++ {
		if value, _ := trie.Get(i); value != i+1 {
			t.Fatalf("wrong value for key %d, got %d", i, value)
		}
	}
	if err := trie.Check(); err != nil {
		t.Errorf("invalid frozen trie: %v", err)
	}
}

func TestTransient_FrozenResultIsImmutable(t *testing.T) {
	session := NewTrie[int, int](common.IntegerHasher[int]{}).Transient()
	session.Set(1, 1)
	frozen := session.Freeze()

	// A new session over the frozen trie must copy before writing even
	// though the nodes were created by a transient before.
	next := frozen.Transient()
	next.Set(1, 42)
	next.Set(2, 2)

	if value, _ := frozen.Get(1); value != 1 {
		t.Errorf("frozen trie changed, got %d, want 1", value)
	}
	if _, exists := frozen.Get(2); exists {
		t.Errorf("frozen trie gained an entry")
	}
}

func TestTransient_FreezeWithoutEditsReturnsTheSource(t *testing.T) {
	source := NewTrie[int, int](common.IdentityHasher[int]{}).Insert(1, 1)
	session := source.Transient()
	if _, exists := session.Get(1); !exists {
		t.Fatalf("session lost the source content")
	}
	if got := session.Freeze(); got != source {
		t.Errorf("unmodified session did not return its source trie")
	}
}

func TestTransient_UseAfterFreezePanics(t *testing.T) {
	tests := map[string]func(*Transient[int, int]){
		"set":     func(s *Transient[int, int]) { s.Set(1, 1) },
		"delete":  func(s *Transient[int, int]) { s.Delete(1) },
		"get":     func(s *Transient[int, int]) { s.Get(1) },
		"size":    func(s *Transient[int, int]) { s.Size() },
		"forEach": func(s *Transient[int, int]) { s.ForEach(func(int, int) {}) },
		"freeze":  func(s *Transient[int, int]) { s.Freeze() },
	}
	for name, op := range tests {
		t.Run(name, func(t *testing.T) {
			session := NewTrie[int, int](common.IdentityHasher[int]{}).Transient()
			session.Set(1, 1)
			session.Freeze()
			defer func() {
				if r := recover(); r != ErrFrozenTransient {
					t.Errorf("unexpected panic value: %v", r)
				}
			}()
			op(session)
			t.Errorf("operation on a frozen session did not panic")
		})
	}
}

func TestTransient_UpdateCreatesAndModifiesEntries(t *testing.T) {
	session := NewTrie[string, int](common.StringHasher{}).Transient()
	increment := func(old int, exists bool) int {
		if !exists {
			return 1
		}
		return old + 1
	}
	for i := 0; i < 5; i++ {
		session.Update("counter", increment)
	}
	if value, _ := session.Get("counter"); value != 5 {
		t.Errorf("unexpected counter value, got %d, want 5", value)
	}
}

func TestTransient_MatchesSequenceOfPersistentEdits(t *testing.T) {
	const steps = 3000
	r := rand.New(rand.NewSource(123))

	persistent := NewTrie[int, int](common.IntegerHasher[int]{})
	session := NewTrie[int, int](common.IntegerHasher[int]{}).Transient()

	for i := 0; i < steps; i++ {
		key := r.Intn(200)
		if r.Intn(3) == 0 {
			persistent = persistent.Remove(key)
			session.Delete(key)
		} else {
			value := r.Int()
			persistent = persistent.Insert(key, value)
			session.Set(key, value)
		}
	}

	frozen := session.Freeze()
	if !persistent.Equal(frozen, func(a, b int) bool { return a == b }) {
		t.Errorf("batch edits diverged from persistent edits")
	}
	if err := frozen.Check(); err != nil {
		t.Errorf("invalid frozen trie: %v", err)
	}
}

func TestTransient_DeleteOfAbsentKeyIsNoOp(t *testing.T) {
	source := NewTrie[int, int](common.IdentityHasher[int]{}).Insert(1, 1)
	session := source.Transient()
	session.Delete(2)
	if got := session.Freeze(); got != source {
		t.Errorf("deleting an absent key counted as a modification")
	}
}

func BenchmarkTransient_BatchInsert(b *testing.B) {
	const batch = 1 << 12
	for i := 0; i < b.N; i++ {
		session := NewTrie[int, int](common.IntegerHasher[int]{}).Transient()
		for j := 0; j < batch; j++ {
			session.Set(j, j)
		}
		session.Freeze()
	}
}

func BenchmarkTrie_SequentialInsert(b *testing.B) {
	const batch = 1 << 12
	for i := 0; i < b.N; i++ {
		trie := NewTrie[int, int](common.IntegerHasher[int]{})
		for j := 0; j < batch; j++ {
			trie = trie.Insert(j, j)
		}
	}
}
