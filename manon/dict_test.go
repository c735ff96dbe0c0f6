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
	"strings"
	"testing"

	"github.com/Fantom-foundation/Manon/common"
	"golang.org/x/exp/slices"
)

func newTestDict() *Dict[string, int] {
	return NewDict[string, int](common.StringHasher{})
}

func TestDict_SetAndGetEntries(t *testing.T) {
	dict := newTestDict().Set("a", 1).Set("b", 2)
	if got, want := dict.Len(), 2; got != want {
		t.Fatalf("unexpected size, got %d, want %d", got, want)
	}
	if value, exists := dict.Get("a"); !exists || value != 1 {
		t.Errorf("wrong value for key a: %d, %t", value, exists)
	}
	if value, exists := dict.Get("b"); !exists || value != 2 {
		t.Errorf("wrong value for key b: %d, %t", value, exists)
	}
	if _, exists := dict.Get("c"); exists {
		t.Errorf("absent key found")
	}
	if !dict.Has("a") || dict.Has("c") {
		t.Errorf("wrong key presence report")
	}
}

func TestDict_DerivedVersionsDoNotAffectEachOther(t *testing.T) {
	d0 := newTestDict()
	d1 := d0.Set("a", 1)
	d2 := d1.Set("b", 2)
	d3 := d2.Remove("a")

	if d0.Len() != 0 {
		t.Errorf("empty dict changed, has %d entries", d0.Len())
	}
	if value, _ := d1.Get("a"); value != 1 || d1.Len() != 1 {
		t.Errorf("d1 changed")
	}
	if value, _ := d2.Get("a"); value != 1 || d2.Len() != 2 {
		t.Errorf("d2 changed")
	}
	if d3.Has("a") || !d3.Has("b") || d3.Len() != 1 {
		t.Errorf("d3 wrong, has %d entries", d3.Len())
	}
}

func TestDict_IterationFollowsInsertionOrder(t *testing.T) {
	dict := newTestDict().
		Set("banana", 1).
		Set("apple", 2).
		Set("cherry", 3)
	if got, want := dict.Keys(), []string{"banana", "apple", "cherry"}; !slices.Equal(got, want) {
		t.Errorf("unexpected key order, got %v, want %v", got, want)
	}
	if got, want := dict.Values(), []int{1, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("unexpected value order, got %v, want %v", got, want)
	}
}

func TestDict_ReplacingValueKeepsPosition(t *testing.T) {
	dict := newTestDict().
		Set("a", 1).
		Set("b", 2).
		Set("a", 10)
	if got, want := dict.Keys(), []string{"a", "b"}; !slices.Equal(got, want) {
		t.Errorf("replaced key moved, got order %v, want %v", got, want)
	}
	if value, _ := dict.Get("a"); value != 10 {
		t.Errorf("value not replaced, got %d", value)
	}
}

func TestDict_ReAddedKeyMovesToTheEnd(t *testing.T) {
	dict := newTestDict().
		Set("a", 1).
		Set("b", 2).
		Remove("a").
		Set("a", 3)
	if got, want := dict.Keys(), []string{"b", "a"}; !slices.Equal(got, want) {
		t.Errorf("unexpected key order, got %v, want %v", got, want)
	}
}

func TestDict_RemoveOfAbsentKeyReturnsSameInstance(t *testing.T) {
	dict := newTestDict().Set("a", 1)
	if got := dict.Remove("b"); got != dict {
		t.Errorf("removal of an absent key produced a new instance")
	}
}

func TestDict_IteratorEnumeratesEntriesInOrder(t *testing.T) {
	dict := newTestDict().Set("x", 1).Set("y", 2)
	keys := []string{}
	values := []int{}
	for it := dict.Iterator(); it.HasNext(); {
		entry := it.Next()
		keys = append(keys, entry.Key)
		values = append(values, entry.Val)
	}
	if !slices.Equal(keys, []string{"x", "y"}) || !slices.Equal(values, []int{1, 2}) {
		t.Errorf("unexpected iteration: %v, %v", keys, values)
	}
}

func TestDict_EqualIgnoresInsertionOrder(t *testing.T) {
	eq := func(a, b int) bool { return a == b }
	a := newTestDict().Set("x", 1).Set("y", 2)
	b := newTestDict().Set("y", 2).Set("x", 1)
	if !a.Equal(b, eq) {
		t.Errorf("dicts with the same content are not equal")
	}
	if a.Equal(b.Set("x", 3), eq) {
		t.Errorf("dicts with different values are equal")
	}
	if a.Equal(b.Remove("x"), eq) {
		t.Errorf("dicts with different keys are equal")
	}
}

func TestDict_String(t *testing.T) {
	dict := newTestDict().Set("a", 1).Set("b", 2)
	if got, want := dict.String(), "{a: 1, b: 2}"; got != want {
		t.Errorf("unexpected print, got %s, want %s", got, want)
	}
}

func TestDict_ManyEntriesSurviveRandomRemovals(t *testing.T) {
	const N = 500
	dict := NewDict[int, int](common.IntegerHasher[int]{})
	for i := 0; i < N; i++ {
		dict = dict.Set(i, i)
	}
	for i := 0; i < N; i += 2 {
		dict = dict.Remove(i)
	}
	if got, want := dict.Len(), N/2; got != want {
		t.Fatalf("unexpected size, got %d, want %d", got, want)
	}
	for i := 1; i < N; i += 2 {
		if value, exists := dict.Get(i); !exists || value != i {
			t.Fatalf("wrong value for key %d: %d, %t", i, value, exists)
		}
	}
}

func TestDict_MemoryFootprintListsBothTries(t *testing.T) {
	dict := newTestDict().Set("a", 1)
	report := dict.GetMemoryFootprint().ToString("dict")
	for _, part := range []string{"els", "idx"} {
		if !strings.Contains(report, part) {
			t.Errorf("footprint report misses component %s:\n%s", part, report)
		}
	}
}

func TestDictBuilder_BuildsDictIncrementally(t *testing.T) {
	builder := NewDictBuilder[string, int](common.StringHasher{})
	builder.Set("a", 1).Set("b", 2).Set("a", 10).Remove("b")
	if got, want := builder.Len(), 1; got != want {
		t.Fatalf("unexpected builder size, got %d, want %d", got, want)
	}
	if value, exists := builder.Get("a"); !exists || value != 10 {
		t.Errorf("wrong builder value for key a: %d, %t", value, exists)
	}

	dict := builder.Build()
	want := newTestDict().Set("a", 10)
	if !dict.Equal(want, func(a, b int) bool { return a == b }) {
		t.Errorf("unexpected dict content: %v", dict)
	}
}

func TestDictBuilder_SourceDictIsNotAffected(t *testing.T) {
	source := newTestDict().Set("a", 1)
	builder := source.ToBuilder()
	builder.Set("a", 42).Set("b", 2)
	builder.Build()

	if value, _ := source.Get("a"); value != 1 {
		t.Errorf("source dict changed, got %d", value)
	}
	if source.Has("b") {
		t.Errorf("source dict gained a key")
	}
}
