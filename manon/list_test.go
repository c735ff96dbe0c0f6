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

	"golang.org/x/exp/slices"
)

func TestList_NewListHoldsGivenElements(t *testing.T) {
	list := NewList("a", "b", "c")
	if got, want := list.Len(), 3; got != want {
		t.Fatalf("unexpected length, got %d, want %d", got, want)
	}
	if got, want := list.ToSlice(), []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("unexpected content, got %v, want %v", got, want)
	}
}

func TestList_DerivedVersionsDoNotAffectEachOther(t *testing.T) {
	l0 := NewList[int]()
	l1 := l0.Append(1)
	l2 := l1.Append(2).Prepend(0)
	l3 := l2.Set(1, 42)

	if l0.Len() != 0 {
		t.Errorf("empty list changed, has %d elements", l0.Len())
	}
	if got, want := l1.ToSlice(), []int{1}; !slices.Equal(got, want) {
		t.Errorf("l1 changed, got %v, want %v", got, want)
	}
	if got, want := l2.ToSlice(), []int{0, 1, 2}; !slices.Equal(got, want) {
		t.Errorf("l2 changed, got %v, want %v", got, want)
	}
	if got, want := l3.ToSlice(), []int{0, 42, 2}; !slices.Equal(got, want) {
		t.Errorf("l3 wrong, got %v, want %v", got, want)
	}
}

func TestList_AppendManyKeepsOrder(t *testing.T) {
	const N = 1000
	list := NewList[int]()
	for i := 0; i < N; i++ {
		list = list.Append(i)
	}
	if got, want := list.Len(), N; got != want {
		t.Fatalf("unexpected length, got %d, want %d", got, want)
	}
	for i := 0; i < N; i++ {
		if got := list.Get(i); got != i {
			t.Fatalf("wrong element at position %d, got %d", i, got)
		}
	}
}

func TestList_PrependShiftsPositions(t *testing.T) {
	list := NewList(2, 3).Prepend(1).Prepend(0)
	if got, want := list.ToSlice(), []int{0, 1, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("unexpected content, got %v, want %v", got, want)
	}
}

func TestList_InsertAndDeleteShiftElements(t *testing.T) {
	list := NewList("a", "c", "d")
	list = list.Insert(1, "b")
	if got, want := list.ToSlice(), []string{"a", "b", "c", "d"}; !slices.Equal(got, want) {
		t.Fatalf("insert failed, got %v, want %v", got, want)
	}
	list = list.Insert(4, "e")
	if got, want := list.ToSlice(), []string{"a", "b", "c", "d", "e"}; !slices.Equal(got, want) {
		t.Fatalf("append via insert failed, got %v, want %v", got, want)
	}
	list = list.Delete(2)
	if got, want := list.ToSlice(), []string{"a", "b", "d", "e"}; !slices.Equal(got, want) {
		t.Fatalf("delete failed, got %v, want %v", got, want)
	}
	list = list.Delete(0)
	if got, want := list.ToSlice(), []string{"b", "d", "e"}; !slices.Equal(got, want) {
		t.Fatalf("delete of head failed, got %v, want %v", got, want)
	}
}

func TestList_SliceSharesStructure(t *testing.T) {
	list := NewList(0, 1, 2, 3, 4, 5)
	slice := list.Slice(1, 4)
	if got, want := slice.ToSlice(), []int{1, 2, 3}; !slices.Equal(got, want) {
		t.Fatalf("unexpected slice content, got %v, want %v", got, want)
	}

	// Edits of the view must not leak into the source.
	modified := slice.Set(0, 42).Append(99)
	if got, want := list.ToSlice(), []int{0, 1, 2, 3, 4, 5}; !slices.Equal(got, want) {
		t.Errorf("source changed by slice edits, got %v", got)
	}
	if got, want := modified.ToSlice(), []int{42, 2, 3, 99}; !slices.Equal(got, want) {
		t.Errorf("unexpected modified slice, got %v, want %v", got, want)
	}
}

func TestList_OutOfBoundsAccessPanics(t *testing.T) {
	list := NewList(1, 2, 3)
	tests := map[string]func(){
		"get negative":  func() { list.Get(-1) },
		"get past end":  func() { list.Get(3) },
		"set past end":  func() { list.Set(3, 0) },
		"insert far":    func() { list.Insert(4, 0) },
		"delete empty":  func() { NewList[int]().Delete(0) },
		"slice reverse": func() { list.Slice(2, 1) },
	}
	for name, op := range tests {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatalf("out-of-bounds access did not panic")
				}
				message, _ := r.(string)
				if !strings.Contains(message, "out of bounds") {
					t.Errorf("unexpected panic message: %v", r)
				}
			}()
			op()
		})
	}
}

func TestList_IteratorEnumeratesInOrder(t *testing.T) {
	list := NewList(1, 2, 3)
	got := []int{}
	for it := list.Iterator(); it.HasNext(); {
		got = append(got, it.Next())
	}
	if want := []int{1, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("unexpected iteration, got %v, want %v", got, want)
	}
}

func TestList_EqualComparesElementWise(t *testing.T) {
	eq := func(a, b int) bool { return a == b }
	a := NewList(1, 2, 3)
	b := NewList[int]().Append(1).Append(2, 3)
	if !a.Equal(b, eq) {
		t.Errorf("lists with the same content are not equal")
	}
	if a.Equal(b.Set(1, 42), eq) {
		t.Errorf("lists with different content are equal")
	}
	if a.Equal(b.Append(4), eq) {
		t.Errorf("lists of different length are equal")
	}
}

func TestList_String(t *testing.T) {
	if got, want := NewList(1, 2, 3).String(), "[1, 2, 3]"; got != want {
		t.Errorf("unexpected print, got %s, want %s", got, want)
	}
	if got, want := NewList[int]().String(), "[]"; got != want {
		t.Errorf("unexpected empty print, got %s, want %s", got, want)
	}
}

func TestList_MemoryFootprintCoversElements(t *testing.T) {
	small := NewList(1)
	large := NewList[int]()
	for i := 0; i < 1000; i++ {
		large = large.Append(i)
	}
	if small.GetMemoryFootprint().Total() >= large.GetMemoryFootprint().Total() {
		t.Errorf("footprint did not grow with content")
	}
}

func TestListBuilder_BuildsListIncrementally(t *testing.T) {
	builder := NewListBuilder[int]()
	for i := 0; i < 100; i++ {
		builder.Append(i)
	}
	builder.Prepend(-1)
	builder.Set(1, 42)
	list := builder.Build()

	if got, want := list.Len(), 101; got != want {
		t.Fatalf("unexpected length, got %d, want %d", got, want)
	}
	if got := list.Get(0); got != -1 {
		t.Errorf("wrong head, got %d, want -1", got)
	}
	if got := list.Get(1); got != 42 {
		t.Errorf("wrong element at 1, got %d, want 42", got)
	}
	if got := list.Get(100); got != 99 {
		t.Errorf("wrong tail, got %d, want 99", got)
	}
}

func TestListBuilder_UseAfterBuildPanics(t *testing.T) {
	builder := NewListBuilder[int]().Append(1)
	builder.Build()
	defer func() {
		if recover() == nil {
			t.Errorf("use of a builder after Build did not panic")
		}
	}()
	builder.Append(2)
}

func TestListBuilder_FromSliceViewDoesNotLeakHiddenElements(t *testing.T) {
	list := NewList(0, 1, 2, 3, 4)
	builder := list.Slice(1, 3).ToBuilder()
	builder.Append(9)
	got := builder.Build()
	if want := NewList(1, 2, 9); !got.Equal(want, func(a, b int) bool { return a == b }) {
		t.Errorf("unexpected content, got %v, want %v", got, want)
	}
}
