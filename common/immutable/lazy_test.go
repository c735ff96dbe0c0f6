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
	"fmt"
	"sync"
	"testing"
)

func TestLazy_ComputesValueOnFirstGet(t *testing.T) {
	calls := 0
	l := NewLazy(func() (int, error) {
		calls++
		return 42, nil
	})

	if l.IsEvaluated() {
		t.Errorf("value reported evaluated before first access")
	}
	for i := 0; i < 10; i++ {
		value, err := l.Get()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if value != 42 {
			t.Fatalf("unexpected value: got %d, want 42", value)
		}
	}
	if calls != 1 {
		t.Errorf("computation did not run exactly once, ran %d times", calls)
	}
	if !l.IsEvaluated() {
		t.Errorf("value not reported evaluated after access")
	}
}

func TestLazy_FailuresAreNotCached(t *testing.T) {
	calls := 0
	issue := fmt.Errorf("injected issue")
	l := NewLazy(func() (string, error) {
		calls++
		if calls < 3 {
			return "", issue
		}
		return "done", nil
	})

	for i := 0; i < 2; i++ {
		if _, err := l.Get(); err != issue {
			t.Fatalf("expected injected error, got %v", err)
		}
		if l.IsEvaluated() {
			t.Fatalf("failed evaluation must not mark the value evaluated")
		}
	}

	value, err := l.Get()
	if err != nil || value != "done" {
		t.Fatalf("expected success after retries, got %q, %v", value, err)
	}

	// After the first success the computation must never run again.
	for i := 0; i < 5; i++ {
		if _, err := l.Get(); err != nil {
			t.Fatalf("unexpected error after success: %v", err)
		}
	}
	if calls != 3 {
		t.Errorf("computation ran %d times, want 3", calls)
	}
}

func TestLazy_ResolvedValueNeedsNoComputation(t *testing.T) {
	l := NewResolved("ready")
	if !l.IsEvaluated() {
		t.Errorf("resolved value not reported evaluated")
	}
	if value, err := l.Get(); err != nil || value != "ready" {
		t.Errorf("unexpected result: %q, %v", value, err)
	}
}

func TestLazy_ConcurrentGetsEvaluateOnce(t *testing.T) {
	const readers = 32
	calls := 0
	release := make(chan struct{})
	l := NewLazy(func() (int, error) {
		<-release
		calls++
		return 7, nil
	})

	var wg sync.WaitGroup
	results := make([]int, readers)
	errors := make([]error, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errors[i] = l.Get()
		}(i)
	}
	close(release)
	wg.Wait()

	for i := 0; i < readers; i++ {
		if errors[i] != nil {
			t.Fatalf("reader %d got error: %v", i, errors[i])
		}
		if results[i] != 7 {
			t.Fatalf("reader %d got value %d, want 7", i, results[i])
		}
	}
	if calls != 1 {
		t.Errorf("computation ran %d times under contention, want 1", calls)
	}
}

func TestLazy_GetAfterSuccessIsLockFree(t *testing.T) {
	l := NewLazy(func() (int, error) { return 1, nil })
	if _, err := l.Get(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The computation reference must be dropped after success to release
	// captured arguments.
	if l.compute != nil {
		t.Errorf("computation not released after successful evaluation")
	}
}
