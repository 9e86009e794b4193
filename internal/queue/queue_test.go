package queue

import (
	"testing"
)

// testItem is a simple struct for testing the generic queue
type testItem struct {
	ID   int
	Name string
}

func TestQueue_New(t *testing.T) {
	q := New[testItem]()
	if q == nil {
		t.Fatal("expected non-nil queue")
	}
	if !q.Empty() {
		t.Error("expected empty queue")
	}
	if q.Len() != 0 {
		t.Errorf("expected length 0, got %d", q.Len())
	}
}

func TestQueue_Push(t *testing.T) {
	q := New[testItem]()

	q.Push(testItem{ID: 1, Name: "first"})
	if q.Len() != 1 {
		t.Errorf("expected length 1, got %d", q.Len())
	}

	q.Push(testItem{ID: 2}, testItem{ID: 3})
	if q.Len() != 3 {
		t.Errorf("expected length 3, got %d", q.Len())
	}
}

func TestQueue_Pop(t *testing.T) {
	q := New[testItem]()

	// Pop from empty queue returns zero value and false
	result, ok := q.Pop()
	if ok {
		t.Error("expected ok=false on empty queue")
	}
	if result.ID != 0 || result.Name != "" {
		t.Errorf("expected zero value, got %+v", result)
	}

	q.Push(testItem{ID: 1, Name: "first"}, testItem{ID: 2, Name: "second"})
	first, ok := q.Pop()
	if !ok {
		t.Fatal("expected ok=true")
	}
	if first.ID != 1 || first.Name != "first" {
		t.Errorf("expected {1, first}, got %+v", first)
	}
	if q.Len() != 1 {
		t.Errorf("expected length 1, got %d", q.Len())
	}
}

func TestQueue_FIFOOrderAcrossCompaction(t *testing.T) {
	q := New[int]()
	next := 0
	want := 0

	// Interleave pushes and pops so the consumed prefix is compacted several times.
	for round := 0; round < 20; round++ {
		for i := 0; i < 50; i++ {
			q.Push(next)
			next++
		}
		for i := 0; i < 40; i++ {
			got, ok := q.Pop()
			if !ok {
				t.Fatalf("unexpected empty queue at %d", want)
			}
			if got != want {
				t.Fatalf("expected %d, got %d", want, got)
			}
			want++
		}
	}

	for !q.Empty() {
		got, _ := q.Pop()
		if got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
		want++
	}
	if want != next {
		t.Errorf("expected to drain %d items, drained %d", next, want)
	}
}

func TestQueue_Empty(t *testing.T) {
	q := New[testItem]()

	if !q.Empty() {
		t.Error("expected empty queue")
	}

	q.Push(testItem{ID: 1})
	if q.Empty() {
		t.Error("expected non-empty queue")
	}

	q.Pop()
	if !q.Empty() {
		t.Error("expected empty queue after pop")
	}
}

func TestQueue_Clear(t *testing.T) {
	q := New[testItem]()
	q.Push(testItem{ID: 1}, testItem{ID: 2}, testItem{ID: 3})
	q.Pop()

	q.Clear()

	if !q.Empty() {
		t.Error("expected empty queue after clear")
	}
	if q.Len() != 0 {
		t.Errorf("expected length 0, got %d", q.Len())
	}

	q.Push(testItem{ID: 9})
	item, ok := q.Pop()
	if !ok || item.ID != 9 {
		t.Errorf("expected {9} after clear, got %+v ok=%v", item, ok)
	}
}
