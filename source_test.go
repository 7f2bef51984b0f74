package qcache

import (
	"testing"

	"github.com/arkilian/qcache/internal/entry"
)

func TestSource_Next_ConcatenatesOnce(t *testing.T) {
	raw := []entry.Batch{
		Batch{Columns: []string{"a"}, Rows: [][]interface{}{{1}}},
		Batch{Columns: []string{"a"}, Rows: [][]interface{}{{2}}},
	}
	s := newSource(raw)

	b, ok := s.Next()
	if !ok {
		t.Fatal("first Next should return true")
	}
	if len(b.Rows) != 2 {
		t.Fatalf("combined batch has %d rows, want 2", len(b.Rows))
	}

	if _, ok := s.Next(); ok {
		t.Error("second Next should report false: a source represents one result set")
	}
}

func TestSource_Peek_DoesNotConsume(t *testing.T) {
	raw := []entry.Batch{Batch{Columns: []string{"a"}, Rows: [][]interface{}{{1}}}}
	s := newSource(raw)

	first := s.Peek()
	second := s.Peek()
	if len(first.Rows) != len(second.Rows) {
		t.Error("Peek should be idempotent")
	}

	// Next should still succeed after Peek-only calls.
	if _, ok := s.Next(); !ok {
		t.Error("Next should still succeed after Peek calls")
	}
}

func TestSource_EmptyEntry(t *testing.T) {
	s := newSource(nil)
	b, ok := s.Next()
	if !ok {
		t.Fatal("Next on an empty source should still report true once")
	}
	if len(b.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(b.Rows))
	}
}
