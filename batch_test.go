package qcache

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConcatBatches_PreservesRowOrder(t *testing.T) {
	batches := []Batch{
		{Columns: []string{"a"}, Rows: [][]interface{}{{1}, {2}}},
		{Columns: []string{"a"}, Rows: [][]interface{}{{3}}},
	}

	got := ConcatBatches(batches)
	want := Batch{Columns: []string{"a"}, Rows: [][]interface{}{{1}, {2}, {3}}}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ConcatBatches mismatch (-want +got):\n%s", diff)
	}
}

func TestConcatBatches_Empty(t *testing.T) {
	got := ConcatBatches(nil)
	if diff := cmp.Diff(Batch{}, got); diff != "" {
		t.Errorf("ConcatBatches(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestConcatBatches_SingleBatch(t *testing.T) {
	b := Batch{Columns: []string{"a", "b"}, Rows: [][]interface{}{{1, "x"}}}
	got := ConcatBatches([]Batch{b})
	if diff := cmp.Diff(b, got); diff != "" {
		t.Errorf("ConcatBatches single-batch mismatch (-want +got):\n%s", diff)
	}
}

func TestBatch_SizeBytes_GrowsWithRows(t *testing.T) {
	small := Batch{Columns: []string{"a"}, Rows: [][]interface{}{{"x"}}}
	large := Batch{Columns: []string{"a"}, Rows: [][]interface{}{{"x"}, {"y"}, {"z"}}}

	if large.SizeBytes() <= small.SizeBytes() {
		t.Error("a batch with more rows should have a larger estimated size")
	}
}

func TestBatch_SizeBytes_LongerStringsWeighMore(t *testing.T) {
	short := Batch{Columns: nil, Rows: [][]interface{}{{"hi"}}}
	long := Batch{Columns: nil, Rows: [][]interface{}{{"a very long string value indeed"}}}

	if long.SizeBytes() <= short.SizeBytes() {
		t.Error("a batch with a longer string cell should have a larger estimated size")
	}
}

func TestBatch_SizeBytes_Empty(t *testing.T) {
	if got := (Batch{}).SizeBytes(); got != 0 {
		t.Errorf("SizeBytes of empty batch = %d, want 0", got)
	}
}
