package history

import (
	"math"
	"testing"
)

func entry(code string, input, output float64) Entry {
	return Entry{Code: code, Dimension: DefaultDimension, Input: input, Output: output}
}

func TestAppendAndCap(t *testing.T) {
	buf := NewBuffer(DefaultConfig())

	for i := 0; i < 250; i++ {
		buf.Append(entry("00000001", float64(i), float64(2*i)))
		if buf.Len() > 100 {
			t.Fatalf("buffer exceeded cap after %d appends: %d", i+1, buf.Len())
		}
	}
	if buf.Len() != 100 {
		t.Fatalf("expected 100 retained entries, got %d", buf.Len())
	}

	// Oldest-first eviction: the survivors are the most recent 100.
	snap := buf.Snapshot()
	if snap[0].Input != 150 {
		t.Fatalf("expected oldest survivor input 150, got %g", snap[0].Input)
	}
	if snap[len(snap)-1].Input != 249 {
		t.Fatalf("expected newest survivor input 249, got %g", snap[len(snap)-1].Input)
	}
}

func TestFull(t *testing.T) {
	buf := NewBuffer(DefaultConfig())
	for i := 0; i < 9; i++ {
		buf.Append(entry("00000001", float64(i), float64(i)))
	}
	if buf.Full() {
		t.Fatal("buffer reported full at 9 entries")
	}
	buf.Append(entry("00000001", 9, 9))
	if !buf.Full() {
		t.Fatal("buffer not full at 10 entries")
	}
}

func TestBuckets(t *testing.T) {
	buf := NewBuffer(DefaultConfig())

	// Bucket 0: inputs 1..5, bucket 1: inputs 12, 13, bucket -1: -3
	for _, x := range []float64{1, 2, 3, 4, 5} {
		buf.Append(entry("00000001", x, 2*x))
	}
	buf.Append(entry("00000001", 12, 24))
	buf.Append(entry("00000001", 13, 26))
	buf.Append(entry("00000001", -3, -6))

	buckets := buf.Buckets()

	// Only bucket 0 clears MinBucketSamples (3)
	if len(buckets) != 1 {
		t.Fatalf("expected 1 qualifying bucket, got %d", len(buckets))
	}
	key := BucketKey{Dimension: DefaultDimension, Bucket: 0}
	if len(buckets[key]) != 5 {
		t.Fatalf("expected 5 entries in bucket 0, got %d", len(buckets[key]))
	}
}

func TestBucketsNegativeInputs(t *testing.T) {
	buf := NewBuffer(DefaultConfig())
	for _, x := range []float64{-1, -4, -9} {
		buf.Append(entry("00000001", x, x))
	}
	buckets := buf.Buckets()
	key := BucketKey{Dimension: DefaultDimension, Bucket: -1}
	if len(buckets[key]) != 3 {
		t.Fatalf("expected inputs in [-10, 0) to share bucket -1, got %v", buckets)
	}
}

func TestBucketsSplitByDimension(t *testing.T) {
	buf := NewBuffer(DefaultConfig())
	for _, x := range []float64{1, 2, 3} {
		buf.Append(Entry{Code: "00000001", Dimension: "a", Input: x, Output: x})
		buf.Append(Entry{Code: "00000001", Dimension: "b", Input: x, Output: x})
	}
	buckets := buf.Buckets()
	if len(buckets) != 2 {
		t.Fatalf("expected dimensions to bucket separately, got %d buckets", len(buckets))
	}
}

func TestBucketsSkipNonFinite(t *testing.T) {
	buf := NewBuffer(DefaultConfig())
	buf.Append(entry("00000001", 1, 2))
	buf.Append(entry("00000001", 2, math.NaN()))
	buf.Append(entry("00000001", math.Inf(1), 4))
	buf.Append(entry("00000001", 3, 6))
	buf.Append(entry("00000001", 4, 8))

	buckets := buf.Buckets()
	key := BucketKey{Dimension: DefaultDimension, Bucket: 0}
	if len(buckets[key]) != 3 {
		t.Fatalf("expected 3 finite entries in bucket 0, got %d", len(buckets[key]))
	}
}

func TestEvictBucket(t *testing.T) {
	buf := NewBuffer(DefaultConfig())
	for _, x := range []float64{1, 2, 3, 12, 13} {
		buf.Append(entry("00000001", x, 2*x))
	}

	removed := buf.EvictBucket(BucketKey{Dimension: DefaultDimension, Bucket: 0})
	if removed != 3 {
		t.Fatalf("expected 3 evicted, got %d", removed)
	}
	if buf.Len() != 2 {
		t.Fatalf("expected 2 remaining, got %d", buf.Len())
	}
	for _, e := range buf.Snapshot() {
		if e.Input < 10 {
			t.Fatalf("bucket 0 entry survived eviction: %v", e)
		}
	}
}

func TestReset(t *testing.T) {
	buf := NewBuffer(DefaultConfig())
	for _, x := range []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10} {
		buf.Append(entry("00000001", x, 2*x))
	}
	if !buf.Full() {
		t.Fatal("buffer should be full before reset")
	}

	buf.Reset()
	if buf.Len() != 0 {
		t.Fatalf("expected empty buffer after reset, got %d entries", buf.Len())
	}
	if buf.Full() {
		t.Fatal("reset buffer should not be full")
	}

	buf.Append(entry("00000001", 1, 2))
	if buf.Len() != 1 {
		t.Fatalf("append after reset failed: len=%d", buf.Len())
	}
}
