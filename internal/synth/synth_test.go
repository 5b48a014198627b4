package synth

import (
	"testing"

	"github.com/patternlab/adaptive-rules/go-executor/internal/history"
)

func fillBuffer(t *testing.T, entries []history.Entry) *history.Buffer {
	t.Helper()
	buf := history.NewBuffer(history.DefaultConfig())
	for _, e := range entries {
		buf.Append(e)
	}
	return buf
}

func TestScanProposesLinearFit(t *testing.T) {
	buf := fillBuffer(t, linearEntries(2, 1, 1, 2, 3, 4, 5, 6, 7, 8, 9))
	s := NewSynthesizer(DefaultConfig())

	proposals := s.Scan(buf)
	if len(proposals) != 1 {
		t.Fatalf("expected 1 proposal, got %d", len(proposals))
	}

	p := proposals[0]
	if p.Canonical != "linear(2.000,1.000)" {
		t.Fatalf("minted %s, want linear(2.000,1.000)", p.Canonical)
	}
	if p.OriginCode != "00000001" {
		t.Fatalf("origin code %q, want 00000001", p.OriginCode)
	}
	if len(p.Entries) != 9 {
		t.Fatalf("proposal carries %d entries, want 9", len(p.Entries))
	}
	if got := p.Rule.Eval(4); got != 9 {
		t.Fatalf("minted rule(4) = %g, want 9", got)
	}
}

func TestScanSkipsWeakFit(t *testing.T) {
	entries := linearEntries(0, 0, 1, 2, 3, 4, 5, 6, 7, 8)
	for i := range entries {
		if i%2 == 0 {
			entries[i].Output = 100
		} else {
			entries[i].Output = -100
		}
	}
	buf := fillBuffer(t, entries)

	proposals := NewSynthesizer(DefaultConfig()).Scan(buf)
	if len(proposals) != 0 {
		t.Fatalf("expected no proposals for alternating outputs, got %d", len(proposals))
	}
}

func TestScanSkipsDegenerateBucket(t *testing.T) {
	var entries []history.Entry
	for i := 0; i < 5; i++ {
		entries = append(entries, history.Entry{
			Code: "00000001", Dimension: history.DefaultDimension, Input: 5, Output: float64(i),
		})
	}
	buf := fillBuffer(t, entries)

	proposals := NewSynthesizer(DefaultConfig()).Scan(buf)
	if len(proposals) != 0 {
		t.Fatalf("expected no proposals for a zero-variance bucket, got %d", len(proposals))
	}
}

func TestScanMixedCodesHaveNoOrigin(t *testing.T) {
	entries := linearEntries(2, 0, 1, 2, 3, 4)
	entries[2].Code = "00000010"
	buf := fillBuffer(t, entries)

	proposals := NewSynthesizer(DefaultConfig()).Scan(buf)
	if len(proposals) != 1 {
		t.Fatalf("expected 1 proposal, got %d", len(proposals))
	}
	if proposals[0].OriginCode != "" {
		t.Fatalf("mixed-code bucket should have no origin, got %q", proposals[0].OriginCode)
	}
}

func TestScanDeterministicOrder(t *testing.T) {
	var entries []history.Entry
	// Two qualifying buckets in two dimensions, appended out of order.
	for _, x := range []float64{25, 27, 29} {
		entries = append(entries, history.Entry{Code: "c", Dimension: "b", Input: x, Output: 3 * x})
	}
	for _, x := range []float64{1, 3, 5} {
		entries = append(entries, history.Entry{Code: "c", Dimension: "a", Input: x, Output: 2 * x})
	}
	buf := fillBuffer(t, entries)

	first := NewSynthesizer(DefaultConfig()).Scan(buf)
	second := NewSynthesizer(DefaultConfig()).Scan(buf)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 proposals, got %d and %d", len(first), len(second))
	}
	if first[0].Bucket.Dimension != "a" || first[1].Bucket.Dimension != "b" {
		t.Fatalf("proposals not in dimension order: %v, %v", first[0].Bucket, first[1].Bucket)
	}
	for i := range first {
		if first[i].Bucket != second[i].Bucket || first[i].Canonical != second[i].Canonical {
			t.Fatalf("scan order not deterministic at %d", i)
		}
	}
}
