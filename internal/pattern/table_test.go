package pattern

import (
	"testing"

	"github.com/patternlab/adaptive-rules/go-executor/internal/rule"
)

func TestDefaultTableSeeds(t *testing.T) {
	table := DefaultTable()

	if table.Len() != 6 {
		t.Fatalf("expected 6 seeded rules, got %d", table.Len())
	}

	code, ok := table.Resolve("double")
	if !ok {
		t.Fatal("alias double did not resolve")
	}
	r, ok := table.Get(code)
	if !ok {
		t.Fatalf("no rule at %s", code)
	}
	if got := r.Eval(21); got != 42 {
		t.Fatalf("double(21) = %g, want 42", got)
	}
}

func TestResolve(t *testing.T) {
	table := DefaultTable()

	// Codes resolve to themselves
	code, ok := table.Resolve("00000100")
	if !ok || code != "00000100" {
		t.Fatalf("Resolve(00000100) = %s, %v", code, ok)
	}

	// Unknown keys come back unchanged with ok=false
	code, ok = table.Resolve("nonsense")
	if ok || code != "nonsense" {
		t.Fatalf("Resolve(nonsense) = %s, %v", code, ok)
	}
}

func TestSetRejectsMalformedCode(t *testing.T) {
	table := NewTable()
	if err := table.Set("abc", rule.Identity()); err == nil {
		t.Fatal("expected error for malformed code")
	}
	if err := table.Set("01010101", rule.Identity()); err != nil {
		t.Fatalf("Set: %v", err)
	}
}

func TestMintRegistersFreshCode(t *testing.T) {
	table := DefaultTable()
	before := table.Len()

	code, err := table.Mint(rule.Linear(3, -2))
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if table.Len() != before+1 {
		t.Fatalf("expected %d rules, got %d", before+1, table.Len())
	}
	r, ok := table.Get(code)
	if !ok {
		t.Fatalf("minted code %s not registered", code)
	}
	if r.String() != "linear(3.000,-2.000)" {
		t.Fatalf("wrong rule at minted code: %s", r.String())
	}
}

func TestMintNeverDuplicatesCodes(t *testing.T) {
	table := NewTable()
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		code, err := table.Mint(rule.Linear(float64(i), 0.5))
		if err != nil {
			t.Fatalf("mint %d: %v", i, err)
		}
		if seen[code] {
			t.Fatalf("code %s assigned to two distinct rules", code)
		}
		seen[code] = true
	}
	if table.Len() != 50 {
		t.Fatalf("expected 50 rules, got %d", table.Len())
	}
}

func TestCodesSorted(t *testing.T) {
	table := DefaultTable()
	codes := table.Codes()
	if len(codes) != table.Len() {
		t.Fatalf("Codes() returned %d, want %d", len(codes), table.Len())
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("codes not sorted: %s >= %s", codes[i-1], codes[i])
		}
	}
}
