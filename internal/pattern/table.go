package pattern

import (
	"fmt"
	"sort"

	"github.com/patternlab/adaptive-rules/go-executor/internal/rule"
)

// #region table
// Table is an explicitly owned code→rule mapping. Each executor holds
// its own instance; there is no shared or package-level table.
type Table struct {
	rules   map[string]rule.Rule
	aliases map[string]string // name → code, for the seeded rules
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		rules:   make(map[string]rule.Rule),
		aliases: make(map[string]string),
	}
}

// #endregion table

// #region default-table
// DefaultTable seeds the fixed startup rules. The names are arbitrary
// labels kept for readability; the codes are what the executor keys on.
func DefaultTable() *Table {
	t := NewTable()

	seeds := []struct {
		name string
		code string
		r    rule.Rule
	}{
		{"double", "00000001", rule.Linear(2, 0)},
		{"increment", "00000010", rule.Linear(1, 1)},
		{"square", "00000100", rule.Power(1, 2)},
		{"halve", "00001000", rule.Linear(0.5, 0)},
		{"negate", "00010000", rule.Linear(-1, 0)},
		{"identity", "00100000", rule.Identity()},
	}

	for _, s := range seeds {
		t.rules[s.code] = s.r
		t.aliases[s.name] = s.code
	}
	return t
}

// #endregion default-table

// #region lookup
// Get returns the rule for a code.
func (t *Table) Get(code string) (rule.Rule, bool) {
	r, ok := t.rules[code]
	return r, ok
}

// Resolve maps a code or seeded alias name to its code. Returns the
// input unchanged (and false) when neither matches.
func (t *Table) Resolve(key string) (string, bool) {
	if _, ok := t.rules[key]; ok {
		return key, true
	}
	if code, ok := t.aliases[key]; ok {
		return code, true
	}
	return key, false
}

// #endregion lookup

// #region mutate
// Set registers or replaces a code→rule mapping. The code must be a
// well-formed bit-string.
func (t *Table) Set(code string, r rule.Rule) error {
	if !ValidCode(code) {
		return fmt.Errorf("invalid code %q: want %d-bit binary string", code, CodeWidth)
	}
	t.rules[code] = r
	return nil
}

// Mint assigns a fresh code to r and registers it.
func (t *Table) Mint(r rule.Rule) (string, error) {
	taken := make(map[string]bool, len(t.rules))
	for code := range t.rules {
		taken[code] = true
	}
	code, err := MintCode(r, taken)
	if err != nil {
		return "", err
	}
	t.rules[code] = r
	return code, nil
}

// #endregion mutate

// #region enumerate
// Len returns the number of registered rules.
func (t *Table) Len() int {
	return len(t.rules)
}

// Codes returns all registered codes in sorted order.
func (t *Table) Codes() []string {
	codes := make([]string, 0, len(t.rules))
	for code := range t.rules {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Aliases returns the name→code map for the seeded rules.
func (t *Table) Aliases() map[string]string {
	out := make(map[string]string, len(t.aliases))
	for name, code := range t.aliases {
		out[name] = code
	}
	return out
}

// #endregion enumerate
