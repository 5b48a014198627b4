package pattern

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/patternlab/adaptive-rules/go-executor/internal/rule"
)

// #region code-width
// CodeWidth is the fixed bit-string length of every code: 256 codes,
// enough that repeated synthesis never exhausts the space in practice.
const CodeWidth = 8

// #endregion code-width

// #region validate
// ValidCode reports whether s is a well-formed code: exactly CodeWidth
// characters, each '0' or '1'.
func ValidCode(s string) bool {
	if len(s) != CodeWidth {
		return false
	}
	for _, c := range s {
		if c != '0' && c != '1' {
			return false
		}
	}
	return true
}

// #endregion validate

// #region mint
// MintCode derives a fresh code for r by hashing its canonical form.
// Collisions with taken codes are resolved by a deterministic counter
// appended to the hash input, so minting is reproducible across runs.
// The hash sequence can revisit codes, so once the retries are spent a
// linear sweep claims any remaining free code. Fails only when every
// code in the space is taken.
func MintCode(r rule.Rule, taken map[string]bool) (string, error) {
	canonical := r.String()
	space := 1 << CodeWidth

	for attempt := 0; attempt < space; attempt++ {
		input := canonical
		if attempt > 0 {
			input = fmt.Sprintf("%s#%d", canonical, attempt)
		}
		code := hashToCode(input)
		if !taken[code] {
			return code, nil
		}
	}

	for v := 0; v < space; v++ {
		code := codeFor(uint32(v))
		if !taken[code] {
			return code, nil
		}
	}
	return "", fmt.Errorf("code space exhausted for rule %s", canonical)
}

// hashToCode maps a string to a CodeWidth-bit binary string via FNV-1a.
func hashToCode(s string) string {
	h := fnv.New32a()
	h.Write([]byte(s))
	return codeFor(h.Sum32() % (1 << CodeWidth))
}

// codeFor formats v as a CodeWidth-bit binary string.
func codeFor(v uint32) string {
	var b strings.Builder
	for i := CodeWidth - 1; i >= 0; i-- {
		if v&(1<<uint(i)) != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// #endregion mint
