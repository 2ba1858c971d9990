// Package normalize holds the one canonical key function every join in the
// dashboard goes through, plus the value normalizers for ISO class and color.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes and drops combining marks: "Poséidon" -> "Poseidon".
// Transformers carry state, so each call builds its own chain.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return norm.NFKD.String(s)
	}
	return out
}

// Key canonicalizes a free-text identifier (player, character, alliance)
// into a comparable join key: trimmed, lower-cased, accents decomposed and
// dropped, and everything outside [a-z0-9] removed.
//
// Key("Iron Fist"), Key("iron-fist") and Key("IRONFIST") are all "ironfist".
// The output only contains [a-z0-9], so Key(Key(s)) == Key(s).
func Key(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	decomposed := stripMarks(strings.ToLower(s))

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			// NFKD can surface compatibility capitals (e.g. fullwidth letters)
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

// Equal reports whether two identifiers normalize to the same non-empty key.
func Equal(a, b string) bool {
	ka := Key(a)
	return ka != "" && ka == Key(b)
}
