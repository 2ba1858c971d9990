package alliance

import "strings"

// Filter decides which players take part in a ranking.
type Filter struct {
	vocab *Vocabulary
	// enabled holds vocabulary keys. Without a restriction every recognized
	// alliance is allowed.
	enabled    map[string]bool
	restricted bool
	// includeUnrecognized is the policy for tags outside the vocabulary.
	includeUnrecognized bool
}

// NewFilter builds a filter over the given alliance tags. Any non-blank tag
// restricts the ranking to the recognized alliances named, so a list of
// unknown tags admits no recognized alliance. The Unknown bucket is governed
// by includeUnrecognized alone.
func NewFilter(vocab *Vocabulary, enabled []string, includeUnrecognized bool) *Filter {
	f := &Filter{
		vocab:               vocab,
		enabled:             make(map[string]bool),
		includeUnrecognized: includeUnrecognized,
	}
	for _, tag := range enabled {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		f.restricted = true
		if key := vocab.Key(tag); key != Unknown {
			f.enabled[key] = true
		}
	}
	return f
}

// IsAllowed reports whether a player of the given alliance is ranked.
func (f *Filter) IsAllowed(tag string) bool {
	key := f.vocab.Key(tag)
	if key == Unknown {
		return f.includeUnrecognized
	}
	return !f.restricted || f.enabled[key]
}

// IsAllowed is the functional form of Filter.IsAllowed.
func IsAllowed(tag string, vocab *Vocabulary, enabled []string, includeUnrecognized bool) bool {
	return NewFilter(vocab, enabled, includeUnrecognized).IsAllowed(tag)
}
