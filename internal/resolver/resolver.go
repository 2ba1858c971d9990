// Package resolver maps character display names and sheet identifiers onto
// canonical character records.
package resolver

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/dom/alliance-dashboard/internal/normalize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	scoreExactID      = 1000
	scoreExactNameKey = 900
	scoreVariant      = -200
	scoreShortID      = 10

	// shortIDMaxLen is the id length (in runes) still treated as a base form.
	shortIDMaxLen = 12

	// minFuzzyKeyLen keeps two- and three-letter queries off the fuzzy path.
	minFuzzyKeyLen = 4
)

// variantSuffixes mark event, raid, boss and NPC forms of a hero.
var variantSuffixes = []string{"event", "raid", "boss", "npc"}

// resolverLog is built per call so it follows log.Logger as configured at startup.
func resolverLog() *zerolog.Logger {
	l := log.With().Str("module", "resolver").Logger()
	return &l
}

// Options tune the resolver.
type Options struct {
	// Fuzzy enables the low-confidence substring fallback.
	Fuzzy bool
}

// Match is a resolved character reference.
type Match struct {
	Character  *domain.Character
	Query      string
	Alias      string // normalized alias that matched
	Confidence domain.Confidence
}

// Resolver is an immutable alias table. It is safe for concurrent use.
type Resolver struct {
	chars   []domain.Character
	aliases map[string][]*domain.Character
	keys    []string // sorted alias keys, for the fuzzy path
	opts    Options
}

// New registers every alias of every character. An alias may map to several
// characters (variant skins of the same hero); candidates keep registration
// order.
func New(chars []domain.Character, opts Options) *Resolver {
	r := &Resolver{
		chars:   make([]domain.Character, len(chars)),
		aliases: make(map[string][]*domain.Character),
		opts:    opts,
	}
	copy(r.chars, chars)

	for i := range r.chars {
		c := &r.chars[i]
		registered := make(map[string]bool)
		for _, alias := range c.Aliases() {
			key := normalize.Key(alias)
			if key == "" || registered[key] {
				continue
			}
			registered[key] = true
			r.aliases[key] = append(r.aliases[key], c)
		}
	}

	r.keys = make([]string, 0, len(r.aliases))
	for k := range r.aliases {
		r.keys = append(r.keys, k)
	}
	sort.Strings(r.keys)

	return r
}

// Len returns the number of characters known to the resolver.
func (r *Resolver) Len() int {
	if r == nil {
		return 0
	}
	return len(r.chars)
}

// Resolve returns the canonical character for a name or id, or nil.
func (r *Resolver) Resolve(nameOrID string) *domain.Character {
	m, ok := r.Lookup(nameOrID)
	if !ok {
		return nil
	}
	return m.Character
}

// Lookup resolves like Resolve and reports how the match was made.
func (r *Resolver) Lookup(nameOrID string) (Match, bool) {
	if r == nil {
		return Match{}, false
	}

	query := normalize.Key(nameOrID)
	if query == "" {
		return Match{}, false
	}

	if candidates := r.aliases[query]; len(candidates) > 0 {
		return Match{
			Character:  best(query, candidates),
			Query:      nameOrID,
			Alias:      query,
			Confidence: domain.ConfidenceExact,
		}, true
	}

	if !r.opts.Fuzzy {
		return Match{}, false
	}
	return r.fuzzy(nameOrID, query)
}

// Ref is a team slot's character reference, resolved once. Only an exact
// match labels the slot and adds keys; a fuzzy candidate is reported in
// Suggested and never joined on.
type Ref struct {
	Text      string
	Character *domain.Character
	Suggested *domain.Character
	Keys      []string
	Canonical string
}

// Ref resolves a slot text. Keys are the exact match's id, nameKey, nameEn
// and nameFr, then the slot text itself, normalized and deduplicated.
func (r *Resolver) Ref(name string) Ref {
	ref := Ref{Text: name}

	var candidates []string
	if m, ok := r.Lookup(name); ok {
		if m.Confidence == domain.ConfidenceExact {
			ref.Character = m.Character
			candidates = append(candidates, m.Character.ID, m.Character.NameKey, m.Character.NameEn, m.Character.NameFr)
		} else {
			ref.Suggested = m.Character
		}
	}
	candidates = append(candidates, name)

	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		k := normalize.Key(c)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		ref.Keys = append(ref.Keys, k)
	}
	if len(ref.Keys) > 0 {
		ref.Canonical = ref.Keys[0]
	}
	return ref
}

// RosterKeys returns the ordered keys under which a slot may appear in a
// roster. See Ref.
func (r *Resolver) RosterKeys(name string) []string {
	return r.Ref(name).Keys
}

// CanonicalKey is the single key a character reference is filed under: the
// exactly resolved id when there is one, the normalized text otherwise.
func (r *Resolver) CanonicalKey(name string) string {
	return r.Ref(name).Canonical
}

// best scores candidates for query; the first registered wins ties.
func best(query string, candidates []*domain.Character) *domain.Character {
	var winner *domain.Character
	bestScore := 0
	for i, c := range candidates {
		s := score(query, c)
		if i == 0 || s > bestScore {
			winner, bestScore = c, s
		}
	}
	return winner
}

func score(query string, c *domain.Character) int {
	s := 0
	if normalize.Equal(c.ID, query) {
		s += scoreExactID
	}
	if normalize.Equal(c.NameKey, query) {
		s += scoreExactNameKey
	}
	if isVariant(c.ID) {
		s += scoreVariant
	}
	if utf8.RuneCountInString(c.ID) <= shortIDMaxLen {
		s += scoreShortID
	}
	return s
}

func isVariant(id string) bool {
	lower := strings.ToLower(strings.TrimSpace(id))
	for _, suffix := range variantSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// fuzzy is the low-confidence path: an alias key containing the query, or
// contained in it. Closest length wins, then lexical order. Every hit is
// logged so it can be audited.
func (r *Resolver) fuzzy(nameOrID, query string) (Match, bool) {
	if len(query) < minFuzzyKeyLen {
		return Match{}, false
	}

	bestKey := ""
	bestDiff := -1
	for _, k := range r.keys {
		if len(k) < minFuzzyKeyLen {
			continue
		}
		if !strings.Contains(k, query) && !strings.Contains(query, k) {
			continue
		}
		diff := len(k) - len(query)
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			bestKey, bestDiff = k, diff
		}
	}
	if bestKey == "" {
		return Match{}, false
	}

	c := best(bestKey, r.aliases[bestKey])
	resolverLog().Warn().
		Str("query", nameOrID).
		Str("alias", bestKey).
		Str("characterId", c.ID).
		Msg("low-confidence character match")

	return Match{
		Character:  c,
		Query:      nameOrID,
		Alias:      bestKey,
		Confidence: domain.ConfidenceFuzzy,
	}, true
}
