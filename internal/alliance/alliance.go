// Package alliance recognizes alliance tags and filters players by them.
package alliance

import (
	"sort"
	"strings"

	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/dom/alliance-dashboard/internal/normalize"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Unknown is the bucket for tags outside the vocabulary.
const Unknown = "unknown"

const unknownEmoji = "•"

// Alliance is one entry of the fixed vocabulary, in display order.
type Alliance struct {
	Name  string `json:"name" yaml:"name"`
	Emoji string `json:"emoji" yaml:"emoji"`
}

// DefaultVocabulary is Zeus > Dionysos > Poséidon.
func DefaultVocabulary() []Alliance {
	return []Alliance{
		{Name: "Zeus", Emoji: "⚡"},
		{Name: "Dionysos", Emoji: "🍇"},
		{Name: "Poséidon", Emoji: "🔱"},
	}
}

// Vocabulary recognizes alliance tags by normalized key, so "Poseidon" and
// "Poséidon" are the same alliance.
type Vocabulary struct {
	entries []Alliance
	byKey   map[string]int
}

func NewVocabulary(entries []Alliance) *Vocabulary {
	v := &Vocabulary{byKey: make(map[string]int)}
	for _, a := range entries {
		key := normalize.Key(a.Name)
		if key == "" {
			continue
		}
		if _, dup := v.byKey[key]; dup {
			continue
		}
		v.byKey[key] = len(v.entries)
		v.entries = append(v.entries, a)
	}
	return v
}

// Key returns the vocabulary key of a tag, or Unknown.
func (v *Vocabulary) Key(tag string) string {
	key := normalize.Key(tag)
	if _, ok := v.byKey[key]; ok {
		return key
	}
	return Unknown
}

// Recognized reports whether tag belongs to the vocabulary.
func (v *Vocabulary) Recognized(tag string) bool {
	return v.Key(tag) != Unknown
}

// Canonical returns the vocabulary spelling of a tag, or the trimmed tag
// itself when it is not recognized.
func (v *Vocabulary) Canonical(tag string) string {
	if i, ok := v.byKey[normalize.Key(tag)]; ok {
		return v.entries[i].Name
	}
	return strings.TrimSpace(tag)
}

// Emoji returns the display emoji of a tag, "•" when unknown.
func (v *Vocabulary) Emoji(tag string) string {
	if i, ok := v.byKey[normalize.Key(tag)]; ok && v.entries[i].Emoji != "" {
		return v.entries[i].Emoji
	}
	return unknownEmoji
}

// Entries returns the vocabulary in display order.
func (v *Vocabulary) Entries() []Alliance {
	out := make([]Alliance, len(v.entries))
	copy(out, v.entries)
	return out
}

// Order sorts distinct, non-empty tags: vocabulary order first, then the
// rest in French collation.
func (v *Vocabulary) Order(tags []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tags {
		c := v.Canonical(t)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}

	col := collate.New(language.French)
	rank := func(tag string) int {
		if i, ok := v.byKey[normalize.Key(tag)]; ok {
			return i
		}
		return len(v.entries)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		if ri != rj {
			return ri < rj
		}
		return col.CompareString(out[i], out[j]) < 0
	})
	return out
}

// GroupPlayers buckets players by canonical alliance name, each bucket
// sorted by player name. Players without an alliance are left out.
func (v *Vocabulary) GroupPlayers(players []domain.Player) map[string][]domain.Player {
	groups := make(map[string][]domain.Player)
	for _, p := range players {
		a := v.Canonical(p.Alliance)
		if a == "" {
			continue
		}
		groups[a] = append(groups[a], p)
	}

	col := collate.New(language.French)
	for _, list := range groups {
		sort.SliceStable(list, func(i, j int) bool {
			return col.CompareString(list[i].Name, list[j].Name) < 0
		})
	}
	return groups
}
