// Package roster indexes per-player character progression.
package roster

import (
	"sort"

	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/dom/alliance-dashboard/internal/normalize"
)

// PlayerRoster is one player's characters by normalized character key.
// A key being present means the character is unlocked.
type PlayerRoster map[string]domain.Progress

// Get returns the record for a normalized character key.
func (p PlayerRoster) Get(charKey string) (domain.Progress, bool) {
	rec, ok := p[charKey]
	return rec, ok
}

// Lookup returns the record under the first key that is present.
func (p PlayerRoster) Lookup(keys ...string) (domain.Progress, string, bool) {
	for _, k := range keys {
		if rec, ok := p[k]; ok {
			return rec, k, true
		}
	}
	return domain.Progress{}, "", false
}

// Index maps normalized player key -> that player's roster.
type Index struct {
	players map[string]PlayerRoster
	names   map[string]string // player key -> first display name seen
	rows    int
}

// BuildIndex collapses flat roster rows into an index. Duplicate
// (player, character) rows never sum: see merge.
func BuildIndex(rows []domain.RosterRow) *Index {
	idx := &Index{
		players: make(map[string]PlayerRoster),
		names:   make(map[string]string),
	}

	for _, row := range rows {
		pKey := normalize.Key(row.Player)
		cKey := normalize.Key(row.Character)
		if pKey == "" || cKey == "" {
			continue
		}
		idx.rows++

		pr, ok := idx.players[pKey]
		if !ok {
			pr = make(PlayerRoster)
			idx.players[pKey] = pr
			idx.names[pKey] = row.Player
		}

		incoming := progressOf(row)
		if existing, ok := pr[cKey]; ok {
			pr[cKey] = merge(existing, incoming)
		} else {
			pr[cKey] = incoming
		}
	}
	return idx
}

// merge resolves a duplicate (player, character) pair:
//   - the higher power wins outright;
//   - on equal power the first record stays, with level, gear and isoMax
//     raised to the per-field maximum;
//   - ISO class/color missing on the winner come from the other row.
func merge(existing, incoming domain.Progress) domain.Progress {
	var winner, other domain.Progress
	switch {
	case incoming.Power > existing.Power:
		winner, other = incoming, existing
	case incoming.Power < existing.Power:
		winner, other = existing, incoming
	default:
		winner, other = existing, incoming
		winner.Level = maxInt(winner.Level, other.Level)
		winner.Gear = maxInt(winner.Gear, other.Gear)
		winner.IsoMax = maxInt(winner.IsoMax, other.IsoMax)
	}

	if winner.IsoClass == "" {
		winner.IsoClass = other.IsoClass
	}
	if winner.IsoColor == "" {
		winner.IsoColor = other.IsoColor
	}
	return winner
}

func progressOf(row domain.RosterRow) domain.Progress {
	return domain.Progress{
		Power:    row.Power,
		Level:    row.Level,
		Gear:     row.Gear,
		IsoMax:   row.IsoMax,
		IsoClass: row.IsoClass,
		IsoColor: row.IsoColor,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Player returns the roster of a player by display name.
func (idx *Index) Player(name string) (PlayerRoster, bool) {
	if idx == nil {
		return nil, false
	}
	pr, ok := idx.players[normalize.Key(name)]
	return pr, ok
}

// Players returns the display names of every indexed player, sorted by key.
func (idx *Index) Players() []string {
	if idx == nil {
		return nil
	}
	keys := make([]string, 0, len(idx.players))
	for k := range idx.players {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = idx.names[k]
	}
	return names
}

// Len returns the number of indexed players.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.players)
}

// Rows returns how many usable rows went into the index.
func (idx *Index) Rows() int {
	if idx == nil {
		return 0
	}
	return idx.rows
}
