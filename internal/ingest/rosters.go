package ingest

import (
	"sort"
	"strings"

	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/dom/alliance-dashboard/internal/normalize"
)

var (
	rosterPlayerFields    = []string{"player", "joueur", "Player", "Name", "name"}
	rosterCharsFields     = []string{"chars", "characters"}
	rosterCharacterFields = []string{"character", "Character", "charId", "Character Id", "CharacterId"}

	progressPowerFields  = []string{"power", "Power", "Puissance", "TCP"}
	progressLevelFields  = []string{"level", "Level", "lvl"}
	progressGearFields   = []string{"gear", "Gear", "gearTier", "tier"}
	progressIsoMaxFields = []string{"isoMax", "iso_max", "isoLevel", "ISO"}
	isoClassFields       = []string{"isoClass", "class", "iso_class", "ISO Class"}
	isoColorFields       = []string{"isoColor", "color", "iso_color", "isoMatrix", "ISO Matrix"}

	rosterIsoFields     = []string{"iso"}
	rosterIsoClassMaps  = []string{"isoClass", "charsIsoClass", "iso_class"}
	rosterIsoMatrixMaps = []string{"isoMatrix", "charsIsoMatrix", "iso_matrix"}
)

// Rosters flattens the rosters snapshot into one row per (player, character).
//
// Two element shapes are accepted:
//
//	{"player": "Ann", "chars": {"ironfist": 1200 | {"power": 1200, "level": 100, ...}},
//	 "iso": {"ironfist": {"isoClass": "striker", "isoColor": "blue"}}}
//	{"player": "Ann", "character": "IronFist", "power": 1200, ...}
//
// Duplicates are kept; collapsing them is the roster index's job.
func Rosters(data []byte) ([]domain.RosterRow, error) {
	v, err := decode("rosters", data)
	if err != nil {
		return nil, err
	}

	var rows []domain.RosterRow
	for _, raw := range asArray("rosters", v) {
		m, ok := asObject(raw)
		if !ok {
			continue
		}

		player := pickString(m, rosterPlayerFields...)
		if player == "" {
			continue
		}

		if chars := pickObject(m, rosterCharsFields...); chars != nil {
			rows = append(rows, playerRows(player, chars, m)...)
			continue
		}

		if character := pickString(m, rosterCharacterFields...); character != "" {
			row := progressRow(player, character, m)
			row.IsoClass = normalize.IsoClass(pickString(m, isoClassFields...))
			row.IsoColor = isoColorOrEmpty(pickString(m, isoColorFields...))
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func playerRows(player string, chars, m map[string]interface{}) []domain.RosterRow {
	iso := playerIso(m)

	rows := make([]domain.RosterRow, 0, len(chars))
	seen := make(map[string]bool, len(chars))
	for _, name := range sortedKeys(chars) {
		var row domain.RosterRow
		if obj, ok := asObject(chars[name]); ok {
			row = progressRow(player, name, obj)
			row.IsoClass = normalize.IsoClass(pickString(obj, isoClassFields...))
			row.IsoColor = isoColorOrEmpty(pickString(obj, isoColorFields...))
		} else {
			row = domain.RosterRow{Player: player, Character: name, Power: toInt64(chars[name])}
		}

		key := normalize.Key(name)
		if state, ok := iso[key]; ok {
			if state.IsoClass != "" {
				row.IsoClass = state.IsoClass
			}
			if state.IsoColor != "" {
				row.IsoColor = state.IsoColor
			}
		}
		seen[key] = true
		rows = append(rows, row)
	}

	// ISO state for a character missing from chars still describes it
	for _, key := range sortedIsoKeys(iso) {
		if seen[key] {
			continue
		}
		state := iso[key]
		rows = append(rows, domain.RosterRow{
			Player:    player,
			Character: state.Character,
			IsoClass:  state.IsoClass,
			IsoColor:  state.IsoColor,
		})
	}
	return rows
}

func progressRow(player, character string, m map[string]interface{}) domain.RosterRow {
	return domain.RosterRow{
		Player:    player,
		Character: character,
		Power:     toInt64(pick(m, progressPowerFields...)),
		Level:     toInt(pick(m, progressLevelFields...)),
		Gear:      toInt(pick(m, progressGearFields...)),
		IsoMax:    toInt(pick(m, progressIsoMaxFields...)),
	}
}

// playerIso collects a player's ISO state from the "iso" object and from the
// parallel class/matrix maps, keyed by normalized character key.
func playerIso(m map[string]interface{}) map[string]domain.IsoReco {
	out := make(map[string]domain.IsoReco)

	if isoObj := pickObject(m, rosterIsoFields...); isoObj != nil {
		for _, name := range sortedKeys(isoObj) {
			state, ok := asObject(isoObj[name])
			if !ok {
				continue
			}
			key := normalize.Key(name)
			if key == "" {
				continue
			}
			out[key] = domain.IsoReco{
				Character: name,
				IsoClass:  normalize.IsoClass(pickString(state, isoClassFields...)),
				IsoColor:  isoColorOrEmpty(pickString(state, isoColorFields...)),
			}
		}
	}

	classes := pickObject(m, rosterIsoClassMaps...)
	colors := pickObject(m, rosterIsoMatrixMaps...)
	if classes == nil && colors == nil {
		return out
	}

	names := make(map[string]bool)
	for k := range classes {
		names[k] = true
	}
	for k := range colors {
		names[k] = true
	}
	for _, name := range sortedBoolKeys(names) {
		key := normalize.Key(name)
		if key == "" {
			continue
		}
		out[key] = domain.IsoReco{
			Character: name,
			IsoClass:  normalize.IsoClass(toString(classes[name])),
			IsoColor:  isoColorOrEmpty(toString(colors[name])),
		}
	}
	return out
}

// isoColorOrEmpty maps French color names like normalize.IsoColor but keeps
// an empty cell empty, so a duplicate row can still supply the color.
func isoColorOrEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return normalize.IsoColor(s)
}

func sortedIsoKeys(m map[string]domain.IsoReco) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedBoolKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
