// Package iso compares a player's ISO-8 configuration with the recommended
// one for each character of a team.
package iso

import (
	"strings"

	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/dom/alliance-dashboard/internal/normalize"
	"github.com/dom/alliance-dashboard/internal/resolver"
	"github.com/dom/alliance-dashboard/internal/roster"
)

// RecoMap holds recommendations by canonical character key.
type RecoMap map[string]domain.IsoReco

// BuildRecoMap files each recommendation under the canonical key of the
// character it names, or the normalized raw text when it does not resolve.
// A later entry for the same character replaces an earlier one.
func BuildRecoMap(recos []domain.IsoReco, res *resolver.Resolver) RecoMap {
	m := make(RecoMap, len(recos))
	for _, r := range recos {
		raw := strings.TrimSpace(r.Character)
		key := res.CanonicalKey(raw)
		if key == "" {
			continue
		}
		m[key] = domain.IsoReco{
			Character: raw,
			IsoClass:  normalize.IsoClass(r.IsoClass),
			IsoColor:  normalize.IsoColor(r.IsoColor),
		}
	}
	return m
}

// Get returns the recommendation for the first present key.
func (m RecoMap) Get(keys ...string) (domain.IsoReco, bool) {
	for _, k := range keys {
		if r, ok := m[k]; ok {
			return r, true
		}
	}
	return domain.IsoReco{}, false
}

// State is one side of a comparison.
type State struct {
	Class   string `json:"class,omitempty"`
	Color   string `json:"color,omitempty"`
	IconURL string `json:"iconUrl,omitempty"`
}

// Compare grades actual against reco.
func Compare(reco, actual State) domain.IsoBadge {
	if reco.Class == "" || actual.Class == "" {
		return domain.IsoMissing
	}
	if normalize.IsoClass(reco.Class) == normalize.IsoClass(actual.Class) &&
		normalize.IsoColor(reco.Color) == normalize.IsoColor(actual.Color) {
		return domain.IsoMatch
	}
	return domain.IsoMismatch
}

// SlotView is one team position seen through ISO.
type SlotView struct {
	Character   string          `json:"character"`
	CharacterID string          `json:"characterId,omitempty"`
	PortraitURL string          `json:"portraitUrl,omitempty"`
	Reco        State           `json:"reco"`
	Player      State           `json:"player"`
	Badge       domain.IsoBadge `json:"badge"`
}

// View is the ISO comparison of a team for one player. Player is empty when
// only the recommendations were asked for.
type View struct {
	Team   string     `json:"team"`
	Mode   string     `json:"mode"`
	Player string     `json:"player,omitempty"`
	Slots  []SlotView `json:"slots"`
}

// Sources bundles the lookups a view needs.
type Sources struct {
	Resolver *resolver.Resolver
	Index    *roster.Index
	Recos    RecoMap
	Icons    domain.IsoIcons
}

// TeamView builds the per-slot comparison for a team in team order. Slots
// that name no character are skipped.
func TeamView(team domain.Team, player string, src Sources) View {
	v := View{
		Team:   team.Name,
		Mode:   team.Mode,
		Player: strings.TrimSpace(player),
		Slots:  make([]SlotView, 0, len(team.Characters)),
	}

	var pr roster.PlayerRoster
	if v.Player != "" {
		pr, _ = src.Index.Player(v.Player)
	}

	for _, name := range team.Characters {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		ref := src.Resolver.Ref(name)
		sv := SlotView{Character: name}
		if c := ref.Character; c != nil {
			sv.CharacterID = c.ID
			sv.PortraitURL = c.PortraitURL
		}

		if r, ok := src.Recos.Get(ref.Canonical, normalize.Key(name)); ok {
			sv.Reco = state(r.IsoClass, r.IsoColor, src.Icons)
		}
		if rec, _, ok := pr.Lookup(ref.Keys...); ok {
			sv.Player = state(rec.IsoClass, rec.IsoColor, src.Icons)
		}
		sv.Badge = Compare(sv.Reco, sv.Player)

		v.Slots = append(v.Slots, sv)
	}
	return v
}

func state(class, color string, icons domain.IsoIcons) State {
	class = normalize.IsoClass(class)
	if class == "" {
		return State{}
	}
	color = normalize.IsoColor(color)
	return State{Class: class, Color: color, IconURL: icons.URL(class, color)}
}
