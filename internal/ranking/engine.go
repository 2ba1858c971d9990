// Package ranking joins a team with every eligible player's roster and orders
// the players by the power they field for that team.
package ranking

import (
	"sort"
	"strings"

	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/dom/alliance-dashboard/internal/normalize"
	"github.com/dom/alliance-dashboard/internal/resolver"
	"github.com/dom/alliance-dashboard/internal/roster"
)

// Allower decides whether a player's alliance takes part in a ranking.
// *alliance.Filter satisfies it.
type Allower interface {
	IsAllowed(alliance string) bool
}

// Slot is one team position for one player.
type Slot struct {
	Character   string            `json:"character"`
	CharacterID string            `json:"characterId,omitempty"`
	PortraitURL string            `json:"portraitUrl,omitempty"`
	Power       int64             `json:"power"`
	Status      domain.SlotStatus `json:"status"`
	// Suggested names a low-confidence candidate for an unresolved slot.
	// It is never used for the join.
	Suggested string `json:"suggested,omitempty"`
}

// Row is one ranked player.
type Row struct {
	Player     string `json:"player"`
	Alliance   string `json:"alliance"`
	TotalPower int64  `json:"totalPower"`
	Slots      []Slot `json:"slots"`
}

// Engine ranks players for a team.
type Engine struct {
	Thresholds domain.Thresholds
	Slots      int
}

// NewEngine returns an engine with default thresholds and five slots.
func NewEngine() *Engine {
	return &Engine{Thresholds: domain.DefaultThresholds(), Slots: domain.DefaultTeamSlots}
}

// Rank returns one row per allowed player, highest total power first. Equal
// totals keep player order. A nil filter allows everyone.
func (e *Engine) Rank(team domain.Team, players []domain.Player, filter Allower, idx *roster.Index, res *resolver.Resolver) []Row {
	slots := e.Slots
	if slots <= 0 {
		slots = domain.DefaultTeamSlots
	}

	plan := e.plan(team, slots, res)

	rows := make([]Row, 0, len(players))
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		key := normalize.Key(p.Name)
		if key == "" || seen[key] {
			continue
		}
		if filter != nil && !filter.IsAllowed(p.Alliance) {
			continue
		}
		seen[key] = true

		pr, _ := idx.Player(p.Name)
		rows = append(rows, e.score(p, pr, plan))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalPower > rows[j].TotalPower
	})
	return rows
}

// slotPlan is the player-independent part of a slot, resolved once per rank.
type slotPlan struct {
	name      string
	id        string
	portrait  string
	suggested string
	keys      []string
	empty     bool
}

func (e *Engine) plan(team domain.Team, slots int, res *resolver.Resolver) []slotPlan {
	plan := make([]slotPlan, slots)
	for i := range plan {
		if i >= len(team.Characters) {
			plan[i] = slotPlan{empty: true}
			continue
		}
		name := strings.TrimSpace(team.Characters[i])
		if name == "" {
			plan[i] = slotPlan{empty: true}
			continue
		}

		ref := res.Ref(name)
		sp := slotPlan{name: name, keys: ref.Keys}
		if c := ref.Character; c != nil {
			sp.id = c.ID
			sp.portrait = c.PortraitURL
			sp.name = c.DisplayName()
		} else if ref.Suggested != nil {
			sp.suggested = ref.Suggested.ID
		}
		plan[i] = sp
	}
	return plan
}

func (e *Engine) score(p domain.Player, pr roster.PlayerRoster, plan []slotPlan) Row {
	row := Row{
		Player:   p.Name,
		Alliance: p.Alliance,
		Slots:    make([]Slot, len(plan)),
	}

	for i, sp := range plan {
		if sp.empty {
			row.Slots[i] = Slot{Status: domain.SlotEmpty}
			continue
		}

		slot := Slot{
			Character:   sp.name,
			CharacterID: sp.id,
			PortraitURL: sp.portrait,
			Status:      domain.SlotAbsent,
			Suggested:   sp.suggested,
		}
		if rec, _, ok := pr.Lookup(sp.keys...); ok {
			slot.Power = rec.Power
			slot.Status = e.classify(rec)
			if slot.Status != domain.SlotAbsent {
				row.TotalPower += rec.Power
			}
		}
		row.Slots[i] = slot
	}
	return row
}

// classify grades a present record. Zero power counts as not unlocked.
func (e *Engine) classify(rec domain.Progress) domain.SlotStatus {
	if rec.Power <= 0 {
		return domain.SlotAbsent
	}
	if e.Thresholds.Meets(rec) {
		return domain.SlotOK
	}
	return domain.SlotPartial
}
