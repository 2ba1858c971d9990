// Package catalog holds team compositions grouped by game mode.
package catalog

import (
	"sort"
	"strings"

	"github.com/dom/alliance-dashboard/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Catalog is immutable after New. Lookups use the exact (mode, team) strings
// from the snapshot; they are not normalized.
type Catalog struct {
	teams []domain.Team
	modes []string
}

func New(teams []domain.Team) *Catalog {
	c := &Catalog{teams: make([]domain.Team, len(teams))}
	copy(c.teams, teams)

	seen := make(map[string]bool)
	for _, t := range c.teams {
		m := strings.TrimSpace(t.Mode)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		c.modes = append(c.modes, m)
	}
	collate.New(language.French).SortStrings(c.modes)

	return c
}

// ListModes returns the distinct non-empty modes in French collation order.
func (c *Catalog) ListModes() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.modes))
	copy(out, c.modes)
	return out
}

// ListTeams returns the teams of a mode sorted by name.
func (c *Catalog) ListTeams(mode string) []domain.Team {
	if c == nil {
		return nil
	}
	mode = strings.TrimSpace(mode)

	var out []domain.Team
	for _, t := range c.teams {
		if strings.TrimSpace(t.Mode) == mode {
			out = append(out, t)
		}
	}

	col := collate.New(language.French)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

// Find looks a team up by exact (mode, team). The first match wins when the
// snapshot carries duplicates.
func (c *Catalog) Find(mode, team string) (domain.Team, error) {
	if c == nil {
		return domain.Team{}, domain.ErrTeamNotFound
	}
	mode = strings.TrimSpace(mode)
	team = strings.TrimSpace(team)

	for _, t := range c.teams {
		if strings.TrimSpace(t.Mode) == mode && strings.TrimSpace(t.Name) == team {
			return t, nil
		}
	}
	return domain.Team{}, domain.ErrTeamNotFound
}

// HasMode reports whether any team is tagged with mode.
func (c *Catalog) HasMode(mode string) bool {
	mode = strings.TrimSpace(mode)
	for _, m := range c.ListModes() {
		if m == mode {
			return true
		}
	}
	return false
}

// Len returns the number of teams.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.teams)
}
