package ingest

import (
	"fmt"

	"github.com/dom/alliance-dashboard/internal/domain"
)

var (
	teamNameFields      = []string{"team", "Team", "name"}
	teamModeFields      = []string{"mode", "Mode"}
	teamCharacterFields = []string{"characters", "Characters"}
)

// Teams maps the teams snapshot. Teams without a name are dropped; character
// references are kept verbatim (trimmed) and in order.
func Teams(data []byte) ([]domain.Team, error) {
	v, err := decode("teams", data)
	if err != nil {
		return nil, err
	}

	rows := asArray("teams", v)
	teams := make([]domain.Team, 0, len(rows))
	for _, raw := range rows {
		m, ok := asObject(raw)
		if !ok {
			continue
		}

		team := domain.Team{
			Name:       pickString(m, teamNameFields...),
			Mode:       pickString(m, teamModeFields...),
			Characters: teamCharacters(m),
		}
		if team.Name == "" {
			continue
		}
		teams = append(teams, team)
	}
	return teams, nil
}

// teamCharacters reads the characters array, falling back to the sheet's
// character1..character5 columns.
func teamCharacters(m map[string]interface{}) []string {
	var chars []string
	if arr, ok := pick(m, teamCharacterFields...).([]interface{}); ok {
		for _, c := range arr {
			if s := toString(c); s != "" {
				chars = append(chars, s)
			}
		}
		return chars
	}

	for i := 1; i <= domain.DefaultTeamSlots; i++ {
		s := pickString(m, fmt.Sprintf("character%d", i), fmt.Sprintf("Character%d", i))
		if s != "" {
			chars = append(chars, s)
		}
	}
	return chars
}
