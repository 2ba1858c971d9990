package ingest

import "github.com/dom/alliance-dashboard/internal/domain"

var (
	playerNameFields     = []string{"player", "joueur", "JOUEURS", "name"}
	playerAllianceFields = []string{"alliance", "ALLIANCES"}
)

// Players maps the players (joueurs) snapshot. Records without a player name
// are dropped; a missing alliance is kept as "".
func Players(data []byte) ([]domain.Player, error) {
	v, err := decode("players", data)
	if err != nil {
		return nil, err
	}

	rows := asArray("players", v)
	players := make([]domain.Player, 0, len(rows))
	for _, raw := range rows {
		m, ok := asObject(raw)
		if !ok {
			continue
		}

		p := domain.Player{
			Name:     pickString(m, playerNameFields...),
			Alliance: pickString(m, playerAllianceFields...),
		}
		if p.Name == "" {
			continue
		}
		players = append(players, p)
	}
	return players, nil
}
