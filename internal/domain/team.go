package domain

// DefaultTeamSlots is the number of characters in a full squad.
const DefaultTeamSlots = 5

// Team is a named composition scoped to a game mode. Characters are display
// names or ids exactly as typed in the sheet; they are not guaranteed to
// resolve.
type Team struct {
	Name       string   `json:"team"`
	Mode       string   `json:"mode"`
	Characters []string `json:"characters"`
}

// Player is an alliance member.
type Player struct {
	Name     string `json:"player"`
	Alliance string `json:"alliance"`
}
