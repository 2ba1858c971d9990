package domain

// IsoReco is the recommended ISO configuration for a character.
type IsoReco struct {
	Character string `json:"character"`
	IsoClass  string `json:"isoClass"`
	IsoColor  string `json:"isoColor"`
}

// IsoIcons maps ISO class -> color -> icon URL.
type IsoIcons map[string]map[string]string

// URL returns the icon for a normalized class/color pair, or "".
func (i IsoIcons) URL(class, color string) string {
	if i == nil {
		return ""
	}
	return i[class][color]
}

// IsoBadge compares a player's ISO state to the recommendation
type IsoBadge string

const (
	IsoMatch    IsoBadge = "match"
	IsoMismatch IsoBadge = "mismatch"
	IsoMissing  IsoBadge = "missing"
)
