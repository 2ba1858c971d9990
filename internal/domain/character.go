package domain

import (
	"path"
	"strings"
)

// Character is the canonical identity of a game character, loaded from the
// characters snapshot.
type Character struct {
	ID          string `json:"id"`          // e.g., "IronFist"
	NameKey     string `json:"nameKey"`     // localization key, often equal to ID
	NameFr      string `json:"nameFr"`      // e.g., "Poing d'acier"
	NameEn      string `json:"nameEn"`      // e.g., "Iron Fist"
	Slug        string `json:"slug"`        // e.g., "iron-fist"
	PortraitURL string `json:"portraitUrl"` // optional
}

// DisplayName returns the best human-readable name, French first like the
// alliance sheets.
func (c *Character) DisplayName() string {
	for _, n := range []string{c.NameFr, c.NameEn, c.NameKey, c.ID} {
		if strings.TrimSpace(n) != "" {
			return n
		}
	}
	return ""
}

// PortraitStem returns the portrait file name without directory or extension
// ("https://cdn/x/Portrait_IronFist.png" -> "Portrait_IronFist").
func (c *Character) PortraitStem() string {
	u := strings.TrimSpace(c.PortraitURL)
	if u == "" {
		return ""
	}
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	base := path.Base(u)
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// Aliases returns every non-empty identifier the character may be referenced
// by, in registration order.
func (c *Character) Aliases() []string {
	candidates := []string{c.ID, c.NameKey, c.NameFr, c.NameEn, c.Slug, c.PortraitStem()}
	out := make([]string, 0, len(candidates))
	for _, a := range candidates {
		if strings.TrimSpace(a) != "" {
			out = append(out, a)
		}
	}
	return out
}
