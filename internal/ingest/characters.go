package ingest

import "github.com/dom/alliance-dashboard/internal/domain"

var (
	characterIDFields       = []string{"id", "characterId", "internalName", "nameKey"}
	characterNameKeyFields  = []string{"nameKey", "name", "id"}
	characterNameFrFields   = []string{"nameFr", "localizedName", "displayName"}
	characterNameEnFields   = []string{"nameEn"}
	characterSlugFields     = []string{"slug"}
	characterPortraitFields = []string{"portraitUrl", "portrait", "portraitImage", "portrait_image", "image", "icon"}
)

// Characters maps the characters snapshot. Records without an id are dropped.
func Characters(data []byte) ([]domain.Character, error) {
	v, err := decode("characters", data)
	if err != nil {
		return nil, err
	}

	rows := asArray("characters", v)
	chars := make([]domain.Character, 0, len(rows))
	for _, raw := range rows {
		m, ok := asObject(raw)
		if !ok {
			continue
		}

		c := domain.Character{
			ID:          pickString(m, characterIDFields...),
			NameKey:     pickString(m, characterNameKeyFields...),
			NameFr:      pickString(m, characterNameFrFields...),
			NameEn:      pickString(m, characterNameEnFields...),
			Slug:        pickString(m, characterSlugFields...),
			PortraitURL: pickString(m, characterPortraitFields...),
		}
		if c.ID == "" {
			continue
		}
		chars = append(chars, c)
	}
	return chars, nil
}
