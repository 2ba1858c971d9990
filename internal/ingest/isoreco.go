package ingest

import (
	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/dom/alliance-dashboard/internal/normalize"
)

var (
	recoCharacterFields = []string{"character", "Character"}
	recoClassFields     = []string{"ISO-reco-class", "isoRecoClass", "iso_reco_class", "recoClass", "isoClass"}
	recoColorFields     = []string{"ISO-reco-matrix", "isoRecoMatrix", "iso_reco_matrix", "recoMatrix", "isoColor"}
)

// IsoRecos maps the optional ISO recommendation snapshot. It accepts an array
// of rows, an object keyed by character, or the scraper's
// {"updatedAt": ..., "byCharacter": {...}} envelope. An empty color is green.
func IsoRecos(data []byte) ([]domain.IsoReco, error) {
	v, err := decode("iso-reco", data)
	if err != nil {
		return nil, err
	}

	var recos []domain.IsoReco
	if obj, ok := asObject(v); ok {
		if inner := pickObject(obj, "byCharacter"); inner != nil {
			obj = inner
		}
		for _, name := range sortedKeys(obj) {
			m, ok := asObject(obj[name])
			if !ok {
				continue
			}
			if reco, ok := isoReco(m, name); ok {
				recos = append(recos, reco)
			}
		}
		return recos, nil
	}

	for _, raw := range asArray("iso-reco", v) {
		m, ok := asObject(raw)
		if !ok {
			continue
		}
		if reco, ok := isoReco(m, ""); ok {
			recos = append(recos, reco)
		}
	}
	return recos, nil
}

func isoReco(m map[string]interface{}, fallbackName string) (domain.IsoReco, bool) {
	character := pickString(m, recoCharacterFields...)
	if character == "" {
		character = fallbackName
	}
	if character == "" {
		return domain.IsoReco{}, false
	}
	return domain.IsoReco{
		Character: character,
		IsoClass:  normalize.IsoClass(pickString(m, recoClassFields...)),
		IsoColor:  normalize.IsoColor(pickString(m, recoColorFields...)),
	}, true
}

// IsoIcons maps the optional {class: {color: url}} icon table.
func IsoIcons(data []byte) (domain.IsoIcons, error) {
	v, err := decode("iso-icons", data)
	if err != nil {
		return nil, err
	}

	icons := make(domain.IsoIcons)
	obj, ok := asObject(v)
	if !ok {
		return icons, nil
	}
	for _, class := range sortedKeys(obj) {
		colors, ok := asObject(obj[class])
		if !ok {
			continue
		}
		byColor := make(map[string]string, len(colors))
		for _, color := range sortedKeys(colors) {
			if url := toString(colors[color]); url != "" {
				byColor[normalize.IsoColor(color)] = url
			}
		}
		icons[normalize.IsoClass(class)] = byColor
	}
	return icons, nil
}
