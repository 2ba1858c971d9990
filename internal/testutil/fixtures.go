package testutil

import (
	"encoding/json"
	"testing"

	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/dom/alliance-dashboard/internal/repository"
)

// CharacterBuilder creates catalog characters with a builder pattern
type CharacterBuilder struct {
	c domain.Character
}

// NewCharacterBuilder creates a character whose id and nameKey are id
func NewCharacterBuilder(id string) *CharacterBuilder {
	return &CharacterBuilder{c: domain.Character{ID: id, NameKey: id}}
}

func (b *CharacterBuilder) WithNameKey(key string) *CharacterBuilder {
	b.c.NameKey = key
	return b
}

func (b *CharacterBuilder) WithNameFr(name string) *CharacterBuilder {
	b.c.NameFr = name
	return b
}

func (b *CharacterBuilder) WithNameEn(name string) *CharacterBuilder {
	b.c.NameEn = name
	return b
}

func (b *CharacterBuilder) WithPortrait(url string) *CharacterBuilder {
	b.c.PortraitURL = url
	return b
}

func (b *CharacterBuilder) Build() domain.Character {
	return b.c
}

// RosterBuilder creates one player's roster in the per-player shape
type RosterBuilder struct {
	player string
	chars  map[string]interface{}
	iso    map[string]interface{}
}

func NewRosterBuilder(player string) *RosterBuilder {
	return &RosterBuilder{
		player: player,
		chars:  make(map[string]interface{}),
		iso:    make(map[string]interface{}),
	}
}

// WithPower adds a power-only entry, as older snapshots carry
func (b *RosterBuilder) WithPower(charKey string, power int64) *RosterBuilder {
	b.chars[charKey] = power
	return b
}

// WithChar adds a full progression entry
func (b *RosterBuilder) WithChar(charKey string, power int64, level, gear, isoMax int) *RosterBuilder {
	b.chars[charKey] = map[string]interface{}{
		"power":  power,
		"level":  level,
		"gear":   gear,
		"isoMax": isoMax,
	}
	return b
}

// WithMaxed adds an entry meeting every default threshold
func (b *RosterBuilder) WithMaxed(charKey string, power int64) *RosterBuilder {
	return b.WithChar(charKey, power, 100, 19, 13)
}

func (b *RosterBuilder) WithIso(charKey, class, color string) *RosterBuilder {
	b.iso[charKey] = map[string]interface{}{"isoClass": class, "isoColor": color}
	return b
}

func (b *RosterBuilder) raw() map[string]interface{} {
	out := map[string]interface{}{"player": b.player, "chars": b.chars}
	if len(b.iso) > 0 {
		out["iso"] = b.iso
	}
	return out
}

// Dataset is a full set of source documents, written in the shapes the
// spreadsheet scrapers produce
type Dataset struct {
	teams      []map[string]interface{}
	characters []map[string]interface{}
	players    []map[string]interface{}
	rosters    []map[string]interface{}
	isoReco    []map[string]interface{}
	isoIcons   map[string]map[string]string
}

func NewDataset() *Dataset {
	return &Dataset{isoIcons: make(map[string]map[string]string)}
}

func (d *Dataset) WithTeam(mode, name string, characters ...string) *Dataset {
	d.teams = append(d.teams, map[string]interface{}{"team": name, "mode": mode, "characters": characters})
	return d
}

func (d *Dataset) WithCharacter(c domain.Character) *Dataset {
	d.characters = append(d.characters, map[string]interface{}{
		"id":          c.ID,
		"nameKey":     c.NameKey,
		"nameFr":      c.NameFr,
		"nameEn":      c.NameEn,
		"portraitUrl": c.PortraitURL,
	})
	return d
}

func (d *Dataset) WithPlayer(name, alliance string) *Dataset {
	d.players = append(d.players, map[string]interface{}{"player": name, "alliance": alliance})
	return d
}

func (d *Dataset) WithRoster(b *RosterBuilder) *Dataset {
	d.rosters = append(d.rosters, b.raw())
	return d
}

func (d *Dataset) WithIsoReco(character, class, color string) *Dataset {
	d.isoReco = append(d.isoReco, map[string]interface{}{
		"character":       character,
		"ISO-reco-class":  class,
		"ISO-reco-matrix": color,
	})
	return d
}

func (d *Dataset) WithIsoIcon(class, color, url string) *Dataset {
	if d.isoIcons[class] == nil {
		d.isoIcons[class] = make(map[string]string)
	}
	d.isoIcons[class][color] = url
	return d
}

// Documents encodes the dataset under the given file names
func (d *Dataset) Documents(t *testing.T, files repository.Files) map[string][]byte {
	t.Helper()

	docs := map[string]interface{}{
		files.Teams:      orEmpty(d.teams),
		files.Characters: orEmpty(d.characters),
		files.Players:    orEmpty(d.players),
		files.Rosters:    orEmpty(d.rosters),
		files.IsoReco:    orEmpty(d.isoReco),
		files.IsoIcons:   d.isoIcons,
	}

	out := make(map[string][]byte, len(docs))
	for name, v := range docs {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to encode %s: %v", name, err)
		}
		out[name] = data
	}
	return out
}

func orEmpty(v []map[string]interface{}) []map[string]interface{} {
	if v == nil {
		return []map[string]interface{}{}
	}
	return v
}

// DefaultDataset is a small alliance: two arena teams, one raid team and
// players in every alliance plus one outside the vocabulary.
//
// Ranking Arena/Alpha over the recognized alliances gives
// Bob (1100), Ann (300), Dan (0).
func DefaultDataset() *Dataset {
	return NewDataset().
		WithCharacter(NewCharacterBuilder("IronFist").WithNameKey("Iron Fist").WithNameFr("Poing d'acier").
			WithPortrait("https://cdn.example/portraits/IronFist.png").Build()).
		WithCharacter(NewCharacterBuilder("SpiderMan").WithNameKey("Spider-Man").WithNameFr("Spider-Man").
			WithPortrait("https://cdn.example/portraits/SpiderMan.png").Build()).
		WithCharacter(NewCharacterBuilder("Hulk").WithNameFr("Hulk").Build()).
		WithCharacter(NewCharacterBuilder("Thor").WithNameFr("Thor").Build()).
		WithTeam("Arena", "Alpha", "IronFist", "SpiderMan").
		WithTeam("Arena", "Beta", "Hulk", "Thor", "Poing d'acier").
		WithTeam("Raid", "Gamma", "Thor").
		WithPlayer("Ann", "Zeus").
		WithPlayer("Bob", "Dionysos").
		WithPlayer("Cid", "Hades").
		WithPlayer("Dan", "Poséidon").
		WithRoster(NewRosterBuilder("Ann").
			WithMaxed("ironfist", 100).
			WithMaxed("spiderman", 200).
			WithIso("ironfist", "striker", "blue")).
		WithRoster(NewRosterBuilder("Bob").
			WithChar("ironfist", 500, 50, 19, 13).
			WithPower("spiderman", 600).
			WithMaxed("hulk", 900)).
		WithRoster(NewRosterBuilder("Cid").
			WithMaxed("ironfist", 5000)).
		WithIsoReco("IronFist", "striker", "blue").
		WithIsoReco("Spider-Man", "raider", "").
		WithIsoIcon("striker", "blue", "https://cdn.example/iso/striker-blue.png").
		WithIsoIcon("raider", "green", "https://cdn.example/iso/raider-green.png")
}
