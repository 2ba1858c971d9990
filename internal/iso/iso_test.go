package iso_test

import (
	"testing"

	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/dom/alliance-dashboard/internal/iso"
	"github.com/dom/alliance-dashboard/internal/resolver"
	"github.com/dom/alliance-dashboard/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name   string
		reco   iso.State
		actual iso.State
		want   domain.IsoBadge
	}{
		{name: "no reco", actual: iso.State{Class: "striker"}, want: domain.IsoMissing},
		{name: "no player iso", reco: iso.State{Class: "striker"}, want: domain.IsoMissing},
		{name: "same class and color", reco: iso.State{Class: "striker", Color: "blue"}, actual: iso.State{Class: "Striker", Color: "bleu"}, want: domain.IsoMatch},
		{name: "empty color is green", reco: iso.State{Class: "healer", Color: "green"}, actual: iso.State{Class: "healer"}, want: domain.IsoMatch},
		{name: "color differs", reco: iso.State{Class: "healer", Color: "purple"}, actual: iso.State{Class: "healer", Color: "green"}, want: domain.IsoMismatch},
		{name: "class differs", reco: iso.State{Class: "healer"}, actual: iso.State{Class: "raider"}, want: domain.IsoMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, iso.Compare(tt.reco, tt.actual))
		})
	}
}

func TestBuildRecoMap(t *testing.T) {
	res := resolver.New([]domain.Character{
		{ID: "ShieldSupport_H", NameKey: "Shield Medic", NameFr: "Médecin du SHIELD"},
	}, resolver.Options{})

	m := iso.BuildRecoMap([]domain.IsoReco{
		{Character: "Médecin du SHIELD", IsoClass: " Healer ", IsoColor: ""},
		{Character: "Unknown Hero", IsoClass: "raider", IsoColor: "violet"},
		{Character: "  ", IsoClass: "raider"},
	}, res)

	require.Len(t, m, 2)
	assert.Equal(t, "healer", m["shieldsupporth"].IsoClass)
	assert.Equal(t, "green", m["shieldsupporth"].IsoColor)
	assert.Equal(t, "purple", m["unknownhero"].IsoColor)
}

func TestTeamView(t *testing.T) {
	res := resolver.New([]domain.Character{
		{ID: "IronFist", NameFr: "Poing d'acier", PortraitURL: "https://cdn/ironfist.png"},
		{ID: "Hulk"},
	}, resolver.Options{})
	recos := iso.BuildRecoMap([]domain.IsoReco{
		{Character: "IronFist", IsoClass: "striker", IsoColor: "blue"},
		{Character: "Hulk", IsoClass: "fortifier", IsoColor: "purple"},
	}, res)
	idx := roster.BuildIndex([]domain.RosterRow{
		{Player: "Ann", Character: "ironfist", Power: 10, IsoClass: "striker", IsoColor: "blue"},
		{Player: "Ann", Character: "hulk", Power: 10, IsoClass: "fortifier"},
	})
	icons := domain.IsoIcons{"striker": {"blue": "https://cdn/striker-blue.png"}}
	team := domain.Team{Name: "Alpha", Mode: "Arena", Characters: []string{"Poing d'acier", "Hulk", "Thor", ""}}

	v := iso.TeamView(team, "Ann", iso.Sources{Resolver: res, Index: idx, Recos: recos, Icons: icons})

	require.Len(t, v.Slots, 3)
	assert.Equal(t, "Ann", v.Player)

	ironfist := v.Slots[0]
	assert.Equal(t, "IronFist", ironfist.CharacterID)
	assert.Equal(t, "https://cdn/ironfist.png", ironfist.PortraitURL)
	assert.Equal(t, "https://cdn/striker-blue.png", ironfist.Reco.IconURL)
	assert.Equal(t, "https://cdn/striker-blue.png", ironfist.Player.IconURL)
	assert.Equal(t, domain.IsoMatch, ironfist.Badge)

	hulk := v.Slots[1]
	assert.Equal(t, "green", hulk.Player.Color)
	assert.Empty(t, hulk.Player.IconURL)
	assert.Equal(t, domain.IsoMismatch, hulk.Badge)

	assert.Equal(t, domain.IsoMissing, v.Slots[2].Badge)
}

func TestTeamView_RecommendationsOnly(t *testing.T) {
	recos := iso.BuildRecoMap([]domain.IsoReco{{Character: "Hulk", IsoClass: "raider"}}, nil)

	v := iso.TeamView(domain.Team{Name: "Solo", Characters: []string{"Hulk"}}, "", iso.Sources{Recos: recos})

	require.Len(t, v.Slots, 1)
	assert.Equal(t, "raider", v.Slots[0].Reco.Class)
	assert.Equal(t, domain.IsoMissing, v.Slots[0].Badge)
}
