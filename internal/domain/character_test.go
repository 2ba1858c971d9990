package domain_test

import (
	"testing"

	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCharacter_PortraitStem(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "empty", url: "", want: ""},
		{name: "png", url: "https://cdn.example.com/portraits/Portrait_IronFist.png", want: "Portrait_IronFist"},
		{name: "query string", url: "https://cdn.example.com/p/IronFist.png?v=3", want: "IronFist"},
		{name: "no extension", url: "https://cdn.example.com/p/IronFist", want: "IronFist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := domain.Character{PortraitURL: tt.url}
			assert.Equal(t, tt.want, c.PortraitStem())
		})
	}
}

func TestCharacter_Aliases(t *testing.T) {
	c := domain.Character{
		ID:          "IronFist",
		NameKey:     "ID_IRONFIST",
		NameFr:      "Poing d'acier",
		PortraitURL: "https://cdn.example.com/Portrait_IronFist.png",
	}

	assert.Equal(t, []string{"IronFist", "ID_IRONFIST", "Poing d'acier", "Portrait_IronFist"}, c.Aliases())
	assert.Equal(t, "Poing d'acier", c.DisplayName())
}

func TestThresholds_Meets(t *testing.T) {
	th := domain.DefaultThresholds()

	assert.True(t, th.Meets(domain.Progress{Level: 100, Gear: 19, IsoMax: 13}))
	assert.False(t, th.Meets(domain.Progress{Level: 50, Gear: 19, IsoMax: 13}))
	assert.False(t, th.Meets(domain.Progress{Level: 100, Gear: 18, IsoMax: 13}))
	assert.False(t, th.Meets(domain.Progress{Level: 100, Gear: 19, IsoMax: 12}))
}

func TestSlotStatus_Color(t *testing.T) {
	assert.Equal(t, "green", domain.SlotOK.Color())
	assert.Equal(t, "orange", domain.SlotPartial.Color())
	assert.Equal(t, "red", domain.SlotAbsent.Color())
	assert.Equal(t, "grey", domain.SlotEmpty.Color())
}
