package catalog_test

import (
	"testing"

	"github.com/dom/alliance-dashboard/internal/catalog"
	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTeams() []domain.Team {
	return []domain.Team{
		{Name: "Zeta", Mode: "Raid", Characters: []string{"Storm"}},
		{Name: "Alpha", Mode: "Arena", Characters: []string{"IronFist", "SpiderMan"}},
		{Name: "Élite", Mode: "Arena", Characters: []string{"Thanos"}},
		{Name: "Beta", Mode: "Arena", Characters: []string{"Rogue"}},
		{Name: "Alpha", Mode: "Arena", Characters: []string{"Duplicate"}},
		{Name: "Loose", Mode: "", Characters: []string{"Wolverine"}},
		{Name: "Épique", Mode: "Événement", Characters: []string{"Hulk"}},
	}
}

func TestCatalog_ListModes(t *testing.T) {
	c := catalog.New(testTeams())

	// French collation puts "Événement" between Arena and Raid
	assert.Equal(t, []string{"Arena", "Événement", "Raid"}, c.ListModes())
}

func TestCatalog_ListTeams(t *testing.T) {
	c := catalog.New(testTeams())

	teams := c.ListTeams("Arena")
	require.Len(t, teams, 4)

	names := make([]string, len(teams))
	for i, tm := range teams {
		names[i] = tm.Name
	}
	assert.Equal(t, []string{"Alpha", "Alpha", "Beta", "Élite"}, names)

	assert.Empty(t, c.ListTeams("arena"), "mode lookup is case sensitive")
	assert.Len(t, c.ListTeams(""), 1)
}

func TestCatalog_Find(t *testing.T) {
	c := catalog.New(testTeams())

	tests := []struct {
		name    string
		mode    string
		team    string
		wantErr error
		want    []string
	}{
		{name: "exact", mode: "Arena", team: "Alpha", want: []string{"IronFist", "SpiderMan"}},
		{name: "first duplicate wins", mode: "Arena", team: " Alpha ", want: []string{"IronFist", "SpiderMan"}},
		{name: "wrong case", mode: "Arena", team: "alpha", wantErr: domain.ErrTeamNotFound},
		{name: "wrong mode", mode: "Raid", team: "Alpha", wantErr: domain.ErrTeamNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Find(tt.mode, tt.team)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Characters)
		})
	}
}

func TestCatalog_NilSafe(t *testing.T) {
	var c *catalog.Catalog
	assert.Empty(t, c.ListModes())
	assert.Empty(t, c.ListTeams("Arena"))
	assert.Equal(t, 0, c.Len())
	_, err := c.Find("Arena", "Alpha")
	assert.ErrorIs(t, err, domain.ErrTeamNotFound)
}
