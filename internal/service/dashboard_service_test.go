package service_test

import (
	"context"
	"testing"

	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/dom/alliance-dashboard/internal/ranking"
	"github.com/dom/alliance-dashboard/internal/testutil"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_NoSnapshot(t *testing.T) {
	ts := testutil.NewTestServer(t, nil)
	dashboard := ts.Services.Dashboard

	_, err := dashboard.Status()
	assert.ErrorIs(t, err, domain.ErrNoSnapshot)

	_, err = dashboard.Modes()
	assert.ErrorIs(t, err, domain.ErrNoSnapshot)

	_, err = dashboard.Rank("Arena", "Alpha", nil)
	assert.ErrorIs(t, err, domain.ErrNoSnapshot)
}

func TestDashboardService_Catalog(t *testing.T) {
	dashboard := testutil.NewTestServer(t, testutil.DefaultDataset()).Services.Dashboard

	modes, err := dashboard.Modes()
	require.NoError(t, err)
	assert.Equal(t, []string{"Arena", "Raid"}, modes)

	teams, err := dashboard.Teams("Arena")
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Alpha", teams[0].Name)
	assert.Equal(t, "Beta", teams[1].Name)

	_, err = dashboard.Teams("arena")
	assert.ErrorIs(t, err, domain.ErrUnknownMode)
}

func TestDashboardService_Alliances(t *testing.T) {
	dashboard := testutil.NewTestServer(t, testutil.DefaultDataset()).Services.Dashboard

	alliances, err := dashboard.Alliances()
	require.NoError(t, err)

	var names []string
	for _, a := range alliances {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"Zeus", "Dionysos", "Poséidon", "Hades"}, names)
	assert.Equal(t, "⚡", alliances[0].Emoji)
	assert.True(t, alliances[0].Recognized)
	assert.Equal(t, "•", alliances[3].Emoji)
	assert.False(t, alliances[3].Recognized)

	players, err := dashboard.Players("poseidon")
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Dan", players[0].Name)

	players, err = dashboard.Players("Nobody")
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestDashboardService_Rank(t *testing.T) {
	dashboard := testutil.NewTestServer(t, testutil.DefaultDataset()).Services.Dashboard

	tests := []struct {
		name      string
		team      string
		alliances []string
		players   []string
		totals    []int64
	}{
		{
			name:    "recognized alliances only by default",
			team:    "Alpha",
			players: []string{"Bob", "Ann", "Dan"},
			totals:  []int64{1100, 300, 0},
		},
		{
			name:      "single alliance",
			team:      "Alpha",
			alliances: []string{"Zeus"},
			players:   []string{"Ann"},
			totals:    []int64{300},
		},
		{
			name:    "slot references resolve through aliases",
			team:    "Beta",
			players: []string{"Bob", "Ann", "Dan"},
			totals:  []int64{1400, 100, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := dashboard.Rank("Arena", tt.team, tt.alliances)
			require.NoError(t, err)

			got := make([]ranking.Row, len(result.Rows))
			for i, r := range result.Rows {
				got[i] = r.Row
				assert.Equal(t, i+1, r.Rank)
			}
			testutil.AssertRankingOrder(t, got, tt.players, tt.totals)
		})
	}
}

func TestDashboardService_RankStatuses(t *testing.T) {
	dashboard := testutil.NewTestServer(t, testutil.DefaultDataset()).Services.Dashboard

	result, err := dashboard.Rank("Arena", "Alpha", nil)
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)

	testutil.AssertSlotStatuses(t, result.Rows[0].Row,
		domain.SlotPartial, domain.SlotPartial, domain.SlotEmpty, domain.SlotEmpty, domain.SlotEmpty)
	testutil.AssertSlotStatuses(t, result.Rows[1].Row,
		domain.SlotOK, domain.SlotOK, domain.SlotEmpty, domain.SlotEmpty, domain.SlotEmpty)
	testutil.AssertSlotStatuses(t, result.Rows[2].Row,
		domain.SlotAbsent, domain.SlotAbsent, domain.SlotEmpty, domain.SlotEmpty, domain.SlotEmpty)

	assert.Equal(t, "🍇", result.Rows[0].AllianceEmoji)
	assert.Equal(t, "https://cdn.example/portraits/IronFist.png", result.Rows[0].Slots[0].PortraitURL)
}

func TestDashboardService_RankIncludesUnrecognizedWhenConfigured(t *testing.T) {
	cfg := testutil.TestConfig()
	cfg.Rules.IncludeUnrecognizedAlliances = true
	dashboard := testutil.NewTestServerWithConfig(t, testutil.DefaultDataset(), cfg).Services.Dashboard

	result, err := dashboard.Rank("Arena", "Alpha", nil)
	require.NoError(t, err)
	require.Len(t, result.Rows, 4)
	assert.Equal(t, "Cid", result.Rows[0].Player)
	assert.Equal(t, int64(5000), result.Rows[0].TotalPower)
}

func TestDashboardService_RankUnknownTeam(t *testing.T) {
	dashboard := testutil.NewTestServer(t, testutil.DefaultDataset()).Services.Dashboard

	_, err := dashboard.Rank("Arena", "Gamma", nil)
	assert.ErrorIs(t, err, domain.ErrTeamNotFound)
}

func TestDashboardService_ResolveCharacter(t *testing.T) {
	dashboard := testutil.NewTestServer(t, testutil.DefaultDataset()).Services.Dashboard

	tests := []struct {
		name       string
		query      string
		wantID     string
		confidence domain.Confidence
		wantKeys   []string
	}{
		{name: "french name", query: "Poing d'acier", wantID: "IronFist", confidence: domain.ConfidenceExact, wantKeys: []string{"ironfist", "poingdacier"}},
		{name: "name key", query: "spider-man", wantID: "SpiderMan", confidence: domain.ConfidenceExact, wantKeys: []string{"spiderman"}},
		{name: "partial name joins on its own text only", query: "Spider", wantID: "SpiderMan", confidence: domain.ConfidenceFuzzy, wantKeys: []string{"spider"}},
		{name: "unknown", query: "Galactus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := dashboard.ResolveCharacter(tt.query)
			require.NoError(t, err)
			if tt.wantID == "" {
				assert.Nil(t, match)
				return
			}
			require.NotNil(t, match)
			assert.Equal(t, tt.wantID, match.Character.ID)
			assert.Equal(t, tt.confidence, match.Confidence)
			assert.Equal(t, tt.wantKeys, match.RosterKeys)
		})
	}
}

func TestDashboardService_IsoView(t *testing.T) {
	dashboard := testutil.NewTestServer(t, testutil.DefaultDataset()).Services.Dashboard

	view, err := dashboard.IsoView("Arena", "Alpha", "Ann")
	require.NoError(t, err)
	require.Len(t, view.Slots, 2)

	assert.Equal(t, domain.IsoMatch, view.Slots[0].Badge)
	assert.Equal(t, "https://cdn.example/iso/striker-blue.png", view.Slots[0].Player.IconURL)

	assert.Equal(t, "raider", view.Slots[1].Reco.Class)
	assert.Equal(t, "green", view.Slots[1].Reco.Color)
	assert.Equal(t, "https://cdn.example/iso/raider-green.png", view.Slots[1].Reco.IconURL)
	assert.Equal(t, domain.IsoMissing, view.Slots[1].Badge)
}

func TestDashboardService_RefreshFailureKeepsSnapshot(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.DefaultDataset())
	dashboard := ts.Services.Dashboard

	before, err := dashboard.Status()
	require.NoError(t, err)

	ts.Source.Remove(ts.Config.Files.Rosters)
	_, err = dashboard.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSourceUnavailable))

	after, err := dashboard.Status()
	require.NoError(t, err)
	assert.Equal(t, before.SnapshotID, after.SnapshotID)
	assert.Equal(t, uint64(2), after.LatestGeneration)

	ts.Source.SetAll(testutil.DefaultDataset().Documents(t, ts.Config.Files))
	status, err := dashboard.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(3), status.Generation)
}
