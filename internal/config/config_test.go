package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATA_BASE_URL", "")
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("RULES_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "teams.json", cfg.Files.Teams)
	assert.Equal(t, "joueurs.json", cfg.Files.Players)
	assert.Equal(t, time.Duration(0), cfg.FetchTimeout)
	assert.True(t, cfg.RefreshOnStart)
	assert.Equal(t, DefaultRules(), cfg.Rules)
	assert.False(t, cfg.Rules.IncludeUnrecognizedAlliances)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATA_BASE_URL", "https://example.com/data")
	t.Setenv("DATA_DIR", "")
	t.Setenv("FILE_ROSTERS", "rosters-v2.json")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "15")
	t.Setenv("REFRESH_ON_START", "false")
	t.Setenv("RULES_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/data", cfg.DataBaseURL)
	assert.Equal(t, "rosters-v2.json", cfg.Files.Rosters)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.False(t, cfg.RefreshOnStart)
}

func TestLoad_RequiresOneDataSource(t *testing.T) {
	t.Setenv("DATA_BASE_URL", "")
	t.Setenv("DATA_DIR", "")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DATA_BASE_URL", "https://example.com")
	t.Setenv("DATA_DIR", "/tmp")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadRules(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, r Rules)
		wantErr bool
	}{
		{
			name:    "partial thresholds keep other defaults",
			content: "thresholds:\n  minLevel: 90\n",
			check: func(t *testing.T, r Rules) {
				assert.Equal(t, domain.Thresholds{MinLevel: 90, MinGear: 19, MinIsoMax: 13}, r.Thresholds)
				assert.Equal(t, 5, r.TeamSlots)
				assert.True(t, r.FuzzyMatching)
			},
		},
		{
			name: "alliance policy and vocabulary",
			content: `includeUnrecognizedAlliances: true
fuzzyMatching: false
alliances:
  - name: Zeus
    emoji: "⚡"
  - name: Hermès
    emoji: "🪽"
`,
			check: func(t *testing.T, r Rules) {
				assert.True(t, r.IncludeUnrecognizedAlliances)
				assert.False(t, r.FuzzyMatching)
				require.Len(t, r.Alliances, 2)
				assert.Equal(t, "Hermès", r.Alliances[1].Name)
			},
		},
		{
			name:    "empty file is defaults",
			content: "",
			check: func(t *testing.T, r Rules) {
				assert.Equal(t, DefaultRules(), r)
			},
		},
		{name: "unknown key", content: "minLevel: 3\n", wantErr: true},
		{name: "non-positive slots", content: "teamSlots: 0\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "rules.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			rules, err := LoadRules(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, rules)
		})
	}
}

func TestLoadRules_ExampleFileMatchesDefaults(t *testing.T) {
	rules, err := LoadRules(filepath.Join("..", "..", "rules.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), rules)
}
