package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/dom/alliance-dashboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newClient(t *testing.T) (*APIClient, *testutil.TestServer) {
	t.Helper()
	ts := testutil.NewTestServer(t, testutil.DefaultDataset())
	return NewAPIClient(ts.BaseURL()), ts
}

func TestAPIClient_Rank(t *testing.T) {
	client, _ := newClient(t)

	ranking, err := client.Rank("Arena", "Alpha", nil)
	require.NoError(t, err)
	require.Len(t, ranking.Rows, 3)
	assert.Equal(t, "Bob", ranking.Rows[0].Player)
	assert.Equal(t, int64(1100), ranking.Rows[0].TotalPower)
	assert.Equal(t, 1, ranking.Rows[0].Rank)
	assert.Equal(t, domain.SlotPartial, ranking.Rows[0].Slots[0].Status)

	ranking, err = client.Rank("Arena", "Alpha", []string{"Zeus"})
	require.NoError(t, err)
	require.Len(t, ranking.Rows, 1)
	assert.Equal(t, "Ann", ranking.Rows[0].Player)

	_, err = client.Rank("Arena", "Omega", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestAPIClient_Resolve(t *testing.T) {
	client, _ := newClient(t)

	match, err := client.Resolve("Poing d'acier")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "IronFist", match.Character.ID)

	match, err = client.Resolve("Galactus")
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestPrintRanking(t *testing.T) {
	client, _ := newClient(t)

	ranking, err := client.Rank("Arena", "Alpha", nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printRanking(&buf, ranking))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Arena / Alpha (generation 1)", lines[0])
	assert.Contains(t, lines[1], "Puissance")
	assert.Contains(t, lines[2], "Bob")
	assert.Contains(t, lines[2], "1.100")
	assert.Contains(t, lines[2], "500~")
	assert.Contains(t, lines[4], "Dan")
	assert.Contains(t, lines[4], "0!")
}

func TestStatusAndRefresh(t *testing.T) {
	client, _ := newClient(t)

	var buf bytes.Buffer
	require.NoError(t, statusCmd(client, &buf))
	assert.Contains(t, buf.String(), "generation 1, latest 1")
	assert.Contains(t, buf.String(), "Players:    4")

	buf.Reset()
	require.NoError(t, refreshCmd(client, &buf))
	assert.Contains(t, buf.String(), "generation 2, latest 2")
}

func TestRefreshFailure(t *testing.T) {
	client, ts := newClient(t)
	ts.Source.Remove(ts.Config.Files.Rosters)

	var buf bytes.Buffer
	err := refreshCmd(client, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Empty(t, buf.String())
}

func TestIsoCmd(t *testing.T) {
	client, _ := newClient(t)

	var buf bytes.Buffer
	require.NoError(t, isoCmd(client, []string{"--mode=Arena", "--team=Alpha", "--player=Ann"}, &buf))
	out := buf.String()
	assert.Contains(t, out, "Arena / Alpha - Ann")
	assert.Contains(t, out, "striker/blue")
	assert.Contains(t, out, "missing")

	err := isoCmd(client, []string{"--mode=Arena"}, &buf)
	assert.EqualError(t, err, "--mode and --team are required")
}

func TestTeamsAndAlliances(t *testing.T) {
	client, _ := newClient(t)

	var buf bytes.Buffer
	require.NoError(t, teamsCmd(client, nil, &buf))
	assert.Equal(t, "Arena\nRaid\n", buf.String())

	buf.Reset()
	require.NoError(t, teamsCmd(client, []string{"--mode=Raid"}, &buf))
	assert.Equal(t, "Gamma: Thor\n", buf.String())

	buf.Reset()
	require.NoError(t, alliancesCmd(client, &buf))
	assert.Contains(t, buf.String(), "Hades")
	assert.Contains(t, buf.String(), "(unrecognized)")
}

func TestExportCmd(t *testing.T) {
	client, _ := newClient(t)
	path := filepath.Join(t.TempDir(), "alpha.xlsx")

	var buf bytes.Buffer
	require.NoError(t, exportCmd(client, []string{"--mode=Arena", "--team=Alpha", "--out=" + path}, &buf))
	assert.Equal(t, "Wrote "+path+"\n", buf.String())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	player, err := f.GetCellValue("Classement", "C2")
	require.NoError(t, err)
	assert.Equal(t, "Bob", player)

	missing := filepath.Join(t.TempDir(), "omega.xlsx")
	err = exportCmd(client, []string{"--mode=Arena", "--team=Omega", "--out=" + missing}, &buf)
	require.Error(t, err)
	_, statErr := os.Stat(missing)
	assert.True(t, os.IsNotExist(statErr))
}
