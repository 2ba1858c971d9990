package service_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dom/alliance-dashboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_RankingXLSX(t *testing.T) {
	ts := testutil.NewTestServer(t, testutil.DefaultDataset())

	result, err := ts.Services.Dashboard.Rank("Arena", "Alpha", nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ts.Services.Export.RankingXLSX(result, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Classement", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"Rang", "Alliance", "Joueur", "Puissance", "IronFist", "SpiderMan"}, rows[0][:6])
	assert.Equal(t, []string{"1", "🍇 Dionysos", "Bob", "1100", "500", "600"}, rows[1][:6])
	assert.Equal(t, "Ann", rows[2][2])
	assert.Equal(t, "Dan", rows[3][2])

	okStyle, err := f.GetCellStyle("Classement", "E3")
	require.NoError(t, err)
	partialStyle, err := f.GetCellStyle("Classement", "E2")
	require.NoError(t, err)
	absentStyle, err := f.GetCellStyle("Classement", "E4")
	require.NoError(t, err)
	emptyStyle, err := f.GetCellStyle("Classement", "G2")
	require.NoError(t, err)

	assert.NotEqual(t, okStyle, partialStyle)
	assert.NotEqual(t, partialStyle, absentStyle)
	assert.NotEqual(t, absentStyle, emptyStyle)

	for _, tt := range []struct {
		badge string
		style int
		rgb   string
	}{
		{badge: "green", style: okStyle, rgb: "C6EFCE"},
		{badge: "orange", style: partialStyle, rgb: "FFD8A8"},
		{badge: "red", style: absentStyle, rgb: "FFC7CE"},
		{badge: "grey", style: emptyStyle, rgb: "E7E6E6"},
	} {
		st, err := f.GetStyle(tt.style)
		require.NoError(t, err, tt.badge)
		require.NotEmpty(t, st.Fill.Color, tt.badge)
		assert.True(t, strings.HasSuffix(strings.ToUpper(st.Fill.Color[0]), tt.rgb), "%s fill is %v", tt.badge, st.Fill.Color)
	}
}
