package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/dom/alliance-dashboard/internal/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies error response with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	// Error responses are plain text in this API
	assert.Contains(t, string(body), expectedMessage, "error message mismatch")
}

// AssertRankingOrder verifies the players and totals of ranking rows, in order
func AssertRankingOrder(t *testing.T, rows []ranking.Row, players []string, totals []int64) {
	t.Helper()

	gotPlayers := make([]string, len(rows))
	gotTotals := make([]int64, len(rows))
	for i, r := range rows {
		gotPlayers[i] = r.Player
		gotTotals[i] = r.TotalPower
	}
	assert.Equal(t, players, gotPlayers, "unexpected ranking order")
	assert.Equal(t, totals, gotTotals, "unexpected ranking totals")
}

// AssertSlotStatuses verifies every slot status of a row
func AssertSlotStatuses(t *testing.T, row ranking.Row, expected ...domain.SlotStatus) {
	t.Helper()

	got := make([]domain.SlotStatus, len(row.Slots))
	for i, s := range row.Slots {
		got[i] = s.Status
	}
	assert.Equal(t, expected, got, "unexpected slot statuses for %s", row.Player)
}
