package static_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/dom/alliance-dashboard/internal/repository"
	"github.com/dom/alliance-dashboard/internal/repository/static"
	"github.com/dom/alliance-dashboard/internal/resolver"
	"github.com/dom/alliance-dashboard/internal/snapshot"
	"github.com/dom/alliance-dashboard/internal/testutil"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSource_Fetch(t *testing.T) {
	var gotQuery, gotCache, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("v")
		gotCache = r.Header.Get("Cache-Control")
		if r.URL.Path == "/data/missing.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`[{"team":"Alpha"}]`))
	}))
	defer srv.Close()

	src, err := static.NewHTTPSource(srv.URL+"/data", 5*time.Second)
	require.NoError(t, err)
	src.WithClock(func() time.Time { return time.UnixMilli(1700000000123) })

	t.Run("ok", func(t *testing.T) {
		body, err := src.Fetch(context.Background(), "teams.json")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"team":"Alpha"}]`, string(body))
		assert.Equal(t, "/data/teams.json", gotPath)
		assert.Equal(t, "1700000000123", gotQuery)
		assert.Equal(t, "no-store", gotCache)
	})

	t.Run("non-2xx is unavailable", func(t *testing.T) {
		_, err := src.Fetch(context.Background(), "missing.json")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrSourceUnavailable))
		assert.Contains(t, err.Error(), "HTTP 404")
	})

	t.Run("cancelled context is unavailable", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := src.Fetch(ctx, "teams.json")
		assert.True(t, errors.Is(err, domain.ErrSourceUnavailable))
	})
}

func TestNewHTTPSource_RejectsBadScheme(t *testing.T) {
	_, err := static.NewHTTPSource("ftp://example.com/data", time.Second)
	assert.Error(t, err)
}

func TestFileSource_Fetch(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "data")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "joueurs.json"), []byte(`[]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.json"), []byte(`{}`), 0o644))

	src := static.NewFileSource(dir)

	body, err := src.Fetch(context.Background(), "joueurs.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))

	_, err = src.Fetch(context.Background(), "rosters.json")
	assert.True(t, errors.Is(err, domain.ErrSourceUnavailable))

	_, err = src.Fetch(context.Background(), "../secret.json")
	assert.True(t, errors.Is(err, domain.ErrSourceUnavailable))
}

func TestHTTPSource_LoadsSnapshot(t *testing.T) {
	files := repository.DefaultFiles()
	docs := testutil.DefaultDataset().Documents(t, files)
	delete(docs, files.IsoIcons)
	srv := testutil.NewDataServer(t, docs)

	source, err := static.NewHTTPSource(srv.URL, 5*time.Second)
	require.NoError(t, err)

	snap, err := snapshot.NewLoader(source, files, resolver.Options{}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Counts.Teams)
	assert.Equal(t, 4, snap.Counts.Players)
	assert.Equal(t, 2, snap.Counts.IsoRecos)
	assert.Empty(t, snap.IsoIcons)
}
