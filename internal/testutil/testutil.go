package testutil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dom/alliance-dashboard/internal/api"
	"github.com/dom/alliance-dashboard/internal/config"
	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/dom/alliance-dashboard/internal/repository"
	"github.com/dom/alliance-dashboard/internal/resolver"
	"github.com/dom/alliance-dashboard/internal/service"
	"github.com/dom/alliance-dashboard/internal/snapshot"
	"github.com/dom/alliance-dashboard/internal/websocket"
	"github.com/pkg/errors"
)

// MemorySource serves documents from memory. Documents can be replaced,
// removed or held between calls.
type MemorySource struct {
	mu   sync.Mutex
	docs map[string][]byte
	gate chan struct{}
}

func NewMemorySource(docs map[string][]byte) *MemorySource {
	if docs == nil {
		docs = make(map[string][]byte)
	}
	return &MemorySource{docs: docs}
}

func (s *MemorySource) Fetch(ctx context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	gate := s.gate
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, errors.Wrapf(domain.ErrSourceUnavailable, "%s: %v", name, ctx.Err())
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.docs[name]
	if !ok {
		return nil, errors.Wrapf(domain.ErrSourceUnavailable, "%s -> HTTP 404", name)
	}
	return data, nil
}

// Set replaces a document
func (s *MemorySource) Set(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[name] = data
}

// SetAll replaces every document
func (s *MemorySource) SetAll(docs map[string][]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = docs
}

// Remove makes a document unavailable
func (s *MemorySource) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, name)
}

// Hold blocks every fetch started from now until the returned release is called
func (s *MemorySource) Hold() (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.gate = gate
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			if s.gate == gate {
				s.gate = nil
			}
			s.mu.Unlock()
			close(gate)
		})
	}
}

// NewDataServer serves documents over HTTP the way the static site does
func NewDataServer(t *testing.T, docs map[string][]byte) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, ok := docs[strings.TrimPrefix(r.URL.Path, "/")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:           "0",
		Environment:    "test",
		LogLevel:       "disabled",
		DataDir:        "testdata",
		Files:          repository.DefaultFiles(),
		RefreshOnStart: false,
		Rules:          config.DefaultRules(),
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server    *httptest.Server
	Source    *MemorySource
	Store     *snapshot.Store
	Refresher *snapshot.Refresher
	Services  *service.Services
	Hub       *websocket.Hub
	Config    *config.Config
}

// NewTestServer creates a complete test server. When ds is not nil its
// documents are loaded before the server starts.
func NewTestServer(t *testing.T, ds *Dataset) *TestServer {
	t.Helper()
	return NewTestServerWithConfig(t, ds, TestConfig())
}

func NewTestServerWithConfig(t *testing.T, ds *Dataset, cfg *config.Config) *TestServer {
	t.Helper()

	source := NewMemorySource(nil)
	if ds != nil {
		source.SetAll(ds.Documents(t, cfg.Files))
	}

	store := snapshot.NewStore()
	hub := websocket.NewHub(store)
	go hub.Run()

	loader := snapshot.NewLoader(source, cfg.Files, resolver.Options{Fuzzy: cfg.Rules.FuzzyMatching})
	refresher := snapshot.NewRefresher(store, loader, hub)
	services := service.NewServices(refresher, cfg)

	if ds != nil {
		if _, err := refresher.Refresh(context.Background()); err != nil {
			t.Fatalf("failed to load dataset: %v", err)
		}
	}

	server := httptest.NewServer(api.NewRouter(services, hub))

	ts := &TestServer{
		Server:    server,
		Source:    source,
		Store:     store,
		Refresher: refresher,
		Services:  services,
		Hub:       hub,
		Config:    cfg,
	}

	t.Cleanup(func() {
		server.Close()
		hub.Stop()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api/v1%s", ts.Server.URL, path)
}

// WebSocketURL returns the WebSocket URL
func (ts *TestServer) WebSocketURL() string {
	wsURL := "ws" + ts.Server.URL[4:] // Replace "http" with "ws"
	return wsURL + "/api/v1/ws"
}
