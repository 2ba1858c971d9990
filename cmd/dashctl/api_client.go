package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dom/alliance-dashboard/internal/iso"
	"github.com/dom/alliance-dashboard/internal/service"
)

// APIClient handles HTTP communication with the dashboard server
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/") + "/api/v1",
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

type AllianceInfo = service.AllianceInfo

type Team struct {
	Team       string   `json:"team"`
	Mode       string   `json:"mode"`
	Characters []string `json:"characters"`
}

// Status returns the live snapshot summary
func (c *APIClient) Status() (*service.Status, error) {
	var status service.Status
	if err := c.getJSON("/snapshot", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Refresh reloads every data source on the server
func (c *APIClient) Refresh() (*service.Status, error) {
	resp, err := c.do(http.MethodPost, "/refresh", nil)
	if err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	var status service.Status
	if err := decode(resp, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *APIClient) Modes() ([]string, error) {
	var result struct {
		Modes []string `json:"modes"`
	}
	if err := c.getJSON("/modes", nil, &result); err != nil {
		return nil, err
	}
	return result.Modes, nil
}

func (c *APIClient) Teams(mode string) ([]Team, error) {
	var result struct {
		Teams []Team `json:"teams"`
	}
	if err := c.getJSON("/teams", url.Values{"mode": {mode}}, &result); err != nil {
		return nil, err
	}
	return result.Teams, nil
}

func (c *APIClient) Alliances() ([]AllianceInfo, error) {
	var result struct {
		Alliances []AllianceInfo `json:"alliances"`
	}
	if err := c.getJSON("/alliances", nil, &result); err != nil {
		return nil, err
	}
	return result.Alliances, nil
}

// Rank fetches the ranking of a team. An empty alliance list uses the
// server's configured filter.
func (c *APIClient) Rank(mode, team string, alliances []string) (*service.Ranking, error) {
	var ranking service.Ranking
	if err := c.getJSON("/rankings", rankingQuery(mode, team, alliances), &ranking); err != nil {
		return nil, err
	}
	return &ranking, nil
}

func (c *APIClient) Iso(mode, team, player string) (*iso.View, error) {
	q := url.Values{"mode": {mode}, "team": {team}}
	if player != "" {
		q.Set("player", player)
	}
	var view iso.View
	if err := c.getJSON("/iso", q, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// Resolve looks up a character reference. It returns nil when the server
// knows no such character.
func (c *APIClient) Resolve(name string) (*service.CharacterMatch, error) {
	resp, err := c.do(http.MethodGet, "/characters/resolve?"+url.Values{"name": {name}}.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("resolve request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	var match service.CharacterMatch
	if err := decode(resp, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

// Export streams the spreadsheet of a ranking into w
func (c *APIClient) Export(mode, team string, alliances []string, w io.Writer) error {
	resp, err := c.do(http.MethodGet, "/rankings/export.xlsx?"+rankingQuery(mode, team, alliances).Encode(), nil)
	if err != nil {
		return fmt.Errorf("export request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func rankingQuery(mode, team string, alliances []string) url.Values {
	q := url.Values{"mode": {mode}, "team": {team}}
	for _, a := range alliances {
		q.Add("alliance", a)
	}
	return q
}

func (c *APIClient) getJSON(path string, query url.Values, v interface{}) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	resp, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return fmt.Errorf("request %s failed: %w", path, err)
	}
	defer resp.Body.Close()
	return decode(resp, v)
}

func (c *APIClient) do(method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return c.httpClient.Do(req)
}

func decode(resp *http.Response, v interface{}) error {
	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
