package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dom/alliance-dashboard/internal/alliance"
	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/dom/alliance-dashboard/internal/iso"
	"github.com/dom/alliance-dashboard/internal/ranking"
	"github.com/dom/alliance-dashboard/internal/snapshot"
)

type DashboardService struct {
	refresher           *snapshot.Refresher
	store               *snapshot.Store
	engine              *ranking.Engine
	vocab               *alliance.Vocabulary
	includeUnrecognized bool
}

type DashboardOptions struct {
	Thresholds          domain.Thresholds
	TeamSlots           int
	Alliances           []alliance.Alliance
	IncludeUnrecognized bool
}

func NewDashboardService(refresher *snapshot.Refresher, opts DashboardOptions) *DashboardService {
	return &DashboardService{
		refresher:           refresher,
		store:               refresher.Store(),
		engine:              &ranking.Engine{Thresholds: opts.Thresholds, Slots: opts.TeamSlots},
		vocab:               alliance.NewVocabulary(opts.Alliances),
		includeUnrecognized: opts.IncludeUnrecognized,
	}
}

// Status describes the live snapshot.
type Status struct {
	SnapshotID       string          `json:"snapshotId"`
	Generation       uint64          `json:"generation"`
	LatestGeneration uint64          `json:"latestGeneration"`
	LoadedAt         time.Time       `json:"loadedAt"`
	Counts           snapshot.Counts `json:"counts"`
}

func statusOf(snap *snapshot.Snapshot, latest uint64) *Status {
	return &Status{
		SnapshotID:       snap.ID.String(),
		Generation:       snap.Generation,
		LatestGeneration: latest,
		LoadedAt:         snap.LoadedAt,
		Counts:           snap.Counts,
	}
}

func (s *DashboardService) Refresh(ctx context.Context) (*Status, error) {
	snap, err := s.refresher.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return statusOf(snap, s.store.Latest()), nil
}

func (s *DashboardService) Status() (*Status, error) {
	snap, err := s.store.Get()
	if err != nil {
		return nil, err
	}
	return statusOf(snap, s.store.Latest()), nil
}

func (s *DashboardService) Modes() ([]string, error) {
	snap, err := s.store.Get()
	if err != nil {
		return nil, err
	}
	return snap.Catalog.ListModes(), nil
}

func (s *DashboardService) Teams(mode string) ([]domain.Team, error) {
	snap, err := s.store.Get()
	if err != nil {
		return nil, err
	}
	if !snap.Catalog.HasMode(mode) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMode, mode)
	}
	return snap.Catalog.ListTeams(mode), nil
}

// AllianceInfo is one alliance as offered for selection.
type AllianceInfo struct {
	Name       string `json:"name"`
	Emoji      string `json:"emoji"`
	Recognized bool   `json:"recognized"`
	Players    int    `json:"players"`
}

// Alliances lists the alliances present in the player list, vocabulary
// order first.
func (s *DashboardService) Alliances() ([]AllianceInfo, error) {
	snap, err := s.store.Get()
	if err != nil {
		return nil, err
	}

	groups := s.vocab.GroupPlayers(snap.Players)
	tags := make([]string, 0, len(groups))
	for name := range groups {
		tags = append(tags, name)
	}

	ordered := s.vocab.Order(tags)
	out := make([]AllianceInfo, 0, len(ordered))
	for _, name := range ordered {
		out = append(out, AllianceInfo{
			Name:       name,
			Emoji:      s.vocab.Emoji(name),
			Recognized: s.vocab.Recognized(name),
			Players:    len(groups[name]),
		})
	}
	return out, nil
}

// Players returns the members of an alliance sorted by name.
func (s *DashboardService) Players(allianceName string) ([]domain.Player, error) {
	snap, err := s.store.Get()
	if err != nil {
		return nil, err
	}
	players := s.vocab.GroupPlayers(snap.Players)[s.vocab.Canonical(allianceName)]
	if players == nil {
		players = []domain.Player{}
	}
	return players, nil
}

// CharacterMatch is a resolved character reference.
type CharacterMatch struct {
	Query      string            `json:"query"`
	Character  domain.Character  `json:"character"`
	Name       string            `json:"name"`
	Confidence domain.Confidence `json:"confidence"`
	RosterKeys []string          `json:"rosterKeys"`
}

// ResolveCharacter returns nil, nil when nothing matches.
func (s *DashboardService) ResolveCharacter(name string) (*CharacterMatch, error) {
	snap, err := s.store.Get()
	if err != nil {
		return nil, err
	}
	ref := snap.Resolver.Ref(name)
	c, confidence := ref.Character, domain.ConfidenceExact
	if c == nil {
		c, confidence = ref.Suggested, domain.ConfidenceFuzzy
	}
	if c == nil {
		return nil, nil
	}
	// A fuzzy candidate is shown for review; ranking joins on RosterKeys only.
	return &CharacterMatch{
		Query:      name,
		Character:  *c,
		Name:       c.DisplayName(),
		Confidence: confidence,
		RosterKeys: ref.Keys,
	}, nil
}

// RankedRow is a ranking row with its position and alliance badge.
type RankedRow struct {
	Rank          int    `json:"rank"`
	AllianceEmoji string `json:"allianceEmoji"`
	ranking.Row
}

// Ranking is the full result for one team.
type Ranking struct {
	Mode       string            `json:"mode"`
	Team       string            `json:"team"`
	Characters []string          `json:"characters"`
	Thresholds domain.Thresholds `json:"thresholds"`
	Generation uint64            `json:"generation"`
	Rows       []RankedRow       `json:"rows"`
}

// Rank ranks the players of the given alliances for a team. No alliances
// means every recognized alliance.
func (s *DashboardService) Rank(mode, team string, alliances []string) (*Ranking, error) {
	snap, err := s.store.Get()
	if err != nil {
		return nil, err
	}
	t, err := snap.Catalog.Find(mode, team)
	if err != nil {
		return nil, fmt.Errorf("%w: %q in mode %q", err, strings.TrimSpace(team), strings.TrimSpace(mode))
	}

	filter := alliance.NewFilter(s.vocab, alliances, s.includeUnrecognized)
	rows := s.engine.Rank(t, snap.Players, filter, snap.Index, snap.Resolver)

	out := &Ranking{
		Mode:       t.Mode,
		Team:       t.Name,
		Characters: t.Characters,
		Thresholds: s.engine.Thresholds,
		Generation: snap.Generation,
		Rows:       make([]RankedRow, len(rows)),
	}
	for i, r := range rows {
		out.Rows[i] = RankedRow{
			Rank:          i + 1,
			AllianceEmoji: s.vocab.Emoji(r.Alliance),
			Row:           r,
		}
	}
	return out, nil
}

// IsoView compares a player's ISO setup with the recommendation for each
// character of a team. An empty player yields recommendations only.
func (s *DashboardService) IsoView(mode, team, player string) (*iso.View, error) {
	snap, err := s.store.Get()
	if err != nil {
		return nil, err
	}
	t, err := snap.Catalog.Find(mode, team)
	if err != nil {
		return nil, fmt.Errorf("%w: %q in mode %q", err, strings.TrimSpace(team), strings.TrimSpace(mode))
	}
	v := iso.TeamView(t, player, snap.IsoSources())
	return &v, nil
}
