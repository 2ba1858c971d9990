// Package snapshot holds the loaded data set as one immutable value and
// swaps it atomically on refresh.
package snapshot

import (
	"time"

	"github.com/dom/alliance-dashboard/internal/catalog"
	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/dom/alliance-dashboard/internal/iso"
	"github.com/dom/alliance-dashboard/internal/resolver"
	"github.com/dom/alliance-dashboard/internal/roster"
	"github.com/google/uuid"
)

// Counts summarizes what a snapshot was built from.
type Counts struct {
	Teams         int `json:"teams"`
	Characters    int `json:"characters"`
	Players       int `json:"players"`
	RosterRows    int `json:"rosterRows"`
	RosterPlayers int `json:"rosterPlayers"`
	IsoRecos      int `json:"isoRecos"`
}

// Snapshot is every source joined once. Nothing in it changes after Build.
type Snapshot struct {
	ID         uuid.UUID
	Generation uint64
	LoadedAt   time.Time

	Catalog  *catalog.Catalog
	Resolver *resolver.Resolver
	Index    *roster.Index
	Players  []domain.Player
	IsoReco  iso.RecoMap
	IsoIcons domain.IsoIcons
	Counts   Counts
}

// Data is the decoded content of every source.
type Data struct {
	Teams      []domain.Team
	Characters []domain.Character
	Players    []domain.Player
	Rosters    []domain.RosterRow
	IsoRecos   []domain.IsoReco
	IsoIcons   domain.IsoIcons
}

// Build joins decoded data into a snapshot. Generation is set on commit.
func Build(d Data, opts resolver.Options) *Snapshot {
	res := resolver.New(d.Characters, opts)
	idx := roster.BuildIndex(d.Rosters)
	icons := d.IsoIcons
	if icons == nil {
		icons = domain.IsoIcons{}
	}
	recos := iso.BuildRecoMap(d.IsoRecos, res)

	return &Snapshot{
		ID:       uuid.New(),
		LoadedAt: time.Now(),
		Catalog:  catalog.New(d.Teams),
		Resolver: res,
		Index:    idx,
		Players:  d.Players,
		IsoReco:  recos,
		IsoIcons: icons,
		Counts: Counts{
			Teams:         len(d.Teams),
			Characters:    res.Len(),
			Players:       len(d.Players),
			RosterRows:    idx.Rows(),
			RosterPlayers: idx.Len(),
			IsoRecos:      len(recos),
		},
	}
}

// IsoSources returns the lookups for an ISO team view.
func (s *Snapshot) IsoSources() iso.Sources {
	return iso.Sources{
		Resolver: s.Resolver,
		Index:    s.Index,
		Recos:    s.IsoReco,
		Icons:    s.IsoIcons,
	}
}
