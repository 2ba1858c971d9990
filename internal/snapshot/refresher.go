package snapshot

import (
	"context"

	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/pkg/errors"
)

// Listener is told about every refresh outcome.
type Listener interface {
	SnapshotUpdated(snap *Snapshot)
	RefreshFailed(generation uint64, err error)
	RefreshDiscarded(generation uint64)
}

// SnapshotLoader produces fresh snapshots; *Loader in production.
type SnapshotLoader interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// Refresher runs Begin -> Load -> Commit against a Store.
type Refresher struct {
	store     *Store
	loader    SnapshotLoader
	listeners []Listener
}

func NewRefresher(store *Store, loader SnapshotLoader, listeners ...Listener) *Refresher {
	return &Refresher{store: store, loader: loader, listeners: listeners}
}

// Store returns the store the refresher commits to.
func (r *Refresher) Store() *Store {
	return r.store
}

// Refresh loads every source and publishes the result. On failure, or when
// a newer refresh started meanwhile, the current snapshot stays in place.
func (r *Refresher) Refresh(ctx context.Context) (*Snapshot, error) {
	gen := r.store.Begin()
	logger := snapshotLog().With().Uint64("generation", gen).Logger()
	logger.Info().Msg("Refresh started")

	snap, err := r.loader.Load(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Refresh failed, keeping previous snapshot")
		for _, l := range r.listeners {
			l.RefreshFailed(gen, err)
		}
		return nil, err
	}

	if err := r.store.Commit(gen, snap); err != nil {
		if errors.Is(err, domain.ErrStaleRefresh) {
			logger.Warn().Uint64("latest", r.store.Latest()).Msg("Refresh superseded, discarding result")
			for _, l := range r.listeners {
				l.RefreshDiscarded(gen)
			}
		}
		return nil, err
	}

	logger.Info().
		Str("snapshot_id", snap.ID.String()).
		Int("teams", snap.Counts.Teams).
		Int("characters", snap.Counts.Characters).
		Int("players", snap.Counts.Players).
		Int("roster_rows", snap.Counts.RosterRows).
		Msg("Snapshot published")
	for _, l := range r.listeners {
		l.SnapshotUpdated(snap)
	}
	return snap, nil
}
