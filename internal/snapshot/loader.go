package snapshot

import (
	"context"

	"github.com/dom/alliance-dashboard/internal/ingest"
	"github.com/dom/alliance-dashboard/internal/repository"
	"github.com/dom/alliance-dashboard/internal/resolver"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// snapshotLog is built per call so it follows log.Logger as configured at startup.
func snapshotLog() *zerolog.Logger {
	l := log.With().Str("module", "snapshot").Logger()
	return &l
}

// Loader fetches and decodes every source.
type Loader struct {
	source repository.Source
	files  repository.Files
	opts   resolver.Options
}

func NewLoader(source repository.Source, files repository.Files, opts resolver.Options) *Loader {
	return &Loader{source: source, files: files, opts: opts}
}

// Load fetches all sources in parallel. The first failing required source
// cancels the others and fails the load. ISO recommendations and icons are
// optional and fall back to empty.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	var d Data
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.Teams, err = required(gctx, l.source, l.files.Teams, ingest.Teams)
		return err
	})
	g.Go(func() (err error) {
		d.Characters, err = required(gctx, l.source, l.files.Characters, ingest.Characters)
		return err
	})
	g.Go(func() (err error) {
		d.Players, err = required(gctx, l.source, l.files.Players, ingest.Players)
		return err
	})
	g.Go(func() (err error) {
		d.Rosters, err = required(gctx, l.source, l.files.Rosters, ingest.Rosters)
		return err
	})
	g.Go(func() error {
		d.IsoRecos = optional(gctx, l.source, l.files.IsoReco, ingest.IsoRecos)
		return nil
	})
	g.Go(func() error {
		d.IsoIcons = optional(gctx, l.source, l.files.IsoIcons, ingest.IsoIcons)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return Build(d, l.opts), nil
}

func required[T any](ctx context.Context, src repository.Source, name string, parse func([]byte) (T, error)) (T, error) {
	var zero T
	data, err := src.Fetch(ctx, name)
	if err != nil {
		return zero, err
	}
	out, err := parse(data)
	if err != nil {
		return zero, errors.Wrap(err, "decode")
	}
	return out, nil
}

func optional[T any](ctx context.Context, src repository.Source, name string, parse func([]byte) (T, error)) T {
	var zero T
	if name == "" {
		return zero
	}
	out, err := required(ctx, src, name, parse)
	if err != nil {
		snapshotLog().Warn().Err(err).Str("source", name).Msg("Optional source unavailable, using empty data")
		return zero
	}
	return out
}
