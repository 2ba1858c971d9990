package domain

import "errors"

// Source errors
var (
	ErrSourceUnavailable = errors.New("data source unavailable")
	ErrMalformedSource   = errors.New("data source is not valid JSON")
)

// Snapshot errors
var (
	ErrNoSnapshot   = errors.New("no data snapshot loaded yet")
	ErrStaleRefresh = errors.New("refresh superseded by a newer one")
)

// Lookup errors
var (
	ErrTeamNotFound = errors.New("team not found")
	ErrUnknownMode  = errors.New("unknown game mode")
)
