package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dom/alliance-dashboard/internal/domain"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func handlerLog() *zerolog.Logger {
	l := log.With().Str("module", "api").Logger()
	return &l
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to HTTP statuses and logs server-side ones.
func writeError(w http.ResponseWriter, op string, err error) {
	status, message := http.StatusInternalServerError, "Internal error"
	switch {
	case errors.Is(err, domain.ErrNoSnapshot):
		status, message = http.StatusServiceUnavailable, "No data loaded yet"
	case errors.Is(err, domain.ErrTeamNotFound):
		status, message = http.StatusNotFound, "Team not found"
	case errors.Is(err, domain.ErrUnknownMode):
		status, message = http.StatusNotFound, "Unknown game mode"
	case errors.Is(err, domain.ErrStaleRefresh):
		status, message = http.StatusConflict, "Refresh superseded by a newer one"
	case errors.Is(err, domain.ErrSourceUnavailable), errors.Is(err, domain.ErrMalformedSource):
		status, message = http.StatusBadGateway, "Failed to load data: "+err.Error()
	}

	logger := handlerLog()
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(err).Str("op", op).Int("status", status).Msgf("ERROR [%s]", op)

	http.Error(w, message, status)
}
