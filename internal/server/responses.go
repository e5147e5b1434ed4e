package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/simonvc/ratedash/internal/fx"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func mapError(err error) int {
	switch {
	case errors.Is(err, fx.ErrNoRates), errors.Is(err, fx.ErrNoPreviousRates):
		return http.StatusNotFound
	case errors.Is(err, fx.ErrUnknownCurrency),
		errors.Is(err, fx.ErrInvalidPeriod),
		errors.Is(err, fx.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, fx.ErrZeroRate):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := mapError(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeError(w, status, err.Error())
}
