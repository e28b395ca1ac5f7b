package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wolfeidau/valuesim/internal/captable"
	"github.com/wolfeidau/valuesim/internal/logger"
	"github.com/wolfeidau/valuesim/internal/models"
	"github.com/wolfeidau/valuesim/internal/store"
	"github.com/wolfeidau/valuesim/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// badRequestError marks client input that could not be parsed.
type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

func badRequest(format string, args ...any) error {
	return &badRequestError{err: fmt.Errorf(format, args...)}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err onto a status code and JSON error body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *models.ValidationError
		badReqErr     *badRequestError
	)

	switch {
	case errors.As(err, &validationErr):
		telemetry.GetMetrics().ValidationFailuresTotal.Add(r.Context(), 1)
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Details: validationErr.Messages})
	case errors.As(err, &badReqErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: badReqErr.Error()})
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrInvalidReference):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, store.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, captable.ErrNoShares):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest("invalid request body: %v", err)
	}
	return nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, badRequest("invalid id %q", r.PathValue("id"))
	}
	return id, nil
}

func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &logger.StatusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		if rec.Status == 0 {
			rec.Status = http.StatusOK
		}
		attrs := metric.WithAttributes(
			attribute.String("method", r.Method),
			attribute.String("route", r.Pattern),
			attribute.Int("status", rec.Status),
		)
		m := telemetry.GetMetrics()
		m.HTTPRequestsTotal.Add(r.Context(), 1, attrs)
		m.HTTPRequestDuration.Record(r.Context(), float64(time.Since(started).Milliseconds()), attrs)
	})
}
