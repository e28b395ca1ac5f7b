package server

import (
	"net/http"
	"time"

	"github.com/wolfeidau/valuesim/internal/models"
	"github.com/wolfeidau/valuesim/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

func (s *Server) listRounds(w http.ResponseWriter, r *http.Request) {
	companyID, err := s.companyFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rounds, err := s.stores.Rounds.ListByCompany(r.Context(), companyID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rounds)
}

// createRound accepts the application shape of a round. Rounds without an
// order number are appended after the company's existing rounds.
func (s *Server) createRound(w http.ResponseWriter, r *http.Request) {
	companyID, err := s.companyFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in models.FundingRoundInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if err := models.ValidateFundingRound(&in).Err(); err != nil {
		writeError(w, r, err)
		return
	}

	if in.OrderNumber == 0 {
		existing, err := s.stores.Rounds.ListByCompany(r.Context(), companyID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		in.OrderNumber = nextOrderNumber(existing)
	}

	round := in.ToRecord(companyID)
	if err := s.stores.Rounds.Create(r.Context(), round); err != nil {
		writeError(w, r, err)
		return
	}

	telemetry.GetMetrics().RoundsCreatedTotal.Add(r.Context(), 1,
		metric.WithAttributes(attribute.String("round_type", round.RoundType)))

	writeJSON(w, http.StatusCreated, round)
}

func (s *Server) updateRound(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in models.FundingRoundInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if err := models.ValidateFundingRound(&in).Err(); err != nil {
		writeError(w, r, err)
		return
	}

	existing, err := s.stores.Rounds.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	round := in.ToRecord(existing.CompanyID)
	round.ID = existing.ID
	round.Active = existing.Active
	round.CreatedAt = existing.CreatedAt
	round.UpdatedAt = time.Now().UTC()
	if in.OrderNumber == 0 {
		round.OrderNumber = existing.OrderNumber
	}

	if err := s.stores.Rounds.Update(r.Context(), round); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, round)
}

func (s *Server) deleteRound(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.stores.Rounds.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validateRound reports validation messages without storing anything.
func (s *Server) validateRound(w http.ResponseWriter, r *http.Request) {
	var in models.FundingRoundInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ValidateFundingRound(&in))
}

func nextOrderNumber(rounds []*models.FundingRound) int {
	next := 1
	for _, round := range rounds {
		if round.OrderNumber >= next {
			next = round.OrderNumber + 1
		}
	}
	return next
}
