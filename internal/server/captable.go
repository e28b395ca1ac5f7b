package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/wolfeidau/valuesim/internal/captable"
	"github.com/wolfeidau/valuesim/internal/models"
	"github.com/wolfeidau/valuesim/internal/store"
	"github.com/wolfeidau/valuesim/internal/telemetry"
)

type settingsRequest struct {
	CurrentValuation   float64 `json:"current_valuation"`
	EsopPoolPercentage float64 `json:"esop_pool_percentage"`
	TotalShares        int64   `json:"total_shares"`
	ExitValuation      float64 `json:"exit_valuation"`
	InitialValuation   float64 `json:"initial_valuation"`
	LegalStructure     string  `json:"legal_structure"`
}

type exitResponse struct {
	ExitValuation float64            `json:"exit_valuation"`
	Payouts       []captable.Payout  `json:"payouts"`
	ByClass       map[string]float64 `json:"by_class"`
}

// getSettings returns the company's settings, creating the defaults the
// first time they are read.
func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	companyID, err := s.companyFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	settings, err := s.stores.Settings.Get(r.Context(), companyID)
	if errors.Is(err, store.ErrNotFound) {
		settings = models.DefaultSettings(companyID)
		err = s.stores.Settings.Upsert(r.Context(), settings)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) putSettings(w http.ResponseWriter, r *http.Request) {
	companyID, err := s.companyFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req settingsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	settings, err := s.settingsOrDefault(r.Context(), companyID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	settings.CurrentValuation = req.CurrentValuation
	settings.EsopPoolPercentage = req.EsopPoolPercentage
	settings.TotalShares = req.TotalShares
	settings.ExitValuation = req.ExitValuation
	settings.InitialValuation = req.InitialValuation
	settings.LegalStructure = req.LegalStructure
	settings.UpdatedAt = time.Now().UTC()

	if err := models.ValidateSettings(settings).Err(); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.stores.Settings.Upsert(r.Context(), settings); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) getCapTable(w http.ResponseWriter, r *http.Request) {
	companyID, err := s.companyFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	table, _, err := s.buildCapTable(r.Context(), companyID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

// getExit splits an exit across the cap table. The valuation query
// parameter overrides the company's configured exit valuation.
func (s *Server) getExit(w http.ResponseWriter, r *http.Request) {
	companyID, err := s.companyFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var valuation float64
	if v := r.URL.Query().Get("valuation"); v != "" {
		valuation, err = strconv.ParseFloat(v, 64)
		if err != nil || valuation <= 0 {
			writeError(w, r, badRequest("invalid valuation %q: expected a positive number", v))
			return
		}
	}

	table, settings, err := s.buildCapTable(r.Context(), companyID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if valuation == 0 {
		valuation = settings.ExitValuation
	}
	if valuation <= 0 {
		writeError(w, r, badRequest("no exit valuation given and none configured for the company"))
		return
	}

	writeJSON(w, http.StatusOK, newExitResponse(table, valuation))
}

func newExitResponse(table *captable.Table, valuation float64) exitResponse {
	payouts := captable.ExitWaterfall(table, valuation)
	return exitResponse{
		ExitValuation: valuation,
		Payouts:       payouts,
		ByClass:       captable.ValueByClass(payouts),
	}
}

// settingsOrDefault returns stored settings or unsaved defaults.
func (s *Server) settingsOrDefault(ctx context.Context, companyID uuid.UUID) (*models.CompanySettings, error) {
	settings, err := s.stores.Settings.Get(ctx, companyID)
	if errors.Is(err, store.ErrNotFound) {
		return models.DefaultSettings(companyID), nil
	}
	return settings, err
}

func (s *Server) buildCapTable(ctx context.Context, companyID uuid.UUID) (*captable.Table, *models.CompanySettings, error) {
	settings, err := s.settingsOrDefault(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	founders, err := s.stores.Founders.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	rounds, err := s.stores.Rounds.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	grants, err := s.stores.Grants.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}

	started := time.Now()
	table, err := captable.Build(settings, founders, rounds, grants)
	telemetry.GetMetrics().CapTableBuildDuration.Record(ctx, float64(time.Since(started).Microseconds())/1000)
	if err != nil {
		return nil, nil, err
	}
	return table, settings, nil
}
