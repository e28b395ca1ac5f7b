package server

import (
	"errors"
	"net/http"

	"github.com/wolfeidau/valuesim/internal/captable"
	"github.com/wolfeidau/valuesim/internal/models"
	"github.com/wolfeidau/valuesim/internal/telemetry"
)

type scenarioRequest struct {
	Name          string  `json:"name"`
	ExitValuation float64 `json:"exit_valuation"`
	Notes         string  `json:"notes"`
}

// sharedScenario is what anyone holding a share code can see.
type sharedScenario struct {
	Scenario *models.Scenario `json:"scenario"`
	Company  *models.Company  `json:"company"`
	Exit     *exitResponse    `json:"exit,omitempty"`
}

type commentRequest struct {
	Author string `json:"author"`
	Body   string `json:"body"`
}

func (s *Server) listScenarios(w http.ResponseWriter, r *http.Request) {
	companyID, err := s.companyFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	scenarios, err := s.stores.Scenarios.ListByCompany(r.Context(), companyID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scenarios)
}

func (s *Server) createScenario(w http.ResponseWriter, r *http.Request) {
	companyID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req scenarioRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	scenario := models.NewScenario(companyID, req.Name, req.ExitValuation, req.Notes)
	if err := models.ValidateScenario(scenario).Err(); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.stores.Scenarios.Create(r.Context(), scenario); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, scenario)
}

func (s *Server) getScenario(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	scenario, err := s.stores.Scenarios.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scenario)
}

func (s *Server) deleteScenario(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.stores.Scenarios.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// getSharedScenario resolves a share code to the scenario, its company and
// the exit it describes. Companies without shares yet return no exit.
func (s *Server) getSharedScenario(w http.ResponseWriter, r *http.Request) {
	telemetry.GetMetrics().ScenariosSharedTotal.Add(r.Context(), 1)

	scenario, err := s.stores.Scenarios.GetByShareCode(r.Context(), r.PathValue("code"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	company, err := s.stores.Companies.Get(r.Context(), scenario.CompanyID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := sharedScenario{Scenario: scenario, Company: company}

	table, _, err := s.buildCapTable(r.Context(), company.ID)
	switch {
	case err == nil:
		exit := newExitResponse(table, scenario.ExitValuation)
		resp.Exit = &exit
	case !errors.Is(err, captable.ErrNoShares):
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	companyID, err := s.companyFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	comments, err := s.stores.Comments.ListByCompany(r.Context(), companyID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	companyID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req commentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	comment := models.NewComment(companyID, req.Author, req.Body)
	if err := models.ValidateComment(comment).Err(); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.stores.Comments.Create(r.Context(), comment); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.stores.Comments.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
