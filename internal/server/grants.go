package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/wolfeidau/valuesim/internal/captable"
	"github.com/wolfeidau/valuesim/internal/models"
)

type grantRequest struct {
	EmployeeName     string    `json:"employee_name"`
	EmployeeID       string    `json:"employee_id"`
	Position         string    `json:"position"`
	Department       string    `json:"department"`
	GrantDate        time.Time `json:"grant_date"`
	SharesGranted    int64     `json:"shares_granted"`
	VestingSchedule  string    `json:"vesting_schedule"`
	VestingMonths    int       `json:"vesting_months"`
	CliffMonths      int       `json:"cliff_period"`
	VestingFrequency string    `json:"vesting_frequency"`
	ExercisePrice    float64   `json:"exercise_price"`
	Status           string    `json:"status"`
	Notes            string    `json:"notes"`
	Active           *bool     `json:"active,omitempty"`
}

func (req *grantRequest) apply(g *models.EsopGrant) {
	g.EmployeeName = req.EmployeeName
	g.EmployeeID = req.EmployeeID
	g.Position = req.Position
	g.Department = req.Department
	g.GrantDate = req.GrantDate
	g.SharesGranted = req.SharesGranted
	g.VestingSchedule = req.VestingSchedule
	g.VestingMonths = req.VestingMonths
	g.CliffMonths = req.CliffMonths
	g.VestingFrequency = req.VestingFrequency
	g.ExercisePrice = req.ExercisePrice
	g.Status = req.Status
	g.Notes = req.Notes
	if req.Active != nil {
		g.Active = *req.Active
	}
	models.ApplyGrantDefaults(g)
}

func (s *Server) listGrants(w http.ResponseWriter, r *http.Request) {
	companyID, err := s.companyFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	grants, err := s.stores.Grants.ListByCompany(r.Context(), companyID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, grants)
}

func (s *Server) createGrant(w http.ResponseWriter, r *http.Request) {
	companyID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req grantRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	now := time.Now().UTC()
	grant := &models.EsopGrant{
		ID:        uuid.Must(uuid.NewV7()),
		CompanyID: companyID,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	req.apply(grant)

	if err := models.ValidateEsopGrant(grant).Err(); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.stores.Grants.Create(r.Context(), grant); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, grant)
}

func (s *Server) updateGrant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req grantRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	grant, err := s.stores.Grants.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	req.apply(grant)
	grant.UpdatedAt = time.Now().UTC()

	if err := models.ValidateEsopGrant(grant).Err(); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.stores.Grants.Update(r.Context(), grant); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, grant)
}

func (s *Server) deleteGrant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.stores.Grants.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// grantVesting reports the vesting position of a grant, as of today unless
// an as_of=YYYY-MM-DD query parameter is given.
func (s *Server) grantVesting(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	asOf := s.now().UTC()
	if v := r.URL.Query().Get("as_of"); v != "" {
		asOf, err = time.Parse(time.DateOnly, v)
		if err != nil {
			writeError(w, r, badRequest("invalid as_of %q: expected YYYY-MM-DD", v))
			return
		}
	}

	grant, err := s.stores.Grants.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, captable.VestingStatus(grant, asOf))
}
