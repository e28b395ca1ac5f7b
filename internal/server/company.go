package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/wolfeidau/valuesim/internal/models"
)

type companyRequest struct {
	Name        string `json:"name"`
	Industry    string `json:"industry"`
	Description string `json:"description"`
}

func (s *Server) listCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.stores.Companies.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, companies)
}

func (s *Server) createCompany(w http.ResponseWriter, r *http.Request) {
	var req companyRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	company := models.NewCompany(req.Name, req.Industry, req.Description)
	if err := models.ValidateCompany(company).Err(); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.stores.Companies.Create(r.Context(), company); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, company)
}

func (s *Server) getCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	company, err := s.stores.Companies.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, company)
}

func (s *Server) updateCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req companyRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	company, err := s.stores.Companies.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	company.Name = req.Name
	company.Industry = req.Industry
	company.Description = req.Description
	company.UpdatedAt = time.Now().UTC()

	if err := models.ValidateCompany(company).Err(); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.stores.Companies.Update(r.Context(), company); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, company)
}

func (s *Server) deleteCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.stores.Companies.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// companyFromPath resolves the {id} path value to an existing company ID.
func (s *Server) companyFromPath(r *http.Request) (uuid.UUID, error) {
	id, err := pathID(r)
	if err != nil {
		return uuid.Nil, err
	}
	if _, err := s.stores.Companies.Get(r.Context(), id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

type founderRequest struct {
	Name             string  `json:"name"`
	Role             string  `json:"role"`
	EquityPercentage float64 `json:"equity_percentage"`
	Shares           int64   `json:"shares"`
	InitialOwnership float64 `json:"initial_ownership"`
	Active           *bool   `json:"active,omitempty"`
}

func (req *founderRequest) apply(f *models.Founder) {
	f.Name = req.Name
	f.Role = req.Role
	f.EquityPercentage = req.EquityPercentage
	f.Shares = req.Shares
	f.InitialOwnership = req.InitialOwnership
	if req.Active != nil {
		f.Active = *req.Active
	}
}

func (s *Server) listFounders(w http.ResponseWriter, r *http.Request) {
	companyID, err := s.companyFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	founders, err := s.stores.Founders.ListByCompany(r.Context(), companyID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, founders)
}

func (s *Server) createFounder(w http.ResponseWriter, r *http.Request) {
	companyID, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req founderRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	now := time.Now().UTC()
	founder := &models.Founder{
		ID:        uuid.Must(uuid.NewV7()),
		CompanyID: companyID,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	req.apply(founder)

	if err := models.ValidateFounder(founder).Err(); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.stores.Founders.Create(r.Context(), founder); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, founder)
}

func (s *Server) updateFounder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req founderRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	founder, err := s.stores.Founders.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	req.apply(founder)
	founder.UpdatedAt = time.Now().UTC()

	if err := models.ValidateFounder(founder).Err(); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.stores.Founders.Update(r.Context(), founder); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, founder)
}

func (s *Server) deleteFounder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.stores.Founders.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
