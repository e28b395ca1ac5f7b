package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	internalhttp "github.com/wolfeidau/valuesim/internal/http"
	"github.com/wolfeidau/valuesim/internal/logger"
	"github.com/wolfeidau/valuesim/internal/store"
)

const maxRequestBytes = 1 << 20

// Server serves the simulator JSON API
type Server struct {
	stores store.Stores
	now    func() time.Time
}

// NewServer creates a new server backed by the given stores
func NewServer(stores store.Stores) *Server {
	return &Server{
		stores: stores,
		now:    time.Now,
	}
}

// Handler returns the HTTP handler for the server
func (s *Server) Handler(log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint for load balancer
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("GET /api/companies", s.listCompanies)
	mux.HandleFunc("POST /api/companies", s.createCompany)
	mux.HandleFunc("GET /api/companies/{id}", s.getCompany)
	mux.HandleFunc("PUT /api/companies/{id}", s.updateCompany)
	mux.HandleFunc("DELETE /api/companies/{id}", s.deleteCompany)

	mux.HandleFunc("GET /api/companies/{id}/founders", s.listFounders)
	mux.HandleFunc("POST /api/companies/{id}/founders", s.createFounder)
	mux.HandleFunc("PUT /api/founders/{id}", s.updateFounder)
	mux.HandleFunc("DELETE /api/founders/{id}", s.deleteFounder)

	mux.HandleFunc("GET /api/companies/{id}/rounds", s.listRounds)
	mux.HandleFunc("POST /api/companies/{id}/rounds", s.createRound)
	mux.HandleFunc("PUT /api/rounds/{id}", s.updateRound)
	mux.HandleFunc("DELETE /api/rounds/{id}", s.deleteRound)
	mux.HandleFunc("POST /api/rounds/validate", s.validateRound)

	mux.HandleFunc("GET /api/companies/{id}/grants", s.listGrants)
	mux.HandleFunc("POST /api/companies/{id}/grants", s.createGrant)
	mux.HandleFunc("PUT /api/grants/{id}", s.updateGrant)
	mux.HandleFunc("DELETE /api/grants/{id}", s.deleteGrant)
	mux.HandleFunc("GET /api/grants/{id}/vesting", s.grantVesting)

	mux.HandleFunc("GET /api/companies/{id}/settings", s.getSettings)
	mux.HandleFunc("PUT /api/companies/{id}/settings", s.putSettings)
	mux.HandleFunc("GET /api/companies/{id}/captable", s.getCapTable)
	mux.HandleFunc("GET /api/companies/{id}/exit", s.getExit)

	mux.HandleFunc("GET /api/companies/{id}/scenarios", s.listScenarios)
	mux.HandleFunc("POST /api/companies/{id}/scenarios", s.createScenario)
	mux.HandleFunc("GET /api/scenarios/{id}", s.getScenario)
	mux.HandleFunc("DELETE /api/scenarios/{id}", s.deleteScenario)
	mux.HandleFunc("GET /api/scenarios/shared/{code}", s.getSharedScenario)

	mux.HandleFunc("GET /api/companies/{id}/comments", s.listComments)
	mux.HandleFunc("POST /api/companies/{id}/comments", s.createComment)
	mux.HandleFunc("DELETE /api/comments/{id}", s.deleteComment)

	return internalhttp.Chain(mux,
		internalhttp.ClientIPMiddleware(),
		logger.HTTPRequests(log),
		requestMetrics,
		internalhttp.MaxBodyBytes(maxRequestBytes),
	)
}
