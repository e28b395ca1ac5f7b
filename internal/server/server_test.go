package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/valuesim/internal/captable"
	"github.com/wolfeidau/valuesim/internal/models"
	"github.com/wolfeidau/valuesim/internal/store/memory"
)

type testAPI struct {
	t       *testing.T
	handler http.Handler
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	srv := NewServer(memory.NewStores())
	srv.now = func() time.Time { return time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC) }
	return &testAPI{t: t, handler: srv.Handler(zerolog.Nop())}
}

func (a *testAPI) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(data)
	}

	r := httptest.NewRequest(method, path, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, r)
	return w
}

func decodeAs[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (a *testAPI) createCompany(name string) *models.Company {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/companies", map[string]string{"name": name, "industry": "SaaS"})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decodeAs[*models.Company](a.t, w)
}

func (a *testAPI) createFounder(companyID uuid.UUID, name string, shares int64) {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/companies/"+companyID.String()+"/founders", map[string]any{"name": name, "shares": shares})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCompanies(t *testing.T) {
	api := newTestAPI(t)

	company := api.createCompany("Acme")
	assert.Equal(t, "Acme", company.Name)
	assert.NotEqual(t, uuid.Nil, company.ID)

	t.Run("validation", func(t *testing.T) {
		w := api.do(http.MethodPost, "/api/companies", map[string]string{"name": "  "})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeAs[errorResponse](t, w)
		assert.Equal(t, []string{"Company name is required"}, resp.Details)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := api.do(http.MethodPost, "/api/companies", "{")
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("update and list", func(t *testing.T) {
		w := api.do(http.MethodPut, "/api/companies/"+company.ID.String(), map[string]string{"name": "Acme Inc", "industry": "Robotics"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = api.do(http.MethodGet, "/api/companies", nil)
		require.Equal(t, http.StatusOK, w.Code)
		companies := decodeAs[[]*models.Company](t, w)
		require.Len(t, companies, 1)
		assert.Equal(t, "Acme Inc", companies[0].Name)
		assert.Equal(t, "Robotics", companies[0].Industry)
	})

	t.Run("bad id", func(t *testing.T) {
		w := api.do(http.MethodGet, "/api/companies/not-a-uuid", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete cascades", func(t *testing.T) {
		api.createFounder(company.ID, "Alice", 100)

		w := api.do(http.MethodDelete, "/api/companies/"+company.ID.String(), nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = api.do(http.MethodGet, "/api/companies/"+company.ID.String(), nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		w = api.do(http.MethodGet, "/api/companies/"+company.ID.String()+"/founders", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFounders(t *testing.T) {
	api := newTestAPI(t)
	company := api.createCompany("Acme")

	w := api.do(http.MethodPost, "/api/companies/"+company.ID.String()+"/founders", map[string]any{"name": "Alice", "shares": 6_000_000, "role": "CEO"})
	require.Equal(t, http.StatusCreated, w.Code)
	founder := decodeAs[*models.Founder](t, w)
	assert.True(t, founder.Active)

	w = api.do(http.MethodPut, "/api/founders/"+founder.ID.String(), map[string]any{"name": "Alice", "shares": 5_000_000, "active": false})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeAs[*models.Founder](t, w)
	assert.Equal(t, int64(5_000_000), updated.Shares)
	assert.False(t, updated.Active)
	assert.Equal(t, company.ID, updated.CompanyID)

	w = api.do(http.MethodPost, "/api/companies/"+uuid.Must(uuid.NewV7()).String()+"/founders", map[string]any{"name": "Ghost"})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodDelete, "/api/founders/"+founder.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = api.do(http.MethodDelete, "/api/founders/"+founder.ID.String(), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRounds(t *testing.T) {
	api := newTestAPI(t)
	company := api.createCompany("Acme")
	roundsPath := "/api/companies/" + company.ID.String() + "/rounds"

	t.Run("invalid SAFE is rejected with messages", func(t *testing.T) {
		w := api.do(http.MethodPost, roundsPath, map[string]any{
			"name": "Pre-seed", "roundType": "SAFE", "capitalRaised": 500000, "valuation": 4000000, "discountRate": 120,
		})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeAs[errorResponse](t, w)
		assert.Equal(t, []string{
			"Valuation cap must be greater than 0 for SAFE rounds",
			"Discount rate must be between 0 and 100",
		}, resp.Details)
	})

	var first *models.FundingRound
	t.Run("create appends order numbers", func(t *testing.T) {
		w := api.do(http.MethodPost, roundsPath, map[string]any{
			"name": "Pre-seed", "roundType": "SAFE", "capitalRaised": 500000, "valuation": 4000000,
			"valuationCap": 5000000, "investors": []string{"Angel"}, "date": "2023-03-01T00:00:00Z",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		first = decodeAs[*models.FundingRound](t, w)
		assert.Equal(t, 1, first.OrderNumber)
		assert.Equal(t, 5_000_000.0, first.ValuationCap)
		assert.Zero(t, first.SharesIssued)

		w = api.do(http.MethodPost, roundsPath, map[string]any{
			"name": "Series A", "roundType": "Priced Round", "capitalRaised": 2000000, "valuation": 8000000,
			"sharesIssued": 2000000, "sharePrice": 1.0, "date": "2024-06-01T00:00:00Z",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, 2, decodeAs[*models.FundingRound](t, w).OrderNumber)
	})

	t.Run("update keeps identity", func(t *testing.T) {
		w := api.do(http.MethodPut, "/api/rounds/"+first.ID.String(), map[string]any{
			"name": "Pre-seed SAFE", "roundType": "SAFE", "capitalRaised": 750000, "valuation": 4000000, "valuationCap": 6000000,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		updated := decodeAs[*models.FundingRound](t, w)
		assert.Equal(t, first.ID, updated.ID)
		assert.Equal(t, 1, updated.OrderNumber)
		assert.Equal(t, 750_000.0, updated.CapitalRaised)
	})

	t.Run("list", func(t *testing.T) {
		w := api.do(http.MethodGet, roundsPath, nil)
		require.Equal(t, http.StatusOK, w.Code)
		rounds := decodeAs[[]*models.FundingRound](t, w)
		require.Len(t, rounds, 2)
		assert.Equal(t, "Pre-seed SAFE", rounds[0].Name)
		assert.Equal(t, "Series A", rounds[1].Name)
	})

	t.Run("validate only", func(t *testing.T) {
		w := api.do(http.MethodPost, "/api/rounds/validate", map[string]any{"roundType": "Priced Round", "capitalRaised": 1, "valuation": 1})
		require.Equal(t, http.StatusOK, w.Code)
		result := decodeAs[models.ValidationResult](t, w)
		assert.False(t, result.Valid)
		assert.Equal(t, []string{
			"Round name is required",
			"Shares issued must be greater than 0 for priced rounds",
			"Share price must be greater than 0 for priced rounds",
		}, result.Errors)
	})

	t.Run("delete", func(t *testing.T) {
		w := api.do(http.MethodDelete, "/api/rounds/"+first.ID.String(), nil)
		require.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestSettings_LazyDefaults(t *testing.T) {
	api := newTestAPI(t)
	company := api.createCompany("Acme")
	path := "/api/companies/" + company.ID.String() + "/settings"

	w := api.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	settings := decodeAs[*models.CompanySettings](t, w)
	assert.Equal(t, models.DefaultTotalShares, settings.TotalShares)
	assert.Equal(t, models.DefaultEsopPoolPercentage, settings.EsopPoolPercentage)

	w = api.do(http.MethodPut, path, map[string]any{"total_shares": 1000, "esop_pool_percentage": 150})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = api.do(http.MethodPut, path, map[string]any{"total_shares": 1000, "esop_pool_percentage": 15, "exit_valuation": 5e7, "legal_structure": "LLC"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(http.MethodGet, path, nil)
	settings = decodeAs[*models.CompanySettings](t, w)
	assert.Equal(t, int64(1000), settings.TotalShares)
	assert.Equal(t, "LLC", settings.LegalStructure)

	w = api.do(http.MethodGet, "/api/companies/"+uuid.Must(uuid.NewV7()).String()+"/settings", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCapTableAndExit(t *testing.T) {
	api := newTestAPI(t)
	company := api.createCompany("Acme")
	base := "/api/companies/" + company.ID.String()

	w := api.do(http.MethodGet, base+"/captable", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	api.createFounder(company.ID, "Alice", 6_000_000)
	api.createFounder(company.ID, "Bob", 3_000_000)

	w = api.do(http.MethodGet, base+"/captable", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	table := decodeAs[captable.Table](t, w)
	assert.Equal(t, int64(10_000_000), table.TotalShares)
	require.Len(t, table.Holders, 3)
	assert.Equal(t, captable.UnallocatedPool, table.Holders[2].Name)

	w = api.do(http.MethodGet, base+"/exit", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, base+"/exit?valuation=abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, base+"/exit?valuation=1000", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	exit := decodeAs[exitResponse](t, w)
	assert.Equal(t, 1000.0, exit.ExitValuation)
	assert.InDelta(t, 900.0, exit.ByClass[captable.ClassFounder], 1e-9)
	assert.InDelta(t, 100.0, exit.ByClass[captable.ClassESOP], 1e-9)
}

func TestGrantsAndVesting(t *testing.T) {
	api := newTestAPI(t)
	company := api.createCompany("Acme")

	w := api.do(http.MethodPost, "/api/companies/"+company.ID.String()+"/grants", map[string]any{
		"employee_name": "Carol", "shares_granted": 48000, "cliff_period": 12, "grant_date": "2024-01-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	grant := decodeAs[*models.EsopGrant](t, w)
	assert.Equal(t, 48, grant.VestingMonths)
	assert.Equal(t, models.VestingMonthly, grant.VestingFrequency)
	assert.Equal(t, models.GrantStatusActive, grant.Status)

	vestingPath := "/api/grants/" + grant.ID.String() + "/vesting"

	w = api.do(http.MethodGet, vestingPath, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(12_000), decodeAs[captable.Vesting](t, w).Vested)

	w = api.do(http.MethodGet, vestingPath+"?as_of=2024-06-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, decodeAs[captable.Vesting](t, w).Vested)

	w = api.do(http.MethodGet, vestingPath+"?as_of=June", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodPut, "/api/grants/"+grant.ID.String(), map[string]any{
		"employee_name": "Carol", "shares_granted": 48000, "cliff_period": 60, "vesting_months": 48,
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, []string{"Cliff period cannot exceed the vesting period"}, decodeAs[errorResponse](t, w).Details)

	w = api.do(http.MethodDelete, "/api/grants/"+grant.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestSharedScenarios(t *testing.T) {
	api := newTestAPI(t)
	company := api.createCompany("Acme")
	api.createFounder(company.ID, "Alice", 9_000_000)

	w := api.do(http.MethodPost, "/api/companies/"+company.ID.String()+"/scenarios", map[string]any{"name": "IPO", "exit_valuation": 0})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = api.do(http.MethodPost, "/api/companies/"+company.ID.String()+"/scenarios", map[string]any{"name": "IPO", "exit_valuation": 100_000_000})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	scenario := decodeAs[*models.Scenario](t, w)
	require.NotEmpty(t, scenario.ShareCode)

	w = api.do(http.MethodGet, "/api/scenarios/shared/"+scenario.ShareCode, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	shared := decodeAs[sharedScenario](t, w)
	assert.Equal(t, scenario.ID, shared.Scenario.ID)
	assert.Equal(t, "Acme", shared.Company.Name)
	require.NotNil(t, shared.Exit)
	assert.InDelta(t, 90_000_000.0, shared.Exit.ByClass[captable.ClassFounder], 1e-6)

	w = api.do(http.MethodGet, "/api/scenarios/shared/unknown", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodGet, "/api/scenarios/"+scenario.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(http.MethodDelete, "/api/scenarios/"+scenario.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = api.do(http.MethodGet, "/api/scenarios/shared/"+scenario.ShareCode, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestComments(t *testing.T) {
	api := newTestAPI(t)
	company := api.createCompany("Acme")
	path := "/api/companies/" + company.ID.String() + "/comments"

	w := api.do(http.MethodPost, path, map[string]string{"author": "ops", "body": ""})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	for _, body := range []string{"first", "second"} {
		w = api.do(http.MethodPost, path, map[string]string{"author": "ops", "body": body})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = api.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	comments := decodeAs[[]*models.Comment](t, w)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Body)

	w = api.do(http.MethodDelete, "/api/comments/"+comments[0].ID.String(), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestBodyLimit(t *testing.T) {
	api := newTestAPI(t)
	body := `{"name":"` + strings.Repeat("a", maxRequestBytes) + `"}`
	w := api.do(http.MethodPost, "/api/companies", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
