package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/valuesim/internal/models"
	"github.com/wolfeidau/valuesim/internal/store"
)

func seedCompany(t *testing.T, stores store.Stores) *models.Company {
	t.Helper()
	company := models.NewCompany("Acme", "SaaS", "")
	require.NoError(t, stores.Companies.Create(context.Background(), company))
	return company
}

func TestMemoryChildStores_InvalidReference(t *testing.T) {
	ctx := context.Background()
	stores := NewStores()
	missing := uuid.Must(uuid.NewV7())

	require.Equal(t, store.ErrInvalidReference,
		stores.Founders.Create(ctx, &models.Founder{ID: uuid.Must(uuid.NewV7()), CompanyID: missing}))
	require.Equal(t, store.ErrInvalidReference,
		stores.Rounds.Create(ctx, &models.FundingRound{ID: uuid.Must(uuid.NewV7()), CompanyID: missing}))
	require.Equal(t, store.ErrInvalidReference,
		stores.Grants.Create(ctx, &models.EsopGrant{ID: uuid.Must(uuid.NewV7()), CompanyID: missing}))
	require.Equal(t, store.ErrInvalidReference,
		stores.Settings.Upsert(ctx, models.DefaultSettings(missing)))
	require.Equal(t, store.ErrInvalidReference,
		stores.Scenarios.Create(ctx, &models.Scenario{ID: uuid.Must(uuid.NewV7()), CompanyID: missing}))
	require.Equal(t, store.ErrInvalidReference,
		stores.Comments.Create(ctx, &models.Comment{ID: uuid.Must(uuid.NewV7()), CompanyID: missing}))
}

func TestMemoryFundingRoundStore(t *testing.T) {
	ctx := context.Background()
	stores := NewStores()
	company := seedCompany(t, stores)

	mk := func(name string, order int, date time.Time) *models.FundingRound {
		in := &models.FundingRoundInput{Name: name, RoundType: models.RoundTypeSAFE, CapitalRaised: 1, Valuation: 1, Date: date, OrderNumber: order}
		r := in.ToRecord(company.ID)
		r.Investors = []string{"Angel"}
		return r
	}

	jan := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seriesA := mk("Series A", 2, jan)
	seedB := mk("Seed B", 1, jan.AddDate(0, 6, 0))
	seedA := mk("Seed A", 1, jan)
	for _, r := range []*models.FundingRound{seriesA, seedB, seedA} {
		require.NoError(t, stores.Rounds.Create(ctx, r))
	}

	t.Run("ordered by order number then date", func(t *testing.T) {
		rounds, err := stores.Rounds.ListByCompany(ctx, company.ID)
		require.NoError(t, err)
		require.Len(t, rounds, 3)
		require.Equal(t, "Seed A", rounds[0].Name)
		require.Equal(t, "Seed B", rounds[1].Name)
		require.Equal(t, "Series A", rounds[2].Name)
	})

	t.Run("investors are copied", func(t *testing.T) {
		got, err := stores.Rounds.Get(ctx, seedA.ID)
		require.NoError(t, err)
		got.Investors[0] = "Mutated"

		again, err := stores.Rounds.Get(ctx, seedA.ID)
		require.NoError(t, err)
		require.Equal(t, []string{"Angel"}, again.Investors)
	})

	t.Run("update cannot move company", func(t *testing.T) {
		update, err := stores.Rounds.Get(ctx, seriesA.ID)
		require.NoError(t, err)
		update.CompanyID = uuid.Must(uuid.NewV7())
		update.OrderNumber = 0
		require.NoError(t, stores.Rounds.Update(ctx, update))

		got, err := stores.Rounds.Get(ctx, seriesA.ID)
		require.NoError(t, err)
		require.Equal(t, company.ID, got.CompanyID)
		require.Equal(t, 0, got.OrderNumber)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, stores.Rounds.Delete(ctx, seedB.ID))
		require.Equal(t, store.ErrNotFound, stores.Rounds.Delete(ctx, seedB.ID))
	})
}

func TestMemoryEsopGrantStore(t *testing.T) {
	ctx := context.Background()
	stores := NewStores()
	company := seedCompany(t, stores)

	late := &models.EsopGrant{ID: uuid.Must(uuid.NewV7()), CompanyID: company.ID, EmployeeName: "Late", GrantDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	early := &models.EsopGrant{ID: uuid.Must(uuid.NewV7()), CompanyID: company.ID, EmployeeName: "Early", GrantDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, stores.Grants.Create(ctx, late))
	require.NoError(t, stores.Grants.Create(ctx, early))
	require.Equal(t, store.ErrAlreadyExists, stores.Grants.Create(ctx, early))

	grants, err := stores.Grants.ListByCompany(ctx, company.ID)
	require.NoError(t, err)
	require.Len(t, grants, 2)
	require.Equal(t, "Early", grants[0].EmployeeName)

	early.Status = models.GrantStatusTerminated
	require.NoError(t, stores.Grants.Update(ctx, early))
	got, err := stores.Grants.Get(ctx, early.ID)
	require.NoError(t, err)
	require.Equal(t, models.GrantStatusTerminated, got.Status)
	require.False(t, got.UpdatedAt.IsZero())
}

func TestMemorySettingsStore(t *testing.T) {
	ctx := context.Background()
	stores := NewStores()
	withSettings := seedCompany(t, stores)
	orphan := seedCompany(t, stores)

	_, err := stores.Settings.Get(ctx, withSettings.ID)
	require.Equal(t, store.ErrNotFound, err)

	settings := models.DefaultSettings(withSettings.ID)
	require.NoError(t, stores.Settings.Upsert(ctx, settings))
	created := settings.CreatedAt

	settings.CurrentValuation = 5_000_000
	require.NoError(t, stores.Settings.Upsert(ctx, settings))

	got, err := stores.Settings.Get(ctx, withSettings.ID)
	require.NoError(t, err)
	require.Equal(t, 5_000_000.0, got.CurrentValuation)
	require.Equal(t, created, got.CreatedAt)

	ids, err := stores.Settings.ListCompanyIDsWithoutSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{orphan.ID}, ids)
}

func TestMemoryScenarioAndCommentStores(t *testing.T) {
	ctx := context.Background()
	stores := NewStores()
	company := seedCompany(t, stores)

	id := uuid.Must(uuid.NewV7())
	scenario := &models.Scenario{ID: id, CompanyID: company.ID, Name: "Unicorn", ExitValuation: 1e9, ShareCode: models.ShareCodeFor(id)}
	require.NoError(t, stores.Scenarios.Create(ctx, scenario))

	got, err := stores.Scenarios.GetByShareCode(ctx, scenario.ShareCode)
	require.NoError(t, err)
	require.Equal(t, "Unicorn", got.Name)

	_, err = stores.Scenarios.GetByShareCode(ctx, "nope")
	require.Equal(t, store.ErrNotFound, err)

	list, err := stores.Scenarios.ListByCompany(ctx, company.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NoError(t, stores.Scenarios.Delete(ctx, id))
	_, err = stores.Scenarios.Get(ctx, id)
	require.Equal(t, store.ErrNotFound, err)

	comment := &models.Comment{ID: uuid.Must(uuid.NewV7()), CompanyID: company.ID, Author: "ops", Body: "seeded", CreatedAt: time.Now()}
	require.NoError(t, stores.Comments.Create(ctx, comment))
	comments, err := stores.Comments.ListByCompany(ctx, company.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.NoError(t, stores.Comments.Delete(ctx, comment.ID))
	require.Equal(t, store.ErrNotFound, stores.Comments.Delete(ctx, comment.ID))
}
