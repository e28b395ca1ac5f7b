package admin

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/valuesim/internal/models"
	"github.com/wolfeidau/valuesim/internal/store"
	"github.com/wolfeidau/valuesim/internal/store/memory"
)

func ptr[T any](v T) *T { return &v }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func companyByName(t *testing.T, stores store.Stores, name string) *models.Company {
	t.Helper()
	companies, err := stores.Companies.List(context.Background())
	require.NoError(t, err)
	for _, c := range companies {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("company %q not found", name)
	return nil
}

func TestLoadFixture_YAML(t *testing.T) {
	fixture, err := LoadFixture("testdata/seed.yaml")
	require.NoError(t, err)
	require.Len(t, fixture.Companies, 2)

	acme := fixture.Companies[0]
	assert.Equal(t, "Acme Robotics", acme.Name)
	require.NotNil(t, acme.Settings)
	assert.Equal(t, int64(10_000_000), acme.Settings.TotalShares)
	require.Len(t, acme.Rounds, 2)
	assert.Equal(t, models.RoundTypeSAFE, acme.Rounds[0].RoundType)
	require.NotNil(t, acme.Rounds[0].ValuationCap)
	assert.Equal(t, 5_000_000.0, *acme.Rounds[0].ValuationCap)
	assert.Nil(t, acme.Rounds[0].SharesIssued)
	assert.Equal(t, date(2023, time.March, 1), acme.Rounds[0].Date)
	assert.Equal(t, []string{"Big VC", "Angel One"}, acme.Rounds[1].Investors)
	require.Len(t, acme.Grants, 1)
	assert.Equal(t, 12, acme.Grants[0].CliffMonths)

	assert.Nil(t, fixture.Companies[1].Settings)
}

func TestLoadFixture_JSON(t *testing.T) {
	fixture, err := LoadFixture("testdata/seed.json")
	require.NoError(t, err)
	require.Len(t, fixture.Companies, 1)

	round := fixture.Companies[0].Rounds[0]
	assert.Equal(t, models.RoundTypePriced, round.RoundType)
	require.NotNil(t, round.SharesIssued)
	assert.Equal(t, int64(1_250_000), *round.SharesIssued)
	assert.Equal(t, 0.8, *round.SharePrice)
}

func TestLoadFixture_Missing(t *testing.T) {
	_, err := LoadFixture("testdata/does-not-exist.yaml")
	require.Error(t, err)
}

func TestSeeder_Seed(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()

	fixture, err := LoadFixture("testdata/seed.yaml")
	require.NoError(t, err)

	report := NewSeeder(stores, zerolog.Nop()).Seed(ctx, fixture)
	require.NoError(t, report.Err())
	// acme: company, settings, 2 founders, 2 rounds, grant, scenario, comment; beta: company, founder
	assert.Equal(t, 11, report.Succeeded)

	acme := companyByName(t, stores, "Acme Robotics")

	rounds, err := stores.Rounds.ListByCompany(ctx, acme.ID)
	require.NoError(t, err)
	require.Len(t, rounds, 2)
	assert.Equal(t, "Pre-seed SAFE", rounds[0].Name)
	assert.Equal(t, 1, rounds[0].OrderNumber)
	assert.Equal(t, 2, rounds[1].OrderNumber)
	assert.True(t, rounds[1].Active)

	grants, err := stores.Grants.ListByCompany(ctx, acme.ID)
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, 48, grants[0].VestingMonths)
	assert.Equal(t, models.GrantStatusActive, grants[0].Status)

	scenarios, err := stores.Scenarios.ListByCompany(ctx, acme.ID)
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Equal(t, models.ShareCodeFor(scenarios[0].ID), scenarios[0].ShareCode)

	beta := companyByName(t, stores, "Beta Foods")
	_, err = stores.Settings.Get(ctx, beta.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSeeder_ContinuesAfterFailures(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()

	fixture := &Fixture{Companies: []FixtureCompany{
		{
			Name: "Acme",
			Founders: []FixtureFounder{
				{Name: "Alice", Shares: 1_000_000},
				{Name: "", Shares: 10},
			},
			Rounds: []models.FundingRoundInput{
				{Name: "Broken SAFE", RoundType: models.RoundTypeSAFE, CapitalRaised: 100_000, Valuation: 1_000_000},
				{Name: "Seed", RoundType: models.RoundTypePriced, CapitalRaised: 1_000_000, Valuation: 4_000_000,
					SharesIssued: ptr(int64(250_000)), SharePrice: ptr(4.0)},
			},
		},
		{
			Name:     "",
			Founders: []FixtureFounder{{Name: "Orphan", Shares: 1}},
		},
		{Name: "Beta"},
	}}

	report := NewSeeder(stores, zerolog.Nop()).Seed(ctx, fixture)
	require.Error(t, report.Err())
	assert.Equal(t, 3, report.Failed)
	assert.Equal(t, 4, report.Succeeded)

	var failed []string
	for _, item := range report.Items {
		if !item.OK() {
			failed = append(failed, item.Op+" "+item.Target)
		}
	}
	assert.Equal(t, []string{"create founder Acme/", "create round Acme/Broken SAFE", "create company "}, failed)

	acme := companyByName(t, stores, "Acme")
	rounds, err := stores.Rounds.ListByCompany(ctx, acme.ID)
	require.NoError(t, err)
	require.Len(t, rounds, 1)
	assert.Equal(t, "Seed", rounds[0].Name)
	// order follows the position in the fixture, not the number of successes
	assert.Equal(t, 2, rounds[0].OrderNumber)

	companies, err := stores.Companies.List(ctx)
	require.NoError(t, err)
	assert.Len(t, companies, 2)
}

func TestReport_Outcomes(t *testing.T) {
	ok := Outcome{Op: "create company", Target: "Acme"}
	assert.True(t, ok.OK())
	assert.Equal(t, "✓ create company Acme", ok.String())

	bad := Outcome{Op: "create round", Target: "Acme/Seed", Error: "boom"}
	assert.False(t, bad.OK())
	assert.Equal(t, "✗ create round Acme/Seed: boom", bad.String())

	assert.NoError(t, (&Report{Succeeded: 3}).Err())
	assert.EqualError(t, (&Report{Succeeded: 3, Failed: 1}).Err(), "1 of 4 operations failed")
}

func TestValidateRounds(t *testing.T) {
	rounds, err := LoadRoundInputs("testdata/rounds.yaml")
	require.NoError(t, err)
	require.Len(t, rounds, 2)

	results := ValidateRounds(rounds)
	require.Len(t, results, 2)
	assert.True(t, results[0].Valid)
	assert.Empty(t, results[0].Errors)
	assert.False(t, results[1].Valid)
	assert.Equal(t, []string{
		"Round name is required",
		"Capital raised must be greater than 0",
		"Valuation cap must be greater than 0 for SAFE rounds",
	}, results[1].Errors)
}

func TestRepairer_RepairOrphanedSettings(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()

	orphan := models.NewCompany("Orphan", "", "")
	require.NoError(t, stores.Companies.Create(ctx, orphan))
	for _, shares := range []int64{6_000_000, 3_000_000} {
		require.NoError(t, stores.Founders.Create(ctx, &models.Founder{
			ID: uuid.Must(uuid.NewV7()), CompanyID: orphan.ID, Name: "F", Shares: shares, Active: true,
		}))
	}
	_, err := CreateRound(ctx, stores.Rounds, orphan.ID, &models.FundingRoundInput{
		Name: "Series A", RoundType: models.RoundTypePriced, CapitalRaised: 2_000_000, Valuation: 8_000_000,
		SharesIssued: ptr(int64(2_000_000)), SharePrice: ptr(1.0), Date: date(2024, time.June, 1),
	})
	require.NoError(t, err)

	zeroed := models.NewCompany("Zeroed", "", "")
	require.NoError(t, stores.Companies.Create(ctx, zeroed))
	require.NoError(t, stores.Founders.Create(ctx, &models.Founder{
		ID: uuid.Must(uuid.NewV7()), CompanyID: zeroed.ID, Name: "G", Shares: 1_000_000, Active: true,
	}))
	zeroedSettings := models.DefaultSettings(zeroed.ID)
	zeroedSettings.TotalShares = 0
	zeroedSettings.CurrentValuation = 5
	require.NoError(t, stores.Settings.Upsert(ctx, zeroedSettings))

	healthy := models.NewCompany("Healthy", "", "")
	require.NoError(t, stores.Companies.Create(ctx, healthy))
	require.NoError(t, stores.Settings.Upsert(ctx, models.DefaultSettings(healthy.ID)))

	repairer := NewRepairer(stores, zerolog.Nop())

	t.Run("dry run writes nothing", func(t *testing.T) {
		report, err := repairer.RepairOrphanedSettings(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Succeeded)
		assert.Equal(t, "create settings (dry run)", report.Items[0].Op)

		_, err = stores.Settings.Get(ctx, orphan.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		got, err := stores.Settings.Get(ctx, zeroed.ID)
		require.NoError(t, err)
		assert.Zero(t, got.TotalShares)
	})

	t.Run("repair", func(t *testing.T) {
		report, err := repairer.RepairOrphanedSettings(ctx, false)
		require.NoError(t, err)
		require.NoError(t, report.Err())
		assert.Equal(t, 2, report.Succeeded)

		got, err := stores.Settings.Get(ctx, orphan.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(9_000_000), got.TotalShares)
		assert.Equal(t, 10_000_000.0, got.CurrentValuation)
		assert.Equal(t, models.DefaultEsopPoolPercentage, got.EsopPoolPercentage)

		got, err = stores.Settings.Get(ctx, zeroed.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1_000_000), got.TotalShares)
		assert.Equal(t, 5.0, got.CurrentValuation)

		got, err = stores.Settings.Get(ctx, healthy.ID)
		require.NoError(t, err)
		assert.Equal(t, models.DefaultTotalShares, got.TotalShares)
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		report, err := repairer.RepairOrphanedSettings(ctx, false)
		require.NoError(t, err)
		assert.Empty(t, report.Items)
	})
}

func TestRepairer_ReorderRounds(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()
	company := models.NewCompany("Acme", "", "")
	require.NoError(t, stores.Companies.Create(ctx, company))

	for _, r := range []struct {
		name  string
		order int
		date  time.Time
	}{
		{"Seed", 3, date(2022, time.January, 1)},
		{"Series B", 1, date(2024, time.January, 1)},
		{"Series A", 2, date(2023, time.January, 1)},
	} {
		_, err := CreateRound(ctx, stores.Rounds, company.ID, &models.FundingRoundInput{
			Name: r.name, RoundType: models.RoundTypeSAFE, CapitalRaised: 1, Valuation: 1,
			ValuationCap: ptr(1.0), Date: r.date, OrderNumber: r.order,
		})
		require.NoError(t, err)
	}

	repairer := NewRepairer(stores, zerolog.Nop())
	report, err := repairer.ReorderRounds(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Succeeded)

	rounds, err := stores.Rounds.ListByCompany(ctx, company.ID)
	require.NoError(t, err)
	var names []string
	for i, r := range rounds {
		names = append(names, r.Name)
		assert.Equal(t, i+1, r.OrderNumber)
	}
	assert.Equal(t, []string{"Seed", "Series A", "Series B"}, names)

	_, err = repairer.ReorderRounds(ctx, uuid.Must(uuid.NewV7()))
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestInspector_Inspect(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()

	fixture, err := LoadFixture("testdata/seed.yaml")
	require.NoError(t, err)
	require.NoError(t, NewSeeder(stores, zerolog.Nop()).Seed(ctx, fixture).Err())

	inspector := NewInspector(stores)
	inspector.now = func() time.Time { return date(2025, time.January, 1) }

	acme := companyByName(t, stores, "Acme Robotics")
	snap, err := inspector.Inspect(ctx, acme.ID)
	require.NoError(t, err)
	assert.False(t, snap.SettingsMissing)
	assert.Len(t, snap.Founders, 2)
	assert.Len(t, snap.Rounds, 2)
	assert.Len(t, snap.Scenarios, 1)
	assert.Len(t, snap.Comments, 1)
	require.Len(t, snap.Vesting, 1)
	assert.Equal(t, int64(12_000), snap.Vesting[0].Vested)
	require.NotNil(t, snap.CapTable)
	assert.Empty(t, snap.CapTableError)
	assert.Empty(t, snap.CapTable.PendingConversions)

	beta := companyByName(t, stores, "Beta Foods")
	snap, err = inspector.Inspect(ctx, beta.ID)
	require.NoError(t, err)
	assert.True(t, snap.SettingsMissing)
	assert.Equal(t, models.DefaultTotalShares, snap.Settings.TotalShares)

	// inspecting never creates settings
	_, err = stores.Settings.Get(ctx, beta.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = inspector.Inspect(ctx, uuid.Must(uuid.NewV7()))
	require.ErrorIs(t, err, store.ErrNotFound)
}
