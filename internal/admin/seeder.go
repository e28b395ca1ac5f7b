package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wolfeidau/valuesim/internal/models"
	"github.com/wolfeidau/valuesim/internal/store"
)

// Seeder loads fixtures into the stores.
type Seeder struct {
	stores store.Stores
	logger zerolog.Logger
}

// NewSeeder creates a seeder writing to stores.
func NewSeeder(stores store.Stores, logger zerolog.Logger) *Seeder {
	return &Seeder{stores: stores, logger: logger}
}

// Seed creates every company in the fixture followed by its children, in
// source order. Children of a company that could not be created are skipped.
func (s *Seeder) Seed(ctx context.Context, fixture *Fixture) *Report {
	report := &Report{}

	for _, fc := range fixture.Companies {
		company := models.NewCompany(fc.Name, fc.Industry, fc.Description)
		err := s.createCompany(ctx, company)
		report.record(ctx, s.logger, "create company", fc.Name, err)
		if err != nil {
			s.logger.Warn().Str("company", fc.Name).Msg("skipping children of company that failed to create")
			continue
		}

		s.seedChildren(ctx, report, company.ID, fc)
	}

	return report
}

func (s *Seeder) createCompany(ctx context.Context, company *models.Company) error {
	if err := models.ValidateCompany(company).Err(); err != nil {
		return err
	}
	return s.stores.Companies.Create(ctx, company)
}

func (s *Seeder) seedChildren(ctx context.Context, report *Report, companyID uuid.UUID, fc FixtureCompany) {
	if fc.Settings != nil {
		settings := fc.Settings.toRecord(companyID)
		err := s.upsertSettings(ctx, settings)
		report.record(ctx, s.logger, "upsert settings", fc.Name, err)
	}

	for _, ff := range fc.Founders {
		err := s.createFounder(ctx, companyID, ff)
		report.record(ctx, s.logger, "create founder", fc.Name+"/"+ff.Name, err)
	}

	for i := range fc.Rounds {
		in := fc.Rounds[i]
		if in.OrderNumber == 0 {
			in.OrderNumber = i + 1
		}
		_, err := CreateRound(ctx, s.stores.Rounds, companyID, &in)
		report.record(ctx, s.logger, "create round", fc.Name+"/"+in.Name, err)
	}

	for _, fg := range fc.Grants {
		err := s.createGrant(ctx, companyID, fg)
		report.record(ctx, s.logger, "create grant", fc.Name+"/"+fg.EmployeeName, err)
	}

	for _, fs := range fc.Scenarios {
		scenario := models.NewScenario(companyID, fs.Name, fs.ExitValuation, fs.Notes)
		err := s.stores.Scenarios.Create(ctx, scenario)
		report.record(ctx, s.logger, "create scenario", fc.Name+"/"+fs.Name, err)
	}

	for _, fcm := range fc.Comments {
		comment := models.NewComment(companyID, fcm.Author, fcm.Body)
		err := s.stores.Comments.Create(ctx, comment)
		report.record(ctx, s.logger, "create comment", fc.Name+"/"+fcm.Author, err)
	}
}

func (s *Seeder) upsertSettings(ctx context.Context, settings *models.CompanySettings) error {
	if err := models.ValidateSettings(settings).Err(); err != nil {
		return err
	}
	return s.stores.Settings.Upsert(ctx, settings)
}

func (s *Seeder) createFounder(ctx context.Context, companyID uuid.UUID, ff FixtureFounder) error {
	now := time.Now().UTC()
	founder := &models.Founder{
		ID:               uuid.Must(uuid.NewV7()),
		CompanyID:        companyID,
		Name:             ff.Name,
		Role:             ff.Role,
		EquityPercentage: ff.EquityPercentage,
		Shares:           ff.Shares,
		InitialOwnership: ff.InitialOwnership,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := models.ValidateFounder(founder).Err(); err != nil {
		return err
	}
	return s.stores.Founders.Create(ctx, founder)
}

func (s *Seeder) createGrant(ctx context.Context, companyID uuid.UUID, fg FixtureGrant) error {
	grant := fg.toRecord(companyID)
	if err := models.ValidateEsopGrant(grant).Err(); err != nil {
		return err
	}
	return s.stores.Grants.Create(ctx, grant)
}

// CreateRound validates an application-shape round and stores it for the company.
func CreateRound(ctx context.Context, rounds store.FundingRoundStore, companyID uuid.UUID, in *models.FundingRoundInput) (*models.FundingRound, error) {
	if err := models.ValidateFundingRound(in).Err(); err != nil {
		return nil, err
	}

	round := in.ToRecord(companyID)
	if err := rounds.Create(ctx, round); err != nil {
		return nil, err
	}

	return round, nil
}

func (fs *FixtureSettings) toRecord(companyID uuid.UUID) *models.CompanySettings {
	settings := models.DefaultSettings(companyID)
	settings.CurrentValuation = fs.CurrentValuation
	settings.ExitValuation = fs.ExitValuation
	settings.InitialValuation = fs.InitialValuation
	if fs.EsopPoolPercentage != 0 {
		settings.EsopPoolPercentage = fs.EsopPoolPercentage
	}
	if fs.TotalShares != 0 {
		settings.TotalShares = fs.TotalShares
	}
	if fs.LegalStructure != "" {
		settings.LegalStructure = fs.LegalStructure
	}
	return settings
}
