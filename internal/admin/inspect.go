package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wolfeidau/valuesim/internal/captable"
	"github.com/wolfeidau/valuesim/internal/models"
	"github.com/wolfeidau/valuesim/internal/store"
	"golang.org/x/sync/errgroup"
)

// Snapshot is everything stored for a company plus its computed cap table.
type Snapshot struct {
	Company         *models.Company         `json:"company"`
	Settings        *models.CompanySettings `json:"settings"`
	SettingsMissing bool                    `json:"settings_missing"`
	Founders        []*models.Founder       `json:"founders"`
	Rounds          []*models.FundingRound  `json:"rounds"`
	Grants          []*models.EsopGrant     `json:"grants"`
	Vesting         []captable.Vesting      `json:"vesting"`
	Scenarios       []*models.Scenario      `json:"scenarios"`
	Comments        []*models.Comment       `json:"comments"`
	CapTable        *captable.Table         `json:"cap_table,omitempty"`
	CapTableError   string                  `json:"cap_table_error,omitempty"`
}

// Inspector reads a company and its children without modifying anything.
type Inspector struct {
	stores store.Stores
	now    func() time.Time
}

// NewInspector creates an inspector reading from stores.
func NewInspector(stores store.Stores) *Inspector {
	return &Inspector{stores: stores, now: time.Now}
}

// Inspect loads a company snapshot. Missing settings are reported and the
// defaults used in their place; they are not created.
func (i *Inspector) Inspect(ctx context.Context, companyID uuid.UUID) (*Snapshot, error) {
	company, err := i.stores.Companies.Get(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	snap := &Snapshot{Company: company}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		settings, err := i.stores.Settings.Get(gctx, companyID)
		if errors.Is(err, store.ErrNotFound) {
			snap.Settings = models.DefaultSettings(companyID)
			snap.SettingsMissing = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		snap.Settings = settings
		return nil
	})
	g.Go(func() (err error) {
		snap.Founders, err = i.stores.Founders.ListByCompany(gctx, companyID)
		return wrap("list founders", err)
	})
	g.Go(func() (err error) {
		snap.Rounds, err = i.stores.Rounds.ListByCompany(gctx, companyID)
		return wrap("list rounds", err)
	})
	g.Go(func() (err error) {
		snap.Grants, err = i.stores.Grants.ListByCompany(gctx, companyID)
		return wrap("list grants", err)
	})
	g.Go(func() (err error) {
		snap.Scenarios, err = i.stores.Scenarios.ListByCompany(gctx, companyID)
		return wrap("list scenarios", err)
	})
	g.Go(func() (err error) {
		snap.Comments, err = i.stores.Comments.ListByCompany(gctx, companyID)
		return wrap("list comments", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	asOf := i.now().UTC()
	snap.Vesting = make([]captable.Vesting, 0, len(snap.Grants))
	for _, grant := range snap.Grants {
		snap.Vesting = append(snap.Vesting, captable.VestingStatus(grant, asOf))
	}

	table, err := captable.Build(snap.Settings, snap.Founders, snap.Rounds, snap.Grants)
	if err != nil {
		snap.CapTableError = err.Error()
	} else {
		snap.CapTable = table
	}

	return snap, nil
}

// ValidateRounds validates each round independently and returns one result
// per input, in order.
func ValidateRounds(rounds []models.FundingRoundInput) []models.ValidationResult {
	results := make([]models.ValidationResult, 0, len(rounds))
	for i := range rounds {
		results = append(results, models.ValidateFundingRound(&rounds[i]))
	}
	return results
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
