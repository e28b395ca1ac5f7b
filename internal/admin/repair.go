package admin

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wolfeidau/valuesim/internal/models"
	"github.com/wolfeidau/valuesim/internal/store"
)

// Repairer patches inconsistent data left behind by older versions of the
// application or by partial seeds.
type Repairer struct {
	stores store.Stores
	logger zerolog.Logger
}

// NewRepairer creates a repairer operating on stores.
func NewRepairer(stores store.Stores, logger zerolog.Logger) *Repairer {
	return &Repairer{stores: stores, logger: logger}
}

// RepairOrphanedSettings creates settings for every company that has none and
// fills in zero share counts and valuations on existing settings. With dryRun
// set nothing is written but the report lists what would change.
func (r *Repairer) RepairOrphanedSettings(ctx context.Context, dryRun bool) (*Report, error) {
	missing, err := r.stores.Settings.ListCompanyIDsWithoutSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies without settings: %w", err)
	}

	companies, err := r.stores.Companies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	report := &Report{}

	for _, companyID := range missing {
		settings := models.DefaultSettings(companyID)
		if _, err := r.backfill(ctx, settings, true); err != nil {
			report.record(ctx, r.logger, "create settings", companyID.String(), err)
			continue
		}
		report.record(ctx, r.logger, opName("create settings", dryRun), companyID.String(), r.write(ctx, settings, dryRun))
	}

	for _, company := range companies {
		if slices.Contains(missing, company.ID) {
			continue
		}

		settings, err := r.stores.Settings.Get(ctx, company.ID)
		if err != nil {
			// deleted between listing and now
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			report.record(ctx, r.logger, "backfill settings", company.ID.String(), err)
			continue
		}

		changed, err := r.backfill(ctx, settings, false)
		if err != nil {
			report.record(ctx, r.logger, "backfill settings", company.ID.String(), err)
			continue
		}
		if !changed {
			continue
		}
		settings.UpdatedAt = time.Now().UTC()
		report.record(ctx, r.logger, opName("backfill settings", dryRun), company.ID.String(), r.write(ctx, settings, dryRun))
	}

	return report, nil
}

// backfill fills zero TotalShares from the founders' shares and zero
// CurrentValuation from the latest priced round. Fresh settings also replace
// the default share count. It reports whether anything changed.
func (r *Repairer) backfill(ctx context.Context, settings *models.CompanySettings, fresh bool) (bool, error) {
	changed := false

	if settings.TotalShares == 0 || fresh {
		founders, err := r.stores.Founders.ListByCompany(ctx, settings.CompanyID)
		if err != nil {
			return false, fmt.Errorf("failed to list founders: %w", err)
		}
		var total int64
		for _, f := range founders {
			if f.Active {
				total += f.Shares
			}
		}
		if total > 0 && total != settings.TotalShares {
			settings.TotalShares = total
			changed = true
		}
	}

	if settings.CurrentValuation == 0 {
		rounds, err := r.stores.Rounds.ListByCompany(ctx, settings.CompanyID)
		if err != nil {
			return false, fmt.Errorf("failed to list rounds: %w", err)
		}
		if latest := latestPricedRound(rounds); latest != nil {
			settings.CurrentValuation = latest.PostMoney()
			changed = true
		}
	}

	return changed, nil
}

func (r *Repairer) write(ctx context.Context, settings *models.CompanySettings, dryRun bool) error {
	if dryRun {
		return nil
	}
	return r.stores.Settings.Upsert(ctx, settings)
}

// ReorderRounds renumbers the company's rounds 1..n by round date. Rounds
// sharing a date keep their current relative order.
func (r *Repairer) ReorderRounds(ctx context.Context, companyID uuid.UUID) (*Report, error) {
	if _, err := r.stores.Companies.Get(ctx, companyID); err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	rounds, err := r.stores.Rounds.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}

	slices.SortStableFunc(rounds, func(a, b *models.FundingRound) int {
		return a.RoundDate.Compare(b.RoundDate)
	})

	report := &Report{}
	for i, round := range rounds {
		want := i + 1
		if round.OrderNumber == want {
			continue
		}
		target := fmt.Sprintf("%s (%d -> %d)", round.Name, round.OrderNumber, want)
		round.OrderNumber = want
		round.UpdatedAt = time.Now().UTC()
		report.record(ctx, r.logger, "reorder round", target, r.stores.Rounds.Update(ctx, round))
	}

	return report, nil
}

func latestPricedRound(rounds []*models.FundingRound) *models.FundingRound {
	var latest *models.FundingRound
	for _, round := range rounds {
		if !round.Active || round.IsConvertible() {
			continue
		}
		if latest == nil || !round.RoundDate.Before(latest.RoundDate) {
			latest = round
		}
	}
	return latest
}

func opName(op string, dryRun bool) string {
	if dryRun {
		return op + " (dry run)"
	}
	return op
}
