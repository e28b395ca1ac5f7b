package commands

import (
	"context"
	"fmt"

	"github.com/wolfeidau/valuesim/internal/admin"
	"github.com/wolfeidau/valuesim/internal/config"
)

type SeedCmd struct {
	File  string            `arg:"" help:"fixture file (.yaml, .yml or .json)" type:"existingfile"`
	Store config.StoreFlags `embed:""`
}

func (s *SeedCmd) Run(ctx context.Context, globals *Globals) error {
	log := globals.logger()

	fixture, err := admin.LoadFixture(s.File)
	if err != nil {
		return err
	}

	stores, closeStores, err := globals.openStores(ctx, &s.Store, log)
	if err != nil {
		return err
	}
	defer closeStores()

	log.Info().Str("file", s.File).Int("companies", len(fixture.Companies)).Msg("Seeding")

	report := admin.NewSeeder(stores, log).Seed(ctx, fixture)
	printReport(globals.stdout(), report)

	if err := report.Err(); err != nil {
		return fmt.Errorf("seed incomplete: %w", err)
	}
	return nil
}
