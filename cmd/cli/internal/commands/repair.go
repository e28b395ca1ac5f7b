package commands

import (
	"context"
	"fmt"

	"github.com/wolfeidau/valuesim/internal/admin"
	"github.com/wolfeidau/valuesim/internal/config"
)

type RepairSettingsCmd struct {
	DryRun bool              `help:"report what would change without writing" default:"false"`
	Store  config.StoreFlags `embed:""`
}

func (c *RepairSettingsCmd) Run(ctx context.Context, globals *Globals) error {
	log := globals.logger()

	stores, closeStores, err := globals.openStores(ctx, &c.Store, log)
	if err != nil {
		return err
	}
	defer closeStores()

	report, err := admin.NewRepairer(stores, log).RepairOrphanedSettings(ctx, c.DryRun)
	if err != nil {
		return err
	}

	w := globals.stdout()
	if len(report.Items) == 0 {
		fmt.Fprintln(w, "All companies have complete settings.")
		return nil
	}
	printReport(w, report)
	return report.Err()
}

type ReorderRoundsCmd struct {
	CompanyID string            `arg:"" help:"company ID"`
	Store     config.StoreFlags `embed:""`
}

func (c *ReorderRoundsCmd) Run(ctx context.Context, globals *Globals) error {
	companyID, err := parseCompanyID(c.CompanyID)
	if err != nil {
		return err
	}

	log := globals.logger()
	stores, closeStores, err := globals.openStores(ctx, &c.Store, log)
	if err != nil {
		return err
	}
	defer closeStores()

	report, err := admin.NewRepairer(stores, log).ReorderRounds(ctx, companyID)
	if err != nil {
		return err
	}

	w := globals.stdout()
	if len(report.Items) == 0 {
		fmt.Fprintln(w, "Rounds are already in date order.")
		return nil
	}
	printReport(w, report)
	return report.Err()
}
