package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/wolfeidau/valuesim/internal/admin"
	"github.com/wolfeidau/valuesim/internal/config"
)

type CompaniesCmd struct {
	Store config.StoreFlags `embed:""`
}

func (c *CompaniesCmd) Run(ctx context.Context, globals *Globals) error {
	stores, closeStores, err := globals.openStores(ctx, &c.Store, globals.logger())
	if err != nil {
		return err
	}
	defer closeStores()

	companies, err := stores.Companies.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	w := globals.stdout()
	if len(companies) == 0 {
		fmt.Fprintln(w, "No companies found.")
		return nil
	}

	fmt.Fprintf(w, "%-36s %-30s %-20s %-20s\n", "Company ID", "Name", "Industry", "Created At")
	rule(w, 110)
	for _, company := range companies {
		fmt.Fprintf(w, "%-36s %-30s %-20s %-20s\n",
			company.ID, company.Name, company.Industry, company.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

type InspectCmd struct {
	CompanyID string            `arg:"" help:"company ID"`
	JSON      bool              `help:"print the snapshot as JSON" default:"false"`
	Store     config.StoreFlags `embed:""`
}

func (c *InspectCmd) Run(ctx context.Context, globals *Globals) error {
	companyID, err := parseCompanyID(c.CompanyID)
	if err != nil {
		return err
	}

	stores, closeStores, err := globals.openStores(ctx, &c.Store, globals.logger())
	if err != nil {
		return err
	}
	defer closeStores()

	snap, err := admin.NewInspector(stores).Inspect(ctx, companyID)
	if err != nil {
		return err
	}

	if c.JSON {
		return printJSON(globals.stdout(), snap)
	}
	printSnapshot(globals.stdout(), snap)
	return nil
}

func printSnapshot(w io.Writer, snap *admin.Snapshot) {
	fmt.Fprintf(w, "%s (%s)\n", snap.Company.Name, snap.Company.ID)
	if snap.Company.Industry != "" {
		fmt.Fprintf(w, "Industry: %s\n", snap.Company.Industry)
	}

	settings := snap.Settings
	missing := ""
	if snap.SettingsMissing {
		missing = " (defaults, no settings stored)"
	}
	fmt.Fprintf(w, "Settings%s: %d shares, %.1f%% ESOP pool, valuation %s, exit %s\n",
		missing, settings.TotalShares, settings.EsopPoolPercentage,
		formatMoney(settings.CurrentValuation), formatMoney(settings.ExitValuation))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Funding rounds (%d):\n", len(snap.Rounds))
	if len(snap.Rounds) > 0 {
		fmt.Fprintf(w, "%-3s %-24s %-18s %-12s %-12s %-10s\n", "#", "Name", "Type", "Raised", "Pre-money", "Date")
		rule(w, 84)
		for _, r := range snap.Rounds {
			fmt.Fprintf(w, "%-3d %-24s %-18s %-12s %-12s %-10s\n",
				r.OrderNumber, r.Name, r.RoundType, formatMoney(r.CapitalRaised), formatMoney(r.Valuation), r.RoundDate.Format("2006-01-02"))
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "ESOP grants (%d):\n", len(snap.Grants))
	for i, g := range snap.Grants {
		fmt.Fprintf(w, "  %-24s %10d granted %10d vested  %s\n", g.EmployeeName, g.SharesGranted, snap.Vesting[i].Vested, g.Status)
	}
	fmt.Fprintln(w)

	if snap.CapTable == nil {
		fmt.Fprintf(w, "Cap table: unavailable (%s)\n", snap.CapTableError)
		return
	}

	fmt.Fprintf(w, "Cap table (%d shares, post-money %s):\n", snap.CapTable.TotalShares, formatMoney(snap.CapTable.PostMoney))
	fmt.Fprintf(w, "%-30s %-10s %14s %9s\n", "Holder", "Class", "Shares", "Own %")
	rule(w, 66)
	for _, h := range snap.CapTable.Holders {
		fmt.Fprintf(w, "%-30s %-10s %14d %8.2f%%\n", h.Name, h.Class, h.Shares, h.Percentage)
	}
	for _, p := range snap.CapTable.PendingConversions {
		fmt.Fprintf(w, "pending %s %s: %s (cap %s, discount %.0f%%)\n",
			p.RoundType, p.Name, formatMoney(p.Amount), formatMoney(p.ValuationCap), p.DiscountRate)
	}
}
