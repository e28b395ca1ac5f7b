package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/wolfeidau/valuesim/cmd/cli/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Seed           commands.SeedCmd           `cmd:"" help:"Seed companies and their equity data from a YAML or JSON fixture"`
		Companies      commands.CompaniesCmd      `cmd:"" help:"List companies"`
		Inspect        commands.InspectCmd        `cmd:"" help:"Show a company with its cap table"`
		RepairSettings commands.RepairSettingsCmd `cmd:"" help:"Create missing company settings and backfill empty values"`
		ReorderRounds  commands.ReorderRoundsCmd  `cmd:"" help:"Renumber a company's funding rounds by date"`
		ValidateRounds commands.ValidateRoundsCmd `cmd:"" help:"Validate funding rounds in a YAML or JSON file"`
		Migrate        commands.MigrateCmd        `cmd:"" help:"Apply database migrations"`
		Debug          bool                       `help:"Enable debug mode."`
		Version        kong.VersionFlag
	}
)

func main() {
	// database credentials usually live in .env
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := kong.Parse(&cli,
		kong.Name("valuesim"),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
