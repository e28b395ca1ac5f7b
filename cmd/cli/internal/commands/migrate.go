package commands

import (
	"context"
	"fmt"

	"github.com/wolfeidau/valuesim/internal/config"
	postgresstore "github.com/wolfeidau/valuesim/internal/store/postgres"
)

type MigrateCmd struct {
	Postgres config.PostgresFlags `embed:"" prefix:"postgres-"`
}

func (c *MigrateCmd) Run(ctx context.Context, globals *Globals) error {
	log := globals.logger()

	if err := c.Postgres.Validate(); err != nil {
		return err
	}

	pool, err := postgresstore.NewPool(ctx, c.Postgres.PoolConfig())
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	if err := postgresstore.RunMigrations(ctx, pool); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("Database migrations completed")
	fmt.Fprintln(globals.stdout(), "Migrations applied.")
	return nil
}
