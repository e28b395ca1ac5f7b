// Package config holds the command line and environment configuration shared
// by the simulator binaries.
package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wolfeidau/valuesim/internal/store"
	memorystore "github.com/wolfeidau/valuesim/internal/store/memory"
	postgresstore "github.com/wolfeidau/valuesim/internal/store/postgres"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// StoreFlags selects and configures the storage backend.
type StoreFlags struct {
	StoreType string        `help:"store type (memory or postgres)" default:"postgres" env:"VALUESIM_STORE_TYPE" enum:"memory,postgres"`
	Postgres  PostgresFlags `embed:"" prefix:"postgres-"`
}

// PostgresFlags configures the PostgreSQL connection pool.
type PostgresFlags struct {
	// Connection Configuration
	ConnString string `help:"PostgreSQL connection string" env:"VALUESIM_DATABASE_URL,DATABASE_URL"`

	// Connection Pool Configuration
	MaxConns            int32 `help:"maximum number of connections in pool" default:"20"`
	MinConns            int32 `help:"minimum number of connections in pool" default:"5"`
	MaxConnLifetime     int32 `help:"maximum connection lifetime in seconds" default:"3600"`
	MaxConnIdleTime     int32 `help:"maximum connection idle time in seconds" default:"1800"`
	StartupRetryTimeout int32 `help:"seconds to keep retrying the first connection" default:"30" env:"VALUESIM_POSTGRES_STARTUP_RETRY"`

	// Migration Configuration
	AutoMigrate bool `help:"run database migrations on startup" default:"false" env:"VALUESIM_POSTGRES_AUTO_MIGRATE"`
}

func (p *PostgresFlags) Validate() error {
	if p.ConnString == "" {
		return errors.New("PostgreSQL connection string is required (--postgres-conn-string or VALUESIM_DATABASE_URL)")
	}
	return nil
}

// PoolConfig converts the flags into a pool configuration.
func (p *PostgresFlags) PoolConfig() *postgresstore.PoolConfig {
	return &postgresstore.PoolConfig{
		ConnString:          p.ConnString,
		MaxConns:            p.MaxConns,
		MinConns:            p.MinConns,
		MaxConnLifetime:     p.MaxConnLifetime,
		MaxConnIdleTime:     p.MaxConnIdleTime,
		StartupRetryTimeout: p.StartupRetryTimeout,
	}
}

// Open creates the configured stores. The returned close function releases
// any connections and must be called once the stores are no longer used.
func (s *StoreFlags) Open(ctx context.Context, log zerolog.Logger) (store.Stores, func(), error) {
	switch s.StoreType {
	case StorePostgres:
		if err := s.Postgres.Validate(); err != nil {
			return store.Stores{}, nil, err
		}

		pool, err := postgresstore.NewPool(ctx, s.Postgres.PoolConfig())
		if err != nil {
			return store.Stores{}, nil, fmt.Errorf("failed to create connection pool: %w", err)
		}

		if s.Postgres.AutoMigrate {
			if err := postgresstore.RunMigrations(ctx, pool); err != nil {
				pool.Close()
				return store.Stores{}, nil, fmt.Errorf("failed to run migrations: %w", err)
			}
			log.Info().Msg("Database migrations completed")
		}

		log.Info().Msg("Using PostgreSQL stores with shared connection pool")
		return postgresstore.NewStores(pool), pool.Close, nil

	case StoreMemory:
		log.Warn().Msg("Using in-memory stores, data is lost on exit")
		return memorystore.NewStores(), func() {}, nil

	default:
		return store.Stores{}, nil, fmt.Errorf("unknown store type %q", s.StoreType)
	}
}
