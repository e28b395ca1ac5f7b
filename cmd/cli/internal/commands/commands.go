package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wolfeidau/valuesim/internal/config"
	"github.com/wolfeidau/valuesim/internal/logger"
	"github.com/wolfeidau/valuesim/internal/store"
)

type Globals struct {
	Debug   bool
	Version string

	out    io.Writer
	stores *store.Stores
}

func (g *Globals) stdout() io.Writer {
	if g.out != nil {
		return g.out
	}
	return os.Stdout
}

func (g *Globals) logger() zerolog.Logger {
	return logger.Setup(g.Debug)
}

// openStores opens the configured stores unless the globals already carry some.
func (g *Globals) openStores(ctx context.Context, flags *config.StoreFlags, log zerolog.Logger) (store.Stores, func(), error) {
	if g.stores != nil {
		return *g.stores, func() {}, nil
	}
	return flags.Open(ctx, log)
}

func parseCompanyID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid company id %q: %w", s, err)
	}
	return id, nil
}
