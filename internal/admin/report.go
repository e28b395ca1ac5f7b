// Package admin implements the administrative runs used to seed, inspect and
// patch simulator data. Runs are strictly sequential: every item is attempted
// in source order, its outcome is logged and recorded, and a failure never
// stops the run or rolls back earlier items.
package admin

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/wolfeidau/valuesim/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	symbolOK   = "✓"
	symbolFail = "✗"
)

// Outcome is the result of one administrative operation.
type Outcome struct {
	Op     string `json:"op"`
	Target string `json:"target"`
	Error  string `json:"error,omitempty"`
}

// OK reports whether the operation succeeded.
func (o Outcome) OK() bool { return o.Error == "" }

func (o Outcome) String() string {
	if o.OK() {
		return fmt.Sprintf("%s %s %s", symbolOK, o.Op, o.Target)
	}
	return fmt.Sprintf("%s %s %s: %s", symbolFail, o.Op, o.Target, o.Error)
}

// Report collects the outcomes of a run.
type Report struct {
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Items     []Outcome `json:"items"`
}

// Err returns an error summarising the failures, or nil when every item succeeded.
func (r *Report) Err() error {
	if r.Failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d operations failed", r.Failed, r.Failed+r.Succeeded)
}

// record logs and stores one outcome.
func (r *Report) record(ctx context.Context, logger zerolog.Logger, op, target string, err error) {
	outcome := Outcome{Op: op, Target: target}
	if err != nil {
		outcome.Error = err.Error()
		r.Failed++
		logger.Error().Err(err).Str("op", op).Str("target", target).Msg(symbolFail + " " + op)
	} else {
		r.Succeeded++
		logger.Info().Str("op", op).Str("target", target).Msg(symbolOK + " " + op)
	}
	r.Items = append(r.Items, outcome)

	telemetry.GetMetrics().AdminOperationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.Bool("ok", err == nil),
	))
}
