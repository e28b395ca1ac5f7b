package commands

import (
	"context"
	"fmt"

	"github.com/wolfeidau/valuesim/internal/admin"
)

type ValidateRoundsCmd struct {
	File string `arg:"" help:"file holding a list of rounds (.yaml, .yml or .json)" type:"existingfile"`
	JSON bool   `help:"print results as JSON" default:"false"`
}

type roundValidation struct {
	Name   string   `json:"name"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func (c *ValidateRoundsCmd) Run(ctx context.Context, globals *Globals) error {
	rounds, err := admin.LoadRoundInputs(c.File)
	if err != nil {
		return err
	}

	results := admin.ValidateRounds(rounds)

	out := make([]roundValidation, len(results))
	invalid := 0
	for i, result := range results {
		out[i] = roundValidation{Name: rounds[i].Name, Valid: result.Valid, Errors: result.Errors}
		if !result.Valid {
			invalid++
		}
	}

	w := globals.stdout()
	if c.JSON {
		if err := printJSON(w, out); err != nil {
			return err
		}
	} else {
		for i, v := range out {
			name := v.Name
			if name == "" {
				name = fmt.Sprintf("round %d", i+1)
			}
			if v.Valid {
				fmt.Fprintf(w, "✓ %s\n", name)
				continue
			}
			fmt.Fprintf(w, "✗ %s\n", name)
			for _, msg := range v.Errors {
				fmt.Fprintf(w, "    - %s\n", msg)
			}
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d rounds are invalid", invalid, len(rounds))
	}
	return nil
}
