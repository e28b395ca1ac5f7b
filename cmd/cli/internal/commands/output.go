package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/wolfeidau/valuesim/internal/admin"
)

func printReport(w io.Writer, report *admin.Report) {
	for _, item := range report.Items {
		fmt.Fprintln(w, item.String())
	}
	fmt.Fprintf(w, "\n%d succeeded, %d failed\n", report.Succeeded, report.Failed)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func rule(w io.Writer, n int) {
	fmt.Fprintln(w, strings.Repeat("─", n))
}

func formatMoney(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("$%.1fK", v/1e3)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}
