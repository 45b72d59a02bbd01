package report

import (
	"fmt"
	"io"
	"strings"
)

type SummaryRow struct {
	DisplayName    string
	Tier           string
	IndicatorCount int
	TopMatch       string
}

// PrintSummary prints one line per mapped category followed by totals.
func PrintSummary(w io.Writer, rows []SummaryRow) {
	rule := strings.Repeat("=", 90)
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "%-30s %-8s %-10s %-35s\n", "HELM Category", "Tier", "NIST Indicators", "Top NIST Match")
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 90))

	pairs := 0
	for _, r := range rows {
		top := r.TopMatch
		if top == "" {
			top = "(none)"
		}
		fmt.Fprintf(w, "%-30s %-8s %-10d %-35s\n", r.DisplayName, r.Tier, r.IndicatorCount, top)
		pairs += r.IndicatorCount
	}
	fmt.Fprintf(w, "%s\n", rule)

	fmt.Fprintf(w, "\nTotal HELM categories mapped: %d\n", len(rows))
	fmt.Fprintf(w, "Total HELM->NIST pairs:       %d\n", pairs)
}
