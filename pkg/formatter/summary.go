package formatter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/younsl/snapsweep/internal/models"
	"github.com/younsl/snapsweep/pkg/pricing"
)

// PrintAuditSummary prints one row per audited region followed by a grand total
func PrintAuditSummary(w io.Writer, results []*models.AuditResult, prices map[string]PriceInfo) {
	if len(results) == 0 {
		return
	}

	fmt.Fprintln(w, "\n## Stale EBS Snapshots Summary")

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Region", "Mode", "Stale", "Total Size", "Price/GB", "Monthly Saving", "Deleted", "Failed"})

	var count, totalGB, deleted, failed int
	var saving float64
	for _, result := range results {
		mode := "delete"
		if result.DryRun {
			mode = "dry-run"
		}
		price := prices[result.Region]

		t.AppendRow(table.Row{
			result.Region,
			mode,
			result.Count,
			humanize.Comma(int64(result.TotalGB)) + " GB",
			fmt.Sprintf("$%.4f (%s)", price.PerGB, price.Source),
			fmt.Sprintf("$%.2f", result.EstimatedMonthlySaving),
			len(result.DeletedSnapshots),
			len(result.FailedSnapshots),
		})

		count += result.Count
		totalGB += result.TotalGB
		saving += result.EstimatedMonthlySaving
		deleted += len(result.DeletedSnapshots)
		failed += len(result.FailedSnapshots)
	}

	t.AppendFooter(table.Row{
		"Total", "", count,
		humanize.Comma(int64(totalGB)) + " GB",
		"",
		fmt.Sprintf("$%.2f", saving),
		deleted, failed,
	})
	t.Render()
}

// PriceInfo is the price applied to a region and where it came from
type PriceInfo struct {
	PerGB  float64
	Source pricing.PricingSource
}

// PrintJSON writes the results as indented JSON, a single object for one region
func PrintJSON(w io.Writer, results []*models.AuditResult) error {
	var payload interface{} = results
	if len(results) == 1 {
		payload = results[0]
	}

	bytes, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(bytes))
	return err
}
