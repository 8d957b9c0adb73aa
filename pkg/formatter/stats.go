package formatter

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/younsl/snapsweep/pkg/pricing"
)

// PrintPricingStats prints the statistics of pricing API calls
func PrintPricingStats(w io.Writer, stats pricing.Stats) {
	total := stats.Success + stats.Failure
	if total == 0 && stats.CacheHit == 0 {
		return
	}

	fmt.Fprintln(w, "\n## AWS Pricing API Call Statistics")

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "API CALLS\tSUCCESS\tFAILURE\tCACHE HITS\tSUCCESS RATE")

	successRate := 0.0
	if total > 0 {
		successRate = float64(stats.Success) / float64(total) * 100.0
	}

	fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%.1f%%\n",
		total,
		stats.Success,
		stats.Failure,
		stats.CacheHit,
		successRate,
	)
	tw.Flush()
}
