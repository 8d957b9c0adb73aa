package formatter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/younsl/snapsweep/internal/models"
)

// MAX_NAME_WIDTH defines the maximum width for Name column
const MAX_NAME_WIDTH = 20

// PrintSnapshotsTable prints a formatted table of stale snapshots in detection order
func PrintSnapshotsTable(w io.Writer, result *models.AuditResult, pricePerGB float64, scanTime time.Time, scanDuration time.Duration) {
	if len(result.Stale) == 0 {
		fmt.Fprintf(w, "No stale EBS snapshots found in %s.\n", result.Region)
		return
	}

	// kubectl 스타일 tabwriter 설정
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	fmt.Fprintln(tw, "NAME\tSNAPSHOT ID\tVOLUME ID\tSIZE\tAGE\tREASON\tMONTHLY COST")

	for _, snapshot := range result.Stale {
		volumeID := snapshot.VolumeID
		if volumeID == "" {
			volumeID = "-"
		}

		age := "N/A"
		if !snapshot.StartTime.IsZero() {
			age = humanize.RelTime(snapshot.StartTime, scanTime, "ago", "from now")
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%d GB\t%s\t%s\t$%.2f\n",
			formatName(snapshot.Name),
			snapshot.SnapshotID,
			volumeID,
			snapshot.SizeGB,
			age,
			snapshot.Classification,
			float64(snapshot.SizeGB)*pricePerGB,
		)
	}

	fmt.Fprintf(tw, "Total:\t\t\t%s GB\t\t\t$%.2f\n",
		humanize.Comma(int64(result.TotalGB)),
		result.EstimatedMonthlySaving,
	)

	tw.Flush()
	printTimestamp(w, scanTime, scanDuration)
}

// formatName truncates and pads a name to MAX_NAME_WIDTH display columns
func formatName(name string) string {
	if name == "" {
		name = "N/A"
	}

	if StringWidth(name) > MAX_NAME_WIDTH {
		truncated := ""
		currentWidth := 0
		for _, r := range name {
			charWidth := RuneWidth(r)
			if currentWidth+charWidth > MAX_NAME_WIDTH-2 { // -2 for ".."
				break
			}
			truncated += string(r)
			currentWidth += charWidth
		}
		name = truncated + ".."
	}

	if padding := MAX_NAME_WIDTH - StringWidth(name); padding > 0 {
		name += strings.Repeat(" ", padding)
	}
	return name
}
