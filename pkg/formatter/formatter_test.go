package formatter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/younsl/snapsweep/internal/models"
	"github.com/younsl/snapsweep/pkg/pricing"
)

func sampleResult() *models.AuditResult {
	started := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &models.AuditResult{
		DeletedSnapshots:       []string{},
		StaleSnapshotsDetected: []string{"snap-b", "snap-c"},
		Count:                  2,
		TotalGB:                40,
		EstimatedMonthlySaving: 4,
		DryRun:                 true,
		Region:                 "us-east-1",
		Stale: []models.StaleSnapshot{
			{
				SnapshotInfo:   models.SnapshotInfo{SnapshotID: "snap-b", SizeGB: 30, StartTime: started},
				Classification: models.ClassificationOrphaned,
			},
			{
				SnapshotInfo:   models.SnapshotInfo{SnapshotID: "snap-c", Name: "db-nightly", VolumeID: "vol-1", SizeGB: 10},
				Classification: models.ClassificationStale,
			},
		},
	}
}

func TestFormatName(t *testing.T) {
	if got := formatName(""); strings.TrimSpace(got) != "N/A" || StringWidth(got) != MAX_NAME_WIDTH {
		t.Fatalf("unexpected empty name formatting %q", got)
	}

	long := formatName("very-long-snapshot-name-for-nightly-backups")
	if !strings.HasSuffix(long, "..") || StringWidth(long) != MAX_NAME_WIDTH {
		t.Fatalf("unexpected truncation %q (width %d)", long, StringWidth(long))
	}

	korean := formatName("데이터베이스백업스냅샷테스트")
	if StringWidth(korean) > MAX_NAME_WIDTH {
		t.Fatalf("expected CJK name to fit in %d columns, got %d", MAX_NAME_WIDTH, StringWidth(korean))
	}
}

func TestPrintSnapshotsTable(t *testing.T) {
	var buf bytes.Buffer
	scanTime := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	PrintSnapshotsTable(&buf, sampleResult(), 0.10, scanTime, 1500*time.Millisecond)

	out := buf.String()
	for _, want := range []string{"SNAPSHOT ID", "snap-b", "Orphaned", "db-nightly", "vol-1", "ago", "$3.00", "$4.00", "took 1.50s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected table to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPrintSnapshotsTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	PrintSnapshotsTable(&buf, &models.AuditResult{Region: "eu-west-1"}, 0.05, time.Now(), 0)
	if !strings.Contains(buf.String(), "No stale EBS snapshots found in eu-west-1") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestPrintAuditSummary(t *testing.T) {
	var buf bytes.Buffer
	prices := map[string]PriceInfo{"us-east-1": {PerGB: 0.10, Source: pricing.PricingSourceConfigured}}
	PrintAuditSummary(&buf, []*models.AuditResult{sampleResult()}, prices)

	out := buf.String()
	for _, want := range []string{"us-east-1", "dry-run", "40 GB", "$0.1000 (Configured)", "$4.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected summary to contain %q, got:\n%s", want, out)
		}
	}
}

func TestPrintJSONContract(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintJSON(&buf, []*models.AuditResult{sampleResult()}); err != nil {
		t.Fatalf("PrintJSON: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("expected a single JSON object: %v", err)
	}
	for _, key := range []string{"deleted_snapshots", "stale_snapshots_detected", "count", "total_gb", "estimated_monthly_saving", "dry_run"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("missing key %q in %s", key, buf.String())
		}
	}
	if _, ok := decoded["failed_snapshots"]; ok {
		t.Fatalf("expected failed_snapshots to be omitted when empty")
	}
	if deleted, ok := decoded["deleted_snapshots"].([]interface{}); !ok || len(deleted) != 0 {
		t.Fatalf("expected empty deleted_snapshots array, got %#v", decoded["deleted_snapshots"])
	}
}

func TestPrintPricingStats(t *testing.T) {
	var buf bytes.Buffer
	PrintPricingStats(&buf, pricing.Stats{Success: 3, Failure: 1, CacheHit: 2})

	out := buf.String()
	for _, want := range []string{"Pricing API Call Statistics", "CACHE HITS", "75.0%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected stats to contain %q, got:\n%s", want, out)
		}
	}

	buf.Reset()
	PrintPricingStats(&buf, pricing.Stats{})
	if buf.Len() != 0 {
		t.Fatalf("expected no output without pricing calls, got %q", buf.String())
	}
}
