package models

// AuditResult is the summary returned by a single audit run
type AuditResult struct {
	DeletedSnapshots       []string `json:"deleted_snapshots"`
	StaleSnapshotsDetected []string `json:"stale_snapshots_detected"`
	Count                  int      `json:"count"`
	TotalGB                int      `json:"total_gb"`
	EstimatedMonthlySaving float64  `json:"estimated_monthly_saving"`
	DryRun                 bool     `json:"dry_run"`
	FailedSnapshots        []string `json:"failed_snapshots,omitempty"`

	// Stale carries the full records behind StaleSnapshotsDetected for table output
	Stale  []StaleSnapshot `json:"-"`
	Region string          `json:"-"`
}
