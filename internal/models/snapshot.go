package models

import "time"

// SnapshotInfo represents an EBS snapshot owned by the caller
type SnapshotInfo struct {
	SnapshotID  string
	Name        string
	VolumeID    string // empty when the source volume is unknown
	SizeGB      int
	Description string
	StartTime   time.Time
	Tags        map[string]string
}

// HasVolume reports whether the snapshot records its source volume
func (s SnapshotInfo) HasVolume() bool {
	return s.VolumeID != ""
}

// Classification is the audit outcome for a single snapshot
type Classification string

const (
	// ClassificationProtected means a tag excludes the snapshot from the audit
	ClassificationProtected Classification = "Protected"

	// ClassificationOrphaned means the snapshot has no source volume reference
	ClassificationOrphaned Classification = "Orphaned"

	// ClassificationStale means the source volume is not attached to an active instance
	ClassificationStale Classification = "Stale"

	// ClassificationActive means the source volume is still attached
	ClassificationActive Classification = "Active"
)

// IsStale reports whether the snapshot is a deletion candidate
func (c Classification) IsStale() bool {
	return c == ClassificationOrphaned || c == ClassificationStale
}

// StaleSnapshot pairs a deletion candidate with the reason it was selected
type StaleSnapshot struct {
	SnapshotInfo
	Classification Classification
}
