package auditor

import (
	"github.com/younsl/snapsweep/internal/models"
	"github.com/younsl/snapsweep/pkg/utils"
)

// Protection tags. Keys match exactly, values ignore case.
const (
	TagKeep             = "Keep"
	TagKeepValue        = "true"
	TagEnvironment      = "Environment"
	TagEnvironmentValue = "production"
)

// Classify decides what the audit does with a snapshot given the set of
// volume IDs attached to running or stopped instances
func Classify(snapshot models.SnapshotInfo, activeVolumes map[string]struct{}) models.Classification {
	if IsProtected(snapshot.Tags) {
		return models.ClassificationProtected
	}

	if !snapshot.HasVolume() {
		return models.ClassificationOrphaned
	}

	if _, ok := activeVolumes[snapshot.VolumeID]; !ok {
		return models.ClassificationStale
	}

	return models.ClassificationActive
}

// IsProtected reports whether the tags exclude a snapshot from deletion
func IsProtected(tags map[string]string) bool {
	return protectionReason(tags) != ""
}

func protectionReason(tags map[string]string) string {
	switch {
	case utils.TagValueEqualFold(tags, TagKeep, TagKeepValue):
		return "tag Keep=true"
	case utils.TagValueEqualFold(tags, TagEnvironment, TagEnvironmentValue):
		return "production environment"
	default:
		return ""
	}
}
