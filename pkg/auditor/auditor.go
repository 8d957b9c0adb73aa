package auditor

import (
	"context"
	"fmt"

	"github.com/inconshreveable/log15"
	"github.com/younsl/snapsweep/internal/config"
	"github.com/younsl/snapsweep/internal/logging"
	"github.com/younsl/snapsweep/internal/models"
)

// SnapshotStore lists snapshots and the volumes in use, and deletes snapshots
type SnapshotStore interface {
	Region() string
	GetActiveVolumeIDs(ctx context.Context) (map[string]struct{}, error)
	ListOwnedSnapshots(ctx context.Context) ([]models.SnapshotInfo, error)
	DeleteSnapshot(ctx context.Context, snapshotID string) error
}

// Publisher receives the result of every completed run
type Publisher interface {
	Publish(ctx context.Context, result *models.AuditResult) error
}

// Auditor finds stale snapshots and deletes them unless running dry
type Auditor struct {
	store     SnapshotStore
	cfg       config.Config
	log       log15.Logger
	publisher Publisher
}

// Option configures an Auditor
type Option func(*Auditor)

// WithLogger sets the logger for progress lines
func WithLogger(logger log15.Logger) Option {
	return func(a *Auditor) {
		a.log = logger
	}
}

// WithPublisher sets where run results are published
func WithPublisher(publisher Publisher) Option {
	return func(a *Auditor) {
		a.publisher = publisher
	}
}

// New creates an Auditor for one invocation
func New(store SnapshotStore, cfg config.Config, opts ...Option) *Auditor {
	a := &Auditor{
		store: store,
		cfg:   cfg,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = logging.Discard()
	}
	a.log = a.log.New("region", store.Region())
	return a
}

// Run performs one audit pass. Listing failures abort the run; a failed
// deletion is logged and the remaining snapshots are still processed.
func (a *Auditor) Run(ctx context.Context) (*models.AuditResult, error) {
	activeVolumes, err := a.store.GetActiveVolumeIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing active volumes: %w", err)
	}

	snapshots, err := a.store.ListOwnedSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing snapshots: %w", err)
	}

	result := a.evaluate(snapshots, activeVolumes)

	a.log.Info("found stale snapshots",
		"count", result.Count,
		"total_gb", result.TotalGB,
		"estimated_saving", fmt.Sprintf("$%.2f/month", result.EstimatedMonthlySaving))
	a.log.Info("deletion mode", "dry_run", result.DryRun)

	if a.cfg.DryRun {
		for _, id := range result.StaleSnapshotsDetected {
			a.log.Info("[DRY-RUN] would delete stale snapshot", "snapshot", id)
		}
	} else {
		a.deleteStale(ctx, result)
	}

	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, result); err != nil {
			a.log.Warn("failed to publish audit metrics", "err", err)
		}
	}

	return result, nil
}

// evaluate classifies snapshots in listing order and totals the stale ones
func (a *Auditor) evaluate(snapshots []models.SnapshotInfo, activeVolumes map[string]struct{}) *models.AuditResult {
	result := &models.AuditResult{
		DeletedSnapshots:       []string{},
		StaleSnapshotsDetected: []string{},
		DryRun:                 a.cfg.DryRun,
		Region:                 a.store.Region(),
	}

	for _, snapshot := range snapshots {
		class := Classify(snapshot, activeVolumes)

		switch class {
		case models.ClassificationProtected:
			a.log.Info("skipping snapshot", "snapshot", snapshot.SnapshotID, "reason", protectionReason(snapshot.Tags))
		case models.ClassificationOrphaned:
			a.log.Info("snapshot has no source volume, marking as stale", "snapshot", snapshot.SnapshotID)
		case models.ClassificationStale:
			a.log.Info("snapshot is not linked to an active volume, marking as stale",
				"snapshot", snapshot.SnapshotID, "volume", snapshot.VolumeID)
		case models.ClassificationActive:
			a.log.Info("snapshot still belongs to active volume",
				"snapshot", snapshot.SnapshotID, "volume", snapshot.VolumeID)
		}

		if !class.IsStale() {
			continue
		}
		result.StaleSnapshotsDetected = append(result.StaleSnapshotsDetected, snapshot.SnapshotID)
		result.Stale = append(result.Stale, models.StaleSnapshot{SnapshotInfo: snapshot, Classification: class})
		result.TotalGB += snapshot.SizeGB
	}

	result.Count = len(result.StaleSnapshotsDetected)
	result.EstimatedMonthlySaving = float64(result.TotalGB) * a.cfg.SnapshotPrice
	return result
}

func (a *Auditor) deleteStale(ctx context.Context, result *models.AuditResult) {
	for _, id := range result.StaleSnapshotsDetected {
		a.log.Info("deleting stale snapshot", "snapshot", id)
		if err := a.store.DeleteSnapshot(ctx, id); err != nil {
			a.log.Error("failed to delete snapshot", "snapshot", id, "err", err)
			result.FailedSnapshots = append(result.FailedSnapshots, id)
			continue
		}
		result.DeletedSnapshots = append(result.DeletedSnapshots, id)
	}
}
