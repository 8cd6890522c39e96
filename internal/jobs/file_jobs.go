package jobs

import (
	"context"

	"studybuddy-backend/internal/logger"
)

// SweepOrphanedFiles removes stored blobs that no file row references, such
// as leftovers from a group deletion whose blob cleanup failed.
func (jr *JobRunner) SweepOrphanedFiles() {
	jr.runWithRecovery("SweepOrphanedFiles", func() {
		removed, err := jr.sweepOrphanedFiles(context.Background())
		if err != nil {
			logger.Error("Failed to sweep orphaned files", "error", err)
			return
		}
		logger.Info("Orphaned file sweep finished", "removed", removed)
	})
}

func (jr *JobRunner) sweepOrphanedFiles(ctx context.Context) (int, error) {
	log := logger.WithJob("orphaned-file-sweep")

	objects, err := jr.blobs.List(ctx)
	if err != nil {
		return 0, err
	}

	// Skip recent blobs so an upload whose row is not yet committed survives.
	cutoff := jr.now().Add(-jr.config.OrphanGrace())
	removed := 0
	for _, obj := range objects {
		if obj.ModTime.After(cutoff) {
			continue
		}
		exists, err := jr.repos.Files.StorageKeyExists(ctx, obj.Key)
		if err != nil {
			log.Error("Failed to check storage key", "key", obj.Key, "error", err)
			continue
		}
		if exists {
			continue
		}
		if err := jr.blobs.Delete(ctx, obj.Key); err != nil {
			log.Error("Failed to delete orphaned file", "key", obj.Key, "error", err)
			continue
		}
		removed++
		log.Debug("Deleted orphaned file", "key", obj.Key, "size", obj.Size)
	}
	return removed, nil
}
