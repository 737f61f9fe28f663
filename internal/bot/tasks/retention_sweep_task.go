package tasks

import (
	"context"
	"fmt"
	"time"
)

// newRetentionSweepTask creates the scheduled task that removes offers and
// candidate profiles past the retention window.
func newRetentionSweepTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "retention_sweep")

	return func(ctx context.Context) error {
		startTime := time.Now()

		results, err := deps.Pruner.SweepAll(ctx)
		for _, res := range results {
			log.InfoContext(ctx, "Retention sweep result", "table", res.Table, "kept", res.Kept, "removed", res.Removed)
		}
		if err != nil {
			return fmt.Errorf("retention sweep failed: %w", err)
		}

		log.InfoContext(ctx, "Retention sweep completed", "duration", time.Since(startTime))
		return nil
	}
}
