package tasks

import (
	"context"
	"fmt"
	"time"
)

// newSQLMaintenanceTask creates the weekly task that compacts the SQLite file
// after retention sweeps have deleted expired offers and candidates, and
// refreshes the query planner statistics.
func newSQLMaintenanceTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "sql_maintenance")

	return func(ctx context.Context) error {
		before, statsErr := deps.Store.Stats(ctx)
		started := time.Now()

		if err := deps.Store.RunSQLMaintenance(ctx); err != nil {
			return fmt.Errorf("vacuum of job board database failed: %w", err)
		}

		attrs := []any{"duration", time.Since(started)}
		if statsErr == nil {
			attrs = append(attrs, "offers", before.Offers, "candidates", before.Candidates, "users", before.Users)
		}
		log.InfoContext(ctx, "Job board database compacted", attrs...)
		return nil
	}
}
