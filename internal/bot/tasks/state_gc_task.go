package tasks

import (
	"context"
	"time"
)

// newStateGCTask creates the scheduled task that drops empty rate windows and
// expired pending broadcasts from memory.
func newStateGCTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "state_gc")

	return func(ctx context.Context) error {
		now := time.Now()

		windows := deps.Limiter.Sweep(now)
		broadcasts := deps.Outbox.Expire(now)

		log.DebugContext(ctx, "In-memory state collected", "rate_windows", windows, "pending_broadcasts", broadcasts)
		return nil
	}
}
