// Package tasks implements the scheduled maintenance tasks of the Empleo bot.
package tasks

import (
	"log/slog"

	"github.com/edgard/empleobot/internal/broadcast"
	"github.com/edgard/empleobot/internal/config"
	"github.com/edgard/empleobot/internal/database"
	"github.com/edgard/empleobot/internal/ratelimit"
	"github.com/edgard/empleobot/internal/retention"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger  *slog.Logger
	Store   database.Store
	Pruner  *retention.Pruner
	Limiter *ratelimit.Limiter
	Outbox  *broadcast.Outbox
	Config  *config.Config
}
