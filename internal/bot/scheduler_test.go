package bot

import (
	"context"
	"testing"

	"github.com/edgard/empleobot/internal/bot/tasks"
	"github.com/edgard/empleobot/internal/config"
	"github.com/edgard/empleobot/internal/logger"
)

func TestSchedulerSchedulesOnlyValidTasks(t *testing.T) {
	t.Parallel()

	noop := func(context.Context) error { return nil }
	taskMap := map[string]tasks.ScheduledTaskFunc{
		"retention_sweep": noop,
		"sql_maintenance": noop,
		"state_gc":        noop,
	}
	cfg := &config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
		"retention_sweep": {Enabled: true, Schedule: "0 0 3 * * *"},
		"sql_maintenance": {Enabled: false, Schedule: "0 30 4 * * 0"},
		"state_gc":        {Enabled: true, Schedule: "not a cron"},
		"unknown":         {Enabled: true, Schedule: "0 * * * * *"},
	}}

	s, err := NewScheduler(logger.Discard(), cfg, taskMap)
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Stop() })

	if got := s.Jobs(); got != 1 {
		t.Errorf("Jobs() = %d, want 1", got)
	}
	if err := s.Start(); err == nil {
		t.Error("second Start() succeeded")
	}
}

func TestSchedulerStopWhenNotRunning(t *testing.T) {
	t.Parallel()

	s, err := NewScheduler(logger.Discard(), &config.SchedulerConfig{}, nil)
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Errorf("Stop() before Start() error = %v", err)
	}
}
