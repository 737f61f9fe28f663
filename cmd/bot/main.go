// Package main contains the entrypoint for the Empleo Telegram bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/edgard/empleobot/internal/board"
	"github.com/edgard/empleobot/internal/bot"
	"github.com/edgard/empleobot/internal/bot/handlers"
	"github.com/edgard/empleobot/internal/bot/tasks"
	"github.com/edgard/empleobot/internal/broadcast"
	"github.com/edgard/empleobot/internal/config"
	"github.com/edgard/empleobot/internal/database"
	"github.com/edgard/empleobot/internal/httpapi"
	"github.com/edgard/empleobot/internal/logger"
	"github.com/edgard/empleobot/internal/pagination"
	"github.com/edgard/empleobot/internal/retention"
	"github.com/edgard/empleobot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes and starts all application components, handles graceful
// shutdown, and returns an exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	// Without a database the bot keeps serving help, menu and cancel and
	// tells users the data is unavailable.
	var store database.Store
	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to open database, continuing without storage", "path", cfg.Database.Path, "error", err)
		store = database.NewUnavailableStore(err)
	} else {
		defer database.CloseDB(db)
		store = database.NewStore(db, log)
	}

	pruner := retention.NewPruner(store, cfg.Retention.MaxAgeDays, log)
	if cfg.Retention.SweepOnStart {
		if _, err := pruner.SweepAll(ctx); err != nil {
			log.Warn("Startup retention sweep failed", "error", err)
		}
	}

	boardSvc := board.NewService(store, pruner, log)
	forms := handlers.NewForms(cfg.Messages)
	limiter := handlers.NewLimiter(cfg.Limits)
	outbox := broadcast.NewOutbox(cfg.Broadcast.PendingTTL)

	hDeps := handlers.HandlerDeps{
		Logger:  log,
		Config:  cfg,
		Board:   boardSvc,
		Forms:   forms,
		Cursors: pagination.NewCursors(),
		Limiter: limiter,
		Outbox:  outbox,
	}
	tDeps := tasks.TaskDeps{
		Logger:  log,
		Store:   store,
		Pruner:  pruner,
		Limiter: limiter,
		Outbox:  outbox,
		Config:  cfg,
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log), handlers.RateGate(hDeps)),
		tgbot.WithDefaultHandler(handlers.NewTextHandler(hDeps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	cfg.Telegram.BotInfo, err = tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", cfg.Telegram.BotInfo.ID, "bot_username", cfg.Telegram.BotInfo.Username)

	if err := telegram.RegisterHandlers(tg, log, handlers.RegisterAllCommands(hDeps)); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}
	if err := telegram.SetCommands(ctx, tg, log, handlers.BotCommands(cfg.Commands)); err != nil {
		log.Warn("Failed to publish command menu", "error", err)
	}

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	var server *http.Server
	if cfg.HTTP.Addr != "" {
		router := httpapi.NewRouter(boardSvc, httpapi.Gauges{
			OpenForms:         forms.Len,
			PendingBroadcasts: outbox.Len,
		}, log)
		server = httpapi.NewServer(cfg.HTTP.Addr, router)
	}

	app := bot.NewBot(log, cfg, tg, sched, server)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
