package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/empleobot/internal/database"
)

// NewNotificationsHandler returns a handler for /notificaciones, which flips
// whether the caller receives broadcasts.
func NewNotificationsHandler(deps HandlerDeps) bot.HandlerFunc {
	return notificationsHandler{deps}.Handle
}

type notificationsHandler struct {
	deps HandlerDeps
}

func (h notificationsHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "notifications")

	o, ok := originOf(update)
	if !ok {
		return
	}
	msgs := h.deps.Config.Messages

	if err := h.deps.Board.EnsureUser(ctx, o.profile()); err != nil {
		log.ErrorContext(ctx, "Failed to register user", "error", err, "user_id", o.User.ID)
		send(ctx, b, log, o.ChatID, msgs.StoreError)
		return
	}

	state, err := h.deps.Board.ToggleNotifications(ctx, o.User.ID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to toggle notifications", "error", err, "user_id", o.User.ID)
		send(ctx, b, log, o.ChatID, msgs.StoreError)
		return
	}

	if state == database.NotificationsMuted {
		send(ctx, b, log, o.ChatID, msgs.NotificationsOff)
		return
	}
	send(ctx, b, log, o.ChatID, msgs.NotificationsOn)
}
