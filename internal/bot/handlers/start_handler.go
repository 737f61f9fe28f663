package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStartHandler returns a handler for the /start command.
func NewStartHandler(deps HandlerDeps) bot.HandlerFunc {
	return startHandler{deps}.Handle
}

// startHandler registers the user and sends the welcome photo.
type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "start")

	o, ok := originOf(update)
	if !ok {
		log.WarnContext(ctx, "Start handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	log.InfoContext(ctx, "Handling /start command", "chat_id", o.ChatID, "user_id", o.User.ID)

	if err := h.deps.Board.EnsureUser(ctx, o.profile()); err != nil {
		log.ErrorContext(ctx, "Failed to register user", "error", err, "user_id", o.User.ID)
	}

	welcome := h.deps.Config.Messages.Welcome
	if url := h.deps.Config.Telegram.WelcomeURL; url != "" {
		_, err := b.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:  o.ChatID,
			Photo:   &models.InputFileString{Data: url},
			Caption: welcome,
		})
		if err == nil {
			log.DebugContext(ctx, "Successfully sent welcome photo", "chat_id", o.ChatID)
			return
		}
		log.WarnContext(ctx, "Failed to send welcome photo, falling back to text", "error", err, "chat_id", o.ChatID)
	}

	send(ctx, b, log, o.ChatID, welcome)
}
