// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/empleobot/internal/ratelimit"
)

// AdminOnly creates a middleware that lets only users on the admin
// allow-list through. Anyone else gets a "Not Authorized" reply.
func AdminOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			o, ok := originOf(update)
			if !ok {
				return
			}

			if !deps.Config.IsAdmin(o.User.ID) {
				log := deps.Logger.With("middleware", "AdminOnly")
				log.WarnContext(ctx, "Unauthorized access attempt", "user_id", o.User.ID, "chat_id", o.ChatID)

				if o.CallbackID != "" {
					acknowledge(ctx, bot, log, o, deps.Config.Messages.NotAuthorized)
					return
				}
				send(ctx, bot, log, o.ChatID, deps.Config.Messages.NotAuthorized)
				return
			}

			next(ctx, bot, update)
		}
	}
}

// RateGate creates a middleware that screens every inbound text message
// before routing. Messages with forbidden content are deleted and answered
// with a warning; users above the rate are asked to slow down. Rejected
// messages reach no handler.
func RateGate(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			msg := update.Message
			if msg == nil || msg.From == nil || msg.Text == "" {
				next(ctx, bot, update)
				return
			}

			decision := deps.Limiter.Check(msg.From.ID, msg.Text, deps.now())
			if decision.Allowed {
				next(ctx, bot, update)
				return
			}

			log := deps.Logger.With("middleware", "RateGate")
			log.InfoContext(ctx, "Message rejected", "user_id", msg.From.ID, "chat_id", msg.Chat.ID, "reason", decision.Reason)

			switch decision.Reason {
			case ratelimit.ReasonContent:
				_, err := bot.DeleteMessage(ctx, &tgbot.DeleteMessageParams{ChatID: msg.Chat.ID, MessageID: msg.ID})
				if err != nil {
					log.WarnContext(ctx, "Failed to delete rejected message", "error", err, "chat_id", msg.Chat.ID, "message_id", msg.ID)
				}
				send(ctx, bot, log, msg.Chat.ID, deps.Config.Messages.ContentRejected)
			case ratelimit.ReasonRate:
				send(ctx, bot, log, msg.Chat.ID, deps.Config.Messages.RateLimited)
			}
		}
	}
}
