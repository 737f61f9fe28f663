package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/empleobot/internal/broadcast"
)

// NewBroadcastHandler returns a handler for /difundir. It stages the text and
// asks the admin to confirm before anything is sent.
func NewBroadcastHandler(deps HandlerDeps) bot.HandlerFunc {
	return broadcastHandler{deps}.Handle
}

type broadcastHandler struct {
	deps HandlerDeps
}

func (h broadcastHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "broadcast")

	o, ok := originOf(update)
	if !ok {
		return
	}
	msgs := h.deps.Config.Messages

	text := commandArgs(o.Text)
	if text == "" {
		send(ctx, b, log, o.ChatID, msgs.BroadcastUsage)
		return
	}

	pending := h.deps.Outbox.Stage(o.User.ID, text, h.deps.now())
	log.InfoContext(ctx, "Broadcast staged", "user_id", o.User.ID, "handle", pending.ID, "length", len(text))

	sendWithKeyboard(ctx, b, log, o.ChatID, fmt.Sprintf(msgs.BroadcastPreview, text),
		[]models.InlineKeyboardButton{
			{Text: msgs.BroadcastConfirm, CallbackData: broadcast.ConfirmToken(pending.ID)},
			{Text: msgs.BroadcastAbort, CallbackData: broadcast.CancelToken(pending.ID)},
		},
	)
}

// NewBroadcastCallbackHandler returns a handler for the confirm and cancel
// buttons of a staged broadcast.
func NewBroadcastCallbackHandler(deps HandlerDeps) bot.HandlerFunc {
	return broadcastCallbackHandler{deps}.Handle
}

type broadcastCallbackHandler struct {
	deps HandlerDeps
}

func (h broadcastCallbackHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "broadcast_callback")

	o, ok := originOf(update)
	if !ok || o.CallbackID == "" {
		return
	}
	msgs := h.deps.Config.Messages

	action, id, ok := broadcast.ParseToken(o.Text)
	if !ok {
		acknowledge(ctx, b, log, o, "")
		return
	}

	if action == broadcast.CancelPrefix {
		err := h.deps.Outbox.Discard(id, o.User.ID)
		switch {
		case errors.Is(err, broadcast.ErrNotAuthor):
			acknowledge(ctx, b, log, o, msgs.NotAuthorized)
		case err != nil:
			acknowledge(ctx, b, log, o, msgs.BroadcastExpired)
		default:
			acknowledge(ctx, b, log, o, "")
			send(ctx, b, log, o.ChatID, msgs.BroadcastCancelled)
		}
		return
	}

	pending, err := h.deps.Outbox.Take(id, o.User.ID, h.deps.now())
	if err != nil {
		log.InfoContext(ctx, "Broadcast confirmation rejected", "user_id", o.User.ID, "handle", id, "error", err)
		if errors.Is(err, broadcast.ErrNotAuthor) {
			acknowledge(ctx, b, log, o, msgs.NotAuthorized)
			return
		}
		acknowledge(ctx, b, log, o, msgs.BroadcastExpired)
		return
	}
	acknowledge(ctx, b, log, o, "")

	recipients, err := h.deps.Board.Recipients(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load broadcast recipients", "error", err)
		send(ctx, b, log, o.ChatID, msgs.StoreError)
		return
	}

	send(ctx, b, log, o.ChatID, fmt.Sprintf(msgs.BroadcastStarted, len(recipients)))
	log.InfoContext(ctx, "Broadcast confirmed", "user_id", o.User.ID, "handle", pending.ID, "recipients", len(recipients))

	sender := broadcast.SenderFunc(func(ctx context.Context, chatID int64, text string) error {
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
		return err
	})
	res := broadcast.Deliver(ctx, sender, recipients, pending.Text, h.deps.Config.Broadcast.Delay, log)

	send(ctx, b, log, o.ChatID, fmt.Sprintf(msgs.BroadcastSummary, res.Sent, res.Failed, res.Total))
}
