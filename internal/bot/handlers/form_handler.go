package handlers

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/empleobot/internal/conversation"
)

// NewOfferFormHandler returns the entry point of the offer form, served by
// /ofertar and the start-offer button.
func NewOfferFormHandler(deps HandlerDeps) bot.HandlerFunc {
	return formEntryHandler{deps: deps, kind: conversation.KindOffer}.Handle
}

// NewCandidateFormHandler returns the entry point of the candidate form,
// served by /buscoempleo and the start-candidate button.
func NewCandidateFormHandler(deps HandlerDeps) bot.HandlerFunc {
	return formEntryHandler{deps: deps, kind: conversation.KindCandidate}.Handle
}

type formEntryHandler struct {
	deps HandlerDeps
	kind conversation.Kind
}

func (h formEntryHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "form_start", "form", h.kind)

	o, ok := originOf(update)
	if !ok {
		return
	}
	acknowledge(ctx, b, log, o, "")

	if err := h.deps.Board.EnsureUser(ctx, o.profile()); err != nil {
		log.WarnContext(ctx, "Failed to register user at form start", "error", err, "user_id", o.User.ID)
	}

	prompt, superseded, err := h.deps.Forms.Start(o.User.ID, h.kind)
	if err != nil {
		log.ErrorContext(ctx, "Failed to start form", "error", err, "user_id", o.User.ID)
		return
	}
	if superseded {
		log.InfoContext(ctx, "Open form superseded", "user_id", o.User.ID)
		send(ctx, b, log, o.ChatID, h.deps.Config.Messages.FormSuperseded)
	}

	log.InfoContext(ctx, "Form started", "user_id", o.User.ID, "chat_id", o.ChatID)
	send(ctx, b, log, o.ChatID, prompt)
}

// NewCancelHandler returns a handler for the /cancelar command.
func NewCancelHandler(deps HandlerDeps) bot.HandlerFunc {
	return cancelHandler{deps}.Handle
}

type cancelHandler struct {
	deps HandlerDeps
}

func (h cancelHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "cancel")

	o, ok := originOf(update)
	if !ok {
		return
	}

	kind, ok := h.deps.Forms.Cancel(o.User.ID)
	if !ok {
		send(ctx, b, log, o.ChatID, h.deps.Config.Messages.NothingToCancel)
		return
	}

	log.InfoContext(ctx, "Form cancelled", "user_id", o.User.ID, "form", kind)
	msgs := h.deps.Config.Messages
	if kind == conversation.KindCandidate {
		send(ctx, b, log, o.ChatID, msgs.CandidateCancelled)
		return
	}
	send(ctx, b, log, o.ChatID, msgs.OfferCancelled)
}

// NewTextHandler returns the default handler. It feeds free text to the
// user's open form and commits the record once the form is complete.
// Without an open form the user is pointed to the menu.
func NewTextHandler(deps HandlerDeps) bot.HandlerFunc {
	return textHandler{deps}.Handle
}

type textHandler struct {
	deps HandlerDeps
}

func (h textHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "text")

	if update.CallbackQuery != nil {
		o, _ := originOf(update)
		log.DebugContext(ctx, "Unhandled callback data", "data", o.Text, "user_id", o.User.ID)
		acknowledge(ctx, b, log, o, "")
		return
	}

	o, ok := originOf(update)
	if !ok {
		return
	}

	if _, _, active := h.deps.Forms.Active(o.User.ID); !active {
		if h.deps.Config.Messages.NoMatch != "" && update.Message.Chat.Type == "private" {
			send(ctx, b, log, o.ChatID, h.deps.Config.Messages.NoMatch)
		}
		return
	}

	// Commands and non-text messages are not answers; repeat the question.
	if isCommand(o.Text) {
		h.reprompt(ctx, b, o)
		return
	}

	reply, err := h.deps.Forms.Answer(o.User.ID, o.Text)
	switch {
	case errors.Is(err, conversation.ErrEmptyAnswer):
		h.reprompt(ctx, b, o)
		return
	case errors.Is(err, conversation.ErrNoSession):
		// Cancelled or superseded concurrently.
		return
	case err != nil:
		log.ErrorContext(ctx, "Failed to record answer", "error", err, "user_id", o.User.ID)
		return
	}

	if !reply.Done {
		log.DebugContext(ctx, "Answer recorded", "user_id", o.User.ID, "next_state", reply.State)
		send(ctx, b, log, o.ChatID, reply.Prompt)
		return
	}

	h.commit(ctx, b, o, reply.Submission)
}

func (h textHandler) reprompt(ctx context.Context, b *bot.Bot, o origin) {
	if prompt, ok := h.deps.Forms.Prompt(o.User.ID); ok {
		send(ctx, b, h.deps.Logger, o.ChatID, prompt)
	}
}

func (h textHandler) commit(ctx context.Context, b *bot.Bot, o origin, sub *conversation.Submission) {
	log := h.deps.Logger.With("handler", "text", "form", sub.Kind)
	msgs := h.deps.Config.Messages

	success, failure := msgs.OfferPublished, msgs.OfferFailed
	if sub.Kind == conversation.KindCandidate {
		success, failure = msgs.CandidateRegistered, msgs.CandidateFailed
	}

	if err := h.deps.Board.Submit(ctx, sub); err != nil {
		log.ErrorContext(ctx, "Failed to commit submission", "error", err, "user_id", o.User.ID)
		send(ctx, b, log, o.ChatID, failure)
		return
	}

	log.InfoContext(ctx, "Submission committed", "user_id", o.User.ID)
	send(ctx, b, log, o.ChatID, success)
}
