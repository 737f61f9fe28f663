package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Callback data of the menu and listing buttons.
const (
	TokenStartOffer     = "start-offer"
	TokenStartCandidate = "start-candidate"
	TokenShowOffers     = "show-offers"
	TokenShowCandidates = "show-candidates"
	TokenMoreOffers     = "more-offers"
	TokenMoreCandidates = "more-candidates"
	TokenHelp           = "help"
)

// NewMenuHandler returns a handler for the /menu command.
func NewMenuHandler(deps HandlerDeps) bot.HandlerFunc {
	return menuHandler{deps}.Handle
}

type menuHandler struct {
	deps HandlerDeps
}

func (h menuHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "menu")

	o, ok := originOf(update)
	if !ok {
		return
	}
	log.InfoContext(ctx, "Showing menu", "chat_id", o.ChatID, "user_id", o.User.ID)

	msgs := h.deps.Config.Messages
	sendWithKeyboard(ctx, b, log, o.ChatID, msgs.Menu,
		button(msgs.MenuOffers, TokenShowOffers),
		button(msgs.MenuOffer, TokenStartOffer),
		button(msgs.MenuCandidate, TokenStartCandidate),
		button(msgs.MenuCandidates, TokenShowCandidates),
		button(msgs.MenuHelp, TokenHelp),
	)
}
