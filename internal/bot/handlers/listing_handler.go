package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/empleobot/internal/database"
	"github.com/edgard/empleobot/internal/pagination"
)

// NewOffersHandler returns a handler that shows the next page of offers.
// With restart set the listing starts again from the newest offer.
func NewOffersHandler(deps HandlerDeps, restart bool) bot.HandlerFunc {
	return listingHandler{deps: deps, kind: pagination.KindOffers, restart: restart}.Handle
}

// NewCandidatesHandler returns a handler that shows the next page of
// candidate profiles.
func NewCandidatesHandler(deps HandlerDeps, restart bool) bot.HandlerFunc {
	return listingHandler{deps: deps, kind: pagination.KindCandidates, restart: restart}.Handle
}

type listingHandler struct {
	deps    HandlerDeps
	kind    pagination.Kind
	restart bool
}

func (h listingHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "listing", "listing", h.kind)

	o, ok := originOf(update)
	if !ok {
		return
	}
	acknowledge(ctx, b, log, o, "")

	if h.restart {
		h.deps.Cursors.Reset(o.User.ID, h.kind)
	}

	var (
		entries  []string
		page     pageInfo
		err      error
		msgs     = h.deps.Config.Messages
		size     = h.deps.Config.Listing.PageSize
		empty    = msgs.NoOffers
		more     = msgs.MoreOffers
		done     = msgs.AllOffersSeen
		moreData = TokenMoreOffers
	)

	switch h.kind {
	case pagination.KindOffers:
		var offers []database.JobOffer
		if offers, err = h.deps.Board.Offers(ctx); err == nil {
			p := pagination.Advance(h.deps.Cursors, o.User.ID, h.kind, offers, size)
			entries, page = mapItems(p.Items, formatOffer), pageInfo{p.Total, p.More}
		}
	case pagination.KindCandidates:
		empty, more, done, moreData = msgs.NoCandidates, msgs.MoreCandidates, msgs.AllCandidatesSeen, TokenMoreCandidates
		var candidates []database.Candidate
		if candidates, err = h.deps.Board.Candidates(ctx); err == nil {
			p := pagination.Advance(h.deps.Cursors, o.User.ID, h.kind, candidates, size)
			entries, page = mapItems(p.Items, formatCandidate), pageInfo{p.Total, p.More}
		}
	}

	if err != nil {
		log.ErrorContext(ctx, "Failed to load listing", "error", err, "user_id", o.User.ID)
		send(ctx, b, log, o.ChatID, msgs.StoreError)
		return
	}

	if page.total == 0 {
		send(ctx, b, log, o.ChatID, empty)
		return
	}

	for _, entry := range entries {
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    o.ChatID,
			Text:      entry,
			ParseMode: models.ParseModeMarkdown,
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send listing entry", "error", err, "chat_id", o.ChatID)
		}
	}

	log.InfoContext(ctx, "Listing page sent", "user_id", o.User.ID, "entries", len(entries), "total", page.total, "more", page.more)

	if page.more {
		sendWithKeyboard(ctx, b, log, o.ChatID, more, button(msgs.ShowMoreButton, moreData))
		return
	}
	send(ctx, b, log, o.ChatID, done)
}

type pageInfo struct {
	total int
	more  bool
}

func mapItems[T any](items []T, format func(T) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = format(item)
	}
	return out
}

type field struct {
	label string
	value string
}

// formatEntry renders labelled fields as MarkdownV2 with bold labels.
func formatEntry(fields []field) string {
	var sb strings.Builder
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "*%s* %s", bot.EscapeMarkdown(f.label), bot.EscapeMarkdown(f.value))
	}
	return sb.String()
}

func formatOffer(o database.JobOffer) string {
	return formatEntry([]field{
		{"💼 Puesto:", o.Title},
		{"🏢 Empresa:", o.Company},
		{"💰 Salario:", o.Salary},
		{"📝 Descripción:", o.Description},
		{"📱 Contacto:", o.Contact},
		{"📅 Fecha:", o.Date},
	})
}

func formatCandidate(c database.Candidate) string {
	return formatEntry([]field{
		{"👤 Nombre:", c.Name},
		{"🛠️ Trabajo buscado:", c.JobType},
		{"🎓 Escolaridad:", c.Education},
		{"📱 Contacto:", c.Contact},
		{"📅 Fecha:", c.CreatedAt},
	})
}
