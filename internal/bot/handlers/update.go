package handlers

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/empleobot/internal/board"
)

// origin describes who sent an update and where replies go. Commands arrive
// as messages and menu buttons as callback queries; handlers serving both
// read them through origin.
type origin struct {
	ChatID     int64
	User       models.User
	Text       string
	MessageID  int
	CallbackID string
}

func originOf(update *models.Update) (origin, bool) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		msg := update.Message
		return origin{
			ChatID:    msg.Chat.ID,
			User:      *msg.From,
			Text:      msg.Text,
			MessageID: msg.ID,
		}, true
	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		o := origin{
			ChatID:     cq.From.ID,
			User:       cq.From,
			Text:       cq.Data,
			CallbackID: cq.ID,
		}
		if cq.Message.Message != nil {
			o.ChatID = cq.Message.Message.Chat.ID
		} else if cq.Message.InaccessibleMessage != nil {
			o.ChatID = cq.Message.InaccessibleMessage.Chat.ID
		}
		return o, true
	default:
		return origin{}, false
	}
}

func (o origin) profile() board.Profile {
	return board.Profile{
		UserID:    o.User.ID,
		ChatID:    o.ChatID,
		FirstName: o.User.FirstName,
		Username:  o.User.Username,
	}
}

// send delivers a plain text message, logging failures.
func send(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		log.ErrorContext(ctx, "Failed to send message", "error", err, "chat_id", chatID)
	}
}

// sendWithKeyboard delivers a text message with an inline keyboard.
func sendWithKeyboard(ctx context.Context, b *bot.Bot, log *slog.Logger, chatID int64, text string, rows ...[]models.InlineKeyboardButton) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: rows},
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send message with keyboard", "error", err, "chat_id", chatID)
	}
}

// acknowledge answers a callback query so the client stops its spinner.
// It does nothing for message updates.
func acknowledge(ctx context.Context, b *bot.Bot, log *slog.Logger, o origin, text string) {
	if o.CallbackID == "" {
		return
	}
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: o.CallbackID,
		Text:            text,
	})
	if err != nil {
		log.WarnContext(ctx, "Failed to answer callback query", "error", err, "callback_query_id", o.CallbackID)
	}
}

func button(text, data string) []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{{Text: text, CallbackData: data}}
}

// commandArgs returns the text following the leading /command token.
func commandArgs(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return text
	}
	idx := strings.IndexFunc(text, unicode.IsSpace)
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(text[idx:])
}

func isCommand(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "/")
}
