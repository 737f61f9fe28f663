package broadcast

import (
	"context"
	"log/slog"
	"time"

	"github.com/edgard/empleobot/internal/database"
	"github.com/edgard/empleobot/internal/logger"
)

// Sender sends one text message to a chat.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, chatID int64, text string) error

// SendText calls f.
func (f SenderFunc) SendText(ctx context.Context, chatID int64, text string) error {
	return f(ctx, chatID, text)
}

// Result summarizes a delivery run.
type Result struct {
	Sent   int
	Failed int
	Total  int
}

// Deliver sends text to every recipient in order, pausing delay between
// messages. Failures are counted and never stop the run; a cancelled context
// does, leaving the remaining recipients unsent.
func Deliver(ctx context.Context, sender Sender, recipients []database.User, text string, delay time.Duration, log *slog.Logger) Result {
	if log == nil {
		log = logger.Discard()
	}
	res := Result{Total: len(recipients)}

	for i, user := range recipients {
		if ctx.Err() != nil {
			log.WarnContext(ctx, "Broadcast interrupted", "sent", res.Sent, "failed", res.Failed, "remaining", len(recipients)-i)
			break
		}

		if err := sender.SendText(ctx, user.ChatID, text); err != nil {
			res.Failed++
			log.WarnContext(ctx, "Broadcast delivery failed", "user_id", user.UserID, "chat_id", user.ChatID, "error", err)
		} else {
			res.Sent++
		}

		if delay > 0 && i < len(recipients)-1 {
			t := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				t.Stop()
			case <-t.C:
			}
		}
	}

	log.InfoContext(ctx, "Broadcast finished", "sent", res.Sent, "failed", res.Failed, "total", res.Total)
	return res
}
