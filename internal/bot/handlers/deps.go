package handlers

import (
	"log/slog"
	"time"

	"github.com/edgard/empleobot/internal/board"
	"github.com/edgard/empleobot/internal/broadcast"
	"github.com/edgard/empleobot/internal/config"
	"github.com/edgard/empleobot/internal/conversation"
	"github.com/edgard/empleobot/internal/pagination"
	"github.com/edgard/empleobot/internal/ratelimit"
)

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger  *slog.Logger
	Config  *config.Config
	Board   *board.Service
	Forms   *conversation.Engine
	Cursors *pagination.Cursors
	Limiter *ratelimit.Limiter
	Outbox  *broadcast.Outbox

	// Now defaults to time.Now.
	Now func() time.Time
}

func (d HandlerDeps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// NewForms builds the conversation engine for the offer and candidate forms
// using the configured prompts.
func NewForms(msgs config.MessagesConfig) *conversation.Engine {
	return conversation.NewEngine(
		conversation.OfferFlow(conversation.OfferPrompts{
			Title:       msgs.OfferTitlePrompt,
			Company:     msgs.OfferCompanyPrompt,
			Salary:      msgs.OfferSalaryPrompt,
			Description: msgs.OfferDescriptionPrompt,
			Contact:     msgs.OfferContactPrompt,
		}),
		conversation.CandidateFlow(conversation.CandidatePrompts{
			Name:      msgs.CandidateNamePrompt,
			JobType:   msgs.CandidateJobTypePrompt,
			Education: msgs.CandidateEducationPrompt,
			Contact:   msgs.CandidateContactPrompt,
		}),
	)
}

// NewLimiter builds the rate limiter from the configured limits.
func NewLimiter(cfg config.LimitsConfig) *ratelimit.Limiter {
	return ratelimit.New(ratelimit.Options{
		Window:         cfg.Window,
		MaxMessages:    cfg.MaxMessages,
		ForbiddenTerms: cfg.ForbiddenTerms,
	})
}
