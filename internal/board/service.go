// Package board publishes job offers and candidate profiles and serves the
// listings built from them.
package board

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edgard/empleobot/internal/conversation"
	"github.com/edgard/empleobot/internal/database"
	"github.com/edgard/empleobot/internal/logger"
	"github.com/edgard/empleobot/internal/retention"
)

// Sweeper removes expired records after a submission.
type Sweeper interface {
	SweepAll(ctx context.Context) ([]retention.Result, error)
}

// Profile identifies the Telegram user behind an update.
type Profile struct {
	UserID    int64
	ChatID    int64
	FirstName string
	Username  string // without the leading "@"
}

// Service commits submissions and reads listings through the store.
type Service struct {
	store   database.Store
	sweeper Sweeper
	now     func() time.Time
	logger  *slog.Logger
}

// NewService creates a board service. sweeper may be nil, in which case no
// retention sweep follows a submission.
func NewService(store database.Store, sweeper Sweeper, log *slog.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		store:   store,
		sweeper: sweeper,
		now:     time.Now,
		logger:  log.With("component", "board"),
	}
}

// EnsureUser registers the user, refreshing the stored names when the user
// is already known.
func (s *Service) EnsureUser(ctx context.Context, p Profile) error {
	username := database.NoUsername
	if p.Username != "" {
		username = "@" + p.Username
	}

	user := &database.User{
		UserID:        p.UserID,
		FirstName:     p.FirstName,
		Username:      username,
		ChatID:        p.ChatID,
		Notifications: database.NotificationsActive,
		RegisteredAt:  s.now().Format(database.TimestampLayout),
	}
	if err := s.store.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	return nil
}

// Submit commits a completed form.
func (s *Service) Submit(ctx context.Context, sub *conversation.Submission) error {
	if sub == nil {
		return fmt.Errorf("%w: empty submission", ErrWriteFailure)
	}
	switch sub.Kind {
	case conversation.KindOffer:
		_, err := s.SubmitOffer(ctx, sub.UserID, sub.Values)
		return err
	case conversation.KindCandidate:
		_, err := s.SubmitCandidate(ctx, sub.UserID, sub.Values)
		return err
	default:
		return fmt.Errorf("%w: unknown submission kind %q", ErrWriteFailure, sub.Kind)
	}
}

// SubmitOffer stores a job offer, bumps the owner's submission counter and
// sweeps expired records. Only the append can make it fail.
func (s *Service) SubmitOffer(ctx context.Context, ownerID int64, values map[string]string) (*database.JobOffer, error) {
	offer := &database.JobOffer{
		Title:       values[conversation.FieldTitle],
		Company:     values[conversation.FieldCompany],
		Salary:      values[conversation.FieldSalary],
		Description: values[conversation.FieldDescription],
		Contact:     values[conversation.FieldContact],
		Date:        s.now().Format(database.DateLayout),
		OwnerID:     ownerID,
	}
	if err := s.store.AppendOffer(ctx, offer); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	s.logger.InfoContext(ctx, "Offer published", "seq", offer.Seq, "owner_id", ownerID)

	if err := s.store.IncrementSubmissions(ctx, ownerID); err != nil {
		s.logger.ErrorContext(ctx, "Partial write: offer stored but submission counter not updated",
			"seq", offer.Seq, "owner_id", ownerID, "error", err)
	}

	s.sweep(ctx)
	return offer, nil
}

// SubmitCandidate stores a candidate profile and sweeps expired records.
func (s *Service) SubmitCandidate(ctx context.Context, ownerID int64, values map[string]string) (*database.Candidate, error) {
	candidate := &database.Candidate{
		Name:      values[conversation.FieldName],
		JobType:   values[conversation.FieldJobType],
		Education: values[conversation.FieldEducation],
		Contact:   values[conversation.FieldContact],
		CreatedAt: s.now().Format(database.TimestampLayout),
		OwnerID:   ownerID,
	}
	if err := s.store.AppendCandidate(ctx, candidate); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	s.logger.InfoContext(ctx, "Candidate registered", "id", candidate.ID, "owner_id", ownerID)

	s.sweep(ctx)
	return candidate, nil
}

func (s *Service) sweep(ctx context.Context) {
	if s.sweeper == nil {
		return
	}
	if _, err := s.sweeper.SweepAll(ctx); err != nil {
		s.logger.WarnContext(ctx, "Retention sweep after submission failed", "error", err)
	}
}

// Offers returns all offers, oldest first.
func (s *Service) Offers(ctx context.Context) ([]database.JobOffer, error) {
	offers, err := s.store.ListOffers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return offers, nil
}

// Candidates returns all candidate profiles, oldest first.
func (s *Service) Candidates(ctx context.Context) ([]database.Candidate, error) {
	candidates, err := s.store.ListCandidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return candidates, nil
}

// Recipients returns the users that accept broadcasts.
func (s *Service) Recipients(ctx context.Context) ([]database.User, error) {
	users, err := s.store.ListRecipients(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return users, nil
}

// ToggleNotifications flips the user's broadcast preference and returns the
// new state.
func (s *Service) ToggleNotifications(ctx context.Context, userID int64) (database.NotificationState, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if user == nil {
		return "", ErrUnknownUser
	}

	next := database.NotificationsMuted
	if user.Notifications == database.NotificationsMuted {
		next = database.NotificationsActive
	}
	if err := s.store.SetNotifications(ctx, userID, next); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}

	s.logger.InfoContext(ctx, "Notifications toggled", "user_id", userID, "state", next)
	return next, nil
}

// Stats returns the table sizes.
func (s *Service) Stats(ctx context.Context) (database.Stats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return database.Stats{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return stats, nil
}

// Ping reports whether the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}
