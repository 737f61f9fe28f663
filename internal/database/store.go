package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/edgard/empleobot/internal/logger"
)

// ErrUnavailable is returned by every method of a store whose database could
// not be opened.
var ErrUnavailable = errors.New("database unavailable")

// Store defines the record store used by the bot. Listing methods return rows
// in insertion order; text columns that are NULL read back as empty strings.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// GetUser returns the user with the given id, or nil, nil if not found.
	GetUser(ctx context.Context, userID int64) (*User, error)
	// SaveUser inserts a new user or refreshes the names and chat id of an
	// existing one. Counters and preferences are never overwritten.
	SaveUser(ctx context.Context, user *User) error
	// IncrementSubmissions adds one to the user's submission counter in a
	// single statement.
	IncrementSubmissions(ctx context.Context, userID int64) error
	// SetNotifications updates the user's broadcast preference.
	SetNotifications(ctx context.Context, userID int64, state NotificationState) error
	// ListRecipients returns the users that receive broadcasts.
	ListRecipients(ctx context.Context) ([]User, error)

	// AppendOffer stores a new offer, allocating its sequence number.
	AppendOffer(ctx context.Context, offer *JobOffer) error
	// ListOffers returns all offers, oldest first.
	ListOffers(ctx context.Context) ([]JobOffer, error)
	// DeleteOffers removes the offers with the given ids and returns how many
	// rows went away. Rows not listed are never touched.
	DeleteOffers(ctx context.Context, ids []int64) (int64, error)

	// AppendCandidate stores a new candidate profile.
	AppendCandidate(ctx context.Context, candidate *Candidate) error
	// ListCandidates returns all candidates, oldest first.
	ListCandidates(ctx context.Context) ([]Candidate, error)
	// DeleteCandidates removes the candidates with the given ids.
	DeleteCandidates(ctx context.Context, ids []int64) (int64, error)

	// Stats returns the size of each table.
	Stats(ctx context.Context) (Stats, error)
	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
func NewStore(db *sqlx.DB, log *slog.Logger) Store {
	if log == nil {
		log = logger.Discard()
	}
	return &sqlxStore{
		db:     db,
		logger: log.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const userColumns = `user_id, COALESCE(first_name, '') AS first_name, COALESCE(username, '') AS username,
	chat_id, submissions, notifications, COALESCE(registered_at, '') AS registered_at`

func (s *sqlxStore) GetUser(ctx context.Context, userID int64) (*User, error) {
	var user User
	err := s.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE user_id = ?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Error getting user", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	return &user, nil
}

func (s *sqlxStore) SaveUser(ctx context.Context, user *User) error {
	if user == nil {
		return fmt.Errorf("cannot save nil user")
	}
	if user.UserID == 0 {
		return fmt.Errorf("user must have a non-zero user_id")
	}
	if user.Notifications == "" {
		user.Notifications = NotificationsActive
	}

	query := `
		INSERT INTO users (user_id, first_name, username, chat_id, submissions, notifications, registered_at)
		VALUES (:user_id, :first_name, :username, :chat_id, :submissions, :notifications, :registered_at)
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = excluded.first_name,
			username = excluded.username,
			chat_id = excluded.chat_id
	`
	if _, err := s.db.NamedExecContext(ctx, query, user); err != nil {
		s.logger.ErrorContext(ctx, "Error saving user", "user_id", user.UserID, "error", err)
		return fmt.Errorf("failed to save user %d: %w", user.UserID, err)
	}

	s.logger.DebugContext(ctx, "User saved", "user_id", user.UserID, "chat_id", user.ChatID)
	return nil
}

func (s *sqlxStore) IncrementSubmissions(ctx context.Context, userID int64) error {
	result, err := s.db.ExecContext(ctx, `UPDATE users SET submissions = submissions + 1 WHERE user_id = ?`, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error incrementing submissions", "user_id", userID, "error", err)
		return fmt.Errorf("failed to increment submissions for user %d: %w", userID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected != 1 {
		return fmt.Errorf("failed to increment submissions for user %d: %d rows affected", userID, affected)
	}
	return nil
}

func (s *sqlxStore) SetNotifications(ctx context.Context, userID int64, state NotificationState) error {
	if state != NotificationsActive && state != NotificationsMuted {
		return fmt.Errorf("invalid notification state %q", state)
	}
	result, err := s.db.ExecContext(ctx, `UPDATE users SET notifications = ? WHERE user_id = ?`, state, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error updating notifications", "user_id", userID, "error", err)
		return fmt.Errorf("failed to update notifications for user %d: %w", userID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected != 1 {
		return fmt.Errorf("failed to update notifications for user %d: %d rows affected", userID, affected)
	}
	return nil
}

func (s *sqlxStore) ListRecipients(ctx context.Context) ([]User, error) {
	var users []User
	query := `SELECT ` + userColumns + ` FROM users WHERE notifications = ? AND chat_id != 0 ORDER BY user_id`
	if err := s.db.SelectContext(ctx, &users, query, NotificationsActive); err != nil {
		s.logger.ErrorContext(ctx, "Error listing recipients", "error", err)
		return nil, fmt.Errorf("failed to list recipients: %w", err)
	}
	return users, nil
}

// withTx runs fn inside a transaction, rolling back unless fn succeeds and
// the commit goes through.
func (s *sqlxStore) withTx(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction", "operation", op, "error", err)
		return fmt.Errorf("failed to begin transaction for %s: %w", op, err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				s.logger.WarnContext(ctx, "Error rolling back transaction", "operation", op, "error", rollbackErr)
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit transaction", "operation", op, "error", err)
		return fmt.Errorf("failed to commit %s: %w", op, err)
	}
	tx = nil
	return nil
}

const insertOffer = `
	INSERT INTO offers (seq, title, company, salary, description, contact, date, owner_id)
	VALUES (:seq, :title, :company, :salary, :description, :contact, :date, :owner_id)
`

func (s *sqlxStore) AppendOffer(ctx context.Context, offer *JobOffer) error {
	if offer == nil {
		return fmt.Errorf("cannot save nil offer")
	}

	err := s.withTx(ctx, "append offer", func(tx *sqlx.Tx) error {
		var seq int64
		if err := tx.GetContext(ctx, &seq,
			`UPDATE sequences SET value = value + 1 WHERE name = 'offers' RETURNING value`); err != nil {
			return fmt.Errorf("failed to allocate offer sequence: %w", err)
		}
		offer.Seq = seq

		result, err := tx.NamedExecContext(ctx, insertOffer, offer)
		if err != nil {
			return fmt.Errorf("failed to insert offer: %w", err)
		}
		if id, err := result.LastInsertId(); err == nil {
			offer.ID = id
		}
		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving offer", "owner_id", offer.OwnerID, "error", err)
		return err
	}

	s.logger.DebugContext(ctx, "Offer saved", "id", offer.ID, "seq", offer.Seq, "owner_id", offer.OwnerID)
	return nil
}

func (s *sqlxStore) ListOffers(ctx context.Context) ([]JobOffer, error) {
	var offers []JobOffer
	query := `
		SELECT id, seq,
			COALESCE(title, '') AS title, COALESCE(company, '') AS company,
			COALESCE(salary, '') AS salary, COALESCE(description, '') AS description,
			COALESCE(contact, '') AS contact, COALESCE(date, '') AS date, owner_id
		FROM offers
		ORDER BY id
	`
	if err := s.db.SelectContext(ctx, &offers, query); err != nil {
		s.logger.ErrorContext(ctx, "Error listing offers", "error", err)
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	return offers, nil
}

func (s *sqlxStore) DeleteOffers(ctx context.Context, ids []int64) (int64, error) {
	n, err := s.deleteByID(ctx, "offers", ids)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting offers", "count", len(ids), "error", err)
		return 0, err
	}
	s.logger.InfoContext(ctx, "Offers deleted", "requested", len(ids), "deleted", n)
	return n, nil
}

func (s *sqlxStore) AppendCandidate(ctx context.Context, candidate *Candidate) error {
	if candidate == nil {
		return fmt.Errorf("cannot save nil candidate")
	}

	result, err := s.db.NamedExecContext(ctx, `
		INSERT INTO candidates (name, job_type, education, contact, created_at, owner_id)
		VALUES (:name, :job_type, :education, :contact, :created_at, :owner_id)
	`, candidate)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving candidate", "owner_id", candidate.OwnerID, "error", err)
		return fmt.Errorf("failed to save candidate: %w", err)
	}
	if id, err := result.LastInsertId(); err == nil {
		candidate.ID = id
	}

	s.logger.DebugContext(ctx, "Candidate saved", "id", candidate.ID, "owner_id", candidate.OwnerID)
	return nil
}

func (s *sqlxStore) ListCandidates(ctx context.Context) ([]Candidate, error) {
	var candidates []Candidate
	query := `
		SELECT id,
			COALESCE(name, '') AS name, COALESCE(job_type, '') AS job_type,
			COALESCE(education, '') AS education, COALESCE(contact, '') AS contact,
			COALESCE(created_at, '') AS created_at, owner_id
		FROM candidates
		ORDER BY id
	`
	if err := s.db.SelectContext(ctx, &candidates, query); err != nil {
		s.logger.ErrorContext(ctx, "Error listing candidates", "error", err)
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, nil
}

func (s *sqlxStore) DeleteCandidates(ctx context.Context, ids []int64) (int64, error) {
	n, err := s.deleteByID(ctx, "candidates", ids)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting candidates", "count", len(ids), "error", err)
		return 0, err
	}
	s.logger.InfoContext(ctx, "Candidates deleted", "requested", len(ids), "deleted", n)
	return n, nil
}

// deleteByID removes the listed rows of table in a single statement, so rows
// inserted while the caller was deciding what to delete survive.
func (s *sqlxStore) deleteByID(ctx context.Context, table string, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(`DELETE FROM `+table+` WHERE id IN (?)`, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to build %s delete: %w", table, err)
	}

	result, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s: %w", table, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted %s: %w", table, err)
	}
	return n, nil
}

func (s *sqlxStore) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	query := `
		SELECT
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM offers) AS offers,
			(SELECT COUNT(*) FROM candidates) AS candidates
	`
	if err := s.db.GetContext(ctx, &stats, query); err != nil {
		return Stats{}, fmt.Errorf("failed to get stats: %w", err)
	}
	return stats, nil
}

// RunSQLMaintenance executes VACUUM and ANALYZE on the SQLite database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	// VACUUM cannot run inside a transaction.
	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		s.logger.ErrorContext(ctx, "Error running VACUUM", "error", err)
		return fmt.Errorf("failed to run VACUUM: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "ANALYZE"); err != nil {
		s.logger.WarnContext(ctx, "Error running ANALYZE", "error", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance completed")
	return nil
}
