package retention

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/edgard/empleobot/internal/database"
	"github.com/edgard/empleobot/internal/logger"
)

// Store is the subset of database.Store the pruner needs.
type Store interface {
	ListOffers(ctx context.Context) ([]database.JobOffer, error)
	DeleteOffers(ctx context.Context, ids []int64) (int64, error)
	ListCandidates(ctx context.Context) ([]database.Candidate, error)
	DeleteCandidates(ctx context.Context, ids []int64) (int64, error)
}

// Result reports the outcome of one table sweep.
type Result struct {
	Table   string
	Kept    int
	Removed int
}

// Pruner sweeps expired rows out of the offers and candidates tables.
type Pruner struct {
	store      Store
	maxAgeDays int
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures a Pruner.
type Option func(*Pruner)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(p *Pruner) { p.now = now }
}

// NewPruner creates a pruner that keeps rows at most maxAgeDays old.
func NewPruner(store Store, maxAgeDays int, log *slog.Logger, opts ...Option) *Pruner {
	if log == nil {
		log = logger.Discard()
	}
	p := &Pruner{
		store:      store,
		maxAgeDays: maxAgeDays,
		now:        time.Now,
		logger:     log.With("component", "retention"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SweepOffers removes expired offers. Only the expired rows are deleted, by
// id, so offers appended during the sweep are kept. Nothing is written when
// no row expired.
func (p *Pruner) SweepOffers(ctx context.Context) (Result, error) {
	offers, err := p.store.ListOffers(ctx)
	if err != nil {
		return Result{Table: "offers"}, fmt.Errorf("failed to list offers: %w", err)
	}

	kept, removed := Prune(offers, func(o database.JobOffer) string { return o.Date }, p.now(), p.maxAgeDays)
	res := Result{Table: "offers", Kept: len(kept), Removed: len(removed)}
	if len(removed) == 0 {
		return res, nil
	}

	if _, err := p.store.DeleteOffers(ctx, ids(removed, func(o database.JobOffer) int64 { return o.ID })); err != nil {
		return Result{Table: "offers", Kept: len(offers)}, fmt.Errorf("failed to delete expired offers: %w", err)
	}
	p.logger.InfoContext(ctx, "Expired offers removed", "removed", res.Removed, "kept", res.Kept)
	return res, nil
}

// SweepCandidates removes expired candidate profiles.
func (p *Pruner) SweepCandidates(ctx context.Context) (Result, error) {
	candidates, err := p.store.ListCandidates(ctx)
	if err != nil {
		return Result{Table: "candidates"}, fmt.Errorf("failed to list candidates: %w", err)
	}

	kept, removed := Prune(candidates, func(c database.Candidate) string { return c.CreatedAt }, p.now(), p.maxAgeDays)
	res := Result{Table: "candidates", Kept: len(kept), Removed: len(removed)}
	if len(removed) == 0 {
		return res, nil
	}

	if _, err := p.store.DeleteCandidates(ctx, ids(removed, func(c database.Candidate) int64 { return c.ID })); err != nil {
		return Result{Table: "candidates", Kept: len(candidates)}, fmt.Errorf("failed to delete expired candidates: %w", err)
	}
	p.logger.InfoContext(ctx, "Expired candidates removed", "removed", res.Removed, "kept", res.Kept)
	return res, nil
}

func ids[T any](rows []T, idOf func(T) int64) []int64 {
	out := make([]int64, len(rows))
	for i, row := range rows {
		out[i] = idOf(row)
	}
	return out
}

// SweepAll sweeps both tables. A failure on one table is logged and does not
// prevent the other from being swept; the joined error is returned.
func (p *Pruner) SweepAll(ctx context.Context) ([]Result, error) {
	var errs []error
	results := make([]Result, 0, 2)

	for _, sweep := range []func(context.Context) (Result, error){p.SweepOffers, p.SweepCandidates} {
		res, err := sweep(ctx)
		if err != nil {
			p.logger.ErrorContext(ctx, "Retention sweep failed", "table", res.Table, "error", err)
			errs = append(errs, err)
		}
		results = append(results, res)
	}

	return results, errors.Join(errs...)
}
