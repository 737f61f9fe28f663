package board

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edgard/empleobot/internal/conversation"
	"github.com/edgard/empleobot/internal/database"
	"github.com/edgard/empleobot/internal/retention"
)

// memStore is an in-memory database.Store.
type memStore struct {
	database.Store // nil; unimplemented methods panic

	users      map[int64]*database.User
	offers     []database.JobOffer
	candidates []database.Candidate
	seq        int64

	appendErr    error
	incrementErr error
	listErr      error
}

func newMemStore() *memStore {
	return &memStore{users: make(map[int64]*database.User)}
}

func (m *memStore) GetUser(_ context.Context, id int64) (*database.User, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) SaveUser(_ context.Context, u *database.User) error {
	if existing, ok := m.users[u.UserID]; ok {
		existing.FirstName, existing.Username, existing.ChatID = u.FirstName, u.Username, u.ChatID
		return nil
	}
	cp := *u
	m.users[u.UserID] = &cp
	return nil
}

func (m *memStore) IncrementSubmissions(_ context.Context, id int64) error {
	if m.incrementErr != nil {
		return m.incrementErr
	}
	u, ok := m.users[id]
	if !ok {
		return errors.New("no such user")
	}
	u.Submissions++
	return nil
}

func (m *memStore) SetNotifications(_ context.Context, id int64, state database.NotificationState) error {
	m.users[id].Notifications = state
	return nil
}

func (m *memStore) AppendOffer(_ context.Context, o *database.JobOffer) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.seq++
	o.Seq = m.seq
	m.offers = append(m.offers, *o)
	return nil
}

func (m *memStore) AppendCandidate(_ context.Context, c *database.Candidate) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.candidates = append(m.candidates, *c)
	return nil
}

func (m *memStore) ListOffers(context.Context) ([]database.JobOffer, error) {
	return m.offers, m.listErr
}

func (m *memStore) ListCandidates(context.Context) ([]database.Candidate, error) {
	return m.candidates, m.listErr
}

type countingSweeper struct{ calls int }

func (c *countingSweeper) SweepAll(context.Context) ([]retention.Result, error) {
	c.calls++
	return nil, nil
}

func newTestService(store database.Store, sweeper Sweeper) *Service {
	s := NewService(store, sweeper, nil)
	s.now = func() time.Time { return time.Date(2024, time.June, 20, 9, 15, 0, 0, time.UTC) }
	return s
}

func TestSubmitOfferCommitsAndCounts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newMemStore()
	sweeper := &countingSweeper{}
	svc := newTestService(store, sweeper)

	if err := svc.EnsureUser(ctx, Profile{UserID: 7, ChatID: 7, FirstName: "Ana", Username: "ana"}); err != nil {
		t.Fatalf("EnsureUser() error = %v", err)
	}

	engine := conversation.NewEngine(conversation.OfferFlow(conversation.OfferPrompts{
		Title: "t", Company: "c", Salary: "s", Description: "d", Contact: "k",
	}))
	if _, _, err := engine.Start(7, conversation.KindOffer); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	var reply conversation.Reply
	for _, answer := range []string{"Cook", "Diner", "500", "Evening shift", "555-0100"} {
		var err error
		if reply, err = engine.Answer(7, answer); err != nil {
			t.Fatalf("Answer(%q) error = %v", answer, err)
		}
	}
	if !reply.Done {
		t.Fatal("form not done after five answers")
	}

	if err := svc.Submit(ctx, reply.Submission); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if len(store.offers) != 1 {
		t.Fatalf("offers = %d, want 1", len(store.offers))
	}
	got := store.offers[0]
	want := database.JobOffer{
		Seq: 1, Title: "Cook", Company: "Diner", Salary: "500", Description: "Evening shift",
		Contact: "555-0100", Date: "2024-06-20", OwnerID: 7,
	}
	if got != want {
		t.Errorf("offer = %+v, want %+v", got, want)
	}
	if store.users[7].Submissions != 1 {
		t.Errorf("Submissions = %d, want 1", store.users[7].Submissions)
	}
	if store.users[7].Username != "@ana" {
		t.Errorf("Username = %q, want @ana", store.users[7].Username)
	}
	if sweeper.calls != 1 {
		t.Errorf("sweeps = %d, want 1", sweeper.calls)
	}
}

func TestSubmitCandidateDoesNotCount(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newMemStore()
	svc := newTestService(store, nil)

	if err := svc.EnsureUser(ctx, Profile{UserID: 3, ChatID: 3}); err != nil {
		t.Fatalf("EnsureUser() error = %v", err)
	}
	sub := &conversation.Submission{Kind: conversation.KindCandidate, UserID: 3, Values: map[string]string{
		conversation.FieldName: "Luis", conversation.FieldJobType: "chofer",
		conversation.FieldEducation: "técnico", conversation.FieldContact: "555",
	}}
	if err := svc.Submit(ctx, sub); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if len(store.candidates) != 1 || store.candidates[0].Name != "Luis" || store.candidates[0].CreatedAt != "2024-06-20 09:15:00" {
		t.Errorf("candidates = %+v", store.candidates)
	}
	if store.users[3].Submissions != 0 {
		t.Errorf("Submissions = %d, want 0", store.users[3].Submissions)
	}
	if store.users[3].Username != database.NoUsername {
		t.Errorf("Username = %q, want %q", store.users[3].Username, database.NoUsername)
	}
}

func TestSubmitErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("append failure", func(t *testing.T) {
		t.Parallel()
		store := newMemStore()
		store.appendErr = errors.New("disk full")
		sweeper := &countingSweeper{}
		svc := newTestService(store, sweeper)

		_, err := svc.SubmitOffer(ctx, 1, map[string]string{conversation.FieldTitle: "x"})
		if !errors.Is(err, ErrWriteFailure) {
			t.Errorf("SubmitOffer() error = %v, want ErrWriteFailure", err)
		}
		if sweeper.calls != 0 {
			t.Errorf("sweep ran after a failed append")
		}
	})

	t.Run("counter failure is a partial write", func(t *testing.T) {
		t.Parallel()
		store := newMemStore()
		store.incrementErr = errors.New("locked")
		svc := newTestService(store, nil)

		offer, err := svc.SubmitOffer(ctx, 1, map[string]string{conversation.FieldTitle: "x"})
		if err != nil {
			t.Fatalf("SubmitOffer() error = %v, want nil", err)
		}
		if offer.Seq != 1 || len(store.offers) != 1 {
			t.Errorf("offer not stored: %+v", offer)
		}
	})

	t.Run("unavailable store", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(database.NewUnavailableStore(errors.New("no file")), nil)

		if _, err := svc.Offers(ctx); !errors.Is(err, ErrStoreUnavailable) || !errors.Is(err, database.ErrUnavailable) {
			t.Errorf("Offers() error = %v", err)
		}
		if _, err := svc.Candidates(ctx); !errors.Is(err, ErrStoreUnavailable) {
			t.Errorf("Candidates() error = %v", err)
		}
		if err := svc.Ping(ctx); !errors.Is(err, ErrStoreUnavailable) {
			t.Errorf("Ping() error = %v", err)
		}
		if err := svc.EnsureUser(ctx, Profile{UserID: 1}); !errors.Is(err, ErrWriteFailure) {
			t.Errorf("EnsureUser() error = %v", err)
		}
	})

	t.Run("nil submission", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(newMemStore(), nil)
		if err := svc.Submit(ctx, nil); !errors.Is(err, ErrWriteFailure) {
			t.Errorf("Submit(nil) error = %v", err)
		}
	})
}

func TestToggleNotifications(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newMemStore()
	svc := newTestService(store, nil)

	if _, err := svc.ToggleNotifications(ctx, 5); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("ToggleNotifications() on unknown user error = %v", err)
	}

	if err := svc.EnsureUser(ctx, Profile{UserID: 5, ChatID: 5}); err != nil {
		t.Fatalf("EnsureUser() error = %v", err)
	}
	for _, want := range []database.NotificationState{database.NotificationsMuted, database.NotificationsActive} {
		got, err := svc.ToggleNotifications(ctx, 5)
		if err != nil {
			t.Fatalf("ToggleNotifications() error = %v", err)
		}
		if got != want {
			t.Errorf("ToggleNotifications() = %q, want %q", got, want)
		}
	}
}
