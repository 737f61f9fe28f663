package database_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/edgard/empleobot/internal/database"
	"github.com/edgard/empleobot/internal/logger"
)

func newTestStore(t *testing.T) database.Store {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB() error = %v", err)
	}
	t.Cleanup(func() { database.CloseDB(db) })

	return database.NewStore(db, logger.Discard())
}

func TestSaveUserKeepsCounters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)

	user := &database.User{UserID: 42, FirstName: "Ana", Username: "@ana", ChatID: 42, RegisteredAt: "2024-05-01 10:00:00"}
	if err := store.SaveUser(ctx, user); err != nil {
		t.Fatalf("SaveUser() error = %v", err)
	}
	if err := store.IncrementSubmissions(ctx, 42); err != nil {
		t.Fatalf("IncrementSubmissions() error = %v", err)
	}
	if err := store.SetNotifications(ctx, 42, database.NotificationsMuted); err != nil {
		t.Fatalf("SetNotifications() error = %v", err)
	}

	// A second registration refreshes names only.
	again := &database.User{UserID: 42, FirstName: "Ana María", Username: database.NoUsername, ChatID: 42}
	if err := store.SaveUser(ctx, again); err != nil {
		t.Fatalf("SaveUser() second call error = %v", err)
	}

	got, err := store.GetUser(ctx, 42)
	if err != nil || got == nil {
		t.Fatalf("GetUser() = %v, %v", got, err)
	}
	if got.FirstName != "Ana María" || got.Username != database.NoUsername {
		t.Errorf("names not refreshed: %+v", got)
	}
	if got.Submissions != 1 {
		t.Errorf("Submissions = %d, want 1", got.Submissions)
	}
	if got.Notifications != database.NotificationsMuted {
		t.Errorf("Notifications = %q, want muted", got.Notifications)
	}
	if got.RegisteredAt != "2024-05-01 10:00:00" {
		t.Errorf("RegisteredAt = %q, want original value", got.RegisteredAt)
	}
}

func TestGetUserNotFound(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	got, err := store.GetUser(context.Background(), 7)
	if err != nil || got != nil {
		t.Errorf("GetUser() = %v, %v; want nil, nil", got, err)
	}
}

func TestIncrementSubmissionsUnknownUser(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	if err := store.IncrementSubmissions(context.Background(), 999); err == nil {
		t.Error("IncrementSubmissions() on unknown user returned nil error")
	}
}

func TestConcurrentIncrementsAreNotLost(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.SaveUser(ctx, &database.User{UserID: 1, ChatID: 1}); err != nil {
		t.Fatalf("SaveUser() error = %v", err)
	}

	const n = 20
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.IncrementSubmissions(ctx, 1); err != nil {
				t.Errorf("IncrementSubmissions() error = %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := store.GetUser(ctx, 1)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if got.Submissions != n {
		t.Errorf("Submissions = %d, want %d", got.Submissions, n)
	}
}

func TestAppendOfferAssignsSequence(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)

	for i, title := range []string{"Cook", "Waiter", "Driver"} {
		offer := &database.JobOffer{Title: title, Company: "Diner", Date: "2024-05-01", OwnerID: 1}
		if err := store.AppendOffer(ctx, offer); err != nil {
			t.Fatalf("AppendOffer() error = %v", err)
		}
		if offer.Seq != int64(i+1) {
			t.Errorf("offer %q Seq = %d, want %d", title, offer.Seq, i+1)
		}
	}

	offers, err := store.ListOffers(ctx)
	if err != nil {
		t.Fatalf("ListOffers() error = %v", err)
	}
	if len(offers) != 3 || offers[0].Title != "Cook" || offers[2].Title != "Driver" {
		t.Fatalf("ListOffers() = %+v", offers)
	}

	// Sequence numbers are never reused after a delete.
	if _, err := store.DeleteOffers(ctx, []int64{offers[2].ID}); err != nil {
		t.Fatalf("DeleteOffers() error = %v", err)
	}
	next := &database.JobOffer{Title: "Baker", Date: "2024-05-02"}
	if err := store.AppendOffer(ctx, next); err != nil {
		t.Fatalf("AppendOffer() error = %v", err)
	}
	if next.Seq != 4 {
		t.Errorf("Seq after delete = %d, want 4", next.Seq)
	}
}

func TestDeleteCandidatesRemovesOnlyListedIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)

	for _, name := range []string{"Ana", "Luis", "Marta"} {
		c := &database.Candidate{Name: name, JobType: "cocina", CreatedAt: "2024-05-01 09:00:00"}
		if err := store.AppendCandidate(ctx, c); err != nil {
			t.Fatalf("AppendCandidate() error = %v", err)
		}
	}

	all, err := store.ListCandidates(ctx)
	if err != nil {
		t.Fatalf("ListCandidates() error = %v", err)
	}

	tests := []struct {
		name    string
		ids     []int64
		deleted int64
	}{
		{name: "none", ids: nil, deleted: 0},
		{name: "middle row", ids: []int64{all[1].ID}, deleted: 1},
		{name: "already gone", ids: []int64{all[1].ID, 999}, deleted: 0},
	}
	for _, tt := range tests {
		n, err := store.DeleteCandidates(ctx, tt.ids)
		if err != nil {
			t.Fatalf("%s: DeleteCandidates() error = %v", tt.name, err)
		}
		if n != tt.deleted {
			t.Errorf("%s: DeleteCandidates() = %d, want %d", tt.name, n, tt.deleted)
		}
	}

	got, err := store.ListCandidates(ctx)
	if err != nil {
		t.Fatalf("ListCandidates() error = %v", err)
	}
	if len(got) != 2 || got[0].Name != "Ana" || got[1].Name != "Marta" {
		t.Errorf("ListCandidates() after delete = %+v", got)
	}
	if got[0].ID != all[0].ID || got[1].ID != all[2].ID {
		t.Errorf("ids changed: %d,%d want %d,%d", got[0].ID, got[1].ID, all[0].ID, all[2].ID)
	}
}

func TestListRecipientsSkipsMuted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)

	for _, id := range []int64{1, 2, 3} {
		if err := store.SaveUser(ctx, &database.User{UserID: id, ChatID: id * 10}); err != nil {
			t.Fatalf("SaveUser() error = %v", err)
		}
	}
	if err := store.SetNotifications(ctx, 2, database.NotificationsMuted); err != nil {
		t.Fatalf("SetNotifications() error = %v", err)
	}

	users, err := store.ListRecipients(ctx)
	if err != nil {
		t.Fatalf("ListRecipients() error = %v", err)
	}
	if len(users) != 2 || users[0].UserID != 1 || users[1].UserID != 3 {
		t.Errorf("ListRecipients() = %+v", users)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Users != 3 || stats.Offers != 0 || stats.Candidates != 0 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestSetNotificationsRejectsUnknownState(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	if err := store.SetNotifications(context.Background(), 1, "sometimes"); err == nil {
		t.Error("SetNotifications() accepted an unknown state")
	}
}

func TestRunSQLMaintenance(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	if err := store.RunSQLMaintenance(context.Background()); err != nil {
		t.Errorf("RunSQLMaintenance() error = %v", err)
	}
}

func TestUnavailableStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cause := errors.New("disk on fire")
	store := database.NewUnavailableStore(cause)

	checks := map[string]error{
		"Ping":            store.Ping(ctx),
		"SaveUser":        store.SaveUser(ctx, &database.User{UserID: 1}),
		"AppendOffer":     store.AppendOffer(ctx, &database.JobOffer{}),
		"AppendCandidate": store.AppendCandidate(ctx, &database.Candidate{}),
	}
	_, listErr := store.ListOffers(ctx)
	checks["ListOffers"] = listErr
	_, deleteErr := store.DeleteOffers(ctx, []int64{1})
	checks["DeleteOffers"] = deleteErr

	for name, err := range checks {
		if !errors.Is(err, database.ErrUnavailable) {
			t.Errorf("%s error = %v, want ErrUnavailable", name, err)
		}
	}
}

func TestExtractDBNameFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"storage.db", "storage.db"},
		{"file:storage.db?_pragma=busy_timeout(5000)", "storage.db"},
		{"file:my%20data.db", "my data.db"},
	}
	for _, tt := range tests {
		if got := database.ExtractDBNameFromPath(tt.input); got != tt.expected {
			t.Errorf("ExtractDBNameFromPath(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
