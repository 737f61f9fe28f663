package broadcast

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edgard/empleobot/internal/database"
)

func TestOutboxStageAndTake(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	o := NewOutbox(15 * time.Minute)
	p := o.Stage(1, "Feria de empleo el sábado", now)

	if len(ConfirmToken(p.ID)) > 64 {
		t.Errorf("confirm token %q exceeds the callback data limit", ConfirmToken(p.ID))
	}

	if _, err := o.Take(p.ID, 2, now); !errors.Is(err, ErrNotAuthor) {
		t.Errorf("Take() by another user error = %v, want ErrNotAuthor", err)
	}

	got, err := o.Take(p.ID, 1, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("Take() error = %v", err)
	}
	if got.Text != "Feria de empleo el sábado" {
		t.Errorf("Take() text = %q", got.Text)
	}

	if _, err := o.Take(p.ID, 1, now); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Take() error = %v, want ErrNotFound", err)
	}
}

func TestOutboxExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	o := NewOutbox(15 * time.Minute)

	stale := o.Stage(1, "old", now)
	if _, err := o.Take(stale.ID, 1, now.Add(15*time.Minute)); !errors.Is(err, ErrExpired) {
		t.Errorf("Take() of expired broadcast error = %v, want ErrExpired", err)
	}
	if o.Len() != 0 {
		t.Errorf("expired broadcast still pending")
	}

	o.Stage(1, "a", now)
	o.Stage(1, "b", now.Add(10*time.Minute))
	if n := o.Expire(now.Add(20 * time.Minute)); n != 1 {
		t.Errorf("Expire() = %d, want 1", n)
	}
	if o.Len() != 1 {
		t.Errorf("Len() = %d, want 1", o.Len())
	}
}

func TestOutboxDiscard(t *testing.T) {
	t.Parallel()

	o := NewOutbox(time.Minute)
	p := o.Stage(1, "x", time.Now())

	if err := o.Discard(p.ID, 9); !errors.Is(err, ErrNotAuthor) {
		t.Errorf("Discard() by another user error = %v", err)
	}
	if err := o.Discard(p.ID, 1); err != nil {
		t.Errorf("Discard() error = %v", err)
	}
	if err := o.Discard(p.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Discard() error = %v", err)
	}
}

func TestParseToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		data   string
		prefix string
		id     string
		ok     bool
	}{
		{data: "broadcast-confirm:abc", prefix: ConfirmPrefix, id: "abc", ok: true},
		{data: "broadcast-cancel:abc", prefix: CancelPrefix, id: "abc", ok: true},
		{data: "broadcast-confirm:", ok: false},
		{data: "show-offers", ok: false},
	}
	for _, tt := range tests {
		prefix, id, ok := ParseToken(tt.data)
		if prefix != tt.prefix || id != tt.id || ok != tt.ok {
			t.Errorf("ParseToken(%q) = %q, %q, %v", tt.data, prefix, id, ok)
		}
	}
}

func TestDeliverCountsFailures(t *testing.T) {
	t.Parallel()

	recipients := []database.User{{UserID: 1, ChatID: 10}, {UserID: 2, ChatID: 20}, {UserID: 3, ChatID: 30}}
	var sentTo []int64
	sender := SenderFunc(func(_ context.Context, chatID int64, _ string) error {
		sentTo = append(sentTo, chatID)
		if chatID == 20 {
			return errors.New("bot was blocked by the user")
		}
		return nil
	})

	res := Deliver(context.Background(), sender, recipients, "hola", time.Millisecond, nil)
	if res != (Result{Sent: 2, Failed: 1, Total: 3}) {
		t.Errorf("Deliver() = %+v", res)
	}
	if len(sentTo) != 3 || sentTo[0] != 10 || sentTo[2] != 30 {
		t.Errorf("delivery order = %v", sentTo)
	}
}

func TestDeliverStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	recipients := []database.User{{ChatID: 1}, {ChatID: 2}, {ChatID: 3}}
	sender := SenderFunc(func(context.Context, int64, string) error {
		cancel()
		return nil
	})

	res := Deliver(ctx, sender, recipients, "hola", time.Hour, nil)
	if res.Sent != 1 || res.Total != 3 {
		t.Errorf("Deliver() after cancel = %+v", res)
	}
}
