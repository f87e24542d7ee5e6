package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"Stockle/internal/domain/models"
	drepo "Stockle/internal/domain/repository"
	"Stockle/pkg/cache"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	mc := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })
	return NewStore(mc, time.Hour)
}

func TestPutGet(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	want := &models.Session{Answer: "AAPL", Guesses: 2}
	if err := st.Put(ctx, "sid-1", want); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := st.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Answer != "AAPL" || got.Guesses != 2 || got.Finished {
		t.Fatalf("unexpected session %+v", got)
	}
}

func TestGetMissing(t *testing.T) {
	st := newStore(t)
	if _, err := st.Get(context.Background(), "nope"); !errors.Is(err, drepo.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestClear(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	_ = st.Put(ctx, "sid-1", &models.Session{Answer: "MSFT"})
	if err := st.Clear(ctx, "sid-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := st.Get(ctx, "sid-1"); !errors.Is(err, drepo.ErrSessionNotFound) {
		t.Fatalf("expected cleared session, got %v", err)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	_ = st.Put(ctx, "a", &models.Session{Answer: "AAPL", Guesses: 1})
	_ = st.Put(ctx, "b", &models.Session{Answer: "AAPL", Guesses: 5})

	a, _ := st.Get(ctx, "a")
	b, _ := st.Get(ctx, "b")
	if a.Guesses != 1 || b.Guesses != 5 {
		t.Fatalf("sessions bled into each other: %+v %+v", a, b)
	}
}
