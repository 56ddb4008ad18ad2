package store

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/i474232898/weather-panel/internal/panel"
	"github.com/i474232898/weather-panel/internal/weather/providers"
)

func newTestStore(maxSessions int, maxIdle time.Duration) (*SessionStore, *clockwork.FakeClock) {
	fc := clockwork.NewFakeClock()
	prov := providers.NewSimulatedProvider(providers.SimulatedConfig{
		Delay:       providers.DefaultDelay,
		FailureRate: providers.DefaultFailureRate,
	}, fc, nil, nil, nil)
	factory := func(surface *panel.Surface) *panel.Controller {
		return panel.New(surface, prov, panel.Options{Clock: fc})
	}
	return NewSessionStore(maxSessions, maxIdle, "London", fc, factory), fc
}

func TestSessionStoreCreateGet(t *testing.T) {
	s, _ := newTestStore(10, time.Hour)
	defer s.Close()

	sess := s.Create()
	if sess.ID == "" {
		t.Fatal("expected a session id")
	}
	if sess.Surface.InputValue() != "London" {
		t.Fatalf("expected default input, got %q", sess.Surface.InputValue())
	}

	got, err := s.Get(sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != sess {
		t.Fatal("expected the same session back")
	}

	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionStoreEvictsLeastRecentlyUsed(t *testing.T) {
	s, fc := newTestStore(2, 0)
	defer s.Close()

	first := s.Create()
	fc.Advance(time.Second)
	second := s.Create()
	fc.Advance(time.Second)

	// Touching the first session makes the second the oldest.
	if _, err := s.Get(first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fc.Advance(time.Second)
	third := s.Create()

	if s.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", s.Len())
	}
	if _, err := s.Get(second.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected second session to be evicted, got %v", err)
	}
	for _, id := range []string{first.ID, third.ID} {
		if _, err := s.Get(id); err != nil {
			t.Fatalf("expected session %s to survive: %v", id, err)
		}
	}
}

func TestSessionStoreKeepsNewSessionOnTies(t *testing.T) {
	const limit = 3
	for i := 0; i < 50; i++ {
		s, _ := newTestStore(limit, 0)

		var last *Session
		for j := 0; j <= limit; j++ {
			last = s.Create()
		}

		if s.Len() != limit {
			t.Fatalf("expected %d sessions, got %d", limit, s.Len())
		}
		if _, err := s.Get(last.ID); err != nil {
			t.Fatalf("expected the newest session to survive: %v", err)
		}
		s.Close()
	}
}

func TestSessionStoreSweep(t *testing.T) {
	s, fc := newTestStore(0, 30*time.Minute)
	defer s.Close()

	idle := s.Create()
	fc.Advance(20 * time.Minute)
	active := s.Create()
	fc.Advance(15 * time.Minute)

	if n := s.Sweep(); n != 1 {
		t.Fatalf("expected 1 swept session, got %d", n)
	}
	if _, err := s.Get(idle.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected idle session to be gone, got %v", err)
	}
	if _, err := s.Get(active.ID); err != nil {
		t.Fatalf("expected active session to remain: %v", err)
	}
	if idle.Controller.TriggerLookup() {
		t.Fatal("expected swept controller to be closed")
	}
}

func TestSessionStoreSweepDisabled(t *testing.T) {
	s, fc := newTestStore(0, 0)
	defer s.Close()

	s.Create()
	fc.Advance(24 * time.Hour)
	if n := s.Sweep(); n != 0 {
		t.Fatalf("expected nothing swept, got %d", n)
	}
}

func TestSessionStoreDelete(t *testing.T) {
	s, _ := newTestStore(0, 0)
	defer s.Close()

	sess := s.Create()
	if err := s.Delete(sess.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Delete(sess.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d", s.Len())
	}
}
