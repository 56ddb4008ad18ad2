package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/i474232898/weather-panel/internal/panel"
)

var (
	// ErrNotFound is returned when no session exists for a given id.
	ErrNotFound = errors.New("no panel session for id")
)

// Session is one client's panel: its rendering surface and the controller
// driving it.
type Session struct {
	ID         string
	Surface    *panel.Surface
	Controller *panel.Controller
	CreatedAt  time.Time

	lastSeen time.Time
}

// ControllerFactory builds the controller for a new session's surface.
type ControllerFactory func(surface *panel.Surface) *panel.Controller

// SessionStore is a concurrency-safe in-memory registry of panel sessions.
type SessionStore struct {
	mu sync.RWMutex

	// key: session id
	data map[string]*Session

	newController ControllerFactory
	defaultInput  string
	clock         clockwork.Clock

	// retention configuration
	maxSessions int           // max number of live sessions
	maxIdle     time.Duration // max time since a session was last used
}

// NewSessionStore creates a new SessionStore with optional limits.
// If maxSessions is <= 0 it is treated as unlimited; the same goes for maxIdle.
// New sessions start with defaultInput in their input field.
func NewSessionStore(maxSessions int, maxIdle time.Duration, defaultInput string,
	clock clockwork.Clock, factory ControllerFactory,
) *SessionStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SessionStore{
		data:          make(map[string]*Session),
		newController: factory,
		defaultInput:  defaultInput,
		clock:         clock,
		maxSessions:   maxSessions,
		maxIdle:       maxIdle,
	}
}

// Create registers a new session and enforces the session limit by evicting
// the least recently used sessions. The controller is not initialized.
func (s *SessionStore) Create() *Session {
	surface := panel.NewSurface(s.defaultInput)
	now := s.clock.Now()
	sess := &Session{
		ID:         uuid.NewString(),
		Surface:    surface,
		Controller: s.newController(surface),
		CreatedAt:  now,
		lastSeen:   now,
	}

	s.mu.Lock()
	// Victims are picked before the insert; the new session is never one.
	var evicted []*Session
	if s.maxSessions > 0 && len(s.data) >= s.maxSessions {
		evicted = s.oldestLocked(len(s.data) - s.maxSessions + 1)
		for _, e := range evicted {
			delete(s.data, e.ID)
		}
	}
	s.data[sess.ID] = sess
	s.mu.Unlock()

	closeAll(evicted)
	return sess
}

// oldestLocked returns the n least recently used sessions.
func (s *SessionStore) oldestLocked(n int) []*Session {
	all := make([]*Session, 0, len(s.data))
	for _, sess := range s.data {
		all = append(all, sess)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].lastSeen.Before(all[j].lastSeen)
	})
	return all[:n]
}

// Get returns the session for id and marks it as used.
func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	sess.lastSeen = s.clock.Now()
	return sess, nil
}

// Delete removes the session for id and closes its controller.
func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	sess, ok := s.data[id]
	if ok {
		delete(s.data, id)
	}
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	sess.Controller.Close()
	return nil
}

// Sweep removes every session idle for longer than the configured maximum
// and returns how many were removed.
func (s *SessionStore) Sweep() int {
	if s.maxIdle <= 0 {
		return 0
	}
	cutoff := s.clock.Now().Add(-s.maxIdle)

	s.mu.Lock()
	var expired []*Session
	for id, sess := range s.data {
		if sess.lastSeen.Before(cutoff) {
			expired = append(expired, sess)
			delete(s.data, id)
		}
	}
	s.mu.Unlock()

	closeAll(expired)
	return len(expired)
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Close removes every session and closes their controllers.
func (s *SessionStore) Close() {
	s.mu.Lock()
	all := make([]*Session, 0, len(s.data))
	for id, sess := range s.data {
		all = append(all, sess)
		delete(s.data, id)
	}
	s.mu.Unlock()

	closeAll(all)
}

func closeAll(sessions []*Session) {
	for _, sess := range sessions {
		sess.Controller.Close()
	}
}
