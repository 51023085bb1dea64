package session

import (
	"errors"
	"sync"
	"time"

	"github.com/Evgen-Mutagen/online-banking/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultTimeout = 5 * time.Minute
	ExpiredNotice  = "Session expired due to inactivity."
)

var ErrSessionNotFound = errors.New("session not found")

type Options struct {
	Timeout time.Duration
	Clock   Clock
	Logger  *zap.Logger
	// NewID generates session identifiers; uuid v4 when nil.
	NewID func() string
	// OnExpire runs after a session was logged out by its timer.
	OnExpire func(model.Session)
}

type entry struct {
	state model.Session
	timer *Timer
}

// Manager holds the dashboard state of every browser session and enforces
// the inactivity timeout of authenticated ones.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*entry
	timeout  time.Duration
	clock    Clock
	logger   *zap.Logger
	newID    func() string
	onExpire func(model.Session)
}

func NewManager(opts Options) *Manager {
	m := &Manager{
		sessions: make(map[string]*entry),
		timeout:  opts.Timeout,
		clock:    opts.Clock,
		logger:   opts.Logger,
		newID:    opts.NewID,
		onExpire: opts.OnExpire,
	}
	if m.timeout <= 0 {
		m.timeout = DefaultTimeout
	}
	if m.clock == nil {
		m.clock = SystemClock()
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.newID == nil {
		m.newID = uuid.NewString
	}
	return m
}

func (m *Manager) Timeout() time.Duration {
	return m.timeout
}

// Create starts an unauthenticated session on the overview.
func (m *Manager) Create() model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	id := m.newID()
	e := &entry{
		state: model.Session{
			ID:        id,
			View:      model.ViewOverview,
			CreatedAt: now,
			LastSeen:  now,
		},
	}
	e.timer = NewTimer(m.clock, m.timeout, func() { m.expire(id) })
	m.sessions[id] = e

	return e.snapshot()
}

func (m *Manager) Get(id string) (model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return model.Session{}, ErrSessionNotFound
	}
	return e.snapshot(), nil
}

// Update applies fn to the session state. Changes are discarded when fn
// returns an error. Update does not count as activity for the timeout.
func (m *Manager) Update(id string, fn func(*model.Session) error) (model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return model.Session{}, ErrSessionNotFound
	}

	next := e.snapshot()
	if err := fn(&next); err != nil {
		return e.snapshot(), err
	}
	// Authentication state only changes through Authenticate and Logout.
	next.User = e.state.User
	next.ID = e.state.ID
	next.LastSeen = m.clock.Now()
	e.state = next

	return e.snapshot(), nil
}

// Authenticate moves the session to the authenticated state and arms the
// inactivity timer.
func (m *Manager) Authenticate(id string, user model.User) (model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return model.Session{}, ErrSessionNotFound
	}

	e.state.User = &user
	e.state.AuthError = ""
	e.state.Notice = ""
	e.state.LastSeen = m.clock.Now()
	e.timer.Start()

	m.logger.Debug("Session authenticated",
		zap.String("session_id", id),
		zap.String("email", user.Email),
		zap.Time("expires_at", e.timer.Deadline()))

	return e.snapshot(), nil
}

// Logout ends the session's authentication. It reports whether the
// session was authenticated; logging out twice has no further effect.
func (m *Manager) Logout(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return false, ErrSessionNotFound
	}
	if e.state.User == nil {
		return false, nil
	}

	e.logout("")
	return true, nil
}

// Touch records user activity. An authenticated session gets its timer
// re-armed for the full duration; the result reports whether that happened.
func (m *Manager) Touch(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return false, ErrSessionNotFound
	}

	e.state.LastSeen = m.clock.Now()
	if e.state.User == nil {
		return false, nil
	}
	e.timer.Start()
	return true, nil
}

// TakeNotice returns the session and clears its notice, so each notice is
// delivered once.
func (m *Manager) TakeNotice(id string) (model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return model.Session{}, ErrSessionNotFound
	}
	s := e.snapshot()
	e.state.Notice = ""
	return s, nil
}

// Sweep drops unauthenticated sessions not seen for longer than idle and
// returns how many were removed.
func (m *Manager) Sweep(idle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.clock.Now().Add(-idle)
	removed := 0
	for id, e := range m.sessions {
		if e.state.User != nil || !e.state.LastSeen.Before(cutoff) {
			continue
		}
		e.timer.Cancel()
		delete(m.sessions, id)
		removed++
	}
	return removed
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close disarms every timer. Sessions stay readable.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.sessions {
		e.timer.Cancel()
	}
}

func (m *Manager) expire(id string) {
	m.mu.Lock()
	e, ok := m.sessions[id]
	// A Touch that raced the firing re-armed the timer and wins.
	if !ok || e.state.User == nil || e.timer.Armed() {
		m.mu.Unlock()
		return
	}
	email := e.state.User.Email
	e.logout(ExpiredNotice)
	s := e.snapshot()
	m.mu.Unlock()

	m.logger.Info("Session expired due to inactivity",
		zap.String("session_id", id),
		zap.String("email", email))

	if m.onExpire != nil {
		m.onExpire(s)
	}
}

func (e *entry) logout(notice string) {
	e.timer.Cancel()
	e.state.User = nil
	e.state.Notice = notice
}

func (e *entry) snapshot() model.Session {
	s := e.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	s.ExpiresAt = e.timer.Deadline()
	return s
}
