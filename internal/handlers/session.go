package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/csg33k/employee-manager/internal/controller"
)

const sessionCookie = "employee_session"

// DefaultSessionIdle is how long an unused session is kept.
const DefaultSessionIdle = 30 * time.Minute

// Sessions gives each browser its own controller, keyed by a cookie, so
// criteria, the modal and toasts are never shared between visitors.
type Sessions struct {
	newController func() *controller.Controller
	idle          time.Duration
	now           func() time.Time

	mu   sync.Mutex
	byID map[string]*session
}

type session struct {
	ctl  *controller.Controller
	seen time.Time
}

type SessionOption func(*Sessions)

func WithIdleTimeout(d time.Duration) SessionOption {
	return func(s *Sessions) { s.idle = d }
}

func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *Sessions) { s.now = now }
}

func NewSessions(newController func() *controller.Controller, opts ...SessionOption) *Sessions {
	s := &Sessions{
		newController: newController,
		idle:          DefaultSessionIdle,
		now:           time.Now,
		byID:          make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Controller returns the controller for the request's session, starting a
// new session and setting its cookie when there is none.
func (s *Sessions) Controller(w http.ResponseWriter, r *http.Request) *controller.Controller {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked(now)

	if c, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := s.byID[c.Value]; ok {
			sess.seen = now
			return sess.ctl
		}
	}

	id := uuid.NewString()
	sess := &session{ctl: s.newController(), seen: now}
	s.byID[id] = sess
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess.ctl
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expireLocked(s.now())
	return len(s.byID)
}

func (s *Sessions) expireLocked(now time.Time) {
	for id, sess := range s.byID {
		if now.Sub(sess.seen) > s.idle {
			delete(s.byID, id)
		}
	}
}
