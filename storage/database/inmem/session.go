package inmemdb

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/session"
)

// SessionStore keeps sessions in memory with a sliding idle expiry.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
	idle     time.Duration
	now      func() time.Time

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

var _ session.Store = (*SessionStore)(nil)

func NewSessionStore(conf *core.Config) *SessionStore {
	idle := conf.Server.SessionIdleTimeout
	if idle <= 0 {
		idle = 24 * time.Hour
	}
	return &SessionStore{
		sessions: make(map[string]*session.Session),
		idle:     idle,
		now:      time.Now,
	}
}

func (s *SessionStore) Create(_ context.Context, userID int) (session.Session, error) {
	now := s.now()
	sess := session.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		LastSeen:  now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = &sess
	return sess, nil
}

func (s *SessionStore) Resolve(_ context.Context, id string) (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	now := s.now()
	if sess.Expired(now, s.idle) {
		delete(s.sessions, id)
		return session.Session{}, session.ErrNotFound
	}
	sess.LastSeen = now
	return *sess, nil
}

func (s *SessionStore) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes the sessions expired at now and returns how many were removed.
func (s *SessionStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for id, sess := range s.sessions {
		if sess.Expired(now, s.idle) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// StartSweeper runs Sweep every interval until Close is called. It must be called at most once.
func (s *SessionStore) StartSweeper(interval time.Duration, logger core.Logger) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := s.Sweep(s.now()); n > 0 && logger != nil {
					logger.Debug("swept expired sessions", map[string]interface{}{"count": n})
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Close stops the sweeper, if running, and waits for it to exit.
func (s *SessionStore) Close() error {
	s.stopOnce.Do(func() {
		if s.stop != nil {
			close(s.stop)
			<-s.done
		}
	})
	return nil
}
