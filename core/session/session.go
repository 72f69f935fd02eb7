package session

import (
	"context"
	"time"

	"github.com/trezcool/shule/core"
)

// ErrNotFound is returned for unknown and expired sessions alike.
var ErrNotFound = core.NewNotFoundError("session not found")

type Session struct {
	ID        string
	UserID    int
	CreatedAt time.Time
	LastSeen  time.Time
}

// Expired reports whether s has been idle for longer than idle at now.
func (s Session) Expired(now time.Time, idle time.Duration) bool {
	return now.Sub(s.LastSeen) > idle
}

// Store maps session ids to user ids. Resolve slides the idle expiry forward.
type Store interface {
	Create(ctx context.Context, userID int) (Session, error)
	Resolve(ctx context.Context, id string) (Session, error)
	Destroy(ctx context.Context, id string) error
}
