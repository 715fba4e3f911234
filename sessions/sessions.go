// Package sessions holds the console's login sessions: the platform bearer
// token plus the principal's username and role. Sessions are created at
// login and destroyed at logout; nothing here inspects or refreshes the
// token itself.
package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists sessions across requests. Implementations must be safe for
// concurrent use.
type Store interface {
	Create(ctx context.Context, token, username, role string) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

func newSession(token, username, role string) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Token:     token,
		Username:  username,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
}
