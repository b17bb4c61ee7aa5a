// Package session keeps server-side login sessions and the signed cookie
// token that points at them.
package session

import (
	"context"
	"errors"
	"time"

	"artshare/internal/http-api/models"
)

var (
	ErrNotFound     = errors.New("session not found")
	ErrInvalidToken = errors.New("invalid session token")
)

// Session binds an opaque id to the account that logged in.
type Session struct {
	ID        string
	AccountID uint
	Username  string
	Role      models.Role
	ExpiresAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store persists sessions. Get returns ErrNotFound for unknown or expired ids.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
