package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"artshare/internal/http-api/models"

	"github.com/google/uuid"
)

// Manager issues and resolves login sessions.
type Manager struct {
	store Store
	codec *Codec
	ttl   time.Duration
	now   func() time.Time
}

func NewManager(store Store, codec *Codec, ttl time.Duration) *Manager {
	return &Manager{store: store, codec: codec, ttl: ttl, now: time.Now}
}

// TTL is how long a new session lives; the cookie max-age follows it.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Start creates a session for the account and returns its signed token.
func (m *Manager) Start(ctx context.Context, account *models.Account) (string, *Session, error) {
	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		AccountID: account.ID,
		Username:  account.Username,
		Role:      account.Role,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Create(ctx, s); err != nil {
		return "", nil, err
	}

	token, err := m.codec.Sign(s.ID, now, s.ExpiresAt)
	if err != nil {
		// the row is useless without a token
		m.store.Delete(ctx, s.ID)
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return token, s, nil
}

// Lookup resolves a token to its live session.
func (m *Manager) Lookup(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	id, err := m.codec.Parse(token)
	if err != nil {
		return nil, err
	}
	return m.store.Get(ctx, id)
}

// End deletes the session behind token. Unknown, expired or malformed tokens
// are not an error.
func (m *Manager) End(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	id, err := m.codec.Parse(token)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return nil
		}
		return err
	}
	return m.store.Delete(ctx, id)
}
