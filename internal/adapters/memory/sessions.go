package memory

import (
	"context"
	"crypto/subtle"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jsamuelsen/console-client/internal/domain"
	"github.com/jsamuelsen/console-client/internal/ports"
)

// Sessions issues opaque bearer tokens for known credentials.
type Sessions struct {
	mu          sync.RWMutex
	users       *Users
	credentials map[string]string
	tokens      map[string]int64
	newToken    func() string
}

// NewSessions creates a session store. credentials maps user names to passwords;
// each name must exist in users for a login to succeed.
func NewSessions(users *Users, credentials map[string]string) *Sessions {
	creds := make(map[string]string, len(credentials))
	for k, v := range credentials {
		creds[k] = v
	}

	return &Sessions{
		users:       users,
		credentials: creds,
		tokens:      make(map[string]int64),
		newToken:    func() string { return uuid.NewString() },
	}
}

// Login checks credentials and issues a token pair.
func (s *Sessions) Login(ctx context.Context, params domain.LoginParams) (*domain.LoginResponse, error) {
	s.mu.RLock()
	want, known := s.credentials[params.Username]
	s.mu.RUnlock()

	if !known || subtle.ConstantTimeCompare([]byte(want), []byte(params.Password)) != 1 {
		return nil, fmt.Errorf("%w: bad credentials", domain.ErrUnauthorized)
	}

	user, err := s.users.FindByName(ctx, params.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: bad credentials", domain.ErrUnauthorized)
	}

	resp := &domain.LoginResponse{Token: s.newToken(), RefreshToken: s.newToken()}

	s.mu.Lock()
	s.tokens[resp.Token] = user.UserID
	s.mu.Unlock()

	return resp, nil
}

// Resolve returns the user a token was issued to.
func (s *Sessions) Resolve(ctx context.Context, token string) (*domain.UserInfo, error) {
	s.mu.RLock()
	id, ok := s.tokens[token]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}

	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	return user, nil
}

var _ ports.SessionStore = (*Sessions)(nil)
