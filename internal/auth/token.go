package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrNoToken                  = errors.New("no API token available")
	ErrStaticTokenCannotRefresh = errors.New("API tokens cannot be refreshed, generate a new one in the ClickFunnels workspace settings")
)

// expirationBuffer treats tokens this close to expiry as already expired.
const expirationBuffer = 30 * time.Second

// TokenManager supplies the bearer token attached to every request.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) error
	SetToken(token string, expiresAt time.Time)
}

// Token is a bearer credential. ClickFunnels API tokens do not expire, so
// ExpiresAt is normally zero.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// Valid reports whether the token is usable.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(expirationBuffer).Before(t.ExpiresAt)
}

// TokenStore holds the current token for concurrent readers.
type TokenStore struct {
	mutex sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token or nil.
func (s *TokenStore) Get() *Token {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.token
}

// Set replaces the stored token.
func (s *TokenStore) Set(token *Token) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = token
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = nil
}

// StaticTokenManager serves a fixed API token.
type StaticTokenManager struct {
	store *TokenStore
}

// NewStaticTokenManager creates a manager for token. Surrounding whitespace
// and a leading "Bearer " prefix are stripped.
func NewStaticTokenManager(token string) *StaticTokenManager {
	manager := &StaticTokenManager{store: NewTokenStore()}
	manager.SetToken(token, time.Time{})

	return manager
}

// GetToken returns the API token.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if !token.Valid() {
		return "", ErrNoToken
	}

	return token.AccessToken, nil
}

// RefreshToken always fails; API tokens are long-lived.
func (m *StaticTokenManager) RefreshToken(ctx context.Context) error {
	return ErrStaticTokenCannotRefresh
}

// SetToken replaces the API token.
func (m *StaticTokenManager) SetToken(token string, expiresAt time.Time) {
	token = NormalizeToken(token)
	if token == "" {
		m.store.Clear()

		return
	}

	m.store.Set(&Token{AccessToken: token, TokenType: "bearer", ExpiresAt: expiresAt})
}

// NormalizeToken trims whitespace and an optional "Bearer " prefix.
func NormalizeToken(token string) string {
	token = strings.TrimSpace(token)

	if len(token) > len("bearer ") && strings.EqualFold(token[:len("bearer ")], "bearer ") {
		token = strings.TrimSpace(token[len("bearer "):])
	}

	return token
}
