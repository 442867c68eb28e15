package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrNoConfigPersister = errors.New("no config persister configured")
)

// ConfigPersister defines the interface for persisting config changes.
type ConfigPersister interface {
	UpdateAPIToken(token string) error
}

// ConfigTokenManager wraps StaticTokenManager and writes token changes back
// to the CLI configuration.
type ConfigTokenManager struct {
	*StaticTokenManager

	configPersister ConfigPersister
}

// NewConfigTokenManager creates a new config-persisting token manager.
func NewConfigTokenManager(configPersister ConfigPersister, initialToken string) *ConfigTokenManager {
	return &ConfigTokenManager{
		StaticTokenManager: NewStaticTokenManager(initialToken),
		configPersister:    configPersister,
	}
}

// UpdateToken replaces the token and persists it.
func (m *ConfigTokenManager) UpdateToken(ctx context.Context, token string) error {
	if m.configPersister == nil {
		return ErrNoConfigPersister
	}

	m.StaticTokenManager.SetToken(token, time.Time{})

	current, err := m.GetToken(ctx)
	if err != nil {
		return err
	}

	err = m.configPersister.UpdateAPIToken(current)
	if err != nil {
		return fmt.Errorf("persisting API token: %w", err)
	}

	return nil
}

// SetToken replaces the token and persists it, warning on failure.
func (m *ConfigTokenManager) SetToken(token string, expiresAt time.Time) {
	err := m.UpdateToken(context.Background(), token)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to persist API token: %v\n", err)
	}
}
