// Package entity contains the core business objects of the application.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account is the sole persisted entity: one row per registered identity,
// whether it was created by local registration or by a first Google login.
type Account struct {
	ID           uuid.UUID // Assigned at creation, immutable afterwards.
	Email        string    // Unique login key across all providers.
	PasswordHash string    // bcrypt hash; empty for federated accounts.
	Secret       string    // The shared secret; empty means "not submitted yet".
	Provider     Provider  // Authentication method that owns this account.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewLocalAccount builds an account owned by email/password credentials.
// The hash must already be computed; a local account without one is invalid.
func NewLocalAccount(email, passwordHash string) *Account {
	return &Account{
		Email:        email,
		PasswordHash: passwordHash,
		Provider:     ProviderLocal,
	}
}

// NewGoogleAccount builds an account owned by a Google identity.
// Federated accounts never carry a password hash.
func NewGoogleAccount(email string) *Account {
	return &Account{
		Email:    email,
		Provider: ProviderGoogle,
	}
}

// IsLocal reports whether the account authenticates with a password.
func (a *Account) IsLocal() bool {
	return a.Provider == ProviderLocal
}

// HasSecret reports whether the account has submitted a non-empty secret.
func (a *Account) HasSecret() bool {
	return strings.TrimSpace(a.Secret) != ""
}
