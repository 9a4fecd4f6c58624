// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"github.com/Avaneesh40585/Secrets-App/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for account persistence.
// This allows the application layer to handle specific outcomes without depending on database-specific errors.
var (
	// ErrAccountNotFound is returned when no account matches the lookup key.
	ErrAccountNotFound = errors.New("account not found")
	// ErrEmailTaken is returned when an insert collides with the unique email constraint.
	ErrEmailTaken = errors.New("email already registered")
)

// AccountRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete implementation.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Create persists a new account. The store enforces email uniqueness as a
	// hard constraint, so a concurrent duplicate registration degrades to
	// ErrEmailTaken rather than a silent second row.
	Create(ctx context.Context, account *entity.Account) error

	// UpdateSecret overwrites the account's secret in a single-row update.
	UpdateSecret(ctx context.Context, id uuid.UUID, secret string) error

	// ListRandomSecrets returns every non-empty secret across all accounts in
	// random order, including the requester's own.
	ListRandomSecrets(ctx context.Context) ([]string, error)
}
