// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/Avaneesh40585/Secrets-App/internal/domain/entity"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/service"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new local account.
// Validation (email shape, password length) happens at the delivery layer
// before any of this reaches a store.
type RegisterInput struct {
	Email    string `form:"username" validate:"required,login_email"`
	Password string `form:"password" validate:"required,min=6"`
}

// LoginInput defines the data required for a local login attempt.
type LoginInput struct {
	Email    string `form:"username"`
	Password string `form:"password"`
}

// --- Output DTOs ---

// AuthOutput returns the account a successful verification resolved to.
type AuthOutput struct {
	Account *entity.Account
}

// AuthUsecase groups the three identity operations: local credential
// verification, local registration, and federated identity resolution.
// Every success is followed by exactly one session establishment at the
// delivery layer.
type AuthUsecase interface {
	// Register creates a local account. A pre-existing email yields
	// errors.ErrDuplicateAccount, including when a concurrent registration
	// wins the insert race.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login verifies local credentials. Unknown email, federated account,
	// or password mismatch all yield errors.ErrInvalidCredentials. A failure
	// of the comparison itself is a distinct internal error.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// ResolveGoogleUser attaches a verified Google identity assertion to a
	// local account, creating one on first login. It never fails for a valid
	// assertion.
	ResolveGoogleUser(ctx context.Context, oauthUser *service.OAuthUser) (*AuthOutput, error)

	// AccountByID reconstitutes the account behind a resolved session.
	// A dangling ID (row gone) returns (nil, nil): anonymous, not an error.
	AccountByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
}
