// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/Avaneesh40585/Secrets-App/internal/domain/entity"
)

// SecretsView is what an authenticated visitor sees on the secrets page.
type SecretsView struct {
	// NeedsSecret is the share-first gate: true when the viewer has not
	// submitted a secret yet, in which case Secrets holds only the prompt.
	NeedsSecret bool
	Secrets     []string
}

// SecretUsecase implements the pay-to-view gate over the shared secrets.
type SecretUsecase interface {
	// View returns the viewer's gated snapshot: the share-first prompt until
	// they have submitted, then a randomly-ordered snapshot of every
	// non-empty secret including their own.
	View(ctx context.Context, viewer *entity.Account) (*SecretsView, error)

	// Submit overwrites the caller's secret. Submitting the same text twice
	// leaves a single row unchanged.
	Submit(ctx context.Context, accountID uuid.UUID, secret string) error
}
