package repository

import (
	"context"
	"errors"

	"github.com/Avaneesh40585/Secrets-App/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when no live session matches the token ID,
// whether it never existed, was revoked, or was swept after expiry.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists live sessions. A session token only proves an
// identity while its row exists, so deleting the row is revocation.
type SessionRepository interface {
	// Create persists a newly established session.
	Create(ctx context.Context, session *entity.Session) error

	// FindByTokenID retrieves a live session. An expired row is treated the
	// same as a missing one.
	FindByTokenID(ctx context.Context, tokenID uuid.UUID) (*entity.Session, error)

	// Delete removes a session, ending it. Deleting an already-gone session
	// returns ErrSessionNotFound.
	Delete(ctx context.Context, tokenID uuid.UUID) error

	// DeleteExpired sweeps rows whose expiry has passed.
	DeleteExpired(ctx context.Context) error
}
