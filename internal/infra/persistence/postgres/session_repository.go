package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Avaneesh40585/Secrets-App/internal/domain/entity"
	domainerrors "github.com/Avaneesh40585/Secrets-App/internal/domain/errors"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/repository"
	"github.com/Avaneesh40585/Secrets-App/internal/infra/persistence/model"
)

// sessionRepository implements the repository.SessionRepository interface using GORM.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Create persists a new session row, representing one live login.
func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	sessionM := fromSessionDomain(session)

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create session")
	}

	session.CreatedAt = sessionM.CreatedAt

	return nil
}

// FindByTokenID retrieves a session row. An expired row answers the same as
// a missing one; the sweep catches it later either way.
func (repo *sessionRepository) FindByTokenID(ctx context.Context, tokenID uuid.UUID) (*entity.Session, error) {
	var sessionM model.SessionModel
	err := repo.db.WithContext(ctx).
		Where("token_id = ?", tokenID).
		First(&sessionM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find session")
	}

	session := toSessionDomain(&sessionM)
	if session.ExpiresAt.Before(time.Now()) {
		return nil, repository.ErrSessionNotFound
	}

	return session, nil
}

// Delete removes a session row, effectively ending the session.
func (repo *sessionRepository) Delete(ctx context.Context, tokenID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("token_id = ?", tokenID).
		Delete(&model.SessionModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete session")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSessionNotFound
	}

	return nil
}

// DeleteExpired removes all expired session rows.
func (repo *sessionRepository) DeleteExpired(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&model.SessionModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to sweep expired sessions")
	}

	return nil
}

// --- Mapper Functions ---

// toSessionDomain converts a GORM SessionModel to a domain Session entity.
func toSessionDomain(data *model.SessionModel) *entity.Session {
	if data == nil {
		return nil
	}

	return &entity.Session{
		TokenID:   data.TokenID,
		AccountID: data.AccountID,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}

// fromSessionDomain converts a domain Session entity to a GORM SessionModel.
func fromSessionDomain(data *entity.Session) *model.SessionModel {
	if data == nil {
		return nil
	}

	return &model.SessionModel{
		TokenID:   data.TokenID,
		AccountID: data.AccountID,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}
