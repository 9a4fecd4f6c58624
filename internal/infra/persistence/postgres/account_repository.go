// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Avaneesh40585/Secrets-App/internal/domain/entity"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/repository"
	"github.com/Avaneesh40585/Secrets-App/internal/infra/persistence/model"
)

// accountRepository implements the repository.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a repository.AccountRepository interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByID retrieves a single account by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&accountM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return toAccountDomain(&accountM), nil
}

// FindByEmail retrieves a single account by its email address.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&accountM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// Create persists a new account. The unique index on email turns a
// concurrent duplicate insert into ErrEmailTaken instead of a second row.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrEmailTaken
		}

		return errors.Wrap(err, "failed to create account")
	}

	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// UpdateSecret overwrites the account's secret in a single-row update.
func (repo *accountRepository) UpdateSecret(ctx context.Context, id uuid.UUID, secret string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", id).
		Update("secret", secret)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update secret")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// ListRandomSecrets returns every non-empty secret in random order.
// Ordering happens at the store so each request sees a fresh shuffle.
func (repo *accountRepository) ListRandomSecrets(ctx context.Context) ([]string, error) {
	var secrets []string
	err := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("secret IS NOT NULL AND secret != ''").
		Order("RANDOM()").
		Pluck("secret", &secrets).Error

	if err != nil {
		return nil, errors.Wrap(err, "failed to list secrets")
	}

	return secrets, nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	account := &entity.Account{
		ID:        data.ID,
		Email:     data.Email,
		Provider:  entity.Provider(data.Provider),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
	if data.Password != nil {
		account.PasswordHash = *data.Password
	}
	if data.Secret != nil {
		account.Secret = *data.Secret
	}

	return account
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel for persistence.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	accountM := &model.AccountModel{
		ID:       data.ID,
		Email:    data.Email,
		Provider: data.Provider.String(),
	}
	// NULL, not empty string, for federated accounts: the column-level
	// invariant is "google rows have no password".
	if data.PasswordHash != "" {
		hash := data.PasswordHash
		accountM.Password = &hash
	}
	if data.Secret != "" {
		secret := data.Secret
		accountM.Secret = &secret
	}

	return accountM
}
