package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Avaneesh40585/Secrets-App/internal/domain/entity"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/repository"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAccountRepo is an in-memory repository.AccountRepository. Error fields
// override the corresponding call when set.
type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*entity.Account

	findErr       error
	createErr     error
	updateErr     error
	listErr       error
	missFirstFind bool
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*entity.Account)}
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}

	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	copied := *account

	return &copied, nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.missFirstFind {
		r.missFirstFind = false

		return nil, repository.ErrAccountNotFound
	}

	for _, account := range r.accounts {
		if account.Email == email {
			copied := *account

			return &copied, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}

	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return repository.ErrEmailTaken
		}
	}

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}

	copied := *account
	r.accounts[account.ID] = &copied

	return nil
}

func (r *fakeAccountRepo) UpdateSecret(_ context.Context, id uuid.UUID, secret string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.updateErr != nil {
		return r.updateErr
	}

	account, ok := r.accounts[id]
	if !ok {
		return repository.ErrAccountNotFound
	}

	account.Secret = secret

	return nil
}

func (r *fakeAccountRepo) ListRandomSecrets(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listErr != nil {
		return nil, r.listErr
	}

	var secrets []string
	for _, account := range r.accounts {
		if account.HasSecret() {
			secrets = append(secrets, account.Secret)
		}
	}

	return secrets, nil
}

func (r *fakeAccountRepo) seed(account *entity.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}

	copied := *account
	r.accounts[account.ID] = &copied
}

// failingHasher returns an error from every call, for exercising the
// internal-failure paths.
type failingHasher struct{}

func (failingHasher) Hash(string) (string, error) {
	return "", errors.New("hash backend unavailable")
}

func (failingHasher) Check(string, string) (bool, error) {
	return false, errors.New("hash backend unavailable")
}
