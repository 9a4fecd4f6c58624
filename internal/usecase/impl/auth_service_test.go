package impl

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Avaneesh40585/Secrets-App/internal/domain/entity"
	domainerrors "github.com/Avaneesh40585/Secrets-App/internal/domain/errors"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/service"
	"github.com/Avaneesh40585/Secrets-App/internal/infra/auth"
	"github.com/Avaneesh40585/Secrets-App/internal/usecase"
)

func newTestAuthService(repo *fakeAccountRepo) usecase.AuthUsecase {
	return NewAuthService(AuthServiceParams{
		AccountRepo: repo,
		Hasher:      auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		Logger:      newDiscardLogger(),
	})
}

func TestAuthService_Register_CreatesLocalAccount(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	output, err := svc.Register(ctx, &usecase.RegisterInput{
		Email:    "new@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)
	require.NotNil(t, output)

	account := output.Account
	assert.Equal(t, "new@example.com", account.Email)
	assert.Equal(t, entity.ProviderLocal, account.Provider)
	assert.NotEqual(t, uuid.Nil, account.ID)

	// The stored credential is a hash, never the plaintext.
	assert.NotEqual(t, "hunter2", account.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("hunter2")))
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.seed(entity.NewLocalAccount("taken@example.com", "$2a$04$existinghash"))
	svc := newTestAuthService(repo)

	output, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Email:    "taken@example.com",
		Password: "hunter2",
	})
	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateAccount)
}

func TestAuthService_Register_LostInsertRace(t *testing.T) {
	// The existence check passes but the insert hits the unique constraint,
	// as happens when two registrations for one email interleave.
	repo := newFakeAccountRepo()
	repo.seed(entity.NewLocalAccount("race@example.com", "$2a$04$existinghash"))
	repo.missFirstFind = true
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Email:    "race@example.com",
		Password: "other-pass",
	})
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateAccount)
}

func TestAuthService_Register_HasherFailure(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := NewAuthService(AuthServiceParams{
		AccountRepo: repo,
		Hasher:      failingHasher{},
		Logger:      newDiscardLogger(),
	})

	_, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Email:    "new@example.com",
		Password: "hunter2",
	})
	assert.ErrorIs(t, err, domainerrors.ErrHashInternal)
}

func TestAuthService_Login_Succeeds(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := newFakeAccountRepo()
	seeded := entity.NewLocalAccount("user@example.com", string(hash))
	repo.seed(seeded)
	svc := newTestAuthService(repo)

	output, err := svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "user@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, output.Account.ID)
}

func TestAuthService_Login_Rejections(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := newFakeAccountRepo()
	repo.seed(entity.NewLocalAccount("user@example.com", string(hash)))
	repo.seed(entity.NewGoogleAccount("federated@example.com"))
	svc := newTestAuthService(repo)
	ctx := context.Background()

	tests := []struct {
		name  string
		input usecase.LoginInput
	}{
		{"unknown email", usecase.LoginInput{Email: "nobody@example.com", Password: "hunter2"}},
		{"wrong password", usecase.LoginInput{Email: "user@example.com", Password: "wrong"}},
		{"federated account", usecase.LoginInput{Email: "federated@example.com", Password: "hunter2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := svc.Login(ctx, &tt.input)
			assert.Nil(t, output)
			// Every rejection collapses into the same error so the login
			// page cannot leak which check failed.
			assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
		})
	}
}

func TestAuthService_Login_HasherFailure(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.seed(entity.NewLocalAccount("user@example.com", "$2a$04$somehash"))
	svc := NewAuthService(AuthServiceParams{
		AccountRepo: repo,
		Hasher:      failingHasher{},
		Logger:      newDiscardLogger(),
	})

	_, err := svc.Login(context.Background(), &usecase.LoginInput{
		Email:    "user@example.com",
		Password: "hunter2",
	})
	assert.ErrorIs(t, err, domainerrors.ErrHashInternal)
}

func TestAuthService_ResolveGoogleUser_CreatesAccount(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newTestAuthService(repo)

	output, err := svc.ResolveGoogleUser(context.Background(), &service.OAuthUser{
		ID:    "google-sub-1",
		Email: "fresh@example.com",
	})
	require.NoError(t, err)

	account := output.Account
	assert.Equal(t, "fresh@example.com", account.Email)
	assert.Equal(t, entity.ProviderGoogle, account.Provider)
	assert.Empty(t, account.PasswordHash)
}

func TestAuthService_ResolveGoogleUser_AttachesExistingAccount(t *testing.T) {
	repo := newFakeAccountRepo()
	seeded := entity.NewLocalAccount("shared@example.com", "$2a$04$existinghash")
	repo.seed(seeded)
	svc := newTestAuthService(repo)

	output, err := svc.ResolveGoogleUser(context.Background(), &service.OAuthUser{
		ID:    "google-sub-2",
		Email: "shared@example.com",
	})
	require.NoError(t, err)

	// Matching is by email only; the existing local account is reused
	// without rewriting its provider.
	assert.Equal(t, seeded.ID, output.Account.ID)
	assert.Equal(t, entity.ProviderLocal, output.Account.Provider)
}

func TestAuthService_ResolveGoogleUser_LostInsertRace(t *testing.T) {
	// Simulate the race: the lookup misses, the insert loses to a concurrent
	// first login, and the re-read finds the winner's row.
	repo := newFakeAccountRepo()
	winner := entity.NewGoogleAccount("race@example.com")
	repo.seed(winner)
	repo.missFirstFind = true
	svc := newTestAuthService(repo)

	output, err := svc.ResolveGoogleUser(context.Background(), &service.OAuthUser{
		ID:    "google-sub-3",
		Email: "race@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, winner.ID, output.Account.ID)
}

func TestAuthService_AccountByID_MissingIsAnonymous(t *testing.T) {
	repo := newFakeAccountRepo()
	svc := newTestAuthService(repo)

	account, err := svc.AccountByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestAuthService_AccountByID_Found(t *testing.T) {
	repo := newFakeAccountRepo()
	seeded := entity.NewLocalAccount("user@example.com", "$2a$04$existinghash")
	repo.seed(seeded)
	svc := newTestAuthService(repo)

	account, err := svc.AccountByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, seeded.Email, account.Email)
}
