// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "github.com/Avaneesh40585/Secrets-App/internal/delivery/context"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/entity"
	domainerrors "github.com/Avaneesh40585/Secrets-App/internal/domain/errors"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/repository"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/service"
	"github.com/Avaneesh40585/Secrets-App/internal/usecase"
)

// authService implements the AuthUsecase interface.
type authService struct {
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	logger      *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	Logger      *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a local account with a freshly computed hash.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	_, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		srv.log(ctx).Warn("Registration for existing email", slog.String("email", input.Email))

		return nil, domainerrors.ErrDuplicateAccount.WrapMessage("email already registered")
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(err, "failed to check for existing account")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrHashInternal.WrapMessage("failed to hash password")
	}

	account := entity.NewLocalAccount(input.Email, hash)
	if err := srv.accountRepo.Create(ctx, account); err != nil {
		// The check-then-insert sequence is not atomic; the unique constraint
		// turns a concurrent duplicate into the same outcome as the check.
		if errors.Is(err, repository.ErrEmailTaken) {
			srv.log(ctx).Warn("Lost registration race", slog.String("email", input.Email))

			return nil, domainerrors.ErrDuplicateAccount.WrapMessage("email already registered")
		}

		return nil, errors.Wrap(err, "failed to create account")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", account.ID))

	return &usecase.AuthOutput{Account: account}, nil
}

// Login verifies a claimed email and plaintext password. Read-only.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown email")
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	// Federated accounts never authenticate with a password: there is no
	// hash to compare against, and guessing must not work either.
	if !account.IsLocal() {
		srv.log(ctx).Warn("Password login against federated account", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("account is not password-based")
	}

	match, err := srv.hasher.Check(input.Password, account.PasswordHash)
	if err != nil {
		srv.log(ctx).Error("Password comparison failed", slog.Any("error", err))

		return nil, domainerrors.ErrHashInternal.WrapMessage("password comparison failed")
	}
	if !match {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	srv.log(ctx).Debug("Login succeeded", slog.Any("accountID", account.ID))

	return &usecase.AuthOutput{Account: account}, nil
}

// ResolveGoogleUser is an upsert-by-email: a syntactically valid assertion
// always resolves to an account, existing or new.
//
// The lookup deliberately does not re-check the provider on a match, so a
// local-password account is attached as-is when its email arrives through
// Google. That mirrors the long-standing behavior of this flow; tightening
// it is a product decision, not a bug fix.
func (srv *authService) ResolveGoogleUser(ctx context.Context, oauthUser *service.OAuthUser) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Resolving Google identity", slog.String("email", oauthUser.Email))

	account, err := srv.accountRepo.FindByEmail(ctx, oauthUser.Email)
	if err == nil {
		srv.log(ctx).Debug("Found existing account for Google identity", slog.Any("accountID", account.ID))

		return &usecase.AuthOutput{Account: account}, nil
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(err, "failed to find account for Google identity")
	}

	srv.log(ctx).Info("Google identity unknown, creating account", slog.String("email", oauthUser.Email))

	account = entity.NewGoogleAccount(oauthUser.Email)
	if err := srv.accountRepo.Create(ctx, account); err != nil {
		// Two first logins racing: the loser re-reads the winner's row.
		if errors.Is(err, repository.ErrEmailTaken) {
			existing, findErr := srv.accountRepo.FindByEmail(ctx, oauthUser.Email)
			if findErr != nil {
				return nil, errors.Wrap(findErr, "failed to re-read account after insert race")
			}

			return &usecase.AuthOutput{Account: existing}, nil
		}

		return nil, errors.Wrap(err, "failed to create account for Google identity")
	}

	return &usecase.AuthOutput{Account: account}, nil
}

// AccountByID reconstitutes the account behind a session token.
// An ID that no longer matches any row is anonymous, never an error.
func (srv *authService) AccountByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return account, nil
}
