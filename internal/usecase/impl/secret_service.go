package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "github.com/Avaneesh40585/Secrets-App/internal/delivery/context"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/entity"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/repository"
	"github.com/Avaneesh40585/Secrets-App/internal/usecase"
)

// sharePrompt is shown instead of other users' secrets until the viewer has
// shared one of their own.
const sharePrompt = "Share a secret first to see what others have shared!"

// secretService implements the SecretUsecase interface.
type secretService struct {
	accountRepo repository.AccountRepository
	logger      *slog.Logger
}

// SecretServiceParams holds dependencies for secretService, injected by Fx.
type SecretServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	Logger      *slog.Logger
}

// NewSecretService is the constructor for secretService.
func NewSecretService(params SecretServiceParams) usecase.SecretUsecase {
	return &secretService{
		accountRepo: params.AccountRepo,
		logger:      params.Logger,
	}
}

func (srv *secretService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// View applies the share-first gate, then returns a fresh random snapshot.
// The gate is a UX rule on top of authentication, not an authorization
// boundary: the viewer is already authenticated either way.
func (srv *secretService) View(ctx context.Context, viewer *entity.Account) (*usecase.SecretsView, error) {
	if !viewer.HasSecret() {
		srv.log(ctx).Debug("Viewer has no secret yet", slog.Any("accountID", viewer.ID))

		return &usecase.SecretsView{
			NeedsSecret: true,
			Secrets:     []string{sharePrompt},
		}, nil
	}

	secrets, err := srv.accountRepo.ListRandomSecrets(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load shared secrets")
	}

	return &usecase.SecretsView{Secrets: secrets}, nil
}

// Submit overwrites the caller's secret.
func (srv *secretService) Submit(ctx context.Context, accountID uuid.UUID, secret string) error {
	srv.log(ctx).Info("Submitting secret", slog.Any("accountID", accountID))

	if err := srv.accountRepo.UpdateSecret(ctx, accountID, secret); err != nil {
		return errors.Wrap(err, "failed to store secret")
	}

	return nil
}
