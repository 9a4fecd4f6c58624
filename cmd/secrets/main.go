package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"github.com/Avaneesh40585/Secrets-App/config"
	"github.com/Avaneesh40585/Secrets-App/internal/delivery"
	"github.com/Avaneesh40585/Secrets-App/internal/delivery/http"
	"github.com/Avaneesh40585/Secrets-App/internal/delivery/http/middleware"
	"github.com/Avaneesh40585/Secrets-App/internal/delivery/http/router/handler"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/lifecycle"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/repository"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/service"
	"github.com/Avaneesh40585/Secrets-App/internal/infra/auth"
	"github.com/Avaneesh40585/Secrets-App/internal/infra/auth/google"
	logs "github.com/Avaneesh40585/Secrets-App/internal/infra/log"
	"github.com/Avaneesh40585/Secrets-App/internal/infra/persistence/postgres"
	"github.com/Avaneesh40585/Secrets-App/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			sweepExpiredSessions,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewAccountRepository,
			postgres.NewSessionRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewSessionAuthority,
			newGoogleOAuthService,
		),
	)
}

// newGoogleOAuthService creates the Google sign-in service when configured.
func newGoogleOAuthService(cfg *config.Config) (service.OAuthService, error) {
	if cfg.GoogleOAuth == nil {
		return nil, nil // Google sign-in is optional
	}

	return google.NewOAuthService(cfg), nil
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewSecretService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewRequestIDMiddleware,
			middleware.NewSessionMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewSecretHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

type sweepSessionsParams struct {
	fx.In
	fx.Lifecycle

	Sessions repository.SessionRepository
	Logger   *slog.Logger
}

// sweepExpiredSessions clears sessions that expired between restarts. It
// runs after the schema is ensured; a failed sweep is logged, not fatal.
func sweepExpiredSessions(params sweepSessionsParams) {
	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sweepCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := params.Sessions.DeleteExpired(sweepCtx); err != nil {
				params.Logger.Warn("Failed to sweep expired sessions", slog.Any("error", err))
			}

			return nil
		},
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
