package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	deliverycontext "github.com/Avaneesh40585/Secrets-App/internal/delivery/context"
	"github.com/Avaneesh40585/Secrets-App/internal/delivery/http/middleware"
	"github.com/Avaneesh40585/Secrets-App/internal/usecase"
)

// secretsPage is the view model for the secrets wall.
type secretsPage struct {
	Secrets []string
}

// submitPage is the view model for the submission form.
type submitPage struct {
	Secret string
}

// SecretHandler serves the secrets wall and the submission form.
type SecretHandler struct {
	secrets usecase.SecretUsecase
	logger  *slog.Logger
}

// NewSecretHandler is the constructor for SecretHandler, injected by Fx.
func NewSecretHandler(secrets usecase.SecretUsecase, logger *slog.Logger) *SecretHandler {
	return &SecretHandler{
		secrets: secrets,
		logger:  logger,
	}
}

// Secrets renders the secrets wall for the signed-in account. When loading
// fails the page still renders, with a placeholder in place of the secrets.
func (h *SecretHandler) Secrets(c echo.Context) error {
	ctx := c.Request().Context()
	account := middleware.AccountFrom(c)

	view, err := h.secrets.View(ctx, account)
	if err != nil {
		log := deliverycontext.GetLoggerOrDefault(ctx, h.logger)
		log.ErrorContext(ctx, "failed to load secrets", slog.Any("error", err))

		return c.Render(http.StatusOK, "secrets", secretsPage{Secrets: []string{"Error loading secrets."}})
	}

	return c.Render(http.StatusOK, "secrets", secretsPage{Secrets: view.Secrets})
}

// SubmitForm renders the submission form, prefilled with the account's
// current secret so a resubmission edits rather than starts over.
func (h *SecretHandler) SubmitForm(c echo.Context) error {
	account := middleware.AccountFrom(c)

	return c.Render(http.StatusOK, "submit", submitPage{Secret: account.Secret})
}

// Submit stores the submitted secret, replacing any previous one.
func (h *SecretHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	account := middleware.AccountFrom(c)
	secret := c.FormValue("secret")

	if err := h.secrets.Submit(ctx, account.ID, secret); err != nil {
		log := deliverycontext.GetLoggerOrDefault(ctx, h.logger)
		log.ErrorContext(ctx, "failed to store secret",
			slog.String("account_id", account.ID.String()),
			slog.Any("error", err))
	}

	return c.Redirect(http.StatusFound, "/secrets")
}
