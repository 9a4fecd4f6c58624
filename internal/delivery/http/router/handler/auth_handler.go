// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "github.com/Avaneesh40585/Secrets-App/internal/delivery/context"
	"github.com/Avaneesh40585/Secrets-App/internal/delivery/http/middleware"
	domainerrors "github.com/Avaneesh40585/Secrets-App/internal/domain/errors"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/service"
	"github.com/Avaneesh40585/Secrets-App/internal/usecase"
)

// authPage is the view model shared by the login and register pages.
type authPage struct {
	Email         string
	Error         string
	GoogleEnabled bool
}

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	Auth     usecase.AuthUsecase
	Sessions service.SessionAuthority
	Session  *middleware.SessionMiddleware
	Google   service.OAuthService `optional:"true"`
	Logger   *slog.Logger
}

// AuthHandler serves registration, login, logout, and the Google sign-in flow.
type AuthHandler struct {
	auth     usecase.AuthUsecase
	sessions service.SessionAuthority
	session  *middleware.SessionMiddleware
	google   service.OAuthService
	logger   *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(p AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		auth:     p.Auth,
		sessions: p.Sessions,
		session:  p.Session,
		google:   p.Google,
		logger:   p.Logger,
	}
}

// Home renders the landing page.
func (h *AuthHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home", nil)
}

// LoginForm renders the login page.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login", authPage{GoogleEnabled: h.google != nil})
}

// RegisterForm renders the registration page.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register", authPage{GoogleEnabled: h.google != nil})
}

// Register handles the registration form submission.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return h.renderRegister(c, input.Email, "Invalid registration input.")
	}

	if err := c.Validate(&input); err != nil {
		return h.renderRegister(c, input.Email, registrationFailureMessage(err))
	}

	output, err := h.auth.Register(c.Request().Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrDuplicateAccount):
			// The email is already registered. Send the visitor to log in instead.
			return c.Redirect(http.StatusFound, "/login")
		case errors.Is(err, domainerrors.ErrHashInternal):
			return h.renderRegister(c, input.Email, "Server error. Please try again.")
		default:
			return errors.WithStack(err)
		}
	}

	return h.establishSession(c, output)
}

// Login handles the login form submission.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	output, err := h.auth.Login(c.Request().Context(), &input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidCredentials) {
			return c.Redirect(http.StatusFound, "/login")
		}

		return errors.WithStack(err)
	}

	return h.establishSession(c, output)
}

// Logout revokes the session server-side and clears the cookie. Even when
// revocation fails, the cookie is cleared and the redirect still happens;
// the failure is logged rather than swallowed as a success.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	if token := h.session.Token(c); token != "" {
		if err := h.sessions.Revoke(ctx, token); err != nil {
			log := deliverycontext.GetLoggerOrDefault(ctx, h.logger)
			log.ErrorContext(ctx, "failed to revoke session", slog.Any("error", err))
		}
	}

	h.session.ClearSessionCookie(c)

	return c.Redirect(http.StatusFound, "/")
}

// GoogleLogin redirects the visitor to Google's consent screen.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	if h.google == nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	return c.Redirect(http.StatusFound, h.google.BuildAuthorizationURL())
}

// GoogleCallback completes the Google sign-in flow. Any failure along the
// way sends the visitor back to the login page.
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	if h.google == nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	ctx := c.Request().Context()
	log := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	state := c.QueryParam("state")
	code := c.QueryParam("code")
	if code == "" || !h.google.ValidateState(state) {
		log.WarnContext(ctx, "rejected google callback", slog.Bool("has_code", code != ""))

		return c.Redirect(http.StatusFound, "/login")
	}

	accessToken, err := h.google.ExchangeCode(ctx, code)
	if err != nil {
		log.ErrorContext(ctx, "google code exchange failed", slog.Any("error", err))

		return c.Redirect(http.StatusFound, "/login")
	}

	oauthUser, err := h.google.FetchUser(ctx, accessToken)
	if err != nil {
		log.ErrorContext(ctx, "google profile fetch failed", slog.Any("error", err))

		return c.Redirect(http.StatusFound, "/login")
	}

	output, err := h.auth.ResolveGoogleUser(ctx, oauthUser)
	if err != nil {
		log.ErrorContext(ctx, "google account resolution failed", slog.Any("error", err))

		return c.Redirect(http.StatusFound, "/login")
	}

	return h.establishSession(c, output)
}

// establishSession mints a session for the authenticated account and lands
// the visitor on the secrets page.
func (h *AuthHandler) establishSession(c echo.Context, output *usecase.AuthOutput) error {
	token, err := h.sessions.Establish(c.Request().Context(), output.Account.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	h.session.SetSessionCookie(c, token)

	return c.Redirect(http.StatusFound, "/secrets")
}

func (h *AuthHandler) renderRegister(c echo.Context, email, message string) error {
	return c.Render(http.StatusOK, "register", authPage{
		Email:         email,
		Error:         message,
		GoogleEnabled: h.google != nil,
	})
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
