package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Avaneesh40585/Secrets-App/config"
	deliverycontext "github.com/Avaneesh40585/Secrets-App/internal/delivery/context"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/entity"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/service"
	"github.com/Avaneesh40585/Secrets-App/internal/usecase"
)

// keyAccount is the echo.Context key the resolved account is stored under.
const keyAccount = "session_account"

// SessionMiddleware resolves the session cookie into an account for each request.
type SessionMiddleware struct {
	sessions   service.SessionAuthority
	auth       usecase.AuthUsecase
	cookieName string
	logger     *slog.Logger
}

// NewSessionMiddleware creates a new session middleware.
func NewSessionMiddleware(
	cfg *config.Config,
	sessions service.SessionAuthority,
	auth usecase.AuthUsecase,
	logger *slog.Logger,
) *SessionMiddleware {
	return &SessionMiddleware{
		sessions:   sessions,
		auth:       auth,
		cookieName: cfg.Session.CookieName,
		logger:     logger,
	}
}

// LoadAccount resolves the session cookie, if any, and stores the account in
// the echo context. A missing, expired, or tampered cookie leaves the request
// anonymous; it never fails the request.
func (m *SessionMiddleware) LoadAccount(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			return next(c)
		}

		accountID, err := m.sessions.Resolve(c.Request().Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, service.ErrNoSession) {
				log := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
				log.ErrorContext(c.Request().Context(), "failed to resolve session", slog.Any("error", err))

				return next(c)
			}

			// Invalid, expired or revoked token. Clear it so the browser
			// stops sending it.
			m.ClearSessionCookie(c)

			return next(c)
		}

		account, err := m.auth.AccountByID(c.Request().Context(), accountID)
		if err != nil {
			log := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
			log.ErrorContext(c.Request().Context(), "failed to load session account",
				slog.String("account_id", accountID.String()),
				slog.Any("error", err))

			return next(c)
		}
		if account == nil {
			// The account was deleted after the session was established.
			m.ClearSessionCookie(c)

			return next(c)
		}

		c.Set(keyAccount, account)

		return next(c)
	}
}

// RequireAuth redirects anonymous requests to the login page.
func (m *SessionMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if AccountFrom(c) == nil {
			return c.Redirect(http.StatusFound, "/login")
		}

		return next(c)
	}
}

// Token returns the raw session token from the request cookie, or "" when
// the request carries none.
func (m *SessionMiddleware) Token(c echo.Context) string {
	cookie, err := c.Cookie(m.cookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}

// SetSessionCookie writes the session token as an HttpOnly cookie.
func (m *SessionMiddleware) SetSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.sessions.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func (m *SessionMiddleware) ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// AccountFrom returns the account resolved by LoadAccount, or nil when the
// request is anonymous.
func AccountFrom(c echo.Context) *entity.Account {
	if account, ok := c.Get(keyAccount).(*entity.Account); ok {
		return account
	}

	return nil
}
