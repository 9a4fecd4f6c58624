package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Avaneesh40585/Secrets-App/config"
	"github.com/Avaneesh40585/Secrets-App/internal/delivery/http/middleware"
	"github.com/Avaneesh40585/Secrets-App/internal/delivery/http/render"
	"github.com/Avaneesh40585/Secrets-App/internal/delivery/http/router"
	"github.com/Avaneesh40585/Secrets-App/internal/delivery/http/router/handler"
	httpvalidator "github.com/Avaneesh40585/Secrets-App/internal/delivery/http/validator"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/entity"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/repository"
	"github.com/Avaneesh40585/Secrets-App/internal/infra/auth"
	"github.com/Avaneesh40585/Secrets-App/internal/usecase/impl"
)

// memoryAccountRepo is an in-memory repository.AccountRepository for driving
// the full HTTP stack without a database.
type memoryAccountRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*entity.Account
}

func newMemoryAccountRepo() *memoryAccountRepo {
	return &memoryAccountRepo{accounts: make(map[uuid.UUID]*entity.Account)}
}

func (r *memoryAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	copied := *account

	return &copied, nil
}

func (r *memoryAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.Email == email {
			copied := *account

			return &copied, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *memoryAccountRepo) Create(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

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

func (r *memoryAccountRepo) UpdateSecret(_ context.Context, id uuid.UUID, secret string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return repository.ErrAccountNotFound
	}

	account.Secret = secret

	return nil
}

func (r *memoryAccountRepo) ListRandomSecrets(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var secrets []string
	for _, account := range r.accounts {
		if account.HasSecret() {
			secrets = append(secrets, account.Secret)
		}
	}

	return secrets, nil
}

// memorySessionRepo is an in-memory repository.SessionRepository so logout
// revocation works without a database.
type memorySessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (r *memorySessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.TokenID] = session

	return nil
}

func (r *memorySessionRepo) FindByTokenID(_ context.Context, tokenID uuid.UUID) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[tokenID]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}

	return session, nil
}

func (r *memorySessionRepo) Delete(_ context.Context, tokenID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[tokenID]; !ok {
		return repository.ErrSessionNotFound
	}

	delete(r.sessions, tokenID)

	return nil
}

func (r *memorySessionRepo) DeleteExpired(_ context.Context) error {
	return nil
}

// newTestApp wires the real middleware, handlers, and router over the
// in-memory repositories.
func newTestApp(t *testing.T) (*echo.Echo, *memoryAccountRepo) {
	t.Helper()

	cfg := &config.Config{
		Session: config.SessionConfig{
			Secret:     "integration-test-secret",
			CookieName: "secrets_session",
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := newMemoryAccountRepo()

	sessions, err := auth.NewSessionAuthority(cfg, newMemorySessionRepo())
	require.NoError(t, err)

	authUC := impl.NewAuthService(impl.AuthServiceParams{
		AccountRepo: repo,
		Hasher:      auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		Logger:      logger,
	})
	secretUC := impl.NewSecretService(impl.SecretServiceParams{
		AccountRepo: repo,
		Logger:      logger,
	})

	sessionMW := middleware.NewSessionMiddleware(cfg, sessions, authUC, logger)
	authHandler := handler.NewAuthHandler(handler.AuthHandlerParams{
		Auth:     authUC,
		Sessions: sessions,
		Session:  sessionMW,
		Logger:   logger,
	})
	secretHandler := handler.NewSecretHandler(secretUC, logger)

	renderer, err := render.New()
	require.NoError(t, err)
	echoValidator, err := httpvalidator.New()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	e.Validator = echoValidator

	router.NewRouter(router.RouterParams{
		AuthHandler:       authHandler,
		SecretHandler:     secretHandler,
		RequestID:         middleware.NewRequestIDMiddleware(logger),
		SessionMiddleware: sessionMW,
	}).RegisterRoutes(e)

	return e, repo
}

// doForm submits a URL-encoded form, carrying any given cookies.
func doForm(e *echo.Echo, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

// doGet performs a GET request, carrying any given cookies.
func doGet(e *echo.Echo, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

// sessionCookie extracts the session cookie from a response.
func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "secrets_session" {
			return cookie
		}
	}

	t.Fatal("no session cookie in response")

	return nil
}

// registerAccount drives a registration through the HTTP stack and returns
// the session cookie it established.
func registerAccount(t *testing.T, e *echo.Echo, email, password string) *http.Cookie {
	t.Helper()

	rec := doForm(e, "/register", url.Values{
		"username": {email},
		"password": {password},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/secrets", rec.Header().Get(echo.HeaderLocation))

	return sessionCookie(t, rec)
}
