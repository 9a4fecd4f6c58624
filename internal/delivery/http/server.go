package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	slogecho "github.com/samber/slog-echo"
	"go.uber.org/fx"

	"github.com/Avaneesh40585/Secrets-App/config"
	"github.com/Avaneesh40585/Secrets-App/internal/delivery"
	"github.com/Avaneesh40585/Secrets-App/internal/delivery/http/render"
	"github.com/Avaneesh40585/Secrets-App/internal/delivery/http/router"
	"github.com/Avaneesh40585/Secrets-App/internal/delivery/http/validator"
	domainerrors "github.com/Avaneesh40585/Secrets-App/internal/domain/errors"
	"github.com/Avaneesh40585/Secrets-App/internal/domain/lifecycle"
)

type HTTPParams struct {
	fx.In
	fx.Lifecycle

	Config       *config.Config
	Logger       *slog.Logger
	RouterParams router.RouterParams
}

type httpServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

func NewServer(params HTTPParams) (delivery.Delivery, error) {
	renderer, err := render.New()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build renderer")
	}

	echoValidator, err := validator.New()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build validator")
	}

	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.Renderer = renderer
	echoServer.Validator = echoValidator
	echoServer.HTTPErrorHandler = newErrorPageHandler(params.Logger)
	echoServer.Use(slogecho.New(params.Logger))
	echoServer.Use(middleware.Recover())

	router := router.NewRouter(params.RouterParams)
	router.RegisterRoutes(echoServer)

	delivery := &httpServer{
		cfg:    params.Config,
		logger: params.Logger,
		server: echoServer,
	}

	params.Append(fx.Hook{
		OnStop: delivery.stop,
	})

	return delivery, nil
}

func (s *httpServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting HTTP server", slog.String("hostPort", hostPort))
	if err := s.server.Start(hostPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "failed to serve http")
	}

	return nil
}

func (s *httpServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}

// errorPage mirrors the "error" template's view model.
type errorPage struct {
	Message string
}

// newErrorPageHandler renders unhandled errors as the HTML error page
// instead of echo's default JSON body.
func newErrorPageHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := "Please try again later."

		var appErr domainerrors.AppError
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			code = appErr.HTTPCode()
			message = appErr.Message()
		case errors.As(err, &httpErr):
			code = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
		}

		if code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				slog.String("path", c.Request().URL.Path),
				slog.Any("error", err))
		}

		if renderErr := c.Render(code, "error", errorPage{Message: message}); renderErr != nil {
			// The renderer itself failed. Fall back to a plain body.
			_ = c.String(code, message)
		}
	}
}
