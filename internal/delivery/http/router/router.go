// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/Avaneesh40585/Secrets-App/internal/delivery/http/middleware"
	"github.com/Avaneesh40585/Secrets-App/internal/delivery/http/router/handler"
)

type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	SecretHandler     *handler.SecretHandler
	RequestID         *middleware.RequestIDMiddleware
	SessionMiddleware *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	secretHandler     *handler.SecretHandler
	requestID         *middleware.RequestIDMiddleware
	sessionMiddleware *middleware.SessionMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		secretHandler:     params.SecretHandler,
		requestID:         params.RequestID,
		sessionMiddleware: params.SessionMiddleware,
	}
}

// RegisterRoutes sets up all the routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestID.Process)
	e.Use(r.sessionMiddleware.LoadAccount)

	// Health check endpoint
	e.GET("/healthz", handler.HealthCheck)

	// Public pages
	e.GET("/", r.authHandler.Home)
	e.GET("/login", r.authHandler.LoginForm)
	e.POST("/login", r.authHandler.Login)
	e.GET("/register", r.authHandler.RegisterForm)
	e.POST("/register", r.authHandler.Register)
	e.GET("/logout", r.authHandler.Logout)

	// Google sign-in flow
	e.GET("/auth/google", r.authHandler.GoogleLogin)
	e.GET("/auth/google/secrets", r.authHandler.GoogleCallback)

	// Pages that require a signed-in account
	authed := e.Group("", r.sessionMiddleware.RequireAuth)
	{
		authed.GET("/secrets", r.secretHandler.Secrets)
		authed.GET("/submit", r.secretHandler.SubmitForm)
		authed.POST("/submit", r.secretHandler.Submit)
	}
}
