// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"civicreport/internal/delivery/http/middleware"
	"civicreport/internal/delivery/http/router/handler"
	"civicreport/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	IssueHandler        *handler.IssueHandler
	MediaHandler        *handler.MediaHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler         *handler.AuthHandler
	issueHandler        *handler.IssueHandler
	mediaHandler        *handler.MediaHandler
	authMiddleware      *middleware.AuthMiddleware
	requestIDMiddleware *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:         params.AuthHandler,
		issueHandler:        params.IssueHandler,
		mediaHandler:        params.MediaHandler,
		authMiddleware:      params.AuthMiddleware,
		requestIDMiddleware: params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestIDMiddleware.Process)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Stored attachments are public by URL.
	e.GET("/media/:key", r.mediaHandler.Serve)

	api := e.Group("/api/v1")

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/civic", r.authHandler.CivicLogin)
	}

	// Issue routes require an authenticated session; filing a report
	// additionally requires the citizen role.
	issueGroup := api.Group("/issues")
	issueGroup.Use(r.authMiddleware.Authenticate)
	{
		issueGroup.POST("", r.issueHandler.CreateIssue, r.authMiddleware.RequireRole(entity.CitizenRole))
		issueGroup.GET("", r.issueHandler.ListIssues)
		issueGroup.GET("/:id", r.issueHandler.GetIssue)
	}
}
