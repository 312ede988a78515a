// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"survey/internal/delivery/http/router/handler"
)

// RouterParams holds all the handlers that need to be registered,
// injected by Fx.
type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	GenerateHandler *handler.GenerateHandler
}

type router struct {
	authHandler     *handler.AuthHandler
	generateHandler *handler.GenerateHandler
}

// NewRouter is the constructor for the router.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		generateHandler: params.GenerateHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	e.POST("/generate", r.generateHandler.Generate)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/me", r.authHandler.Me)
	}
}
