package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"useraccounts/internal/handler"
	"useraccounts/internal/logger"
	authmw "useraccounts/internal/middleware"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	log logrus.FieldLogger,
	verifier authmw.TokenVerifier,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
) {
	e.HideBanner = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler(log)

	e.Use(middleware.RequestID())
	e.Use(logger.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// Secured routes (require bearer token)
	users := e.Group("/user", authmw.RequireAuth(verifier))
	users.GET("", userHandler.ListUsers)
	users.GET("/:userID", userHandler.GetUser)
	users.PUT("/:userID", userHandler.UpdateUser)
	users.DELETE("/:userID", userHandler.DeleteUser)
}
