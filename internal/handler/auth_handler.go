package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"useraccounts/internal/errors"
	"useraccounts/internal/model"
	"useraccounts/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=8,max=15" example:"admin123456"`
	Password string `json:"password" validate:"required,min=8,max=30" example:"123456789"`
	Email    string `json:"email" validate:"required,email" example:"admin@gmail.com"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"admin@gmail.com"`
	Password string `json:"password" validate:"required,min=8,max=30" example:"123456789"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Message     string      `json:"message"`
	User        *model.User `json:"user"`
	AccessToken string      `json:"access_token"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse "Username or email already used as a username or email"
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return errors.NewValidationError("request body must be a JSON object")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, UserResponse{
		Message: "User created successfully",
		User:    user,
	})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse "Account blocked or deleted; reported only after the password matched. Other login failures are 400"
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return errors.NewValidationError("request body must be a JSON object")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	user, accessToken, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Message:     "User logged in successfully",
		User:        user,
		AccessToken: accessToken,
	})
}
