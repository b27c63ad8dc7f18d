package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"useraccounts/internal/errors"
	"useraccounts/internal/model"
	"useraccounts/internal/service"
)

// UserHandler bundles HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UpdateUserRequest carries the fields to change. Omitted fields stay as they are.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=8,max=15" example:"admin123456"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=30" example:"123456789"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email" example:"admin@gmail.com"`
	Status   *bool   `json:"status,omitempty" example:"true"`
}

func (r UpdateUserRequest) patch() model.UserPatch {
	return model.UserPatch{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		Status:   r.Status,
	}
}

// UsersResponse wraps a list of users.
type UsersResponse struct {
	Message string       `json:"message"`
	Users   []model.User `json:"users"`
}

func userIDParam(c echo.Context) (string, error) {
	id := c.Param("userID")
	if !model.ValidID(id) {
		return "", errors.NewValidationError(fmt.Sprintf("userID has wrong value %s, The length of userID is 24 hexadecimal characters", id))
	}
	return id, nil
}

// ListUsers godoc
// @Summary List users
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UsersResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /user [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(http.StatusOK, UsersResponse{
		Message: "Users obtained successfully",
		Users:   users,
	})
}

// GetUser godoc
// @Summary Get user by id
// @Tags user
// @Produce json
// @Security BearerAuth
// @Param userID path string true "ID of the user to retrieve"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/{userID} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := userIDParam(c)
	if err != nil {
		return err
	}
	user, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UserResponse{
		Message: "User obtained successfully",
		User:    user,
	})
}

// UpdateUser godoc
// @Summary Update user
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "ID of the user to update"
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /user/{userID} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := userIDParam(c)
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return errors.NewValidationError("request body must be a JSON object")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	patch := req.patch()
	if patch.Empty() {
		return errors.NewValidationError("body must contain at least one of username, email, password, status")
	}

	user, err := h.svc.Update(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UserResponse{
		Message: "User updated successfully",
		User:    user,
	})
}

// DeleteUser godoc
// @Summary Deactivate user
// @Description Sets status to false. The record is never removed.
// @Tags user
// @Produce json
// @Security BearerAuth
// @Param userID path string true "ID of the user to deactivate"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/{userID} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := userIDParam(c)
	if err != nil {
		return err
	}
	user, err := h.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UserResponse{
		Message: "User removed successfully",
		User:    user,
	})
}
