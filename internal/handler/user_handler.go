package handler

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"profitfy/internal/auth"
	apierrors "profitfy/internal/errors"
	"profitfy/internal/model"
	"profitfy/internal/service"
)

// UserHandler handles registration and profile endpoints.
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRequest represents a user registration request. Validation mirrors
// the signup form: all fields required, password at least 6 characters.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Surname  string `json:"surname" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterResponse represents a successful registration response.
type RegisterResponse struct {
	Status string `json:"status"`
	Data   struct {
		User model.Profile `json:"user"`
	} `json:"data"`
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} apierrors.ErrorResponse
// @Failure 409 {object} apierrors.ErrorResponse
// @Failure 500 {object} apierrors.ErrorResponse
// @Router /user [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Register(c.Request().Context(), req.Name, req.Surname, req.Email, req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			return echo.NewHTTPError(http.StatusConflict, apierrors.ErrorResponse{
				Error: err.Error(),
				Code:  "USER_ALREADY_EXISTS",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, apierrors.ErrorResponse{
			Error: "failed to register user",
			Code:  "REGISTRATION_FAILED",
		})
	}

	resp := RegisterResponse{Status: "success"}
	resp.Data.User = user.Profile()
	return c.JSON(http.StatusCreated, resp)
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Profile
// @Failure 401 {object} apierrors.ErrorResponse
// @Failure 404 {object} apierrors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	user, err := h.users.GetUser(c.Request().Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, apierrors.ErrorResponse{
				Error: "user not found",
				Code:  "NOT_FOUND",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, apierrors.ErrorResponse{
			Error: "database error",
			Code:  "DATABASE_ERROR",
		})
	}

	return c.JSON(http.StatusOK, user.Profile())
}
