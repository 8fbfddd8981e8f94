package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apierrors "profitfy/internal/errors"
	"profitfy/internal/model"
	"profitfy/internal/service"
)

// SessionHandler handles the login endpoint.
type SessionHandler struct {
	sessions service.SessionService
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessions service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// CreateSessionRequest represents a login request.
type CreateSessionRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionData carries the authenticated user and the signed token.
type SessionData struct {
	User  model.Profile `json:"user"`
	Token string        `json:"token"`
}

// SessionResponse represents a successful login response.
type SessionResponse struct {
	Status string      `json:"status"`
	Data   SessionData `json:"data"`
}

// Create godoc
// @Summary Authenticate and create a session
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest true "Credentials"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} apierrors.ErrorResponse
// @Failure 401 {object} apierrors.ErrorResponse
// @Failure 503 {object} apierrors.ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) Create(c echo.Context) error {
	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.sessions.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, apierrors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_CREDENTIALS",
			})
		}
		if errors.Is(err, service.ErrDependencyUnavailable) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, apierrors.ErrorResponse{
				Error: "service temporarily unavailable",
				Code:  "DEPENDENCY_UNAVAILABLE",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, apierrors.ErrorResponse{
			Error: "failed to create session",
			Code:  "SESSION_FAILED",
		})
	}

	return c.JSON(http.StatusOK, SessionResponse{
		Status: "success",
		Data: SessionData{
			User:  user.Profile(),
			Token: token,
		},
	})
}
