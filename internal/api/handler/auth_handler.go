package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workpulse/attendance-api/internal/api/metrics"
	"github.com/workpulse/attendance-api/internal/core/domain"
	"github.com/workpulse/attendance-api/internal/core/ports"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a user and returns a signed access token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		} else {
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: result.Token, IsAdmin: result.IsAdmin})
}
