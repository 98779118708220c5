package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rewardsystem/rewards-api/internal/api/metrics"
	"github.com/rewardsystem/rewards-api/internal/core/domain"
	"github.com/rewardsystem/rewards-api/internal/core/ports"
)

// AuthHandler exposes login, registration, and token validation.
type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login authenticates a username/password pair and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, toAuthResponse(res))
}

// Register creates a new account and returns a bearer token for it.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            req.Role,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registerOutcome(err)).Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, toAuthResponse(res))
}

// Validate checks a raw token and reports the result. Invalid tokens yield a
// 200 with valid=false rather than an error status.
//
// @Summary      Validate a token
// @Tags         auth
// @Produce      json
// @Param        token  query     string  true  "Token to validate"
// @Success      200    {object}  validationResponse
// @Failure      400    {object}  errorResponse
// @Router       /auth/validate [get]
func (h *AuthHandler) Validate(c echo.Context) error {
	tok := strings.TrimSpace(c.QueryParam("token"))
	if tok == "" {
		return domain.Validation("Token is required")
	}

	valid, reason := h.auth.ValidateToken(tok)
	metrics.TokenValidationsTotal.WithLabelValues(reason).Inc()

	if !valid {
		msg := "Token is invalid"
		if reason == "expired" {
			msg = "Token is expired"
		}
		return c.JSON(http.StatusOK, validationResponse{Valid: false, Message: msg})
	}

	username, err := h.auth.UsernameFromToken(tok)
	if err != nil {
		// the token just validated; a subject failure here is a race with expiry
		return c.JSON(http.StatusOK, validationResponse{Valid: false, Message: "Token is expired"})
	}
	return c.JSON(http.StatusOK, validationResponse{Valid: true, Message: "Token is valid", Username: username})
}

func toAuthResponse(res *ports.AuthResult) authResponse {
	return authResponse{
		Token:     res.Token,
		Username:  res.Username,
		Role:      string(res.Role),
		ExpiresIn: res.ExpiresIn,
		Message:   res.Message,
	}
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	default:
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return "invalid_credentials"
		}
		return "error"
	}
}

func registerOutcome(err error) string {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return "validation"
	case errors.Is(err, domain.ErrUserExists), errors.Is(err, domain.ErrEmailExists):
		return "conflict"
	default:
		return "error"
	}
}
