package httpserver

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"shopapi/internal/logging"
	"shopapi/internal/service"
	"shopapi/internal/tokens"
	"shopapi/internal/transport"
)

type AuthHandler struct {
	Svc *service.AuthService
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := validateFields([]fieldRule{
		{field: "name", value: req.Name},
		{field: "email", value: req.Email, email: true},
		{field: "password", value: req.Password, minLen: 6},
	}); err != nil {
		return err
	}

	summary, err := h.Svc.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusConflict, "email already in use")
		}
		if errors.Is(err, service.ErrUserCreateFailed) {
			return c.JSON(http.StatusOK, transport.Fail("user could not be created", "USER_CREATE_FAILED"))
		}
		l.Error("register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot register user")
	}

	l.Info("register_success", "user_id", summary.ID)
	return c.JSON(http.StatusOK, transport.OK("user created", summary))
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := validateFields([]fieldRule{
		{field: "email", value: req.Email},
		{field: "password", value: req.Password},
	}); err != nil {
		return err
	}

	accessToken, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 401)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		}
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot login")
	}

	l.Info("login_success")
	return c.JSON(http.StatusOK, transport.OK("login successful", echo.Map{
		"access_token": accessToken,
	}))
}

func (h *AuthHandler) Profile(c echo.Context) error {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	claims, ok := token.Claims.(*tokens.AccessClaims)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	return c.JSON(http.StatusOK, transport.OK("profile", echo.Map{
		"id":         claims.Subject,
		"email":      claims.Email,
		"expires_at": claims.ExpiresAt,
	}))
}
