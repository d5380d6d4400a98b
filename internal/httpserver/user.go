package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"shopapi/internal/logging"
	"shopapi/internal/service"
	"shopapi/internal/transport"
)

type UserHandler struct {
	Svc *service.UserService
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list")

	users, err := h.Svc.ListAll(ctx)
	if err != nil {
		l.Error("list_users_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list users")
	}
	return c.JSON(http.StatusOK, transport.OK("users listed", users))
}

func (h *UserHandler) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.create")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_user_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := validateFields([]fieldRule{
		{field: "name", value: req.Name},
		{field: "email", value: req.Email, email: true},
		{field: "password", value: req.Password, minLen: 6},
	}); err != nil {
		return err
	}

	user, err := h.Svc.Create(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusConflict, "email already in use")
		}
		l.Error("create_user_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create user")
	}

	l.Info("create_user_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, transport.OK("user created", user))
}

func (h *UserHandler) GetUserByEmail(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.Svc.FindByEmail(ctx, c.Param("email"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusOK, transport.Fail("user not found", "USER_NOT_FOUND"))
		}
		logging.FromContext(ctx).Error("get_user_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get user")
	}
	return c.JSON(http.StatusOK, transport.OK("user found", user))
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update")

	var req transport.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_user_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Email != nil {
		if err := validateFields([]fieldRule{
			{field: "email", value: *req.Email, email: true},
		}); err != nil {
			return err
		}
	}

	user, err := h.Svc.UpdateByEmail(ctx, c.Param("email"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusOK, transport.Fail("user not found", "USER_NOT_FOUND"))
		case errors.Is(err, service.ErrEmailTaken):
			return echo.NewHTTPError(http.StatusConflict, "email already in use")
		default:
			l.Error("update_user_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update user")
		}
	}

	l.Info("update_user_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, transport.OK("user updated", user))
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete")

	summary, err := h.Svc.DeleteByEmail(ctx, c.Param("email"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusOK, transport.Fail("user not found", "USER_NOT_FOUND"))
		}
		l.Error("delete_user_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete user")
	}

	l.Info("delete_user_success", "user_id", summary.ID)
	return c.JSON(http.StatusOK, transport.OK("user deleted", summary))
}
