package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"shopapi/internal/logging"
	"shopapi/internal/service"
	"shopapi/internal/transport"
)

type PurchaseHandler struct {
	Svc *service.PurchaseService
}

func (h *PurchaseHandler) CreatePurchase(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "purchase.create")

	var req transport.CreatePurchaseRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_purchase_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := validateFields([]fieldRule{
		{field: "userEmail", value: req.UserEmail, email: true},
		{field: "productName", value: req.ProductName},
	}); err != nil {
		return err
	}
	if req.Quantity < 1 {
		l.Warn("create_purchase_error", "status", 400, "reason", "invalid quantity")
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be at least 1")
	}

	purchase, err := h.Svc.Create(ctx, req.UserEmail, req.ProductName, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			return echo.NewHTTPError(http.StatusBadRequest, "quantity must be at least 1")
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusOK, transport.Fail("user not found", "USER_NOT_FOUND"))
		case errors.Is(err, service.ErrProductNotFound):
			return c.JSON(http.StatusOK, transport.Fail("product not found", "PRODUCT_NOT_FOUND"))
		case errors.Is(err, service.ErrPriceComputation):
			return echo.NewHTTPError(http.StatusBadRequest, "total price cannot be computed")
		default:
			l.Error("create_purchase_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot create purchase")
		}
	}

	l.Info("create_purchase_success", "purchase_id", purchase.ID, "total_price", purchase.TotalPrice)
	return c.JSON(http.StatusOK, transport.OK("purchase created", purchase))
}

func (h *PurchaseHandler) ListPurchases(c echo.Context) error {
	ctx := c.Request().Context()

	purchases, err := h.Svc.ListAll(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list_purchases_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list purchases")
	}
	return c.JSON(http.StatusOK, transport.OK("purchases listed", purchases))
}

func (h *PurchaseHandler) ListPurchasesByEmail(c echo.Context) error {
	ctx := c.Request().Context()

	purchases, err := h.Svc.ListByUserEmail(ctx, c.Param("email"))
	if err != nil {
		logging.FromContext(ctx).Error("list_purchases_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list purchases")
	}
	return c.JSON(http.StatusOK, transport.OK("user purchases listed", purchases))
}
