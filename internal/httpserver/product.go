package httpserver

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"

	"shopapi/internal/logging"
	"shopapi/internal/service"
	"shopapi/internal/transport"
)

type ProductHandler struct {
	Svc       *service.CatalogService
	UploadDir string
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.Svc.ListAll(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list products")
	}
	return c.JSON(http.StatusOK, transport.OK("products listed", products))
}

func (h *ProductHandler) GetProductByName(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.Svc.FindByName(ctx, c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.JSON(http.StatusOK, transport.Fail("product not found", "PRODUCT_NOT_FOUND"))
		}
		logging.FromContext(ctx).Error("get_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get product")
	}
	return c.JSON(http.StatusOK, transport.OK("product found", product))
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := validateFields([]fieldRule{
		{field: "name", value: req.Name},
		{field: "price", value: req.Price},
	}); err != nil {
		return err
	}

	product, err := h.Svc.Create(ctx, req.Name, req.Price)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPrice):
			return echo.NewHTTPError(http.StatusBadRequest, "price must be zero or greater")
		case errors.Is(err, service.ErrProductExists):
			return echo.NewHTTPError(http.StatusConflict, "product already exists")
		default:
			l.Error("create_product_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot create product")
		}
	}

	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusOK, transport.OK("product created", product))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.Update(ctx, c.Param("name"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			return c.JSON(http.StatusOK, transport.Fail("product not found", "PRODUCT_NOT_FOUND"))
		case errors.Is(err, service.ErrInvalidPrice):
			return echo.NewHTTPError(http.StatusBadRequest, "price must be zero or greater")
		case errors.Is(err, service.ErrProductExists):
			return echo.NewHTTPError(http.StatusConflict, "product already exists")
		default:
			l.Error("update_product_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
		}
	}

	l.Info("update_product_success", "product_id", product.ID)
	return c.JSON(http.StatusOK, transport.OK("product updated", product))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	summary, err := h.Svc.Delete(ctx, c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.JSON(http.StatusOK, transport.Fail("product not found", "PRODUCT_NOT_FOUND"))
		}
		l.Error("delete_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}

	l.Info("delete_product_success", "product_id", summary.ID)
	return c.JSON(http.StatusOK, transport.OK("product deleted", summary))
}

// UploadImage accepts a multipart "file" field, sniffs the content type
// and stores the image under the upload dir as <name>_<ext>. A missing
// file is reported in the envelope without a distinct error code.
func (h *ProductHandler) UploadImage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.upload")
	name := c.Param("name")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusOK, transport.Fail("no file uploaded", ""))
	}

	src, err := fileHeader.Open()
	if err != nil {
		l.Error("upload_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read upload")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		l.Error("upload_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read upload")
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		l.Warn("upload_error", "status", 400, "reason", "not an image", "mime", mtype.String())
		return echo.NewHTTPError(http.StatusBadRequest, "file must be an image")
	}

	fileName := strings.ReplaceAll(strings.TrimSpace(name), " ", "_") + mtype.Extension()
	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		l.Error("upload_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store upload")
	}
	if err := os.WriteFile(filepath.Join(h.UploadDir, fileName), data, 0o644); err != nil {
		l.Error("upload_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store upload")
	}

	publicPath := "/uploads/" + fileName
	product, err := h.Svc.SetImage(ctx, name, publicPath)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.JSON(http.StatusOK, transport.Fail("product not found", "PRODUCT_NOT_FOUND"))
		}
		l.Error("upload_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product image")
	}

	l.Info("upload_success", "product_id", product.ID, "file_path", publicPath)
	return c.JSON(http.StatusOK, transport.OK("file uploaded", echo.Map{
		"filePath": publicPath,
		"product":  product,
	}))
}

func (h *ProductHandler) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	if h.Svc.ES == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	total, products, err := service.SearchProducts(ctx, h.Svc.ES, h.Svc.Index, q, 0, 20)
	if err != nil {
		l.Error("search_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot search products")
	}

	return c.JSON(http.StatusOK, transport.OK("products found", echo.Map{
		"total": total,
		"items": products,
	}))
}
