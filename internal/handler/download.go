package handler

import (
	"kingtech-store/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type DownloadHandler struct {
	verificationService service.VerificationService
	productService      service.ProductService
}

func NewDownloadHandler(verificationService service.VerificationService, productService service.ProductService) *DownloadHandler {
	return &DownloadHandler{
		verificationService: verificationService,
		productService:      productService,
	}
}

// Redeem sends a buyer with a valid verification straight to the provider URL.
// Expired or unknown tokens look identical to the caller.
func (h *DownloadHandler) Redeem(c echo.Context) error {
	ctx := c.Request().Context()

	downloadURL, err := h.verificationService.Redeem(ctx, c.Param("verificationId"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Redirect(http.StatusFound, downloadURL)
}

// AdminDownload lets an admin fetch a product deliverable without a
// verification token.
func (h *DownloadHandler) AdminDownload(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.productService.Get(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Redirect(http.StatusFound, service.DownloadURL(product))
}
