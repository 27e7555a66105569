package handler

import (
	"kingtech-store/internal/dto"
	"kingtech-store/internal/repository"
	"kingtech-store/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

// CatalogHandler serves the public storefront queries. Only available
// products are ever returned from here.
type CatalogHandler struct {
	productService service.ProductService
}

func NewCatalogHandler(productService service.ProductService) *CatalogHandler {
	return &CatalogHandler{
		productService: productService,
	}
}

func productQueryFromRequest(c echo.Context) repository.ProductQuery {
	query := repository.ProductQuery{}
	if category := c.QueryParam("category"); category != "" && category != "All" {
		query.Category = category
	}
	return query
}

func (h *CatalogHandler) ListAvailable(c echo.Context) error {
	ctx := c.Request().Context()

	query := productQueryFromRequest(c)
	available := true
	query.Available = &available

	products, err := h.productService.List(ctx, query)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]*dto.ProductResponse, len(products))
	for i, product := range products {
		resp[i] = dto.NewProductResponse(product)
	}

	return c.JSON(http.StatusOK, resp)
}

// Featured returns the home page sections: six most popular plus four newest
// available products.
func (h *CatalogHandler) Featured(c echo.Context) error {
	ctx := c.Request().Context()
	available := true

	popular, err := h.productService.List(ctx, repository.ProductQuery{
		Available: &available,
		OrderBy:   "popular",
		Limit:     6,
	})
	if err != nil {
		return respondError(c, err)
	}

	newest, err := h.productService.List(ctx, repository.ProductQuery{
		Available: &available,
		OrderBy:   "newest",
		Limit:     4,
	})
	if err != nil {
		return respondError(c, err)
	}

	popularResp := make([]*dto.ProductResponse, len(popular))
	for i, product := range popular {
		popularResp[i] = dto.NewProductResponse(product)
	}
	newestResp := make([]*dto.ProductResponse, len(newest))
	for i, product := range newest {
		newestResp[i] = dto.NewProductResponse(product)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"popular": popularResp,
		"newest":  newestResp,
	})
}
