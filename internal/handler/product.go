package handler

import (
	"errors"
	"io"
	"kingtech-store/internal/apperr"
	"kingtech-store/internal/dto"
	"kingtech-store/internal/service"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	input, err := bindProductForm(c)
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.productService.Create(ctx, input)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.NewProductResponse(product))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	input, err := bindProductForm(c)
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.productService.Update(ctx, c.Param("id"), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewProductResponse(product))
}

func (h *ProductHandler) ToggleAvailability(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ToggleAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	if err := h.productService.ToggleAvailability(ctx, c.Param("id"), req.IsAvailableForPurchase); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]bool{
		"is_available_for_purchase": req.IsAvailableForPurchase,
	})
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.productService.Delete(ctx, c.Param("id")); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.productService.Get(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewProductResponse(product))
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.productService.List(ctx, productQueryFromRequest(c))
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]*dto.ProductResponse, len(products))
	for i, product := range products {
		resp[i] = dto.NewProductResponse(product)
	}

	return c.JSON(http.StatusOK, resp)
}

// bindProductForm lifts the multipart admin form into a ProductInput. A
// non-integer price is a field error, not a bind failure, so the form can show
// it inline.
func bindProductForm(c echo.Context) (*dto.ProductInput, error) {
	file, err := readFormFile(c, "file")
	if err != nil {
		return nil, err
	}
	image, err := readFormFile(c, "image")
	if err != nil {
		return nil, err
	}

	input := &dto.ProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		File:        file,
		Image:       image,
	}

	rawPrice := c.FormValue("priceInCents")
	price, err := strconv.ParseInt(rawPrice, 10, 64)
	if err != nil {
		return nil, &apperr.ValidationError{Fields: map[string]string{
			"priceInCents": "Must be an integer",
		}}
	}
	input.PriceInCents = price

	return input, nil
}

// readFormFile returns (nil, nil) when the field was simply not supplied; any
// other failure is a malformed request, not an optional asset.
func readFormFile(c echo.Context, field string) (*dto.FileUpload, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "malformed form data").SetInternal(err)
	}

	src, err := header.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "malformed form data").SetInternal(err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "malformed form data").SetInternal(err)
	}

	return &dto.FileUpload{
		Name:        header.Filename,
		ContentType: contentType(header),
		Data:        data,
	}, nil
}

func contentType(header *multipart.FileHeader) string {
	return header.Header.Get("Content-Type")
}
