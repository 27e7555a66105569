package handler

import (
	"errors"
	"kingtech-store/internal/apperr"
	"net/http"

	"github.com/labstack/echo/v4"
)

// respondError maps service errors to HTTP responses. Validation failures are
// field maps for inline form errors, everything else is a banner-style message.
func respondError(c echo.Context, err error) error {
	if verr, ok := apperr.IsValidation(err); ok {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{
			"errors": verr.Fields,
		})
	}

	var conflict *apperr.ConflictError
	if errors.As(err, &conflict) {
		return c.JSON(http.StatusConflict, map[string]string{
			"error": conflict.Message,
		})
	}

	var upload *apperr.AssetUploadError
	if errors.As(err, &upload) {
		// provider detail stays in the logs, the caller sees a generic failure
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "file upload failed, please try again",
		})
	}

	if errors.Is(err, apperr.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if errors.Is(err, apperr.ErrForbidden) {
		return echo.NewHTTPError(http.StatusForbidden)
	}

	return err
}
