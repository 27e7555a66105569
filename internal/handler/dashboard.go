package handler

import (
	"kingtech-store/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	statsService service.StatsService
}

func NewDashboardHandler(statsService service.StatsService) *DashboardHandler {
	return &DashboardHandler{
		statsService: statsService,
	}
}

func (h *DashboardHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	stats, err := h.statsService.Dashboard(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, stats)
}
