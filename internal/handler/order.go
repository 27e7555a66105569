package handler

import (
	"kingtech-store/internal/dto"
	"kingtech-store/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) EmailOrderHistory(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.EmailOrderHistoryRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	message, err := h.orderService.EmailOrderHistory(ctx, req.Email)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

// StripeWebhook is kept as a stub: the payment system was removed but the
// provider may still be configured to post here.
func (h *OrderHandler) StripeWebhook(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Stripe webhooks disabled - payment system removed",
	})
}
