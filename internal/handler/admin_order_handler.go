package handler

import (
	"net/http"

	"shopapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewAdminOrderHandler(uc *usecase.OrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

func (h *AdminOrderHandler) List(c echo.Context) error {
	out, err := h.uc.ListOrders(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// TODO: 配送済みへの更新は業務ルール（誰がいつ付けるか）が決まってから実装する
func (h *AdminOrderHandler) Deliver(c echo.Context) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: "update order to delivered"})
}
