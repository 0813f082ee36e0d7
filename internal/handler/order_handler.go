package handler

import (
	"net/http"

	"shopapi/internal/domain/model"
	"shopapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/orders（ログイン中の本人）
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// カートの明細（_idは商品ID、それ以外の値は使わない）
type orderItemRequest struct {
	ID      int64 `json:"_id"`
	Product int64 `json:"product"`
	Qty     int64 `json:"qty"`
}

type createOrderRequest struct {
	OrderItems      []orderItemRequest    `json:"orderItems"`
	ShippingAddress model.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                `json:"paymentMethod"`
}

// 決済ゲートウェイの結果
type payOrderRequest struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	UpdateTime string `json:"update_time"`
	Payer      struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
}

func (h *OrderHandler) Create(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid json")
	}

	items := make([]usecase.OrderItemInput, 0, len(req.OrderItems))
	for _, it := range req.OrderItems {
		productID := it.Product
		if productID == 0 {
			productID = it.ID
		}
		items = append(items, usecase.OrderItemInput{ProductID: productID, Qty: it.Qty})
	}

	out, err := h.uc.CreateOrder(c.Request().Context(), me.ID, usecase.CreateOrderInput{
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) MyOrders(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	out, err := h.uc.MyOrders(c.Request().Context(), me.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) Detail(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c, "Order not found")
	if err != nil {
		return err
	}

	out, err := h.uc.GetOrder(c.Request().Context(), me, orderID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) Pay(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c, "Order not found")
	if err != nil {
		return err
	}

	var req payOrderRequest
	if err := c.Bind(&req); err != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid json")
	}

	out, err := h.uc.PayOrder(c.Request().Context(), me, orderID, usecase.PayOrderInput{
		GatewayID:    req.ID,
		Status:       req.Status,
		UpdateTime:   req.UpdateTime,
		EmailAddress: req.Payer.EmailAddress,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}
