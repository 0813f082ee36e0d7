package handler

import (
	"net/http"

	"shopapi/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ProductUpdateRequest は管理画面の編集フォームの形
type ProductUpdateRequest struct {
	Name         string           `json:"name"`
	Price        *decimal.Decimal `json:"price"`
	Description  string           `json:"description"`
	Image        string           `json:"image"`
	Brand        string           `json:"brand"`
	Category     string           `json:"category"`
	CountInStock int64            `json:"countInStock"`
}

// /api/products の管理者用
type AdminProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewAdminProductHandler(uc *usecase.ProductUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

// サンプル商品を作って返す
func (h *AdminProductHandler) Create(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	out, err := h.uc.AdminCreateProduct(c.Request().Context(), me.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminProductHandler) Update(c echo.Context) error {
	productID, err := pathID(c, "Product not found")
	if err != nil {
		return err
	}

	var req ProductUpdateRequest
	if err := c.Bind(&req); err != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid json")
	}

	out, err := h.uc.AdminUpdateProduct(c.Request().Context(), productID, usecase.AdminUpdateProductInput{
		Name:         req.Name,
		Price:        decimalOrZero(req.Price),
		Description:  req.Description,
		Image:        req.Image,
		Brand:        req.Brand,
		Category:     req.Category,
		CountInStock: req.CountInStock,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) Delete(c echo.Context) error {
	productID, err := pathID(c, "Product not found")
	if err != nil {
		return err
	}

	if err := h.uc.AdminDeleteProduct(c.Request().Context(), productID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Product deleted"})
}
