package handler

import (
	"net/http"
	"strconv"

	"shopapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/products の公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

type createReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *ProductHandler) List(c echo.Context) error {
	// pageNumber（数値でなければ1ページ目）
	page, err := strconv.Atoi(c.QueryParam("pageNumber"))
	if err != nil {
		page = 1
	}

	out, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Keyword: c.QueryParam("keyword"),
		Page:    page,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) Top(c echo.Context) error {
	out, err := h.uc.ListTopProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) Detail(c echo.Context) error {
	productID, err := pathID(c, "Product not found")
	if err != nil {
		return err
	}

	out, err := h.uc.GetProductDetail(c.Request().Context(), productID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) CreateReview(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}
	productID, err := pathID(c, "Product not found")
	if err != nil {
		return err
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid json")
	}

	err = h.uc.CreateReview(c.Request().Context(), me, productID, usecase.CreateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, MessageResponse{Message: "Review added"})
}
