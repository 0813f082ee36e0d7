package handler

import (
	"net/http"
	"strconv"

	"shopapi/internal/domain/model"
	"shopapi/internal/middleware"
	"shopapi/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// パスの:idを取り出す（数値でなければ存在しない扱い）
func pathID(c echo.Context, notFound string) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, usecase.NewHTTPError(http.StatusNotFound, notFound)
	}
	return id, nil
}

// guardを通っていれば必ずいる
func currentUser(c echo.Context) (model.User, error) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return model.User{}, usecase.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
	}
	return u, nil
}

// 価格は数値でも文字列でも受ける
func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
