package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"shopapi/internal/usecase"
	"shopapi/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// エラー時のレスポンス（stackは開発環境だけ）
type ErrorResponse struct {
	Message string  `json:"message"`
	Stack   *string `json:"stack"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// すべてのエラーを {message, stack} に揃える
func NewHTTPErrorHandler(isDev bool, log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := classify(err, c)
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("request failed")
			if !isDev && !isKnown(err) {
				message = http.StatusText(http.StatusInternalServerError)
			}
		}

		body := ErrorResponse{Message: message}
		if isDev {
			stack := errorChain(err)
			body.Stack = &stack
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil {
			log.Error().Err(werr).Msg("write error response")
		}
	}
}

func classify(err error, c echo.Context) (int, string) {
	if he, ok := usecase.AsHTTPError(err); ok {
		return he.Status, he.Message
	}

	var ee *echo.HTTPError
	if errors.As(err, &ee) {
		// ルート未定義・メソッド違いは404
		if ee == echo.ErrNotFound || ee == echo.ErrMethodNotAllowed {
			return http.StatusNotFound, "Not Found - " + c.Request().URL.RequestURI()
		}
		return ee.Code, fmt.Sprint(ee.Message)
	}

	if ve, ok := validator.AsValidationError(err); ok {
		return http.StatusBadRequest, ve.Message
	}

	return http.StatusInternalServerError, err.Error()
}

func isKnown(err error) bool {
	if _, ok := usecase.AsHTTPError(err); ok {
		return true
	}
	var ee *echo.HTTPError
	return errors.As(err, &ee)
}

// 原因を順にたどった文字列
func errorChain(err error) string {
	parts := []string{}
	for e := err; e != nil; e = errors.Unwrap(e) {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "\n    caused by: ")
}
