package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// handlerがそのままステータスとメッセージに使うエラー
type HTTPError struct {
	Status  int
	Message string
	Cause   error
}

func (e *HTTPError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.Cause)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Cause
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

// 原因を保持したまま返す（開発環境ではstackに出る）
func WrapHTTPError(status int, message string, cause error) error {
	return &HTTPError{
		Status:  status,
		Message: message,
		Cause:   cause,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

//500
func dbError(err error) error {
	return WrapHTTPError(http.StatusInternalServerError, "db error", err)
}

// Tx内で返したHTTPErrorはそのまま、それ以外は500
func passOrDBError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsHTTPError(err); ok {
		return err
	}
	return dbError(err)
}
