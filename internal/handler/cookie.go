package handler

import (
	"net/http"
	"time"

	"shopapi/internal/middleware"
	auth "shopapi/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// JWTをcookieに入れる（JSONには出さない）
func setTokenCookie(c echo.Context, tok auth.IssuedToken, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    tok.Token,
		Path:     "/",
		Expires:  tok.ExpiresAt,
		MaxAge:   int(auth.TokenTTL / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// 空の値を即時失効で上書き
func clearTokenCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
}
