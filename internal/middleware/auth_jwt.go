package middleware

import (
	"net/http"
	"strings"

	auth "shopapi/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

const (
	// 認証トークンを入れるcookie名
	CookieName = "jwt"

	CtxUserIDKey       = "user_id"       // int64
	CtxTokenVersionKey = "token_version" // int
	CtxUserKey         = "user"          // model.User
)

const (
	msgNoToken     = "Not authorized, no token"
	msgTokenFailed = "Not authorized, token failed"
	msgNotAdmin    = "Not authorized as admin"
)

// トークンを検証して本人情報を返す
type TokenParser interface {
	Parse(raw string) (auth.Identity, error)
}

// cookieのJWTを検証してcontextへ入れる
func AuthJWT(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//cookieが無い・空なら未ログイン
			ck, err := c.Cookie(CookieName)
			if err != nil || strings.TrimSpace(ck.Value) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, msgNoToken)
			}

			//署名・期限を検証
			id, err := tokens.Parse(ck.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, msgTokenFailed).SetInternal(err)
			}

			c.Set(CtxUserIDKey, id.UserID)
			c.Set(CtxTokenVersionKey, id.TokenVersion)

			return next(c)
		}
	}
}
