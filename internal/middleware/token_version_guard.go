package middleware

import (
	"net/http"

	"shopapi/internal/domain/model"
	"shopapi/internal/repository"

	"github.com/labstack/echo/v4"
)

// JWTのtvとDBのtoken_versionの一致するか確認。
// 一致したらユーザー本体をcontextに入れる
func TokenVersionGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//AuthJWTが入れたuser_id を取得する
			userID, ok := c.Get(CtxUserIDKey).(int64)
			if !ok || userID <= 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, msgTokenFailed)
			}

			//AuthJWTが入れたtoken_version(tv)を取得する
			tv, ok := c.Get(CtxTokenVersionKey).(int)
			if !ok || tv < 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, msgTokenFailed)
			}

			//DBから最新のuserを取得する（削除済みも401）
			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil || user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, msgTokenFailed)
			}

			//token_version が一致しなければ強制ログアウト扱い（401）
			if user.TokenVersion != tv {
				return echo.NewHTTPError(http.StatusUnauthorized, msgTokenFailed)
			}

			c.Set(CtxUserKey, *user)
			return next(c)
		}
	}
}

// TokenVersionGuardが入れたユーザーを取り出す
func CurrentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(CtxUserKey).(model.User)
	if !ok || u.ID <= 0 {
		return model.User{}, false
	}
	return u, true
}
