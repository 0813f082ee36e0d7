package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

//contextに入っているユーザーが管理者かどうかを確認します。

func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, msgNoToken)
			}

			//一般ユーザーは拒否、管理者だけ許可
			if !user.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, msgNotAdmin)
			}

			return next(c)
		}
	}
}
