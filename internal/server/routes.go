package server

import (
	"net/http"

	"shopapi/internal/handler"

	"github.com/labstack/echo/v4"
)

// 1ルート = メソッド・パス・guard・ハンドラ
type route struct {
	method  string
	path    string
	guards  []echo.MiddlewareFunc
	handler echo.HandlerFunc
}

type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	AdminUser    *handler.AdminUserHandler
	Product      *handler.ProductHandler
	AdminProduct *handler.AdminProductHandler
	Order        *handler.OrderHandler
	AdminOrder   *handler.AdminOrderHandler
}

// ルートごとに組み立てる（スライスは毎回新しく作る）
type guardSet struct {
	authJWT      echo.MiddlewareFunc
	tokenVersion echo.MiddlewareFunc
	adminRole    echo.MiddlewareFunc
	loginLimit   echo.MiddlewareFunc
}

func (g guardSet) public() []echo.MiddlewareFunc {
	return nil
}

func (g guardSet) protect() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{g.authJWT, g.tokenVersion}
}

func (g guardSet) admin() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{g.authJWT, g.tokenVersion, g.adminRole}
}

func (g guardSet) login() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{g.loginLimit}
}

func routeTable(h Handlers, g guardSet) []route {
	return []route{
		// users
		{http.MethodPost, "/api/users", g.public(), h.Auth.Register},
		{http.MethodPost, "/api/users/auth", g.login(), h.Auth.Login},
		{http.MethodPost, "/api/users/login", g.login(), h.Auth.Login},
		{http.MethodPost, "/api/users/logout", g.public(), h.Auth.Logout},
		{http.MethodGet, "/api/users/profile", g.protect(), h.User.GetProfile},
		{http.MethodPut, "/api/users/profile", g.protect(), h.User.UpdateProfile},
		{http.MethodGet, "/api/users", g.admin(), h.AdminUser.List},
		{http.MethodGet, "/api/users/:id", g.admin(), h.AdminUser.Get},
		{http.MethodPut, "/api/users/:id", g.admin(), h.AdminUser.Update},
		{http.MethodDelete, "/api/users/:id", g.admin(), h.AdminUser.Delete},

		// products
		{http.MethodGet, "/api/products", g.public(), h.Product.List},
		{http.MethodGet, "/api/products/top", g.public(), h.Product.Top},
		{http.MethodGet, "/api/products/:id", g.public(), h.Product.Detail},
		{http.MethodPost, "/api/products", g.admin(), h.AdminProduct.Create},
		{http.MethodPut, "/api/products/:id", g.admin(), h.AdminProduct.Update},
		{http.MethodDelete, "/api/products/:id", g.admin(), h.AdminProduct.Delete},
		{http.MethodPost, "/api/products/:id/reviews", g.protect(), h.Product.CreateReview},

		// orders
		{http.MethodPost, "/api/orders", g.protect(), h.Order.Create},
		{http.MethodGet, "/api/orders/myorders", g.protect(), h.Order.MyOrders},
		{http.MethodGet, "/api/orders/:id", g.protect(), h.Order.Detail},
		{http.MethodPut, "/api/orders/:id/pay", g.protect(), h.Order.Pay},
		{http.MethodPut, "/api/orders/:id/deliver", g.admin(), h.AdminOrder.Deliver},
		{http.MethodGet, "/api/orders", g.admin(), h.AdminOrder.List},
	}
}

func registerRoutes(e *echo.Echo, routes []route) {
	// 死活確認
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "API is running...")
	})

	for _, r := range routes {
		e.Add(r.method, r.path, r.handler, r.guards...)
	}
}
