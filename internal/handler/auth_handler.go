package handler

import (
	"errors"
	"net/http"

	"shopapi/internal/usecase"
	auth "shopapi/internal/usecase/auth_usecase"
	"shopapi/internal/validator"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	registerUC   *auth.RegisterUserUsecase // 会員登録usecase
	loginUC      *auth.LoginUsecase        // ログインusecase
	cookieSecure bool
}

// DIコンストラクタ
func NewAuthHandler(
	registerUC *auth.RegisterUserUsecase,
	loginUC *auth.LoginUsecase,
	cookieSecure bool,
) *AuthHandler {
	return &AuthHandler{
		registerUC:   registerUC,
		loginUC:      loginUC,
		cookieSecure: cookieSecure,
	}
}

// POST /api/users のリクエストボディ。
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/users/auth のリクエストボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterはPOST /api/usersのハンドラ
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid json")
	}

	out, tok, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if ve, ok := validator.AsValidationError(err); ok {
			return usecase.NewHTTPError(http.StatusBadRequest, ve.Message)
		}
		if errors.Is(err, auth.ErrEmailAlreadyExists) {
			return usecase.NewHTTPError(http.StatusBadRequest, "User already exists")
		}
		return usecase.WrapHTTPError(http.StatusInternalServerError, "Invalid user data", err)
	}

	setTokenCookie(c, tok, h.cookieSecure)
	return c.JSON(http.StatusCreated, out.User)
}

// LoginはPOST /api/users/auth のハンドラ。
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid json")
	}

	out, tok, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if ve, ok := validator.AsValidationError(err); ok {
			return usecase.NewHTTPError(http.StatusBadRequest, ve.Message)
		}
		// メール不明とパスワード違いは同じ応答
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return usecase.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
		}
		return usecase.WrapHTTPError(http.StatusInternalServerError, "login failed", err)
	}

	setTokenCookie(c, tok, h.cookieSecure)
	return c.JSON(http.StatusOK, out.User)
}

// 何度呼んでも成功する
func (h *AuthHandler) Logout(c echo.Context) error {
	clearTokenCookie(c, h.cookieSecure)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}
