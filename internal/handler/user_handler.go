package handler

import (
	"net/http"

	"shopapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/users/profile（ログイン中の本人）
type UserHandler struct {
	uc           *usecase.UserUsecase
	cookieSecure bool
}

// DI
func NewUserHandler(uc *usecase.UserUsecase, cookieSecure bool) *UserHandler {
	return &UserHandler{uc: uc, cookieSecure: cookieSecure}
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	out, err := h.uc.GetProfile(c.Request().Context(), me.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	me, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid json")
	}

	out, err := h.uc.UpdateProfile(c.Request().Context(), me.ID, usecase.UpdateProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	// パスワード変更時は新しいtoken_versionのcookieに差し替え
	if out.Token != nil {
		setTokenCookie(c, *out.Token, h.cookieSecure)
	}
	return c.JSON(http.StatusOK, out.User)
}
