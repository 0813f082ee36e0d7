package handler

import (
	"net/http"

	"shopapi/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/users 配下の管理者用
type AdminUserHandler struct {
	uc *usecase.UserUsecase
}

func NewAdminUserHandler(uc *usecase.UserUsecase) *AdminUserHandler {
	return &AdminUserHandler{uc: uc}
}

type adminUpdateUserRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin *bool  `json:"isAdmin"`
}

func (h *AdminUserHandler) List(c echo.Context) error {
	out, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) Get(c echo.Context) error {
	userID, err := pathID(c, "User not found")
	if err != nil {
		return err
	}

	out, err := h.uc.GetUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) Update(c echo.Context) error {
	userID, err := pathID(c, "User not found")
	if err != nil {
		return err
	}

	var req adminUpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid json")
	}

	out, err := h.uc.AdminUpdateUser(c.Request().Context(), userID, usecase.AdminUpdateUserInput{
		Name:    req.Name,
		Email:   req.Email,
		IsAdmin: req.IsAdmin,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) Delete(c echo.Context) error {
	userID, err := pathID(c, "User not found")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteUser(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "User deleted"})
}
