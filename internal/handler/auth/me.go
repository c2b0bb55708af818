// File: internal/handler/auth/me.go
package auth

import (
	"net/http"

	"talent-tracker/internal/apperror"
	"talent-tracker/internal/dto"
	"talent-tracker/internal/middleware"

	"github.com/labstack/echo/v4"
)

// MeHandler 回傳目前登入的使用者
// @Summary     Current user
// @Tags        auth
// @Produce     json
// @Success     200 {object} dto.UserResponse
// @Failure     401 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /auth/me [get]
func MeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		u, ok := middleware.CurrentUser(c)
		if !ok {
			return apperror.Respond(c, nil, apperror.Unauthenticated("Not authenticated"))
		}
		return c.JSON(http.StatusOK, dto.NewUserResponse(u))
	}
}
