// File: internal/handler/auth/profile.go
package auth

import (
	"errors"
	"net/http"

	"talent-tracker/internal/apperror"
	"talent-tracker/internal/database"
	"talent-tracker/internal/dto"
	"talent-tracker/internal/middleware"
	"talent-tracker/internal/service"
	"talent-tracker/internal/store"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UpdateMeHandler 更新當前使用者的顯示名稱
// @Summary     Update current user
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.UpdateMeRequest true "新名稱"
// @Success     200  {object} dto.UserResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /auth/me [put]
func UpdateMeHandler(db database.Querier, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		me, ok := middleware.CurrentUser(c)
		if !ok {
			return apperror.Respond(c, log, apperror.Unauthenticated("Not authenticated"))
		}

		var req dto.UpdateMeRequest
		if err := c.Bind(&req); err != nil {
			return apperror.Respond(c, log, apperror.Validation("Invalid request body"))
		}
		if err := c.Validate(&req); err != nil {
			return apperror.Respond(c, log, err)
		}
		name := service.CleanText(req.Name)
		if name == "" {
			return apperror.Respond(c, log, apperror.Validation("Name: This field is required"))
		}

		user, err := updateUserName(c.Request().Context(), db, me.ID, name)
		if errors.Is(err, store.ErrNotFound) {
			return apperror.Respond(c, log, apperror.Unauthenticated("User no longer exists"))
		}
		if err != nil {
			return apperror.Respond(c, log, apperror.Internal(err))
		}
		return c.JSON(http.StatusOK, dto.NewUserResponse(user))
	}
}

// UpdatePasswordHandler 驗證目前密碼後更新為新密碼
// @Summary     Update own password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body dto.UpdatePasswordRequest true "目前密碼與新密碼"
// @Success     204  "No Content"
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /auth/me/password [patch]
func UpdatePasswordHandler(db database.Querier, hasher Hasher, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		me, ok := middleware.CurrentUser(c)
		if !ok {
			return apperror.Respond(c, log, apperror.Unauthenticated("Not authenticated"))
		}

		var req dto.UpdatePasswordRequest
		if err := c.Bind(&req); err != nil {
			return apperror.Respond(c, log, apperror.Validation("Invalid request body"))
		}
		if err := c.Validate(&req); err != nil {
			return apperror.Respond(c, log, err)
		}

		// Auth Gate 已移除雜湊，需重新讀取
		ctx := c.Request().Context()
		user, err := getUserByID(ctx, db, me.ID)
		if errors.Is(err, store.ErrNotFound) {
			return apperror.Respond(c, log, apperror.Unauthenticated("User no longer exists"))
		}
		if err != nil {
			return apperror.Respond(c, log, apperror.Internal(err))
		}
		if !hasher.Verify(req.CurrentPassword, user.PasswordHash) {
			return apperror.Respond(c, log, apperror.InvalidCredentials("Invalid password"))
		}

		hash, err := hasher.Hash(req.NewPassword)
		if err != nil {
			return apperror.Respond(c, log, err)
		}
		if err := updateUserPassword(ctx, db, user.ID, hash); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apperror.Respond(c, log, apperror.Unauthenticated("User no longer exists"))
			}
			return apperror.Respond(c, log, apperror.Internal(err))
		}

		log.Info("password changed", zap.String("user_id", user.ID.String()))
		return c.NoContent(http.StatusNoContent)
	}
}
