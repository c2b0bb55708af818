// File: internal/handler/auth/refresh.go
package auth

import (
	"errors"
	"net/http"

	"talent-tracker/internal/apperror"
	"talent-tracker/internal/database"
	"talent-tracker/internal/dto"
	"talent-tracker/internal/service"
	"talent-tracker/internal/store"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RefreshHandler 以 refresh token 換取新的 access token
// @Summary     Refresh access token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.RefreshRequest true "refresh token"
// @Success     200  {object} dto.TokenResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /auth/refresh [post]
func RefreshHandler(db database.Querier, tokens TokenIssuer, refresh RefreshTokens, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RefreshRequest
		if err := c.Bind(&req); err != nil {
			return apperror.Respond(c, log, apperror.Validation("Invalid request body"))
		}
		if err := c.Validate(&req); err != nil {
			return apperror.Respond(c, log, err)
		}

		ctx := c.Request().Context()
		userID, err := refresh.Resolve(ctx, req.RefreshToken)
		if errors.Is(err, service.ErrInvalidToken) {
			return apperror.Respond(c, log, apperror.Unauthenticated("Invalid refresh token"))
		}
		if err != nil {
			return apperror.Respond(c, log, apperror.Internal(err))
		}

		// 使用者已被刪除時一併撤銷
		if _, err := getUserByID(ctx, db, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				if rErr := refresh.Revoke(ctx, req.RefreshToken); rErr != nil {
					log.Warn("revoke orphaned refresh token", zap.Error(rErr))
				}
				return apperror.Respond(c, log, apperror.Unauthenticated("Invalid refresh token"))
			}
			return apperror.Respond(c, log, apperror.Internal(err))
		}

		token, expiresAt, err := tokens.Issue(userID)
		if err != nil {
			return apperror.Respond(c, log, apperror.Internal(err))
		}
		return c.JSON(http.StatusOK, dto.TokenResponse{Token: token, ExpiresAt: expiryPtr(expiresAt)})
	}
}

// LogoutHandler 撤銷 refresh token；已簽發的 access token 仍有效至過期
// @Summary     Logout
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.RefreshRequest true "refresh token"
// @Success     200  {object} dto.MessageResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /auth/logout [post]
func LogoutHandler(refresh RefreshTokens, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RefreshRequest
		if err := c.Bind(&req); err != nil {
			return apperror.Respond(c, log, apperror.Validation("Invalid request body"))
		}
		if err := c.Validate(&req); err != nil {
			return apperror.Respond(c, log, err)
		}
		if err := refresh.Revoke(c.Request().Context(), req.RefreshToken); err != nil {
			return apperror.Respond(c, log, apperror.Internal(err))
		}
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
	}
}
