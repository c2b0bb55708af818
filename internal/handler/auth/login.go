// File: internal/handler/auth/login.go
package auth

import (
	"errors"
	"net/http"

	"talent-tracker/internal/apperror"
	"talent-tracker/internal/database"
	"talent-tracker/internal/dto"
	"talent-tracker/internal/store"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// LoginHandler 使用 Email/Password 驗證並回傳 JWT
// @Summary     Login
// @Description 驗證成功回傳 access token、refresh token 與使用者資料（不含密碼）
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.LoginRequest true "登入資料"
// @Success     200  {object} dto.LoginResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError "Invalid password"
// @Failure     404  {object} dto.HTTPError "User not found"
// @Failure     500  {object} dto.HTTPError
// @Router      /auth/login [post]
func LoginHandler(db database.Querier, hasher Hasher, tokens TokenIssuer, refresh RefreshTokens, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.LoginRequest
		if err := c.Bind(&req); err != nil {
			return apperror.Respond(c, log, apperror.Validation("Invalid request body"))
		}
		if err := c.Validate(&req); err != nil {
			return apperror.Respond(c, log, err)
		}

		ctx := c.Request().Context()
		user, err := getUserByEmail(ctx, db, req.Email)
		if errors.Is(err, store.ErrNotFound) {
			return apperror.Respond(c, log, apperror.NotFound("User not found"))
		}
		if err != nil {
			return apperror.Respond(c, log, apperror.Internal(err))
		}

		if !hasher.Verify(req.Password, user.PasswordHash) {
			return apperror.Respond(c, log, apperror.InvalidCredentials("Invalid password"))
		}

		token, expiresAt, err := tokens.Issue(user.ID)
		if err != nil {
			return apperror.Respond(c, log, apperror.Internal(err))
		}
		refreshToken, err := refresh.Issue(ctx, user.ID)
		if err != nil {
			return apperror.Respond(c, log, apperror.Internal(err))
		}

		return c.JSON(http.StatusOK, dto.LoginResponse{
			Message:      "Login successful",
			Token:        token,
			ExpiresAt:    expiryPtr(expiresAt),
			RefreshToken: refreshToken,
			User:         dto.NewUserResponse(user),
		})
	}
}
