// File: internal/middleware/auth.go
package middleware

import (
	"errors"
	"strings"

	"talent-tracker/internal/apperror"
	"talent-tracker/internal/database"
	"talent-tracker/internal/model"
	"talent-tracker/internal/service"
	"talent-tracker/internal/store"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const ContextUserKey = "user"

var getUserByID = store.GetUserByID

// TokenVerifier 由 service.TokenService 實作
type TokenVerifier interface {
	Verify(token string) (*service.Claims, error)
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", apperror.Unauthenticated("No token provided")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperror.Unauthenticated("Invalid authorization header format")
	}
	return strings.TrimSpace(parts[1]), nil
}

// RequireAuth 驗證 Bearer token，並在每次請求重新從資料庫讀取使用者，
// 讓角色變更與刪除立即生效。失敗時不會呼叫後續 handler
func RequireAuth(db database.Querier, tokens TokenVerifier, log *zap.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return apperror.Respond(c, log, err)
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				log.Debug("token rejected", zap.Error(err))
				return apperror.Respond(c, log, apperror.Unauthenticated("Invalid token"))
			}
			userID, err := claims.UserUUID()
			if err != nil {
				return apperror.Respond(c, log, apperror.Unauthenticated("Invalid token"))
			}

			user, err := getUserByID(c.Request().Context(), db, userID)
			if errors.Is(err, store.ErrNotFound) {
				return apperror.Respond(c, log, apperror.Unauthenticated("User no longer exists"))
			}
			if err != nil {
				return apperror.Respond(c, log, apperror.Internal(err))
			}

			user.PasswordHash = ""
			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// CurrentUser 取得 RequireAuth 放入的使用者
func CurrentUser(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(ContextUserKey).(*model.User)
	return u, ok && u != nil
}
