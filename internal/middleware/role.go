// File: internal/middleware/role.go
package middleware

import (
	"talent-tracker/internal/apperror"
	"talent-tracker/internal/model"

	"github.com/labstack/echo/v4"
)

// RequireRole 必須放在 RequireAuth 之後；角色不符一律 403，不透露資源是否存在
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, ok := CurrentUser(c)
			if !ok {
				return apperror.Respond(c, nil, apperror.Unauthenticated("Not authenticated"))
			}
			if _, ok := allowed[u.Role]; !ok {
				return apperror.Respond(c, nil, apperror.Forbidden("Access denied"))
			}
			return next(c)
		}
	}
}
