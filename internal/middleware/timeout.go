// File: internal/middleware/timeout.go
package middleware

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
)

// StoreTimeout 為請求 context 加上期限，handler 內的資料庫與 Redis 呼叫都會受限
func StoreTimeout(d time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if d <= 0 {
				return next(c)
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), d)
			defer cancel()
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
