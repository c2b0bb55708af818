// File: internal/handler/health.go
package handler

import (
	"net/http"

	"talent-tracker/internal/cache"
	"talent-tracker/internal/database"
	"talent-tracker/internal/dto"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HealthHandler 健康檢查
// @Summary     Health Check
// @Description 檢查 PostgreSQL 與 Redis 連線，正常時回傳 pong
// @Tags        health
// @Produce     json
// @Success     200 {object} dto.MessageResponse
// @Failure     500 {object} dto.HTTPError
// @Router      /health [get]
func HealthHandler(db database.DB, cch cache.Cache, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			log.Error("database ping failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "database unhealthy"})
		}
		if err := cch.Ping(ctx).Err(); err != nil {
			log.Error("redis ping failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Message: "cache unhealthy"})
		}
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: "pong"})
	}
}
