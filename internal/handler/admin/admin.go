// File: internal/handler/admin/admin.go
package admin

import (
	"errors"
	"net/http"

	"talent-tracker/internal/apperror"
	"talent-tracker/internal/database"
	"talent-tracker/internal/dto"
	"talent-tracker/internal/model"
	"talent-tracker/internal/store"
	"talent-tracker/internal/worker"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var (
	listUsers         = store.ListUsers
	updateUserRole    = store.UpdateUserRole
	deleteUserCascade = store.DeleteUserCascade
	deletePerformance = store.DeletePerformance
)

// VideoRemover 由 upload.Store 實作
type VideoRemover interface {
	Remove(publicPath string) error
}

// removeVideos 交給 worker pool 非同步刪檔，失敗只記 log
func removeVideos(pool worker.Pool, videos VideoRemover, log *zap.Logger, files []string) {
	for _, f := range files {
		if f == "" {
			continue
		}
		f := f
		ok := pool.Submit(func() {
			if err := videos.Remove(f); err != nil {
				log.Warn("remove video file", zap.String("file", f), zap.Error(err))
			}
		})
		if !ok {
			log.Warn("worker pool stopped, video file left behind", zap.String("file", f))
		}
	}
}

// ListUsersHandler 列出所有使用者
// @Summary     List users
// @Tags        admin
// @Produce     json
// @Success     200 {array}  dto.UserResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /admin/users [get]
func ListUsersHandler(db database.Querier, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return apperror.Respond(c, log, apperror.Internal(err))
		}
		return c.JSON(http.StatusOK, dto.NewUserResponses(users))
	}
}

// UpdateRoleHandler 變更使用者角色
// @Summary     Update user role
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       id   path     string                  true "user id"
// @Param       body body     dto.UpdateRoleRequest   true "新角色"
// @Success     200  {object} dto.UserResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     401  {object} dto.HTTPError
// @Failure     403  {object} dto.HTTPError
// @Failure     404  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /admin/users/{id}/role [patch]
func UpdateRoleHandler(db database.Querier, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return apperror.Respond(c, log, apperror.Validation("Invalid user id"))
		}
		var req dto.UpdateRoleRequest
		if err := c.Bind(&req); err != nil {
			return apperror.Respond(c, log, apperror.Validation("Invalid request body"))
		}
		role := model.Role(req.Role)
		if err := c.Validate(&req); err != nil || !role.Valid() {
			return apperror.Respond(c, log, apperror.Validation("Invalid role"))
		}

		user, err := updateUserRole(c.Request().Context(), db, id, role)
		if errors.Is(err, store.ErrNotFound) {
			return apperror.Respond(c, log, apperror.NotFound("User not found"))
		}
		if err != nil {
			return apperror.Respond(c, log, apperror.Internal(err))
		}

		log.Info("user role updated", zap.String("user_id", id.String()), zap.String("role", string(role)))
		return c.JSON(http.StatusOK, dto.NewUserResponse(user))
	}
}

// DeleteUserHandler 刪除使用者與其所有表現紀錄
// @Summary     Delete user
// @Tags        admin
// @Produce     json
// @Param       id  path     string true "user id"
// @Success     200 {object} dto.MessageResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /admin/users/{id} [delete]
func DeleteUserHandler(db database.DB, videos VideoRemover, pool worker.Pool, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return apperror.Respond(c, log, apperror.Validation("Invalid user id"))
		}

		files, err := deleteUserCascade(c.Request().Context(), db, id)
		if errors.Is(err, store.ErrNotFound) {
			return apperror.Respond(c, log, apperror.NotFound("User not found"))
		}
		if err != nil {
			return apperror.Respond(c, log, apperror.Internal(err))
		}

		removeVideos(pool, videos, log, files)
		log.Info("user deleted", zap.String("user_id", id.String()), zap.Int("videos", len(files)))
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: "User & performances deleted"})
	}
}

// DeletePerformanceHandler 刪除單筆表現紀錄
// @Summary     Delete performance
// @Tags        admin
// @Produce     json
// @Param       id  path     string true "performance id"
// @Success     200 {object} dto.MessageResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     404 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /admin/performance/{id} [delete]
func DeletePerformanceHandler(db database.Querier, videos VideoRemover, pool worker.Pool, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return apperror.Respond(c, log, apperror.Validation("Invalid performance id"))
		}

		p, err := deletePerformance(c.Request().Context(), db, id)
		if errors.Is(err, store.ErrNotFound) {
			return apperror.Respond(c, log, apperror.NotFound("Performance not found"))
		}
		if err != nil {
			return apperror.Respond(c, log, apperror.Internal(err))
		}

		removeVideos(pool, videos, log, []string{p.VideoFile})
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Performance deleted"})
	}
}
