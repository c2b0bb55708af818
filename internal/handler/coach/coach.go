// File: internal/handler/coach/coach.go
package coach

import (
	"net/http"

	"talent-tracker/internal/apperror"
	"talent-tracker/internal/database"
	"talent-tracker/internal/dto"
	"talent-tracker/internal/model"
	"talent-tracker/internal/service"
	"talent-tracker/internal/store"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	listUsersByRole        = store.ListUsersByRole
	listPerformancesByUser = store.ListPerformancesByUser
)

// PlayersHandler 列出所有 player
// @Summary     List players
// @Tags        coach
// @Produce     json
// @Success     200 {array}  dto.UserResponse
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /coach/players [get]
func PlayersHandler(db database.Querier, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsersByRole(c.Request().Context(), db, model.RolePlayer)
		if err != nil {
			return apperror.Respond(c, log, apperror.Internal(err))
		}
		return c.JSON(http.StatusOK, dto.NewUserResponses(users))
	}
}

// PlayerPerformanceHandler 指定 player 的紀錄，新到舊
// @Summary     Player performance
// @Tags        coach
// @Produce     json
// @Param       id  path     string true "player id"
// @Success     200 {array}  model.Performance
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /coach/player/{id}/performance [get]
func PlayerPerformanceHandler(db database.Querier, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return apperror.Respond(c, log, apperror.Validation("Invalid player id"))
		}
		records, err := listPerformancesByUser(c.Request().Context(), db, id)
		if err != nil {
			return apperror.Respond(c, log, apperror.Internal(err))
		}
		if records == nil {
			records = []model.Performance{}
		}
		return c.JSON(http.StatusOK, records)
	}
}

// CompareHandler 比較兩位 player 的平均指標
// @Summary     Compare players
// @Description 沒有紀錄的 player 平均值皆為 0
// @Tags        coach
// @Produce     json
// @Param       p1  query    string true "player 1 id"
// @Param       p2  query    string true "player 2 id"
// @Success     200 {object} dto.CompareResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /coach/compare [get]
func CompareHandler(db database.Querier, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw1, raw2 := c.QueryParam("p1"), c.QueryParam("p2")
		if raw1 == "" || raw2 == "" {
			return apperror.Respond(c, log, apperror.Validation("p1 and p2 required"))
		}
		p1, err1 := uuid.Parse(raw1)
		p2, err2 := uuid.Parse(raw2)
		if err1 != nil || err2 != nil {
			return apperror.Respond(c, log, apperror.Validation("Invalid player id"))
		}

		var r1, r2 []model.Performance
		g, ctx := errgroup.WithContext(c.Request().Context())
		g.Go(func() error {
			var err error
			r1, err = listPerformancesByUser(ctx, db, p1)
			return err
		})
		g.Go(func() error {
			var err error
			r2, err = listPerformancesByUser(ctx, db, p2)
			return err
		})
		if err := g.Wait(); err != nil {
			return apperror.Respond(c, log, apperror.Internal(err))
		}

		return c.JSON(http.StatusOK, dto.CompareResponse{
			P1: service.Averages(r1),
			P2: service.Averages(r2),
		})
	}
}
