// File: internal/handler/performance/performance.go
package performance

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"talent-tracker/internal/apperror"
	"talent-tracker/internal/database"
	"talent-tracker/internal/dto"
	"talent-tracker/internal/middleware"
	"talent-tracker/internal/model"
	"talent-tracker/internal/service"
	"talent-tracker/internal/store"
	"talent-tracker/internal/upload"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var (
	createPerformance      = store.CreatePerformance
	listPerformancesByUser = store.ListPerformancesByUser
	listPerformances       = store.ListPerformances
)

// VideoStore 由 upload.Store 實作
type VideoStore interface {
	Save(fh *multipart.FileHeader) (string, error)
	Remove(publicPath string) error
}

func videoFile(c echo.Context) (*multipart.FileHeader, error) {
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return nil, nil
	}
	fh, err := c.FormFile("videoFile")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	return fh, err
}

// AddHandler 新增一筆自己的表現紀錄，可附影片檔
// @Summary     Add performance
// @Description JSON 或 multipart/form-data；videoFile 必須是影片
// @Tags        performance
// @Accept      json,mpfd
// @Produce     json
// @Param       body      body     dto.AddPerformanceRequest true  "表現資料"
// @Param       videoFile formData file                      false "影片檔"
// @Success     201 {object} dto.PerformanceSavedResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     401 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /performance/add [post]
func AddHandler(db database.Querier, videos VideoStore, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return apperror.Respond(c, log, apperror.Unauthenticated("Not authenticated"))
		}

		var req dto.AddPerformanceRequest
		if err := c.Bind(&req); err != nil {
			return apperror.Respond(c, log, apperror.Validation("Invalid request body"))
		}
		if err := c.Validate(&req); err != nil {
			return apperror.Respond(c, log, err)
		}
		sport := service.CleanText(req.Sport)
		if sport == "" {
			return apperror.Respond(c, log, apperror.Validation("Sport: This field is required"))
		}

		fh, err := videoFile(c)
		if err != nil {
			return apperror.Respond(c, log, apperror.Validation("Invalid video upload"))
		}
		var saved string
		if fh != nil {
			saved, err = videos.Save(fh)
			switch {
			case errors.Is(err, upload.ErrNotVideo):
				return apperror.Respond(c, log, apperror.Validation("Only video files allowed"))
			case errors.Is(err, upload.ErrTooLarge):
				return apperror.Respond(c, log, apperror.Validation("Video file too large"))
			case err != nil:
				return apperror.Respond(c, log, apperror.Internal(err))
			}
		}

		p, err := createPerformance(c.Request().Context(), db, &model.Performance{
			UserID:    user.ID,
			Sport:     sport,
			Speed:     *req.Speed,
			Stamina:   *req.Stamina,
			Strength:  *req.Strength,
			VideoURL:  req.VideoURL,
			VideoFile: saved,
		})
		if err != nil {
			if saved != "" {
				if rmErr := videos.Remove(saved); rmErr != nil {
					log.Warn("remove orphaned video", zap.String("file", saved), zap.Error(rmErr))
				}
			}
			return apperror.Respond(c, log, apperror.Internal(err))
		}

		return c.JSON(http.StatusCreated, dto.PerformanceSavedResponse{
			Message:     "Performance saved",
			Performance: *p,
		})
	}
}

// MyHandler 回傳自己的紀錄，新到舊
// @Summary     My performances
// @Tags        performance
// @Produce     json
// @Success     200 {array}  model.Performance
// @Failure     401 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /performance/my [get]
func MyHandler(db database.Querier, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return apperror.Respond(c, log, apperror.Unauthenticated("Not authenticated"))
		}
		records, err := listPerformancesByUser(c.Request().Context(), db, user.ID)
		if err != nil {
			return apperror.Respond(c, log, apperror.Internal(err))
		}
		if records == nil {
			records = []model.Performance{}
		}
		return c.JSON(http.StatusOK, records)
	}
}

// AllHandler 回傳所有紀錄（coach、admin）
// @Summary     All performances
// @Tags        performance
// @Produce     json
// @Success     200 {array}  model.Performance
// @Failure     401 {object} dto.HTTPError
// @Failure     403 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Security    ApiKeyAuth
// @Router      /performance/all [get]
func AllHandler(db database.Querier, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		records, err := listPerformances(c.Request().Context(), db)
		if err != nil {
			return apperror.Respond(c, log, apperror.Internal(err))
		}
		if records == nil {
			records = []model.Performance{}
		}
		return c.JSON(http.StatusOK, records)
	}
}
