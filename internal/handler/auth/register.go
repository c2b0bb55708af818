// File: internal/handler/auth/register.go
package auth

import (
	"errors"
	"net/http"

	"talent-tracker/internal/apperror"
	"talent-tracker/internal/database"
	"talent-tracker/internal/dto"
	"talent-tracker/internal/model"
	"talent-tracker/internal/service"
	"talent-tracker/internal/store"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RegisterHandler 註冊新帳號，不簽發 token
// @Summary     Register
// @Description 建立帳號；email 已存在時回傳 400，role 省略時為 player
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     dto.RegisterRequest true "註冊資料"
// @Success     201  {object} dto.MessageResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /auth/register [post]
func RegisterHandler(db database.Querier, hasher Hasher, log *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.RegisterRequest
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
		role := model.RolePlayer
		if req.Role != "" {
			role = model.Role(req.Role)
		}

		ctx := c.Request().Context()
		_, err := getUserByEmail(ctx, db, req.Email)
		switch {
		case err == nil:
			return apperror.Respond(c, log, apperror.Conflict("User already exists"))
		case !errors.Is(err, store.ErrNotFound):
			return apperror.Respond(c, log, apperror.Internal(err))
		}

		hash, err := hasher.Hash(req.Password)
		if err != nil {
			return apperror.Respond(c, log, err)
		}

		// 並發註冊同一 email 時由 unique 約束擋下
		user, err := createUser(ctx, db, &model.User{
			Name:         name,
			Email:        req.Email,
			PasswordHash: hash,
			Role:         role,
		})
		if errors.Is(err, store.ErrDuplicate) {
			return apperror.Respond(c, log, apperror.Conflict("User already exists"))
		}
		if err != nil {
			return apperror.Respond(c, log, apperror.Internal(err))
		}

		log.Info("user registered", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))
		return c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Registration successful"})
	}
}
