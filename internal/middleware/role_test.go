package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"talent-tracker/internal/model"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestRequireRole(t *testing.T) {
	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	gate := RequireRole(model.RoleCoach, model.RoleAdmin)(ok)

	call := func(u *model.User) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/coach/players", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if u != nil {
			c.Set(ContextUserKey, u)
		}
		require.NoError(t, gate(c))
		return rec
	}

	rec := call(nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"message":"Not authenticated"}`, rec.Body.String())

	rec = call(&model.User{ID: uuid.New(), Role: model.RolePlayer})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.JSONEq(t, `{"message":"Access denied"}`, rec.Body.String())

	require.Equal(t, http.StatusOK, call(&model.User{ID: uuid.New(), Role: model.RoleCoach}).Code)
	require.Equal(t, http.StatusOK, call(&model.User{ID: uuid.New(), Role: model.RoleAdmin}).Code)
}

func TestRequireRoleAdminOnly(t *testing.T) {
	e := echo.New()
	gate := RequireRole(model.RoleAdmin)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for role, want := range map[model.Role]int{
		model.RolePlayer: http.StatusForbidden,
		model.RoleCoach:  http.StatusForbidden,
		model.RoleAdmin:  http.StatusOK,
	} {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/admin/users/x", nil), rec)
		c.Set(ContextUserKey, &model.User{Role: role})
		require.NoError(t, gate(c))
		require.Equal(t, want, rec.Code, role)
	}
}
