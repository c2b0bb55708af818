package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"talent-tracker/internal/middleware"
	"talent-tracker/internal/model"
	"talent-tracker/internal/validation"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func callAs(t *testing.T, h echo.HandlerFunc, user *model.User, method, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Validator = validation.New()
	req := httptest.NewRequest(method, "/auth/me", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.ContextUserKey, user)
	}
	require.NoError(t, h(c))
	return rec
}

func TestUpdateMeHandler(t *testing.T) {
	users := installUsers(t)
	f := newFixture(t)
	require.Equal(t, http.StatusCreated, f.post("/auth/register", `{"name":"A","email":"a@x.io","password":"p1"}`).Code)
	me := users.byEmail["a@x.io"]
	h := UpdateMeHandler(nil, zap.NewNop())

	rec := callAs(t, h, me, http.MethodPut, `{"name":" <em>Alicia</em> "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"name":"Alicia"`)
	require.Equal(t, "Alicia", users.byEmail["a@x.io"].Name)
	require.Equal(t, model.RolePlayer, users.byEmail["a@x.io"].Role)

	rec = callAs(t, h, me, http.MethodPut, `{"name":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = callAs(t, h, nil, http.MethodPut, `{"name":"X"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	ghost := &model.User{ID: uuid.New()}
	rec = callAs(t, h, ghost, http.MethodPut, `{"name":"X"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdatePasswordHandler(t *testing.T) {
	users := installUsers(t)
	f := newFixture(t)
	require.Equal(t, http.StatusCreated, f.post("/auth/register", `{"name":"A","email":"a@x.io","password":"p1"}`).Code)
	me := *users.byEmail["a@x.io"]
	me.PasswordHash = ""
	h := UpdatePasswordHandler(nil, f.hasher, zap.NewNop())

	rec := callAs(t, h, &me, http.MethodPatch, `{"currentPassword":"wrong","newPassword":"p2"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"message":"Invalid password"}`, rec.Body.String())

	rec = callAs(t, h, &me, http.MethodPatch, `{"currentPassword":"p1"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = callAs(t, h, &me, http.MethodPatch, `{"currentPassword":"p1","newPassword":"`+strings.Repeat("é", 40)+`"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"message":"NewPassword: Maximum length is 72 bytes"}`, rec.Body.String())
	require.True(t, f.hasher.Verify("p1", users.byEmail["a@x.io"].PasswordHash))

	rec = callAs(t, h, &me, http.MethodPatch, `{"currentPassword":"p1","newPassword":"p2"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	require.Equal(t, http.StatusUnauthorized, f.post("/auth/login", `{"email":"a@x.io","password":"p1"}`).Code)
	require.Equal(t, http.StatusOK, f.post("/auth/login", `{"email":"a@x.io","password":"p2"}`).Code)
}
