package admin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"talent-tracker/internal/database"
	"talent-tracker/internal/model"
	"talent-tracker/internal/store"
	"talent-tracker/internal/validation"
	"talent-tracker/internal/worker"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func restore() {
	listUsers = store.ListUsers
	updateUserRole = store.UpdateUserRole
	deleteUserCascade = store.DeleteUserCascade
	deletePerformance = store.DeletePerformance
}

// inlinePool 在 Submit 時直接執行，讓測試不必等待
type inlinePool struct {
	stopped bool
}

func (p *inlinePool) Submit(t worker.Task) bool {
	if p.stopped {
		return false
	}
	t()
	return true
}

func (p *inlinePool) Stop() { p.stopped = true }

type removed struct {
	files []string
	err   error
}

func (r *removed) Remove(path string) error {
	r.files = append(r.files, path)
	return r.err
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListUsersHandler(t *testing.T) {
	t.Cleanup(restore)
	listUsers = func(context.Context, database.Querier) ([]*model.User, error) {
		return []*model.User{
			{ID: uuid.New(), Role: model.RoleAdmin, PasswordHash: "h1"},
			{ID: uuid.New(), Role: model.RolePlayer, PasswordHash: "h2"},
		}, nil
	}
	e := echo.New()
	e.GET("/admin/users", ListUsersHandler(nil, zap.NewNop()))

	rec := do(e, http.MethodGet, "/admin/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), "h1")
	require.NotContains(t, rec.Body.String(), "h2")

	listUsers = func(context.Context, database.Querier) ([]*model.User, error) { return nil, errors.New("x") }
	require.Equal(t, http.StatusInternalServerError, do(e, http.MethodGet, "/admin/users", "").Code)
}

func TestUpdateRoleHandler(t *testing.T) {
	t.Cleanup(restore)
	target := uuid.New()
	calls := 0
	updateUserRole = func(_ context.Context, _ database.Querier, id uuid.UUID, role model.Role) (*model.User, error) {
		calls++
		if id != target {
			return nil, store.ErrNotFound
		}
		return &model.User{ID: id, Name: "T", Role: role, PasswordHash: "hash"}, nil
	}
	e := echo.New()
	e.Validator = validation.New()
	e.PATCH("/admin/users/:id/role", UpdateRoleHandler(nil, zap.NewNop()))

	t.Run("invalid role leaves the user untouched", func(t *testing.T) {
		for _, body := range []string{`{"role":"superuser"}`, `{"role":""}`, `{}`, `{"role":"Admin"}`} {
			rec := do(e, http.MethodPatch, "/admin/users/"+target.String()+"/role", body)
			require.Equal(t, http.StatusBadRequest, rec.Code, body)
		}
		rec := do(e, http.MethodPatch, "/admin/users/"+target.String()+"/role", `{"role":"superuser"}`)
		require.JSONEq(t, `{"message":"Invalid role"}`, rec.Body.String())
		require.Equal(t, 0, calls)
	})

	t.Run("promote", func(t *testing.T) {
		rec := do(e, http.MethodPatch, "/admin/users/"+target.String()+"/role", `{"role":"coach"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"role":"coach"`)
		require.NotContains(t, rec.Body.String(), "hash")
		require.Equal(t, 1, calls)
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := do(e, http.MethodPatch, "/admin/users/"+uuid.NewString()+"/role", `{"role":"admin"}`)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.JSONEq(t, `{"message":"User not found"}`, rec.Body.String())
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := do(e, http.MethodPatch, "/admin/users/42/role", `{"role":"admin"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeleteUserHandler(t *testing.T) {
	t.Cleanup(restore)
	target := uuid.New()
	deleteUserCascade = func(_ context.Context, _ database.DB, id uuid.UUID) ([]string, error) {
		if id != target {
			return nil, store.ErrNotFound
		}
		return []string{"/uploads/video_a.mp4", "/uploads/video_b.webm"}, nil
	}
	videos := &removed{err: errors.New("gone")}
	pool := &inlinePool{}
	e := echo.New()
	e.DELETE("/admin/users/:id", DeleteUserHandler(nil, videos, pool, zap.NewNop()))

	rec := do(e, http.MethodDelete, "/admin/users/"+target.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"User & performances deleted"}`, rec.Body.String())
	require.Equal(t, []string{"/uploads/video_a.mp4", "/uploads/video_b.webm"}, videos.files)

	rec = do(e, http.MethodDelete, "/admin/users/"+uuid.NewString(), "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodDelete, "/admin/users/nope", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	t.Run("stopped pool still answers", func(t *testing.T) {
		videos.files = nil
		pool.Stop()
		rec := do(e, http.MethodDelete, "/admin/users/"+target.String(), "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, videos.files)
	})
}

func TestDeletePerformanceHandler(t *testing.T) {
	t.Cleanup(restore)
	withVideo, withoutVideo := uuid.New(), uuid.New()
	deletePerformance = func(_ context.Context, _ database.Querier, id uuid.UUID) (*model.Performance, error) {
		switch id {
		case withVideo:
			return &model.Performance{ID: id, VideoFile: "/uploads/video_c.mp4"}, nil
		case withoutVideo:
			return &model.Performance{ID: id}, nil
		}
		return nil, store.ErrNotFound
	}
	videos := &removed{}
	e := echo.New()
	e.DELETE("/admin/performance/:id", DeletePerformanceHandler(nil, videos, &inlinePool{}, zap.NewNop()))

	rec := do(e, http.MethodDelete, "/admin/performance/"+withVideo.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"Performance deleted"}`, rec.Body.String())
	require.Equal(t, []string{"/uploads/video_c.mp4"}, videos.files)

	rec = do(e, http.MethodDelete, "/admin/performance/"+withoutVideo.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, videos.files, 1)

	rec = do(e, http.MethodDelete, "/admin/performance/"+uuid.NewString(), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"message":"Performance not found"}`, rec.Body.String())
}
