package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"talent-tracker/internal/cache"
	"talent-tracker/internal/database"
	"talent-tracker/internal/metrics"
	"talent-tracker/internal/service"
	"talent-tracker/internal/upload"
	"talent-tracker/internal/validation"
	"talent-tracker/internal/worker"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// noRow 模擬查無資料
type noRow struct{}

func (noRow) Scan(...any) error { return pgx.ErrNoRows }

func newDeps(t *testing.T) Deps {
	t.Helper()
	tokens, err := service.NewTokenService([]byte("router-secret"), time.Hour)
	require.NoError(t, err)
	uploads, err := upload.NewStore(t.TempDir(), 1<<20)
	require.NoError(t, err)
	mem := cache.NewMemoryCache()
	reg := prometheus.NewRegistry()
	pool := worker.NewPool(1, nil)
	t.Cleanup(pool.Stop)

	return Deps{
		DB: &database.FakeDB{
			PingFn: func(context.Context) error { return nil },
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return noRow{}
			},
		},
		Cache:    mem,
		Tokens:   tokens,
		Refresh:  service.NewRefreshStore(mem, time.Hour),
		Hasher:   service.NewPasswordHasher(bcrypt.MinCost),
		Uploads:  uploads,
		Workers:  pool,
		Metrics:  metrics.NewCollector(reg),
		Gatherer: reg,
		Logger:   zap.NewNop(),
		AuthRate: 100,
	}
}

func serve(e *echo.Echo, method, target, auth, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSetupRoutes(t *testing.T) {
	e := echo.New()
	Setup(e, newDeps(t))

	got := map[string]struct{}{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
	}

	expected := []string{
		http.MethodGet + " /health",
		http.MethodGet + " /metrics",
		http.MethodPost + " /auth/register",
		http.MethodPost + " /auth/login",
		http.MethodPost + " /auth/refresh",
		http.MethodPost + " /auth/logout",
		http.MethodGet + " /auth/me",
		http.MethodPut + " /auth/me",
		http.MethodPatch + " /auth/me/password",
		http.MethodPost + " /performance/add",
		http.MethodGet + " /performance/my",
		http.MethodGet + " /performance/all",
		http.MethodGet + " /coach/players",
		http.MethodGet + " /coach/player/:id/performance",
		http.MethodGet + " /coach/compare",
		http.MethodGet + " /admin/users",
		http.MethodPatch + " /admin/users/:id/role",
		http.MethodDelete + " /admin/users/:id",
		http.MethodDelete + " /admin/performance/:id",
	}
	for _, k := range expected {
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := echo.New()
	e.Validator = validation.New()
	d := newDeps(t)
	Setup(e, d)

	for _, r := range []struct{ method, path string }{
		{http.MethodGet, "/auth/me"},
		{http.MethodPut, "/auth/me"},
		{http.MethodPatch, "/auth/me/password"},
		{http.MethodPost, "/performance/add"},
		{http.MethodGet, "/performance/my"},
		{http.MethodGet, "/performance/all"},
		{http.MethodGet, "/coach/players"},
		{http.MethodGet, "/coach/compare"},
		{http.MethodGet, "/admin/users"},
		{http.MethodPatch, "/admin/users/" + uuid.NewString() + "/role"},
		{http.MethodDelete, "/admin/users/" + uuid.NewString()},
		{http.MethodDelete, "/admin/performance/" + uuid.NewString()},
	} {
		rec := serve(e, r.method, r.path, "", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code, r.method+" "+r.path)
		require.JSONEq(t, `{"message":"No token provided"}`, rec.Body.String())
	}

	t.Run("token for a deleted user", func(t *testing.T) {
		tok, _, err := d.Tokens.Issue(uuid.New())
		require.NoError(t, err)
		rec := serve(e, http.MethodGet, "/auth/me", "Bearer "+tok, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("failures are counted", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/metrics", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `talent_auth_failures_total{reason="unauthenticated"}`)
	})
}

func TestHealthRoute(t *testing.T) {
	e := echo.New()
	Setup(e, newDeps(t))
	rec := serve(e, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"message":"pong"}`, rec.Body.String())
}

func TestAuthRateLimit(t *testing.T) {
	e := echo.New()
	e.Validator = validation.New()
	d := newDeps(t)
	d.AuthRate = 1
	Setup(e, d)

	first := serve(e, http.MethodPost, "/auth/login", "", `{}`)
	require.Equal(t, http.StatusBadRequest, first.Code)

	second := serve(e, http.MethodPost, "/auth/login", "", `{}`)
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	require.JSONEq(t, `{"message":"Too many requests"}`, second.Body.String())

	// 其他路由不受影響
	require.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/health", "", "").Code)
}
