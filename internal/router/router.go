// File: internal/router/router.go
package router

import (
	"net/http"
	"time"

	"talent-tracker/internal/cache"
	"talent-tracker/internal/database"
	"talent-tracker/internal/dto"
	"talent-tracker/internal/handler"
	"talent-tracker/internal/handler/admin"
	"talent-tracker/internal/handler/auth"
	"talent-tracker/internal/handler/coach"
	"talent-tracker/internal/handler/performance"
	"talent-tracker/internal/metrics"
	"talent-tracker/internal/middleware"
	"talent-tracker/internal/model"
	"talent-tracker/internal/service"
	"talent-tracker/internal/upload"
	"talent-tracker/internal/worker"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Deps 路由需要的所有元件，由 cmd/service 組裝
type Deps struct {
	DB       database.DB
	Cache    cache.Cache
	Tokens   *service.TokenService
	Refresh  *service.RefreshStore
	Hasher   *service.PasswordHasher
	Uploads  *upload.Store
	Workers  worker.Pool
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger

	// AuthRate 為 /auth/* 每個 IP 每秒允許的請求數，<=0 時不限流
	AuthRate float64
}

func authRateLimiter(perSecond float64) echo.MiddlewareFunc {
	tooMany := func(c echo.Context) error {
		return c.JSON(http.StatusTooManyRequests, dto.HTTPError{Message: "Too many requests"})
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return tooMany(c)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return tooMany(c)
		},
	})
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	requireAuth := middleware.RequireAuth(d.DB, d.Tokens, log)
	staff := middleware.RequireRole(model.RoleCoach, model.RoleAdmin)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware())
	}

	// 健康檢查與監控
	e.GET("/health", handler.HealthHandler(d.DB, d.Cache, log))
	if d.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler(d.Gatherer)))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// 上傳的影片檔
	if d.Uploads != nil {
		e.Static("/uploads", d.Uploads.Dir())
	}

	// 註冊、登入、token 更新
	authGroup := e.Group("/auth")
	if d.AuthRate > 0 {
		authGroup.Use(authRateLimiter(d.AuthRate))
	}
	authGroup.POST("/register", auth.RegisterHandler(d.DB, d.Hasher, log))
	authGroup.POST("/login", auth.LoginHandler(d.DB, d.Hasher, d.Tokens, d.Refresh, log))
	authGroup.POST("/refresh", auth.RefreshHandler(d.DB, d.Tokens, d.Refresh, log))
	authGroup.POST("/logout", auth.LogoutHandler(d.Refresh, log))
	authGroup.GET("/me", auth.MeHandler(), requireAuth)
	authGroup.PUT("/me", auth.UpdateMeHandler(d.DB, log), requireAuth)
	authGroup.PATCH("/me/password", auth.UpdatePasswordHandler(d.DB, d.Hasher, log), requireAuth)

	// 表現紀錄
	perf := e.Group("/performance", requireAuth)
	perf.POST("/add", performance.AddHandler(d.DB, d.Uploads, log))
	perf.GET("/my", performance.MyHandler(d.DB, log))
	perf.GET("/all", performance.AllHandler(d.DB, log), staff)

	// coach 與 admin 共用
	coachGroup := e.Group("/coach", requireAuth, staff)
	coachGroup.GET("/players", coach.PlayersHandler(d.DB, log))
	coachGroup.GET("/player/:id/performance", coach.PlayerPerformanceHandler(d.DB, log))
	coachGroup.GET("/compare", coach.CompareHandler(d.DB, log))

	// 管理員專屬
	adminGroup := e.Group("/admin", requireAuth, adminOnly)
	adminGroup.GET("/users", admin.ListUsersHandler(d.DB, log))
	adminGroup.PATCH("/users/:id/role", admin.UpdateRoleHandler(d.DB, log))
	adminGroup.DELETE("/users/:id", admin.DeleteUserHandler(d.DB, d.Uploads, d.Workers, log))
	adminGroup.DELETE("/performance/:id", admin.DeletePerformanceHandler(d.DB, d.Uploads, d.Workers, log))
}
