// File: cmd/service/service.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"talent-tracker/internal/cache"
	"talent-tracker/internal/config"
	"talent-tracker/internal/database"
	"talent-tracker/internal/logger"
	"talent-tracker/internal/metrics"
	"talent-tracker/internal/middleware"
	"talent-tracker/internal/router"
	"talent-tracker/internal/service"
	"talent-tracker/internal/upload"
	"talent-tracker/internal/validation"
	"talent-tracker/internal/worker"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	configPath      = ".env"
	loadConfig      = config.Load
	newLogger       = logger.New
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackAllFn   = database.RollbackAll
	newUploadStore  = upload.NewStore
	newWorkerPool   = worker.NewPool
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer  = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	exitFunc        = os.Exit
)

// newEcho 建立 Echo 實例並掛上全域中介層
func newEcho(cfg *config.Config, log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.App.Debug
	e.Validator = validation.New()

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.App.AllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	// multipart 的欄位與邊界需要一點額外空間
	e.Use(echomw.BodyLimit(fmt.Sprintf("%d", cfg.Upload.MaxBytes+(1<<20))))
	e.Use(middleware.StoreTimeout(cfg.App.StoreTimeout))
	return e
}

func run(ctx context.Context) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}

	log, err := newLogger(cfg.App.LogPath, cfg.App.Debug)
	if err != nil {
		return fmt.Errorf("Logger 初始化失敗: %w", err)
	}
	defer func() { _ = log.Sync() }()

	db, err := newPgxPool(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn("關閉 Redis 連線失敗", zap.Error(err))
		}
	}()

	if cfg.Database.Reset {
		log.Warn("DATABASE_RESET 已啟用，退回所有 migration")
		if err := rollbackAllFn(cfg.Database.URL); err != nil {
			return fmt.Errorf("Migration 回滾失敗: %w", err)
		}
	}
	if err := runMigrationsFn(cfg.Database.URL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	tokens, err := service.NewTokenService([]byte(cfg.JWT.Secret), cfg.JWT.AccessTTL)
	if err != nil {
		return fmt.Errorf("Token 服務初始化失敗: %w", err)
	}

	uploads, err := newUploadStore(cfg.Upload.Dir, cfg.Upload.MaxBytes)
	if err != nil {
		return fmt.Errorf("上傳目錄初始化失敗: %w", err)
	}

	wp := newWorkerPool(cfg.App.WorkerCount, log)
	defer wp.Stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	e := newEcho(cfg, log)
	router.Setup(e, router.Deps{
		DB:       db,
		Cache:    rdb,
		Tokens:   tokens,
		Refresh:  service.NewRefreshStore(rdb, cfg.JWT.RefreshTTL),
		Hasher:   service.NewPasswordHasher(cfg.App.BcryptCost),
		Uploads:  uploads,
		Workers:  wp,
		Metrics:  metrics.NewCollector(reg),
		Gatherer: reg,
		Logger:   log,
		AuthRate: cfg.App.AuthRateLimit,
	})

	addr := ":" + cfg.App.Port
	log.Info("server starting", zap.String("app", cfg.App.Name), zap.String("addr", addr))

	errCh := make(chan error, 1)
	go func() { errCh <- startServer(e, addr) }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("伺服器啟動失敗: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownServer(shutdownCtx, e); err != nil {
		return fmt.Errorf("伺服器關閉失敗: %w", err)
	}
	return nil
}
