// Package metrics 收集 HTTP 與認證相關的 Prometheus 指標
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"talent-tracker/internal/apperror"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	authFailures *prometheus.CounterVec
}

// NewCollector 建立 Collector 並註冊到指定的 registry
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "talent_http_requests_total",
			Help: "依方法、路由與狀態碼統計的 HTTP 請求數",
		}, []string{"method", "path", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "talent_http_request_duration_seconds",
			Help:    "HTTP 請求處理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "talent_auth_failures_total",
			Help: "被認證或角色檢查拒絕的請求數；登入密碼錯誤另計為 invalid_credentials",
		}, []string{"reason"}),
	}

	reg.MustRegister(c.requests, c.duration, c.authFailures)
	return c
}

// RecordAuthFailure reason 為 unauthenticated、invalid_credentials 或 forbidden
func (c *Collector) RecordAuthFailure(reason string) {
	c.authFailures.WithLabelValues(reason).Inc()
}

// Middleware 以路由樣板（c.Path()）作為 path 標籤，避免 id 造成高基數
func (c *Collector) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)

			status := ctx.Response().Status
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}

			path := ctx.Path()
			if path == "" {
				path = "unmatched"
			}
			method := ctx.Request().Method
			c.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			c.duration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

			switch status {
			case http.StatusUnauthorized:
				reason := apperror.KindUnauthenticated
				if k, ok := ctx.Get(apperror.ContextKindKey).(apperror.Kind); ok && k == apperror.KindInvalidCredentials {
					reason = k
				}
				c.RecordAuthFailure(reason.String())
			case http.StatusForbidden:
				c.RecordAuthFailure("forbidden")
			}
			return err
		}
	}
}

// Handler 回傳 Prometheus scrape 用的 HTTP handler
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
