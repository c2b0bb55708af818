// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 集中保存服務啟動所需的所有設定
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Upload   UploadConfig
}

type AppConfig struct {
	Name          string
	Port          string
	Debug         bool
	LogPath       string
	WorkerCount   int
	StoreTimeout  time.Duration
	AllowOrigins  []string
	AuthRateLimit float64
	BcryptCost    int
}

type DatabaseConfig struct {
	URL string
	// Reset 啟動時先退回所有 migration，只用於開發環境
	Reset bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

// Load 讀取 .env（若存在）並以環境變數覆寫，path 為空時只讀環境變數
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("APP_NAME", "talent-tracker")
	v.SetDefault("PORT", "5000")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DATABASE_RESET", false)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_ACCESS_TTL", "24h")
	v.SetDefault("JWT_REFRESH_TTL", "720h")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", 100<<20)
	v.SetDefault("WORKER_COUNT", 1)
	v.SetDefault("STORE_TIMEOUT", "5s")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("AUTH_RATE_LIMIT", 5)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name:          v.GetString("APP_NAME"),
			Port:          v.GetString("PORT"),
			Debug:         v.GetBool("DEBUG"),
			LogPath:       v.GetString("LOG_PATH"),
			WorkerCount:   v.GetInt("WORKER_COUNT"),
			StoreTimeout:  v.GetDuration("STORE_TIMEOUT"),
			AllowOrigins:  splitList(v.GetString("CORS_ALLOW_ORIGINS")),
			AuthRateLimit: v.GetFloat64("AUTH_RATE_LIMIT"),
			BcryptCost:    v.GetInt("BCRYPT_COST"),
		},
		Database: DatabaseConfig{
			URL:   v.GetString("DATABASE_URL"),
			Reset: v.GetBool("DATABASE_RESET"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			AccessTTL:  v.GetDuration("JWT_ACCESS_TTL"),
			RefreshTTL: v.GetDuration("JWT_REFRESH_TTL"),
		},
		Upload: UploadConfig{
			Dir:      v.GetString("UPLOAD_DIR"),
			MaxBytes: v.GetInt64("UPLOAD_MAX_BYTES"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Database.URL == "" {
		errs = append(errs, errors.New("環境變數 DATABASE_URL 未設定"))
	}
	if c.Redis.Addr == "" {
		errs = append(errs, errors.New("環境變數 REDIS_ADDR 未設定"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("環境變數 JWT_SECRET 未設定"))
	}
	if c.JWT.AccessTTL < 0 {
		errs = append(errs, errors.New("JWT_ACCESS_TTL 不可為負數"))
	}
	if c.JWT.RefreshTTL <= 0 {
		errs = append(errs, errors.New("JWT_REFRESH_TTL 必須大於 0"))
	}
	if c.App.WorkerCount <= 0 {
		errs = append(errs, fmt.Errorf("無效的 WORKER_COUNT: %d", c.App.WorkerCount))
	}
	if c.App.AuthRateLimit <= 0 {
		errs = append(errs, fmt.Errorf("無效的 AUTH_RATE_LIMIT: %v", c.App.AuthRateLimit))
	}
	if c.Upload.MaxBytes <= 0 {
		errs = append(errs, fmt.Errorf("無效的 UPLOAD_MAX_BYTES: %d", c.Upload.MaxBytes))
	}
	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
