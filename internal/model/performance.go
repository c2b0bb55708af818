// File: internal/model/performance.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Performance 一筆球員表現紀錄
type Performance struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Sport     string    `json:"sport"`
	Speed     float64   `json:"speed"`
	Stamina   float64   `json:"stamina"`
	Strength  float64   `json:"strength"`
	VideoURL  string    `json:"videoUrl,omitempty"`
	VideoFile string    `json:"videoFile,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// MetricAverages 三項指標的平均值，沒有紀錄時皆為 0
type MetricAverages struct {
	Speed    float64 `json:"speed"`
	Stamina  float64 `json:"stamina"`
	Strength float64 `json:"strength"`
}
