// File: internal/dto/performance_response.go
package dto

import "talent-tracker/internal/model"

// swagger:model dto.PerformanceSavedResponse
type PerformanceSavedResponse struct {
	Message     string            `json:"message" example:"Performance saved"`
	Performance model.Performance `json:"performance"`
}

// swagger:model dto.CompareResponse
type CompareResponse struct {
	P1 model.MetricAverages `json:"p1"`
	P2 model.MetricAverages `json:"p2"`
}
