// File: internal/dto/add_performance_request.go
package dto

// AddPerformanceRequest 可用 JSON 或 multipart/form-data 上傳；videoFile 只在 multipart 時讀取
// swagger:model dto.AddPerformanceRequest
type AddPerformanceRequest struct {
	Sport    string   `json:"sport" form:"sport" validate:"required,max=50" example:"football"`
	Speed    *float64 `json:"speed" form:"speed" validate:"required,gte=0" example:"8.5"`
	Stamina  *float64 `json:"stamina" form:"stamina" validate:"required,gte=0" example:"7"`
	Strength *float64 `json:"strength" form:"strength" validate:"required,gte=0" example:"6.5"`
	VideoURL string   `json:"videoUrl" form:"videoUrl" validate:"omitempty,url,max=2048" example:"https://example.com/clip.mp4"`
}
