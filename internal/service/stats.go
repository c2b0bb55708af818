// File: internal/service/stats.go
package service

import "talent-tracker/internal/model"

// Averages 計算三項指標平均值，空清單回傳全 0
func Averages(records []model.Performance) model.MetricAverages {
	if len(records) == 0 {
		return model.MetricAverages{}
	}
	var sum model.MetricAverages
	for _, r := range records {
		sum.Speed += r.Speed
		sum.Stamina += r.Stamina
		sum.Strength += r.Strength
	}
	n := float64(len(records))
	return model.MetricAverages{
		Speed:    sum.Speed / n,
		Stamina:  sum.Stamina / n,
		Strength: sum.Strength / n,
	}
}
