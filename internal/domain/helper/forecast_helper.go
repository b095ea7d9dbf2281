package helper

import (
	"math"

	"Wayfare-App/internal/domain/model"
)

// BuildForecastDays 3時間解像度の予報エントリから日別予報を構築する。
// 時刻順にスキャンし、各日付について最初に現れたエントリだけを採用して
// 5日分集まった時点で打ち切る。気温は四捨五入、欠損は0として扱う。
func BuildForecastDays(entries []model.ForecastEntry) []model.ForecastDay {
	days := make([]model.ForecastDay, 0, model.ForecastMaxDays)
	seen := make(map[string]struct{})

	for _, entry := range entries {
		date := entry.Timestamp.Format("2006-01-02")
		if _, ok := seen[date]; ok {
			continue
		}

		temp := 0.0
		if entry.TemperatureC != nil {
			temp = *entry.TemperatureC
		}

		seen[date] = struct{}{}
		days = append(days, model.ForecastDay{
			Date:         date,
			TemperatureC: int(math.Round(temp)),
			Description:  entry.Description,
		})

		if len(days) >= model.ForecastMaxDays {
			break
		}
	}

	return days
}
