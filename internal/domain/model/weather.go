package model

import "time"

// WeatherSnapshot 現在の天気のスナップショット
type WeatherSnapshot struct {
	TemperatureC float64 `json:"temperature_c"`
	Description  string  `json:"description"`
}

// ForecastDay 1日分の天気予報。日付ごとに最大1件、最大5日分保持する
type ForecastDay struct {
	Date         string `json:"date"` // YYYY-MM-DD
	TemperatureC int    `json:"temperature_c"`
	Description  string `json:"description"`
}

// ForecastEntry 天気サービスが返す3時間解像度の生エントリ
type ForecastEntry struct {
	Timestamp    time.Time
	TemperatureC *float64 // 欠損時はnil（0として扱う）
	Description  string
}
