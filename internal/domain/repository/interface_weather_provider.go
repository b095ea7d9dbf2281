package repository

import (
	"context"

	"Wayfare-App/internal/domain/model"
)

// WeatherProvider 天気情報サービスのインターフェース。
// 認証情報が未設定の実装はエラーではなくnil/空を返す（no-op）。
type WeatherProvider interface {
	// Current 現在の天気スナップショットを取得する。取得できない場合はnil
	Current(ctx context.Context, lat, lon float64) (*model.WeatherSnapshot, error)
	// Forecast 3時間解像度の予報エントリを時刻順で返す
	Forecast(ctx context.Context, lat, lon float64) ([]model.ForecastEntry, error)
}
