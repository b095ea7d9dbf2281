package repository

import (
	"context"

	"Wayfare-App/internal/domain/model"
)

// LodgingRepository 宿泊施設検索のインターフェース。
// 実装はGeoapify・Supabase・PostgreSQLの3種類があり、環境変数で切り替えられる。
type LodgingRepository interface {
	// FindNearby 指定座標の周辺radiusMeters以内の宿泊施設を最大limit件返す
	FindNearby(ctx context.Context, lat, lon float64, radiusMeters, limit int) ([]model.Lodging, error)
}
