package repository

import (
	"context"

	"Wayfare-App/internal/domain/model"
)

// GeocodingProvider 前方ジオコーディング（テキスト→地点候補）のインターフェース
type GeocodingProvider interface {
	// Search テキストに一致する地点候補をランク順で最大limit件返す
	Search(ctx context.Context, text string, limit int) ([]model.Place, error)
}
